package bootstrap

import (
	"context"
	"crypto/tls"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/wolfman30/salon-portal/internal/bookings"
	appconfig "github.com/wolfman30/salon-portal/internal/config"
	"github.com/wolfman30/salon-portal/internal/observability/metrics"
	"github.com/wolfman30/salon-portal/internal/upstream"
	"github.com/wolfman30/salon-portal/pkg/logging"
)

// BuildRedisClient returns a configured Redis client or nil when disabled.
// When verify is true, a ping is issued and failures return nil.
func BuildRedisClient(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger, verify bool) *redis.Client {
	if cfg == nil || strings.TrimSpace(cfg.RedisAddr) == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	if ctx == nil {
		ctx = context.Background()
	}

	redisOptions := &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}
	if cfg.RedisTLS {
		redisOptions.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	client := redis.NewClient(redisOptions)
	if !verify {
		return client
	}
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis not available, calendar cache disabled", "error", err)
		_ = client.Close()
		return nil
	}
	return client
}

// BuildPostgresPool connects to DATABASE_URL. An empty URL returns nil.
func BuildPostgresPool(ctx context.Context, databaseURL string, logger *logging.Logger) (*pgxpool.Pool, error) {
	databaseURL = strings.TrimSpace(databaseURL)
	if databaseURL == "" {
		return nil, nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("bootstrap: ping postgres: %w", err)
	}
	logger.Info("connected to postgres")
	return pool, nil
}

// BookingSource bundles the calendar read path with the optional write path.
type BookingSource struct {
	Source      bookings.Source
	Writer      bookings.Writer
	Invalidator bookings.Invalidator
}

// BuildBookingSource picks the upstream API when configured, otherwise the
// Postgres store, and fronts it with the Redis cache when a client is given.
func BuildBookingSource(cfg *appconfig.Config, db bookings.DB, redisClient *redis.Client, m *metrics.CalendarMetrics, logger *logging.Logger) (*BookingSource, error) {
	if cfg == nil {
		return nil, fmt.Errorf("bootstrap: config is required")
	}
	if logger == nil {
		logger = logging.Default()
	}

	out := &BookingSource{}
	switch {
	case cfg.UpstreamBaseURL != "":
		out.Source = upstream.NewClient(cfg.UpstreamBaseURL, cfg.UpstreamAPIToken, cfg.UpstreamTimeout, logger)
		logger.Info("calendar source: upstream", "base_url", cfg.UpstreamBaseURL)
	case db != nil:
		store := bookings.NewStore(db, logger)
		out.Source = store
		out.Writer = store
		logger.Info("calendar source: postgres")
	default:
		return nil, fmt.Errorf("bootstrap: no booking source configured (set UPSTREAM_BASE_URL or DATABASE_URL)")
	}

	if redisClient != nil {
		cached := bookings.NewCachedSource(out.Source, redisClient, cfg.CalendarCacheTTL, m, logger)
		out.Source = cached
		out.Invalidator = cached
		logger.Info("calendar cache enabled", "ttl", cfg.CalendarCacheTTL)
	}
	return out, nil
}
