package bookings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/wolfman30/salon-portal/internal/calendar"
	"github.com/wolfman30/salon-portal/internal/observability/metrics"
	"github.com/wolfman30/salon-portal/pkg/logging"
)

// CachedSource serves month lookups from Redis before falling through to the
// wrapped Source. Redis failures are logged and never returned.
type CachedSource struct {
	next    Source
	redis   *redis.Client
	ttl     time.Duration
	metrics *metrics.CalendarMetrics
	logger  *logging.Logger
}

// NewCachedSource wraps next with a Redis month cache.
func NewCachedSource(next Source, redisClient *redis.Client, ttl time.Duration, m *metrics.CalendarMetrics, logger *logging.Logger) *CachedSource {
	if next == nil {
		panic("bookings: cached source requires a source")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &CachedSource{next: next, redis: redisClient, ttl: ttl, metrics: m, logger: logger}
}

// SourceName reports the wrapped source so latency stays attributed to it.
func (c *CachedSource) SourceName() string {
	return sourceName(c.next)
}

func (c *CachedSource) key(customerID string, month calendar.Month) string {
	return fmt.Sprintf("calendar:%s:%s", customerID, month)
}

// ListMonth implements Source.
func (c *CachedSource) ListMonth(ctx context.Context, customerID string, month calendar.Month) ([]Day, error) {
	key := c.key(customerID, month)

	data, err := c.redis.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var days []Day
		if jsonErr := json.Unmarshal(data, &days); jsonErr == nil {
			c.metrics.ObserveCache("hit")
			return days, nil
		}
		c.logger.Warn("bookings: discarding corrupt cache entry", "key", key)
		c.metrics.ObserveCache("error")
	case errors.Is(err, redis.Nil):
		c.metrics.ObserveCache("miss")
	default:
		c.logger.Warn("bookings: cache read failed", "key", key, "error", err)
		c.metrics.ObserveCache("error")
	}

	days, err := c.next.ListMonth(ctx, customerID, month)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(days)
	if err != nil {
		return days, nil
	}
	if err := c.redis.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.logger.Warn("bookings: cache write failed", "key", key, "error", err)
	}
	return days, nil
}

// Invalidate drops the cached month for a customer.
func (c *CachedSource) Invalidate(ctx context.Context, customerID string, month calendar.Month) error {
	if err := c.redis.Del(ctx, c.key(customerID, month)).Err(); err != nil {
		return fmt.Errorf("bookings: invalidate cache: %w", err)
	}
	return nil
}
