package bookings

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/wolfman30/salon-portal/internal/calendar"
	"github.com/wolfman30/salon-portal/pkg/logging"
)

const dateLayout = "2006-01-02"

// DB abstracts the pgx query interface for testing.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Store reads and writes bookings in Postgres.
type Store struct {
	db     DB
	logger *logging.Logger
}

// NewStore creates a bookings store backed by a pgx pool or connection.
func NewStore(db DB, logger *logging.Logger) *Store {
	if db == nil {
		panic("bookings: db required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Store{db: db, logger: logger}
}

// SourceName labels store latency metrics.
func (s *Store) SourceName() string { return "postgres" }

// Create inserts a booking, assigning an ID when empty.
func (s *Store) Create(ctx context.Context, b *Booking) error {
	date, err := time.Parse(dateLayout, b.BookingDate)
	if err != nil {
		return fmt.Errorf("bookings: invalid booking date %q: %w", b.BookingDate, err)
	}
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.StatusLabel == "" {
		b.StatusLabel = b.Status.Label()
	}
	if b.Services == nil {
		b.Services = []string{}
	}

	_, err = s.db.Exec(ctx, `
		INSERT INTO bookings (id, customer_id, booking_date, booking_time, status, status_label, stylist, branch, services, special_notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		b.ID, b.CustomerID, date, b.BookingTime, int(b.Status), b.StatusLabel,
		b.Stylist, b.Branch, b.Services, b.SpecialNotes,
	)
	if err != nil {
		return fmt.Errorf("bookings: create: %w", err)
	}
	return nil
}

// ListMonth returns the customer's bookings in month, grouped per day.
func (s *Store) ListMonth(ctx context.Context, customerID string, month calendar.Month) ([]Day, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, customer_id, booking_date, booking_time, status, status_label, stylist, branch, services, special_notes
		FROM bookings
		WHERE customer_id = $1 AND booking_date >= $2 AND booking_date < $3
		ORDER BY booking_date ASC, booking_time ASC`,
		customerID, month.Start(), month.End())
	if err != nil {
		return nil, fmt.Errorf("bookings: list month: %w", err)
	}
	defer rows.Close()

	list, err := scanBookings(rows)
	if err != nil {
		return nil, err
	}

	days, dropped := GroupByDay(list)
	for _, b := range dropped {
		s.logger.Warn("bookings: unknown status dropped", "booking_id", b.ID, "status", int(b.Status))
	}
	return days, nil
}

func scanBookings(rows pgx.Rows) ([]Booking, error) {
	var out []Booking
	for rows.Next() {
		var (
			b      Booking
			date   time.Time
			status int
		)
		if err := rows.Scan(&b.ID, &b.CustomerID, &date, &b.BookingTime, &status, &b.StatusLabel,
			&b.Stylist, &b.Branch, &b.Services, &b.SpecialNotes); err != nil {
			return nil, fmt.Errorf("bookings: scan: %w", err)
		}
		b.BookingDate = date.Format(dateLayout)
		b.Status = Status(status)
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("bookings: rows: %w", err)
	}
	return out, nil
}
