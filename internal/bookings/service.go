package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/wolfman30/salon-portal/internal/calendar"
	"github.com/wolfman30/salon-portal/internal/observability/metrics"
	"github.com/wolfman30/salon-portal/pkg/logging"
)

var bookingsTracer = otel.Tracer("salon.internal.bookings")

var (
	// ErrInvalidBooking is returned when a booking fails validation.
	ErrInvalidBooking = errors.New("bookings: invalid booking")
	// ErrReadOnly is returned by Record when the configured source cannot take writes.
	ErrReadOnly = errors.New("bookings: source is read-only")
)

// Writer persists new bookings.
type Writer interface {
	Create(ctx context.Context, b *Booking) error
}

// Invalidator drops cached months after a write.
type Invalidator interface {
	Invalidate(ctx context.Context, customerID string, month calendar.Month) error
}

// MonthView is the rendered month calendar for one customer.
type MonthView struct {
	Month    string                 `json:"month"`
	Title    string                 `json:"title"`
	Prev     string                 `json:"prev"`
	Next     string                 `json:"next"`
	Weekdays []string               `json:"weekdays"`
	Weeks    [][]calendar.Cell[Day] `json:"weeks"`
	Totals   Totals                 `json:"totals"`
}

// ServiceConfig wires a Service.
type ServiceConfig struct {
	Source      Source
	Writer      Writer
	Invalidator Invalidator
	Metrics     *metrics.CalendarMetrics
	Logger      *logging.Logger
	// Location decides which month "today" is in. Defaults to UTC.
	Location *time.Location
	Now      func() time.Time
}

// Service builds month views from a booking source.
type Service struct {
	source      Source
	writer      Writer
	invalidator Invalidator
	metrics     *metrics.CalendarMetrics
	logger      *logging.Logger
	tracer      trace.Tracer
	loc         *time.Location
	now         func() time.Time
}

// NewService constructs a calendar service.
func NewService(cfg ServiceConfig) *Service {
	if cfg.Source == nil {
		panic("bookings: source required")
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Service{
		source:      cfg.Source,
		writer:      cfg.Writer,
		invalidator: cfg.Invalidator,
		metrics:     cfg.Metrics,
		logger:      cfg.Logger,
		tracer:      bookingsTracer,
		loc:         cfg.Location,
		now:         cfg.Now,
	}
}

// CurrentMonth returns the month "today" falls in.
func (s *Service) CurrentMonth() calendar.Month {
	return calendar.MonthOf(s.now(), s.loc)
}

// MonthView loads the customer's bookings for month and lays them on the grid.
func (s *Service) MonthView(ctx context.Context, customerID string, month calendar.Month) (*MonthView, error) {
	ctx, span := s.tracer.Start(ctx, "bookings.month_view")
	defer span.End()
	span.SetAttributes(
		attribute.String("salon.customer_id", customerID),
		attribute.String("salon.month", month.String()),
	)

	days, err := s.loadMonth(ctx, customerID, month)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "load month")
		s.metrics.ObserveMonthView("error")
		return nil, err
	}

	weeks, err := calendar.Grid(month, days)
	if err != nil {
		span.RecordError(err)
		s.metrics.ObserveMonthView("error")
		return nil, err
	}

	s.metrics.ObserveMonthView("ok")
	return &MonthView{
		Month:    month.String(),
		Title:    month.Title(),
		Prev:     month.Prev().String(),
		Next:     month.Next().String(),
		Weekdays: calendar.Weekdays[:],
		Weeks:    weeks,
		Totals:   SumDays(inMonth(days, month)),
	}, nil
}

// DayDetail returns the bookings on a single "YYYY-MM-DD" date. Dates without
// bookings yield empty buckets.
func (s *Service) DayDetail(ctx context.Context, customerID, date string) (*Day, error) {
	parsed, err := time.Parse(dateLayout, date)
	if err != nil {
		return nil, fmt.Errorf("%w: date %q", ErrInvalidBooking, date)
	}
	ctx, span := s.tracer.Start(ctx, "bookings.day_detail")
	defer span.End()
	span.SetAttributes(
		attribute.String("salon.customer_id", customerID),
		attribute.String("salon.date", date),
	)

	days, err := s.loadMonth(ctx, customerID, calendar.MonthOf(parsed, nil))
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	for i := range days {
		if days[i].Date == date {
			return &days[i], nil
		}
	}
	empty := NewDay(date)
	return &empty, nil
}

// Record validates and stores a booking, then drops the cached month.
func (s *Service) Record(ctx context.Context, b *Booking) error {
	if s.writer == nil {
		return ErrReadOnly
	}
	if err := validateBooking(b); err != nil {
		return err
	}
	ctx, span := s.tracer.Start(ctx, "bookings.record")
	defer span.End()

	if err := s.writer.Create(ctx, b); err != nil {
		span.RecordError(err)
		return err
	}
	s.logger.Info("booking recorded", "booking_id", b.ID, "customer_id", b.CustomerID, "date", b.BookingDate)

	if s.invalidator != nil {
		date, _ := time.Parse(dateLayout, b.BookingDate)
		if err := s.invalidator.Invalidate(ctx, b.CustomerID, calendar.MonthOf(date, nil)); err != nil {
			s.logger.Warn("bookings: cache invalidation failed", "customer_id", b.CustomerID, "error", err)
		}
	}
	return nil
}

func (s *Service) loadMonth(ctx context.Context, customerID string, month calendar.Month) ([]Day, error) {
	start := time.Now()
	days, err := s.source.ListMonth(ctx, customerID, month)
	s.metrics.ObserveSourceLatency(sourceName(s.source), time.Since(start).Seconds())
	if err != nil {
		s.logger.Error("bookings: load month failed", "customer_id", customerID, "month", month.String(), "error", err)
		return nil, err
	}
	return days, nil
}

func inMonth(days []Day, month calendar.Month) []Day {
	out := make([]Day, 0, len(days))
	for _, d := range days {
		if month.Contains(d.Date) {
			out = append(out, d)
		}
	}
	return out
}

func validateBooking(b *Booking) error {
	if b == nil {
		return fmt.Errorf("%w: nil booking", ErrInvalidBooking)
	}
	if b.CustomerID == "" {
		return fmt.Errorf("%w: customer_id required", ErrInvalidBooking)
	}
	if _, err := time.Parse(dateLayout, b.BookingDate); err != nil {
		return fmt.Errorf("%w: booking_date must be YYYY-MM-DD", ErrInvalidBooking)
	}
	if _, err := time.Parse("15:04", b.BookingTime); err != nil {
		return fmt.Errorf("%w: booking_time must be HH:MM", ErrInvalidBooking)
	}
	switch b.Status {
	case StatusConfirmed, StatusCompleted, StatusCancelled:
	default:
		return fmt.Errorf("%w: unknown status %d", ErrInvalidBooking, int(b.Status))
	}
	return nil
}
