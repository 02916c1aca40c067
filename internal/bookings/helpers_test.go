package bookings

import (
	"context"
	"sync"

	"github.com/wolfman30/salon-portal/internal/calendar"
)

type stubSource struct {
	mu    sync.Mutex
	days  []Day
	err   error
	calls int
	last  calendar.Month
}

func (s *stubSource) ListMonth(_ context.Context, _ string, month calendar.Month) ([]Day, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.last = month
	if s.err != nil {
		return nil, s.err
	}
	return s.days, nil
}

func (s *stubSource) SourceName() string { return "stub" }

func (s *stubSource) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type stubWriter struct {
	created []Booking
	err     error
}

func (w *stubWriter) Create(_ context.Context, b *Booking) error {
	if w.err != nil {
		return w.err
	}
	if b.ID == "" {
		b.ID = "bk-new"
	}
	w.created = append(w.created, *b)
	return nil
}

type stubInvalidator struct {
	months []string
}

func (i *stubInvalidator) Invalidate(_ context.Context, customerID string, month calendar.Month) error {
	i.months = append(i.months, customerID+":"+month.String())
	return nil
}

func booking(id, date, at string, status Status) Booking {
	return Booking{
		ID:          id,
		CustomerID:  "cust-1",
		BookingDate: date,
		BookingTime: at,
		Status:      status,
		StatusLabel: status.Label(),
		Services:    []string{"Haircut"},
	}
}
