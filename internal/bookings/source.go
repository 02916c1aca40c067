package bookings

import (
	"context"
	"errors"

	"github.com/wolfman30/salon-portal/internal/calendar"
)

// ErrSourceUnavailable marks failures of a remote booking source, as opposed
// to local storage errors.
var ErrSourceUnavailable = errors.New("bookings: source unavailable")

// Source loads a customer's bookings for one month, grouped per day.
type Source interface {
	ListMonth(ctx context.Context, customerID string, month calendar.Month) ([]Day, error)
}

// namedSource lets a Source label its latency metrics.
type namedSource interface {
	SourceName() string
}

func sourceName(s Source) string {
	if n, ok := s.(namedSource); ok {
		return n.SourceName()
	}
	return "custom"
}
