package calendar

import (
	"fmt"
	"strings"
	"time"
)

// Weekdays is the header row for a Monday-first grid.
var Weekdays = [DaysPerWeek]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// Month identifies a calendar month the portal navigates between.
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf returns the month containing t as observed in loc.
// A nil loc uses t's own location.
func MonthOf(t time.Time, loc *time.Location) Month {
	if loc != nil {
		t = t.In(loc)
	}
	return Month{Year: t.Year(), Month: t.Month()}
}

// ParseMonth parses a "YYYY-MM" value.
func ParseMonth(raw string) (Month, error) {
	raw = strings.TrimSpace(raw)
	t, err := time.Parse("2006-01", raw)
	if err != nil || len(raw) != len("2006-01") {
		return Month{}, fmt.Errorf("%w: %q", ErrInvalidMonth, raw)
	}
	return Month{Year: t.Year(), Month: t.Month()}, nil
}

// Valid reports whether the month number is within 1..12.
func (m Month) Valid() bool {
	return m.Month >= time.January && m.Month <= time.December
}

// Prev returns the month before m, wrapping December into the previous year.
func (m Month) Prev() Month {
	if m.Month == time.January {
		return Month{Year: m.Year - 1, Month: time.December}
	}
	return Month{Year: m.Year, Month: m.Month - 1}
}

// Next returns the month after m, wrapping into January of the next year.
func (m Month) Next() Month {
	if m.Month == time.December {
		return Month{Year: m.Year + 1, Month: time.January}
	}
	return Month{Year: m.Year, Month: m.Month + 1}
}

// Days returns the number of days in m.
func (m Month) Days() int {
	return DaysIn(m.Year, m.Month)
}

// Start returns midnight UTC on the first day of m.
func (m Month) Start() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

// End returns midnight UTC on the first day of the following month.
func (m Month) End() time.Time {
	return m.Start().AddDate(0, 1, 0)
}

// Contains reports whether a "YYYY-MM-DD" key falls inside m.
func (m Month) Contains(date string) bool {
	return len(date) == len("2006-01-02") && strings.HasPrefix(date, m.String()+"-")
}

// String formats m as "YYYY-MM".
func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// Title formats m for display, e.g. "March 2025".
func (m Month) Title() string {
	return fmt.Sprintf("%s %d", m.Month, m.Year)
}

// Grid builds the calendar grid for m.
func Grid[T Dated](m Month, items []T) ([][]Cell[T], error) {
	return Build(m.Year, int(m.Month), items)
}
