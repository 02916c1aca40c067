// Package bookings serves a customer's appointments as a month calendar.
package bookings

import (
	"sort"
)

// Status is the numeric booking status used by the salon backend.
type Status int

const (
	StatusConfirmed Status = 1
	StatusCompleted Status = 2
	StatusCancelled Status = 3
)

// Label returns the display label for a status.
func (s Status) Label() string {
	switch s {
	case StatusConfirmed:
		return "Confirmed"
	case StatusCompleted:
		return "Completed"
	case StatusCancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

// Booking is a single appointment.
type Booking struct {
	ID           string   `json:"id"`
	CustomerID   string   `json:"customer_id"`
	BookingDate  string   `json:"booking_date"` // YYYY-MM-DD
	BookingTime  string   `json:"booking_time"` // HH:MM, 24-hour
	Status       Status   `json:"status"`
	StatusLabel  string   `json:"status_label"`
	Stylist      string   `json:"stylist,omitempty"`
	Branch       string   `json:"branch,omitempty"`
	Services     []string `json:"services"`
	SpecialNotes string   `json:"special_notes,omitempty"`
}

// Day groups one date's bookings by status. It is the item overlaid on a
// calendar cell.
type Day struct {
	Date      string    `json:"date"`
	Confirmed []Booking `json:"confirmed"`
	Completed []Booking `json:"completed"`
	Cancelled []Booking `json:"cancelled"`
}

// NewDay returns a Day with empty, non-nil buckets.
func NewDay(date string) Day {
	return Day{
		Date:      date,
		Confirmed: []Booking{},
		Completed: []Booking{},
		Cancelled: []Booking{},
	}
}

// CalendarDate implements calendar.Dated.
func (d Day) CalendarDate() string {
	return d.Date
}

// Total returns the number of bookings on the day.
func (d Day) Total() int {
	return len(d.Confirmed) + len(d.Completed) + len(d.Cancelled)
}

// Add places b in the bucket for its status. It reports false for unknown statuses.
func (d *Day) Add(b Booking) bool {
	if b.StatusLabel == "" {
		b.StatusLabel = b.Status.Label()
	}
	if b.Services == nil {
		b.Services = []string{}
	}
	switch b.Status {
	case StatusConfirmed:
		d.Confirmed = append(d.Confirmed, b)
	case StatusCompleted:
		d.Completed = append(d.Completed, b)
	case StatusCancelled:
		d.Cancelled = append(d.Cancelled, b)
	default:
		return false
	}
	return true
}

// Totals counts a month's bookings by status.
type Totals struct {
	Confirmed int `json:"confirmed"`
	Completed int `json:"completed"`
	Cancelled int `json:"cancelled"`
}

// SumDays totals the buckets of every day.
func SumDays(days []Day) Totals {
	var t Totals
	for _, d := range days {
		t.Confirmed += len(d.Confirmed)
		t.Completed += len(d.Completed)
		t.Cancelled += len(d.Cancelled)
	}
	return t
}

// GroupByDay aggregates bookings into one Day per date, sorted by date, with
// each bucket ordered by booking time. Bookings with unknown statuses are
// returned separately so callers can log them.
func GroupByDay(bookings []Booking) (days []Day, dropped []Booking) {
	byDate := make(map[string]*Day)
	var dates []string
	for _, b := range bookings {
		day, ok := byDate[b.BookingDate]
		if !ok {
			d := NewDay(b.BookingDate)
			day = &d
			byDate[b.BookingDate] = day
			dates = append(dates, b.BookingDate)
		}
		if !day.Add(b) {
			dropped = append(dropped, b)
		}
	}

	sort.Strings(dates)
	days = make([]Day, 0, len(dates))
	for _, date := range dates {
		d := byDate[date]
		sortByTime(d.Confirmed)
		sortByTime(d.Completed)
		sortByTime(d.Cancelled)
		days = append(days, *d)
	}
	return days, dropped
}

func sortByTime(bookings []Booking) {
	sort.SliceStable(bookings, func(i, j int) bool {
		return bookings[i].BookingTime < bookings[j].BookingTime
	})
}
