package upstream

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/wolfman30/salon-portal/internal/bookings"
)

type named struct {
	Name string `json:"name"`
}

type bookingService struct {
	Service struct {
		ServiceItem named `json:"service_item"`
	} `json:"service"`
}

// remoteBooking mirrors the salon API's booking payload.
type remoteBooking struct {
	ID              int64            `json:"id"`
	BookingDate     string           `json:"booking_date"`
	BookingTime     string           `json:"booking_time"`
	Status          int              `json:"status"`
	StatusLabel     string           `json:"status_label"`
	Stylist         *named           `json:"stylist"`
	Branch          *named           `json:"branch"`
	BookingServices []bookingService `json:"booking_services"`
	SpecialNotes    string           `json:"special_notes"`
}

// remoteDay is one entry of the calendar response, keyed by date.
type remoteDay struct {
	Confirmed []remoteBooking `json:"confirmed"`
	Completed []remoteBooking `json:"completed"`
	Cancelled []remoteBooking `json:"cancelled"`
}

func (rb remoteBooking) toBooking(customerID, date string, status bookings.Status) bookings.Booking {
	b := bookings.Booking{
		ID:           strconv.FormatInt(rb.ID, 10),
		CustomerID:   customerID,
		BookingDate:  rb.BookingDate,
		BookingTime:  trimSeconds(rb.BookingTime),
		Status:       status,
		StatusLabel:  rb.StatusLabel,
		SpecialNotes: rb.SpecialNotes,
		Services:     make([]string, 0, len(rb.BookingServices)),
	}
	if b.BookingDate == "" {
		b.BookingDate = date
	}
	if rb.Stylist != nil {
		b.Stylist = rb.Stylist.Name
	}
	if rb.Branch != nil {
		b.Branch = rb.Branch.Name
	}
	for _, s := range rb.BookingServices {
		if name := strings.TrimSpace(s.Service.ServiceItem.Name); name != "" {
			b.Services = append(b.Services, name)
		}
	}
	return b
}

// trimSeconds turns "14:30:00" into "14:30".
func trimSeconds(t string) string {
	if len(t) == len("15:04:05") && t[5] == ':' {
		return t[:5]
	}
	return t
}

// calendarPayload is the customer calendar keyed by "YYYY-MM-DD". The API
// sends an empty array instead of an object for months without bookings.
type calendarPayload map[string]remoteDay

func (p *calendarPayload) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	switch {
	case bytes.Equal(trimmed, []byte("null")):
		*p = nil
		return nil
	case len(trimmed) > 0 && trimmed[0] == '[':
		var list []json.RawMessage
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return err
		}
		if len(list) > 0 {
			return fmt.Errorf("unexpected calendar array with %d entries", len(list))
		}
		*p = nil
		return nil
	}
	days := map[string]remoteDay{}
	if err := json.Unmarshal(trimmed, &days); err != nil {
		return err
	}
	*p = days
	return nil
}
