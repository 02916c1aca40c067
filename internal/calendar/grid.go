// Package calendar builds Monday-first month grids for the booking calendar.
package calendar

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidMonth is returned when a month falls outside 1..12 or cannot be parsed.
// Out-of-range months are rejected rather than rolled into the next year.
var ErrInvalidMonth = errors.New("calendar: invalid month")

// Dated is implemented by anything that can be overlaid onto a calendar cell.
// CalendarDate must return the item's day as "YYYY-MM-DD".
type Dated interface {
	CalendarDate() string
}

// Cell is one day-slot in the rendered month grid.
type Cell[T Dated] struct {
	Day          int  `json:"day"`
	IsOtherMonth bool `json:"isOtherMonth"`
	// Data is only set on days of the requested month that have a matching item.
	Data *T `json:"data"`
}

// DaysPerWeek is the width of every grid row.
const DaysPerWeek = 7

// Build returns the week-by-week grid for year/month (1-indexed), Monday first.
// Leading and trailing rows are padded with days from the adjacent months.
// Each day of the month gets the first item whose CalendarDate matches it;
// items outside the month are ignored.
func Build[T Dated](year, month int, items []T) ([][]Cell[T], error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMonth, month)
	}

	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := DaysIn(year, time.Month(month))
	prevMonthDays := first.AddDate(0, 0, -1).Day()

	// time.Weekday has Sunday=0; shift so Monday=0.
	offset := (int(first.Weekday()) + 6) % 7

	byDate := make(map[string]int, len(items))
	for i := range items {
		key := items[i].CalendarDate()
		if _, seen := byDate[key]; !seen {
			byDate[key] = i
		}
	}

	weeks := make([][]Cell[T], 0, 6)
	dayCounter := 1
	for dayCounter <= daysInMonth {
		week := make([]Cell[T], 0, DaysPerWeek)
		for d := 0; d < DaysPerWeek; d++ {
			switch {
			case len(weeks) == 0 && d < offset:
				week = append(week, Cell[T]{
					Day:          prevMonthDays - offset + d + 1,
					IsOtherMonth: true,
				})
			case dayCounter > daysInMonth:
				week = append(week, Cell[T]{
					Day:          dayCounter - daysInMonth,
					IsOtherMonth: true,
				})
				dayCounter++
			default:
				cell := Cell[T]{Day: dayCounter}
				if idx, ok := byDate[DateKey(year, time.Month(month), dayCounter)]; ok {
					item := items[idx]
					cell.Data = &item
				}
				week = append(week, cell)
				dayCounter++
			}
		}
		weeks = append(weeks, week)
	}

	return weeks, nil
}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DateKey formats a day as "YYYY-MM-DD", the key items are matched on.
func DateKey(year int, month time.Month, day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", year, int(month), day)
}
