package calendar

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMonth(t *testing.T) {
	m, err := ParseMonth("2025-03")
	require.NoError(t, err)
	assert.Equal(t, Month{Year: 2025, Month: time.March}, m)

	for _, raw := range []string{"2025-13", "2025-3", "abc", "", "2025-03-01"} {
		_, err := ParseMonth(raw)
		assert.True(t, errors.Is(err, ErrInvalidMonth), "input %q", raw)
	}
}

func TestMonthNavigationWrapsYears(t *testing.T) {
	jan := Month{Year: 2025, Month: time.January}
	assert.Equal(t, Month{Year: 2024, Month: time.December}, jan.Prev())
	assert.Equal(t, Month{Year: 2025, Month: time.February}, jan.Next())

	dec := Month{Year: 2025, Month: time.December}
	assert.Equal(t, Month{Year: 2026, Month: time.January}, dec.Next())
	assert.Equal(t, Month{Year: 2025, Month: time.November}, dec.Prev())
}

func TestMonthOfUsesLocation(t *testing.T) {
	// 23:30 UTC on Mar 31 is already April 1 in Singapore.
	ts := time.Date(2025, time.March, 31, 23, 30, 0, 0, time.UTC)
	loc := time.FixedZone("SGT", 8*60*60)

	assert.Equal(t, Month{Year: 2025, Month: time.April}, MonthOf(ts, loc))
	assert.Equal(t, Month{Year: 2025, Month: time.March}, MonthOf(ts, nil))
}

func TestMonthFormatting(t *testing.T) {
	m := Month{Year: 2025, Month: time.March}
	assert.Equal(t, "2025-03", m.String())
	assert.Equal(t, "March 2025", m.Title())
	assert.Equal(t, 31, m.Days())
	assert.True(t, m.Valid())
	assert.False(t, Month{Year: 2025}.Valid())
}

func TestMonthContains(t *testing.T) {
	m := Month{Year: 2025, Month: time.March}
	assert.True(t, m.Contains("2025-03-15"))
	assert.False(t, m.Contains("2025-04-01"))
	assert.False(t, m.Contains("2025-03"))
}

func TestMonthRange(t *testing.T) {
	m := Month{Year: 2024, Month: time.December}
	assert.Equal(t, time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC), m.Start())
	assert.Equal(t, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), m.End())
}

func TestGridMatchesBuild(t *testing.T) {
	m := Month{Year: 2025, Month: time.March}
	fromMonth, err := Grid[entry](m, nil)
	require.NoError(t, err)
	direct, err := Build[entry](2025, 3, nil)
	require.NoError(t, err)
	assert.Equal(t, direct, fromMonth)
}
