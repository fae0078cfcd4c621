package planning

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := ParseDate(value)
	require.NoError(t, err)
	return d
}

func TestDaysBetween(t *testing.T) {
	a := date(t, "2025-02-27")

	tests := []struct {
		name string
		to   string
		want int
	}{
		{"same day", "2025-02-27", 0},
		{"next day", "2025-02-28", 1},
		{"across month end", "2025-03-01", 2},
		{"across year", "2026-02-27", 365},
		{"backwards", "2025-02-20", -7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := date(t, tt.to)
			assert.Equal(t, tt.want, DaysBetween(a, b))
			assert.Equal(t, -tt.want, DaysBetween(b, a))
		})
	}
}

func TestDaysBetween_IgnoresTimeOfDay(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*60*60)
	a := time.Date(2025, 3, 10, 23, 59, 0, 0, loc)
	b := time.Date(2025, 3, 11, 0, 1, 0, 0, loc)

	assert.Equal(t, 1, DaysBetween(a, b))
	assert.Equal(t, 0, DaysBetween(a, a))
}

func TestAddDays(t *testing.T) {
	assert.Equal(t, "2024-03-01", FormatDate(AddDays(date(t, "2024-02-28"), 2)))
	assert.Equal(t, "2025-01-02", FormatDate(AddDays(date(t, "2024-12-30"), 3)))
	assert.Equal(t, "2024-12-30", FormatDate(AddDays(date(t, "2025-01-02"), -3)))
}

func TestAddDays_RoundTrip(t *testing.T) {
	start := date(t, "2023-01-01")
	for i := 0; i < 800; i += 7 {
		d := AddDays(start, i)
		for _, n := range []int{-400, -35, -1, 0, 1, 29, 366} {
			assert.Equal(t, d, AddDays(AddDays(d, n), -n))
			assert.Equal(t, n, DaysBetween(d, AddDays(d, n)))
		}
	}
}

func TestMonthsFromNow(t *testing.T) {
	today := date(t, "2025-11-15")

	assert.Equal(t, 0, MonthsFromNow(today, 2025, time.November))
	assert.Equal(t, -1, MonthsFromNow(today, 2025, time.October))
	assert.Equal(t, 2, MonthsFromNow(today, 2026, time.January))
	assert.Equal(t, 14, MonthsFromNow(today, 2027, time.January))
}

func TestParseMonth(t *testing.T) {
	year, month, err := ParseMonth("2026-03")
	require.NoError(t, err)
	assert.Equal(t, 2026, year)
	assert.Equal(t, time.March, month)
	assert.Equal(t, "2026-03", MonthKey(year, month))

	_, _, err = ParseMonth("03/2026")
	assert.Error(t, err)
}

func TestParseDate_Invalid(t *testing.T) {
	_, err := ParseDate("2025-13-01")
	assert.Error(t, err)
}
