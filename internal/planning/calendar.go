package planning

import (
	"fmt"
	"time"

	"github.com/andresuchdata/fbaplan/backend-go/internal/domain"
)

const day = 24 * time.Hour

// Day returns the calendar date of t as midnight UTC. All date arithmetic in
// this package runs on values normalized by Day, so no DST shift can leak in.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today returns the current calendar day as observed in loc.
func Today(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return Day(time.Now().In(loc))
}

// DaysBetween returns the whole number of days from a to b.
// DaysBetween(a, a) == 0 and DaysBetween(a, b) == -DaysBetween(b, a).
func DaysBetween(a, b time.Time) int {
	return int(Day(b).Sub(Day(a)) / day)
}

// AddDays shifts date by n calendar days; n may be negative.
func AddDays(date time.Time, n int) time.Time {
	return Day(date).AddDate(0, 0, n)
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(domain.DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", value, err)
	}
	return t, nil
}

// FormatDate renders date as YYYY-MM-DD.
func FormatDate(date time.Time) string {
	return Day(date).Format(domain.DateLayout)
}

// MonthKey renders a calendar month as YYYY-MM.
func MonthKey(year int, month time.Month) string {
	return fmt.Sprintf("%04d-%02d", year, int(month))
}

// ParseMonth parses a YYYY-MM month token.
func ParseMonth(value string) (int, time.Month, error) {
	t, err := time.Parse("2006-01", value)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month %q: %w", value, err)
	}
	return t.Year(), t.Month(), nil
}

// MonthsFromNow counts calendar months from the month of today to the target month.
func MonthsFromNow(today time.Time, year int, month time.Month) int {
	return (year*12 + int(month)) - (today.Year()*12 + int(today.Month()))
}
