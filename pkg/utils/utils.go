package utils

import (
	"fmt"
	"time"
)

// PeriodKey returns the calendar-month settlement key for t, e.g. "2025-03".
func PeriodKey(t time.Time) string {
	return t.Format("2006-01")
}

// ParsePeriod parses a "YYYY-MM" key back into the first instant of the month (UTC).
func ParsePeriod(period string) (time.Time, error) {
	t, err := time.Parse("2006-01", period)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid period %q: %w", period, err)
	}
	return t, nil
}

// MonthRange returns the [start, end) bounds of the month containing t,
// in t's location.
func MonthRange(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 1, 0)
}

// TrailingMonths returns the last n month starts ending with the month of t,
// oldest first.
func TrailingMonths(t time.Time, n int) []time.Time {
	months := make([]time.Time, 0, n)
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	for i := n - 1; i >= 0; i-- {
		months = append(months, first.AddDate(0, -i, 0))
	}
	return months
}

// ClampPagination normalizes limit/offset query values against sane bounds.
func ClampPagination(limit, offset, defaultLimit, maxLimit int) (int, int) {
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
