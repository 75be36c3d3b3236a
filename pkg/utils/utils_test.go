package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPeriodKey(t *testing.T) {
	assert.Equal(t, "2025-03", PeriodKey(time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2025-12", PeriodKey(time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2026-01", PeriodKey(time.Date(2026, 1, 31, 23, 59, 59, 0, time.UTC)))
}

func TestParsePeriod(t *testing.T) {
	got, err := ParsePeriod("2025-03")
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), got)

	_, err = ParsePeriod("2025-3")
	assert.Error(t, err)

	_, err = ParsePeriod("march")
	assert.Error(t, err)
}

func TestMonthRange(t *testing.T) {
	start, end := MonthRange(time.Date(2025, 3, 15, 10, 30, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), end)

	// December rolls into the next year
	start, end = MonthRange(time.Date(2025, 12, 31, 23, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), end)
}

func TestTrailingMonths(t *testing.T) {
	months := TrailingMonths(time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), 12)
	assert.Len(t, months, 12)
	assert.Equal(t, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), months[0])
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), months[11])

	// Consecutive months, no gaps
	for i := 1; i < len(months); i++ {
		assert.Equal(t, months[i-1].AddDate(0, 1, 0), months[i])
	}
}

func TestClampPagination(t *testing.T) {
	limit, offset := ClampPagination(0, -5, 20, 100)
	assert.Equal(t, 20, limit)
	assert.Equal(t, 0, offset)

	limit, offset = ClampPagination(500, 40, 20, 100)
	assert.Equal(t, 100, limit)
	assert.Equal(t, 40, offset)

	limit, offset = ClampPagination(10, 30, 20, 100)
	assert.Equal(t, 10, limit)
	assert.Equal(t, 30, offset)
}
