package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayOfUsesUTC(t *testing.T) {
	// 23:30 in UTC-5 is already the next day in UTC.
	loc := time.FixedZone("UTC-5", -5*60*60)
	local := time.Date(2025, 3, 9, 23, 30, 0, 0, loc)
	assert.Equal(t, Day("2025-03-10"), DayOf(local))

	utc := time.Date(2025, 3, 10, 0, 0, 1, 0, time.UTC)
	assert.Equal(t, Day("2025-03-10"), DayOf(utc))
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := Parse("not-a-day")
	require.Error(t, err)

	d, err := Parse("2025-06-01")
	require.NoError(t, err)
	assert.Equal(t, Day("2025-06-01"), d)
}

func TestAddDaysCrossesMonthAndYear(t *testing.T) {
	assert.Equal(t, Day("2025-03-01"), Day("2025-02-28").AddDays(1))
	assert.Equal(t, Day("2024-02-29"), Day("2024-02-28").AddDays(1)) // leap year
	assert.Equal(t, Day("2026-01-01"), Day("2025-12-31").AddDays(1))
	assert.Equal(t, Day("2025-12-22"), Day("2026-01-02").AddDays(-11))
}

func TestEnumerateCoverage(t *testing.T) {
	start := Day("2025-02-20")
	end := Day("2025-03-05")
	days := Enumerate(start, end)

	require.Len(t, days, 14)
	assert.Equal(t, start, days[0])
	assert.Equal(t, end, days[len(days)-1])

	seen := map[Day]bool{}
	for i, d := range days {
		assert.False(t, seen[d], "duplicate day %s", d)
		seen[d] = true
		if i > 0 {
			assert.True(t, days[i-1].Before(d), "days out of order at %d", i)
			assert.Equal(t, days[i-1].AddDays(1), d, "gap before %s", d)
		}
	}
}

func TestEnumerateInvertedRange(t *testing.T) {
	assert.Nil(t, Enumerate("2025-03-05", "2025-03-01"))
	assert.Equal(t, []Day{"2025-03-05"}, Enumerate("2025-03-05", "2025-03-05"))
}

func TestWindow(t *testing.T) {
	days := Window("2025-03-10", 3)
	assert.Equal(t, []Day{"2025-03-08", "2025-03-09", "2025-03-10"}, days)
	assert.Nil(t, Window("2025-03-10", 0))

	twelve := Window("2025-03-10", 12)
	require.Len(t, twelve, 12)
	assert.Equal(t, Day("2025-02-27"), twelve[0])
}
