package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"habitexe/internal/dates"
	"habitexe/internal/storage"
)

func entriesOn(today dates.Day, offsets ...int) []storage.HabitLog {
	out := make([]storage.HabitLog, 0, len(offsets))
	for _, off := range offsets {
		out = append(out, storage.HabitLog{
			HabitID: "h",
			Day:     today.AddDays(off),
			Status:  storage.StatusCompleted,
		})
	}
	return out
}

func TestTrendStableWhenBalancedAndRecent(t *testing.T) {
	today := dates.Day("2025-06-12")

	// Two completions in each half, one of them inside the last 3 days.
	history := entriesOn(today, -10, -8, -2, 0)
	trend, marks := TrendFor(history, today)
	require.Equal(t, TrendStable, trend)
	require.Len(t, marks, TrendWindowDays)
	require.True(t, marks[len(marks)-1])
}

func TestTrendDecayingWhenNewerHalfWeaker(t *testing.T) {
	today := dates.Day("2025-06-12")

	// Three in the older half, one recent completion. Recent activity
	// alone does not rescue a weaker newer half.
	history := entriesOn(today, -11, -10, -9, 0)
	trend, _ := TrendFor(history, today)
	require.Equal(t, TrendDecaying, trend)
}

func TestTrendDecayingOnStagnation(t *testing.T) {
	today := dates.Day("2025-06-12")

	// Newer half matches the older half, but nothing in the last 3
	// days: stagnation wins.
	history := entriesOn(today, -11, -10, -5, -4)
	trend, _ := TrendFor(history, today)
	require.Equal(t, TrendDecaying, trend)
}

func TestTrendStableOnEmptyHistory(t *testing.T) {
	today := dates.Day("2025-06-12")
	trend, marks := TrendFor(nil, today)
	require.Equal(t, TrendStable, trend)
	for _, m := range marks {
		require.False(t, m)
	}
}

func TestHeatmapCellClassification(t *testing.T) {
	today := dates.Day("2025-06-12")
	window := dates.Window(today, 4)

	history := []storage.HabitLog{
		{HabitID: "h", Day: today.AddDays(-3), Status: storage.StatusCompleted},
		{HabitID: "h", Day: today.AddDays(-2), Status: storage.StatusFailed},
		// -1 has no entry.
		{HabitID: "h", Day: today, Status: storage.StatusCompleted},
		// Outside the window, must not leak in.
		{HabitID: "h", Day: today.AddDays(-30), Status: storage.StatusCompleted},
	}

	cells := HeatmapCells(history, window)
	require.Equal(t, []CellState{CellCompleted, CellFailed, CellEmpty, CellCompleted}, cells)
}

func TestDetailWindowNinetyDays(t *testing.T) {
	today := dates.Day("2025-06-12")
	window := DetailWindow(nil, today, false)
	require.Len(t, window, DetailLookbackDays)
	require.Equal(t, today, window[len(window)-1])
	require.Equal(t, today.AddDays(-(DetailLookbackDays-1)), window[0])
}

func TestDetailWindowFullHistoryExtendsToEarliestEntry(t *testing.T) {
	today := dates.Day("2025-06-12")

	// Without older entries the full window is the 365-day lookback.
	window := DetailWindow(nil, today, true)
	require.Equal(t, today.AddDays(-FullHistoryLookback), window[0])

	// An entry older than the lookback drags the start back to it.
	old := today.AddDays(-500)
	history := []storage.HabitLog{{HabitID: "h", Day: old, Status: storage.StatusCompleted}}
	window = DetailWindow(history, today, true)
	require.Equal(t, old, window[0])
	require.Equal(t, today, window[len(window)-1])
	require.Len(t, window, 501)
}

func TestEfficiencyRounds(t *testing.T) {
	today := dates.Day("2025-06-12")
	window := dates.Window(today, 3)

	// 1 of 3 -> 33.33 -> 33; 2 of 3 -> 66.67 -> 67.
	require.Equal(t, 33, Efficiency(entriesOn(today, 0), window))
	require.Equal(t, 67, Efficiency(entriesOn(today, -1, 0), window))
	require.Equal(t, 100, Efficiency(entriesOn(today, -2, -1, 0), window))
	require.Equal(t, 0, Efficiency(nil, window))
}

func TestEfficiencyIgnoresFailedEntries(t *testing.T) {
	today := dates.Day("2025-06-12")
	window := dates.Window(today, 2)
	history := []storage.HabitLog{
		{HabitID: "h", Day: today, Status: storage.StatusFailed},
	}
	require.Equal(t, 0, Efficiency(history, window))
}

func TestEfficiencyEmptyWindow(t *testing.T) {
	require.Equal(t, 0, Efficiency(nil, nil))
}
