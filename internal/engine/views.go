package engine

import (
	"math"

	"habitexe/internal/dates"
	"habitexe/internal/storage"
)

// Window sizes for the derived views.
const (
	TrendWindowDays     = 12
	HeatmapCompactDays  = 14
	DetailLookbackDays  = 90
	FullHistoryLookback = 365
	stagnationDays      = 3
)

// CellState classifies one heatmap day.
type CellState int

const (
	CellEmpty CellState = iota
	CellCompleted
	CellFailed
)

// Trend is the advisory signal over the trailing trend window. It never
// feeds back into XP or streak.
type Trend int

const (
	TrendStable Trend = iota
	TrendDecaying
)

func completedSet(history []storage.HabitLog) map[dates.Day]bool {
	m := make(map[dates.Day]bool, len(history))
	for _, l := range history {
		if l.Status == storage.StatusCompleted {
			m[l.Day] = true
		}
	}
	return m
}

// HeatmapCells classifies each day of the window. Pure mapping: no
// mutation, entries outside the window ignored.
func HeatmapCells(history []storage.HabitLog, window []dates.Day) []CellState {
	byDay := make(map[dates.Day]storage.Status, len(history))
	for _, l := range history {
		byDay[l.Day] = l.Status
	}

	cells := make([]CellState, len(window))
	for i, d := range window {
		switch byDay[d] {
		case storage.StatusCompleted:
			cells[i] = CellCompleted
		case storage.StatusFailed:
			cells[i] = CellFailed
		default:
			cells[i] = CellEmpty
		}
	}
	return cells
}

// TrendFor computes the signal over the trailing 12 days ending today.
// The window splits at floor(n/2); with an odd length the extra day
// falls into the newer half. Decaying when the newer half completed
// strictly less than the older half, or when the last 3 days are empty
// while the older half had activity.
func TrendFor(history []storage.HabitLog, today dates.Day) (Trend, []bool) {
	window := dates.Window(today, TrendWindowDays)
	done := completedSet(history)

	marks := make([]bool, len(window))
	for i, d := range window {
		marks[i] = done[d]
	}

	mid := len(window) / 2
	older, newer := 0, 0
	for i := range marks {
		if !marks[i] {
			continue
		}
		if i < mid {
			older++
		} else {
			newer++
		}
	}

	recent := false
	for i := len(marks) - stagnationDays; i < len(marks); i++ {
		if i >= 0 && marks[i] {
			recent = true
		}
	}

	if newer < older || (!recent && older > 0) {
		return TrendDecaying, marks
	}
	return TrendStable, marks
}

// DetailWindow is the day range for the detail view: a 90-day trailing
// window, or in full-history mode a 365-day window extended back to the
// earliest logged entry when that is older.
func DetailWindow(history []storage.HabitLog, today dates.Day, fullHistory bool) []dates.Day {
	lookback := DetailLookbackDays - 1
	if fullHistory {
		lookback = FullHistoryLookback
	}
	start := today.AddDays(-lookback)

	if fullHistory {
		for _, l := range history {
			if l.Day.Before(start) {
				start = l.Day
			}
		}
	}
	return dates.Enumerate(start, today)
}

// Efficiency is the completed share of the window as a rounded
// percentage.
func Efficiency(history []storage.HabitLog, window []dates.Day) int {
	if len(window) == 0 {
		return 0
	}
	done := completedSet(history)
	completed := 0
	for _, d := range window {
		if done[d] {
			completed++
		}
	}
	return int(math.Round(float64(completed) / float64(len(window)) * 100))
}
