package storage

import (
	"time"

	"habitexe/internal/dates"
)

// Status is the per-day state of a habit entry.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusCompleted Status = "COMPLETED"
	StatusFailed    Status = "FAILED"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusFailed:
		return true
	default:
		return false
	}
}

// LogKind classifies a system-log entry. Closed set; renderers switch
// over it exhaustively.
type LogKind string

const (
	LogInfo    LogKind = "INFO"
	LogSuccess LogKind = "SUCCESS"
	LogError   LogKind = "ERROR"
	LogAI      LogKind = "AI"
	LogAlert   LogKind = "ALERT"
)

func (k LogKind) IsValid() bool {
	switch k {
	case LogInfo, LogSuccess, LogError, LogAI, LogAlert:
		return true
	default:
		return false
	}
}

// Habit is a tracked directive. Streak is the cached count of
// consecutive completed days ending at the most recent logged day; it
// is maintained by the toggle path, not recomputed per read.
type Habit struct {
	ID        string
	Name      string
	Frequency int
	Streak    int
	CreatedAt time.Time
}

// HabitLog is one day's record for a habit. XPGained is recorded at log
// time so a reversal can deduct exactly what was granted.
type HabitLog struct {
	HabitID  string
	Day      dates.Day
	Status   Status
	XPGained *int
}

// Operator is the single session owner row: designation plus the XP
// ledger.
type Operator struct {
	Key  string
	Name string
	XP   int
}

// SystemLog is one diagnostic entry, capped at the most recent 50.
type SystemLog struct {
	ID        string
	Timestamp time.Time
	Kind      LogKind
	Message   string
}
