package engine

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"habitexe/internal/storage"
)

// Snapshot is the serialized database shape for export/import.
type Snapshot struct {
	Stats        UserStats       `json:"stats"`
	Habits       []SnapshotHabit `json:"habits"`
	OperatorName string          `json:"operatorName"`
	Logs         []SnapshotLog   `json:"logs"`
	ExportedAt   string          `json:"exportedAt"`
}

type SnapshotHabit struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Frequency int             `json:"frequency"`
	History   []SnapshotEntry `json:"history"`
	Streak    int             `json:"streak"`
}

type SnapshotEntry struct {
	Date     string `json:"date"`
	Status   string `json:"status"`
	XPGained *int   `json:"xpGained,omitempty"`
}

type SnapshotLog struct {
	ID        string `json:"id"`
	Timestamp string `json:"timestamp"`
	Message   string `json:"message"`
	Type      string `json:"type"`
}

// Export captures the full session state.
func (s *Service) Export(ctx context.Context) (*Snapshot, error) {
	op, err := s.operator.GetOrCreateMain(ctx)
	if err != nil {
		return nil, err
	}
	views, err := s.ListHabits(ctx)
	if err != nil {
		return nil, err
	}
	logs, err := s.syslog.List(ctx)
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{
		Stats:        statsFor(op.XP),
		Habits:       make([]SnapshotHabit, 0, len(views)),
		OperatorName: op.Name,
		Logs:         make([]SnapshotLog, 0, len(logs)),
		ExportedAt:   s.now().UTC().Format(time.RFC3339),
	}
	for _, v := range views {
		sh := SnapshotHabit{
			ID:        v.ID,
			Name:      v.Name,
			Frequency: v.Frequency,
			History:   make([]SnapshotEntry, 0, len(v.History)),
			Streak:    v.Streak,
		}
		for _, l := range v.History {
			sh.History = append(sh.History, SnapshotEntry{
				Date:     string(l.Day),
				Status:   string(l.Status),
				XPGained: l.XPGained,
			})
		}
		snap.Habits = append(snap.Habits, sh)
	}
	for _, l := range logs {
		snap.Logs = append(snap.Logs, SnapshotLog{
			ID:        l.ID,
			Timestamp: l.Timestamp.UTC().Format(time.RFC3339),
			Message:   l.Message,
			Type:      string(l.Kind),
		})
	}

	s.appendLog(ctx, storage.LogSuccess, "database exported successfully.")
	return snap, nil
}

// importPayload detects field presence; absent fields leave the
// corresponding state untouched.
type importPayload struct {
	Stats *struct {
		XP *int `json:"xp"`
	} `json:"stats"`
	Habits       []SnapshotHabit `json:"habits"`
	OperatorName string          `json:"operatorName"`
}

func (p importPayload) xp() *int {
	if p.Stats == nil {
		return nil
	}
	return p.Stats.XP
}

// Import replaces state wholesale from a serialized snapshot. A parse
// failure aborts the whole operation and leaves everything untouched.
// Present fields replace their counterpart with no per-entry schema
// validation; malformed inner records are carried as-is.
func (s *Service) Import(ctx context.Context, data []byte) error {
	var payload importPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		s.appendLog(ctx, storage.LogError, "err: corrupt_data_file // import_aborted")
		return nil
	}

	if payload.Habits != nil {
		if err := s.replaceHabits(ctx, payload.Habits); err != nil {
			return err
		}
	}

	if payload.xp() != nil || payload.OperatorName != "" {
		op, err := s.operator.GetOrCreateMain(ctx)
		if err != nil {
			return err
		}
		if v := payload.xp(); v != nil {
			xp := *v
			if xp < 0 {
				xp = 0
			}
			op.XP = xp
		}
		if payload.OperatorName != "" {
			op.Name = payload.OperatorName
		}
		if err := s.operator.Update(ctx, op); err != nil {
			return err
		}
	}

	s.appendLog(ctx, storage.LogSuccess, "database import complete. system rebooted.")
	return nil
}

// replaceHabits swaps the entire habit collection in one transaction so
// a mid-way failure cannot leave a half-replaced collection.
func (s *Service) replaceHabits(ctx context.Context, habits []SnapshotHabit) error {
	return storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM habit_logs`); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM habits`); err != nil {
			return err
		}
		for _, h := range habits {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO habits (id, name, frequency, streak)
				VALUES (?, ?, ?, ?)
			`, h.ID, h.Name, h.Frequency, h.Streak); err != nil {
				return err
			}
			for _, e := range h.History {
				if _, err := tx.ExecContext(ctx, `
					INSERT OR REPLACE INTO habit_logs (habit_id, day, status, xp_gained)
					VALUES (?, ?, ?, ?)
				`, h.ID, e.Date, e.Status, e.XPGained); err != nil {
					return err
				}
			}
		}
		return nil
	})
}
