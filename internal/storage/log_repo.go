package storage

import (
	"context"
	"database/sql"
	"fmt"

	"habitexe/internal/dates"
)

type LogRepo struct {
	db *sql.DB
}

func NewLogRepo(db *sql.DB) *LogRepo {
	return &LogRepo{db: db}
}

// Insert writes the entry for (habit, day), replacing any existing row.
// The (habit_id, day) primary key keeps one entry per day regardless of
// the previous status.
func (r *LogRepo) Insert(ctx context.Context, l *HabitLog) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO habit_logs (habit_id, day, status, xp_gained)
		VALUES (?, ?, ?, ?)
	`, l.HabitID, string(l.Day), string(l.Status), l.XPGained)
	if err != nil {
		return fmt.Errorf("habit log insert: %w", err)
	}
	return nil
}

func (r *LogRepo) Get(ctx context.Context, habitID string, day dates.Day) (*HabitLog, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT habit_id, day, status, xp_gained
		FROM habit_logs
		WHERE habit_id = ? AND day = ?
	`, habitID, string(day))

	var l HabitLog
	var d, status string
	if err := row.Scan(&l.HabitID, &d, &status, &l.XPGained); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("habit log get: %w", err)
	}
	l.Day = dates.Day(d)
	l.Status = Status(status)
	return &l, nil
}

func (r *LogRepo) ListByHabit(ctx context.Context, habitID string) ([]HabitLog, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT habit_id, day, status, xp_gained
		FROM habit_logs
		WHERE habit_id = ?
		ORDER BY day ASC
	`, habitID)
	if err != nil {
		return nil, fmt.Errorf("habit log list: %w", err)
	}
	defer rows.Close()

	var out []HabitLog
	for rows.Next() {
		var l HabitLog
		var d, status string
		if err := rows.Scan(&l.HabitID, &d, &status, &l.XPGained); err != nil {
			return nil, fmt.Errorf("habit log scan: %w", err)
		}
		l.Day = dates.Day(d)
		l.Status = Status(status)
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("habit log rows: %w", err)
	}
	return out, nil
}

func (r *LogRepo) Delete(ctx context.Context, habitID string, day dates.Day) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM habit_logs WHERE habit_id = ? AND day = ?
	`, habitID, string(day))
	if err != nil {
		return fmt.Errorf("habit log delete: %w", err)
	}
	return nil
}
