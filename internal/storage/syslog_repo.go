package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// SystemLogCap is the retained diagnostic history; older entries are
// evicted on append.
const SystemLogCap = 50

type SystemLogRepo struct {
	db *sql.DB
}

func NewSystemLogRepo(db *sql.DB) *SystemLogRepo {
	return &SystemLogRepo{db: db}
}

// Append inserts one entry and trims the table to the cap. The seq
// column orders entries appended within the same wall-clock second.
func (r *SystemLogRepo) Append(ctx context.Context, l *SystemLog) error {
	var next int64
	if err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(seq), 0) + 1 FROM system_logs`).Scan(&next); err != nil {
		return fmt.Errorf("system log seq: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, `
		INSERT INTO system_logs (id, seq, ts, kind, message)
		VALUES (?, ?, ?, ?, ?)
	`, l.ID, next, l.Timestamp.UTC().Format(time.RFC3339), string(l.Kind), l.Message); err != nil {
		return fmt.Errorf("system log insert: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, `
		DELETE FROM system_logs
		WHERE seq <= ? - ?
	`, next, SystemLogCap); err != nil {
		return fmt.Errorf("system log trim: %w", err)
	}
	return nil
}

// List returns retained entries oldest-first.
func (r *SystemLogRepo) List(ctx context.Context) ([]SystemLog, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, ts, kind, message
		FROM system_logs
		ORDER BY seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("system log list: %w", err)
	}
	defer rows.Close()

	var out []SystemLog
	for rows.Next() {
		var l SystemLog
		var ts, kind string
		if err := rows.Scan(&l.ID, &ts, &kind, &l.Message); err != nil {
			return nil, fmt.Errorf("system log scan: %w", err)
		}
		if t, perr := time.Parse(time.RFC3339, ts); perr == nil {
			l.Timestamp = t
		}
		l.Kind = LogKind(kind)
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("system log rows: %w", err)
	}
	return out, nil
}
