package storage

import (
	"context"
	"database/sql"
	"fmt"
)

func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS operator (
			key TEXT PRIMARY KEY,
			name TEXT NOT NULL DEFAULT 'operator',
			xp INTEGER NOT NULL DEFAULT 0
		);`,
		`CREATE TABLE IF NOT EXISTS habits (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			frequency INTEGER NOT NULL DEFAULT 1,
			streak INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		// One row per (habit, day). The primary key is the uniqueness
		// invariant: callers never have to dedupe.
		`CREATE TABLE IF NOT EXISTS habit_logs (
			habit_id TEXT NOT NULL,
			day TEXT NOT NULL,
			status TEXT NOT NULL,
			xp_gained INTEGER,
			PRIMARY KEY (habit_id, day),
			FOREIGN KEY (habit_id) REFERENCES habits(id) ON DELETE CASCADE
		);`,
		`CREATE TABLE IF NOT EXISTS system_logs (
			id TEXT PRIMARY KEY,
			seq INTEGER NOT NULL,
			ts DATETIME NOT NULL,
			kind TEXT NOT NULL,
			message TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_habit_logs_day ON habit_logs(day);`,
		`CREATE INDEX IF NOT EXISTS idx_system_logs_seq ON system_logs(seq);`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
