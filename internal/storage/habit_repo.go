package storage

import (
	"context"
	"database/sql"
	"fmt"
)

type HabitRepo struct {
	db *sql.DB
}

func NewHabitRepo(db *sql.DB) *HabitRepo {
	return &HabitRepo{db: db}
}

func (r *HabitRepo) Insert(ctx context.Context, h *Habit) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO habits (id, name, frequency, streak)
		VALUES (?, ?, ?, ?)
	`, h.ID, h.Name, h.Frequency, h.Streak)
	if err != nil {
		return fmt.Errorf("habit insert: %w", err)
	}
	return nil
}

func (r *HabitRepo) Get(ctx context.Context, id string) (*Habit, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, frequency, streak, created_at
		FROM habits WHERE id = ?
	`, id)
	return scanHabit(row)
}

// GetByName resolves a habit by its normalized name. Names are not
// unique by schema; the earliest-created match wins.
func (r *HabitRepo) GetByName(ctx context.Context, name string) (*Habit, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, frequency, streak, created_at
		FROM habits WHERE name = ?
		ORDER BY created_at ASC
		LIMIT 1
	`, name)
	return scanHabit(row)
}

func scanHabit(row *sql.Row) (*Habit, error) {
	var h Habit
	if err := row.Scan(&h.ID, &h.Name, &h.Frequency, &h.Streak, &h.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("habit get: %w", err)
	}
	return &h, nil
}

func (r *HabitRepo) ListAll(ctx context.Context) ([]Habit, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, frequency, streak, created_at
		FROM habits
		ORDER BY created_at ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("habit list: %w", err)
	}
	defer rows.Close()

	var out []Habit
	for rows.Next() {
		var h Habit
		if err := rows.Scan(&h.ID, &h.Name, &h.Frequency, &h.Streak, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("habit scan: %w", err)
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("habit rows: %w", err)
	}
	return out, nil
}

func (r *HabitRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM habits`).Scan(&n); err != nil {
		return 0, fmt.Errorf("habit count: %w", err)
	}
	return n, nil
}

func (r *HabitRepo) Update(ctx context.Context, h *Habit) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE habits
		SET name = ?, frequency = ?, streak = ?
		WHERE id = ?
	`, h.Name, h.Frequency, h.Streak, h.ID)
	if err != nil {
		return fmt.Errorf("habit update: %w", err)
	}
	return nil
}

// Delete removes the habit; its log rows cascade.
func (r *HabitRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM habits WHERE id = ?`, id); err != nil {
		return fmt.Errorf("habit delete: %w", err)
	}
	return nil
}

// DeleteAll clears the habit collection.
func (r *HabitRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM habits`); err != nil {
		return fmt.Errorf("habit delete all: %w", err)
	}
	return nil
}
