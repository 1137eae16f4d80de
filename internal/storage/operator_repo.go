package storage

import (
	"context"
	"database/sql"
	"fmt"
)

const MainOperatorKey = "main"

// DefaultOperatorName matches the boot default before the user renames
// themselves.
const DefaultOperatorName = "operator"

type OperatorRepo struct {
	db *sql.DB
}

func NewOperatorRepo(db *sql.DB) *OperatorRepo {
	return &OperatorRepo{db: db}
}

func (r *OperatorRepo) Get(ctx context.Context, key string) (*Operator, error) {
	row := r.db.QueryRowContext(ctx, `SELECT key, name, xp FROM operator WHERE key = ?`, key)

	var o Operator
	if err := row.Scan(&o.Key, &o.Name, &o.XP); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("operator get: %w", err)
	}
	return &o, nil
}

func (r *OperatorRepo) GetOrCreateMain(ctx context.Context) (*Operator, error) {
	o, err := r.Get(ctx, MainOperatorKey)
	if err != nil {
		return nil, err
	}
	if o != nil {
		return o, nil
	}

	if _, err := r.db.ExecContext(ctx, `INSERT INTO operator (key, name) VALUES (?, ?)`,
		MainOperatorKey, DefaultOperatorName); err != nil {
		return nil, fmt.Errorf("operator insert: %w", err)
	}
	return r.Get(ctx, MainOperatorKey)
}

func (r *OperatorRepo) Update(ctx context.Context, o *Operator) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE operator SET name = ?, xp = ? WHERE key = ?
	`, o.Name, o.XP, o.Key)
	if err != nil {
		return fmt.Errorf("operator update: %w", err)
	}
	return nil
}
