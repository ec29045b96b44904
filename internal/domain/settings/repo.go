package settings

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

func (r *Repo) List(ctx context.Context) ([]Setting, error) {
	rows, err := r.pool.Query(ctx, `SELECT name, value FROM settings ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Setting
	for rows.Next() {
		var s Setting
		if err := rows.Scan(&s.Name, &s.Value); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *Repo) Get(ctx context.Context, name string) (*Setting, error) {
	row := r.pool.QueryRow(ctx, `SELECT name, value FROM settings WHERE name=$1`, name)
	var s Setting
	if err := row.Scan(&s.Name, &s.Value); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// Upsert пишет пачку настроек одним заходом.
func (r *Repo) Upsert(ctx context.Context, items []Setting) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, s := range items {
		if _, err := tx.Exec(ctx, `
			INSERT INTO settings (name, value, updated_at)
			VALUES ($1,$2,now())
			ON CONFLICT (name) DO UPDATE SET value=$2, updated_at=now()
		`, s.Name, s.Value); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}
