package paymenttypes

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

func (r *Repo) Create(ctx context.Context, name string) (*PaymentType, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO payment_types (name) VALUES ($1)
		RETURNING id, name, created_at
	`, name)
	var pt PaymentType
	if err := row.Scan(&pt.ID, &pt.Name, &pt.CreatedAt); err != nil {
		return nil, err
	}
	return &pt, nil
}

func (r *Repo) List(ctx context.Context) ([]PaymentType, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, created_at FROM payment_types ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []PaymentType
	for rows.Next() {
		var pt PaymentType
		if err := rows.Scan(&pt.ID, &pt.Name, &pt.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, pt)
	}
	return out, rows.Err()
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*PaymentType, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, created_at FROM payment_types WHERE id=$1
	`, id)
	var pt PaymentType
	if err := row.Scan(&pt.ID, &pt.Name, &pt.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &pt, nil
}

func (r *Repo) UpdateName(ctx context.Context, id int64, name string) (*PaymentType, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE payment_types SET name=$2 WHERE id=$1
		RETURNING id, name, created_at
	`, id, name)
	var pt PaymentType
	if err := row.Scan(&pt.ID, &pt.Name, &pt.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &pt, nil
}

func (r *Repo) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM payment_types WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
