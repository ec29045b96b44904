package servicetypes

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

func (r *Repo) Create(ctx context.Context, name string) (*ServiceType, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO service_types (name) VALUES ($1)
		RETURNING id, name, created_at
	`, name)
	var st ServiceType
	if err := row.Scan(&st.ID, &st.Name, &st.CreatedAt); err != nil {
		return nil, err
	}
	return &st, nil
}

func (r *Repo) List(ctx context.Context) ([]ServiceType, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, created_at FROM service_types ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []ServiceType
	for rows.Next() {
		var st ServiceType
		if err := rows.Scan(&st.ID, &st.Name, &st.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*ServiceType, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, created_at FROM service_types WHERE id=$1
	`, id)
	var st ServiceType
	if err := row.Scan(&st.ID, &st.Name, &st.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &st, nil
}

func (r *Repo) UpdateName(ctx context.Context, id int64, name string) (*ServiceType, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE service_types SET name=$2 WHERE id=$1
		RETURNING id, name, created_at
	`, id, name)
	var st ServiceType
	if err := row.Scan(&st.ID, &st.Name, &st.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &st, nil
}

func (r *Repo) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM service_types WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
