package sales

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

func (r *Repo) Create(ctx context.Context, s *Sale) (*Sale, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	row := tx.QueryRow(ctx, `
		INSERT INTO sales (date, amount, gender, is_first, description)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING id, created_at
	`, s.Date, s.Amount, string(s.Gender), s.IsFirst, s.Description)
	if err := row.Scan(&s.ID, &s.CreatedAt); err != nil {
		return nil, err
	}

	if err := insertChildren(ctx, tx, s); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *Repo) Update(ctx context.Context, s *Sale) (*Sale, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, `
		UPDATE sales SET date=$2, amount=$3, gender=$4, is_first=$5, description=$6
		WHERE id=$1
	`, s.ID, s.Date, s.Amount, string(s.Gender), s.IsFirst, s.Description)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, nil
	}

	// детей проще пересобрать, чем диффать
	if _, err := tx.Exec(ctx, `DELETE FROM sale_payments WHERE sale_id=$1`, s.ID); err != nil {
		return nil, err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM sale_services WHERE sale_id=$1`, s.ID); err != nil {
		return nil, err
	}
	if err := insertChildren(ctx, tx, s); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func insertChildren(ctx context.Context, tx pgx.Tx, s *Sale) error {
	for i, p := range s.Payments {
		if _, err := tx.Exec(ctx, `
			INSERT INTO sale_payments (sale_id, payment_type_id, name, amount, position)
			VALUES ($1,$2,$3,$4,$5)
		`, s.ID, p.TypeID, p.Name, p.Amount, i); err != nil {
			return err
		}
	}
	for _, svcID := range s.Services {
		if _, err := tx.Exec(ctx, `
			INSERT INTO sale_services (sale_id, service_type_id) VALUES ($1,$2)
		`, s.ID, svcID); err != nil {
			return err
		}
	}
	return nil
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*Sale, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, date, amount, gender, is_first, description, created_at
		FROM sales WHERE id=$1
	`, id)
	var s Sale
	if err := row.Scan(&s.ID, &s.Date, &s.Amount, &s.Gender, &s.IsFirst, &s.Description, &s.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if err := r.loadChildren(ctx, []*Sale{&s}); err != nil {
		return nil, err
	}
	return &s, nil
}

// ListByPeriod возвращает продажи с датой в [from, to) плюс записи
// без даты, созданные в том же окне.
func (r *Repo) ListByPeriod(ctx context.Context, from, to time.Time) ([]*Sale, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, date, amount, gender, is_first, description, created_at
		FROM sales
		WHERE (date >= $1 AND date < $2)
		   OR (date IS NULL AND created_at >= $1 AND created_at < $2)
		ORDER BY date NULLS LAST, id
	`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Sale
	for rows.Next() {
		var s Sale
		if err := rows.Scan(&s.ID, &s.Date, &s.Amount, &s.Gender, &s.IsFirst, &s.Description, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadChildren(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

// TotalByPeriod — сумма продаж за окно, записи без даты не считаются.
func (r *Repo) TotalByPeriod(ctx context.Context, from, to time.Time) (int64, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0) FROM sales
		WHERE date >= $1 AND date < $2
	`, from, to)
	var total int64
	if err := row.Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *Repo) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM sales WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *Repo) loadChildren(ctx context.Context, sales []*Sale) error {
	byID := make(map[int64]*Sale, len(sales))
	ids := make([]int64, 0, len(sales))
	for _, s := range sales {
		s.Payments = []Payment{}
		s.Services = []int64{}
		byID[s.ID] = s
		ids = append(ids, s.ID)
	}
	if len(ids) == 0 {
		return nil
	}

	rows, err := r.pool.Query(ctx, `
		SELECT sale_id, payment_type_id, name, amount, position
		FROM sale_payments WHERE sale_id = ANY($1)
		ORDER BY sale_id, position
	`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var saleID int64
		var p Payment
		if err := rows.Scan(&saleID, &p.TypeID, &p.Name, &p.Amount, &p.Position); err != nil {
			return err
		}
		if s := byID[saleID]; s != nil {
			s.Payments = append(s.Payments, p)
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	svcRows, err := r.pool.Query(ctx, `
		SELECT sale_id, service_type_id
		FROM sale_services WHERE sale_id = ANY($1)
		ORDER BY sale_id, service_type_id
	`, ids)
	if err != nil {
		return err
	}
	defer svcRows.Close()
	for svcRows.Next() {
		var saleID, svcID int64
		if err := svcRows.Scan(&saleID, &svcID); err != nil {
			return err
		}
		if s := byID[saleID]; s != nil {
			s.Services = append(s.Services, svcID)
		}
	}
	return svcRows.Err()
}
