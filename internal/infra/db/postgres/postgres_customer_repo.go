package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"lucky-numbers-platform/internal/domain"
	"lucky-numbers-platform/internal/domain/model"
	"lucky-numbers-platform/internal/domain/ports/repository"
)

var _ repository.CustomerRepository = (*customerRepo)(nil)

type customerRepo struct {
	pool *pgxpool.Pool
}

func NewCustomerRepo(pool *pgxpool.Pool) repository.CustomerRepository {
	return &customerRepo{pool: pool}
}

func (r *customerRepo) Save(ctx context.Context, tx repository.Tx, c *model.Customer) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}

	const q = `
INSERT INTO customers (id, email, access_code_id, created_at)
VALUES ($1, $2, $3, $4);
`
	_, err := execSQL(ctx, r.pool, tx, q, c.ID, c.Email, c.AccessCodeID, c.CreatedAt)
	return err
}

func (r *customerRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Customer, error) {
	const q = `
SELECT id, email, access_code_id, created_at
  FROM customers
 WHERE id = $1;
`
	row, err := pickRow(ctx, r.pool, tx, q, id)
	if err != nil {
		return nil, err
	}

	var c model.Customer
	if err := row.Scan(&c.ID, &c.Email, &c.AccessCodeID, &c.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	return &c, nil
}

// ListWithCodes joins customers with their issued codes, newest customer first.
func (r *customerRepo) ListWithCodes(ctx context.Context, tx repository.Tx, limit int) ([]repository.CustomerWithCode, error) {
	if limit <= 0 {
		limit = 100
	}

	const q = `
SELECT c.id, c.email, c.access_code_id, c.created_at,
       a.id, a.code, a.is_used, a.used_at, a.created_at
  FROM customers c
  JOIN access_codes a ON a.id = c.access_code_id
 ORDER BY c.created_at DESC
 LIMIT $1;
`
	rows, err := pickRows(ctx, r.pool, tx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []repository.CustomerWithCode
	for rows.Next() {
		var cw repository.CustomerWithCode
		err := rows.Scan(
			&cw.Customer.ID, &cw.Customer.Email, &cw.Customer.AccessCodeID, &cw.Customer.CreatedAt,
			&cw.AccessCode.ID, &cw.AccessCode.Code, &cw.AccessCode.IsUsed, &cw.AccessCode.UsedAt, &cw.AccessCode.CreatedAt,
		)
		if err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
		out = append(out, cw)
	}
	return out, rows.Err()
}

func (r *customerRepo) Count(ctx context.Context, tx repository.Tx) (int, error) {
	row, err := pickRow(ctx, r.pool, tx, `SELECT COUNT(*) FROM customers;`)
	if err != nil {
		return 0, err
	}
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, domain.ErrReadDatabaseRow
	}
	return n, nil
}
