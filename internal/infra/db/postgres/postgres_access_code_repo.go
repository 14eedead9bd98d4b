package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"lucky-numbers-platform/internal/domain"
	"lucky-numbers-platform/internal/domain/model"
	"lucky-numbers-platform/internal/domain/ports/repository"
)

// Ensure implementation satisfies the interface.
var _ repository.AccessCodeRepository = (*accessCodeRepo)(nil)

type accessCodeRepo struct {
	pool *pgxpool.Pool
}

func NewAccessCodeRepo(pool *pgxpool.Pool) repository.AccessCodeRepository {
	return &accessCodeRepo{pool: pool}
}

// Save inserts a new access code. The unique index on code surfaces collisions
// of the 8-character generator as domain.ErrAlreadyExists-style conflicts so
// the issuance flow can retry with a fresh code.
func (r *accessCodeRepo) Save(ctx context.Context, tx repository.Tx, code *model.AccessCode) error {
	if code.ID == "" {
		code.ID = uuid.NewString()
	}

	const q = `
INSERT INTO access_codes (id, code, is_used, used_at, created_at)
VALUES ($1, $2, $3, $4, $5);
`
	_, err := execSQL(ctx, r.pool, tx, q, code.ID, code.Code, code.IsUsed, code.UsedAt, code.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return domain.ErrInvalidArgument
		}
		return err
	}
	return nil
}

// FindByCode looks up a code by its code string, redeemed or not. The caller
// distinguishes "unknown" from "already used" by inspecting IsUsed.
func (r *accessCodeRepo) FindByCode(ctx context.Context, tx repository.Tx, code string) (*model.AccessCode, error) {
	const q = `
SELECT id, code, is_used, used_at, created_at
  FROM access_codes
 WHERE code = $1;
`
	row, err := pickRow(ctx, r.pool, tx, q, code)
	if err != nil {
		return nil, err
	}

	var ac model.AccessCode
	err = row.Scan(&ac.ID, &ac.Code, &ac.IsUsed, &ac.UsedAt, &ac.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCodeNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	return &ac, nil
}

// MarkUsed performs the one-time-use transition as a single conditional write.
// The WHERE is_used = FALSE clause makes check and flip atomic: concurrent
// redemptions of the same code cannot both see a row affected.
func (r *accessCodeRepo) MarkUsed(ctx context.Context, tx repository.Tx, id string) error {
	const q = `
UPDATE access_codes
   SET is_used = TRUE, used_at = NOW()
 WHERE id = $1 AND is_used = FALSE;
`
	tag, err := execSQL(ctx, r.pool, tx, q, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		// Either the id does not exist or someone got here first.
		const check = `SELECT 1 FROM access_codes WHERE id = $1;`
		row, err := pickRow(ctx, r.pool, tx, check, id)
		if err != nil {
			return err
		}
		var one int
		if err := row.Scan(&one); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrCodeNotFound
			}
			return domain.ErrReadDatabaseRow
		}
		return domain.ErrCodeAlreadyUsed
	}
	return nil
}

func (r *accessCodeRepo) CountIssued(ctx context.Context, tx repository.Tx) (int, error) {
	return r.count(ctx, tx, `SELECT COUNT(*) FROM access_codes;`)
}

func (r *accessCodeRepo) CountRedeemed(ctx context.Context, tx repository.Tx) (int, error) {
	return r.count(ctx, tx, `SELECT COUNT(*) FROM access_codes WHERE is_used = TRUE;`)
}

func (r *accessCodeRepo) count(ctx context.Context, tx repository.Tx, q string) (int, error) {
	row, err := pickRow(ctx, r.pool, tx, q)
	if err != nil {
		return 0, err
	}
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, domain.ErrReadDatabaseRow
	}
	return n, nil
}
