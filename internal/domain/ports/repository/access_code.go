package repository

import (
	"context"

	"lucky-numbers-platform/internal/domain/model"
)

// AccessCodeRepository is the port for managing access codes.
type AccessCodeRepository interface {
	// Save creates a new access code.
	Save(ctx context.Context, tx Tx, code *model.AccessCode) error
	// FindByCode looks up a code by its normalized code string, used or not.
	FindByCode(ctx context.Context, tx Tx, code string) (*model.AccessCode, error)
	// MarkUsed flips is_used false -> true in a single conditional write.
	// Exactly one concurrent caller can succeed; the rest observe
	// domain.ErrCodeAlreadyUsed. A missing id yields domain.ErrCodeNotFound.
	MarkUsed(ctx context.Context, tx Tx, id string) error
	// CountIssued and CountRedeemed back the admin stats view.
	CountIssued(ctx context.Context, tx Tx) (int, error)
	CountRedeemed(ctx context.Context, tx Tx) (int, error)
}
