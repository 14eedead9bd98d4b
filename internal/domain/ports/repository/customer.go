package repository

import (
	"context"

	"lucky-numbers-platform/internal/domain/model"
)

// CustomerWithCode is the admin listing row: a customer joined with the access
// code that was issued alongside it.
type CustomerWithCode struct {
	Customer   model.Customer
	AccessCode model.AccessCode
}

// CustomerRepository is the port for managing customers.
type CustomerRepository interface {
	Save(ctx context.Context, tx Tx, c *model.Customer) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.Customer, error)
	// ListWithCodes returns customers paired with their codes, newest first.
	ListWithCodes(ctx context.Context, tx Tx, limit int) ([]CustomerWithCode, error)
	Count(ctx context.Context, tx Tx) (int, error)
}
