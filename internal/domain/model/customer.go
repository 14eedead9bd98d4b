package model

import (
	"strings"
	"time"

	"lucky-numbers-platform/internal/domain"
)

// Customer is a paying customer the operator issued an access code to.
// The relationship to AccessCode is 1-1 by reference; redemption itself only
// ever needs the code string, not the customer.
type Customer struct {
	ID           string
	Email        string
	AccessCodeID string
	CreatedAt    time.Time
}

// NewCustomer validates the operator-supplied email and builds the record.
// Validation is intentionally shallow (basic form constraints only).
func NewCustomer(id, email, accessCodeID string) (*Customer, error) {
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.ErrInvalidArgument
	}
	if accessCodeID == "" {
		return nil, domain.ErrInvalidArgument
	}
	return &Customer{
		ID:           id,
		Email:        email,
		AccessCodeID: accessCodeID,
		CreatedAt:    time.Now(),
	}, nil
}
