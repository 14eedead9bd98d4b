//go:build !integration

package web_test

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"

	"lucky-numbers-platform/internal/domain/model"
	"lucky-numbers-platform/internal/domain/ports/repository"
)

func newTestLogger() *zerolog.Logger {
	l := zerolog.New(os.Stdout).Level(zerolog.Disabled)
	return &l
}

type mockIssuanceUC struct {
	issueErr error
	listErr  error
	rows     []repository.CustomerWithCode
}

func (m *mockIssuanceUC) Issue(_ context.Context, email string) (*model.Customer, *model.AccessCode, error) {
	if m.issueErr != nil {
		return nil, nil, m.issueErr
	}
	code := &model.AccessCode{ID: "code-1", Code: "ABCD1234", CreatedAt: time.Now()}
	customer := &model.Customer{ID: "cust-1", Email: email, AccessCodeID: code.ID, CreatedAt: time.Now()}
	return customer, code, nil
}

func (m *mockIssuanceUC) ListCustomers(context.Context, int) ([]repository.CustomerWithCode, error) {
	return m.rows, m.listErr
}

type mockStatsUC struct {
	customers, issued, redeemed int
	err                         error
}

func (m *mockStatsUC) Totals(context.Context) (int, int, int, error) {
	return m.customers, m.issued, m.redeemed, m.err
}
