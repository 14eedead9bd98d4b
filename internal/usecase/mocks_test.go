//go:build !integration

package usecase_test

import (
	"context"
	"os"
	"sync"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"

	"lucky-numbers-platform/internal/domain"
	"lucky-numbers-platform/internal/domain/model"
	"lucky-numbers-platform/internal/domain/ports/repository"
)

func newTestLogger() *zerolog.Logger {
	l := zerolog.New(os.Stdout).Level(zerolog.Disabled)
	return &l
}

// mockAccessCodeRepo is an in-memory AccessCodeRepository. MarkUsed takes the
// mutex for the whole check-and-set, mirroring the atomicity of the conditional
// UPDATE in the real repository.
type mockAccessCodeRepo struct {
	mu    sync.Mutex
	byID  map[string]*model.AccessCode
	byKey map[string]string // code string -> id

	saveErr error
	findErr error
	markErr error
}

func newMockAccessCodeRepo() *mockAccessCodeRepo {
	return &mockAccessCodeRepo{
		byID:  make(map[string]*model.AccessCode),
		byKey: make(map[string]string),
	}
}

func (m *mockAccessCodeRepo) Save(_ context.Context, _ repository.Tx, code *model.AccessCode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	if _, exists := m.byKey[code.Code]; exists {
		return domain.ErrInvalidArgument
	}
	if code.ID == "" {
		code.ID = uuid.NewString()
	}
	cp := *code
	m.byID[code.ID] = &cp
	m.byKey[code.Code] = code.ID
	return nil
}

func (m *mockAccessCodeRepo) FindByCode(_ context.Context, _ repository.Tx, code string) (*model.AccessCode, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.findErr != nil {
		return nil, m.findErr
	}
	id, ok := m.byKey[code]
	if !ok {
		return nil, domain.ErrCodeNotFound
	}
	cp := *m.byID[id]
	return &cp, nil
}

func (m *mockAccessCodeRepo) MarkUsed(_ context.Context, _ repository.Tx, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.markErr != nil {
		return m.markErr
	}
	ac, ok := m.byID[id]
	if !ok {
		return domain.ErrCodeNotFound
	}
	if ac.IsUsed {
		return domain.ErrCodeAlreadyUsed
	}
	ac.IsUsed = true
	return nil
}

func (m *mockAccessCodeRepo) CountIssued(_ context.Context, _ repository.Tx) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byID), nil
}

func (m *mockAccessCodeRepo) CountRedeemed(_ context.Context, _ repository.Tx) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, ac := range m.byID {
		if ac.IsUsed {
			n++
		}
	}
	return n, nil
}

// seed inserts a code directly, bypassing Save's collision check.
func (m *mockAccessCodeRepo) seed(code string, used bool) *model.AccessCode {
	m.mu.Lock()
	defer m.mu.Unlock()
	ac := &model.AccessCode{ID: uuid.NewString(), Code: code, IsUsed: used}
	m.byID[ac.ID] = ac
	m.byKey[ac.Code] = ac.ID
	return ac
}

type mockCustomerRepo struct {
	mu      sync.Mutex
	byID    map[string]*model.Customer
	saveErr error
}

func newMockCustomerRepo() *mockCustomerRepo {
	return &mockCustomerRepo{byID: make(map[string]*model.Customer)}
}

func (m *mockCustomerRepo) Save(_ context.Context, _ repository.Tx, c *model.Customer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	cp := *c
	m.byID[c.ID] = &cp
	return nil
}

func (m *mockCustomerRepo) FindByID(_ context.Context, _ repository.Tx, id string) (*model.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *mockCustomerRepo) ListWithCodes(_ context.Context, _ repository.Tx, limit int) ([]repository.CustomerWithCode, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]repository.CustomerWithCode, 0, len(m.byID))
	for _, c := range m.byID {
		if len(out) == limit {
			break
		}
		out = append(out, repository.CustomerWithCode{Customer: *c})
	}
	return out, nil
}

func (m *mockCustomerRepo) Count(_ context.Context, _ repository.Tx) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byID), nil
}

// mockTxManager runs the callback without a real transaction. The mocks'
// in-memory state is not rolled back; tests that care about atomicity assert
// on the error path instead.
type mockTxManager struct{}

func (mockTxManager) WithTx(ctx context.Context, _ pgx.TxOptions, fn func(ctx context.Context, tx repository.Tx) error) error {
	return fn(ctx, repository.NoTX)
}

// mockSource returns a canned generation result and records every call.
type mockSource struct {
	mu     sync.Mutex
	calls  int
	combos []model.Combination
	err    error
}

func (m *mockSource) Name() string { return "mock" }

func (m *mockSource) Generate(_ context.Context, spec model.DrawSpec) ([]model.Combination, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	if m.combos != nil {
		return m.combos, nil
	}
	out := make([]model.Combination, spec.Combinations)
	for i := range out {
		combo := make(model.Combination, spec.NumbersPerCombination)
		for j := range combo {
			combo[j] = j + 1
		}
		out[i] = combo
	}
	return out, nil
}

func (m *mockSource) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
