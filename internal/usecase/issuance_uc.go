package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"

	"lucky-numbers-platform/internal/domain"
	"lucky-numbers-platform/internal/domain/model"
	"lucky-numbers-platform/internal/domain/ports/repository"
	"lucky-numbers-platform/internal/infra/logging"
	"lucky-numbers-platform/internal/infra/metrics"
)

var _ IssuanceUseCase = (*issuanceUC)(nil)

// IssuanceUseCase creates customer records with their paired access codes and
// backs the admin customer listing.
type IssuanceUseCase interface {
	// Issue creates one Customer and one unused AccessCode in a single
	// transaction and returns both. The code string is relayed to the
	// customer out-of-band by the operator.
	Issue(ctx context.Context, email string) (*model.Customer, *model.AccessCode, error)
	ListCustomers(ctx context.Context, limit int) ([]repository.CustomerWithCode, error)
}

type issuanceUC struct {
	customers repository.CustomerRepository
	codes     repository.AccessCodeRepository
	tm        repository.TransactionManager
	log       *zerolog.Logger
}

func NewIssuanceUseCase(
	customers repository.CustomerRepository,
	codes repository.AccessCodeRepository,
	tm repository.TransactionManager,
	logger *zerolog.Logger,
) *issuanceUC {
	return &issuanceUC{customers: customers, codes: codes, tm: tm, log: logger}
}

func (u *issuanceUC) Issue(ctx context.Context, email string) (*model.Customer, *model.AccessCode, error) {
	defer logging.TraceDuration(u.log, "IssuanceUC.Issue")()

	var (
		customer *model.Customer
		code     *model.AccessCode
	)
	// Both records are created together or not at all.
	err := u.tm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		ac, err := u.newCode(ctx, tx)
		if err != nil {
			return err
		}
		c, err := model.NewCustomer("", email, ac.ID)
		if err != nil {
			return err
		}
		if err := u.customers.Save(ctx, tx, c); err != nil {
			return err
		}
		customer, code = c, ac
		return nil
	})
	if err != nil {
		u.log.Error().Err(err).Str("email", logging.Redact(email, false)).Msg("issuance failed")
		return nil, nil, err
	}

	metrics.IncCodeIssued()
	u.log.Info().Str("customer_id", customer.ID).Str("code_id", code.ID).Msg("access code issued")
	return customer, code, nil
}

// newCode saves a freshly generated code, retrying once if the 8-character
// space happens to collide with an existing row.
func (u *issuanceUC) newCode(ctx context.Context, tx repository.Tx) (*model.AccessCode, error) {
	for attempt := 0; attempt < 2; attempt++ {
		value, err := generateAccessCode()
		if err != nil {
			return nil, err
		}
		ac := &model.AccessCode{
			Code:      value,
			IsUsed:    false,
			CreatedAt: time.Now(),
		}
		err = u.codes.Save(ctx, tx, ac)
		if err == nil {
			return ac, nil
		}
		if !errors.Is(err, domain.ErrInvalidArgument) {
			return nil, err
		}
	}
	return nil, domain.ErrUnavailable
}

func (u *issuanceUC) ListCustomers(ctx context.Context, limit int) ([]repository.CustomerWithCode, error) {
	defer logging.TraceDuration(u.log, "IssuanceUC.ListCustomers")()
	return u.customers.ListWithCodes(ctx, repository.NoTX, limit)
}
