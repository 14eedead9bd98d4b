package usecase

import (
	"context"

	"github.com/rs/zerolog"

	"lucky-numbers-platform/internal/domain/ports/repository"
	"lucky-numbers-platform/internal/infra/logging"
)

var _ StatsUseCase = (*statsUC)(nil)

// StatsUseCase aggregates counters for the admin panel.
type StatsUseCase interface {
	Totals(ctx context.Context) (customers, issued, redeemed int, err error)
}

type statsUC struct {
	customers repository.CustomerRepository
	codes     repository.AccessCodeRepository
	log       *zerolog.Logger
}

func NewStatsUseCase(customers repository.CustomerRepository, codes repository.AccessCodeRepository, logger *zerolog.Logger) *statsUC {
	return &statsUC{customers: customers, codes: codes, log: logger}
}

func (u *statsUC) Totals(ctx context.Context) (int, int, int, error) {
	defer logging.TraceDuration(u.log, "StatsUC.Totals")()

	customers, err := u.customers.Count(ctx, repository.NoTX)
	if err != nil {
		return 0, 0, 0, err
	}
	issued, err := u.codes.CountIssued(ctx, repository.NoTX)
	if err != nil {
		return 0, 0, 0, err
	}
	redeemed, err := u.codes.CountRedeemed(ctx, repository.NoTX)
	if err != nil {
		return 0, 0, 0, err
	}
	return customers, issued, redeemed, nil
}
