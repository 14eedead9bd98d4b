package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"lucky-numbers-platform/internal/domain"
	"lucky-numbers-platform/internal/domain/model"
	"lucky-numbers-platform/internal/domain/ports/adapter"
	"lucky-numbers-platform/internal/domain/ports/repository"
	"lucky-numbers-platform/internal/infra/logging"
	"lucky-numbers-platform/internal/infra/metrics"
)

// Compile-time check
var _ RedemptionUseCase = (*redemptionUC)(nil)

// RedemptionUseCase drives the code-redemption flow: verify a code, generate
// a set of combinations, and consume the code exactly once.
type RedemptionUseCase interface {
	// Verify reports whether the code exists and is still redeemable. It does
	// not consume the code; the UI uses it for the "code accepted" step.
	Verify(ctx context.Context, code string) (*model.AccessCode, error)
	// Redeem runs the full flow and consumes the code on success.
	Redeem(ctx context.Context, code string, numbersPerCombination, combinations int) ([]model.Combination, error)
}

type redemptionUC struct {
	codes  repository.AccessCodeRepository
	source adapter.NumberSource
	log    *zerolog.Logger
}

func NewRedemptionUseCase(codes repository.AccessCodeRepository, source adapter.NumberSource, logger *zerolog.Logger) *redemptionUC {
	return &redemptionUC{codes: codes, source: source, log: logger}
}

func (u *redemptionUC) Verify(ctx context.Context, code string) (*model.AccessCode, error) {
	defer logging.TraceDuration(u.log, "RedemptionUC.Verify")()

	ac, err := u.codes.FindByCode(ctx, repository.NoTX, model.NormalizeCode(code))
	if err != nil {
		return nil, err
	}
	if ac.IsUsed {
		return nil, domain.ErrCodeAlreadyUsed
	}
	return ac, nil
}

// Redeem verifies, generates, then finalizes. The one-time-use mark is a single
// conditional write (MarkUsed), so two concurrent redemptions of the same code
// cannot both succeed: whoever loses the write sees ErrCodeAlreadyUsed even if
// both passed verification. Any failure before MarkUsed leaves the code
// redeemable; the generated numbers are never persisted.
func (u *redemptionUC) Redeem(ctx context.Context, code string, numbersPerCombination, combinations int) ([]model.Combination, error) {
	defer logging.TraceDuration(u.log, "RedemptionUC.Redeem")()

	spec, err := model.NewDrawSpec(numbersPerCombination, combinations)
	if err != nil {
		metrics.IncRedemption("invalid_input")
		return nil, err
	}

	ac, err := u.Verify(ctx, code)
	if err != nil {
		u.observeFailure(err)
		return nil, err
	}
	ctx = logging.WithCodeID(ctx, ac.ID)
	log := logging.With(ctx, u.log)

	combos, err := u.source.Generate(ctx, spec)
	if err != nil {
		log.Error().Err(err).Str("source", u.source.Name()).Msg("generation failed")
		metrics.IncRedemption("error")
		return nil, err
	}
	// External sources are untrusted; re-check the invariants no matter who
	// produced the numbers.
	if err := model.ValidateCombinations(combos, spec); err != nil {
		metrics.IncRedemption("error")
		return nil, err
	}

	if err := u.codes.MarkUsed(ctx, repository.NoTX, ac.ID); err != nil {
		u.observeFailure(err)
		log.Warn().Err(err).Msg("finalization lost")
		return nil, err
	}

	metrics.IncRedemption("ok")
	log.Info().Int("combinations", spec.Combinations).
		Int("numbers", spec.NumbersPerCombination).Time("at", time.Now()).Msg("code redeemed")
	return combos, nil
}

func (u *redemptionUC) observeFailure(err error) {
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrCodeNotFound):
		metrics.IncRedemption("not_found")
	case errors.Is(err, domain.ErrCodeAlreadyUsed):
		metrics.IncRedemption("already_used")
	default:
		metrics.IncRedemption("error")
	}
}
