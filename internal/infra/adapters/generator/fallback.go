package generator

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"lucky-numbers-platform/internal/domain/model"
	"lucky-numbers-platform/internal/domain/ports/adapter"
	"lucky-numbers-platform/internal/infra/metrics"
)

var _ adapter.NumberSource = (*FallbackSource)(nil)

// FallbackSource tries the primary (typically generative) source and falls back
// to the secondary when the primary errors or returns output that fails schema
// validation. A paying user should never see a failed draw just because the
// model misbehaved.
type FallbackSource struct {
	primary   adapter.NumberSource
	secondary adapter.NumberSource
	log       *zerolog.Logger
}

func NewFallbackSource(primary, secondary adapter.NumberSource, logger *zerolog.Logger) *FallbackSource {
	return &FallbackSource{primary: primary, secondary: secondary, log: logger}
}

func (f *FallbackSource) Name() string { return f.primary.Name() }

func (f *FallbackSource) Generate(ctx context.Context, spec model.DrawSpec) ([]model.Combination, error) {
	start := time.Now()
	combos, err := f.primary.Generate(ctx, spec)
	metrics.ObserveGeneration(f.primary.Name(), int(time.Since(start).Milliseconds()), err == nil)
	if err == nil {
		return combos, nil
	}

	f.log.Warn().Err(err).Str("source", f.primary.Name()).Msg("primary number source failed, falling back")
	metrics.IncGeneratorFallback(f.primary.Name())

	start = time.Now()
	combos, err = f.secondary.Generate(ctx, spec)
	metrics.ObserveGeneration(f.secondary.Name(), int(time.Since(start).Milliseconds()), err == nil)
	return combos, err
}
