package adapter

import (
	"context"

	"lucky-numbers-platform/internal/domain/model"
)

// NumberSource is the port for anything that can produce lottery combinations.
// Implementations include the local sampler and external generative services.
// Callers must treat external output as untrusted and validate it against
// model.ValidateCombinations before use.
type NumberSource interface {
	// Name identifies the source in logs and metrics ("local", "gemini", ...).
	Name() string
	// Generate produces spec.Combinations combinations of
	// spec.NumbersPerCombination numbers each.
	Generate(ctx context.Context, spec model.DrawSpec) ([]model.Combination, error)
}
