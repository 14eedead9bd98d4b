package generator

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"lucky-numbers-platform/internal/domain"
	"lucky-numbers-platform/internal/domain/model"
	"lucky-numbers-platform/internal/domain/ports/adapter"
)

var _ adapter.NumberSource = (*LocalSampler)(nil)

// LocalSampler draws combinations from an injected PRNG. The source is
// seedable so tests can be deterministic; this is not a security-sensitive
// draw, so math/rand is fine.
type LocalSampler struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewLocalSampler builds a sampler around rng. Passing nil seeds one from the
// current time.
func NewLocalSampler(rng *rand.Rand) *LocalSampler {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &LocalSampler{rng: rng}
}

func (s *LocalSampler) Name() string { return "local" }

func (s *LocalSampler) Generate(ctx context.Context, spec model.DrawSpec) ([]model.Combination, error) {
	out := make([]model.Combination, 0, spec.Combinations)
	for i := 0; i < spec.Combinations; i++ {
		combo, err := s.Draw(spec.NumbersPerCombination, model.NumberMin, model.NumberMax)
		if err != nil {
			return nil, err
		}
		out = append(out, combo)
	}
	return out, nil
}

// Draw returns k distinct integers uniformly drawn from [min,max], ascending.
// Rejection sampling is fine at this scale (k <= 20 out of 60) but needs the
// k <= range-size guard to stay bounded, so that is checked first.
func (s *LocalSampler) Draw(k, min, max int) (model.Combination, error) {
	size := max - min + 1
	if k <= 0 || size <= 0 || k > size {
		return nil, fmt.Errorf("cannot draw %d unique numbers from [%d,%d]: %w", k, min, max, domain.ErrInvalidArgument)
	}

	seen := make(map[int]struct{}, k)
	s.mu.Lock()
	for len(seen) < k {
		n := s.rng.Intn(size) + min
		seen[n] = struct{}{}
	}
	s.mu.Unlock()

	combo := make(model.Combination, 0, k)
	for n := range seen {
		combo = append(combo, n)
	}
	sort.Ints(combo)
	return combo, nil
}
