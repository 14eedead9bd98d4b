package model

import (
	"fmt"

	"lucky-numbers-platform/internal/domain"
)

// Draw range and per-request bounds for the Mega-style lottery.
const (
	NumberMin = 1
	NumberMax = 60

	MinNumbersPerCombination = 6
	MaxNumbersPerCombination = 15

	MinCombinations = 1
	MaxCombinations = 10
)

// Combination is one generated set of lottery numbers: unique integers within
// [NumberMin, NumberMax], sorted ascending. Combinations are ephemeral; they are
// handed to the presentation layer and never persisted.
type Combination []int

// DrawSpec describes one generation request after input validation.
type DrawSpec struct {
	NumbersPerCombination int
	Combinations          int
}

// NewDrawSpec validates the user-facing bounds before any sampling happens.
func NewDrawSpec(numbersPerCombination, combinations int) (DrawSpec, error) {
	if numbersPerCombination < MinNumbersPerCombination || numbersPerCombination > MaxNumbersPerCombination {
		return DrawSpec{}, fmt.Errorf("numbers per combination must be between %d and %d: %w",
			MinNumbersPerCombination, MaxNumbersPerCombination, domain.ErrInvalidArgument)
	}
	if combinations < MinCombinations || combinations > MaxCombinations {
		return DrawSpec{}, fmt.Errorf("combinations must be between %d and %d: %w",
			MinCombinations, MaxCombinations, domain.ErrInvalidArgument)
	}
	return DrawSpec{NumbersPerCombination: numbersPerCombination, Combinations: combinations}, nil
}

// Validate checks a single combination against the invariants every source must
// honor: exact count, range, uniqueness, ascending order. External generators
// are not trusted to respect their output schema, so their results pass through
// here before anything is shown to a user.
func (c Combination) Validate(count int) error {
	if len(c) != count {
		return fmt.Errorf("expected %d numbers, got %d: %w", count, len(c), domain.ErrSchemaViolation)
	}
	prev := NumberMin - 1
	for _, n := range c {
		if n < NumberMin || n > NumberMax {
			return fmt.Errorf("number %d out of range [%d,%d]: %w", n, NumberMin, NumberMax, domain.ErrSchemaViolation)
		}
		if n <= prev {
			return fmt.Errorf("numbers must be unique and ascending: %w", domain.ErrSchemaViolation)
		}
		prev = n
	}
	return nil
}

// ValidateCombinations applies Validate to a whole response.
func ValidateCombinations(combos []Combination, spec DrawSpec) error {
	if len(combos) != spec.Combinations {
		return fmt.Errorf("expected %d combinations, got %d: %w", spec.Combinations, len(combos), domain.ErrSchemaViolation)
	}
	for _, c := range combos {
		if err := c.Validate(spec.NumbersPerCombination); err != nil {
			return err
		}
	}
	return nil
}
