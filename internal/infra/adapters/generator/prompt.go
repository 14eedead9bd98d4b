package generator

import (
	"encoding/json"
	"fmt"
	"strings"

	"lucky-numbers-platform/internal/domain"
	"lucky-numbers-platform/internal/domain/model"
)

// The generative sources share one prompt and one response schema. The model is
// asked for JSON; whatever comes back is parsed and validated before use.

func buildPrompt(spec model.DrawSpec) string {
	return fmt.Sprintf(`You are an expert lottery number generator.

Based on statistical analysis of past draws, generate %d unique combinations of %d numbers between %d and %d.

The numbers in each combination must be sorted in ascending order with no duplicates.
Respond with JSON only, in the form {"numberCombinations": [[...]]}.`,
		spec.Combinations, spec.NumbersPerCombination, model.NumberMin, model.NumberMax)
}

type generateResponse struct {
	NumberCombinations [][]int `json:"numberCombinations"`
}

// parseResponse extracts the combinations from the model reply. Models wrap
// JSON in code fences often enough that those are stripped first.
func parseResponse(text string, spec model.DrawSpec) ([]model.Combination, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var resp generateResponse
	if err := json.Unmarshal([]byte(text), &resp); err != nil {
		return nil, fmt.Errorf("parse generator reply: %w", domain.ErrSchemaViolation)
	}

	combos := make([]model.Combination, 0, len(resp.NumberCombinations))
	for _, c := range resp.NumberCombinations {
		combos = append(combos, model.Combination(c))
	}
	if err := model.ValidateCombinations(combos, spec); err != nil {
		return nil, err
	}
	return combos, nil
}
