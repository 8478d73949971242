package mapping

import (
	"strings"

	"schema-mapper/internal/types"
)

// matchRule is one heuristic of the matcher. Rules are tried in descending confidence.
type matchRule struct {
	name       string
	confidence int
	matches    func(candidate, model string) bool
}

var matchRules = []matchRule{
	{name: RuleExact, confidence: ConfidenceExact, matches: exactMatch},
	{name: RulePlural, confidence: ConfidencePlural, matches: pluralMatch},
	{name: RuleNormalized, confidence: ConfidenceNormalized, matches: normalizedMatch},
}

// FindMatchingModel resolves candidate against models, case-insensitively.
// It returns nil when no rule matches or the candidate is empty.
func FindMatchingModel(candidate string, models []string) *types.ModelMatch {
	if strings.TrimSpace(candidate) == "" {
		return nil
	}

	for _, rule := range matchRules {
		for _, model := range models {
			if model == "" {
				continue
			}
			if rule.matches(candidate, model) {
				return &types.ModelMatch{
					Model:      model,
					Confidence: rule.confidence,
					Rule:       rule.name,
				}
			}
		}
	}
	return nil
}

func exactMatch(candidate, model string) bool {
	return strings.EqualFold(candidate, model)
}

func pluralMatch(candidate, model string) bool {
	m := strings.ToLower(model)
	return Singularize(candidate) == m || Pluralize(candidate) == m
}

func normalizedMatch(candidate, model string) bool {
	return normalizeName(candidate) == normalizeName(model)
}

// normalizeName lower-cases s and drops underscores and hyphens
func normalizeName(s string) string {
	return strings.NewReplacer("_", "", "-", "").Replace(strings.ToLower(s))
}
