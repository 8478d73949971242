package mapping

import (
	"fmt"
	"sort"
	"strings"

	"schema-mapper/internal/types"
)

// Options tunes the inferer. Both lists extend the package defaults; they never
// replace them.
type Options struct {
	SkipRules   []SkipRule
	SkipMethods []string
}

// Inferer maps schema endpoints onto data models. It holds no per-run state,
// so one Inferer can serve any number of concurrent Infer calls.
type Inferer struct {
	skipRules   []SkipRule
	skipMethods map[string]bool
}

// NewInferer creates an inferer with the default skip taxonomy plus any extra rules and methods
func NewInferer(opts Options) *Inferer {
	rules := make([]SkipRule, 0, len(DefaultSkipRules)+len(opts.SkipRules))
	rules = append(rules, DefaultSkipRules...)
	for _, r := range opts.SkipRules {
		if r.Pattern == "" {
			continue
		}
		rules = append(rules, SkipRule{Pattern: strings.ToLower(r.Pattern), Category: r.Category})
	}

	skipMethods := make(map[string]bool, len(DefaultSkipMethods)+len(opts.SkipMethods))
	for _, m := range append(append([]string{}, DefaultSkipMethods...), opts.SkipMethods...) {
		skipMethods[strings.ToUpper(m)] = true
	}

	return &Inferer{
		skipRules:   rules,
		skipMethods: skipMethods,
	}
}

// Infer classifies every endpoint of schema, in schema order
func (i *Inferer) Infer(schema *types.Schema, models []string) *types.InferenceResult {
	result := &types.InferenceResult{
		Mappings:        []types.EndpointMapping{},
		Unmapped:        []types.UnmappedEndpoint{},
		Skipped:         []types.SkippedEndpoint{},
		AvailableModels: append([]string{}, models...),
	}
	if schema == nil {
		return result
	}

	for _, endpoint := range schema.Endpoints {
		method := strings.ToUpper(endpoint.Method)

		if reason, skip := i.skipReason(method, endpoint.Path); skip {
			result.Skipped = append(result.Skipped, types.SkippedEndpoint{
				Method: method,
				Path:   endpoint.Path,
				Reason: reason,
			})
			continue
		}

		pattern := NormalizePathPattern(endpoint.Path)
		params := literalParamNames(endpoint, pattern, ExtractPathParams(pattern))

		candidate, ok := ExtractModelFromPath(pattern)
		if !ok {
			result.Unmapped = append(result.Unmapped, types.UnmappedEndpoint{
				Method: method,
				Path:   endpoint.Path,
				Reason: "No path segment to derive a model name from",
			})
			continue
		}

		match := FindMatchingModel(candidate, models)
		if match == nil {
			result.Unmapped = append(result.Unmapped, types.UnmappedEndpoint{
				Method:         method,
				Path:           endpoint.Path,
				Reason:         fmt.Sprintf("No matching model found for %q", candidate),
				SuggestedModel: candidate,
			})
			continue
		}

		result.Mappings = append(result.Mappings, buildMapping(method, pattern, params, candidate, match))
	}

	return result
}

// literalParamNames swaps the extracted tokens for the endpoint's declared path
// parameter names when they line up one to one. Declared names may hold
// characters such as '-' that the token pattern stops at.
func literalParamNames(endpoint types.Endpoint, pattern string, params []string) []string {
	declared := endpoint.PathParams()
	if len(declared) == 0 || len(declared) != len(params) {
		return params
	}

	type located struct {
		name string
		pos  int
	}
	ordered := make([]located, 0, len(declared))
	for _, d := range declared {
		pos := paramIndex(pattern, d.Name)
		if pos < 0 {
			return params
		}
		ordered = append(ordered, located{name: d.Name, pos: pos})
	}
	sort.SliceStable(ordered, func(a, b int) bool { return ordered[a].pos < ordered[b].pos })

	names := make([]string, len(ordered))
	for k, l := range ordered {
		names[k] = l.name
	}
	return names
}

// paramIndex returns the offset of the whole segment ":name" in pattern, or -1
func paramIndex(pattern, name string) int {
	offset := 0
	for _, segment := range strings.Split(pattern, "/") {
		if segment == ":"+name {
			return offset
		}
		offset += len(segment) + 1
	}
	return -1
}

// skipReason returns the reason an endpoint is excluded, naming the rule that matched
func (i *Inferer) skipReason(method, path string) (string, bool) {
	if i.skipMethods[method] {
		return fmt.Sprintf("Method %s is not mappable", method), true
	}

	// A trailing slash lets "auth/" and "hooks/" catch paths that end there.
	p := strings.ToLower(path) + "/"
	for _, rule := range i.skipRules {
		if strings.Contains(p, rule.Pattern) {
			if rule.Category == "" {
				return fmt.Sprintf("Path matches skip pattern %q", rule.Pattern), true
			}
			return fmt.Sprintf("Skipped %s endpoint (path matches %q)", rule.Category, rule.Pattern), true
		}
	}
	return "", false
}

func buildMapping(method, pattern string, params []string, candidate string, match *types.ModelMatch) types.EndpointMapping {
	responseType := DetermineResponseType(method, pattern, params)

	m := types.EndpointMapping{
		Method:          method,
		Pattern:         pattern,
		SourceModel:     match.Model,
		ResponseType:    responseType,
		Confidence:      clampConfidence(match.Confidence),
		IsAutoGenerated: true,
		Reason: fmt.Sprintf("Path segment %q resolved to model %q (%s); %s response",
			candidate, match.Model, match.Rule, responseType),
	}

	if responseType == types.ResponseSingle {
		m.LookupField = DetermineLookupField(params, match.Model)
		if len(params) > 0 {
			m.LookupParam = m.LookupField
		}
	}
	return m
}

func clampConfidence(c int) int {
	if c < 0 {
		return 0
	}
	if c > 100 {
		return 100
	}
	return c
}
