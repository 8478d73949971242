package mapping

import (
	"strings"

	"schema-mapper/internal/types"
)

// ExtractModelFromPath returns the last static segment of path, lower-cased, after
// dropping /api, /vN and parameter segments. ok is false when nothing is left.
func ExtractModelFromPath(path string) (model string, ok bool) {
	for _, segment := range strings.Split(path, "/") {
		if segment == "" || isPathParameter(segment) || isVersionSegment(segment) {
			continue
		}
		model = segment
	}
	if model == "" {
		return "", false
	}
	return strings.ToLower(model), true
}

// DetermineResponseType decides between a single record and a collection.
// Only GET without a trailing parameter returns a collection.
func DetermineResponseType(method, normalizedPath string, params []string) types.ResponseType {
	if !strings.EqualFold(method, "GET") {
		return types.ResponseSingle
	}
	if len(params) > 0 && lastSegmentIsParam(normalizedPath) {
		return types.ResponseSingle
	}
	return types.ResponseCollection
}

// DetermineLookupField returns the last path parameter, the one closest to the
// targeted resource in nested paths, or "id" when there is none. The name is never
// rewritten, whatever modelHint says.
func DetermineLookupField(params []string, modelHint string) string {
	if len(params) == 0 {
		return DefaultLookupField
	}
	return params[len(params)-1]
}
