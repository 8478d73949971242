package mapping

import (
	"regexp"
	"strings"
)

var (
	bracedParamRe = regexp.MustCompile(`\{([^{}/:]+)\}`)
	colonParamRe  = regexp.MustCompile(`:([A-Za-z0-9_]+)`)
	versionRe     = regexp.MustCompile(`^v\d+$`)
)

// NormalizePathPattern converts OpenAPI style parameters ({param}) to :param.
// Paths already using :param are returned unchanged. Braces around a name that
// already holds a colon are left alone so a second pass changes nothing.
func NormalizePathPattern(path string) string {
	return bracedParamRe.ReplaceAllString(path, ":$1")
}

// ExtractPathParams returns the :param names of a normalized path in order of appearance
func ExtractPathParams(normalizedPath string) []string {
	matches := colonParamRe.FindAllStringSubmatch(normalizedPath, -1)
	params := make([]string, 0, len(matches))
	for _, m := range matches {
		params = append(params, m[1])
	}
	return params
}

// isPathParameter checks if a path segment is a parameter
func isPathParameter(segment string) bool {
	return strings.HasPrefix(segment, ":") ||
		(strings.HasPrefix(segment, "{") && strings.HasSuffix(segment, "}"))
}

// isVersionSegment reports whether a segment is an /api or /vN prefix
func isVersionSegment(segment string) bool {
	s := strings.ToLower(segment)
	return versionSegments[s] || versionRe.MatchString(s)
}

// lastSegmentIsParam reports whether the final non-empty segment is a parameter
func lastSegmentIsParam(path string) bool {
	segments := strings.Split(strings.TrimRight(path, "/"), "/")
	return isPathParameter(segments[len(segments)-1])
}
