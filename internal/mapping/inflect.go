package mapping

import "strings"

var irregularPlurals = map[string]string{
	"person": "people",
	"child":  "children",
	"man":    "men",
	"woman":  "women",
}

var irregularSingulars = map[string]string{
	"people":   "person",
	"children": "child",
	"men":      "man",
	"women":    "woman",
}

// Pluralize returns the lower-cased plural form of word using simple English rules.
// Words that already look plural are returned as-is, so Pluralize(Pluralize(w)) == Pluralize(w).
func Pluralize(word string) string {
	w := strings.ToLower(word)
	if w == "" {
		return ""
	}
	if plural, ok := irregularPlurals[w]; ok {
		return plural
	}
	if _, ok := irregularSingulars[w]; ok {
		return w
	}

	if strings.HasSuffix(w, "s") && !strings.HasSuffix(w, "ss") {
		return w
	}

	if len(w) >= 2 && w[len(w)-1] == 'y' && !isVowel(w[len(w)-2]) {
		return w[:len(w)-1] + "ies"
	}

	if strings.HasSuffix(w, "ss") ||
		strings.HasSuffix(w, "sh") ||
		strings.HasSuffix(w, "ch") ||
		strings.HasSuffix(w, "x") ||
		strings.HasSuffix(w, "z") {
		return w + "es"
	}

	return w + "s"
}

// Singularize returns the lower-cased singular form of word using simple English rules
func Singularize(word string) string {
	w := strings.ToLower(word)
	if singular, ok := irregularSingulars[w]; ok {
		return singular
	}

	if strings.HasSuffix(w, "ies") && len(w) > 3 {
		return w[:len(w)-3] + "y"
	}
	if strings.HasSuffix(w, "sses") || strings.HasSuffix(w, "xes") ||
		strings.HasSuffix(w, "zes") || strings.HasSuffix(w, "ches") ||
		strings.HasSuffix(w, "shes") {
		return w[:len(w)-2]
	}
	if strings.HasSuffix(w, "s") && !strings.HasSuffix(w, "ss") {
		return w[:len(w)-1]
	}

	return w
}

// isVowel returns true if the character is a vowel
func isVowel(c byte) bool {
	return c == 'a' || c == 'e' || c == 'i' || c == 'o' || c == 'u'
}
