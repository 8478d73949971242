package csvdata

import (
	"regexp"
	"strings"
	"time"

	"schema-mapper/internal/types"
)

var (
	emailRe     = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	urlRe       = regexp.MustCompile(`(?i)^https?://\S+$`)
	isoDateRe   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)
	slashDateRe = regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{2,4}$`)
	booleanRe   = regexp.MustCompile(`(?i)^(true|false|yes|no|1|0)$`)
	integerRe   = regexp.MustCompile(`^[+-]?\d+$`)
	numberRe    = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)$`)
	dateLayouts = []string{
		"2006-01-02",
		"2006-01-02 15:04:05",
		"2006/01/02",
		"01/02/2006",
		"02-Jan-2006",
		"Jan 2, 2006",
		"January 2, 2006",
		"2 Jan 2006",
		time.RFC3339,
		time.RFC822,
		time.RFC1123,
		time.RFC1123Z,
		time.ANSIC,
	}
)

type typeCheck struct {
	columnType types.ColumnType
	matches    func(string) bool
}

// typeChecks is ordered from the most specific type to the least
var typeChecks = []typeCheck{
	{columnType: types.ColumnEmail, matches: IsEmail},
	{columnType: types.ColumnURL, matches: IsURL},
	{columnType: types.ColumnDate, matches: IsDate},
	{columnType: types.ColumnBoolean, matches: IsBoolean},
	{columnType: types.ColumnInteger, matches: IsInteger},
	{columnType: types.ColumnNumber, matches: IsNumber},
}

// InferColumnTypes returns one type per column, each decided independently from
// the non-blank values of the first TypeSampleSize rows.
func InferColumnTypes(columns []string, rows [][]string) []types.ColumnType {
	sampled := rows
	if len(sampled) > TypeSampleSize {
		sampled = sampled[:TypeSampleSize]
	}

	result := make([]types.ColumnType, len(columns))
	for col := range columns {
		var samples []string
		for _, row := range sampled {
			if col >= len(row) {
				continue
			}
			if v := strings.TrimSpace(row[col]); v != "" {
				samples = append(samples, v)
			}
		}
		result[col] = inferColumnType(samples)
	}
	return result
}

func inferColumnType(samples []string) types.ColumnType {
	if len(samples) == 0 {
		return types.ColumnString
	}

	for _, check := range typeChecks {
		matched := 0
		for _, s := range samples {
			if check.matches(s) {
				matched++
			}
		}
		if float64(matched)/float64(len(samples)) >= TypeMatchThreshold {
			return check.columnType
		}
	}
	return types.ColumnString
}

// IsEmail reports whether s looks like local@domain.tld
func IsEmail(s string) bool { return emailRe.MatchString(s) }

// IsURL reports whether s is an http or https URL
func IsURL(s string) bool { return urlRe.MatchString(s) }

// IsBoolean reports whether s is true/false, yes/no or 1/0, in any case
func IsBoolean(s string) bool { return booleanRe.MatchString(s) }

// IsInteger reports whether s is an optionally signed whole number
func IsInteger(s string) bool { return integerRe.MatchString(s) }

// IsNumber reports whether s is an optionally signed decimal number
func IsNumber(s string) bool { return numberRe.MatchString(s) }

// IsDate accepts ISO-prefixed and M/D/YYYY values, or anything longer than four
// characters that one of the known layouts parses.
func IsDate(s string) bool {
	if isoDateRe.MatchString(s) || slashDateRe.MatchString(s) {
		return true
	}
	if len(s) <= 4 {
		return false
	}
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}
