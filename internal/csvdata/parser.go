package csvdata

import (
	"fmt"
	"strings"
)

// Options bounds the parser. Zero values use the package defaults.
type Options struct {
	MaxRows  int
	MaxBytes int
}

func (o Options) withDefaults() Options {
	if o.MaxRows <= 0 {
		o.MaxRows = DefaultMaxRows
	}
	if o.MaxBytes <= 0 {
		o.MaxBytes = DefaultMaxBytes
	}
	return o
}

// Table is the untyped result of Parse
type Table struct {
	Columns          []string
	Rows             [][]string
	Truncated        bool
	OriginalRowCount int
}

// Parse splits delimited text into a header and data rows. Structural problems are
// returned as errors: ErrEmptyContent, ErrNoDataRows, ErrUnterminatedQuote,
// ErrContentTooLarge, *DuplicateColumnError and *RowWidthError.
func Parse(content string, opts Options) (*Table, error) {
	opts = opts.withDefaults()

	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}
	if len(content) > opts.MaxBytes {
		return nil, fmt.Errorf("%w (%d bytes, limit %d)", ErrContentTooLarge, len(content), opts.MaxBytes)
	}

	records, err := tokenize(content)
	if err != nil {
		return nil, err
	}

	// first non-blank record is the header
	start := 0
	for start < len(records) && isBlankRecord(records[start]) {
		start++
	}
	if start == len(records) {
		return nil, ErrEmptyContent
	}

	columns := records[start]
	seen := make(map[string]bool, len(columns))
	for _, c := range columns {
		if seen[c] {
			return nil, &DuplicateColumnError{Column: c}
		}
		seen[c] = true
	}

	table := &Table{
		Columns: columns,
		Rows:    make([][]string, 0),
	}

	total := 0
	for i, record := range records[start+1:] {
		if isBlankRecord(record) {
			continue
		}
		total++
		if total > opts.MaxRows {
			continue
		}
		if len(record) != len(columns) {
			return nil, &RowWidthError{Row: start + i + 2, Got: len(record), Expected: len(columns)}
		}
		table.Rows = append(table.Rows, record)
	}

	if len(table.Rows) == 0 {
		return nil, ErrNoDataRows
	}
	if total > opts.MaxRows {
		table.Truncated = true
		table.OriginalRowCount = total
	}
	return table, nil
}

// tokenize scans content once, tracking whether the cursor is inside quotes.
// A doubled quote inside quotes is a literal quote; \r is dropped everywhere.
func tokenize(content string) ([][]string, error) {
	var (
		records  [][]string
		record   []string
		field    strings.Builder
		inQuotes bool
		dirty    bool
	)

	endField := func() {
		record = append(record, strings.TrimSpace(field.String()))
		field.Reset()
	}
	endRecord := func() {
		endField()
		records = append(records, record)
		record = nil
		dirty = false
	}

	for i := 0; i < len(content); i++ {
		c := content[i]
		switch {
		case c == '"':
			dirty = true
			if inQuotes && i+1 < len(content) && content[i+1] == '"' {
				field.WriteByte('"')
				i++
				continue
			}
			inQuotes = !inQuotes
		case c == '\r':
		case c == ',' && !inQuotes:
			dirty = true
			endField()
		case c == '\n' && !inQuotes:
			endRecord()
		default:
			dirty = true
			field.WriteByte(c)
		}
	}

	if inQuotes {
		return nil, ErrUnterminatedQuote
	}
	if dirty {
		endRecord()
	}
	return records, nil
}

func isBlankRecord(record []string) bool {
	return len(record) == 1 && record[0] == ""
}
