package csvdata

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyContent      = errors.New("CSV content is empty")
	ErrNoDataRows        = errors.New("No data rows found in CSV")
	ErrUnterminatedQuote = errors.New("CSV content ends inside a quoted field")
	ErrContentTooLarge   = errors.New("CSV content exceeds the maximum size")
)

// DuplicateColumnError reports a header name that appears more than once
type DuplicateColumnError struct {
	Column string
}

func (e *DuplicateColumnError) Error() string {
	return fmt.Sprintf("Duplicate column name: %q", e.Column)
}

// RowWidthError reports a data row whose cell count differs from the header.
// Row is 1-based and counts the header as row 1.
type RowWidthError struct {
	Row      int
	Got      int
	Expected int
}

func (e *RowWidthError) Error() string {
	return fmt.Sprintf("Row %d has %d columns, expected %d", e.Row, e.Got, e.Expected)
}
