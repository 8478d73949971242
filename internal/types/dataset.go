package types

// ColumnType is the semantic type inferred for a dataset column
type ColumnType string

const (
	ColumnString  ColumnType = "string"
	ColumnNumber  ColumnType = "number"
	ColumnInteger ColumnType = "integer"
	ColumnBoolean ColumnType = "boolean"
	ColumnDate    ColumnType = "date"
	ColumnURL     ColumnType = "url"
	ColumnEmail   ColumnType = "email"
)

// Dataset is a parsed, typed CSV table. Every row has len(Columns) cells.
type Dataset struct {
	Columns          []string     `json:"columns" yaml:"columns"`
	ColumnTypes      []ColumnType `json:"columnTypes" yaml:"columnTypes"`
	Rows             [][]string   `json:"rows" yaml:"rows"`
	Truncated        bool         `json:"truncated" yaml:"truncated"`
	OriginalRowCount int          `json:"originalRowCount,omitempty" yaml:"originalRowCount,omitempty"`
}
