package csvdata

import "schema-mapper/internal/types"

// ParseDataset parses content and attaches inferred column types
func ParseDataset(content string, opts Options) (*types.Dataset, error) {
	table, err := Parse(content, opts)
	if err != nil {
		return nil, err
	}

	return &types.Dataset{
		Columns:          table.Columns,
		ColumnTypes:      InferColumnTypes(table.Columns, table.Rows),
		Rows:             table.Rows,
		Truncated:        table.Truncated,
		OriginalRowCount: table.OriginalRowCount,
	}, nil
}
