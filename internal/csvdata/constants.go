package csvdata

const (
	// DefaultMaxRows is the number of data rows kept before a table is truncated
	DefaultMaxRows = 1000

	// DefaultMaxBytes rejects content larger than 5 MiB
	DefaultMaxBytes = 5 << 20

	// TypeSampleSize is how many rows per column are inspected for type inference
	TypeSampleSize = 100

	// TypeMatchThreshold is the fraction of samples a type must match to be chosen
	TypeMatchThreshold = 0.8
)
