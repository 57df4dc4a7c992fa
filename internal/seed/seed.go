package seed

import (
	"context"
)

// Record is one raw line of a seed file.
type Record struct {
	// Line is the 1-based line number in the decompressed file.
	Line int

	// Data is a JSON object shaped like a POST /api/products body.
	Data []byte
}

// Loader defines the interface for loading seed files.
type Loader interface {
	// Load reads a gzipped JSON-lines seed file. Blank lines are dropped.
	Load(ctx context.Context, filePath string) ([]Record, error)
}

// Result summarises an import run.
type Result struct {
	Imported int
	Skipped  int

	// AlreadySeeded is set when the catalogue was not empty and nothing was read.
	AlreadySeeded bool
}
