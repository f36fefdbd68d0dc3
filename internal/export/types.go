package export

import "errors"

// ErrNoRecords is returned when none of the given records can be written.
// No file is created in that case.
var ErrNoRecords = errors.New("no valid records to write")

// WriteResult reports what a writer did with its input.
type WriteResult struct {
	Written int
	Skipped int
}
