package pipeline

import (
	"errors"
	"fmt"
)

// ErrNoInputFiles is returned by Runner.Run when the input directory contains
// no files matching the supported extension set. It is fatal for the run and
// is raised before any extraction call is made.
var ErrNoInputFiles = errors.New("no statement files found in input directory")

// ErrUnsupportedFileType marks a discovered file whose extension the parser
// does not recognize. It is a warning-level condition: the file yields zero
// records and the batch continues.
var ErrUnsupportedFileType = errors.New("unsupported file type")

// ErrFieldCount marks an extractor response whose per-transaction field count
// is not exactly three. The whole file's extraction fails; no partial repair
// is attempted.
var ErrFieldCount = errors.New("transaction must have exactly 3 fields [date, description, amount]")

// ExtractionError wraps any failure of the external extraction call or of
// decoding its response. It is scoped to a single file and must not abort the
// rest of the batch.
type ExtractionError struct {
	File string
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extracting transactions from %s: %v", e.File, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// UploadError wraps a failed ledger call for a single record.
type UploadError struct {
	File        string
	Description string
	Err         error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("uploading %q from %s: %v", e.Description, e.File, e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }
