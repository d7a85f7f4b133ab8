package domain

// OutcomeStatus tags how a single file's processing attempt ended.
type OutcomeStatus string

const (
	// StatusProcessed means every record was extracted, uploaded, and the
	// file was archived.
	StatusProcessed OutcomeStatus = "processed"

	// StatusSkipped means the file's extension is not supported; it yields
	// zero records and stays in the input directory.
	StatusSkipped OutcomeStatus = "skipped"

	// StatusFailed means extraction, validation, or upload failed for this
	// file. The file stays in the input directory for a re-run.
	StatusFailed OutcomeStatus = "failed"
)

// Outcome is the per-file result of an extraction+normalization+upload
// attempt. It is created once, when the attempt completes or fails, and is
// never mutated afterward.
type Outcome struct {
	Filename     string
	Transactions []Transaction // in extraction order; empty for skips/failures
	Status       OutcomeStatus
	Err          error // set only when Status is StatusFailed
	Uploaded     int   // records forwarded to the ledger before any failure
}

// Success reports whether the file was fully processed and archived.
func (o Outcome) Success() bool {
	return o.Status == StatusProcessed
}
