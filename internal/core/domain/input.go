package domain

// IngestInput is one file submitted for ingestion.
type IngestInput struct {
	// FileName is the submitted name, including extension.
	FileName string

	// Content is the file's raw bytes.
	Content []byte

	// Tags is the ownership tag set attached to every produced unit.
	Tags TenantTags
}

// FileError reports one file's ingestion failure within a batch.
type FileError struct {
	// FileName identifies the failed file.
	FileName string

	// Err is the underlying failure.
	Err error
}

// Error implements the error interface.
func (e FileError) Error() string {
	return e.FileName + ": " + e.Err.Error()
}

// Unwrap exposes the underlying failure for errors.Is checks.
func (e FileError) Unwrap() error {
	return e.Err
}

// BatchResult is the outcome of a bulk ingestion call.
// Units from successful files appear in Units; failed files appear in
// Failed with no partial units committed (fail-file-atomic).
type BatchResult struct {
	// Units are all units produced by the batch's successful files.
	Units []*TextUnit

	// Failed lists the files that could not be ingested.
	Failed []FileError
}
