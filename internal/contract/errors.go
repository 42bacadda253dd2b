package contract

import "errors"

// Error taxonomy. Callers wrap these with details using fmt.Errorf("%w: ...")
// and test for them with errors.Is.
var (
	// ErrInvalidConfiguration is returned before the pipeline runs when the
	// configuration is inconsistent (e.g. two time window units).
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrExtractionFailure is returned when the commit data source is unreachable
	// or a reference cannot be resolved.
	ErrExtractionFailure = errors.New("extraction failure")
)
