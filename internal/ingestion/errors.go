package ingestion

import "fmt"

// ReadError represents a failure to read or extract text from a résumé file.
type ReadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *ReadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to read %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to read %s: %s", e.Path, e.Message)
}

func (e *ReadError) Unwrap() error {
	return e.Cause
}
