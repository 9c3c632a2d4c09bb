package detect

import "fmt"

// ExtractionError reports a failure to parse a page while looking for
// form controls. Finding zero controls is not an ExtractionError; the
// caller decides what "nothing to fill" means.
type ExtractionError struct {
	Message string
	Cause   error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("form detection failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("form detection failed: %s", e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}
