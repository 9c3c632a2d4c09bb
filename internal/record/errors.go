package record

import "fmt"

// SchemaViolationError means the persisted record does not conform to
// the closed attribute schema. It is fatal for a run: no form processing
// happens on top of a record that cannot be trusted.
type SchemaViolationError struct {
	Message string
	Cause   error
}

func (e *SchemaViolationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("personal record schema violation: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("personal record schema violation: %s", e.Message)
}

func (e *SchemaViolationError) Unwrap() error {
	return e.Cause
}

// NotFoundError means no record exists yet at the configured path.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("personal record not found: %s (run setup first)", e.Path)
}
