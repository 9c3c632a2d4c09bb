package render

import (
	"fmt"

	"github.com/jonathan/application-autofill/internal/schema"
)

// NoValueError means a matched attribute could not produce a concrete
// value for the control it landed on. It is recovered per field: the
// preview flags the entry and the run continues with the rest.
type NoValueError struct {
	Attribute schema.Attribute
	Reason    string
}

func (e *NoValueError) Error() string {
	return fmt.Sprintf("no fillable value for %s: %s", e.Attribute, e.Reason)
}
