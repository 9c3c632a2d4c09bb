package types

import "github.com/google/uuid"

// ValueKind tells the fill strategy how to deliver a rendered value.
type ValueKind string

const (
	// ValueText is typed or set verbatim into a text-like control.
	ValueText ValueKind = "text"
	// ValueFilePath is a local path handed to a file input.
	ValueFilePath ValueKind = "file-path"
	// ValueOption is the option text to pick from a select or radio
	// group (already verified to exist among the control's options),
	// or "true"/"false" for a checkbox state.
	ValueOption ValueKind = "option"
)

// RenderedValue is a concrete, fill-ready value for one matched field.
type RenderedValue struct {
	FieldID uuid.UUID `json:"field_id"`
	Value   string    `json:"value"`
	Kind    ValueKind `json:"kind"`
}
