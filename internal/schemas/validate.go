// Package schemas provides JSON Schema validation for the artifacts the
// tool persists: the personal record and saved site mappings. The schema
// documents are embedded so the binary validates with the exact schema it
// was built with; there is no disk lookup to drift.
package schemas

import (
	"embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed *.schema.json
var schemaFiles embed.FS

// Embedded schema document names.
const (
	PersonalRecordSchema = "personal_record.schema.json"
	SiteMappingSchema    = "site_mapping.schema.json"
)

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// SchemaLoadError represents errors loading or parsing the schema itself
type SchemaLoadError struct {
	Name    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Name, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Name, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

// Schema returns the embedded schema document by name.
func Schema(name string) (string, error) {
	data, err := schemaFiles.ReadFile(name)
	if err != nil {
		return "", &SchemaLoadError{Name: name, Message: "not embedded", Cause: err}
	}
	return string(data), nil
}

// ValidatePersonalRecord validates decrypted record JSON against the
// embedded personal-record schema.
func ValidatePersonalRecord(jsonContent []byte) error {
	return validateEmbedded(PersonalRecordSchema, jsonContent)
}

// ValidateSiteMapping validates a mapping file's JSON against the
// embedded site-mapping schema.
func ValidateSiteMapping(jsonContent []byte) error {
	return validateEmbedded(SiteMappingSchema, jsonContent)
}

func validateEmbedded(name string, jsonContent []byte) error {
	schemaContent, err := Schema(name)
	if err != nil {
		return err
	}
	return ValidateJSONString(schemaContent, string(jsonContent))
}

// ValidateJSONString validates JSON string content against schema string content
func ValidateJSONString(schemaContent, jsonContent string) error {
	schemaLoader := gojsonschema.NewStringLoader(schemaContent)
	documentLoader := gojsonschema.NewStringLoader(jsonContent)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return &SchemaLoadError{
			Name:    "(string schema)",
			Message: "schema validation failed during load",
			Cause:   err,
		}
	}

	if result.Valid() {
		return nil
	}

	// Build structured error
	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}

	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}

	return validationErr
}
