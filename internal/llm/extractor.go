package llm

import (
	"fmt"
	"strings"
)

// ExtractionSchema describes a structured-extraction task: what the
// model is extracting and which JSON fields it must return. The prompt
// is generated from it, so schema and prompt cannot drift apart.
type ExtractionSchema struct {
	Name        string
	Description string
	Fields      []SchemaField
}

// SchemaField is one field of the expected JSON output.
type SchemaField struct {
	Name        string // JSON key
	Type        string // type hint shown to the model, "string" when empty
	Description string
	Required    bool
}

// BuildExtractionPrompt renders the schema and input text into one
// prompt. The output shape is spelled out field by field; models follow
// an explicit skeleton far more reliably than a prose description.
func BuildExtractionPrompt(schema ExtractionSchema, inputText string) string {
	var sb strings.Builder

	sb.WriteString(schema.Description)
	sb.WriteString("\n\n")

	sb.WriteString("Return ONLY valid JSON matching this exact structure:\n{\n")
	for i, field := range schema.Fields {
		typeHint := field.Type
		if typeHint == "" {
			typeHint = "string"
		}
		sb.WriteString(fmt.Sprintf("  %q: %s", field.Name, typeHint))
		if field.Required {
			sb.WriteString(" (required)")
		}
		if field.Description != "" {
			sb.WriteString(" // " + field.Description)
		}
		if i < len(schema.Fields)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}\n\n")

	sb.WriteString("IMPORTANT:\n")
	sb.WriteString("- Extract information directly from the text, do not invent or summarize.\n")
	sb.WriteString("- Return ONLY the JSON object, no markdown, no explanation, no code blocks.\n\n")

	sb.WriteString("Input text:\n\"\"\"\n")
	sb.WriteString(inputText)
	sb.WriteString("\n\"\"\"\n")

	return sb.String()
}

// ContactProfileSchema returns the extraction schema for résumé text.
// Setup uses it to prefill the personal record; every field is optional
// because résumés omit freely and the wizard confirms each value anyway.
func ContactProfileSchema() ExtractionSchema {
	return ExtractionSchema{
		Name: "ContactProfile",
		Description: `You are an expert résumé parser. COPY TEXT VERBATIM - do not paraphrase or reformat.
Your task is to extract the candidate's contact details and education from raw résumé text.
IMPORTANT: Preserve the exact wording and formatting of each value (phone punctuation, URL form).
If a value does not appear in the text, return an empty string for it.`,
		Fields: []SchemaField{
			{Name: "first_name", Description: "Candidate's first/given name"},
			{Name: "last_name", Description: "Candidate's last/family name"},
			{Name: "email", Description: "Email address exactly as written"},
			{Name: "phone", Description: "Phone number exactly as written, keep punctuation"},
			{Name: "linkedin", Description: "LinkedIn profile URL if present"},
			{Name: "website", Description: "Personal website or portfolio URL if present"},
			{Name: "university", Description: "Most recent university or college name"},
			{Name: "degree", Description: "Most recent degree title (e.g., 'B.S. Computer Science')"},
			{Name: "graduation_year", Description: "Graduation year of the most recent degree"},
		},
	}
}
