package schemas

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/application-autofill/internal/schema"
)

func TestEmbeddedSchemas_ValidJSON(t *testing.T) {
	for _, name := range []string{PersonalRecordSchema, SiteMappingSchema} {
		t.Run(name, func(t *testing.T) {
			content, err := Schema(name)
			require.NoError(t, err, "schema must be embedded")

			var v map[string]interface{}
			require.NoError(t, json.Unmarshal([]byte(content), &v))
			assert.Contains(t, v, "$schema")
			assert.Contains(t, v, "properties")
		})
	}
}

func TestSchema_Unknown(t *testing.T) {
	_, err := Schema("nope.schema.json")
	require.Error(t, err)

	var loadErr *SchemaLoadError
	assert.ErrorAs(t, err, &loadErr)
}

// The mapping schema's attribute enum must track the attribute catalog; an
// attribute added to one without the other breaks saved mappings.
func TestSiteMappingSchema_EnumMatchesCatalog(t *testing.T) {
	content, err := Schema(SiteMappingSchema)
	require.NoError(t, err)

	var doc struct {
		Properties struct {
			Fields struct {
				Items struct {
					Properties struct {
						Attribute struct {
							Enum []string `json:"enum"`
						} `json:"attribute"`
					} `json:"properties"`
				} `json:"items"`
			} `json:"fields"`
		} `json:"properties"`
	}
	require.NoError(t, json.Unmarshal([]byte(content), &doc))

	var want []string
	for _, name := range schema.Names() {
		want = append(want, string(name))
	}
	assert.ElementsMatch(t, want, doc.Properties.Fields.Items.Properties.Attribute.Enum)
}

func TestValidatePersonalRecord(t *testing.T) {
	valid := `{
		"personal_info": {
			"first_name": "Jane",
			"last_name": "Doe",
			"email": "jane.doe@example.com",
			"phone": "+1 555 0100",
			"address": {"street": "1 Main St", "city": "Springfield", "state": "IL", "zip_code": "62704", "country": "USA"}
		},
		"education": {"degree": "B.S.", "field_of_study": "CS", "university": "State", "graduation_year": "2024"},
		"work_authorization": {"country": "USA", "visa_status": "Citizen", "requires_sponsorship": false},
		"files": {"resume_path": "/home/jane/resume.pdf"},
		"preferences": {"remote_work": true, "willing_to_relocate": false}
	}`
	assert.NoError(t, ValidatePersonalRecord([]byte(valid)))
}

func TestValidatePersonalRecord_Violations(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{
			name: "unknown top-level attribute group",
			doc: `{
				"personal_info": {"first_name": "J", "last_name": "D", "email": "j@example.com", "phone": "1"},
				"files": {"resume_path": "/r.pdf"},
				"shoe_size": "44"
			}`,
		},
		{
			name: "unknown address part",
			doc: `{
				"personal_info": {"first_name": "J", "last_name": "D", "email": "j@example.com", "phone": "1",
					"address": {"planet": "Earth"}},
				"files": {"resume_path": "/r.pdf"}
			}`,
		},
		{
			name: "missing resume path",
			doc: `{
				"personal_info": {"first_name": "J", "last_name": "D", "email": "j@example.com", "phone": "1"},
				"files": {}
			}`,
		},
		{
			name: "boolean preference as string",
			doc: `{
				"personal_info": {"first_name": "J", "last_name": "D", "email": "j@example.com", "phone": "1"},
				"files": {"resume_path": "/r.pdf"},
				"preferences": {"remote_work": "yes"}
			}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePersonalRecord([]byte(tt.doc))
			require.Error(t, err)

			var validationErr *ValidationError
			assert.ErrorAs(t, err, &validationErr)
			assert.NotEmpty(t, validationErr.Errors)
		})
	}
}

func TestValidateSiteMapping(t *testing.T) {
	valid := `{
		"site": "boards.example.com",
		"created_at": "2026-08-24T10:00:00Z",
		"fields": [
			{"locator": "css:#first_name", "label": "First Name", "attribute": "first_name"},
			{"locator": "screen:10,20,200,30", "label": "Email", "attribute": "email"}
		]
	}`
	assert.NoError(t, ValidateSiteMapping([]byte(valid)))

	badAttribute := `{
		"site": "boards.example.com",
		"fields": [{"locator": "css:#x", "attribute": "shoe_size"}]
	}`
	err := ValidateSiteMapping([]byte(badAttribute))
	require.Error(t, err)

	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
}
