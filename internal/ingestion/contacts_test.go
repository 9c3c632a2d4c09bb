package ingestion

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

const sampleResume = `Jane Q. Doe
Software Engineer

jane.doe@example.com | (555) 010-0199
https://www.linkedin.com/in/janedoe
https://janedoe.dev

EDUCATION
State University, B.S. Computer Science, 2021
`

func TestExtractContacts(t *testing.T) {
	p := ExtractContacts(sampleResume)

	assert.Equal(t, "jane.doe@example.com", p.Email)
	assert.Equal(t, "(555) 010-0199", p.Phone)
	assert.Equal(t, "https://www.linkedin.com/in/janedoe", p.LinkedIn)
	assert.Equal(t, "https://janedoe.dev", p.Website)
	assert.Equal(t, "Jane", p.FirstName)
	assert.Equal(t, "Doe", p.LastName)
}

func TestExtractContacts_Empty(t *testing.T) {
	p := ExtractContacts("")
	assert.Equal(t, ContactProfile{}, p)
}

func TestExtractContacts_NameSkipsContactLines(t *testing.T) {
	text := "jane@example.com\nJane Doe\n"
	p := ExtractContacts(text)

	assert.Equal(t, "Jane", p.FirstName)
	assert.Equal(t, "Doe", p.LastName)
}

func TestExtractContacts_NoName(t *testing.T) {
	text := "experienced software engineer\nworked on many systems\n"
	p := ExtractContacts(text)

	assert.Empty(t, p.FirstName)
	assert.Empty(t, p.LastName)
}

func TestExtractContacts_WebsiteSkipsLinkedIn(t *testing.T) {
	text := "https://linkedin.com/in/someone and later https://example.org/portfolio"
	p := ExtractContacts(text)

	assert.Equal(t, "https://example.org/portfolio", p.Website)
}

func TestExtractContacts_PhoneVariants(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"dashes", "call 555-010-0199 anytime"},
		{"dots", "555.010.0199"},
		{"international", "+1 555 010 0199"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ExtractContacts(tt.text)
			assert.NotEmpty(t, p.Phone)
		})
	}
}

func TestExtractContactsWithLLM_RequiresKey(t *testing.T) {
	_, err := ExtractContactsWithLLM(context.Background(), sampleResume, "")
	assert.Error(t, err)
}
