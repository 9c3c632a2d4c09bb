package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_ValidPrompt(t *testing.T) {
	prompt, err := Get("match.json", "classify-field")
	require.NoError(t, err)
	assert.NotEmpty(t, prompt)
	assert.Contains(t, prompt, "personal-data attribute")
}

func TestGet_UnknownFile(t *testing.T) {
	_, err := Get("nonexistent.json", "some-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not embedded")
}

func TestGet_UnknownKey(t *testing.T) {
	_, err := Get("match.json", "nonexistent-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestMustGet_Panics(t *testing.T) {
	assert.Panics(t, func() {
		MustGet("nonexistent.json", "some-key")
	})
}

func TestMustGet_ValidPrompt(t *testing.T) {
	assert.NotPanics(t, func() {
		prompt := MustGet("match.json", "classify-field")
		assert.NotEmpty(t, prompt)
	})
}

func TestFormat(t *testing.T) {
	template := "Field label: {{.Label}}, control kind: {{.ControlKind}}"
	data := map[string]string{
		"Label":       "First Name",
		"ControlKind": "text",
	}

	result := Format(template, data)
	assert.Equal(t, "Field label: First Name, control kind: text", result)
}

func TestFormat_NoPlaceholders(t *testing.T) {
	template := "No placeholders here"
	data := map[string]string{"Key": "Value"}

	result := Format(template, data)
	assert.Equal(t, template, result)
}

func TestFormat_MissingValueKeepsPlaceholder(t *testing.T) {
	result := Format("Hello {{.Name}}", map[string]string{})
	assert.Equal(t, "Hello {{.Name}}", result)
}

func TestKeys(t *testing.T) {
	keys, err := Keys("match.json")
	require.NoError(t, err)
	assert.Contains(t, keys, "classify-field")
}
