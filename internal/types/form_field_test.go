package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseControlKind(t *testing.T) {
	tests := []struct {
		name      string
		tag       string
		inputType string
		want      ControlKind
	}{
		{name: "textarea tag wins", tag: "textarea", inputType: "", want: ControlTextarea},
		{name: "select tag wins", tag: "select", inputType: "", want: ControlSelect},
		{name: "checkbox input", tag: "input", inputType: "checkbox", want: ControlCheckbox},
		{name: "radio input", tag: "input", inputType: "radio", want: ControlRadio},
		{name: "file input", tag: "input", inputType: "file", want: ControlFile},
		{name: "plain text input", tag: "input", inputType: "text", want: ControlText},
		{name: "email falls back to text", tag: "input", inputType: "email", want: ControlText},
		{name: "missing type falls back to text", tag: "input", inputType: "", want: ControlText},
		{name: "case insensitive", tag: "INPUT", inputType: "CHECKBOX", want: ControlCheckbox},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseControlKind(tt.tag, tt.inputType))
		})
	}
}

func TestLocatorRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		loc  Locator
		str  string
	}{
		{name: "css selector", loc: CSSLocator("#first_name"), str: "css:#first_name"},
		{name: "css with attribute selector", loc: CSSLocator(`input[name="email"]`), str: `css:input[name="email"]`},
		{name: "screen region", loc: ScreenLocator(120, 340, 200, 28), str: "screen:120,340,200,28"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.str, tt.loc.String())

			parsed, err := ParseLocator(tt.str)
			require.NoError(t, err)
			assert.Equal(t, tt.loc, parsed)
		})
	}
}

func TestParseLocatorErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "no prefix", input: "#first_name"},
		{name: "unknown kind", input: "xpath://input"},
		{name: "empty selector", input: "css:"},
		{name: "too few coordinates", input: "screen:1,2,3"},
		{name: "non numeric coordinate", input: "screen:1,2,3,x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLocator(tt.input)
			assert.Error(t, err)
		})
	}
}

func TestLocatorCenter(t *testing.T) {
	loc := ScreenLocator(100, 200, 50, 20)
	x, y := loc.Center()
	assert.Equal(t, 125, x)
	assert.Equal(t, 210, y)
}

func TestHasOptions(t *testing.T) {
	sel := NewFormField("State", ControlSelect, CSSLocator("#state"))
	sel.Options = []string{"California", "Oregon"}
	assert.True(t, sel.HasOptions())

	empty := NewFormField("State", ControlSelect, CSSLocator("#state"))
	assert.False(t, empty.HasOptions(), "select without options has nothing to verify against")

	text := NewFormField("City", ControlText, CSSLocator("#city"))
	text.Options = []string{"stray"}
	assert.False(t, text.HasOptions(), "options are only meaningful on choice controls")
}
