package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		name     string
		attr     Attribute
		wantKind ValueKind
		found    bool
	}{
		{"first name is scalar", FirstName, KindScalar, true},
		{"full name is composite", FullName, KindComposite, true},
		{"address is composite", Address, KindComposite, true},
		{"resume is file", Resume, KindFile, true},
		{"sponsorship is boolean", RequiresSponsorship, KindBoolean, true},
		{"unknown attribute", Attribute("shoe_size"), "", false},
		{"empty attribute", Attribute(""), "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, ok := Lookup(tt.attr)
			assert.Equal(t, tt.found, ok)
			if tt.found {
				assert.Equal(t, tt.attr, spec.Name)
				assert.Equal(t, tt.wantKind, spec.Kind)
			}
		})
	}
}

func TestKnown(t *testing.T) {
	assert.True(t, Known(Email))
	assert.True(t, Known(CoverLetter))
	assert.False(t, Known(Attribute("favorite_color")))
}

func TestNamesStableAndUnique(t *testing.T) {
	first := Names()
	second := Names()
	require.Equal(t, first, second, "catalog order must be deterministic")

	seen := make(map[Attribute]bool, len(first))
	for _, name := range first {
		assert.False(t, seen[name], "duplicate attribute %q", name)
		seen[name] = true
	}
}

func TestAllCoversEveryConstant(t *testing.T) {
	// File attributes only land on file controls; everything else never does.
	for _, spec := range All() {
		if spec.Kind == KindFile {
			assert.True(t, spec.ExpectsControl(ClassFile), "%s should expect file controls", spec.Name)
			assert.False(t, spec.ExpectsControl(ClassText), "%s should not expect text controls", spec.Name)
			continue
		}
		assert.False(t, spec.ExpectsControl(ClassFile), "%s should not expect file controls", spec.Name)
	}
}

func TestExpectsControl(t *testing.T) {
	email, ok := Lookup(Email)
	require.True(t, ok)
	assert.True(t, email.ExpectsControl(ClassText))
	assert.True(t, email.ExpectsControl(ClassTextarea))
	assert.False(t, email.ExpectsControl(ClassCheckbox))

	sponsor, ok := Lookup(RequiresSponsorship)
	require.True(t, ok)
	assert.True(t, sponsor.ExpectsControl(ClassCheckbox))
	assert.True(t, sponsor.ExpectsControl(ClassSelect))
	assert.False(t, sponsor.ExpectsControl(ClassText))
}
