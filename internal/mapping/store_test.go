package mapping

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/application-autofill/internal/schema"
)

func TestStoreRoundTrip(t *testing.T) {
	store := NewStore(t.TempDir())

	m := &Mapping{
		Site: "https://boards.greenhouse.io/acme/jobs/1",
		Fields: []Field{
			{Locator: "css:#first_name", Label: "First Name", Attribute: schema.FirstName},
			{Locator: "screen:10,20,200,30", Label: "Email", Attribute: schema.Email},
		},
	}
	require.NoError(t, store.Save(m))

	loaded, err := store.Load("https://boards.greenhouse.io/acme/jobs/1")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, m.Site, loaded.Site)
	require.Len(t, loaded.Fields, 2)
	assert.Equal(t, schema.Email, loaded.Fields[1].Attribute)
}

func TestStoreLoad_Missing(t *testing.T) {
	store := NewStore(t.TempDir())

	m, err := store.Load("https://example.com/apply")
	require.NoError(t, err)
	assert.Nil(t, m)
}

func TestStoreSave_RejectsBadAttribute(t *testing.T) {
	store := NewStore(t.TempDir())

	m := &Mapping{
		Site:   "example.com",
		Fields: []Field{{Locator: "css:#x", Attribute: "no_such_attribute"}},
	}

	err := store.Save(m)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema")
}

func TestStoreLoad_RejectsTamperedFile(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)

	path := filepath.Join(dir, "example_com_mappings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"site":"example.com","fields":[{"locator":"","attribute":"email"}]}`), 0o644))

	_, err := store.Load("example.com")
	require.Error(t, err)
}

func TestStoreList(t *testing.T) {
	store := NewStore(t.TempDir())

	require.NoError(t, store.Save(&Mapping{Site: "https://a.example.com/x", Fields: []Field{{Locator: "css:#e", Attribute: schema.Email}}}))
	require.NoError(t, store.Save(&Mapping{Site: "b.example.com", Fields: []Field{{Locator: "css:#p", Attribute: schema.Phone}}}))

	sites, err := store.List()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a_example_com", "b_example_com"}, sites)
}

func TestStoreList_NoDir(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "never_created"))

	sites, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, sites)
}
