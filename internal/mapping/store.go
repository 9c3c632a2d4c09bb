package mapping

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/application-autofill/internal/schemas"
)

// Store reads and writes mapping files under one directory, the
// original's config/<site>_mappings.json layout.
type Store struct {
	dir string
}

// NewStore builds a store over dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Path returns where a target's mapping lives.
func (s *Store) Path(target string) string {
	return filepath.Join(s.dir, SiteKey(target)+"_mappings.json")
}

// Save validates and writes a mapping.
func (s *Store) Save(m *Mapping) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal mapping: %w", err)
	}
	if err := schemas.ValidateSiteMapping(data); err != nil {
		return fmt.Errorf("mapping rejected by schema: %w", err)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create mappings directory: %w", err)
	}

	path := s.Path(m.Site)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write mapping %s: %w", path, err)
	}
	return nil
}

// Load reads and validates a target's mapping. A missing file returns
// (nil, nil); a fill run without a saved mapping is the normal case.
func (s *Store) Load(target string) (*Mapping, error) {
	path := s.Path(target)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read mapping %s: %w", path, err)
	}

	if err := schemas.ValidateSiteMapping(data); err != nil {
		return nil, fmt.Errorf("mapping %s rejected by schema: %w", path, err)
	}

	var m Mapping
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse mapping %s: %w", path, err)
	}
	return &m, nil
}

// List returns the site keys with saved mappings, sorted by filename.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list mappings: %w", err)
	}

	var sites []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, "_mappings.json") {
			continue
		}
		sites = append(sites, strings.TrimSuffix(name, "_mappings.json"))
	}
	return sites, nil
}
