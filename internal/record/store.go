package record

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jonathan/application-autofill/internal/schemas"
)

// Store persists the personal record at a fixed path, encrypted when a
// passphrase is configured. Records written without a passphrase are
// plain JSON and still load; Load looks at the envelope, not the
// configuration, to decide whether to decrypt.
type Store struct {
	path       string
	passphrase []byte
}

// NewStore builds a store for path. passphrase may be nil for plaintext
// operation.
func NewStore(path string, passphrase []byte) *Store {
	return &Store{path: path, passphrase: passphrase}
}

// Path returns the record location.
func (s *Store) Path() string {
	return s.path
}

// Encrypted reports whether saves will be encrypted.
func (s *Store) Encrypted() bool {
	return len(s.passphrase) > 0
}

// Load reads and validates the record. Validation happens on the raw
// JSON against the embedded schema before unmarshalling, so an unknown
// attribute is rejected as a SchemaViolationError even though the Go
// structs would silently drop it.
func (s *Store) Load() (*PersonalRecord, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &NotFoundError{Path: s.path}
		}
		return nil, fmt.Errorf("reading personal record: %w", err)
	}

	if IsEncrypted(data) {
		data, err = Decrypt(data, s.passphrase)
		if err != nil {
			return nil, err
		}
	}

	if err := schemas.ValidatePersonalRecord(data); err != nil {
		return nil, &SchemaViolationError{Message: "record rejected by schema", Cause: err}
	}

	var r PersonalRecord
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, &SchemaViolationError{Message: "record is not valid JSON", Cause: err}
	}
	if err := r.Validate(); err != nil {
		return nil, &SchemaViolationError{Message: "record fails value constraints", Cause: err}
	}
	return &r, nil
}

// Save validates and writes the record, encrypting when a passphrase is
// configured. The file is written 0600; it holds contact details either
// way.
func (s *Store) Save(r *PersonalRecord) error {
	if err := r.Validate(); err != nil {
		return &SchemaViolationError{Message: "record fails value constraints", Cause: err}
	}

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding personal record: %w", err)
	}

	if s.Encrypted() {
		data, err = Encrypt(data, s.passphrase)
		if err != nil {
			return err
		}
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("creating record directory: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("writing personal record: %w", err)
	}
	return nil
}

// Exists reports whether a record file is present.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}
