// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Paths
	RecordPath  string `json:"record_path,omitempty"`  // Personal record file (encrypted when a passphrase is set)
	MappingsDir string `json:"mappings_dir,omitempty"` // Directory holding saved per-site field mappings

	// Matching thresholds
	MinAcceptConfidence float64 `json:"min_accept_confidence,omitempty"` // Matches below this are left unmatched (0.0-1.0)
	AIThreshold         float64 `json:"ai_threshold,omitempty"`          // Rule confidence below this consults the AI matcher (0.0-1.0)
	KindMismatchPenalty float64 `json:"kind_mismatch_penalty,omitempty"` // Confidence deduction when a control kind is unexpected (0.0-1.0)
	AITimeoutSeconds    int     `json:"ai_timeout_seconds,omitempty"`    // Per-field bound on an AI matcher call
	AIParallelism       int     `json:"ai_parallelism,omitempty"`        // Concurrent AI matcher calls per form

	// Behavior
	APIKey      string `json:"api_key,omitempty"`      // Gemini API key
	UseBrowser  bool   `json:"use_browser,omitempty"`  // Always render pages in the headless browser
	Verbose     bool   `json:"verbose,omitempty"`      // Print detailed debug information
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL for the audit store (optional)
}

// DefaultConfig returns the built-in defaults applied when neither the
// config file nor CLI flags say otherwise.
func DefaultConfig() Config {
	return Config{
		RecordPath:          "config/personal_record.json",
		MappingsDir:         "config/mappings",
		MinAcceptConfidence: 0.5,
		AIThreshold:         0.6,
		KindMismatchPenalty: 0.2,
		AITimeoutSeconds:    10,
		AIParallelism:       4,
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.MinAcceptConfidence < 0 || c.MinAcceptConfidence > 1 {
		return fmt.Errorf("config error: 'min_accept_confidence' must be between 0 and 1")
	}
	if c.AIThreshold < 0 || c.AIThreshold > 1 {
		return fmt.Errorf("config error: 'ai_threshold' must be between 0 and 1")
	}
	if c.KindMismatchPenalty < 0 || c.KindMismatchPenalty > 1 {
		return fmt.Errorf("config error: 'kind_mismatch_penalty' must be between 0 and 1")
	}
	if c.AITimeoutSeconds < 0 {
		return fmt.Errorf("config error: 'ai_timeout_seconds' must be non-negative")
	}
	if c.AIParallelism < 0 {
		return fmt.Errorf("config error: 'ai_parallelism' must be non-negative")
	}
	return nil
}

// MergeWithDefaults returns a new Config with unset fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.RecordPath == "" {
		result.RecordPath = defaults.RecordPath
	}
	if result.MappingsDir == "" {
		result.MappingsDir = defaults.MappingsDir
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}

	// Numeric fields: zero means unset. A literal zero threshold is not
	// expressible in the file; use the CLI flag for that.
	if result.MinAcceptConfidence == 0 {
		result.MinAcceptConfidence = defaults.MinAcceptConfidence
	}
	if result.AIThreshold == 0 {
		result.AIThreshold = defaults.AIThreshold
	}
	if result.KindMismatchPenalty == 0 {
		result.KindMismatchPenalty = defaults.KindMismatchPenalty
	}
	if result.AITimeoutSeconds == 0 {
		result.AITimeoutSeconds = defaults.AITimeoutSeconds
	}
	if result.AIParallelism == 0 {
		result.AIParallelism = defaults.AIParallelism
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
