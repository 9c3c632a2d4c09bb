package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/application-autofill/internal/config"
	"github.com/jonathan/application-autofill/internal/fill"
)

// Environment variable names shared across subcommands.
const (
	envAPIKey     = "GEMINI_API_KEY"
	envPassphrase = "AUTOFILL_PASSPHRASE"
	envDatabase   = "DATABASE_URL"
)

// loadConfig loads the optional config file and layers the built-in
// defaults under it. Explicit CLI flags are applied by the caller after
// this, so the precedence is flags > file > defaults.
func loadConfig(configPath string, verbose bool) (config.Config, error) {
	var cfg config.Config
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return cfg, err
		}
		cfg = *loaded
		if verbose {
			fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", configPath)
		}
	}
	return cfg.MergeWithDefaults(config.DefaultConfig()), nil
}

// fillOptions converts a merged config into run options, pulling the
// secrets that never belong in a config flag from the environment.
func fillOptions(cfg config.Config, target string) fill.Options {
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv(envAPIKey)
	}
	databaseURL := cfg.DatabaseURL
	if databaseURL == "" {
		databaseURL = os.Getenv(envDatabase)
	}

	return fill.Options{
		Target:              target,
		RecordPath:          cfg.RecordPath,
		Passphrase:          passphraseFromEnv(),
		MappingsDir:         cfg.MappingsDir,
		MinAcceptConfidence: cfg.MinAcceptConfidence,
		AIThreshold:         cfg.AIThreshold,
		KindMismatchPenalty: cfg.KindMismatchPenalty,
		AITimeoutSeconds:    cfg.AITimeoutSeconds,
		AIParallelism:       cfg.AIParallelism,
		APIKey:              apiKey,
		DatabaseURL:         databaseURL,
		UseBrowser:          cfg.UseBrowser,
		Verbose:             cfg.Verbose,
	}
}

func passphraseFromEnv() []byte {
	if p := os.Getenv(envPassphrase); p != "" {
		return []byte(p)
	}
	return nil
}

// applyCommonOverrides copies the flags every fill-like command shares
// onto the config, respecting only flags the user actually set.
func applyCommonOverrides(cmd *cobra.Command, cfg *config.Config, apiKey, recordPath, mappingsDir, dbURL string, verbose bool) {
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = apiKey
	}
	if cmd.Flags().Changed("record") {
		cfg.RecordPath = recordPath
	}
	if cmd.Flags().Changed("mappings-dir") {
		cfg.MappingsDir = mappingsDir
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = dbURL
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = verbose
	}
}
