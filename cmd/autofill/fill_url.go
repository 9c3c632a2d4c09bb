package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/application-autofill/internal/fill"
)

var fillCommand = &cobra.Command{
	Use:   "fill",
	Short: "Fill a job-application form at a URL",
	Long: `Opens the page in a Chrome window, detects the form, matches each field
against your personal record, and shows a preview. Only after you approve
the preview are values written into the page. The form is never submitted.

Configuration can be loaded from a JSON file using --config. Command-line
arguments override config file values.`,
	RunE: runFillCmd,
}

var (
	fillConfigPath   string
	fillURL          string
	fillRecordPath   string
	fillMappingsDir  string
	fillAPIKey       string
	fillDatabaseURL  string
	fillMinAccept    float64
	fillAIThreshold  float64
	fillKindPenalty  float64
	fillAITimeoutSec int
	fillDryRun       bool
	fillUnmask       bool
	fillVerbose      bool
)

func init() {
	fillCommand.Flags().StringVar(&fillConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	fillCommand.Flags().StringVarP(&fillURL, "url", "u", "", "URL of the application form (required)")
	fillCommand.Flags().StringVar(&fillRecordPath, "record", "", "Path to the personal record file")
	fillCommand.Flags().StringVar(&fillMappingsDir, "mappings-dir", "", "Directory holding saved site mappings")
	fillCommand.Flags().Float64Var(&fillMinAccept, "min-confidence", 0, "Matches below this confidence are left unmatched (0-1)")
	fillCommand.Flags().Float64Var(&fillAIThreshold, "ai-threshold", 0, "Rule confidence below this consults the AI matcher (0-1)")
	fillCommand.Flags().Float64Var(&fillKindPenalty, "kind-penalty", 0, "Confidence deduction for unexpected control kinds (0-1)")
	fillCommand.Flags().IntVar(&fillAITimeoutSec, "ai-timeout", 0, "Per-field AI matcher timeout in seconds")
	fillCommand.Flags().BoolVar(&fillDryRun, "dry-run", false, "Stop after the preview without filling anything")
	fillCommand.Flags().BoolVar(&fillUnmask, "unmask", false, "Show sensitive values unmasked in the preview")
	fillCommand.Flags().BoolVarP(&fillVerbose, "verbose", "v", false, "Print detailed debug information")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	fillCommand.Flags().StringVar(&fillAPIKey, "api-key", "", "Gemini API key (optional, defaults to GEMINI_API_KEY env var)")

	// Database URL for run auditing
	fillCommand.Flags().StringVar(&fillDatabaseURL, "db-url", "", "PostgreSQL connection URL for the audit store (optional, defaults to DATABASE_URL env var)")

	_ = fillCommand.MarkFlagRequired("url")

	rootCmd.AddCommand(fillCommand)
}

func runFillCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(fillConfigPath, fillVerbose)
	if err != nil {
		return err
	}

	applyCommonOverrides(cmd, &cfg, fillAPIKey, fillRecordPath, fillMappingsDir, fillDatabaseURL, fillVerbose)
	if cmd.Flags().Changed("min-confidence") {
		cfg.MinAcceptConfidence = fillMinAccept
	}
	if cmd.Flags().Changed("ai-threshold") {
		cfg.AIThreshold = fillAIThreshold
	}
	if cmd.Flags().Changed("kind-penalty") {
		cfg.KindMismatchPenalty = fillKindPenalty
	}
	if cmd.Flags().Changed("ai-timeout") {
		cfg.AITimeoutSeconds = fillAITimeoutSec
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	opts := fillOptions(cfg, fillURL)
	opts.DryRun = fillDryRun
	opts.Unmask = fillUnmask

	if err := fill.RunWeb(context.Background(), opts); err != nil {
		return fmt.Errorf("fill failed: %w", err)
	}
	return nil
}
