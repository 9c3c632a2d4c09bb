package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/application-autofill/internal/fill"
)

var screenCommand = &cobra.Command{
	Use:   "screen",
	Short: "Fill the form currently visible on screen",
	Long: `Takes a screenshot, recognizes field labels via OCR, matches them against
your personal record, and shows a preview. Only after you approve the
preview are values typed into the fields via synthetic input.

Requires tesseract, xdotool, and a screenshot tool in PATH.`,
	RunE: runScreenCmd,
}

var (
	screenConfigPath  string
	screenLabel       string
	screenRecordPath  string
	screenMappingsDir string
	screenAPIKey      string
	screenDatabaseURL string
	screenDryRun      bool
	screenUnmask      bool
	screenVerbose     bool
)

func init() {
	screenCommand.Flags().StringVar(&screenConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	screenCommand.Flags().StringVar(&screenLabel, "label", "screen", "Name for this form in mappings and the audit trail")
	screenCommand.Flags().StringVar(&screenRecordPath, "record", "", "Path to the personal record file")
	screenCommand.Flags().StringVar(&screenMappingsDir, "mappings-dir", "", "Directory holding saved site mappings")
	screenCommand.Flags().BoolVar(&screenDryRun, "dry-run", false, "Stop after the preview without filling anything")
	screenCommand.Flags().BoolVar(&screenUnmask, "unmask", false, "Show sensitive values unmasked in the preview")
	screenCommand.Flags().BoolVarP(&screenVerbose, "verbose", "v", false, "Print detailed debug information")
	screenCommand.Flags().StringVar(&screenAPIKey, "api-key", "", "Gemini API key (optional, defaults to GEMINI_API_KEY env var)")
	screenCommand.Flags().StringVar(&screenDatabaseURL, "db-url", "", "PostgreSQL connection URL for the audit store (optional, defaults to DATABASE_URL env var)")

	rootCmd.AddCommand(screenCommand)
}

func runScreenCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(screenConfigPath, screenVerbose)
	if err != nil {
		return err
	}

	applyCommonOverrides(cmd, &cfg, screenAPIKey, screenRecordPath, screenMappingsDir, screenDatabaseURL, screenVerbose)
	if err := cfg.Validate(); err != nil {
		return err
	}

	opts := fillOptions(cfg, screenLabel)
	opts.DryRun = screenDryRun
	opts.Unmask = screenUnmask

	if err := fill.RunScreen(context.Background(), opts); err != nil {
		return fmt.Errorf("screen fill failed: %w", err)
	}
	return nil
}
