package main

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/application-autofill/internal/db"
)

var runsCommand = &cobra.Command{
	Use:   "runs",
	Short: "Browse the fill-run audit trail (requires a database)",
}

var runsListCommand = &cobra.Command{
	Use:   "list",
	Short: "List recent fill runs, newest first",
	RunE:  runRunsListCmd,
}

var runsShowCommand = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Print one run and its per-field decisions",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunsShowCmd,
}

var (
	runsConfigPath  string
	runsDatabaseURL string
	runsLimit       int
)

func init() {
	for _, c := range []*cobra.Command{runsListCommand, runsShowCommand} {
		c.Flags().StringVar(&runsConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
		c.Flags().StringVar(&runsDatabaseURL, "db-url", "", "PostgreSQL connection URL for the audit store (optional, defaults to DATABASE_URL env var)")
	}
	runsListCommand.Flags().IntVar(&runsLimit, "limit", 20, "Maximum number of runs to list")

	runsCommand.AddCommand(runsListCommand)
	runsCommand.AddCommand(runsShowCommand)
	rootCmd.AddCommand(runsCommand)
}

func openAuditStore(cmd *cobra.Command) (*db.DB, error) {
	cfg, err := loadConfig(runsConfigPath, false)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = runsDatabaseURL
	}
	url := cfg.DatabaseURL
	if url == "" {
		url = os.Getenv(envDatabase)
	}
	if url == "" {
		return nil, fmt.Errorf("no database configured: set --db-url or %s", envDatabase)
	}
	return db.Connect(cmd.Context(), url)
}

func runRunsListCmd(cmd *cobra.Command, _ []string) error {
	audit, err := openAuditStore(cmd)
	if err != nil {
		return err
	}
	defer audit.Close()

	runs, err := audit.ListRuns(cmd.Context(), runsLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}

	for _, r := range runs {
		fmt.Printf("%s  %-19s %-6s %-10s filled=%d unmatched=%d skipped=%d  %s\n",
			r.ID, r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			r.Mode, r.Status, r.Filled, r.Unmatched, r.Skipped, r.Target)
	}
	return nil
}

func runRunsShowCmd(cmd *cobra.Command, args []string) error {
	runID, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid run ID %q: %w", args[0], err)
	}

	audit, err := openAuditStore(cmd)
	if err != nil {
		return err
	}
	defer audit.Close()

	run, err := audit.GetRun(cmd.Context(), runID)
	if err != nil {
		return err
	}
	if run == nil {
		return fmt.Errorf("no run with ID %s", runID)
	}

	fmt.Printf("Run:       %s\n", run.ID)
	fmt.Printf("Target:    %s\n", run.Target)
	fmt.Printf("Mode:      %s\n", run.Mode)
	fmt.Printf("Status:    %s\n", run.Status)
	fmt.Printf("Started:   %s\n", run.StartedAt.Local().Format(time.RFC3339))
	if run.CompletedAt != nil {
		fmt.Printf("Completed: %s\n", run.CompletedAt.Local().Format(time.RFC3339))
	}
	if run.ApprovalJTI != nil {
		fmt.Printf("Approval:  %s\n", *run.ApprovalJTI)
	}
	fmt.Printf("Counts:    filled=%d unmatched=%d skipped=%d\n", run.Filled, run.Unmatched, run.Skipped)

	decisions, err := audit.GetDecisions(cmd.Context(), runID)
	if err != nil {
		return err
	}
	if len(decisions) == 0 {
		return nil
	}

	fmt.Println("\nFields:")
	for _, d := range decisions {
		attr := d.Attribute
		if attr == "" {
			attr = "-"
		}
		line := fmt.Sprintf("  %2d. %-30s %-22s %.2f %-6s %s",
			d.Position+1, truncate(d.Label, 30), attr, d.Confidence, d.Source, d.Status)
		if d.Note != "" {
			line += "  (" + d.Note + ")"
		}
		fmt.Println(line)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
