// Package main provides the entry point for the application-autofill CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "autofill",
	Short: "Fill job-application forms from your personal record",
	Long: `Autofill transcribes a fixed set of personal data into job-application
forms, on web pages (driven browser) or arbitrary on-screen forms
(screenshot + OCR). Every run stops at a preview for your approval;
nothing is ever submitted for you.`,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
