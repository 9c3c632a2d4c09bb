package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/application-autofill/internal/ingestion"
	"github.com/jonathan/application-autofill/internal/record"
)

var setupCommand = &cobra.Command{
	Use:   "setup",
	Short: "Create or update your personal record interactively",
	Long: `Walks through every attribute the matcher can fill and saves the record,
encrypted when AUTOFILL_PASSPHRASE is set. With --from-resume, contact
details are extracted from your résumé and offered as defaults.`,
	RunE: runSetupCmd,
}

var (
	setupConfigPath string
	setupRecordPath string
	setupFromResume string
	setupAPIKey     string
	setupVerbose    bool
)

func init() {
	setupCommand.Flags().StringVar(&setupConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	setupCommand.Flags().StringVar(&setupRecordPath, "record", "", "Path to the personal record file")
	setupCommand.Flags().StringVar(&setupFromResume, "from-resume", "", "Prefill the wizard from a résumé file (PDF or text)")
	setupCommand.Flags().StringVar(&setupAPIKey, "api-key", "", "Gemini API key for résumé extraction (optional, defaults to GEMINI_API_KEY env var)")
	setupCommand.Flags().BoolVarP(&setupVerbose, "verbose", "v", false, "Print detailed debug information")

	rootCmd.AddCommand(setupCommand)
}

func runSetupCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(setupConfigPath, setupVerbose)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("record") {
		cfg.RecordPath = setupRecordPath
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = setupAPIKey
	}
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv(envAPIKey)
	}

	prefill := loadPrefill(cmd.Context(), setupFromResume, apiKey, os.Stdout)

	store := record.NewStore(cfg.RecordPath, passphraseFromEnv())
	existing, err := store.Load()
	if err != nil {
		// A fresh setup has no record yet; anything else (bad
		// passphrase, schema violation) should stop the wizard.
		var notFound *record.NotFoundError
		if !errors.As(err, &notFound) {
			return err
		}
		existing = &record.PersonalRecord{}
	}
	mergePrefill(existing, prefill)

	rec := runWizard(os.Stdin, os.Stdout, existing)

	warnMissingFiles(os.Stdout, rec)

	if err := store.Save(rec); err != nil {
		return err
	}

	if store.Encrypted() {
		fmt.Printf("Saved encrypted record to %s\n", store.Path())
	} else {
		fmt.Printf("Saved record to %s\n", store.Path())
		fmt.Println("Tip: set AUTOFILL_PASSPHRASE to encrypt it at rest.")
	}
	return nil
}

// loadPrefill extracts contact details from a résumé when one is given.
// Extraction failures only cost the defaults, never the wizard.
func loadPrefill(ctx context.Context, resumePath, apiKey string, out io.Writer) *ingestion.ContactProfile {
	if resumePath == "" {
		return nil
	}

	text, err := ingestion.ReadResume(resumePath)
	if err != nil {
		fmt.Fprintf(out, "Warning: %v\n", err)
		return nil
	}

	if apiKey != "" {
		profile, err := ingestion.ExtractContactsWithLLM(ctx, text, apiKey)
		if err == nil {
			fmt.Fprintln(out, "Prefilled from résumé (AI extraction).")
			return profile
		}
		fmt.Fprintf(out, "Warning: AI extraction failed, using pattern matching: %v\n", err)
	}

	profile := ingestion.ExtractContacts(text)
	fmt.Fprintln(out, "Prefilled from résumé.")
	return &profile
}

// mergePrefill fills empty record slots from the extracted profile.
// Existing answers always win over extraction.
func mergePrefill(rec *record.PersonalRecord, p *ingestion.ContactProfile) {
	if p == nil {
		return
	}
	setIfEmpty := func(dst *string, v string) {
		if *dst == "" && v != "" {
			*dst = v
		}
	}
	setIfEmpty(&rec.PersonalInfo.FirstName, p.FirstName)
	setIfEmpty(&rec.PersonalInfo.LastName, p.LastName)
	setIfEmpty(&rec.PersonalInfo.Email, p.Email)
	setIfEmpty(&rec.PersonalInfo.Phone, p.Phone)
	setIfEmpty(&rec.PersonalInfo.LinkedIn, p.LinkedIn)
	setIfEmpty(&rec.PersonalInfo.Website, p.Website)
	setIfEmpty(&rec.Education.University, p.University)
	setIfEmpty(&rec.Education.Degree, p.Degree)
	setIfEmpty(&rec.Education.GraduationYear, p.GraduationYear)
}

// runWizard prompts for every attribute, offering current values as
// defaults. Enter keeps the default; "-" clears an optional field.
func runWizard(in io.Reader, out io.Writer, rec *record.PersonalRecord) *record.PersonalRecord {
	scanner := bufio.NewScanner(in)
	ask := func(label string, current *string) {
		if *current != "" {
			fmt.Fprintf(out, "%s [%s]: ", label, *current)
		} else {
			fmt.Fprintf(out, "%s: ", label)
		}
		if !scanner.Scan() {
			return
		}
		answer := strings.TrimSpace(scanner.Text())
		switch answer {
		case "":
		case "-":
			*current = ""
		default:
			*current = answer
		}
	}
	askBool := func(label string, current *bool) {
		def := "n"
		if *current {
			def = "y"
		}
		fmt.Fprintf(out, "%s (y/n) [%s]: ", label, def)
		if !scanner.Scan() {
			return
		}
		switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
		case "y", "yes":
			*current = true
		case "n", "no":
			*current = false
		}
	}

	fmt.Fprintln(out, "Personal information")
	ask("First name", &rec.PersonalInfo.FirstName)
	ask("Last name", &rec.PersonalInfo.LastName)
	ask("Email", &rec.PersonalInfo.Email)
	ask("Phone", &rec.PersonalInfo.Phone)
	ask("Street address", &rec.PersonalInfo.Address.Street)
	ask("City", &rec.PersonalInfo.Address.City)
	ask("State/province", &rec.PersonalInfo.Address.State)
	ask("ZIP/postal code", &rec.PersonalInfo.Address.Zip)
	ask("Country", &rec.PersonalInfo.Address.Country)
	ask("LinkedIn URL", &rec.PersonalInfo.LinkedIn)
	ask("Website/portfolio URL", &rec.PersonalInfo.Website)

	fmt.Fprintln(out, "\nEducation")
	ask("University", &rec.Education.University)
	ask("Degree", &rec.Education.Degree)
	ask("Field of study", &rec.Education.FieldOfStudy)
	ask("Graduation year", &rec.Education.GraduationYear)
	ask("GPA", &rec.Education.GPA)

	fmt.Fprintln(out, "\nWork authorization")
	ask("Visa status", &rec.WorkAuthorization.VisaStatus)
	askBool("Requires sponsorship", &rec.WorkAuthorization.RequiresSponsorship)

	fmt.Fprintln(out, "\nDocuments")
	ask("Résumé path", &rec.Files.ResumePath)
	ask("Cover letter path", &rec.Files.CoverLetterPath)
	ask("Transcript path", &rec.Files.TranscriptPath)

	fmt.Fprintln(out, "\nPreferences")
	ask("Salary expectation", &rec.Preferences.SalaryExpectation)
	ask("Earliest start date", &rec.Preferences.StartDate)
	askBool("Open to remote work", &rec.Preferences.RemoteWork)
	askBool("Willing to relocate", &rec.Preferences.WillingToRelocate)

	return rec
}

// warnMissingFiles points out document paths that do not resolve yet.
// A missing file is allowed at setup time; rendering checks again when
// a form actually asks for it.
func warnMissingFiles(out io.Writer, rec *record.PersonalRecord) {
	paths := map[string]string{
		"résumé":       rec.Files.ResumePath,
		"cover letter": rec.Files.CoverLetterPath,
		"transcript":   rec.Files.TranscriptPath,
	}
	for name, path := range paths {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			fmt.Fprintf(out, "Warning: %s file not found at %s (uploads for it will be skipped)\n", name, path)
		}
	}
}
