package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/application-autofill/internal/fill"
	"github.com/jonathan/application-autofill/internal/mapping"
)

var mappingCommand = &cobra.Command{
	Use:   "mapping",
	Short: "Manage saved site mappings",
	Long: `A mapping records which attribute answers each field on a site, so
repeat fills skip re-classification. Mappings are plain JSON under the
mappings directory and safe to edit by hand.`,
}

var mappingCreateCommand = &cobra.Command{
	Use:   "create",
	Short: "Detect and classify a form, then save the confident matches",
	RunE:  runMappingCreateCmd,
}

var mappingShowCommand = &cobra.Command{
	Use:   "show [site]",
	Short: "List saved mappings, or print one site's field decisions",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runMappingShowCmd,
}

var (
	mappingConfigPath  string
	mappingURL         string
	mappingDir         string
	mappingAPIKey      string
	mappingMinConf     float64
	mappingAIThreshold float64
	mappingUseBrowser  bool
	mappingVerbose     bool
)

func init() {
	mappingCreateCommand.Flags().StringVar(&mappingConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	mappingCreateCommand.Flags().StringVarP(&mappingURL, "url", "u", "", "URL of the application form to map")
	mappingCreateCommand.Flags().StringVar(&mappingDir, "mappings-dir", "", "Directory holding saved site mappings")
	mappingCreateCommand.Flags().StringVar(&mappingAPIKey, "api-key", "", "Gemini API key (optional, defaults to GEMINI_API_KEY env var)")
	mappingCreateCommand.Flags().Float64Var(&mappingMinConf, "min-confidence", 0, "Minimum confidence to accept a match")
	mappingCreateCommand.Flags().Float64Var(&mappingAIThreshold, "ai-threshold", 0, "Rule confidence below which the AI matcher is consulted")
	mappingCreateCommand.Flags().BoolVar(&mappingUseBrowser, "use-browser", false, "Always render the page in the headless browser")
	mappingCreateCommand.Flags().BoolVarP(&mappingVerbose, "verbose", "v", false, "Print detailed debug information")
	_ = mappingCreateCommand.MarkFlagRequired("url")

	mappingShowCommand.Flags().StringVar(&mappingConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	mappingShowCommand.Flags().StringVar(&mappingDir, "mappings-dir", "", "Directory holding saved site mappings")

	mappingCommand.AddCommand(mappingCreateCommand)
	mappingCommand.AddCommand(mappingShowCommand)
	rootCmd.AddCommand(mappingCommand)
}

func runMappingCreateCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(mappingConfigPath, mappingVerbose)
	if err != nil {
		return err
	}
	applyCommonOverrides(cmd, &cfg, mappingAPIKey, "", mappingDir, "", mappingVerbose)
	if cmd.Flags().Changed("min-confidence") {
		cfg.MinAcceptConfidence = mappingMinConf
	}
	if cmd.Flags().Changed("ai-threshold") {
		cfg.AIThreshold = mappingAIThreshold
	}
	if cmd.Flags().Changed("use-browser") {
		cfg.UseBrowser = mappingUseBrowser
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	opts := fillOptions(cfg, mappingURL)
	return fill.CreateMapping(cmd.Context(), opts)
}

func runMappingShowCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(mappingConfigPath, false)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("mappings-dir") {
		cfg.MappingsDir = mappingDir
	}
	store := mapping.NewStore(cfg.MappingsDir)

	if len(args) == 0 {
		sites, err := store.List()
		if err != nil {
			return err
		}
		if len(sites) == 0 {
			fmt.Println("No saved mappings.")
			return nil
		}
		for _, site := range sites {
			fmt.Println(site)
		}
		return nil
	}

	m, err := store.Load(args[0])
	if err != nil {
		return err
	}
	if m == nil {
		return fmt.Errorf("no mapping saved for %q", args[0])
	}

	fmt.Printf("Site: %s\n", m.Site)
	if m.CreatedAt != "" {
		fmt.Printf("Created: %s\n", m.CreatedAt)
	}
	fmt.Printf("Fields: %d\n", len(m.Fields))
	for _, f := range m.Fields {
		label := f.Label
		if label == "" {
			label = "(no label)"
		}
		fmt.Printf("  %-22s %-30s %s\n", f.Attribute, label, f.Locator)
	}
	return nil
}
