package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/application-autofill/internal/observability"
	"github.com/jonathan/application-autofill/internal/record"
	"github.com/jonathan/application-autofill/internal/schema"
)

var recordCommand = &cobra.Command{
	Use:   "record",
	Short: "Inspect the personal record",
}

var recordShowCommand = &cobra.Command{
	Use:   "show",
	Short: "Print the record's attributes (sensitive values masked)",
	RunE:  runRecordShowCmd,
}

var recordCheckCommand = &cobra.Command{
	Use:   "check",
	Short: "Verify the record loads, decrypts and passes validation",
	RunE:  runRecordCheckCmd,
}

var (
	recordConfigPath string
	recordPath       string
	recordUnmask     bool
)

func init() {
	for _, c := range []*cobra.Command{recordShowCommand, recordCheckCommand} {
		c.Flags().StringVar(&recordConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
		c.Flags().StringVar(&recordPath, "record", "", "Path to the personal record file")
	}
	recordShowCommand.Flags().BoolVar(&recordUnmask, "unmask", false, "Show sensitive values unmasked")

	recordCommand.AddCommand(recordShowCommand)
	recordCommand.AddCommand(recordCheckCommand)
	rootCmd.AddCommand(recordCommand)
}

func openRecordStore(cmd *cobra.Command) (*record.Store, error) {
	cfg, err := loadConfig(recordConfigPath, false)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("record") {
		cfg.RecordPath = recordPath
	}
	return record.NewStore(cfg.RecordPath, passphraseFromEnv()), nil
}

func runRecordShowCmd(cmd *cobra.Command, _ []string) error {
	store, err := openRecordStore(cmd)
	if err != nil {
		return err
	}
	rec, err := store.Load()
	if err != nil {
		return err
	}

	for _, spec := range schema.All() {
		var value string
		switch spec.Kind {
		case schema.KindBoolean:
			b, _ := rec.Bool(spec.Name)
			value = fmt.Sprintf("%t", b)
		case schema.KindFile:
			p, ok := rec.FilePath(spec.Name)
			if !ok {
				continue
			}
			value = p
			if _, err := os.Stat(p); err != nil {
				value += "  (missing)"
			}
		default:
			v, ok := rec.Value(spec.Name)
			if !ok {
				continue
			}
			value = v
			if !recordUnmask && observability.Sensitive(spec.Name) {
				value = observability.MaskValue(v)
			}
		}
		fmt.Printf("%-22s %s\n", spec.Name, value)
	}
	return nil
}

func runRecordCheckCmd(cmd *cobra.Command, _ []string) error {
	store, err := openRecordStore(cmd)
	if err != nil {
		return err
	}
	rec, err := store.Load()
	if err != nil {
		return err
	}

	state := "plaintext"
	if store.Encrypted() {
		state = "encrypted"
	}
	fmt.Printf("Record at %s is valid (%s).\n", store.Path(), state)

	answered := 0
	for _, name := range schema.Names() {
		if _, ok := rec.Value(name); ok {
			answered++
			continue
		}
		if _, ok := rec.FilePath(name); ok {
			answered++
			continue
		}
		if _, isBool := rec.Bool(name); isBool {
			answered++
		}
	}
	fmt.Printf("%d of %d attributes have answers.\n", answered, len(schema.Names()))

	warnMissingFiles(os.Stdout, rec)
	return nil
}
