package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gyeh/billsync/internal/exitcode"
	"github.com/gyeh/billsync/internal/extract"
	"github.com/gyeh/billsync/internal/logging"
	"github.com/gyeh/billsync/internal/normalize"
	"github.com/gyeh/billsync/internal/pagetext"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Dry-run extraction report (no writes)",
	RunE:  runPlan,
}

func init() {
	planCmd.Flags().StringArrayVar(&cfg.DocumentPaths, "bill", nil, "Page-text JSON file of one bill (repeatable, required)")
	_ = planCmd.MarkFlagRequired("bill")
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)

	if err := loadConfigFile(); err != nil {
		log.Error().Err(err).Msg("config file invalid")
		os.Exit(exitcode.UsageError)
	}

	layouts := cfg.Layouts()
	failed := 0

	fmt.Println("=== billsync plan ===")
	for _, docPath := range cfg.DocumentPaths {
		name := filepath.Base(docPath)
		fmt.Printf("\nDocument: %s\n", name)

		sha, err := normalize.FileHash(docPath)
		if err != nil {
			fmt.Printf("  ERROR: %v\n", err)
			failed++
			continue
		}
		fmt.Printf("SHA-256:  %s\n", sha)

		layout, extractor, err := extract.ForFile(name, layouts)
		if errors.Is(err, extract.ErrUnsupportedDocument) {
			fmt.Println("  unsupported: no layout marker matches, would be skipped")
			continue
		}
		if err != nil {
			fmt.Printf("  ERROR: %v\n", err)
			failed++
			continue
		}
		fmt.Printf("Layout:   %s\n", layout.Name)

		pages, err := pagetext.Load(docPath)
		if err != nil {
			fmt.Printf("  ERROR: %v\n", err)
			failed++
			continue
		}
		fmt.Printf("Pages:    %d\n", len(pages))

		records, err := extractor(pages)
		if err != nil {
			fmt.Printf("  ERROR: %v\n", err)
			failed++
			continue
		}

		provider := "-"
		var totalCents int64
		for i := range records {
			if provider == "-" {
				provider = records[i].Provider
			}
			totalCents += records[i].ChargeCents
		}
		fmt.Printf("Provider: %s\n", provider)
		fmt.Printf("Records:  %d, total charges %s\n", len(records), normalize.FormatCents(totalCents))
	}

	if failed > 0 {
		os.Exit(exitcode.ValidationError)
	}
	return nil
}
