package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/billsync/internal/exitcode"
	"github.com/gyeh/billsync/internal/export"
	"github.com/gyeh/billsync/internal/extract"
	"github.com/gyeh/billsync/internal/logging"
	"github.com/gyeh/billsync/internal/pagetext"
)

var (
	servicesIn  string
	servicesOut string
)

var servicesCmd = &cobra.Command{
	Use:   "services",
	Short: "Extract a generic services table into its own workbook",
	Long:  "Runs the layout-independent service-line extractor over a page-text file and writes the results to a new workbook.",
	RunE:  runServices,
}

func init() {
	f := servicesCmd.Flags()
	f.StringVar(&servicesIn, "pages", "", "Page-text JSON file (required)")
	f.StringVar(&servicesOut, "out", "services_provided.xlsx", "Output workbook path")
	_ = servicesCmd.MarkFlagRequired("pages")
	rootCmd.AddCommand(servicesCmd)
}

func runServices(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)

	pages, err := pagetext.Load(servicesIn)
	if err != nil {
		log.Error().Err(err).Msg("failed to load page text")
		os.Exit(exitcode.ValidationError)
	}

	lines, err := extract.Services(pages)
	if err != nil {
		log.Error().Err(err).Msg("service extraction failed")
		os.Exit(exitcode.ExtractError)
	}
	if len(lines) == 0 {
		log.Warn().Msg("no service lines found")
	}

	if err := export.ServicesWorkbook(servicesOut, lines); err != nil {
		log.Error().Err(err).Msg("failed to write services workbook")
		os.Exit(exitcode.ReconcileError)
	}

	fmt.Printf("Services extracted: %d lines written to %s\n", len(lines), servicesOut)
	return nil
}
