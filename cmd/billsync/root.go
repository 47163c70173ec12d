package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/billsync/internal/config"
)

var (
	cfg     config.Config
	cfgFile string
)

var rootCmd = &cobra.Command{
	Use:   "billsync",
	Short: "OCR billing text → analysis workbook reconciler",
	Long:  "Extracts billing records from OCR page text of known bill layouts, enriches them against the procedure-code reference table, and appends them to the ANALYSIS sheet of the analysis workbook.",
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfg.DSN, "dsn", os.Getenv("BILLSYNC_DB_URL"), "Postgres connection string for the audit ledger (or set BILLSYNC_DB_URL)")
	pf.StringVar(&cfg.LogFormat, "log-format", "text", "Log format: text or json")
	pf.StringVar(&cfgFile, "config", "", "Path to YAML config file (marker → layout overrides)")
}

// loadConfigFile merges the optional YAML config into cfg. Called by every
// subcommand before validation.
func loadConfigFile() error {
	if cfgFile == "" {
		return nil
	}
	return cfg.LoadFromFile(cfgFile)
}
