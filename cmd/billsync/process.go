package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/gyeh/billsync/internal/db"
	"github.com/gyeh/billsync/internal/exitcode"
	"github.com/gyeh/billsync/internal/logging"
	"github.com/gyeh/billsync/internal/pipeline"
	"github.com/gyeh/billsync/internal/reconcile"
)

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Extract, enrich, and reconcile bills into the analysis workbook",
	RunE:  runProcess,
}

func init() {
	f := processCmd.Flags()
	f.StringArrayVar(&cfg.DocumentPaths, "bill", nil, "Page-text JSON file of one bill (repeatable, required)")
	f.StringVar(&cfg.WorkbookPath, "workbook", "", "Analysis workbook to update (required)")
	f.StringVar(&cfg.ReferencePath, "reference", "", "Procedure-code reference workbook (required)")
	f.StringVar(&cfg.OutputCSV, "out", "", "Write the enriched record set as CSV")
	f.StringVar(&cfg.ArchivePath, "archive", "", "Write the enriched record set as parquet")
	_ = processCmd.MarkFlagRequired("bill")
	_ = processCmd.MarkFlagRequired("workbook")
	_ = processCmd.MarkFlagRequired("reference")
	rootCmd.AddCommand(processCmd)
}

func runProcess(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)
	ctx := context.Background()

	if err := loadConfigFile(); err != nil {
		log.Error().Err(err).Msg("config file invalid")
		os.Exit(exitcode.UsageError)
	}
	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	var pool *pgxpool.Pool
	if cfg.DSN != "" {
		var err error
		pool, err = db.NewPool(ctx, cfg.DSN)
		if err != nil {
			log.Error().Err(err).Msg("database connection failed")
			os.Exit(exitcode.DBConnError)
		}
		defer pool.Close()
	}

	summary, err := pipeline.Run(ctx, pool, log, &cfg)
	if err != nil {
		var pe *pipeline.PipelineError
		if errors.As(err, &pe) {
			log.Error().Err(pe.Err).Str("phase", pe.Phase).Msg("pipeline failed")
			switch {
			case errors.Is(pe.Err, reconcile.ErrMissingSheet), errors.Is(pe.Err, reconcile.ErrNoHeaderFound):
				os.Exit(exitcode.ValidationError)
			case pe.Phase == "reconcile":
				os.Exit(exitcode.ReconcileError)
			default:
				os.Exit(exitcode.ExtractError)
			}
		}
		log.Error().Err(err).Msg("pipeline failed")
		os.Exit(exitcode.ExtractError)
	}

	fmt.Printf("Run complete: %d documents, %d records, %d rows appended (%.1fs)\n",
		summary.DocsProcessed, summary.RecordsExtracted, summary.RowsAppended,
		summary.DurationTotal.Seconds())

	if summary.DocsFailed > 0 || summary.DocsSkipped > 0 {
		fmt.Printf("Warnings: %d documents skipped, %d failed\n", summary.DocsSkipped, summary.DocsFailed)
		os.Exit(exitcode.PartialSuccess)
	}
	return nil
}
