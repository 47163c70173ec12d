// Package pipeline orchestrates a billsync run: page-text documents are
// extracted per layout, enriched against the reference table, reconciled
// into the analysis workbook, and exported. Extraction failures are
// isolated per document; reconciliation failures abort the whole update so
// a partially-reconciled sheet is never written.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/gyeh/billsync/internal/audit"
	"github.com/gyeh/billsync/internal/config"
	"github.com/gyeh/billsync/internal/export"
	"github.com/gyeh/billsync/internal/extract"
	"github.com/gyeh/billsync/internal/model"
	"github.com/gyeh/billsync/internal/normalize"
	"github.com/gyeh/billsync/internal/pagetext"
	"github.com/gyeh/billsync/internal/reconcile"
	"github.com/gyeh/billsync/internal/reference"
)

// PipelineError wraps an error with the phase where it occurred.
type PipelineError struct {
	Phase string
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("%s: %s", e.Phase, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// Run executes the full pipeline: extract → reference merge → reconcile →
// export. pool may be nil, in which case no audit rows are written.
func Run(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, cfg *config.Config) (*model.RunSummary, error) {
	totalStart := time.Now()
	runID := uuid.New()
	summary := &model.RunSummary{BatchID: runID.String()}

	var ledger *audit.Ledger
	if pool != nil {
		ledger = audit.NewLedger(pool)
		if err := ledger.BeginRun(ctx, runID, cfg.WorkbookPath); err != nil {
			return nil, &PipelineError{Phase: "audit", Err: err}
		}
	}

	// Phase 1: per-document extraction. One bad document does not block
	// the others.
	layouts := cfg.Layouts()
	extractStart := time.Now()
	var records []model.BillingRecord

	for _, docPath := range cfg.DocumentPaths {
		name := filepath.Base(docPath)
		docRecords, layout, err := extractDocument(docPath, layouts)

		switch {
		case err == nil:
			summary.DocsProcessed++
			summary.RecordsExtracted += len(docRecords)
			records = append(records, docRecords...)
			log.Info().
				Str("document", name).
				Str("layout", layout).
				Int("records", len(docRecords)).
				Msg("document extracted")
			recordDocument(ctx, log, ledger, runID, docPath, layout, audit.StatusExtracted, len(docRecords))
		case isUnsupported(err):
			summary.DocsSkipped++
			log.Warn().Str("document", name).Msg("unsupported document, skipping")
			recordDocument(ctx, log, ledger, runID, docPath, "", audit.StatusSkipped, 0)
		default:
			summary.DocsFailed++
			log.Error().Err(err).Str("document", name).Msg("extraction failed")
			recordDocument(ctx, log, ledger, runID, docPath, layout, audit.StatusFailed, 0)
		}
	}
	summary.DurationExtract = time.Since(extractStart)

	if len(records) == 0 {
		log.Warn().
			Int("docs_skipped", summary.DocsSkipped).
			Int("docs_failed", summary.DocsFailed).
			Msg("no records extracted, nothing to reconcile")
		summary.DurationTotal = time.Since(totalStart)
		finishRun(ctx, log, ledger, runID, runStatus(summary), summary)
		return summary, nil
	}

	// Phase 2: reference merge.
	log.Info().Str("reference", cfg.ReferencePath).Msg("loading reference table")
	table, err := reference.Load(cfg.ReferencePath)
	if err != nil {
		finishRun(ctx, log, ledger, runID, audit.RunFailed, summary)
		return nil, &PipelineError{Phase: "reference", Err: err}
	}
	enriched := reference.Enrich(records, table)

	// Phase 3: reconcile into the analysis workbook. All-or-nothing.
	reconcileStart := time.Now()
	res, err := reconcile.Append(cfg.WorkbookPath, enriched)
	if err != nil {
		finishRun(ctx, log, ledger, runID, audit.RunFailed, summary)
		return nil, &PipelineError{Phase: "reconcile", Err: err}
	}
	summary.RowsAppended = res.RowsAppended
	summary.AddedDescColumn = res.AddedDescColumn
	summary.DurationReconcile = time.Since(reconcileStart)

	log.Info().
		Int("rows_appended", res.RowsAppended).
		Int("header_row", res.HeaderRow+1).
		Bool("added_description_column", res.AddedDescColumn).
		Msg("analysis sheet reconciled")

	// Phase 4: export artifacts.
	if cfg.OutputCSV != "" {
		if err := export.WriteCSV(cfg.OutputCSV, enriched); err != nil {
			finishRun(ctx, log, ledger, runID, audit.RunFailed, summary)
			return nil, &PipelineError{Phase: "export", Err: err}
		}
		log.Info().Str("csv", cfg.OutputCSV).Msg("csv artifact written")
	}
	if cfg.ArchivePath != "" {
		if err := export.WriteParquet(cfg.ArchivePath, enriched); err != nil {
			finishRun(ctx, log, ledger, runID, audit.RunFailed, summary)
			return nil, &PipelineError{Phase: "export", Err: err}
		}
		log.Info().Str("archive", cfg.ArchivePath).Msg("parquet archive written")
	}

	summary.DurationTotal = time.Since(totalStart)
	finishRun(ctx, log, ledger, runID, runStatus(summary), summary)

	log.Info().
		Int("docs_processed", summary.DocsProcessed).
		Int("docs_skipped", summary.DocsSkipped).
		Int("docs_failed", summary.DocsFailed).
		Int("records", summary.RecordsExtracted).
		Int("rows_appended", summary.RowsAppended).
		Str("total_duration", summary.DurationTotal.String()).
		Msg("pipeline complete")

	return summary, nil
}

// extractDocument loads one page-text file, dispatches it by filename
// marker, and runs the matching extractor. The layout name is returned for
// logging even when extraction fails.
func extractDocument(docPath string, layouts []model.Layout) ([]model.BillingRecord, string, error) {
	layout, extractor, err := extract.ForFile(filepath.Base(docPath), layouts)
	if err != nil {
		return nil, "", err
	}

	pages, err := pagetext.Load(docPath)
	if err != nil {
		return nil, layout.Name, err
	}

	records, err := extractor(pages)
	if err != nil {
		return nil, layout.Name, err
	}
	return records, layout.Name, nil
}

func isUnsupported(err error) bool {
	return errors.Is(err, extract.ErrUnsupportedDocument)
}

// runStatus derives the run's final audit status from its counters.
func runStatus(s *model.RunSummary) string {
	if s.DocsFailed > 0 || s.DocsSkipped > 0 {
		return audit.RunPartial
	}
	return audit.RunCompleted
}

// recordDocument writes a per-document audit row. Ledger write failures are
// logged, not fatal: the run's real output is the workbook.
func recordDocument(ctx context.Context, log zerolog.Logger, ledger *audit.Ledger, runID uuid.UUID, docPath, layout, status string, count int) {
	if ledger == nil {
		return
	}
	sha, err := normalize.FileHash(docPath)
	if err != nil {
		log.Warn().Err(err).Str("document", docPath).Msg("audit hash failed")
	}
	if err := ledger.RecordDocument(ctx, runID, filepath.Base(docPath), sha, layout, status, count); err != nil {
		log.Warn().Err(err).Str("document", docPath).Msg("audit document write failed")
	}
}

func finishRun(ctx context.Context, log zerolog.Logger, ledger *audit.Ledger, runID uuid.UUID, status string, s *model.RunSummary) {
	if ledger == nil {
		return
	}
	if err := ledger.FinishRun(ctx, runID, status, s.RecordsExtracted, s.RowsAppended); err != nil {
		log.Warn().Err(err).Msg("audit run finish failed")
	}
}
