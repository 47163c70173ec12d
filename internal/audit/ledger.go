// Package audit records pipeline runs in Postgres: one row per run batch
// and one per document processed, so operators can see what was loaded
// into the analysis workbook and when. The ledger is optional; without a
// DSN the pipeline runs with no database at all.
package audit

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	embedsql "github.com/gyeh/billsync/internal/sql"
)

// Document statuses recorded in the ledger.
const (
	StatusExtracted = "extracted"
	StatusSkipped   = "skipped"
	StatusFailed    = "failed"
)

// Run statuses.
const (
	RunCompleted = "completed"
	RunFailed    = "failed"
	RunPartial   = "partial"
)

// Ledger writes run and document outcomes to the audit tables.
type Ledger struct {
	pool *pgxpool.Pool
}

// NewLedger creates a Ledger over the given pool.
func NewLedger(pool *pgxpool.Pool) *Ledger {
	return &Ledger{pool: pool}
}

// BeginRun registers a new run batch in status "running".
func (l *Ledger) BeginRun(ctx context.Context, runID uuid.UUID, workbookPath string) error {
	if _, err := l.pool.Exec(ctx, embedsql.InsertRun, runID, workbookPath); err != nil {
		return fmt.Errorf("register run: %w", err)
	}
	return nil
}

// FinishRun records the run's final status and counts.
func (l *Ledger) FinishRun(ctx context.Context, runID uuid.UUID, status string, recordsExtracted, rowsAppended int) error {
	if _, err := l.pool.Exec(ctx, embedsql.FinishRun, runID, status, recordsExtracted, rowsAppended); err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	return nil
}

// RecordDocument upserts one document's outcome for the run.
func (l *Ledger) RecordDocument(ctx context.Context, runID uuid.UUID, fileName, sha256, layout, status string, recordCount int) error {
	var layoutVal *string
	if layout != "" {
		layoutVal = &layout
	}
	if _, err := l.pool.Exec(ctx, embedsql.InsertDocument, runID, fileName, sha256, layoutVal, status, recordCount); err != nil {
		return fmt.Errorf("record document %s: %w", fileName, err)
	}
	return nil
}
