// Package worker mirrors saved transactions to the export spreadsheet,
// driven by queue messages with a periodic scan as backup.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"wealthwallet/internal/amqp"
	"wealthwallet/internal/core"
	"wealthwallet/internal/export"
	"wealthwallet/internal/store"
)

// ExportStore is the slice of the record store the export worker needs.
type ExportStore interface {
	GetTransaction(ctx context.Context, id string) (core.Transaction, error)
	ListPendingExport(ctx context.Context, limit int) ([]core.Transaction, error)
	MarkExported(ctx context.Context, id string) error
	MarkExportError(ctx context.Context, id string) error
}

// ExportWorker handles exporting transactions to the spreadsheet mirror
type ExportWorker struct {
	store     ExportStore
	writer    export.TransactionWriter
	batchSize int
}

func NewExportWorker(st ExportStore, writer export.TransactionWriter, batchSize int) *ExportWorker {
	return &ExportWorker{
		store:     st,
		writer:    writer,
		batchSize: batchSize,
	}
}

// HandleExportMessage processes a single transaction export message from AMQP
func (w *ExportWorker) HandleExportMessage(ctx context.Context, msg *amqp.TransactionExportMessage) error {
	slog.InfoContext(ctx, "Processing export message",
		"transaction_id", msg.ID,
		"user_id", msg.UserID)

	t, err := w.store.GetTransaction(ctx, msg.ID)
	if err != nil {
		// A missing transaction will never appear; requeueing would loop
		// the message forever.
		if errors.Is(err, store.ErrTransactionNotFound) {
			slog.WarnContext(ctx, "Transaction in export message no longer exists, dropping",
				"transaction_id", msg.ID)
			return nil
		}
		return fmt.Errorf("get transaction from storage: %w", err)
	}

	if err := w.exportTransaction(ctx, t); err != nil {
		return fmt.Errorf("export transaction: %w", err)
	}

	return nil
}

// ProcessPendingExports exports transactions that are still marked pending.
// This is a backup mechanism in case AMQP messages are lost.
func (w *ExportWorker) ProcessPendingExports(ctx context.Context) error {
	pending, err := w.store.ListPendingExport(ctx, w.batchSize)
	if err != nil {
		return fmt.Errorf("get pending transactions: %w", err)
	}

	if len(pending) == 0 {
		return nil
	}

	slog.InfoContext(ctx, "Processing pending exports", "count", len(pending))

	for _, t := range pending {
		if err := w.exportTransaction(ctx, t); err != nil {
			slog.ErrorContext(ctx, "Failed to export transaction",
				"transaction_id", t.ID, "error", err)
			continue
		}
	}

	return nil
}

// StartupExportCheck drains pending exports at worker startup. Useful to
// recover from missed AMQP messages or worker downtime.
func (w *ExportWorker) StartupExportCheck(ctx context.Context) error {
	// Larger batch for the startup pass
	pending, err := w.store.ListPendingExport(ctx, w.batchSize*5)
	if err != nil {
		return fmt.Errorf("get pending transactions for startup check: %w", err)
	}

	if len(pending) == 0 {
		slog.InfoContext(ctx, "No pending exports found on startup")
		return nil
	}

	slog.InfoContext(ctx, "Found pending exports on startup, processing...",
		"count", len(pending))

	successCount := 0
	errorCount := 0

	for _, t := range pending {
		if err := w.exportTransaction(ctx, t); err != nil {
			slog.ErrorContext(ctx, "Failed to export transaction during startup",
				"transaction_id", t.ID, "error", err)
			errorCount++
			continue
		}
		successCount++
	}

	slog.InfoContext(ctx, "Startup export check completed",
		"total", len(pending),
		"exported", successCount,
		"errors", errorCount)

	return nil
}

func (w *ExportWorker) exportTransaction(ctx context.Context, t core.Transaction) error {
	ref, err := w.writer.Append(ctx, t)
	if err != nil {
		if markErr := w.store.MarkExportError(ctx, t.ID); markErr != nil {
			slog.ErrorContext(ctx, "Failed to mark export error",
				"transaction_id", t.ID, "error", markErr)
		}
		return fmt.Errorf("append to sheet: %w", err)
	}

	if err := w.store.MarkExported(ctx, t.ID); err != nil {
		slog.ErrorContext(ctx, "Failed to mark as exported",
			"transaction_id", t.ID, "error", err)
		// Don't return error here - the export actually worked
	}

	slog.InfoContext(ctx, "Successfully exported transaction",
		"transaction_id", t.ID,
		"sheet_ref", ref,
		"amount_cents", t.Amount.Cents)

	return nil
}
