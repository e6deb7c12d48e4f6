// Package worker turns month-closed events into sheet exports.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"mdfinancas/internal/amqp"
	"mdfinancas/internal/core"
	"mdfinancas/internal/sheets"
	"mdfinancas/internal/store"
)

// ExportWorker handles month-closed messages: it re-reads the closed month
// from storage and appends its snapshot to the export sheet.
type ExportWorker struct {
	store    store.Store
	exporter sheets.SnapshotExporter
}

func NewExportWorker(st store.Store, exporter sheets.SnapshotExporter) *ExportWorker {
	return &ExportWorker{store: st, exporter: exporter}
}

// HandleMonthClosed processes a single month-closed message.
func (w *ExportWorker) HandleMonthClosed(ctx context.Context, msg *amqp.MonthClosedMessage) error {
	slog.InfoContext(ctx, "Processing month-closed message",
		"month_id", msg.MonthID,
		"name", msg.Name,
		"year", msg.Year)

	snap, err := w.buildSnapshot(ctx, msg.MonthID)
	if err != nil {
		return fmt.Errorf("build snapshot for month %d: %w", msg.MonthID, err)
	}

	if err := w.exporter.ExportMonthSnapshot(ctx, snap); err != nil {
		return fmt.Errorf("export month %d: %w", msg.MonthID, err)
	}

	slog.InfoContext(ctx, "Exported month snapshot",
		"month_id", msg.MonthID,
		"rows", len(snap.Rows))
	return nil
}

// buildSnapshot flattens the month's four categories into export rows. The
// database is the source of truth; the message only identifies the month.
func (w *ExportWorker) buildSnapshot(ctx context.Context, monthID int64) (sheets.MonthSnapshot, error) {
	month, err := w.store.GetMonth(ctx, monthID)
	if err != nil {
		return sheets.MonthSnapshot{}, err
	}

	snap := sheets.MonthSnapshot{
		Name:     month.Name,
		Year:     month.Year,
		ClosedAt: time.Now().UTC(),
	}
	if month.FinalBalance != nil {
		snap.FinalBalance = *month.FinalBalance
	}

	revenues, err := w.store.ListRevenues(ctx, monthID)
	if err != nil {
		return sheets.MonthSnapshot{}, fmt.Errorf("list revenues: %w", err)
	}
	for _, r := range revenues {
		snap.Rows = append(snap.Rows, sheets.SnapshotRow{
			Kind: core.KindRevenue, Description: r.Description,
			Amount: r.Amount, Paid: true, Date: r.Date,
		})
	}

	fixed, err := w.store.ListFixedExpenses(ctx, monthID)
	if err != nil {
		return sheets.MonthSnapshot{}, fmt.Errorf("list fixed expenses: %w", err)
	}
	for _, e := range fixed {
		snap.Rows = append(snap.Rows, sheets.SnapshotRow{
			Kind: core.KindFixed, Description: e.Description,
			Amount: e.Amount, Paid: e.Paid, Date: e.Date,
		})
	}

	pix, err := w.store.ListPixExpenses(ctx, monthID)
	if err != nil {
		return sheets.MonthSnapshot{}, fmt.Errorf("list pix expenses: %w", err)
	}
	for _, e := range pix {
		snap.Rows = append(snap.Rows, sheets.SnapshotRow{
			Kind: core.KindPix, Description: e.Description,
			Amount: e.FinalAmount, Paid: e.Paid, Date: e.Date,
		})
	}

	card, err := w.store.ListCardExpenses(ctx, monthID)
	if err != nil {
		return sheets.MonthSnapshot{}, fmt.Errorf("list card expenses: %w", err)
	}
	for _, e := range card {
		snap.Rows = append(snap.Rows, sheets.SnapshotRow{
			Kind: core.KindCard, Description: e.Description,
			Amount: e.Amount, Paid: e.Paid, Date: e.Date,
		})
	}

	return snap, nil
}
