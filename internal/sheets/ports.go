// Package sheets defines the export port for closed-month snapshots.
package sheets

import (
	"context"
	"time"

	"mdfinancas/internal/core"
)

// SnapshotRow is one exported line: a transaction of the closed month.
type SnapshotRow struct {
	Kind        core.EntryKind
	Description string
	Amount      core.Money
	Paid        bool
	Date        time.Time
}

// MonthSnapshot is the flattened view of a closed month, ready for export.
type MonthSnapshot struct {
	Name         string
	Year         int
	FinalBalance core.Money
	ClosedAt     time.Time
	Rows         []SnapshotRow
}

// SnapshotExporter appends a closed month's snapshot to an external sheet.
type SnapshotExporter interface {
	ExportMonthSnapshot(ctx context.Context, snap MonthSnapshot) error
}
