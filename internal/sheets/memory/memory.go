// Package memory provides an in-memory snapshot exporter for tests and local
// development.
package memory

import (
	"context"
	"sync"

	"mdfinancas/internal/sheets"
)

type Exporter struct {
	mu        sync.Mutex
	snapshots []sheets.MonthSnapshot

	// Err, when set, fails every export.
	Err error
}

var _ sheets.SnapshotExporter = (*Exporter)(nil)

func New() *Exporter {
	return &Exporter{}
}

func (e *Exporter) ExportMonthSnapshot(_ context.Context, snap sheets.MonthSnapshot) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.Err != nil {
		return e.Err
	}
	e.snapshots = append(e.snapshots, snap)
	return nil
}

// Snapshots returns a copy of everything exported so far.
func (e *Exporter) Snapshots() []sheets.MonthSnapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]sheets.MonthSnapshot(nil), e.snapshots...)
}
