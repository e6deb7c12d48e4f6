package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"mdfinancas/internal/amqp"
	"mdfinancas/internal/core"
	smemory "mdfinancas/internal/sheets/memory"
	"mdfinancas/internal/store/memory"
)

func TestExportWorker_HandleMonthClosed(t *testing.T) {
	st := memory.New()
	ctx := context.Background()

	balance := core.Money{Cents: 123400}
	month, err := st.CreateMonth(ctx, core.Month{
		Name: "MARCH", Year: 2026, Status: core.StatusClosed, FinalBalance: &balance,
	})
	if err != nil {
		t.Fatalf("CreateMonth() error = %v", err)
	}
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	st.CreateRevenue(ctx, core.RevenueEntry{MonthID: month.ID, Description: "salary", Amount: core.Money{Cents: 400000}, Date: day})
	st.CreateFixedExpense(ctx, core.FixedExpense{MonthID: month.ID, Description: "rent", Amount: core.Money{Cents: 150000}, Paid: true, Date: day})
	st.CreatePixExpense(ctx, core.PixCreditExpense{MonthID: month.ID, Description: "sofa", OriginalAmount: core.Money{Cents: 100000}, SurchargePct: core.PercentFromFloat(5), FinalAmount: core.Money{Cents: 105000}, Paid: true, Date: day})

	exp := smemory.New()
	w := NewExportWorker(st, exp)

	msg := &amqp.MonthClosedMessage{MonthID: month.ID, Name: "MARCH", Year: 2026}
	if err := w.HandleMonthClosed(ctx, msg); err != nil {
		t.Fatalf("HandleMonthClosed() error = %v", err)
	}

	snaps := exp.Snapshots()
	if len(snaps) != 1 {
		t.Fatalf("snapshots = %d, want 1", len(snaps))
	}
	snap := snaps[0]
	if snap.Name != "MARCH" || snap.Year != 2026 {
		t.Fatalf("snapshot month = %s/%d, want MARCH/2026", snap.Name, snap.Year)
	}
	if snap.FinalBalance.Cents != 123400 {
		t.Fatalf("FinalBalance = %d, want 123400", snap.FinalBalance.Cents)
	}
	if len(snap.Rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(snap.Rows))
	}

	var pix *core.Money
	for _, r := range snap.Rows {
		if r.Kind == core.KindPix {
			amount := r.Amount
			pix = &amount
		}
	}
	if pix == nil || pix.Cents != 105000 {
		t.Fatalf("pix row amount = %v, want final amount 105000", pix)
	}
}

func TestExportWorker_MissingMonth(t *testing.T) {
	w := NewExportWorker(memory.New(), smemory.New())

	err := w.HandleMonthClosed(context.Background(), &amqp.MonthClosedMessage{MonthID: 99})
	if !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestExportWorker_ExporterFailurePropagates(t *testing.T) {
	st := memory.New()
	ctx := context.Background()
	month, _ := st.CreateMonth(ctx, core.Month{Name: "MARCH", Year: 2026, Status: core.StatusClosed})

	exp := smemory.New()
	exp.Err = errors.New("quota exceeded")

	err := NewExportWorker(st, exp).HandleMonthClosed(ctx, &amqp.MonthClosedMessage{MonthID: month.ID})
	if err == nil {
		t.Fatal("HandleMonthClosed() succeeded despite exporter failure")
	}
}
