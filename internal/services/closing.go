package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"mdfinancas/internal/core"
	"mdfinancas/internal/store"
)

// MonthClosedEvent is published after a month is closed so downstream
// consumers (the export worker) can snapshot it.
type MonthClosedEvent struct {
	MonthID      int64  `json:"month_id"`
	Name         string `json:"name"`
	Year         int    `json:"year"`
	FinalBalance int64  `json:"final_balance_cents"`
}

// EventPublisher publishes month lifecycle events. A nil publisher disables
// publishing.
type EventPublisher interface {
	PublishMonthClosed(ctx context.Context, ev MonthClosedEvent) error
}

// Closer runs the month close and reopen transitions.
type Closer struct {
	store     store.Store
	ledger    *Ledger
	publisher EventPublisher
}

func NewCloser(st store.Store, ledger *Ledger, publisher EventPublisher) *Closer {
	return &Closer{store: st, ledger: ledger, publisher: publisher}
}

// Close finalizes an active month and hands the ledger over to its successor.
//
// Order matters: the final balance is computed and the successor month
// resolved before any write happens, so a missing successor aborts the close
// with the ledger untouched. Then the month is marked closed with its
// balance, the successor activated, and unfinished installment plans carried
// forward with their progress advanced. Carried copies leave the originals in
// place as history.
func (c *Closer) Close(ctx context.Context, monthID int64) (core.Month, error) {
	month, err := c.store.GetMonth(ctx, monthID)
	if err != nil {
		return core.Month{}, err
	}
	if month.Status != core.StatusActive {
		return core.Month{}, fmt.Errorf("close month %d (%s): %w", monthID, month.Status, core.ErrMonthNotActive)
	}

	summary, err := c.ledger.Summary(ctx, monthID)
	if err != nil {
		return core.Month{}, fmt.Errorf("compute final balance: %w", err)
	}
	balance := summary.NetBalance

	nextName, nextYear, err := core.NextPeriod(month.Name, month.Year)
	if err != nil {
		return core.Month{}, fmt.Errorf("close month %d: %w", monthID, err)
	}
	next, err := c.store.FindMonth(ctx, nextName, nextYear)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return core.Month{}, fmt.Errorf("close month %d: %s/%d: %w", monthID, nextName, nextYear, core.ErrNextMonthMissing)
		}
		return core.Month{}, fmt.Errorf("resolve next month: %w", err)
	}

	if err := c.store.SetMonthStatus(ctx, month.ID, core.StatusClosed, &balance); err != nil {
		return core.Month{}, fmt.Errorf("mark month %d closed: %w", month.ID, err)
	}
	if err := c.store.SetMonthStatus(ctx, next.ID, core.StatusActive, nil); err != nil {
		return core.Month{}, fmt.Errorf("activate month %d: %w", next.ID, err)
	}
	if err := c.carryForward(ctx, month.ID, next.ID); err != nil {
		return core.Month{}, err
	}

	month.Status = core.StatusClosed
	month.FinalBalance = &balance

	c.publishClosed(ctx, month)

	return month, nil
}

func (c *Closer) carryForward(ctx context.Context, fromID, toID int64) error {
	plans, err := c.store.ListInstallments(ctx, fromID)
	if err != nil {
		return fmt.Errorf("list installments for carry-forward: %w", err)
	}
	for _, p := range plans {
		if !p.CarriesForward() {
			continue
		}
		if _, err := c.store.CreateInstallment(ctx, p.NextMonthPlan(toID)); err != nil {
			return fmt.Errorf("carry installment %d forward: %w", p.ID, err)
		}
	}
	return nil
}

// publishClosed emits the month-closed event. Publishing is best effort: the
// close has already committed and is not rolled back on publish failure.
func (c *Closer) publishClosed(ctx context.Context, month core.Month) {
	if c.publisher == nil {
		return
	}
	ev := MonthClosedEvent{
		MonthID: month.ID,
		Name:    month.Name,
		Year:    month.Year,
	}
	if month.FinalBalance != nil {
		ev.FinalBalance = month.FinalBalance.Cents
	}
	if err := c.publisher.PublishMonthClosed(ctx, ev); err != nil {
		slog.ErrorContext(ctx, "Failed to publish month-closed event",
			"month_id", month.ID, "error", err)
	}
}

// Reopen turns a closed month back into the active one and clears its stored
// balance. Installment plans already carried into the successor stay there;
// reopening never deletes rows.
func (c *Closer) Reopen(ctx context.Context, monthID int64) (core.Month, error) {
	month, err := c.store.GetMonth(ctx, monthID)
	if err != nil {
		return core.Month{}, err
	}
	if month.Status != core.StatusClosed {
		return core.Month{}, fmt.Errorf("reopen month %d (%s): %w", monthID, month.Status, core.ErrInvalidStatus)
	}

	if err := c.store.SetMonthStatus(ctx, month.ID, core.StatusActive, nil); err != nil {
		return core.Month{}, fmt.Errorf("reopen month %d: %w", month.ID, err)
	}

	month.Status = core.StatusActive
	month.FinalBalance = nil
	return month, nil
}
