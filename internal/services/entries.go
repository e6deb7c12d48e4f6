package services

import (
	"context"
	"fmt"

	"mdfinancas/internal/core"
	"mdfinancas/internal/store"
)

// Entries is the CRUD surface for the rows of a month. Every write validates
// the payload first and then checks that the owning month accepts writes, so
// invalid input never reaches the store.
type Entries struct {
	store store.Store
}

func NewEntries(st store.Store) *Entries {
	return &Entries{store: st}
}

// writableMonth rejects writes against closed months and the sentinel
// placeholder.
func (s *Entries) writableMonth(ctx context.Context, monthID int64) error {
	if monthID == core.SentinelMonthID {
		return core.ErrSentinelMonth
	}
	month, err := s.store.GetMonth(ctx, monthID)
	if err != nil {
		return err
	}
	if month.Status == core.StatusClosed {
		return fmt.Errorf("month %d: %w", monthID, core.ErrMonthClosed)
	}
	return nil
}

// Revenues

func (s *Entries) ListRevenues(ctx context.Context, monthID int64) ([]core.RevenueEntry, error) {
	return s.store.ListRevenues(ctx, monthID)
}

func (s *Entries) CreateRevenue(ctx context.Context, r core.RevenueEntry) (core.RevenueEntry, error) {
	if err := r.Validate(); err != nil {
		return core.RevenueEntry{}, err
	}
	if err := s.writableMonth(ctx, r.MonthID); err != nil {
		return core.RevenueEntry{}, err
	}
	return s.store.CreateRevenue(ctx, r)
}

func (s *Entries) UpdateRevenue(ctx context.Context, r core.RevenueEntry) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if err := s.writableMonth(ctx, r.MonthID); err != nil {
		return err
	}
	return s.store.UpdateRevenue(ctx, r)
}

func (s *Entries) DeleteRevenue(ctx context.Context, id int64) error {
	return s.store.DeleteRevenue(ctx, id)
}

// Fixed expenses

func (s *Entries) ListFixedExpenses(ctx context.Context, monthID int64) ([]core.FixedExpense, error) {
	return s.store.ListFixedExpenses(ctx, monthID)
}

func (s *Entries) CreateFixedExpense(ctx context.Context, e core.FixedExpense) (core.FixedExpense, error) {
	if err := e.Validate(); err != nil {
		return core.FixedExpense{}, err
	}
	if err := s.writableMonth(ctx, e.MonthID); err != nil {
		return core.FixedExpense{}, err
	}
	return s.store.CreateFixedExpense(ctx, e)
}

func (s *Entries) UpdateFixedExpense(ctx context.Context, e core.FixedExpense) error {
	if err := e.Validate(); err != nil {
		return err
	}
	if err := s.writableMonth(ctx, e.MonthID); err != nil {
		return err
	}
	return s.store.UpdateFixedExpense(ctx, e)
}

func (s *Entries) DeleteFixedExpense(ctx context.Context, id int64) error {
	return s.store.DeleteFixedExpense(ctx, id)
}

func (s *Entries) SetFixedExpensePaid(ctx context.Context, id int64, paid bool) error {
	return s.store.SetFixedExpensePaid(ctx, id, paid)
}

// Pix credit expenses

func (s *Entries) GetPixExpense(ctx context.Context, id int64) (core.PixCreditExpense, error) {
	return s.store.GetPixExpense(ctx, id)
}

func (s *Entries) ListPixExpenses(ctx context.Context, monthID int64) ([]core.PixCreditExpense, error) {
	return s.store.ListPixExpenses(ctx, monthID)
}

// CreatePixExpense records a pix-in-place-of-credit purchase. The final
// amount is always derived here from the original amount and the surcharge
// percentage; any FinalAmount in the payload is ignored.
func (s *Entries) CreatePixExpense(ctx context.Context, e core.PixCreditExpense) (core.PixCreditExpense, error) {
	if err := e.Validate(); err != nil {
		return core.PixCreditExpense{}, err
	}
	if err := s.writableMonth(ctx, e.MonthID); err != nil {
		return core.PixCreditExpense{}, err
	}
	e.FinalAmount = core.ApplySurcharge(e.OriginalAmount, e.SurchargePct)
	return s.store.CreatePixExpense(ctx, e)
}

func (s *Entries) UpdatePixExpense(ctx context.Context, e core.PixCreditExpense) error {
	if err := e.Validate(); err != nil {
		return err
	}
	if err := s.writableMonth(ctx, e.MonthID); err != nil {
		return err
	}
	e.FinalAmount = core.ApplySurcharge(e.OriginalAmount, e.SurchargePct)
	return s.store.UpdatePixExpense(ctx, e)
}

func (s *Entries) DeletePixExpense(ctx context.Context, id int64) error {
	return s.store.DeletePixExpense(ctx, id)
}

func (s *Entries) SetPixExpensePaid(ctx context.Context, id int64, paid bool) error {
	return s.store.SetPixExpensePaid(ctx, id, paid)
}

// Card statement expenses

func (s *Entries) ListCardExpenses(ctx context.Context, monthID int64) ([]core.CardStatementExpense, error) {
	return s.store.ListCardExpenses(ctx, monthID)
}

func (s *Entries) CreateCardExpense(ctx context.Context, e core.CardStatementExpense) (core.CardStatementExpense, error) {
	if err := e.Validate(); err != nil {
		return core.CardStatementExpense{}, err
	}
	if err := s.writableMonth(ctx, e.MonthID); err != nil {
		return core.CardStatementExpense{}, err
	}
	if _, err := s.store.GetCard(ctx, e.CardID); err != nil {
		return core.CardStatementExpense{}, err
	}
	return s.store.CreateCardExpense(ctx, e)
}

func (s *Entries) UpdateCardExpense(ctx context.Context, e core.CardStatementExpense) error {
	if err := e.Validate(); err != nil {
		return err
	}
	if err := s.writableMonth(ctx, e.MonthID); err != nil {
		return err
	}
	return s.store.UpdateCardExpense(ctx, e)
}

func (s *Entries) DeleteCardExpense(ctx context.Context, id int64) error {
	return s.store.DeleteCardExpense(ctx, id)
}

func (s *Entries) SetCardExpensePaid(ctx context.Context, id int64, paid bool) error {
	return s.store.SetCardExpensePaid(ctx, id, paid)
}

// BulkEditCardStatement replaces the statement of an aggregate-only card for
// one month with the given label→amount map. Aggregate-only cards are not
// itemized: each label is a fixed statement line, upserted by description and
// always marked paid. A zero amount removes the line.
func (s *Entries) BulkEditCardStatement(ctx context.Context, monthID, cardID int64, amounts map[string]core.Money) error {
	card, err := s.store.GetCard(ctx, cardID)
	if err != nil {
		return err
	}
	if !card.AggregateOnly {
		return fmt.Errorf("card %d is itemized: %w", cardID, core.ErrInvalidStatus)
	}
	if err := s.writableMonth(ctx, monthID); err != nil {
		return err
	}

	existing, err := s.store.ListCardExpensesByCard(ctx, monthID, cardID)
	if err != nil {
		return fmt.Errorf("list card %d statement: %w", cardID, err)
	}
	byLabel := make(map[string]core.CardStatementExpense, len(existing))
	for _, e := range existing {
		byLabel[e.Description] = e
	}

	for label, amount := range amounts {
		current, ok := byLabel[label]
		switch {
		case amount.Cents <= 0 && ok:
			if err := s.store.DeleteCardExpense(ctx, current.ID); err != nil {
				return fmt.Errorf("remove statement line %q: %w", label, err)
			}
		case amount.Cents <= 0:
			// nothing to remove
		case ok:
			current.Amount = amount
			if err := s.store.UpdateCardExpense(ctx, current); err != nil {
				return fmt.Errorf("update statement line %q: %w", label, err)
			}
		default:
			_, err := s.store.CreateCardExpense(ctx, core.CardStatementExpense{
				MonthID:     monthID,
				CardID:      cardID,
				Description: label,
				Amount:      amount,
				Paid:        true,
			})
			if err != nil {
				return fmt.Errorf("create statement line %q: %w", label, err)
			}
		}
	}
	return nil
}

// Installment plans

func (s *Entries) ListInstallments(ctx context.Context, monthID int64) ([]core.InstallmentPlan, error) {
	return s.store.ListInstallments(ctx, monthID)
}

func (s *Entries) CreateInstallment(ctx context.Context, p core.InstallmentPlan) (core.InstallmentPlan, error) {
	if err := p.Validate(); err != nil {
		return core.InstallmentPlan{}, err
	}
	if err := s.writableMonth(ctx, p.MonthID); err != nil {
		return core.InstallmentPlan{}, err
	}
	return s.store.CreateInstallment(ctx, p)
}

func (s *Entries) UpdateInstallment(ctx context.Context, p core.InstallmentPlan) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if err := s.writableMonth(ctx, p.MonthID); err != nil {
		return err
	}
	return s.store.UpdateInstallment(ctx, p)
}

func (s *Entries) DeleteInstallment(ctx context.Context, id int64) error {
	return s.store.DeleteInstallment(ctx, id)
}

// Cards

func (s *Entries) ListCards(ctx context.Context) ([]core.Card, error) {
	return s.store.ListCards(ctx)
}

func (s *Entries) CreateCard(ctx context.Context, c core.Card) (core.Card, error) {
	if err := c.Validate(); err != nil {
		return core.Card{}, err
	}
	return s.store.CreateCard(ctx, c)
}

// DeleteCard removes a card. Cards still referenced by statement expenses
// are protected and the delete fails with core.ErrCardInUse.
func (s *Entries) DeleteCard(ctx context.Context, id int64) error {
	return s.store.DeleteCard(ctx, id)
}
