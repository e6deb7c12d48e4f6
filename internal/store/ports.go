// Package store defines the ports the ledger services use to reach the
// relational backend. Implementations: storage (SQLite) and store/memory.
package store

import (
	"context"
	"errors"

	"mdfinancas/internal/core"
)

// ErrStatusRejected signals that the backend's schema refused a month status
// value (e.g. a legacy CHECK constraint that predates "provisioning"). The
// registry reacts with a compatibility fallback instead of failing.
var ErrStatusRejected = errors.New("month status rejected by schema")

type (
	MonthStore interface {
		// ListMonths returns all months, newest year first.
		ListMonths(ctx context.Context) ([]core.Month, error)
		GetMonth(ctx context.Context, id int64) (core.Month, error)
		// FindMonth looks a month up by canonical name and year.
		// Returns core.ErrNotFound when absent.
		FindMonth(ctx context.Context, name string, year int) (core.Month, error)
		// CreateMonth inserts the month and returns the created row.
		CreateMonth(ctx context.Context, m core.Month) (core.Month, error)
		// SetMonthStatus updates status and final balance in one write;
		// a nil balance clears the stored value.
		SetMonthStatus(ctx context.Context, id int64, status core.MonthStatus, finalBalance *core.Money) error
	}

	RevenueStore interface {
		ListRevenues(ctx context.Context, monthID int64) ([]core.RevenueEntry, error)
		CreateRevenue(ctx context.Context, r core.RevenueEntry) (core.RevenueEntry, error)
		UpdateRevenue(ctx context.Context, r core.RevenueEntry) error
		DeleteRevenue(ctx context.Context, id int64) error
	}

	FixedExpenseStore interface {
		ListFixedExpenses(ctx context.Context, monthID int64) ([]core.FixedExpense, error)
		CreateFixedExpense(ctx context.Context, e core.FixedExpense) (core.FixedExpense, error)
		UpdateFixedExpense(ctx context.Context, e core.FixedExpense) error
		DeleteFixedExpense(ctx context.Context, id int64) error
		SetFixedExpensePaid(ctx context.Context, id int64, paid bool) error
	}

	PixExpenseStore interface {
		ListPixExpenses(ctx context.Context, monthID int64) ([]core.PixCreditExpense, error)
		GetPixExpense(ctx context.Context, id int64) (core.PixCreditExpense, error)
		CreatePixExpense(ctx context.Context, e core.PixCreditExpense) (core.PixCreditExpense, error)
		UpdatePixExpense(ctx context.Context, e core.PixCreditExpense) error
		DeletePixExpense(ctx context.Context, id int64) error
		SetPixExpensePaid(ctx context.Context, id int64, paid bool) error
	}

	CardExpenseStore interface {
		ListCardExpenses(ctx context.Context, monthID int64) ([]core.CardStatementExpense, error)
		ListCardExpensesByCard(ctx context.Context, monthID, cardID int64) ([]core.CardStatementExpense, error)
		CreateCardExpense(ctx context.Context, e core.CardStatementExpense) (core.CardStatementExpense, error)
		UpdateCardExpense(ctx context.Context, e core.CardStatementExpense) error
		DeleteCardExpense(ctx context.Context, id int64) error
		SetCardExpensePaid(ctx context.Context, id int64, paid bool) error
	}

	InstallmentStore interface {
		ListInstallments(ctx context.Context, monthID int64) ([]core.InstallmentPlan, error)
		CreateInstallment(ctx context.Context, p core.InstallmentPlan) (core.InstallmentPlan, error)
		UpdateInstallment(ctx context.Context, p core.InstallmentPlan) error
		DeleteInstallment(ctx context.Context, id int64) error
	}

	CardStore interface {
		ListCards(ctx context.Context) ([]core.Card, error)
		GetCard(ctx context.Context, id int64) (core.Card, error)
		CreateCard(ctx context.Context, c core.Card) (core.Card, error)
		// DeleteCard fails with core.ErrCardInUse while statement expenses
		// reference the card; deletion never cascades.
		DeleteCard(ctx context.Context, id int64) error
	}

	// SettingsStore is the string key/value configuration table. The pix
	// surcharge percentage lives under core settings keys.
	SettingsStore interface {
		GetSetting(ctx context.Context, key string) (string, error)
		SetSetting(ctx context.Context, key, value string) error
	}
)

// Store is the full backend surface the engine runs against.
type Store interface {
	MonthStore
	RevenueStore
	FixedExpenseStore
	PixExpenseStore
	CardExpenseStore
	InstallmentStore
	CardStore
	SettingsStore
}
