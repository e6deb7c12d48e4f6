// Package memory provides an in-memory store.Store used by tests and as the
// default development backend.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"mdfinancas/internal/core"
	"mdfinancas/internal/store"
)

type Store struct {
	mu sync.Mutex

	months       []core.Month
	revenues     []core.RevenueEntry
	fixed        []core.FixedExpense
	pix          []core.PixCreditExpense
	cardExpenses []core.CardStatementExpense
	installments []core.InstallmentPlan
	cards        []core.Card
	settings     map[string]string

	nextID int64

	// RejectProvisioning emulates a legacy schema whose status CHECK
	// constraint predates the provisioning value.
	RejectProvisioning bool

	// CreateMonthErr, when set, fails every month insert. Used to exercise
	// the registry's terminal placeholder fallback.
	CreateMonthErr error
}

var _ store.Store = (*Store)(nil)

func New() *Store {
	return &Store{settings: make(map[string]string), nextID: 1}
}

func (s *Store) id() int64 {
	id := s.nextID
	s.nextID++
	return id
}

// Months

func (s *Store) ListMonths(_ context.Context) ([]core.Month, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := append([]core.Month(nil), s.months...)
	sort.Slice(out, func(i, j int) bool { return out[i].SortKey() > out[j].SortKey() })
	return out, nil
}

func (s *Store) GetMonth(_ context.Context, id int64) (core.Month, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.months {
		if m.ID == id {
			return m, nil
		}
	}
	return core.Month{}, fmt.Errorf("month %d: %w", id, core.ErrNotFound)
}

func (s *Store) FindMonth(_ context.Context, name string, year int) (core.Month, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.months {
		if m.Name == name && m.Year == year {
			return m, nil
		}
	}
	return core.Month{}, fmt.Errorf("month %s/%d: %w", name, year, core.ErrNotFound)
}

func (s *Store) CreateMonth(_ context.Context, m core.Month) (core.Month, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.CreateMonthErr != nil {
		return core.Month{}, s.CreateMonthErr
	}
	if s.RejectProvisioning && m.Status == core.StatusProvisioning {
		return core.Month{}, fmt.Errorf("insert month: %w", store.ErrStatusRejected)
	}
	m.ID = s.id()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	s.months = append(s.months, m)
	return m, nil
}

func (s *Store) SetMonthStatus(_ context.Context, id int64, status core.MonthStatus, finalBalance *core.Money) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.months {
		if s.months[i].ID == id {
			s.months[i].Status = status
			s.months[i].FinalBalance = finalBalance
			return nil
		}
	}
	return fmt.Errorf("month %d: %w", id, core.ErrNotFound)
}

// Revenues

func (s *Store) ListRevenues(_ context.Context, monthID int64) ([]core.RevenueEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.RevenueEntry
	for _, r := range s.revenues {
		if r.MonthID == monthID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *Store) CreateRevenue(_ context.Context, r core.RevenueEntry) (core.RevenueEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r.ID = s.id()
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	s.revenues = append(s.revenues, r)
	return r, nil
}

func (s *Store) UpdateRevenue(_ context.Context, r core.RevenueEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.revenues {
		if s.revenues[i].ID == r.ID {
			r.CreatedAt = s.revenues[i].CreatedAt
			s.revenues[i] = r
			return nil
		}
	}
	return fmt.Errorf("revenue %d: %w", r.ID, core.ErrNotFound)
}

func (s *Store) DeleteRevenue(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.revenues {
		if s.revenues[i].ID == id {
			s.revenues = append(s.revenues[:i], s.revenues[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("revenue %d: %w", id, core.ErrNotFound)
}

// Fixed expenses

func (s *Store) ListFixedExpenses(_ context.Context, monthID int64) ([]core.FixedExpense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.FixedExpense
	for _, e := range s.fixed {
		if e.MonthID == monthID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *Store) CreateFixedExpense(_ context.Context, e core.FixedExpense) (core.FixedExpense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e.ID = s.id()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	s.fixed = append(s.fixed, e)
	return e, nil
}

func (s *Store) UpdateFixedExpense(_ context.Context, e core.FixedExpense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.fixed {
		if s.fixed[i].ID == e.ID {
			e.CreatedAt = s.fixed[i].CreatedAt
			s.fixed[i] = e
			return nil
		}
	}
	return fmt.Errorf("fixed expense %d: %w", e.ID, core.ErrNotFound)
}

func (s *Store) DeleteFixedExpense(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.fixed {
		if s.fixed[i].ID == id {
			s.fixed = append(s.fixed[:i], s.fixed[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("fixed expense %d: %w", id, core.ErrNotFound)
}

func (s *Store) SetFixedExpensePaid(_ context.Context, id int64, paid bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.fixed {
		if s.fixed[i].ID == id {
			s.fixed[i].Paid = paid
			return nil
		}
	}
	return fmt.Errorf("fixed expense %d: %w", id, core.ErrNotFound)
}

// Pix credit expenses

func (s *Store) ListPixExpenses(_ context.Context, monthID int64) ([]core.PixCreditExpense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.PixCreditExpense
	for _, e := range s.pix {
		if e.MonthID == monthID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *Store) GetPixExpense(_ context.Context, id int64) (core.PixCreditExpense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.pix {
		if e.ID == id {
			return e, nil
		}
	}
	return core.PixCreditExpense{}, fmt.Errorf("pix expense %d: %w", id, core.ErrNotFound)
}

func (s *Store) CreatePixExpense(_ context.Context, e core.PixCreditExpense) (core.PixCreditExpense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e.ID = s.id()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	s.pix = append(s.pix, e)
	return e, nil
}

func (s *Store) UpdatePixExpense(_ context.Context, e core.PixCreditExpense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.pix {
		if s.pix[i].ID == e.ID {
			e.CreatedAt = s.pix[i].CreatedAt
			s.pix[i] = e
			return nil
		}
	}
	return fmt.Errorf("pix expense %d: %w", e.ID, core.ErrNotFound)
}

func (s *Store) DeletePixExpense(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.pix {
		if s.pix[i].ID == id {
			s.pix = append(s.pix[:i], s.pix[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("pix expense %d: %w", id, core.ErrNotFound)
}

func (s *Store) SetPixExpensePaid(_ context.Context, id int64, paid bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.pix {
		if s.pix[i].ID == id {
			s.pix[i].Paid = paid
			return nil
		}
	}
	return fmt.Errorf("pix expense %d: %w", id, core.ErrNotFound)
}

// Card statement expenses

func (s *Store) ListCardExpenses(_ context.Context, monthID int64) ([]core.CardStatementExpense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.CardStatementExpense
	for _, e := range s.cardExpenses {
		if e.MonthID == monthID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *Store) ListCardExpensesByCard(_ context.Context, monthID, cardID int64) ([]core.CardStatementExpense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.CardStatementExpense
	for _, e := range s.cardExpenses {
		if e.MonthID == monthID && e.CardID == cardID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *Store) CreateCardExpense(_ context.Context, e core.CardStatementExpense) (core.CardStatementExpense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e.ID = s.id()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	s.cardExpenses = append(s.cardExpenses, e)
	return e, nil
}

func (s *Store) UpdateCardExpense(_ context.Context, e core.CardStatementExpense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.cardExpenses {
		if s.cardExpenses[i].ID == e.ID {
			e.CreatedAt = s.cardExpenses[i].CreatedAt
			s.cardExpenses[i] = e
			return nil
		}
	}
	return fmt.Errorf("card expense %d: %w", e.ID, core.ErrNotFound)
}

func (s *Store) DeleteCardExpense(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.cardExpenses {
		if s.cardExpenses[i].ID == id {
			s.cardExpenses = append(s.cardExpenses[:i], s.cardExpenses[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("card expense %d: %w", id, core.ErrNotFound)
}

func (s *Store) SetCardExpensePaid(_ context.Context, id int64, paid bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.cardExpenses {
		if s.cardExpenses[i].ID == id {
			s.cardExpenses[i].Paid = paid
			return nil
		}
	}
	return fmt.Errorf("card expense %d: %w", id, core.ErrNotFound)
}

// Installment plans

func (s *Store) ListInstallments(_ context.Context, monthID int64) ([]core.InstallmentPlan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.InstallmentPlan
	for _, p := range s.installments {
		if p.MonthID == monthID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *Store) CreateInstallment(_ context.Context, p core.InstallmentPlan) (core.InstallmentPlan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = s.id()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	s.installments = append(s.installments, p)
	return p, nil
}

func (s *Store) UpdateInstallment(_ context.Context, p core.InstallmentPlan) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.installments {
		if s.installments[i].ID == p.ID {
			p.CreatedAt = s.installments[i].CreatedAt
			s.installments[i] = p
			return nil
		}
	}
	return fmt.Errorf("installment %d: %w", p.ID, core.ErrNotFound)
}

func (s *Store) DeleteInstallment(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.installments {
		if s.installments[i].ID == id {
			s.installments = append(s.installments[:i], s.installments[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("installment %d: %w", id, core.ErrNotFound)
}

// Cards

func (s *Store) ListCards(_ context.Context) ([]core.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := append([]core.Card(nil), s.cards...)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) GetCard(_ context.Context, id int64) (core.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.cards {
		if c.ID == id {
			return c, nil
		}
	}
	return core.Card{}, fmt.Errorf("card %d: %w", id, core.ErrNotFound)
}

func (s *Store) CreateCard(_ context.Context, c core.Card) (core.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = s.id()
	s.cards = append(s.cards, c)
	return c, nil
}

func (s *Store) DeleteCard(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.cardExpenses {
		if e.CardID == id {
			return fmt.Errorf("card %d: %w", id, core.ErrCardInUse)
		}
	}
	for i := range s.cards {
		if s.cards[i].ID == id {
			s.cards = append(s.cards[:i], s.cards[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("card %d: %w", id, core.ErrNotFound)
}

// Settings

func (s *Store) GetSetting(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.settings[key]
	if !ok {
		return "", fmt.Errorf("setting %q: %w", key, core.ErrNotFound)
	}
	return v, nil
}

func (s *Store) SetSetting(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings[key] = value
	return nil
}
