package services

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"mdfinancas/internal/core"
	"mdfinancas/internal/store"
)

// Ledger aggregates a month's rows into the summary view.
type Ledger struct {
	store store.Store
}

func NewLedger(st store.Store) *Ledger {
	return &Ledger{store: st}
}

const recentFeedSize = 5

// Summary computes the aggregated view of one month. The four category
// fetches run concurrently; any failure fails the whole summary.
//
// Expense totals count paid rows only, so the balance reflects money that has
// actually left the account. Revenue is never filtered. Pix entries count
// their final (surcharged) amount.
func (l *Ledger) Summary(ctx context.Context, monthID int64) (core.MonthSummary, error) {
	var (
		revenues []core.RevenueEntry
		fixed    []core.FixedExpense
		pix      []core.PixCreditExpense
		card     []core.CardStatementExpense
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		revenues, err = l.store.ListRevenues(gctx, monthID)
		return err
	})
	g.Go(func() (err error) {
		fixed, err = l.store.ListFixedExpenses(gctx, monthID)
		return err
	})
	g.Go(func() (err error) {
		pix, err = l.store.ListPixExpenses(gctx, monthID)
		return err
	})
	g.Go(func() (err error) {
		card, err = l.store.ListCardExpenses(gctx, monthID)
		return err
	})
	if err := g.Wait(); err != nil {
		return core.MonthSummary{}, fmt.Errorf("load month %d entries: %w", monthID, err)
	}

	s := core.MonthSummary{MonthID: monthID}
	for _, r := range revenues {
		s.TotalRevenue.Cents += r.Amount.Cents
	}
	for _, e := range fixed {
		if e.Paid {
			s.TotalExpenses.Cents += e.Amount.Cents
		}
	}
	for _, e := range pix {
		if e.Paid {
			s.TotalExpenses.Cents += e.FinalAmount.Cents
		}
	}
	for _, e := range card {
		if e.Paid {
			s.TotalExpenses.Cents += e.Amount.Cents
		}
	}
	s.NetBalance = core.Money{Cents: s.TotalRevenue.Cents - s.TotalExpenses.Cents}

	s.Recent = recentFeed(revenues, fixed, pix, card)

	perCard, err := l.cardTotals(ctx, card)
	if err != nil {
		return core.MonthSummary{}, err
	}
	s.PerCard = perCard

	return s, nil
}

// recentFeed merges the four categories into one list ordered newest first
// and keeps the head.
func recentFeed(revenues []core.RevenueEntry, fixed []core.FixedExpense,
	pix []core.PixCreditExpense, card []core.CardStatementExpense) []core.RecentEntry {

	feed := make([]core.RecentEntry, 0, len(revenues)+len(fixed)+len(pix)+len(card))
	for _, r := range revenues {
		feed = append(feed, core.RecentEntry{
			Kind: core.KindRevenue, Description: r.Description,
			Amount: r.Amount, Date: r.Date, CreatedAt: r.CreatedAt,
		})
	}
	for _, e := range fixed {
		feed = append(feed, core.RecentEntry{
			Kind: core.KindFixed, Description: e.Description,
			Amount: e.Amount, Date: e.Date, CreatedAt: e.CreatedAt,
		})
	}
	for _, e := range pix {
		feed = append(feed, core.RecentEntry{
			Kind: core.KindPix, Description: e.Description,
			Amount: e.FinalAmount, Date: e.Date, CreatedAt: e.CreatedAt,
		})
	}
	for _, e := range card {
		feed = append(feed, core.RecentEntry{
			Kind: core.KindCard, Description: e.Description,
			Amount: e.Amount, Date: e.Date, CreatedAt: e.CreatedAt,
		})
	}

	sort.SliceStable(feed, func(i, j int) bool {
		return feed[i].Occurred().After(feed[j].Occurred())
	})
	if len(feed) > recentFeedSize {
		feed = feed[:recentFeedSize]
	}
	return feed
}

// cardTotals groups statement expenses by card, dropping cards with no spend.
func (l *Ledger) cardTotals(ctx context.Context, expenses []core.CardStatementExpense) ([]core.CardTotal, error) {
	if len(expenses) == 0 {
		return nil, nil
	}

	cards, err := l.store.ListCards(ctx)
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}
	names := make(map[int64]string, len(cards))
	for _, c := range cards {
		names[c.ID] = c.Name
	}

	totals := make(map[int64]int64)
	for _, e := range expenses {
		totals[e.CardID] += e.Amount.Cents
	}

	out := make([]core.CardTotal, 0, len(totals))
	for id, cents := range totals {
		if cents == 0 {
			continue
		}
		out = append(out, core.CardTotal{
			CardID:   id,
			CardName: names[id],
			Total:    core.Money{Cents: cents},
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CardName < out[j].CardName })
	return out, nil
}
