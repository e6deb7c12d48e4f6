// Package services provides business logic and orchestration over the store
// ports: month lifecycle, ledger aggregation and closing/rollover.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"mdfinancas/internal/core"
	"mdfinancas/internal/store"
)

// Fallback period used when the registry finds no active month at all.
const (
	fallbackMonthName = "DECEMBER"
	fallbackYear      = 2025
)

// Registry resolves which month is currently active and which one is being
// provisioned for the future. It self-heals: whatever state the months table
// is in, Resolve returns a usable pair and only degrades, never aborts.
type Registry struct {
	months store.MonthStore
}

func NewRegistry(months store.MonthStore) *Registry {
	return &Registry{months: months}
}

// List returns every month, newest first.
func (r *Registry) List(ctx context.Context) ([]core.Month, error) {
	months, err := r.months.ListMonths(ctx)
	if err != nil {
		return nil, fmt.Errorf("list months: %w", err)
	}
	sort.Slice(months, func(i, j int) bool {
		return months[i].SortKey() > months[j].SortKey()
	})
	return months, nil
}

// Resolve returns the active month and the provisioning month that follows
// it, creating whichever rows are missing.
//
// Multiple active rows are tolerated: the chronologically earliest one is the
// real active month and the next is reused as the planning row. When no
// active month exists a fallback period is created. When the planning row
// cannot be persisted at all, a read-only placeholder with a sentinel ID is
// returned so callers can still render.
func (r *Registry) Resolve(ctx context.Context) (core.Month, core.Month, error) {
	active, reuse, err := r.resolveActive(ctx)
	if err != nil {
		return core.Month{}, core.Month{}, err
	}

	if reuse != nil {
		return active, *reuse, nil
	}

	next := r.resolveNext(ctx, active)
	return active, next, nil
}

func (r *Registry) resolveActive(ctx context.Context) (core.Month, *core.Month, error) {
	months, err := r.months.ListMonths(ctx)
	if err != nil {
		return core.Month{}, nil, fmt.Errorf("list months: %w", err)
	}

	var actives []core.Month
	for _, m := range months {
		if m.Status == core.StatusActive {
			actives = append(actives, m)
		}
	}
	sort.Slice(actives, func(i, j int) bool {
		return actives[i].SortKey() < actives[j].SortKey()
	})

	switch len(actives) {
	case 0:
		slog.WarnContext(ctx, "No active month found, creating fallback",
			"name", fallbackMonthName, "year", fallbackYear)
		m, err := r.months.CreateMonth(ctx, core.Month{
			Name:      fallbackMonthName,
			Year:      fallbackYear,
			Status:    core.StatusActive,
			CreatedAt: time.Now().UTC(),
		})
		if err != nil {
			return core.Month{}, nil, fmt.Errorf("create fallback month: %w", err)
		}
		return m, nil, nil
	case 1:
		return actives[0], nil, nil
	default:
		// Earliest active is the real one; the following active row is the
		// planning month mid-rollover. Reuse it instead of creating another.
		return actives[0], &actives[1], nil
	}
}

// resolveNext finds or creates the planning month that follows active. It
// never fails: on persistence trouble it falls back to an active-status
// insert and finally to a sentinel placeholder.
func (r *Registry) resolveNext(ctx context.Context, active core.Month) core.Month {
	name, year, err := core.NextPeriod(active.Name, active.Year)
	if err != nil {
		slog.ErrorContext(ctx, "Active month has no canonical name, cannot plan ahead",
			"name", active.Name, "error", err)
		return sentinelMonth(active.Name, active.Year)
	}

	if existing, err := r.months.FindMonth(ctx, name, year); err == nil {
		return existing
	} else if !errors.Is(err, core.ErrNotFound) {
		slog.ErrorContext(ctx, "Failed to look up next month", "name", name, "year", year, "error", err)
	}

	created, err := r.months.CreateMonth(ctx, core.Month{
		Name:      name,
		Year:      year,
		Status:    core.StatusProvisioning,
		CreatedAt: time.Now().UTC(),
	})
	if err == nil {
		return created
	}

	if errors.Is(err, store.ErrStatusRejected) {
		// Legacy schemas predate the provisioning status. Retry with the
		// closest status they accept.
		slog.WarnContext(ctx, "Provisioning status rejected by schema, retrying as active",
			"name", name, "year", year)
		created, err = r.months.CreateMonth(ctx, core.Month{
			Name:      name,
			Year:      year,
			Status:    core.StatusActive,
			CreatedAt: time.Now().UTC(),
		})
		if err == nil {
			return created
		}
	}

	slog.ErrorContext(ctx, "Failed to persist next month, serving placeholder",
		"name", name, "year", year, "error", err)
	return sentinelMonth(name, year)
}

func sentinelMonth(name string, year int) core.Month {
	return core.Month{
		ID:     core.SentinelMonthID,
		Name:   name,
		Year:   year,
		Status: core.StatusProvisioning,
	}
}
