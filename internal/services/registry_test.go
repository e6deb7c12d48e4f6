package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"mdfinancas/internal/core"
	"mdfinancas/internal/store/memory"
)

func seedMonth(t *testing.T, st *memory.Store, name string, year int, status core.MonthStatus) core.Month {
	t.Helper()
	m, err := st.CreateMonth(context.Background(), core.Month{
		Name:      name,
		Year:      year,
		Status:    status,
		CreatedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("seed month %s/%d: %v", name, year, err)
	}
	return m
}

func TestRegistry_Resolve_SingleActive(t *testing.T) {
	st := memory.New()
	active := seedMonth(t, st, "MARCH", 2026, core.StatusActive)

	got, next, err := NewRegistry(st).Resolve(context.Background())
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got.ID != active.ID {
		t.Fatalf("active = %s/%d, want MARCH/2026", got.Name, got.Year)
	}
	if next.Name != "APRIL" || next.Year != 2026 {
		t.Fatalf("next = %s/%d, want APRIL/2026", next.Name, next.Year)
	}
	if next.Status != core.StatusProvisioning {
		t.Fatalf("next status = %s, want provisioning", next.Status)
	}
	if next.ID == core.SentinelMonthID {
		t.Fatal("next month was not persisted")
	}
}

func TestRegistry_Resolve_DecemberWrapsYear(t *testing.T) {
	st := memory.New()
	seedMonth(t, st, "DECEMBER", 2026, core.StatusActive)

	_, next, err := NewRegistry(st).Resolve(context.Background())
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if next.Name != "JANUARY" || next.Year != 2027 {
		t.Fatalf("next = %s/%d, want JANUARY/2027", next.Name, next.Year)
	}
}

func TestRegistry_Resolve_MultipleActivesPicksEarliest(t *testing.T) {
	st := memory.New()
	later := seedMonth(t, st, "JUNE", 2026, core.StatusActive)
	earlier := seedMonth(t, st, "MAY", 2026, core.StatusActive)

	got, next, err := NewRegistry(st).Resolve(context.Background())
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got.ID != earlier.ID {
		t.Fatalf("active = %s, want MAY (chronologically first)", got.Name)
	}
	if next.ID != later.ID {
		t.Fatalf("next = %s, want the existing JUNE row reused", next.Name)
	}

	// No extra rows were created.
	months, err := st.ListMonths(context.Background())
	if err != nil {
		t.Fatalf("ListMonths() error = %v", err)
	}
	if len(months) != 2 {
		t.Fatalf("months = %d, want 2", len(months))
	}
}

func TestRegistry_Resolve_NoActiveCreatesFallback(t *testing.T) {
	st := memory.New()

	got, next, err := NewRegistry(st).Resolve(context.Background())
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got.Name != "DECEMBER" || got.Year != 2025 {
		t.Fatalf("fallback = %s/%d, want DECEMBER/2025", got.Name, got.Year)
	}
	if got.Status != core.StatusActive {
		t.Fatalf("fallback status = %s, want active", got.Status)
	}
	if next.Name != "JANUARY" || next.Year != 2026 {
		t.Fatalf("next = %s/%d, want JANUARY/2026", next.Name, next.Year)
	}
}

func TestRegistry_Resolve_ReusesExistingNextMonth(t *testing.T) {
	st := memory.New()
	seedMonth(t, st, "MARCH", 2026, core.StatusActive)
	existing := seedMonth(t, st, "APRIL", 2026, core.StatusProvisioning)

	_, next, err := NewRegistry(st).Resolve(context.Background())
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if next.ID != existing.ID {
		t.Fatalf("next.ID = %d, want existing row %d", next.ID, existing.ID)
	}
}

func TestRegistry_Resolve_LegacySchemaFallsBackToActive(t *testing.T) {
	st := memory.New()
	seedMonth(t, st, "MARCH", 2026, core.StatusActive)
	st.RejectProvisioning = true

	_, next, err := NewRegistry(st).Resolve(context.Background())
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if next.Status != core.StatusActive {
		t.Fatalf("next status = %s, want active after schema rejection", next.Status)
	}
	if next.ID == core.SentinelMonthID {
		t.Fatal("next month should have been persisted on retry")
	}
}

func TestRegistry_Resolve_PersistenceFailureYieldsSentinel(t *testing.T) {
	st := memory.New()
	seedMonth(t, st, "MARCH", 2026, core.StatusActive)
	st.CreateMonthErr = errors.New("disk full")

	_, next, err := NewRegistry(st).Resolve(context.Background())
	if err != nil {
		t.Fatalf("Resolve() error = %v, want degraded success", err)
	}
	if !next.Sentinel() {
		t.Fatalf("next.ID = %d, want sentinel placeholder", next.ID)
	}
	if next.Name != "APRIL" || next.Year != 2026 {
		t.Fatalf("placeholder = %s/%d, want APRIL/2026", next.Name, next.Year)
	}
}
