package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mdfinancas/internal/core"
	"mdfinancas/internal/services"
	"mdfinancas/internal/store/memory"
)

func newTestServer(t *testing.T) (*Server, *memory.Store) {
	t.Helper()
	st := memory.New()
	registry := services.NewRegistry(st)
	ledger := services.NewLedger(st)
	closer := services.NewCloser(st, ledger, nil)
	entries := services.NewEntries(st)
	settings := services.NewSettings(st)
	s := NewServer(":0", registry, ledger, closer, entries, settings)
	t.Cleanup(func() { s.Shutdown(context.Background()) })
	return s, st
}

func seedActiveMonth(t *testing.T, st *memory.Store) core.Month {
	t.Helper()
	m, err := st.CreateMonth(context.Background(), core.Month{
		Name: "MARCH", Year: 2026, Status: core.StatusActive, CreatedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("seed month: %v", err)
	}
	return m
}

func doJSON(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Server.Handler.ServeHTTP(rec, req)
	return rec
}

func TestServer_Health(t *testing.T) {
	s, _ := newTestServer(t)
	rec := doJSON(t, s, http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /healthz = %d, want 200", rec.Code)
	}
}

func TestServer_CurrentMonths(t *testing.T) {
	s, st := newTestServer(t)
	seedActiveMonth(t, st)

	rec := doJSON(t, s, http.MethodGet, "/api/months/current", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /api/months/current = %d, body %s", rec.Code, rec.Body)
	}

	var resp map[string]monthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp["active"].Name != "MARCH" {
		t.Errorf("active = %s, want MARCH", resp["active"].Name)
	}
	if resp["next"].Name != "APRIL" || resp["next"].Status != "provisioning" {
		t.Errorf("next = %s/%s, want APRIL/provisioning", resp["next"].Name, resp["next"].Status)
	}
}

func TestServer_CreateRevenue(t *testing.T) {
	s, st := newTestServer(t)
	month := seedActiveMonth(t, st)

	rec := doJSON(t, s, http.MethodPost, fmt.Sprintf("/api/months/%d/revenues", month.ID), map[string]string{
		"description": "salary",
		"amount":      "4321,09",
		"date":        "2026-03-01",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST revenue = %d, body %s", rec.Code, rec.Body)
	}

	var resp entryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.AmountCents != 432109 {
		t.Errorf("amount_cents = %d, want 432109 (comma decimal parsed)", resp.AmountCents)
	}
}

func TestServer_CreateRevenue_Invalid(t *testing.T) {
	s, st := newTestServer(t)
	month := seedActiveMonth(t, st)

	tests := []struct {
		name string
		body map[string]string
	}{
		{"empty description", map[string]string{"description": "", "amount": "10,00"}},
		{"zero amount", map[string]string{"description": "x", "amount": "0"}},
		{"garbage amount", map[string]string{"description": "x", "amount": "abc"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, s, http.MethodPost, fmt.Sprintf("/api/months/%d/revenues", month.ID), tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestServer_PixExpenseUsesConfiguredSurcharge(t *testing.T) {
	s, st := newTestServer(t)
	month := seedActiveMonth(t, st)
	st.SetSetting(context.Background(), services.PixSurchargeKey, "10")

	rec := doJSON(t, s, http.MethodPost, fmt.Sprintf("/api/months/%d/pix-expenses", month.ID), map[string]string{
		"description": "sofa",
		"amount":      "1000,00",
		"date":        "2026-03-10",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST pix = %d, body %s", rec.Code, rec.Body)
	}

	var resp pixExpenseResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.FinalAmountCents != 110000 {
		t.Errorf("final_amount_cents = %d, want 110000 (10%% surcharge)", resp.FinalAmountCents)
	}
	if resp.SurchargePct != "10" {
		t.Errorf("surcharge_pct = %s, want 10", resp.SurchargePct)
	}
}

func TestServer_UpdatePixKeepsStoredSurcharge(t *testing.T) {
	s, st := newTestServer(t)
	ctx := context.Background()
	month := seedActiveMonth(t, st)
	st.SetSetting(ctx, services.PixSurchargeKey, "10")

	rec := doJSON(t, s, http.MethodPost, fmt.Sprintf("/api/months/%d/pix-expenses", month.ID), map[string]string{
		"description": "sofa",
		"amount":      "1000,00",
		"date":        "2026-03-10",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST pix = %d, body %s", rec.Code, rec.Body)
	}
	var created pixExpenseResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	// The global surcharge changes afterwards; an update without an explicit
	// surcharge_pct must not reprice the row with it.
	st.SetSetting(ctx, services.PixSurchargeKey, "20")

	rec = doJSON(t, s, http.MethodPut, fmt.Sprintf("/api/pix-expenses/%d", created.ID), map[string]any{
		"month_id":    month.ID,
		"description": "sofa",
		"amount":      "2000,00",
		"date":        "2026-03-10",
	})
	if rec.Code != http.StatusNoContent {
		t.Fatalf("PUT pix = %d, body %s", rec.Code, rec.Body)
	}

	rows, _ := st.ListPixExpenses(ctx, month.ID)
	if len(rows) != 1 {
		t.Fatalf("pix rows = %d, want 1", len(rows))
	}
	if got := rows[0].SurchargePct.String(); got != "10" {
		t.Errorf("surcharge_pct after update = %s, want 10", got)
	}
	if rows[0].FinalAmount.Cents != 220000 {
		t.Errorf("final_amount_cents = %d, want 220000 (10%% on the new amount)", rows[0].FinalAmount.Cents)
	}
}

func TestServer_CloseAndReopenMonth(t *testing.T) {
	s, st := newTestServer(t)
	ctx := context.Background()
	month := seedActiveMonth(t, st)
	st.CreateMonth(ctx, core.Month{Name: "APRIL", Year: 2026, Status: core.StatusProvisioning})
	st.CreateRevenue(ctx, core.RevenueEntry{MonthID: month.ID, Description: "salary", Amount: core.Money{Cents: 100000}, Date: time.Now()})

	rec := doJSON(t, s, http.MethodPost, fmt.Sprintf("/api/months/%d/close", month.ID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("POST close = %d, body %s", rec.Code, rec.Body)
	}
	var closed monthResponse
	json.Unmarshal(rec.Body.Bytes(), &closed)
	if closed.Status != "closed" || closed.FinalBalanceCents == nil || *closed.FinalBalanceCents != 100000 {
		t.Fatalf("closed month = %+v", closed)
	}

	// A second close must be rejected.
	rec = doJSON(t, s, http.MethodPost, fmt.Sprintf("/api/months/%d/close", month.ID), nil)
	if rec.Code != http.StatusConflict {
		t.Fatalf("second close = %d, want 409", rec.Code)
	}

	rec = doJSON(t, s, http.MethodPost, fmt.Sprintf("/api/months/%d/reopen", month.ID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("POST reopen = %d, body %s", rec.Code, rec.Body)
	}
	var reopened monthResponse
	json.Unmarshal(rec.Body.Bytes(), &reopened)
	if reopened.Status != "active" || reopened.FinalBalanceCents != nil {
		t.Fatalf("reopened month = %+v", reopened)
	}
}

func TestServer_WriteToClosedMonthConflicts(t *testing.T) {
	s, st := newTestServer(t)
	closed, err := st.CreateMonth(context.Background(), core.Month{
		Name: "FEBRUARY", Year: 2026, Status: core.StatusClosed,
	})
	if err != nil {
		t.Fatalf("seed month: %v", err)
	}

	rec := doJSON(t, s, http.MethodPost, fmt.Sprintf("/api/months/%d/revenues", closed.ID), map[string]string{
		"description": "late", "amount": "10,00",
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
}

func TestServer_DeleteCardInUse(t *testing.T) {
	s, st := newTestServer(t)
	ctx := context.Background()
	month := seedActiveMonth(t, st)
	card, _ := st.CreateCard(ctx, core.Card{Name: "Visa"})
	st.CreateCardExpense(ctx, core.CardStatementExpense{
		MonthID: month.ID, CardID: card.ID, Description: "x", Amount: core.Money{Cents: 100}, Date: time.Now(),
	})

	rec := doJSON(t, s, http.MethodDelete, fmt.Sprintf("/api/cards/%d", card.ID), nil)
	if rec.Code != http.StatusConflict {
		t.Fatalf("DELETE card = %d, want 409", rec.Code)
	}
}

func TestServer_BulkEditStatement(t *testing.T) {
	s, st := newTestServer(t)
	ctx := context.Background()
	month := seedActiveMonth(t, st)
	amex, _ := st.CreateCard(ctx, core.Card{Name: "American Express", AggregateOnly: true})

	rec := doJSON(t, s, http.MethodPut,
		fmt.Sprintf("/api/months/%d/cards/%d/statement", month.ID, amex.ID),
		map[string]string{"Statement": "1200,00", "Subscription": "49,90"})
	if rec.Code != http.StatusNoContent {
		t.Fatalf("PUT statement = %d, body %s", rec.Code, rec.Body)
	}

	rows, _ := st.ListCardExpensesByCard(ctx, month.ID, amex.ID)
	if len(rows) != 2 {
		t.Fatalf("statement rows = %d, want 2", len(rows))
	}
}

func TestServer_BulkEditStatementZeroRemovesLine(t *testing.T) {
	s, st := newTestServer(t)
	ctx := context.Background()
	month := seedActiveMonth(t, st)
	amex, _ := st.CreateCard(ctx, core.Card{Name: "American Express", AggregateOnly: true})

	rec := doJSON(t, s, http.MethodPut,
		fmt.Sprintf("/api/months/%d/cards/%d/statement", month.ID, amex.ID),
		map[string]string{"Statement": "1200,00", "Subscription": "49,90"})
	if rec.Code != http.StatusNoContent {
		t.Fatalf("PUT statement = %d, body %s", rec.Code, rec.Body)
	}

	// Zero in any decimal form removes the line instead of erroring.
	rec = doJSON(t, s, http.MethodPut,
		fmt.Sprintf("/api/months/%d/cards/%d/statement", month.ID, amex.ID),
		map[string]string{"Statement": "0,00", "Subscription": "49,90"})
	if rec.Code != http.StatusNoContent {
		t.Fatalf("PUT statement with zero = %d, body %s", rec.Code, rec.Body)
	}

	rows, _ := st.ListCardExpensesByCard(ctx, month.ID, amex.ID)
	if len(rows) != 1 || rows[0].Description != "Subscription" {
		t.Fatalf("statement rows after zeroing = %+v, want only Subscription", rows)
	}
}

func TestServer_Summary(t *testing.T) {
	s, st := newTestServer(t)
	ctx := context.Background()
	month := seedActiveMonth(t, st)
	st.CreateRevenue(ctx, core.RevenueEntry{MonthID: month.ID, Description: "salary", Amount: core.Money{Cents: 300000}, Date: time.Now()})
	st.CreateFixedExpense(ctx, core.FixedExpense{MonthID: month.ID, Description: "rent", Amount: core.Money{Cents: 120000}, Paid: true, Date: time.Now()})

	rec := doJSON(t, s, http.MethodGet, fmt.Sprintf("/api/months/%d/summary", month.ID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET summary = %d, body %s", rec.Code, rec.Body)
	}
	var resp summaryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.NetBalanceCents != 180000 {
		t.Errorf("net_balance_cents = %d, want 180000", resp.NetBalanceCents)
	}
	if len(resp.Recent) != 2 {
		t.Errorf("recent = %d entries, want 2", len(resp.Recent))
	}
}

func TestServer_RequestIDHeader(t *testing.T) {
	s, st := newTestServer(t)
	seedActiveMonth(t, st)

	rec := doJSON(t, s, http.MethodGet, "/api/months", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /api/months = %d", rec.Code)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("missing X-Request-ID header")
	}
	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("missing security headers")
	}
}
