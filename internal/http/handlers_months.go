package http

import (
	"net/http"

	"mdfinancas/internal/core"
)

type monthResponse struct {
	ID                int64  `json:"id"`
	Name              string `json:"name"`
	Year              int    `json:"year"`
	Status            string `json:"status"`
	FinalBalanceCents *int64 `json:"final_balance_cents,omitempty"`
	ReadOnly          bool   `json:"read_only,omitempty"`
}

func toMonthResponse(m core.Month) monthResponse {
	resp := monthResponse{
		ID:       m.ID,
		Name:     m.Name,
		Year:     m.Year,
		Status:   string(m.Status),
		ReadOnly: m.Sentinel(),
	}
	if m.FinalBalance != nil {
		cents := m.FinalBalance.Cents
		resp.FinalBalanceCents = &cents
	}
	return resp
}

func (s *Server) handleListMonths(w http.ResponseWriter, r *http.Request) {
	months, err := s.registry.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]monthResponse, 0, len(months))
	for _, m := range months {
		out = append(out, toMonthResponse(m))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCurrentMonths(w http.ResponseWriter, r *http.Request) {
	active, next, err := s.registry.Resolve(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]monthResponse{
		"active": toMonthResponse(active),
		"next":   toMonthResponse(next),
	})
}

type summaryResponse struct {
	MonthID            int64               `json:"month_id"`
	TotalRevenueCents  int64               `json:"total_revenue_cents"`
	TotalExpensesCents int64               `json:"total_expenses_cents"`
	NetBalanceCents    int64               `json:"net_balance_cents"`
	Recent             []recentResponse    `json:"recent"`
	PerCard            []cardTotalResponse `json:"per_card"`
}

type recentResponse struct {
	Kind        string `json:"kind"`
	Description string `json:"description"`
	AmountCents int64  `json:"amount_cents"`
	Date        string `json:"date"`
}

type cardTotalResponse struct {
	CardID     int64  `json:"card_id"`
	CardName   string `json:"card_name"`
	TotalCents int64  `json:"total_cents"`
}

func (s *Server) handleMonthSummary(w http.ResponseWriter, r *http.Request) {
	monthID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	summary, err := s.ledger.Summary(r.Context(), monthID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := summaryResponse{
		MonthID:            summary.MonthID,
		TotalRevenueCents:  summary.TotalRevenue.Cents,
		TotalExpensesCents: summary.TotalExpenses.Cents,
		NetBalanceCents:    summary.NetBalance.Cents,
		Recent:             make([]recentResponse, 0, len(summary.Recent)),
		PerCard:            make([]cardTotalResponse, 0, len(summary.PerCard)),
	}
	for _, e := range summary.Recent {
		resp.Recent = append(resp.Recent, recentResponse{
			Kind:        string(e.Kind),
			Description: e.Description,
			AmountCents: e.Amount.Cents,
			Date:        formatDate(e.Date),
		})
	}
	for _, c := range summary.PerCard {
		resp.PerCard = append(resp.PerCard, cardTotalResponse{
			CardID:     c.CardID,
			CardName:   c.CardName,
			TotalCents: c.Total.Cents,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCloseMonth(w http.ResponseWriter, r *http.Request) {
	monthID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	closed, err := s.closer.Close(r.Context(), monthID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toMonthResponse(closed))
}

func (s *Server) handleReopenMonth(w http.ResponseWriter, r *http.Request) {
	monthID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	reopened, err := s.closer.Reopen(r.Context(), monthID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toMonthResponse(reopened))
}
