package http

import (
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"mdfinancas/internal/core"
)

type cardRequest struct {
	Name          string `json:"name"`
	Color         string `json:"color"`
	AggregateOnly bool   `json:"aggregate_only"`
}

type cardResponse struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Color         string `json:"color"`
	AggregateOnly bool   `json:"aggregate_only"`
}

func (s *Server) handleListCards(w http.ResponseWriter, r *http.Request) {
	cards, err := s.entries.ListCards(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]cardResponse, 0, len(cards))
	for _, c := range cards {
		out = append(out, cardResponse{
			ID: c.ID, Name: c.Name, Color: c.Color, AggregateOnly: c.AggregateOnly,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateCard(w http.ResponseWriter, r *http.Request) {
	var req cardRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, err)
		return
	}
	created, err := s.entries.CreateCard(r.Context(), core.Card{
		Name:          req.Name,
		Color:         req.Color,
		AggregateOnly: req.AggregateOnly,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, cardResponse{
		ID: created.ID, Name: created.Name, Color: created.Color,
		AggregateOnly: created.AggregateOnly,
	})
}

func (s *Server) handleDeleteCard(w http.ResponseWriter, r *http.Request) {
	s.deleteByID(w, r, s.entries.DeleteCard)
}

// handleBulkEditStatement replaces an aggregate-only card's statement lines
// for one month with the posted label→amount map.
func (s *Server) handleBulkEditStatement(w http.ResponseWriter, r *http.Request) {
	monthID, err := pathID(r, "monthID")
	if err != nil {
		writeError(w, r, err)
		return
	}
	cardID, err := pathID(r, "cardID")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req map[string]string
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, err)
		return
	}

	amounts := make(map[string]core.Money, len(req))
	for label, raw := range req {
		amount, err := parseStatementAmount(raw)
		if err != nil {
			writeError(w, r, err)
			return
		}
		amounts[label] = amount
	}

	if err := s.entries.BulkEditCardStatement(r.Context(), monthID, cardID, amounts); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// parseStatementAmount reads one bulk statement value. An empty string or any
// zero-valued decimal ("0", "0.00", "0,00") means the line should be removed
// and maps to zero Money.
func parseStatementAmount(raw string) (core.Money, error) {
	trimmed := strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	if trimmed == "" {
		return core.Money{}, nil
	}
	if d, err := decimal.NewFromString(trimmed); err == nil && d.IsZero() {
		return core.Money{}, nil
	}
	return parseAmount(raw)
}

// Settings

type surchargeResponse struct {
	Percent string `json:"percent"`
}

func (s *Server) handleGetPixSurcharge(w http.ResponseWriter, r *http.Request) {
	pct := s.settings.PixSurcharge(r.Context())
	writeJSON(w, http.StatusOK, surchargeResponse{Percent: pct.String()})
}

func (s *Server) handleSetPixSurcharge(w http.ResponseWriter, r *http.Request) {
	var req surchargeResponse
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, err)
		return
	}
	pct, err := core.PercentFromString(req.Percent)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.settings.SetPixSurcharge(r.Context(), pct); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, surchargeResponse{Percent: pct.String()})
}
