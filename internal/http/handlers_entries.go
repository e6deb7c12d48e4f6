package http

import (
	"context"
	"net/http"

	"mdfinancas/internal/core"
)

// Amounts travel as decimal strings ("1234,56" or "1234.56") on the way in
// and as cents on the way out.

type revenueRequest struct {
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Date        string `json:"date"`
}

type entryResponse struct {
	ID          int64  `json:"id"`
	MonthID     int64  `json:"month_id"`
	Description string `json:"description"`
	AmountCents int64  `json:"amount_cents"`
	Paid        *bool  `json:"paid,omitempty"`
	Date        string `json:"date"`
}

type paidRequest struct {
	Paid bool `json:"paid"`
}

// Revenues

func (s *Server) handleListRevenues(w http.ResponseWriter, r *http.Request) {
	monthID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	rows, err := s.entries.ListRevenues(r.Context(), monthID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]entryResponse, 0, len(rows))
	for _, e := range rows {
		out = append(out, entryResponse{
			ID: e.ID, MonthID: e.MonthID, Description: e.Description,
			AmountCents: e.Amount.Cents, Date: formatDate(e.Date),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateRevenue(w http.ResponseWriter, r *http.Request) {
	monthID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req revenueRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, err)
		return
	}
	entry, err := s.revenueFromRequest(monthID, 0, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	created, err := s.entries.CreateRevenue(r.Context(), entry)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, entryResponse{
		ID: created.ID, MonthID: created.MonthID, Description: created.Description,
		AmountCents: created.Amount.Cents, Date: formatDate(created.Date),
	})
}

func (s *Server) handleUpdateRevenue(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req struct {
		revenueRequest
		MonthID int64 `json:"month_id"`
	}
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, err)
		return
	}
	entry, err := s.revenueFromRequest(req.MonthID, id, req.revenueRequest)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.entries.UpdateRevenue(r.Context(), entry); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteRevenue(w http.ResponseWriter, r *http.Request) {
	s.deleteByID(w, r, s.entries.DeleteRevenue)
}

func (s *Server) revenueFromRequest(monthID, id int64, req revenueRequest) (core.RevenueEntry, error) {
	amount, err := parseAmount(req.Amount)
	if err != nil {
		return core.RevenueEntry{}, err
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return core.RevenueEntry{}, err
	}
	return core.RevenueEntry{
		ID: id, MonthID: monthID, Description: req.Description,
		Amount: amount, Date: date,
	}, nil
}

// Fixed expenses

type fixedExpenseRequest struct {
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Paid        bool   `json:"paid"`
	Date        string `json:"date"`
}

func (s *Server) handleListFixedExpenses(w http.ResponseWriter, r *http.Request) {
	monthID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	rows, err := s.entries.ListFixedExpenses(r.Context(), monthID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]entryResponse, 0, len(rows))
	for _, e := range rows {
		paid := e.Paid
		out = append(out, entryResponse{
			ID: e.ID, MonthID: e.MonthID, Description: e.Description,
			AmountCents: e.Amount.Cents, Paid: &paid, Date: formatDate(e.Date),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateFixedExpense(w http.ResponseWriter, r *http.Request) {
	monthID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req fixedExpenseRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, err)
		return
	}
	expense, err := s.fixedFromRequest(monthID, 0, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	created, err := s.entries.CreateFixedExpense(r.Context(), expense)
	if err != nil {
		writeError(w, r, err)
		return
	}
	paid := created.Paid
	writeJSON(w, http.StatusCreated, entryResponse{
		ID: created.ID, MonthID: created.MonthID, Description: created.Description,
		AmountCents: created.Amount.Cents, Paid: &paid, Date: formatDate(created.Date),
	})
}

func (s *Server) handleUpdateFixedExpense(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req struct {
		fixedExpenseRequest
		MonthID int64 `json:"month_id"`
	}
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, err)
		return
	}
	expense, err := s.fixedFromRequest(req.MonthID, id, req.fixedExpenseRequest)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.entries.UpdateFixedExpense(r.Context(), expense); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteFixedExpense(w http.ResponseWriter, r *http.Request) {
	s.deleteByID(w, r, s.entries.DeleteFixedExpense)
}

func (s *Server) handleSetFixedExpensePaid(w http.ResponseWriter, r *http.Request) {
	s.setPaidByID(w, r, s.entries.SetFixedExpensePaid)
}

func (s *Server) fixedFromRequest(monthID, id int64, req fixedExpenseRequest) (core.FixedExpense, error) {
	amount, err := parseAmount(req.Amount)
	if err != nil {
		return core.FixedExpense{}, err
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return core.FixedExpense{}, err
	}
	return core.FixedExpense{
		ID: id, MonthID: monthID, Description: req.Description,
		Amount: amount, Paid: req.Paid, Date: date,
	}, nil
}

// Pix credit expenses

type pixExpenseRequest struct {
	Description string `json:"description"`
	Amount      string `json:"amount"`
	// SurchargePct overrides the configured percentage when set.
	SurchargePct string `json:"surcharge_pct,omitempty"`
	Paid         bool   `json:"paid"`
	Date         string `json:"date"`
}

type pixExpenseResponse struct {
	ID                  int64  `json:"id"`
	MonthID             int64  `json:"month_id"`
	Description         string `json:"description"`
	OriginalAmountCents int64  `json:"original_amount_cents"`
	SurchargePct        string `json:"surcharge_pct"`
	FinalAmountCents    int64  `json:"final_amount_cents"`
	Paid                bool   `json:"paid"`
	Date                string `json:"date"`
}

func toPixResponse(e core.PixCreditExpense) pixExpenseResponse {
	return pixExpenseResponse{
		ID:                  e.ID,
		MonthID:             e.MonthID,
		Description:         e.Description,
		OriginalAmountCents: e.OriginalAmount.Cents,
		SurchargePct:        e.SurchargePct.String(),
		FinalAmountCents:    e.FinalAmount.Cents,
		Paid:                e.Paid,
		Date:                formatDate(e.Date),
	}
}

func (s *Server) handleListPixExpenses(w http.ResponseWriter, r *http.Request) {
	monthID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	rows, err := s.entries.ListPixExpenses(r.Context(), monthID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]pixExpenseResponse, 0, len(rows))
	for _, e := range rows {
		out = append(out, toPixResponse(e))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreatePixExpense(w http.ResponseWriter, r *http.Request) {
	monthID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req pixExpenseRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, err)
		return
	}
	expense, err := pixFromRequest(monthID, 0, req, s.settings.PixSurcharge(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	created, err := s.entries.CreatePixExpense(r.Context(), expense)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toPixResponse(created))
}

func (s *Server) handleUpdatePixExpense(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req struct {
		pixExpenseRequest
		MonthID int64 `json:"month_id"`
	}
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, err)
		return
	}
	// An omitted surcharge keeps the percent the row was created with rather
	// than repricing it from the current setting.
	var fallback core.Percent
	if req.SurchargePct == "" {
		existing, err := s.entries.GetPixExpense(r.Context(), id)
		if err != nil {
			writeError(w, r, err)
			return
		}
		fallback = existing.SurchargePct
	}
	expense, err := pixFromRequest(req.MonthID, id, req.pixExpenseRequest, fallback)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.entries.UpdatePixExpense(r.Context(), expense); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeletePixExpense(w http.ResponseWriter, r *http.Request) {
	s.deleteByID(w, r, s.entries.DeletePixExpense)
}

func (s *Server) handleSetPixExpensePaid(w http.ResponseWriter, r *http.Request) {
	s.setPaidByID(w, r, s.entries.SetPixExpensePaid)
}

func pixFromRequest(monthID, id int64, req pixExpenseRequest, fallbackPct core.Percent) (core.PixCreditExpense, error) {
	amount, err := parseAmount(req.Amount)
	if err != nil {
		return core.PixCreditExpense{}, err
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return core.PixCreditExpense{}, err
	}

	pct := fallbackPct
	if req.SurchargePct != "" {
		pct, err = core.PercentFromString(req.SurchargePct)
		if err != nil {
			return core.PixCreditExpense{}, err
		}
	}

	return core.PixCreditExpense{
		ID: id, MonthID: monthID, Description: req.Description,
		OriginalAmount: amount, SurchargePct: pct, Paid: req.Paid, Date: date,
	}, nil
}

// Card statement expenses

type cardExpenseRequest struct {
	CardID      int64  `json:"card_id"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Paid        bool   `json:"paid"`
	Date        string `json:"date"`
}

type cardExpenseResponse struct {
	entryResponse
	CardID int64 `json:"card_id"`
}

func (s *Server) handleListCardExpenses(w http.ResponseWriter, r *http.Request) {
	monthID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	rows, err := s.entries.ListCardExpenses(r.Context(), monthID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]cardExpenseResponse, 0, len(rows))
	for _, e := range rows {
		paid := e.Paid
		out = append(out, cardExpenseResponse{
			entryResponse: entryResponse{
				ID: e.ID, MonthID: e.MonthID, Description: e.Description,
				AmountCents: e.Amount.Cents, Paid: &paid, Date: formatDate(e.Date),
			},
			CardID: e.CardID,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateCardExpense(w http.ResponseWriter, r *http.Request) {
	monthID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req cardExpenseRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, err)
		return
	}
	expense, err := cardExpenseFromRequest(monthID, 0, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	created, err := s.entries.CreateCardExpense(r.Context(), expense)
	if err != nil {
		writeError(w, r, err)
		return
	}
	paid := created.Paid
	writeJSON(w, http.StatusCreated, cardExpenseResponse{
		entryResponse: entryResponse{
			ID: created.ID, MonthID: created.MonthID, Description: created.Description,
			AmountCents: created.Amount.Cents, Paid: &paid, Date: formatDate(created.Date),
		},
		CardID: created.CardID,
	})
}

func (s *Server) handleUpdateCardExpense(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req struct {
		cardExpenseRequest
		MonthID int64 `json:"month_id"`
	}
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, err)
		return
	}
	expense, err := cardExpenseFromRequest(req.MonthID, id, req.cardExpenseRequest)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.entries.UpdateCardExpense(r.Context(), expense); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteCardExpense(w http.ResponseWriter, r *http.Request) {
	s.deleteByID(w, r, s.entries.DeleteCardExpense)
}

func (s *Server) handleSetCardExpensePaid(w http.ResponseWriter, r *http.Request) {
	s.setPaidByID(w, r, s.entries.SetCardExpensePaid)
}

func cardExpenseFromRequest(monthID, id int64, req cardExpenseRequest) (core.CardStatementExpense, error) {
	amount, err := parseAmount(req.Amount)
	if err != nil {
		return core.CardStatementExpense{}, err
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return core.CardStatementExpense{}, err
	}
	return core.CardStatementExpense{
		ID: id, MonthID: monthID, CardID: req.CardID, Description: req.Description,
		Amount: amount, Paid: req.Paid, Date: date,
	}, nil
}

// Installment plans

type installmentRequest struct {
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Current     int    `json:"current"`
	Total       int    `json:"total"`
}

type installmentResponse struct {
	ID              int64  `json:"id"`
	MonthID         int64  `json:"month_id"`
	Description     string `json:"description"`
	AmountCents     int64  `json:"amount_cents"`
	Current         int    `json:"current"`
	Total           int    `json:"total"`
	Remaining       int    `json:"remaining"`
	AmountOwedCents int64  `json:"amount_owed_cents"`
	Settled         bool   `json:"settled"`
}

func toInstallmentResponse(p core.InstallmentPlan) installmentResponse {
	return installmentResponse{
		ID:              p.ID,
		MonthID:         p.MonthID,
		Description:     p.Description,
		AmountCents:     p.InstallmentAmount.Cents,
		Current:         p.Current,
		Total:           p.Total,
		Remaining:       p.RemainingCount(),
		AmountOwedCents: p.AmountOwed().Cents,
		Settled:         p.Settled(),
	}
}

func (s *Server) handleListInstallments(w http.ResponseWriter, r *http.Request) {
	monthID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	rows, err := s.entries.ListInstallments(r.Context(), monthID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]installmentResponse, 0, len(rows))
	for _, p := range rows {
		out = append(out, toInstallmentResponse(p))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateInstallment(w http.ResponseWriter, r *http.Request) {
	monthID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req installmentRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, err)
		return
	}
	plan, err := installmentFromRequest(monthID, 0, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	created, err := s.entries.CreateInstallment(r.Context(), plan)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toInstallmentResponse(created))
}

func (s *Server) handleUpdateInstallment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req struct {
		installmentRequest
		MonthID int64 `json:"month_id"`
	}
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, err)
		return
	}
	plan, err := installmentFromRequest(req.MonthID, id, req.installmentRequest)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.entries.UpdateInstallment(r.Context(), plan); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteInstallment(w http.ResponseWriter, r *http.Request) {
	s.deleteByID(w, r, s.entries.DeleteInstallment)
}

func installmentFromRequest(monthID, id int64, req installmentRequest) (core.InstallmentPlan, error) {
	amount, err := parseAmount(req.Amount)
	if err != nil {
		return core.InstallmentPlan{}, err
	}
	return core.InstallmentPlan{
		ID: id, MonthID: monthID, Description: req.Description,
		InstallmentAmount: amount, Current: req.Current, Total: req.Total,
	}, nil
}

// shared plumbing

func (s *Server) deleteByID(w http.ResponseWriter, r *http.Request, del func(ctx context.Context, id int64) error) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := del(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) setPaidByID(w http.ResponseWriter, r *http.Request, set func(ctx context.Context, id int64, paid bool) error) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req paidRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, err)
		return
	}
	if err := set(r.Context(), id, req.Paid); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
