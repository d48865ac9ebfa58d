package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"budgetbuddy/internal/auth"
	"budgetbuddy/internal/core"
	"budgetbuddy/internal/ledger"
	"budgetbuddy/internal/log"
)

type createExpenseRequest struct {
	Amount      core.Money `json:"amount"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Date        core.Date  `json:"date"`
}

type updateExpenseRequest struct {
	Amount      *core.Money `json:"amount"`
	Description *string     `json:"description"`
	Category    *string     `json:"category"`
	Date        *core.Date  `json:"date"`
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFromContext(r.Context())

	records, err := s.expenses.List(r.Context(), id.UserID)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "failed to load expenses",
			log.FieldError, err, log.FieldUserID, id.UserID)
		respondError(w, http.StatusInternalServerError, "failed to load expenses")
		return
	}
	respondJSON(w, http.StatusOK, records)
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFromContext(r.Context())

	var req createExpenseRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	expense, err := s.expenses.Create(r.Context(), id.UserID, ledger.Draft{
		Amount:      req.Amount,
		Description: req.Description,
		Category:    req.Category,
		Date:        req.Date,
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, expense)
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFromContext(r.Context())
	expenseID := chi.URLParam(r, "id")

	var req updateExpenseRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := s.expenses.Update(r.Context(), id.UserID, expenseID, ledger.Patch{
		Amount:      req.Amount,
		Description: req.Description,
		Category:    req.Category,
		Date:        req.Date,
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFromContext(r.Context())
	expenseID := chi.URLParam(r, "id")

	if err := s.expenses.Delete(r.Context(), id.UserID, expenseID); err != nil {
		respondDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
