package http

import (
	"net/http"
	"time"

	"budgetbuddy/internal/auth"
	"budgetbuddy/internal/export"
	"budgetbuddy/internal/log"
	"budgetbuddy/internal/report"
)

// handleExport streams the user's full expense history as a CSV statement.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFromContext(r.Context())

	records, err := s.expenses.List(r.Context(), id.UserID)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "failed to load expenses",
			log.FieldError, err, log.FieldUserID, id.UserID)
		respondError(w, http.StatusInternalServerError, "failed to load expenses")
		return
	}

	filename := export.StatementFilename(time.Now())
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)

	if err := export.WriteStatement(w, records, report.Total(records)); err != nil {
		// Headers are already sent, all we can do is log.
		s.logger.ErrorContext(r.Context(), "failed to write statement",
			log.FieldError, err, log.FieldUserID, id.UserID)
	}
}
