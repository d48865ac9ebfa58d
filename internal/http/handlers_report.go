package http

import (
	"fmt"
	"net/http"
	"time"

	"budgetbuddy/internal/auth"
	"budgetbuddy/internal/core"
	"budgetbuddy/internal/log"
	"budgetbuddy/internal/report"
)

type dashboardResponse struct {
	Total      core.Money            `json:"total"`
	ByCategory map[string]core.Money `json:"byCategory"`
	ByMonth    map[string]core.Money `json:"byMonth"`
	Count      int                   `json:"count"`
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFromContext(r.Context())

	records, err := s.expenses.List(r.Context(), id.UserID)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "failed to load expenses",
			log.FieldError, err, log.FieldUserID, id.UserID)
		respondError(w, http.StatusInternalServerError, "failed to load expenses")
		return
	}

	respondJSON(w, http.StatusOK, dashboardResponse{
		Total:      report.Total(records),
		ByCategory: report.ByCategory(records),
		ByMonth:    report.ByMonth(records),
		Count:      len(records),
	})
}

func (s *Server) handleReports(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFromContext(r.Context())

	window := report.Window(r.URL.Query().Get("window"))
	if window == "" {
		window = report.Last6Months
	}
	if !window.Valid() {
		respondError(w, http.StatusBadRequest, "unknown report window")
		return
	}

	reportType := report.Type(r.URL.Query().Get("type"))
	if reportType == "" {
		reportType = report.TypeSummary
	}
	if !reportType.Valid() {
		respondError(w, http.StatusBadRequest, "unknown report type")
		return
	}

	led, err := s.expenses.Ledgers().ForUser(r.Context(), id.UserID)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "failed to load expenses",
			log.FieldError, err, log.FieldUserID, id.UserID)
		respondError(w, http.StatusInternalServerError, "failed to load expenses")
		return
	}

	now := time.Now()

	// Reports are pure over the ledger contents, so a payload stays valid
	// until the ledger changes or the day rolls over.
	cacheKey := fmt.Sprintf("%s|%s|%s|%d|%s",
		id.UserID, window, reportType, led.Revision(), now.Format("2006-01-02"))
	if cached, ok := s.reportCache.Get(cacheKey); ok {
		respondJSON(w, http.StatusOK, cached)
		return
	}

	payload := report.Build(led.Expenses(), window, reportType, now)
	s.reportCache.Set(cacheKey, payload)

	s.logger.DebugContext(r.Context(), "report built",
		log.FieldUserID, id.UserID,
		log.FieldWindow, string(window),
		log.FieldReportType, string(reportType))

	respondJSON(w, http.StatusOK, payload)
}
