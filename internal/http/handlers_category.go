package http

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"budgetbuddy/internal/auth"
	"budgetbuddy/internal/log"
)

type addCategoryRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFromContext(r.Context())

	categories, err := s.repo.ListCategories(r.Context(), id.UserID)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "failed to list categories",
			log.FieldError, err, log.FieldUserID, id.UserID)
		respondError(w, http.StatusInternalServerError, "failed to list categories")
		return
	}
	respondJSON(w, http.StatusOK, categories)
}

func (s *Server) handleAddCategory(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFromContext(r.Context())

	var req addCategoryRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		respondError(w, http.StatusBadRequest, "category name is required")
		return
	}

	if err := s.repo.AddCategory(r.Context(), id.UserID, name); err != nil {
		s.logger.ErrorContext(r.Context(), "failed to add category",
			log.FieldError, err, log.FieldUserID, id.UserID, log.FieldCategory, name)
		respondError(w, http.StatusInternalServerError, "failed to add category")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRemoveCategory(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFromContext(r.Context())

	name := chi.URLParam(r, "name")
	if unescaped, err := url.PathUnescape(name); err == nil {
		name = unescaped
	}

	if err := s.repo.RemoveCategory(r.Context(), id.UserID, name); err != nil {
		s.logger.ErrorContext(r.Context(), "failed to remove category",
			log.FieldError, err, log.FieldUserID, id.UserID, log.FieldCategory, name)
		respondError(w, http.StatusInternalServerError, "failed to remove category")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
