package http

import (
	"errors"
	"net/http"
	"strings"

	"budgetbuddy/internal/auth"
	"budgetbuddy/internal/log"
	"budgetbuddy/internal/storage"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Token string      `json:"token"`
	User  userPayload `json:"user"`
}

type userPayload struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	switch {
	case req.Name == "":
		respondError(w, http.StatusBadRequest, "name is required")
		return
	case req.Email == "" || !strings.Contains(req.Email, "@"):
		respondError(w, http.StatusBadRequest, "a valid email is required")
		return
	case len(req.Password) < 8:
		respondError(w, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "failed to hash password", log.FieldError, err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	user, err := s.repo.CreateUser(r.Context(), req.Name, req.Email, hash)
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateEmail) {
			respondError(w, http.StatusConflict, "an account with this email already exists")
			return
		}
		s.logger.ErrorContext(r.Context(), "failed to create user", log.FieldError, err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	s.respondSession(w, r, user)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	email := strings.TrimSpace(strings.ToLower(req.Email))
	user, err := s.repo.GetUserByEmail(r.Context(), email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		s.logger.ErrorContext(r.Context(), "failed to look up user", log.FieldError, err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		respondError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	s.respondSession(w, r, user)
}

func (s *Server) respondSession(w http.ResponseWriter, r *http.Request, user storage.User) {
	token, err := s.tokens.Issue(auth.Identity{UserID: user.ID, Name: user.Name, Email: user.Email})
	if err != nil {
		s.logger.ErrorContext(r.Context(), "failed to issue token", log.FieldError, err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	respondJSON(w, http.StatusOK, sessionResponse{
		Token: token,
		User:  userPayload{ID: user.ID, Name: user.Name, Email: user.Email},
	})
}
