// Package http exposes the JSON API: auth, expense CRUD, categories, the
// live dashboard aggregates, report datasets, and the CSV statement.
package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"budgetbuddy/internal/auth"
	"budgetbuddy/internal/cache"
	"budgetbuddy/internal/config"
	"budgetbuddy/internal/log"
	"budgetbuddy/internal/report"
	"budgetbuddy/internal/services"
	"budgetbuddy/internal/storage"
)

type Server struct {
	http.Server

	expenses *services.ExpenseService
	repo     *storage.Repository
	tokens   *auth.Tokens
	logger   *log.Logger

	rateLimiter *rateLimiter
	reportCache *cache.LRUCache[report.Payload]
	cacheMgr    *cache.Manager

	shutdownOnce sync.Once
}

// NewServer wires routes and middleware, returning a ready-to-run server.
func NewServer(cfg *config.Config, logger *log.Logger, expenses *services.ExpenseService, repo *storage.Repository, tokens *auth.Tokens) *Server {
	s := &Server{
		expenses:    expenses,
		repo:        repo,
		tokens:      tokens,
		logger:      logger.WithComponent(log.ComponentHTTP),
		rateLimiter: newRateLimiter(cfg.RateLimitPerMinute),
		reportCache: cache.NewLRUCache[report.Payload](cfg.ReportCacheSize, cfg.ReportCacheTTL),
		cacheMgr:    cache.NewManager(),
	}
	s.cacheMgr.Register(s.reportCache)
	s.cacheMgr.StartCleanup(10 * time.Minute)

	r := chi.NewRouter()
	r.Use(s.withRequestLog)
	r.Use(withSecurityHeaders)
	r.Use(s.withRateLimit)

	r.Get("/healthz", handleHealth)
	r.Get("/readyz", handleReady)

	r.Route("/api", func(r chi.Router) {
		r.Post("/register", s.handleRegister)
		r.Post("/login", s.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(tokens.Middleware)

			r.Get("/expenses", s.handleListExpenses)
			r.Post("/expenses", s.handleCreateExpense)
			r.Put("/expenses/{id}", s.handleUpdateExpense)
			r.Delete("/expenses/{id}", s.handleDeleteExpense)

			r.Get("/categories", s.handleListCategories)
			r.Post("/categories", s.handleAddCategory)
			r.Delete("/categories/{name}", s.handleRemoveCategory)

			r.Get("/dashboard", s.handleDashboard)
			r.Get("/reports", s.handleReports)
			r.Get("/export", s.handleExport)
		})
	})

	s.Addr = ":" + cfg.Port
	s.Handler = r
	s.ReadTimeout = 10 * time.Second
	s.WriteTimeout = 10 * time.Second
	s.IdleTimeout = 60 * time.Second
	s.MaxHeaderBytes = 1 << 16 // 64KB
	return s
}

// Shutdown stops the HTTP server and the background cleanup goroutines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.cacheMgr.Stop()
		s.rateLimiter.stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
