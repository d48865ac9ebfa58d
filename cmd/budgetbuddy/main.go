package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"budgetbuddy/internal/amqp"
	"budgetbuddy/internal/auth"
	"budgetbuddy/internal/config"
	apphttp "budgetbuddy/internal/http"
	"budgetbuddy/internal/ledger"
	"budgetbuddy/internal/log"
	"budgetbuddy/internal/services"
	"budgetbuddy/internal/storage"
)

// demoPassword is the fixed credential of the seeded demo account.
const demoPassword = "password"

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := log.New(log.DefaultConfig())
	log.SetDefault(logger)

	logger.Info("Starting budgetbuddy server")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}

	repo, err := storage.NewRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize storage", log.FieldError, err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	if err := seedDemoUser(context.Background(), repo); err != nil {
		logger.Error("Failed to seed demo account", log.FieldError, err)
		os.Exit(1)
	}

	// AMQP is optional: without a broker the export mirror is simply off.
	var publisher services.EventPublisher
	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", log.FieldError, err)
			os.Exit(1)
		}
		defer client.Close()
		publisher = client
		logger.Info("AMQP publisher initialized", "exchange", cfg.AMQPExchange)
	} else {
		logger.Info("AMQP disabled - no AMQP_URL provided")
	}

	expenses := services.NewExpenseService(ledger.NewManager(repo), publisher)
	tokens := auth.NewTokens(cfg.JWTSecret, cfg.TokenTTL)
	srv := apphttp.NewServer(cfg, logger, expenses, repo, tokens)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Server listening", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", log.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}

// seedDemoUser guarantees the demo account exists with its starter records.
func seedDemoUser(ctx context.Context, repo *storage.Repository) error {
	hash, err := auth.HashPassword(demoPassword)
	if err != nil {
		return err
	}
	_, err = repo.EnsureDemoUser(ctx, hash)
	return err
}
