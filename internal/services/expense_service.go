// Package services orchestrates expense mutations across the per-user
// ledger and the event bus feeding the export worker.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"budgetbuddy/internal/amqp"
	"budgetbuddy/internal/core"
	"budgetbuddy/internal/ledger"
)

// EventPublisher is the slice of the AMQP client the service needs.
type EventPublisher interface {
	PublishExpenseEvent(ctx context.Context, msg *amqp.ExpenseEventMessage) error
}

// ExpenseService applies mutations to a user's ledger and publishes a
// mutation event per change. Event delivery is best-effort: the ledger is
// the source of truth and a publish failure never fails the operation.
type ExpenseService struct {
	ledgers   *ledger.Manager
	publisher EventPublisher
}

func NewExpenseService(ledgers *ledger.Manager, publisher EventPublisher) *ExpenseService {
	return &ExpenseService{
		ledgers:   ledgers,
		publisher: publisher,
	}
}

// Ledgers exposes the manager for read paths (listings, reports).
func (s *ExpenseService) Ledgers() *ledger.Manager {
	return s.ledgers
}

// Create adds an expense to the user's ledger. A persistence failure is
// reported through the second return but the created record is still valid
// for the session.
func (s *ExpenseService) Create(ctx context.Context, userID string, d ledger.Draft) (core.Expense, error) {
	l, err := s.ledgers.ForUser(ctx, userID)
	if err != nil {
		return core.Expense{}, err
	}

	e, err := l.Add(ctx, d)
	if err != nil && !errors.Is(err, ledger.ErrPersistence) {
		return core.Expense{}, err
	}

	s.publish(ctx, amqp.ActionCreated, e)
	return e, err
}

// Update merges a partial field replacement into the matching record.
func (s *ExpenseService) Update(ctx context.Context, userID, id string, p ledger.Patch) error {
	l, err := s.ledgers.ForUser(ctx, userID)
	if err != nil {
		return err
	}

	updateErr := l.Update(ctx, id, p)
	if updateErr != nil && !errors.Is(updateErr, ledger.ErrPersistence) {
		return updateErr
	}

	if e, ok := l.Get(id); ok {
		s.publish(ctx, amqp.ActionUpdated, e)
	}
	return updateErr
}

// Delete removes the matching record, tolerating unknown ids.
func (s *ExpenseService) Delete(ctx context.Context, userID, id string) error {
	l, err := s.ledgers.ForUser(ctx, userID)
	if err != nil {
		return err
	}

	e, existed := l.Get(id)
	deleteErr := l.Remove(ctx, id)
	if deleteErr != nil && !errors.Is(deleteErr, ledger.ErrPersistence) {
		return deleteErr
	}

	if existed {
		s.publish(ctx, amqp.ActionDeleted, e)
	}
	return deleteErr
}

// List returns the user's records, newest first.
func (s *ExpenseService) List(ctx context.Context, userID string) ([]core.Expense, error) {
	l, err := s.ledgers.ForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return l.Expenses(), nil
}

func (s *ExpenseService) publish(ctx context.Context, action string, e core.Expense) {
	if s.publisher == nil {
		return
	}
	msg := amqp.NewExpenseEventMessage(action, e)
	if err := s.publisher.PublishExpenseEvent(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "Failed to publish expense event",
			"action", action,
			"user_id", e.UserID,
			"expense_id", e.ID,
			"error", fmt.Sprintf("%v", err))
	}
}
