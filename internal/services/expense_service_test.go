package services

import (
	"context"
	"errors"
	"testing"

	"budgetbuddy/internal/amqp"
	"budgetbuddy/internal/core"
	"budgetbuddy/internal/ledger"
)

type recordingPublisher struct {
	events  []*amqp.ExpenseEventMessage
	failAll bool
}

func (p *recordingPublisher) PublishExpenseEvent(ctx context.Context, msg *amqp.ExpenseEventMessage) error {
	if p.failAll {
		return errors.New("broker down")
	}
	p.events = append(p.events, msg)
	return nil
}

func draft(cents int64, description, category string) ledger.Draft {
	return ledger.Draft{
		Amount:      core.Money{Cents: cents},
		Description: description,
		Category:    category,
		Date:        core.NewDate(2025, 4, 15),
	}
}

func newService(pub EventPublisher) *ExpenseService {
	return NewExpenseService(ledger.NewManager(nil), pub)
}

func TestExpenseService_CreatePublishesEvent(t *testing.T) {
	pub := &recordingPublisher{}
	svc := newService(pub)

	e, err := svc.Create(context.Background(), "u1", draft(4550, "Groceries", "Food"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if len(pub.events) != 1 {
		t.Fatalf("published %d events, want 1", len(pub.events))
	}
	msg := pub.events[0]
	if msg.Action != amqp.ActionCreated || msg.ExpenseID != e.ID || msg.AmountCents != 4550 {
		t.Errorf("event = %+v, want created snapshot of %s", msg, e.ID)
	}
}

func TestExpenseService_UpdatePublishesSnapshot(t *testing.T) {
	pub := &recordingPublisher{}
	svc := newService(pub)

	e, _ := svc.Create(context.Background(), "u1", draft(4550, "Groceries", "Food"))

	amount := core.Money{Cents: 5000}
	if err := svc.Update(context.Background(), "u1", e.ID, ledger.Patch{Amount: &amount}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	if len(pub.events) != 2 {
		t.Fatalf("published %d events, want 2", len(pub.events))
	}
	msg := pub.events[1]
	if msg.Action != amqp.ActionUpdated || msg.AmountCents != 5000 {
		t.Errorf("event = %+v, want updated snapshot with 5000 cents", msg)
	}
}

func TestExpenseService_UpdateUnknownIDPublishesNothing(t *testing.T) {
	pub := &recordingPublisher{}
	svc := newService(pub)

	if err := svc.Update(context.Background(), "u1", "no-such-id", ledger.Patch{}); err != nil {
		t.Fatalf("Update of unknown id should succeed, got %v", err)
	}
	if len(pub.events) != 0 {
		t.Errorf("published %d events, want none for a no-op", len(pub.events))
	}
}

func TestExpenseService_DeletePublishesOnlyWhenRecordExisted(t *testing.T) {
	pub := &recordingPublisher{}
	svc := newService(pub)

	e, _ := svc.Create(context.Background(), "u1", draft(4550, "Groceries", "Food"))

	if err := svc.Delete(context.Background(), "u1", e.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.Delete(context.Background(), "u1", e.ID); err != nil {
		t.Fatalf("second Delete should be a no-op, got %v", err)
	}

	deletes := 0
	for _, msg := range pub.events {
		if msg.Action == amqp.ActionDeleted {
			deletes++
		}
	}
	if deletes != 1 {
		t.Errorf("published %d delete events, want 1", deletes)
	}
}

func TestExpenseService_PublishFailureDoesNotFailMutation(t *testing.T) {
	svc := newService(&recordingPublisher{failAll: true})

	e, err := svc.Create(context.Background(), "u1", draft(4550, "Groceries", "Food"))
	if err != nil {
		t.Fatalf("Create should survive a publish failure, got %v", err)
	}

	records, err := svc.List(context.Background(), "u1")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 1 || records[0].ID != e.ID {
		t.Errorf("records = %+v, want the created expense", records)
	}
}

func TestExpenseService_NilPublisher(t *testing.T) {
	svc := newService(nil)

	if _, err := svc.Create(context.Background(), "u1", draft(100, "coffee", "Food")); err != nil {
		t.Fatalf("Create without a publisher: %v", err)
	}
}
