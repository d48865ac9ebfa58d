// Package ledger owns the authoritative in-memory expense collection for
// each signed-in user. A Ledger is loaded from persistence the first time an
// identity shows up, mutated by that user's actions, and written back after
// every mutation. In-memory state stays the source of truth for the session
// even when a save fails.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"budgetbuddy/internal/core"
)

// Persistence is the collaborator contract toward durable storage: one keyed
// blob of records per user, replaced wholesale on save.
type Persistence interface {
	Load(ctx context.Context, userID string) ([]core.Expense, error)
	Save(ctx context.Context, userID string, records []core.Expense) error
}

// ErrPersistence wraps load/save failures. Mutations that hit it have still
// been applied in memory; callers surface it as a non-fatal notification.
var ErrPersistence = errors.New("persistence failure")

// Draft is the caller-supplied part of a new expense; id and owner are
// assigned by the ledger.
type Draft struct {
	Amount      core.Money
	Description string
	Category    string
	Date        core.Date
}

// Patch carries a partial field replacement for an update. Nil fields keep
// their current value.
type Patch struct {
	Amount      *core.Money
	Description *string
	Category    *string
	Date        *core.Date
}

// Ledger is the ordered expense collection of a single user. Records are
// kept newest-first by insertion, matching the collection order clients
// display.
type Ledger struct {
	mu       sync.Mutex
	userID   string
	records  []core.Expense
	revision uint64
	lastID   int64
	persist  Persistence
}

// Add validates the draft, assigns a unique id and the owning user, and
// prepends the record. The save error, if any, wraps ErrPersistence and the
// created record is still returned.
func (l *Ledger) Add(ctx context.Context, d Draft) (core.Expense, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e := core.Expense{
		UserID:      l.userID,
		Amount:      d.Amount,
		Description: d.Description,
		Category:    d.Category,
		Date:        d.Date,
	}
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}
	e.ID = l.nextID()
	l.records = append([]core.Expense{e}, l.records...)
	l.revision++

	if err := l.save(ctx); err != nil {
		return e, err
	}
	return e, nil
}

// Update merges the patch into the record matching id. An unknown id is a
// silent no-op: existing records are untouched and the call reports success,
// mirroring the tolerance clients have always relied on.
func (l *Ledger) Update(ctx context.Context, id string, p Patch) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := -1
	for i := range l.records {
		if l.records[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		slog.DebugContext(ctx, "Update of unknown expense ignored",
			"user_id", l.userID, "expense_id", id)
		return nil
	}

	merged := l.records[idx]
	if p.Amount != nil {
		merged.Amount = *p.Amount
	}
	if p.Description != nil {
		merged.Description = *p.Description
	}
	if p.Category != nil {
		merged.Category = *p.Category
	}
	if p.Date != nil {
		merged.Date = *p.Date
	}
	if err := merged.Validate(); err != nil {
		return err
	}

	l.records[idx] = merged
	l.revision++
	return l.save(ctx)
}

// Remove deletes the record matching id, permanently and unconditionally.
// An unknown id is a no-op success.
func (l *Ledger) Remove(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := -1
	for i := range l.records {
		if l.records[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		slog.DebugContext(ctx, "Removal of unknown expense ignored",
			"user_id", l.userID, "expense_id", id)
		return nil
	}

	l.records = append(l.records[:idx], l.records[idx+1:]...)
	l.revision++
	return l.save(ctx)
}

// Expenses returns a read-only snapshot in insertion order, newest first.
func (l *Ledger) Expenses() []core.Expense {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]core.Expense, len(l.records))
	copy(out, l.records)
	return out
}

// Get returns the record matching id, if present.
func (l *Ledger) Get(id string) (core.Expense, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range l.records {
		if e.ID == id {
			return e, true
		}
	}
	return core.Expense{}, false
}

// Revision increments on every mutation; report results memoized against it
// stay valid until the next change.
func (l *Ledger) Revision() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.revision
}

// nextID assigns millisecond-timestamp ids, bumped when two records land in
// the same millisecond. Caller holds the lock.
func (l *Ledger) nextID() string {
	id := time.Now().UnixMilli()
	if id <= l.lastID {
		id = l.lastID + 1
	}
	l.lastID = id
	return strconv.FormatInt(id, 10)
}

// save writes the full record set back; caller holds the lock.
func (l *Ledger) save(ctx context.Context) error {
	if l.persist == nil {
		return nil
	}
	snapshot := make([]core.Expense, len(l.records))
	copy(snapshot, l.records)
	if err := l.persist.Save(ctx, l.userID, snapshot); err != nil {
		slog.WarnContext(ctx, "Expense save failed, keeping in-memory state",
			"user_id", l.userID, "error", err)
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}

// Manager hands out one Ledger per user identity, loading it from
// persistence on first access and dropping it when the identity goes away.
type Manager struct {
	mu      sync.Mutex
	ledgers map[string]*Ledger
	persist Persistence
}

func NewManager(p Persistence) *Manager {
	return &Manager{
		ledgers: make(map[string]*Ledger),
		persist: p,
	}
}

// ForUser returns the user's ledger, loading the stored record set the first
// time the identity is seen.
func (m *Manager) ForUser(ctx context.Context, userID string) (*Ledger, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if l, ok := m.ledgers[userID]; ok {
		return l, nil
	}

	var records []core.Expense
	if m.persist != nil {
		loaded, err := m.persist.Load(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		records = loaded
	}

	l := &Ledger{userID: userID, records: records, persist: m.persist}
	m.ledgers[userID] = l
	slog.InfoContext(ctx, "Ledger loaded", "user_id", userID, "records", len(records))
	return l, nil
}

// Evict drops a user's in-memory ledger, e.g. on logout. The next access
// reloads from persistence.
func (m *Manager) Evict(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.ledgers, userID)
}
