package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"budgetbuddy/internal/core"

	_ "modernc.org/sqlite"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

// User is a stored account. PasswordHash is a bcrypt digest, never the
// plain credential.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Repository is the SQLite-backed persistence collaborator: accounts,
// per-user category sets, and the per-user expense blobs the ledger loads
// and saves.
type Repository struct {
	db     *sql.DB
	idMu   sync.Mutex
	lastID int64
}

func NewRepository(dbPath string) (*Repository, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// newID mints millisecond-timestamp ids, unique within this process.
func (r *Repository) newID() string {
	r.idMu.Lock()
	defer r.idMu.Unlock()
	id := time.Now().UnixMilli()
	if id <= r.lastID {
		id = r.lastID + 1
	}
	r.lastID = id
	return strconv.FormatInt(id, 10)
}

// CreateUser stores a new account and seeds its default category set.
func (r *Repository) CreateUser(ctx context.Context, name, email, passwordHash string) (User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u := User{
		ID:           r.newID(),
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, name, email, password_hash, created_at) VALUES (?, ?, ?, ?, ?)`,
		u.ID, u.Name, u.Email, u.PasswordHash, u.CreatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return User{}, ErrDuplicateEmail
		}
		return User{}, fmt.Errorf("insert user: %w", err)
	}

	if err := r.seedCategories(ctx, u.ID, core.DefaultCategories); err != nil {
		slog.WarnContext(ctx, "Seeding default categories failed",
			"user_id", u.ID, "error", err)
	}

	slog.InfoContext(ctx, "User created", "user_id", u.ID, "email", u.Email)
	return u, nil
}

func (r *Repository) GetUserByEmail(ctx context.Context, email string) (User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var u User
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, email, password_hash, created_at FROM users WHERE email = ?`, email).
		Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

func (r *Repository) GetUserByID(ctx context.Context, id string) (User, error) {
	var u User
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, email, password_hash, created_at FROM users WHERE id = ?`, id).
		Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("get user by id: %w", err)
	}
	return u, nil
}

// ListCategories returns the user's category names in insertion order.
func (r *Repository) ListCategories(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT name FROM categories WHERE user_id = ? ORDER BY rowid`, userID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, name)
	}
	return out, rows.Err()
}

// AddCategory inserts a category name; adding an existing name is a no-op.
func (r *Repository) AddCategory(ctx context.Context, userID, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return core.ErrEmptyCategory
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO categories (user_id, name) VALUES (?, ?)`, userID, name)
	if err != nil {
		return fmt.Errorf("add category: %w", err)
	}
	return nil
}

// RemoveCategory deletes a category name. Expenses referencing it keep the
// name; there is no referential integrity by design of the data model.
func (r *Repository) RemoveCategory(ctx context.Context, userID, name string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM categories WHERE user_id = ? AND name = ?`, userID, name)
	if err != nil {
		return fmt.Errorf("remove category: %w", err)
	}
	return nil
}

func (r *Repository) seedCategories(ctx context.Context, userID string, names []string) error {
	for _, name := range names {
		if err := r.AddCategory(ctx, userID, name); err != nil {
			return err
		}
	}
	return nil
}

// Load implements ledger.Persistence. Records come back in stored position
// order (newest first, as saved).
func (r *Repository) Load(ctx context.Context, userID string) ([]core.Expense, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, amount_cents, description, category, date
		 FROM expenses WHERE user_id = ? ORDER BY position`, userID)
	if err != nil {
		return nil, fmt.Errorf("load expenses: %w", err)
	}
	defer rows.Close()

	var out []core.Expense
	for rows.Next() {
		var (
			e       core.Expense
			cents   int64
			dateISO string
		)
		if err := rows.Scan(&e.ID, &cents, &e.Description, &e.Category, &dateISO); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		d, err := core.ParseDate(dateISO)
		if err != nil {
			return nil, fmt.Errorf("stored expense %s has bad date %q", e.ID, dateISO)
		}
		e.UserID = userID
		e.Amount = core.Money{Cents: cents}
		e.Date = d
		out = append(out, e)
	}
	return out, rows.Err()
}

// Save implements ledger.Persistence: the user's record set is replaced
// wholesale inside one transaction, preserving collection order.
func (r *Repository) Save(ctx context.Context, userID string, records []core.Expense) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM expenses WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("clear expenses: %w", err)
	}

	for i, e := range records {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO expenses (id, user_id, position, amount_cents, description, category, date)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			e.ID, userID, i, e.Amount.Cents, e.Description, e.Category, e.Date.ISO())
		if err != nil {
			return fmt.Errorf("insert expense %s: %w", e.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}

	slog.DebugContext(ctx, "Expenses saved", "user_id", userID, "count", len(records))
	return nil
}
