// Package localfile appends expense mirror rows to a CSV file on disk.
// It is the export target used when no spreadsheet is configured.
package localfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"budgetbuddy/internal/core"
)

type Appender struct {
	mu   sync.Mutex
	path string
}

func New(path string) (*Appender, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create export directory: %w", err)
		}
	}
	return &Appender{path: path}, nil
}

// AppendExpense writes one mirror row. The file is opened per call so the
// worker never holds a descriptor across long idle stretches.
func (a *Appender) AppendExpense(ctx context.Context, action string, e core.Expense) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	f, err := os.OpenFile(a.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open export file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	row := []string{
		time.Now().UTC().Format(time.RFC3339),
		action,
		e.UserID,
		e.ID,
		e.Date.ISO(),
		e.Description,
		e.Category,
		e.Amount.String(),
	}
	if err := w.Write(row); err != nil {
		return fmt.Errorf("write export row: %w", err)
	}
	w.Flush()
	return w.Error()
}
