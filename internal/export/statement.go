package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"budgetbuddy/internal/core"
)

// statementHeader matches the columns of the downloadable statement.
var statementHeader = []string{"Date", "Description", "Category", "Amount"}

// WriteStatement renders the records as a CSV statement in the order given
// (callers filter and sort), followed by a total row. The total is supplied
// precomputed so the document always matches what the caller displayed.
func WriteStatement(w io.Writer, records []core.Expense, total core.Money) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(statementHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, e := range records {
		row := []string{
			e.Date.Format("Jan 02, 2006"),
			e.Description,
			e.Category,
			"$" + e.Amount.String(),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	if err := cw.Write([]string{"Total", "", "", "$" + total.String()}); err != nil {
		return fmt.Errorf("write total: %w", err)
	}

	cw.Flush()
	return cw.Error()
}

// StatementFilename names the download with the generation date.
func StatementFilename(now time.Time) string {
	return "budget-buddy-expenses-" + now.Format("2006-01-02") + ".csv"
}
