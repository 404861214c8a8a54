// Package export renders expenses as CSV, both for the HTTP download
// endpoint and for the CLI.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"expenserule/internal/models"

	"github.com/gocarina/gocsv"
)

// Row is the CSV shape of one expense. Column order follows field
// order.
type Row struct {
	Date          string `csv:"date"`
	Merchant      string `csv:"merchant"`
	Amount        string `csv:"amount"`
	Category      string `csv:"category"`
	ScheduleCLine string `csv:"schedule_c_line"`
	Source        string `csv:"source"`
	Notes         string `csv:"notes"`
}

func rowFromExpense(e models.Expense) Row {
	return Row{
		Date:          e.Date,
		Merchant:      e.Merchant,
		Amount:        e.Amount.StringFixed(2),
		Category:      e.Category,
		ScheduleCLine: e.ScheduleCLine,
		Source:        e.Source,
		Notes:         e.Notes,
	}
}

// Write renders the expenses as CSV onto w. An empty slice still
// produces the header row.
func Write(w io.Writer, expenses []models.Expense) error {
	rows := make([]Row, 0, len(expenses))
	for _, e := range expenses {
		rows = append(rows, rowFromExpense(e))
	}

	writer := gocsv.NewSafeCSVWriter(csv.NewWriter(w))
	if err := gocsv.MarshalCSV(&rows, writer); err != nil {
		return fmt.Errorf("writing expenses as CSV: %w", err)
	}
	return nil
}

// WriteFile renders the expenses as CSV into a file, creating parent
// directories as needed.
func WriteFile(path string, expenses []models.Expense) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating CSV file: %w", err)
	}

	if err := Write(file, expenses); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}
