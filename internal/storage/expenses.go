package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"expenserule/internal/logging"
	"expenserule/internal/models"
)

// InsertExpense stores a new expense row. Amounts are persisted as exact
// decimal strings.
func (r *Repository) InsertExpense(ctx context.Context, e models.Expense) error {
	if err := e.Validate(); err != nil {
		return err
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO expenses (id, merchant, date, amount, category, schedule_c_line, source, notes, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Merchant, e.Date, e.Amount.String(), e.Category, e.ScheduleCLine,
		e.Source, e.Notes, e.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}

	r.logger.Debug("expense stored",
		logging.Field{Key: logging.FieldExpenseID, Value: e.ID},
		logging.Field{Key: logging.FieldMerchant, Value: e.Merchant},
		logging.Field{Key: logging.FieldCategory, Value: e.Category})
	return nil
}

// GetExpense fetches one expense by ID. Absence is (zero, false, nil).
func (r *Repository) GetExpense(ctx context.Context, id string) (models.Expense, bool, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, merchant, date, amount, category, schedule_c_line, source, notes, created_at
		 FROM expenses WHERE id = ?`, id)

	e, err := scanExpense(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Expense{}, false, nil
	}
	if err != nil {
		return models.Expense{}, false, fmt.Errorf("get expense: %w", err)
	}
	return e, true, nil
}

// ListExpenses returns all expenses, newest first.
func (r *Repository) ListExpenses(ctx context.Context) ([]models.Expense, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, merchant, date, amount, category, schedule_c_line, source, notes, created_at
		 FROM expenses ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []models.Expense
	for rows.Next() {
		e, err := scanExpense(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}
	return expenses, nil
}

// UpdateExpenseCategory rewrites the category fields of one expense after a
// user correction. Returns false when the expense does not exist.
func (r *Repository) UpdateExpenseCategory(ctx context.Context, id, category, line, source string) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE expenses SET category = ?, schedule_c_line = ?, source = ? WHERE id = ?`,
		category, line, source, id)
	if err != nil {
		return false, fmt.Errorf("update expense category: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update expense category: %w", err)
	}
	return affected > 0, nil
}

func scanExpense(scan func(...any) error) (models.Expense, error) {
	var e models.Expense
	var amount, createdAt string
	if err := scan(&e.ID, &e.Merchant, &e.Date, &amount, &e.Category,
		&e.ScheduleCLine, &e.Source, &e.Notes, &createdAt); err != nil {
		return models.Expense{}, err
	}

	dec, err := decimal.NewFromString(amount)
	if err != nil {
		return models.Expense{}, fmt.Errorf("stored amount %q: %w", amount, err)
	}
	e.Amount = dec
	e.CreatedAt = parseStoredTime(createdAt)
	return e, nil
}
