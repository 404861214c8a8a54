// Package models holds the data types shared across the application.
package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Expense is a single recorded business expense. Category and ScheduleCLine
// are empty until categorization resolves them; Source records which tier of
// the categorization chain produced the assignment.
type Expense struct {
	ID            string          `json:"id"`
	Merchant      string          `json:"merchant"`
	Date          string          `json:"date"`
	Amount        decimal.Decimal `json:"amount"`
	Category      string          `json:"category"`
	ScheduleCLine string          `json:"schedule_c_line"`
	Source        string          `json:"source"`
	Notes         string          `json:"notes"`
	CreatedAt     time.Time       `json:"created_at"`
}

// NewExpense builds an Expense with a fresh ID and creation timestamp.
func NewExpense(merchant, date string, amount decimal.Decimal, notes string) Expense {
	return Expense{
		ID:        uuid.NewString(),
		Merchant:  strings.TrimSpace(merchant),
		Date:      date,
		Amount:    amount,
		Notes:     notes,
		CreatedAt: time.Now().UTC(),
	}
}

// Validate checks the fields a stored expense must carry.
func (e Expense) Validate() error {
	if strings.TrimSpace(e.Merchant) == "" {
		return fmt.Errorf("expense merchant is required")
	}
	if e.ID == "" {
		return fmt.Errorf("expense id is required")
	}
	return nil
}

// Correction is one persisted user override: a normalized merchant key mapped
// to the category the user picked.
type Correction struct {
	MerchantKey string    `json:"merchant_key"`
	Category    string    `json:"category"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CategoryTotal aggregates expenses under one category for summary reporting.
type CategoryTotal struct {
	Category string          `json:"category"`
	Line     string          `json:"schedule_c_line"`
	Count    int             `json:"count"`
	Total    decimal.Decimal `json:"total"`
}
