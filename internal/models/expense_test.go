package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewExpense(t *testing.T) {
	e := NewExpense("  Staples  ", "2024-03-15", decimal.RequireFromString("42.97"), "printer paper")

	assert.NotEmpty(t, e.ID)
	assert.Equal(t, "Staples", e.Merchant)
	assert.Equal(t, "2024-03-15", e.Date)
	assert.True(t, decimal.RequireFromString("42.97").Equal(e.Amount))
	assert.Equal(t, "printer paper", e.Notes)
	assert.False(t, e.CreatedAt.IsZero())

	// Category fields stay empty until categorization resolves them.
	assert.Empty(t, e.Category)
	assert.Empty(t, e.ScheduleCLine)
	assert.Empty(t, e.Source)
}

func TestNewExpense_UniqueIDs(t *testing.T) {
	a := NewExpense("Uber", "2024-03-15", decimal.Zero, "")
	b := NewExpense("Uber", "2024-03-15", decimal.Zero, "")
	assert.NotEqual(t, a.ID, b.ID)
}

func TestExpenseValidate(t *testing.T) {
	valid := NewExpense("Uber", "2024-03-15", decimal.RequireFromString("18.50"), "")
	require.NoError(t, valid.Validate())

	noMerchant := NewExpense("   ", "2024-03-15", decimal.Zero, "")
	assert.Error(t, noMerchant.Validate())

	noID := valid
	noID.ID = ""
	assert.Error(t, noID.Validate())
}
