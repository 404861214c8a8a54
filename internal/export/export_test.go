package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"expenserule/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleExpenses() []models.Expense {
	return []models.Expense{
		{
			ID:            "a1",
			Merchant:      "Staples",
			Date:          "2024-03-15",
			Amount:        decimal.RequireFromString("42.97"),
			Category:      "Office Expense",
			ScheduleCLine: "18",
			Source:        "lookup",
		},
		{
			ID:            "b2",
			Merchant:      "Uber",
			Date:          "2024-03-16",
			Amount:        decimal.RequireFromString("18.5"),
			Category:      "Car and Truck Expenses",
			ScheduleCLine: "9",
			Source:        "correction_memory",
			Notes:         "airport run",
		},
	}
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, sampleExpenses())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)

	assert.Equal(t, "date,merchant,amount,category,schedule_c_line,source,notes", lines[0])
	assert.Equal(t, "2024-03-15,Staples,42.97,Office Expense,18,lookup,", lines[1])
	assert.Equal(t, "2024-03-16,Uber,18.50,Car and Truck Expenses,9,correction_memory,airport run", lines[2])
}

func TestWrite_EmptyStillWritesHeader(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, nil)
	require.NoError(t, err)

	assert.Equal(t, "date,merchant,amount,category,schedule_c_line,source,notes",
		strings.TrimSpace(buf.String()))
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "expenses.csv")

	err := WriteFile(path, sampleExpenses())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Staples")
	assert.Contains(t, string(data), "42.97")
}
