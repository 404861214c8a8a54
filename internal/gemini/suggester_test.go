package gemini

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSuggestion(t *testing.T) {
	tests := []struct {
		name     string
		response string
		expected string
	}{
		{
			name:     "bare category name",
			response: "Supplies",
			expected: "Supplies",
		},
		{
			name:     "surrounding whitespace",
			response: "  Office Expense \n",
			expected: "Office Expense",
		},
		{
			name:     "category label prefix",
			response: "Category: Car and Truck Expenses",
			expected: "Car and Truck Expenses",
		},
		{
			name:     "quoted answer",
			response: "\"Travel\"",
			expected: "Travel",
		},
		{
			name:     "bold markdown",
			response: "**Meals**",
			expected: "Meals",
		},
		{
			name:     "trailing period",
			response: "Utilities.",
			expected: "Utilities",
		},
		{
			name:     "explanation on following lines",
			response: "Supplies\nThis merchant sells office materials.",
			expected: "Supplies",
		},
		{
			name:     "code fenced answer",
			response: "```\nRent or Lease\n```",
			expected: "Rent or Lease",
		},
		{
			name:     "empty response",
			response: "   ",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseSuggestion(tt.response))
		})
	}
}
