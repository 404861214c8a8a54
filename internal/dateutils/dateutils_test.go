package dateutils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name        string
		dateStr     string
		expectedOk  bool
		expectedY   int
		expectedM   time.Month
		expectedD   int
		expectedFmt string
	}{
		{"ISO format", "2024-03-15", true, 2024, time.March, 15, DateLayoutISO},
		{"US format", "03/15/2024", true, 2024, time.March, 15, DateLayoutUS},
		{"US short format", "3/5/2024", true, 2024, time.March, 5, DateLayoutUSShort},
		{"European dotted", "15.03.2024", true, 2024, time.March, 15, DateLayoutEuropean},
		{"Full timestamp", "2024-03-15 10:30:45", true, 2024, time.March, 15, DateLayoutFull},
		{"Month name", "Mar 15, 2024", true, 2024, time.March, 15, DateLayoutWithMonth},
		{"Long month name", "March 15, 2024", true, 2024, time.March, 15, "January 2, 2006"},
		{"Extra whitespace", "  2024-03-15  ", true, 2024, time.March, 15, DateLayoutISO},
		{"Empty string", "", false, 0, 0, 0, ""},
		{"Not a date", "yesterday-ish", false, 0, 0, 0, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			date, format, err := ParseDate(tc.dateStr)

			if !tc.expectedOk {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expectedY, date.Year())
			assert.Equal(t, tc.expectedM, date.Month())
			assert.Equal(t, tc.expectedD, date.Day())
			assert.Equal(t, tc.expectedFmt, format)
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name          string
		dateStr       string
		expected      string
		expectedError bool
	}{
		{"already ISO", "2024-03-15", "2024-03-15", false},
		{"US slash", "03/15/2024", "2024-03-15", false},
		{"European dotted", "15.03.2024", "2024-03-15", false},
		{"RFC3339", "2024-03-15T10:30:45Z", "2024-03-15", false},
		{"month name", "March 15, 2024", "2024-03-15", false},
		{"empty stays empty", "", "", false},
		{"whitespace only stays empty", "   ", "", false},
		{"garbage", "soonish", "", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Normalize(tc.dateStr)

			if tc.expectedError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestCleanDateString(t *testing.T) {
	assert.Equal(t, "Mar 15, 2024", CleanDateString("  Mar   15,  2024 "))
	assert.Equal(t, "", CleanDateString("   "))
}

func TestToISODate(t *testing.T) {
	date := time.Date(2024, time.March, 15, 13, 30, 0, 0, time.UTC)
	assert.Equal(t, "2024-03-15", ToISODate(date))
}
