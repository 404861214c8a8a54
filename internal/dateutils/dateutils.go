// Package dateutils provides date parsing and normalization for
// expense data. Receipt extraction and manual entry both produce dates
// in assorted formats; everything is normalized to ISO (YYYY-MM-DD)
// before storage.
package dateutils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Date format constants used throughout the application.
const (
	DateLayoutISO       = "2006-01-02"
	DateLayoutUS        = "01/02/2006"
	DateLayoutUSShort   = "1/2/2006"
	DateLayoutEuropean  = "02.01.2006"
	DateLayoutFull      = "2006-01-02 15:04:05"
	DateLayoutWithMonth = "Jan 2, 2006"
)

// CommonFormats is the list of layouts tried when parsing dates, in
// order. ISO comes first because it is what the extraction model is
// asked to produce.
var CommonFormats = []string{
	DateLayoutISO,
	time.RFC3339,
	DateLayoutFull,
	DateLayoutUS,
	DateLayoutUSShort,
	DateLayoutEuropean,
	DateLayoutWithMonth,
	"January 2, 2006",
	"2 January 2006",
	"02 Jan 2006",
	"2006/01/02",
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// CleanDateString trims a date string and squeezes runs of whitespace
// to a single space.
func CleanDateString(dateStr string) string {
	return whitespaceRe.ReplaceAllString(strings.TrimSpace(dateStr), " ")
}

// ParseDate attempts to parse a date string using the common formats.
// It returns the parsed time and the layout that matched.
func ParseDate(dateStr string) (time.Time, string, error) {
	dateStr = CleanDateString(dateStr)

	for _, format := range CommonFormats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return t, format, nil
		}
	}

	return time.Time{}, "", fmt.Errorf("unable to parse date: %s", dateStr)
}

// Normalize renders a date string as ISO (YYYY-MM-DD). Empty input
// stays empty since dates are optional on receipts; anything else must
// parse in one of the common formats.
func Normalize(dateStr string) (string, error) {
	if strings.TrimSpace(dateStr) == "" {
		return "", nil
	}

	t, _, err := ParseDate(dateStr)
	if err != nil {
		return "", err
	}
	return ToISODate(t), nil
}

// ToISODate formats a time.Time as an ISO date (YYYY-MM-DD).
func ToISODate(date time.Time) string {
	return date.Format(DateLayoutISO)
}
