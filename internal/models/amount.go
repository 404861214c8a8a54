package models

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var currencyJunk = regexp.MustCompile(`[€$£¥\sUSD]`)

// ParseAmount parses a receipt amount string into an exact decimal. It
// tolerates the formats receipts actually carry: "$42.97", "1,234.56",
// "USD 12.00", "1 234,56". An empty string parses to zero so optional
// amounts stay optional.
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	if strings.TrimSpace(amountStr) == "" {
		return decimal.Zero, nil
	}

	standardized := standardizeAmount(amountStr)

	amount, err := decimal.NewFromString(standardized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w", amountStr, err)
	}
	return amount, nil
}

// standardizeAmount strips currency symbols and normalizes separators so
// decimal.NewFromString accepts the result.
func standardizeAmount(amountStr string) string {
	amountStr = currencyJunk.ReplaceAllString(amountStr, "")

	switch {
	case strings.Contains(amountStr, ",") && strings.Contains(amountStr, "."):
		if strings.LastIndex(amountStr, ".") < strings.LastIndex(amountStr, ",") {
			// European style: 1.234,56
			amountStr = strings.ReplaceAll(amountStr, ".", "")
			amountStr = strings.ReplaceAll(amountStr, ",", ".")
		} else {
			// US style: 1,234.56
			amountStr = strings.ReplaceAll(amountStr, ",", "")
		}
	case strings.Contains(amountStr, ","):
		// A trailing group of one or two digits after the last comma reads as
		// a decimal separator; anything else reads as thousands grouping.
		parts := strings.Split(amountStr, ",")
		if len(parts[len(parts)-1]) <= 2 {
			amountStr = strings.Join(parts[:len(parts)-1], "") + "." + parts[len(parts)-1]
		} else {
			amountStr = strings.Join(parts, "")
		}
	}
	return amountStr
}
