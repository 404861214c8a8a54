package models

import "strings"

// NormalizeMerchant reduces a merchant name to the key form used by every
// mapping source (lookup table and correction memory): surrounding
// whitespace trimmed, case folded. Lookups stay insensitive to incidental
// formatting differences only when every reader and writer applies this same
// function.
func NormalizeMerchant(merchant string) string {
	return strings.ToLower(strings.TrimSpace(merchant))
}
