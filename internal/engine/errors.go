package engine

import (
	"errors"
	"fmt"
)

// ErrEmptyMerchant is returned when an operation receives a merchant
// name that is empty or whitespace only.
var ErrEmptyMerchant = errors.New("merchant name is empty")

// UnknownCategoryError represents a category name that does not match
// any Schedule C expense category in the registry.
type UnknownCategoryError struct {
	Name string
}

func (e *UnknownCategoryError) Error() string {
	return fmt.Sprintf("unknown category %q: not a Schedule C expense category", e.Name)
}

// UnresolvedError represents a merchant that no tier of the
// categorization chain could resolve. Err carries the inference
// failure when one occurred.
type UnresolvedError struct {
	Merchant string
	Err      error
}

func (e *UnresolvedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("could not categorize merchant %q: %v", e.Merchant, e.Err)
	}
	return fmt.Sprintf("could not categorize merchant %q", e.Merchant)
}

func (e *UnresolvedError) Unwrap() error {
	return e.Err
}

// PersistenceError represents a correction that could not be written
// to correction memory.
type PersistenceError struct {
	MerchantKey string
	Err         error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to persist correction for %q: %v", e.MerchantKey, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
