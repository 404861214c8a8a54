package engine

import (
	"context"

	"expenserule/internal/registry"
)

// Strategy is one tier of the categorization chain.
//
// Categorize returns the resolved category and true on a hit. A miss
// is reported as found=false with a nil error so the chain can move on
// to the next tier; errors are reserved for genuine failures such as a
// storage fault or an inference call that went wrong.
type Strategy interface {
	// Categorize attempts to resolve a category for the merchant.
	Categorize(ctx context.Context, merchant string) (registry.Category, bool, error)

	// Name returns the strategy name used in logs.
	Name() string
}
