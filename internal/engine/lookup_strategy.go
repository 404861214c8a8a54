package engine

import (
	"context"

	"expenserule/internal/logging"
	"expenserule/internal/registry"
)

// LookupTable defines the read surface of the built-in merchant table.
// *lookup.Table satisfies this interface.
type LookupTable interface {
	// Find returns the category name mapped to the merchant, matching
	// first exactly and then by substring against the table keys.
	Find(merchant string) (string, bool)
}

// LookupStrategy resolves merchants from the built-in lookup table.
type LookupStrategy struct {
	table    LookupTable
	registry *registry.Registry
	logger   logging.Logger
}

// NewLookupStrategy creates a strategy backed by the given table.
func NewLookupStrategy(table LookupTable, reg *registry.Registry, logger logging.Logger) *LookupStrategy {
	return &LookupStrategy{
		table:    table,
		registry: reg,
		logger:   logger,
	}
}

// Name returns the strategy name used in logs.
func (s *LookupStrategy) Name() string {
	return "lookup"
}

// Categorize consults the lookup table. Table entries are validated
// against the registry at load time, so an unresolvable entry only
// happens with a hand-built table and is treated as a miss.
func (s *LookupStrategy) Categorize(ctx context.Context, merchant string) (registry.Category, bool, error) {
	if s.table == nil {
		return registry.Category{}, false, nil
	}

	name, found := s.table.Find(merchant)
	if !found {
		return registry.Category{}, false, nil
	}

	category, ok := s.registry.ByName(name)
	if !ok {
		s.logger.WithFields(
			logging.Field{Key: logging.FieldMerchant, Value: merchant},
			logging.Field{Key: logging.FieldCategory, Value: name},
		).Warn("Lookup table entry names an unknown category, skipping")
		return registry.Category{}, false, nil
	}

	return category, true, nil
}
