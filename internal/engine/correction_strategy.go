package engine

import (
	"context"
	"fmt"

	"expenserule/internal/logging"
	"expenserule/internal/models"
	"expenserule/internal/registry"
)

// CorrectionStrategy resolves merchants from correction memory, the
// highest-priority tier of the chain.
type CorrectionStrategy struct {
	store    CorrectionStore
	registry *registry.Registry
	logger   logging.Logger
}

// NewCorrectionStrategy creates a strategy backed by the given
// correction store.
func NewCorrectionStrategy(store CorrectionStore, reg *registry.Registry, logger logging.Logger) *CorrectionStrategy {
	return &CorrectionStrategy{
		store:    store,
		registry: reg,
		logger:   logger,
	}
}

// Name returns the strategy name used in logs.
func (s *CorrectionStrategy) Name() string {
	return "correction_memory"
}

// Categorize looks the merchant up under its normalized key. A stored
// category that no longer resolves in the registry is skipped with a
// warning so the rest of the chain gets a chance to answer.
func (s *CorrectionStrategy) Categorize(ctx context.Context, merchant string) (registry.Category, bool, error) {
	key := models.NormalizeMerchant(merchant)
	if key == "" {
		return registry.Category{}, false, nil
	}

	name, found, err := s.store.GetCorrection(ctx, key)
	if err != nil {
		return registry.Category{}, false, fmt.Errorf("reading correction memory: %w", err)
	}
	if !found {
		return registry.Category{}, false, nil
	}

	category, ok := s.registry.ByName(name)
	if !ok {
		s.logger.WithFields(
			logging.Field{Key: logging.FieldMerchantKey, Value: key},
			logging.Field{Key: logging.FieldCategory, Value: name},
		).Warn("Stored correction names an unknown category, skipping")
		return registry.Category{}, false, nil
	}

	return category, true, nil
}
