package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"expenserule/internal/logging"
	"expenserule/internal/registry"
)

// InferenceStrategy asks the configured Suggester for a category when
// neither correction memory nor the lookup table knows the merchant.
// It is the last tier of the chain and the only one allowed to be
// slow or unavailable.
type InferenceStrategy struct {
	suggester Suggester
	registry  *registry.Registry
	logger    logging.Logger
}

// NewInferenceStrategy creates a strategy backed by the given
// suggester. A nil suggester is tolerated; categorization then fails
// with an explanatory error once the chain reaches this tier.
func NewInferenceStrategy(suggester Suggester, reg *registry.Registry, logger logging.Logger) *InferenceStrategy {
	return &InferenceStrategy{
		suggester: suggester,
		registry:  reg,
		logger:    logger,
	}
}

// Name returns the strategy name used in logs.
func (s *InferenceStrategy) Name() string {
	return "inference"
}

// Categorize requests a suggestion and validates it against the
// registry. Suggestions that do not name a known category are rejected
// with an UnknownCategoryError rather than silently defaulted.
func (s *InferenceStrategy) Categorize(ctx context.Context, merchant string) (registry.Category, bool, error) {
	if s.suggester == nil {
		return registry.Category{}, false, errors.New("no suggester configured")
	}

	trimmed := strings.TrimSpace(merchant)
	if trimmed == "" {
		return registry.Category{}, false, nil
	}

	suggestion, err := s.suggester.Suggest(ctx, trimmed, s.registry.Names())
	if err != nil {
		return registry.Category{}, false, fmt.Errorf("suggesting category for %q: %w", trimmed, err)
	}

	category, ok := s.registry.ByName(suggestion)
	if !ok {
		return registry.Category{}, false, &UnknownCategoryError{Name: strings.TrimSpace(suggestion)}
	}

	s.logger.WithFields(
		logging.Field{Key: logging.FieldMerchant, Value: trimmed},
		logging.Field{Key: logging.FieldCategory, Value: category.Name},
	).Debug("Suggester proposed a category")

	return category, true, nil
}
