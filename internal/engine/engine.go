// Package engine implements the categorization chain that maps
// merchant names to Schedule C expense categories. The chain has three
// tiers in fixed priority order: correction memory, the built-in
// lookup table, and model inference. A correction recorded for a
// merchant always wins over both the table and the model.
package engine

import (
	"context"
	"sync"

	"expenserule/internal/logging"
	"expenserule/internal/models"
	"expenserule/internal/registry"
)

// Source identifies the chain tier that produced a categorization.
type Source string

// Chain tiers in priority order. SourceManual is not a chain tier: it marks
// expenses whose category the caller supplied directly.
const (
	SourceCorrection Source = "correction_memory"
	SourceLookup     Source = "lookup"
	SourceInference  Source = "inference"
	SourceManual     Source = "manual"
)

// Result is a categorization outcome: the resolved category and the
// tier that produced it.
type Result struct {
	Category registry.Category
	Source   Source
}

// Engine runs the categorization chain and records corrections.
// It is safe for concurrent use.
type Engine struct {
	registry   *registry.Registry
	store      CorrectionStore
	correction Strategy
	lookup     Strategy
	inference  Strategy
	logger     logging.Logger

	// correctionMu serializes writes so concurrent corrections for the
	// same merchant settle in a single order.
	correctionMu sync.Mutex
}

// New wires the chain in its fixed priority order. The suggester may
// be nil, in which case merchants unknown to both correction memory
// and the lookup table come back unresolved.
func New(reg *registry.Registry, store CorrectionStore, table LookupTable, suggester Suggester, logger logging.Logger) *Engine {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}

	return &Engine{
		registry:   reg,
		store:      store,
		correction: NewCorrectionStrategy(store, reg, logger),
		lookup:     NewLookupStrategy(table, reg, logger),
		inference:  NewInferenceStrategy(suggester, reg, logger),
		logger:     logger,
	}
}

// Categorize resolves a merchant name through the chain. When no tier
// can answer, the returned error is an *UnresolvedError carrying the
// inference failure as its cause. A fault while reading correction
// memory is returned as-is.
func (e *Engine) Categorize(ctx context.Context, merchant string) (Result, error) {
	if models.NormalizeMerchant(merchant) == "" {
		return Result{}, &UnresolvedError{Merchant: merchant, Err: ErrEmptyMerchant}
	}

	// Tier 1: correction memory.
	category, found, err := e.correction.Categorize(ctx, merchant)
	if err != nil {
		return Result{}, err
	}
	if found {
		e.logResolved(merchant, category, SourceCorrection)
		return Result{Category: category, Source: SourceCorrection}, nil
	}

	// Tier 2: built-in lookup table.
	category, found, err = e.lookup.Categorize(ctx, merchant)
	if err != nil {
		return Result{}, err
	}
	if found {
		e.logResolved(merchant, category, SourceLookup)
		return Result{Category: category, Source: SourceLookup}, nil
	}

	// Tier 3: model inference. Failures here mean the merchant stays
	// unresolved; the caller decides what to do with it.
	category, found, err = e.inference.Categorize(ctx, merchant)
	if err != nil {
		return Result{}, &UnresolvedError{Merchant: merchant, Err: err}
	}
	if !found {
		return Result{}, &UnresolvedError{Merchant: merchant}
	}

	e.logResolved(merchant, category, SourceInference)
	return Result{Category: category, Source: SourceInference}, nil
}

// RecordCorrection stores merchant -> category in correction memory so
// every later Categorize call for an equivalent merchant name answers
// from memory. The category must name a registry entry and is stored
// under its canonical spelling, which is also returned.
func (e *Engine) RecordCorrection(ctx context.Context, merchant, categoryName string) (registry.Category, error) {
	key := models.NormalizeMerchant(merchant)
	if key == "" {
		return registry.Category{}, ErrEmptyMerchant
	}

	category, ok := e.registry.ByName(categoryName)
	if !ok {
		return registry.Category{}, &UnknownCategoryError{Name: categoryName}
	}

	e.correctionMu.Lock()
	defer e.correctionMu.Unlock()

	if err := e.store.UpsertCorrection(ctx, key, category.Name); err != nil {
		return registry.Category{}, &PersistenceError{MerchantKey: key, Err: err}
	}

	e.logger.WithFields(
		logging.Field{Key: logging.FieldMerchantKey, Value: key},
		logging.Field{Key: logging.FieldCategory, Value: category.Name},
	).Info("Correction recorded")

	return category, nil
}

// Registry returns the category registry the engine validates against.
func (e *Engine) Registry() *registry.Registry {
	return e.registry
}

func (e *Engine) logResolved(merchant string, category registry.Category, source Source) {
	e.logger.WithFields(
		logging.Field{Key: logging.FieldMerchant, Value: merchant},
		logging.Field{Key: logging.FieldCategory, Value: category.Name},
		logging.Field{Key: logging.FieldSource, Value: string(source)},
	).Info("Merchant categorized")
}
