package engine

import (
	"context"
	"errors"
	"testing"

	"expenserule/internal/logging"
	"expenserule/internal/registry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, store *mockCorrectionStore, suggester Suggester) *Engine {
	t.Helper()
	reg := registry.New()
	return New(reg, store, newTestTable(t, reg), suggester, &logging.MockLogger{})
}

func TestCategorize_LookupHit(t *testing.T) {
	engine := newTestEngine(t, newMockCorrectionStore(), nil)

	result, err := engine.Categorize(context.Background(), "UBER *TRIP HELP.UBER.COM")

	require.NoError(t, err)
	assert.Equal(t, "Car and Truck Expenses", result.Category.Name)
	assert.Equal(t, "9", result.Category.Line)
	assert.Equal(t, SourceLookup, result.Source)
}

func TestCategorize_CorrectionBeatsLookup(t *testing.T) {
	store := newMockCorrectionStore()
	suggester := &mockSuggester{}
	engine := newTestEngine(t, store, suggester)

	// The table maps "uber" to Car and Truck Expenses, but a recorded
	// correction must win.
	_, err := engine.RecordCorrection(context.Background(), "Uber", "Travel")
	require.NoError(t, err)

	result, err := engine.Categorize(context.Background(), "Uber")

	require.NoError(t, err)
	assert.Equal(t, "Travel", result.Category.Name)
	assert.Equal(t, "24a", result.Category.Line)
	assert.Equal(t, SourceCorrection, result.Source)
	assert.Zero(t, suggester.CallCount)
}

func TestCategorize_NormalizationEquivalence(t *testing.T) {
	store := newMockCorrectionStore()
	engine := newTestEngine(t, store, nil)

	_, err := engine.RecordCorrection(context.Background(), "  UBER  ", "Travel")
	require.NoError(t, err)

	for _, merchant := range []string{"uber", "UBER", " Uber ", "uBeR"} {
		result, err := engine.Categorize(context.Background(), merchant)
		require.NoError(t, err, "merchant %q", merchant)
		assert.Equal(t, "Travel", result.Category.Name, "merchant %q", merchant)
		assert.Equal(t, SourceCorrection, result.Source, "merchant %q", merchant)
	}
}

func TestCategorize_InferenceFallback(t *testing.T) {
	suggester := &mockSuggester{
		SuggestFunc: func(ctx context.Context, merchant string, categories []string) (string, error) {
			return "Supplies", nil
		},
	}
	engine := newTestEngine(t, newMockCorrectionStore(), suggester)

	result, err := engine.Categorize(context.Background(), "Zylo Widgets LLC")

	require.NoError(t, err)
	assert.Equal(t, "Supplies", result.Category.Name)
	assert.Equal(t, "22", result.Category.Line)
	assert.Equal(t, SourceInference, result.Source)
	assert.Equal(t, 1, suggester.CallCount)
	assert.Equal(t, "Zylo Widgets LLC", suggester.LastMerchant)
}

func TestCategorize_InferenceNeverPersisted(t *testing.T) {
	store := newMockCorrectionStore()
	suggester := &mockSuggester{
		SuggestFunc: func(ctx context.Context, merchant string, categories []string) (string, error) {
			return "Supplies", nil
		},
	}
	engine := newTestEngine(t, store, suggester)

	_, err := engine.Categorize(context.Background(), "Zylo Widgets LLC")
	require.NoError(t, err)

	// A suggestion only becomes correction memory through an explicit
	// RecordCorrection call.
	assert.Empty(t, store.entries)
	assert.Zero(t, store.putCalls)

	result, err := engine.Categorize(context.Background(), "Zylo Widgets LLC")
	require.NoError(t, err)
	assert.Equal(t, SourceInference, result.Source)
	assert.Equal(t, 2, suggester.CallCount)
}

func TestCategorize_UnresolvedWhenSuggesterFails(t *testing.T) {
	cause := errors.New("model unavailable")
	suggester := &mockSuggester{
		SuggestFunc: func(ctx context.Context, merchant string, categories []string) (string, error) {
			return "", cause
		},
	}
	engine := newTestEngine(t, newMockCorrectionStore(), suggester)

	_, err := engine.Categorize(context.Background(), "Zylo Widgets LLC")

	var unresolved *UnresolvedError
	require.ErrorAs(t, err, &unresolved)
	assert.Equal(t, "Zylo Widgets LLC", unresolved.Merchant)
	assert.ErrorIs(t, err, cause)
}

func TestCategorize_UnresolvedWithoutSuggester(t *testing.T) {
	engine := newTestEngine(t, newMockCorrectionStore(), nil)

	_, err := engine.Categorize(context.Background(), "Zylo Widgets LLC")

	var unresolved *UnresolvedError
	require.ErrorAs(t, err, &unresolved)
	assert.Equal(t, "Zylo Widgets LLC", unresolved.Merchant)
}

func TestCategorize_UnknownSuggestionRejected(t *testing.T) {
	suggester := &mockSuggester{
		SuggestFunc: func(ctx context.Context, merchant string, categories []string) (string, error) {
			return "Snacks", nil
		},
	}
	engine := newTestEngine(t, newMockCorrectionStore(), suggester)

	_, err := engine.Categorize(context.Background(), "Zylo Widgets LLC")

	var unresolved *UnresolvedError
	require.ErrorAs(t, err, &unresolved)

	var unknownErr *UnknownCategoryError
	require.ErrorAs(t, err, &unknownErr)
	assert.Equal(t, "Snacks", unknownErr.Name)
}

func TestCategorize_EmptyMerchant(t *testing.T) {
	store := newMockCorrectionStore()
	suggester := &mockSuggester{}
	engine := newTestEngine(t, store, suggester)

	for _, merchant := range []string{"", "   ", "\t\n"} {
		_, err := engine.Categorize(context.Background(), merchant)

		var unresolved *UnresolvedError
		require.ErrorAs(t, err, &unresolved, "merchant %q", merchant)
		assert.ErrorIs(t, err, ErrEmptyMerchant, "merchant %q", merchant)
	}

	// Nothing useful to ask about, so neither the store nor the
	// suggester is consulted.
	assert.Zero(t, store.getCalls)
	assert.Zero(t, suggester.CallCount)
}

func TestCategorize_StaleCorrectionFallsThrough(t *testing.T) {
	store := newMockCorrectionStore()
	store.entries["legacy vendor"] = "Meals & Entertainment"
	suggester := &mockSuggester{
		SuggestFunc: func(ctx context.Context, merchant string, categories []string) (string, error) {
			return "Meals", nil
		},
	}
	engine := newTestEngine(t, store, suggester)

	result, err := engine.Categorize(context.Background(), "Legacy Vendor")

	require.NoError(t, err)
	assert.Equal(t, "Meals", result.Category.Name)
	assert.Equal(t, SourceInference, result.Source)
}

func TestCategorize_CorrectionStoreFault(t *testing.T) {
	store := newMockCorrectionStore()
	store.getErr = errors.New("database is locked")
	engine := newTestEngine(t, store, nil)

	_, err := engine.Categorize(context.Background(), "Uber")

	require.Error(t, err)
	assert.ErrorIs(t, err, store.getErr)

	// A storage fault is not the same thing as an unresolved merchant.
	var unresolved *UnresolvedError
	assert.False(t, errors.As(err, &unresolved))
}

func TestRecordCorrection_CanonicalizesCategory(t *testing.T) {
	store := newMockCorrectionStore()
	engine := newTestEngine(t, store, nil)

	category, err := engine.RecordCorrection(context.Background(), "Staples  ", "office expense")

	require.NoError(t, err)
	assert.Equal(t, "Office Expense", category.Name)
	assert.Equal(t, "18", category.Line)
	assert.Equal(t, "Office Expense", store.entries["staples"])
}

func TestRecordCorrection_LastWriteWins(t *testing.T) {
	store := newMockCorrectionStore()
	engine := newTestEngine(t, store, nil)

	_, err := engine.RecordCorrection(context.Background(), "Uber", "Car and Truck Expenses")
	require.NoError(t, err)
	_, err = engine.RecordCorrection(context.Background(), "UBER", "Travel")
	require.NoError(t, err)

	assert.Len(t, store.entries, 1)
	assert.Equal(t, "Travel", store.entries["uber"])

	result, err := engine.Categorize(context.Background(), "uber")
	require.NoError(t, err)
	assert.Equal(t, "Travel", result.Category.Name)
}

func TestRecordCorrection_UnknownCategory(t *testing.T) {
	store := newMockCorrectionStore()
	engine := newTestEngine(t, store, nil)

	_, err := engine.RecordCorrection(context.Background(), "Uber", "Snacks")

	var unknownErr *UnknownCategoryError
	require.ErrorAs(t, err, &unknownErr)
	assert.Equal(t, "Snacks", unknownErr.Name)
	assert.Empty(t, store.entries)
}

func TestRecordCorrection_EmptyMerchant(t *testing.T) {
	store := newMockCorrectionStore()
	engine := newTestEngine(t, store, nil)

	_, err := engine.RecordCorrection(context.Background(), "   ", "Travel")

	assert.ErrorIs(t, err, ErrEmptyMerchant)
	assert.Zero(t, store.putCalls)
}

func TestRecordCorrection_PersistenceFailure(t *testing.T) {
	store := newMockCorrectionStore()
	store.putErr = errors.New("disk full")
	engine := newTestEngine(t, store, nil)

	_, err := engine.RecordCorrection(context.Background(), "Uber", "Travel")

	var persistErr *PersistenceError
	require.ErrorAs(t, err, &persistErr)
	assert.Equal(t, "uber", persistErr.MerchantKey)
	assert.ErrorIs(t, err, store.putErr)
}

func TestSuggesterFunc_Adapts(t *testing.T) {
	called := false
	suggester := SuggesterFunc(func(ctx context.Context, merchant string, categories []string) (string, error) {
		called = true
		return "Travel", nil
	})
	engine := newTestEngine(t, newMockCorrectionStore(), suggester)

	result, err := engine.Categorize(context.Background(), "Zylo Widgets LLC")

	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, "Travel", result.Category.Name)
}

func TestEngine_Registry(t *testing.T) {
	engine := newTestEngine(t, newMockCorrectionStore(), nil)
	assert.Equal(t, 19, engine.Registry().Len())
}
