package engine

import "context"

// CorrectionStore defines the persistence surface the engine needs for
// correction memory. Keys are normalized merchant names.
// *storage.Repository satisfies this interface.
type CorrectionStore interface {
	// GetCorrection returns the stored category name for a merchant
	// key. A missing key is reported as found=false with a nil error.
	GetCorrection(ctx context.Context, merchantKey string) (string, bool, error)

	// UpsertCorrection stores or replaces the category for a merchant
	// key.
	UpsertCorrection(ctx context.Context, merchantKey, category string) error
}
