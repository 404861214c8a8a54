package engine

import "context"

// Suggester proposes a Schedule C category for a merchant that neither
// correction memory nor the lookup table knows. Implementations must
// return one of the supplied category names; anything else is rejected
// by the inference strategy.
type Suggester interface {
	Suggest(ctx context.Context, merchant string, categories []string) (string, error)
}

// SuggesterFunc adapts an ordinary function to the Suggester interface.
type SuggesterFunc func(ctx context.Context, merchant string, categories []string) (string, error)

// Suggest calls f.
func (f SuggesterFunc) Suggest(ctx context.Context, merchant string, categories []string) (string, error) {
	return f(ctx, merchant, categories)
}
