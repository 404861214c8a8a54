package gemini

import (
	"context"
	"fmt"
	"strings"

	"expenserule/internal/logging"

	"github.com/google/generative-ai-go/genai"
)

const suggestPromptFormat = `You are an IRS Schedule C tax categorization assistant. Given a merchant name, pick the single most appropriate category from the list below. Reply ONLY with the category name exactly as written. No punctuation, no explanation.

Merchant: %s

Categories:
%s`

// Suggest asks the model to pick a Schedule C category for the
// merchant. It satisfies the engine's Suggester interface. The reply
// is returned as-is after trimming; validating it against the registry
// is the caller's job.
func (c *Client) Suggest(ctx context.Context, merchant string, categories []string) (string, error) {
	prompt := fmt.Sprintf(suggestPromptFormat, merchant, strings.Join(categories, "\n"))

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini suggest: %w", err)
	}

	text, err := responseText(resp)
	if err != nil {
		return "", err
	}

	suggestion := parseSuggestion(text)
	c.logger.WithFields(
		logging.Field{Key: logging.FieldMerchant, Value: merchant},
		logging.Field{Key: logging.FieldCategory, Value: suggestion},
	).Debug("Gemini suggested a category")

	return suggestion, nil
}

// parseSuggestion reduces a model reply to the bare category name.
// Models occasionally decorate the answer with a label, quotes or
// trailing punctuation even when told not to.
func parseSuggestion(text string) string {
	line := strings.TrimSpace(cleanJSON(text))
	if idx := strings.Index(line, "\n"); idx != -1 {
		line = line[:idx]
	}
	line = strings.TrimSpace(line)
	line = strings.TrimPrefix(line, "Category:")
	line = strings.Trim(strings.TrimSpace(line), "\"'`*.")
	return strings.TrimSpace(line)
}
