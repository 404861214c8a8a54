// Package gemini adapts the Google Gemini API to the engine's
// Suggester interface and extracts expense fields from uploaded
// receipt files.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"expenserule/internal/logging"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Client wraps a Gemini generative model. All requests run with
// temperature zero so identical inputs produce stable answers.
type Client struct {
	client *genai.Client
	model  *genai.GenerativeModel
	logger logging.Logger
}

// NewClient dials the Gemini API. modelName selects the generative
// model, for example "gemini-1.5-flash".
func NewClient(ctx context.Context, apiKey, modelName string, logger logging.Logger) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("gemini: API key is empty")
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(0)

	logger.WithField(logging.FieldModel, modelName).Debug("Gemini client initialized")

	return &Client{
		client: client,
		model:  model,
		logger: logger,
	}, nil
}

// Close releases the underlying API client.
func (c *Client) Close() error {
	return c.client.Close()
}

// responseText concatenates the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 ||
		resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("gemini: empty response")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if sb.Len() == 0 {
		return "", errors.New("gemini: response contained no text")
	}
	return sb.String(), nil
}

// cleanJSON strips Markdown code fences the model sometimes wraps
// around its output despite instructions.
func cleanJSON(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		idx := strings.Index(s, "\n")
		if idx == -1 {
			return s
		}
		s = strings.TrimSpace(s[idx+1:])
	}
	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}

	return strings.TrimSpace(s)
}
