package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"expenserule/internal/logging"

	"github.com/google/generative-ai-go/genai"
	"github.com/shopspring/decimal"
)

const extractPrompt = `You are a receipt data extraction assistant. Extract the merchant name, the purchase date and the total amount from the attached receipt.

Output STRICT JSON only (no comments, no extra text) with exactly these fields:
- "merchant": string
- "date": string, ISO format "YYYY-MM-DD"
- "amount": number (the receipt total)

Example: {"merchant": "Staples", "date": "2024-03-15", "amount": 42.97}

If the date or amount cannot be determined, use an empty string for the date and 0 for the amount.
Do NOT wrap the response in code fences.`

// Receipt holds the fields extracted from an uploaded receipt.
type Receipt struct {
	Merchant string
	Date     string
	Amount   decimal.Decimal
}

// receiptPayload is the model's wire shape. Amount is a json.Number so
// both a bare number and a quoted one are accepted.
type receiptPayload struct {
	Merchant string      `json:"merchant"`
	Date     string      `json:"date"`
	Amount   json.Number `json:"amount"`
}

// ExtractReceipt sends the file to the model inline and parses the
// strict-JSON reply. The file is never written anywhere by this
// method; persistence is the caller's concern.
func (c *Client) ExtractReceipt(ctx context.Context, mimeType string, data []byte) (Receipt, error) {
	if len(data) == 0 {
		return Receipt{}, errors.New("gemini extract: no file data")
	}

	resp, err := c.model.GenerateContent(ctx,
		genai.Text(extractPrompt),
		genai.Blob{MIMEType: mimeType, Data: data},
	)
	if err != nil {
		return Receipt{}, fmt.Errorf("gemini extract: %w", err)
	}

	text, err := responseText(resp)
	if err != nil {
		return Receipt{}, err
	}

	receipt, err := parseReceipt(text)
	if err != nil {
		return Receipt{}, err
	}

	c.logger.WithFields(
		logging.Field{Key: logging.FieldMerchant, Value: receipt.Merchant},
	).Debug("Receipt fields extracted")

	return receipt, nil
}

func parseReceipt(text string) (Receipt, error) {
	var payload receiptPayload
	if err := json.Unmarshal([]byte(cleanJSON(text)), &payload); err != nil {
		return Receipt{}, fmt.Errorf("parsing receipt response: %w", err)
	}

	receipt := Receipt{
		Merchant: strings.TrimSpace(payload.Merchant),
		Date:     strings.TrimSpace(payload.Date),
	}
	if payload.Amount != "" {
		amount, err := decimal.NewFromString(payload.Amount.String())
		if err != nil {
			return Receipt{}, fmt.Errorf("parsing receipt amount %q: %w", payload.Amount, err)
		}
		receipt.Amount = amount
	}

	// Without a merchant there is nothing to categorize, so the whole
	// extraction counts as failed.
	if receipt.Merchant == "" {
		return Receipt{}, errors.New("receipt response has no merchant")
	}

	return receipt, nil
}
