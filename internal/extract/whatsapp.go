package extract

import (
	"context"
	"encoding/json"
	"fmt"
)

// OrderLine is one extracted product request. ProductID is empty when the
// message named something outside the catalog.
type OrderLine struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    float64 `json:"quantity"`
}

// OrderDraft is the structured form of a free-text customer order.
type OrderDraft struct {
	CustomerName  string      `json:"customer_name,omitempty"`
	CustomerPhone string      `json:"customer_phone,omitempty"`
	DeliveryDate  string      `json:"delivery_date,omitempty"`
	Lines         []OrderLine `json:"lines"`
	Notes         string      `json:"notes,omitempty"`
}

const whatsappSystemPrompt = `You read WhatsApp messages sent to a bakery and extract the order as JSON.

Known products (match by name, fuzzy matching is fine, Spanish and English):
%s

RULES:
- Output ONLY a JSON object, no prose.
- Quantities are numbers. "una docena" is 12, "media docena" is 6.
- Set product_id to the matching catalog id, or "" when nothing fits.
- customer_phone only when a phone number appears in the message.
- delivery_date (YYYY-MM-DD) only when the message states a date; never guess.
- Anything that is not an order line (greetings, payment talk) goes to notes.
- Structure:
  {
    "customer_name": "",
    "customer_phone": "",
    "delivery_date": "",
    "lines": [
      {"product_id": "...", "product_name": "...", "quantity": 0}
    ],
    "notes": ""
  }`

func (e *llmExtractor) ParseWhatsAppOrder(ctx context.Context, text string, knownProducts []KnownProduct) (*OrderDraft, error) {
	catalog, err := json.Marshal(knownProducts)
	if err != nil {
		return nil, fmt.Errorf("extract: marshal catalog: %w", err)
	}

	var draft OrderDraft
	if err := e.complete(ctx, fmt.Sprintf(whatsappSystemPrompt, string(catalog)), text, &draft); err != nil {
		return nil, err
	}
	if len(draft.Lines) == 0 {
		return nil, fmt.Errorf("extract: no order lines recognized")
	}
	return &draft, nil
}
