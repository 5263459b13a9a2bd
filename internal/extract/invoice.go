package extract

import (
	"context"
	"encoding/json"
	"fmt"
)

// InvoiceLine is one extracted purchase line. ItemID is empty when the model
// could not match the line to a catalog item; those lines stay in the draft
// for manual mapping.
type InvoiceLine struct {
	ItemID     string  `json:"item_id"`
	ItemName   string  `json:"item_name"`
	Quantity   float64 `json:"quantity"`
	Unit       string  `json:"unit"`
	UnitPrice  float64 `json:"unit_price"`
	ExpiryDate string  `json:"expiry_date,omitempty"`
	BatchCode  string  `json:"batch_code,omitempty"`
}

// InvoiceDraft is the structured form of one supplier invoice, pending human
// confirmation.
type InvoiceDraft struct {
	Supplier      string        `json:"supplier"`
	InvoiceNumber string        `json:"invoice_number,omitempty"`
	InvoiceDate   string        `json:"invoice_date,omitempty"`
	Total         float64       `json:"total,omitempty"`
	Lines         []InvoiceLine `json:"lines"`
	Notes         string        `json:"notes,omitempty"`
}

const invoiceSystemPrompt = `You read supplier invoices for a bakery and emit purchase lines as JSON.

Known inventory items (match lines to these by name, fuzzy matching is fine):
%s

RULES:
- Output ONLY a JSON object, no prose.
- Quantities and prices are numbers. Convert units when obvious (e.g. "2 sacos de 25kg de harina" with item unit kg -> quantity 50).
- unit_price is the price per catalog unit after any conversion.
- Set item_id to the matching catalog id, or "" when no item fits.
- invoice_number and total only when printed on the invoice; total is the grand total as a number.
- expiry_date (YYYY-MM-DD) and batch_code only when printed on the invoice.
- Structure:
  {
    "supplier": "...",
    "invoice_number": "",
    "invoice_date": "YYYY-MM-DD" or "",
    "total": 0,
    "lines": [
      {"item_id": "...", "item_name": "...", "quantity": 0, "unit": "...", "unit_price": 0, "expiry_date": "", "batch_code": ""}
    ],
    "notes": ""
  }`

func (e *llmExtractor) ParseInvoice(ctx context.Context, doc Document, knownItems []KnownItem) (*InvoiceDraft, error) {
	catalog, err := json.Marshal(knownItems)
	if err != nil {
		return nil, fmt.Errorf("extract: marshal catalog: %w", err)
	}

	var draft InvoiceDraft
	if err := e.complete(ctx, fmt.Sprintf(invoiceSystemPrompt, string(catalog)), userContent(doc), &draft); err != nil {
		return nil, err
	}
	if len(draft.Lines) == 0 {
		return nil, fmt.Errorf("extract: no purchase lines recognized")
	}
	return &draft, nil
}
