package extract

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/quesadillascandy/candy-backend/internal/config"
)

const (
	apiURL     = "https://api.anthropic.com/v1/messages"
	apiVersion = "2023-06-01"
	maxTokens  = 2048
)

// Document is one input to extraction: either free text or an image scan.
// When Image is set, Text is ignored and MIME must be an image type the
// model accepts.
type Document struct {
	Text  string
	Image []byte
	MIME  string
}

// Extractor turns unstructured supplier and customer input into structured
// drafts that a human confirms before anything touches the ledger.
type Extractor interface {
	ParseInvoice(ctx context.Context, doc Document, knownItems []KnownItem) (*InvoiceDraft, error)
	ParseWhatsAppOrder(ctx context.Context, text string, knownProducts []KnownProduct) (*OrderDraft, error)
}

// KnownItem is the catalog slice shown to the model so extracted lines can be
// matched to real inventory item ids.
type KnownItem struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Unit string `json:"unit"`
}

// KnownProduct mirrors KnownItem for the sellable catalog.
type KnownProduct struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type llmExtractor struct {
	httpClient *resty.Client
	model      string
}

// NewExtractor builds an Anthropic-backed extractor from config.
func NewExtractor(cfg config.ExtractConfig) Extractor {
	client := resty.New().
		SetHeader("x-api-key", cfg.APIKey).
		SetHeader("anthropic-version", apiVersion).
		SetHeader("content-type", "application/json").
		SetTimeout(time.Duration(cfg.TimeoutSeconds) * time.Second)

	return &llmExtractor{httpClient: client, model: cfg.Model}
}

type messageRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system"`
	Messages  []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type contentBlock struct {
	Type   string       `json:"type"`
	Text   string       `json:"text,omitempty"`
	Source *imageSource `json:"source,omitempty"`
}

type imageSource struct {
	Type      string `json:"type"`
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

type messageResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

// userContent renders a document as message content: a plain string for text
// input, or an image block followed by a short instruction for scans.
func userContent(doc Document) any {
	if len(doc.Image) == 0 {
		return doc.Text
	}
	return []contentBlock{
		{
			Type: "image",
			Source: &imageSource{
				Type:      "base64",
				MediaType: doc.MIME,
				Data:      base64.StdEncoding.EncodeToString(doc.Image),
			},
		},
		{Type: "text", Text: "Extract the data from this document."},
	}
}

// complete sends one prompt and decodes the JSON object the model returns
// into out. The assistant turn is prefilled with "{" to force JSON output.
func (e *llmExtractor) complete(ctx context.Context, system string, content any, out any) error {
	reqBody := messageRequest{
		Model:     e.model,
		MaxTokens: maxTokens,
		System:    system,
		Messages: []message{
			{Role: "user", Content: content},
			{Role: "assistant", Content: "{"},
		},
	}

	var respBody messageResponse
	resp, err := e.httpClient.R().
		SetContext(ctx).
		SetBody(reqBody).
		SetResult(&respBody).
		Post(apiURL)
	if err != nil {
		return fmt.Errorf("extract api call: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("extract api error: %s", resp.String())
	}
	if len(respBody.Content) == 0 {
		return fmt.Errorf("extract: empty model response")
	}

	text := "{" + respBody.Content[0].Text
	text = stripCodeFence(text)

	if err := json.Unmarshal([]byte(text), out); err != nil {
		return fmt.Errorf("extract: decode model response: %w", err)
	}
	return nil
}

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimSuffix(s, "```")
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(s, "```")
	}
	return strings.TrimSpace(s)
}
