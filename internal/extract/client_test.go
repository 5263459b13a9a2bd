package extract

import (
	"encoding/base64"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain json", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"surrounding whitespace", "  {\"a\":1}\n", `{"a":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripCodeFence(tt.in))
		})
	}
}

func TestUserContentText(t *testing.T) {
	content := userContent(Document{Text: "FACTURA 0044"})
	assert.Equal(t, "FACTURA 0044", content)
}

func TestUserContentImage(t *testing.T) {
	raw := []byte{0xFF, 0xD8, 0xFF, 0xE0}
	content := userContent(Document{Image: raw, MIME: "image/jpeg"})

	blocks, ok := content.([]contentBlock)
	require.True(t, ok)
	require.Len(t, blocks, 2)

	assert.Equal(t, "image", blocks[0].Type)
	require.NotNil(t, blocks[0].Source)
	assert.Equal(t, "base64", blocks[0].Source.Type)
	assert.Equal(t, "image/jpeg", blocks[0].Source.MediaType)
	assert.Equal(t, base64.StdEncoding.EncodeToString(raw), blocks[0].Source.Data)

	assert.Equal(t, "text", blocks[1].Type)
	assert.NotEmpty(t, blocks[1].Text)
}

func TestMessageRequestEncoding(t *testing.T) {
	req := messageRequest{
		Model:     "claude-3-haiku-20240307",
		MaxTokens: maxTokens,
		System:    "system prompt",
		Messages: []message{
			{Role: "user", Content: userContent(Document{Image: []byte{1}, MIME: "image/png"})},
			{Role: "assistant", Content: "{"},
		},
	}

	payload, err := json.Marshal(req)
	require.NoError(t, err)

	assert.Contains(t, string(payload), `"type":"image"`)
	assert.Contains(t, string(payload), `"media_type":"image/png"`)
	assert.Contains(t, string(payload), `"content":"{"`)
}

func TestInvoiceDraftDecoding(t *testing.T) {
	body := stripCodeFence("{" + `"supplier":"Molinos SA","invoice_number":"F-0044","total":62.5,
		"lines":[{"item_id":"flour-000","item_name":"Harina","quantity":50,"unit":"kg","unit_price":1.25}]}`)

	var draft InvoiceDraft
	require.NoError(t, json.Unmarshal([]byte(body), &draft))

	assert.Equal(t, "Molinos SA", draft.Supplier)
	assert.Equal(t, "F-0044", draft.InvoiceNumber)
	assert.InDelta(t, 62.5, draft.Total, 1e-9)
	require.Len(t, draft.Lines, 1)
	assert.Equal(t, "flour-000", draft.Lines[0].ItemID)
	assert.InDelta(t, 50, draft.Lines[0].Quantity, 1e-9)
}
