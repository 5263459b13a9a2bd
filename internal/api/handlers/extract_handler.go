package handlers

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/quesadillascandy/candy-backend/internal/extract"
	"github.com/quesadillascandy/candy-backend/internal/service"
)

// ExtractHandler exposes the invoice and WhatsApp extraction endpoints. Both
// return drafts only; the caller reviews and submits them through the regular
// movement and order endpoints.
type ExtractHandler struct {
	extractor extract.Extractor
	inventory *service.InventoryService
	recipes   *service.RecipeService
}

func NewExtractHandler(extractor extract.Extractor, inventory *service.InventoryService, recipes *service.RecipeService) *ExtractHandler {
	return &ExtractHandler{extractor: extractor, inventory: inventory, recipes: recipes}
}

type extractPayload struct {
	Text string `json:"text" binding:"required"`
}

// invoiceDocument reads the request as either a multipart image upload
// (field "file") or a JSON body with OCR text.
func invoiceDocument(c *gin.Context) (extract.Document, error) {
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		header, err := c.FormFile("file")
		if err != nil {
			return extract.Document{}, err
		}
		f, err := header.Open()
		if err != nil {
			return extract.Document{}, err
		}
		defer f.Close()

		data, err := io.ReadAll(f)
		if err != nil {
			return extract.Document{}, err
		}

		mime := header.Header.Get("Content-Type")
		if mime == "" {
			mime = "image/jpeg"
		}
		return extract.Document{Image: data, MIME: mime}, nil
	}

	var payload extractPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		return extract.Document{}, err
	}
	return extract.Document{Text: payload.Text}, nil
}

func (h *ExtractHandler) ParseInvoice(c *gin.Context) {
	doc, err := invoiceDocument(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	items, err := h.inventory.ListItems(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	known := make([]extract.KnownItem, 0, len(items))
	for _, item := range items {
		if item.Active {
			known = append(known, extract.KnownItem{ID: item.ID, Name: item.Name, Unit: item.Unit})
		}
	}

	draft, err := h.extractor.ParseInvoice(c.Request.Context(), doc, known)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, draft)
}

func (h *ExtractHandler) ParseWhatsAppOrder(c *gin.Context) {
	var payload extractPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	products, err := h.recipes.ListProducts(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	known := make([]extract.KnownProduct, 0, len(products))
	for _, p := range products {
		known = append(known, extract.KnownProduct{ID: p.ID, Name: p.Name})
	}

	draft, err := h.extractor.ParseWhatsAppOrder(c.Request.Context(), payload.Text, known)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, draft)
}
