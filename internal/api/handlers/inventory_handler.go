package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/quesadillascandy/candy-backend/internal/api/middleware"
	"github.com/quesadillascandy/candy-backend/internal/domain"
	"github.com/quesadillascandy/candy-backend/internal/service"
)

type InventoryHandler struct {
	service *service.InventoryService
}

func NewInventoryHandler(service *service.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: service}
}

func (h *InventoryHandler) ListItems(c *gin.Context) {
	items, err := h.service.ListItems(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *InventoryHandler) GetItem(c *gin.Context) {
	item, err := h.service.GetItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

type movementPayload struct {
	ItemID      string  `json:"item_id" binding:"required"`
	Kind        string  `json:"kind" binding:"required"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Reason      string  `json:"reason" binding:"required"`
	BatchNumber string  `json:"batch_number"`
	ExpiryDate  string  `json:"expiry_date"`
	ForceAdjust bool    `json:"force_adjust"`
}

func (h *InventoryHandler) CreateMovement(c *gin.Context) {
	var payload movementPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req := domain.MovementRequest{
		ItemID:      payload.ItemID,
		Kind:        domain.MovementKind(payload.Kind),
		Quantity:    payload.Quantity,
		UnitPrice:   payload.UnitPrice,
		Reason:      payload.Reason,
		BatchNumber: payload.BatchNumber,
		ForceAdjust: payload.ForceAdjust,
		UserID:      middleware.UserIDFrom(c),
		UserName:    middleware.UserNameFrom(c),
	}

	if payload.ExpiryDate != "" {
		expiry, err := time.Parse("2006-01-02", payload.ExpiryDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "expiry_date must be YYYY-MM-DD"})
			return
		}
		req.ExpiryDate = &expiry
	}

	movement, err := h.service.ApplyMovement(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, movement)
}

func (h *InventoryHandler) Kardex(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		limit = parsed
	}

	movements, err := h.service.Kardex(c.Request.Context(), c.Param("id"), limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"movements": movements})
}

func (h *InventoryHandler) VerifyKardex(c *gin.Context) {
	report, err := h.service.VerifyKardex(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *InventoryHandler) Alerts(c *gin.Context) {
	alerts, err := h.service.Alerts(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"alerts": alerts})
}
