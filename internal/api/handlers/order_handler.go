package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/quesadillascandy/candy-backend/internal/api/middleware"
	"github.com/quesadillascandy/candy-backend/internal/domain"
	"github.com/quesadillascandy/candy-backend/internal/service"
)

type OrderHandler struct {
	service *service.OrderService
}

func NewOrderHandler(service *service.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

func (h *OrderHandler) ListOrders(c *gin.Context) {
	orders, err := h.service.ListOrders(c.Request.Context(), middleware.RoleFrom(c), middleware.UserIDFrom(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	order, err := h.service.GetOrder(c.Request.Context(), c.Param("id"), middleware.RoleFrom(c), middleware.UserIDFrom(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

type orderLinePayload struct {
	ProductID   string  `json:"product_id" binding:"required"`
	ProductName string  `json:"product_name"`
	Quantity    float64 `json:"quantity" binding:"required"`
	UnitPrice   float64 `json:"unit_price"`
}

type orderPayload struct {
	Notes        string             `json:"notes"`
	DeliveryDate string             `json:"delivery_date" binding:"required"`
	Source       string             `json:"source"`
	Items        []orderLinePayload `json:"items" binding:"required"`
}

func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var payload orderPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	deliveryDate, err := time.Parse("2006-01-02", payload.DeliveryDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "delivery_date must be YYYY-MM-DD"})
		return
	}

	order := &domain.Order{
		UserID:       middleware.UserIDFrom(c),
		UserName:     middleware.UserNameFrom(c),
		UserRole:     middleware.RoleFrom(c),
		Notes:        payload.Notes,
		DeliveryDate: deliveryDate,
		Source:       domain.OrderSource(payload.Source),
	}
	for _, line := range payload.Items {
		order.Items = append(order.Items, domain.OrderItem{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
		})
	}

	created, err := h.service.CreateOrder(c.Request.Context(), order)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

type statusPayload struct {
	Status        string `json:"status" binding:"required"`
	PaymentMethod string `json:"payment_method"`
	ReceivedBy    string `json:"received_by"`
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var payload statusPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status, ok := domain.ParseOrderStatus(payload.Status)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown order status"})
		return
	}

	order, err := h.service.UpdateStatus(
		c.Request.Context(),
		c.Param("id"),
		status,
		middleware.RoleFrom(c),
		payload.PaymentMethod,
		payload.ReceivedBy,
	)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) Needs(c *gin.Context) {
	report, err := h.service.Needs(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
