package repository

import (
	"context"

	"github.com/quesadillascandy/candy-backend/internal/domain"
)

// OrderRepository is the storage boundary for orders and their line items.
type OrderRepository interface {
	ListOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error)
	GetOrder(ctx context.Context, orderID string) (*domain.Order, error)

	// CreateOrder persists the header and all lines in one transaction.
	CreateOrder(ctx context.Context, order *domain.Order) error

	// UpdateOrderStatus records a workflow transition plus any payment
	// metadata captured with it.
	UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus, paymentMethod, receivedBy string) error
}
