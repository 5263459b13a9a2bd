package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/quesadillascandy/candy-backend/internal/costing"
	"github.com/quesadillascandy/candy-backend/internal/domain"
	"github.com/quesadillascandy/candy-backend/internal/repository"
	"github.com/rs/zerolog/log"
)

// OrderService manages the order workflow and derives production demand from
// the open order book.
type OrderService struct {
	orders    repository.OrderRepository
	recipes   repository.RecipeRepository
	inventory repository.InventoryRepository
}

func NewOrderService(
	orders repository.OrderRepository,
	recipes repository.RecipeRepository,
	inventory repository.InventoryRepository,
) *OrderService {
	return &OrderService{orders: orders, recipes: recipes, inventory: inventory}
}

// ListOrders returns the orders the caller's role is entitled to see.
func (s *OrderService) ListOrders(ctx context.Context, role domain.Role, userID string) ([]domain.Order, error) {
	return s.orders.ListOrders(ctx, domain.FilterForRole(role, userID))
}

// GetOrder loads one order. Customers may only read their own.
func (s *OrderService) GetOrder(ctx context.Context, orderID string, role domain.Role, userID string) (*domain.Order, error) {
	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !role.IsStaff() && order.UserID != userID {
		return nil, domain.ErrOrderNotFound
	}
	return order, nil
}

// CreateOrder validates and persists a new order. Line totals and the order
// total are recomputed server side; client-sent totals are ignored.
func (s *OrderService) CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if len(order.Items) == 0 {
		return nil, domain.ErrInvalidQuantity
	}

	order.ID = uuid.NewString()
	order.Status = domain.StatusPending
	if order.Source == "" {
		order.Source = domain.SourceApp
	}
	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now

	order.Total = 0
	for i := range order.Items {
		item := &order.Items[i]
		if item.Quantity <= 0 {
			return nil, domain.ErrInvalidQuantity
		}
		item.ID = uuid.NewString()
		item.OrderID = order.ID
		item.Total = item.Quantity * item.UnitPrice
		order.Total += item.Total
	}

	if err := s.orders.CreateOrder(ctx, order); err != nil {
		return nil, err
	}

	log.Info().
		Str("order_id", order.ID).
		Str("user_id", order.UserID).
		Float64("total", order.Total).
		Int("items", len(order.Items)).
		Msg("order created")

	return order, nil
}

// UpdateStatus moves an order along the workflow. Only staff may transition
// orders, and only along the allowed edges.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID string, status domain.OrderStatus, role domain.Role, paymentMethod, receivedBy string) (*domain.Order, error) {
	if !role.IsStaff() {
		return nil, domain.ErrInvalidTransition
	}

	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !domain.CanTransition(order.Status, status) {
		return nil, domain.ErrInvalidTransition
	}

	if err := s.orders.UpdateOrderStatus(ctx, orderID, status, strings.TrimSpace(paymentMethod), strings.TrimSpace(receivedBy)); err != nil {
		return nil, err
	}

	log.Info().
		Str("order_id", orderID).
		Str("from", string(order.Status)).
		Str("to", string(status)).
		Msg("order status updated")

	return s.orders.GetOrder(ctx, orderID)
}

// Needs aggregates raw material demand across the open order book and
// compares it against stock on hand.
func (s *OrderService) Needs(ctx context.Context) (*costing.NeedsReport, error) {
	orders, err := s.orders.ListOrders(ctx, domain.OrderFilter{OpenOnly: true})
	if err != nil {
		return nil, err
	}

	recipes, err := s.recipes.ListRecipes(ctx, true)
	if err != nil {
		return nil, err
	}

	items, err := s.inventory.ListItems(ctx)
	if err != nil {
		return nil, err
	}

	report := costing.Needs(orders, recipes, costing.NewStockIndex(items))
	return &report, nil
}
