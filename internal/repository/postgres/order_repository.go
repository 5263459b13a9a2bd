package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/quesadillascandy/candy-backend/internal/domain"
	"github.com/quesadillascandy/candy-backend/internal/repository"
)

type orderRepository struct {
	db *DB
}

// NewOrderRepository builds the postgres-backed order store.
func NewOrderRepository(db *DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

const orderColumns = `
	id, user_id, user_name, user_role, status, total, notes, delivery_date,
	payment_method, received_by, source, created_at, updated_at
`

func (r *orderRepository) ListOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE 1=1`

	var args []interface{}
	var conditions []string
	argCounter := 1

	if filter.UserID != "" {
		conditions = append(conditions, fmt.Sprintf("user_id = $%d", argCounter))
		args = append(args, filter.UserID)
		argCounter++
	}

	if len(filter.ExcludeStatuses) > 0 {
		excluded := make([]string, 0, len(filter.ExcludeStatuses))
		for _, s := range filter.ExcludeStatuses {
			excluded = append(excluded, string(s))
		}
		conditions = append(conditions, fmt.Sprintf("status != ALL($%d::text[])", argCounter))
		args = append(args, pq.StringArray(excluded))
		argCounter++
	}

	if filter.OpenOnly {
		conditions = append(conditions, fmt.Sprintf("status = ANY($%d::text[])", argCounter))
		args = append(args, pq.StringArray([]string{
			string(domain.StatusPending),
			string(domain.StatusConfirmed),
			string(domain.StatusInProduction),
		}))
		argCounter++
	}

	if len(conditions) > 0 {
		query += " AND " + strings.Join(conditions, " AND ")
	}

	query += " ORDER BY created_at DESC"

	var orders []domain.Order
	if err := r.db.SelectContext(ctx, &orders, query, args...); err != nil {
		return nil, domain.WrapStorage("list orders", err)
	}
	if len(orders) == 0 {
		return orders, nil
	}

	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}

	itemQuery := `
		SELECT id, order_id, product_id, product_name, quantity, unit_price, total
		FROM order_items
		WHERE order_id = ANY($1::text[])
		ORDER BY order_id, id
	`
	var items []domain.OrderItem
	if err := r.db.SelectContext(ctx, &items, itemQuery, pq.StringArray(ids)); err != nil {
		return nil, domain.WrapStorage("list order items", err)
	}

	byOrder := make(map[string][]domain.OrderItem, len(orders))
	for _, it := range items {
		byOrder[it.OrderID] = append(byOrder[it.OrderID], it)
	}
	for i := range orders {
		orders[i].Items = byOrder[orders[i].ID]
	}

	return orders, nil
}

func (r *orderRepository) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	var order domain.Order
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	if err := r.db.GetContext(ctx, &order, query, orderID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, domain.WrapStorage("get order", err)
	}

	itemQuery := `
		SELECT id, order_id, product_id, product_name, quantity, unit_price, total
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
	`
	if err := r.db.SelectContext(ctx, &order.Items, itemQuery, orderID); err != nil {
		return nil, domain.WrapStorage("get order items", err)
	}

	return &order, nil
}

func (r *orderRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		headerQuery := `
			INSERT INTO orders (id, user_id, user_name, user_role, status, total, notes, delivery_date, payment_method, received_by, source, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		`
		_, err := tx.ExecContext(ctx, headerQuery,
			order.ID, order.UserID, order.UserName, order.UserRole, order.Status,
			order.Total, order.Notes, order.DeliveryDate, order.PaymentMethod,
			order.ReceivedBy, order.Source, order.CreatedAt, order.UpdatedAt)
		if err != nil {
			return domain.WrapStorage("insert order", err)
		}

		itemQuery := `
			INSERT INTO order_items (id, order_id, product_id, product_name, quantity, unit_price, total)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`
		for _, item := range order.Items {
			_, err := tx.ExecContext(ctx, itemQuery,
				item.ID, order.ID, item.ProductID, item.ProductName,
				item.Quantity, item.UnitPrice, item.Total)
			if err != nil {
				return domain.WrapStorage("insert order item", err)
			}
		}

		return nil
	})
}

func (r *orderRepository) UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus, paymentMethod, receivedBy string) error {
	query := `
		UPDATE orders
		SET status = $2,
		    payment_method = COALESCE(NULLIF($3, ''), payment_method),
		    received_by = COALESCE(NULLIF($4, ''), received_by),
		    updated_at = now()
		WHERE id = $1
	`

	res, err := r.db.ExecContext(ctx, query, orderID, status, paymentMethod, receivedBy)
	if err != nil {
		return domain.WrapStorage("update order status", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return domain.WrapStorage("update order status", err)
	}
	if rows == 0 {
		return domain.ErrOrderNotFound
	}

	return nil
}
