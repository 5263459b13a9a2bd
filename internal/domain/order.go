package domain

import "time"

// Role is the caller's role as resolved by the (out of scope) auth layer.
type Role string

const (
	RoleAdmin            Role = "admin"
	RoleProductionMgr    Role = "production_manager"
	RoleFinancialAnalyst Role = "financial_analyst"
	RoleWholesale        Role = "wholesale"
	RoleRetail           Role = "retail"
	RoleExport           Role = "export"
)

// IsStaff reports whether the role belongs to back-office staff rather than a
// customer account.
func (r Role) IsStaff() bool {
	switch r {
	case RoleAdmin, RoleProductionMgr, RoleFinancialAnalyst:
		return true
	}
	return false
}

// OrderSource records how an order entered the system.
type OrderSource string

const (
	SourceApp      OrderSource = "app"
	SourceWhatsApp OrderSource = "whatsapp"
)

// Order is a customer order with its line items.
type Order struct {
	ID            string      `json:"id" db:"id"`
	UserID        string      `json:"user_id" db:"user_id"`
	UserName      string      `json:"user_name" db:"user_name"`
	UserRole      Role        `json:"user_role" db:"user_role"`
	Status        OrderStatus `json:"status" db:"status"`
	Total         float64     `json:"total" db:"total"`
	Notes         string      `json:"notes,omitempty" db:"notes"`
	DeliveryDate  time.Time   `json:"delivery_date" db:"delivery_date"`
	PaymentMethod string      `json:"payment_method,omitempty" db:"payment_method"`
	ReceivedBy    string      `json:"received_by,omitempty" db:"received_by"`
	Source        OrderSource `json:"source" db:"source"`
	CreatedAt     time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at" db:"updated_at"`

	Items []OrderItem `json:"items" db:"-"`
}

// OrderItem is one product line on an order.
type OrderItem struct {
	ID          string  `json:"id" db:"id"`
	OrderID     string  `json:"order_id" db:"order_id"`
	ProductID   string  `json:"product_id" db:"product_id"`
	ProductName string  `json:"product_name" db:"product_name"`
	Quantity    float64 `json:"quantity" db:"quantity"`
	UnitPrice   float64 `json:"unit_price" db:"unit_price"`
	Total       float64 `json:"total" db:"total"`
}

// OrderFilter scopes an order listing to what the caller may see.
type OrderFilter struct {
	// UserID restricts results to one customer's own orders.
	UserID string
	// ExcludeStatuses drops orders in the given states (production view).
	ExcludeStatuses []OrderStatus
	// OpenOnly keeps only orders that still generate production demand.
	OpenOnly bool
}

// FilterForRole builds the listing scope a role is entitled to: production
// managers see confirmed orders onward, admin and analysts see everything,
// customers see only their own orders.
func FilterForRole(role Role, userID string) OrderFilter {
	switch role {
	case RoleProductionMgr:
		return OrderFilter{ExcludeStatuses: []OrderStatus{StatusPending, StatusCancelled}}
	case RoleAdmin, RoleFinancialAnalyst:
		return OrderFilter{}
	default:
		return OrderFilter{UserID: userID}
	}
}
