package domain

import "strings"

// OrderStatus is the order workflow state.
type OrderStatus string

const (
	StatusPending      OrderStatus = "pending"
	StatusConfirmed    OrderStatus = "confirmed"
	StatusInProduction OrderStatus = "in_production"
	StatusReady        OrderStatus = "ready_for_delivery"
	StatusInTransit    OrderStatus = "in_transit"
	StatusDelivered    OrderStatus = "delivered"
	StatusPaid         OrderStatus = "paid"
	StatusCancelled    OrderStatus = "cancelled"
)

var orderStatusLabels = map[OrderStatus]string{
	StatusPending:      "Pending",
	StatusConfirmed:    "Confirmed",
	StatusInProduction: "In Production",
	StatusReady:        "Ready for Delivery",
	StatusInTransit:    "In Transit",
	StatusDelivered:    "Delivered",
	StatusPaid:         "Paid",
	StatusCancelled:    "Cancelled",
}

var orderStatusCodes = map[string]OrderStatus{
	"pending":            StatusPending,
	"confirmed":          StatusConfirmed,
	"in_production":      StatusInProduction,
	"ready_for_delivery": StatusReady,
	"in_transit":         StatusInTransit,
	"delivered":          StatusDelivered,
	"paid":               StatusPaid,
	"cancelled":          StatusCancelled,
}

// forward transitions; cancellation is handled separately below.
var orderStatusNext = map[OrderStatus]OrderStatus{
	StatusPending:      StatusConfirmed,
	StatusConfirmed:    StatusInProduction,
	StatusInProduction: StatusReady,
	StatusReady:        StatusInTransit,
	StatusInTransit:    StatusDelivered,
	StatusDelivered:    StatusPaid,
}

// OrderStatusLabel returns a human-readable label for a status.
func OrderStatusLabel(status OrderStatus) string {
	if label, ok := orderStatusLabels[status]; ok {
		return label
	}

	return "Unknown"
}

// ParseOrderStatus returns the status for a given label (case-insensitive).
func ParseOrderStatus(label string) (OrderStatus, bool) {
	status, ok := orderStatusCodes[strings.ToLower(strings.TrimSpace(label))]

	return status, ok
}

// CanTransition reports whether an order may move from one status to another.
// The workflow only moves forward one step at a time; any state short of
// delivery can still be cancelled.
func CanTransition(from, to OrderStatus) bool {
	if to == StatusCancelled {
		switch from {
		case StatusDelivered, StatusPaid, StatusCancelled:
			return false
		}
		return true
	}

	return orderStatusNext[from] == to
}

// IsOpen reports whether an order still generates production demand.
func (s OrderStatus) IsOpen() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusInProduction:
		return true
	}
	return false
}
