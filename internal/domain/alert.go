package domain

import "time"

// AlertKind identifies what an inventory alert is about.
type AlertKind string

const (
	AlertLowStock      AlertKind = "low_stock"
	AlertCriticalStock AlertKind = "critical_stock"
	AlertExpiryWarning AlertKind = "expiry_warning"
	AlertExpired       AlertKind = "expired"
)

// AlertSeverity is the display severity of an alert.
type AlertSeverity string

const (
	SeverityWarning AlertSeverity = "warning"
	SeverityError   AlertSeverity = "error"
)

// InventoryAlert is a derived signal recomputed from the current inventory
// snapshot. It is never persisted; its ID is a deterministic function of the
// item/batch and kind so repeated derivation yields the same set.
type InventoryAlert struct {
	ID            string        `json:"id"`
	ItemID        string        `json:"item_id"`
	ItemName      string        `json:"item_name"`
	BatchID       string        `json:"batch_id,omitempty"`
	Kind          AlertKind     `json:"kind"`
	Severity      AlertSeverity `json:"severity"`
	Message       string        `json:"message"`
	DaysRemaining *int          `json:"days_remaining,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
}
