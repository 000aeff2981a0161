package models

import "time"

// Event types
const (
	EventTypeOrderConfirmed     = "ORDER_CONFIRMED"
	EventTypeOrderStatusChanged = "ORDER_STATUS_CHANGED"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// OrderConfirmedEvent published after an order is persisted; consumed by the
// notification worker to send confirmation emails.
type OrderConfirmedEvent struct {
	BaseEvent
	Order Order `json:"order"`
}

// OrderStatusChangedEvent published when an operator moves an order to a new
// status; consumed by the notification worker to send the status email.
type OrderStatusChangedEvent struct {
	BaseEvent
	Order     Order  `json:"order"`
	OldStatus string `json:"old_status"`
	NewStatus string `json:"new_status"`
}
