package models

import "time"

// Service represents a catalog entry. The catalog is fixed configuration;
// services are never created or destroyed at runtime.
type Service struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	// BasePrice is in minor currency units (pence).
	BasePrice int64 `json:"base_price"`
}

// SlotDay holds the bookable time labels for one calendar date.
type SlotDay struct {
	Date  string   `json:"date"`
	Slots []string `json:"slots"`
}

// Order is the authoritative record of a confirmed booking.
type Order struct {
	ID              string `db:"id" json:"id"`
	FullName        string `db:"full_name" json:"full_name"`
	Email           string `db:"email" json:"email"`
	PhoneNumber     string `db:"phone_number" json:"phone_number"`
	ServiceID       string `db:"service_id" json:"service_id"`
	ServiceName     string `db:"service_name" json:"service_name"`
	Quantity        int    `db:"quantity" json:"quantity"`
	AddOn           bool   `db:"add_on" json:"add_on"`
	DeliveryMethod  string `db:"delivery_method" json:"delivery_method"`
	PickupAddress   string `db:"pickup_address" json:"pickup_address,omitempty"`
	BookingDate     string `db:"booking_date" json:"booking_date"`
	BookingTime     string `db:"booking_time" json:"booking_time"`
	Notes           string `db:"notes" json:"notes,omitempty"`
	PaymentMethod   string `db:"payment_method" json:"payment_method"`
	PaymentIntentID string `db:"payment_intent_id" json:"payment_intent_id,omitempty"`
	// TotalCost is recomputed server-side at write time, in minor units.
	TotalCost int64     `db:"total_cost" json:"total_cost"`
	Status    string    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Order statuses
const (
	OrderStatusPending            = "Pending"
	OrderStatusCollected          = "Collected"
	OrderStatusInProgress         = "In Progress"
	OrderStatusReadyForCollection = "Ready for Collection"
	OrderStatusCompleted          = "Completed"
	OrderStatusCancelled          = "Cancelled"
)

// Delivery methods
const (
	DeliveryCollection = "collection"
	DeliveryDropoff    = "dropoff"
)

// Payment methods
const (
	PaymentMethodCard = "card"
	PaymentMethodCash = "cash"
)

// ValidStatus reports whether s is one of the recognized order statuses.
func ValidStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusCollected, OrderStatusInProgress,
		OrderStatusReadyForCollection, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// statusEdges are the documented operator workflow transitions. Status
// updates are permissive, but a transition outside this set gets logged.
var statusEdges = map[string][]string{
	OrderStatusPending:            {OrderStatusCollected, OrderStatusInProgress, OrderStatusCancelled},
	OrderStatusCollected:          {OrderStatusInProgress, OrderStatusReadyForCollection, OrderStatusCompleted, OrderStatusCancelled},
	OrderStatusInProgress:         {OrderStatusReadyForCollection, OrderStatusCompleted, OrderStatusCancelled},
	OrderStatusReadyForCollection: {OrderStatusCompleted, OrderStatusCancelled},
}

// IsDirectTransition reports whether from -> to is an edge of the documented
// status workflow.
func IsDirectTransition(from, to string) bool {
	for _, next := range statusEdges[from] {
		if next == to {
			return true
		}
	}
	return false
}
