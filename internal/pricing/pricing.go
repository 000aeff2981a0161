// Package pricing computes authoritative cost breakdowns for bookings.
// Quotes are pure functions of trusted fields; client-supplied totals are
// never consulted.
package pricing

import (
	"fmt"

	"github.com/Zheero0/freezye/internal/models"
)

// All amounts are in minor currency units (pence).
const (
	// AddOnUnitCost is the per-pair cost of the repaint add-on.
	AddOnUnitCost int64 = 2000
	// CollectionFee is the flat fee for collection delivery.
	CollectionFee int64 = 1000
)

// ErrUnknownService is returned for a service id not present in the catalog.
// A tampered or stale id must be a hard error, not a zero-cost fallback.
var ErrUnknownService = fmt.Errorf("unknown service")

// catalog is the fixed service list. Services are configuration, not data.
var catalog = []models.Service{
	{
		ID:          "standard",
		Name:        "Standard Service",
		Description: "Deep clean with a 5-7 day turnaround.",
		BasePrice:   3000,
	},
	{
		ID:          "express",
		Name:        "Express Service",
		Description: "Deep clean with a 72-hour turnaround.",
		BasePrice:   4000,
	},
	{
		ID:          "sameday",
		Name:        "Same-Day Service",
		Description: "Deep clean with a same-day turnaround.",
		BasePrice:   5000,
	},
}

// Services returns the catalog.
func Services() []models.Service {
	out := make([]models.Service, len(catalog))
	copy(out, catalog)
	return out
}

// ServiceByID looks up a catalog entry.
func ServiceByID(id string) (*models.Service, error) {
	for i := range catalog {
		if catalog[i].ID == id {
			svc := catalog[i]
			return &svc, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownService, id)
}

// Breakdown is the itemized result of a quote.
type Breakdown struct {
	Subtotal    int64 `json:"subtotal"`
	AddOnTotal  int64 `json:"add_on_total"`
	DeliveryFee int64 `json:"delivery_fee"`
	Total       int64 `json:"total"`
}

// Quote computes the cost breakdown for a selection. It is side-effect free
// and is the single source of truth for order totals.
func Quote(serviceID string, quantity int, hasAddOn bool, deliveryMethod string) (*Breakdown, error) {
	svc, err := ServiceByID(serviceID)
	if err != nil {
		return nil, err
	}
	if quantity < 1 {
		return nil, fmt.Errorf("quantity must be at least 1, got %d", quantity)
	}

	b := &Breakdown{
		Subtotal: svc.BasePrice * int64(quantity),
	}
	if hasAddOn {
		b.AddOnTotal = AddOnUnitCost * int64(quantity)
	}
	if deliveryMethod == models.DeliveryCollection {
		b.DeliveryFee = CollectionFee
	}
	b.Total = b.Subtotal + b.AddOnTotal + b.DeliveryFee
	return b, nil
}
