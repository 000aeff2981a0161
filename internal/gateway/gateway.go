// Package gateway abstracts the card-payment provider. The service only
// needs two things from it: staging an intent for an authoritative amount,
// and reading back the terminal state of an intent the customer confirmed
// directly against the provider.
package gateway

import (
	"context"
	"fmt"
)

// MinimumChargeMinorUnits is the smallest amount the gateway will accept.
const MinimumChargeMinorUnits int64 = 50

// ErrInvalidAmount is returned for amounts below the gateway minimum.
var ErrInvalidAmount = fmt.Errorf("amount below gateway minimum")

// Intent statuses as seen by this service.
const (
	IntentStatusRequiresPayment = "requires_payment"
	IntentStatusSucceeded       = "succeeded"
	IntentStatusFailed          = "failed"
)

// Intent is the provider-side staged payment referenced by card orders.
type Intent struct {
	ID           string `json:"intent_id"`
	ClientSecret string `json:"client_secret"`
	Status       string `json:"status"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
}

// Gateway is the provider contract.
type Gateway interface {
	CreateIntent(ctx context.Context, amountMinorUnits int64, currency string) (*Intent, error)
	GetIntent(ctx context.Context, intentID string) (*Intent, error)
}
