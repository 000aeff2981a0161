package gateway

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// StripeGateway implements Gateway against the Stripe API.
type StripeGateway struct {
	api *client.API
}

// NewStripeGateway creates a Stripe-backed gateway from a secret key.
func NewStripeGateway(secretKey string) *StripeGateway {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeGateway{api: api}
}

// CreateIntent stages a payment intent with automatic payment methods, the
// same way the checkout client expects.
func (g *StripeGateway) CreateIntent(ctx context.Context, amountMinorUnits int64, currency string) (*Intent, error) {
	params := &stripe.PaymentIntentParams{
		Params:   stripe.Params{Context: ctx},
		Amount:   stripe.Int64(amountMinorUnits),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}

	pi, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return nil, fmt.Errorf("create payment intent: %w", err)
	}

	return fromStripeIntent(pi), nil
}

// GetIntent retrieves the current state of an intent.
func (g *StripeGateway) GetIntent(ctx context.Context, intentID string) (*Intent, error) {
	pi, err := g.api.PaymentIntents.Get(intentID, &stripe.PaymentIntentParams{
		Params: stripe.Params{Context: ctx},
	})
	if err != nil {
		return nil, fmt.Errorf("retrieve payment intent %s: %w", intentID, err)
	}
	return fromStripeIntent(pi), nil
}

func fromStripeIntent(pi *stripe.PaymentIntent) *Intent {
	return &Intent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Status:       mapStripeStatus(pi.Status),
		Amount:       pi.Amount,
		Currency:     string(pi.Currency),
	}
}

func mapStripeStatus(status stripe.PaymentIntentStatus) string {
	switch status {
	case stripe.PaymentIntentStatusSucceeded:
		return IntentStatusSucceeded
	case stripe.PaymentIntentStatusCanceled:
		return IntentStatusFailed
	default:
		// requires_payment_method, requires_confirmation, requires_action,
		// processing: the intent has not reached a chargeable terminal state.
		return IntentStatusRequiresPayment
	}
}
