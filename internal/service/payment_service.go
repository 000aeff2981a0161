package service

import (
	"context"
	"fmt"

	"github.com/Zheero0/freezye/internal/gateway"
	"github.com/Zheero0/freezye/internal/util"

	"go.uber.org/zap"
)

// PaymentService stages payment intents for the checkout client. The intent
// amount always comes from this side; client-supplied totals are only used
// to request an intent, never to price an order.
type PaymentService struct {
	gateway  gateway.Gateway
	currency string
	logger   *zap.Logger
}

// NewPaymentService creates a new payment service.
func NewPaymentService(gw gateway.Gateway, currency string) *PaymentService {
	return &PaymentService{
		gateway:  gw,
		currency: currency,
		logger:   util.GetLogger(),
	}
}

// CreateIntent stages an intent for the given amount. Amounts below the
// gateway minimum are rejected before the provider is called.
func (ps *PaymentService) CreateIntent(ctx context.Context, amountMinorUnits int64) (*gateway.Intent, error) {
	ctx, span := util.StartSpan(ctx, "PaymentService.CreateIntent")
	defer span.End()

	if amountMinorUnits < gateway.MinimumChargeMinorUnits {
		util.PaymentIntentsFailedTotal.WithLabelValues("invalid_amount").Inc()
		return nil, fmt.Errorf("%w: %d", gateway.ErrInvalidAmount, amountMinorUnits)
	}

	intent, err := ps.gateway.CreateIntent(ctx, amountMinorUnits, ps.currency)
	if err != nil {
		util.PaymentIntentsFailedTotal.WithLabelValues("gateway_error").Inc()
		return nil, err
	}

	util.PaymentIntentsCreatedTotal.Inc()
	ps.logger.Info("payment intent created",
		zap.String("intent_id", intent.ID),
		zap.Int64("amount", amountMinorUnits))

	return intent, nil
}

// GetIntent reads back the current state of an intent. The booking service
// uses this as proof of payment; confirmation itself happens client-side
// against the gateway.
func (ps *PaymentService) GetIntent(ctx context.Context, intentID string) (*gateway.Intent, error) {
	ctx, span := util.StartSpan(ctx, "PaymentService.GetIntent")
	defer span.End()

	return ps.gateway.GetIntent(ctx, intentID)
}
