package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/Zheero0/freezye/internal/gateway"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGateway struct {
	created []int64
}

func (g *fakeGateway) CreateIntent(_ context.Context, amount int64, currency string) (*gateway.Intent, error) {
	g.created = append(g.created, amount)
	return &gateway.Intent{
		ID:           fmt.Sprintf("pi_%d", len(g.created)),
		ClientSecret: "cs_test",
		Status:       gateway.IntentStatusRequiresPayment,
		Amount:       amount,
		Currency:     currency,
	}, nil
}

func (g *fakeGateway) GetIntent(_ context.Context, intentID string) (*gateway.Intent, error) {
	return &gateway.Intent{ID: intentID, Status: gateway.IntentStatusSucceeded}, nil
}

func TestCreateIntent(t *testing.T) {
	gw := &fakeGateway{}
	ps := NewPaymentService(gw, "gbp")

	intent, err := ps.CreateIntent(context.Background(), 7000)
	require.NoError(t, err)

	assert.Equal(t, "pi_1", intent.ID)
	assert.Equal(t, "cs_test", intent.ClientSecret)
	assert.Equal(t, []int64{7000}, gw.created)
}

func TestCreateIntentBelowMinimum(t *testing.T) {
	gw := &fakeGateway{}
	ps := NewPaymentService(gw, "gbp")

	_, err := ps.CreateIntent(context.Background(), gateway.MinimumChargeMinorUnits-1)
	assert.True(t, errors.Is(err, gateway.ErrInvalidAmount))

	// the provider is never called for a sub-minimum amount
	assert.Empty(t, gw.created)
}
