package pricing

import (
	"errors"
	"testing"

	"github.com/Zheero0/freezye/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuoteStandardDropoff(t *testing.T) {
	b, err := Quote("standard", 2, false, models.DeliveryDropoff)
	require.NoError(t, err)

	assert.Equal(t, int64(6000), b.Subtotal)
	assert.Zero(t, b.AddOnTotal)
	assert.Zero(t, b.DeliveryFee)
	assert.Equal(t, int64(6000), b.Total)
}

func TestQuoteExpressWithAddOnAndCollection(t *testing.T) {
	b, err := Quote("express", 1, true, models.DeliveryCollection)
	require.NoError(t, err)

	assert.Equal(t, int64(4000), b.Subtotal)
	assert.Equal(t, AddOnUnitCost, b.AddOnTotal)
	assert.Equal(t, CollectionFee, b.DeliveryFee)
	assert.Equal(t, int64(4000)+AddOnUnitCost+CollectionFee, b.Total)
}

func TestQuoteAddOnScalesWithQuantity(t *testing.T) {
	b, err := Quote("sameday", 3, true, models.DeliveryDropoff)
	require.NoError(t, err)

	assert.Equal(t, 3*AddOnUnitCost, b.AddOnTotal)
	assert.Equal(t, int64(15000)+3*AddOnUnitCost, b.Total)
}

func TestQuoteUnknownService(t *testing.T) {
	_, err := Quote("platinum", 1, false, models.DeliveryDropoff)
	assert.True(t, errors.Is(err, ErrUnknownService))
}

func TestQuoteRejectsZeroQuantity(t *testing.T) {
	_, err := Quote("standard", 0, false, models.DeliveryDropoff)
	assert.Error(t, err)
}

func TestServiceByID(t *testing.T) {
	svc, err := ServiceByID("express")
	require.NoError(t, err)
	assert.Equal(t, "Express Service", svc.Name)
	assert.Equal(t, int64(4000), svc.BasePrice)

	_, err = ServiceByID("")
	assert.True(t, errors.Is(err, ErrUnknownService))
}
