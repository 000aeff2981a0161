package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/Zheero0/freezye/internal/mailer"
	"github.com/Zheero0/freezye/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMailer struct {
	sent    []mailer.Message
	failFor map[string]bool
}

func (m *fakeMailer) Send(_ context.Context, msg mailer.Message) error {
	if m.failFor[msg.To] {
		return fmt.Errorf("smtp refused")
	}
	m.sent = append(m.sent, msg)
	return nil
}

func testOrder() *models.Order {
	return &models.Order{
		ID:             "abc1234567",
		FullName:       "A User",
		Email:          "a@b.com",
		PhoneNumber:    "07700900000",
		ServiceName:    "Express Service",
		Quantity:       1,
		DeliveryMethod: models.DeliveryDropoff,
		BookingDate:    "2025-03-10",
		BookingTime:    "09:00",
		TotalCost:      7000,
		Status:         models.OrderStatusPending,
	}
}

func TestNotifyConfirmationSendsCustomerAndAdmin(t *testing.T) {
	m := &fakeMailer{}
	ns := NewNotificationService(m, "admin@sneakswash.com", "https://sneakswash.com")

	err := ns.NotifyConfirmation(context.Background(), testOrder())
	require.NoError(t, err)

	require.Len(t, m.sent, 2)
	assert.Equal(t, "a@b.com", m.sent[0].To)
	assert.Contains(t, m.sent[0].Subject, "abc1234")
	assert.Equal(t, "admin@sneakswash.com", m.sent[1].To)
	assert.Contains(t, m.sent[1].Subject, "New Order")
}

func TestNotifyConfirmationSendsAreIndependent(t *testing.T) {
	m := &fakeMailer{failFor: map[string]bool{"a@b.com": true}}
	ns := NewNotificationService(m, "admin@sneakswash.com", "https://sneakswash.com")

	err := ns.NotifyConfirmation(context.Background(), testOrder())

	// the failure is reported but the admin mail still went out
	assert.Error(t, err)
	require.Len(t, m.sent, 1)
	assert.Equal(t, "admin@sneakswash.com", m.sent[0].To)
}

func TestNotifyStatusChangeUsesStatusCopy(t *testing.T) {
	m := &fakeMailer{}
	ns := NewNotificationService(m, "admin@sneakswash.com", "https://sneakswash.com")

	err := ns.NotifyStatusChange(context.Background(), testOrder(), models.OrderStatusReadyForCollection)
	require.NoError(t, err)

	require.Len(t, m.sent, 1)
	assert.Equal(t, "a@b.com", m.sent[0].To)
	assert.Contains(t, m.sent[0].Subject, models.OrderStatusReadyForCollection)
	assert.Contains(t, m.sent[0].HTML, "ready for collection")
}

func TestNotifyStatusChangeFailureIsReported(t *testing.T) {
	m := &fakeMailer{failFor: map[string]bool{"a@b.com": true}}
	ns := NewNotificationService(m, "admin@sneakswash.com", "https://sneakswash.com")

	err := ns.NotifyStatusChange(context.Background(), testOrder(), models.OrderStatusCancelled)
	assert.Error(t, err)
}
