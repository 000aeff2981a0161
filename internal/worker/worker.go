package worker

import (
	"context"
	"log"

	"github.com/Zheero0/freezye/internal/broker"
	"github.com/Zheero0/freezye/internal/models"
	"github.com/Zheero0/freezye/internal/service"
)

// NotificationWorker consumes order events and sends the corresponding
// emails. Running the sends off a queue keeps them fully decoupled from the
// order-write path: a mail provider outage delays emails, it never fails or
// mutates orders. Delivery is at-least-once; the emails are safe to resend.
type NotificationWorker struct {
	consumer      *broker.Consumer
	eventHandler  *broker.EventHandler
	notifications *service.NotificationService
}

// NewNotificationWorker creates a new notification worker
func NewNotificationWorker(
	consumer *broker.Consumer,
	notifications *service.NotificationService,
) *NotificationWorker {
	eventHandler := broker.NewEventHandler()

	w := &NotificationWorker{
		consumer:      consumer,
		eventHandler:  eventHandler,
		notifications: notifications,
	}

	eventHandler.OnOrderConfirmed(w.handleOrderConfirmed)
	eventHandler.OnOrderStatusChanged(w.handleStatusChanged)

	return w
}

func (w *NotificationWorker) handleOrderConfirmed(ctx context.Context, event *models.OrderConfirmedEvent) error {
	if err := w.notifications.NotifyConfirmation(ctx, &event.Order); err != nil {
		// Logged and counted inside the service. Returning nil commits the
		// message: a dead mail provider should not wedge the consumer on one
		// event forever.
		log.Printf("Confirmation notification failed for order %s: %v", event.Order.ID, err)
	}
	return nil
}

func (w *NotificationWorker) handleStatusChanged(ctx context.Context, event *models.OrderStatusChangedEvent) error {
	if err := w.notifications.NotifyStatusChange(ctx, &event.Order, event.NewStatus); err != nil {
		log.Printf("Status notification failed for order %s: %v", event.Order.ID, err)
	}
	return nil
}

// Start starts the worker
func (w *NotificationWorker) Start(ctx context.Context) error {
	log.Println("Starting notification worker...")
	return w.consumer.StartConsuming(ctx, w.eventHandler.HandleMessage)
}

// Stop stops the worker
func (w *NotificationWorker) Stop() error {
	log.Println("Stopping notification worker...")
	return w.consumer.Close()
}
