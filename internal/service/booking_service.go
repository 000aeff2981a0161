package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Zheero0/freezye/internal/availability"
	"github.com/Zheero0/freezye/internal/gateway"
	"github.com/Zheero0/freezye/internal/models"
	"github.com/Zheero0/freezye/internal/pricing"
	"github.com/Zheero0/freezye/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrPaymentNotConfirmed is returned for a card order whose payment intent
// has not reached the succeeded state.
var ErrPaymentNotConfirmed = fmt.Errorf("payment not confirmed")

// OrderStore is the ledger persistence contract.
type OrderStore interface {
	CreateOrder(ctx context.Context, order *models.Order) error
	GetOrderByID(ctx context.Context, id string) (*models.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID, status string) error
	ListOrders(ctx context.Context) ([]models.Order, error)
}

// SlotManager is the slice of the availability manager the ledger needs.
type SlotManager interface {
	HasSlot(ctx context.Context, date, timeLabel string) (bool, error)
	RemoveSlot(ctx context.Context, date, timeLabel string) error
}

// IntentReader reads back intent state as proof of payment.
type IntentReader interface {
	GetIntent(ctx context.Context, intentID string) (*gateway.Intent, error)
}

// OrderEventPublisher hands completed-order events to the notification
// pipeline. Publish failures never fail the order itself.
type OrderEventPublisher interface {
	PublishOrderConfirmed(ctx context.Context, event *models.OrderConfirmedEvent) error
	PublishOrderStatusChanged(ctx context.Context, event *models.OrderStatusChangedEvent) error
}

// BookingService is the order ledger: the single authoritative write path
// for completed reservations.
type BookingService struct {
	store   OrderStore
	slots   SlotManager
	intents IntentReader
	events  OrderEventPublisher
	logger  *zap.Logger
}

// NewBookingService creates a new booking service.
func NewBookingService(store OrderStore, slots SlotManager, intents IntentReader, events OrderEventPublisher) *BookingService {
	return &BookingService{
		store:   store,
		slots:   slots,
		intents: intents,
		events:  events,
		logger:  util.GetLogger(),
	}
}

// CreateOrderRequest is the untrusted submission from the booking wizard.
type CreateOrderRequest struct {
	ServiceID       string `json:"serviceId"`
	Quantity        int    `json:"quantity"`
	AddOn           bool   `json:"addOn"`
	DeliveryMethod  string `json:"deliveryMethod"`
	PaymentMethod   string `json:"paymentMethod"`
	BookingDate     string `json:"bookingDate"`
	BookingTime     string `json:"bookingTime"`
	FullName        string `json:"fullName"`
	Email           string `json:"email"`
	PhoneNumber     string `json:"phoneNumber"`
	PickupAddress   string `json:"pickupAddress,omitempty"`
	Notes           string `json:"notes,omitempty"`
	PaymentIntentID string `json:"paymentIntentId,omitempty"`
}

// CreateOrder re-validates the submission, recomputes the price from trusted
// fields, verifies proof of payment for card orders, persists the order with
// status Pending, claims the slot, and hands the confirmation event to the
// notification pipeline. Nothing is persisted on any validation failure.
func (s *BookingService) CreateOrder(ctx context.Context, req *CreateOrderRequest) (*models.Order, error) {
	ctx, span := util.StartSpan(ctx, "BookingService.CreateOrder")
	defer span.End()

	if verr := validateCreateOrder(req); verr != nil {
		util.OrdersRejectedTotal.WithLabelValues("validation_failed").Inc()
		return nil, verr
	}

	svc, err := pricing.ServiceByID(req.ServiceID)
	if err != nil {
		util.OrdersRejectedTotal.WithLabelValues("service_not_found").Inc()
		return nil, err
	}

	quote, err := pricing.Quote(req.ServiceID, req.Quantity, req.AddOn, req.DeliveryMethod)
	if err != nil {
		util.OrdersRejectedTotal.WithLabelValues("pricing_failed").Inc()
		return nil, err
	}

	if req.PaymentMethod == models.PaymentMethodCard {
		if err := s.verifyPayment(ctx, req.PaymentIntentID, quote.Total); err != nil {
			util.OrdersRejectedTotal.WithLabelValues("payment_not_confirmed").Inc()
			return nil, err
		}
	}

	// Cheap pre-check before any write. The authoritative claim is the
	// atomic removal below; this only stops stale resubmissions from
	// creating an order for a slot that is already gone.
	present, err := s.slots.HasSlot(ctx, req.BookingDate, req.BookingTime)
	if err != nil {
		return nil, fmt.Errorf("check slot availability: %w", err)
	}
	if !present {
		util.OrdersRejectedTotal.WithLabelValues("slot_unavailable").Inc()
		return nil, fmt.Errorf("%w: %s %s", availability.ErrSlotUnavailable, req.BookingDate, req.BookingTime)
	}

	order := &models.Order{
		FullName:        req.FullName,
		Email:           req.Email,
		PhoneNumber:     normalizePhoneNumber(req.PhoneNumber),
		ServiceID:       svc.ID,
		ServiceName:     svc.Name,
		Quantity:        req.Quantity,
		AddOn:           req.AddOn,
		DeliveryMethod:  req.DeliveryMethod,
		PickupAddress:   req.PickupAddress,
		BookingDate:     req.BookingDate,
		BookingTime:     req.BookingTime,
		Notes:           req.Notes,
		PaymentMethod:   req.PaymentMethod,
		PaymentIntentID: req.PaymentIntentID,
		TotalCost:       quote.Total,
		Status:          models.OrderStatusPending,
	}

	if err := s.store.CreateOrder(ctx, order); err != nil {
		util.OrdersRejectedTotal.WithLabelValues("db_error").Inc()
		return nil, fmt.Errorf("persist order: %w", err)
	}

	util.OrdersCreatedTotal.Inc()
	s.logger.Info("order created",
		zap.String("order_id", order.ID),
		zap.String("service", order.ServiceID),
		zap.Int64("total", order.TotalCost))

	// The order is already persisted at this point. Losing the slot race
	// here leaves the order in place for operator follow-up; the customer
	// is told the time is no longer available.
	if err := s.slots.RemoveSlot(ctx, req.BookingDate, req.BookingTime); err != nil {
		s.logger.Warn("slot removal failed after order write",
			zap.String("order_id", order.ID),
			zap.String("date", req.BookingDate),
			zap.String("time", req.BookingTime),
			zap.Error(err))
		return order, err
	}

	s.publishConfirmed(ctx, order)
	return order, nil
}

// verifyPayment checks that the referenced intent reached succeeded and was
// staged for the authoritative amount.
func (s *BookingService) verifyPayment(ctx context.Context, intentID string, expectedAmount int64) error {
	intent, err := s.intents.GetIntent(ctx, intentID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPaymentNotConfirmed, err)
	}
	if intent.Status != gateway.IntentStatusSucceeded {
		return fmt.Errorf("%w: intent %s is %s", ErrPaymentNotConfirmed, intentID, intent.Status)
	}
	if intent.Amount != expectedAmount {
		s.logger.Warn("intent amount does not match recomputed total",
			zap.String("intent_id", intentID),
			zap.Int64("intent_amount", intent.Amount),
			zap.Int64("expected", expectedAmount))
		return fmt.Errorf("%w: intent %s amount mismatch", ErrPaymentNotConfirmed, intentID)
	}
	return nil
}

func (s *BookingService) publishConfirmed(ctx context.Context, order *models.Order) {
	event := &models.OrderConfirmedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeOrderConfirmed,
			Timestamp: time.Now(),
		},
		Order: *order,
	}
	if err := s.events.PublishOrderConfirmed(ctx, event); err != nil {
		s.logger.Error("failed to publish order confirmed event",
			zap.String("order_id", order.ID),
			zap.Error(err))
	}
}

// UpdateStatus moves an order to a new status. Setting the current status
// again is a no-op. Any recognized status is accepted; a transition that is
// not an edge of the documented workflow is logged but allowed.
func (s *BookingService) UpdateStatus(ctx context.Context, orderID, newStatus string) (*models.Order, error) {
	ctx, span := util.StartSpan(ctx, "BookingService.UpdateStatus")
	defer span.End()

	if !models.ValidStatus(newStatus) {
		return nil, &ValidationError{Fields: map[string]string{"status": "unknown status"}}
	}

	order, err := s.store.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.Status == newStatus {
		return order, nil
	}

	if !models.IsDirectTransition(order.Status, newStatus) {
		s.logger.Warn("status transition outside documented workflow",
			zap.String("order_id", orderID),
			zap.String("from", order.Status),
			zap.String("to", newStatus))
	}

	if err := s.store.UpdateOrderStatus(ctx, orderID, newStatus); err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}

	util.OrderStatusUpdatesTotal.Inc()

	oldStatus := order.Status
	order.Status = newStatus

	event := &models.OrderStatusChangedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeOrderStatusChanged,
			Timestamp: time.Now(),
		},
		Order:     *order,
		OldStatus: oldStatus,
		NewStatus: newStatus,
	}
	if err := s.events.PublishOrderStatusChanged(ctx, event); err != nil {
		s.logger.Error("failed to publish status changed event",
			zap.String("order_id", orderID),
			zap.Error(err))
	}

	return order, nil
}

// GetOrder retrieves an order by ID.
func (s *BookingService) GetOrder(ctx context.Context, orderID string) (*models.Order, error) {
	return s.store.GetOrderByID(ctx, orderID)
}

// ListOrders retrieves all orders, newest first.
func (s *BookingService) ListOrders(ctx context.Context) ([]models.Order, error) {
	return s.store.ListOrders(ctx)
}
