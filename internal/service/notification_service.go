package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Zheero0/freezye/internal/mailer"
	"github.com/Zheero0/freezye/internal/models"
	"github.com/Zheero0/freezye/internal/util"

	"go.uber.org/zap"
)

// statusMessages is the customer-facing explanation for each status.
var statusMessages = map[string]string{
	models.OrderStatusPending:            "Your order is pending and will be processed shortly.",
	models.OrderStatusCollected:          "We've successfully collected your sneakers! They are now on their way to our facility.",
	models.OrderStatusInProgress:         "The cleaning process has begun! Our experts are meticulously restoring your sneakers.",
	models.OrderStatusReadyForCollection: "Good news! Your sneakers are now ready for collection.",
	models.OrderStatusCompleted:          "Great news! Your sneakers are clean, fresh, and ready for you.",
	models.OrderStatusCancelled:          "Your order has been cancelled as per your request.",
}

// NotificationService sends order emails. It sits strictly downstream of the
// order ledger: any failure here is logged and counted, never reflected back
// into order state.
type NotificationService struct {
	mailer     mailer.Mailer
	adminEmail string
	baseURL    string
	logger     *zap.Logger
}

// NewNotificationService creates a new notification service.
func NewNotificationService(m mailer.Mailer, adminEmail, baseURL string) *NotificationService {
	return &NotificationService{
		mailer:     m,
		adminEmail: adminEmail,
		baseURL:    baseURL,
		logger:     util.GetLogger(),
	}
}

// shortID trims an order id for subject lines.
func shortID(id string) string {
	if len(id) > 7 {
		return id[:7]
	}
	return id
}

// NotifyConfirmation sends the confirmation email to the customer and the
// new-order alert to the operator. The two sends are independent: one
// failing does not stop the other, and both failing still leaves the order
// untouched.
func (ns *NotificationService) NotifyConfirmation(ctx context.Context, order *models.Order) error {
	var errs []string

	customerMsg := mailer.Message{
		To:      order.Email,
		Subject: fmt.Sprintf("Order Confirmed: #%s", shortID(order.ID)),
		HTML:    ns.confirmationHTML(order),
	}
	if err := ns.mailer.Send(ctx, customerMsg); err != nil {
		util.NotificationsFailedTotal.WithLabelValues("confirmation").Inc()
		ns.logger.Error("customer confirmation email failed",
			zap.String("order_id", order.ID), zap.Error(err))
		errs = append(errs, err.Error())
	} else {
		util.NotificationsSentTotal.WithLabelValues("confirmation").Inc()
	}

	adminMsg := mailer.Message{
		To:      ns.adminEmail,
		Subject: fmt.Sprintf("New Order Received: #%s", shortID(order.ID)),
		HTML:    ns.adminOrderHTML(order),
	}
	if err := ns.mailer.Send(ctx, adminMsg); err != nil {
		util.NotificationsFailedTotal.WithLabelValues("admin").Inc()
		ns.logger.Error("admin order email failed",
			zap.String("order_id", order.ID), zap.Error(err))
		errs = append(errs, err.Error())
	} else {
		util.NotificationsSentTotal.WithLabelValues("admin").Inc()
	}

	if len(errs) > 0 {
		return fmt.Errorf("notification failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// NotifyStatusChange sends one customer email describing the new status.
func (ns *NotificationService) NotifyStatusChange(ctx context.Context, order *models.Order, newStatus string) error {
	msg := mailer.Message{
		To:      order.Email,
		Subject: fmt.Sprintf("Order Update: Your order is now %s", newStatus),
		HTML:    ns.statusUpdateHTML(order, newStatus),
	}

	if err := ns.mailer.Send(ctx, msg); err != nil {
		util.NotificationsFailedTotal.WithLabelValues("status_update").Inc()
		ns.logger.Error("status update email failed",
			zap.String("order_id", order.ID),
			zap.String("new_status", newStatus),
			zap.Error(err))
		return fmt.Errorf("notification failed: %w", err)
	}

	util.NotificationsSentTotal.WithLabelValues("status_update").Inc()
	return nil
}

func (ns *NotificationService) confirmationHTML(order *models.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<h1>Thanks for your order, %s!</h1>", order.FullName)
	fmt.Fprintf(&b, "<p>Your booking for <strong>%s</strong> (x%d) is confirmed.</p>", order.ServiceName, order.Quantity)
	fmt.Fprintf(&b, "<p>Scheduled for %s at %s.</p>", order.BookingDate, order.BookingTime)
	fmt.Fprintf(&b, "<p>Total: &pound;%.2f</p>", float64(order.TotalCost)/100)
	if order.DeliveryMethod == models.DeliveryCollection {
		fmt.Fprintf(&b, "<p>We will collect from: %s</p>", order.PickupAddress)
	}
	fmt.Fprintf(&b, `<p><a href="%s/order-confirmation?id=%s">View your order</a></p>`, ns.baseURL, order.ID)
	return b.String()
}

func (ns *NotificationService) adminOrderHTML(order *models.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<h1>New order #%s</h1>", shortID(order.ID))
	fmt.Fprintf(&b, "<p>%s &mdash; %s (x%d), %s %s</p>",
		order.FullName, order.ServiceName, order.Quantity, order.BookingDate, order.BookingTime)
	fmt.Fprintf(&b, "<p>Payment: %s. Total: &pound;%.2f</p>", order.PaymentMethod, float64(order.TotalCost)/100)
	fmt.Fprintf(&b, "<p>Contact: %s / %s</p>", order.Email, order.PhoneNumber)
	fmt.Fprintf(&b, `<p><a href="%s/admin/orders/%s">Open order</a></p>`, ns.baseURL, order.ID)
	return b.String()
}

func (ns *NotificationService) statusUpdateHTML(order *models.Order, newStatus string) string {
	explanation, ok := statusMessages[newStatus]
	if !ok {
		explanation = fmt.Sprintf("Your order is now %s.", newStatus)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<h1>Update on order #%s</h1>", shortID(order.ID))
	fmt.Fprintf(&b, "<p>%s</p>", explanation)
	fmt.Fprintf(&b, `<p><a href="%s/order-confirmation?id=%s">View your order</a></p>`, ns.baseURL, order.ID)
	return b.String()
}
