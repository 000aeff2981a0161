package service

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Zheero0/freezye/internal/availability"
	"github.com/Zheero0/freezye/internal/models"
)

// minPickupAddressLen is the shortest pickup address accepted for
// collection orders.
const minPickupAddressLen = 10

var (
	emailPattern    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	nonDigitPattern = regexp.MustCompile(`\D`)
)

// ValidationError carries a field-attributable error map. Every rejected
// submission tells the caller exactly which fields failed and why.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// validateCreateOrder re-checks every field. The wizard validates
// client-side, but nothing the client did is trusted here.
func validateCreateOrder(req *CreateOrderRequest) *ValidationError {
	fields := make(map[string]string)

	if len(strings.TrimSpace(req.FullName)) < 2 {
		fields["fullName"] = "full name is required"
	}
	if !emailPattern.MatchString(req.Email) {
		fields["email"] = "invalid email address"
	}
	if len(nonDigitPattern.ReplaceAllString(req.PhoneNumber, "")) < 10 {
		fields["phoneNumber"] = "phone number is required"
	}
	if req.ServiceID == "" {
		fields["serviceId"] = "service is required"
	}
	if req.Quantity < 1 {
		fields["quantity"] = "quantity must be at least 1"
	}
	if !availability.ValidDate(req.BookingDate) {
		fields["bookingDate"] = "invalid date format (YYYY-MM-DD)"
	}
	if !availability.ValidTime(req.BookingTime) {
		fields["bookingTime"] = "invalid time format (HH:MM)"
	}

	switch req.DeliveryMethod {
	case models.DeliveryCollection:
		if len(strings.TrimSpace(req.PickupAddress)) < minPickupAddressLen {
			fields["pickupAddress"] = "pickup address is required for collection"
		}
	case models.DeliveryDropoff:
		// no address needed
	default:
		fields["deliveryMethod"] = "delivery method must be collection or dropoff"
	}

	switch req.PaymentMethod {
	case models.PaymentMethodCard:
		if req.PaymentIntentID == "" {
			fields["paymentIntentId"] = "payment intent is required for card payment"
		}
	case models.PaymentMethodCash:
		// cash orders carry no intent
	default:
		fields["paymentMethod"] = "payment method must be card or cash"
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// normalizePhoneNumber reduces a phone number to digits and applies the
// default trunk prefix when the caller left it off. International 44...
// numbers are kept as entered.
func normalizePhoneNumber(phone string) string {
	digits := nonDigitPattern.ReplaceAllString(phone, "")
	if digits == "" {
		return ""
	}
	if !strings.HasPrefix(digits, "0") && !strings.HasPrefix(digits, "44") {
		digits = "0" + digits
	}
	return digits
}
