// Package wizard models the booking flow as a linear step machine. The
// server does not hold wizard state across requests; this type captures the
// ordering contract (which step may follow which, and which fields each
// forward transition re-validates) for any client driving the flow.
package wizard

import (
	"fmt"
	"strings"

	"github.com/Zheero0/freezye/internal/availability"
	"github.com/Zheero0/freezye/internal/models"
	"github.com/Zheero0/freezye/internal/pricing"
)

// Step is one stage of the booking flow.
type Step int

const (
	StepService Step = iota
	StepDelivery
	StepSchedule
	StepDetails
	StepPayment
	StepConfirm
)

var stepNames = []string{"Service", "Delivery", "Schedule", "Details", "Payment", "Confirm"}

func (s Step) String() string {
	if s < StepService || s > StepConfirm {
		return fmt.Sprintf("Step(%d)", int(s))
	}
	return stepNames[s]
}

// Draft is the in-progress booking state. It is session-scoped, never
// persisted, and never trusted for pricing.
type Draft struct {
	ServiceID      string
	Quantity       int
	AddOn          bool
	DeliveryMethod string
	PickupAddress  string
	BookingDate    string
	BookingTime    string
	FullName       string
	Email          string
	PhoneNumber    string
	PaymentMethod  string
	Notes          string
}

// Wizard sequences a draft through the booking steps.
type Wizard struct {
	step  Step
	draft Draft
}

// New starts a wizard at the service step.
func New() *Wizard {
	return &Wizard{step: StepService, draft: Draft{Quantity: 1}}
}

// Step returns the current step.
func (w *Wizard) Step() Step {
	return w.step
}

// Draft returns a copy of the current draft.
func (w *Wizard) Draft() Draft {
	return w.draft
}

// SetDraft replaces the draft fields. Validation happens on Next, scoped to
// the step being left.
func (w *Wizard) SetDraft(d Draft) {
	w.draft = d
}

// Next advances to the following step after validating only the fields
// belonging to the step being left.
func (w *Wizard) Next() error {
	if w.step >= StepConfirm {
		return fmt.Errorf("wizard already at %s", StepConfirm)
	}
	if err := w.validateStep(w.step); err != nil {
		return err
	}
	w.step++
	return nil
}

// Back returns to the previous step without validation; nothing entered is
// re-checked until the customer moves forward again.
func (w *Wizard) Back() error {
	if w.step <= StepService {
		return fmt.Errorf("wizard already at %s", StepService)
	}
	w.step--
	return nil
}

func (w *Wizard) validateStep(step Step) error {
	d := w.draft
	switch step {
	case StepService:
		if _, err := pricing.ServiceByID(d.ServiceID); err != nil {
			return err
		}
		if d.Quantity < 1 {
			return fmt.Errorf("quantity must be at least 1")
		}
	case StepDelivery:
		if d.DeliveryMethod != models.DeliveryCollection && d.DeliveryMethod != models.DeliveryDropoff {
			return fmt.Errorf("delivery method must be collection or dropoff")
		}
		if d.DeliveryMethod == models.DeliveryCollection && strings.TrimSpace(d.PickupAddress) == "" {
			return fmt.Errorf("pickup address is required for collection")
		}
	case StepSchedule:
		if !availability.ValidDate(d.BookingDate) {
			return fmt.Errorf("invalid booking date %q", d.BookingDate)
		}
		if !availability.ValidTime(d.BookingTime) {
			return fmt.Errorf("invalid booking time %q", d.BookingTime)
		}
	case StepDetails:
		if len(strings.TrimSpace(d.FullName)) < 2 {
			return fmt.Errorf("full name is required")
		}
		if !strings.Contains(d.Email, "@") {
			return fmt.Errorf("invalid email address")
		}
		if strings.TrimSpace(d.PhoneNumber) == "" {
			return fmt.Errorf("phone number is required")
		}
	case StepPayment:
		if d.PaymentMethod != models.PaymentMethodCard && d.PaymentMethod != models.PaymentMethodCash {
			return fmt.Errorf("payment method must be card or cash")
		}
	}
	return nil
}

// RequiresIntent reports whether entering the payment step should stage a
// payment intent for this draft.
func (w *Wizard) RequiresIntent() bool {
	return w.draft.PaymentMethod == models.PaymentMethodCard
}
