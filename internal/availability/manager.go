// Package availability owns bookable capacity: which time labels exist for
// which calendar dates, and the atomic hand-off of a slot to exactly one
// booking.
package availability

import (
	"context"
	"fmt"
	"regexp"

	"github.com/Zheero0/freezye/internal/util"

	"go.uber.org/zap"
)

// ErrSlotUnavailable is returned when a removal finds the slot already gone,
// either because it was never offered or because a concurrent booking won it.
var ErrSlotUnavailable = fmt.Errorf("slot unavailable")

var (
	datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timePattern = regexp.MustCompile(`^\d{2}:\d{2}$`)
)

// SlotStore is the persistence contract for slot sets. RemoveSlot must be a
// single conditional mutation: of N concurrent removals of one (date, time)
// pair, at most one returns true.
type SlotStore interface {
	ListSlots(ctx context.Context, date string) ([]string, error)
	AddSlot(ctx context.Context, date, timeLabel string) error
	RemoveSlot(ctx context.Context, date, timeLabel string) (bool, error)
	HasSlot(ctx context.Context, date, timeLabel string) (bool, error)
	AvailableDates(ctx context.Context) ([]string, error)
}

// Manager mediates all access to the slot store.
type Manager struct {
	slots  SlotStore
	logger *zap.Logger
}

// NewManager creates a new availability manager.
func NewManager(slots SlotStore) *Manager {
	return &Manager{
		slots:  slots,
		logger: util.GetLogger(),
	}
}

// ValidDate reports whether date is a YYYY-MM-DD label.
func ValidDate(date string) bool {
	return datePattern.MatchString(date)
}

// ValidTime reports whether timeLabel is an HH:MM label.
func ValidTime(timeLabel string) bool {
	return timePattern.MatchString(timeLabel)
}

// ListSlots returns the sorted time labels for a date. Unknown dates yield
// an empty set.
func (m *Manager) ListSlots(ctx context.Context, date string) ([]string, error) {
	if !ValidDate(date) {
		return nil, fmt.Errorf("invalid date %q", date)
	}
	return m.slots.ListSlots(ctx, date)
}

// AddSlot offers a time on a date. Idempotent.
func (m *Manager) AddSlot(ctx context.Context, date, timeLabel string) error {
	if !ValidDate(date) {
		return fmt.Errorf("invalid date %q", date)
	}
	if !ValidTime(timeLabel) {
		return fmt.Errorf("invalid time %q", timeLabel)
	}
	if err := m.slots.AddSlot(ctx, date, timeLabel); err != nil {
		return err
	}
	util.SlotsAddedTotal.Inc()
	return nil
}

// RemoveSlot claims a slot. The removal is atomic at the store; a removal
// that finds the slot absent returns ErrSlotUnavailable and the caller must
// fail its booking rather than proceed.
func (m *Manager) RemoveSlot(ctx context.Context, date, timeLabel string) error {
	if !ValidDate(date) {
		return fmt.Errorf("invalid date %q", date)
	}
	if !ValidTime(timeLabel) {
		return fmt.Errorf("invalid time %q", timeLabel)
	}

	removed, err := m.slots.RemoveSlot(ctx, date, timeLabel)
	if err != nil {
		return err
	}
	if !removed {
		util.SlotConflictsTotal.Inc()
		m.logger.Warn("slot removal lost the race",
			zap.String("date", date),
			zap.String("time", timeLabel))
		return fmt.Errorf("%w: %s %s", ErrSlotUnavailable, date, timeLabel)
	}

	util.SlotsRemovedTotal.Inc()
	return nil
}

// HasSlot reports whether a slot is currently offered. Used as the cheap
// pre-check before an order write; the authoritative check is RemoveSlot.
func (m *Manager) HasSlot(ctx context.Context, date, timeLabel string) (bool, error) {
	if !ValidDate(date) || !ValidTime(timeLabel) {
		return false, nil
	}
	return m.slots.HasSlot(ctx, date, timeLabel)
}

// AvailableDates returns the dates whose slot set is non-empty, recomputed
// on each call.
func (m *Manager) AvailableDates(ctx context.Context) ([]string, error) {
	return m.slots.AvailableDates(ctx)
}
