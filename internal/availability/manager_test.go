package availability

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memorySlotStore implements SlotStore with the same atomicity contract as
// the Redis-backed store: removal is a single mutation under one lock.
type memorySlotStore struct {
	mu   sync.Mutex
	days map[string]map[string]struct{}
}

func newMemorySlotStore() *memorySlotStore {
	return &memorySlotStore{days: make(map[string]map[string]struct{})}
}

func (s *memorySlotStore) ListSlots(_ context.Context, date string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var slots []string
	for t := range s.days[date] {
		slots = append(slots, t)
	}
	sort.Strings(slots)
	return slots, nil
}

func (s *memorySlotStore) AddSlot(_ context.Context, date, timeLabel string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.days[date] == nil {
		s.days[date] = make(map[string]struct{})
	}
	s.days[date][timeLabel] = struct{}{}
	return nil
}

func (s *memorySlotStore) RemoveSlot(_ context.Context, date, timeLabel string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.days[date][timeLabel]; !ok {
		return false, nil
	}
	delete(s.days[date], timeLabel)
	return true, nil
}

func (s *memorySlotStore) HasSlot(_ context.Context, date, timeLabel string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.days[date][timeLabel]
	return ok, nil
}

func (s *memorySlotStore) AvailableDates(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var dates []string
	for d, slots := range s.days {
		if len(slots) > 0 {
			dates = append(dates, d)
		}
	}
	sort.Strings(dates)
	return dates, nil
}

func TestAddSlotIdempotent(t *testing.T) {
	ctx := context.Background()
	m := NewManager(newMemorySlotStore())

	require.NoError(t, m.AddSlot(ctx, "2025-03-10", "09:00"))
	require.NoError(t, m.AddSlot(ctx, "2025-03-10", "09:00"))

	slots, err := m.ListSlots(ctx, "2025-03-10")
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00"}, slots)
}

func TestListSlotsUnknownDateIsEmpty(t *testing.T) {
	m := NewManager(newMemorySlotStore())

	slots, err := m.ListSlots(context.Background(), "2030-01-01")
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestRemoveSlotAbsent(t *testing.T) {
	m := NewManager(newMemorySlotStore())

	err := m.RemoveSlot(context.Background(), "2025-03-10", "09:00")
	assert.True(t, errors.Is(err, ErrSlotUnavailable))
}

func TestRemoveSlotRace(t *testing.T) {
	ctx := context.Background()
	m := NewManager(newMemorySlotStore())
	require.NoError(t, m.AddSlot(ctx, "2025-03-10", "09:00"))

	const attempts = 16
	results := make(chan error, attempts)
	var start sync.WaitGroup
	start.Add(1)

	for i := 0; i < attempts; i++ {
		go func() {
			start.Wait()
			results <- m.RemoveSlot(ctx, "2025-03-10", "09:00")
		}()
	}
	start.Done()

	var wins, losses int
	for i := 0; i < attempts; i++ {
		err := <-results
		if err == nil {
			wins++
		} else {
			assert.True(t, errors.Is(err, ErrSlotUnavailable))
			losses++
		}
	}

	assert.Equal(t, 1, wins)
	assert.Equal(t, attempts-1, losses)
}

func TestAvailableDatesSkipsEmptyDays(t *testing.T) {
	ctx := context.Background()
	m := NewManager(newMemorySlotStore())

	require.NoError(t, m.AddSlot(ctx, "2025-03-10", "09:00"))
	require.NoError(t, m.AddSlot(ctx, "2025-03-11", "10:00"))
	require.NoError(t, m.RemoveSlot(ctx, "2025-03-11", "10:00"))

	dates, err := m.AvailableDates(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-03-10"}, dates)
}

func TestLabelValidation(t *testing.T) {
	ctx := context.Background()
	m := NewManager(newMemorySlotStore())

	assert.Error(t, m.AddSlot(ctx, "10-03-2025", "09:00"))
	assert.Error(t, m.AddSlot(ctx, "2025-03-10", "9am"))
	assert.Error(t, m.RemoveSlot(ctx, "2025-03-10", "0900"))

	assert.True(t, ValidDate("2025-03-10"))
	assert.False(t, ValidDate("2025-3-10"))
	assert.True(t, ValidTime("09:00"))
	assert.False(t, ValidTime("09:00:00"))
}
