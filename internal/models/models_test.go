package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidStatus(t *testing.T) {
	for _, s := range []string{
		OrderStatusPending, OrderStatusCollected, OrderStatusInProgress,
		OrderStatusReadyForCollection, OrderStatusCompleted, OrderStatusCancelled,
	} {
		assert.True(t, ValidStatus(s), s)
	}

	assert.False(t, ValidStatus("pending"))
	assert.False(t, ValidStatus(""))
}

func TestIsDirectTransition(t *testing.T) {
	assert.True(t, IsDirectTransition(OrderStatusPending, OrderStatusCollected))
	assert.True(t, IsDirectTransition(OrderStatusInProgress, OrderStatusCompleted))

	// Cancelled is reachable from any non-terminal state
	for _, from := range []string{OrderStatusPending, OrderStatusCollected, OrderStatusInProgress, OrderStatusReadyForCollection} {
		assert.True(t, IsDirectTransition(from, OrderStatusCancelled), from)
	}

	// terminal states have no outgoing edges
	assert.False(t, IsDirectTransition(OrderStatusCompleted, OrderStatusPending))
	assert.False(t, IsDirectTransition(OrderStatusCancelled, OrderStatusPending))

	// skipping backwards is not a documented edge
	assert.False(t, IsDirectTransition(OrderStatusCompleted, OrderStatusInProgress))
}
