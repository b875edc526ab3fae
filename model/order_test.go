package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransitionLeavesPendingOnce(t *testing.T) {
	for _, to := range []OrderStatus{StatusCOD, StatusPaid, StatusFailed} {
		order := Order{ID: 1, Status: StatusPending}
		require.NoError(t, order.Transition(to))
		assert.Equal(t, to, order.Status)
		assert.True(t, order.Status.Terminal())
	}
}

func TestTransitionRejectsTerminalSource(t *testing.T) {
	order := Order{ID: 1, Status: StatusPaid}
	err := order.Transition(StatusFailed)
	require.Error(t, err)
	assert.Equal(t, StatusPaid, order.Status)
}

func TestTransitionNeverReentersPending(t *testing.T) {
	order := Order{ID: 1, Status: StatusPending}
	require.Error(t, order.Transition(StatusPending))

	order.Status = StatusFailed
	require.Error(t, order.Transition(StatusPending))
	assert.Equal(t, StatusFailed, order.Status)
}

func TestPendingIsNotTerminal(t *testing.T) {
	assert.False(t, StatusPending.Terminal())
}
