package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransitionForwardOnly(t *testing.T) {
	tests := []struct {
		name string
		from OrderStatus
		to   OrderStatus
		want bool
	}{
		{"pending to confirmed", StatusPending, StatusConfirmed, true},
		{"confirmed to in_production", StatusConfirmed, StatusInProduction, true},
		{"delivered to paid", StatusDelivered, StatusPaid, true},
		{"skip a step", StatusPending, StatusInProduction, false},
		{"backwards", StatusInProduction, StatusConfirmed, false},
		{"paid is terminal", StatusPaid, StatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestCanTransitionCancellation(t *testing.T) {
	assert.True(t, CanTransition(StatusPending, StatusCancelled))
	assert.True(t, CanTransition(StatusInTransit, StatusCancelled))

	assert.False(t, CanTransition(StatusDelivered, StatusCancelled))
	assert.False(t, CanTransition(StatusPaid, StatusCancelled))
	assert.False(t, CanTransition(StatusCancelled, StatusCancelled))
}

func TestParseOrderStatus(t *testing.T) {
	status, ok := ParseOrderStatus("  In_Production ")
	require.True(t, ok)
	assert.Equal(t, StatusInProduction, status)

	_, ok = ParseOrderStatus("shipped")
	assert.False(t, ok)
}

func TestIsOpen(t *testing.T) {
	assert.True(t, StatusPending.IsOpen())
	assert.True(t, StatusConfirmed.IsOpen())
	assert.True(t, StatusInProduction.IsOpen())

	assert.False(t, StatusReady.IsOpen())
	assert.False(t, StatusDelivered.IsOpen())
	assert.False(t, StatusCancelled.IsOpen())
}

func TestFilterForRole(t *testing.T) {
	prod := FilterForRole(RoleProductionMgr, "u1")
	assert.Empty(t, prod.UserID)
	assert.ElementsMatch(t, []OrderStatus{StatusPending, StatusCancelled}, prod.ExcludeStatuses)

	admin := FilterForRole(RoleAdmin, "u1")
	assert.Empty(t, admin.UserID)
	assert.Empty(t, admin.ExcludeStatuses)

	customer := FilterForRole(RoleRetail, "u1")
	assert.Equal(t, "u1", customer.UserID)
}
