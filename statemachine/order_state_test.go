package statemachine

import (
	"errors"
	"testing"

	"food-ordering-api/models"

	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		name    string
		from    models.OrderStatus
		to      models.OrderStatus
		actor   string
		allowed bool
	}{
		{"owner confirms", models.StatusPlaced, models.StatusConfirmed, ActorOwner, true},
		{"customer cannot confirm", models.StatusPlaced, models.StatusConfirmed, ActorCustomer, false},
		{"customer cancels placed", models.StatusPlaced, models.StatusCancelled, ActorCustomer, true},
		{"customer cancels confirmed", models.StatusConfirmed, models.StatusCancelled, ActorCustomer, true},
		{"customer cannot cancel preparing", models.StatusPreparing, models.StatusCancelled, ActorCustomer, false},
		{"owner dispatches", models.StatusPreparing, models.StatusOutForDelivery, ActorOwner, true},
		{"owner completes", models.StatusOutForDelivery, models.StatusCompleted, ActorOwner, true},
		{"no skipping", models.StatusPlaced, models.StatusCompleted, ActorOwner, false},
		{"completed is terminal", models.StatusCompleted, models.StatusPlaced, ActorOwner, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := CanTransition(tc.from, tc.to, tc.actor)
			if tc.allowed {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			require.True(t, errors.Is(err, ErrInvalidTransition))
		})
	}
}

func TestValidTransitionsFrom(t *testing.T) {
	require.Equal(t,
		[]models.OrderStatus{models.StatusConfirmed, models.StatusCancelled},
		ValidTransitionsFrom(models.StatusPlaced))
	require.Empty(t, ValidTransitionsFrom(models.StatusCancelled))
	require.True(t, IsTerminal(models.StatusCompleted))
	require.True(t, IsTerminal(models.StatusCancelled))
	require.False(t, IsTerminal(models.StatusPreparing))
}

func TestIsKnown(t *testing.T) {
	require.True(t, IsKnown(models.StatusOutForDelivery))
	require.False(t, IsKnown("DELIVERED"))
}

func TestAllTransitionsIsACopy(t *testing.T) {
	all := AllTransitions()
	all[0].To = models.StatusCancelled
	require.NoError(t, CanTransition(models.StatusPlaced, models.StatusConfirmed, ActorOwner))
}
