package need_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reliefops/logistics-go/internal/domain/need"
	"github.com/reliefops/logistics-go/internal/domain/shared"
)

func newTestNeed(t *testing.T, quantity int) *need.Need {
	t.Helper()
	clock := shared.NewMockClock(time.Date(2026, 8, 1, 8, 0, 0, 0, time.UTC))
	n, err := need.NewNeed("Water for shelter 4", "water", shared.PriorityHigh,
		quantity, "liters", shared.NewLocation(40.4, -3.7, "", "Madrid", ""), clock)
	require.NoError(t, err)
	return n
}

func TestNewNeed_Validation(t *testing.T) {
	clock := shared.NewMockClock(time.Time{})
	loc := shared.NewLocation(0, 0, "", "", "")

	tests := []struct {
		name     string
		title    string
		category string
		priority shared.PriorityLevel
		quantity int
	}{
		{"empty title", "", "water", shared.PriorityHigh, 10},
		{"empty category", "Water", "", shared.PriorityHigh, 10},
		{"invalid priority", "Water", "water", shared.PriorityLevel(7), 10},
		{"zero quantity", "Water", "water", shared.PriorityHigh, 0},
		{"negative quantity", "Water", "water", shared.PriorityHigh, -5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := need.NewNeed(tt.title, tt.category, tt.priority, tt.quantity, "units", loc, clock)
			assert.Error(t, err)
		})
	}
}

func TestNeed_AddFulfilledQuantityClampsAtRequired(t *testing.T) {
	n := newTestNeed(t, 100)

	assert.True(t, n.AddFulfilledQuantity(150))

	assert.Equal(t, 100, n.QuantityFulfilled())
	assert.True(t, n.IsFulfilled())
	assert.Equal(t, 0, n.RemainingQuantity())
	assert.Equal(t, 100.0, n.FulfillmentPercent())
}

func TestNeed_AddFulfilledQuantityRejectsNonPositive(t *testing.T) {
	n := newTestNeed(t, 100)

	assert.False(t, n.AddFulfilledQuantity(0))
	assert.False(t, n.AddFulfilledQuantity(-10))
	assert.Equal(t, 0, n.QuantityFulfilled())
}

func TestNeed_RevertFulfilledQuantityFloorsAtZero(t *testing.T) {
	n := newTestNeed(t, 100)
	require.True(t, n.AddFulfilledQuantity(40))

	assert.True(t, n.RevertFulfilledQuantity(60))

	assert.Equal(t, 0, n.QuantityFulfilled())
	assert.Equal(t, 100, n.RemainingQuantity())
}

func TestNeed_PartialFulfillment(t *testing.T) {
	n := newTestNeed(t, 200)

	require.True(t, n.AddFulfilledQuantity(50))

	assert.False(t, n.IsFulfilled())
	assert.Equal(t, 150, n.RemainingQuantity())
	assert.InDelta(t, 25.0, n.FulfillmentPercent(), 0.001)
}
