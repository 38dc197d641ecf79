package shipment_test

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reliefops/logistics-go/internal/domain/shared"
	"github.com/reliefops/logistics-go/internal/domain/shipment"
)

func newTestShipment(t *testing.T, clock shared.Clock) *shipment.Shipment {
	t.Helper()
	sh, err := shipment.NewShipment(shared.PriorityHigh,
		shared.NewLocation(40.5, -3.6, "", "Madrid", ""),
		shared.NewLocation(41.4, 2.2, "", "Barcelona", ""),
		500, "liters", clock)
	require.NoError(t, err)
	return sh
}

func TestNewShipment_Validation(t *testing.T) {
	loc := shared.NewLocation(0, 0, "", "", "")

	_, err := shipment.NewShipment(shared.PriorityLevel(9), loc, loc, 10, "units", nil)
	assert.Error(t, err)

	_, err = shipment.NewShipment(shared.PriorityHigh, loc, loc, 0, "units", nil)
	assert.Error(t, err)
}

func TestNewShipment_TrackingCodeFormat(t *testing.T) {
	clock := shared.NewMockClock(time.Date(2026, 8, 24, 15, 30, 45, 0, time.UTC))
	sh := newTestShipment(t, clock)

	assert.Regexp(t, regexp.MustCompile(`^DL-20260824153045-[0-9A-F]{6}$`), sh.TrackingCode())
	assert.Equal(t, shipment.StatusPending, sh.Status())
}

func TestShipment_HappyPathLifecycle(t *testing.T) {
	clock := shared.NewMockClock(time.Date(2026, 8, 24, 8, 0, 0, 0, time.UTC))
	sh := newTestShipment(t, clock)

	require.True(t, sh.TransitionTo(shipment.StatusApproved))
	clock.Advance(time.Hour)
	require.True(t, sh.TransitionTo(shipment.StatusInTransit))

	dispatchedAt := sh.ActualDispatch()
	require.NotNil(t, dispatchedAt)
	assert.Equal(t, clock.Now(), *dispatchedAt)

	clock.Advance(2 * time.Hour)
	require.True(t, sh.TransitionTo(shipment.StatusAtDistributionCenter))
	require.True(t, sh.TransitionTo(shipment.StatusOutForDelivery))

	clock.Advance(time.Hour)
	require.True(t, sh.TransitionTo(shipment.StatusDelivered))

	require.NotNil(t, sh.ActualDelivery())
	assert.Equal(t, clock.Now(), *sh.ActualDelivery())
	assert.False(t, sh.IsActive())
}

func TestShipment_RejectsSkippedTransitions(t *testing.T) {
	sh := newTestShipment(t, nil)

	// Pending cannot jump straight into transit or delivery
	assert.False(t, sh.TransitionTo(shipment.StatusInTransit))
	assert.False(t, sh.TransitionTo(shipment.StatusDelivered))
	assert.Equal(t, shipment.StatusPending, sh.Status())

	// Self-transition is rejected
	assert.False(t, sh.TransitionTo(shipment.StatusPending))
}

func TestShipment_CancelFromAnyActiveState(t *testing.T) {
	sh := newTestShipment(t, nil)
	require.True(t, sh.TransitionTo(shipment.StatusApproved))
	require.True(t, sh.TransitionTo(shipment.StatusInTransit))

	assert.True(t, sh.TransitionTo(shipment.StatusCancelled))
	assert.False(t, sh.IsActive())

	// Terminal states accept no further transitions
	assert.False(t, sh.TransitionTo(shipment.StatusInTransit))
	assert.False(t, sh.TransitionTo(shipment.StatusFailed))
}

func TestShipment_DeliveredCannotBeCancelled(t *testing.T) {
	sh := newTestShipment(t, nil)
	require.True(t, sh.TransitionTo(shipment.StatusApproved))
	require.True(t, sh.TransitionTo(shipment.StatusInTransit))
	require.True(t, sh.TransitionTo(shipment.StatusDelivered))

	assert.False(t, sh.TransitionTo(shipment.StatusCancelled))
	assert.False(t, sh.TransitionTo(shipment.StatusFailed))
}

func TestShipment_DispatchTimestampFirstEntryWins(t *testing.T) {
	clock := shared.NewMockClock(time.Date(2026, 8, 24, 8, 0, 0, 0, time.UTC))
	sh := newTestShipment(t, clock)

	require.True(t, sh.TransitionTo(shipment.StatusApproved))
	require.True(t, sh.TransitionTo(shipment.StatusInTransit))
	first := *sh.ActualDispatch()

	clock.Advance(5 * time.Hour)
	require.True(t, sh.TransitionTo(shipment.StatusDelivered))
	assert.Equal(t, first, *sh.ActualDispatch())
}

func TestShipment_IsDelayed(t *testing.T) {
	clock := shared.NewMockClock(time.Date(2026, 8, 24, 8, 0, 0, 0, time.UTC))
	sh := newTestShipment(t, clock)

	eta := clock.Now().Add(4 * time.Hour)
	sh.SetSchedule(nil, &eta)

	assert.False(t, sh.IsDelayed())

	clock.Advance(5 * time.Hour)
	assert.True(t, sh.IsDelayed())

	// Terminal shipments are never delayed
	require.True(t, sh.TransitionTo(shipment.StatusCancelled))
	assert.False(t, sh.IsDelayed())
}
