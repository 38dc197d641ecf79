package persistence_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reliefops/logistics-go/internal/adapters/persistence"
	"github.com/reliefops/logistics-go/internal/domain/shared"
	"github.com/reliefops/logistics-go/internal/domain/shipment"
	"github.com/reliefops/logistics-go/test/helpers"
)

func TestShipmentRepository_SaveAndFind(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	clock := shared.NewMockClock(time.Date(2026, 8, 24, 8, 0, 0, 0, time.UTC))
	repo := persistence.NewGormShipmentRepository(db, clock)

	sh, err := shipment.NewShipment(shared.PriorityHigh,
		shared.NewLocation(40.5, -3.6, "", "Madrid", ""),
		shared.NewLocation(41.4, 2.2, "", "Barcelona", ""),
		500, "liters", clock)
	require.NoError(t, err)

	needID := shared.NewEntityID()
	supplyID := shared.NewEntityID()
	sh.LinkNeed(needID)
	sh.LinkSupply(supplyID)
	sh.SetCarrierDetails("RedCross Logistics", "Truck 12", "J. Romero")
	sh.SetRecipient("Shelter 4")
	require.True(t, sh.TransitionTo(shipment.StatusApproved))
	require.True(t, sh.TransitionTo(shipment.StatusInTransit))

	// Act
	require.NoError(t, repo.Save(context.Background(), sh))
	found, err := repo.FindByID(context.Background(), sh.ID())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, sh.TrackingCode(), found.TrackingCode())
	assert.Equal(t, shipment.StatusInTransit, found.Status())
	assert.Equal(t, shared.PriorityHigh, found.Priority())
	require.NotNil(t, found.NeedID())
	assert.True(t, needID.Equals(*found.NeedID()))
	require.NotNil(t, found.SupplyID())
	assert.True(t, supplyID.Equals(*found.SupplyID()))
	assert.Equal(t, sh.Origin(), found.Origin())
	assert.Equal(t, sh.Destination(), found.Destination())
	assert.Equal(t, "RedCross Logistics", found.Carrier())
	require.NotNil(t, found.ActualDispatch())
	assert.WithinDuration(t, *sh.ActualDispatch(), *found.ActualDispatch(), time.Second)
}

func TestShipmentRepository_LifecycleSurvivesRoundTrip(t *testing.T) {
	db := helpers.NewTestDB(t)
	clock := shared.NewMockClock(time.Date(2026, 8, 24, 8, 0, 0, 0, time.UTC))
	repo := persistence.NewGormShipmentRepository(db, clock)
	loc := shared.NewLocation(0, 0, "", "", "")

	sh, err := shipment.NewShipment(shared.PriorityMedium, loc, loc, 50, "boxes", clock)
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), sh))

	found, err := repo.FindByID(context.Background(), sh.ID())
	require.NoError(t, err)

	// The restored shipment enforces the same lifecycle rules
	assert.False(t, found.TransitionTo(shipment.StatusDelivered))
	assert.True(t, found.TransitionTo(shipment.StatusApproved))
	require.NoError(t, repo.Save(context.Background(), found))

	again, err := repo.FindByID(context.Background(), sh.ID())
	require.NoError(t, err)
	assert.Equal(t, shipment.StatusApproved, again.Status())
}
