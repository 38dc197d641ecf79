package shared_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reliefops/logistics-go/internal/domain/shared"
)

func TestEntityID_NewAndParse(t *testing.T) {
	// Arrange
	id := shared.NewEntityID()

	// Act
	parsed, err := shared.NewEntityIDFromString(id.Value())

	// Assert
	require.NoError(t, err)
	assert.True(t, id.Equals(parsed))
	assert.False(t, id.IsZero())
}

func TestEntityID_ParseRejectsGarbage(t *testing.T) {
	_, err := shared.NewEntityIDFromString("not-a-uuid")
	assert.Error(t, err)
}

func TestEntity_MarkAsDeletedIsIdempotent(t *testing.T) {
	// Arrange
	clock := shared.NewMockClock(time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC))
	entity := shared.NewEntity(clock)

	// Act
	entity.MarkAsDeleted()
	firstDeleteTime := entity.UpdatedAt()
	clock.Advance(time.Hour)
	entity.MarkAsDeleted()

	// Assert
	assert.True(t, entity.IsDeleted())
	assert.True(t, entity.UpdatedAt().After(firstDeleteTime), "repeated delete keeps the flag and bumps the timestamp")
}

func TestEntity_TouchBumpsUpdatedAt(t *testing.T) {
	// Arrange
	clock := shared.NewMockClock(time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC))
	entity := shared.NewEntity(clock)
	created := entity.UpdatedAt()

	// Act
	clock.Advance(30 * time.Minute)
	entity.Touch()

	// Assert
	assert.True(t, entity.UpdatedAt().After(created))
	assert.Equal(t, created, entity.CreatedAt())
}

func TestLocation_DistanceTo(t *testing.T) {
	// Madrid to Barcelona is roughly 505 km
	madrid := shared.NewLocation(40.4168, -3.7038, "", "Madrid", "")
	barcelona := shared.NewLocation(41.3874, 2.1686, "", "Barcelona", "")

	distance, ok := madrid.DistanceTo(barcelona)

	require.True(t, ok)
	assert.InDelta(t, 505, distance, 10)
}

func TestLocation_DistanceToUnknownCoordinates(t *testing.T) {
	known := shared.NewLocation(40.0, -3.0, "", "", "")
	unknown := shared.NewLocation(0, 0, "somewhere", "", "")

	_, ok := known.DistanceTo(unknown)

	assert.False(t, ok)
}

func TestLocation_DistanceToSelfIsZero(t *testing.T) {
	loc := shared.NewLocation(40.0, -3.0, "", "", "")

	distance, ok := loc.DistanceTo(loc)

	require.True(t, ok)
	assert.InDelta(t, 0, distance, 0.001)
}

func TestParsePriorityLevel(t *testing.T) {
	assert.Equal(t, shared.PriorityCritical, shared.ParsePriorityLevel("Critical"))
	assert.Equal(t, shared.PriorityCritical, shared.ParsePriorityLevel("critical"))
	assert.Equal(t, shared.PriorityHigh, shared.ParsePriorityLevel("HIGH"))
	assert.Equal(t, shared.PriorityMedium, shared.ParsePriorityLevel("medium"))
	assert.Equal(t, shared.PriorityLow, shared.ParsePriorityLevel("low"))
	assert.Equal(t, shared.PriorityLow, shared.ParsePriorityLevel("bogus"))
}

func TestPriorityLevel_Numeric(t *testing.T) {
	assert.Equal(t, 0.0, shared.PriorityCritical.Numeric())
	assert.Equal(t, 3.0, shared.PriorityLow.Numeric())
}
