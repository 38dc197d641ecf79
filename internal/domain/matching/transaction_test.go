package matching_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reliefops/logistics-go/internal/domain/matching"
	"github.com/reliefops/logistics-go/internal/domain/shared"
)

func TestTransaction_RollbackRestoresQuantities(t *testing.T) {
	// Arrange: apply a forward pass by hand
	clock := shared.NewMockClock(time.Date(2026, 8, 1, 8, 0, 0, 0, time.UTC))
	loc := shared.NewLocation(0, 0, "", "", "")
	n := mustNeed(t, "water need", shared.PriorityHigh, 100, clock)
	s := mustSupply(t, "bottles", "water", 100, loc, clock)

	tx := matching.NewTransaction()
	require.True(t, s.Reserve(60))
	require.True(t, s.DeductStock(60))
	tx.RecordSupplyDeduction(s, 60)
	require.True(t, n.AddFulfilledQuantity(60))
	tx.RecordNeedFulfillment(n, 60)

	// Act
	tx.Rollback()

	// Assert
	assert.Equal(t, 100, s.QuantityAvailable())
	assert.Equal(t, 0, s.QuantityReserved())
	assert.Equal(t, 0, n.QuantityFulfilled())
	assert.False(t, tx.Committed())
}

func TestTransaction_RollbackReversesMultipleDeltasNewestFirst(t *testing.T) {
	clock := shared.NewMockClock(time.Date(2026, 8, 1, 8, 0, 0, 0, time.UTC))
	loc := shared.NewLocation(0, 0, "", "", "")
	n := mustNeed(t, "water need", shared.PriorityHigh, 100, clock)
	s1 := mustSupply(t, "lot A", "water", 60, loc, clock)
	s2 := mustSupply(t, "lot B", "water", 60, loc, clock)

	tx := matching.NewTransaction()
	require.True(t, s1.Reserve(60) && s1.DeductStock(60))
	tx.RecordSupplyDeduction(s1, 60)
	require.True(t, n.AddFulfilledQuantity(60))
	tx.RecordNeedFulfillment(n, 60)

	require.True(t, s2.Reserve(40) && s2.DeductStock(40))
	tx.RecordSupplyDeduction(s2, 40)
	require.True(t, n.AddFulfilledQuantity(40))
	tx.RecordNeedFulfillment(n, 40)

	tx.Rollback()

	assert.Equal(t, 60, s1.QuantityAvailable())
	assert.Equal(t, 60, s2.QuantityAvailable())
	assert.Equal(t, 0, s1.QuantityReserved())
	assert.Equal(t, 0, s2.QuantityReserved())
	assert.Equal(t, 0, n.QuantityFulfilled())
}

func TestTransaction_CommitPreventsRollback(t *testing.T) {
	clock := shared.NewMockClock(time.Date(2026, 8, 1, 8, 0, 0, 0, time.UTC))
	loc := shared.NewLocation(0, 0, "", "", "")
	n := mustNeed(t, "water need", shared.PriorityHigh, 100, clock)
	s := mustSupply(t, "bottles", "water", 100, loc, clock)

	tx := matching.NewTransaction()
	require.True(t, s.Reserve(30) && s.DeductStock(30))
	tx.RecordSupplyDeduction(s, 30)
	require.True(t, n.AddFulfilledQuantity(30))
	tx.RecordNeedFulfillment(n, 30)

	tx.Commit()
	tx.Rollback()

	assert.True(t, tx.Committed())
	assert.Equal(t, 70, s.QuantityAvailable())
	assert.Equal(t, 30, n.QuantityFulfilled())
}

func TestTransaction_SupplyDeductionsAggregates(t *testing.T) {
	clock := shared.NewMockClock(time.Date(2026, 8, 1, 8, 0, 0, 0, time.UTC))
	loc := shared.NewLocation(0, 0, "", "", "")
	s := mustSupply(t, "bottles", "water", 100, loc, clock)

	tx := matching.NewTransaction()
	tx.RecordSupplyDeduction(s, 10)
	tx.RecordSupplyDeduction(s, 15)

	assert.Equal(t, 25, tx.SupplyDeductions()[s])
}
