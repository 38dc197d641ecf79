package matching_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reliefops/logistics-go/internal/domain/matching"
	"github.com/reliefops/logistics-go/internal/domain/shared"
	"github.com/reliefops/logistics-go/internal/domain/supply"
)

func mustSupply(t *testing.T, name, category string, quantity int, loc shared.Location, clock shared.Clock) *supply.Supply {
	t.Helper()
	s, err := supply.NewSupply(name, category, quantity, "units", loc, clock)
	require.NoError(t, err)
	return s
}

func TestCategoriesMatch(t *testing.T) {
	assert.True(t, matching.CategoriesMatch("water", "water"))
	assert.True(t, matching.CategoriesMatch("Water", "WATER"))
	assert.False(t, matching.CategoriesMatch("water", "food"))
}

func TestCategoriesRelated(t *testing.T) {
	assert.True(t, matching.CategoriesRelated("water", "hydration"))
	assert.True(t, matching.CategoriesRelated("Sanitation", "HYGIENE"))
	assert.True(t, matching.CategoriesRelated("medical", "firstaid"))
	assert.False(t, matching.CategoriesRelated("water", "medical"))
	assert.False(t, matching.CategoriesRelated("water", "unknowncategory"))
	assert.False(t, matching.CategoriesRelated("alpha", "alpha"), "unknown labels have no family")
}

func TestMatchScore_CategoryMismatchIsHardCut(t *testing.T) {
	clock := shared.NewMockClock(time.Date(2026, 8, 1, 8, 0, 0, 0, time.UTC))
	loc := shared.NewLocation(40.4, -3.7, "", "Madrid", "")
	n := mustNeed(t, "water need", shared.PriorityHigh, 100, clock)
	s := mustSupply(t, "generators", "equipment", 500, loc, clock)

	assert.Equal(t, 0.0, matching.MatchScore(n, s, matching.DefaultConfig()))
}

func TestMatchScore_ExactBeatsRelated(t *testing.T) {
	clock := shared.NewMockClock(time.Date(2026, 8, 1, 8, 0, 0, 0, time.UTC))
	loc := shared.NewLocation(40.4, -3.7, "", "Madrid", "")
	cfg := matching.DefaultConfig()
	n := mustNeed(t, "water need", shared.PriorityHigh, 100, clock)

	exact := mustSupply(t, "bottles", "water", 100, loc, clock)
	related := mustSupply(t, "purification tablets", "hydration", 100, loc, clock)

	assert.Greater(t, matching.MatchScore(n, exact, cfg), matching.MatchScore(n, related, cfg))
}

func TestMatchScore_ProximityDecaysWithDistance(t *testing.T) {
	clock := shared.NewMockClock(time.Date(2026, 8, 1, 8, 0, 0, 0, time.UTC))
	cfg := matching.DefaultConfig()
	n := mustNeed(t, "water need", shared.PriorityHigh, 100, clock)

	near := mustSupply(t, "near", "water", 100, shared.NewLocation(40.42, -3.71, "", "", ""), clock)
	far := mustSupply(t, "far", "water", 100, shared.NewLocation(48.85, 2.35, "", "Paris", ""), clock)

	assert.Greater(t, matching.MatchScore(n, near, cfg), matching.MatchScore(n, far, cfg))
}

func TestMatchScore_UnknownCoordinatesZeroProximityOnly(t *testing.T) {
	clock := shared.NewMockClock(time.Date(2026, 8, 1, 8, 0, 0, 0, time.UTC))
	cfg := matching.DefaultConfig()
	n := mustNeed(t, "water need", shared.PriorityHigh, 100, clock)
	s := mustSupply(t, "warehouse", "water", 100, shared.NewLocation(0, 0, "", "", ""), clock)

	// Exact category (0.5) + full stock ratio (0.2), no proximity term
	assert.InDelta(t, 0.7, matching.MatchScore(n, s, cfg), 0.001)
}

func TestMatchScore_StockRatioCapsAtOne(t *testing.T) {
	clock := shared.NewMockClock(time.Date(2026, 8, 1, 8, 0, 0, 0, time.UTC))
	cfg := matching.DefaultConfig()
	loc := shared.NewLocation(0, 0, "", "", "")
	n := mustNeed(t, "water need", shared.PriorityHigh, 100, clock)

	covering := mustSupply(t, "big", "water", 100, loc, clock)
	overflowing := mustSupply(t, "bigger", "water", 10000, loc, clock)

	assert.Equal(t, matching.MatchScore(n, covering, cfg), matching.MatchScore(n, overflowing, cfg))
}

func TestMatchScore_ExpiringSoonBonus(t *testing.T) {
	clock := shared.NewMockClock(time.Date(2026, 8, 1, 8, 0, 0, 0, time.UTC))
	cfg := matching.DefaultConfig()
	loc := shared.NewLocation(0, 0, "", "", "")
	n := mustNeed(t, "water need", shared.PriorityHigh, 100, clock)

	fresh := mustSupply(t, "fresh", "water", 100, loc, clock)
	perishable := mustSupply(t, "perishable", "water", 100, loc, clock)
	in3days := clock.Now().Add(72 * time.Hour)
	perishable.SetExpirationDate(&in3days)

	assert.InDelta(t, 0.1,
		matching.MatchScore(n, perishable, cfg)-matching.MatchScore(n, fresh, cfg), 0.001)
}
