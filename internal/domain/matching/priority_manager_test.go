package matching_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reliefops/logistics-go/internal/domain/matching"
	"github.com/reliefops/logistics-go/internal/domain/need"
	"github.com/reliefops/logistics-go/internal/domain/shared"
)

func mustNeed(t *testing.T, title string, priority shared.PriorityLevel, quantity int, clock shared.Clock) *need.Need {
	t.Helper()
	n, err := need.NewNeed(title, "water", priority, quantity, "liters",
		shared.NewLocation(40.4, -3.7, "", "Madrid", ""), clock)
	require.NoError(t, err)
	return n
}

func TestEffectiveScore_BaseScoreWhenFresh(t *testing.T) {
	clock := shared.NewMockClock(time.Date(2026, 8, 1, 8, 0, 0, 0, time.UTC))
	pm := matching.NewPriorityManager(matching.DefaultAgingConfig(), clock)

	critical := mustNeed(t, "c", shared.PriorityCritical, 10, clock)
	high := mustNeed(t, "h", shared.PriorityHigh, 10, clock)
	medium := mustNeed(t, "m", shared.PriorityMedium, 10, clock)
	low := mustNeed(t, "l", shared.PriorityLow, 10, clock)

	assert.Equal(t, 0.0, pm.EffectiveScore(critical))
	assert.Equal(t, 1.0, pm.EffectiveScore(high))
	assert.Equal(t, 2.0, pm.EffectiveScore(medium))
	assert.Equal(t, 3.0, pm.EffectiveScore(low))
}

func TestEffectiveScore_NoAgingAtExactThreshold(t *testing.T) {
	clock := shared.NewMockClock(time.Date(2026, 8, 1, 8, 0, 0, 0, time.UTC))
	pm := matching.NewPriorityManager(matching.DefaultAgingConfig(), clock)
	high := mustNeed(t, "h", shared.PriorityHigh, 10, clock)

	// Aging only kicks in strictly past the threshold
	clock.Advance(6 * time.Hour)
	assert.Equal(t, 1.0, pm.EffectiveScore(high))

	clock.Advance(time.Minute)
	assert.Less(t, pm.EffectiveScore(high), 1.0)
}

func TestEffectiveScore_LowNeedAgesAllTheWayToCritical(t *testing.T) {
	clock := shared.NewMockClock(time.Date(2026, 8, 1, 8, 0, 0, 0, time.UTC))
	pm := matching.NewPriorityManager(matching.DefaultAgingConfig(), clock)
	low := mustNeed(t, "l", shared.PriorityLow, 10, clock)

	// log2(200/24 + 1) > 3, so the bonus saturates at the level's cap
	clock.Advance(200 * time.Hour)

	assert.Equal(t, 0.0, pm.EffectiveScore(low))
	assert.Equal(t, shared.PriorityCritical, pm.EffectiveLevel(low))
}

func TestEffectiveScore_CriticalNeverEscalates(t *testing.T) {
	clock := shared.NewMockClock(time.Date(2026, 8, 1, 8, 0, 0, 0, time.UTC))
	pm := matching.NewPriorityManager(matching.DefaultAgingConfig(), clock)
	critical := mustNeed(t, "c", shared.PriorityCritical, 10, clock)

	clock.Advance(1000 * time.Hour)

	assert.Equal(t, 0.0, pm.EffectiveScore(critical))
}

func TestEffectiveScore_DeadlineBonuses(t *testing.T) {
	clock := shared.NewMockClock(time.Date(2026, 8, 1, 8, 0, 0, 0, time.UTC))
	pm := matching.NewPriorityManager(matching.DefaultAgingConfig(), clock)

	tests := []struct {
		name     string
		deadline time.Duration
		want     float64
	}{
		{"passed", -time.Hour, 1.0},  // 3 - 2.0
		{"at zero", 0, 1.0},          // hoursLeft <= 0
		{"within 6h", 5 * time.Hour, 2.0},
		{"within 24h", 20 * time.Hour, 2.5},
		{"far out", 48 * time.Hour, 3.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := mustNeed(t, "l", shared.PriorityLow, 10, clock)
			deadline := clock.Now().Add(tt.deadline)
			n.SetDeadline(&deadline)

			assert.InDelta(t, tt.want, pm.EffectiveScore(n), 0.001)
		})
	}
}

func TestEffectiveScore_NearCompletionBias(t *testing.T) {
	clock := shared.NewMockClock(time.Date(2026, 8, 1, 8, 0, 0, 0, time.UTC))
	pm := matching.NewPriorityManager(matching.DefaultAgingConfig(), clock)

	n := mustNeed(t, "m", shared.PriorityMedium, 100, clock)
	require.True(t, n.AddFulfilledQuantity(79))
	assert.Equal(t, 2.0, pm.EffectiveScore(n))

	// The bias applies from 80% fulfilled onward
	require.True(t, n.AddFulfilledQuantity(1))
	assert.Equal(t, 1.5, pm.EffectiveScore(n))
}

func TestEffectiveScore_ClampsAtZero(t *testing.T) {
	clock := shared.NewMockClock(time.Date(2026, 8, 1, 8, 0, 0, 0, time.UTC))
	pm := matching.NewPriorityManager(matching.DefaultAgingConfig(), clock)

	n := mustNeed(t, "h", shared.PriorityHigh, 100, clock)
	passed := clock.Now().Add(-time.Hour)
	n.SetDeadline(&passed)
	require.True(t, n.AddFulfilledQuantity(90))

	// 1 - 2.0 - 0.5 would be negative
	assert.Equal(t, 0.0, pm.EffectiveScore(n))
}

func TestEffectiveLevel_Boundaries(t *testing.T) {
	clock := shared.NewMockClock(time.Date(2026, 8, 1, 8, 0, 0, 0, time.UTC))
	pm := matching.NewPriorityManager(matching.DefaultAgingConfig(), clock)

	assert.Equal(t, shared.PriorityCritical, pm.EffectiveLevel(mustNeed(t, "c", shared.PriorityCritical, 10, clock)))
	assert.Equal(t, shared.PriorityHigh, pm.EffectiveLevel(mustNeed(t, "h", shared.PriorityHigh, 10, clock)))
	assert.Equal(t, shared.PriorityMedium, pm.EffectiveLevel(mustNeed(t, "m", shared.PriorityMedium, 10, clock)))
	assert.Equal(t, shared.PriorityLow, pm.EffectiveLevel(mustNeed(t, "l", shared.PriorityLow, 10, clock)))
}

func TestPrioritize_OrdersByScoreThenAge(t *testing.T) {
	clock := shared.NewMockClock(time.Date(2026, 8, 1, 8, 0, 0, 0, time.UTC))
	pm := matching.NewPriorityManager(matching.DefaultAgingConfig(), clock)

	older := mustNeed(t, "older low", shared.PriorityLow, 10, clock)
	clock.Advance(time.Hour)
	newer := mustNeed(t, "newer low", shared.PriorityLow, 10, clock)
	urgent := mustNeed(t, "urgent", shared.PriorityCritical, 10, clock)

	ordered, err := pm.Prioritize([]*need.Need{newer, older, urgent}, matching.PrioritizeOptions{})

	require.NoError(t, err)
	require.Len(t, ordered, 3)
	assert.Equal(t, "urgent", ordered[0].Title())
	assert.Equal(t, "older low", ordered[1].Title())
	assert.Equal(t, "newer low", ordered[2].Title())
}

func TestPrioritize_FiltersFulfilledAndDeleted(t *testing.T) {
	clock := shared.NewMockClock(time.Date(2026, 8, 1, 8, 0, 0, 0, time.UTC))
	pm := matching.NewPriorityManager(matching.DefaultAgingConfig(), clock)

	open := mustNeed(t, "open", shared.PriorityHigh, 10, clock)
	done := mustNeed(t, "done", shared.PriorityHigh, 10, clock)
	require.True(t, done.AddFulfilledQuantity(10))
	gone := mustNeed(t, "gone", shared.PriorityHigh, 10, clock)
	gone.MarkAsDeleted()

	ordered, err := pm.Prioritize([]*need.Need{open, done, gone}, matching.PrioritizeOptions{})

	require.NoError(t, err)
	require.Len(t, ordered, 1)
	assert.Equal(t, "open", ordered[0].Title())

	// Opting in brings them back
	all, err := pm.Prioritize([]*need.Need{open, done, gone},
		matching.PrioritizeOptions{IncludeFulfilled: true, IncludeDeleted: true})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestPrioritize_NilCollection(t *testing.T) {
	pm := matching.NewPriorityManager(matching.DefaultAgingConfig(), nil)

	_, err := pm.Prioritize(nil, matching.PrioritizeOptions{})

	assert.Error(t, err)
}

func TestEmergencyAgingConfig_EscalatesFaster(t *testing.T) {
	clock := shared.NewMockClock(time.Date(2026, 8, 1, 8, 0, 0, 0, time.UTC))
	standard := matching.NewPriorityManager(matching.DefaultAgingConfig(), clock)
	emergency := matching.NewPriorityManager(matching.EmergencyAgingConfig(), clock)

	n := mustNeed(t, "h", shared.PriorityHigh, 10, clock)
	clock.Advance(2 * time.Hour)

	// 2h is past the emergency high threshold (1h) but not the standard (6h)
	assert.Equal(t, 1.0, standard.EffectiveScore(n))
	assert.Less(t, emergency.EffectiveScore(n), 1.0)
}
