package matching

import (
	"math"
	"sort"

	"github.com/reliefops/logistics-go/internal/domain/need"
	"github.com/reliefops/logistics-go/internal/domain/shared"
)

// Bonus values applied on top of aging. Bonuses subtract from the score:
// lower means more urgent.
const (
	deadlinePassedBonus   = 2.0
	deadlineWithin6hBonus = 1.0
	deadlineWithin1dBonus = 0.5
	nearCompletionBonus   = 0.5

	// nearCompletionThresholdPct is the fulfillment percentage at which the
	// near-completion bias kicks in
	nearCompletionThresholdPct = 80.0

	maxScore = 3.0
)

// PriorityManager computes effective urgency scores for needs and produces
// priority-ordered views of need collections.
type PriorityManager struct {
	aging AgingConfig
	clock shared.Clock
}

// NewPriorityManager creates a priority manager.
// The clock parameter is optional - if nil, defaults to RealClock.
func NewPriorityManager(aging AgingConfig, clock shared.Clock) *PriorityManager {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &PriorityManager{aging: aging, clock: clock}
}

// HoursWaited returns how long the need has been outstanding
func (pm *PriorityManager) HoursWaited(n *need.Need) float64 {
	return pm.clock.Now().Sub(n.CreatedAt()).Hours()
}

// EffectiveScore maps a need to a continuous urgency score in [0, 3] where
// lower is more urgent. The score combines the base priority with aging,
// deadline pressure and a near-completion bias.
func (pm *PriorityManager) EffectiveScore(n *need.Need) float64 {
	base := n.Priority().Numeric()
	waited := pm.HoursWaited(n)

	score := base - pm.agingBonus(n.Priority(), waited) - pm.deadlineBonus(n) - pm.completionBonus(n)

	if score < 0 {
		return 0
	}
	if score > maxScore {
		return maxScore
	}
	return score
}

// EffectiveLevel maps the continuous score back onto a discrete level for
// display and gating
func (pm *PriorityManager) EffectiveLevel(n *need.Need) shared.PriorityLevel {
	score := pm.EffectiveScore(n)
	switch {
	case score < 0.5:
		return shared.PriorityCritical
	case score < 1.5:
		return shared.PriorityHigh
	case score < 2.5:
		return shared.PriorityMedium
	default:
		return shared.PriorityLow
	}
}

// agingBonus escalates a need logarithmically once its wait time crosses the
// threshold for its base level. The curve is bounded so a level can never
// escalate past Critical.
func (pm *PriorityManager) agingBonus(base shared.PriorityLevel, waited float64) float64 {
	var threshold, limit float64
	switch base {
	case shared.PriorityLow:
		threshold, limit = pm.aging.LowToMediumHours, 3
	case shared.PriorityMedium:
		threshold, limit = pm.aging.MediumToHighHours, 2
	case shared.PriorityHigh:
		threshold, limit = pm.aging.HighToCriticalHours, 1
	default:
		return 0 // Critical cannot escalate further
	}

	if waited <= threshold {
		return 0
	}

	bonus := math.Log2(waited/threshold + 1)
	return math.Min(limit, bonus)
}

func (pm *PriorityManager) deadlineBonus(n *need.Need) float64 {
	deadline := n.Deadline()
	if deadline == nil {
		return 0
	}

	hoursLeft := deadline.Sub(pm.clock.Now()).Hours()
	switch {
	case hoursLeft <= 0:
		return deadlinePassedBonus
	case hoursLeft <= 6:
		return deadlineWithin6hBonus
	case hoursLeft <= 24:
		return deadlineWithin1dBonus
	default:
		return 0
	}
}

func (pm *PriorityManager) completionBonus(n *need.Need) float64 {
	if n.IsFulfilled() {
		return 0
	}
	if n.FulfillmentPercent() >= nearCompletionThresholdPct {
		return nearCompletionBonus
	}
	return 0
}

// PrioritizeOptions controls which needs Prioritize excludes
type PrioritizeOptions struct {
	IncludeFulfilled bool
	IncludeDeleted   bool
}

// Prioritize returns the needs in ascending effective-score order (most
// urgent first). Ties break deterministically on creation timestamp, older
// first. Fails with an invalid-argument error when the input collection is
// nil.
func (pm *PriorityManager) Prioritize(needs []*need.Need, opts PrioritizeOptions) ([]*need.Need, error) {
	if needs == nil {
		return nil, shared.NewInvalidArgumentError("needs collection cannot be nil")
	}

	selected := make([]*need.Need, 0, len(needs))
	for _, n := range needs {
		if n == nil {
			continue
		}
		if n.IsDeleted() && !opts.IncludeDeleted {
			continue
		}
		if n.IsFulfilled() && !opts.IncludeFulfilled {
			continue
		}
		selected = append(selected, n)
	}

	// Scores are computed once up front so the sort comparator stays
	// consistent while the clock advances.
	scores := make(map[*need.Need]float64, len(selected))
	for _, n := range selected {
		scores[n] = pm.EffectiveScore(n)
	}

	sort.SliceStable(selected, func(i, j int) bool {
		si, sj := scores[selected[i]], scores[selected[j]]
		if si != sj {
			return si < sj
		}
		return selected[i].CreatedAt().Before(selected[j].CreatedAt())
	})

	return selected, nil
}
