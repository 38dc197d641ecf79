package matching

import (
	"math"

	"github.com/reliefops/logistics-go/internal/domain/need"
	"github.com/reliefops/logistics-go/internal/domain/supply"
)

const (
	// exactCategoryScore and relatedCategoryScore are the raw category
	// sub-scores before the configured weight is applied
	exactCategoryScore   = 1.0
	relatedCategoryScore = 0.5

	// stockRatioWeight scales the preference for supplies that can cover
	// more of a need's remainder
	stockRatioWeight = 0.2

	// expiringSoonBonus nudges perishable stock to the front
	expiringSoonBonus = 0.1
)

// MatchScore computes the non-negative match score for a (need, supply)
// pair under the given configuration. A zero score means the supply is
// ineligible for the need: category mismatch is a hard cut, while missing
// coordinates merely zero the proximity sub-score.
func MatchScore(n *need.Need, s *supply.Supply, cfg Config) float64 {
	var categoryScore float64
	switch {
	case CategoriesMatch(n.Category(), s.Category()):
		categoryScore = exactCategoryScore * cfg.CategoryMatchWeight
	case CategoriesRelated(n.Category(), s.Category()):
		categoryScore = relatedCategoryScore * cfg.CategoryMatchWeight
	default:
		return 0
	}

	score := categoryScore

	if distance, ok := n.Location().DistanceTo(s.StorageLocation()); ok && cfg.MaxProximityDistanceKm > 0 {
		proximity := math.Max(0, 1-distance/cfg.MaxProximityDistanceKm)
		score += proximity * cfg.ProximityWeight
	}

	if remaining := n.RemainingQuantity(); remaining > 0 {
		ratio := math.Min(1.0, float64(s.AllocatableQuantity())/float64(remaining))
		score += ratio * stockRatioWeight
	}

	if s.IsExpiringSoon() {
		score += expiringSoonBonus
	}

	return score
}
