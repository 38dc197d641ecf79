package shared

import "strings"

// PriorityLevel is the discrete urgency level attached to needs and shipments
type PriorityLevel int

const (
	PriorityCritical PriorityLevel = iota
	PriorityHigh
	PriorityMedium
	PriorityLow
)

// Numeric returns the base score of the level (Critical=0 ... Low=3).
// Lower means more urgent throughout the matching core.
func (p PriorityLevel) Numeric() float64 {
	return float64(p)
}

// IsValid reports whether the level is one of the four defined values
func (p PriorityLevel) IsValid() bool {
	return p >= PriorityCritical && p <= PriorityLow
}

func (p PriorityLevel) String() string {
	switch p {
	case PriorityCritical:
		return "Critical"
	case PriorityHigh:
		return "High"
	case PriorityMedium:
		return "Medium"
	case PriorityLow:
		return "Low"
	default:
		return "Unknown"
	}
}

// ParsePriorityLevel converts a stored or user-typed string back into a
// level, ignoring case. Unknown strings map to PriorityLow rather than
// failing: a mislabeled need should still be matchable, just not urgent.
func ParsePriorityLevel(s string) PriorityLevel {
	switch strings.ToLower(s) {
	case "critical":
		return PriorityCritical
	case "high":
		return PriorityHigh
	case "medium":
		return PriorityMedium
	default:
		return PriorityLow
	}
}
