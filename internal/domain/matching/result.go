package matching

import (
	"time"

	"github.com/reliefops/logistics-go/internal/domain/shared"
)

// SupplyAllocation records one supply's contribution to a need during a
// matching pass
type SupplyAllocation struct {
	SupplyID        shared.EntityID
	SupplyName      string
	Quantity        int
	MatchScore      float64
	SupplyExhausted bool
}

// Allocation records one need's fulfillment during a matching pass
type Allocation struct {
	NeedID                  shared.EntityID
	NeedTitle               string
	Supplies                []SupplyAllocation
	TotalAllocated          int
	FulfillmentPercentAfter float64
	AllocatedAt             time.Time
}

// MatchingResult is the outcome of one atomic matching pass
type MatchingResult struct {
	Success     bool
	Message     string
	Err         error
	Allocations []*Allocation
}

// TotalAllocatedQuantity sums the quantities allocated across all needs
func (r *MatchingResult) TotalAllocatedQuantity() int {
	total := 0
	for _, a := range r.Allocations {
		total += a.TotalAllocated
	}
	return total
}

// FullyFulfilledCount counts needs that reached 100% during the pass
func (r *MatchingResult) FullyFulfilledCount() int {
	count := 0
	for _, a := range r.Allocations {
		if a.FulfillmentPercentAfter >= 100 {
			count++
		}
	}
	return count
}

// PartiallyFulfilledCount counts needs that received an allocation but did
// not reach 100%
func (r *MatchingResult) PartiallyFulfilledCount() int {
	count := 0
	for _, a := range r.Allocations {
		if a.TotalAllocated > 0 && a.FulfillmentPercentAfter < 100 {
			count++
		}
	}
	return count
}
