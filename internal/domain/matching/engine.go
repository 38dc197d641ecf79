package matching

import (
	"fmt"
	"sort"

	"github.com/reliefops/logistics-go/internal/domain/audit"
	"github.com/reliefops/logistics-go/internal/domain/need"
	"github.com/reliefops/logistics-go/internal/domain/shared"
	"github.com/reliefops/logistics-go/internal/domain/supply"
)

// Engine executes atomic matching passes over a snapshot of needs and
// supplies. A pass mutates entity quantities in place; on any failure every
// recorded mutation is reversed before the pass returns. Callers must not
// mutate the visited entities concurrently with a pass.
type Engine struct {
	cfg        Config
	priorities *PriorityManager
	auditSink  audit.Sink
	clock      shared.Clock
}

// NewEngine creates a matching engine. The audit sink may be nil, in which
// case no events are emitted. The clock parameter is optional - if nil,
// defaults to RealClock.
func NewEngine(cfg Config, priorities *PriorityManager, auditSink audit.Sink, clock shared.Clock) *Engine {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &Engine{
		cfg:        cfg,
		priorities: priorities,
		auditSink:  auditSink,
		clock:      clock,
	}
}

// scoredCandidate pairs a supply with its match score for one need
type scoredCandidate struct {
	supply *supply.Supply
	score  float64
}

// Match runs one atomic matching pass. Needs are visited in priority order;
// for each need, candidate supplies are consumed in descending match-score
// order until the remaining quantity is covered or candidates run out.
//
// An error return signals invalid input only. Failures inside the pass roll
// back all mutations and are reported in the result with Success=false.
func (e *Engine) Match(needs []*need.Need, supplies []*supply.Supply) (result *MatchingResult, err error) {
	if needs == nil {
		return nil, shared.NewInvalidArgumentError("needs collection cannot be nil")
	}
	if supplies == nil {
		return nil, shared.NewInvalidArgumentError("supplies collection cannot be nil")
	}

	prioritized, err := e.priorities.Prioritize(needs, PrioritizeOptions{})
	if err != nil {
		return nil, err
	}

	if len(prioritized) == 0 {
		return &MatchingResult{
			Success: true,
			Message: "no unfulfilled needs to match",
		}, nil
	}

	candidates := e.filterCandidates(supplies)

	tx := NewTransaction()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			aborted := shared.NewMatchingAbortedError(fmt.Errorf("panic during matching pass: %v", r))
			e.emitMatchFailed(aborted)
			result = &MatchingResult{
				Success: false,
				Message: "matching pass aborted, all mutations rolled back",
				Err:     aborted,
			}
			err = nil
		}
	}()

	allocations := make([]*Allocation, 0, len(prioritized))
	for _, n := range prioritized {
		if n.IsFulfilled() {
			continue
		}

		allocation, allocErr := e.allocateNeed(n, candidates, tx)
		if allocErr != nil {
			tx.Rollback()
			aborted := shared.NewMatchingAbortedError(allocErr)
			e.emitMatchFailed(aborted)
			return &MatchingResult{
				Success: false,
				Message: "matching pass aborted, all mutations rolled back",
				Err:     aborted,
			}, nil
		}
		if allocation != nil {
			allocations = append(allocations, allocation)
		}
	}

	// Point of no return: mutations stand even if audit emission below
	// misbehaves.
	tx.Commit()

	result = &MatchingResult{
		Success:     true,
		Message:     fmt.Sprintf("allocated %d needs in this pass", len(allocations)),
		Allocations: allocations,
	}

	e.emitCommitted(prioritized, result)
	return result, nil
}

// filterCandidates drops supplies that can never participate in this pass:
// deleted, expired, or with nothing allocatable
func (e *Engine) filterCandidates(supplies []*supply.Supply) []*supply.Supply {
	candidates := make([]*supply.Supply, 0, len(supplies))
	for _, s := range supplies {
		if s == nil || s.IsDeleted() || s.IsExpired() {
			continue
		}
		if s.AllocatableQuantity() == 0 {
			continue
		}
		candidates = append(candidates, s)
	}
	return candidates
}

// allocateNeed walks the scored candidates for one need, applying slices
// through the transaction until the remainder is covered or candidates run
// out. Returns nil when nothing could be allocated.
func (e *Engine) allocateNeed(n *need.Need, candidates []*supply.Supply, tx *Transaction) (*Allocation, error) {
	remaining := n.RemainingQuantity()
	if remaining == 0 {
		return nil, nil
	}

	scored := e.scoreCandidates(n, candidates)
	if len(scored) == 0 {
		return nil, nil
	}

	var entries []SupplyAllocation
	accumulated := 0

	for _, c := range scored {
		if accumulated >= remaining {
			break
		}

		allocatable := c.supply.AllocatableQuantity()
		if allocatable == 0 {
			continue
		}

		slice := allocatable
		if outstanding := remaining - accumulated; slice > outstanding {
			slice = outstanding
		}

		if accumulated == 0 {
			if e.cfg.AllowPartialFulfillment {
				// The first slice of a partial allocation must be worth
				// making at all; a slice that covers the whole remainder is
				// not partial and passes regardless.
				minSlice := float64(n.QuantityRequired()) * e.cfg.MinPartialFulfillmentPercent / 100
				if slice < remaining && float64(slice) < minSlice {
					continue
				}
			} else if slice < remaining {
				// Without partial fulfillment the best candidate must cover
				// the need alone; otherwise leave it for a later run.
				break
			}
		}

		if !c.supply.Reserve(slice) {
			return nil, fmt.Errorf("failed to reserve %d units of %s", slice, c.supply.Name())
		}
		if !c.supply.DeductStock(slice) {
			c.supply.ReleaseReservation(slice)
			return nil, fmt.Errorf("failed to deduct %d units of %s", slice, c.supply.Name())
		}
		tx.RecordSupplyDeduction(c.supply, slice)
		if !n.AddFulfilledQuantity(slice) {
			return nil, fmt.Errorf("failed to record %d fulfilled units on %s", slice, n.Title())
		}
		tx.RecordNeedFulfillment(n, slice)

		entries = append(entries, SupplyAllocation{
			SupplyID:        c.supply.ID(),
			SupplyName:      c.supply.Name(),
			Quantity:        slice,
			MatchScore:      c.score,
			SupplyExhausted: c.supply.AllocatableQuantity() == 0,
		})
		accumulated += slice
	}

	if accumulated == 0 {
		return nil, nil
	}

	return &Allocation{
		NeedID:                  n.ID(),
		NeedTitle:               n.Title(),
		Supplies:                entries,
		TotalAllocated:          accumulated,
		FulfillmentPercentAfter: n.FulfillmentPercent(),
		AllocatedAt:             e.clock.Now(),
	}, nil
}

// scoreCandidates computes match scores for every eligible candidate and
// returns them in descending score order. Zero-scored candidates are
// dropped; ties keep the candidate list's insertion order (stable sort).
func (e *Engine) scoreCandidates(n *need.Need, candidates []*supply.Supply) []scoredCandidate {
	scored := make([]scoredCandidate, 0, len(candidates))
	for _, s := range candidates {
		if s.AllocatableQuantity() == 0 {
			continue
		}
		score := MatchScore(n, s, e.cfg)
		if score <= 0 {
			continue
		}
		scored = append(scored, scoredCandidate{supply: s, score: score})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	return scored
}

// emitCommitted fires the audit events for a committed pass: one MatchMade
// per allocation, SupplyDepleted for every exhausted supply, and
// NeedFulfilled for needs that reached 100%.
func (e *Engine) emitCommitted(needs []*need.Need, result *MatchingResult) {
	if e.auditSink == nil {
		return
	}

	now := e.clock.Now()
	needsByID := make(map[string]*need.Need, len(needs))
	for _, n := range needs {
		needsByID[n.ID().Value()] = n
	}

	for _, a := range result.Allocations {
		entry, err := audit.NewEntry(audit.EventMatchMade,
			fmt.Sprintf("allocated %d units to %q from %d supplies", a.TotalAllocated, a.NeedTitle, len(a.Supplies)),
			now,
			map[string]interface{}{
				"totalAllocated":     a.TotalAllocated,
				"fulfillmentPercent": a.FulfillmentPercentAfter,
				"supplyCount":        len(a.Supplies),
			})
		if err == nil {
			e.auditSink.Append(entry.WithEntity(a.NeedID.Value(), "need"))
		}

		depleted := make(map[string]bool)
		for _, sa := range a.Supplies {
			if !sa.SupplyExhausted || depleted[sa.SupplyID.Value()] {
				continue
			}
			depleted[sa.SupplyID.Value()] = true
			entry, err := audit.NewEntry(audit.EventSupplyDepleted,
				fmt.Sprintf("supply %q exhausted by allocation", sa.SupplyName),
				now, nil)
			if err == nil {
				e.auditSink.Append(entry.WithEntity(sa.SupplyID.Value(), "supply"))
			}
		}

		if n, ok := needsByID[a.NeedID.Value()]; ok && n.IsFulfilled() {
			entry, err := audit.NewEntry(audit.EventNeedFulfilled,
				fmt.Sprintf("need %q fully fulfilled", a.NeedTitle),
				now, nil)
			if err == nil {
				e.auditSink.Append(entry.WithEntity(a.NeedID.Value(), "need"))
			}
		}
	}
}

func (e *Engine) emitMatchFailed(cause error) {
	if e.auditSink == nil {
		return
	}
	entry, err := audit.NewEntry(audit.EventMatchFailed,
		fmt.Sprintf("matching pass rolled back: %v", cause),
		e.clock.Now(), nil)
	if err == nil {
		e.auditSink.Append(entry)
	}
}
