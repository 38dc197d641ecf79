package dashboard

import (
	"fmt"
	"sort"

	"github.com/reliefops/logistics-go/internal/domain/audit"
	"github.com/reliefops/logistics-go/internal/domain/matching"
	"github.com/reliefops/logistics-go/internal/domain/need"
	"github.com/reliefops/logistics-go/internal/domain/shared"
	"github.com/reliefops/logistics-go/internal/domain/shipment"
	"github.com/reliefops/logistics-go/internal/domain/supply"
)

// Config holds the dashboard and panic-detector tunables
type Config struct {
	// PanicThresholdHours is the minimum wait before an effectively
	// Critical need can trigger panic mode
	PanicThresholdHours float64

	// TopCriticalCount is the N for the top critical missing items list
	TopCriticalCount int
}

// DefaultConfig returns the standard dashboard configuration
func DefaultConfig() Config {
	return Config{
		PanicThresholdHours: 1.0,
		TopCriticalCount:    5,
	}
}

// Service aggregates system state into snapshots and raises the panic
// signal when critical needs starve. Snapshots are level-triggered: every
// snapshot with a non-empty panic set emits an audit event and notifies
// observers; rate limiting, if desired, belongs in the caller.
type Service struct {
	cfg        Config
	priorities *matching.PriorityManager
	auditSink  audit.Sink
	observers  []audit.Observer
	clock      shared.Clock
}

// NewService creates a dashboard service. The audit sink and observers may
// be nil/empty. The clock parameter is optional - if nil, defaults to
// RealClock.
func NewService(
	cfg Config,
	priorities *matching.PriorityManager,
	auditSink audit.Sink,
	observers []audit.Observer,
	clock shared.Clock,
) *Service {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &Service{
		cfg:        cfg,
		priorities: priorities,
		auditSink:  auditSink,
		observers:  observers,
		clock:      clock,
	}
}

// Snapshot computes a point-in-time aggregation over the given collections.
// Soft-deleted entities are excluded from every aggregate. When the panic
// set is non-empty, a PanicModeTriggered audit event is emitted and every
// observer is notified exactly once.
func (s *Service) Snapshot(
	needs []*need.Need,
	supplies []*supply.Supply,
	shipments []*shipment.Shipment,
) (*Snapshot, error) {
	if needs == nil || supplies == nil || shipments == nil {
		return nil, shared.NewInvalidArgumentError("snapshot collections cannot be nil")
	}

	liveNeeds := filterNeeds(needs)
	liveSupplies := filterSupplies(supplies)
	liveShipments := filterShipments(shipments)

	snapshot := &Snapshot{
		GeneratedAt: s.clock.Now(),
		Needs:       s.needStats(liveNeeds),
		Supplies:    s.supplyStats(liveSupplies),
		Shipments:   s.shipmentStats(liveShipments),
		TopCritical: s.topCritical(liveNeeds),
		Categories:  s.categoryStats(liveNeeds, liveSupplies),
	}

	panicNeeds := s.detectPanic(liveNeeds)
	snapshot.PanicNeeds = panicNeeds
	snapshot.PanicMode = len(panicNeeds) > 0

	if snapshot.PanicMode {
		s.emitPanic(panicNeeds)
		s.notifyObservers(panicNeeds)
	}

	return snapshot, nil
}

func filterNeeds(needs []*need.Need) []*need.Need {
	live := make([]*need.Need, 0, len(needs))
	for _, n := range needs {
		if n != nil && !n.IsDeleted() {
			live = append(live, n)
		}
	}
	return live
}

func filterSupplies(supplies []*supply.Supply) []*supply.Supply {
	live := make([]*supply.Supply, 0, len(supplies))
	for _, sp := range supplies {
		if sp != nil && !sp.IsDeleted() {
			live = append(live, sp)
		}
	}
	return live
}

func filterShipments(shipments []*shipment.Shipment) []*shipment.Shipment {
	live := make([]*shipment.Shipment, 0, len(shipments))
	for _, sh := range shipments {
		if sh != nil && !sh.IsDeleted() {
			live = append(live, sh)
		}
	}
	return live
}

func (s *Service) needStats(needs []*need.Need) NeedStats {
	stats := NeedStats{Total: len(needs)}

	totalRequired := 0
	totalFulfilled := 0
	for _, n := range needs {
		totalRequired += n.QuantityRequired()
		totalFulfilled += n.QuantityFulfilled()

		switch pct := n.FulfillmentPercent(); {
		case pct >= 100:
			stats.Fulfilled++
		case pct > 0:
			stats.PartiallyFulfilled++
		default:
			stats.Unfulfilled++
		}
	}

	if totalRequired > 0 {
		stats.PercentMet = float64(totalFulfilled) / float64(totalRequired) * 100
	}
	return stats
}

func (s *Service) supplyStats(supplies []*supply.Supply) SupplyStats {
	stats := SupplyStats{Total: len(supplies)}
	for _, sp := range supplies {
		allocatable := sp.AllocatableQuantity()
		if allocatable == 0 {
			stats.Depleted++
		} else if sp.IsBelowMinimumStock() {
			stats.LowStock++
		}
	}
	return stats
}

func (s *Service) shipmentStats(shipments []*shipment.Shipment) ShipmentStats {
	stats := ShipmentStats{}
	today := s.clock.Now().UTC()

	for _, sh := range shipments {
		if sh.IsActive() {
			stats.ActiveTotal++
		}

		switch sh.Status() {
		case shipment.StatusPending, shipment.StatusApproved:
			stats.Pending++
		case shipment.StatusInTransit, shipment.StatusAtDistributionCenter, shipment.StatusOutForDelivery:
			stats.InTransit++
		case shipment.StatusDelivered:
			if delivered := sh.ActualDelivery(); delivered != nil {
				dy, dm, dd := delivered.UTC().Date()
				ty, tm, td := today.Date()
				if dy == ty && dm == tm && dd == td {
					stats.DeliveredToday++
				}
			}
		}
	}
	return stats
}

// topCritical ranks needs that are still missing quantity by ascending
// effective score, then by descending hours waited. Partially fulfilled
// needs stay on the list with their remaining quantity; only needs at
// 100% drop out.
func (s *Service) topCritical(needs []*need.Need) []CriticalItem {
	type rankedNeed struct {
		n      *need.Need
		score  float64
		waited float64
	}

	ranked := make([]rankedNeed, 0, len(needs))
	for _, n := range needs {
		if n.IsFulfilled() {
			continue
		}
		ranked = append(ranked, rankedNeed{
			n:      n,
			score:  s.priorities.EffectiveScore(n),
			waited: s.priorities.HoursWaited(n),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score < ranked[j].score
		}
		return ranked[i].waited > ranked[j].waited
	})

	limit := s.cfg.TopCriticalCount
	if limit <= 0 {
		limit = 5
	}
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	items := make([]CriticalItem, 0, len(ranked))
	for _, r := range ranked {
		items = append(items, CriticalItem{
			NeedID:            r.n.ID().Value(),
			Title:             r.n.Title(),
			Category:          r.n.Category(),
			EffectiveScore:    r.score,
			HoursWaited:       r.waited,
			RemainingQuantity: r.n.RemainingQuantity(),
			Unit:              r.n.Unit(),
		})
	}
	return items
}

func (s *Service) categoryStats(needs []*need.Need, supplies []*supply.Supply) CategoryStats {
	requiredByCat := make(map[string]int)
	fulfilledByCat := make(map[string]int)
	for _, n := range needs {
		requiredByCat[n.Category()] += n.QuantityRequired()
		fulfilledByCat[n.Category()] += n.QuantityFulfilled()
	}

	fulfillment := make(map[string]float64, len(requiredByCat))
	for cat, required := range requiredByCat {
		if required > 0 {
			fulfillment[cat] = float64(fulfilledByCat[cat]) / float64(required) * 100
		}
	}

	allocatable := make(map[string]int)
	for _, sp := range supplies {
		allocatable[sp.Category()] += sp.AllocatableQuantity()
	}

	return CategoryStats{
		FulfillmentPercent: fulfillment,
		AllocatableByCat:   allocatable,
	}
}

// detectPanic returns the starving critical needs, sorted by how far past
// the threshold each has waited
func (s *Service) detectPanic(needs []*need.Need) []audit.PanicAlert {
	threshold := s.cfg.PanicThresholdHours

	type candidate struct {
		alert   audit.PanicAlert
		overdue float64
	}

	var candidates []candidate
	for _, n := range needs {
		if n.IsFulfilled() {
			continue
		}
		if s.priorities.EffectiveLevel(n) != shared.PriorityCritical {
			continue
		}

		waited := s.priorities.HoursWaited(n)
		if waited < threshold {
			continue
		}
		if n.FulfillmentPercent() > 0 && waited <= 2*threshold {
			continue
		}

		candidates = append(candidates, candidate{
			alert: audit.PanicAlert{
				NeedID:             n.ID().Value(),
				Title:              n.Title(),
				Category:           n.Category(),
				HoursWaited:        waited,
				FulfillmentPercent: n.FulfillmentPercent(),
			},
			overdue: waited - threshold,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].overdue > candidates[j].overdue
	})

	alerts := make([]audit.PanicAlert, 0, len(candidates))
	for _, c := range candidates {
		alerts = append(alerts, c.alert)
	}
	return alerts
}

func (s *Service) emitPanic(panicNeeds []audit.PanicAlert) {
	if s.auditSink == nil {
		return
	}

	entry, err := audit.NewEntry(audit.EventPanicModeTriggered,
		fmt.Sprintf("%d critical needs starving past the %.1fh threshold", len(panicNeeds), s.cfg.PanicThresholdHours),
		s.clock.Now(),
		map[string]interface{}{
			"panicNeedCount": len(panicNeeds),
			"worstNeedId":    panicNeeds[0].NeedID,
		})
	if err == nil {
		s.auditSink.Append(entry.WithPriority(shared.PriorityCritical.String()))
	}
}

// notifyObservers invokes each observer exactly once. A panicking observer
// must not corrupt the snapshot path: the panic is caught and reported to
// the audit sink as a SystemAlert.
func (s *Service) notifyObservers(panicNeeds []audit.PanicAlert) {
	for _, observer := range s.observers {
		s.notifyOne(observer, panicNeeds)
	}
}

func (s *Service) notifyOne(observer audit.Observer, panicNeeds []audit.PanicAlert) {
	defer func() {
		if r := recover(); r != nil && s.auditSink != nil {
			entry, err := audit.NewEntry(audit.EventSystemAlert,
				fmt.Sprintf("panic observer failed: %v", r),
				s.clock.Now(), nil)
			if err == nil {
				s.auditSink.Append(entry)
			}
		}
	}()
	observer.OnPanicModeTriggered(panicNeeds)
}
