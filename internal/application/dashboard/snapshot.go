package dashboard

import (
	"time"

	"github.com/reliefops/logistics-go/internal/domain/audit"
)

// NeedStats aggregates need counts for a snapshot
type NeedStats struct {
	Total              int
	Fulfilled          int
	PartiallyFulfilled int
	Unfulfilled        int
	PercentMet         float64
}

// SupplyStats aggregates supply counts for a snapshot
type SupplyStats struct {
	Total    int
	Depleted int
	LowStock int
}

// ShipmentStats aggregates shipment counts for a snapshot
type ShipmentStats struct {
	ActiveTotal    int
	Pending        int
	InTransit      int
	DeliveredToday int
}

// CriticalItem is one entry of the top-N critical missing items list
type CriticalItem struct {
	NeedID            string
	Title             string
	Category          string
	EffectiveScore    float64
	HoursWaited       float64
	RemainingQuantity int
	Unit              string
}

// CategoryStats carries per-category aggregates
type CategoryStats struct {
	FulfillmentPercent map[string]float64
	AllocatableByCat   map[string]int
}

// Snapshot is a point-in-time aggregation of system state. Snapshots are
// stateless: a second snapshot over the same inputs reports (and re-emits)
// the same panic condition.
type Snapshot struct {
	GeneratedAt time.Time
	Needs       NeedStats
	Supplies    SupplyStats
	Shipments   ShipmentStats
	TopCritical []CriticalItem
	Categories  CategoryStats
	PanicMode   bool
	PanicNeeds  []audit.PanicAlert
}
