package dashboard_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	auditlog "github.com/reliefops/logistics-go/internal/adapters/audit"
	"github.com/reliefops/logistics-go/internal/application/dashboard"
	"github.com/reliefops/logistics-go/internal/domain/audit"
	"github.com/reliefops/logistics-go/internal/domain/matching"
	"github.com/reliefops/logistics-go/internal/domain/need"
	"github.com/reliefops/logistics-go/internal/domain/shared"
	"github.com/reliefops/logistics-go/internal/domain/shipment"
	"github.com/reliefops/logistics-go/internal/domain/supply"
)

type recordingObserver struct {
	panicCalls [][]audit.PanicAlert
	entries    []*audit.Entry
	panicNow   bool
}

func (o *recordingObserver) OnLogAdded(entry *audit.Entry) {
	o.entries = append(o.entries, entry)
}

func (o *recordingObserver) OnPanicModeTriggered(alerts []audit.PanicAlert) {
	if o.panicNow {
		panic("observer blew up")
	}
	o.panicCalls = append(o.panicCalls, alerts)
}

func newService(clock shared.Clock, sink audit.Sink, observers ...audit.Observer) *dashboard.Service {
	pm := matching.NewPriorityManager(matching.DefaultAgingConfig(), clock)
	return dashboard.NewService(dashboard.DefaultConfig(), pm, sink, observers, clock)
}

func mkNeed(t *testing.T, title string, priority shared.PriorityLevel, quantity int, clock shared.Clock) *need.Need {
	t.Helper()
	n, err := need.NewNeed(title, "water", priority, quantity, "liters",
		shared.NewLocation(40.4, -3.7, "", "Madrid", ""), clock)
	require.NoError(t, err)
	return n
}

func mkSupply(t *testing.T, name string, quantity int, clock shared.Clock) *supply.Supply {
	t.Helper()
	s, err := supply.NewSupply(name, "water", quantity, "liters",
		shared.NewLocation(40.5, -3.6, "", "Madrid", ""), clock)
	require.NoError(t, err)
	return s
}

func TestSnapshot_NilCollectionsAreErrors(t *testing.T) {
	svc := newService(nil, nil)

	_, err := svc.Snapshot(nil, []*supply.Supply{}, []*shipment.Shipment{})
	assert.Error(t, err)

	_, err = svc.Snapshot([]*need.Need{}, nil, []*shipment.Shipment{})
	assert.Error(t, err)

	_, err = svc.Snapshot([]*need.Need{}, []*supply.Supply{}, nil)
	assert.Error(t, err)
}

func TestSnapshot_NeedAndSupplyStats(t *testing.T) {
	clock := shared.NewMockClock(time.Date(2026, 8, 24, 8, 0, 0, 0, time.UTC))
	svc := newService(clock, nil)

	full := mkNeed(t, "full", shared.PriorityHigh, 100, clock)
	require.True(t, full.AddFulfilledQuantity(100))
	partial := mkNeed(t, "partial", shared.PriorityHigh, 100, clock)
	require.True(t, partial.AddFulfilledQuantity(25))
	open := mkNeed(t, "open", shared.PriorityHigh, 100, clock)
	deleted := mkNeed(t, "deleted", shared.PriorityHigh, 100, clock)
	deleted.MarkAsDeleted()

	stocked := mkSupply(t, "stocked", 100, clock)
	depleted := mkSupply(t, "depleted", 10, clock)
	require.True(t, depleted.DeductStock(10))
	low := mkSupply(t, "low", 5, clock)
	low.SetMinimumStock(20)

	snap, err := svc.Snapshot(
		[]*need.Need{full, partial, open, deleted},
		[]*supply.Supply{stocked, depleted, low},
		[]*shipment.Shipment{},
	)

	require.NoError(t, err)
	assert.Equal(t, 3, snap.Needs.Total, "deleted needs are excluded")
	assert.Equal(t, 1, snap.Needs.Fulfilled)
	assert.Equal(t, 1, snap.Needs.PartiallyFulfilled)
	assert.Equal(t, 1, snap.Needs.Unfulfilled)
	assert.InDelta(t, 125.0/300.0*100, snap.Needs.PercentMet, 0.001)

	assert.Equal(t, 3, snap.Supplies.Total)
	assert.Equal(t, 1, snap.Supplies.Depleted)
	assert.Equal(t, 1, snap.Supplies.LowStock)
}

func TestSnapshot_ShipmentStats(t *testing.T) {
	clock := shared.NewMockClock(time.Date(2026, 8, 24, 8, 0, 0, 0, time.UTC))
	svc := newService(clock, nil)
	loc := shared.NewLocation(0, 0, "", "", "")

	pending, err := shipment.NewShipment(shared.PriorityHigh, loc, loc, 10, "units", clock)
	require.NoError(t, err)

	moving, err := shipment.NewShipment(shared.PriorityHigh, loc, loc, 10, "units", clock)
	require.NoError(t, err)
	require.True(t, moving.TransitionTo(shipment.StatusApproved))
	require.True(t, moving.TransitionTo(shipment.StatusInTransit))

	deliveredToday, err := shipment.NewShipment(shared.PriorityHigh, loc, loc, 10, "units", clock)
	require.NoError(t, err)
	require.True(t, deliveredToday.TransitionTo(shipment.StatusApproved))
	require.True(t, deliveredToday.TransitionTo(shipment.StatusInTransit))
	require.True(t, deliveredToday.TransitionTo(shipment.StatusDelivered))

	snap, err := svc.Snapshot([]*need.Need{}, []*supply.Supply{},
		[]*shipment.Shipment{pending, moving, deliveredToday})

	require.NoError(t, err)
	assert.Equal(t, 2, snap.Shipments.ActiveTotal)
	assert.Equal(t, 1, snap.Shipments.Pending)
	assert.Equal(t, 1, snap.Shipments.InTransit)
	assert.Equal(t, 1, snap.Shipments.DeliveredToday)
}

func TestSnapshot_TopCriticalRanking(t *testing.T) {
	clock := shared.NewMockClock(time.Date(2026, 8, 24, 8, 0, 0, 0, time.UTC))
	svc := newService(clock, nil)

	urgent := mkNeed(t, "urgent", shared.PriorityCritical, 100, clock)
	mild := mkNeed(t, "mild", shared.PriorityLow, 100, clock)
	done := mkNeed(t, "done", shared.PriorityCritical, 100, clock)
	require.True(t, done.AddFulfilledQuantity(100))

	snap, err := svc.Snapshot([]*need.Need{mild, urgent, done},
		[]*supply.Supply{}, []*shipment.Shipment{})

	require.NoError(t, err)
	require.Len(t, snap.TopCritical, 2, "fulfilled needs never rank")
	assert.Equal(t, "urgent", snap.TopCritical[0].Title)
	assert.Equal(t, "mild", snap.TopCritical[1].Title)
}

func TestSnapshot_TopCriticalKeepsPartiallyFulfilledNeeds(t *testing.T) {
	clock := shared.NewMockClock(time.Date(2026, 8, 24, 8, 0, 0, 0, time.UTC))
	svc := newService(clock, nil)

	partial := mkNeed(t, "half covered", shared.PriorityCritical, 100, clock)
	require.True(t, partial.AddFulfilledQuantity(60))

	snap, err := svc.Snapshot([]*need.Need{partial},
		[]*supply.Supply{}, []*shipment.Shipment{})

	require.NoError(t, err)
	require.Len(t, snap.TopCritical, 1, "a need short of 100% still ranks")
	assert.Equal(t, "half covered", snap.TopCritical[0].Title)
	assert.Equal(t, 40, snap.TopCritical[0].RemainingQuantity)
}

func TestSnapshot_PanicTriggersForStarvingCriticalNeed(t *testing.T) {
	clock := shared.NewMockClock(time.Date(2026, 8, 24, 8, 0, 0, 0, time.UTC))
	sink := auditlog.NewMemoryLog(auditlog.WithClock(clock))
	observer := &recordingObserver{}
	svc := newService(clock, sink, observer)

	starving := mkNeed(t, "starving", shared.PriorityCritical, 100, clock)
	clock.Advance(90 * time.Minute) // past the 1h threshold, 0% fulfilled

	snap, err := svc.Snapshot([]*need.Need{starving}, []*supply.Supply{}, []*shipment.Shipment{})

	require.NoError(t, err)
	assert.True(t, snap.PanicMode)
	require.Len(t, snap.PanicNeeds, 1)
	assert.Equal(t, "starving", snap.PanicNeeds[0].Title)
	assert.InDelta(t, 1.5, snap.PanicNeeds[0].HoursWaited, 0.001)

	require.Len(t, observer.panicCalls, 1, "observer notified exactly once per snapshot")
	assert.Len(t, sink.ByType(audit.EventPanicModeTriggered), 1)
}

func TestSnapshot_NoPanicBeforeThreshold(t *testing.T) {
	clock := shared.NewMockClock(time.Date(2026, 8, 24, 8, 0, 0, 0, time.UTC))
	svc := newService(clock, nil)

	fresh := mkNeed(t, "fresh critical", shared.PriorityCritical, 100, clock)
	clock.Advance(30 * time.Minute)

	snap, err := svc.Snapshot([]*need.Need{fresh}, []*supply.Supply{}, []*shipment.Shipment{})

	require.NoError(t, err)
	assert.False(t, snap.PanicMode)
}

func TestSnapshot_PartialProgressSuppressesPanicUntilDoubleThreshold(t *testing.T) {
	clock := shared.NewMockClock(time.Date(2026, 8, 24, 8, 0, 0, 0, time.UTC))
	svc := newService(clock, nil)

	inProgress := mkNeed(t, "in progress", shared.PriorityCritical, 100, clock)
	require.True(t, inProgress.AddFulfilledQuantity(10))

	// Past the threshold but under 2x: progress buys slack
	clock.Advance(90 * time.Minute)
	snap, err := svc.Snapshot([]*need.Need{inProgress}, []*supply.Supply{}, []*shipment.Shipment{})
	require.NoError(t, err)
	assert.False(t, snap.PanicMode)

	// Past 2x the threshold the slack runs out
	clock.Advance(time.Hour)
	snap, err = svc.Snapshot([]*need.Need{inProgress}, []*supply.Supply{}, []*shipment.Shipment{})
	require.NoError(t, err)
	assert.True(t, snap.PanicMode)
}

func TestSnapshot_PanicReemitsOnEverySnapshot(t *testing.T) {
	clock := shared.NewMockClock(time.Date(2026, 8, 24, 8, 0, 0, 0, time.UTC))
	sink := auditlog.NewMemoryLog(auditlog.WithClock(clock))
	svc := newService(clock, sink)

	starving := mkNeed(t, "starving", shared.PriorityCritical, 100, clock)
	clock.Advance(2 * time.Hour)

	_, err := svc.Snapshot([]*need.Need{starving}, []*supply.Supply{}, []*shipment.Shipment{})
	require.NoError(t, err)
	_, err = svc.Snapshot([]*need.Need{starving}, []*supply.Supply{}, []*shipment.Shipment{})
	require.NoError(t, err)

	// Snapshots are stateless: the same starving need alerts each time
	assert.Len(t, sink.ByType(audit.EventPanicModeTriggered), 2)
}

func TestSnapshot_PanickingObserverDoesNotBreakSnapshot(t *testing.T) {
	clock := shared.NewMockClock(time.Date(2026, 8, 24, 8, 0, 0, 0, time.UTC))
	sink := auditlog.NewMemoryLog(auditlog.WithClock(clock))
	bad := &recordingObserver{panicNow: true}
	good := &recordingObserver{}
	svc := newService(clock, sink, bad, good)

	starving := mkNeed(t, "starving", shared.PriorityCritical, 100, clock)
	clock.Advance(2 * time.Hour)

	snap, err := svc.Snapshot([]*need.Need{starving}, []*supply.Supply{}, []*shipment.Shipment{})

	require.NoError(t, err)
	assert.True(t, snap.PanicMode)
	assert.Len(t, good.panicCalls, 1, "later observers still notified")
	assert.Len(t, sink.ByType(audit.EventSystemAlert), 1, "observer panic reported as alert")
}
