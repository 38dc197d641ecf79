package steps

import (
	"context"
	"fmt"
	"time"

	"github.com/cucumber/godog"

	auditlog "github.com/reliefops/logistics-go/internal/adapters/audit"
	"github.com/reliefops/logistics-go/internal/application/dashboard"
	"github.com/reliefops/logistics-go/internal/domain/audit"
	"github.com/reliefops/logistics-go/internal/domain/matching"
	"github.com/reliefops/logistics-go/internal/domain/need"
	"github.com/reliefops/logistics-go/internal/domain/shared"
	"github.com/reliefops/logistics-go/internal/domain/shipment"
	"github.com/reliefops/logistics-go/internal/domain/supply"
)

type panicContext struct {
	clock    *shared.MockClock
	needs    []*need.Need
	sink     *auditlog.MemoryLog
	snapshot *dashboard.Snapshot
}

func (ctx *panicContext) reset() {
	ctx.clock = shared.NewMockClock(time.Date(2026, 8, 24, 8, 0, 0, 0, time.UTC))
	ctx.needs = nil
	ctx.sink = auditlog.NewMemoryLog(auditlog.WithClock(ctx.clock))
	ctx.snapshot = nil
}

// Given steps

func (ctx *panicContext) aCriticalNeedRegisteredMinutesAgo(title string, minutes int) error {
	now := ctx.clock.Now()
	ctx.clock.SetTime(now.Add(-time.Duration(minutes) * time.Minute))
	n, err := need.NewNeed(title, "medical", shared.PriorityCritical, 100, "units",
		shared.NewLocation(0, 0, "", "", ""), ctx.clock)
	ctx.clock.SetTime(now)
	if err != nil {
		return err
	}

	ctx.needs = append(ctx.needs, n)
	return nil
}

func (ctx *panicContext) theNeedIsPercentFulfilled(percent int) error {
	if len(ctx.needs) == 0 {
		return fmt.Errorf("no need in context")
	}
	n := ctx.needs[len(ctx.needs)-1]

	// Needs in these scenarios require 100 units, so percent maps
	// directly to units.
	if !n.AddFulfilledQuantity(percent) {
		return fmt.Errorf("could not fulfill %d units of %q", percent, n.Title())
	}
	return nil
}

// When steps

func (ctx *panicContext) aDashboardSnapshotIsTaken() error {
	priorities := matching.NewPriorityManager(matching.DefaultAgingConfig(), ctx.clock)
	service := dashboard.NewService(dashboard.DefaultConfig(), priorities, ctx.sink, nil, ctx.clock)

	snapshot, err := service.Snapshot(ctx.needs, []*supply.Supply{}, []*shipment.Shipment{})
	if err != nil {
		return err
	}
	ctx.snapshot = snapshot
	return nil
}

// Then steps

func (ctx *panicContext) panicModeShouldBeActive() error {
	if ctx.snapshot == nil {
		return fmt.Errorf("no snapshot was taken")
	}
	if !ctx.snapshot.PanicMode {
		return fmt.Errorf("panic mode is not active")
	}
	return nil
}

func (ctx *panicContext) panicModeShouldNotBeActive() error {
	if ctx.snapshot == nil {
		return fmt.Errorf("no snapshot was taken")
	}
	if ctx.snapshot.PanicMode {
		return fmt.Errorf("panic mode is active with %d alerts", len(ctx.snapshot.PanicNeeds))
	}
	return nil
}

func (ctx *panicContext) aPanicAlertShouldName(title string) error {
	if ctx.snapshot == nil {
		return fmt.Errorf("no snapshot was taken")
	}
	for _, alert := range ctx.snapshot.PanicNeeds {
		if alert.Title == title {
			return nil
		}
	}
	return fmt.Errorf("no panic alert names %q", title)
}

func (ctx *panicContext) anAuditEventShouldBeEmitted(eventType string) error {
	et := audit.EventType(eventType)
	if !et.IsValid() {
		return fmt.Errorf("unknown event type %q", eventType)
	}
	if len(ctx.sink.ByType(et)) == 0 {
		return fmt.Errorf("no %q audit event emitted", eventType)
	}
	return nil
}

// InitializePanicScenario registers the panic detection feature steps
func InitializePanicScenario(sc *godog.ScenarioContext) {
	pdCtx := &panicContext{}

	sc.Before(func(ctx context.Context, s *godog.Scenario) (context.Context, error) {
		pdCtx.reset()
		return ctx, nil
	})

	// Given steps
	sc.Step(`^a critical need "([^"]*)" registered (\d+) minutes ago$`, pdCtx.aCriticalNeedRegisteredMinutesAgo)
	sc.Step(`^the need is (\d+) percent fulfilled$`, pdCtx.theNeedIsPercentFulfilled)

	// When steps
	sc.Step(`^a dashboard snapshot is taken$`, pdCtx.aDashboardSnapshotIsTaken)

	// Then steps
	sc.Step(`^panic mode should be active$`, pdCtx.panicModeShouldBeActive)
	sc.Step(`^panic mode should not be active$`, pdCtx.panicModeShouldNotBeActive)
	sc.Step(`^a panic alert should name "([^"]*)"$`, pdCtx.aPanicAlertShouldName)
	sc.Step(`^a "([^"]*)" audit event should be emitted$`, pdCtx.anAuditEventShouldBeEmitted)
}
