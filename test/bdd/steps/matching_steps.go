package steps

import (
	"context"
	"fmt"
	"time"

	"github.com/cucumber/godog"

	auditlog "github.com/reliefops/logistics-go/internal/adapters/audit"
	"github.com/reliefops/logistics-go/internal/domain/audit"
	"github.com/reliefops/logistics-go/internal/domain/matching"
	"github.com/reliefops/logistics-go/internal/domain/need"
	"github.com/reliefops/logistics-go/internal/domain/shared"
	"github.com/reliefops/logistics-go/internal/domain/supply"
)

type matchingContext struct {
	clock    *shared.MockClock
	cfg      matching.Config
	needs    []*need.Need
	supplies []*supply.Supply

	needsByTitle   map[string]*need.Need
	suppliesByName map[string]*supply.Supply
	initialStock   map[string]int

	sink   *auditlog.MemoryLog
	result *matching.MatchingResult
	err    error
}

func (ctx *matchingContext) reset() {
	ctx.clock = shared.NewMockClock(time.Date(2026, 8, 24, 8, 0, 0, 0, time.UTC))
	ctx.cfg = matching.DefaultConfig()
	ctx.needs = nil
	ctx.supplies = nil
	ctx.needsByTitle = make(map[string]*need.Need)
	ctx.suppliesByName = make(map[string]*supply.Supply)
	ctx.initialStock = make(map[string]int)
	ctx.sink = auditlog.NewMemoryLog(auditlog.WithClock(ctx.clock))
	ctx.result = nil
	ctx.err = nil
}

// Given steps

func (ctx *matchingContext) aNeedTitledForUnitsOf(priority, title string, quantity int, category string) error {
	level := shared.ParsePriorityLevel(priority)

	n, err := need.NewNeed(title, category, level, quantity, "units",
		shared.NewLocation(40.4, -3.7, "", "Madrid", ""), ctx.clock)
	if err != nil {
		return err
	}

	ctx.needs = append(ctx.needs, n)
	ctx.needsByTitle[title] = n
	return nil
}

func (ctx *matchingContext) aSupplyOfUnitsOf(name string, quantity int, category string) error {
	s, err := supply.NewSupply(name, category, quantity, "units",
		shared.NewLocation(40.5, -3.6, "", "Madrid", ""), ctx.clock)
	if err != nil {
		return err
	}

	ctx.supplies = append(ctx.supplies, s)
	ctx.suppliesByName[name] = s
	ctx.initialStock[name] = quantity
	return nil
}

func (ctx *matchingContext) theSupplyExpiredYesterday(name string) error {
	s := ctx.suppliesByName[name]
	if s == nil {
		return fmt.Errorf("supply %q not found in context", name)
	}

	expired := ctx.clock.Now().Add(-24 * time.Hour)
	s.SetExpirationDate(&expired)
	return nil
}

func (ctx *matchingContext) partialFulfillmentIsDisabled() error {
	ctx.cfg.AllowPartialFulfillment = false
	return nil
}

// When steps

func (ctx *matchingContext) aMatchingPassRuns() error {
	priorities := matching.NewPriorityManager(matching.DefaultAgingConfig(), ctx.clock)
	engine := matching.NewEngine(ctx.cfg, priorities, ctx.sink, ctx.clock)

	ctx.result, ctx.err = engine.Match(ctx.needs, ctx.supplies)
	return nil
}

// Then steps

func (ctx *matchingContext) thePassShouldCommit() error {
	if ctx.err != nil {
		return fmt.Errorf("expected the pass to commit, got error: %w", ctx.err)
	}
	if ctx.result == nil || !ctx.result.Success {
		return fmt.Errorf("expected the pass to commit, but it rolled back")
	}
	return nil
}

func (ctx *matchingContext) theNeedShouldBeFullyFulfilled(title string) error {
	n := ctx.needsByTitle[title]
	if n == nil {
		return fmt.Errorf("need %q not found in context", title)
	}
	if !n.IsFulfilled() {
		return fmt.Errorf("need %q has %d of %d units fulfilled",
			title, n.QuantityFulfilled(), n.QuantityRequired())
	}
	return nil
}

func (ctx *matchingContext) theNeedShouldHaveUnitsFulfilled(title string, expected int) error {
	n := ctx.needsByTitle[title]
	if n == nil {
		return fmt.Errorf("need %q not found in context", title)
	}
	if n.QuantityFulfilled() != expected {
		return fmt.Errorf("need %q has %d units fulfilled, expected %d",
			title, n.QuantityFulfilled(), expected)
	}
	return nil
}

func (ctx *matchingContext) theSupplyShouldHaveUnitsLeft(name string, expected int) error {
	s := ctx.suppliesByName[name]
	if s == nil {
		return fmt.Errorf("supply %q not found in context", name)
	}
	if s.QuantityAvailable() != expected {
		return fmt.Errorf("supply %q has %d units left, expected %d",
			name, s.QuantityAvailable(), expected)
	}
	return nil
}

func (ctx *matchingContext) theSupplyShouldBeUntouched(name string) error {
	s := ctx.suppliesByName[name]
	if s == nil {
		return fmt.Errorf("supply %q not found in context", name)
	}
	if s.QuantityAvailable() != ctx.initialStock[name] {
		return fmt.Errorf("supply %q has %d units, expected the initial %d",
			name, s.QuantityAvailable(), ctx.initialStock[name])
	}
	if s.QuantityReserved() != 0 {
		return fmt.Errorf("supply %q still holds a reservation of %d units",
			name, s.QuantityReserved())
	}
	return nil
}

func (ctx *matchingContext) anAuditEventShouldBeRecorded(eventType string) error {
	et := audit.EventType(eventType)
	if !et.IsValid() {
		return fmt.Errorf("unknown event type %q", eventType)
	}
	if len(ctx.sink.ByType(et)) == 0 {
		return fmt.Errorf("no %q audit event recorded", eventType)
	}
	return nil
}

// InitializeMatchingScenario registers the matching feature steps
func InitializeMatchingScenario(sc *godog.ScenarioContext) {
	mCtx := &matchingContext{}

	sc.Before(func(ctx context.Context, s *godog.Scenario) (context.Context, error) {
		mCtx.reset()
		return ctx, nil
	})

	// Given steps
	sc.Step(`^a "([^"]*)" need titled "([^"]*)" for (\d+) units of "([^"]*)"$`, mCtx.aNeedTitledForUnitsOf)
	sc.Step(`^a supply "([^"]*)" of (\d+) units of "([^"]*)"$`, mCtx.aSupplyOfUnitsOf)
	sc.Step(`^the supply "([^"]*)" expired yesterday$`, mCtx.theSupplyExpiredYesterday)
	sc.Step(`^partial fulfillment is disabled$`, mCtx.partialFulfillmentIsDisabled)

	// When steps
	sc.Step(`^a matching pass runs$`, mCtx.aMatchingPassRuns)

	// Then steps
	sc.Step(`^the pass should commit$`, mCtx.thePassShouldCommit)
	sc.Step(`^the need titled "([^"]*)" should be fully fulfilled$`, mCtx.theNeedShouldBeFullyFulfilled)
	sc.Step(`^the need titled "([^"]*)" should have (\d+) units fulfilled$`, mCtx.theNeedShouldHaveUnitsFulfilled)
	sc.Step(`^the supply "([^"]*)" should have (\d+) units left$`, mCtx.theSupplyShouldHaveUnitsLeft)
	sc.Step(`^the supply "([^"]*)" should be untouched$`, mCtx.theSupplyShouldBeUntouched)
	sc.Step(`^a "([^"]*)" audit event should be recorded$`, mCtx.anAuditEventShouldBeRecorded)
}
