package steps

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/cucumber/godog"

	"github.com/reliefops/logistics-go/internal/domain/matching"
	"github.com/reliefops/logistics-go/internal/domain/need"
	"github.com/reliefops/logistics-go/internal/domain/shared"
)

type priorityContext struct {
	clock  *shared.MockClock
	aging  matching.AgingConfig
	need   *need.Need
	level  shared.PriorityLevel
	score  float64
	scored bool
}

func (ctx *priorityContext) reset() {
	ctx.clock = shared.NewMockClock(time.Date(2026, 8, 24, 8, 0, 0, 0, time.UTC))
	ctx.aging = matching.DefaultAgingConfig()
	ctx.need = nil
	ctx.scored = false
}

// Given steps

func (ctx *priorityContext) standardAgingThresholds() error {
	ctx.aging = matching.DefaultAgingConfig()
	return nil
}

func (ctx *priorityContext) theEmergencyAgingPreset() error {
	ctx.aging = matching.EmergencyAgingConfig()
	return nil
}

func (ctx *priorityContext) aPriorityRequestRegisteredHoursAgo(priority string, hours int) error {
	level := shared.ParsePriorityLevel(priority)

	// Rewind the clock so the request's creation time lands in the past,
	// then restore it for the scoring step.
	now := ctx.clock.Now()
	ctx.clock.SetTime(now.Add(-time.Duration(hours) * time.Hour))
	n, err := need.NewNeed("aging request", "water", level, 100, "units",
		shared.NewLocation(0, 0, "", "", ""), ctx.clock)
	ctx.clock.SetTime(now)
	if err != nil {
		return err
	}

	ctx.need = n
	return nil
}

func (ctx *priorityContext) theRequestHasADeadlineHoursFromNow(hours int) error {
	if ctx.need == nil {
		return fmt.Errorf("no request in context")
	}
	deadline := ctx.clock.Now().Add(time.Duration(hours) * time.Hour)
	ctx.need.SetDeadline(&deadline)
	return nil
}

func (ctx *priorityContext) theRequestDeadlineHasAlreadyPassed() error {
	if ctx.need == nil {
		return fmt.Errorf("no request in context")
	}
	deadline := ctx.clock.Now().Add(-time.Hour)
	ctx.need.SetDeadline(&deadline)
	return nil
}

// When steps

func (ctx *priorityContext) theEffectivePriorityIsComputed() error {
	if ctx.need == nil {
		return fmt.Errorf("no request in context")
	}
	manager := matching.NewPriorityManager(ctx.aging, ctx.clock)
	ctx.level = manager.EffectiveLevel(ctx.need)
	ctx.score = manager.EffectiveScore(ctx.need)
	ctx.scored = true
	return nil
}

// Then steps

func (ctx *priorityContext) theEffectiveLevelShouldBe(expected string) error {
	if !ctx.scored {
		return fmt.Errorf("effective priority was never computed")
	}
	level := shared.ParsePriorityLevel(expected)
	if ctx.level != level {
		return fmt.Errorf("effective level is %s, expected %s (score %.3f)",
			ctx.level, level, ctx.score)
	}
	return nil
}

func (ctx *priorityContext) theEffectiveScoreShouldBe(expected string) error {
	if !ctx.scored {
		return fmt.Errorf("effective priority was never computed")
	}
	want, err := strconv.ParseFloat(expected, 64)
	if err != nil {
		return err
	}
	if math.Abs(ctx.score-want) > 1e-9 {
		return fmt.Errorf("effective score is %.6f, expected %.6f", ctx.score, want)
	}
	return nil
}

// InitializePriorityScenario registers the priority aging feature steps
func InitializePriorityScenario(sc *godog.ScenarioContext) {
	pCtx := &priorityContext{}

	sc.Before(func(ctx context.Context, s *godog.Scenario) (context.Context, error) {
		pCtx.reset()
		return ctx, nil
	})

	// Given steps
	sc.Step(`^standard aging thresholds$`, pCtx.standardAgingThresholds)
	sc.Step(`^the emergency aging preset$`, pCtx.theEmergencyAgingPreset)
	sc.Step(`^a "([^"]*)" priority request registered (\d+) hours ago$`, pCtx.aPriorityRequestRegisteredHoursAgo)
	sc.Step(`^the request has a deadline (\d+) hours from now$`, pCtx.theRequestHasADeadlineHoursFromNow)
	sc.Step(`^the request deadline has already passed$`, pCtx.theRequestDeadlineHasAlreadyPassed)

	// When steps
	sc.Step(`^the effective priority is computed$`, pCtx.theEffectivePriorityIsComputed)

	// Then steps
	sc.Step(`^the effective level should be "([^"]*)"$`, pCtx.theEffectiveLevelShouldBe)
	sc.Step(`^the effective score should be (\d+(?:\.\d+)?)$`, pCtx.theEffectiveScoreShouldBe)
}
