package coordinator

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/reliefops/logistics-go/internal/application/common"
)

// RunMatchingLoopCommand runs matching cycles continuously until the
// context is cancelled
type RunMatchingLoopCommand struct {
	// CycleInterval is the minimum spacing between passes
	CycleInterval time.Duration

	// MaxCycles stops the loop after this many passes; 0 means unbounded
	MaxCycles int
}

// RunMatchingLoopResponse reports how many cycles ran before the loop ended
type RunMatchingLoopResponse struct {
	CyclesRun int
}

// RunMatchingLoopHandler paces matching cycles with a rate limiter and
// dispatches each pass through the mediator. The matching pass itself is
// synchronous; the limiter keeps a quiet system from spinning.
type RunMatchingLoopHandler struct {
	mediator common.Mediator
}

// NewRunMatchingLoopHandler creates a new matching loop handler
func NewRunMatchingLoopHandler(mediator common.Mediator) *RunMatchingLoopHandler {
	return &RunMatchingLoopHandler{mediator: mediator}
}

// Handle executes the matching loop command
func (h *RunMatchingLoopHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*RunMatchingLoopCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}

	interval := cmd.CycleInterval
	if interval <= 0 {
		interval = 30 * time.Second
	}

	logger := common.LoggerFromContext(ctx)
	limiter := rate.NewLimiter(rate.Every(interval), 1)

	cycles := 0
	for {
		if err := limiter.Wait(ctx); err != nil {
			// Context cancelled: a graceful stop, not a failure
			return &RunMatchingLoopResponse{CyclesRun: cycles}, nil
		}

		if _, err := h.mediator.Send(ctx, &RunMatchingCycleCommand{}); err != nil {
			logger.Log("ERROR", "matching cycle failed", map[string]interface{}{
				"error": err.Error(),
				"cycle": cycles + 1,
			})
		}
		cycles++

		if cmd.MaxCycles > 0 && cycles >= cmd.MaxCycles {
			return &RunMatchingLoopResponse{CyclesRun: cycles}, nil
		}
	}
}
