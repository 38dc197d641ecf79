package coordinator

import (
	"context"
	"fmt"

	"github.com/reliefops/logistics-go/internal/application/common"
	"github.com/reliefops/logistics-go/internal/domain/matching"
	"github.com/reliefops/logistics-go/internal/domain/need"
	"github.com/reliefops/logistics-go/internal/domain/supply"
)

// RunMatchingCycleCommand executes one matching pass over the stored needs
// and supplies
type RunMatchingCycleCommand struct {
	// DryRun skips persisting the mutated entities after a successful pass
	DryRun bool
}

// RunMatchingCycleResponse carries the pass outcome
type RunMatchingCycleResponse struct {
	Result *matching.MatchingResult
}

// RunMatchingCycleHandler loads the working set, runs one atomic matching
// pass, and persists the mutated entities when the pass commits.
type RunMatchingCycleHandler struct {
	needRepo   need.Repository
	supplyRepo supply.Repository
	engine     *matching.Engine
}

// NewRunMatchingCycleHandler creates a new matching cycle handler
func NewRunMatchingCycleHandler(
	needRepo need.Repository,
	supplyRepo supply.Repository,
	engine *matching.Engine,
) *RunMatchingCycleHandler {
	return &RunMatchingCycleHandler{
		needRepo:   needRepo,
		supplyRepo: supplyRepo,
		engine:     engine,
	}
}

// Handle executes the matching cycle command
func (h *RunMatchingCycleHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*RunMatchingCycleCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}

	logger := common.LoggerFromContext(ctx)

	needs, err := h.needRepo.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load needs: %w", err)
	}
	supplies, err := h.supplyRepo.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load supplies: %w", err)
	}

	result, err := h.engine.Match(needs, supplies)
	if err != nil {
		return nil, err
	}

	logger.Log("INFO", "matching cycle finished", map[string]interface{}{
		"success":        result.Success,
		"allocations":    len(result.Allocations),
		"totalAllocated": result.TotalAllocatedQuantity(),
	})

	// A rolled-back pass leaves every entity untouched, so there is
	// nothing to persist.
	if !result.Success || cmd.DryRun {
		return &RunMatchingCycleResponse{Result: result}, nil
	}

	if err := h.needRepo.SaveAll(ctx, needs); err != nil {
		return nil, fmt.Errorf("failed to persist needs after pass: %w", err)
	}
	if err := h.supplyRepo.SaveAll(ctx, supplies); err != nil {
		return nil, fmt.Errorf("failed to persist supplies after pass: %w", err)
	}

	return &RunMatchingCycleResponse{Result: result}, nil
}
