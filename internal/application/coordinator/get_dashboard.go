package coordinator

import (
	"context"
	"fmt"

	"github.com/reliefops/logistics-go/internal/application/common"
	"github.com/reliefops/logistics-go/internal/application/dashboard"
	"github.com/reliefops/logistics-go/internal/domain/need"
	"github.com/reliefops/logistics-go/internal/domain/shipment"
	"github.com/reliefops/logistics-go/internal/domain/supply"
)

// GetDashboardQuery requests a fresh system snapshot
type GetDashboardQuery struct{}

// GetDashboardResponse carries the snapshot
type GetDashboardResponse struct {
	Snapshot *dashboard.Snapshot
}

// GetDashboardHandler loads the stored collections and aggregates them into
// a snapshot, raising the panic signal when critical needs starve.
type GetDashboardHandler struct {
	needRepo     need.Repository
	supplyRepo   supply.Repository
	shipmentRepo shipment.Repository
	service      *dashboard.Service
}

// NewGetDashboardHandler creates a new dashboard query handler
func NewGetDashboardHandler(
	needRepo need.Repository,
	supplyRepo supply.Repository,
	shipmentRepo shipment.Repository,
	service *dashboard.Service,
) *GetDashboardHandler {
	return &GetDashboardHandler{
		needRepo:     needRepo,
		supplyRepo:   supplyRepo,
		shipmentRepo: shipmentRepo,
		service:      service,
	}
}

// Handle executes the dashboard query
func (h *GetDashboardHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	if _, ok := request.(*GetDashboardQuery); !ok {
		return nil, fmt.Errorf("invalid request type")
	}

	needs, err := h.needRepo.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load needs: %w", err)
	}
	supplies, err := h.supplyRepo.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load supplies: %w", err)
	}
	shipments, err := h.shipmentRepo.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load shipments: %w", err)
	}

	snapshot, err := h.service.Snapshot(needs, supplies, shipments)
	if err != nil {
		return nil, err
	}

	return &GetDashboardResponse{Snapshot: snapshot}, nil
}
