package coordinator

import (
	"context"
	"fmt"
	"time"

	"github.com/reliefops/logistics-go/internal/application/common"
	"github.com/reliefops/logistics-go/internal/domain/audit"
	"github.com/reliefops/logistics-go/internal/domain/need"
	"github.com/reliefops/logistics-go/internal/domain/shared"
	"github.com/reliefops/logistics-go/internal/domain/supply"
)

// RegisterNeedCommand records a new relief need
type RegisterNeedCommand struct {
	Title       string
	Description string
	Category    string
	Priority    shared.PriorityLevel
	Quantity    int
	Unit        string
	Location    shared.Location
	RequestedBy string
	ContactInfo string
	Deadline    *time.Time
}

// RegisterNeedResponse carries the new need
type RegisterNeedResponse struct {
	Need *need.Need
}

// RegisterNeedHandler validates and persists new needs
type RegisterNeedHandler struct {
	needRepo  need.Repository
	auditSink audit.Sink
	clock     shared.Clock
}

// NewRegisterNeedHandler creates a new need registration handler.
// The clock parameter is optional - if nil, defaults to RealClock.
func NewRegisterNeedHandler(needRepo need.Repository, auditSink audit.Sink, clock shared.Clock) *RegisterNeedHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &RegisterNeedHandler{needRepo: needRepo, auditSink: auditSink, clock: clock}
}

// Handle executes the register need command
func (h *RegisterNeedHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*RegisterNeedCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}

	n, err := need.NewNeed(cmd.Title, cmd.Category, cmd.Priority, cmd.Quantity, cmd.Unit, cmd.Location, h.clock)
	if err != nil {
		return nil, err
	}
	if cmd.Description != "" {
		n.SetDescription(cmd.Description)
	}
	if cmd.RequestedBy != "" || cmd.ContactInfo != "" {
		n.SetRequester(cmd.RequestedBy, cmd.ContactInfo)
	}
	if cmd.Deadline != nil {
		n.SetDeadline(cmd.Deadline)
	}

	if err := h.needRepo.Save(ctx, n); err != nil {
		return nil, fmt.Errorf("failed to save need: %w", err)
	}

	if h.auditSink != nil {
		entry, err := audit.NewEntry(audit.EventNeedCreated,
			fmt.Sprintf("need %q registered (%d %s, %s)", n.Title(), n.QuantityRequired(), n.Unit(), n.Priority()),
			h.clock.Now(), map[string]interface{}{
				"category": n.Category(),
				"quantity": n.QuantityRequired(),
			})
		if err == nil {
			h.auditSink.Append(entry.WithEntity(n.ID().Value(), "need").WithPriority(n.Priority().String()))
		}
	}

	return &RegisterNeedResponse{Need: n}, nil
}

// RegisterSupplyCommand records a new supply lot
type RegisterSupplyCommand struct {
	Name           string
	Category       string
	Quantity       int
	Unit           string
	Location       shared.Location
	Supplier       string
	ExpirationDate *time.Time
	MinimumStock   int
}

// RegisterSupplyResponse carries the new supply
type RegisterSupplyResponse struct {
	Supply *supply.Supply
}

// RegisterSupplyHandler validates and persists new supplies
type RegisterSupplyHandler struct {
	supplyRepo supply.Repository
	auditSink  audit.Sink
	clock      shared.Clock
}

// NewRegisterSupplyHandler creates a new supply registration handler.
// The clock parameter is optional - if nil, defaults to RealClock.
func NewRegisterSupplyHandler(supplyRepo supply.Repository, auditSink audit.Sink, clock shared.Clock) *RegisterSupplyHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &RegisterSupplyHandler{supplyRepo: supplyRepo, auditSink: auditSink, clock: clock}
}

// Handle executes the register supply command
func (h *RegisterSupplyHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*RegisterSupplyCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}

	s, err := supply.NewSupply(cmd.Name, cmd.Category, cmd.Quantity, cmd.Unit, cmd.Location, h.clock)
	if err != nil {
		return nil, err
	}
	if cmd.Supplier != "" {
		s.SetSupplier(cmd.Supplier)
	}
	if cmd.ExpirationDate != nil {
		s.SetExpirationDate(cmd.ExpirationDate)
	}
	if cmd.MinimumStock > 0 {
		s.SetMinimumStock(cmd.MinimumStock)
	}

	if err := h.supplyRepo.Save(ctx, s); err != nil {
		return nil, fmt.Errorf("failed to save supply: %w", err)
	}

	if h.auditSink != nil {
		entry, err := audit.NewEntry(audit.EventSupplyCreated,
			fmt.Sprintf("supply %q registered (%d %s)", s.Name(), s.QuantityAvailable(), s.Unit()),
			h.clock.Now(), map[string]interface{}{
				"category": s.Category(),
				"quantity": s.QuantityAvailable(),
			})
		if err == nil {
			h.auditSink.Append(entry.WithEntity(s.ID().Value(), "supply"))
		}
	}

	return &RegisterSupplyResponse{Supply: s}, nil
}

// ResupplyCommand restocks an existing supply and clears its reservations
type ResupplyCommand struct {
	SupplyID string
	Quantity int
}

// ResupplyResponse carries the supply after restocking
type ResupplyResponse struct {
	Supply *supply.Supply
}

// ResupplyHandler applies restocks to stored supplies
type ResupplyHandler struct {
	supplyRepo supply.Repository
	auditSink  audit.Sink
	clock      shared.Clock
}

// NewResupplyHandler creates a new resupply handler.
// The clock parameter is optional - if nil, defaults to RealClock.
func NewResupplyHandler(supplyRepo supply.Repository, auditSink audit.Sink, clock shared.Clock) *ResupplyHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &ResupplyHandler{supplyRepo: supplyRepo, auditSink: auditSink, clock: clock}
}

// Handle executes the resupply command
func (h *ResupplyHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*ResupplyCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}

	id, err := shared.NewEntityIDFromString(cmd.SupplyID)
	if err != nil {
		return nil, fmt.Errorf("invalid supply id: %w", err)
	}

	s, err := h.supplyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !s.Resupply(cmd.Quantity) {
		return nil, shared.NewInvalidArgumentError(fmt.Sprintf("resupply quantity must be positive, got %d", cmd.Quantity))
	}

	if err := h.supplyRepo.Save(ctx, s); err != nil {
		return nil, fmt.Errorf("failed to save supply: %w", err)
	}

	if h.auditSink != nil {
		entry, err := audit.NewEntry(audit.EventSupplyUpdated,
			fmt.Sprintf("supply %q restocked by %d %s", s.Name(), cmd.Quantity, s.Unit()),
			h.clock.Now(), map[string]interface{}{
				"added":     cmd.Quantity,
				"available": s.QuantityAvailable(),
			})
		if err == nil {
			h.auditSink.Append(entry.WithEntity(s.ID().Value(), "supply"))
		}
	}

	return &ResupplyResponse{Supply: s}, nil
}
