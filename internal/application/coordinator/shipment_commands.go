package coordinator

import (
	"context"
	"fmt"

	"github.com/reliefops/logistics-go/internal/application/common"
	"github.com/reliefops/logistics-go/internal/domain/audit"
	"github.com/reliefops/logistics-go/internal/domain/shared"
	"github.com/reliefops/logistics-go/internal/domain/shipment"
)

// CreateShipmentCommand creates a shipment, optionally linked to a need and
// a supply
type CreateShipmentCommand struct {
	Priority    shared.PriorityLevel
	Origin      shared.Location
	Destination shared.Location
	Quantity    int
	Unit        string
	NeedID      string
	SupplyID    string
	Carrier     string
}

// CreateShipmentResponse carries the new shipment
type CreateShipmentResponse struct {
	Shipment *shipment.Shipment
}

// CreateShipmentHandler creates and persists shipments
type CreateShipmentHandler struct {
	shipmentRepo shipment.Repository
	auditSink    audit.Sink
	clock        shared.Clock
}

// NewCreateShipmentHandler creates a new shipment creation handler.
// The clock parameter is optional - if nil, defaults to RealClock.
func NewCreateShipmentHandler(shipmentRepo shipment.Repository, auditSink audit.Sink, clock shared.Clock) *CreateShipmentHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &CreateShipmentHandler{
		shipmentRepo: shipmentRepo,
		auditSink:    auditSink,
		clock:        clock,
	}
}

// Handle executes the create shipment command
func (h *CreateShipmentHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*CreateShipmentCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}

	sh, err := shipment.NewShipment(cmd.Priority, cmd.Origin, cmd.Destination, cmd.Quantity, cmd.Unit, h.clock)
	if err != nil {
		return nil, err
	}

	if cmd.NeedID != "" {
		id, err := shared.NewEntityIDFromString(cmd.NeedID)
		if err != nil {
			return nil, fmt.Errorf("invalid need id: %w", err)
		}
		sh.LinkNeed(id)
	}
	if cmd.SupplyID != "" {
		id, err := shared.NewEntityIDFromString(cmd.SupplyID)
		if err != nil {
			return nil, fmt.Errorf("invalid supply id: %w", err)
		}
		sh.LinkSupply(id)
	}
	if cmd.Carrier != "" {
		sh.SetCarrierDetails(cmd.Carrier, "", "")
	}

	if err := h.shipmentRepo.Save(ctx, sh); err != nil {
		return nil, fmt.Errorf("failed to save shipment: %w", err)
	}

	h.emit(audit.EventShipmentCreated,
		fmt.Sprintf("shipment %s created (%d %s)", sh.TrackingCode(), sh.Quantity(), sh.Unit()), sh)

	return &CreateShipmentResponse{Shipment: sh}, nil
}

func (h *CreateShipmentHandler) emit(eventType audit.EventType, message string, sh *shipment.Shipment) {
	if h.auditSink == nil {
		return
	}
	entry, err := audit.NewEntry(eventType, message, h.clock.Now(), map[string]interface{}{
		"trackingCode": sh.TrackingCode(),
		"status":       string(sh.Status()),
	})
	if err == nil {
		h.auditSink.Append(entry.WithEntity(sh.ID().Value(), "shipment"))
	}
}

// AdvanceShipmentCommand moves a shipment to a new lifecycle status
type AdvanceShipmentCommand struct {
	ShipmentID string
	Target     shipment.Status
}

// AdvanceShipmentResponse carries the shipment after the transition
type AdvanceShipmentResponse struct {
	Shipment *shipment.Shipment
}

// AdvanceShipmentHandler applies lifecycle transitions and emits the
// matching audit events
type AdvanceShipmentHandler struct {
	shipmentRepo shipment.Repository
	auditSink    audit.Sink
	clock        shared.Clock
}

// NewAdvanceShipmentHandler creates a new shipment transition handler.
// The clock parameter is optional - if nil, defaults to RealClock.
func NewAdvanceShipmentHandler(shipmentRepo shipment.Repository, auditSink audit.Sink, clock shared.Clock) *AdvanceShipmentHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &AdvanceShipmentHandler{
		shipmentRepo: shipmentRepo,
		auditSink:    auditSink,
		clock:        clock,
	}
}

// Handle executes the advance shipment command
func (h *AdvanceShipmentHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*AdvanceShipmentCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}

	id, err := shared.NewEntityIDFromString(cmd.ShipmentID)
	if err != nil {
		return nil, fmt.Errorf("invalid shipment id: %w", err)
	}

	sh, err := h.shipmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("shipment not found: %w", err)
	}

	from := sh.Status()
	if !sh.TransitionTo(cmd.Target) {
		return nil, shared.NewInvalidTransitionError(string(from), string(cmd.Target))
	}

	if err := h.shipmentRepo.Save(ctx, sh); err != nil {
		return nil, fmt.Errorf("failed to save shipment: %w", err)
	}

	h.emitTransition(sh, from)
	return &AdvanceShipmentResponse{Shipment: sh}, nil
}

func (h *AdvanceShipmentHandler) emitTransition(sh *shipment.Shipment, from shipment.Status) {
	if h.auditSink == nil {
		return
	}

	var eventType audit.EventType
	switch sh.Status() {
	case shipment.StatusInTransit:
		eventType = audit.EventShipmentDispatched
	case shipment.StatusDelivered:
		eventType = audit.EventShipmentDelivered
	case shipment.StatusCancelled:
		eventType = audit.EventShipmentCancelled
	default:
		eventType = audit.EventUserAction
	}

	entry, err := audit.NewEntry(eventType,
		fmt.Sprintf("shipment %s moved %s -> %s", sh.TrackingCode(), from, sh.Status()),
		h.clock.Now(), map[string]interface{}{
			"trackingCode": sh.TrackingCode(),
			"from":         string(from),
			"to":           string(sh.Status()),
		})
	if err == nil {
		h.auditSink.Append(entry.WithEntity(sh.ID().Value(), "shipment"))
	}
}
