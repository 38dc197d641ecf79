package shipment

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/reliefops/logistics-go/internal/domain/shared"
)

// Shipment tracks a quantity of supplies moving from an origin to a
// destination. Status transitions go through TransitionTo, which enforces
// the lifecycle and applies timestamp side effects.
type Shipment struct {
	shared.Entity

	trackingCode string
	status       Status
	priority     shared.PriorityLevel

	needID   *shared.EntityID
	supplyID *shared.EntityID

	origin      shared.Location
	destination shared.Location
	quantity    int
	unit        string

	scheduledDispatch *time.Time
	actualDispatch    *time.Time
	estimatedArrival  *time.Time
	actualDelivery    *time.Time

	carrier         string
	vehicleInfo     string
	driverName      string
	recipientName   string
	notes           string
	proofOfDelivery string
}

// NewShipment creates a shipment in Pending status with a generated
// tracking code. The clock parameter is optional - if nil, defaults to
// RealClock.
func NewShipment(
	priority shared.PriorityLevel,
	origin, destination shared.Location,
	quantity int,
	unit string,
	clock shared.Clock,
) (*Shipment, error) {
	if !priority.IsValid() {
		return nil, shared.NewValidationError("priority", fmt.Sprintf("invalid level %d", priority))
	}
	if quantity <= 0 {
		return nil, shared.NewValidationError("quantity", "must be positive")
	}

	base := shared.NewEntity(clock)
	return &Shipment{
		Entity:       base,
		trackingCode: generateTrackingCode(base.Clock().Now()),
		status:       StatusPending,
		priority:     priority,
		origin:       origin,
		destination:  destination,
		quantity:     quantity,
		unit:         unit,
	}, nil
}

// ReconstructShipment restores a shipment from persisted data, bypassing
// constructor validation. Repository use only.
func ReconstructShipment(
	base shared.Entity,
	trackingCode string,
	status Status,
	priority shared.PriorityLevel,
	needID, supplyID *shared.EntityID,
	origin, destination shared.Location,
	quantity int,
	unit string,
	scheduledDispatch, actualDispatch, estimatedArrival, actualDelivery *time.Time,
	carrier, vehicleInfo, driverName, recipientName, notes, proofOfDelivery string,
) *Shipment {
	return &Shipment{
		Entity:            base,
		trackingCode:      trackingCode,
		status:            status,
		priority:          priority,
		needID:            needID,
		supplyID:          supplyID,
		origin:            origin,
		destination:       destination,
		quantity:          quantity,
		unit:              unit,
		scheduledDispatch: scheduledDispatch,
		actualDispatch:    actualDispatch,
		estimatedArrival:  estimatedArrival,
		actualDelivery:    actualDelivery,
		carrier:           carrier,
		vehicleInfo:       vehicleInfo,
		driverName:        driverName,
		recipientName:     recipientName,
		notes:             notes,
		proofOfDelivery:   proofOfDelivery,
	}
}

// generateTrackingCode builds the display code
// DL-<UTC yyyyMMddHHmmss>-<6 uppercase hex>. The suffix comes from a fresh
// UUID; collisions are tolerated since the entity ID is the uniqueness key.
func generateTrackingCode(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:6]
	return fmt.Sprintf("DL-%s-%s", now.UTC().Format("20060102150405"), strings.ToUpper(suffix))
}

func (s *Shipment) TrackingCode() string            { return s.trackingCode }
func (s *Shipment) Status() Status                  { return s.status }
func (s *Shipment) Priority() shared.PriorityLevel  { return s.priority }
func (s *Shipment) NeedID() *shared.EntityID        { return s.needID }
func (s *Shipment) SupplyID() *shared.EntityID      { return s.supplyID }
func (s *Shipment) Origin() shared.Location         { return s.origin }
func (s *Shipment) Destination() shared.Location    { return s.destination }
func (s *Shipment) Quantity() int                   { return s.quantity }
func (s *Shipment) Unit() string                    { return s.unit }
func (s *Shipment) ScheduledDispatch() *time.Time   { return s.scheduledDispatch }
func (s *Shipment) ActualDispatch() *time.Time      { return s.actualDispatch }
func (s *Shipment) EstimatedArrival() *time.Time    { return s.estimatedArrival }
func (s *Shipment) ActualDelivery() *time.Time      { return s.actualDelivery }
func (s *Shipment) Carrier() string                 { return s.carrier }
func (s *Shipment) VehicleInfo() string             { return s.vehicleInfo }
func (s *Shipment) DriverName() string              { return s.driverName }
func (s *Shipment) RecipientName() string           { return s.recipientName }
func (s *Shipment) Notes() string                   { return s.notes }
func (s *Shipment) ProofOfDelivery() string         { return s.proofOfDelivery }

// IsActive reports whether the shipment is still in flight
// (not Delivered, Cancelled or Failed)
func (s *Shipment) IsActive() bool {
	return !s.status.IsTerminal()
}

// IsDelayed reports whether an active shipment has blown past its
// estimated arrival
func (s *Shipment) IsDelayed() bool {
	if !s.IsActive() || s.estimatedArrival == nil {
		return false
	}
	return s.estimatedArrival.Before(s.Clock().Now())
}

// TransitionTo moves the shipment to target if the lifecycle permits it.
// Returns false with state unchanged on a rejected transition.
//
// Side effects: entering InTransit sets actualDispatch if unset
// (first entry wins); entering Delivered always sets actualDelivery.
func (s *Shipment) TransitionTo(target Status) bool {
	if !s.status.CanTransitionTo(target) {
		return false
	}

	now := s.Clock().Now()
	s.status = target

	switch target {
	case StatusInTransit:
		if s.actualDispatch == nil {
			s.actualDispatch = &now
		}
	case StatusDelivered:
		s.actualDelivery = &now
	}

	s.Touch()
	return true
}

// LinkNeed associates the shipment with the need it serves
func (s *Shipment) LinkNeed(id shared.EntityID) {
	s.needID = &id
	s.Touch()
}

// LinkSupply associates the shipment with the supply it draws from
func (s *Shipment) LinkSupply(id shared.EntityID) {
	s.supplyID = &id
	s.Touch()
}

// SetSchedule updates the planned dispatch and arrival timestamps
func (s *Shipment) SetSchedule(scheduledDispatch, estimatedArrival *time.Time) {
	s.scheduledDispatch = scheduledDispatch
	s.estimatedArrival = estimatedArrival
	s.Touch()
}

// SetCarrierDetails updates carrier, vehicle and driver metadata
func (s *Shipment) SetCarrierDetails(carrier, vehicleInfo, driverName string) {
	s.carrier = carrier
	s.vehicleInfo = vehicleInfo
	s.driverName = driverName
	s.Touch()
}

// SetRecipient updates the recipient name
func (s *Shipment) SetRecipient(recipientName string) {
	s.recipientName = recipientName
	s.Touch()
}

// SetNotes updates the free-text notes
func (s *Shipment) SetNotes(notes string) {
	s.notes = notes
	s.Touch()
}

// SetProofOfDelivery records the proof-of-delivery reference
func (s *Shipment) SetProofOfDelivery(proof string) {
	s.proofOfDelivery = proof
	s.Touch()
}

func (s *Shipment) String() string {
	return fmt.Sprintf("Shipment(%s, %s, %d %s)", s.trackingCode, s.status, s.quantity, s.unit)
}
