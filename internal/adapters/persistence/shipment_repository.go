package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/reliefops/logistics-go/internal/domain/shared"
	"github.com/reliefops/logistics-go/internal/domain/shipment"
)

// GormShipmentRepository implements shipment.Repository using GORM
type GormShipmentRepository struct {
	db    *gorm.DB
	clock shared.Clock
}

var _ shipment.Repository = (*GormShipmentRepository)(nil)

// NewGormShipmentRepository creates a new GORM shipment repository.
// The clock parameter is optional - if nil, defaults to RealClock.
func NewGormShipmentRepository(db *gorm.DB, clock shared.Clock) *GormShipmentRepository {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &GormShipmentRepository{db: db, clock: clock}
}

// Save upserts a shipment keyed by entity ID
func (r *GormShipmentRepository) Save(ctx context.Context, s *shipment.Shipment) error {
	result := r.db.WithContext(ctx).Save(r.entityToModel(s))
	if result.Error != nil {
		return fmt.Errorf("failed to save shipment: %w", result.Error)
	}
	return nil
}

// SaveAll upserts a batch of shipments
func (r *GormShipmentRepository) SaveAll(ctx context.Context, shipments []*shipment.Shipment) error {
	if len(shipments) == 0 {
		return nil
	}
	models := make([]*ShipmentModel, 0, len(shipments))
	for _, s := range shipments {
		models = append(models, r.entityToModel(s))
	}
	result := r.db.WithContext(ctx).Save(models)
	if result.Error != nil {
		return fmt.Errorf("failed to save shipments: %w", result.Error)
	}
	return nil
}

// LoadAll returns all non-soft-deleted shipments
func (r *GormShipmentRepository) LoadAll(ctx context.Context) ([]*shipment.Shipment, error) {
	var models []ShipmentModel
	result := r.db.WithContext(ctx).Where("deleted = ?", false).Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to load shipments: %w", result.Error)
	}

	shipments := make([]*shipment.Shipment, 0, len(models))
	for i := range models {
		entity, err := r.modelToEntity(&models[i])
		if err != nil {
			return nil, fmt.Errorf("failed to convert shipment %s: %w", models[i].ID, err)
		}
		shipments = append(shipments, entity)
	}
	return shipments, nil
}

// FindByID retrieves a shipment by ID, soft-deleted shipments included
func (r *GormShipmentRepository) FindByID(ctx context.Context, id shared.EntityID) (*shipment.Shipment, error) {
	var model ShipmentModel
	result := r.db.WithContext(ctx).Where("id = ?", id.Value()).First(&model)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("shipment not found: %s", id)
		}
		return nil, fmt.Errorf("failed to find shipment: %w", result.Error)
	}
	return r.modelToEntity(&model)
}

// ExistsByID reports whether a shipment with the given ID is stored
func (r *GormShipmentRepository) ExistsByID(ctx context.Context, id shared.EntityID) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&ShipmentModel{}).Where("id = ?", id.Value()).Count(&count)
	if result.Error != nil {
		return false, fmt.Errorf("failed to check shipment existence: %w", result.Error)
	}
	return count > 0, nil
}

// Delete removes a shipment by ID
func (r *GormShipmentRepository) Delete(ctx context.Context, id shared.EntityID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id.Value()).Delete(&ShipmentModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete shipment: %w", result.Error)
	}
	return nil
}

// Clear removes all shipments
func (r *GormShipmentRepository) Clear(ctx context.Context) error {
	result := r.db.WithContext(ctx).Where("1 = 1").Delete(&ShipmentModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to clear shipments: %w", result.Error)
	}
	return nil
}

func (r *GormShipmentRepository) entityToModel(s *shipment.Shipment) *ShipmentModel {
	origin := s.Origin()
	dest := s.Destination()

	var needID, supplyID *string
	if id := s.NeedID(); id != nil {
		v := id.Value()
		needID = &v
	}
	if id := s.SupplyID(); id != nil {
		v := id.Value()
		supplyID = &v
	}

	return &ShipmentModel{
		ID:                s.ID().Value(),
		CreatedAt:         s.CreatedAt(),
		UpdatedAt:         s.UpdatedAt(),
		Deleted:           s.IsDeleted(),
		TrackingCode:      s.TrackingCode(),
		Status:            string(s.Status()),
		Priority:          s.Priority().String(),
		NeedID:            needID,
		SupplyID:          supplyID,
		OriginLatitude:    origin.Latitude,
		OriginLongitude:   origin.Longitude,
		OriginAddress:     origin.Address,
		OriginCity:        origin.City,
		OriginRegion:      origin.Region,
		DestLatitude:      dest.Latitude,
		DestLongitude:     dest.Longitude,
		DestAddress:       dest.Address,
		DestCity:          dest.City,
		DestRegion:        dest.Region,
		Quantity:          s.Quantity(),
		Unit:              s.Unit(),
		ScheduledDispatch: s.ScheduledDispatch(),
		ActualDispatch:    s.ActualDispatch(),
		EstimatedArrival:  s.EstimatedArrival(),
		ActualDelivery:    s.ActualDelivery(),
		Carrier:           s.Carrier(),
		VehicleInfo:       s.VehicleInfo(),
		DriverName:        s.DriverName(),
		RecipientName:     s.RecipientName(),
		Notes:             s.Notes(),
		ProofOfDelivery:   s.ProofOfDelivery(),
	}
}

func (r *GormShipmentRepository) modelToEntity(model *ShipmentModel) (*shipment.Shipment, error) {
	id, err := shared.NewEntityIDFromString(model.ID)
	if err != nil {
		return nil, err
	}

	var needID, supplyID *shared.EntityID
	if model.NeedID != nil {
		parsed, err := shared.NewEntityIDFromString(*model.NeedID)
		if err != nil {
			return nil, fmt.Errorf("invalid need reference: %w", err)
		}
		needID = &parsed
	}
	if model.SupplyID != nil {
		parsed, err := shared.NewEntityIDFromString(*model.SupplyID)
		if err != nil {
			return nil, fmt.Errorf("invalid supply reference: %w", err)
		}
		supplyID = &parsed
	}

	base := shared.ReconstructEntity(id, model.CreatedAt, model.UpdatedAt, model.Deleted, r.clock)
	origin := shared.NewLocation(model.OriginLatitude, model.OriginLongitude, model.OriginAddress, model.OriginCity, model.OriginRegion)
	dest := shared.NewLocation(model.DestLatitude, model.DestLongitude, model.DestAddress, model.DestCity, model.DestRegion)

	return shipment.ReconstructShipment(
		base,
		model.TrackingCode,
		shipment.Status(model.Status),
		shared.ParsePriorityLevel(model.Priority),
		needID,
		supplyID,
		origin,
		dest,
		model.Quantity,
		model.Unit,
		model.ScheduledDispatch,
		model.ActualDispatch,
		model.EstimatedArrival,
		model.ActualDelivery,
		model.Carrier,
		model.VehicleInfo,
		model.DriverName,
		model.RecipientName,
		model.Notes,
		model.ProofOfDelivery,
	), nil
}
