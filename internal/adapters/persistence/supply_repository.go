package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/reliefops/logistics-go/internal/domain/shared"
	"github.com/reliefops/logistics-go/internal/domain/supply"
)

// GormSupplyRepository implements supply.Repository using GORM
type GormSupplyRepository struct {
	db    *gorm.DB
	clock shared.Clock
}

var _ supply.Repository = (*GormSupplyRepository)(nil)

// NewGormSupplyRepository creates a new GORM supply repository.
// The clock parameter is optional - if nil, defaults to RealClock.
func NewGormSupplyRepository(db *gorm.DB, clock shared.Clock) *GormSupplyRepository {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &GormSupplyRepository{db: db, clock: clock}
}

// Save upserts a supply keyed by entity ID
func (r *GormSupplyRepository) Save(ctx context.Context, s *supply.Supply) error {
	result := r.db.WithContext(ctx).Save(r.entityToModel(s))
	if result.Error != nil {
		return fmt.Errorf("failed to save supply: %w", result.Error)
	}
	return nil
}

// SaveAll upserts a batch of supplies
func (r *GormSupplyRepository) SaveAll(ctx context.Context, supplies []*supply.Supply) error {
	if len(supplies) == 0 {
		return nil
	}
	models := make([]*SupplyModel, 0, len(supplies))
	for _, s := range supplies {
		models = append(models, r.entityToModel(s))
	}
	result := r.db.WithContext(ctx).Save(models)
	if result.Error != nil {
		return fmt.Errorf("failed to save supplies: %w", result.Error)
	}
	return nil
}

// LoadAll returns all non-soft-deleted supplies
func (r *GormSupplyRepository) LoadAll(ctx context.Context) ([]*supply.Supply, error) {
	var models []SupplyModel
	result := r.db.WithContext(ctx).Where("deleted = ?", false).Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to load supplies: %w", result.Error)
	}

	supplies := make([]*supply.Supply, 0, len(models))
	for i := range models {
		entity, err := r.modelToEntity(&models[i])
		if err != nil {
			return nil, fmt.Errorf("failed to convert supply %s: %w", models[i].ID, err)
		}
		supplies = append(supplies, entity)
	}
	return supplies, nil
}

// FindByID retrieves a supply by ID, soft-deleted supplies included
func (r *GormSupplyRepository) FindByID(ctx context.Context, id shared.EntityID) (*supply.Supply, error) {
	var model SupplyModel
	result := r.db.WithContext(ctx).Where("id = ?", id.Value()).First(&model)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("supply not found: %s", id)
		}
		return nil, fmt.Errorf("failed to find supply: %w", result.Error)
	}
	return r.modelToEntity(&model)
}

// ExistsByID reports whether a supply with the given ID is stored
func (r *GormSupplyRepository) ExistsByID(ctx context.Context, id shared.EntityID) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&SupplyModel{}).Where("id = ?", id.Value()).Count(&count)
	if result.Error != nil {
		return false, fmt.Errorf("failed to check supply existence: %w", result.Error)
	}
	return count > 0, nil
}

// Delete removes a supply by ID
func (r *GormSupplyRepository) Delete(ctx context.Context, id shared.EntityID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id.Value()).Delete(&SupplyModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete supply: %w", result.Error)
	}
	return nil
}

// Clear removes all supplies
func (r *GormSupplyRepository) Clear(ctx context.Context) error {
	result := r.db.WithContext(ctx).Where("1 = 1").Delete(&SupplyModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to clear supplies: %w", result.Error)
	}
	return nil
}

func (r *GormSupplyRepository) entityToModel(s *supply.Supply) *SupplyModel {
	loc := s.StorageLocation()
	return &SupplyModel{
		ID:                s.ID().Value(),
		CreatedAt:         s.CreatedAt(),
		UpdatedAt:         s.UpdatedAt(),
		Deleted:           s.IsDeleted(),
		Name:              s.Name(),
		Category:          s.Category(),
		QuantityAvailable: s.QuantityAvailable(),
		QuantityReserved:  s.QuantityReserved(),
		Unit:              s.Unit(),
		Latitude:          loc.Latitude,
		Longitude:         loc.Longitude,
		Address:           loc.Address,
		City:              loc.City,
		Region:            loc.Region,
		Supplier:          s.Supplier(),
		ExpirationDate:    s.ExpirationDate(),
		MinimumStock:      s.MinimumStock(),
		SKU:               s.SKU(),
		Condition:         s.Condition(),
	}
}

func (r *GormSupplyRepository) modelToEntity(model *SupplyModel) (*supply.Supply, error) {
	id, err := shared.NewEntityIDFromString(model.ID)
	if err != nil {
		return nil, err
	}

	base := shared.ReconstructEntity(id, model.CreatedAt, model.UpdatedAt, model.Deleted, r.clock)
	location := shared.NewLocation(model.Latitude, model.Longitude, model.Address, model.City, model.Region)

	return supply.ReconstructSupply(
		base,
		model.Name,
		model.Category,
		model.QuantityAvailable,
		model.QuantityReserved,
		model.Unit,
		location,
		model.Supplier,
		model.ExpirationDate,
		model.MinimumStock,
		model.SKU,
		model.Condition,
	), nil
}
