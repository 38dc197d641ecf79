package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/reliefops/logistics-go/internal/domain/need"
	"github.com/reliefops/logistics-go/internal/domain/shared"
)

// GormNeedRepository implements need.Repository using GORM
type GormNeedRepository struct {
	db    *gorm.DB
	clock shared.Clock
}

var _ need.Repository = (*GormNeedRepository)(nil)

// NewGormNeedRepository creates a new GORM need repository.
// The clock parameter is optional - if nil, defaults to RealClock.
func NewGormNeedRepository(db *gorm.DB, clock shared.Clock) *GormNeedRepository {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &GormNeedRepository{db: db, clock: clock}
}

// Save upserts a need keyed by entity ID
func (r *GormNeedRepository) Save(ctx context.Context, n *need.Need) error {
	result := r.db.WithContext(ctx).Save(r.entityToModel(n))
	if result.Error != nil {
		return fmt.Errorf("failed to save need: %w", result.Error)
	}
	return nil
}

// SaveAll upserts a batch of needs
func (r *GormNeedRepository) SaveAll(ctx context.Context, needs []*need.Need) error {
	if len(needs) == 0 {
		return nil
	}
	models := make([]*NeedModel, 0, len(needs))
	for _, n := range needs {
		models = append(models, r.entityToModel(n))
	}
	result := r.db.WithContext(ctx).Save(models)
	if result.Error != nil {
		return fmt.Errorf("failed to save needs: %w", result.Error)
	}
	return nil
}

// LoadAll returns all non-soft-deleted needs
func (r *GormNeedRepository) LoadAll(ctx context.Context) ([]*need.Need, error) {
	var models []NeedModel
	result := r.db.WithContext(ctx).Where("deleted = ?", false).Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to load needs: %w", result.Error)
	}

	needs := make([]*need.Need, 0, len(models))
	for i := range models {
		entity, err := r.modelToEntity(&models[i])
		if err != nil {
			return nil, fmt.Errorf("failed to convert need %s: %w", models[i].ID, err)
		}
		needs = append(needs, entity)
	}
	return needs, nil
}

// FindByID retrieves a need by ID, soft-deleted needs included
func (r *GormNeedRepository) FindByID(ctx context.Context, id shared.EntityID) (*need.Need, error) {
	var model NeedModel
	result := r.db.WithContext(ctx).Where("id = ?", id.Value()).First(&model)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("need not found: %s", id)
		}
		return nil, fmt.Errorf("failed to find need: %w", result.Error)
	}
	return r.modelToEntity(&model)
}

// ExistsByID reports whether a need with the given ID is stored
func (r *GormNeedRepository) ExistsByID(ctx context.Context, id shared.EntityID) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&NeedModel{}).Where("id = ?", id.Value()).Count(&count)
	if result.Error != nil {
		return false, fmt.Errorf("failed to check need existence: %w", result.Error)
	}
	return count > 0, nil
}

// Delete removes a need by ID. Hard delete at this tier is fine: the
// entity carries its own soft-delete flag.
func (r *GormNeedRepository) Delete(ctx context.Context, id shared.EntityID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id.Value()).Delete(&NeedModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete need: %w", result.Error)
	}
	return nil
}

// Clear removes all needs
func (r *GormNeedRepository) Clear(ctx context.Context) error {
	result := r.db.WithContext(ctx).Where("1 = 1").Delete(&NeedModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to clear needs: %w", result.Error)
	}
	return nil
}

func (r *GormNeedRepository) entityToModel(n *need.Need) *NeedModel {
	loc := n.Location()
	return &NeedModel{
		ID:                n.ID().Value(),
		CreatedAt:         n.CreatedAt(),
		UpdatedAt:         n.UpdatedAt(),
		Deleted:           n.IsDeleted(),
		Title:             n.Title(),
		Description:       n.Description(),
		Category:          n.Category(),
		Priority:          n.Priority().String(),
		QuantityRequired:  n.QuantityRequired(),
		QuantityFulfilled: n.QuantityFulfilled(),
		Unit:              n.Unit(),
		Latitude:          loc.Latitude,
		Longitude:         loc.Longitude,
		Address:           loc.Address,
		City:              loc.City,
		Region:            loc.Region,
		RequestedBy:       n.RequestedBy(),
		ContactInfo:       n.ContactInfo(),
		Deadline:          n.Deadline(),
		Notes:             n.Notes(),
	}
}

func (r *GormNeedRepository) modelToEntity(model *NeedModel) (*need.Need, error) {
	id, err := shared.NewEntityIDFromString(model.ID)
	if err != nil {
		return nil, err
	}

	base := shared.ReconstructEntity(id, model.CreatedAt, model.UpdatedAt, model.Deleted, r.clock)
	location := shared.NewLocation(model.Latitude, model.Longitude, model.Address, model.City, model.Region)

	return need.ReconstructNeed(
		base,
		model.Title,
		model.Description,
		model.Category,
		shared.ParsePriorityLevel(model.Priority),
		model.QuantityRequired,
		model.QuantityFulfilled,
		model.Unit,
		location,
		model.RequestedBy,
		model.ContactInfo,
		model.Deadline,
		model.Notes,
	), nil
}
