package supply

import (
	"context"

	"github.com/reliefops/logistics-go/internal/domain/shared"
)

// Repository defines persistence operations for supplies.
// Save is an upsert keyed by entity ID; LoadAll returns only
// non-soft-deleted supplies.
type Repository interface {
	Save(ctx context.Context, s *Supply) error
	SaveAll(ctx context.Context, supplies []*Supply) error
	LoadAll(ctx context.Context) ([]*Supply, error)
	FindByID(ctx context.Context, id shared.EntityID) (*Supply, error)
	ExistsByID(ctx context.Context, id shared.EntityID) (bool, error)
	Delete(ctx context.Context, id shared.EntityID) error
	Clear(ctx context.Context) error
}
