package need

import (
	"context"

	"github.com/reliefops/logistics-go/internal/domain/shared"
)

// Repository defines persistence operations for needs.
// Save is an upsert keyed by entity ID; LoadAll returns only
// non-soft-deleted needs.
type Repository interface {
	Save(ctx context.Context, n *Need) error
	SaveAll(ctx context.Context, needs []*Need) error
	LoadAll(ctx context.Context) ([]*Need, error)
	FindByID(ctx context.Context, id shared.EntityID) (*Need, error)
	ExistsByID(ctx context.Context, id shared.EntityID) (bool, error)
	Delete(ctx context.Context, id shared.EntityID) error
	Clear(ctx context.Context) error
}
