package shipment

import (
	"context"

	"github.com/reliefops/logistics-go/internal/domain/shared"
)

// Repository defines persistence operations for shipments.
// Save is an upsert keyed by entity ID; LoadAll returns only
// non-soft-deleted shipments.
type Repository interface {
	Save(ctx context.Context, s *Shipment) error
	SaveAll(ctx context.Context, shipments []*Shipment) error
	LoadAll(ctx context.Context) ([]*Shipment, error)
	FindByID(ctx context.Context, id shared.EntityID) (*Shipment, error)
	ExistsByID(ctx context.Context, id shared.EntityID) (bool, error)
	Delete(ctx context.Context, id shared.EntityID) error
	Clear(ctx context.Context) error
}
