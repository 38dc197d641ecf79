package supply

import (
	"fmt"
	"time"

	"github.com/reliefops/logistics-go/internal/domain/shared"
)

// expiringSoonWindow is the lookahead used by IsExpiringSoon and the
// matching engine's perishable-stock bonus
const expiringSoonWindow = 7 * 24 * time.Hour

// Supply is a line of relief inventory.
//
// Invariant: 0 <= quantityReserved <= quantityAvailable at every
// observable state.
type Supply struct {
	shared.Entity

	name              string
	category          string
	quantityAvailable int
	quantityReserved  int
	unit              string
	storageLocation   shared.Location
	supplier          string
	expirationDate    *time.Time
	minimumStock      int
	sku               string
	condition         string
}

// NewSupply creates a new supply with validation.
// The clock parameter is optional - if nil, defaults to RealClock.
func NewSupply(
	name string,
	category string,
	quantityAvailable int,
	unit string,
	storageLocation shared.Location,
	clock shared.Clock,
) (*Supply, error) {
	if name == "" {
		return nil, shared.NewValidationError("name", "cannot be empty")
	}
	if category == "" {
		return nil, shared.NewValidationError("category", "cannot be empty")
	}
	if quantityAvailable < 0 {
		return nil, shared.NewValidationError("quantityAvailable", "cannot be negative")
	}

	return &Supply{
		Entity:            shared.NewEntity(clock),
		name:              name,
		category:          category,
		quantityAvailable: quantityAvailable,
		unit:              unit,
		storageLocation:   storageLocation,
	}, nil
}

// ReconstructSupply restores a supply from persisted data, bypassing
// constructor validation. Repository use only.
func ReconstructSupply(
	base shared.Entity,
	name, category string,
	quantityAvailable, quantityReserved int,
	unit string,
	storageLocation shared.Location,
	supplier string,
	expirationDate *time.Time,
	minimumStock int,
	sku, condition string,
) *Supply {
	return &Supply{
		Entity:            base,
		name:              name,
		category:          category,
		quantityAvailable: quantityAvailable,
		quantityReserved:  quantityReserved,
		unit:              unit,
		storageLocation:   storageLocation,
		supplier:          supplier,
		expirationDate:    expirationDate,
		minimumStock:      minimumStock,
		sku:               sku,
		condition:         condition,
	}
}

func (s *Supply) Name() string                     { return s.name }
func (s *Supply) Category() string                 { return s.category }
func (s *Supply) QuantityAvailable() int           { return s.quantityAvailable }
func (s *Supply) QuantityReserved() int            { return s.quantityReserved }
func (s *Supply) Unit() string                     { return s.unit }
func (s *Supply) StorageLocation() shared.Location { return s.storageLocation }
func (s *Supply) Supplier() string                 { return s.supplier }
func (s *Supply) ExpirationDate() *time.Time       { return s.expirationDate }
func (s *Supply) MinimumStock() int                { return s.minimumStock }
func (s *Supply) SKU() string                      { return s.sku }
func (s *Supply) Condition() string                { return s.condition }

// AllocatableQuantity returns available minus reserved, floored at zero
func (s *Supply) AllocatableQuantity() int {
	allocatable := s.quantityAvailable - s.quantityReserved
	if allocatable < 0 {
		return 0
	}
	return allocatable
}

// IsExpired reports whether the expiration date has passed
func (s *Supply) IsExpired() bool {
	if s.expirationDate == nil {
		return false
	}
	return s.expirationDate.Before(s.Clock().Now())
}

// IsExpiringSoon reports whether the supply expires within the next 7 days
func (s *Supply) IsExpiringSoon() bool {
	if s.expirationDate == nil {
		return false
	}
	now := s.Clock().Now()
	return !s.expirationDate.Before(now) && !s.expirationDate.After(now.Add(expiringSoonWindow))
}

// IsBelowMinimumStock reports whether allocatable stock has fallen under the
// configured minimum threshold
func (s *Supply) IsBelowMinimumStock() bool {
	return s.AllocatableQuantity() < s.minimumStock
}

// Reserve earmarks q units for an allocation.
// Precondition: 0 < q <= AllocatableQuantity. Returns false (no-op) otherwise.
func (s *Supply) Reserve(q int) bool {
	if q <= 0 || q > s.AllocatableQuantity() {
		return false
	}
	s.quantityReserved += q
	s.Touch()
	return true
}

// ReleaseReservation returns q previously reserved units to the allocatable
// pool. Precondition: 0 < q <= QuantityReserved. Returns false (no-op) otherwise.
func (s *Supply) ReleaseReservation(q int) bool {
	if q <= 0 || q > s.quantityReserved {
		return false
	}
	s.quantityReserved -= q
	s.Touch()
	return true
}

// DeductStock removes q units from available stock. When a matching
// reservation exists (reserved >= q) the reservation is consumed with it;
// a naked DeductStock without prior Reserve deliberately leaves the
// reservation count untouched.
// Precondition: 0 < q <= QuantityAvailable. Returns false (no-op) otherwise.
func (s *Supply) DeductStock(q int) bool {
	if q <= 0 || q > s.quantityAvailable {
		return false
	}
	s.quantityAvailable -= q
	if s.quantityReserved >= q {
		s.quantityReserved -= q
	}
	s.Touch()
	return true
}

// AddStock adds q units to available stock.
// Precondition: q > 0. Returns false (no-op) otherwise.
func (s *Supply) AddStock(q int) bool {
	if q <= 0 {
		return false
	}
	s.quantityAvailable += q
	s.Touch()
	return true
}

// Resupply adds q units and clears all reservations, modelling a fresh
// delivery that supersedes in-flight bookkeeping.
// Precondition: q > 0. Returns false (no-op) otherwise.
func (s *Supply) Resupply(q int) bool {
	if q <= 0 {
		return false
	}
	s.quantityAvailable += q
	s.quantityReserved = 0
	s.Touch()
	return true
}

// SetSupplier updates the supplier name
func (s *Supply) SetSupplier(supplier string) {
	s.supplier = supplier
	s.Touch()
}

// SetExpirationDate updates the optional expiration date
func (s *Supply) SetExpirationDate(expiration *time.Time) {
	s.expirationDate = expiration
	s.Touch()
}

// SetMinimumStock updates the minimum-stock threshold
func (s *Supply) SetMinimumStock(minimum int) {
	if minimum < 0 {
		minimum = 0
	}
	s.minimumStock = minimum
	s.Touch()
}

// SetSKU updates the stock-keeping unit code
func (s *Supply) SetSKU(sku string) {
	s.sku = sku
	s.Touch()
}

// SetCondition updates the condition description
func (s *Supply) SetCondition(condition string) {
	s.condition = condition
	s.Touch()
}

func (s *Supply) String() string {
	return fmt.Sprintf("Supply(%s, %s, available=%d reserved=%d %s)",
		s.name, s.category, s.quantityAvailable, s.quantityReserved, s.unit)
}
