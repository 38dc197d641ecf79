package need

import (
	"fmt"
	"time"

	"github.com/reliefops/logistics-go/internal/domain/shared"
)

// Need is an outstanding request for relief supplies.
//
// Invariant: 0 <= quantityFulfilled <= quantityRequired at every observable
// state; transactional mid-states during rollback excepted.
type Need struct {
	shared.Entity

	title             string
	description       string
	category          string
	priority          shared.PriorityLevel
	quantityRequired  int
	quantityFulfilled int
	unit              string
	location          shared.Location
	requestedBy       string
	contactInfo       string
	deadline          *time.Time
	notes             string
}

// NewNeed creates a new need with validation.
// The clock parameter is optional - if nil, defaults to RealClock.
func NewNeed(
	title string,
	category string,
	priority shared.PriorityLevel,
	quantityRequired int,
	unit string,
	location shared.Location,
	clock shared.Clock,
) (*Need, error) {
	if title == "" {
		return nil, shared.NewValidationError("title", "cannot be empty")
	}
	if category == "" {
		return nil, shared.NewValidationError("category", "cannot be empty")
	}
	if !priority.IsValid() {
		return nil, shared.NewValidationError("priority", fmt.Sprintf("invalid level %d", priority))
	}
	if quantityRequired <= 0 {
		return nil, shared.NewValidationError("quantityRequired", "must be positive")
	}

	return &Need{
		Entity:           shared.NewEntity(clock),
		title:            title,
		category:         category,
		priority:         priority,
		quantityRequired: quantityRequired,
		unit:             unit,
		location:         location,
	}, nil
}

// ReconstructNeed restores a need from persisted data, bypassing
// constructor validation. Repository use only.
func ReconstructNeed(
	base shared.Entity,
	title, description, category string,
	priority shared.PriorityLevel,
	quantityRequired, quantityFulfilled int,
	unit string,
	location shared.Location,
	requestedBy, contactInfo string,
	deadline *time.Time,
	notes string,
) *Need {
	return &Need{
		Entity:            base,
		title:             title,
		description:       description,
		category:          category,
		priority:          priority,
		quantityRequired:  quantityRequired,
		quantityFulfilled: quantityFulfilled,
		unit:              unit,
		location:          location,
		requestedBy:       requestedBy,
		contactInfo:       contactInfo,
		deadline:          deadline,
		notes:             notes,
	}
}

func (n *Need) Title() string                  { return n.title }
func (n *Need) Description() string            { return n.description }
func (n *Need) Category() string               { return n.category }
func (n *Need) Priority() shared.PriorityLevel { return n.priority }
func (n *Need) QuantityRequired() int          { return n.quantityRequired }
func (n *Need) QuantityFulfilled() int         { return n.quantityFulfilled }
func (n *Need) Unit() string                   { return n.unit }
func (n *Need) Location() shared.Location      { return n.location }
func (n *Need) RequestedBy() string            { return n.requestedBy }
func (n *Need) ContactInfo() string            { return n.contactInfo }
func (n *Need) Deadline() *time.Time           { return n.deadline }
func (n *Need) Notes() string                  { return n.notes }

// RemainingQuantity returns the quantity still outstanding, floored at zero
func (n *Need) RemainingQuantity() int {
	remaining := n.quantityRequired - n.quantityFulfilled
	if remaining < 0 {
		return 0
	}
	return remaining
}

// IsFulfilled reports whether the need has been completely met
func (n *Need) IsFulfilled() bool {
	return n.quantityFulfilled >= n.quantityRequired
}

// FulfillmentPercent returns fulfillment as a percentage, capped at 100
func (n *Need) FulfillmentPercent() float64 {
	if n.quantityRequired == 0 {
		return 0
	}
	pct := float64(n.quantityFulfilled) / float64(n.quantityRequired) * 100
	if pct > 100 {
		return 100
	}
	return pct
}

// AddFulfilledQuantity records q units as fulfilled, clamping at the required
// quantity. Returns false (no-op) when q is not positive.
func (n *Need) AddFulfilledQuantity(q int) bool {
	if q <= 0 {
		return false
	}
	n.quantityFulfilled += q
	if n.quantityFulfilled > n.quantityRequired {
		n.quantityFulfilled = n.quantityRequired
	}
	n.Touch()
	return true
}

// RevertFulfilledQuantity subtracts q units, flooring at zero. Used by the
// matching transaction to reverse a pass; bumps the update timestamp like
// every other mutator. Returns false (no-op) when q is not positive.
func (n *Need) RevertFulfilledQuantity(q int) bool {
	if q <= 0 {
		return false
	}
	n.quantityFulfilled -= q
	if n.quantityFulfilled < 0 {
		n.quantityFulfilled = 0
	}
	n.Touch()
	return true
}

// SetDescription updates the free-text description
func (n *Need) SetDescription(description string) {
	n.description = description
	n.Touch()
}

// SetRequester updates requester and contact details
func (n *Need) SetRequester(requestedBy, contactInfo string) {
	n.requestedBy = requestedBy
	n.contactInfo = contactInfo
	n.Touch()
}

// SetDeadline updates the optional deadline
func (n *Need) SetDeadline(deadline *time.Time) {
	n.deadline = deadline
	n.Touch()
}

// SetNotes updates the free-text notes
func (n *Need) SetNotes(notes string) {
	n.notes = notes
	n.Touch()
}

func (n *Need) String() string {
	return fmt.Sprintf("Need(%s, %s, %d/%d %s)",
		n.title, n.priority, n.quantityFulfilled, n.quantityRequired, n.unit)
}
