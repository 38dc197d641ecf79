package shared

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// EntityID is a value object wrapping the opaque 128-bit identifier every
// domain entity carries
type EntityID struct {
	value string
}

// NewEntityID creates a new EntityID with a generated UUID
func NewEntityID() EntityID {
	return EntityID{value: uuid.New().String()}
}

// NewEntityIDFromString creates an EntityID from an existing UUID string
func NewEntityIDFromString(id string) (EntityID, error) {
	if id == "" {
		return EntityID{}, fmt.Errorf("entity id cannot be empty")
	}

	if _, err := uuid.Parse(id); err != nil {
		return EntityID{}, fmt.Errorf("invalid entity id format: %w", err)
	}

	return EntityID{value: id}, nil
}

// MustNewEntityIDFromString creates an EntityID from a string, panicking if invalid.
// Use this only when the ID is known valid (e.g., read back from the database).
func MustNewEntityIDFromString(id string) EntityID {
	eid, err := NewEntityIDFromString(id)
	if err != nil {
		panic(err)
	}
	return eid
}

// Value returns the string value of the EntityID
func (e EntityID) Value() string {
	return e.value
}

// String returns a string representation of the EntityID
func (e EntityID) String() string {
	return e.value
}

// Equals checks if two EntityIDs are equal
func (e EntityID) Equals(other EntityID) bool {
	return e.value == other.value
}

// IsZero checks if the EntityID is the zero value (uninitialized)
func (e EntityID) IsZero() bool {
	return e.value == ""
}

// Entity carries the identity, timestamps and soft-delete flag shared by all
// domain entities. Embedded by composition; no dispatch depends on it.
//
// Invariants:
// - ID and creation time are immutable after construction
// - Every mutator bumps the update timestamp via Touch
// - Soft deletion is idempotent
type Entity struct {
	id        EntityID
	createdAt time.Time
	updatedAt time.Time
	deleted   bool
	clock     Clock
}

// NewEntity creates the embedded entity base with a fresh identifier.
// The clock parameter is optional - if nil, defaults to RealClock.
func NewEntity(clock Clock) Entity {
	if clock == nil {
		clock = NewRealClock()
	}

	now := clock.Now()
	return Entity{
		id:        NewEntityID(),
		createdAt: now,
		updatedAt: now,
		clock:     clock,
	}
}

// ReconstructEntity restores the entity base from persisted data.
// This should only be used when rebuilding entities from storage.
func ReconstructEntity(id EntityID, createdAt, updatedAt time.Time, deleted bool, clock Clock) Entity {
	if clock == nil {
		clock = NewRealClock()
	}
	return Entity{
		id:        id,
		createdAt: createdAt,
		updatedAt: updatedAt,
		deleted:   deleted,
		clock:     clock,
	}
}

// ID returns the entity identifier
func (e *Entity) ID() EntityID {
	return e.id
}

// CreatedAt returns when the entity was created
func (e *Entity) CreatedAt() time.Time {
	return e.createdAt
}

// UpdatedAt returns when the entity was last updated
func (e *Entity) UpdatedAt() time.Time {
	return e.updatedAt
}

// IsDeleted reports whether the entity has been soft-deleted
func (e *Entity) IsDeleted() bool {
	return e.deleted
}

// Touch bumps the update timestamp
func (e *Entity) Touch() {
	e.updatedAt = e.clock.Now()
}

// MarkAsDeleted soft-deletes the entity. Idempotent: a second call leaves
// the flag set and still bumps the update timestamp.
func (e *Entity) MarkAsDeleted() {
	e.deleted = true
	e.Touch()
}

// Clock returns the clock the entity was constructed with
func (e *Entity) Clock() Clock {
	return e.clock
}
