package audit

import (
	"fmt"
	"time"

	"github.com/reliefops/logistics-go/internal/domain/shared"
)

// Entry is a structured audit record. Entries are immutable once created.
type Entry struct {
	ID         shared.EntityID        `json:"id"`
	Timestamp  time.Time              `json:"timestamp"`
	EventType  EventType              `json:"eventType"`
	Message    string                 `json:"message"`
	EntityID   string                 `json:"entityId,omitempty"`
	EntityType string                 `json:"entityType,omitempty"`
	UserID     string                 `json:"userId,omitempty"`
	Priority   string                 `json:"priority,omitempty"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
}

// NewEntry creates a new audit entry with validation. Metadata values are
// restricted to string, integer kinds, float64, bool and EntityID; any other
// shape is rejected at this boundary.
func NewEntry(eventType EventType, message string, timestamp time.Time, metadata map[string]interface{}) (*Entry, error) {
	if !eventType.IsValid() {
		return nil, shared.NewValidationError("eventType", fmt.Sprintf("unknown event type %q", eventType))
	}
	if message == "" {
		return nil, shared.NewValidationError("message", "cannot be empty")
	}
	if err := validateMetadata(metadata); err != nil {
		return nil, err
	}

	return &Entry{
		ID:        shared.NewEntityID(),
		Timestamp: timestamp,
		EventType: eventType,
		Message:   message,
		Metadata:  copyMetadata(metadata),
	}, nil
}

// WithEntity attaches the subject entity reference and returns the entry
func (e *Entry) WithEntity(entityID, entityType string) *Entry {
	e.EntityID = entityID
	e.EntityType = entityType
	return e
}

// WithUser attaches the acting user and returns the entry
func (e *Entry) WithUser(userID string) *Entry {
	e.UserID = userID
	return e
}

// WithPriority attaches a priority label and returns the entry
func (e *Entry) WithPriority(priority string) *Entry {
	e.Priority = priority
	return e
}

func validateMetadata(metadata map[string]interface{}) error {
	for key, value := range metadata {
		switch value.(type) {
		case string, bool, int, int32, int64, float64, shared.EntityID:
		default:
			return shared.NewValidationError("metadata",
				fmt.Sprintf("unsupported value type %T for key %q", value, key))
		}
	}
	return nil
}

func copyMetadata(metadata map[string]interface{}) map[string]interface{} {
	if metadata == nil {
		return nil
	}
	dup := make(map[string]interface{}, len(metadata))
	for k, v := range metadata {
		dup[k] = v
	}
	return dup
}
