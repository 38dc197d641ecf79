package audit_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reliefops/logistics-go/internal/domain/audit"
	"github.com/reliefops/logistics-go/internal/domain/shared"
)

func TestNewEntry_Valid(t *testing.T) {
	ts := time.Date(2026, 8, 24, 8, 0, 0, 0, time.UTC)

	entry, err := audit.NewEntry(audit.EventMatchMade, "allocated 50 units", ts, map[string]interface{}{
		"quantity": 50,
		"percent":  33.3,
		"partial":  true,
		"supply":   shared.NewEntityID(),
	})

	require.NoError(t, err)
	assert.Equal(t, audit.EventMatchMade, entry.EventType)
	assert.Equal(t, ts, entry.Timestamp)
	assert.False(t, entry.ID.IsZero())
}

func TestNewEntry_RejectsUnknownEventType(t *testing.T) {
	_, err := audit.NewEntry(audit.EventType("Bogus"), "message", time.Now(), nil)
	assert.Error(t, err)
}

func TestNewEntry_RejectsEmptyMessage(t *testing.T) {
	_, err := audit.NewEntry(audit.EventMatchMade, "", time.Now(), nil)
	assert.Error(t, err)
}

func TestNewEntry_RejectsNonScalarMetadata(t *testing.T) {
	_, err := audit.NewEntry(audit.EventMatchMade, "message", time.Now(), map[string]interface{}{
		"nested": map[string]string{"not": "allowed"},
	})
	assert.Error(t, err)

	_, err = audit.NewEntry(audit.EventMatchMade, "message", time.Now(), map[string]interface{}{
		"slice": []int{1, 2, 3},
	})
	assert.Error(t, err)
}

func TestEntry_MetadataIsCopied(t *testing.T) {
	metadata := map[string]interface{}{"key": "original"}
	entry, err := audit.NewEntry(audit.EventMatchMade, "message", time.Now(), metadata)
	require.NoError(t, err)

	metadata["key"] = "mutated"

	assert.Equal(t, "original", entry.Metadata["key"])
}

func TestEntry_BuilderHelpers(t *testing.T) {
	entry, err := audit.NewEntry(audit.EventNeedCreated, "need registered", time.Now(), nil)
	require.NoError(t, err)

	entry = entry.WithEntity("abc-123", "need").WithUser("operator-7").WithPriority("Critical")

	assert.Equal(t, "abc-123", entry.EntityID)
	assert.Equal(t, "need", entry.EntityType)
	assert.Equal(t, "operator-7", entry.UserID)
	assert.Equal(t, "Critical", entry.Priority)
}
