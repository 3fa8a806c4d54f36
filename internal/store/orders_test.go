package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateAssignmentsLeavesInputUntouched(t *testing.T) {
	fields := map[string]interface{}{
		"status":      "delivered",
		"admin_notes": "checked",
	}

	updateAssignments(fields, time.Now().UTC())

	// The caller owns the map; the updated_at stamp must not leak into it.
	assert.Len(t, fields, 2)
	assert.NotContains(t, fields, "updated_at")
}

func TestUpdateAssignmentsStampsUpdatedAt(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	setClause, values := updateAssignments(map[string]interface{}{
		"status":         "delivered",
		"delivery_value": "KEY-123",
	}, now)

	assert.Equal(t, "delivery_value = ?, status = ?, updated_at = ?", setClause)
	require.Len(t, values, 3)
	assert.Equal(t, "KEY-123", values[0])
	assert.Equal(t, "delivered", values[1])
	assert.Equal(t, now, values[2])
}
