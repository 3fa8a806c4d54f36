package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsKnownStatus(t *testing.T) {
	for _, s := range KnownStatuses {
		assert.True(t, IsKnownStatus(s), s)
	}
	assert.False(t, IsKnownStatus("shipped"))
	assert.False(t, IsKnownStatus("Delivered"), "statuses are case-sensitive")
	assert.False(t, IsKnownStatus(""))
}

func TestProgressPercent(t *testing.T) {
	tests := []struct {
		status string
		want   int
	}{
		{StatusPending, 10},
		{StatusPaymentVerification, 10},
		{StatusQueued, 33},
		{StatusDelayed, 50},
		{StatusInProgress, 66},
		{StatusDelivered, 100},
		{StatusCancelled, 100},
		{"unknown", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ProgressPercent(tt.status), tt.status)
	}
}
