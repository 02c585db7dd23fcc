package sample

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecords(t *testing.T) {
	rs := Records()
	require.Len(t, rs, 6)

	seen := make(map[string]bool)
	for _, r := range rs {
		assert.NotEmpty(t, r.Name)
		assert.Equal(t, "100.00", r.Amount.StringFixed(2))
		assert.Len(t, r.Categories, 1)
		assert.False(t, seen[r.ID.String()], "IDs must be unique")
		seen[r.ID.String()] = true
	}
}

func TestTracker(t *testing.T) {
	s := Tracker(false)
	assert.Equal(t, 6, s.Len())
	assert.Equal(t, "200.00", s.Spent("Shopping").StringFixed(2))
	assert.True(t, s.Ledger().Total().IsZero())
}
