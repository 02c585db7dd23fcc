package history

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fintrack-dev/fintrack/internal/model"
	"github.com/fintrack-dev/fintrack/internal/tracker"
)

func withRecord(t *testing.T, base *tracker.State, name string) *tracker.State {
	t.Helper()
	r, err := model.NewRecord(model.RecordParams{
		Name:   name,
		Amount: decimal.NewFromInt(1),
		Date:   time.Date(2019, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	s := base.Clone()
	s.Add(r)
	return s
}

func TestInitialState(t *testing.T) {
	h := New(tracker.New(false))

	assert.Equal(t, 1, h.Len())
	assert.Equal(t, 0, h.Cursor())
	assert.False(t, h.CanUndo())
	assert.False(t, h.CanRedo())

	_, err := h.Undo()
	assert.ErrorIs(t, err, ErrNoUndoableState)
	_, err = h.Redo()
	assert.ErrorIs(t, err, ErrNoRedoableState)
}

func TestUndoRestoresPrevious(t *testing.T) {
	s0 := tracker.New(false)
	h := New(s0)
	s1 := withRecord(t, s0, "first")
	s2 := withRecord(t, s1, "second")
	h.Commit(s1)
	h.Commit(s2)

	got, err := h.Undo()
	require.NoError(t, err)
	assert.True(t, got.Equal(s1))

	got, err = h.Redo()
	require.NoError(t, err)
	assert.True(t, got.Equal(s2))
	assert.False(t, h.CanRedo())
}

func TestCommitAfterUndoTruncates(t *testing.T) {
	s0 := tracker.New(false)
	h := New(s0)
	s1 := withRecord(t, s0, "first")
	s2 := withRecord(t, s1, "second")
	s3 := withRecord(t, s1, "third")

	h.Commit(s1)
	h.Commit(s2)
	_, err := h.Undo()
	require.NoError(t, err)
	assert.True(t, h.CanRedo())

	h.Commit(s3)
	assert.False(t, h.CanRedo())
	_, err = h.Redo()
	assert.ErrorIs(t, err, ErrNoRedoableState)
	assert.Equal(t, 3, h.Len())
	assert.True(t, h.Current().Equal(s3))
}

func TestUndoToStart(t *testing.T) {
	s0 := tracker.New(false)
	h := New(s0)
	h.Commit(withRecord(t, s0, "first"))

	got, err := h.Undo()
	require.NoError(t, err)
	assert.Equal(t, 0, got.Len())

	_, err = h.Undo()
	assert.ErrorIs(t, err, ErrNoUndoableState)
}

func TestSnapshotsNotMutatedByLiveState(t *testing.T) {
	live := tracker.New(false)
	h := New(live)

	live.Add(withRecord(t, tracker.New(false), "a").Records()[0])
	h.Commit(live)

	// Mutating live after commit must not reach the stored snapshot.
	live.Add(withRecord(t, tracker.New(false), "b").Records()[0])
	require.NoError(t, live.SetTotalBudget(decimal.NewFromInt(10)))
	assert.Equal(t, 1, h.Current().Len())
	assert.True(t, h.Current().Ledger().Total().IsZero())

	// Mutating a returned snapshot must not reach the stored one either.
	got := h.Current()
	got.Add(withRecord(t, tracker.New(false), "c").Records()[0])
	assert.Equal(t, 1, h.Current().Len())

	// Neither does mutating the initial state.
	prev, err := h.Undo()
	require.NoError(t, err)
	assert.Equal(t, 0, prev.Len())
}

func TestLimit(t *testing.T) {
	s := tracker.New(false)
	h := New(s, WithLimit(3))
	for _, name := range []string{"a", "b", "c", "d"} {
		s = withRecord(t, s, name)
		h.Commit(s)
	}

	assert.Equal(t, 3, h.Len())
	assert.Equal(t, 2, h.Cursor())
	assert.Equal(t, 4, h.Current().Len())

	_, err := h.Undo()
	require.NoError(t, err)
	got, err := h.Undo()
	require.NoError(t, err)
	assert.Equal(t, 2, got.Len())
	assert.False(t, h.CanUndo())
}
