// Package history keeps the linear undo/redo history of tracker states.
package history

import (
	"errors"

	"github.com/fintrack-dev/fintrack/internal/tracker"
)

var (
	// ErrNoUndoableState is returned by Undo at the oldest snapshot.
	ErrNoUndoableState = errors.New("no more commands to undo")
	// ErrNoRedoableState is returned by Redo at the newest snapshot.
	ErrNoRedoableState = errors.New("no more commands to redo")
)

// History is a sequence of snapshots with a cursor at the current one.
// Stored snapshots are never handed out directly; every read returns a clone.
type History struct {
	snapshots []*tracker.State
	cursor    int
	limit     int
}

// Option configures a History.
type Option func(*History)

// WithLimit caps the number of stored snapshots. Zero means unbounded.
func WithLimit(n int) Option {
	return func(h *History) {
		if n > 0 {
			h.limit = n
		}
	}
}

// New creates a History holding a snapshot of initial.
func New(initial *tracker.State, opts ...Option) *History {
	h := &History{snapshots: []*tracker.State{initial.Clone()}}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Commit discards every snapshot after the cursor and appends a snapshot of
// state, which becomes current.
func (h *History) Commit(state *tracker.State) {
	clear(h.snapshots[h.cursor+1:])
	h.snapshots = append(h.snapshots[:h.cursor+1], state.Clone())
	h.cursor = len(h.snapshots) - 1

	if h.limit > 0 && len(h.snapshots) > h.limit {
		drop := len(h.snapshots) - h.limit
		clear(h.snapshots[:drop])
		h.snapshots = h.snapshots[drop:]
		h.cursor -= drop
	}
}

// Undo moves the cursor back and returns the snapshot there.
func (h *History) Undo() (*tracker.State, error) {
	if !h.CanUndo() {
		return nil, ErrNoUndoableState
	}
	h.cursor--
	return h.Current(), nil
}

// Redo moves the cursor forward and returns the snapshot there.
func (h *History) Redo() (*tracker.State, error) {
	if !h.CanRedo() {
		return nil, ErrNoRedoableState
	}
	h.cursor++
	return h.Current(), nil
}

// CanUndo reports whether an earlier snapshot exists.
func (h *History) CanUndo() bool { return h.cursor > 0 }

// CanRedo reports whether a later snapshot exists.
func (h *History) CanRedo() bool { return h.cursor < len(h.snapshots)-1 }

// Current returns a copy of the snapshot at the cursor.
func (h *History) Current() *tracker.State { return h.snapshots[h.cursor].Clone() }

// Len returns the number of stored snapshots.
func (h *History) Len() int { return len(h.snapshots) }

// Cursor returns the index of the current snapshot.
func (h *History) Cursor() int { return h.cursor }
