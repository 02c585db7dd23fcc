// Package finance is the entry point commands use to read and change the
// tracker. Every mutation is applied to a working copy and committed to the
// undo history in the same call, so live state and history cannot diverge.
package finance

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fintrack-dev/fintrack/internal/model"
	"github.com/fintrack-dev/fintrack/internal/tracker"
)

// Model is the command-facing API of the tracker.
type Model interface {
	AddRecord(r model.Record) error
	DeleteRecord(id uuid.UUID) error
	SetRecord(targetID uuid.UUID, edited model.Record) error
	AddCategoryBudget(cb model.CategoryBudget) error
	RemoveCategoryBudget(category string) error
	SetTotalBudget(amount decimal.Decimal) error
	Apply(description string, fn func(tx *Tx) error) error

	UpdateFilteredRecordList(pred Predicate)
	FilteredRecords() []model.Record
	RecordAt(index int) (model.Record, error)

	Undo() error
	Redo() error
	CanUndo() bool
	CanRedo() bool

	Tracker() *tracker.State
	CaseInsensitive() bool
}

// InvalidIndexError is returned when a 1-based display index falls outside
// the filtered view.
type InvalidIndexError struct {
	Index int
	Size  int
}

func (e *InvalidIndexError) Error() string {
	if e.Size == 0 {
		return fmt.Sprintf("invalid record index %d: no records displayed", e.Index)
	}
	return fmt.Sprintf("invalid record index %d: must be between 1 and %d", e.Index, e.Size)
}

// EventKind says what changed the live state.
type EventKind int

const (
	EventCommitted EventKind = iota
	EventUndone
	EventRedone
	EventReset
)

func (k EventKind) String() string {
	switch k {
	case EventCommitted:
		return "committed"
	case EventUndone:
		return "undone"
	case EventRedone:
		return "redone"
	case EventReset:
		return "reset"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event is delivered to subscribers after the live state changes.
type Event struct {
	Kind          EventKind
	Description   string
	BudgetChanged bool
}
