package finance

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fintrack-dev/fintrack/internal/model"
	"github.com/fintrack-dev/fintrack/internal/tracker"
)

var (
	// ErrStaleTransaction is returned when committing a Tx whose base state
	// was replaced by another commit, undo or redo.
	ErrStaleTransaction = errors.New("transaction base state is no longer current")
	// ErrTxDone is returned when using a Tx after Commit or Discard.
	ErrTxDone = errors.New("transaction already committed or discarded")
)

// Tx is a pending change. Mutations apply to a private working copy; nothing
// is visible until Commit, and Discard drops the copy.
type Tx struct {
	m             *Manager
	base          uint64
	work          *tracker.State
	changed       bool
	budgetChanged bool
	done          bool
}

// Begin starts a pending change against the live state.
func (m *Manager) Begin() *Tx {
	return &Tx{m: m, base: m.version, work: m.live.Clone()}
}

// State returns a copy of the working state.
func (tx *Tx) State() *tracker.State { return tx.work.Clone() }

// AddRecord appends r.
func (tx *Tx) AddRecord(r model.Record) error {
	if tx.done {
		return ErrTxDone
	}
	tx.work.Add(r)
	tx.changed = true
	return nil
}

// DeleteRecord removes the record with id.
func (tx *Tx) DeleteRecord(id uuid.UUID) error {
	if tx.done {
		return ErrTxDone
	}
	if err := tx.work.Remove(id); err != nil {
		return err
	}
	tx.changed = true
	return nil
}

// SetRecord replaces the record with targetID.
func (tx *Tx) SetRecord(targetID uuid.UUID, edited model.Record) error {
	if tx.done {
		return ErrTxDone
	}
	if err := tx.work.Set(targetID, edited); err != nil {
		return err
	}
	tx.changed = true
	return nil
}

// AddCategoryBudget validates and upserts a category allocation.
func (tx *Tx) AddCategoryBudget(cb model.CategoryBudget) error {
	if tx.done {
		return ErrTxDone
	}
	if err := tx.work.Allocate(cb); err != nil {
		return err
	}
	tx.changed, tx.budgetChanged = true, true
	return nil
}

// RemoveCategoryBudget drops a category allocation.
func (tx *Tx) RemoveCategoryBudget(category string) error {
	if tx.done {
		return ErrTxDone
	}
	tx.work.RemoveAllocation(category)
	tx.changed, tx.budgetChanged = true, true
	return nil
}

// SetTotalBudget replaces the total budget.
func (tx *Tx) SetTotalBudget(amount decimal.Decimal) error {
	if tx.done {
		return ErrTxDone
	}
	if err := tx.work.SetTotalBudget(amount); err != nil {
		return err
	}
	tx.changed, tx.budgetChanged = true, true
	return nil
}

// Commit makes the working copy live and records it in the history. A Tx
// with no successful mutations commits nothing.
func (tx *Tx) Commit(description string) error {
	if tx.done {
		return ErrTxDone
	}
	if tx.base != tx.m.version {
		tx.done = true
		return ErrStaleTransaction
	}
	tx.done = true
	if !tx.changed {
		return nil
	}
	tx.m.swap(tx.work)
	tx.m.history.Commit(tx.work)
	tx.m.logger.Debug("committed", "change", description, "snapshots", tx.m.history.Len())
	tx.m.notify(Event{Kind: EventCommitted, Description: description, BudgetChanged: tx.budgetChanged})
	return nil
}

// Discard drops the working copy. Safe to call after Commit.
func (tx *Tx) Discard() {
	tx.done = true
	tx.work = nil
}
