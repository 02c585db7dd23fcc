// Package tracker holds the aggregate tracker state: the ordered records
// and the budget ledger.
package tracker

import (
	"errors"
	"slices"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fintrack-dev/fintrack/internal/budget"
	"github.com/fintrack-dev/fintrack/internal/model"
)

// ErrRecordNotFound is returned when a record ID is not in the store.
var ErrRecordNotFound = errors.New("record not found")

// State is one version of the tracker. Records keep insertion order, which
// is also display order.
//
// Records are immutable values; the slice itself is copied on the first write
// after a Clone, so clones are cheap and isolated.
type State struct {
	records []model.Record
	shared  bool
	ledger  *budget.Ledger
}

// New returns an empty State.
func New(caseInsensitive bool) *State {
	return &State{ledger: budget.NewLedger(caseInsensitive)}
}

// NewWithLedger returns an empty State drawing on an existing ledger, which
// the State takes ownership of.
func NewWithLedger(l *budget.Ledger) *State {
	return &State{ledger: l}
}

// Records returns a copy of the records in display order.
func (s *State) Records() []model.Record {
	return slices.Clone(s.records)
}

// Len returns the number of records.
func (s *State) Len() int { return len(s.records) }

// IndexOf returns the position of the record with id, or -1.
func (s *State) IndexOf(id uuid.UUID) int {
	return slices.IndexFunc(s.records, func(r model.Record) bool { return r.ID == id })
}

// Find returns the record with id.
func (s *State) Find(id uuid.UUID) (model.Record, bool) {
	i := s.IndexOf(id)
	if i < 0 {
		return model.Record{}, false
	}
	return s.records[i], true
}

// Add appends r.
func (s *State) Add(r model.Record) {
	s.own()
	s.records = append(s.records, r)
}

// Remove deletes the record with id.
func (s *State) Remove(id uuid.UUID) error {
	i := s.IndexOf(id)
	if i < 0 {
		return ErrRecordNotFound
	}
	s.own()
	s.records = slices.Delete(s.records, i, i+1)
	return nil
}

// Set replaces the record with targetID by edited, keeping its position.
func (s *State) Set(targetID uuid.UUID, edited model.Record) error {
	i := s.IndexOf(targetID)
	if i < 0 {
		return ErrRecordNotFound
	}
	s.own()
	s.records[i] = edited
	return nil
}

// Ledger returns the budget ledger. Callers must not mutate a ledger
// obtained from a State they do not own.
func (s *State) Ledger() *budget.Ledger { return s.ledger }

// SetTotalBudget replaces the total budget.
func (s *State) SetTotalBudget(amount decimal.Decimal) error {
	return s.ledger.SetTotal(amount)
}

// Allocate sets the budget for one category.
func (s *State) Allocate(cb model.CategoryBudget) error {
	return s.ledger.Allocate(cb)
}

// RemoveAllocation drops the budget for one category.
func (s *State) RemoveAllocation(category string) {
	s.ledger.RemoveAllocation(category)
}

// Clone returns an independent copy of s.
func (s *State) Clone() *State {
	s.shared = true
	return &State{
		records: s.records,
		shared:  true,
		ledger:  s.ledger.Clone(),
	}
}

// Equal reports whether both states hold the same records in the same order
// and the same ledger.
func (s *State) Equal(other *State) bool {
	return slices.EqualFunc(s.records, other.records, model.Record.Equal) &&
		s.ledger.Equal(other.ledger)
}

// Spent returns the total amount of records tagged with category.
func (s *State) Spent(category string) decimal.Decimal {
	total := decimal.Zero
	for _, r := range s.records {
		if r.HasCategory(category, s.ledger.CaseInsensitive()) {
			total = total.Add(r.Amount)
		}
	}
	return total
}

// TotalSpent returns the sum of all record amounts.
func (s *State) TotalSpent() decimal.Decimal {
	total := decimal.Zero
	for _, r := range s.records {
		total = total.Add(r.Amount)
	}
	return total
}

func (s *State) own() {
	if !s.shared {
		return
	}
	s.records = slices.Clone(s.records)
	s.shared = false
}
