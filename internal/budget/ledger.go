// Package budget holds the total budget and the per-category allocations
// drawn against it.
package budget

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/fintrack-dev/fintrack/internal/model"
)

// CategoryBudgetExceedsTotalError is returned when an allocation would push
// the sum of allocations above the total budget.
type CategoryBudgetExceedsTotalError struct {
	Category  string
	Requested decimal.Decimal
	Others    decimal.Decimal // allocated to every other category
	Total     decimal.Decimal
}

func (e *CategoryBudgetExceedsTotalError) Error() string {
	return fmt.Sprintf("category budget for %s (%s) exceeds total budget: %s of %s allocated elsewhere",
		e.Category, e.Requested.StringFixed(2), e.Others.StringFixed(2), e.Total.StringFixed(2))
}

// InvalidBudgetError is returned when the total budget would drop below what
// is already allocated.
type InvalidBudgetError struct {
	Requested decimal.Decimal
	Allocated decimal.Decimal
}

func (e *InvalidBudgetError) Error() string {
	return fmt.Sprintf("total budget %s is below the %s already allocated to categories",
		e.Requested.StringFixed(2), e.Allocated.StringFixed(2))
}

// Ledger tracks the total budget and category allocations. The invariant
// TotalAllocated() <= Total() holds after every successful call.
//
// The allocation map is copy-on-write so Clone is cheap and clones never
// observe each other's writes.
type Ledger struct {
	total           decimal.Decimal
	allocated       decimal.Decimal
	allocations     map[string]model.CategoryBudget
	shared          bool
	caseInsensitive bool
}

// NewLedger creates an empty ledger with a zero total.
func NewLedger(caseInsensitive bool) *Ledger {
	return &Ledger{
		allocations:     make(map[string]model.CategoryBudget),
		caseInsensitive: caseInsensitive,
	}
}

// Total returns the total budget.
func (l *Ledger) Total() decimal.Decimal { return l.total }

// TotalAllocated returns the sum of all category allocations.
func (l *Ledger) TotalAllocated() decimal.Decimal { return l.allocated }

// Remaining returns the unallocated part of the total budget.
func (l *Ledger) Remaining() decimal.Decimal { return l.total.Sub(l.allocated) }

// CaseInsensitive reports whether category names are folded for lookups.
func (l *Ledger) CaseInsensitive() bool { return l.caseInsensitive }

// SetTotal replaces the total budget.
func (l *Ledger) SetTotal(amount decimal.Decimal) error {
	if err := model.ValidateAmount("total budget", amount); err != nil {
		return err
	}
	if amount.LessThan(l.allocated) {
		return &InvalidBudgetError{Requested: amount, Allocated: l.allocated}
	}
	l.total = amount.Round(2)
	return nil
}

// Allocate inserts or replaces the allocation for cb.Category. The ledger is
// left unchanged on error.
func (l *Ledger) Allocate(cb model.CategoryBudget) error {
	if err := model.ValidateCategory(cb.Category); err != nil {
		return err
	}
	if err := model.ValidateAmount("budget", cb.Amount); err != nil {
		return err
	}

	key := cb.Key(l.caseInsensitive)
	others := l.allocated
	if prev, ok := l.allocations[key]; ok {
		others = others.Sub(prev.Amount)
	}
	if others.Add(cb.Amount).GreaterThan(l.total) {
		return &CategoryBudgetExceedsTotalError{
			Category:  cb.Category,
			Requested: cb.Amount,
			Others:    others,
			Total:     l.total,
		}
	}

	l.own()
	l.allocations[key] = cb
	l.allocated = others.Add(cb.Amount)
	return nil
}

// RemoveAllocation drops the allocation for category. Absent categories are
// ignored.
func (l *Ledger) RemoveAllocation(category string) {
	key := model.CategoryKey(category, l.caseInsensitive)
	prev, ok := l.allocations[key]
	if !ok {
		return
	}
	l.own()
	delete(l.allocations, key)
	l.allocated = l.allocated.Sub(prev.Amount)
}

// Allocation returns the allocation for category, if any.
func (l *Ledger) Allocation(category string) (model.CategoryBudget, bool) {
	cb, ok := l.allocations[model.CategoryKey(category, l.caseInsensitive)]
	return cb, ok
}

// Allocations returns all allocations sorted by category name.
func (l *Ledger) Allocations() []model.CategoryBudget {
	out := slices.Collect(maps.Values(l.allocations))
	slices.SortFunc(out, func(a, b model.CategoryBudget) int {
		return strings.Compare(a.Category, b.Category)
	})
	return out
}

// Len returns the number of allocated categories.
func (l *Ledger) Len() int { return len(l.allocations) }

// Clone returns an independent copy sharing storage until either side writes.
func (l *Ledger) Clone() *Ledger {
	l.shared = true
	c := *l
	return &c
}

// Equal reports whether both ledgers hold the same total and allocations.
func (l *Ledger) Equal(other *Ledger) bool {
	if !l.total.Equal(other.total) || len(l.allocations) != len(other.allocations) {
		return false
	}
	for k, a := range l.allocations {
		b, ok := other.allocations[k]
		if !ok || a.Category != b.Category || !a.Amount.Equal(b.Amount) {
			return false
		}
	}
	return true
}

func (l *Ledger) own() {
	switch {
	case l.allocations == nil:
		l.allocations = make(map[string]model.CategoryBudget)
	case l.shared:
		l.allocations = maps.Clone(l.allocations)
	}
	l.shared = false
}
