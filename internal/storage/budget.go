package storage

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/fintrack-dev/fintrack/internal/budget"
	"github.com/fintrack-dev/fintrack/internal/model"
)

// budgetFile is the on-disk shape of budget.yaml. Amounts are strings so
// they round-trip exactly.
type budgetFile struct {
	Total       string            `yaml:"total"`
	Allocations []allocationEntry `yaml:"allocations,omitempty"`
}

type allocationEntry struct {
	Category string `yaml:"category"`
	Amount   string `yaml:"amount"`
}

// ReadLedger parses budget.yaml into a ledger, enforcing the same rules as
// interactive allocation.
func ReadLedger(r io.Reader, caseInsensitive bool) (*budget.Ledger, error) {
	var f budgetFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil && err != io.EOF {
		return nil, fmt.Errorf("parsing budget: %w", err)
	}

	l := budget.NewLedger(caseInsensitive)
	if f.Total != "" {
		total, err := decimal.NewFromString(f.Total)
		if err != nil {
			return nil, fmt.Errorf("parsing total %q: %w", f.Total, err)
		}
		if err := l.SetTotal(total); err != nil {
			return nil, err
		}
	}

	for i, a := range f.Allocations {
		amount, err := decimal.NewFromString(a.Amount)
		if err != nil {
			return nil, fmt.Errorf("allocation %d: parsing amount %q: %w", i+1, a.Amount, err)
		}
		cb, err := model.NewCategoryBudget(a.Category, amount)
		if err != nil {
			return nil, fmt.Errorf("allocation %d: %w", i+1, err)
		}
		if err := l.Allocate(cb); err != nil {
			return nil, fmt.Errorf("allocation %d: %w", i+1, err)
		}
	}
	return l, nil
}

// WriteLedger writes a ledger as budget.yaml.
func WriteLedger(w io.Writer, l *budget.Ledger) error {
	f := budgetFile{Total: l.Total().StringFixed(2)}
	for _, a := range l.Allocations() {
		f.Allocations = append(f.Allocations, allocationEntry{
			Category: a.Category,
			Amount:   a.Amount.StringFixed(2),
		})
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("writing budget: %w", err)
	}
	return enc.Close()
}
