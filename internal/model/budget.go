package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CategoryBudget is the allocation limit for one category.
type CategoryBudget struct {
	Category string
	Amount   decimal.Decimal
}

// NewCategoryBudget validates and returns a CategoryBudget.
func NewCategoryBudget(category string, amount decimal.Decimal) (CategoryBudget, error) {
	category = strings.TrimSpace(category)
	if err := ValidateCategory(category); err != nil {
		return CategoryBudget{}, err
	}
	if err := ValidateAmount("budget", amount); err != nil {
		return CategoryBudget{}, err
	}
	return CategoryBudget{Category: category, Amount: amount.Round(2)}, nil
}

// Key returns the identity of the allocation under the given case rule.
func (b CategoryBudget) Key(caseInsensitive bool) string {
	return CategoryKey(b.Category, caseInsensitive)
}

// CategoryKey folds a category name for ledger lookups.
func CategoryKey(category string, caseInsensitive bool) string {
	if caseInsensitive {
		return strings.ToLower(category)
	}
	return category
}
