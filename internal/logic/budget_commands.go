package logic

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/fintrack-dev/fintrack/internal/model"
)

// AllocateCommand sets the budget of one category, replacing any previous
// allocation for it.
type AllocateCommand struct {
	Category string
	Amount   decimal.Decimal
}

func (c *AllocateCommand) Execute(ctx *Context) (Result, error) {
	cb, err := model.NewCategoryBudget(c.Category, c.Amount)
	if err != nil {
		return fail(wordAllocate, err)
	}
	if err := ctx.Model.AddCategoryBudget(cb); err != nil {
		return fail(wordAllocate, err)
	}
	return Result{Feedback: fmt.Sprintf("%s category budget set to %s", cb.Category, ctx.Money(cb.Amount))}, nil
}

// DeallocateCommand removes the budget of one category.
type DeallocateCommand struct {
	Category string
}

func (c *DeallocateCommand) Execute(ctx *Context) (Result, error) {
	if _, ok := ctx.Model.Tracker().Ledger().Allocation(c.Category); !ok {
		return Result{Feedback: c.Category + " has no category budget"}, nil
	}
	if err := ctx.Model.RemoveCategoryBudget(c.Category); err != nil {
		return fail(wordDeallocate, err)
	}
	return Result{Feedback: c.Category + " category budget removed"}, nil
}

// BudgetCommand sets the total budget.
type BudgetCommand struct {
	Amount decimal.Decimal
}

func (c *BudgetCommand) Execute(ctx *Context) (Result, error) {
	if err := ctx.Model.SetTotalBudget(c.Amount); err != nil {
		return fail(wordBudget, err)
	}
	return Result{Feedback: "Total budget set to " + ctx.Money(c.Amount)}, nil
}

// SummaryCommand shows spending against each allocation.
type SummaryCommand struct{}

func (c *SummaryCommand) Execute(ctx *Context) (Result, error) {
	state := ctx.Model.Tracker()
	ledger := state.Ledger()

	var b strings.Builder
	tw := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tALLOCATED\tSPENT\tLEFT")
	for _, a := range ledger.Allocations() {
		spent := state.Spent(a.Category)
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", a.Category, ctx.Money(a.Amount), ctx.Money(spent), ctx.Money(a.Amount.Sub(spent)))
	}
	fmt.Fprintf(tw, "TOTAL\t%s\t%s\t%s\n",
		ctx.Money(ledger.Total()), ctx.Money(state.TotalSpent()), ctx.Money(ledger.Total().Sub(state.TotalSpent())))
	tw.Flush()

	fmt.Fprintf(&b, "Unallocated: %s", ctx.Money(ledger.Remaining()))
	return Result{Feedback: b.String()}, nil
}
