// Package logic turns one line of user input into a command and runs it
// against the finance model.
package logic

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/fintrack-dev/fintrack/internal/finance"
	"github.com/fintrack-dev/fintrack/internal/importer"
	"github.com/fintrack-dev/fintrack/internal/model"
)

// Result is what a command reports back to the user.
type Result struct {
	Feedback string
	Exit     bool
}

// Context carries what commands need besides the model.
type Context struct {
	Model      finance.Model
	Currency   string
	DateFormat string
	Importers  *importer.Registry
	Inputs     []string // lines entered this session, oldest first
}

// Command is one executable user request.
type Command interface {
	Execute(ctx *Context) (Result, error)
}

// CommandError wraps a failure with the command word that produced it.
type CommandError struct {
	Word string
	Err  error
}

func (e *CommandError) Error() string { return e.Word + ": " + e.Err.Error() }

func (e *CommandError) Unwrap() error { return e.Err }

func fail(word string, err error) (Result, error) {
	return Result{}, &CommandError{Word: word, Err: err}
}

// Money formats an amount with the configured currency symbol.
func (ctx *Context) Money(d decimal.Decimal) string {
	return ctx.Currency + d.StringFixed(2)
}

// FormatRecord renders a record on one line.
func (ctx *Context) FormatRecord(r model.Record) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s on %s", r.Name, ctx.Money(r.Amount), r.Date.Format(ctx.DateFormat))
	if len(r.Categories) > 0 {
		fmt.Fprintf(&b, " [%s]", strings.Join(r.Categories, ", "))
	}
	if r.Description != "" {
		fmt.Fprintf(&b, " - %s", r.Description)
	}
	return b.String()
}

// FormatList renders records numbered from 1, as the filtered view shows them.
func (ctx *Context) FormatList(rs []model.Record) string {
	var b strings.Builder
	for i, r := range rs {
		fmt.Fprintf(&b, "%d. %s\n", i+1, ctx.FormatRecord(r))
	}
	return b.String()
}
