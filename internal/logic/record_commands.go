package logic

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintrack-dev/fintrack/internal/finance"
	"github.com/fintrack-dev/fintrack/internal/importer"
	"github.com/fintrack-dev/fintrack/internal/model"
)

// AddCommand records a new expense.
type AddCommand struct {
	Params model.RecordParams
}

func (c *AddCommand) Execute(ctx *Context) (Result, error) {
	r, err := model.NewRecord(c.Params)
	if err != nil {
		return fail(wordAdd, err)
	}
	if err := ctx.Model.AddRecord(r); err != nil {
		return fail(wordAdd, err)
	}
	return Result{Feedback: "New record added: " + ctx.FormatRecord(r)}, nil
}

// DeleteCommand removes the record at a 1-based index of the filtered view.
type DeleteCommand struct {
	Index int
}

func (c *DeleteCommand) Execute(ctx *Context) (Result, error) {
	r, err := ctx.Model.RecordAt(c.Index)
	if err != nil {
		return fail(wordDelete, err)
	}
	if err := ctx.Model.DeleteRecord(r.ID); err != nil {
		return fail(wordDelete, err)
	}
	return Result{Feedback: "Deleted record: " + ctx.FormatRecord(r)}, nil
}

// RecordEdit holds the fields to change; nil fields are kept.
type RecordEdit struct {
	Name        *string
	Amount      *decimal.Decimal
	Date        *time.Time
	Description *string
	Categories  []string
	// SetCategories replaces the categories, even with an empty set.
	SetCategories bool
}

func (e RecordEdit) empty() bool {
	return e.Name == nil && e.Amount == nil && e.Date == nil && e.Description == nil && !e.SetCategories
}

func (e RecordEdit) apply(p model.RecordParams) model.RecordParams {
	if e.Name != nil {
		p.Name = *e.Name
	}
	if e.Amount != nil {
		p.Amount = *e.Amount
	}
	if e.Date != nil {
		p.Date = *e.Date
	}
	if e.Description != nil {
		p.Description = *e.Description
	}
	if e.SetCategories {
		p.Categories = e.Categories
	}
	return p
}

// EditCommand replaces fields of the record at a 1-based index of the
// filtered view.
type EditCommand struct {
	Index int
	Edit  RecordEdit
}

// ErrNothingToEdit is returned when an edit names no fields.
var ErrNothingToEdit = errors.New("at least one field to edit must be provided")

func (c *EditCommand) Execute(ctx *Context) (Result, error) {
	if c.Edit.empty() {
		return fail(wordEdit, ErrNothingToEdit)
	}
	target, err := ctx.Model.RecordAt(c.Index)
	if err != nil {
		return fail(wordEdit, err)
	}
	edited, err := model.WithID(target.ID, c.Edit.apply(target.Params()))
	if err != nil {
		return fail(wordEdit, err)
	}
	if err := ctx.Model.SetRecord(target.ID, edited); err != nil {
		return fail(wordEdit, err)
	}
	return Result{Feedback: "Edited record: " + ctx.FormatRecord(edited)}, nil
}

// ImportCommand adds every expense row of a bank export as one change.
type ImportCommand struct {
	Format string
	Path   string
}

func (c *ImportCommand) Execute(ctx *Context) (Result, error) {
	if ctx.Importers == nil {
		return fail(wordImport, errors.New("no importers configured"))
	}
	txns, err := ctx.Importers.ParseFile(c.Format, c.Path)
	if err != nil {
		return fail(wordImport, err)
	}
	records, err := importer.ToRecords(txns)
	if err != nil {
		return fail(wordImport, err)
	}
	if len(records) == 0 {
		return Result{Feedback: "No expenses found in " + c.Path}, nil
	}

	err = ctx.Model.Apply("import "+c.Path, func(tx *finance.Tx) error {
		for _, r := range records {
			if err := tx.AddRecord(r); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fail(wordImport, err)
	}
	return Result{Feedback: pluralize(len(records), "record") + " imported from " + c.Path}, nil
}
