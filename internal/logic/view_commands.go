package logic

import (
	"fmt"
	"strings"

	"github.com/fintrack-dev/fintrack/internal/finance"
)

// ListCommand clears the filter.
type ListCommand struct{}

func (c *ListCommand) Execute(ctx *Context) (Result, error) {
	ctx.Model.UpdateFilteredRecordList(finance.ShowAll)
	return Result{Feedback: "Listed all records"}, nil
}

// FindCommand shows records whose name contains any keyword.
type FindCommand struct {
	Keywords []string
}

func (c *FindCommand) Execute(ctx *Context) (Result, error) {
	ctx.Model.UpdateFilteredRecordList(finance.NameContainsAny(c.Keywords...))
	return Result{Feedback: pluralize(len(ctx.Model.FilteredRecords()), "record") + " listed!"}, nil
}

// FilterCommand shows records tagged with any of the categories.
type FilterCommand struct {
	Categories []string
}

func (c *FilterCommand) Execute(ctx *Context) (Result, error) {
	ctx.Model.UpdateFilteredRecordList(finance.HasAnyCategory(ctx.Model.CaseInsensitive(), c.Categories...))
	return Result{Feedback: pluralize(len(ctx.Model.FilteredRecords()), "record") + " listed!"}, nil
}

// UndoCommand restores the previous state.
type UndoCommand struct{}

func (c *UndoCommand) Execute(ctx *Context) (Result, error) {
	if err := ctx.Model.Undo(); err != nil {
		return fail(wordUndo, err)
	}
	return Result{Feedback: "Undo success!"}, nil
}

// RedoCommand reapplies the last undone change.
type RedoCommand struct{}

func (c *RedoCommand) Execute(ctx *Context) (Result, error) {
	if err := ctx.Model.Redo(); err != nil {
		return fail(wordRedo, err)
	}
	return Result{Feedback: "Redo success!"}, nil
}

// HistoryCommand lists the lines entered this session, newest first.
type HistoryCommand struct{}

func (c *HistoryCommand) Execute(ctx *Context) (Result, error) {
	if len(ctx.Inputs) == 0 {
		return Result{Feedback: "You have not yet entered any commands."}, nil
	}
	lines := make([]string, 0, len(ctx.Inputs))
	for i := len(ctx.Inputs) - 1; i >= 0; i-- {
		lines = append(lines, ctx.Inputs[i])
	}
	return Result{Feedback: "Entered commands (from most recent to earliest):\n" + strings.Join(lines, "\n")}, nil
}

// HelpCommand prints usage for every command.
type HelpCommand struct{}

func (c *HelpCommand) Execute(*Context) (Result, error) {
	var b strings.Builder
	for _, spec := range commandSpecs {
		fmt.Fprintf(&b, "%s\n", spec.usage)
	}
	return Result{Feedback: strings.TrimRight(b.String(), "\n")}, nil
}

// ExitCommand ends the session.
type ExitCommand struct{}

func (c *ExitCommand) Execute(*Context) (Result, error) {
	return Result{Feedback: "Exiting finance tracker as requested ...", Exit: true}, nil
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
