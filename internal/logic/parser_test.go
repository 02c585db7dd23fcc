package logic

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fintrack-dev/fintrack/internal/model"
)

var fixedNow = time.Date(2019, 3, 14, 16, 30, 0, 0, time.UTC)

func testParser() *Parser {
	return NewParser("02/01/2006", func() time.Time { return fixedNow })
}

func TestTokenize(t *testing.T) {
	m := tokenize("3 n/Chicken rice $/4.50 d/12/02/2019 c/Food c/Lunch",
		prefixName, prefixAmount, prefixDate, prefixDescription, prefixCategory)

	assert.Equal(t, "3", m.preamble)
	assert.Equal(t, []string{"Chicken rice"}, m.values[prefixName])
	assert.Equal(t, []string{"4.50"}, m.values[prefixAmount])
	assert.Equal(t, []string{"12/02/2019"}, m.values[prefixDate])
	assert.Equal(t, []string{"Food", "Lunch"}, m.values[prefixCategory])
	assert.False(t, m.has(prefixDescription))
}

func TestTokenize_PrefixInsideWordIsText(t *testing.T) {
	m := tokenize("n/abc/def r/and/or", prefixName, prefixDescription)
	assert.Equal(t, []string{"abc/def"}, m.values[prefixName])
	assert.Equal(t, []string{"and/or"}, m.values[prefixDescription])
}

func TestParse_Add(t *testing.T) {
	cmd, err := testParser().Parse("add n/Lunch $/5.20 d/12/02/2019 r/with team c/Food c/Work")
	require.NoError(t, err)

	add, ok := cmd.(*AddCommand)
	require.True(t, ok)
	assert.Equal(t, "Lunch", add.Params.Name)
	assert.True(t, decimal.RequireFromString("5.20").Equal(add.Params.Amount))
	assert.Equal(t, time.Date(2019, 2, 12, 0, 0, 0, 0, time.UTC), add.Params.Date)
	assert.Equal(t, "with team", add.Params.Description)
	assert.Equal(t, []string{"Food", "Work"}, add.Params.Categories)
}

func TestParse_AddDefaultsDateToToday(t *testing.T) {
	cmd, err := testParser().Parse("a n/Coffee $/3")
	require.NoError(t, err)
	add := cmd.(*AddCommand)
	assert.Equal(t, time.Date(2019, 3, 14, 0, 0, 0, 0, time.UTC), add.Params.Date)
}

func TestParse_AddErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"missing name", "add $/3"},
		{"missing amount", "add n/Coffee"},
		{"preamble", "add stray n/Coffee $/3"},
		{"bad amount", "add n/Coffee $/three"},
		{"negative amount", "add n/Coffee $/-3"},
		{"too many decimals", "add n/Coffee $/3.001"},
		{"bad date", "add n/Coffee $/3 d/2019-02-12"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := testParser().Parse(tt.input)
			require.Error(t, err)
		})
	}
}

func TestParse_ValidationErrorsAreTyped(t *testing.T) {
	_, err := testParser().Parse("add n/Coffee $/abc")
	var verr model.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "amount", verr.Field)
}

func TestParse_Delete(t *testing.T) {
	cmd, err := testParser().Parse("delete 2")
	require.NoError(t, err)
	assert.Equal(t, &DeleteCommand{Index: 2}, cmd)

	for _, bad := range []string{"delete", "delete 0", "delete -1", "delete two"} {
		_, err := testParser().Parse(bad)
		var perr *ParseError
		require.ErrorAs(t, err, &perr, bad)
		assert.Equal(t, wordDelete, perr.Word)
		assert.Contains(t, perr.Error(), "Usage: delete INDEX")
	}
}

func TestParse_Edit(t *testing.T) {
	cmd, err := testParser().Parse("edit 1 n/Dinner $/7")
	require.NoError(t, err)
	edit := cmd.(*EditCommand)
	assert.Equal(t, 1, edit.Index)
	require.NotNil(t, edit.Edit.Name)
	assert.Equal(t, "Dinner", *edit.Edit.Name)
	require.NotNil(t, edit.Edit.Amount)
	assert.True(t, decimal.NewFromInt(7).Equal(*edit.Edit.Amount))
	assert.Nil(t, edit.Edit.Date)
	assert.False(t, edit.Edit.SetCategories)
}

func TestParse_EditClearCategories(t *testing.T) {
	cmd, err := testParser().Parse("e 3 c/")
	require.NoError(t, err)
	edit := cmd.(*EditCommand)
	assert.True(t, edit.Edit.SetCategories)
	assert.Empty(t, edit.Edit.Categories)
}

func TestParse_EditNothing(t *testing.T) {
	_, err := testParser().Parse("edit 1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrNothingToEdit.Error())
}

func TestParse_Allocate(t *testing.T) {
	for _, input := range []string{"allocate $/200 c/Food", "allo c/Food $/200"} {
		cmd, err := testParser().Parse(input)
		require.NoError(t, err, input)
		alloc := cmd.(*AllocateCommand)
		assert.Equal(t, "Food", alloc.Category)
		assert.True(t, decimal.NewFromInt(200).Equal(alloc.Amount))
	}

	_, err := testParser().Parse("allocate $/200")
	require.Error(t, err)
}

func TestParse_BudgetAndDeallocate(t *testing.T) {
	cmd, err := testParser().Parse("budget $/500")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(500).Equal(cmd.(*BudgetCommand).Amount))

	cmd, err = testParser().Parse("deallo c/Food")
	require.NoError(t, err)
	assert.Equal(t, &DeallocateCommand{Category: "Food"}, cmd)

	_, err = testParser().Parse("deallocate")
	require.Error(t, err)
}

func TestParse_FindAndFilter(t *testing.T) {
	cmd, err := testParser().Parse("find rice  duck")
	require.NoError(t, err)
	assert.Equal(t, &FindCommand{Keywords: []string{"rice", "duck"}}, cmd)

	cmd, err = testParser().Parse("filter c/Food c/Transport")
	require.NoError(t, err)
	assert.Equal(t, &FilterCommand{Categories: []string{"Food", "Transport"}}, cmd)

	_, err = testParser().Parse("find")
	require.Error(t, err)
	_, err = testParser().Parse("filter Food")
	require.Error(t, err)
}

func TestParse_Import(t *testing.T) {
	cmd, err := testParser().Parse("import chase statements/jan 2025.csv")
	require.NoError(t, err)
	assert.Equal(t, &ImportCommand{Format: "chase", Path: "statements/jan 2025.csv"}, cmd)

	_, err = testParser().Parse("import chase")
	require.Error(t, err)
}

func TestParse_NoArgCommands(t *testing.T) {
	tests := map[string]Command{
		"list":    &ListCommand{},
		"l":       &ListCommand{},
		"summary": &SummaryCommand{},
		"UNDO":    &UndoCommand{},
		"u":       &UndoCommand{},
		"redo":    &RedoCommand{},
		"history": &HistoryCommand{},
		"help":    &HelpCommand{},
		"exit":    &ExitCommand{},
		"quit":    &ExitCommand{},
	}
	for input, want := range tests {
		got, err := testParser().Parse(input)
		require.NoError(t, err, input)
		assert.IsType(t, want, got, input)
	}
}

func TestParse_Empty(t *testing.T) {
	_, err := testParser().Parse("   ")
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestParse_UnknownSuggests(t *testing.T) {
	_, err := testParser().Parse("undoo")
	var uerr *UnknownCommandError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, "undo", uerr.Suggestion)
	assert.Contains(t, err.Error(), `did you mean "undo"`)

	_, err = testParser().Parse("allocat $/3 c/Food")
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, "allocate", uerr.Suggestion)

	_, err = testParser().Parse("frobnicate")
	require.ErrorAs(t, err, &uerr)
	assert.Empty(t, uerr.Suggestion)
	assert.Contains(t, err.Error(), "type help")
}
