package logic

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/agnivade/levenshtein"
	"github.com/shopspring/decimal"

	"github.com/fintrack-dev/fintrack/internal/model"
)

const (
	wordAdd        = "add"
	wordDelete     = "delete"
	wordEdit       = "edit"
	wordAllocate   = "allocate"
	wordDeallocate = "deallocate"
	wordBudget     = "budget"
	wordFind       = "find"
	wordFilter     = "filter"
	wordList       = "list"
	wordSummary    = "summary"
	wordUndo       = "undo"
	wordRedo       = "redo"
	wordHistory    = "history"
	wordImport     = "import"
	wordHelp       = "help"
	wordExit       = "exit"
)

// maxSuggestDistance bounds how far a typo may be from a known command word
// and still get a suggestion.
const maxSuggestDistance = 2

// ParseError reports malformed input for a known command.
type ParseError struct {
	Word   string
	Reason string
	Usage  string
}

func (e *ParseError) Error() string {
	msg := "invalid " + e.Word + " command: " + e.Reason
	if e.Usage != "" {
		msg += "\n" + e.Usage
	}
	return msg
}

// UnknownCommandError reports an unrecognized command word.
type UnknownCommandError struct {
	Word       string
	Suggestion string
}

func (e *UnknownCommandError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("unknown command %q, did you mean %q?", e.Word, e.Suggestion)
	}
	return fmt.Sprintf("unknown command %q, type help to list commands", e.Word)
}

// ErrEmptyInput is returned for a blank line.
var ErrEmptyInput = errors.New("empty input")

type commandSpec struct {
	word    string
	aliases []string
	usage   string
	parse   func(p *Parser, args string) (Command, error)
}

var commandSpecs []commandSpec

func init() {
	commandSpecs = []commandSpec{
		{wordAdd, []string{"a"}, "add n/NAME $/AMOUNT [d/DATE] [r/DESCRIPTION] [c/CATEGORY]...", (*Parser).parseAdd},
		{wordDelete, []string{"del"}, "delete INDEX", (*Parser).parseDelete},
		{wordEdit, []string{"e"}, "edit INDEX [n/NAME] [$/AMOUNT] [d/DATE] [r/DESCRIPTION] [c/CATEGORY]...", (*Parser).parseEdit},
		{wordAllocate, []string{"allo"}, "allocate $/AMOUNT c/CATEGORY", (*Parser).parseAllocate},
		{wordDeallocate, []string{"deallo"}, "deallocate c/CATEGORY", (*Parser).parseDeallocate},
		{wordBudget, nil, "budget $/AMOUNT", (*Parser).parseBudget},
		{wordFind, []string{"f"}, "find KEYWORD [MORE_KEYWORDS]...", (*Parser).parseFind},
		{wordFilter, nil, "filter c/CATEGORY [c/CATEGORY]...", (*Parser).parseFilter},
		{wordList, []string{"l"}, "list", noArgs(func() Command { return &ListCommand{} })},
		{wordSummary, []string{"sum"}, "summary", noArgs(func() Command { return &SummaryCommand{} })},
		{wordUndo, []string{"u"}, "undo", noArgs(func() Command { return &UndoCommand{} })},
		{wordRedo, []string{"r"}, "redo", noArgs(func() Command { return &RedoCommand{} })},
		{wordHistory, []string{"h"}, "history", noArgs(func() Command { return &HistoryCommand{} })},
		{wordImport, nil, "import FORMAT PATH", (*Parser).parseImport},
		{wordHelp, nil, "help", noArgs(func() Command { return &HelpCommand{} })},
		{wordExit, []string{"quit"}, "exit", noArgs(func() Command { return &ExitCommand{} })},
	}
}

func noArgs(build func() Command) func(*Parser, string) (Command, error) {
	return func(*Parser, string) (Command, error) { return build(), nil }
}

// Parser converts input lines to commands.
type Parser struct {
	dateFormat string
	now        func() time.Time
}

// NewParser returns a Parser reading dates in dateFormat. now supplies the
// default date for new records; nil means time.Now.
func NewParser(dateFormat string, now func() time.Time) *Parser {
	if now == nil {
		now = time.Now
	}
	return &Parser{dateFormat: dateFormat, now: now}
}

// Parse converts one line of input to a Command.
func (p *Parser) Parse(line string) (Command, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, ErrEmptyInput
	}
	word, args, _ := strings.Cut(line, " ")
	word = strings.ToLower(word)

	for _, spec := range commandSpecs {
		if spec.word == word || containsWord(spec.aliases, word) {
			return spec.parse(p, args)
		}
	}
	return nil, &UnknownCommandError{Word: word, Suggestion: suggest(word)}
}

func containsWord(words []string, w string) bool {
	for _, x := range words {
		if x == w {
			return true
		}
	}
	return false
}

// suggest returns the closest command word within maxSuggestDistance.
func suggest(word string) string {
	best, bestDist := "", maxSuggestDistance+1
	for _, spec := range commandSpecs {
		if d := levenshtein.ComputeDistance(word, spec.word); d < bestDist {
			best, bestDist = spec.word, d
		}
	}
	return best
}

func usageOf(word string) string {
	for _, spec := range commandSpecs {
		if spec.word == word {
			return "Usage: " + spec.usage
		}
	}
	return ""
}

func parseErr(word, reason string) error {
	return &ParseError{Word: word, Reason: reason, Usage: usageOf(word)}
}

func (p *Parser) parseAdd(args string) (Command, error) {
	m := tokenize(args, prefixName, prefixAmount, prefixDate, prefixDescription, prefixCategory)
	if m.preamble != "" {
		return nil, parseErr(wordAdd, "unexpected text "+strconv.Quote(m.preamble))
	}
	name, ok := m.last(prefixName)
	if !ok {
		return nil, parseErr(wordAdd, "missing name")
	}
	rawAmount, ok := m.last(prefixAmount)
	if !ok {
		return nil, parseErr(wordAdd, "missing amount")
	}
	amount, err := parseAmount(rawAmount)
	if err != nil {
		return nil, err
	}

	date := model.TruncateDate(p.now())
	if raw, ok := m.last(prefixDate); ok {
		if date, err = p.parseDate(raw); err != nil {
			return nil, err
		}
	}
	description, _ := m.last(prefixDescription)

	return &AddCommand{Params: model.RecordParams{
		Name:        name,
		Amount:      amount,
		Date:        date,
		Description: description,
		Categories:  m.values[prefixCategory],
	}}, nil
}

func (p *Parser) parseDelete(args string) (Command, error) {
	index, err := parseIndex(wordDelete, strings.TrimSpace(args))
	if err != nil {
		return nil, err
	}
	return &DeleteCommand{Index: index}, nil
}

func (p *Parser) parseEdit(args string) (Command, error) {
	m := tokenize(args, prefixName, prefixAmount, prefixDate, prefixDescription, prefixCategory)
	index, err := parseIndex(wordEdit, m.preamble)
	if err != nil {
		return nil, err
	}

	var edit RecordEdit
	if v, ok := m.last(prefixName); ok {
		edit.Name = &v
	}
	if v, ok := m.last(prefixAmount); ok {
		amount, err := parseAmount(v)
		if err != nil {
			return nil, err
		}
		edit.Amount = &amount
	}
	if v, ok := m.last(prefixDate); ok {
		date, err := p.parseDate(v)
		if err != nil {
			return nil, err
		}
		edit.Date = &date
	}
	if v, ok := m.last(prefixDescription); ok {
		edit.Description = &v
	}
	if m.has(prefixCategory) {
		edit.SetCategories = true
		// A lone empty "c/" clears the categories.
		if cats := m.values[prefixCategory]; !(len(cats) == 1 && cats[0] == "") {
			edit.Categories = cats
		}
	}
	if edit.empty() {
		return nil, parseErr(wordEdit, ErrNothingToEdit.Error())
	}
	return &EditCommand{Index: index, Edit: edit}, nil
}

func (p *Parser) parseAllocate(args string) (Command, error) {
	m := tokenize(args, prefixAmount, prefixCategory)
	rawAmount, okAmount := m.last(prefixAmount)
	category, okCategory := m.last(prefixCategory)
	if !okAmount || !okCategory || m.preamble != "" {
		return nil, parseErr(wordAllocate, "amount and category are required")
	}
	amount, err := parseAmount(rawAmount)
	if err != nil {
		return nil, err
	}
	return &AllocateCommand{Category: category, Amount: amount}, nil
}

func (p *Parser) parseDeallocate(args string) (Command, error) {
	m := tokenize(args, prefixCategory)
	category, ok := m.last(prefixCategory)
	if !ok || category == "" || m.preamble != "" {
		return nil, parseErr(wordDeallocate, "category is required")
	}
	return &DeallocateCommand{Category: category}, nil
}

func (p *Parser) parseBudget(args string) (Command, error) {
	m := tokenize(args, prefixAmount)
	raw, ok := m.last(prefixAmount)
	if !ok || m.preamble != "" {
		return nil, parseErr(wordBudget, "amount is required")
	}
	amount, err := parseAmount(raw)
	if err != nil {
		return nil, err
	}
	return &BudgetCommand{Amount: amount}, nil
}

func (p *Parser) parseFind(args string) (Command, error) {
	keywords := strings.Fields(args)
	if len(keywords) == 0 {
		return nil, parseErr(wordFind, "at least one keyword is required")
	}
	return &FindCommand{Keywords: keywords}, nil
}

func (p *Parser) parseFilter(args string) (Command, error) {
	m := tokenize(args, prefixCategory)
	var cats []string
	for _, c := range m.values[prefixCategory] {
		if c != "" {
			cats = append(cats, c)
		}
	}
	if len(cats) == 0 || m.preamble != "" {
		return nil, parseErr(wordFilter, "at least one category is required")
	}
	return &FilterCommand{Categories: cats}, nil
}

func (p *Parser) parseImport(args string) (Command, error) {
	format, path, ok := strings.Cut(strings.TrimSpace(args), " ")
	path = strings.TrimSpace(path)
	if !ok || format == "" || path == "" {
		return nil, parseErr(wordImport, "format and path are required")
	}
	return &ImportCommand{Format: format, Path: path}, nil
}

func (p *Parser) parseDate(raw string) (time.Time, error) {
	t, err := time.Parse(p.dateFormat, strings.TrimSpace(raw))
	if err != nil {
		example := time.Date(2019, 3, 14, 0, 0, 0, 0, time.UTC).Format(p.dateFormat)
		return time.Time{}, model.ValidationError{Field: "date", Reason: fmt.Sprintf("%q is not a date like %s", raw, example)}
	}
	return t, nil
}

func parseAmount(raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Decimal{}, model.ValidationError{Field: "amount", Reason: fmt.Sprintf("%q is not a number", raw)}
	}
	if err := model.ValidateAmount("amount", d); err != nil {
		return decimal.Decimal{}, err
	}
	return d, nil
}

func parseIndex(word, raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 0, parseErr(word, "index must be a positive integer")
	}
	return n, nil
}
