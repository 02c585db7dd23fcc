package model

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Record is one financial entry. Records are values: an edit produces a new
// Record carrying the same ID.
type Record struct {
	ID          uuid.UUID
	Name        string
	Amount      decimal.Decimal
	Date        time.Time
	Description string
	Categories  []string // sorted, unique
}

// RecordParams holds the user-supplied fields of a Record.
type RecordParams struct {
	Name        string
	Amount      decimal.Decimal
	Date        time.Time
	Description string
	Categories  []string
}

// NewRecord validates params and returns a Record with a fresh ID.
func NewRecord(params RecordParams) (Record, error) {
	return buildRecord(uuid.New(), params)
}

// WithID validates params and returns a Record with the given ID. Used when
// loading from storage and when editing an existing record.
func WithID(id uuid.UUID, params RecordParams) (Record, error) {
	if id == uuid.Nil {
		return Record{}, ValidationError{Field: "id", Reason: "must not be empty"}
	}
	return buildRecord(id, params)
}

func buildRecord(id uuid.UUID, params RecordParams) (Record, error) {
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return Record{}, ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if err := ValidateAmount("amount", params.Amount); err != nil {
		return Record{}, err
	}
	if params.Date.IsZero() {
		return Record{}, ValidationError{Field: "date", Reason: "must be set"}
	}
	cats, err := NormalizeCategories(params.Categories)
	if err != nil {
		return Record{}, err
	}

	return Record{
		ID:          id,
		Name:        name,
		Amount:      params.Amount.Round(2),
		Date:        TruncateDate(params.Date),
		Description: strings.TrimSpace(params.Description),
		Categories:  cats,
	}, nil
}

// Params returns the editable fields of r.
func (r Record) Params() RecordParams {
	return RecordParams{
		Name:        r.Name,
		Amount:      r.Amount,
		Date:        r.Date,
		Description: r.Description,
		Categories:  slices.Clone(r.Categories),
	}
}

// HasCategory reports whether r is tagged with category.
func (r Record) HasCategory(category string, caseInsensitive bool) bool {
	for _, c := range r.Categories {
		if c == category || caseInsensitive && strings.EqualFold(c, category) {
			return true
		}
	}
	return false
}

// Equal reports whether two records hold the same identity and values.
func (r Record) Equal(other Record) bool {
	return r.ID == other.ID &&
		r.Name == other.Name &&
		r.Amount.Equal(other.Amount) &&
		r.Date.Equal(other.Date) &&
		r.Description == other.Description &&
		slices.Equal(r.Categories, other.Categories)
}

// ValidateAmount checks that d is non-negative with at most 2 decimal places.
func ValidateAmount(field string, d decimal.Decimal) error {
	if d.IsNegative() {
		return ValidationError{Field: field, Reason: "must not be negative"}
	}
	if d.Exponent() < -2 && !d.Equal(d.Truncate(2)) {
		return ValidationError{Field: field, Reason: "must have at most 2 decimal places"}
	}
	return nil
}

// NormalizeCategories trims, dedupes and sorts category names.
func NormalizeCategories(in []string) ([]string, error) {
	if len(in) == 0 {
		return nil, nil
	}
	out := make([]string, 0, len(in))
	for _, c := range in {
		c = strings.TrimSpace(c)
		if err := ValidateCategory(c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	slices.Sort(out)
	return slices.Compact(out), nil
}

// ValidateCategory checks a single category name.
func ValidateCategory(name string) error {
	if name == "" {
		return ValidationError{Field: "category", Reason: "must not be empty"}
	}
	if strings.ContainsAny(name, " \t\n;") {
		return ValidationError{Field: "category", Reason: "must be a single word: " + name}
	}
	return nil
}

// TruncateDate drops the time of day and normalizes to UTC.
func TruncateDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
