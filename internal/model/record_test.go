package model

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func validParams() RecordParams {
	return RecordParams{
		Name:        "Chicken Rice lunch",
		Amount:      dec("4.50"),
		Date:        time.Date(2018, 2, 12, 13, 45, 0, 0, time.UTC),
		Description: "  hawker centre ",
		Categories:  []string{"Food", "Lunch", "Food"},
	}
}

func TestNewRecord(t *testing.T) {
	r, err := NewRecord(validParams())
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, r.ID)
	assert.Equal(t, "Chicken Rice lunch", r.Name)
	assert.Equal(t, "4.50", r.Amount.StringFixed(2))
	assert.Equal(t, time.Date(2018, 2, 12, 0, 0, 0, 0, time.UTC), r.Date)
	assert.Equal(t, "hawker centre", r.Description)
	assert.Equal(t, []string{"Food", "Lunch"}, r.Categories)
}

func TestNewRecord_FreshIDs(t *testing.T) {
	a, err := NewRecord(validParams())
	require.NoError(t, err)
	b, err := NewRecord(validParams())
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestNewRecord_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *RecordParams)
		field  string
	}{
		{"empty name", func(p *RecordParams) { p.Name = "   " }, "name"},
		{"negative amount", func(p *RecordParams) { p.Amount = dec("-1") }, "amount"},
		{"three decimals", func(p *RecordParams) { p.Amount = dec("1.234") }, "amount"},
		{"zero date", func(p *RecordParams) { p.Date = time.Time{} }, "date"},
		{"blank category", func(p *RecordParams) { p.Categories = []string{""} }, "category"},
		{"category with space", func(p *RecordParams) { p.Categories = []string{"Fast Food"} }, "category"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validParams()
			tt.mutate(&p)
			_, err := NewRecord(p)
			var verr ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestAmountTrailingZerosAllowed(t *testing.T) {
	p := validParams()
	p.Amount = dec("12.500")
	r, err := NewRecord(p)
	require.NoError(t, err)
	assert.Equal(t, "12.50", r.Amount.StringFixed(2))
}

func TestWithID_KeepsIdentity(t *testing.T) {
	orig, err := NewRecord(validParams())
	require.NoError(t, err)

	p := orig.Params()
	p.Name = "Duck Rice lunch"
	edited, err := WithID(orig.ID, p)
	require.NoError(t, err)

	assert.Equal(t, orig.ID, edited.ID)
	assert.False(t, orig.Equal(edited))

	_, err = WithID(uuid.Nil, p)
	assert.Error(t, err)
}

func TestParamsDoesNotAlias(t *testing.T) {
	r, err := NewRecord(validParams())
	require.NoError(t, err)

	p := r.Params()
	p.Categories[0] = "Changed"
	assert.Equal(t, "Food", r.Categories[0])
}

func TestHasCategory(t *testing.T) {
	r, err := NewRecord(validParams())
	require.NoError(t, err)

	assert.True(t, r.HasCategory("Food", false))
	assert.False(t, r.HasCategory("food", false))
	assert.True(t, r.HasCategory("food", true))
	assert.False(t, r.HasCategory("Transport", true))
}

func TestNewCategoryBudget(t *testing.T) {
	b, err := NewCategoryBudget(" Food ", dec("200"))
	require.NoError(t, err)
	assert.Equal(t, "Food", b.Category)
	assert.Equal(t, "200.00", b.Amount.StringFixed(2))

	assert.Equal(t, "Food", b.Key(false))
	assert.Equal(t, "food", b.Key(true))

	_, err = NewCategoryBudget("Food", dec("-0.01"))
	assert.Error(t, err)
	_, err = NewCategoryBudget("", dec("1"))
	assert.Error(t, err)
}
