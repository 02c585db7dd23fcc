package storage

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fintrack-dev/fintrack/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newRecord(t *testing.T, name, amount, description string, categories ...string) model.Record {
	t.Helper()
	r, err := model.NewRecord(model.RecordParams{
		Name:        name,
		Amount:      dec(amount),
		Date:        time.Date(2018, 2, 12, 0, 0, 0, 0, time.UTC),
		Description: description,
		Categories:  categories,
	})
	require.NoError(t, err)
	return r
}

func TestRecordsRoundTrip(t *testing.T) {
	records := []model.Record{
		newRecord(t, "Weekly groceries purchase", "100", "some description", "Shopping", "Food"),
		newRecord(t, `H and M "Clothes", sale`, "39.9", ""),
	}

	var buf bytes.Buffer
	require.NoError(t, WriteRecords(&buf, records))
	assert.True(t, strings.HasPrefix(buf.String(), "id,name,"))

	got, err := ReadRecords(&buf)
	require.NoError(t, err)
	require.Len(t, got, 2)
	for i := range records {
		assert.True(t, records[i].Equal(got[i]), "row %d: %+v != %+v", i, records[i], got[i])
	}
}

func TestMarshalRecord(t *testing.T) {
	r := newRecord(t, "Bus Ride", "1.5", "to work", "Transport", "Commute")
	row := MarshalRecord(r)

	assert.Equal(t, r.ID.String(), row[colID])
	assert.Equal(t, "1.50", row[colAmount], "StringFixed(2) should pad")
	assert.Equal(t, "2018-02-12", row[colDate])
	assert.Equal(t, "Commute;Transport", row[colCategories])
}

func TestReadRecords_Empty(t *testing.T) {
	got, err := ReadRecords(strings.NewReader(""))
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = ReadRecords(strings.NewReader(RecordsHeader + "\n"))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestUnmarshalRecord_Errors(t *testing.T) {
	good := MarshalRecord(newRecord(t, "Lunch", "5", ""))

	tests := []struct {
		name string
		col  int
		val  string
		want string
	}{
		{"bad id", colID, "nope", "parsing id"},
		{"bad amount", colAmount, "five", "parsing amount"},
		{"negative amount", colAmount, "-5.00", "amount"},
		{"bad date", colDate, "12/02/2018", "parsing date"},
		{"empty name", colName, "", "name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := append([]string(nil), good...)
			row[tt.col] = tt.val
			_, err := UnmarshalRecord(row)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	_, err := UnmarshalRecord(good[:3])
	assert.Error(t, err)
}
