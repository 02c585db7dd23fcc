package storage

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fintrack-dev/fintrack/internal/model"
)

// RecordsHeader is the CSV header for records.csv.
const RecordsHeader = "id,name,amount,date,description,categories"

const (
	numFields     = 6
	dateFormat    = "2006-01-02"
	categorySep   = ";"
	colID         = 0
	colName       = 1
	colAmount     = 2
	colDate       = 3
	colDesc       = 4
	colCategories = 5
)

// ReadRecords reads all records from a records.csv reader.
func ReadRecords(r io.Reader) ([]model.Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading records CSV: %w", err)
	}

	if len(rows) == 0 {
		return nil, nil
	}

	// Skip header row.
	var records []model.Record
	for i, row := range rows[1:] {
		rec, err := UnmarshalRecord(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// WriteRecords writes records to a records.csv writer (including header).
func WriteRecords(w io.Writer, records []model.Record) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(strings.Split(RecordsHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, rec := range records {
		if err := cw.Write(MarshalRecord(rec)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalRecord converts a Record to a CSV row.
func MarshalRecord(rec model.Record) []string {
	row := make([]string, numFields)
	row[colID] = rec.ID.String()
	row[colName] = rec.Name
	row[colAmount] = rec.Amount.StringFixed(2)
	row[colDate] = rec.Date.Format(dateFormat)
	row[colDesc] = rec.Description
	row[colCategories] = strings.Join(rec.Categories, categorySep)
	return row
}

// UnmarshalRecord converts a CSV row to a Record, validating every field.
func UnmarshalRecord(row []string) (model.Record, error) {
	if len(row) != numFields {
		return model.Record{}, fmt.Errorf("expected %d fields, got %d", numFields, len(row))
	}

	id, err := uuid.Parse(row[colID])
	if err != nil {
		return model.Record{}, fmt.Errorf("parsing id %q: %w", row[colID], err)
	}

	amount, err := decimal.NewFromString(row[colAmount])
	if err != nil {
		return model.Record{}, fmt.Errorf("parsing amount %q: %w", row[colAmount], err)
	}

	date, err := time.Parse(dateFormat, row[colDate])
	if err != nil {
		return model.Record{}, fmt.Errorf("parsing date %q: %w", row[colDate], err)
	}

	var categories []string
	if row[colCategories] != "" {
		categories = strings.Split(row[colCategories], categorySep)
	}

	rec, err := model.WithID(id, model.RecordParams{
		Name:        row[colName],
		Amount:      amount,
		Date:        date,
		Description: row[colDesc],
		Categories:  categories,
	})
	if err != nil {
		return model.Record{}, fmt.Errorf("record %s: %w", id, err)
	}
	return rec, nil
}
