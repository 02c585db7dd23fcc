package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ChaseParser parses Chase checking CSV exports. Columns are located by
// header name so reordered exports still parse.
type ChaseParser struct{}

const chaseDateFormat = "01/02/2006"

var chaseColumns = []string{"Posting Date", "Description", "Amount", "Type"}

// Format returns the parser name.
func (p *ChaseParser) Format() string { return "chase" }

// Parse reads a Chase CSV and returns BankTransactions.
func (p *ChaseParser) Parse(r io.Reader) ([]BankTransaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading chase CSV: %w", err)
	}
	if len(rows) <= 1 {
		return nil, nil
	}

	cols, err := chaseColumnIndex(rows[0])
	if err != nil {
		return nil, err
	}

	var txns []BankTransaction
	for i, row := range rows[1:] {
		if len(row) != len(rows[0]) {
			return nil, fmt.Errorf("row %d: expected %d fields, got %d", i+2, len(rows[0]), len(row))
		}
		txn, err := parseChaseRow(row, cols)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		txns = append(txns, txn)
	}
	return txns, nil
}

func chaseColumnIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(h)] = i
	}
	for _, want := range chaseColumns {
		if _, ok := idx[want]; !ok {
			return nil, fmt.Errorf("chase CSV missing column %q", want)
		}
	}
	return idx, nil
}

func parseChaseRow(row []string, cols map[string]int) (BankTransaction, error) {
	rawDate := row[cols["Posting Date"]]
	date, err := time.Parse(chaseDateFormat, rawDate)
	if err != nil {
		return BankTransaction{}, fmt.Errorf("parsing date %q: %w", rawDate, err)
	}

	rawAmount := row[cols["Amount"]]
	amount, err := decimal.NewFromString(rawAmount)
	if err != nil {
		return BankTransaction{}, fmt.Errorf("parsing amount %q: %w", rawAmount, err)
	}

	desc := strings.TrimSpace(row[cols["Description"]])
	return BankTransaction{
		Date:        date,
		Description: desc,
		Amount:      amount,
		Reference:   chaseRef(date, desc),
		Type:        row[cols["Type"]],
	}, nil
}

// chaseRef builds a reference like chase_20250103_GITHUBPROS.
func chaseRef(date time.Time, desc string) string {
	var b strings.Builder
	for _, r := range desc {
		if b.Len() == 10 {
			break
		}
		if r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return "chase_" + date.Format("20060102") + "_" + b.String()
}
