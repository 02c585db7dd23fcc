// Package sample seeds a new tracker with example records.
package sample

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintrack-dev/fintrack/internal/model"
	"github.com/fintrack-dev/fintrack/internal/tracker"
)

const standardDescription = "some description"

type entry struct {
	name     string
	amount   int64
	category string
}

var entries = []entry{
	{"Weekly groceries purchase", 100, "Shopping"},
	{"H and M Clothes", 100, "Shopping"},
	{"Chicken Rice lunch", 100, "Food"},
	{"Haircut", 100, "entertainment"},
	{"Bus Ride", 100, "Transportation"},
	{"Cigarettes", 100, "vices"},
}

// Records returns the sample records, each with a fresh ID.
func Records() []model.Record {
	date := time.Date(2018, 2, 12, 0, 0, 0, 0, time.UTC)
	out := make([]model.Record, 0, len(entries))
	for _, e := range entries {
		r, err := model.NewRecord(model.RecordParams{
			Name:        e.name,
			Amount:      decimal.NewFromInt(e.amount),
			Date:        date,
			Description: standardDescription,
			Categories:  []string{e.category},
		})
		if err != nil {
			panic("invalid sample record " + e.name + ": " + err.Error())
		}
		out = append(out, r)
	}
	return out
}

// Tracker returns a tracker holding the sample records and no budget.
func Tracker(caseInsensitive bool) *tracker.State {
	s := tracker.New(caseInsensitive)
	for _, r := range Records() {
		s.Add(r)
	}
	return s
}
