package finance

import (
	"strings"

	"github.com/fintrack-dev/fintrack/internal/model"
)

// Predicate selects records for the filtered view.
type Predicate func(model.Record) bool

// ShowAll matches every record.
func ShowAll(model.Record) bool { return true }

// NameContainsAny matches records whose name contains any keyword,
// ignoring case.
func NameContainsAny(keywords ...string) Predicate {
	lowered := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if k = strings.TrimSpace(k); k != "" {
			lowered = append(lowered, strings.ToLower(k))
		}
	}
	return func(r model.Record) bool {
		name := strings.ToLower(r.Name)
		for _, k := range lowered {
			if strings.Contains(name, k) {
				return true
			}
		}
		return false
	}
}

// HasAnyCategory matches records tagged with any of categories.
func HasAnyCategory(caseInsensitive bool, categories ...string) Predicate {
	return func(r model.Record) bool {
		for _, c := range categories {
			if r.HasCategory(c, caseInsensitive) {
				return true
			}
		}
		return false
	}
}
