package logic

import (
	"slices"
	"strings"
)

const (
	prefixName        = "n/"
	prefixAmount      = "$/"
	prefixDate        = "d/"
	prefixDescription = "r/"
	prefixCategory    = "c/"
)

// argMap holds the text before the first prefix and every prefixed value in
// the order given.
type argMap struct {
	preamble string
	values   map[string][]string
}

// tokenize splits args on prefixes that start a whitespace-separated word,
// so "d/12/02/2019" yields one date value.
func tokenize(args string, prefixes ...string) argMap {
	type mark struct {
		prefix string
		start  int
	}
	padded := " " + args

	var marks []mark
	for _, p := range prefixes {
		for from := 0; ; {
			i := strings.Index(padded[from:], " "+p)
			if i < 0 {
				break
			}
			start := from + i + 1
			marks = append(marks, mark{prefix: p, start: start})
			from = start
		}
	}
	slices.SortFunc(marks, func(a, b mark) int { return a.start - b.start })

	m := argMap{values: make(map[string][]string)}
	if len(marks) == 0 {
		m.preamble = strings.TrimSpace(padded)
		return m
	}
	m.preamble = strings.TrimSpace(padded[:marks[0].start])
	for i, mk := range marks {
		end := len(padded)
		if i+1 < len(marks) {
			end = marks[i+1].start
		}
		m.values[mk.prefix] = append(m.values[mk.prefix], strings.TrimSpace(padded[mk.start+len(mk.prefix):end]))
	}
	return m
}

// last returns the final value given for prefix.
func (m argMap) last(prefix string) (string, bool) {
	vs := m.values[prefix]
	if len(vs) == 0 {
		return "", false
	}
	return vs[len(vs)-1], true
}

func (m argMap) has(prefix string) bool {
	return len(m.values[prefix]) > 0
}
