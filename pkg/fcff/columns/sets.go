package columns

import (
	"sort"
	"strings"
)

// Sets defines named column groups that expand into lists of columns.
// - "valuation": the upstream FCFF figures
// - "live": columns backed by a live quote
// - "profile": reference data
var Sets = map[string][]string{
	"valuation": {"ticker", "wacc", "fcff", "shares", "fcf_ps", "fair_value", "undervalued%"},
	"live":      {"ticker", "price", "chg%", "fair_value", "upside%"},
	"profile":   {"ticker", "name", "sector", "liked"},
}

// ExpandSets returns the union of columns for the given set names.
// It preserves the order of the sets and the order of columns within each set,
// and de-duplicates columns while keeping the first occurrence.
func ExpandSets(setNames []string) ([]string, error) {
	out := make([]string, 0, 16)
	seen := map[string]struct{}{}
	for _, name := range setNames {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		cols, ok := Sets[name]
		if !ok {
			return nil, &UnknownSetError{Name: name, Available: availableSets()}
		}
		for _, c := range cols {
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			out = append(out, c)
		}
	}
	return out, nil
}

// UnknownSetError reports an unknown column set name.
type UnknownSetError struct {
	Name      string
	Available []string
}

func (e *UnknownSetError) Error() string {
	return "unknown column set: " + e.Name + "; available: " + strings.Join(e.Available, ", ")
}

// UnknownColumnError reports a column with no resolver.
type UnknownColumnError struct {
	Name string
}

func (e *UnknownColumnError) Error() string {
	return "unknown column: " + e.Name + "; available: " + strings.Join(Available(), ", ")
}

// Validate fails on the first column with no resolver.
func Validate(cols []string) error {
	for _, c := range cols {
		if _, ok := Registry[c]; !ok {
			return &UnknownColumnError{Name: c}
		}
	}
	return nil
}

// Available lists registered column keys, sorted.
func Available() []string {
	keys := make([]string, 0, len(Registry))
	for k := range Registry {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func availableSets() []string {
	keys := make([]string, 0, len(Sets))
	for k := range Sets {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
