package filter

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/komsit37/fcff/pkg/fcff/types"
)

// Filter matches a single string value.
type Filter interface {
	Match(s string) bool
}

// Parse builds a filter from an expression:
// - Comma-separated exact values: "D05.SI,O39.SI"
// - Glob: "Real Estate*"
// - Regex: "/^C\d/"
// - Anything else: case-insensitive substring
func Parse(expr string) (Filter, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return Always(true), nil
	}
	if strings.HasPrefix(expr, "/") && strings.HasSuffix(expr, "/") && len(expr) > 2 {
		re, err := regexp.Compile(expr[1 : len(expr)-1])
		if err != nil {
			return nil, err
		}
		return Regex{re: re}, nil
	}
	if strings.Contains(expr, ",") {
		set := map[string]struct{}{}
		for _, p := range strings.Split(expr, ",") {
			p = strings.TrimSpace(p)
			if p == "" {
				continue
			}
			set[p] = struct{}{}
		}
		return ExactSet{set: set}, nil
	}
	if strings.ContainsAny(expr, "*?") {
		return Glob{pattern: expr}, nil
	}
	return SubstrCI{needle: expr}, nil
}

// Record fields a Query can target.
const (
	FieldTicker = "ticker"
	FieldName   = "name"
	FieldSector = "sector"
)

// Query matches a valuation record. An empty Field matches when any of
// ticker, name or sector matches.
type Query struct {
	Field  string
	Filter Filter
}

// ParseQuery accepts an optional "ticker:", "name:" or "sector:" prefix
// in front of a Parse expression.
func ParseQuery(expr string) (Query, error) {
	expr = strings.TrimSpace(expr)
	field := ""
	if i := strings.Index(expr, ":"); i > 0 {
		switch f := strings.ToLower(strings.TrimSpace(expr[:i])); f {
		case FieldTicker, FieldName, FieldSector:
			field = f
			expr = expr[i+1:]
		}
	}
	f, err := Parse(expr)
	if err != nil {
		return Query{}, fmt.Errorf("filter %q: %w", expr, err)
	}
	return Query{Field: field, Filter: f}, nil
}

func (q Query) Match(r types.ValuationRecord) bool {
	f := q.Filter
	if f == nil {
		f = Always(true)
	}
	switch q.Field {
	case FieldTicker:
		return f.Match(r.Ticker)
	case FieldName:
		return f.Match(r.TradingName)
	case FieldSector:
		return f.Match(r.Sector)
	default:
		return f.Match(r.Ticker) || f.Match(r.TradingName) || f.Match(r.Sector)
	}
}

// Implementations

type Always bool

func (a Always) Match(string) bool { return bool(a) }

type ExactSet struct{ set map[string]struct{} }

func (e ExactSet) Match(s string) bool {
	_, ok := e.set[s]
	return ok
}

type Glob struct{ pattern string }

func (g Glob) Match(s string) bool {
	ok, _ := filepath.Match(g.pattern, s)
	return ok
}

type Regex struct{ re *regexp.Regexp }

func (r Regex) Match(s string) bool { return r.re.MatchString(s) }

// String provides a human-readable representation useful for logs/errors.
func (g Glob) String() string  { return fmt.Sprintf("glob:%s", g.pattern) }
func (r Regex) String() string { return fmt.Sprintf("regex:%s", r.re) }

// SubstrCI matches if s contains needle, case-insensitively.
type SubstrCI struct{ needle string }

func (n SubstrCI) Match(s string) bool {
	if n.needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(n.needle))
}

func (n SubstrCI) String() string { return fmt.Sprintf("substr-ci:%s", n.needle) }
