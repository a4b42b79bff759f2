// Package view tracks which ticker is on screen.
package view

import (
	"fmt"
	"strings"

	"github.com/komsit37/fcff/pkg/fcff/types"
)

// Policy decides what Advance does at either end of the list.
type Policy int

const (
	// Clamp pins the index to the first or last ticker.
	Clamp Policy = iota
	// Wrap continues from the other end.
	Wrap
	// Reject fails with ErrOutOfRange and keeps the current index.
	Reject
)

func (p Policy) String() string {
	switch p {
	case Clamp:
		return "clamp"
	case Wrap:
		return "wrap"
	case Reject:
		return "reject"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

// ParsePolicy accepts "clamp", "wrap" or "reject"; empty means clamp.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "clamp":
		return Clamp, nil
	case "wrap":
		return Wrap, nil
	case "reject":
		return Reject, nil
	default:
		return Clamp, fmt.Errorf("unknown navigation boundary %q (want clamp, wrap or reject)", s)
	}
}

// View is a cursor over an ordered, non-empty ticker list.
type View struct {
	tickers []string
	pos     map[string]int
	idx     int
	policy  Policy
}

// New starts a view at the first ticker.
func New(tickers []string, policy Policy) (*View, error) {
	if len(tickers) == 0 {
		return nil, fmt.Errorf("view: no tickers to browse")
	}
	v := &View{
		tickers: append([]string(nil), tickers...),
		pos:     make(map[string]int, len(tickers)),
		policy:  policy,
	}
	for i, t := range v.tickers {
		if _, ok := v.pos[t]; !ok {
			v.pos[t] = i
		}
	}
	return v, nil
}

func (v *View) Current() string { return v.tickers[v.idx] }
func (v *View) Index() int      { return v.idx }
func (v *View) Len() int        { return len(v.tickers) }
func (v *View) Policy() Policy  { return v.policy }

// Advance moves the cursor by delta according to the view's policy.
func (v *View) Advance(delta int) error {
	n := len(v.tickers)
	target := v.idx + delta
	switch v.policy {
	case Wrap:
		target %= n
		if target < 0 {
			target += n
		}
	case Reject:
		if target < 0 || target >= n {
			return &types.OutOfRangeError{Index: target, Len: n}
		}
	default:
		target = max(0, min(target, n-1))
	}
	v.idx = target
	return nil
}

// IndexOf returns the position of ticker in the list.
func (v *View) IndexOf(ticker string) (int, bool) {
	i, ok := v.pos[ticker]
	return i, ok
}

func (v *View) Next() error { return v.Advance(1) }
func (v *View) Prev() error { return v.Advance(-1) }

// JumpTo moves the cursor to ticker, leaving it untouched when the ticker
// is not in the list.
func (v *View) JumpTo(ticker string) error {
	i, ok := v.pos[ticker]
	if !ok {
		return &types.NotFoundError{Kind: types.KindTicker, Key: ticker}
	}
	v.idx = i
	return nil
}
