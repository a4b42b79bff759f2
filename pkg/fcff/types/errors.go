package types

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrOutOfRange    = errors.New("out of range")
	ErrIO            = errors.New("io failure")
	ErrZeroShares    = errors.New("shares outstanding is zero")
	ErrInvalidTicker = errors.New("invalid ticker")
)

// Kinds of lookups that can miss.
const (
	KindTicker     = "ticker"
	KindReference  = "reference"
	KindTimeSeries = "time series"
	KindLineItem   = "line item"
)

// NotFoundError reports a key absent from the catalog, the reference data,
// or time-series storage.
type NotFoundError struct {
	Kind string
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Key)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// OutOfRangeError reports navigation past either end of the ticker list.
type OutOfRangeError struct {
	Index int
	Len   int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("index %d out of range [0,%d)", e.Index, e.Len)
}

func (e *OutOfRangeError) Unwrap() error { return ErrOutOfRange }

// IOError wraps a storage failure.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap exposes both ErrIO and the underlying cause.
func (e *IOError) Unwrap() []error { return []error{ErrIO, e.Err} }

type ZeroSharesError struct{ Ticker string }

func (e *ZeroSharesError) Error() string {
	return "fcf per share for " + e.Ticker + ": shares outstanding is zero"
}

func (e *ZeroSharesError) Unwrap() error { return ErrZeroShares }

type InvalidTickerError struct{ Value string }

func (e *InvalidTickerError) Error() string {
	return fmt.Sprintf("invalid ticker %q", e.Value)
}

func (e *InvalidTickerError) Unwrap() error { return ErrInvalidTicker }
