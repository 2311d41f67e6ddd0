// SPDX-License-Identifier: MIT

package decomposer

import (
	"errors"
	"math"

	"github.com/katalvlaran/massdecomp/chem"
	"github.com/katalvlaran/massdecomp/ert"
)

// Sentinel errors.
var (
	// ErrInvalidRange indicates a mass range with to < from (or NaN ends).
	ErrInvalidRange = errors.New("decomposer: invalid mass range")

	// ErrTableMismatch indicates a table built for a different alphabet.
	ErrTableMismatch = errors.New("decomposer: residue table was built for another alphabet")

	// ErrNilTable is raised (via panic) by WithTable(nil).
	ErrNilTable = errors.New("decomposer: table is nil")

	// ErrNilCache is raised (via panic) by WithCache(nil).
	ErrNilCache = errors.New("decomposer: cache is nil")
)

// Validator decides whether a compomer is chemically acceptable.
// Implementations must be pure and safe for concurrent use. A panic raised
// by a Validator propagates to the caller of Decompose / Next unchanged.
type Validator interface {
	IsValid(alphabet *chem.Alphabet, c chem.Compomer) bool
}

// ValidatorFunc adapts a plain function to Validator.
type ValidatorFunc func(alphabet *chem.Alphabet, c chem.Compomer) bool

// IsValid calls f.
func (f ValidatorFunc) IsValid(alphabet *chem.Alphabet, c chem.Compomer) bool { return f(alphabet, c) }

// Options configures a Decomposer.
type Options struct {
	Precision float64    // ERT precision, ert.DefaultPrecision by default
	Table     *ert.Table // pre-built table to share; overrides Precision and Cache
	Cache     *ert.Cache // table source; nil builds a private table
}

// Option is a functional option for New.
type Option func(*Options)

// DefaultOptions returns the defaults used by New.
func DefaultOptions() Options {
	return Options{Precision: ert.DefaultPrecision}
}

// WithPrecision sets the residue-table precision. Panics on p ≤ 0, NaN or ±Inf.
func WithPrecision(p float64) Option {
	if !(p > 0) || math.IsInf(p, 0) {
		panic(ert.ErrBadPrecision.Error())
	}

	return func(o *Options) { o.Precision = p }
}

// WithTable shares a pre-built residue table. Panics on nil.
func WithTable(t *ert.Table) Option {
	if t == nil {
		panic(ErrNilTable.Error())
	}

	return func(o *Options) { o.Table = t }
}

// WithCache obtains the residue table from c. Panics on nil.
func WithCache(c *ert.Cache) Option {
	if c == nil {
		panic(ErrNilCache.Error())
	}

	return func(o *Options) { o.Cache = c }
}
