// SPDX-License-Identifier: MIT

package ert

import (
	"errors"
	"math"
)

// Sentinel errors returned by Build and Cache.
var (
	// ErrEmptyAlphabet indicates an alphabet without elements.
	ErrEmptyAlphabet = errors.New("ert: alphabet is empty")

	// ErrPrecisionTooCoarse indicates an element whose scaled mass rounds to zero.
	ErrPrecisionTooCoarse = errors.New("ert: precision too coarse for element mass")

	// ErrTableTooLarge indicates that the lightest scaled mass (the residue
	// count) exceeds MaxResidues; use a coarser precision.
	ErrTableTooLarge = errors.New("ert: residue table too large")

	// ErrOverflow indicates an integer overflow while filling the table.
	ErrOverflow = errors.New("ert: integer overflow, use a coarser precision")

	// ErrBadPrecision is raised (via panic) by WithPrecision for p ≤ 0, NaN or ±Inf.
	ErrBadPrecision = errors.New("ert: precision must be positive and finite")

	// ErrBadCacheSize indicates a non-positive cache capacity.
	ErrBadCacheSize = errors.New("ert: cache size must be positive")
)

const (
	// DefaultPrecision is the default scaling precision: masses are
	// discretized in steps of 1e-5 Da.
	DefaultPrecision = 1e-5

	// MaxResidues caps the number of residue classes (the scaled mass of
	// the lightest element after gcd division).
	MaxResidues = 1 << 24

	// Infinity marks residues that cannot be reached.
	Infinity int64 = math.MaxInt64
)

// Options configures Build.
type Options struct {
	Precision float64 // scaling precision in Dalton
}

// Option is a functional option for Build and Cache.Get.
type Option func(*Options)

// DefaultOptions returns Options{Precision: DefaultPrecision}.
func DefaultOptions() Options {
	return Options{Precision: DefaultPrecision}
}

// WithPrecision sets the discretization step. Smaller values mean larger
// tables and fewer integer false positives. Panics on p ≤ 0, NaN or ±Inf.
func WithPrecision(p float64) Option {
	if !(p > 0) || math.IsInf(p, 0) {
		panic(ErrBadPrecision.Error())
	}

	return func(o *Options) { o.Precision = p }
}

func gatherOptions(opts []Option) Options {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}
