// SPDX-License-Identifier: MIT

package chem

import (
	"fmt"
	"math"
	"strconv"
)

// Unbounded is the sentinel upper bound meaning "no limit". It is a plain
// integer so that bound arithmetic never has to deal with infinity.
const Unbounded = math.MaxInt32

// Interval is an inclusive [Min, Max] range of element counts.
type Interval struct {
	Min int
	Max int
}

// Free is the unconstrained interval [0, Unbounded].
var Free = Interval{Min: 0, Max: Unbounded}

// NewInterval validates and returns [min, max].
// min must be ≥ 0 and max ≥ min (ErrInvalidInterval).
func NewInterval(min, max int) (Interval, error) {
	if min < 0 || max < min {
		return Interval{}, fmt.Errorf("%w: [%d, %d]", ErrInvalidInterval, min, max)
	}

	return Interval{Min: min, Max: max}, nil
}

// Exactly returns [n, n].
func Exactly(n int) Interval { return Interval{Min: n, Max: n} }

// AtMost returns [0, n].
func AtMost(n int) Interval { return Interval{Min: 0, Max: n} }

// AtLeast returns [n, Unbounded].
func AtLeast(n int) Interval { return Interval{Min: n, Max: Unbounded} }

// IsEmpty reports whether no count satisfies the interval.
func (iv Interval) IsEmpty() bool { return iv.Min > iv.Max || iv.Max < 0 }

// IsFree reports whether the interval does not constrain anything.
func (iv Interval) IsFree() bool { return iv.Min <= 0 && iv.Max >= Unbounded }

// Contains reports whether Min ≤ n ≤ Max.
func (iv Interval) Contains(n int) bool { return n >= iv.Min && n <= iv.Max }

// Intersect returns the overlap of both intervals (possibly empty).
func (iv Interval) Intersect(o Interval) Interval {
	return Interval{Min: max(iv.Min, o.Min), Max: min(iv.Max, o.Max)}
}

// String renders the interval in constraint syntax: "" when free,
// "[n]" when exact, "[a-]" / "[-b]" / "[a-b]" otherwise.
func (iv Interval) String() string {
	switch {
	case iv.IsFree():
		return ""
	case iv.Min == iv.Max:
		return "[" + strconv.Itoa(iv.Min) + "]"
	case iv.Max >= Unbounded:
		return "[" + strconv.Itoa(iv.Min) + "-]"
	case iv.Min <= 0:
		return "[-" + strconv.Itoa(iv.Max) + "]"
	}

	return "[" + strconv.Itoa(iv.Min) + "-" + strconv.Itoa(iv.Max) + "]"
}

// Bounds maps element symbols to count intervals. Symbols that are absent
// are unconstrained. A nil Bounds is valid and constrains nothing.
type Bounds map[string]Interval

// Of returns the interval for symbol, Free when unset.
func (b Bounds) Of(symbol string) Interval {
	if iv, ok := b[symbol]; ok {
		return iv
	}

	return Free
}

// Clone returns an independent copy.
func (b Bounds) Clone() Bounds {
	out := make(Bounds, len(b))
	for k, v := range b {
		out[k] = v
	}

	return out
}

// Satisfied reports whether every count of c lies inside its interval.
func (b Bounds) Satisfied(a *Alphabet, c Compomer) bool {
	for i, n := range c {
		if !b.Of(a.At(i).Symbol).Contains(n) {
			return false
		}
	}

	return true
}
