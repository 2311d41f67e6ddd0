// SPDX-License-Identifier: MIT

package ert

import (
	"fmt"
	"math"

	"github.com/katalvlaran/massdecomp/chem"
)

// Table is an immutable extended residue table for one alphabet.
type Table struct {
	alphabet  *chem.Alphabet
	precision float64 // effective precision after gcd division
	weights   []int64 // scaled integer masses, same order as alphabet
	residues  int64   // weights[0]
	cells     []int64 // row-major: cells[k*residues + r]
	minError  float64 // min over elements of (precision·w − mass)/mass, ≤ 0
	maxError  float64 // max over elements of (precision·w − mass)/mass, ≥ 0
}

// Build computes the residue table for alphabet.
//
// Steps:
//  1. Discretize: w[i] = round(mass[i] / precision).
//  2. Divide all w[i] by their gcd; the effective precision grows accordingly.
//  3. Record the relative rounding errors.
//  4. Fill the table row by row (round-robin relaxation).
func Build(alphabet *chem.Alphabet, opts ...Option) (*Table, error) {
	cfg := gatherOptions(opts)
	if alphabet == nil || alphabet.Len() == 0 {
		return nil, ErrEmptyAlphabet
	}

	t := &Table{
		alphabet:  alphabet,
		precision: cfg.Precision,
		weights:   make([]int64, alphabet.Len()),
	}

	// 1) Discretize.
	var (
		i int
		x float64
	)
	for i = range t.weights {
		e := alphabet.At(i)
		x = math.Round(e.Mass / t.precision)
		if x < 1 {
			return nil, fmt.Errorf("%w: %s mass=%g precision=%g", ErrPrecisionTooCoarse, e.Symbol, e.Mass, t.precision)
		}
		if x >= float64(math.MaxInt64>>2) {
			return nil, fmt.Errorf("%w: %s scaled mass %g", ErrOverflow, e.Symbol, x)
		}
		t.weights[i] = int64(x)
	}

	// 2) Divide by the common gcd.
	d := t.weights[0]
	for _, w := range t.weights[1:] {
		d = gcd(d, w)
		if d == 1 {
			break
		}
	}
	if d > 1 {
		t.precision *= float64(d)
		for i = range t.weights {
			t.weights[i] /= d
		}
	}

	t.residues = t.weights[0]
	if t.residues > MaxResidues {
		return nil, fmt.Errorf("%w: %d residues for %s at precision %g", ErrTableTooLarge, t.residues, alphabet.At(0).Symbol, cfg.Precision)
	}

	// 3) Rounding errors.
	t.computeErrors()

	// 4) Fill.
	if err := t.fill(); err != nil {
		return nil, err
	}

	return t, nil
}

// computeErrors records the extreme relative rounding errors of all weights.
func (t *Table) computeErrors() {
	t.minError, t.maxError = 0, 0
	for i, w := range t.weights {
		m := t.alphabet.At(i).Mass
		e := (t.precision*float64(w) - m) / m
		t.minError = math.Min(t.minError, e)
		t.maxError = math.Max(t.maxError, e)
	}
}

// fill runs the round-robin DP. Row 0 only reaches multiples of w[0];
// row k relaxes row k−1 with w[k] inside each residue class modulo
// gcd(w[0], w[k]).
func (t *Table) fill() error {
	r := t.residues
	k := int64(len(t.weights))
	t.cells = make([]int64, k*r)

	row0 := t.cells[:r]
	row0[0] = 0
	for i := int64(1); i < r; i++ {
		row0[i] = Infinity
	}

	var (
		j, p, i, n, argmin, res int64
		prev, cur               []int64
	)
	for j = 1; j < k; j++ {
		prev = t.cells[(j-1)*r : j*r]
		cur = t.cells[j*r : (j+1)*r]
		w := t.weights[j]
		d := gcd(r, w)
		cur[0] = 0

		for p = 0; p < d; p++ {
			if p == 0 {
				// residue 0 holds 0 in every row, the minimum of its class
				n = 0
			} else {
				n, argmin = Infinity, p
				for i = p; i < r; i += d {
					if prev[i] < n {
						n, argmin = prev[i], i
					}
				}
				cur[argmin] = n
			}

			if n == Infinity {
				for i = p; i < r; i += d {
					cur[i] = Infinity
				}

				continue
			}

			for i = 1; i < r/d; i++ {
				n += w
				if n < 0 {
					return fmt.Errorf("%w: row %d (%s)", ErrOverflow, j, t.alphabet.At(int(j)).Symbol)
				}
				res = n % r
				if prev[res] < n {
					n = prev[res]
				}
				cur[res] = n
			}
		}
	}

	return nil
}

// Alphabet returns the alphabet the table was built for.
func (t *Table) Alphabet() *chem.Alphabet { return t.alphabet }

// Len returns the number of elements (table rows).
func (t *Table) Len() int { return len(t.weights) }

// Precision returns the effective precision (after gcd division).
func (t *Table) Precision() float64 { return t.precision }

// Residues returns the number of residue classes, i.e. Weight(0).
func (t *Table) Residues() int64 { return t.residues }

// Weight returns the scaled integer mass of element i.
func (t *Table) Weight(i int) int64 { return t.weights[i] }

// Weights returns a copy of all scaled integer masses.
func (t *Table) Weights() []int64 {
	out := make([]int64, len(t.weights))
	copy(out, t.weights)

	return out
}

// Errors returns the extreme relative rounding errors (minError ≤ 0 ≤ maxError).
func (t *Table) Errors() (minError, maxError float64) { return t.minError, t.maxError }

// Lookup returns the smallest integer mass ≡ residue that elements 0..k reach,
// or Infinity.
func (t *Table) Lookup(k int, residue int64) int64 {
	return t.cells[int64(k)*t.residues+residue]
}

// Decomposable reports whether integer mass m can be written as a
// non-negative combination of the weights of elements 0..k.
func (t *Table) Decomposable(k int, m int64) bool {
	if m < 0 {
		return false
	}

	return t.cells[int64(k)*t.residues+m%t.residues] <= m
}

// Reachable is Decomposable over the full alphabet.
func (t *Table) Reachable(m int64) bool { return t.Decomposable(len(t.weights)-1, m) }

// IntegerBounds maps the real mass interval [from, to] to the integer
// interval that contains the scaled mass of every compomer whose exact mass
// lies in [from, to]. The result is conservative: floor/ceil widen it, and
// the caller must re-check exact masses. ok is false when no non-negative
// integer mass qualifies.
func (t *Table) IntegerBounds(from, to float64) (lo, hi int64, ok bool) {
	if to < 0 || to < from {
		return 0, 0, false
	}
	fl := math.Floor((1 + t.minError) * from / t.precision)
	fh := math.Ceil((1 + t.maxError) * to / t.precision)
	if fh >= float64(math.MaxInt64>>2) {
		return 0, 0, false
	}
	lo, hi = int64(math.Max(0, fl)), int64(fh)
	if hi < lo {
		return 0, 0, false
	}

	return lo, hi, true
}

// Bytes reports the approximate memory held by the table cells.
func (t *Table) Bytes() int { return len(t.cells) * 8 }

func gcd(u, v int64) int64 {
	for v != 0 {
		u, v = v, u%v
	}

	return u
}
