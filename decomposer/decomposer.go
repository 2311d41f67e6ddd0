// SPDX-License-Identifier: MIT

package decomposer

import (
	"fmt"
	"math"
	"sync"

	"github.com/katalvlaran/massdecomp/chem"
	"github.com/katalvlaran/massdecomp/ert"
)

// Decomposer decomposes masses over one alphabet.
// The residue table is obtained lazily on first use and exactly once.
type Decomposer struct {
	alphabet *chem.Alphabet
	options  Options

	once  sync.Once
	table *ert.Table
	err   error
}

// New returns a Decomposer over alphabet. A nil alphabet behaves like an
// empty one.
func New(alphabet *chem.Alphabet, opts ...Option) *Decomposer {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if alphabet == nil {
		alphabet, _ = chem.NewAlphabet()
	}

	return &Decomposer{alphabet: alphabet, options: cfg}
}

// Alphabet returns the alphabet; compomer index i counts Alphabet().At(i).
func (d *Decomposer) Alphabet() *chem.Alphabet { return d.alphabet }

// Init obtains the residue table now instead of on the first query.
// Calling it is optional.
func (d *Decomposer) Init() error {
	_, err := d.Table()

	return err
}

// Table returns the residue table, building it on first call.
// An empty alphabet returns ert.ErrEmptyAlphabet.
func (d *Decomposer) Table() (*ert.Table, error) {
	d.once.Do(func() {
		switch {
		case d.options.Table != nil:
			if d.options.Table.Alphabet().Key() != d.alphabet.Key() {
				d.err = fmt.Errorf("%w: table %s, decomposer %s", ErrTableMismatch, d.options.Table.Alphabet(), d.alphabet)

				return
			}
			d.table = d.options.Table
		case d.options.Cache != nil:
			d.table, d.err = d.options.Cache.Get(d.alphabet, ert.WithPrecision(d.options.Precision))
		default:
			d.table, d.err = ert.Build(d.alphabet, ert.WithPrecision(d.options.Precision))
		}
	})

	return d.table, d.err
}

// Decompose returns every compomer c with |mass(c) − mass| ≤ dev.AbsoluteFor(mass)
// that satisfies bounds and v (nil bounds / nil v constrain nothing).
//
// The result order is depth-first over element counts and carries no
// meaning; sort it yourself if needed. Non-positive mass, an empty alphabet
// or an unsatisfiable bound yield (nil, nil).
func (d *Decomposer) Decompose(mass float64, dev chem.Deviation, bounds chem.Bounds, v Validator) ([]chem.Compomer, error) {
	if !(mass > 0) || math.IsInf(mass, 0) || d.alphabet.Len() == 0 {
		return nil, nil
	}
	delta := dev.AbsoluteFor(mass)

	return d.decompose(centered(mass, delta), bounds, v)
}

// DecomposeRange returns every compomer whose mass lies in [from, to].
// to < from returns ErrInvalidRange; to ≤ 0 yields (nil, nil).
func (d *Decomposer) DecomposeRange(from, to float64, bounds chem.Bounds, v Validator) ([]chem.Compomer, error) {
	if math.IsNaN(from) || math.IsNaN(to) || to < from {
		return nil, fmt.Errorf("%w: [%g, %g]", ErrInvalidRange, from, to)
	}
	if !(to > 0) || d.alphabet.Len() == 0 {
		return nil, nil
	}

	return d.decompose(window{from: math.Max(0, from), to: to}, bounds, v)
}

func (d *Decomposer) decompose(w window, bounds chem.Bounds, v Validator) ([]chem.Compomer, error) {
	t, err := d.Table()
	if err != nil {
		return nil, err
	}
	p, ok := newPlan(t, w, bounds)
	if !ok {
		return nil, nil
	}

	var results []chem.Compomer
	s := newSearch(t, p.upper)
	for m := p.lo; m <= p.hi; m++ {
		s.run(m, func(raw []int) {
			if c, ok := p.accept(d.alphabet, raw, v); ok {
				results = append(results, c)
			}
		})
	}

	return results, nil
}

// MaybeDecomposable reports whether any integer mass of the window is
// reachable with the alphabet. It ignores bounds and validators, so true
// does not guarantee Decompose returns anything; false guarantees it
// returns nothing.
func (d *Decomposer) MaybeDecomposable(mass float64, dev chem.Deviation) (bool, error) {
	if !(mass > 0) || d.alphabet.Len() == 0 {
		return false, nil
	}
	t, err := d.Table()
	if err != nil {
		return false, err
	}
	lo, hi, ok := t.IntegerBounds(dev.Window(mass))
	if !ok {
		return false, nil
	}
	for m := max(lo, 1); m <= hi; m++ {
		if t.Reachable(m) {
			return true, nil
		}
	}

	return false, nil
}

// window is the exact mass window of a query. Centered windows re-check
// |mass − center| ≤ delta, range windows from ≤ mass ≤ to.
type window struct {
	from, to      float64
	center, delta float64
	centered      bool
}

func centered(mass, delta float64) window {
	return window{from: mass - delta, to: mass + delta, center: mass, delta: delta, centered: true}
}

func (w window) contains(m float64) bool {
	if w.centered {
		return math.Abs(m-w.center) <= w.delta
	}

	return m >= w.from && m <= w.to
}

// plan is the bound-reduced form of a query.
type plan struct {
	win    window
	minima []int // nil when every minimum is 0
	upper  []int // max − min per element, capped at chem.Unbounded
	lo, hi int64 // integer window of the reduced mass
}

// newPlan subtracts minimum counts from the window and derives the integer
// window. ok is false when nothing can match.
func newPlan(t *ert.Table, w window, bounds chem.Bounds) (plan, bool) {
	a := t.Alphabet()
	p := plan{win: w, upper: make([]int, a.Len())}
	from, to := w.from, w.to

	var (
		i      int
		iv     chem.Interval
		minima = make([]int, a.Len())
		hasMin bool
	)
	for i = 0; i < a.Len(); i++ {
		iv = bounds.Of(a.At(i).Symbol)
		if iv.IsEmpty() {
			return plan{}, false
		}
		lo, hi := max(iv.Min, 0), min(iv.Max, chem.Unbounded)
		p.upper[i] = hi - lo
		if lo > 0 {
			minima[i] = lo
			hasMin = true
			reduce := float64(lo) * a.At(i).Mass
			from -= reduce
			to -= reduce
		}
	}
	if hasMin {
		p.minima = minima
	}

	lo, hi, ok := t.IntegerBounds(from, to)
	if !ok {
		return plan{}, false
	}
	// the empty compomer is only a candidate when minima make it non-empty
	if !hasMin && lo == 0 {
		lo = 1
	}
	if hi < lo {
		return plan{}, false
	}
	p.lo, p.hi = lo, hi

	return p, true
}

// accept restores minima, re-checks the exact mass and applies v.
// raw is not retained; the returned compomer is a fresh copy.
func (p *plan) accept(a *chem.Alphabet, raw []int, v Validator) (chem.Compomer, bool) {
	c := make(chem.Compomer, len(raw))
	copy(c, raw)
	for i, n := range p.minima {
		c[i] += n
	}
	if !p.win.contains(a.Mass(c)) {
		return nil, false
	}
	if v != nil && !v.IsValid(a, c) {
		return nil, false
	}

	return c, true
}
