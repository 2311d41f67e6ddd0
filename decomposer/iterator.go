// SPDX-License-Identifier: MIT

package decomposer

import (
	"fmt"
	"iter"
	"math"

	"github.com/katalvlaran/massdecomp/chem"
	"github.com/katalvlaran/massdecomp/ert"
)

// Iterator yields the decompositions of a mass window one at a time.
//
// It walks the same search space as Decompose but keeps its whole state in
// fields, so it can stop after any solution and resume on the next Next
// call. Every level is additionally pruned with the upper bounds of the
// lighter elements: a count is only tried when the remainder is both
// ERT-reachable and not larger than what the lighter elements may carry.
//
// An Iterator is not safe for concurrent use.
type Iterator struct {
	alphabet *chem.Alphabet
	t        *ert.Table
	p        plan
	v        Validator

	w     []int64
	reach []int64 // reach[i]: max integer mass of elements 0..i under upper bounds
	c     []int   // current counts (without minima)
	rem   []int64 // rem[i]: integer mass left for elements 0..i

	mass   int64 // next integer mass to start
	level  int   // current level while active
	active bool  // a search over one integer mass is in progress
	done   bool

	cur chem.Compomer
}

// Iterate returns a lazy Iterator over the decompositions Decompose would
// return for the same arguments. Degenerate input yields an exhausted
// Iterator and a nil error.
func (d *Decomposer) Iterate(mass float64, dev chem.Deviation, bounds chem.Bounds, v Validator) (*Iterator, error) {
	if !(mass > 0) || math.IsInf(mass, 0) || d.alphabet.Len() == 0 {
		return exhausted(), nil
	}

	return d.iterate(centered(mass, dev.AbsoluteFor(mass)), bounds, v)
}

// IterateRange is the lazy counterpart of DecomposeRange.
func (d *Decomposer) IterateRange(from, to float64, bounds chem.Bounds, v Validator) (*Iterator, error) {
	if math.IsNaN(from) || math.IsNaN(to) || to < from {
		return nil, fmt.Errorf("%w: [%g, %g]", ErrInvalidRange, from, to)
	}
	if !(to > 0) || d.alphabet.Len() == 0 {
		return exhausted(), nil
	}

	return d.iterate(window{from: math.Max(0, from), to: to}, bounds, v)
}

func (d *Decomposer) iterate(w window, bounds chem.Bounds, v Validator) (*Iterator, error) {
	t, err := d.Table()
	if err != nil {
		return nil, err
	}
	p, ok := newPlan(t, w, bounds)
	if !ok {
		return exhausted(), nil
	}

	k := t.Len()
	it := &Iterator{
		alphabet: d.alphabet,
		t:        t,
		p:        p,
		v:        v,
		w:        t.Weights(),
		reach:    make([]int64, k),
		c:        make([]int, k),
		rem:      make([]int64, k),
		mass:     p.lo,
	}

	var acc int64
	for i := range it.w {
		acc = addCapped(acc, mulCapped(p.upper[i], it.w[i]))
		it.reach[i] = acc
	}

	return it, nil
}

func exhausted() *Iterator { return &Iterator{done: true} }

// Next advances to the next decomposition and reports whether there is one.
// Once it returns false it keeps returning false.
func (it *Iterator) Next() bool {
	for !it.done {
		if !it.active {
			if it.start() {
				return true
			}

			continue
		}
		if it.step() {
			return true
		}
	}
	it.cur = nil

	return false
}

// Compomer returns a copy of the current decomposition, nil before the
// first Next or after exhaustion.
func (it *Iterator) Compomer() chem.Compomer {
	if it.cur == nil {
		return nil
	}

	return it.cur.Clone()
}

// All drains the iterator as a sequence.
func (it *Iterator) All() iter.Seq[chem.Compomer] {
	return func(yield func(chem.Compomer) bool) {
		for it.Next() {
			if !yield(it.Compomer()) {
				return
			}
		}
	}
}

// start opens the next integer mass. It reports true only when that mass
// produced a decomposition without opening a search (single-element
// alphabets); otherwise it either activates the search or skips the mass.
func (it *Iterator) start() bool {
	if it.mass > it.p.hi {
		it.done = true

		return false
	}
	m := it.mass
	it.mass++

	top := len(it.w) - 1
	if m > it.reach[top] || !it.t.Reachable(m) {
		return false
	}
	if top == 0 {
		n := m / it.w[0]
		if n > int64(it.p.upper[0]) {
			return false
		}
		it.c[0] = int(n)
		ok := it.emit()
		it.c[0] = 0

		return ok
	}

	it.rem[top] = m
	it.c[top] = it.lowest(top, m) - 1
	it.level = top
	it.active = true

	return false
}

// step resumes the search over the current integer mass until the next
// accepted decomposition (true) or the end of that mass (false).
func (it *Iterator) step() bool {
	top := len(it.w) - 1
	for it.active {
		i := it.level
		it.c[i]++
		next := it.rem[i] - int64(it.c[i])*it.w[i]

		// 1) Level exhausted: pop.
		if it.c[i] > it.p.upper[i] || next < 0 {
			it.c[i] = 0
			if i == top {
				it.active = false

				return false
			}
			it.level++

			continue
		}

		// 2) Prune remainders the lighter elements cannot carry.
		if next > it.reach[i-1] || !it.t.Decomposable(i-1, next) {
			continue
		}

		// 3) Leaf: element 0 takes the rest.
		if i == 1 {
			n := next / it.w[0]
			if n > int64(it.p.upper[0]) {
				continue
			}
			it.c[0] = int(n)
			ok := it.emit()
			it.c[0] = 0
			if ok {
				return true
			}

			continue
		}

		// 4) Push.
		it.level = i - 1
		it.rem[i-1] = next
		it.c[i-1] = it.lowest(i-1, next) - 1
	}

	return false
}

// lowest returns the smallest count of element i that leaves a remainder
// the lighter elements can carry.
func (it *Iterator) lowest(i int, rem int64) int {
	excess := rem - it.reach[i-1]
	if excess <= 0 {
		return 0
	}
	n := (excess + it.w[i] - 1) / it.w[i]
	if n > int64(it.p.upper[i])+1 {
		return it.p.upper[i] + 1
	}

	return int(n)
}

// emit turns the current counts into it.cur when they pass the exact
// re-check and the validator.
func (it *Iterator) emit() bool {
	c, ok := it.p.accept(it.alphabet, it.c, it.v)
	if ok {
		it.cur = c
	}

	return ok
}

func mulCapped(n int, w int64) int64 {
	if n >= chem.Unbounded || int64(n) > ert.Infinity/w {
		return ert.Infinity
	}

	return int64(n) * w
}

func addCapped(a, b int64) int64 {
	if a > ert.Infinity-b {
		return ert.Infinity
	}

	return a + b
}
