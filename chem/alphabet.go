// SPDX-License-Identifier: MIT

package chem

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Compomer is a vector of element counts. Index i counts the i-th element
// of the Alphabet the compomer was produced for.
type Compomer []int

// Clone returns an independent copy of c.
func (c Compomer) Clone() Compomer {
	out := make(Compomer, len(c))
	copy(out, c)

	return out
}

// Alphabet is an ordered, duplicate-free set of elements.
//
// Elements are kept in ascending mass order: the lightest element is the
// reference element of the residue table, and heavier elements are
// assigned first during decomposition, which prunes earlier.
type Alphabet struct {
	elements []Element
	index    map[string]int
	key      string
}

// NewAlphabet returns an Alphabet over the given elements, sorted by
// ascending mass (ties keep argument order). An empty alphabet is legal;
// decomposing over it yields no results.
func NewAlphabet(elements ...Element) (*Alphabet, error) {
	a := &Alphabet{
		elements: make([]Element, len(elements)),
		index:    make(map[string]int, len(elements)),
	}
	copy(a.elements, elements)
	sort.SliceStable(a.elements, func(i, j int) bool {
		return a.elements[i].Mass < a.elements[j].Mass
	})

	var b strings.Builder
	for i, e := range a.elements {
		if e.Symbol == "" {
			return nil, ErrEmptySymbol
		}
		if !(e.Mass > 0) {
			return nil, fmt.Errorf("%w: %s mass=%g", ErrInvalidMass, e.Symbol, e.Mass)
		}
		if _, dup := a.index[e.Symbol]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateElement, e.Symbol)
		}
		a.index[e.Symbol] = i
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(e.Symbol)
		b.WriteByte('=')
		b.WriteString(strconv.FormatFloat(e.Mass, 'g', -1, 64))
	}
	a.key = b.String()

	return a, nil
}

// Len returns the number of elements.
func (a *Alphabet) Len() int { return len(a.elements) }

// At returns the i-th element (mass-ascending order).
func (a *Alphabet) At(i int) Element { return a.elements[i] }

// Elements returns a copy of the elements.
func (a *Alphabet) Elements() []Element {
	out := make([]Element, len(a.elements))
	copy(out, a.elements)

	return out
}

// Symbols returns the element symbols in alphabet order.
func (a *Alphabet) Symbols() []string {
	out := make([]string, len(a.elements))
	for i, e := range a.elements {
		out[i] = e.Symbol
	}

	return out
}

// IndexOf returns the position of symbol, or -1.
func (a *Alphabet) IndexOf(symbol string) int {
	if i, ok := a.index[symbol]; ok {
		return i
	}

	return -1
}

// Contains reports whether symbol is part of the alphabet.
func (a *Alphabet) Contains(symbol string) bool {
	_, ok := a.index[symbol]

	return ok
}

// Key identifies the alphabet by symbols and masses. Two alphabets with the
// same key produce identical residue tables.
func (a *Alphabet) Key() string { return a.key }

// String renders the symbols in alphabet order, e.g. "HCNOPS".
func (a *Alphabet) String() string { return strings.Join(a.Symbols(), "") }

// Mass returns the exact theoretical mass Σ c[i]·mass[i].
func (a *Alphabet) Mass(c Compomer) float64 {
	var m float64
	for i, n := range c {
		m += float64(n) * a.elements[i].Mass
	}

	return m
}

// Count returns the number of atoms of symbol in c (0 if absent).
func (a *Alphabet) Count(c Compomer, symbol string) int {
	i := a.IndexOf(symbol)
	if i < 0 || i >= len(c) {
		return 0
	}

	return c[i]
}

// Format renders c in Hill notation: carbon first, hydrogen second, all
// other elements alphabetically; without carbon every element, hydrogen
// included, is alphabetical. Counts of 1 are implicit, zeros omitted.
func (a *Alphabet) Format(c Compomer) string {
	order := make([]int, 0, len(c))
	for i, n := range c {
		if n > 0 {
			order = append(order, i)
		}
	}
	hasCarbon := a.Count(c, "C") > 0
	rank := func(sym string) int {
		if !hasCarbon {
			return 2
		}
		switch sym {
		case "C":
			return 0
		case "H":
			return 1
		}

		return 2
	}
	sort.Slice(order, func(x, y int) bool {
		sx, sy := a.elements[order[x]].Symbol, a.elements[order[y]].Symbol
		if rx, ry := rank(sx), rank(sy); rx != ry {
			return rx < ry
		}

		return sx < sy
	})

	var b strings.Builder
	for _, i := range order {
		b.WriteString(a.elements[i].Symbol)
		if c[i] > 1 {
			b.WriteString(strconv.Itoa(c[i]))
		}
	}

	return b.String()
}

// Parse converts a formula string into a compomer over this alphabet.
// Symbols are resolved against the alphabet itself, so table is only used
// for tokenizing; pass nil to use DefaultTable.
func (a *Alphabet) Parse(table *PeriodicTable, formula string) (Compomer, error) {
	if table == nil {
		table = DefaultTable()
	}
	counts, err := table.ParseFormula(formula)
	if err != nil {
		return nil, err
	}
	c := make(Compomer, len(a.elements))
	for sym, n := range counts {
		i := a.IndexOf(sym)
		if i < 0 {
			if n == 0 {
				continue
			}

			return nil, fmt.Errorf("%w: %s is not in alphabet %s", ErrUnknownElement, sym, a)
		}
		c[i] = n
	}

	return c, nil
}
