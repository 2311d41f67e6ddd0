// SPDX-License-Identifier: MIT

package chem

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
)

// Element is a chemical element with its monoisotopic mass.
//
// Valence is only consulted by validators (RDBE); the decomposer itself
// needs nothing but Mass.
type Element struct {
	Symbol  string  // e.g. "C", "Cl"
	Name    string  // e.g. "Carbon"
	Mass    float64 // monoisotopic mass in Dalton
	Valence int     // most common valence
}

// String returns the element symbol.
func (e Element) String() string { return e.Symbol }

// PeriodicTable is an immutable symbol → Element lookup.
// The zero value is not usable; build one with NewPeriodicTable or use DefaultTable.
type PeriodicTable struct {
	elements []Element     // insertion order
	index    map[string]int // symbol → position in elements
}

// NewPeriodicTable validates the given elements and returns a table.
//
// Validation (in order):
//  1. Symbol must be non-empty (ErrEmptySymbol).
//  2. Mass must be positive and finite (ErrInvalidMass).
//  3. Symbols must be unique (ErrDuplicateElement).
func NewPeriodicTable(elements ...Element) (*PeriodicTable, error) {
	t := &PeriodicTable{
		elements: make([]Element, 0, len(elements)),
		index:    make(map[string]int, len(elements)),
	}
	var e Element
	for _, e = range elements {
		if e.Symbol == "" {
			return nil, ErrEmptySymbol
		}
		if !(e.Mass > 0) || math.IsInf(e.Mass, 0) {
			return nil, fmt.Errorf("%w: %s mass=%g", ErrInvalidMass, e.Symbol, e.Mass)
		}
		if _, dup := t.index[e.Symbol]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateElement, e.Symbol)
		}
		t.index[e.Symbol] = len(t.elements)
		t.elements = append(t.elements, e)
	}

	return t, nil
}

// defaultElements are the elements of DefaultTable, with NIST monoisotopic masses.
var defaultElements = []Element{
	{Symbol: "H", Name: "Hydrogen", Mass: 1.00782503207, Valence: 1},
	{Symbol: "B", Name: "Boron", Mass: 11.0093054, Valence: 3},
	{Symbol: "C", Name: "Carbon", Mass: 12.0, Valence: 4},
	{Symbol: "N", Name: "Nitrogen", Mass: 14.0030740048, Valence: 3},
	{Symbol: "O", Name: "Oxygen", Mass: 15.99491461956, Valence: 2},
	{Symbol: "F", Name: "Fluorine", Mass: 18.99840322, Valence: 1},
	{Symbol: "Na", Name: "Sodium", Mass: 22.9897692809, Valence: 1},
	{Symbol: "Si", Name: "Silicon", Mass: 27.9769265325, Valence: 4},
	{Symbol: "P", Name: "Phosphorus", Mass: 30.97376163, Valence: 3},
	{Symbol: "S", Name: "Sulfur", Mass: 31.97207100, Valence: 2},
	{Symbol: "Cl", Name: "Chlorine", Mass: 34.96885268, Valence: 1},
	{Symbol: "K", Name: "Potassium", Mass: 38.96370668, Valence: 1},
	{Symbol: "Fe", Name: "Iron", Mass: 55.9349375, Valence: 2},
	{Symbol: "Se", Name: "Selenium", Mass: 79.9165213, Valence: 2},
	{Symbol: "Br", Name: "Bromine", Mass: 78.9183371, Valence: 1},
	{Symbol: "I", Name: "Iodine", Mass: 126.904473, Valence: 1},
}

var defaultTable = sync.OnceValue(func() *PeriodicTable {
	t, err := NewPeriodicTable(defaultElements...)
	if err != nil {
		panic(err) // static data; cannot fail
	}

	return t
})

// DefaultTable returns the process-wide table of common elements.
// It is built on first use and never mutated afterwards.
func DefaultTable() *PeriodicTable { return defaultTable() }

// Lookup returns the element with the given symbol.
func (t *PeriodicTable) Lookup(symbol string) (Element, bool) {
	i, ok := t.index[symbol]
	if !ok {
		return Element{}, false
	}

	return t.elements[i], true
}

// Get is Lookup returning ErrUnknownElement for missing symbols.
func (t *PeriodicTable) Get(symbol string) (Element, error) {
	e, ok := t.Lookup(symbol)
	if !ok {
		return Element{}, fmt.Errorf("%w: %q", ErrUnknownElement, symbol)
	}

	return e, nil
}

// Elements returns a copy of all elements in insertion order.
func (t *PeriodicTable) Elements() []Element {
	out := make([]Element, len(t.elements))
	copy(out, t.elements)

	return out
}

// Symbols returns all symbols sorted alphabetically.
func (t *PeriodicTable) Symbols() []string {
	out := make([]string, 0, len(t.elements))
	for _, e := range t.elements {
		out = append(out, e.Symbol)
	}
	sort.Strings(out)

	return out
}

// Alphabet builds an Alphabet from the given symbols.
// A string like "CHNOPS" is accepted as a single argument as well.
func (t *PeriodicTable) Alphabet(symbols ...string) (*Alphabet, error) {
	elements := make([]Element, 0, len(symbols))
	for _, s := range symbols {
		pos := 0
		for pos < len(s) {
			e, next, ok := t.MatchSymbol(s, pos)
			if !ok {
				return nil, fmt.Errorf("%w: %q at offset %d", ErrUnknownElement, s[pos:], pos)
			}
			elements = append(elements, e)
			pos = next
		}
	}

	return NewAlphabet(elements...)
}

// MatchSymbol reads one element symbol from s starting at pos.
// Two-letter symbols win over one-letter ones ("Cl" rather than "C" + "l"),
// leading whitespace is not skipped. It returns the element, the offset
// just behind the symbol, and whether a known symbol was found.
func (t *PeriodicTable) MatchSymbol(s string, pos int) (Element, int, bool) {
	if pos >= len(s) || s[pos] < 'A' || s[pos] > 'Z' {
		return Element{}, pos, false
	}
	if pos+1 < len(s) && s[pos+1] >= 'a' && s[pos+1] <= 'z' {
		if e, ok := t.Lookup(s[pos : pos+2]); ok {
			return e, pos + 2, true
		}
	}
	if e, ok := t.Lookup(s[pos : pos+1]); ok {
		return e, pos + 1, true
	}

	return Element{}, pos, false
}

// ParseFormula tokenizes a molecular formula such as "C6H12O6" into
// symbol → count. Repeated symbols accumulate ("CH3CH3" → C2H6).
func (t *PeriodicTable) ParseFormula(formula string) (map[string]int, error) {
	formula = strings.TrimSpace(formula)
	counts := make(map[string]int)
	pos := 0
	for pos < len(formula) {
		e, next, ok := t.MatchSymbol(formula, pos)
		if !ok {
			if formula[pos] >= 'A' && formula[pos] <= 'Z' {
				return nil, fmt.Errorf("%w: %q in %q", ErrUnknownElement, formula[pos:], formula)
			}

			return nil, fmt.Errorf("%w: unexpected %q at offset %d in %q", ErrMalformedFormula, formula[pos], pos, formula)
		}
		pos = next
		n := 0
		digits := 0
		for pos < len(formula) && formula[pos] >= '0' && formula[pos] <= '9' {
			n = n*10 + int(formula[pos]-'0')
			if n > Unbounded {
				return nil, fmt.Errorf("%w: count overflow in %q", ErrMalformedFormula, formula)
			}
			pos++
			digits++
		}
		if digits == 0 {
			n = 1
		}
		counts[e.Symbol] += n
	}

	return counts, nil
}
