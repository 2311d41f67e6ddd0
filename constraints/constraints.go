// SPDX-License-Identifier: MIT

package constraints

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/katalvlaran/massdecomp/chem"
)

// Sentinel errors.
var (
	// ErrSyntax is matched by every parse failure.
	ErrSyntax = errors.New("constraints: syntax error")

	// ErrUnknownElement indicates a symbol missing from the periodic table.
	ErrUnknownElement = errors.New("constraints: unknown element")

	// ErrMalformedInterval indicates an interval that does not follow the grammar.
	ErrMalformedInterval = errors.New("constraints: malformed interval")

	// ErrInvertedInterval indicates an interval with min > max.
	ErrInvertedInterval = errors.New("constraints: interval minimum exceeds maximum")

	// ErrDuplicateElement indicates an element listed twice.
	ErrDuplicateElement = errors.New("constraints: duplicate element")

	// ErrEmpty indicates an input without any element.
	ErrEmpty = errors.New("constraints: no elements given")
)

// SyntaxError describes where and why parsing failed.
type SyntaxError struct {
	Input  string
	Offset int
	Kind   error // one of the sentinel errors above
}

// Error implements error.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%v at offset %d in %q", e.Kind, e.Offset, e.Input)
}

// Unwrap exposes both ErrSyntax and the specific kind to errors.Is.
func (e *SyntaxError) Unwrap() []error { return []error{ErrSyntax, e.Kind} }

// Constraints is a parsed element set with count bounds.
// Bounds only holds the elements that are actually constrained.
type Constraints struct {
	Alphabet *chem.Alphabet
	Bounds   chem.Bounds
}

// Parse reads s against table (nil means chem.DefaultTable).
func Parse(table *chem.PeriodicTable, s string) (*Constraints, error) {
	if table == nil {
		table = chem.DefaultTable()
	}
	p := parser{table: table, in: s}

	return p.parse()
}

// MustParse is Parse that panics on error. Intended for static input.
func MustParse(table *chem.PeriodicTable, s string) *Constraints {
	c, err := Parse(table, s)
	if err != nil {
		panic(err)
	}

	return c
}

type parser struct {
	table *chem.PeriodicTable
	in    string
	pos   int
}

func (p *parser) fail(kind error, at int) error {
	return &SyntaxError{Input: p.in, Offset: at, Kind: kind}
}

func (p *parser) parse() (*Constraints, error) {
	var (
		elements []chem.Element
		bounds   = chem.Bounds{}
		seen     = map[string]bool{}
	)
	for {
		p.skipSeparators()
		if p.pos >= len(p.in) {
			break
		}
		at := p.pos
		e, next, ok := p.table.MatchSymbol(p.in, p.pos)
		if !ok {
			if c := p.in[p.pos]; (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') {
				return nil, p.fail(ErrUnknownElement, at)
			}

			return nil, p.fail(ErrMalformedInterval, at)
		}
		if seen[e.Symbol] {
			return nil, p.fail(ErrDuplicateElement, at)
		}
		seen[e.Symbol] = true
		p.pos = next

		iv := chem.Free
		if p.pos < len(p.in) && p.in[p.pos] == '[' {
			var err error
			if iv, err = p.interval(); err != nil {
				return nil, err
			}
		}
		if iv.Max == 0 {
			continue
		}
		elements = append(elements, e)
		if !iv.IsFree() {
			bounds[e.Symbol] = iv
		}
	}
	if len(seen) == 0 {
		return nil, p.fail(ErrEmpty, 0)
	}

	alphabet, err := chem.NewAlphabet(elements...)
	if err != nil {
		return nil, err
	}

	return &Constraints{Alphabet: alphabet, Bounds: bounds}, nil
}

func (p *parser) skipSeparators() {
	for p.pos < len(p.in) {
		switch p.in[p.pos] {
		case ',', ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

// interval reads "[...]" starting at the opening bracket.
func (p *parser) interval() (chem.Interval, error) {
	open := p.pos
	end := strings.IndexByte(p.in[open:], ']')
	if end < 0 {
		return chem.Interval{}, p.fail(ErrMalformedInterval, open)
	}
	body := strings.TrimSpace(p.in[open+1 : open+end])
	p.pos = open + end + 1

	lo, hi, ranged := strings.Cut(body, "-")
	lo, hi = strings.TrimSpace(lo), strings.TrimSpace(hi)
	if !ranged {
		n, ok := count(lo)
		if !ok {
			return chem.Interval{}, p.fail(ErrMalformedInterval, open)
		}

		return chem.Exactly(n), nil
	}
	if lo == "" && hi == "" {
		return chem.Interval{}, p.fail(ErrMalformedInterval, open)
	}

	iv := chem.Free
	var ok bool
	if lo != "" {
		if iv.Min, ok = count(lo); !ok {
			return chem.Interval{}, p.fail(ErrMalformedInterval, open)
		}
	}
	if hi != "" {
		if iv.Max, ok = count(hi); !ok {
			return chem.Interval{}, p.fail(ErrMalformedInterval, open)
		}
	}
	if iv.Min > iv.Max {
		return chem.Interval{}, p.fail(ErrInvertedInterval, open)
	}

	return iv, nil
}

// count parses a non-negative decimal count no larger than chem.Unbounded.
func count(s string) (int, bool) {
	if s == "" || strings.TrimLeft(s, "0123456789") != "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n > chem.Unbounded {
		return 0, false
	}

	return n, true
}

// String renders the constraints in their canonical form: elements in Hill
// order (C, H, then alphabetical; purely alphabetical without carbon),
// each followed by its interval when constrained.
func (c *Constraints) String() string {
	syms := c.Alphabet.Symbols()
	hasCarbon := c.Alphabet.Contains("C")
	rank := func(s string) int {
		switch {
		case hasCarbon && s == "C":
			return 0
		case hasCarbon && s == "H":
			return 1
		}

		return 2
	}
	sort.Slice(syms, func(i, j int) bool {
		if ri, rj := rank(syms[i]), rank(syms[j]); ri != rj {
			return ri < rj
		}

		return syms[i] < syms[j]
	})

	var b strings.Builder
	for _, s := range syms {
		b.WriteString(s)
		b.WriteString(c.Bounds.Of(s).String())
	}

	return b.String()
}

// Restrict returns a copy whose upper bounds are capped by the counts of a
// parent formula. Elements absent from parent are capped at 0. The
// alphabet is shared, so residue tables built for it stay usable.
func (c *Constraints) Restrict(parent map[string]int) *Constraints {
	out := &Constraints{Alphabet: c.Alphabet, Bounds: c.Bounds.Clone()}
	for _, s := range c.Alphabet.Symbols() {
		iv := out.Bounds.Of(s)
		iv.Max = min(iv.Max, parent[s])
		out.Bounds[s] = iv
	}

	return out
}

// Satisfied reports whether compomer x over c.Alphabet lies inside all bounds.
func (c *Constraints) Satisfied(x chem.Compomer) bool {
	return c.Bounds.Satisfied(c.Alphabet, x)
}
