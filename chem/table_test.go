// SPDX-License-Identifier: MIT

package chem_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/massdecomp/chem"
)

// ------------------------------------------------------------------------
// 1. Periodic table construction.
// ------------------------------------------------------------------------

func TestNewPeriodicTable_Validation(t *testing.T) {
	_, err := chem.NewPeriodicTable(chem.Element{Symbol: "", Mass: 1})
	assert.ErrorIs(t, err, chem.ErrEmptySymbol)

	_, err = chem.NewPeriodicTable(chem.Element{Symbol: "X", Mass: 0})
	assert.ErrorIs(t, err, chem.ErrInvalidMass, "zero mass")

	_, err = chem.NewPeriodicTable(chem.Element{Symbol: "X", Mass: -3})
	assert.ErrorIs(t, err, chem.ErrInvalidMass, "negative mass")

	_, err = chem.NewPeriodicTable(
		chem.Element{Symbol: "X", Mass: 1},
		chem.Element{Symbol: "X", Mass: 2},
	)
	assert.ErrorIs(t, err, chem.ErrDuplicateElement)
}

func TestDefaultTable_Lookup(t *testing.T) {
	table := chem.DefaultTable()
	assert.Same(t, table, chem.DefaultTable(), "default table is built once")

	c, ok := table.Lookup("C")
	require.True(t, ok)
	assert.Equal(t, 12.0, c.Mass)
	assert.Equal(t, 4, c.Valence)

	_, ok = table.Lookup("Xx")
	assert.False(t, ok)

	_, err := table.Get("Xx")
	assert.ErrorIs(t, err, chem.ErrUnknownElement)

	assert.Contains(t, table.Symbols(), "Cl")
}

func TestPeriodicTable_MatchSymbol(t *testing.T) {
	table := chem.DefaultTable()

	e, next, ok := table.MatchSymbol("ClC", 0)
	require.True(t, ok)
	assert.Equal(t, "Cl", e.Symbol, "two-letter symbols win")
	assert.Equal(t, 2, next)

	e, next, ok = table.MatchSymbol("ClC", 2)
	require.True(t, ok)
	assert.Equal(t, "C", e.Symbol)
	assert.Equal(t, 3, next)

	// "Co" is unknown, so "C" followed by a stray "o" is matched.
	e, next, ok = table.MatchSymbol("Co", 0)
	require.True(t, ok)
	assert.Equal(t, "C", e.Symbol)
	assert.Equal(t, 1, next)

	_, _, ok = table.MatchSymbol("x", 0)
	assert.False(t, ok, "lower-case start")
	_, _, ok = table.MatchSymbol("C", 1)
	assert.False(t, ok, "past the end")
}

// ------------------------------------------------------------------------
// 2. Formula parsing.
// ------------------------------------------------------------------------

func TestPeriodicTable_ParseFormula(t *testing.T) {
	table := chem.DefaultTable()

	counts, err := table.ParseFormula("C6H12O6")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"C": 6, "H": 12, "O": 6}, counts)

	counts, err = table.ParseFormula("CH3CH2Cl")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"C": 2, "H": 5, "Cl": 1}, counts, "repeated symbols accumulate")

	counts, err = table.ParseFormula("  ")
	require.NoError(t, err)
	assert.Empty(t, counts)

	_, err = table.ParseFormula("C6Xx2")
	assert.ErrorIs(t, err, chem.ErrUnknownElement)

	_, err = table.ParseFormula("C6(H2O)")
	assert.ErrorIs(t, err, chem.ErrMalformedFormula)
}

func TestPeriodicTable_Alphabet(t *testing.T) {
	table := chem.DefaultTable()

	a, err := table.Alphabet("CHNOPS")
	require.NoError(t, err)
	assert.Equal(t, []string{"H", "C", "N", "O", "P", "S"}, a.Symbols(), "mass-ascending order")

	a, err = table.Alphabet("C", "Cl", "Br")
	require.NoError(t, err)
	assert.Equal(t, 3, a.Len())

	_, err = table.Alphabet("CHQ")
	assert.ErrorIs(t, err, chem.ErrUnknownElement)

	_, err = table.Alphabet("CHC")
	assert.ErrorIs(t, err, chem.ErrDuplicateElement)
}
