// SPDX-License-Identifier: MIT

package decomposer_test

import (
	"math"
	"math/rand/v2"
	"slices"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/massdecomp/chem"
	"github.com/katalvlaran/massdecomp/decomposer"
	"github.com/katalvlaran/massdecomp/ert"
)

// fixture27943 lists every CHNOPS formula within 20 ppm (at least 0.001 Da)
// of 279.43 Da.
var fixture27943 = []string{
	"H180N7", "CH186O5", "C13H53N5", "C2H66NO7PS", "CH60N8O2PS", "H66N4O4P3",
	"C7H67O2S3", "C9H56N6P", "H76OP5S", "C6H63O7S", "C5H57N7O2S", "H61N3O11",
	"C4H63N3O4P2", "C3H70NO2PS3", "CH68N4OPS3", "C5H59N7P2", "C6H65O5P2", "H74O3P3S2",
	"C7H59N4O3S", "C2H190S2", "C8H60N2O4P", "H67N6S4", "C5H65N3OS3", "CH62N8P3",
	"C2H68NO5P3", "C3H62N5O3PS", "C2H71N2P4S", "CH76PS5", "C12H57NO4", "C2H182N4O",
	"C15H55N2O", "C6H68NP3S", "H59N10OS2", "CH65N3O6S2", "H64N4O6PS", "C7H69P2S2",
	"C11H58N3OP", "C10H65P2S", "C4H61N3O6S", "C3H55N10OS", "C3H72NP3S2", "H51N14O2",
	"CH57N7O7", "C2H63O12", "C2H61N6O3P2", "H72O5PS3", "C7H61N4OP2", "C9H61NO4S",
	"CH189NPS", "C6H58N5O3P", "C2H69N3OS4", "C3H63N6S3", "C3H64N5OP3", "C2H69N2O2P2S2",
	"C5H64N2O4PS", "C5H186S", "C10H55N4O3", "C4H184NO2", "C6H66NO2PS2", "CH67N3O4P2S",
	"C2H61N7O2S2", "C3H67O7S2", "C3H72OP5", "H187N2O2P", "C10H63O2S2", "C13H60O2P",
	"C2H59N6O5S", "CH53N13S", "C2H53N11O3", "C3H59N4O8", "CH65N2O7P2", "H59N9O2P2",
	"C9H63NO2P2", "C10H57N5S", "C5H62NO7P", "C4H56N8O2P", "C4H71O2S4", "C2H67N2O4S3",
	"C5H66N2O2P3", "H67N5OP2S2", "C6H60N6PS", "C9H59O7", "C8H53N7O2", "H74NO2PS4",
	"CH69N3O2P4", "C4H64N4OPS2", "C2H63N7P2S", "C3H69O5P2S", "C3H70O3P3S", "C4H63N4O3S2",
	"CH70N3P5", "H75NP2S4", "C8H61N3OS2", "H66N5O3PS2", "C5H67N2P4", "C4H72PS4",
	"CH63N2O9S", "H57N9O4S", "C4H55N8O4", "C5H61NO9", "C12H59N2OS", "C9H64NP3",
	"H58N9O4P", "CH64N2O9P", "C3H60N4O6P", "C2H54N11OP", "C4H73P2S3", "H65N5O3S3",
	"C8H62N3OPS", "C13H61P2", "H188N2P2", "C7H57N3O6", "C6H51N10O", "H76NP3S3",
	"C3H71O3P4", "C3H68O5PS2", "C2H62N7PS2", "C4H65N4OP2S", "CH68N3O2P3S", "C6H65NO4S2",
	"H73NO2S5", "C4H185NP",
}

// ------------------------------------------------------------------------
// 1. Known results.
// ------------------------------------------------------------------------

func TestDecompose_SingleElement(t *testing.T) {
	a := alphabet(t, "C")
	d := decomposer.New(a)

	got, err := d.Decompose(16*12.0, chem.Deviation{PPM: 50, Absolute: 0.01}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []chem.Compomer{{16}}, got)

	it, err := d.Iterate(16*12.0, chem.Deviation{PPM: 50, Absolute: 0.01}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []chem.Compomer{{16}}, drain(t, it))
}

func TestDecompose_Fixture27943(t *testing.T) {
	a := alphabet(t, "CHNOPS")
	d := decomposer.New(a)
	dev := chem.Deviation{PPM: 20, Absolute: 0.001}

	want := slices.Sorted(slices.Values(fixture27943))

	got, err := d.Decompose(279.43, dev, nil, nil)
	require.NoError(t, err)
	eager := formulas(a, got)
	assert.Equal(t, want, eager, "eager (-want +got):\n%s", cmp.Diff(want, eager))

	it, err := d.Iterate(279.43, dev, nil, nil)
	require.NoError(t, err)
	lazy := formulas(a, drain(t, it))
	assert.Equal(t, want, lazy, "lazy (-want +got):\n%s", cmp.Diff(want, lazy))
}

func TestDecompose_Glucose(t *testing.T) {
	a := alphabet(t, "CHO")
	d := decomposer.New(a)

	got, err := d.Decompose(180.0633881, chem.Deviation{PPM: 5}, nil, nil)
	require.NoError(t, err)
	assert.Contains(t, formulas(a, got), "C6H12O6")
}

// ------------------------------------------------------------------------
// 2. Properties.
// ------------------------------------------------------------------------

func TestDecompose_MatchesBruteForce(t *testing.T) {
	a := alphabet(t, "CHNO")
	d := decomposer.New(a)
	rng := rand.New(rand.NewPCG(1, 2))

	for range 20 {
		mass := 20 + rng.Float64()*180
		dev := chem.Deviation{PPM: 10, Absolute: 0.005}
		from, to := dev.Window(mass)

		got, err := d.Decompose(mass, dev, nil, nil)
		require.NoError(t, err)
		want := bruteForce(a, from, to, nil)
		require.ElementsMatch(t, formulas(a, want), formulas(a, got), "mass %g", mass)
	}
}

func TestDecompose_MassWindow(t *testing.T) {
	a := alphabet(t, "CHNOPS")
	d := decomposer.New(a)
	dev := chem.Deviation{PPM: 20, Absolute: 0.001}

	for _, mass := range []float64{18.0106, 121.0508, 279.43, 342.1162} {
		got, err := d.Decompose(mass, dev, nil, nil)
		require.NoError(t, err)
		for _, c := range got {
			assert.LessOrEqual(t, math.Abs(a.Mass(c)-mass), dev.AbsoluteFor(mass), a.Format(c))
		}
	}
}

func TestDecompose_EagerLazyEquivalence(t *testing.T) {
	a := alphabet(t, "CHNOPS")
	d := decomposer.New(a)
	rng := rand.New(rand.NewPCG(7, 11))
	boundsSets := []chem.Bounds{
		nil,
		{"O": {Min: 1, Max: 3}},
		{"C": chem.AtLeast(5), "P": chem.AtMost(1), "S": chem.AtMost(1)},
		{"N": chem.Exactly(2), "H": {Min: 4, Max: 30}},
	}

	for range 15 {
		mass := 60 + rng.Float64()*300
		for _, bounds := range boundsSets {
			eager, err := d.Decompose(mass, chem.Deviation{PPM: 10, Absolute: 0.002}, bounds, nil)
			require.NoError(t, err)
			it, err := d.Iterate(mass, chem.Deviation{PPM: 10, Absolute: 0.002}, bounds, nil)
			require.NoError(t, err)
			require.ElementsMatch(t, formulas(a, eager), formulas(a, drain(t, it)), "mass %g bounds %v", mass, bounds)
		}
	}
}

func TestDecompose_BoundsAreMonotone(t *testing.T) {
	a := alphabet(t, "CHNOPS")
	d := decomposer.New(a)
	dev := chem.Deviation{PPM: 20, Absolute: 0.001}

	loose, err := d.Decompose(279.43, dev, chem.Bounds{"S": chem.AtMost(3)}, nil)
	require.NoError(t, err)
	tight, err := d.Decompose(279.43, dev, chem.Bounds{"S": chem.AtMost(1)}, nil)
	require.NoError(t, err)
	tighter, err := d.Decompose(279.43, dev, chem.Bounds{"S": chem.AtMost(1), "C": chem.AtLeast(2)}, nil)
	require.NoError(t, err)

	assert.LessOrEqual(t, len(tight), len(loose))
	assert.LessOrEqual(t, len(tighter), len(tight))
	assert.Subset(t, formulas(a, loose), formulas(a, tight))
	assert.Subset(t, formulas(a, tight), formulas(a, tighter))

	bounds := chem.Bounds{"S": chem.AtMost(1), "C": chem.AtLeast(2)}
	for _, c := range tighter {
		assert.True(t, bounds.Satisfied(a, c), a.Format(c))
	}
}

func TestDecompose_Idempotent(t *testing.T) {
	a := alphabet(t, "CHNOPS")
	table, err := ert.Build(a)
	require.NoError(t, err)

	first, err := decomposer.New(a, decomposer.WithTable(table)).Decompose(279.43, chem.Deviation{PPM: 20, Absolute: 0.001}, nil, nil)
	require.NoError(t, err)
	second, err := decomposer.New(a, decomposer.WithTable(table)).Decompose(279.43, chem.Deviation{PPM: 20, Absolute: 0.001}, nil, nil)
	require.NoError(t, err)
	assert.ElementsMatch(t, formulas(a, first), formulas(a, second))
}

func TestDecompose_Minima(t *testing.T) {
	a := alphabet(t, "CH")
	d := decomposer.New(a)

	// fully determined by the bounds: the reduced search sees mass 0
	got, err := d.Decompose(192, chem.Deviation{Absolute: 0.001}, chem.Bounds{"C": chem.Exactly(16), "H": chem.Exactly(0)}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"C16"}, formulas(a, got))

	it, err := d.Iterate(192, chem.Deviation{Absolute: 0.001}, chem.Bounds{"C": chem.Exactly(16), "H": chem.Exactly(0)}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"C16"}, formulas(a, drain(t, it)))

	// methane family with at least 4 hydrogens
	bounds := chem.Bounds{"H": chem.AtLeast(4)}
	got, err = d.Decompose(16.0313, chem.Deviation{Absolute: 0.001}, bounds, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"CH4"}, formulas(a, got))
}

func TestDecompose_Validator(t *testing.T) {
	a := alphabet(t, "CHNOPS")
	d := decomposer.New(a)
	noSulfur := decomposer.ValidatorFunc(func(a *chem.Alphabet, c chem.Compomer) bool {
		return a.Count(c, "S") == 0
	})

	got, err := d.Decompose(279.43, chem.Deviation{PPM: 20, Absolute: 0.001}, nil, noSulfur)
	require.NoError(t, err)
	require.NotEmpty(t, got)
	for _, c := range got {
		assert.Zero(t, a.Count(c, "S"), a.Format(c))
	}

	boom := decomposer.ValidatorFunc(func(*chem.Alphabet, chem.Compomer) bool { panic("boom") })
	assert.PanicsWithValue(t, "boom", func() {
		_, _ = d.Decompose(279.43, chem.Deviation{PPM: 20, Absolute: 0.001}, nil, boom)
	})
}

// ------------------------------------------------------------------------
// 3. Degenerate input and errors.
// ------------------------------------------------------------------------

func TestDecompose_Degenerate(t *testing.T) {
	a := alphabet(t, "CHNO")
	d := decomposer.New(a)
	dev := chem.Deviation{PPM: 20, Absolute: 0.001}

	for _, mass := range []float64{0, -5, math.NaN(), math.Inf(1)} {
		got, err := d.Decompose(mass, dev, nil, nil)
		assert.NoError(t, err)
		assert.Empty(t, got, "mass %g", mass)

		it, err := d.Iterate(mass, dev, nil, nil)
		require.NoError(t, err)
		assert.False(t, it.Next())
	}

	got, err := d.Decompose(180.0634, dev, chem.Bounds{"O": {Min: 3, Max: 1}}, nil)
	assert.NoError(t, err)
	assert.Empty(t, got, "inverted bound")

	empty, err := chem.NewAlphabet()
	require.NoError(t, err)
	got, err = decomposer.New(empty).Decompose(180.0634, dev, nil, nil)
	assert.NoError(t, err)
	assert.Empty(t, got, "empty alphabet")
	assert.ErrorIs(t, decomposer.New(empty).Init(), ert.ErrEmptyAlphabet)

	got, err = decomposer.New(nil).Decompose(180.0634, dev, nil, nil)
	assert.NoError(t, err)
	assert.Empty(t, got, "nil alphabet")
}

func TestDecompose_TableErrors(t *testing.T) {
	a := alphabet(t, "CHNO")
	d := decomposer.New(a, decomposer.WithPrecision(50))

	_, err := d.Decompose(180.0634, chem.Deviation{PPM: 20}, nil, nil)
	assert.ErrorIs(t, err, ert.ErrPrecisionTooCoarse)
	_, err = d.Iterate(180.0634, chem.Deviation{PPM: 20}, nil, nil)
	assert.ErrorIs(t, err, ert.ErrPrecisionTooCoarse, "the error is remembered")

	other, err := ert.Build(alphabet(t, "CHO"))
	require.NoError(t, err)
	_, err = decomposer.New(a, decomposer.WithTable(other)).Decompose(180.0634, chem.Deviation{PPM: 20}, nil, nil)
	assert.ErrorIs(t, err, decomposer.ErrTableMismatch)
}

func TestOptions_Panic(t *testing.T) {
	assert.PanicsWithValue(t, ert.ErrBadPrecision.Error(), func() { decomposer.WithPrecision(0) })
	assert.PanicsWithValue(t, decomposer.ErrNilTable.Error(), func() { decomposer.WithTable(nil) })
	assert.PanicsWithValue(t, decomposer.ErrNilCache.Error(), func() { decomposer.WithCache(nil) })
}

// ------------------------------------------------------------------------
// 4. Range decomposition and reachability.
// ------------------------------------------------------------------------

func TestDecomposeRange(t *testing.T) {
	a := alphabet(t, "CHO")
	d := decomposer.New(a)

	_, err := d.DecomposeRange(10, 9, nil, nil)
	assert.ErrorIs(t, err, decomposer.ErrInvalidRange)
	_, err = d.IterateRange(math.NaN(), 9, nil, nil)
	assert.ErrorIs(t, err, decomposer.ErrInvalidRange)

	got, err := d.DecomposeRange(-3, 0, nil, nil)
	assert.NoError(t, err)
	assert.Empty(t, got)

	got, err = d.DecomposeRange(180.05, 180.07, nil, nil)
	require.NoError(t, err)
	assert.Contains(t, formulas(a, got), "C6H12O6")
	assert.ElementsMatch(t, formulas(a, bruteForce(a, 180.05, 180.07, nil)), formulas(a, got))
	for _, c := range got {
		m := a.Mass(c)
		assert.True(t, m >= 180.05 && m <= 180.07, a.Format(c))
	}

	it, err := d.IterateRange(180.05, 180.07, nil, nil)
	require.NoError(t, err)
	assert.ElementsMatch(t, formulas(a, got), formulas(a, drain(t, it)))
}

func TestMaybeDecomposable(t *testing.T) {
	d := decomposer.New(alphabet(t, "CHNOPS"))

	ok, err := d.MaybeDecomposable(180.0634, chem.Deviation{PPM: 5})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = d.MaybeDecomposable(0.5, chem.Deviation{Absolute: 0.01})
	require.NoError(t, err)
	assert.False(t, ok, "lighter than hydrogen")

	ok, err = d.MaybeDecomposable(-1, chem.Deviation{PPM: 5})
	require.NoError(t, err)
	assert.False(t, ok)

	// nothing built from C and O weighs 13 Da
	ok, err = decomposer.New(alphabet(t, "CO")).MaybeDecomposable(13, chem.Deviation{Absolute: 0.001})
	require.NoError(t, err)
	assert.False(t, ok)
}

// ------------------------------------------------------------------------
// 5. Sharing.
// ------------------------------------------------------------------------

func TestDecomposer_Concurrent(t *testing.T) {
	a := alphabet(t, "CHNOPS")
	cache, err := ert.NewCache(2)
	require.NoError(t, err)
	d := decomposer.New(a, decomposer.WithCache(cache))
	want := len(fixture27943)

	var wg sync.WaitGroup
	counts := make([]int, 8)
	for i := range counts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := d.Decompose(279.43, chem.Deviation{PPM: 20, Absolute: 0.001}, nil, nil)
			if err == nil {
				counts[i] = len(got)
			}
		}()
	}
	wg.Wait()

	for _, n := range counts {
		assert.Equal(t, want, n)
	}
	assert.Equal(t, int64(1), cache.Builds())

	table, err := d.Table()
	require.NoError(t, err)
	assert.Same(t, a, table.Alphabet())
	assert.Same(t, a, d.Alphabet())
}
