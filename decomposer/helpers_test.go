// SPDX-License-Identifier: MIT

package decomposer_test

import (
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/massdecomp/chem"
	"github.com/katalvlaran/massdecomp/decomposer"
)

func alphabet(t testing.TB, symbols string) *chem.Alphabet {
	t.Helper()
	a, err := chem.DefaultTable().Alphabet(symbols)
	require.NoError(t, err)

	return a
}

// formulas renders compomers as a sorted list of Hill formulas.
func formulas(a *chem.Alphabet, cs []chem.Compomer) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = a.Format(c)
	}
	sort.Strings(out)

	return out
}

// drain collects everything an iterator yields.
func drain(t testing.TB, it *decomposer.Iterator) []chem.Compomer {
	t.Helper()
	var out []chem.Compomer
	for c := range it.All() {
		out = append(out, c)
	}

	return out
}

// bruteForce enumerates every compomer over a with from ≤ mass ≤ to that
// satisfies bounds, by plain nested loops. Element 0 is solved directly.
func bruteForce(a *chem.Alphabet, from, to float64, bounds chem.Bounds) []chem.Compomer {
	var (
		out []chem.Compomer
		c   = make(chem.Compomer, a.Len())
		rec func(i int, mass float64)
	)
	rec = func(i int, mass float64) {
		if i == 0 {
			e := a.At(0)
			iv := bounds.Of(e.Symbol)
			lo := int(math.Max(0, math.Ceil((from-mass)/e.Mass)-1))
			hi := int(math.Floor((to-mass)/e.Mass) + 1)
			for n := max(lo, iv.Min); n <= hi && n <= iv.Max; n++ {
				m := mass + float64(n)*e.Mass
				if m >= from && m <= to {
					c[0] = n
					out = append(out, c.Clone())
				}
			}
			c[0] = 0

			return
		}
		e := a.At(i)
		iv := bounds.Of(e.Symbol)
		for n := iv.Min; n <= iv.Max; n++ {
			m := mass + float64(n)*e.Mass
			if m > to {
				break
			}
			c[i] = n
			rec(i-1, m)
		}
		c[i] = 0
	}
	rec(a.Len()-1, 0)

	// the empty compomer is never a decomposition of a positive mass
	filtered := out[:0]
	for _, x := range out {
		if a.Mass(x) > 0 {
			filtered = append(filtered, x)
		}
	}

	return filtered
}
