// SPDX-License-Identifier: MIT

package validator

import "github.com/katalvlaran/massdecomp/chem"

// RDBE returns the ring-plus-double-bond equivalents of c:
// 1 + Σ cᵢ·(valenceᵢ − 2) / 2.
func RDBE(alphabet *chem.Alphabet, c chem.Compomer) float64 {
	doubled := 2
	for i, n := range c {
		doubled += n * (alphabet.At(i).Valence - 2)
	}

	return float64(doubled) / 2
}

// HydrogenToCarbon returns #H / #C, or #H / 0.8 without carbon.
func HydrogenToCarbon(alphabet *chem.Alphabet, c chem.Compomer) float64 {
	return float64(alphabet.Count(c, "H")) / carbonDenominator(alphabet, c)
}

// HeteroToCarbon returns the number of atoms other than C and H divided by
// #C, or by 0.8 without carbon.
func HeteroToCarbon(alphabet *chem.Alphabet, c chem.Compomer) float64 {
	hetero := 0
	for _, n := range c {
		hetero += n
	}
	hetero -= alphabet.Count(c, "C") + alphabet.Count(c, "H")

	return float64(hetero) / carbonDenominator(alphabet, c)
}

func carbonDenominator(alphabet *chem.Alphabet, c chem.Compomer) float64 {
	if n := alphabet.Count(c, "C"); n > 0 {
		return float64(n)
	}

	return noCarbon
}
