// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/katalvlaran/massdecomp/batch"
	"github.com/katalvlaran/massdecomp/chem"
)

// ranked decomposes mass and prints the formulas by increasing |error|.
func (a *App) ranked(s *session, mass float64) (int, error) {
	found, err := s.decomposer.Decompose(mass, s.dev, s.cons.Bounds, s.validator)
	if err != nil {
		return 0, err
	}
	cands := batch.Rank(s.cons.Alphabet, mass, found)
	a.printCandidates(a.stdout, cands)

	return len(cands), nil
}

// stream prints formulas in search order as the iterator yields them.
func (a *App) stream(s *session, mass float64) (int, error) {
	it, err := s.decomposer.Iterate(mass, s.dev, s.cons.Bounds, s.validator)
	if err != nil {
		return 0, err
	}
	n := 0
	for c := range it.All() {
		a.printCandidate(a.stdout, candidate(s.cons.Alphabet, mass, c))
		n++
		if a.cfg.Output.Limit > 0 && n >= a.cfg.Output.Limit {
			break
		}
	}

	return n, nil
}

func (a *App) printCandidates(w io.Writer, cands []batch.Candidate) {
	for i, c := range cands {
		if a.cfg.Output.Limit > 0 && i >= a.cfg.Output.Limit {
			return
		}
		a.printCandidate(w, c)
	}
}

// printCandidate writes "formula" or, with mass errors,
// "formula<TAB>error Da<TAB>error ppm" (ppm rounded to two decimals).
func (a *App) printCandidate(w io.Writer, c batch.Candidate) {
	if !a.cfg.Output.MassErrors {
		fmt.Fprintln(w, c.Formula)

		return
	}
	ppm := math.Round(c.PPM*100) / 100
	fmt.Fprintf(w, "%s\t%s\t%s\n", c.Formula,
		strconv.FormatFloat(c.Error, 'g', -1, 64),
		strconv.FormatFloat(ppm, 'f', -1, 64))
}

func candidate(alphabet *chem.Alphabet, mass float64, c chem.Compomer) batch.Candidate {
	return batch.Rank(alphabet, mass, []chem.Compomer{c})[0]
}
