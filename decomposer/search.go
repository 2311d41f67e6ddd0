// SPDX-License-Identifier: MIT

package decomposer

import "github.com/katalvlaran/massdecomp/ert"

// search enumerates the integer decompositions of one integer mass.
// Its count vector is reused across runs, so a search is not safe for
// concurrent use; every Decompose call owns one.
type search struct {
	t     *ert.Table
	w     []int64
	upper []int
	c     []int
}

func newSearch(t *ert.Table, upper []int) *search {
	return &search{
		t:     t,
		w:     t.Weights(),
		upper: upper,
		c:     make([]int, t.Len()),
	}
}

// run calls emit with every count vector c (c[i] ≤ upper[i]) whose integer
// mass equals mass. The slice passed to emit is reused; copy it to keep it.
//
// Levels are walked with an explicit index instead of recursion:
//   - i is the element being assigned, m the integer mass still unassigned
//     for elements 0..i.
//   - Going down (i--) happens while the lighter elements can still reach m.
//   - Going up (i++) resets the level and bumps the next heavier count.
func (s *search) run(mass int64, emit func([]int)) {
	var (
		k = len(s.w) - 1
		c = s.c
		i = k
		m = mass
	)
	clear(c)

	for i <= k {
		if !s.t.Decomposable(i, m) {
			// 1) Dead end: release levels until m is reachable again.
			for i <= k && !s.t.Decomposable(i, m) {
				m += int64(c[i]) * s.w[i]
				c[i] = 0
				i++
			}
		} else {
			// 2) Descend as far as the lighter elements allow.
			for i > 0 && s.t.Decomposable(i-1, m) {
				i--
			}
			// 3) Element 0 takes the rest; reachability implies divisibility.
			if i == 0 {
				if n := m / s.w[0]; n <= int64(s.upper[0]) {
					c[0] = int(n)
					emit(c)
				}
				c[0] = 0
				i++
			}
		}

		// 4) Skip exhausted levels, then take one more of element i.
		for i <= k && c[i] >= s.upper[i] {
			m += int64(c[i]) * s.w[i]
			c[i] = 0
			i++
		}
		if i <= k {
			m -= s.w[i]
			c[i]++
		}
	}
}
