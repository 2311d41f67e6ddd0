// SPDX-License-Identifier: MIT

// Package decomposer enumerates every molecular formula whose mass lies
// within a tolerance window around an observed mass.
//
// Overview:
//
//   - Decompose is the eager variant: it returns all compomers as a slice.
//   - Iterate is the lazy variant: a pull-based Iterator yields one compomer
//     per Next call without materializing the result set, and additionally
//     prunes every level with the per-element upper bounds.
//   - Both variants produce exactly the same set; only the order differs.
//   - MaybeDecomposable answers "is any integer mass in the window
//     reachable at all?" without enumerating.
//
// How it works:
//
//  1. Per-element minimum counts are subtracted from the window up front and
//     added back on emission; what remains are upper bounds max−min.
//  2. The reduced window is mapped to an integer window with the residue
//     table's rounding errors (ert.Table.IntegerBounds).
//  3. For every integer mass in that window, counts are assigned from the
//     heaviest element down. A partial assignment is only extended when the
//     remaining mass is reachable with the lighter elements (O(1) ERT check);
//     the lightest element's count follows from plain division.
//  4. Every integer solution is re-checked against the exact window with
//     real masses, since rounding makes the integer check necessary but not
//     sufficient. Survivors pass through the optional Validator.
//
// Search is iterative (explicit per-level state), so stack depth does not
// grow with the alphabet and the Iterator can suspend between solutions.
//
// Degenerate input (empty alphabet, non-positive mass, a bound with
// Min > Max) yields an empty result and a nil error. The only error source
// is residue-table construction.
//
// Thread safety:
//
//   - A Decomposer may be shared by any number of goroutines; its table is
//     built exactly once and read-only afterwards.
//   - An Iterator belongs to a single goroutine.
//
// Complexity:
//
//   - Table: O(K·w₀) once per alphabet (see package ert).
//   - Query: O(W·K·(D+1)·w_max/w₀)-ish in practice, where W is the integer
//     window width and D the number of integer decompositions; exponential
//     in K in the worst case without tight bounds.
package decomposer
