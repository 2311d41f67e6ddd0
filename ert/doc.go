// SPDX-License-Identifier: MIT

// Package ert builds the Extended Residue Table used to decide, in constant
// time, whether an integer mass can be written as a sum of element masses.
//
// 🚀 What is an ERT?
//
//	Masses are real numbers, but the money-changing DP needs integers.
//	Every element mass is scaled by 1/precision and rounded, giving integer
//	weights w[0] ≤ w[1] ≤ … (the Alphabet keeps elements mass-ascending).
//	For every residue r modulo w[0] and every prefix 0..k of the alphabet,
//	the table stores the smallest integer mass ≡ r (mod w[0]) that can be
//	built from elements 0..k. A target m is decomposable with 0..k iff
//
//	    m ≥ ert[k][m mod w[0]]
//
// Construction (Böcker & Lipták, "The Money Changing Problem revisited"):
//  1. Discretize masses, divide by the common gcd, record the relative
//     rounding errors (needed to map real windows to integer windows).
//  2. Row 0: residue 0 → 0, everything else → +∞.
//  3. Row k from row k−1: for each of the gcd(w[0], w[k]) residue classes,
//     start at the class minimum and walk w[0]/gcd steps adding w[k],
//     carrying min(carried, ert[k−1][residue]).
//
// Complexity:
//
//   - Time:  O(K · w[0]) for K elements.
//   - Space: O(K · w[0]) int64 cells.
//
// Tables are immutable once Build returns and safe to share between
// goroutines. Cache keeps a bounded LRU of tables keyed by alphabet and
// precision and builds each one exactly once.
//
// Errors (sentinel):
//
//   - ErrEmptyAlphabet:      the alphabet has no elements.
//   - ErrPrecisionTooCoarse: an element mass rounds to zero.
//   - ErrTableTooLarge:      the residue count exceeds MaxResidues.
//   - ErrOverflow:           an intermediate mass left the int64 range.
//   - ErrBadPrecision:       (panic) WithPrecision got a non-positive or non-finite value.
//   - ErrBadCacheSize:       NewCache got a non-positive size.
package ert
