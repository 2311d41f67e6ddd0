// SPDX-License-Identifier: MIT

// Package chem holds the chemical value types every other package of
// massdecomp is built on.
//
// What lives here:
//
//   - Element and PeriodicTable: immutable symbol → (mass, valence) lookup.
//     DefaultTable() is built once per process; tests and callers with
//     exotic elements construct their own with NewPeriodicTable.
//   - Alphabet: the ordered set of elements a mass is decomposed over.
//     Elements are kept in ascending mass order, and position i of an
//     Alphabet is index i of every Compomer built over it.
//   - Compomer: a vector of element counts. Alphabet.Mass and
//     Alphabet.Format map it back to a theoretical mass and to a formula
//     string in Hill notation.
//   - Interval and Bounds: per-element [min, max] count constraints, with
//     Unbounded as the integer-safe "no upper limit" sentinel.
//   - Deviation: ppm + absolute mass tolerance.
//   - IonType: converts an observed m/z into a neutral mass.
//
// Everything in this package is immutable after construction and safe for
// concurrent use.
//
// Errors (sentinel):
//
//   - ErrEmptySymbol, ErrInvalidMass, ErrDuplicateElement: table or alphabet construction.
//   - ErrUnknownElement: a symbol is not present in the table/alphabet.
//   - ErrMalformedFormula: a formula string cannot be tokenized.
//   - ErrInvalidInterval: negative or inverted interval.
//   - ErrNegativeDeviation: negative or NaN tolerance.
//   - ErrUnknownIon: ion name not recognized.
package chem
