// SPDX-License-Identifier: MIT

package chem

import "errors"

// Sentinel errors. Every message is prefixed with "chem: "; callers match
// with errors.Is, wrapped context is added via fmt.Errorf("...: %w", ErrX).
var (
	// ErrEmptySymbol indicates an element without a symbol.
	ErrEmptySymbol = errors.New("chem: element symbol is empty")

	// ErrInvalidMass indicates a non-positive, NaN or infinite element mass.
	ErrInvalidMass = errors.New("chem: element mass must be positive and finite")

	// ErrDuplicateElement indicates the same symbol was supplied twice.
	ErrDuplicateElement = errors.New("chem: duplicate element")

	// ErrUnknownElement indicates a symbol missing from a table or alphabet.
	ErrUnknownElement = errors.New("chem: unknown element")

	// ErrMalformedFormula indicates a formula string that cannot be tokenized.
	ErrMalformedFormula = errors.New("chem: malformed formula")

	// ErrInvalidInterval indicates a negative minimum or Min > Max.
	ErrInvalidInterval = errors.New("chem: invalid interval")

	// ErrNegativeDeviation indicates a negative or NaN ppm/absolute tolerance.
	ErrNegativeDeviation = errors.New("chem: deviation must be non-negative")

	// ErrUnknownIon indicates an ion type name that is not recognized.
	ErrUnknownIon = errors.New("chem: unknown ion type")
)
