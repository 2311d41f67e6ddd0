// SPDX-License-Identifier: MIT

package chem

import (
	"fmt"
	"math"
)

// Deviation is a mass tolerance combining a relative (ppm) and an
// absolute (Dalton) component; the larger of both wins.
type Deviation struct {
	PPM      float64
	Absolute float64
}

// NewDeviation validates and returns a Deviation. Both components must be
// non-negative and not NaN (ErrNegativeDeviation).
func NewDeviation(ppm, absolute float64) (Deviation, error) {
	if !(ppm >= 0) || !(absolute >= 0) {
		return Deviation{}, fmt.Errorf("%w: ppm=%g absolute=%g", ErrNegativeDeviation, ppm, absolute)
	}

	return Deviation{PPM: ppm, Absolute: absolute}, nil
}

// PPMDeviation returns a deviation of ppm with an absolute floor of
// ppm·1e-4 Dalton (i.e. ppm evaluated at 100 Da).
func PPMDeviation(ppm float64) Deviation {
	return Deviation{PPM: ppm, Absolute: ppm * 1e-4}
}

// AbsoluteFor returns the absolute tolerance at mass:
// max(Absolute, PPM·mass·1e-6).
func (d Deviation) AbsoluteFor(mass float64) float64 {
	return math.Max(d.Absolute, d.PPM*mass*1e-6)
}

// Window returns the closed mass interval [mass-Δ, mass+Δ].
func (d Deviation) Window(mass float64) (from, to float64) {
	delta := d.AbsoluteFor(mass)

	return mass - delta, mass + delta
}

// InWindow reports whether other lies within the tolerance around center.
func (d Deviation) InWindow(center, other float64) bool {
	return math.Abs(center-other) <= d.AbsoluteFor(center)
}

// String renders "20 ppm (min 0.001 Da)".
func (d Deviation) String() string {
	return fmt.Sprintf("%g ppm (min %g Da)", d.PPM, d.Absolute)
}
