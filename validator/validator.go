// SPDX-License-Identifier: MIT

package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/katalvlaran/massdecomp/chem"
	"github.com/katalvlaran/massdecomp/decomposer"
)

// ErrUnknownFilter indicates a filter name ByName does not recognize.
var ErrUnknownFilter = errors.New("validator: unknown filter")

// DefaultMinRDBE is the RDBE lower bound of NewValence and of all presets.
// Half-integer RDBE values belong to charged species, so -0.5 still admits
// radical cations of saturated formulas.
const DefaultMinRDBE = -0.5

// noCarbon is the ratio denominator used when a formula has no carbon.
const noCarbon = 0.8

// Filter names accepted by ByName.
const (
	NameStrict     = "strict"
	NameCommon     = "common"
	NamePermissive = "permissive"
	NameRDBE       = "rdbe"
	NameNone       = "none"
)

// Names returns the filter names accepted by ByName.
func Names() []string {
	return []string{NameStrict, NameCommon, NamePermissive, NameRDBE, NameNone}
}

// Valence accepts formulas whose RDBE is at least MinRDBE.
type Valence struct {
	MinRDBE float64
}

// NewValence returns a Valence with DefaultMinRDBE.
func NewValence() Valence { return Valence{MinRDBE: DefaultMinRDBE} }

// IsValid implements decomposer.Validator.
func (v Valence) IsValid(alphabet *chem.Alphabet, c chem.Compomer) bool {
	return RDBE(alphabet, c) >= v.MinRDBE
}

// Chemical accepts formulas inside an RDBE window whose hetero-atom and
// hydrogen ratios to carbon stay below the given thresholds.
type Chemical struct {
	MinRDBE             float64
	MaxRDBE             float64
	MaxHeteroToCarbon   float64
	MaxHydrogenToCarbon float64
}

// Strict returns the tightest preset.
func Strict() Chemical {
	return Chemical{MinRDBE: DefaultMinRDBE, MaxRDBE: 40, MaxHeteroToCarbon: 1, MaxHydrogenToCarbon: 3}
}

// Common returns the preset used by default.
func Common() Chemical {
	return Chemical{MinRDBE: DefaultMinRDBE, MaxRDBE: 50, MaxHeteroToCarbon: 2, MaxHydrogenToCarbon: 3.5}
}

// Permissive returns the loosest preset.
func Permissive() Chemical {
	return Chemical{MinRDBE: DefaultMinRDBE, MaxRDBE: 60, MaxHeteroToCarbon: 3, MaxHydrogenToCarbon: 6}
}

// IsValid implements decomposer.Validator.
func (v Chemical) IsValid(alphabet *chem.Alphabet, c chem.Compomer) bool {
	rdbe := RDBE(alphabet, c)
	if rdbe < v.MinRDBE || rdbe > v.MaxRDBE {
		return false
	}
	if HeteroToCarbon(alphabet, c) > v.MaxHeteroToCarbon {
		return false
	}

	return HydrogenToCarbon(alphabet, c) <= v.MaxHydrogenToCarbon
}

// all is the conjunction built by All.
type all []decomposer.Validator

func (vs all) IsValid(alphabet *chem.Alphabet, c chem.Compomer) bool {
	for _, v := range vs {
		if !v.IsValid(alphabet, c) {
			return false
		}
	}

	return true
}

// All returns a validator accepting a compomer only when every non-nil
// validator does. With no validators it accepts everything.
func All(vs ...decomposer.Validator) decomposer.Validator {
	out := make(all, 0, len(vs))
	for _, v := range vs {
		if v != nil {
			out = append(out, v)
		}
	}

	return out
}

// ByName returns the validator for a command-line filter name
// (case-insensitive). "none" returns a nil validator.
func ByName(name string) (decomposer.Validator, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case NameStrict:
		return Strict(), nil
	case NameCommon:
		return Common(), nil
	case NamePermissive:
		return Permissive(), nil
	case NameRDBE:
		return NewValence(), nil
	case NameNone:
		return nil, nil
	}

	return nil, fmt.Errorf("%w %q (allowed: %s)", ErrUnknownFilter, name, strings.Join(Names(), ", "))
}
