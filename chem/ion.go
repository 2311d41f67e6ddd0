// SPDX-License-Identifier: MIT

package chem

import (
	"fmt"
	"sort"
	"strings"
)

// ElectronMass is the rest mass of an electron in Dalton.
const ElectronMass = 0.00054857990946

// IonType describes how a neutral molecule M became the observed ion:
// Adduct is the (signed) mass attached to M and Charge the resulting charge.
type IonType struct {
	Name   string
	Adduct float64
	Charge int
}

// NeutralMass converts an observed m/z into the neutral mass of M.
func (t IonType) NeutralMass(mz float64) float64 {
	z := t.Charge
	if z < 0 {
		z = -z
	}
	if z == 0 {
		return mz - t.Adduct
	}

	return mz*float64(z) + float64(t.Charge)*ElectronMass - t.Adduct
}

// PrecursorMass is the inverse of NeutralMass.
func (t IonType) PrecursorMass(neutral float64) float64 {
	z := t.Charge
	if z < 0 {
		z = -z
	}
	if z == 0 {
		return neutral + t.Adduct
	}

	return (neutral + t.Adduct - float64(t.Charge)*ElectronMass) / float64(z)
}

// String returns the ion name.
func (t IonType) String() string { return t.Name }

// Neutral is the identity ion type: the input already is a neutral mass.
var Neutral = IonType{Name: "[M]", Adduct: 0, Charge: 0}

const (
	massH  = 1.00782503207
	massN  = 14.0030740048
	massNa = 22.9897692809
	massK  = 38.96370668
	massCl = 34.96885268
)

var knownIons = map[string]IonType{
	"[M]":      Neutral,
	"[M+H]+":   {Name: "[M+H]+", Adduct: massH, Charge: 1},
	"[M+Na]+":  {Name: "[M+Na]+", Adduct: massNa, Charge: 1},
	"[M+K]+":   {Name: "[M+K]+", Adduct: massK, Charge: 1},
	"[M+NH4]+": {Name: "[M+NH4]+", Adduct: massN + 4*massH, Charge: 1},
	"[M]+":     {Name: "[M]+", Adduct: 0, Charge: 1},
	"[M-H]-":   {Name: "[M-H]-", Adduct: -massH, Charge: -1},
	"[M+Cl]-":  {Name: "[M+Cl]-", Adduct: massCl, Charge: -1},
	"[M]-":     {Name: "[M]-", Adduct: 0, Charge: -1},
}

// IonByName resolves an ion name such as "[M+H]+". Whitespace is ignored;
// the empty string resolves to Neutral.
func IonByName(name string) (IonType, error) {
	name = strings.Join(strings.Fields(name), "")
	if name == "" {
		return Neutral, nil
	}
	if t, ok := knownIons[name]; ok {
		return t, nil
	}

	return IonType{}, fmt.Errorf("%w: %q (known: %s)", ErrUnknownIon, name, strings.Join(IonNames(), ", "))
}

// IonNames lists the recognized ion names, sorted.
func IonNames() []string {
	out := make([]string, 0, len(knownIons))
	for k := range knownIons {
		out = append(out, k)
	}
	sort.Strings(out)

	return out
}
