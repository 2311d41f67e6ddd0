// SPDX-License-Identifier: MIT

// Package validator provides chemical plausibility filters for
// decompositions. Every filter implements decomposer.Validator.
//
// Filters:
//
//	– Valence:  ring-plus-double-bond equivalents (RDBE) must not fall below
//	            MinRDBE, i.e. the formula must be representable as a graph
//	            under the elements' standard valences.
//	– Chemical: Valence plus an upper RDBE limit and caps on the
//	            hetero-atom/carbon and hydrogen/carbon ratios.
//	            Strict, Common and Permissive return the three presets.
//	– All:      conjunction of any number of validators.
//
// Definitions:
//
//	RDBE   = 1 + Σ cᵢ·(valenceᵢ − 2) / 2
//	H/C    = #H / #C
//	X/C    = (#atoms − #C − #H) / #C
//
// When a formula has no carbon, both ratios divide by 0.8 instead.
//
// ByName resolves the filter names used on the command line:
// strict, common, permissive, rdbe and none.
//
// All filters are immutable values and safe for concurrent use.
package validator
