// SPDX-License-Identifier: MIT

// Package cli contains the cobra commands of the decomp tool.
//
// decomp <mass> decomposes one m/z value and prints the matching molecular
// formulas sorted by absolute mass error; decomp batch decomposes a list of
// masses concurrently; decomp version prints version and citation.
//
// Settings come from flags, DECOMP_* environment variables and an optional
// decomp.yaml (see package config). Diagnostics go to stderr through a
// charmbracelet/log logger; stdout carries only results.
package cli
