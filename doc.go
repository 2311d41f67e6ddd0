// Package massdecomp finds all molecular formulas whose monoisotopic mass
// matches a measured mass, the first step of annotating a mass
// spectrometry peak.
//
// What is massdecomp?
//
//	A pure-Go decomposition engine for the "money changing" problem over
//	element masses, together with the chemistry, filtering and tooling
//	around it:
//		• Residue tables (ERT) built once per alphabet and shared
//		• Eager and lazy (iterator) enumeration of decompositions
//		• Per-element count bounds with a compact text grammar
//		• RDBE and element-ratio plausibility filters
//		• Concurrent batch decomposition with ranking by mass error
//		• The decomp command-line tool
//
// Everything is organized under these packages:
//
//	chem/        elements, periodic table, alphabets, bounds, deviations, ion types
//	ert/         extended residue tables and their LRU cache
//	decomposer/  Decompose / DecomposeRange and the lazy Iterator
//	validator/   RDBE, hetero-atom and hydrogen ratio filters
//	constraints/ parser for "CHNO[1-3]P[5]" style element bounds
//	batch/       bounded fan-out over many masses, ranking
//	config/      defaults, YAML file and DECOMP_* environment settings
//
// Quick example:
//
//	a, _ := chem.DefaultTable().Alphabet("CHO")
//	found, _ := decomposer.New(a).Decompose(180.0634, chem.PPMDeviation(5), nil, nil)
//	// found contains C6H12O6
//
// The command-line tool lives in cmd/decomp:
//
//	go install github.com/katalvlaran/massdecomp/cmd/decomp@latest
package massdecomp
