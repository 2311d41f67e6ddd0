// SPDX-License-Identifier: MIT

// Package constraints parses the compact element-bound grammar used on the
// command line into an alphabet plus per-element count intervals.
//
// Grammar:
//
//	constraints = { separator } element { { separator } element } { separator }
//	element     = symbol [ interval ]
//	symbol      = upper [ lower ]            (matched two letters first)
//	interval    = "[" n "]"                  exactly n
//	            | "[" a "-" "]"              at least a
//	            | "[" "-" b "]"              at most b
//	            | "[" a "-" b "]"            a ≤ count ≤ b
//	separator   = "," | whitespace
//
// Example: "CHNO[1-3]P[5]" allows any number of C, H and N, one to three O
// and exactly five P. An element whose upper bound is 0 is dropped from the
// alphabet altogether.
//
// Every parse failure is a *SyntaxError that matches ErrSyntax and one of
// ErrUnknownElement, ErrMalformedInterval, ErrInvertedInterval,
// ErrDuplicateElement or ErrEmpty under errors.Is.
package constraints
