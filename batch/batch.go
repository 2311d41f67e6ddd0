// SPDX-License-Identifier: MIT

package batch

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/massdecomp/chem"
	"github.com/katalvlaran/massdecomp/decomposer"
)

// Sentinel errors.
var (
	// ErrNilDecomposer indicates Run was called without a decomposer.
	ErrNilDecomposer = errors.New("batch: decomposer is nil")

	// ErrBadWorkers is raised (via panic) by WithWorkers(n) with n < 1.
	ErrBadWorkers = errors.New("batch: workers must be at least 1")
)

// Query is one mass to decompose.
type Query struct {
	ID        string         // free-form label carried into the Result
	Mass      float64        // neutral mass
	Deviation chem.Deviation // tolerance around Mass
	Bounds    chem.Bounds    // nil falls back to Options.Bounds
}

// Candidate is one ranked decomposition.
type Candidate struct {
	Compomer chem.Compomer
	Formula  string  // Hill notation
	Mass     float64 // exact theoretical mass
	Error    float64 // query mass − candidate mass (Da)
	PPM      float64 // Error relative to the query mass, in ppm
}

// Result holds the ranked candidates of one query.
type Result struct {
	Index      int // position of the query in the input
	Query      Query
	Candidates []Candidate
}

// Options configures Run.
type Options struct {
	Workers   int                  // concurrent decompositions, GOMAXPROCS by default
	Bounds    chem.Bounds          // default bounds for queries without their own
	Validator decomposer.Validator // optional filter applied to every query
}

// Option is a functional option for Run.
type Option func(*Options)

// DefaultOptions returns the defaults used by Run.
func DefaultOptions() Options {
	return Options{Workers: runtime.GOMAXPROCS(0)}
}

// WithWorkers bounds the number of concurrent decompositions. Panics on n < 1.
func WithWorkers(n int) Option {
	if n < 1 {
		panic(ErrBadWorkers.Error())
	}

	return func(o *Options) { o.Workers = n }
}

// WithBounds sets the bounds used by queries that carry none.
func WithBounds(b chem.Bounds) Option {
	return func(o *Options) { o.Bounds = b }
}

// WithValidator filters every query's decompositions through v.
func WithValidator(v decomposer.Validator) Option {
	return func(o *Options) { o.Validator = v }
}

// Run decomposes all queries with d and returns one Result per query in
// input order. The first error (table construction or ctx) aborts the
// remaining queries.
func Run(ctx context.Context, d *decomposer.Decomposer, queries []Query, opts ...Option) ([]Result, error) {
	if d == nil {
		return nil, ErrNilDecomposer
	}
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	// build the table once before any worker starts
	if len(queries) > 0 && d.Alphabet().Len() > 0 {
		if err := d.Init(); err != nil {
			return nil, err
		}
	}

	results := make([]Result, len(queries))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)

	for i := range queries {
		q := queries[i]
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			bounds := q.Bounds
			if bounds == nil {
				bounds = cfg.Bounds
			}
			found, err := d.Decompose(q.Mass, q.Deviation, bounds, cfg.Validator)
			if err != nil {
				return fmt.Errorf("batch: query %d (%g): %w", i, q.Mass, err)
			}
			results[i] = Result{Index: i, Query: q, Candidates: Rank(d.Alphabet(), q.Mass, found)}

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// Rank converts compomers to candidates sorted by absolute mass error;
// ties are broken by formula so the order is deterministic.
func Rank(alphabet *chem.Alphabet, mass float64, found []chem.Compomer) []Candidate {
	out := make([]Candidate, 0, len(found))
	for _, c := range found {
		m := alphabet.Mass(c)
		cand := Candidate{
			Compomer: c,
			Formula:  alphabet.Format(c),
			Mass:     m,
			Error:    mass - m,
		}
		if mass != 0 {
			cand.PPM = cand.Error / mass * 1e6
		}
		out = append(out, cand)
	}
	sort.SliceStable(out, func(i, j int) bool {
		ei, ej := math.Abs(out[i].Error), math.Abs(out[j].Error)
		if ei != ej {
			return ei < ej
		}

		return out[i].Formula < out[j].Formula
	})

	return out
}
