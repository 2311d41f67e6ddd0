// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/massdecomp/chem"
	"github.com/katalvlaran/massdecomp/constraints"
	"github.com/katalvlaran/massdecomp/decomposer"
	"github.com/katalvlaran/massdecomp/validator"
)

// session is everything a decomposition run needs, resolved from the
// loaded configuration.
type session struct {
	cons       *constraints.Constraints
	ion        chem.IonType
	dev        chem.Deviation
	validator  decomposer.Validator
	decomposer *decomposer.Decomposer
}

func (a *App) newSession(cmd *cobra.Command) (*session, error) {
	cfg := a.cfg
	table := chem.DefaultTable()

	v, err := a.resolveFilter(cmd)
	if err != nil {
		return nil, err
	}
	cons, err := constraints.Parse(table, cfg.Search.Elements)
	if err != nil {
		return nil, &ExitError{Code: 2, Err: err}
	}
	if cfg.Search.Parent != "" {
		parent, err := table.ParseFormula(cfg.Search.Parent)
		if err != nil {
			return nil, &ExitError{Code: 2, Err: fmt.Errorf("parent formula: %w", err)}
		}
		cons = cons.Restrict(parent)
	}
	ion, err := chem.IonByName(cfg.Search.Ion)
	if err != nil {
		return nil, &ExitError{Code: 2, Err: err}
	}

	d := decomposer.New(cons.Alphabet,
		decomposer.WithPrecision(cfg.Search.Precision),
		decomposer.WithCache(a.tables),
	)

	return &session{
		cons:       cons,
		ion:        ion,
		dev:        cfg.DeviationValue(),
		validator:  v,
		decomposer: d,
	}, nil
}

// resolveFilter returns the configured validator. --nofilter conflicts
// with an explicit --filter other than none. On the command line every
// filter requires RDBE ≥ 0.
func (a *App) resolveFilter(cmd *cobra.Command) (decomposer.Validator, error) {
	name := a.cfg.Search.Filter
	if off, _ := cmd.Flags().GetBool("nofilter"); off {
		if cmd.Flags().Changed("filter") && name != validator.NameNone {
			return nil, &ExitError{Code: 2, Err: fmt.Errorf("conflicting options: --nofilter and --filter=%q, only one of both may be set", name)}
		}
		name = validator.NameNone
	}
	v, err := validator.ByName(name)
	if err != nil {
		return nil, &ExitError{Code: 2, Err: err}
	}

	switch t := v.(type) {
	case validator.Chemical:
		t.MinRDBE += 0.5
		return t, nil
	case validator.Valence:
		t.MinRDBE = 0
		return t, nil
	}

	return v, nil
}
