// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/katalvlaran/massdecomp/chem"
	"github.com/katalvlaran/massdecomp/config"
	"github.com/katalvlaran/massdecomp/validator"
)

// flagKeys maps flag names to the config keys they override.
var flagKeys = map[string]string{
	"ppm":         "deviation.ppm",
	"absolute":    "deviation.absolute",
	"elements":    "search.elements",
	"filter":      "search.filter",
	"ion":         "search.ion",
	"parent":      "search.parent",
	"precision":   "search.precision",
	"mass-errors": "output.mass_errors",
	"limit":       "output.limit",
	"stream":      "output.stream",
	"cache-size":  "batch.cache_size",
	"log-level":   "logging.level",
}

// RootCommand builds the decomp command tree bound to a.
func (a *App) RootCommand() *cobra.Command {
	defaults := config.Default()

	root := &cobra.Command{
		Use:   "decomp [flags] <mass>",
		Short: "Decompose a mass into molecular formulas",
		Long: `decomp computes all molecular formulas whose monoisotopic mass lies
within a tolerance window around the given mass.

Examples:
  decomp 279.43                      CHNOPS, 20 ppm / 0.001 Da, common filter
  decomp -e "CHNO[1-3]" 180.0634     at least one, at most three oxygens
  decomp -i "[M+H]+" -m 181.0707     input is a protonated m/z, print errors
  decomp batch masses.txt            decompose one mass per line`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.loadConfig()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				fmt.Fprintln(a.stdout, versionString())
				fmt.Fprint(a.stdout, cmd.UsageString())

				return nil
			}

			return a.runSingle(cmd, args[0])
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.cfgFile, "config", "c", "", "config file (default is "+config.ConfigDir()+"/decomp.yaml)")
	flags.Float64P("ppm", "p", defaults.Deviation.PPM, "relative mass deviation in ppm")
	flags.Float64P("absolute", "a", defaults.Deviation.Absolute, "minimal absolute mass deviation in Dalton")
	flags.StringP("elements", "e", defaults.Search.Elements, `elements with optional bounds, e.g. "CHNOP[-5]S[1]"`)
	flags.String("filter", defaults.Search.Filter, "chemical filter: "+strings.Join(validator.Names(), ", "))
	flags.Bool("nofilter", false, "disable the chemical filter")
	flags.StringP("ion", "i", defaults.Search.Ion, "ion type of the input m/z ("+strings.Join(chem.IonNames(), ", ")+"); empty means neutral")
	flags.String("parent", defaults.Search.Parent, "parent formula capping the element counts")
	flags.Float64("precision", defaults.Search.Precision, "residue table precision in Dalton")
	flags.BoolP("mass-errors", "m", defaults.Output.MassErrors, "print absolute and ppm mass error per formula")
	flags.Int("limit", defaults.Output.Limit, "print at most this many formulas per mass (0 = all)")
	flags.Bool("stream", defaults.Output.Stream, "print formulas as they are found, unsorted")
	flags.Int("cache-size", defaults.Batch.CacheSize, "number of residue tables kept in memory")
	flags.String("log-level", defaults.Logging.Level, "log level: "+strings.Join(config.ValidLogLevels(), ", "))
	a.bindFlags(flags)

	root.AddCommand(a.batchCommand(), a.versionCommand())

	return root
}

func (a *App) bindFlags(flags *pflag.FlagSet) {
	for name, key := range flagKeys {
		if f := flags.Lookup(name); f != nil {
			_ = a.viper.BindPFlag(key, f)
		}
	}
}

// runSingle decomposes one m/z value given on the command line.
func (a *App) runSingle(cmd *cobra.Command, arg string) error {
	mz, err := strconv.ParseFloat(strings.TrimSpace(arg), 64)
	if err != nil {
		return &ExitError{Code: 2, Err: fmt.Errorf("invalid mass %q", arg)}
	}
	s, err := a.newSession(cmd)
	if err != nil {
		return err
	}
	mass := s.ion.NeutralMass(mz)
	a.logger.Debug("decomposing", "mz", mz, "ion", s.ion, "mass", mass, "deviation", s.dev, "alphabet", s.cons.Alphabet)

	start := time.Now()
	ok, err := s.decomposer.MaybeDecomposable(mass, s.dev)
	if err != nil {
		return err
	}
	if !ok {
		a.logger.Info("no formula over the alphabet reaches this mass", "mass", mass, "alphabet", s.cons.Alphabet)

		return nil
	}

	var n int
	if a.cfg.Output.Stream {
		n, err = a.stream(s, mass)
	} else {
		n, err = a.ranked(s, mass)
	}
	if err != nil {
		return err
	}
	a.logger.Info("decomposed", "mass", mass, "formulas", n, "elapsed", time.Since(start))

	return nil
}
