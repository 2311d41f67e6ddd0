// SPDX-License-Identifier: MIT

package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/massdecomp/batch"
	"github.com/katalvlaran/massdecomp/config"
)

func (a *App) batchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch [file]",
		Short: "Decompose one mass per line",
		Long: `Reads masses from file (stdin when omitted), one per line. The first
field of a line is the m/z value; anything after it is kept as a label.
Empty lines and lines starting with '#' are skipped.

Every mass is printed as a "# label" header followed by its formulas.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := a.stdin
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return &ExitError{Code: 2, Err: err}
				}
				defer f.Close()
				in = f
			}

			return a.runBatch(cmd, in)
		},
	}
	cmd.Flags().IntP("workers", "w", config.Default().Batch.Workers, "concurrent decompositions (0 = one per CPU)")
	_ = a.viper.BindPFlag("batch.workers", cmd.Flags().Lookup("workers"))

	return cmd
}

func (a *App) runBatch(cmd *cobra.Command, in io.Reader) error {
	s, err := a.newSession(cmd)
	if err != nil {
		return err
	}
	queries, err := readQueries(in)
	if err != nil {
		return &ExitError{Code: 2, Err: err}
	}
	for i := range queries {
		queries[i].Mass = s.ion.NeutralMass(queries[i].Mass)
		queries[i].Deviation = s.dev
	}

	opts := []batch.Option{
		batch.WithBounds(s.cons.Bounds),
		batch.WithValidator(s.validator),
	}
	if a.cfg.Batch.Workers > 0 {
		opts = append(opts, batch.WithWorkers(a.cfg.Batch.Workers))
	}

	start := time.Now()
	results, err := batch.Run(cmd.Context(), s.decomposer, queries, opts...)
	if err != nil {
		return err
	}

	total := 0
	for _, r := range results {
		fmt.Fprintf(a.stdout, "# %s\n", r.Query.ID)
		a.printCandidates(a.stdout, r.Candidates)
		total += len(r.Candidates)
	}
	a.logger.Info("batch finished", "masses", len(results), "formulas", total, "elapsed", time.Since(start))

	return nil
}

// readQueries parses "<m/z> [label...]" lines. The label defaults to the
// m/z text.
func readQueries(in io.Reader) ([]batch.Query, error) {
	var (
		queries []batch.Query
		sc      = bufio.NewScanner(in)
		line    int
	)
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		mz, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid mass %q", line, fields[0])
		}
		label := fields[0]
		if len(fields) > 1 {
			label = strings.Join(fields[1:], " ")
		}
		queries = append(queries, batch.Query{ID: label, Mass: mz})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	return queries, nil
}
