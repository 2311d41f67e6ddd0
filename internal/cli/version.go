// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
)

// citation lists the publications behind the decomposition algorithm.
const citation = `DECOMP: from interpreting Mass Spectrometry peaks to solving the Money Changing Problem
Sebastian Böcker, Zsuzsanna Lipták, Marcel Martin, Anton Pervukhin and Henner Sudek
Bioinformatics, 24(4):591-593, 2008

Faster mass decomposition
Kai Dührkop, Marcus Ludwig, Marvin Meusel and Sebastian Böcker
Proc. of Workshop on Algorithms in Bioinformatics (WABI 2013), Lect Notes Comput Sci, Springer, Berlin, 2013`

func versionString() string {
	if Version == "dev" {
		return "decomp dev (built from source)"
	}

	return fmt.Sprintf("decomp %s (commit: %s)", Version, Commit)
}

func (a *App) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version and citation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintln(a.stdout, versionString())
			fmt.Fprintln(a.stdout)
			fmt.Fprintln(a.stdout, "Please cite:")
			fmt.Fprintln(a.stdout, citation)

			return nil
		},
	}
}
