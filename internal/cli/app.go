// SPDX-License-Identifier: MIT

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"

	"github.com/katalvlaran/massdecomp/config"
	"github.com/katalvlaran/massdecomp/ert"
)

// App holds the state shared by all commands of one invocation.
type App struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	viper   *viper.Viper
	logger  *log.Logger
	cfgFile string
	cfg     *config.Config
	tables  *ert.Cache
}

// NewApp returns an App reading from stdin and writing to stdout/stderr.
func NewApp(stdin io.Reader, stdout, stderr io.Writer) *App {
	return &App{
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		viper:  viper.New(),
		logger: log.NewWithOptions(stderr, log.Options{Prefix: "decomp"}),
	}
}

// Execute runs the decomp command line with args and returns the process
// exit code.
func Execute(ctx context.Context, args []string) int {
	app := NewApp(os.Stdin, os.Stdout, os.Stderr)
	root := app.RootCommand()
	root.SetArgs(args)

	if err := root.ExecuteContext(ctx); err != nil {
		app.logger.Error(err.Error())

		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			return exitErr.Code
		}

		return 1
	}

	return 0
}

// ExitError signals a specific non-zero exit code from a RunE handler.
type ExitError struct {
	Code int
	Err  error
}

// Error returns the error message for ExitError.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}

	return fmt.Sprintf("exit status %d", e.Code)
}

// Unwrap returns the underlying error, if any.
func (e *ExitError) Unwrap() error { return e.Err }

// loadConfig initializes viper, loads the configuration and applies the
// logging level. Called once per invocation before any command runs.
func (a *App) loadConfig() error {
	if err := config.Init(a.viper, a.cfgFile); err != nil {
		return &ExitError{Code: 2, Err: fmt.Errorf("read config: %w", err)}
	}
	cfg, err := config.Load(a.viper)
	if err != nil {
		return &ExitError{Code: 2, Err: err}
	}
	level, err := log.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return &ExitError{Code: 2, Err: err}
	}
	a.logger.SetLevel(level)

	tables, err := ert.NewCache(cfg.Batch.CacheSize)
	if err != nil {
		return &ExitError{Code: 2, Err: err}
	}
	a.cfg, a.tables = cfg, tables
	a.logger.Debug("configuration loaded", "file", a.viper.ConfigFileUsed(), "elements", cfg.Search.Elements, "filter", cfg.Search.Filter)

	return nil
}
