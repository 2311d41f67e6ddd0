// SPDX-License-Identifier: MIT

// Package config loads the settings of the decomp tool from defaults, an
// optional YAML file, DECOMP_* environment variables and command-line flags
// (in increasing priority), all through one viper instance.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/katalvlaran/massdecomp/ert"
)

// EnvPrefix prefixes every environment override, e.g. DECOMP_DEVIATION_PPM
// for deviation.ppm.
const EnvPrefix = "DECOMP"

// Config is the complete decomp configuration.
type Config struct {
	Deviation DeviationConfig `mapstructure:"deviation"`
	Search    SearchConfig    `mapstructure:"search"`
	Output    OutputConfig    `mapstructure:"output"`
	Batch     BatchConfig     `mapstructure:"batch"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// DeviationConfig is the mass tolerance.
type DeviationConfig struct {
	// PPM is the relative deviation in parts per million
	PPM float64 `mapstructure:"ppm"`
	// Absolute is the minimal absolute deviation in Dalton
	Absolute float64 `mapstructure:"absolute"`
}

// SearchConfig controls what is decomposed and how.
type SearchConfig struct {
	// Elements is the alphabet with optional bounds, e.g. "CHNOP[-5]S"
	Elements string `mapstructure:"elements"`
	// Filter is one of strict, common, permissive, rdbe, none
	Filter string `mapstructure:"filter"`
	// Ion is the ion type of the input m/z; empty means the input is neutral
	Ion string `mapstructure:"ion"`
	// Parent caps element counts by this formula when set
	Parent string `mapstructure:"parent"`
	// Precision is the residue table precision in Dalton
	Precision float64 `mapstructure:"precision"`
}

// OutputConfig controls result rendering.
type OutputConfig struct {
	// MassErrors appends the absolute and ppm error to every formula
	MassErrors bool `mapstructure:"mass_errors"`
	// Limit prints at most this many formulas per mass (0 = all)
	Limit int `mapstructure:"limit"`
	// Stream prints formulas as they are found, unsorted
	Stream bool `mapstructure:"stream"`
}

// BatchConfig controls the batch command.
type BatchConfig struct {
	// Workers is the number of concurrent decompositions (0 = GOMAXPROCS)
	Workers int `mapstructure:"workers"`
	// CacheSize is the number of residue tables kept in memory
	CacheSize int `mapstructure:"cache_size"`
}

// LoggingConfig controls diagnostics on stderr.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error
	Level string `mapstructure:"level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Deviation: DeviationConfig{PPM: 20, Absolute: 0.001},
		Search: SearchConfig{
			Elements:  "CHNOPS",
			Filter:    "common",
			Precision: ert.DefaultPrecision,
		},
		Batch:   BatchConfig{CacheSize: ert.DefaultCacheSize},
		Logging: LoggingConfig{Level: "warn"},
	}
}

// SetDefaults registers default values with v.
func SetDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("deviation.ppm", defaults.Deviation.PPM)
	v.SetDefault("deviation.absolute", defaults.Deviation.Absolute)

	v.SetDefault("search.elements", defaults.Search.Elements)
	v.SetDefault("search.filter", defaults.Search.Filter)
	v.SetDefault("search.ion", defaults.Search.Ion)
	v.SetDefault("search.parent", defaults.Search.Parent)
	v.SetDefault("search.precision", defaults.Search.Precision)

	v.SetDefault("output.mass_errors", defaults.Output.MassErrors)
	v.SetDefault("output.limit", defaults.Output.Limit)
	v.SetDefault("output.stream", defaults.Output.Stream)

	v.SetDefault("batch.workers", defaults.Batch.Workers)
	v.SetDefault("batch.cache_size", defaults.Batch.CacheSize)

	v.SetDefault("logging.level", defaults.Logging.Level)
}

// Init prepares v: defaults, environment overrides and the config file.
// An explicit file must exist; otherwise decomp.yaml is searched in
// ConfigDir() and the working directory, and its absence is not an error.
func Init(v *viper.Viper, file string) error {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)

		return v.ReadInConfig()
	}
	v.SetConfigName("decomp")
	v.SetConfigType("yaml")
	v.AddConfigPath(ConfigDir())
	v.AddConfigPath(".")

	var notFound viper.ConfigFileNotFoundError
	if err := v.ReadInConfig(); err != nil && !errors.As(err, &notFound) {
		return err
	}

	return nil
}

// Load reads the configuration from v into a Config and validates it.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// ConfigDir returns the directory searched for decomp.yaml.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "decomp")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".decomp"
	}

	return filepath.Join(home, ".config", "decomp")
}
