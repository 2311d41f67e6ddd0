// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/katalvlaran/massdecomp/chem"
	"github.com/katalvlaran/massdecomp/constraints"
	"github.com/katalvlaran/massdecomp/validator"
)

// ErrInvalidConfig is matched by every ValidationErrors value.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // config key, e.g. "deviation.ppm"
	Value   any    // the invalid value
	Message string // human-readable description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d validation errors:\n", len(e))
	for i, err := range e {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, err.Error())
	}

	return sb.String()
}

// Unwrap lets errors.Is match ErrInvalidConfig.
func (e ValidationErrors) Unwrap() error { return ErrInvalidConfig }

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errs []ValidationError

	errs = append(errs, c.validateDeviation()...)
	errs = append(errs, c.validateSearch()...)
	errs = append(errs, c.validateOutput()...)
	errs = append(errs, c.validateBatch()...)

	if !slices.Contains(ValidLogLevels(), strings.ToLower(c.Logging.Level)) {
		errs = append(errs, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: "must be one of " + strings.Join(ValidLogLevels(), ", "),
		})
	}

	return errs
}

func (c *Config) validateDeviation() []ValidationError {
	var errs []ValidationError
	if !(c.Deviation.PPM >= 0) || math.IsInf(c.Deviation.PPM, 0) {
		errs = append(errs, ValidationError{Field: "deviation.ppm", Value: c.Deviation.PPM, Message: "must be a non-negative number"})
	}
	if !(c.Deviation.Absolute >= 0) || math.IsInf(c.Deviation.Absolute, 0) {
		errs = append(errs, ValidationError{Field: "deviation.absolute", Value: c.Deviation.Absolute, Message: "must be a non-negative number"})
	}

	return errs
}

func (c *Config) validateSearch() []ValidationError {
	var errs []ValidationError
	if _, err := constraints.Parse(nil, c.Search.Elements); err != nil {
		errs = append(errs, ValidationError{Field: "search.elements", Value: c.Search.Elements, Message: err.Error()})
	}
	if _, err := validator.ByName(c.Search.Filter); err != nil {
		errs = append(errs, ValidationError{
			Field:   "search.filter",
			Value:   c.Search.Filter,
			Message: "must be one of " + strings.Join(validator.Names(), ", "),
		})
	}
	if _, err := chem.IonByName(c.Search.Ion); err != nil {
		errs = append(errs, ValidationError{
			Field:   "search.ion",
			Value:   c.Search.Ion,
			Message: "must be empty or one of " + strings.Join(chem.IonNames(), ", "),
		})
	}
	if c.Search.Parent != "" {
		if _, err := chem.DefaultTable().ParseFormula(c.Search.Parent); err != nil {
			errs = append(errs, ValidationError{Field: "search.parent", Value: c.Search.Parent, Message: err.Error()})
		}
	}
	if !(c.Search.Precision > 0) || math.IsInf(c.Search.Precision, 0) {
		errs = append(errs, ValidationError{Field: "search.precision", Value: c.Search.Precision, Message: "must be positive"})
	}

	return errs
}

func (c *Config) validateOutput() []ValidationError {
	if c.Output.Limit < 0 {
		return []ValidationError{{Field: "output.limit", Value: c.Output.Limit, Message: "must be non-negative"}}
	}

	return nil
}

func (c *Config) validateBatch() []ValidationError {
	var errs []ValidationError
	if c.Batch.Workers < 0 {
		errs = append(errs, ValidationError{Field: "batch.workers", Value: c.Batch.Workers, Message: "must be non-negative (0 = one per CPU)"})
	}
	if c.Batch.CacheSize < 1 {
		errs = append(errs, ValidationError{Field: "batch.cache_size", Value: c.Batch.CacheSize, Message: "must be at least 1"})
	}

	return errs
}

// DeviationValue returns the configured tolerance as a chem.Deviation.
func (c *Config) DeviationValue() chem.Deviation {
	return chem.Deviation{PPM: c.Deviation.PPM, Absolute: c.Deviation.Absolute}
}
