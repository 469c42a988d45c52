package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/alexiusacademia/gopvt/pkg/numeric"
	"github.com/alexiusacademia/gopvt/pkg/pvt"
)

// Environment variables read by FromEnv.
const (
	EnvTolerance   = "GOPVT_TOLERANCE"
	EnvMaxIter     = "GOPVT_MAX_ITER"
	EnvWorkers     = "GOPVT_WORKERS"
	EnvRangePolicy = "GOPVT_RANGE_POLICY"
	EnvLogLevel    = "GOPVT_LOG_LEVEL"
)

// Settings captures the run-wide options of the CLI.
type Settings struct {
	Solver   numeric.Settings
	Workers  int
	Range    pvt.RangeMode
	LogLevel slog.Level
}

// Default returns the built-in settings: kernel defaults, serial evaluation,
// silent extrapolation and info logging.
func Default() Settings {
	return Settings{
		Solver:   numeric.DefaultSettings(),
		Workers:  1,
		Range:    pvt.Extrapolate,
		LogLevel: slog.LevelInfo,
	}
}

// FromEnv builds Settings from GOPVT_* environment variables. Invalid values
// keep their default and are returned as problems for the caller to log.
func FromEnv() (Settings, []error) {
	return FromLookup(os.LookupEnv)
}

// FromLookup is FromEnv over an arbitrary variable source.
func FromLookup(lookup func(string) (string, bool)) (Settings, []error) {
	s := Default()
	var problems []error

	if v, ok := lookup(EnvTolerance); ok {
		tol, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err == nil {
			err = numeric.Settings{Tolerance: tol, MaxIterations: 1}.Validate()
		}
		if err != nil {
			problems = append(problems, fmt.Errorf("%s=%q: %w", EnvTolerance, v, err))
		} else {
			s.Solver.Tolerance = tol
		}
	}

	if v, ok := lookup(EnvMaxIter); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err == nil && n < 1 {
			err = fmt.Errorf("must be at least 1")
		}
		if err != nil {
			problems = append(problems, fmt.Errorf("%s=%q: %w", EnvMaxIter, v, err))
		} else {
			s.Solver.MaxIterations = n
		}
	}

	if v, ok := lookup(EnvWorkers); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err == nil && n < 1 {
			err = fmt.Errorf("must be at least 1")
		}
		if err != nil {
			problems = append(problems, fmt.Errorf("%s=%q: %w", EnvWorkers, v, err))
		} else {
			s.Workers = n
		}
	}

	if v, ok := lookup(EnvRangePolicy); ok {
		mode, err := pvt.ParseRangeMode(v)
		if err != nil {
			problems = append(problems, fmt.Errorf("%s: %w", EnvRangePolicy, err))
		} else {
			s.Range = mode
		}
	}

	if v, ok := lookup(EnvLogLevel); ok {
		level, err := ParseLogLevel(v)
		if err != nil {
			problems = append(problems, fmt.Errorf("%s: %w", EnvLogLevel, err))
		} else {
			s.LogLevel = level
		}
	}

	return s, problems
}

// ParseLogLevel accepts debug, info, warn and error.
func ParseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("unknown log level %q (want debug, info, warn or error)", s)
	}
	return level, nil
}

// Policy returns the range policy, reporting warnings through notify.
func (s Settings) Policy(notify func(pvt.Warning)) pvt.Policy {
	return pvt.Policy{Range: s.Range, Notify: notify}
}

// MapOptions returns the element-wise evaluation options.
func (s Settings) MapOptions() pvt.MapOptions {
	return pvt.MapOptions{Workers: s.Workers}
}

// Validate checks settings assembled from flags.
func (s Settings) Validate() error {
	if err := s.Solver.Validate(); err != nil {
		return err
	}
	if s.Workers < 1 {
		return fmt.Errorf("invalid worker count %d: must be at least 1", s.Workers)
	}
	return nil
}
