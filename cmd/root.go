package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gopvt/internal/config"
	"github.com/alexiusacademia/gopvt/internal/version"
	"github.com/alexiusacademia/gopvt/pkg/pvt"
)

var (
	// Run-wide settings, resolved from GOPVT_* variables and persistent
	// flags before every command.
	settings = config.Default()
	logger   = slog.New(slog.NewTextHandler(os.Stderr, nil))

	flagLogLevel    string
	flagRangePolicy string
	flagTolerance   float64
	flagMaxIter     int
	flagWorkers     int
)

var rootCmd = &cobra.Command{
	Use:   "gopvt",
	Short: "Petroleum Fluid Property Correlations",
	Long: `gopvt - Go PVT Correlations

A CLI tool for the estimation of reservoir fluid properties
from published empirical correlations.

This tool helps reservoir and production engineers compute:
  - Gas pseudocritical properties, Z-factor, Bg, density and viscosity
  - Oil bubble point, solution GOR, formation volume factor and viscosity
  - Formation water solubility, Bw, compressibility, viscosity and density

Pressures are psia and temperatures °R unless a flag says otherwise.`,
	PersistentPreRunE: resolveSettings,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Fprintln(out, "  ║                                                           ║")
		fmt.Fprintf(out, "  ║   gopvt v%-49s║\n", version.Version)
		fmt.Fprintln(out, "  ║   Go PVT Correlations                                     ║")
		fmt.Fprintln(out, "  ║   Alexius S. Academia ©  2025                             ║")
		fmt.Fprintln(out, "  ║                                                           ║")
		fmt.Fprintln(out, "  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  A CLI tool for black-oil, gas and brine property estimation")
		fmt.Fprintln(out, "  from published empirical correlations.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  Features:")
		fmt.Fprintln(out, "    • Gas Z-factor by eight correlations, with Bg, ρg, μg and cg")
		fmt.Fprintln(out, "    • Oil bubble point, Rs, Bo and viscosity by author")
		fmt.Fprintln(out, "    • Formation water properties with salinity corrections")
		fmt.Fprintln(out, "    • Pressure sweeps with terminal and image charts")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  Use 'gopvt --help' to see available commands.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  ─────────────────────────────────────────────────────────────")
		fmt.Fprintf(out, "  Copyright © %s %s. All rights reserved.\n", version.Year, version.Author)
		fmt.Fprintln(out)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error (env GOPVT_LOG_LEVEL)")
	pf.StringVar(&flagRangePolicy, "range-policy", "extrapolate", "Out-of-range inputs: extrapolate, warn, reject (env GOPVT_RANGE_POLICY)")
	pf.Float64Var(&flagTolerance, "tolerance", 0, "Residual tolerance of the implicit Z-factor solvers (env GOPVT_TOLERANCE)")
	pf.IntVar(&flagMaxIter, "max-iter", 0, "Iteration cap of the implicit Z-factor solvers (env GOPVT_MAX_ITER)")
	pf.IntVar(&flagWorkers, "workers", 0, "Parallel workers for pressure sweeps (env GOPVT_WORKERS)")
}

// resolveSettings layers flags over the environment and installs the logger.
func resolveSettings(cmd *cobra.Command, args []string) error {
	s, problems := config.FromEnv()
	flags := cmd.Flags()

	if flags.Changed("log-level") {
		level, err := config.ParseLogLevel(flagLogLevel)
		if err != nil {
			return err
		}
		s.LogLevel = level
	}
	if flags.Changed("range-policy") {
		mode, err := pvt.ParseRangeMode(flagRangePolicy)
		if err != nil {
			return err
		}
		s.Range = mode
	}
	if flags.Changed("tolerance") {
		s.Solver.Tolerance = flagTolerance
	}
	if flags.Changed("max-iter") {
		s.Solver.MaxIterations = flagMaxIter
	}
	if flags.Changed("workers") {
		s.Workers = flagWorkers
	}
	if err := s.Validate(); err != nil {
		return err
	}

	settings = s
	logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: s.LogLevel}))
	for _, p := range problems {
		logger.Warn("ignoring environment setting", "error", p)
	}
	logger.Debug("settings resolved",
		"tolerance", s.Solver.Tolerance,
		"max_iter", s.Solver.MaxIterations,
		"workers", s.Workers,
		"range_policy", s.Range.String(),
	)
	return nil
}

// policy reports out-of-range inputs through the logger.
func policy() pvt.Policy {
	return settings.Policy(func(w pvt.Warning) {
		logger.Warn("input outside validated range",
			"property", w.Property,
			"variant", string(w.Variant),
			"param", w.Param,
			"value", w.Value,
			"min", w.Min,
			"max", w.Max,
		)
	})
}
