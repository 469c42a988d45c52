package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gopvt/internal/diagram"
	"github.com/alexiusacademia/gopvt/pkg/pvt"
)

const (
	ruleHeavy = "═══════════════════════════════════════════════════════════════"
	ruleLight = "───────────────────────────────────────────────────────────────"
)

func printTitle(out io.Writer, title string) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, ruleHeavy)
	fmt.Fprintf(out, "     %s\n", title)
	fmt.Fprintln(out, ruleHeavy)
	fmt.Fprintln(out)
}

func printSection(out io.Writer, name string) {
	fmt.Fprintf(out, "%s:\n", name)
	fmt.Fprintln(out, ruleLight)
}

func newTable(out io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
}

func reportError(cmd *cobra.Command, what string, err error) {
	fmt.Fprintf(cmd.ErrOrStderr(), "Error %s: %v\n", what, err)
}

// partial logs the failed elements of a sweep and reports whether the rest
// of the result is still usable.
func partial(cmd *cobra.Command, what string, err error) bool {
	var failed *pvt.ElementErrors
	if !errors.As(err, &failed) {
		reportError(cmd, what, err)
		return false
	}
	for _, e := range failed.Failed {
		logger.Warn("sweep element failed", "index", e.Index, "error", e.Err)
	}
	return true
}

// sweepFlags selects either one pressure or an evenly stepped range.
type sweepFlags struct {
	single, start, stop, step float64
}

func (s *sweepFlags) bind(cmd *cobra.Command) {
	cmd.Flags().Float64VarP(&s.single, "pressure", "p", 0, "Single pressure (psia); overrides the sweep")
	cmd.Flags().Float64Var(&s.start, "p-start", 500, "Sweep start pressure (psia)")
	cmd.Flags().Float64Var(&s.stop, "p-stop", 5000, "Sweep stop pressure (psia)")
	cmd.Flags().Float64Var(&s.step, "p-step", 500, "Sweep pressure step (psia)")
}

func (s *sweepFlags) pressures() ([]float64, error) {
	if s.single > 0 {
		return []float64{s.single}, nil
	}
	if err := pvt.FirstError(pvt.Pressure("p-start", s.start), pvt.Positive("p-step", s.step)); err != nil {
		return nil, err
	}
	if s.stop < s.start {
		return nil, fmt.Errorf("p-stop %.1f is below p-start %.1f", s.stop, s.start)
	}
	return pvt.Steps(s.start, s.stop, s.step), nil
}

// evaluate runs f over the pressures with the configured workers.
func evaluate(cmd *cobra.Command, f func(p float64) (float64, error), pressures []float64) ([]float64, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return pvt.Map1(ctx, settings.MapOptions(), f, pressures)
}

// evaluateN is evaluate over several aligned inputs. NaN inputs, left by
// failed elements of an earlier sweep, fail the element.
func evaluateN(cmd *cobra.Command, f func(x []float64) (float64, error), inputs ...[]float64) ([]float64, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return pvt.Map(ctx, settings.MapOptions(), func(x []float64) (float64, error) {
		for _, v := range x {
			if math.IsNaN(v) {
				return 0, errUpstream
			}
		}
		return f(x)
	}, inputs...)
}

var errUpstream = errors.New("depends on a failed value")

// chartFlags control terminal and image charts of a sweep.
type chartFlags struct {
	ascii  bool
	output string
}

func (c *chartFlags) bind(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&c.ascii, "chart", false, "Show an ASCII chart of the sweep")
	cmd.Flags().StringVarP(&c.output, "output", "o", "", "Export the chart to file (png, svg, pdf)")
}

func (c *chartFlags) render(cmd *cobra.Command, chart diagram.Chart) {
	if !c.ascii && c.output == "" {
		return
	}
	out := cmd.OutOrStdout()
	chart.Curves = dropFailed(chart.Curves)
	if len(chart.Curves) == 0 || len(chart.Curves[0].X) < 2 {
		fmt.Fprintln(out, "  (chart skipped: a sweep needs at least two pressures)")
		return
	}
	if c.ascii {
		text, err := diagram.DrawASCIIChart(chart, 60, 15)
		if err != nil {
			reportError(cmd, "drawing chart", err)
		} else {
			fmt.Fprintln(out, text)
		}
	}
	if c.output != "" {
		written, err := diagram.ExportChart(chart, c.output)
		if err != nil {
			reportError(cmd, "exporting chart", err)
			return
		}
		fmt.Fprintf(out, "Chart exported to: %s\n", written)
		logger.Info("chart exported", "path", written, "curves", len(chart.Curves))
	}
}

// dropFailed removes the NaN points of failed sweep elements and any curve
// left with fewer than two points.
func dropFailed(curves []diagram.Curve) []diagram.Curve {
	var kept []diagram.Curve
	for _, cv := range curves {
		var x, y []float64
		for i := range cv.X {
			if math.IsNaN(cv.Y[i]) {
				continue
			}
			x = append(x, cv.X[i])
			y = append(y, cv.Y[i])
		}
		if len(x) < 2 {
			continue
		}
		kept = append(kept, diagram.Curve{Name: cv.Name, X: x, Y: y})
	}
	return kept
}

// fmtValue prints NaN entries of a failed sweep element as "-".
func fmtValue(format string, v float64) string {
	if math.IsNaN(v) {
		return "-"
	}
	return fmt.Sprintf(format, v)
}
