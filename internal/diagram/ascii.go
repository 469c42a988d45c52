package diagram

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"
	"gonum.org/v1/gonum/floats"
)

// Curve is one property sampled along a pressure sweep.
type Curve struct {
	Name string    // legend entry, e.g. "Z (DPR)"
	X    []float64 // pressure, psia
	Y    []float64
}

// Chart holds the data for a property-vs-pressure chart.
type Chart struct {
	Title  string
	XLabel string
	YLabel string
	Curves []Curve

	// Marker draws a vertical reference line, typically the bubble point.
	// Zero means none.
	Marker      float64
	MarkerLabel string
}

// Validate checks that every curve is drawable.
func (c Chart) Validate() error {
	if len(c.Curves) == 0 {
		return fmt.Errorf("chart %q has no curves", c.Title)
	}
	for _, cv := range c.Curves {
		if len(cv.X) != len(cv.Y) {
			return fmt.Errorf("curve %q: %d pressures but %d values", cv.Name, len(cv.X), len(cv.Y))
		}
		if len(cv.Y) < 2 {
			return fmt.Errorf("curve %q needs at least two points", cv.Name)
		}
	}
	return nil
}

// DrawASCIIChart renders the curves as a terminal line chart. Curves are
// resampled onto width columns so sweeps of any length fit the terminal.
func DrawASCIIChart(c Chart, width, height int) (string, error) {
	if err := c.Validate(); err != nil {
		return "", err
	}

	series := make([][]float64, len(c.Curves))
	for i, cv := range c.Curves {
		series[i] = cv.Y
	}

	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  %s\n", strings.ToUpper(c.Title)))
	sb.WriteString(fmt.Sprintf("  %s\n\n", strings.Repeat("─", len([]rune(c.Title)))))

	lo, hi := c.Curves[0].X[0], c.Curves[0].X[len(c.Curves[0].X)-1]
	caption := fmt.Sprintf("%s vs %s (%.0f to %.0f)", c.YLabel, c.XLabel, lo, hi)
	sb.WriteString(asciigraph.PlotMany(series,
		asciigraph.Width(width),
		asciigraph.Height(height),
		asciigraph.Precision(4),
		asciigraph.Caption(caption),
	))
	sb.WriteString("\n\n")

	// Legend
	for _, cv := range c.Curves {
		sb.WriteString(fmt.Sprintf("  %-24s min %.4g  max %.4g\n", cv.Name, floats.Min(cv.Y), floats.Max(cv.Y)))
	}
	if c.Marker > 0 {
		sb.WriteString(fmt.Sprintf("  %s at %.1f\n", c.MarkerLabel, c.Marker))
	}

	return sb.String(), nil
}

// DrawSummaryBox creates a summary box for results
func DrawSummaryBox(title string, lines []string) string {
	var sb strings.Builder

	maxLen := len([]rune(title))
	for _, line := range lines {
		if n := len([]rune(line)); n > maxLen {
			maxLen = n
		}
	}
	maxLen += 4

	border := strings.Repeat("═", maxLen)
	sb.WriteString(fmt.Sprintf("  ╔%s╗\n", border))
	sb.WriteString(fmt.Sprintf("  ║  %s  ║\n", pad(title, maxLen-4)))
	sb.WriteString(fmt.Sprintf("  ╠%s╣\n", border))
	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("  ║  %s  ║\n", pad(line, maxLen-4)))
	}
	sb.WriteString(fmt.Sprintf("  ╚%s╝\n", border))

	return sb.String()
}

// pad right-pads s to n runes; %-*s counts bytes and misaligns °, ³ and μ.
func pad(s string, n int) string {
	if d := n - len([]rune(s)); d > 0 {
		return s + strings.Repeat(" ", d)
	}
	return s
}
