package diagram

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// ExportChart writes the chart to an image file. The format follows the
// extension: .png, .svg or .pdf; anything else gets .png appended.
func ExportChart(c Chart, filename string) (string, error) {
	if err := c.Validate(); err != nil {
		return "", err
	}

	p := plot.New()
	p.Title.Text = c.Title
	p.X.Label.Text = c.XLabel
	p.Y.Label.Text = c.YLabel
	p.Add(plotter.NewGrid())
	p.Legend.Top = true

	yMin, yMax := floats.Min(c.Curves[0].Y), floats.Max(c.Curves[0].Y)
	for i, cv := range c.Curves {
		pts := make(plotter.XYs, len(cv.X))
		for j := range cv.X {
			pts[j] = plotter.XY{X: cv.X[j], Y: cv.Y[j]}
		}
		line, points, err := plotter.NewLinePoints(pts)
		if err != nil {
			return "", fmt.Errorf("curve %q: %w", cv.Name, err)
		}
		line.LineStyle.Width = vg.Points(1.5)
		line.LineStyle.Color = plotutil.Color(i)
		points.GlyphStyle.Color = plotutil.Color(i)
		points.GlyphStyle.Radius = vg.Points(2)
		points.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(line, points)
		p.Legend.Add(cv.Name, line)

		yMin = min(yMin, floats.Min(cv.Y))
		yMax = max(yMax, floats.Max(cv.Y))
	}

	// Draw the reference pressure line
	if c.Marker > 0 {
		marker, err := plotter.NewLine(plotter.XYs{
			{X: c.Marker, Y: yMin},
			{X: c.Marker, Y: yMax},
		})
		if err != nil {
			return "", err
		}
		marker.LineStyle.Width = vg.Points(1)
		marker.LineStyle.Color = color.RGBA{R: 255, G: 0, B: 0, A: 255}
		marker.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
		p.Add(marker)
		if c.MarkerLabel != "" {
			p.Legend.Add(c.MarkerLabel, marker)
		}
	}

	width := 8 * vg.Inch
	height := 6 * vg.Inch

	// Create directory if needed
	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", err
		}
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png", ".svg", ".pdf":
	default:
		filename += ".png"
	}
	if err := p.Save(width, height, filename); err != nil {
		return "", err
	}
	return filename, nil
}
