package report

import (
	"fmt"
	"image/color"
	"io"
	"path/filepath"
	"slices"
	"strings"

	"github.com/stemerlini/fusion-plots/binding"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

const (
	plotWidth  = 10 * vg.Inch
	plotHeight = 6 * vg.Inch
)

// PlotFormats lists the file extensions PlotCurve can render
var PlotFormats = []string{"png", "svg", "pdf"}

// PlotCurve renders binding energy against mass number to path. The image
// format follows the file extension.
func PlotCurve(points []binding.Point, normalized bool, path string) error {
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if !slices.Contains(PlotFormats, format) {
		return fmt.Errorf("unsupported plot format %q, expected one of %v", format, PlotFormats)
	}

	p, err := newCurvePlot(points, normalized)
	if err != nil {
		return err
	}
	if err := p.Save(plotWidth, plotHeight, path); err != nil {
		return fmt.Errorf("failed to save plot to %s: %w", path, err)
	}
	return nil
}

// RenderCurve writes the plot to w in the given format (png, svg or pdf)
func RenderCurve(w io.Writer, points []binding.Point, normalized bool, format string) error {
	format = strings.ToLower(format)
	if !slices.Contains(PlotFormats, format) {
		return fmt.Errorf("unsupported plot format %q, expected one of %v", format, PlotFormats)
	}

	p, err := newCurvePlot(points, normalized)
	if err != nil {
		return err
	}
	writer, err := p.WriterTo(plotWidth, plotHeight, format)
	if err != nil {
		return fmt.Errorf("failed to create plot writer: %w", err)
	}
	if _, err := writer.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write plot: %w", err)
	}
	return nil
}

func newCurvePlot(points []binding.Point, normalized bool) (*plot.Plot, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("no binding energies to plot")
	}

	p := plot.New()
	p.Title.Text = "Nuclear Binding Energy"
	p.X.Label.Text = "Mass Number"
	p.Y.Label.Text = "Binding Energy (MeV)"
	if normalized {
		p.Title.Text = "Nuclear Binding Energy per Nucleon"
		p.Y.Label.Text = "Binding Energy per Nucleon (MeV)"
	}
	p.Add(plotter.NewGrid())

	scatter, err := plotter.NewScatter(curveXYs(points))
	if err != nil {
		return nil, fmt.Errorf("failed to create scatter: %w", err)
	}
	scatter.GlyphStyle.Color = color.RGBA{B: 200, A: 255}
	scatter.GlyphStyle.Radius = vg.Points(1.5)
	scatter.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(scatter)
	p.Legend.Add("isotopes", scatter)

	peak, _ := binding.Peak(points)
	peakXY := plotter.XYs{{X: float64(peak.MassNumber), Y: peak.Energy}}

	marker, err := plotter.NewScatter(peakXY)
	if err != nil {
		return nil, fmt.Errorf("failed to create peak marker: %w", err)
	}
	marker.GlyphStyle.Color = color.RGBA{R: 255, A: 255}
	marker.GlyphStyle.Radius = vg.Points(4)
	marker.GlyphStyle.Shape = draw.RingGlyph{}
	p.Add(marker)

	labels, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    peakXY,
		Labels: []string{fmt.Sprintf("%d%s %.3f MeV", peak.MassNumber, peak.AtomicSymbol, peak.Energy)},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create peak label: %w", err)
	}
	labels.Offset = vg.Point{X: vg.Points(6), Y: vg.Points(6)}
	p.Add(labels)

	p.Legend.Top = true
	return p, nil
}

// curveXYs orders the points by mass number
func curveXYs(points []binding.Point) plotter.XYs {
	sorted := slices.Clone(points)
	slices.SortStableFunc(sorted, func(a, b binding.Point) int {
		return a.MassNumber - b.MassNumber
	})

	xys := make(plotter.XYs, len(sorted))
	for i, pt := range sorted {
		xys[i] = plotter.XY{X: float64(pt.MassNumber), Y: pt.Energy}
	}
	return xys
}
