package render

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/mwiater/benchplot/internal/plot"
	"github.com/mwiater/benchplot/internal/report"
	gplot "gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var imageGlyphs = []draw.GlyphDrawer{
	draw.CircleGlyph{},
	draw.SquareGlyph{},
	draw.TriangleGlyph{},
	draw.CrossGlyph{},
	draw.PlusGlyph{},
	draw.RingGlyph{},
	draw.BoxGlyph{},
	draw.PyramidGlyph{},
}

var imageFormats = map[string]bool{".png": true, ".svg": true, ".pdf": true, ".jpg": true, ".jpeg": true}

// errorPoints pairs points with symmetric y errors for plotter.NewYErrorBars.
type errorPoints struct {
	plotter.XYs
	plotter.YErrors
}

// Image saves the chart for sel as a static image. The format follows the
// file extension (.png, .svg, .pdf, .jpg).
func Image(path string, data report.ReportData, sel plot.Selection) error {
	ext := strings.ToLower(filepath.Ext(path))
	if !imageFormats[ext] {
		return fmt.Errorf("unsupported image extension %q", ext)
	}
	fig, err := plot.Choose(data, sel)
	if err != nil {
		return err
	}
	p, err := imagePlot(fig)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("unable to create directory for %s: %w", path, err)
		}
	}
	if err := p.Save(9*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("unable to save image %s: %w", path, err)
	}
	return nil
}

func imagePlot(fig plot.Figure) (*gplot.Plot, error) {
	p := gplot.New()
	p.Title.Text = fig.Layout.Title.Text
	p.X.Label.Text = fig.Layout.XAxis.Title.Text
	p.Y.Label.Text = fig.Layout.YAxis.Title.Text
	p.Legend.Top = true
	p.Legend.Padding = 1 * vg.Millimeter

	colors, err := imageColors(len(fig.Data))
	if err != nil {
		return nil, err
	}

	// Category positions start at zero, so a categorical x axis stays linear.
	_, categorical := categoryValues(fig)
	logX := fig.Layout.XAxis.Logarithmic() && !categorical
	logY := fig.Layout.YAxis.Logarithmic()

	if fig.View == plot.ViewSingleSummary {
		if err := addBars(p, fig, colors); err != nil {
			return nil, err
		}
	} else {
		if err := addScatter(p, fig, colors, logX, logY); err != nil {
			return nil, err
		}
	}

	if logX {
		p.X.Scale = gplot.LogScale{}
		p.X.Tick.Marker = gplot.LogTicks{Prec: -1}
	}
	if logY {
		p.Y.Scale = gplot.LogScale{}
		p.Y.Tick.Marker = gplot.LogTicks{Prec: -1}
	} else if fig.Layout.YAxis.ZeroAnchored() {
		p.Y.Min = 0
	}
	return p, nil
}

func imageColors(n int) ([]color.Color, error) {
	size := n
	if size < 3 {
		size = 3
	}
	if size > 12 {
		size = 12
	}
	palette, err := brewer.GetPalette(brewer.TypeQualitative, "Paired", size)
	if err != nil {
		return nil, err
	}
	return palette.Colors(), nil
}

func addScatter(p *gplot.Plot, fig plot.Figure, colors []color.Color, logX, logY bool) error {
	categories, categorical := categoryValues(fig)
	position := make(map[string]float64, len(categories))
	if categorical {
		ticks := make([]gplot.Tick, len(categories))
		for i, c := range categories {
			position[c] = float64(i)
			ticks[i] = gplot.Tick{Value: float64(i), Label: c}
		}
		p.X.Tick.Marker = gplot.ConstantTicks(ticks)
	}

	for i, tr := range fig.Data {
		pts := make(plotter.XYs, len(tr.Y))
		for j, y := range tr.Y {
			pts[j].Y = y
			if j >= len(tr.X) {
				pts[j].X = float64(j)
				continue
			}
			if s, ok := tr.X[j].(string); ok {
				pts[j].X = position[s]
			} else {
				pts[j].X, _ = toFloat(tr.X[j])
			}
		}

		for _, pt := range pts {
			if logX && pt.X <= 0 {
				return fmt.Errorf("%s: x value %g cannot be drawn on a log axis", tr.Name, pt.X)
			}
			if logY && pt.Y <= 0 {
				return fmt.Errorf("%s: y value %g cannot be drawn on a log axis", tr.Name, pt.Y)
			}
		}

		s, err := plotter.NewScatter(pts)
		if err != nil {
			return fmt.Errorf("scatter %s: %w", tr.Name, err)
		}
		symbol := i
		if tr.Marker != nil {
			symbol = tr.Marker.Symbol
		}
		s.GlyphStyle.Shape = imageGlyphs[symbol%len(imageGlyphs)]
		s.GlyphStyle.Color = colors[i%len(colors)]
		p.Add(s)
		p.Legend.Add(tr.Name, s)

		if tr.ErrorY != nil && len(tr.ErrorY.Array) == len(pts) && len(pts) > 0 {
			bars, err := newErrorBars(pts, tr.ErrorY.Array, logY)
			if err != nil {
				return fmt.Errorf("error bars %s: %w", tr.Name, err)
			}
			bars.LineStyle.Color = colors[i%len(colors)]
			p.Add(bars)
		}
	}
	return nil
}

func addBars(p *gplot.Plot, fig plot.Figure, colors []color.Color) error {
	for i, tr := range fig.Data {
		bc, err := plotter.NewBarChart(plotter.Values(tr.Y), vg.Points(24))
		if err != nil {
			return fmt.Errorf("bar %s: %w", tr.Name, err)
		}
		bc.XMin = float64(i)
		bc.Color = colors[i%len(colors)]
		bc.LineStyle.Width = 0
		p.Add(bc)
		p.Legend.Add(tr.Name, bc)

		if tr.ErrorY != nil && len(tr.ErrorY.Array) == len(tr.Y) && len(tr.Y) > 0 {
			pts := make(plotter.XYs, len(tr.Y))
			for j, y := range tr.Y {
				pts[j] = plotter.XY{X: float64(i + j), Y: y}
			}
			bars, err := newErrorBars(pts, tr.ErrorY.Array, false)
			if err != nil {
				return fmt.Errorf("error bars %s: %w", tr.Name, err)
			}
			bars.LineStyle.Color = color.Gray{Y: 64}
			p.Add(bars)
		}
	}
	if fig.Layout.XAxis.TickLabelsHidden() {
		p.X.Tick.Marker = gplot.ConstantTicks(nil)
	}
	return nil
}

// logErrorFloor caps the low half of an error bar on a log axis at this
// fraction of the value, so the bar ends one decade below the point instead
// of at or below zero.
const logErrorFloor = 0.9

func newErrorBars(pts plotter.XYs, errs []float64, logY bool) (*plotter.YErrorBars, error) {
	yerrs := make(plotter.YErrors, len(errs))
	for i, e := range errs {
		yerrs[i].Low = e
		yerrs[i].High = e
		if logY && pts[i].Y-e <= 0 {
			yerrs[i].Low = pts[i].Y * logErrorFloor
		}
	}
	return plotter.NewYErrorBars(errorPoints{XYs: pts, YErrors: yerrs})
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
