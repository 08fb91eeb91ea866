package render

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/mwiater/benchplot/internal/plot"
	"github.com/mwiater/benchplot/internal/report"
)

var echartsSymbols = []string{"circle", "rect", "roundRect", "triangle", "diamond", "pin", "arrow"}

// ECharts writes a go-echarts page holding the chart for sel. Scatter views
// keep their marker symbols; the single-run view becomes a bar chart. ECharts
// has no error bars, so the standard deviation goes into the tooltip name.
func ECharts(w io.Writer, data report.ReportData, sel plot.Selection) error {
	fig, err := plot.Choose(data, sel)
	if err != nil {
		return err
	}

	title := fig.Layout.Title.Text
	page := components.NewPage()
	page.PageTitle = title
	if page.PageTitle == "" {
		page.PageTitle = "Benchmark report"
	}

	switch fig.View {
	case plot.ViewSingleSummary:
		page.AddCharts(echartsBar(fig, title))
	default:
		page.AddCharts(echartsScatter(fig, title))
	}
	return page.Render(w)
}

func echartsGlobalOptions(fig plot.Figure, title string) []charts.GlobalOpts {
	yAxis := opts.YAxis{
		Name: fig.Layout.YAxis.Title.Text,
		Type: "value",
	}
	if fig.Layout.YAxis.Logarithmic() {
		yAxis.Type = "log"
	} else if fig.Layout.YAxis.ZeroAnchored() {
		yAxis.Min = 0
	}
	return []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "bottom"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(yAxis),
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: title,
			Width:     "100%",
			Height:    "600px",
		}),
	}
}

func echartsScatter(fig plot.Figure, title string) *charts.Scatter {
	scatter := charts.NewScatter()
	global := echartsGlobalOptions(fig, title)

	categories, categorical := categoryValues(fig)
	xAxis := opts.XAxis{Name: fig.Layout.XAxis.Title.Text, Type: "value"}
	switch {
	case categorical:
		xAxis.Type = "category"
		xAxis.Data = categories
	case fig.Layout.XAxis.Logarithmic():
		xAxis.Type = "log"
	}
	global = append(global, charts.WithXAxisOpts(xAxis))
	scatter.SetGlobalOptions(global...)

	for i, tr := range fig.Data {
		symbol := echartsSymbols[i%len(echartsSymbols)]
		if tr.Marker != nil {
			symbol = echartsSymbols[tr.Marker.Symbol%len(echartsSymbols)]
		}
		points := make([]opts.ScatterData, 0, len(tr.Y))
		for j, y := range tr.Y {
			var x any = j
			if j < len(tr.X) {
				x = tr.X[j]
			}
			point := opts.ScatterData{Value: []any{x, y}, Symbol: symbol, SymbolSize: 8}
			if tr.ErrorY != nil && j < len(tr.ErrorY.Array) {
				point.Name = fmt.Sprintf("%s ± %g", tr.Name, tr.ErrorY.Array[j])
			}
			points = append(points, point)
		}
		scatter.AddSeries(tr.Name, points)
	}
	return scatter
}

func echartsBar(fig plot.Figure, title string) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(echartsGlobalOptions(fig, title)...)
	bar.SetXAxis([]string{""})
	for _, tr := range fig.Data {
		items := make([]opts.BarData, 0, len(tr.Y))
		for j, y := range tr.Y {
			item := opts.BarData{Value: y}
			if tr.ErrorY != nil && j < len(tr.ErrorY.Array) {
				item.Name = fmt.Sprintf("± %g", tr.ErrorY.Array[j])
			}
			items = append(items, item)
		}
		bar.AddSeries(tr.Name, items)
	}
	return bar
}

// categoryValues collects the distinct string x values in first-seen order.
// It reports false when every x value is numeric.
func categoryValues(fig plot.Figure) ([]string, bool) {
	var (
		out  []string
		seen = map[string]bool{}
	)
	categorical := false
	for _, tr := range fig.Data {
		for _, x := range tr.X {
			s, ok := x.(string)
			if !ok {
				continue
			}
			categorical = true
			if !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
		}
	}
	return out, categorical
}
