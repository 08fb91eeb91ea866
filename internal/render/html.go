// internal/render/html.go
// Package render paints figures: a Plotly HTML page, a go-echarts page, a
// static gonum/plot image, or the raw samples as CSV.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"github.com/mwiater/benchplot/internal/plot"
	"github.com/mwiater/benchplot/internal/report"
)

// HTMLOptions tunes the generated page.
type HTMLOptions struct {
	PlotlyURL string
	// Selected is the chooser value shown on load; "summary" when empty.
	Selected string
}

type htmlPageData struct {
	Title       string
	PlotlyURL   string
	Options     []plot.Option
	Selected    string
	ReportJSON  template.JS
	FiguresJSON template.JS
}

// Figures builds the figure for every chooser option, keyed by option value.
func Figures(data report.ReportData) (map[string]plot.Figure, error) {
	figures := make(map[string]plot.Figure)
	for _, opt := range plot.Options(data) {
		fig, err := plot.ChooseValue(data, opt.Value)
		if err != nil {
			return nil, fmt.Errorf("build %s figure: %w", opt.Value, err)
		}
		figures[opt.Value] = fig
	}
	return figures, nil
}

// HTML renders a standalone page with a chooser and one Plotly chart. The
// report and every figure are embedded, so switching views never leaves the
// page.
func HTML(data report.ReportData, opts HTMLOptions) (string, error) {
	figures, err := Figures(data)
	if err != nil {
		return "", err
	}
	figuresJSON, err := json.Marshal(figures)
	if err != nil {
		return "", err
	}
	reportJSON, err := json.Marshal(data)
	if err != nil {
		return "", err
	}

	selected := opts.Selected
	if selected == "" {
		selected = plot.SummaryValue
	}
	if _, ok := figures[selected]; !ok {
		return "", fmt.Errorf("%w: %q", plot.ErrInvalidSelection, selected)
	}

	title := data.Title
	if title == "" {
		title = "Benchmark report"
	}
	plotlyURL := opts.PlotlyURL
	if plotlyURL == "" {
		plotlyURL = DefaultPlotlyURL
	}

	viewModel := htmlPageData{
		Title:       title,
		PlotlyURL:   plotlyURL,
		Options:     plot.Options(data),
		Selected:    selected,
		ReportJSON:  template.JS(reportJSON),
		FiguresJSON: template.JS(figuresJSON),
	}

	var buf bytes.Buffer
	if err := htmlReportTemplate.Execute(&buf, viewModel); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// DefaultPlotlyURL is used when HTMLOptions leaves the script URL empty.
const DefaultPlotlyURL = "https://cdn.plot.ly/plotly-2.35.2.min.js"

// WriteFile writes content to path, creating parent directories.
func WriteFile(path string, content []byte) error {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("unable to create directory for %s: %w", path, err)
		}
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("unable to write %s: %w", path, err)
	}
	return nil
}

var htmlReportTemplate = template.Must(template.New("benchmark-report").Parse(htmlReportTemplateHTML))

const htmlReportTemplateHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{ .Title }}</title>
  <script src="{{ .PlotlyURL }}"></script>
  <style>
    html, body { height: 100%; margin: 0; font-family: sans-serif; }
    body { display: flex; flex-direction: column; }
    header { padding: 0.5rem 1rem; display: flex; gap: 1rem; align-items: center; }
    header h1 { font-size: 1.1rem; margin: 0; }
    #plot { flex: 1; min-height: 420px; }
  </style>
</head>
<body>
  <header>
    <h1>{{ .Title }}</h1>
    <select id="chooser">
      {{- range .Options }}
      <option value="{{ .Value }}"{{ if eq .Value $.Selected }} selected{{ end }}>{{ .Label }}</option>
      {{- end }}
    </select>
  </header>
  <div id="plot"></div>
  <script>
    (function () {
      window.benchplotReport = {{ .ReportJSON }};
      var figures = {{ .FiguresJSON }};

      var plotdiv = document.getElementById("plot");
      window.addEventListener("resize", function () {
        Plotly.Plots.resize(plotdiv);
      });

      var chooser = document.getElementById("chooser");
      chooser.addEventListener("change", choosePlot);
      chooser.addEventListener("blur", chooser.focus.bind(chooser));
      chooser.focus();

      function choosePlot() {
        var figure = figures[chooser.options[chooser.selectedIndex].value];
        if (!figure) {
          return;
        }
        Plotly.newPlot(plotdiv, figure.data, figure.layout);
      }

      choosePlot();
    })();
  </script>
</body>
</html>
`
