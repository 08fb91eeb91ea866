package plot

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/mwiater/benchplot/internal/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoRunReport(logarithmic bool) report.ReportData {
	return report.ReportData{
		Title:       "sorting",
		Units:       "ms",
		Logarithmic: logarithmic,
		Param:       "threads",
		Runs: []report.Run{
			{
				Params: report.Params{"threads": "1"},
				Benchmarks: []report.BenchmarkResult{
					{Name: "sort", Mean: 10, Stddev: 1, Samples: []float64{9, 10, 11}},
					{Name: "search", Mean: 3, Stddev: 0.5, Samples: []float64{3}},
				},
			},
			{
				Params: report.Params{"threads": "2"},
				Benchmarks: []report.BenchmarkResult{
					{Name: "sort", Mean: 20, Stddev: 2, Samples: []float64{18, 22}},
					{Name: "search", Mean: 4, Stddev: 0.25, Samples: []float64{4, 4}},
				},
			},
		},
	}
}

func singleRunReport() report.ReportData {
	data := twoRunReport(false)
	data.Runs = data.Runs[:1]
	return data
}

func TestParseSelection(t *testing.T) {
	sel, err := ParseSelection("summary")
	require.NoError(t, err)
	assert.True(t, sel.Summary)
	assert.Equal(t, "summary", sel.String())

	sel, err = ParseSelection(" 2 ")
	require.NoError(t, err)
	assert.False(t, sel.Summary)
	assert.Equal(t, 2, sel.Run)
	assert.Equal(t, "2", sel.String())

	for _, bad := range []string{"", "-1", "first", "1.5"} {
		_, err := ParseSelection(bad)
		assert.True(t, errors.Is(err, ErrInvalidSelection), "value %q", bad)
	}
}

func TestChooseSummaryWithSingleRunUsesBars(t *testing.T) {
	fig, err := Choose(singleRunReport(), SummarySelection())
	require.NoError(t, err)
	assert.Equal(t, ViewSingleSummary, fig.View)
	for _, tr := range fig.Data {
		assert.Equal(t, "bar", tr.Type)
	}
}

func TestChooseSummaryWithManyRunsUsesSummary(t *testing.T) {
	fig, err := Choose(twoRunReport(false), SummarySelection())
	require.NoError(t, err)
	assert.Equal(t, ViewSummary, fig.View)
	require.Len(t, fig.Data, 2)
	assert.Equal(t, "sort", fig.Data[0].Name)
	assert.Equal(t, "search", fig.Data[1].Name)
}

func TestChooseRunUsesSamples(t *testing.T) {
	fig, err := ChooseValue(twoRunReport(false), "1")
	require.NoError(t, err)
	assert.Equal(t, ViewSamples, fig.View)
	assert.Equal(t, []float64{18, 22}, fig.Data[0].Y)
}

func TestChooseErrors(t *testing.T) {
	_, err := Choose(report.ReportData{}, SummarySelection())
	assert.True(t, errors.Is(err, report.ErrNoRuns))

	_, err = Choose(twoRunReport(false), RunSelection(5))
	assert.True(t, errors.Is(err, ErrRunOutOfRange))

	_, err = ChooseValue(twoRunReport(false), "bogus")
	assert.True(t, errors.Is(err, ErrInvalidSelection))
}

func TestSamplesTraces(t *testing.T) {
	data := twoRunReport(false)
	fig, err := Samples(data, 0)
	require.NoError(t, err)

	require.Len(t, fig.Data, len(data.Runs[0].Benchmarks))
	for i, tr := range fig.Data {
		b := data.Runs[0].Benchmarks[i]
		assert.Equal(t, b.Name, tr.Name)
		assert.Equal(t, "scatter", tr.Type)
		assert.Equal(t, "markers", tr.Mode)
		require.NotNil(t, tr.Marker)
		assert.Equal(t, i, tr.Marker.Symbol)
		require.Len(t, tr.X, len(b.Samples))
		require.Len(t, tr.Y, len(b.Samples))
		for j := range tr.X {
			assert.Equal(t, j, tr.X[j])
		}
	}
	assert.Equal(t, "Measurement", fig.Layout.XAxis.Title.Text)
	assert.Equal(t, "Time (ms)", fig.Layout.YAxis.Title.Text)
}

func TestSamplesDoesNotAliasReport(t *testing.T) {
	data := twoRunReport(false)
	fig, err := Samples(data, 0)
	require.NoError(t, err)
	fig.Data[0].Y[0] = 100
	assert.Equal(t, 9.0, data.Runs[0].Benchmarks[0].Samples[0])
}

func TestEveryViewAnchorsYAxisAtZero(t *testing.T) {
	multi := twoRunReport(true)
	single := singleRunReport()
	figs := []Figure{}
	for _, build := range []func() (Figure, error){
		func() (Figure, error) { return Samples(multi, 0) },
		func() (Figure, error) { return Summary(multi) },
		func() (Figure, error) { return SingleSummary(single) },
	} {
		fig, err := build()
		require.NoError(t, err)
		figs = append(figs, fig)
	}
	for _, fig := range figs {
		assert.True(t, fig.Layout.YAxis.ZeroAnchored(), "view %s", fig.View)
		assert.True(t, fig.Layout.ShowLegend)
		assert.Equal(t, "monospace", fig.Layout.Legend.Font.Family)
	}
}

func TestSummaryLogarithmicAxes(t *testing.T) {
	fig, err := Summary(twoRunReport(true))
	require.NoError(t, err)
	assert.True(t, fig.Layout.XAxis.Logarithmic())
	assert.True(t, fig.Layout.YAxis.Logarithmic())

	fig, err = Summary(twoRunReport(false))
	require.NoError(t, err)
	assert.False(t, fig.Layout.XAxis.Logarithmic())
	assert.False(t, fig.Layout.YAxis.Logarithmic())
	assert.Equal(t, "threads", fig.Layout.XAxis.Title.Text)
}

func TestSummaryExample(t *testing.T) {
	data := report.ReportData{
		Units: "ms",
		Param: "threads",
		Runs: []report.Run{
			{Params: report.Params{"threads": "1"}, Benchmarks: []report.BenchmarkResult{{Name: "sort", Mean: 10, Stddev: 1}}},
			{Params: report.Params{"threads": "2"}, Benchmarks: []report.BenchmarkResult{{Name: "sort", Mean: 20, Stddev: 2}}},
		},
	}
	fig, err := Choose(data, SummarySelection())
	require.NoError(t, err)
	require.Len(t, fig.Data, 1)

	tr := fig.Data[0]
	assert.Equal(t, "sort", tr.Name)
	assert.Equal(t, []any{1.0, 2.0}, tr.X)
	assert.Equal(t, []float64{10, 20}, tr.Y)
	require.NotNil(t, tr.ErrorY)
	assert.Equal(t, []float64{1, 2}, tr.ErrorY.Array)
	assert.True(t, tr.ErrorY.Visible)
	assert.Equal(t, "data", tr.ErrorY.Type)
}

func TestSummaryMatchesBenchmarksByName(t *testing.T) {
	data := twoRunReport(false)
	data.Runs[1].Benchmarks = []report.BenchmarkResult{
		{Name: "search", Mean: 4, Stddev: 0.25},
	}
	fig, err := Summary(data)
	require.NoError(t, err)

	require.Len(t, fig.Data, 2)
	assert.Equal(t, []float64{10}, fig.Data[0].Y, "sort is missing from run 1")
	assert.Equal(t, []float64{3, 4}, fig.Data[1].Y)
	assert.Equal(t, []any{1.0, 2.0}, fig.Data[1].X)
}

func TestSummaryCategoricalParams(t *testing.T) {
	data := twoRunReport(false)
	data.Runs[0].Params["threads"] = "one"
	fig, err := Summary(data)
	require.NoError(t, err)
	assert.Equal(t, []any{"one", "2"}, fig.Data[0].X)
}

func TestSummaryNonFiniteParamsAreCategorical(t *testing.T) {
	for _, raw := range []string{"inf", "-Inf", "NaN"} {
		t.Run(raw, func(t *testing.T) {
			data := twoRunReport(false)
			data.Runs[0].Params["threads"] = raw
			fig, err := Summary(data)
			require.NoError(t, err)
			assert.Equal(t, []any{raw, "2"}, fig.Data[0].X)

			_, err = json.Marshal(fig)
			require.NoError(t, err)
		})
	}
}

func TestSingleSummaryBars(t *testing.T) {
	fig, err := SingleSummary(singleRunReport())
	require.NoError(t, err)

	require.Len(t, fig.Data, 2)
	assert.Equal(t, []any{0}, fig.Data[0].X)
	assert.Equal(t, []float64{10}, fig.Data[0].Y)
	assert.Equal(t, []float64{1}, fig.Data[0].ErrorY.Array)
	assert.True(t, fig.Layout.XAxis.TickLabelsHidden())
	assert.Equal(t, "", fig.Layout.XAxis.Title.Text)
}

func TestFigureJSONShape(t *testing.T) {
	fig, err := Summary(twoRunReport(true))
	require.NoError(t, err)
	raw, err := json.Marshal(fig)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	layout := decoded["layout"].(map[string]any)
	yaxis := layout["yaxis"].(map[string]any)
	assert.Equal(t, "tozero", yaxis["rangemode"])
	assert.Equal(t, true, yaxis["zeroline"])
	assert.Equal(t, "log", yaxis["type"])

	trace := decoded["data"].([]any)[0].(map[string]any)
	assert.Contains(t, trace, "error_y")
	assert.NotContains(t, trace, "mode")
}

func TestOptions(t *testing.T) {
	opts := Options(twoRunReport(false))
	require.Len(t, opts, 3)
	assert.Equal(t, Option{Value: "summary", Label: "Summary"}, opts[0])
	assert.Equal(t, "1", opts[2].Value)
	assert.Equal(t, "Samples: threads=2", opts[2].Label)
}
