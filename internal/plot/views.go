package plot

import (
	"fmt"
	"math"
	"strconv"

	"github.com/mwiater/benchplot/internal/report"
)

// Samples plots every sample of one run, one marker trace per benchmark with
// the sample position on the x axis.
func Samples(data report.ReportData, runIndex int) (Figure, error) {
	if runIndex < 0 || runIndex >= len(data.Runs) {
		return Figure{}, fmt.Errorf("%w: %d (report has %d runs)", ErrRunOutOfRange, runIndex, len(data.Runs))
	}
	run := data.Runs[runIndex]

	traces := make([]Trace, 0, len(run.Benchmarks))
	for i, b := range run.Benchmarks {
		x := make([]any, len(b.Samples))
		for j := range b.Samples {
			x[j] = j
		}
		traces = append(traces, Trace{
			Name:   b.Name,
			Type:   "scatter",
			Mode:   "markers",
			Marker: &Marker{Symbol: i},
			X:      x,
			Y:      append([]float64{}, b.Samples...),
		})
	}

	x := Axis{Title: Title{Text: "Measurement"}}
	return Figure{
		View:   ViewSamples,
		Data:   traces,
		Layout: newLayout(data.Title, x, timeAxis(data.Units)),
	}, nil
}

// Summary plots each benchmark's mean against the varying parameter, one
// trace per benchmark of the first run. Benchmarks are matched across runs by
// name; a run without the benchmark contributes no point to that trace.
func Summary(data report.ReportData) (Figure, error) {
	if len(data.Runs) == 0 {
		return Figure{}, report.ErrNoRuns
	}
	numeric := paramsAreNumeric(data)

	traces := make([]Trace, 0, len(data.Runs[0].Benchmarks))
	for i, b := range data.Runs[0].Benchmarks {
		xs := make([]any, 0, len(data.Runs))
		ys := make([]float64, 0, len(data.Runs))
		errs := make([]float64, 0, len(data.Runs))
		for _, run := range data.Runs {
			rb, ok := run.Benchmark(i, b.Name)
			if !ok {
				continue
			}
			xs = append(xs, paramValue(run.Param(data.Param), numeric))
			ys = append(ys, rb.Mean)
			errs = append(errs, rb.Stddev)
		}
		traces = append(traces, Trace{
			Name:   b.Name,
			Type:   "scatter",
			Marker: &Marker{Symbol: i},
			X:      xs,
			Y:      ys,
			ErrorY: &ErrorBars{Type: "data", Array: errs, Visible: true},
		})
	}

	x := Axis{Title: Title{Text: data.Param}}
	y := timeAxis(data.Units)
	if data.Logarithmic {
		x.Type = "log"
		y.Type = "log"
	}
	return Figure{
		View:   ViewSummary,
		Data:   traces,
		Layout: newLayout(data.Title, x, y),
	}, nil
}

// SingleSummary draws one bar per benchmark of the first run, all at the same
// x position, with the standard deviation as the error bar.
func SingleSummary(data report.ReportData) (Figure, error) {
	if len(data.Runs) == 0 {
		return Figure{}, report.ErrNoRuns
	}

	traces := make([]Trace, 0, len(data.Runs[0].Benchmarks))
	for _, b := range data.Runs[0].Benchmarks {
		traces = append(traces, Trace{
			Name:   b.Name,
			Type:   "bar",
			X:      []any{0},
			Y:      []float64{b.Mean},
			ErrorY: &ErrorBars{Type: "data", Array: []float64{b.Stddev}, Visible: true},
		})
	}

	x := Axis{ShowTickLabels: boolPtr(false)}
	return Figure{
		View:   ViewSingleSummary,
		Data:   traces,
		Layout: newLayout(data.Title, x, timeAxis(data.Units)),
	}, nil
}

// paramsAreNumeric reports whether every run's value of the varying
// parameter parses as a finite number, in which case the x axis is numeric.
// "inf" and "nan" parse but cannot be encoded as JSON numbers.
func paramsAreNumeric(data report.ReportData) bool {
	for _, run := range data.Runs {
		f, err := strconv.ParseFloat(run.Param(data.Param), 64)
		if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
			return false
		}
	}
	return true
}

func paramValue(raw string, numeric bool) any {
	if numeric {
		f, _ := strconv.ParseFloat(raw, 64)
		return f
	}
	return raw
}
