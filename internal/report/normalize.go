package report

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
)

// Magnitude returns the multiplier that brings a duration in seconds into the
// unit it is best read in.
func Magnitude(seconds float64) float64 {
	switch {
	case seconds >= 2:
		return 1
	case seconds >= 2e-3:
		return 1e3
	case seconds >= 2e-6:
		return 1e6
	default:
		return 1e9
	}
}

// UnitsForMagnitude names the unit produced by a Magnitude multiplier.
func UnitsForMagnitude(magnitude float64) string {
	switch {
	case magnitude <= 1:
		return "s"
	case magnitude <= 1e3:
		return "ms"
	case magnitude <= 1e6:
		return "μs"
	default:
		return "ns"
	}
}

// Truncate keeps three decimals, dropping the rest.
func Truncate(x float64) float64 {
	return math.Trunc(x*1000) / 1000
}

// Normalize returns a copy of d ready for charting:
//   - a benchmark with samples but neither mean nor stddev gets both computed
//     from its samples;
//   - a document without units is read as seconds and rescaled to the unit of
//     its smallest sample, truncated to three decimals.
func Normalize(d ReportData) (ReportData, error) {
	out := d.Clone()

	for i := range out.Runs {
		for j := range out.Runs[i].Benchmarks {
			b := &out.Runs[i].Benchmarks[j]
			if len(b.Samples) == 0 || b.Mean != 0 || b.Stddev != 0 {
				continue
			}
			mean, sd, err := Summarize(b.Samples)
			if err != nil {
				return ReportData{}, fmt.Errorf("summarize %s in run %d: %w", b.Name, i, err)
			}
			b.Mean, b.Stddev = mean, sd
		}
	}

	if out.Units == "" {
		rescale(&out)
	}
	return out, nil
}

// Summarize computes the mean and sample standard deviation of samples. A
// single sample has no spread.
func Summarize(samples []float64) (float64, float64, error) {
	data := stats.Float64Data(samples)
	mean, err := stats.Mean(data)
	if err != nil {
		return 0, 0, err
	}
	if len(samples) < 2 {
		return mean, 0, nil
	}
	sd, err := stats.StandardDeviationSample(data)
	if err != nil {
		return 0, 0, err
	}
	return mean, sd, nil
}

func rescale(d *ReportData) {
	lowest, ok := smallestValue(*d)
	if !ok {
		d.Units = "s"
		return
	}
	magnitude := Magnitude(lowest)
	for i := range d.Runs {
		for j := range d.Runs[i].Benchmarks {
			b := &d.Runs[i].Benchmarks[j]
			b.Mean = Truncate(b.Mean * magnitude)
			b.Stddev = Truncate(b.Stddev * magnitude)
			for k, s := range b.Samples {
				b.Samples[k] = Truncate(s * magnitude)
			}
		}
	}
	d.Units = UnitsForMagnitude(magnitude)
}

// smallestValue looks at samples first and falls back to means for documents
// that only carry summaries.
func smallestValue(d ReportData) (float64, bool) {
	var values stats.Float64Data
	for _, run := range d.Runs {
		for _, b := range run.Benchmarks {
			values = append(values, b.Samples...)
		}
	}
	if len(values) == 0 {
		for _, run := range d.Runs {
			for _, b := range run.Benchmarks {
				values = append(values, b.Mean)
			}
		}
	}
	lowest, err := stats.Min(values)
	if err != nil {
		return 0, false
	}
	return lowest, true
}
