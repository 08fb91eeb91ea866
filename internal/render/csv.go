package render

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/mwiater/benchplot/internal/plot"
	"github.com/mwiater/benchplot/internal/report"
)

// CSV writes the samples of one run as a table: a header of benchmark names,
// then one row per sample position. Benchmarks with fewer samples leave the
// trailing cells empty.
func CSV(w io.Writer, data report.ReportData, runIndex int) error {
	if runIndex < 0 || runIndex >= len(data.Runs) {
		return fmt.Errorf("%w: %d (report has %d runs)", plot.ErrRunOutOfRange, runIndex, len(data.Runs))
	}
	run := data.Runs[runIndex]

	cw := csv.NewWriter(w)
	if err := cw.Write(run.BenchmarkNames()); err != nil {
		return err
	}

	rows := 0
	for _, b := range run.Benchmarks {
		if len(b.Samples) > rows {
			rows = len(b.Samples)
		}
	}
	record := make([]string, len(run.Benchmarks))
	for i := 0; i < rows; i++ {
		for j, b := range run.Benchmarks {
			record[j] = ""
			if i < len(b.Samples) {
				record[j] = strconv.FormatFloat(b.Samples[i], 'f', -1, 64)
			}
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
