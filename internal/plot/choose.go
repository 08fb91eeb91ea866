package plot

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/mwiater/benchplot/internal/report"
)

// SummaryValue is the chooser value that selects the summary chart.
const SummaryValue = "summary"

var (
	// ErrInvalidSelection is returned for a chooser value that is neither
	// "summary" nor a run index.
	ErrInvalidSelection = errors.New("invalid plot selection")
	// ErrRunOutOfRange is returned for a run index the report does not have.
	ErrRunOutOfRange = errors.New("run index out of range")
)

// Selection is a parsed chooser value.
type Selection struct {
	Summary bool
	Run     int
}

// SummarySelection selects the summary chart.
func SummarySelection() Selection { return Selection{Summary: true} }

// RunSelection selects the samples chart of one run.
func RunSelection(index int) Selection { return Selection{Run: index} }

// ParseSelection reads a chooser value.
func ParseSelection(value string) (Selection, error) {
	v := strings.TrimSpace(value)
	if v == SummaryValue {
		return SummarySelection(), nil
	}
	idx, err := strconv.Atoi(v)
	if err != nil || idx < 0 {
		return Selection{}, fmt.Errorf("%w: %q", ErrInvalidSelection, value)
	}
	return RunSelection(idx), nil
}

// String returns the chooser value for s.
func (s Selection) String() string {
	if s.Summary {
		return SummaryValue
	}
	return strconv.Itoa(s.Run)
}

// Choose builds the figure for a selection. The summary selection becomes
// the multi-run chart when the report has more than one run and the bar chart
// when it has exactly one; any other selection is the samples chart of that
// run.
func Choose(data report.ReportData, sel Selection) (Figure, error) {
	if len(data.Runs) == 0 {
		return Figure{}, report.ErrNoRuns
	}
	if sel.Summary {
		if len(data.Runs) > 1 {
			return Summary(data)
		}
		return SingleSummary(data)
	}
	return Samples(data, sel.Run)
}

// ChooseValue parses value and calls Choose.
func ChooseValue(data report.ReportData, value string) (Figure, error) {
	sel, err := ParseSelection(value)
	if err != nil {
		return Figure{}, err
	}
	return Choose(data, sel)
}

// Option is one entry of the chooser control.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Options lists the chooser entries: the summary first, then each run.
func Options(data report.ReportData) []Option {
	opts := make([]Option, 0, len(data.Runs)+1)
	opts = append(opts, Option{Value: SummaryValue, Label: "Summary"})
	for i, run := range data.Runs {
		opts = append(opts, Option{Value: strconv.Itoa(i), Label: "Samples: " + run.Label(i)})
	}
	return opts
}
