package report

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoRuns is returned for a report without any run.
	ErrNoRuns = errors.New("report has no runs")
	// ErrInconsistentRuns is returned in strict mode when runs disagree on
	// their benchmark lists or lack the varying parameter.
	ErrInconsistentRuns = errors.New("report runs are inconsistent")
)

// Issue is one consistency problem. Run is -1 for document-level issues.
type Issue struct {
	Run     int
	Message string
}

func (i Issue) String() string {
	if i.Run < 0 {
		return i.Message
	}
	return fmt.Sprintf("run %d: %s", i.Run, i.Message)
}

// Check compares every run against the first one and reports the
// differences. The charts still render with issues present; see CheckStrict.
func Check(d ReportData) []Issue {
	var issues []Issue
	if len(d.Runs) == 0 {
		return []Issue{{Run: -1, Message: ErrNoRuns.Error()}}
	}

	first := d.Runs[0]
	if len(first.Benchmarks) == 0 {
		issues = append(issues, Issue{Run: 0, Message: "run has no benchmarks"})
	}

	if len(d.Runs) > 1 && strings.TrimSpace(d.Param) == "" {
		issues = append(issues, Issue{Run: -1, Message: "multiple runs but no varying parameter named"})
	}

	for i, run := range d.Runs {
		if len(d.Runs) > 1 && d.Param != "" {
			if _, ok := run.Params[d.Param]; !ok {
				issues = append(issues, Issue{Run: i, Message: fmt.Sprintf("missing parameter %q", d.Param)})
			}
		}
		if i == 0 {
			continue
		}
		if len(run.Benchmarks) != len(first.Benchmarks) {
			issues = append(issues, Issue{Run: i, Message: fmt.Sprintf("has %d benchmarks, first run has %d", len(run.Benchmarks), len(first.Benchmarks))})
		}
		for j, b := range first.Benchmarks {
			if j < len(run.Benchmarks) && run.Benchmarks[j].Name == b.Name {
				continue
			}
			if _, ok := run.Benchmark(-1, b.Name); ok {
				issues = append(issues, Issue{Run: i, Message: fmt.Sprintf("benchmark %q is out of order", b.Name)})
			} else {
				issues = append(issues, Issue{Run: i, Message: fmt.Sprintf("benchmark %q is missing", b.Name)})
			}
		}
	}
	return issues
}

// CheckStrict turns any issue found by Check into an error wrapping
// ErrInconsistentRuns (or ErrNoRuns for an empty report).
func CheckStrict(d ReportData) error {
	if len(d.Runs) == 0 {
		return ErrNoRuns
	}
	issues := Check(d)
	if len(issues) == 0 {
		return nil
	}
	msgs := make([]string, len(issues))
	for i, issue := range issues {
		msgs[i] = issue.String()
	}
	return fmt.Errorf("%w: %s", ErrInconsistentRuns, strings.Join(msgs, "; "))
}
