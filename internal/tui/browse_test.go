package tui

import (
	"bytes"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mwiater/benchplot/internal/plot"
	"github.com/mwiater/benchplot/internal/report"
)

func testReport() report.ReportData {
	return report.ReportData{
		Title: "sorting",
		Units: "ms",
		Param: "threads",
		Runs: []report.Run{
			{Params: report.Params{"threads": "1"}, Benchmarks: []report.BenchmarkResult{{Name: "sort", Mean: 10, Stddev: 1, Samples: []float64{9, 11}}}},
			{Params: report.Params{"threads": "2"}, Benchmarks: []report.BenchmarkResult{{Name: "sort", Mean: 20, Stddev: 2, Samples: []float64{18, 22}}}},
		},
	}
}

func TestNewModelListsOptions(t *testing.T) {
	m := newModel(testReport())
	items := m.chooser.Items()
	if len(items) != 3 {
		t.Fatalf("expected 3 chooser entries, got %d", len(items))
	}
	first := items[0].(item)
	if first.value != plot.SummaryValue || first.Title() != "Summary" {
		t.Fatalf("unexpected first entry: %+v", first)
	}
	if got := items[2].(item).Title(); got != "Samples: threads=2" {
		t.Fatalf("unexpected run label %q", got)
	}
	if m.chooser.Title != "sorting" {
		t.Fatalf("expected report title on chooser, got %q", m.chooser.Title)
	}
}

func TestBrowseStateTransitions(t *testing.T) {
	m := newModel(testReport())
	if out := m.View(); out != "Initializing..." {
		t.Fatalf("expected initializing view before size, got %q", out)
	}

	_, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	if m.width != 100 || m.height != 30 {
		t.Fatalf("window size not stored: %dx%d", m.width, m.height)
	}
	if m.chooser.Width() != 98 || m.chooser.Height() != 26 {
		t.Fatalf("chooser not resized: %dx%d", m.chooser.Width(), m.chooser.Height())
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(*model)
	if m.state != viewFigure {
		t.Fatalf("expected figure view after enter, got %v", m.state)
	}
	if m.figure.View != plot.ViewSummary {
		t.Fatalf("expected summary figure, got %v", m.figure.View)
	}
	out := m.View()
	for _, want := range []string{"sorting [summary]", "sort", "15.000", "±1.000..2.000", "threads"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in view:\n%s", want, out)
		}
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(*model)
	if m.state != viewChooser {
		t.Fatalf("expected chooser after esc, got %v", m.state)
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}

func TestChooseErrorIsShown(t *testing.T) {
	m := newModel(testReport())
	_, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 20})
	m.choose("7")
	if m.err == nil {
		t.Fatalf("expected error for out-of-range run")
	}
	if out := m.View(); !strings.Contains(out, "Error:") {
		t.Fatalf("expected error in view, got %q", out)
	}
}

func TestTraceRow(t *testing.T) {
	row := traceRow(plot.Trace{Name: "a", Y: []float64{1, 3}})
	want := []string{"a", "2", "2.000", "-"}
	for i := range want {
		if row[i] != want[i] {
			t.Fatalf("column %d: got %q want %q", i, row[i], want[i])
		}
	}
}

func TestBrowseRejectsEmptyReport(t *testing.T) {
	if err := Browse(report.ReportData{}, Options{}); err != report.ErrNoRuns {
		t.Fatalf("expected ErrNoRuns, got %v", err)
	}
}

func TestBrowseRunsHeadless(t *testing.T) {
	in := strings.NewReader("q")
	var out bytes.Buffer
	err := Browse(testReport(), Options{Program: []tea.ProgramOption{tea.WithInput(in), tea.WithOutput(&out)}})
	if err != nil {
		t.Fatalf("browse: %v", err)
	}
}
