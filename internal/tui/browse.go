// Package tui is a terminal browser for a benchmark report: a chooser with
// the same entries as the HTML page, and a table of the traces of the chosen
// figure.
package tui

import (
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/montanaflynn/stats"
	"github.com/mwiater/benchplot/internal/logging"
	"github.com/mwiater/benchplot/internal/plot"
	"github.com/mwiater/benchplot/internal/report"
)

type viewState int

const (
	viewChooser viewState = iota
	viewFigure
)

// item is one chooser entry.
type item struct {
	value string
	title string
	desc  string
}

func (i item) Title() string       { return i.title }
func (i item) Description() string { return i.desc }
func (i item) FilterValue() string { return i.title }

type model struct {
	data    report.ReportData
	state   viewState
	chooser list.Model
	figure  plot.Figure
	err     error
	width   int
	height  int
}

func newModel(data report.ReportData) *model {
	options := plot.Options(data)
	items := make([]list.Item, len(options))
	for i, opt := range options {
		desc := fmt.Sprintf("%d runs", len(data.Runs))
		if opt.Value != plot.SummaryValue {
			idx := i - 1
			desc = fmt.Sprintf("%d benchmarks", len(data.Runs[idx].Benchmarks))
		}
		items[i] = item{value: opt.Value, title: opt.Label, desc: desc}
	}

	chooser := list.New(items, list.NewDefaultDelegate(), 0, 0)
	chooser.Title = data.Title
	if chooser.Title == "" {
		chooser.Title = "Select a plot"
	}
	return &model{data: data, state: viewChooser, chooser: chooser}
}

func (m *model) Init() tea.Cmd {
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "esc":
			if m.state == viewFigure {
				m.state = viewChooser
				m.err = nil
				return m, nil
			}
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.chooser.SetSize(msg.Width-2, msg.Height-4)
		return m, nil
	}

	if m.state != viewChooser {
		return m, nil
	}

	var cmd tea.Cmd
	m.chooser, cmd = m.chooser.Update(msg)
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		if selected, ok := m.chooser.SelectedItem().(item); ok {
			m.choose(selected.value)
		}
	}
	return m, cmd
}

func (m *model) choose(value string) {
	fig, err := plot.ChooseValue(m.data, value)
	m.state = viewFigure
	m.err = err
	if err != nil {
		logging.LogEvent("browse: %s: %v", value, err)
		return
	}
	m.figure = fig
	logging.LogRender(fig.View.String(), value, len(fig.Data), nil)
}

func (m *model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	switch m.state {
	case viewFigure:
		if m.err != nil {
			errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Padding(1)
			return errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n" + helpLine()
		}
		return lipgloss.NewStyle().Margin(1, 2).MaxWidth(m.width).Render(figureView(m.figure)) + "\n" + helpLine()
	default:
		return lipgloss.NewStyle().Margin(1, 2).Render(m.chooser.View())
	}
}

func helpLine() string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Render("  (esc to go back, q to quit)")
}

// figureView renders the title, axes and a table with one row per trace.
func figureView(fig plot.Figure) string {
	headerStyle := lipgloss.NewStyle().Background(lipgloss.Color("62")).Foreground(lipgloss.Color("230")).Padding(0, 1)
	axisStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))

	var b strings.Builder
	b.WriteString(headerStyle.Render(fig.Layout.Title.Text + " [" + fig.View.String() + "]"))
	b.WriteString("\n")
	b.WriteString(axisStyle.Render(fmt.Sprintf("x: %s  y: %s", fig.Layout.XAxis.Title.Text, fig.Layout.YAxis.Title.Text)))
	b.WriteString("\n\n")

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("62"))).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Bold(true).Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers("trace", "points", "mean y", "error")
	for _, tr := range fig.Data {
		t.Row(traceRow(tr)...)
	}
	b.WriteString(t.Render())
	return b.String()
}

func traceRow(tr plot.Trace) []string {
	mean := "-"
	if len(tr.Y) > 0 {
		if v, err := stats.Mean(tr.Y); err == nil {
			mean = fmt.Sprintf("%.3f", v)
		}
	}
	errRange := "-"
	if tr.ErrorY != nil && len(tr.ErrorY.Array) > 0 {
		lo, errMin := stats.Min(tr.ErrorY.Array)
		hi, errMax := stats.Max(tr.ErrorY.Array)
		if errMin == nil && errMax == nil {
			errRange = fmt.Sprintf("±%.3f..%.3f", lo, hi)
		}
	}
	return []string{tr.Name, fmt.Sprintf("%d", len(tr.Y)), mean, errRange}
}

// Options configures Browse.
type Options struct {
	// LogFile receives log output while the terminal is taken over. An empty
	// value discards it.
	LogFile string
	Program []tea.ProgramOption
}

// Browse runs the browser on the terminal until the user quits.
func Browse(data report.ReportData, opts Options) error {
	if len(data.Runs) == 0 {
		return report.ErrNoRuns
	}

	prev := log.Writer()
	defer log.SetOutput(prev)
	if opts.LogFile != "" {
		f, err := tea.LogToFile(opts.LogFile, "browse")
		if err != nil {
			return fmt.Errorf("could not open log file: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	programOpts := opts.Program
	if len(programOpts) == 0 {
		programOpts = []tea.ProgramOption{tea.WithAltScreen()}
	}
	p := tea.NewProgram(newModel(data), programOpts...)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("browse: %w", err)
	}
	return nil
}
