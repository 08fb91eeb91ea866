// internal/plot/figure.go
// Package plot turns a report into chart instructions. Every function here is
// a pure function of its inputs; the renderers decide how to paint the result.
package plot

// View identifies which of the three charts a Figure holds.
type View int

const (
	// ViewSamples plots the raw samples of one run.
	ViewSamples View = iota
	// ViewSummary plots means against the varying parameter across runs.
	ViewSummary
	// ViewSingleSummary plots one bar per benchmark of a single run.
	ViewSingleSummary
)

func (v View) String() string {
	switch v {
	case ViewSamples:
		return "samples"
	case ViewSummary:
		return "summary"
	case ViewSingleSummary:
		return "single-summary"
	default:
		return "unknown"
	}
}

// Figure is a Plotly figure: the traces plus the layout they are drawn in.
type Figure struct {
	View   View    `json:"-"`
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

// Trace is one plotted series.
type Trace struct {
	Name   string     `json:"name"`
	Type   string     `json:"type"`
	Mode   string     `json:"mode,omitempty"`
	Marker *Marker    `json:"marker,omitempty"`
	X      []any      `json:"x"`
	Y      []float64  `json:"y"`
	ErrorY *ErrorBars `json:"error_y,omitempty"`
}

// Marker selects the point symbol; Plotly maps integers onto its symbol table.
type Marker struct {
	Symbol int `json:"symbol"`
}

// ErrorBars holds symmetric per-point error values.
type ErrorBars struct {
	Type    string    `json:"type"`
	Array   []float64 `json:"array"`
	Visible bool      `json:"visible"`
}

type Layout struct {
	Title      Title  `json:"title"`
	ShowLegend bool   `json:"showlegend"`
	XAxis      Axis   `json:"xaxis"`
	YAxis      Axis   `json:"yaxis"`
	Legend     Legend `json:"legend"`
}

type Title struct {
	Text string `json:"text"`
}

// Axis mirrors the subset of Plotly axis options the views use. Pointer
// fields are omitted from the JSON when unset.
type Axis struct {
	Title          Title  `json:"title"`
	Type           string `json:"type,omitempty"`
	RangeMode      string `json:"rangemode,omitempty"`
	ZeroLine       *bool  `json:"zeroline,omitempty"`
	ShowTickLabels *bool  `json:"showticklabels,omitempty"`
}

type Legend struct {
	Font        Font   `json:"font"`
	BorderWidth int    `json:"borderwidth"`
	BorderColor string `json:"bordercolor"`
}

type Font struct {
	Family string `json:"family"`
}

// ZeroAnchored reports whether the axis starts at zero and draws the zero line.
func (a Axis) ZeroAnchored() bool {
	return a.RangeMode == "tozero" && a.ZeroLine != nil && *a.ZeroLine
}

// Logarithmic reports whether the axis uses a log scale.
func (a Axis) Logarithmic() bool {
	return a.Type == "log"
}

// TickLabelsHidden reports whether tick labels were switched off.
func (a Axis) TickLabelsHidden() bool {
	return a.ShowTickLabels != nil && !*a.ShowTickLabels
}

func boolPtr(b bool) *bool { return &b }

var legendStyle = Legend{
	Font:        Font{Family: "monospace"},
	BorderWidth: 2,
	BorderColor: "black",
}

func timeAxis(units string) Axis {
	return Axis{
		Title:     Title{Text: "Time (" + units + ")"},
		RangeMode: "tozero",
		ZeroLine:  boolPtr(true),
	}
}

func newLayout(title string, x, y Axis) Layout {
	return Layout{
		Title:      Title{Text: title},
		ShowLegend: true,
		XAxis:      x,
		YAxis:      y,
		Legend:     legendStyle,
	}
}
