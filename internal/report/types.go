// internal/report/types.go
// Package report holds the benchmark report document and the helpers that
// load, validate, and normalize it before it is charted.
package report

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// ReportData is the top-level report document. It is built once by a loader
// and treated as read-only afterwards.
type ReportData struct {
	Title       string `json:"title"`
	Units       string `json:"units"`
	Logarithmic bool   `json:"logarithmic"`
	Param       string `json:"param"`
	Runs        []Run  `json:"runs"`
}

// Run is one execution of the suite under a fixed set of parameter values.
type Run struct {
	Params     Params            `json:"params"`
	Benchmarks []BenchmarkResult `json:"benchmarks"`
}

// BenchmarkResult summarizes one benchmark of a run.
type BenchmarkResult struct {
	Name    string    `json:"name"`
	Mean    float64   `json:"mean"`
	Stddev  float64   `json:"stddev"`
	Samples []float64 `json:"samples"`
}

// Params maps a parameter name to its stringified value.
type Params map[string]string

// UnmarshalJSON accepts strings, numbers, and booleans as parameter values and
// keeps their textual form.
func (p *Params) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	out := make(Params, len(raw))
	for name, value := range raw {
		var s string
		if err := json.Unmarshal(value, &s); err == nil {
			out[name] = s
			continue
		}
		out[name] = strings.TrimSpace(string(value))
	}
	*p = out
	return nil
}

// Clone returns a deep copy so callers never share slices or maps with the
// original document.
func (d ReportData) Clone() ReportData {
	out := d
	out.Runs = make([]Run, len(d.Runs))
	for i, run := range d.Runs {
		out.Runs[i] = run.clone()
	}
	return out
}

func (r Run) clone() Run {
	out := Run{}
	if r.Params != nil {
		out.Params = make(Params, len(r.Params))
		for k, v := range r.Params {
			out.Params[k] = v
		}
	}
	out.Benchmarks = make([]BenchmarkResult, len(r.Benchmarks))
	for i, b := range r.Benchmarks {
		b.Samples = append([]float64(nil), b.Samples...)
		out.Benchmarks[i] = b
	}
	return out
}

// Param returns the run's value for name, or "" when the run does not carry it.
func (r Run) Param(name string) string {
	return r.Params[name]
}

// Benchmark finds a benchmark by name. The hint index is checked first so the
// common case of identically ordered runs stays a direct lookup.
func (r Run) Benchmark(hint int, name string) (BenchmarkResult, bool) {
	if hint >= 0 && hint < len(r.Benchmarks) && r.Benchmarks[hint].Name == name {
		return r.Benchmarks[hint], true
	}
	for _, b := range r.Benchmarks {
		if b.Name == name {
			return b, true
		}
	}
	return BenchmarkResult{}, false
}

// Label describes the run by its parameters, e.g. "size=64, threads=2".
func (r Run) Label(index int) string {
	if len(r.Params) == 0 {
		return fmt.Sprintf("run %d", index)
	}
	names := make([]string, 0, len(r.Params))
	for name := range r.Params {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+"="+r.Params[name])
	}
	return strings.Join(parts, ", ")
}

// BenchmarkNames lists the benchmark names of a run in order.
func (r Run) BenchmarkNames() []string {
	names := make([]string, len(r.Benchmarks))
	for i, b := range r.Benchmarks {
		names[i] = b.Name
	}
	return names
}

// Overrides replace document fields with values from config or flags.
// Empty strings and a false Logarithmic leave the document untouched.
type Overrides struct {
	Title       string
	Units       string
	Param       string
	Logarithmic bool
}

// WithOverrides returns a copy of d with the non-empty overrides applied.
func (d ReportData) WithOverrides(o Overrides) ReportData {
	out := d.Clone()
	if t := strings.TrimSpace(o.Title); t != "" {
		out.Title = t
	}
	if u := strings.TrimSpace(o.Units); u != "" {
		out.Units = u
	}
	if p := strings.TrimSpace(o.Param); p != "" {
		out.Param = p
	}
	if o.Logarithmic {
		out.Logarithmic = true
	}
	return out
}
