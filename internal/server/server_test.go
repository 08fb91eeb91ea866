package server

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mwiater/benchplot/internal/plot"
	"github.com/mwiater/benchplot/internal/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
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

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	s, err := New(testReport(), Options{PlotlyURL: "https://example.test/plotly.js"})
	require.NoError(t, err)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestIndexServesPage(t *testing.T) {
	_, ts := newTestServer(t)
	resp, body := get(t, ts.URL+"/")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	assert.Contains(t, body, `<div id="plot"></div>`)
	assert.Contains(t, body, "https://example.test/plotly.js")

	resp, _ = get(t, ts.URL+"/nope")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestReportAndOptions(t *testing.T) {
	_, ts := newTestServer(t)

	_, body := get(t, ts.URL+"/api/report")
	var data report.ReportData
	require.NoError(t, json.Unmarshal([]byte(body), &data))
	assert.Equal(t, "sorting", data.Title)
	assert.Len(t, data.Runs, 2)

	_, body = get(t, ts.URL+"/api/options")
	var options []plot.Option
	require.NoError(t, json.Unmarshal([]byte(body), &options))
	require.Len(t, options, 3)
	assert.Equal(t, plot.SummaryValue, options[0].Value)
	assert.Equal(t, "Samples: threads=1", options[1].Label)
}

func TestFigureEndpoint(t *testing.T) {
	_, ts := newTestServer(t)

	resp, body := get(t, ts.URL+"/api/figure?plot=summary")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var fig plot.Figure
	require.NoError(t, json.Unmarshal([]byte(body), &fig))
	require.Len(t, fig.Data, 1)
	assert.Equal(t, []float64{10, 20}, fig.Data[0].Y)

	resp, body = get(t, ts.URL+"/api/figure?plot=1")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"mode":"markers"`)

	resp, _ = get(t, ts.URL+"/api/figure")
	assert.Equal(t, http.StatusOK, resp.StatusCode, "missing plot defaults to summary")

	resp, body = get(t, ts.URL+"/api/figure?plot=9")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var errResp ErrResp
	require.NoError(t, json.Unmarshal([]byte(body), &errResp))
	assert.False(t, errResp.OK)
	assert.Contains(t, errResp.Error, "out of range")

	resp, _ = get(t, ts.URL+"/api/figure?plot=abc")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHealthzAndMetrics(t *testing.T) {
	_, ts := newTestServer(t)

	resp, body := get(t, ts.URL+"/healthz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body)

	get(t, ts.URL+"/api/figure?plot=summary")
	get(t, ts.URL+"/api/figure?plot=0")
	get(t, ts.URL+"/api/figure?plot=9")

	_, body = get(t, ts.URL+"/metrics")
	assert.Contains(t, body, `benchplot_figure_renders_total{view="summary"} 1`)
	assert.Contains(t, body, `benchplot_figure_renders_total{view="samples"} 1`)
	assert.Contains(t, body, `benchplot_http_requests_total{path="/api/figure",status="200"} 2`)
	assert.Contains(t, body, `benchplot_http_requests_total{path="/api/figure",status="400"} 1`)
	assert.Contains(t, body, "benchplot_http_request_duration_seconds_bucket")
}

func TestNewRejectsEmptyReport(t *testing.T) {
	_, err := New(report.ReportData{}, Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, report.ErrNoRuns)
}

func TestServeStopsOnCancel(t *testing.T) {
	s, err := New(testReport(), Options{})
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	url := "http://" + ln.Addr().String() + "/healthz"
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
