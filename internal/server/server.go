// Package server publishes a benchmark report over HTTP: the interactive
// page, the figures as JSON, and Prometheus metrics.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/mwiater/benchplot/internal/plot"
	"github.com/mwiater/benchplot/internal/render"
	"github.com/mwiater/benchplot/internal/report"
)

// Options configures the served page.
type Options struct {
	PlotlyURL string
}

// ErrResp is the body of every failed API call.
type ErrResp struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// Server serves one report. The report is read-only after New.
type Server struct {
	data    report.ReportData
	opts    Options
	metrics *Metrics
	page    string
}

// New renders the page once and prepares the handlers.
func New(data report.ReportData, opts Options) (*Server, error) {
	page, err := render.HTML(data, render.HTMLOptions{PlotlyURL: opts.PlotlyURL})
	if err != nil {
		return nil, fmt.Errorf("render page: %w", err)
	}
	return &Server{
		data:    data,
		opts:    opts,
		metrics: NewMetrics(),
		page:    page,
	}, nil
}

// Metrics exposes the collectors, mostly for tests.
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// Handler returns the routed mux.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	route := func(pattern, path string, h http.HandlerFunc) {
		mux.Handle(pattern, s.metrics.Middleware(path, h))
	}
	route("GET /{$}", "/", s.handleIndex)
	route("GET /api/report", "/api/report", s.handleReport)
	route("GET /api/options", "/api/options", s.handleOptions)
	route("GET /api/figure", "/api/figure", s.handleFigure)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.Handle("GET /metrics", s.metrics.Handler())
	return mux
}

// ListenAndServe blocks until ctx is cancelled or the listener fails.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("listening on %s", ln.Addr())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		log.Printf("shutting down %s", ln.Addr())
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		<-errCh
		return nil
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(s.page))
}

func (s *Server) handleReport(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.data)
}

func (s *Server) handleOptions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, plot.Options(s.data))
}

func (s *Server) handleFigure(w http.ResponseWriter, r *http.Request) {
	value := r.URL.Query().Get("plot")
	if value == "" {
		value = plot.SummaryValue
	}
	fig, err := plot.ChooseValue(s.data, value)
	if err != nil {
		log.Printf("figure request %q: %v", value, err)
		writeJSON(w, http.StatusBadRequest, ErrResp{OK: false, Error: err.Error()})
		return
	}
	s.metrics.RecordRender(fig.View.String())
	writeJSON(w, http.StatusOK, fig)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	_ = enc.Encode(v)
}
