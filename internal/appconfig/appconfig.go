// internal/appconfig/appconfig.go
// Package appconfig manages loading and interpreting application configuration.
package appconfig

import (
	"fmt"
	"os"
	"strings"
)

const (
	// DefaultConfigPath is the default path to the application's configuration file.
	DefaultConfigPath = "config/benchplot.json"
	// legacyConfigPath is checked when the default path does not exist.
	legacyConfigPath = "benchplot.json"
	// DefaultPlotlyURL is the Plotly bundle referenced by generated pages.
	DefaultPlotlyURL = "https://cdn.plot.ly/plotly-2.35.2.min.js"
	// DefaultOutputPath is where the HTML report lands when no path is given.
	DefaultOutputPath = "reports/benchmark-report.html"
	defaultRenderer   = "plotly"
	defaultHost       = "127.0.0.1"
	defaultPort       = 8080
)

// Config represents the top-level application configuration.
type Config struct {
	Title       string `json:"title,omitempty"`
	Units       string `json:"units,omitempty"`
	Param       string `json:"param,omitempty"`
	Logarithmic bool   `json:"logarithmic"`
	Renderer    string `json:"renderer,omitempty"`
	PlotlyURL   string `json:"plotlyURL,omitempty"`
	Output      string `json:"output,omitempty"`
	Strict      bool   `json:"strict"`
	Debug       bool   `json:"debug"`
	LogFile     string `json:"logFile,omitempty"`
	Server      Server `json:"server"`
	ConfigPath  string `json:"-"`
}

// Server holds the listen address for the serve command.
type Server struct {
	Host string `json:"host,omitempty"`
	Port int    `json:"port,omitempty"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Renderer:  defaultRenderer,
		PlotlyURL: DefaultPlotlyURL,
		Output:    DefaultOutputPath,
		Server:    Server{Host: defaultHost, Port: defaultPort},
	}
}

// RendererName returns the configured HTML backend, "plotly" or "echarts".
func (c Config) RendererName() string {
	if r := strings.ToLower(strings.TrimSpace(c.Renderer)); r != "" {
		return r
	}
	return defaultRenderer
}

// PlotlyScript returns the Plotly script URL, applying the default if not set.
func (c Config) PlotlyScript() string {
	if u := strings.TrimSpace(c.PlotlyURL); u != "" {
		return u
	}
	return DefaultPlotlyURL
}

// OutputPath returns the HTML output path, applying the default if not set.
func (c Config) OutputPath() string {
	if p := strings.TrimSpace(c.Output); p != "" {
		return p
	}
	return DefaultOutputPath
}

// LogFilePath returns the path to the application log file, applying a default if not set.
func (c Config) LogFilePath() string {
	if path := c.LogFile; strings.TrimSpace(path) != "" {
		return path
	}
	return "benchplot.log"
}

// Addr returns host:port for the HTTP server.
func (c Config) Addr() string {
	host := strings.TrimSpace(c.Server.Host)
	if host == "" {
		host = defaultHost
	}
	port := c.Server.Port
	if port <= 0 {
		port = defaultPort
	}
	return fmt.Sprintf("%s:%d", host, port)
}

// Validate rejects settings the commands cannot act on.
func (c Config) Validate() error {
	switch c.RendererName() {
	case "plotly", "echarts":
	default:
		return fmt.Errorf("unknown renderer %q (want plotly or echarts)", c.Renderer)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server port %d out of range", c.Server.Port)
	}
	return nil
}

// IsDefaultPath reports whether path names the default config location, whose
// absence means "use defaults" rather than an error.
func IsDefaultPath(path string) bool {
	return path == "" || path == DefaultConfigPath
}

// ResolvePath returns the config file to read for path: the legacy location
// stands in for the default one when only the legacy file exists.
func ResolvePath(path string) string {
	if path == "" {
		path = DefaultConfigPath
	}
	if path != DefaultConfigPath {
		return path
	}
	if _, err := os.Stat(path); err == nil {
		return path
	}
	if _, err := os.Stat(legacyConfigPath); err == nil {
		return legacyConfigPath
	}
	return path
}
