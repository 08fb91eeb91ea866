package appconfig

import (
	"fmt"
	"io"
)

// ShowConfig prints the current configuration summary.
func ShowConfig(out io.Writer, file string, cfg *Config, fallback Config) {
	if file == "" {
		fmt.Fprintln(out, "No config file loaded (using defaults).")
	} else {
		fmt.Fprintf(out, "Config file: %s\n\n", file)
	}

	if cfg == nil {
		cfg = &fallback
	}

	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintf(out, "  Debug:        %v\n", cfg.Debug)
	fmt.Fprintf(out, "  Strict:       %v\n", cfg.Strict)
	fmt.Fprintf(out, "  Renderer:     %s\n", cfg.RendererName())
	fmt.Fprintf(out, "  Plotly URL:   %s\n", cfg.PlotlyScript())
	fmt.Fprintf(out, "  Output:       %s\n", cfg.OutputPath())
	fmt.Fprintf(out, "  Log File:     %s\n", cfg.LogFilePath())
	fmt.Fprintf(out, "  Server:       %s\n", cfg.Addr())
	if cfg.Title != "" {
		fmt.Fprintf(out, "  Title:        %s\n", cfg.Title)
	}
	if cfg.Units != "" {
		fmt.Fprintf(out, "  Units:        %s\n", cfg.Units)
	}
	if cfg.Param != "" {
		fmt.Fprintf(out, "  Param:        %s\n", cfg.Param)
	}
	if cfg.Logarithmic {
		fmt.Fprintf(out, "  Logarithmic:  %v\n", cfg.Logarithmic)
	}
}
