// internal/cli/render.go
package benchplot

import (
	"bytes"
	"fmt"
	"io"

	"github.com/mwiater/benchplot/internal/appconfig"
	"github.com/mwiater/benchplot/internal/logging"
	"github.com/mwiater/benchplot/internal/plot"
	"github.com/mwiater/benchplot/internal/render"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// renderCmd writes the interactive HTML report.
var renderCmd = &cobra.Command{
	Use:   "render <report>",
	Short: "Render a benchmark report to an interactive HTML page",
	Long: `Render reads a benchmark report (JSON or YAML, "-" for stdin) and writes an
HTML page with a plot chooser: the summary of every run, or the samples of
one run. The plotly renderer embeds every figure; the echarts renderer
writes a static page for the --plot selection.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		plotValue, _ := cmd.Flags().GetString("plot")
		format, _ := cmd.Flags().GetString("format")
		return runRender(cmd.OutOrStdout(), cmd.InOrStdin(), getConfig(), args[0], format, plotValue)
	},
}

func runRender(out io.Writer, in io.Reader, cfg *appconfig.Config, path, format, plotValue string) error {
	data, err := loadReport(in, cfg, path, format)
	if err != nil {
		return err
	}

	var page []byte
	switch cfg.RendererName() {
	case "echarts":
		value := plotValue
		if value == "" {
			value = plot.SummaryValue
		}
		sel, err := plot.ParseSelection(value)
		if err != nil {
			return err
		}
		var buf bytes.Buffer
		if err := render.ECharts(&buf, data, sel); err != nil {
			return fmt.Errorf("render echarts page: %w", err)
		}
		page = buf.Bytes()
	default:
		html, err := render.HTML(data, render.HTMLOptions{PlotlyURL: cfg.PlotlyScript(), Selected: plotValue})
		if err != nil {
			return fmt.Errorf("render plotly page: %w", err)
		}
		page = []byte(html)
	}
	logging.LogEvent("render: renderer=%s plot=%q runs=%d output=%s", cfg.RendererName(), plotValue, len(data.Runs), cfg.OutputPath())

	dest := cfg.OutputPath()
	if dest == "-" {
		_, err := out.Write(page)
		return err
	}
	if err := render.WriteFile(dest, page); err != nil {
		return err
	}
	fmt.Fprintf(out, "Report written to %s\n", dest)
	return nil
}

func init() {
	renderCmd.Flags().StringP("renderer", "r", "", "HTML backend: plotly or echarts")
	renderCmd.Flags().StringP("output", "o", "", "output path (\"-\" for stdout)")
	renderCmd.Flags().String("plot", "", "initially selected plot: summary or a run index")
	_ = viper.BindPFlag("renderer", renderCmd.Flags().Lookup("renderer"))
	_ = viper.BindPFlag("output", renderCmd.Flags().Lookup("output"))
	rootCmd.AddCommand(renderCmd)
}
