// internal/cli/export.go
package benchplot

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/mwiater/benchplot/internal/appconfig"
	"github.com/mwiater/benchplot/internal/logging"
	"github.com/mwiater/benchplot/internal/plot"
	"github.com/mwiater/benchplot/internal/render"
	"github.com/spf13/cobra"
)

// exportCmd groups the non-HTML outputs.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export report data as CSV or a static image",
}

var exportCSVCmd = &cobra.Command{
	Use:   "csv <report>",
	Short: "Write the samples of one run as CSV",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		run, _ := cmd.Flags().GetInt("run")
		output, _ := cmd.Flags().GetString("output")
		format, _ := cmd.Flags().GetString("format")
		return runExportCSV(cmd.OutOrStdout(), cmd.InOrStdin(), getConfig(), args[0], format, run, output)
	},
}

var exportImageCmd = &cobra.Command{
	Use:   "image <report>",
	Short: "Save one plot as a PNG, SVG, PDF or JPEG image",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		plotValue, _ := cmd.Flags().GetString("plot")
		output, _ := cmd.Flags().GetString("output")
		format, _ := cmd.Flags().GetString("format")
		return runExportImage(cmd.OutOrStdout(), cmd.InOrStdin(), getConfig(), args[0], format, plotValue, output)
	},
}

func runExportCSV(out io.Writer, in io.Reader, cfg *appconfig.Config, path, format string, run int, output string) error {
	data, err := loadReport(in, cfg, path, format)
	if err != nil {
		return err
	}
	if output == "" || output == "-" {
		return render.CSV(out, data, run)
	}

	var buf bytes.Buffer
	if err := render.CSV(&buf, data, run); err != nil {
		return err
	}
	if err := render.WriteFile(output, buf.Bytes()); err != nil {
		return err
	}
	fmt.Fprintf(out, "CSV written to %s\n", output)
	return nil
}

func runExportImage(out io.Writer, in io.Reader, cfg *appconfig.Config, path, format, plotValue, output string) error {
	if output == "" {
		return errors.New("--output is required for image export")
	}
	data, err := loadReport(in, cfg, path, format)
	if err != nil {
		return err
	}
	sel, err := plot.ParseSelection(plotValue)
	if err != nil {
		return err
	}
	fig, err := plot.Choose(data, sel)
	if err != nil {
		return err
	}
	if err := render.Image(output, data, sel); err != nil {
		return err
	}
	logging.LogRender("image", sel.String(), len(fig.Data), output)
	fmt.Fprintf(out, "Image written to %s\n", output)
	return nil
}

func init() {
	exportCSVCmd.Flags().Int("run", 0, "run index to export")
	exportCSVCmd.Flags().StringP("output", "o", "-", "output path (\"-\" for stdout)")
	exportImageCmd.Flags().String("plot", plot.SummaryValue, "plot to save: summary or a run index")
	exportImageCmd.Flags().StringP("output", "o", "", "image path; the extension picks the format")

	exportCmd.AddCommand(exportCSVCmd)
	exportCmd.AddCommand(exportImageCmd)
	rootCmd.AddCommand(exportCmd)
}
