// internal/cli/figure.go
package benchplot

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/k0kubun/pp"
	"github.com/mwiater/benchplot/internal/appconfig"
	"github.com/mwiater/benchplot/internal/logging"
	"github.com/mwiater/benchplot/internal/plot"
	"github.com/spf13/cobra"
)

// figureCmd prints the Plotly figure for one chooser value.
var figureCmd = &cobra.Command{
	Use:   "figure <report>",
	Short: "Print the Plotly figure JSON for one plot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		plotValue, _ := cmd.Flags().GetString("plot")
		pretty, _ := cmd.Flags().GetBool("pretty")
		format, _ := cmd.Flags().GetString("format")
		return runFigure(cmd.OutOrStdout(), cmd.InOrStdin(), getConfig(), args[0], format, plotValue, pretty)
	},
}

func runFigure(out io.Writer, in io.Reader, cfg *appconfig.Config, path, format, plotValue string, pretty bool) error {
	data, err := loadReport(in, cfg, path, format)
	if err != nil {
		return err
	}
	fig, err := plot.ChooseValue(data, plotValue)
	if err != nil {
		return err
	}
	logging.LogRender(fig.View.String(), plotValue, len(fig.Data), nil)

	if pretty {
		_, err := pp.Fprintln(out, fig)
		return err
	}
	encoded, err := json.MarshalIndent(fig, "", "  ")
	if err != nil {
		return fmt.Errorf("encode figure: %w", err)
	}
	_, err = fmt.Fprintln(out, string(encoded))
	return err
}

func init() {
	figureCmd.Flags().String("plot", plot.SummaryValue, "plot to print: summary or a run index")
	figureCmd.Flags().Bool("pretty", false, "pretty-print the Go value instead of JSON")
	rootCmd.AddCommand(figureCmd)
}
