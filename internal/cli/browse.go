// internal/cli/browse.go
package benchplot

import (
	"errors"
	"io"

	"github.com/mwiater/benchplot/internal/appconfig"
	"github.com/mwiater/benchplot/internal/report"
	"github.com/mwiater/benchplot/internal/tui"
	"github.com/spf13/cobra"
)

// startBrowse is swapped out in tests.
var startBrowse = func(data report.ReportData, cfg *appconfig.Config) error {
	return tui.Browse(data, tui.Options{LogFile: cfg.LogFilePath()})
}

// browseCmd opens the terminal browser.
var browseCmd = &cobra.Command{
	Use:   "browse <report>",
	Short: "Browse a report's plots in the terminal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		return runBrowse(cmd.InOrStdin(), getConfig(), args[0], format)
	},
}

func runBrowse(in io.Reader, cfg *appconfig.Config, path, format string) error {
	if path == "-" {
		return errors.New("browse reads keys from stdin; pass a report file")
	}
	data, err := loadReport(in, cfg, path, format)
	if err != nil {
		return err
	}
	return startBrowse(data, cfg)
}

func init() {
	rootCmd.AddCommand(browseCmd)
}
