// internal/cli/validate.go
package benchplot

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/mwiater/benchplot/internal/appconfig"
	"github.com/mwiater/benchplot/internal/report"
	"github.com/spf13/cobra"
)

var (
	passedResult  = color.New(color.FgGreen).SprintFunc()
	warningResult = color.New(color.FgYellow).SprintFunc()
	failedResult  = color.New(color.FgRed).SprintFunc()
)

// validateCmd checks reports against the schema and for run consistency.
var validateCmd = &cobra.Command{
	Use:   "validate <report>...",
	Short: "Check reports against the schema and for consistent runs",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		return runValidate(cmd.OutOrStdout(), cmd.InOrStdin(), getConfig(), args, format)
	},
}

// runValidate prints one line per report and one per issue. It fails when a
// report cannot be read, or when strict mode is on and issues were found.
func runValidate(out io.Writer, in io.Reader, cfg *appconfig.Config, paths []string, format string) error {
	failed := 0
	for _, path := range paths {
		raw, err := readReport(in, path, format)
		if err != nil {
			failed++
			fmt.Fprintf(out, "%s %s: %v\n", failedResult("FAIL"), path, err)
			continue
		}
		data, issues, err := prepareReport(cfg, raw)
		if err != nil {
			failed++
			fmt.Fprintf(out, "%s %s: %v\n", failedResult("FAIL"), path, err)
			continue
		}

		status := passedResult("OK")
		if len(issues) > 0 {
			status = warningResult("WARN")
			if cfg.Strict {
				status = failedResult("FAIL")
				failed++
			}
		}
		fmt.Fprintf(out, "%s %s: %d runs, %d benchmarks, units %s\n", status, path, len(data.Runs), benchmarkCount(data), data.Units)
		for _, issue := range issues {
			fmt.Fprintf(out, "    - %s\n", issue)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d reports failed validation", failed, len(paths))
	}
	return nil
}

func benchmarkCount(data report.ReportData) int {
	if len(data.Runs) == 0 {
		return 0
	}
	return len(data.Runs[0].Benchmarks)
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
