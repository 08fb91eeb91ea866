// internal/cli/show_config.go
package benchplot

import (
	"github.com/mwiater/benchplot/internal/appconfig"
	"github.com/spf13/cobra"
)

// showConfigCmd prints the merged configuration.
var showConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show config settings",
	Long:  `Show config settings ensuring that the JSON config, .env and BENCHPLOT_* variables are loaded properly and overridden by flags accordingly.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := getConfig()
		appconfig.ShowConfig(cmd.OutOrStdout(), cfg.ConfigPath, cfg, appconfig.Default())
	},
}

func init() {
	showCmd.AddCommand(showConfigCmd)
}
