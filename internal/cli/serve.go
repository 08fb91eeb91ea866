// internal/cli/serve.go
package benchplot

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/mwiater/benchplot/internal/appconfig"
	"github.com/mwiater/benchplot/internal/logging"
	"github.com/mwiater/benchplot/internal/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// listenAndServe is swapped out in tests.
var listenAndServe = func(ctx context.Context, s *server.Server, addr string) error {
	return s.ListenAndServe(ctx, addr)
}

// serveCmd publishes a report over HTTP until interrupted.
var serveCmd = &cobra.Command{
	Use:   "serve <report>",
	Short: "Serve the interactive report, figure API and metrics over HTTP",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		format, _ := cmd.Flags().GetString("format")
		return runServe(ctx, cmd.OutOrStdout(), cmd.InOrStdin(), getConfig(), args[0], format)
	},
}

func runServe(ctx context.Context, out io.Writer, in io.Reader, cfg *appconfig.Config, path, format string) error {
	data, err := loadReport(in, cfg, path, format)
	if err != nil {
		return err
	}
	srv, err := server.New(data, server.Options{PlotlyURL: cfg.PlotlyScript()})
	if err != nil {
		return err
	}
	addr := cfg.Addr()
	fmt.Fprintf(out, "Serving %s on http://%s\n", path, addr)
	logging.LogEvent("serve: report=%s runs=%d addr=%s", path, len(data.Runs), addr)
	return listenAndServe(ctx, srv, addr)
}

func init() {
	serveCmd.Flags().String("host", "", "listen host")
	serveCmd.Flags().Int("port", 0, "listen port")
	_ = viper.BindPFlag("server.host", serveCmd.Flags().Lookup("host"))
	_ = viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))
	rootCmd.AddCommand(serveCmd)
}
