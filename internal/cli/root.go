// internal/cli/root.go
package benchplot

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mwiater/benchplot/internal/appconfig"
	"github.com/mwiater/benchplot/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile       string
	currentConfig *appconfig.Config
)

var rootCmd = &cobra.Command{
	Use:          "benchplot",
	Short:        "benchplot: interactive charts for benchmark reports",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// 1) Load config (file or defaults)
		used, err := ensureConfigLoaded()
		if err != nil {
			return err
		}

		// 2) Materialize flags > env > config > defaults into currentConfig.
		var cfg appconfig.Config
		if err := viper.Unmarshal(&cfg); err != nil {
			return fmt.Errorf("unmarshal config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		cfg.ConfigPath = used
		currentConfig = &cfg

		// 3) Start logging once the log file setting is final.
		if err := logging.Init(cfg.LogFilePath()); err != nil {
			return fmt.Errorf("logging: %w", err)
		}

		if cfg.Debug {
			logging.LogEvent("config loaded: file=%q renderer=%s strict=%v", cfg.ConfigPath, cfg.RendererName(), cfg.Strict)
		}
		return nil
	},
}

// Execute runs the root command. Cobra has already printed the error.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", appconfig.DefaultConfigPath, "config file (e.g., config/benchplot.json)")

	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().Bool("strict", false, "reject reports whose runs disagree")
	rootCmd.PersistentFlags().String("title", "", "override the report title")
	rootCmd.PersistentFlags().String("units", "", "override the time units")
	rootCmd.PersistentFlags().String("param", "", "override the run parameter used for the summary x axis")
	rootCmd.PersistentFlags().Bool("logarithmic", false, "use logarithmic summary axes")
	rootCmd.PersistentFlags().String("format", "", "report format when reading stdin or an unusual extension (json|yaml)")

	for _, name := range []string{"debug", "strict", "title", "units", "param", "logarithmic"} {
		_ = viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name))
	}
}

func initConfig() {
	// A missing .env is the common case.
	_ = godotenv.Load()

	viper.SetEnvPrefix("BENCHPLOT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetConfigFile(appconfig.ResolvePath(cfgFile))
}

// ensureConfigLoaded reads the config and registers every key with its
// default so env variables and Unmarshal see them. It returns the file that
// was read, or "" when the default file is absent. A missing file named with
// --config is an error.
func ensureConfigLoaded() (string, error) {
	def := appconfig.Default()
	viper.SetDefault("title", def.Title)
	viper.SetDefault("units", def.Units)
	viper.SetDefault("param", def.Param)
	viper.SetDefault("logarithmic", def.Logarithmic)
	viper.SetDefault("renderer", def.Renderer)
	viper.SetDefault("plotlyURL", def.PlotlyURL)
	viper.SetDefault("output", def.Output)
	viper.SetDefault("strict", def.Strict)
	viper.SetDefault("debug", def.Debug)
	viper.SetDefault("logFile", def.LogFilePath())
	viper.SetDefault("server.host", def.Server.Host)
	viper.SetDefault("server.port", def.Server.Port)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
			if appconfig.IsDefaultPath(cfgFile) {
				// No file: fine, we'll use defaults/flags
				return "", nil
			}
			return "", fmt.Errorf("config file %q not found: %w", cfgFile, fs.ErrNotExist)
		}
		return "", fmt.Errorf("failed to load config: %w", err)
	}
	return viper.ConfigFileUsed(), nil
}

// getConfig returns the merged configuration, or the defaults when commands
// run without the root pre-run (tests).
func getConfig() *appconfig.Config {
	if currentConfig == nil {
		cfg := appconfig.Default()
		return &cfg
	}
	return currentConfig
}
