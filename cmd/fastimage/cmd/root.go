// Package cmd implements the CLI commands for fastimage.
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fastimage/go-fastimage/engine"
)

// cfgFile holds the config file path from the CLI flag.
var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "fastimage",
	Short: "Native image decoding, transformation, and encoding",
	Long: `fastimage inspects and converts images without external tooling.

It decodes PNG, JPEG, GIF, WebP, BMP, ICO, and TIFF, applies geometry and
color transforms, and re-encodes into any supported format.`,
}

// Execute runs the root command with all subcommands attached.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("executing root command: %w", err)
	}
	return nil
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentPreRunE = func(_ *cobra.Command, _ []string) error {
		return initLogging()
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.fastimage.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "text", "log format (text, json)")
	rootCmd.PersistentFlags().Int64("max-pixels", 0, "largest decoded pixel area accepted, 0 for the built-in default")
	rootCmd.PersistentFlags().Int64("max-file-bytes", 0, "largest input file accepted, 0 for unlimited")

	mustBindPFlag("limits.max_pixels", "max-pixels")
	mustBindPFlag("limits.max_file_bytes", "max-file-bytes")
}

// initConfig reads the config file and environment variables.
func initConfig() {
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "text")
	viper.SetDefault("limits.max_pixels", int64(0))
	viper.SetDefault("limits.max_file_bytes", int64(0))

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".fastimage")
	}

	viper.SetEnvPrefix("FASTIMAGE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		slog.Debug("using config file", "path", viper.ConfigFileUsed())
	}
}

// initLogging configures the default slog logger. CLI flags win over env
// vars and config values, but only when explicitly set; viper's flag layer
// would otherwise let flag defaults shadow the environment.
func initLogging() error {
	level := viper.GetString("logging.level")
	format := viper.GetString("logging.format")

	if rootCmd.PersistentFlags().Changed("log-level") {
		level, _ = rootCmd.PersistentFlags().GetString("log-level")
	}
	if rootCmd.PersistentFlags().Changed("log-format") {
		format, _ = rootCmd.PersistentFlags().GetString("log-format")
	}

	var slogLevel slog.Level
	switch strings.ToLower(level) {
	case "debug":
		slogLevel = slog.LevelDebug
	case "", "info":
		slogLevel = slog.LevelInfo
	case "warn", "warning":
		slogLevel = slog.LevelWarn
	case "error":
		slogLevel = slog.LevelError
	default:
		return errors.Errorf("unknown log level %q", level)
	}

	opts := &slog.HandlerOptions{Level: slogLevel}
	var handler slog.Handler
	switch strings.ToLower(format) {
	case "", "text":
		handler = slog.NewTextHandler(os.Stderr, opts)
	case "json":
		handler = slog.NewJSONHandler(os.Stderr, opts)
	default:
		return errors.Errorf("unknown log format %q", format)
	}

	slog.SetDefault(slog.New(handler))
	return nil
}

// newEngine builds an engine bounded by the configured limits.
func newEngine() *engine.Engine {
	return engine.New(engine.Options{
		MaxPixels:    viper.GetInt64("limits.max_pixels"),
		MaxFileBytes: viper.GetInt64("limits.max_file_bytes"),
	})
}

// codeErr converts a non-success engine code into an error for cobra.
func codeErr(subject string, c engine.Code) error {
	if c == engine.Success {
		return nil
	}
	return errors.Errorf("%s: %s", subject, c)
}

// mustBindPFlag binds a viper key to a persistent root flag and panics if
// the flag does not exist.
func mustBindPFlag(key, flag string) {
	if err := viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
		panic(fmt.Sprintf("failed to bind flag %q to key %q: %v", flag, key, err))
	}
}
