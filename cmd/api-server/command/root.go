package command

// root.go defines the root command of the bazzangee API binary.

import (
	"fmt"
	"log/slog"
	"os"

	"bazzangee/internal/config"
	"bazzangee/internal/logging"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "api-server",
	Short: "bazzangee review API",
	Long: `api-server runs the bazzangee review API and manages its database schema.

Configuration comes from environment variables (and an optional .env file).
Use "api-server [command] --help" for details on each command.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and runs it.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadRuntime loads and validates configuration and installs the logger.
func loadRuntime() (*config.Config, *slog.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("could not load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	logger := logging.New(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)
	return cfg, logger, nil
}
