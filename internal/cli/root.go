// internal/cli/root.go
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gandikediye-afk/gandi-command-center/internal/common/config"
	"github.com/gandikediye-afk/gandi-command-center/internal/common/logger"
)

var rootCmd = &cobra.Command{
	Use:   "gandictl",
	Short: "Operate the GANDI command center",
	Long: `gandictl launches the command center dashboard, publishes the
repository to its remote, and inspects a running instance.`,
}

// Initialize adds all child commands to the root command.
func Initialize() {
	initLaunchCmd()
	initPublishCmd()
	initStatusCmd()

	rootCmd.AddCommand(launchCmd)
	rootCmd.AddCommand(publishCmd)
	rootCmd.AddCommand(statusCmd)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// loadConfig loads the layered configuration for a subcommand.
func loadConfig() (*config.Config, logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	return cfg, logger.NewStructured(cfg.Logging.Level, cfg.Logging.Format), nil
}
