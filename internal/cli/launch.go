// internal/cli/launch.go
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gandikediye-afk/gandi-command-center/internal/launcher"
)

var launchPort int

var launchCmd = &cobra.Command{
	Use:   "launch",
	Short: "Launch the command center dashboard",
	Long: `Launch the dashboard process from its project directory and block
until it exits. Ctrl+C stops the dashboard cleanly.

Example:
  gandictl launch --port 8501`,
	RunE: runLaunchCmd,
}

func initLaunchCmd() {
	launchCmd.Flags().IntVarP(&launchPort, "port", "p", 0, "Dashboard port (overrides config)")
}

func runLaunchCmd(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}

	if launchPort != 0 {
		cfg.Launcher.Port = launchPort
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := launcher.New(cfg.Launcher, log).Run(ctx); err != nil {
		return fmt.Errorf("launch dashboard: %w", err)
	}
	return nil
}
