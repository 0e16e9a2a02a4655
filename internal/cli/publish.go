// internal/cli/publish.go
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gandikediye-afk/gandi-command-center/internal/publish"
)

var (
	publishDir    string
	publishRemote string
	publishBranch string
)

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Publish the repository to its remote",
	Long: `Point origin at the configured remote and push the branch upstream.
A failed authentication enables the platform credential helper and retries
the push once.

Example:
  gandictl publish --remote https://github.com/gandikediye-afk/gandi-command-center.git`,
	RunE: runPublishCmd,
}

func initPublishCmd() {
	publishCmd.Flags().StringVarP(&publishDir, "dir", "d", ".", "Repository directory")
	publishCmd.Flags().StringVarP(&publishRemote, "remote", "r", "", "Remote URL (overrides config)")
	publishCmd.Flags().StringVarP(&publishBranch, "branch", "b", "", "Branch to push (overrides config)")
}

func runPublishCmd(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}

	if publishRemote != "" {
		cfg.Publish.Remote = publishRemote
	}
	if publishBranch != "" {
		cfg.Publish.Branch = publishBranch
	}

	dir := publishDir
	if dir == "." {
		if wd, err := os.Getwd(); err == nil {
			dir = wd
		}
	}

	if err := publish.New(cfg.Publish, log).Publish(context.Background(), dir); err != nil {
		return fmt.Errorf("publish repository: %w", err)
	}

	fmt.Printf("Published %s to %s (%s)\n", dir, cfg.Publish.Remote, cfg.Publish.Branch)
	return nil
}
