// internal/launcher/launcher.go
package launcher

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"syscall"
	"time"

	"github.com/gandikediye-afk/gandi-command-center/internal/common/config"
	"github.com/gandikediye-afk/gandi-command-center/internal/common/errors"
	"github.com/gandikediye-afk/gandi-command-center/internal/common/logger"
)

// stopGracePeriod bounds how long a cancelled dashboard gets to exit on
// SIGTERM before it is killed.
const stopGracePeriod = 10 * time.Second

// Launcher starts the dashboard process from its project directory and
// blocks until it exits. Cancelling the context stops the child.
type Launcher struct {
	cfg config.LauncherConfig
	log logger.Logger

	stdout *os.File
	stderr *os.File
}

func New(cfg config.LauncherConfig, log logger.Logger) *Launcher {
	return &Launcher{
		cfg:    cfg,
		log:    log,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
}

// Run launches the dashboard and waits for it. The configured port is
// appended as the final argument so the command always binds predictably.
func (l *Launcher) Run(ctx context.Context) error {
	if l.cfg.Command == "" {
		return errors.NewLaunchFailedError(fmt.Errorf("launcher command not configured"))
	}

	port := l.cfg.Port
	if port == 0 {
		port = 8501
	}

	args := append([]string{}, l.cfg.Args...)
	args = append(args, fmt.Sprintf("--server.port=%d", port))

	cmd := exec.CommandContext(ctx, l.cfg.Command, args...)
	cmd.Dir = l.cfg.Dir
	cmd.Stdout = l.stdout
	cmd.Stderr = l.stderr
	cmd.Stdin = os.Stdin
	// Cancellation asks the dashboard to shut down cleanly before it is killed.
	cmd.Cancel = func() error {
		return cmd.Process.Signal(syscall.SIGTERM)
	}
	cmd.WaitDelay = stopGracePeriod

	l.log.Info("launching dashboard", map[string]interface{}{
		"command": l.cfg.Command,
		"dir":     l.cfg.Dir,
		"port":    port,
	})

	if err := cmd.Start(); err != nil {
		return errors.NewLaunchFailedError(err)
	}

	err := cmd.Wait()
	if err != nil {
		if ctx.Err() == context.Canceled {
			l.log.Info("dashboard stopped", nil)
			return nil
		}
		return errors.NewLaunchFailedError(err)
	}

	l.log.Info("dashboard exited", map[string]interface{}{
		"code": cmd.ProcessState.ExitCode(),
	})
	return nil
}
