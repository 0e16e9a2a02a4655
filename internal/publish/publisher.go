// internal/publish/publisher.go
package publish

import (
	"context"
	"os/exec"
	"strings"

	"github.com/gandikediye-afk/gandi-command-center/internal/common/config"
	"github.com/gandikediye-afk/gandi-command-center/internal/common/errors"
	"github.com/gandikediye-afk/gandi-command-center/internal/common/logger"
)

// GitRunner executes one git command in a repository directory and returns
// its combined output.
type GitRunner interface {
	Run(ctx context.Context, dir string, args ...string) (string, error)
}

// execRunner shells out to the git binary.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, dir string, args ...string) (string, error) {
	fullArgs := append([]string{"-C", dir}, args...)
	cmd := exec.CommandContext(ctx, "git", fullArgs...)
	output, err := cmd.CombinedOutput()
	return strings.TrimSpace(string(output)), err
}

// Publisher pushes the repository to its remote, wiring the origin URL and
// recovering once from credential failures.
type Publisher struct {
	git GitRunner
	cfg config.PublishConfig
	log logger.Logger
}

func New(cfg config.PublishConfig, log logger.Logger) *Publisher {
	return &Publisher{git: execRunner{}, cfg: cfg, log: log}
}

// NewWithRunner is used by tests and callers that already wrap git.
func NewWithRunner(git GitRunner, cfg config.PublishConfig, log logger.Logger) *Publisher {
	return &Publisher{git: git, cfg: cfg, log: log}
}

// Publish verifies dir is a git work tree, points origin at the configured
// remote, and pushes the branch upstream. An authentication failure enables
// the platform credential helper and retries the push once.
func (p *Publisher) Publish(ctx context.Context, dir string) error {
	if _, err := p.git.Run(ctx, dir, "rev-parse", "--is-inside-work-tree"); err != nil {
		return errors.NewGitNotARepositoryError(dir)
	}

	if err := p.ensureOrigin(ctx, dir); err != nil {
		return err
	}

	branch := p.cfg.Branch
	if branch == "" {
		branch = "main"
	}

	p.log.Info("pushing repository", map[string]interface{}{
		"dir":    dir,
		"remote": p.cfg.Remote,
		"branch": branch,
	})

	output, err := p.git.Run(ctx, dir, "push", "-u", "origin", branch)
	if err == nil {
		p.log.Info("repository published", map[string]interface{}{
			"branch": branch,
		})
		return nil
	}

	if !isAuthFailure(output) {
		return errors.NewGitPushFailedError(output)
	}

	p.log.Warn("push rejected, enabling credential helper", map[string]interface{}{
		"helper": p.cfg.CredentialHelper,
	})
	if _, helperErr := p.git.Run(ctx, dir, "config", "--global", "credential.helper", p.cfg.CredentialHelper); helperErr != nil {
		return errors.NewGitAuthFailedError(output)
	}

	retryOutput, retryErr := p.git.Run(ctx, dir, "push", "-u", "origin", branch)
	if retryErr != nil {
		if isAuthFailure(retryOutput) {
			return errors.NewGitAuthFailedError(retryOutput)
		}
		return errors.NewGitPushFailedError(retryOutput)
	}

	p.log.Info("repository published after credential retry", map[string]interface{}{
		"branch": branch,
	})
	return nil
}

// ensureOrigin adds or rewrites the origin remote to the configured URL.
func (p *Publisher) ensureOrigin(ctx context.Context, dir string) error {
	if p.cfg.Remote == "" {
		return errors.NewGitPushFailedError("remote URL not configured")
	}

	current, err := p.git.Run(ctx, dir, "remote", "get-url", "origin")
	if err != nil {
		if _, addErr := p.git.Run(ctx, dir, "remote", "add", "origin", p.cfg.Remote); addErr != nil {
			return errors.NewGitPushFailedError("cannot add origin remote")
		}
		return nil
	}

	if current != p.cfg.Remote {
		if _, setErr := p.git.Run(ctx, dir, "remote", "set-url", "origin", p.cfg.Remote); setErr != nil {
			return errors.NewGitPushFailedError("cannot update origin remote")
		}
	}
	return nil
}

var authFailureMarkers = []string{
	"authentication failed",
	"could not read username",
	"permission denied",
	"invalid credentials",
	"403",
}

func isAuthFailure(output string) bool {
	lowered := strings.ToLower(output)
	for _, marker := range authFailureMarkers {
		if strings.Contains(lowered, marker) {
			return true
		}
	}
	return false
}
