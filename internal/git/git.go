// Package git fetches the upstream template by shelling out to the git binary.
package git

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/lwidev/lda/internal/logging"
)

// tokenEnv carries the access token to the credential helper so it never
// appears in argv or in the clone URL.
const tokenEnv = "LDA_GIT_TOKEN"

// ErrGitNotFound is returned when no git executable is on PATH.
var ErrGitNotFound = errors.New("git executable not found in PATH")

// CloneOptions describes a shallow clone.
type CloneOptions struct {
	// URL is the repository to clone
	URL string
	// Ref is an optional branch or tag; empty clones the remote default branch
	Ref string
	// Dest is the checkout directory; it must be absent or empty
	Dest string
	// Token authenticates HTTPS remotes; ignored for other schemes
	Token string
}

// Client fetches template repositories.
type Client interface {
	// ShallowClone clones opts.URL at depth 1 into opts.Dest and returns the
	// checked out commit hash.
	ShallowClone(ctx context.Context, opts CloneOptions) (string, error)
}

// ShellClient implements Client by shelling out to the git command
type ShellClient struct {
	binary string
}

// NewShellClient creates a new git client that uses the git command
func NewShellClient() *ShellClient {
	return &ShellClient{binary: "git"}
}

// Available reports whether the git binary can be found.
func (c *ShellClient) Available() error {
	if _, err := exec.LookPath(c.binary); err != nil {
		return ErrGitNotFound
	}
	return nil
}

// ShallowClone runs `git clone --depth 1 [--branch ref] url dest`.
func (c *ShellClient) ShallowClone(ctx context.Context, opts CloneOptions) (string, error) {
	if opts.URL == "" {
		return "", errors.New("clone URL is required")
	}
	if opts.Dest == "" {
		return "", errors.New("clone destination is required")
	}
	if err := c.Available(); err != nil {
		return "", err
	}

	log := logging.With(slog.String("component", "git"))
	log.Debug("cloning template", slog.String("url", opts.URL), slog.String("ref", opts.Ref))

	args := []string{c.binary, "clone", "--depth", "1", "--quiet"}
	if opts.Ref != "" {
		args = append(args, "--branch", opts.Ref)
	}
	args = append(args, opts.URL, opts.Dest)

	// #nosec G204 - arguments are passed without a shell
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	c.configureAuth(cmd, opts.URL, opts.Token)

	if err := c.runCommand(cmd); err != nil {
		return "", fmt.Errorf("git clone failed: %w", err)
	}

	// #nosec G204 - arguments are passed without a shell
	rev := exec.CommandContext(ctx, c.binary, "-C", opts.Dest, "rev-parse", "HEAD")
	output, err := rev.Output()
	if err != nil {
		return "", fmt.Errorf("git rev-parse failed: %w", err)
	}

	commit := strings.TrimSpace(string(output))
	log.Debug("template cloned", logging.Path(opts.Dest), slog.String("commit", commit))
	return commit, nil
}

// configureAuth disables interactive prompts and, for HTTPS remotes with a
// token, installs a one-shot credential helper reading the token from the
// environment.
func (c *ShellClient) configureAuth(cmd *exec.Cmd, url, token string) {
	if cmd.Env == nil {
		cmd.Env = os.Environ()
	}
	cmd.Env = append(cmd.Env, "GIT_TERMINAL_PROMPT=0")

	if token == "" || !strings.HasPrefix(url, "https://") {
		return
	}

	cmd.Env = append(cmd.Env, tokenEnv+"="+token)
	cmd.Args = insertGitFlags(cmd.Args,
		"-c", `credential.helper=!f() { echo "username=x-access-token"; echo "password=$`+tokenEnv+`"; }; f`,
	)
}

// insertGitFlags inserts flags immediately after the "git" command name,
// before the subcommand.
func insertGitFlags(args []string, flags ...string) []string {
	if len(args) == 0 {
		return flags
	}
	result := make([]string, 0, len(args)+len(flags))
	result = append(result, args[0])
	result = append(result, flags...)
	result = append(result, args[1:]...)
	return result
}

// runCommand executes a command and returns an error with its output on failure
func (c *ShellClient) runCommand(cmd *exec.Cmd) error {
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}
