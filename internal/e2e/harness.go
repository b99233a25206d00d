// Package e2e provides testing infrastructure for end-to-end CLI tests.
// It includes a harness for running CLI commands against an isolated
// template/project pair, fixture management and assertion helpers.
package e2e

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/lwidev/lda/internal/cli"
)

// Result contains the outcome of running a CLI command.
type Result struct {
	// Stdout contains the captured standard output.
	Stdout string
	// Stderr contains the captured standard error (hints and warnings).
	Stderr string
	// Err is the error returned by the CLI command, if any.
	Err error
	// ExitCode is the inferred exit code (0 for success, 1 for error).
	ExitCode int
}

// Success returns true if the command completed without error.
func (r *Result) Success() bool {
	return r.Err == nil
}

// Harness provides a test harness for running E2E CLI tests.
// It lays out a workspace with the template next to the project, the way
// lda expects to find it by default, and isolates the tool configuration.
type Harness struct {
	t       *testing.T
	homeDir string
	rootDir string
	env     map[string]string
}

// NewHarness creates a new E2E test harness.
func NewHarness(t *testing.T) *Harness {
	t.Helper()

	h := &Harness{
		t:       t,
		homeDir: t.TempDir(),
		rootDir: t.TempDir(),
		env:     make(map[string]string),
	}

	h.SetEnv("LDA_HOME", h.homeDir)
	h.SetEnv("LDA_TEMPLATE_PATH", "")
	h.SetEnv("LDA_TEMPLATE_REPO", "")
	h.SetEnv("LDA_BACKUP_DIR", "")
	h.SetEnv("LDA_SYNC_POLICY", "")
	h.SetEnv("GITHUB_TOKEN", "")

	return h
}

// SetEnv sets an environment variable for CLI commands run through this harness.
// The environment will be restored after the test completes.
func (h *Harness) SetEnv(key, value string) {
	h.t.Helper()
	h.env[key] = value
	h.t.Setenv(key, value)
}

// HomeDir returns the isolated configuration directory for this harness.
func (h *Harness) HomeDir() string {
	return h.homeDir
}

// ProjectDir returns the project directory, <root>/app.
func (h *Harness) ProjectDir() string {
	return filepath.Join(h.rootDir, "app")
}

// TemplateDir returns the sibling template directory, <root>/AdminTemplate.
func (h *Harness) TemplateDir() string {
	return filepath.Join(h.rootDir, "AdminTemplate")
}

// Run executes a CLI command with the given arguments and captures the output.
func (h *Harness) Run(args ...string) *Result {
	h.t.Helper()
	return h.run(nil, args)
}

// RunWithStdin executes a CLI command with stdin input and captures output.
// This is useful for testing commands that prompt the user.
func (h *Harness) RunWithStdin(stdin string, args ...string) *Result {
	h.t.Helper()
	return h.run(&stdin, args)
}

// RunSync runs `lda sync` against the harness project with extra flags.
func (h *Harness) RunSync(flags ...string) *Result {
	h.t.Helper()
	args := append([]string{"sync", "--project", h.ProjectDir()}, flags...)
	return h.run(nil, args)
}

func (h *Harness) run(stdin *string, args []string) *Result {
	h.t.Helper()

	// Prepend "lda" as the program name if not provided
	if len(args) == 0 || args[0] != "lda" {
		args = append([]string{"lda"}, args...)
	}

	if stdin != nil {
		oldStdin := os.Stdin
		stdinR, stdinW, err := os.Pipe()
		if err != nil {
			h.t.Fatalf("failed to create stdin pipe: %v", err)
		}
		go func() {
			defer func() {
				_ = stdinW.Close()
			}()
			_, _ = stdinW.WriteString(*stdin)
		}()
		os.Stdin = stdinR
		defer func() {
			os.Stdin = oldStdin
			_ = stdinR.Close()
		}()
	}

	stdout, restoreStdout := h.capture(&os.Stdout)
	stderr, restoreStderr := h.capture(&os.Stderr)

	cmdErr := cli.Run(context.Background(), args)

	restoreStdout()
	restoreStderr()

	exitCode := 0
	if cmdErr != nil {
		exitCode = 1
	}

	return &Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Err:      cmdErr,
		ExitCode: exitCode,
	}
}

// capture redirects *target into a buffer. The buffer is complete once the
// returned restore function has run. Output is read concurrently so commands
// writing more than the pipe buffer never block.
func (h *Harness) capture(target **os.File) (*bytes.Buffer, func()) {
	h.t.Helper()

	old := *target
	r, w, err := os.Pipe()
	if err != nil {
		h.t.Fatalf("failed to create pipe: %v", err)
	}
	*target = w

	var buf bytes.Buffer
	var copyErr error
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, copyErr = io.Copy(&buf, r)
	}()

	return &buf, func() {
		if err := w.Close(); err != nil {
			h.t.Fatalf("failed to close pipe writer: %v", err)
		}
		*target = old
		<-done
		if copyErr != nil {
			h.t.Fatalf("failed to read captured output: %v", copyErr)
		}
	}
}

// UnsetEnv removes an environment variable for the duration of the test.
func (h *Harness) UnsetEnv(key string) {
	h.t.Helper()
	h.t.Setenv(key, "")
	delete(h.env, key)
	if err := os.Unsetenv(key); err != nil {
		h.t.Fatalf("failed to unset %s: %v", key, err)
	}
}
