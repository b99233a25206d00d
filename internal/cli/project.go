package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/lwidev/lda/internal/config"
	"github.com/lwidev/lda/internal/logging"
	"github.com/lwidev/lda/internal/template"
)

// projectFlag selects the project directory; it defaults to the working directory.
func projectFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "project",
		Aliases: []string{"p"},
		Usage:   "Project directory (default: current directory)",
	}
}

// workspace is the per-invocation state shared by commands.
type workspace struct {
	cfg         *config.Config
	projectRoot string
	env         template.Environment
}

// loadWorkspace resolves the project root, loads .env files from it, reads
// the tool config and resolves the template environment.
func loadWorkspace(cmd *cli.Command) (*workspace, error) {
	root := cmd.String("project")
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		root = wd
	}
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project directory: %w", err)
	}

	if err := template.LoadDotEnv(root); err != nil {
		logging.Warn("ignoring .env files", logging.Err(err))
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", config.FilePath(), err)
	}

	return &workspace{
		cfg:         cfg,
		projectRoot: root,
		env:         template.EnvironmentFromConfig(cfg.Template, root),
	}, nil
}

// relToProject shows path relative to the project root when possible.
func (w *workspace) relToProject(path string) string {
	rel, err := filepath.Rel(w.projectRoot, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}
