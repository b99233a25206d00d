package sync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/lwidev/lda/internal/backup"
	"github.com/lwidev/lda/internal/config"
	"github.com/lwidev/lda/internal/git"
	"github.com/lwidev/lda/internal/logging"
	"github.com/lwidev/lda/internal/template"
	"github.com/lwidev/lda/internal/util"
)

// RunOptions configures a single Engine.Run.
type RunOptions struct {
	// ProjectRoot is the directory being synced. It must contain src/.
	ProjectRoot string

	// Policy selects prompting behavior (default: interactive).
	Policy Policy

	// DryRun reports drift without touching the project.
	DryRun bool

	// Confirmer is used for PolicyInteractive.
	Confirmer Confirmer

	// OnStart is called once the template source and patterns are known,
	// before any fetch or comparison.
	OnStart func(*Report)

	// OnCollected is called after drift collection, before any apply.
	OnCollected func(*Report)

	// Progress is forwarded to Apply.
	Progress ProgressFunc
}

// Report describes what a run found and did.
type Report struct {
	Source   template.Source
	Patterns config.PatternSet
	Drift    []DriftRecord
	DryRun   bool

	// Commit is the fetched revision for remote templates.
	Commit string

	// Outcome is nil unless records were applied.
	Outcome *Outcome

	// Warnings are non-fatal problems, such as a malformed .ldarc.
	Warnings []string
}

// UpToDate reports whether no drift was found.
func (r *Report) UpToDate() bool {
	return len(r.Drift) == 0
}

// DriftPaths returns the relative paths of all drift records.
func (r *Report) DriftPaths() []string {
	paths := make([]string, len(r.Drift))
	for i, rec := range r.Drift {
		paths[i] = rec.RelativePath
	}
	return paths
}

// Engine runs template synchronization for a project.
type Engine struct {
	locator   *template.Locator
	git       git.Client
	backupDir string
	now       func() time.Time
}

// NewEngine creates an engine. backupDir is relative to the project root.
func NewEngine(locator *template.Locator, client git.Client, backupDir string) *Engine {
	if backupDir == "" {
		backupDir = config.Default().Backup.Directory
	}
	return &Engine{
		locator:   locator,
		git:       client,
		backupDir: backupDir,
		now:       time.Now,
	}
}

// Run locates the template, loads patterns, collects drift and, unless this
// is a dry run, applies it. A remote template is cloned into a temporary
// directory that is removed before Run returns.
//
// The returned report is non-nil whenever the project and template
// preconditions passed, including when an error is returned.
func (e *Engine) Run(ctx context.Context, opts RunOptions) (*Report, error) {
	defer logging.Timer("sync")()
	log := logging.WithContext(ctx)

	if !util.IsProjectRoot(opts.ProjectRoot) {
		return nil, &Error{
			Kind: ErrKindNotProject,
			Err:  fmt.Errorf("%s has no src directory", opts.ProjectRoot),
			Hints: []string{
				"Run lda from the root of your project (the directory containing src/)",
				"Or pass --project <dir>",
			},
		}
	}

	source := e.locator.Locate()
	if !source.Available() {
		return nil, &Error{
			Kind:  ErrKindNoTemplate,
			Err:   errors.New("no local template and no access token"),
			Hints: e.locator.Diagnostic(),
		}
	}

	report := &Report{Source: source, DryRun: opts.DryRun}

	patterns, err := config.LoadPatterns(opts.ProjectRoot)
	if err != nil {
		log.Warn("using default sync patterns", logging.Err(err))
		report.Warnings = append(report.Warnings, fmt.Sprintf("%v; using default patterns", err))
	}
	report.Patterns = patterns

	log.Debug("sync configured",
		logging.Source(source.Kind.String()),
		logging.Template(source.Root),
		logging.Policy(string(opts.Policy)),
		slog.Bool("dry_run", opts.DryRun),
	)

	if opts.OnStart != nil {
		opts.OnStart(report)
	}

	if source.Kind == template.KindRemote {
		checkout, err := os.MkdirTemp("", "lda-template-*")
		if err != nil {
			return report, &Error{Kind: ErrKindFetch, Err: err}
		}
		defer func() {
			if err := os.RemoveAll(checkout); err != nil {
				log.Warn("failed to remove template checkout", logging.Path(checkout), logging.Err(err))
			}
		}()

		commit, err := e.git.ShallowClone(ctx, git.CloneOptions{
			URL:   source.Repository,
			Ref:   source.Ref,
			Dest:  checkout,
			Token: e.locator.Environment().Token,
		})
		if err != nil {
			return report, &Error{
				Kind: ErrKindFetch,
				Err:  err,
				Hints: []string{
					"Check that the token has read access to " + source.Repository,
					"Or place the template next to your project to skip the download",
				},
			}
		}
		report.Source.Root = checkout
		report.Commit = commit
		log.Debug("template fetched", logging.Template(checkout), slog.String("commit", commit))
	}

	report.Drift = Collect(report.Source.Root, opts.ProjectRoot, patterns)
	if opts.OnCollected != nil {
		opts.OnCollected(report)
	}

	if report.UpToDate() || opts.DryRun {
		return report, nil
	}

	manager := backup.NewManager(opts.ProjectRoot, backup.RootFor(opts.ProjectRoot, e.backupDir, e.now()))
	outcome, err := Apply(ctx, report.Drift, ApplyOptions{
		Policy:    opts.Policy,
		Confirmer: opts.Confirmer,
		Backups:   manager,
		Progress:  opts.Progress,
	})
	report.Outcome = &outcome

	if err != nil {
		return report, &Error{Kind: ErrKindAborted, Err: err}
	}
	if !outcome.Success() {
		return report, &Error{
			Kind: ErrKindApply,
			Err:  fmt.Errorf("%d of %d files failed", outcome.Failed, outcome.Processed()),
		}
	}

	log.Info("sync complete",
		slog.Int("updated", outcome.Updated),
		slog.Int("ignored", outcome.Ignored),
	)
	return report, nil
}
