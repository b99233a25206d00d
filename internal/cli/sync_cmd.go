package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/lwidev/lda/internal/git"
	"github.com/lwidev/lda/internal/logging"
	"github.com/lwidev/lda/internal/progress"
	"github.com/lwidev/lda/internal/sync"
	"github.com/lwidev/lda/internal/template"
	"github.com/lwidev/lda/internal/ui"
	"github.com/lwidev/lda/internal/ui/tui"
)

// countedConfirmer is a confirmer that shows a record counter.
type countedConfirmer interface {
	sync.Confirmer
	SetTotal(n int)
}

func syncCommand() *cli.Command {
	return &cli.Command{
		Name:      "sync",
		Usage:     "Update shared files from the template",
		UsageText: "lda sync [options]",
		Description: `Compare the template with the current project and update the files
   that differ. Which paths are compared comes from the "sync" section of
   .ldarc (include/exclude lists); without one the built-in defaults apply.

   The template is read from ../AdminTemplate when it exists, otherwise it is
   cloned from GitHub using GITHUB_TOKEN (also read from .env / .env.local).
   Files are backed up to .backup/lda-sync/<YYYYMMDD>/ before being replaced.

   Examples:
     lda sync              # ask before each file
     lda sync --dry        # list files that differ
     lda sync --force      # update everything`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "force",
				Aliases: []string{"f"},
				Usage:   "Update every differing file without asking",
			},
			&cli.BoolFlag{
				Name:    "dry",
				Aliases: []string{"dry-run", "d"},
				Usage:   "Only list files that differ",
			},
			&cli.BoolFlag{
				Name:    "silent",
				Aliases: []string{"s"},
				Usage:   "Like --force, without printing the configuration",
			},
			&cli.BoolFlag{
				Name:  "no-tui",
				Usage: "Ask with plain line prompts instead of the interactive view",
			},
			projectFlag(),
		},
		Action: runSync,
	}
}

func runSync(ctx context.Context, cmd *cli.Command) error {
	ws, err := loadWorkspace(cmd)
	if err != nil {
		return err
	}

	fallback, err := sync.ParsePolicy(ws.cfg.Sync.DefaultPolicy)
	if err != nil {
		logging.Warn("ignoring sync.default_policy", logging.Err(err))
		fallback = sync.PolicyInteractive
	}
	policy := sync.SelectPolicy(cmd.Bool("force"), cmd.Bool("silent"), fallback)
	dryRun := cmd.Bool("dry")

	var confirmer countedConfirmer
	if policy.Prompts() && !dryRun {
		confirmer = newConfirmer(cmd.Bool("no-tui") || !ws.cfg.Sync.TUI)
	}

	var bar *progress.Bar
	opts := sync.RunOptions{
		ProjectRoot: ws.projectRoot,
		Policy:      policy,
		DryRun:      dryRun,
		OnStart: func(r *sync.Report) {
			for _, w := range r.Warnings {
				fmt.Fprintln(os.Stderr, ui.StatusWarning(w))
			}
			if policy == sync.PolicySilent {
				return
			}
			fmt.Println(renderBanner(ws, r, policy, dryRun))
			if r.Source.Kind == template.KindRemote {
				fmt.Println(ui.Info("Downloading template..."))
			}
		},
		OnCollected: func(r *sync.Report) {
			if confirmer != nil {
				confirmer.SetTotal(len(r.Drift))
			}
			if !dryRun && !policy.Prompts() && len(r.Drift) > 0 {
				bar = progress.Simple(int64(len(r.Drift)), "Syncing")
			}
		},
		Progress: func(ev sync.ProgressEvent) {
			if bar != nil {
				bar.Describe(ev.Record.RelativePath)
				_ = bar.Add(1)
			}
		},
	}
	if confirmer != nil {
		opts.Confirmer = confirmer
	}

	engine := sync.NewEngine(template.NewLocator(ws.env), git.NewShellClient(), ws.cfg.Backup.Directory)
	report, runErr := engine.Run(ctx, opts)

	if bar != nil {
		if runErr != nil {
			_ = bar.Clear()
		} else {
			_ = bar.Finish()
		}
	}

	if report != nil && (runErr == nil || report.Outcome != nil) {
		printReport(ws, report)
	}

	if runErr != nil {
		var syncErr *sync.Error
		if errors.As(runErr, &syncErr) {
			for _, hint := range syncErr.Hints {
				fmt.Fprintln(os.Stderr, ui.Bullet(hint))
			}
		}
		return runErr
	}
	return nil
}

// newConfirmer picks the full-screen prompt on terminals unless disabled.
func newConfirmer(noTUI bool) countedConfirmer {
	interactive := term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
	if interactive && !noTUI {
		return tui.NewSyncConfirmer(0, nil, nil)
	}
	return NewLineConfirmer(os.Stdin, os.Stdout)
}

func renderBanner(ws *workspace, r *sync.Report, policy sync.Policy, dryRun bool) string {
	var b strings.Builder

	switch r.Source.Kind {
	case template.KindLocal:
		fmt.Fprintf(&b, "Template: %s (%s)\n", r.Source.Root, r.Source.Kind)
	default:
		ref := r.Source.Ref
		if ref == "" {
			ref = "default branch"
		}
		fmt.Fprintf(&b, "Template: %s @ %s (%s)\n", r.Source.Repository, ref, r.Source.Kind)
	}
	fmt.Fprintf(&b, "Project:  %s\n", ws.projectRoot)

	mode := ui.Title(policy.String())
	if dryRun {
		mode = "Dry run"
	}
	fmt.Fprintf(&b, "Mode:     %s\n", mode)

	b.WriteString("\nInclude:\n")
	writeList(&b, r.Patterns.Include)
	b.WriteString("Exclude:\n")
	writeList(&b, r.Patterns.Exclude)

	return ui.Note("lda sync", strings.TrimRight(b.String(), "\n"))
}

func writeList(b *strings.Builder, items []string) {
	if len(items) == 0 {
		b.WriteString("  (none)\n")
		return
	}
	for _, item := range items {
		fmt.Fprintf(b, "  - %s\n", item)
	}
}

func printReport(ws *workspace, r *sync.Report) {
	if r.Outcome == nil {
		switch {
		case r.UpToDate():
			fmt.Println(ui.StatusSuccess("Project is up to date with the template"))
		case r.DryRun:
			fmt.Printf("%s\n", ui.Bold(fmt.Sprintf("%d file(s) differ from the template:", len(r.Drift))))
			for _, rec := range r.Drift {
				label := rec.RelativePath
				if rec.Missing {
					label += ui.Dim(" (new)")
				}
				fmt.Println(ui.Bullet(label))
			}
			fmt.Println(ui.Dim("Dry run - no changes made"))
		}
		return
	}

	o := r.Outcome
	for _, f := range o.Files {
		switch f.Action {
		case sync.ActionUpdated:
			fmt.Println(ui.StatusSuccess(f.Record.RelativePath))
		case sync.ActionIgnored:
			fmt.Println(ui.StatusSkipped(f.Record.RelativePath))
		case sync.ActionFailed:
			fmt.Println(ui.StatusError(fmt.Sprintf("%s: %v", f.Record.RelativePath, f.Err)))
		}
	}

	fmt.Println()
	fmt.Println(ui.Bold("Sync summary"))
	fmt.Print(o.Summary())
	switch {
	case o.BackupDir != "":
		fmt.Printf("Backup saved to %s\n", ws.relToProject(o.BackupDir))
	case o.Updated > 0:
		fmt.Println(ui.Dim("No existing files were overwritten, nothing backed up"))
	}
}
