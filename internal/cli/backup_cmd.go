package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/lwidev/lda/internal/backup"
	"github.com/lwidev/lda/internal/ui"
)

func backupCommand() *cli.Command {
	return &cli.Command{
		Name:  "backup",
		Usage: "Manage sync backups",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List dated backup snapshots",
				Flags:  []cli.Flag{projectFlag()},
				Action: runBackupList,
			},
			{
				Name:      "restore",
				Usage:     "Copy the files of a snapshot back into the project",
				ArgsUsage: "<YYYYMMDD>",
				Flags: []cli.Flag{
					projectFlag(),
					&cli.BoolFlag{
						Name:    "dry-run",
						Aliases: []string{"d"},
						Usage:   "List the files that would be restored",
					},
				},
				Action: runBackupRestore,
			},
			{
				Name:  "clean",
				Usage: "Remove old snapshots according to the retention settings",
				Flags: []cli.Flag{
					projectFlag(),
					&cli.BoolFlag{
						Name:    "dry-run",
						Aliases: []string{"d"},
						Usage:   "List the snapshots that would be removed",
					},
				},
				Action: runBackupClean,
			},
		},
		Action: runBackupList,
	}
}

func snapshotsDir(ws *workspace) string {
	return backup.SnapshotsDir(ws.projectRoot, ws.cfg.Backup.Directory)
}

func runBackupList(_ context.Context, cmd *cli.Command) error {
	ws, err := loadWorkspace(cmd)
	if err != nil {
		return err
	}

	dir := snapshotsDir(ws)
	snapshots, err := backup.ListSnapshots(dir)
	if err != nil {
		return err
	}
	if len(snapshots) == 0 {
		fmt.Println("No backups found in " + ws.relToProject(dir))
		return nil
	}

	fmt.Printf("%s %s\n", ui.Bold("Backups"), ui.Dim("("+ws.relToProject(dir)+")"))
	for _, s := range snapshots {
		fmt.Printf("  %s  %s  %3d file(s)  %s\n", s.Name, s.Date.Format("2006-01-02"), s.Files, formatSize(s.Size))
	}

	stats, err := backup.GetStats(dir)
	if err != nil {
		return err
	}
	fmt.Printf("\nTotal: %d snapshot(s), %d file(s), %s\n", stats.TotalSnapshots, stats.TotalFiles, formatSize(stats.TotalSize))
	return nil
}

func runBackupRestore(_ context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 1 {
		return errors.New("restore requires exactly 1 argument: <YYYYMMDD>")
	}

	ws, err := loadWorkspace(cmd)
	if err != nil {
		return err
	}

	snap, err := backup.FindSnapshot(snapshotsDir(ws), cmd.Args().First())
	if err != nil {
		return err
	}

	dryRun := cmd.Bool("dry-run")
	files, err := backup.Restore(snap, ws.projectRoot, dryRun)
	for _, f := range files {
		fmt.Println(ui.Bullet(f))
	}
	if err != nil {
		return err
	}

	if dryRun {
		fmt.Printf("Dry run - %d file(s) would be restored from %s\n", len(files), snap.Name)
		return nil
	}
	fmt.Println(ui.StatusSuccess(fmt.Sprintf("Restored %d file(s) from %s", len(files), snap.Name)))
	return nil
}

func runBackupClean(_ context.Context, cmd *cli.Command) error {
	ws, err := loadWorkspace(cmd)
	if err != nil {
		return err
	}

	opts := backup.DefaultCleanupOptions()
	opts.MaxSnapshots = ws.cfg.Backup.MaxSnapshots
	opts.MaxAge = time.Duration(ws.cfg.Backup.RetentionDays) * 24 * time.Hour
	opts.DryRun = cmd.Bool("dry-run")

	removed, err := backup.CleanupSnapshots(snapshotsDir(ws), opts)
	if err != nil {
		return err
	}
	if len(removed) == 0 {
		fmt.Println("Nothing to clean")
		return nil
	}

	for _, s := range removed {
		fmt.Println(ui.Bullet(s.Name))
	}
	if opts.DryRun {
		fmt.Printf("Dry run - %d snapshot(s) would be removed\n", len(removed))
		return nil
	}
	fmt.Println(ui.StatusSuccess(fmt.Sprintf("Removed %d snapshot(s)", len(removed))))
	return nil
}

func formatSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
