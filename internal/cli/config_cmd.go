package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/lwidev/lda/internal/config"
	"github.com/lwidev/lda/internal/ui"
	"github.com/lwidev/lda/internal/util"
)

func configCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Show or create configuration",
		Commands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Display the effective configuration and sync patterns",
				Flags:  []cli.Flag{projectFlag()},
				Action: runConfigShow,
			},
			{
				Name:  "init",
				Usage: "Write a .ldarc with the default sync patterns",
				Flags: []cli.Flag{
					projectFlag(),
					&cli.BoolFlag{
						Name:  "global",
						Usage: "Write the default tool configuration instead",
					},
				},
				Action: runConfigInit,
			},
		},
		Action: runConfigShow,
	}
}

func runConfigShow(_ context.Context, cmd *cli.Command) error {
	ws, err := loadWorkspace(cmd)
	if err != nil {
		return err
	}

	out, err := ws.cfg.YAML()
	if err != nil {
		return fmt.Errorf("failed to render config: %w", err)
	}

	source := "defaults"
	if config.Exists() {
		source = config.FilePath()
	}
	fmt.Printf("%s %s\n\n", ui.Bold("Tool configuration:"), ui.Dim("("+source+")"))
	fmt.Println(strings.TrimRight(out, "\n"))

	patterns, err := config.LoadPatterns(ws.projectRoot)
	origin := util.ProjectConfigPath(ws.projectRoot)
	if err != nil {
		fmt.Fprintln(os.Stderr, ui.StatusWarning(err.Error()))
		origin = "defaults"
	} else if !util.Exists(origin) {
		origin = "defaults"
	}

	fmt.Printf("\n%s %s\n", ui.Bold("Sync patterns:"), ui.Dim("("+origin+")"))
	fmt.Println("include:")
	for _, p := range patterns.Include {
		fmt.Println(ui.Bullet(p))
	}
	fmt.Println("exclude:")
	for _, p := range patterns.Exclude {
		fmt.Println(ui.Bullet(p))
	}
	return nil
}

func runConfigInit(_ context.Context, cmd *cli.Command) error {
	if cmd.Bool("global") {
		if config.Exists() {
			return fmt.Errorf("%s already exists", config.FilePath())
		}
		if err := config.Default().Save(); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
		fmt.Println(ui.StatusSuccess("Created " + config.FilePath()))
		return nil
	}

	ws, err := loadWorkspace(cmd)
	if err != nil {
		return err
	}
	if !util.IsProjectRoot(ws.projectRoot) {
		return errors.New(ws.projectRoot + " is not a project root (no src directory)")
	}

	path, err := config.WriteDefaultPatterns(ws.projectRoot)
	if err != nil {
		return err
	}
	fmt.Println(ui.StatusSuccess("Created " + ws.relToProject(path)))
	return nil
}
