package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/lwidev/lda/internal/config"
	"github.com/lwidev/lda/internal/git"
	"github.com/lwidev/lda/internal/template"
	"github.com/lwidev/lda/internal/ui"
	"github.com/lwidev/lda/internal/util"
)

// errDoctorProblems is returned when doctor finds a blocking problem.
var errDoctorProblems = errors.New("doctor found problems")

func doctorCommand() *cli.Command {
	return &cli.Command{
		Name:  "doctor",
		Usage: "Check that lda can sync this project",
		Flags: []cli.Flag{projectFlag()},
		Action: func(_ context.Context, cmd *cli.Command) error {
			ws, err := loadWorkspace(cmd)
			if err != nil {
				return err
			}
			if problems := runDoctor(ws, git.NewShellClient()); problems > 0 {
				return fmt.Errorf("%w: %d", errDoctorProblems, problems)
			}
			return nil
		},
	}
}

// gitChecker reports whether git can be run.
type gitChecker interface {
	Available() error
}

// runDoctor prints one line per check and returns the number of blocking problems.
func runDoctor(ws *workspace, gc gitChecker) int {
	problems := 0

	fmt.Println(ui.Bold("Project"))
	if util.IsProjectRoot(ws.projectRoot) {
		fmt.Println(ui.StatusSuccess(ws.projectRoot))
	} else {
		fmt.Println(ui.StatusError(ws.projectRoot + " has no src directory"))
		problems++
	}

	patterns, err := config.LoadPatterns(ws.projectRoot)
	switch {
	case err != nil:
		fmt.Println(ui.StatusWarning(fmt.Sprintf("%v; default patterns apply", err)))
	case util.Exists(util.ProjectConfigPath(ws.projectRoot)):
		fmt.Println(ui.StatusSuccess(fmt.Sprintf(".ldarc: %d include, %d exclude", len(patterns.Include), len(patterns.Exclude))))
	default:
		fmt.Println(ui.StatusSkipped("no .ldarc; default patterns apply"))
	}
	for _, w := range patterns.Validate().Warnings {
		fmt.Println(ui.StatusWarning(w))
	}

	fmt.Println()
	fmt.Println(ui.Bold("Template"))
	locator := template.NewLocator(ws.env)
	source := locator.Locate()
	switch source.Kind {
	case template.KindLocal:
		fmt.Println(ui.StatusSuccess("local template at " + source.Root))
	case template.KindRemote:
		fmt.Println(ui.StatusSuccess("remote template " + source.Repository))
		if err := gc.Available(); err != nil {
			fmt.Println(ui.StatusError(err.Error()))
			problems++
		} else {
			fmt.Println(ui.StatusSuccess("git found"))
		}
	default:
		fmt.Println(ui.StatusError("no template available"))
		for _, hint := range locator.Diagnostic() {
			fmt.Println(ui.Bullet(hint))
		}
		problems++
	}

	tokenEnv := ws.env.TokenEnv
	if tokenEnv == "" {
		tokenEnv = "token"
	}
	if ws.env.Token != "" {
		fmt.Println(ui.StatusSuccess(tokenEnv + " is set"))
	} else {
		fmt.Println(ui.StatusSkipped(tokenEnv + " is not set"))
	}

	fmt.Println()
	fmt.Println(ui.Bold("Configuration"))
	if config.Exists() {
		fmt.Println(ui.StatusSuccess(config.FilePath()))
	} else {
		fmt.Println(ui.StatusSkipped(config.FilePath() + " (defaults)"))
	}

	return problems
}
