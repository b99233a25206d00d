// Package cli provides the command-line interface for lda.
package cli

import (
	"context"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/lwidev/lda/internal/config"
	"github.com/lwidev/lda/internal/logging"
	"github.com/lwidev/lda/internal/ui"
)

var (
	// Version is the current version of the application.
	Version = "dev"
	// Commit is the git commit hash.
	Commit = "unknown"
	// BuildDate is the date and time of the build.
	BuildDate = "unknown"
)

// Run executes the CLI application with the given context and arguments.
func Run(ctx context.Context, args []string) error {
	app := &cli.Command{
		Name:    "lda",
		Usage:   "Keep a project in sync with the AdminTemplate",
		Version: Version,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable verbose output (info level logging)",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug output (debug level logging, implies verbose)",
			},
			&cli.BoolFlag{
				Name:  "log-json",
				Usage: "Write logs as JSON",
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "Disable colored output",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			if err := configureLogging(cmd); err != nil {
				return ctx, err
			}
			configureColors(cmd)
			return logging.NewContext(ctx, logging.Default()), nil
		},
		// Errors, including usage errors, are returned to main for reporting.
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
		Commands: []*cli.Command{
			syncCommand(),
			doctorCommand(),
			configCommand(),
			backupCommand(),
			versionCommand(),
		},
	}
	return app.Run(ctx, args)
}

// configureColors sets up color output from the --no-color flag or the
// output.color setting.
func configureColors(cmd *cli.Command) {
	if cmd.Bool("no-color") {
		ui.DisableColors()
		return
	}

	cfg, err := config.Load()
	if err != nil {
		logging.Debug("config not loaded for color setup", logging.Err(err))
		return
	}
	if err := ui.ApplyColorMode(cfg.Output.Color); err != nil {
		logging.Warn("ignoring output.color", logging.Err(err))
	}
}

// configureLogging sets up the logging level based on CLI flags.
func configureLogging(cmd *cli.Command) error {
	opts := logging.DefaultOptions()

	if cmd.Bool("debug") {
		opts.Level = slog.LevelDebug
		opts.AddSource = true
	} else if cmd.Bool("verbose") {
		opts.Level = slog.LevelInfo
	}
	opts.JSON = cmd.Bool("log-json")

	logger := logging.New(opts)
	logging.SetDefault(logger)

	logging.Debug("logging configured", slog.String("level", opts.Level.String()))

	return nil
}
