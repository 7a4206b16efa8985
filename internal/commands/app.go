package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// GlobalFlags returns the root flags bound to flags.
func GlobalFlags(flags *Flags) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error, fatal, panic)",
			Sources:     cli.EnvVars("TOASTY_LOG_LEVEL"),
			Value:       "info",
			Destination: &flags.LogLevel,
		},
		&cli.StringFlag{
			Name:        "log-file",
			Usage:       "path to log file, '-' logs to stderr",
			Sources:     cli.EnvVars("TOASTY_LOG_FILE"),
			Value:       DefaultLogFile(),
			Destination: &flags.LogFile,
		},
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "path to config file",
			Sources:     cli.EnvVars("TOASTY_CONFIG"),
			Value:       DefaultConfigPath(),
			Destination: &flags.ConfigPath,
		},
		&cli.IntFlag{
			Name:        "profiler-port",
			Usage:       "serve pprof and /debug/toasts on this port while the TUI is open (0 disables)",
			Sources:     cli.EnvVars("TOASTY_PROFILER_PORT"),
			Destination: &flags.ProfilerPort,
		},
	}
}

// Mount registers every subcommand on app and makes the demo playground the
// default action.
func Mount(app *cli.Command, flags *Flags) *cli.Command {
	demoCmd := NewDemoCmd(flags)

	app = demoCmd.Register(app)
	app = NewComposeCmd(flags).Register(app)
	app = NewPlayCmd(flags).Register(app)
	app = NewConfigCmd(flags).Register(app)
	app = NewDoctorCmd(flags).Register(app)

	app.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return fmt.Errorf("unknown command %q. Run 'toasty --help' for usage", c.Args().First())
		}
		return demoCmd.Run(ctx, c)
	}

	return app
}
