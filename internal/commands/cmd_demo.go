package commands

import (
	"context"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/toasty/internal/core/notify"
	"github.com/colonyops/toasty/internal/core/toast"
	"github.com/colonyops/toasty/internal/tui"
)

type DemoCmd struct {
	flags *Flags
}

// NewDemoCmd creates a new demo command
func NewDemoCmd(flags *Flags) *DemoCmd {
	return &DemoCmd{flags: flags}
}

// Register adds the demo command to the application
func (cmd *DemoCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "demo",
		Usage:     "Open the interactive toast playground",
		UsageText: "toasty demo",
		Description: `Opens a terminal UI where each key adds a toast at the next anchor.

Keys: s/e/w/i/n add success, error, warning, info and default toasts,
p runs a tracked promise, f runs one that fails, d dismisses the newest
toast, c clears all and q quits.`,
		Action: cmd.run,
	})

	return app
}

// Run executes the demo. Exported for use as default command.
func (cmd *DemoCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

func (cmd *DemoCmd) run(ctx context.Context, _ *cli.Command) error {
	cfg, err := cmd.flags.RequireConfig()
	if err != nil {
		return err
	}

	return runProgram(ctx, cmd.flags, cfg, tui.Options{
		Title: "toasty demo",
		Job:   welcome,
	})
}

func welcome(context.Context) (string, error) {
	notify.Info("Press s, e, w, i or n to add toasts. ? shows every key.",
		toast.WithTitle("Welcome"),
		toast.WithDuration(8*time.Second),
	)
	return "", nil
}
