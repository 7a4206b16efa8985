package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/toasty/internal/core/config"
	"github.com/colonyops/toasty/internal/core/notify"
	"github.com/colonyops/toasty/internal/core/styles"
	"github.com/colonyops/toasty/internal/core/toast"
	"github.com/colonyops/toasty/internal/core/validate"
	"github.com/colonyops/toasty/internal/tui"
)

type ComposeCmd struct {
	flags *Flags

	message  string
	title    string
	variant  string
	position string
	duration string
	noBar    bool
}

// NewComposeCmd creates a new compose command
func NewComposeCmd(flags *Flags) *ComposeCmd {
	return &ComposeCmd{flags: flags}
}

// Register adds the compose command to the application
func (cmd *ComposeCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "compose",
		Usage:     "Build a toast in a form and show it",
		UsageText: "toasty compose [options]",
		Description: `Prompts for the toast fields, then opens the playground with the toast shown.

When --message is given the form is skipped.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "message",
				Aliases:     []string{"m"},
				Usage:       "toast message (skips the form)",
				Destination: &cmd.message,
			},
			&cli.StringFlag{
				Name:        "title",
				Aliases:     []string{"t"},
				Usage:       "toast title",
				Destination: &cmd.title,
			},
			&cli.StringFlag{
				Name:        "variant",
				Usage:       "default, success, warning, error or info",
				Value:       string(toast.VariantDefault),
				Destination: &cmd.variant,
			},
			&cli.StringFlag{
				Name:        "position",
				Usage:       "anchor, e.g. top-right or bottom-center (defaults to config)",
				Destination: &cmd.position,
			},
			&cli.StringFlag{
				Name:        "duration",
				Usage:       "auto-dismiss delay, 0 keeps the toast (defaults to config)",
				Destination: &cmd.duration,
			},
			&cli.BoolFlag{
				Name:        "no-progress",
				Usage:       "hide the countdown bar",
				Destination: &cmd.noBar,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ComposeCmd) run(ctx context.Context, _ *cli.Command) error {
	cfg, err := cmd.flags.RequireConfig()
	if err != nil {
		return err
	}

	if cmd.message == "" {
		if err := cmd.runForm(cfg); err != nil {
			return err
		}
	}

	opts, err := cmd.options()
	if err != nil {
		return err
	}

	message := cmd.message
	return runProgram(ctx, cmd.flags, cfg, tui.Options{
		Title: "toasty compose",
		Job: func(context.Context) (string, error) {
			id := notify.Custom(message, opts...)
			return "composed " + id, nil
		},
	})
}

func (cmd *ComposeCmd) runForm(cfg *config.Config) error {
	if cmd.position == "" {
		cmd.position = cfg.Toasts.DefaultPosition
	}
	if cmd.duration == "" {
		cmd.duration = cfg.Toasts.DefaultDuration.String()
	}

	variants := make([]string, 0, len(toast.Variants()))
	for _, v := range toast.Variants() {
		variants = append(variants, string(v))
	}

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Message").
				Validate(validate.Message).
				Value(&cmd.message),
			huh.NewInput().
				Title("Title").
				Description("Optional heading").
				Value(&cmd.title),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Variant").
				Options(huh.NewOptions(variants...)...).
				Value(&cmd.variant),
			huh.NewSelect[string]().
				Title("Position").
				Options(huh.NewOptions(anchorNames(toast.Positions())...)...).
				Value(&cmd.position),
			huh.NewInput().
				Title("Duration").
				Description("Go duration such as 3s; 0 keeps the toast until dismissed").
				Validate(validate.Duration).
				Value(&cmd.duration),
		),
	).WithTheme(styles.FormTheme()).Run()

	return formError(err)
}

// formError maps a form result to the command result. Aborting the form is
// a clean exit.
func formError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, huh.ErrUserAborted) {
		return cli.Exit("", 0)
	}
	return fmt.Errorf("compose form: %w", err)
}

// options validates the collected fields and converts them to toast options.
func (cmd *ComposeCmd) options() ([]toast.Option, error) {
	if err := validate.Message(cmd.message); err != nil {
		return nil, err
	}

	var opts []toast.Option

	if cmd.variant != "" {
		v, ok := toast.ParseVariant(cmd.variant)
		if !ok {
			return nil, fmt.Errorf("unknown variant %q", cmd.variant)
		}
		opts = append(opts, toast.WithVariant(v))
	}

	if cmd.position != "" {
		p, ok := toast.ParsePosition(cmd.position)
		if !ok {
			return nil, fmt.Errorf("unknown position %q", cmd.position)
		}
		opts = append(opts, toast.WithPosition(p))
	}

	if strings.TrimSpace(cmd.duration) != "" {
		if err := validate.Duration(cmd.duration); err != nil {
			return nil, err
		}
		d, _ := time.ParseDuration(strings.TrimSpace(cmd.duration))
		opts = append(opts, toast.WithDuration(d))
	}

	if cmd.title != "" {
		opts = append(opts, toast.WithTitle(cmd.title))
	}
	if cmd.noBar {
		opts = append(opts, toast.WithProgressBar(false))
	}

	return opts, nil
}
