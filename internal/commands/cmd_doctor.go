package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/toasty/internal/core/doctor"
	"github.com/colonyops/toasty/internal/core/styles"
	"github.com/colonyops/toasty/pkg/iojson"
)

type DoctorCmd struct {
	flags  *Flags
	format string
}

func NewDoctorCmd(flags *Flags) *DoctorCmd {
	return &DoctorCmd{flags: flags}
}

func (cmd *DoctorCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "doctor",
		Usage:       "Run health checks on your toasty setup",
		UsageText:   "toasty doctor [options]",
		Description: "Checks the config file, terminal, log destination and runs the store through eviction and expiration.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "format",
				Usage:       "output format (text, json)",
				Value:       formatText,
				Destination: &cmd.format,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *DoctorCmd) checks() []doctor.Check {
	cfg := cmd.flags.Config
	checks := []doctor.Check{
		doctor.NewConfigCheck(cmd.flags.ConfigPath),
		doctor.NewLogFileCheck(cmd.flags.LogFile),
	}
	if cfg != nil {
		checks = append(checks,
			doctor.NewTerminalCheck(cfg.TUI.Width),
			doctor.NewStoreCheck(cfg.StoreConfig()),
		)
	}
	return checks
}

func (cmd *DoctorCmd) run(ctx context.Context, c *cli.Command) error {
	results := doctor.RunAll(ctx, cmd.checks())

	var err error
	switch cmd.format {
	case formatJSON:
		err = outputDoctorJSON(c.Root().Writer, c.Root().ErrWriter, results)
	case formatText:
		outputDoctorText(c.Root().Writer, results)
	default:
		return fmt.Errorf("unknown format %q (available: %s, %s)", cmd.format, formatText, formatJSON)
	}
	if err != nil {
		return err
	}

	if _, _, failed := doctor.Summary(results); failed > 0 {
		return cli.Exit("", 1)
	}
	return nil
}

type summaryJSON struct {
	Passed int `json:"passed"`
	Warned int `json:"warned"`
	Failed int `json:"failed"`
}

func outputDoctorJSON(w, ew io.Writer, results []doctor.Result) error {
	passed, warned, failed := doctor.Summary(results)

	out := struct {
		Healthy bool            `json:"healthy"`
		Summary summaryJSON     `json:"summary"`
		Checks  []doctor.Result `json:"checks"`
	}{
		Healthy: failed == 0,
		Summary: summaryJSON{Passed: passed, Warned: warned, Failed: failed},
		Checks:  results,
	}

	return iojson.WriteWith(w, ew, out)
}

func outputDoctorText(w io.Writer, results []doctor.Result) {
	divider := styles.DividerStyle.Render(strings.Repeat("─", 40))

	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, styles.CommandHeaderStyle.Render("Toasty Doctor"))
	_, _ = fmt.Fprintln(w, divider)
	_, _ = fmt.Fprintln(w)

	for _, result := range results {
		_, _ = fmt.Fprintln(w, styles.TitleStyle.Render(result.Name))

		for _, item := range result.Items {
			var detail string
			if item.Detail != "" {
				detail = " " + styles.MutedTextStyle.Render(item.Detail)
			}

			var icon string
			switch item.Status {
			case doctor.StatusPass:
				icon = styles.SuccessTextStyle.Render("✔")
			case doctor.StatusWarn:
				icon = styles.WarningTextStyle.Render("●")
			case doctor.StatusFail:
				icon = styles.ErrorTextStyle.Render("✘")
			}

			_, _ = fmt.Fprintf(w, "  %s %s%s\n", icon, item.Label, detail)
		}

		_, _ = fmt.Fprintln(w)
	}

	passed, warned, failed := doctor.Summary(results)
	_, _ = fmt.Fprintf(w, "%s  %s  %s\n",
		styles.SuccessTextStyle.Render(fmt.Sprintf("%d passed", passed)),
		styles.WarningTextStyle.Render(fmt.Sprintf("%d warnings", warned)),
		styles.ErrorTextStyle.Render(fmt.Sprintf("%d failed", failed)),
	)
}
