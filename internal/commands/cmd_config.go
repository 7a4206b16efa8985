package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/colonyops/toasty/internal/core/config"
	"github.com/colonyops/toasty/internal/core/styles"
	"github.com/colonyops/toasty/pkg/iojson"
)

const (
	formatText = "text"
	formatYAML = "yaml"
	formatJSON = "json"
)

type ConfigCmd struct {
	flags  *Flags
	format string
}

func NewConfigCmd(flags *Flags) *ConfigCmd {
	return &ConfigCmd{flags: flags}
}

func (cmd *ConfigCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Inspect the configuration",
		Commands: []*cli.Command{
			{
				Name:      "show",
				Usage:     "Print the effective configuration",
				UsageText: "toasty config show [--format yaml|json]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "format",
						Usage:       "output format: yaml or json",
						Value:       formatYAML,
						Destination: &cmd.format,
					},
				},
				Action: cmd.runShow,
			},
			{
				Name:      "validate",
				Usage:     "Check the config file and report every problem",
				UsageText: "toasty config validate [--format text|json]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "format",
						Usage:       "output format: text or json",
						Value:       formatText,
						Destination: &cmd.format,
					},
				},
				Action: cmd.runValidate,
			},
		},
	})

	return app
}

func (cmd *ConfigCmd) runShow(_ context.Context, c *cli.Command) error {
	cfg, err := cmd.flags.RequireConfig()
	if err != nil {
		return err
	}
	return writeConfig(c.Root().Writer, c.Root().ErrWriter, cfg, cmd.format)
}

func writeConfig(w, ew io.Writer, cfg *config.Config, format string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	switch format {
	case formatYAML:
		_, err = w.Write(data)
		return err
	case formatJSON:
		// Round trip through a map so durations keep their string form.
		var m map[string]any
		if err := yaml.Unmarshal(data, &m); err != nil {
			return fmt.Errorf("convert config: %w", err)
		}
		return iojson.WriteWith(w, ew, m)
	default:
		return fmt.Errorf("unknown format %q (available: %s, %s)", format, formatYAML, formatJSON)
	}
}

// ValidationReport is the JSON form of config validate.
type ValidationReport struct {
	Path     string            `json:"path"`
	Valid    bool              `json:"valid"`
	Errors   []ValidationIssue `json:"errors"`
	Warnings []string          `json:"warnings"`
}

type ValidationIssue struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (cmd *ConfigCmd) runValidate(_ context.Context, c *cli.Command) error {
	report := validateConfigFile(cmd.flags.ConfigPath)

	w := c.Root().Writer
	switch cmd.format {
	case formatJSON:
		if err := iojson.WriteWith(w, c.Root().ErrWriter, report); err != nil {
			return err
		}
	case formatText:
		writeReport(w, report)
	default:
		return fmt.Errorf("unknown format %q (available: %s, %s)", cmd.format, formatText, formatJSON)
	}

	if !report.Valid {
		return cli.Exit("", 1)
	}
	return nil
}

func validateConfigFile(path string) ValidationReport {
	report := ValidationReport{
		Path:     path,
		Errors:   []ValidationIssue{},
		Warnings: []string{},
	}

	cfg, err := config.Load(path)
	if err != nil {
		var fieldErrs criterio.FieldErrors
		if errors.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				report.Errors = append(report.Errors, ValidationIssue{Field: fe.Field, Message: fe.Err.Error()})
			}
		} else {
			report.Errors = append(report.Errors, ValidationIssue{Message: err.Error()})
		}
		return report
	}

	report.Valid = true
	report.Warnings = append(report.Warnings, cfg.Warnings()...)
	return report
}

func writeReport(w io.Writer, report ValidationReport) {
	_, _ = fmt.Fprintln(w, styles.CommandHeaderStyle.Render("config: "+report.Path))

	for _, issue := range report.Errors {
		line := issue.Message
		if issue.Field != "" {
			line = issue.Field + ": " + line
		}
		_, _ = fmt.Fprintln(w, styles.ErrorTextStyle.Render("  error   "+line))
	}
	for _, warning := range report.Warnings {
		_, _ = fmt.Fprintln(w, styles.WarningTextStyle.Render("  warning "+warning))
	}

	if report.Valid {
		_, _ = fmt.Fprintln(w, "ok")
	}
}
