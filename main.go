package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/toasty/internal/commands"
	"github.com/colonyops/toasty/internal/core/config"
	"github.com/colonyops/toasty/internal/core/styles"
	"github.com/colonyops/toasty/pkg/logutils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, init() populates
	// these from runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	// When installed via `go install module@version`, ldflags aren't set
	// so version remains "dev". Fall back to runtime/debug.BuildInfo which
	// Go populates automatically with the module version and VCS metadata.
	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

func main() {
	ctx := context.Background()

	var logCloser func()

	flags := &commands.Flags{}

	app := &cli.Command{
		Name:      "toasty",
		Usage:     "Toast notifications for terminal apps",
		UsageText: "toasty [global options] command [command options]",
		Description: `Toasty manages short-lived notifications: a bounded store with FIFO
eviction, tick-driven auto-dismiss, tracked promises and six screen anchors.

Run 'toasty' with no arguments to open the interactive playground.
Run 'toasty play -f script.json' to replay a scripted sequence of toasts.`,
		Version: build(),
		Flags:   commands.GlobalFlags(flags),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			logger, closer, err := logutils.New(flags.LogLevel, flags.LogFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger
			logCloser = closer

			// Commands that need a valid config check flags.ConfigErr.
			cfg, err := config.Load(flags.ConfigPath)
			if err != nil {
				log.Warn().Err(err).Str("path", flags.ConfigPath).Msg("config not loaded, using defaults")
				defaults := config.DefaultConfig()
				cfg = &defaults
				flags.ConfigErr = err
			}
			flags.Config = cfg

			// Apply configured theme (validation ensures name is valid)
			palette, ok := styles.GetPalette(cfg.TUI.Theme)
			if !ok {
				palette, _ = styles.GetPalette(styles.DefaultTheme)
			}
			styles.SetTheme(palette)

			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	app = commands.Mount(app, flags)

	exitCode := 0
	runErr := app.Run(ctx, os.Args)
	if runErr != nil {
		fmt.Println()
		fmt.Println(runErr.Error())
		exitCode = 1
	}

	os.Exit(exitCode)
}
