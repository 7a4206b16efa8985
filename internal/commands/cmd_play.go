package commands

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/toasty/internal/core/config"
	"github.com/colonyops/toasty/internal/core/script"
	"github.com/colonyops/toasty/internal/core/toast"
	"github.com/colonyops/toasty/internal/tui"
	"github.com/colonyops/toasty/pkg/iojson"
)

const defaultDrainWait = 10 * time.Second

type PlayCmd struct {
	flags    *Flags
	fr       *iojson.FileReader[script.Script]
	headless bool
	wait     time.Duration
}

func NewPlayCmd(flags *Flags) *PlayCmd {
	return &PlayCmd{
		flags: flags,
		fr:    &iojson.FileReader[script.Script]{},
	}
}

func (cmd *PlayCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "play",
		Usage: "Replay a JSON toast script",
		UsageText: `toasty play [options]

Read from stdin:
  echo '{"steps":[{"message":"Saved","variant":"success"}]}' | toasty play

Read from file:
  toasty play -f script.json --headless`,
		Description: `Plays a script of toasts through the notification bridge.

Plain steps are shown in order after their delay. Promise steps show a
loading toast and resolve it once their simulated work finishes; several
promises may run at once, bounded by max_concurrent.

With --headless no TUI is drawn. Every store change is printed as one line
and the command exits once every toast has expired, or clears the rest after
--wait.

Input JSON schema:
  {
    "name": "optional",
    "max_concurrent": 4,
    "steps": [
      {
        "message": "text",
        "title": "optional",
        "variant": "default|success|warning|error|info",
        "position": "top-right",
        "duration_ms": 3000,
        "delay_ms": 250,
        "dismissible": true,
        "progress_bar": true,
        "icon": "optional glyph",
        "promise": {"loading": "text", "success": "text", "error": "text", "work_ms": 1000, "fail": false}
      }
    ]
  }`,
		Flags: []cli.Flag{
			cmd.fr.Flag(),
			&cli.BoolFlag{
				Name:        "headless",
				Usage:       "print store events instead of drawing the TUI",
				Destination: &cmd.headless,
			},
			&cli.DurationFlag{
				Name:        "wait",
				Usage:       "headless only: how long to wait for toasts to expire before clearing them",
				Value:       defaultDrainWait,
				Destination: &cmd.wait,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *PlayCmd) run(ctx context.Context, c *cli.Command) error {
	cfg, err := cmd.flags.RequireConfig()
	if err != nil {
		return err
	}

	s, err := cmd.fr.Read()
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}
	if err := s.Validate(); err != nil {
		return fmt.Errorf("invalid script: %w", err)
	}

	if cmd.headless {
		_, err := cmd.playHeadless(ctx, c.Root().Writer, cfg, s)
		return err
	}

	return runProgram(ctx, cmd.flags, cfg, tui.Options{
		Title: playTitle(s),
		Job: func(ctx context.Context) (string, error) {
			res, err := script.Run(ctx, s)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("script done: %d shown, %d promises, %d failed", res.Shown, res.Promises, res.Failed), nil
		},
	})
}

// playHeadless runs s against a store with a background ticker and writes
// one line per store event to w.
func (cmd *PlayCmd) playHeadless(ctx context.Context, w io.Writer, cfg *config.Config, s script.Script) (script.Result, error) {
	store, unmount := mountStore(cfg, false)
	defer unmount()

	var mu sync.Mutex
	changed := make(chan struct{}, 1)

	unsubscribe := store.Subscribe(func(e toast.Event) {
		if line := formatEvent(e); line != "" {
			mu.Lock()
			_, _ = fmt.Fprintln(w, line)
			mu.Unlock()
		}
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	defer unsubscribe()

	res, err := script.Run(ctx, s)
	if err != nil {
		return res, err
	}

	if err := waitDrained(ctx, store, cmd.waitOrDefault(), changed); err != nil {
		return res, err
	}

	mu.Lock()
	_, _ = fmt.Fprintf(w, "done: %d shown, %d promises, %d failed\n", res.Shown, res.Promises, res.Failed)
	mu.Unlock()

	return res, nil
}

func (cmd *PlayCmd) waitOrDefault() time.Duration {
	if cmd.wait <= 0 {
		return defaultDrainWait
	}
	return cmd.wait
}

// waitDrained blocks until the store is empty. Toasts still present after
// wait are cleared.
func waitDrained(ctx context.Context, store *toast.Store, wait time.Duration, changed <-chan struct{}) error {
	timer := time.NewTimer(wait)
	defer timer.Stop()

	for store.Len() > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			log.Debug().Int("remaining", store.Len()).Msg("wait elapsed, clearing toasts")
			store.ClearAll()
			return nil
		case <-changed:
		}
	}

	return nil
}

// formatEvent renders a store event as a single line. Progress events are
// skipped.
func formatEvent(e toast.Event) string {
	switch e.Kind {
	case toast.EventProgress:
		return ""
	case toast.EventCleared:
		return string(e.Kind)
	}

	t := e.Toast
	line := fmt.Sprintf("%-8s %s %s %s", e.Kind, t.ID, t.Variant, t.Position)
	if t.Title != "" {
		line += fmt.Sprintf(" [%s]", t.Title)
	}
	return line + fmt.Sprintf(" %q", t.Message)
}

func playTitle(s script.Script) string {
	if s.Name == "" {
		return "toasty play"
	}
	return "toasty play: " + s.Name
}
