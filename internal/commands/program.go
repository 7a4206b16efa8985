package commands

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"

	"github.com/colonyops/toasty/internal/core/config"
	"github.com/colonyops/toasty/internal/core/logging"
	"github.com/colonyops/toasty/internal/core/notify"
	"github.com/colonyops/toasty/internal/core/toast"
	"github.com/colonyops/toasty/internal/tui"
	"github.com/colonyops/toasty/pkg/iojson"
	"github.com/colonyops/toasty/pkg/logutils"
	"github.com/colonyops/toasty/pkg/profiler"
	"github.com/colonyops/toasty/pkg/utils"
)

// maxHeldLogBytes caps stderr logs parked while the TUI is open.
const maxHeldLogBytes = 1 << 20

// mountStore creates a store from cfg and registers it with the notify
// bridge. The returned function unregisters and closes it.
func mountStore(cfg *config.Config, manualTicks bool) (*toast.Store, func()) {
	sc := cfg.StoreConfig()
	sc.ManualTicks = manualTicks

	store := toast.New(sc, toast.WithLogger(logging.Component("store")))
	unregister := notify.Register(store)

	return store, func() {
		unregister()
		store.Close()
	}
}

// drawnAnchors resolves the configured anchor glob.
func drawnAnchors(cfg *config.Config) ([]toast.Position, error) {
	anchors, err := toast.MatchPositions(cfg.TUI.Anchors)
	if err != nil {
		return nil, err
	}
	if len(anchors) == 0 {
		return nil, fmt.Errorf("tui.anchors %q matches no anchor", cfg.TUI.Anchors)
	}
	return anchors, nil
}

// runProgram mounts a store driven by the program's tick chain and runs the
// TUI until the user quits.
func runProgram(ctx context.Context, flags *Flags, cfg *config.Config, opts tui.Options) error {
	anchors, err := drawnAnchors(cfg)
	if err != nil {
		return err
	}

	release := holdStderrLogs(flags.LogFile)
	defer release()

	store, unmount := mountStore(cfg, true)
	defer unmount()

	if flags.ProfilerPort > 0 {
		stop, err := startProfiler(ctx, flags.ProfilerPort, store)
		if err != nil {
			return err
		}
		defer stop()
	}

	opts.Store = store
	opts.Width = cfg.TUI.Width
	opts.Anchors = anchors

	m := tui.New(opts)
	defer m.Close()

	log.Debug().Strs("anchors", anchorNames(anchors)).Msg("starting tui")

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}

	return nil
}

// holdStderrLogs parks console logs in memory while the TUI draws, then
// restores the logger and prints what was held. Logs going to a file are
// left alone.
func holdStderrLogs(logFile string) func() {
	if logFile != logutils.Stderr {
		return func() {}
	}

	held := utils.NewDeferredWriter(maxHeldLogBytes)
	prev := log.Logger
	log.Logger = log.Logger.Output(zerolog.ConsoleWriter{
		Out:        held,
		TimeFormat: time.Kitchen,
		NoColor:    !term.IsTerminal(int(os.Stderr.Fd())),
	})

	return func() {
		log.Logger = prev
		_ = held.Flush(os.Stderr)
	}
}

// startProfiler serves pprof plus a JSON dump of the store at /debug/toasts.
func startProfiler(ctx context.Context, port int, store *toast.Store) (func(), error) {
	server := profiler.New(port)
	server.Handle("/debug/toasts", toastsHandler(store))

	if err := server.Start(ctx); err != nil {
		return nil, fmt.Errorf("failed to start profiler: %w", err)
	}

	log.Info().
		Str("pprof", "http://"+server.Addr()+"/debug/pprof/").
		Str("toasts", "http://"+server.Addr()+"/debug/toasts").
		Msg("profiler endpoint available")

	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("failed to shutdown profiler server")
		}
	}, nil
}

// toastJSON is the wire shape of a toast on the debug endpoint.
type toastJSON struct {
	ID          string    `json:"id"`
	Variant     string    `json:"variant"`
	Title       string    `json:"title,omitempty"`
	Message     string    `json:"message"`
	Position    string    `json:"position"`
	DurationMS  int64     `json:"duration_ms"`
	Dismissible bool      `json:"dismissible"`
	Progress    float64   `json:"progress"`
	CreatedAt   time.Time `json:"created_at"`
}

func newToastJSON(t toast.Toast) toastJSON {
	return toastJSON{
		ID:          t.ID,
		Variant:     string(t.Variant),
		Title:       t.Title,
		Message:     t.Message,
		Position:    string(t.Position),
		DurationMS:  t.Duration.Milliseconds(),
		Dismissible: t.Dismissible,
		Progress:    t.Progress,
		CreatedAt:   t.CreatedAt,
	}
}

func toastsHandler(store *toast.Store) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		toasts := store.Toasts()
		out := make([]toastJSON, len(toasts))
		for i, t := range toasts {
			out[i] = newToastJSON(t)
		}

		w.Header().Set("Content-Type", "application/json")
		_ = iojson.WriteWith(w, w, out)
	})
}

func anchorNames(anchors []toast.Position) []string {
	out := make([]string, len(anchors))
	for i, a := range anchors {
		out[i] = string(a)
	}
	return out
}
