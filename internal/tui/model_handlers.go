package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/colonyops/toasty/internal/core/notify"
	"github.com/colonyops/toasty/internal/core/toast"
)

type (
	syncMsg        struct{}
	toastTickMsg   time.Time
	promiseDoneMsg struct{ err error }
	jobDoneMsg     struct {
		status string
		err    error
	}
)

var errDemoFailure = errors.New("remote rejected the upload")

func scheduleToastTick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return toastTickMsg(t)
	})
}

// ensureToastTick starts the tick chain when the store is driven by the
// program and has pending countdowns. The chain stops on its own once no
// countdown is left.
func (m *Model) ensureToastTick() tea.Cmd {
	if !m.store.Config().ManualTicks || m.ticking || !m.store.Ticking() {
		return nil
	}
	m.ticking = true
	return scheduleToastTick(m.store.TickInterval())
}

func (m Model) handleToastTick(_ toastTickMsg) (tea.Model, tea.Cmd) {
	m.store.Tick()
	m.toasts = m.store.Toasts()
	if m.store.Ticking() {
		return m, scheduleToastTick(m.store.TickInterval())
	}
	m.ticking = false
	return m, nil
}

func (m Model) handleStoreEvent(msg StoreEventMsg) (tea.Model, tea.Cmd) {
	m.toasts = m.store.Toasts()

	e := msg.Event
	switch e.Kind {
	case toast.EventProgress:
	case toast.EventCleared:
		m.status = "cleared"
	default:
		m.status = fmt.Sprintf("%s %s", e.Toast.ID, e.Kind)
	}

	tick := m.ensureToastTick()
	return m, tea.Batch(m.sub.Wait(), tick)
}

func (m Model) handleSync(_ syncMsg) (tea.Model, tea.Cmd) {
	m.toasts = m.store.Toasts()
	cmd := m.ensureToastTick()
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if v, ok := m.keys.variantFor(msg); ok {
		m.addDemoToast(v)
		cmd := m.ensureToastTick()
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.cancel()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Promise):
		cmd := m.runPromise(m.chance() < 0.3)
		return m, cmd
	case key.Matches(msg, m.keys.Fail):
		cmd := m.runPromise(true)
		return m, cmd
	case key.Matches(msg, m.keys.Dismiss):
		if !m.store.DismissLatest() {
			m.status = "nothing to dismiss"
		}
		m.toasts = m.store.Toasts()
	case key.Matches(msg, m.keys.ClearAll):
		notify.ClearAll()
		m.toasts = m.store.Toasts()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}

	return m, nil
}

func (m *Model) addDemoToast(v toast.Variant) {
	m.added++
	pos := toast.WithPosition(m.nextAnchor())
	msg := fmt.Sprintf("%s notification #%d", v, m.added)

	switch v {
	case toast.VariantSuccess:
		notify.Success(msg, pos, toast.WithTitle("Saved"))
	case toast.VariantError:
		notify.Error(msg, pos, toast.WithTitle("Something went wrong"))
	case toast.VariantWarning:
		notify.Warning(msg, pos)
	case toast.VariantInfo:
		notify.Info(msg, pos)
	default:
		notify.Show(msg, pos)
	}

	m.toasts = m.store.Toasts()
}

// runPromise tracks simulated work through the notify bridge. The work runs
// in a command so the update loop keeps drawing the loading toast.
func (m *Model) runPromise(fail bool) tea.Cmd {
	ctx := m.ctx
	work := m.promiseWork
	pos := toast.WithPosition(m.nextAnchor())

	return func() tea.Msg {
		_, err := notify.Promise(ctx, func(ctx context.Context) (int, error) {
			select {
			case <-ctx.Done():
				return 0, ctx.Err()
			case <-time.After(work):
			}
			if fail {
				return 0, errDemoFailure
			}
			return 3, nil
		}, notify.Messages[int]{
			Loading:     "Uploading files...",
			SuccessFunc: func(n int) string { return fmt.Sprintf("Uploaded %d files", n) },
			ErrorFunc:   func(err error) string { return "Upload failed: " + err.Error() },
		}, pos)

		return promiseDoneMsg{err: err}
	}
}

func (m Model) handlePromiseDone(msg promiseDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.status = "promise failed: " + msg.err.Error()
	} else {
		m.status = "promise resolved"
	}
	return m, nil
}

func runJob(ctx context.Context, job func(context.Context) (string, error)) tea.Cmd {
	return func() tea.Msg {
		status, err := job(ctx)
		return jobDoneMsg{status: status, err: err}
	}
}

func (m Model) handleJobDone(msg jobDoneMsg) (tea.Model, tea.Cmd) {
	switch {
	case errors.Is(msg.err, context.Canceled):
	case msg.err != nil:
		m.status = "error: " + msg.err.Error()
		notify.Errorf("%v", msg.err)
	case msg.status != "":
		m.status = msg.status
	}
	cmd := m.ensureToastTick()
	return m, cmd
}
