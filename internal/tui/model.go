// Package tui implements the Bubble Tea renderer for toasts. It consumes the
// store's events and per-anchor projection and never mutates toasts except
// through the store and the notify bridge.
package tui

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/toasty/internal/core/styles"
	"github.com/colonyops/toasty/internal/core/toast"
)

const defaultPromiseWork = 1500 * time.Millisecond

// Options configures a Model.
type Options struct {
	Store *toast.Store

	// Title is shown on the first row.
	Title string

	// Width is the toast width in cells.
	Width int

	// Anchors restricts which anchors are drawn and cycled by the demo keys.
	// Nil means all six.
	Anchors []toast.Position

	// Job runs once when the program starts. Its result is shown in the
	// status row.
	Job func(ctx context.Context) (string, error)

	// PromiseWork is how long the demo promise keys pretend to work.
	PromiseWork time.Duration

	// Chance returns a number in [0,1) deciding demo promise outcomes.
	Chance func() float64
}

// Model is the toast demo program.
type Model struct {
	store   *toast.Store
	sub     *Subscription
	view    *ToastView
	keys    keyMap
	help    help.Model
	spinner spinner.Model

	title       string
	job         func(ctx context.Context) (string, error)
	promiseWork time.Duration
	chance      func() float64

	ctx    context.Context
	cancel context.CancelFunc

	toasts   []toast.Toast
	width    int
	height   int
	next     int
	added    int
	status   string
	ticking  bool
	quitting bool
}

// New creates a model rendering opts.Store. Close must be called once the
// program exits.
func New(opts Options) Model {
	ctx, cancel := context.WithCancel(context.Background())

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.ToastLoadingStyle

	title := opts.Title
	if title == "" {
		title = "toasty"
	}

	work := opts.PromiseWork
	if work <= 0 {
		work = defaultPromiseWork
	}

	chance := opts.Chance
	if chance == nil {
		chance = rand.Float64
	}

	return Model{
		store:       opts.Store,
		sub:         Subscribe(opts.Store),
		view:        NewToastView(opts.Width, opts.Anchors),
		keys:        defaultKeyMap(),
		help:        help.New(),
		spinner:     s,
		title:       title,
		job:         opts.Job,
		promiseWork: work,
		chance:      chance,
		ctx:         ctx,
		cancel:      cancel,
		toasts:      opts.Store.Toasts(),
		status:      "ready",
	}
}

// Close stops the event subscription and cancels running work.
func (m Model) Close() {
	m.cancel()
	m.sub.Close()
}

func (m Model) Init() tea.Cmd {
	// Init cannot keep state, so the tick chain is started from the first
	// sync message.
	cmds := []tea.Cmd{
		m.sub.Wait(),
		m.spinner.Tick,
		func() tea.Msg { return syncMsg{} },
	}
	if m.job != nil {
		cmds = append(cmds, runJob(m.ctx, m.job))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyPressMsg:
		return m.handleKey(msg)
	case StoreEventMsg:
		return m.handleStoreEvent(msg)
	case syncMsg:
		return m.handleSync(msg)
	case toastTickMsg:
		return m.handleToastTick(msg)
	case promiseDoneMsg:
		return m.handlePromiseDone(msg)
	case jobDoneMsg:
		return m.handleJobDone(msg)
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

func (m Model) render() string {
	if m.quitting {
		return ""
	}

	w, h := m.width, m.height
	if w == 0 {
		w = 80
	}
	if h == 0 {
		h = 24
	}

	m.view.SetLoadingIndicator(m.spinner.View())
	return m.view.Overlay(m.renderBackground(w, h), m.toasts, w, h)
}

// Toasts returns the snapshot the model last rendered.
func (m Model) Toasts() []toast.Toast {
	return m.toasts
}

// Status returns the status row text.
func (m Model) Status() string {
	return m.status
}

func (m Model) renderBackground(w, h int) string {
	header := styles.TitleStyle.Render(m.title)

	groups := toast.Group(m.toasts)
	counts := make([]string, 0, len(m.view.Anchors()))
	for _, pos := range m.view.Anchors() {
		counts = append(counts, fmt.Sprintf("%s %d", pos, len(groups[pos])))
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		styles.HelpStyle.Render(strings.Join(counts, "  "+styles.IconDot+"  ")),
		"",
		m.help.View(m.keys),
	)

	status := styles.StatusBarStyle.Render(fmt.Sprintf("%d active %s %s", len(m.toasts), styles.IconDot, m.status))

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.Place(w, max(h-1, 1), lipgloss.Center, lipgloss.Center, body),
		status,
	)
}

// nextAnchor cycles through the drawn anchors.
func (m *Model) nextAnchor() toast.Position {
	anchors := m.view.Anchors()
	pos := anchors[m.next%len(anchors)]
	m.next++
	return pos
}
