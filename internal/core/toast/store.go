package toast

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/colonyops/toasty/internal/core/eventbus"
	"github.com/colonyops/toasty/internal/core/logging"
)

const (
	DefaultMaxNotifications = 5
	DefaultDuration         = 5 * time.Second
	DefaultPosition         = TopRight
)

// Config controls store behavior. Zero values fall back to the defaults.
type Config struct {
	DefaultPosition  Position
	MaxNotifications int
	DefaultDuration  time.Duration
	TickInterval     time.Duration

	// ManualTicks disables the background ticker. The owner must call
	// Store.Tick to advance countdowns.
	ManualTicks bool
}

func (c Config) withDefaults() Config {
	if !c.DefaultPosition.IsValid() {
		c.DefaultPosition = DefaultPosition
	}
	if c.MaxNotifications < 1 {
		c.MaxNotifications = DefaultMaxNotifications
	}
	if c.DefaultDuration <= 0 {
		c.DefaultDuration = DefaultDuration
	}
	if c.TickInterval <= 0 {
		c.TickInterval = DefaultTickInterval
	}
	return c
}

// StoreOption customises a Store.
type StoreOption func(*Store)

// WithLogger sets the store logger.
func WithLogger(l zerolog.Logger) StoreOption {
	return func(s *Store) { s.logger = l }
}

// WithClock overrides the CreatedAt timestamp source.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) { s.now = now }
}

// Store is the authoritative, insertion-ordered collection of active toasts.
// Only Add, Remove, Dismiss and ClearAll mutate it. The scheduler reaches the
// store exclusively through the expire callback, which is routed through the
// same removal path.
type Store struct {
	cfg    Config
	sched  *Scheduler
	bus    *eventbus.Bus[Event]
	logger zerolog.Logger
	now    func() time.Time

	mu     sync.Mutex
	toasts []Toast
	timers map[string]CancelFunc
}

// New creates a store.
func New(cfg Config, opts ...StoreOption) *Store {
	cfg = cfg.withDefaults()

	s := &Store{
		cfg:    cfg,
		sched:  NewScheduler(cfg.TickInterval, cfg.ManualTicks),
		bus:    eventbus.New[Event]("toast"),
		logger: logging.Component("toast"),
		now:    time.Now,
		timers: make(map[string]CancelFunc),
	}
	for _, opt := range opts {
		opt(s)
	}

	eventbus.RegisterDebugLogger(s.bus, s.logger)
	s.sched.OnTick(s.publishProgress)

	return s
}

// Config returns the effective configuration.
func (s *Store) Config() Config {
	return s.cfg
}

// Add creates a toast, appends it and evicts the oldest toasts while the
// store holds more than MaxNotifications. It never fails; the returned id is
// always the new toast's.
func (s *Store) Add(message string, opts ...Option) string {
	o := resolve(s.cfg.DefaultPosition, s.cfg.DefaultDuration, opts)

	t := Toast{
		ID:              NextID(),
		Variant:         o.Variant,
		Title:           o.Title,
		Message:         message,
		Duration:        o.Duration,
		Dismissible:     o.Dismissible,
		Position:        o.Position,
		ShowProgressBar: o.ShowProgressBar,
		ShowIcon:        o.ShowIcon,
		Icon:            o.Icon,
		CreatedAt:       s.now(),
		Progress:        100,
	}

	s.mu.Lock()
	s.toasts = append(s.toasts, t)

	var evicted []Toast
	if over := len(s.toasts) - s.cfg.MaxNotifications; over > 0 {
		evicted = make([]Toast, over)
		copy(evicted, s.toasts[:over])
		s.toasts = append(s.toasts[:0:0], s.toasts[over:]...)
		for _, e := range evicted {
			s.cancelLocked(e.ID)
		}
	}

	if t.Duration > 0 {
		s.timers[t.ID] = s.sched.Schedule(t.ID, t.Duration, s.expire)
	}
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.logger.Debug().
		Str("id", t.ID).
		Str("variant", string(t.Variant)).
		Str("position", string(t.Position)).
		Dur("duration", t.Duration).
		Msg("toast added")

	s.bus.Publish(Event{Kind: EventAdded, Toast: t, Toasts: snapshot})
	for _, e := range evicted {
		s.logger.Debug().Str("id", e.ID).Msg("toast evicted")
		s.bus.Publish(Event{Kind: EventEvicted, Toast: e, Toasts: snapshot})
	}

	return t.ID
}

// Remove deletes the toast with id and cancels its countdown. Removing an
// unknown id is a no-op.
func (s *Store) Remove(id string) {
	s.remove(id, EventRemoved)
}

// Dismiss is the user-initiated removal path. It refuses toasts that are not
// dismissible and reports whether a toast was removed.
func (s *Store) Dismiss(id string) bool {
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 || !s.toasts[idx].Dismissible {
		s.mu.Unlock()
		return false
	}
	t, snapshot := s.removeAtLocked(idx)
	s.mu.Unlock()

	s.bus.Publish(Event{Kind: EventRemoved, Toast: t, Toasts: snapshot})
	return true
}

// DismissLatest dismisses the newest dismissible toast.
func (s *Store) DismissLatest() bool {
	s.mu.Lock()
	idx := -1
	for i := len(s.toasts) - 1; i >= 0; i-- {
		if s.toasts[i].Dismissible {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return false
	}
	t, snapshot := s.removeAtLocked(idx)
	s.mu.Unlock()

	s.bus.Publish(Event{Kind: EventRemoved, Toast: t, Toasts: snapshot})
	return true
}

// ClearAll removes every toast and cancels every countdown.
func (s *Store) ClearAll() {
	s.mu.Lock()
	if len(s.toasts) == 0 {
		s.mu.Unlock()
		return
	}
	for id := range s.timers {
		s.cancelLocked(id)
	}
	s.toasts = nil
	s.mu.Unlock()

	s.logger.Debug().Msg("toasts cleared")
	s.bus.Publish(Event{Kind: EventCleared, Toasts: []Toast{}})
}

// Toasts returns the current toasts in insertion order.
func (s *Store) Toasts() []Toast {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Get returns the toast with id.
func (s *Store) Get(id string) (Toast, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexLocked(id)
	if idx < 0 {
		return Toast{}, false
	}
	return s.withProgressLocked(s.toasts[idx]), true
}

// Len returns the number of active toasts.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.toasts)
}

// Subscribe registers fn for every store event and returns a function that
// removes the subscription. fn runs outside the store lock and may call back
// into the store.
func (s *Store) Subscribe(fn func(Event)) func() {
	return s.bus.Subscribe(fn)
}

// Tick advances all countdowns by one interval. Only needed with
// Config.ManualTicks.
func (s *Store) Tick() {
	s.sched.Tick()
}

// Ticking reports whether any countdown is pending.
func (s *Store) Ticking() bool {
	return s.sched.Pending() > 0
}

// TickInterval returns the countdown granularity.
func (s *Store) TickInterval() time.Duration {
	return s.sched.Interval()
}

// Close stops the background ticker. Toasts already in the store stay until
// removed. A subscriber may call Close while handling an expired or progress
// event.
func (s *Store) Close() {
	s.sched.Close()
}

func (s *Store) expire(id string) {
	s.remove(id, EventExpired)
}

func (s *Store) remove(id string, kind EventKind) {
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return
	}
	t, snapshot := s.removeAtLocked(idx)
	s.mu.Unlock()

	s.logger.Debug().Str("id", id).Str("kind", string(kind)).Msg("toast removed")
	s.bus.Publish(Event{Kind: kind, Toast: t, Toasts: snapshot})
}

func (s *Store) removeAtLocked(idx int) (Toast, []Toast) {
	t := s.toasts[idx]
	s.cancelLocked(t.ID)
	s.toasts = append(s.toasts[:idx:idx], s.toasts[idx+1:]...)
	return t, s.snapshotLocked()
}

func (s *Store) cancelLocked(id string) {
	if cancel, ok := s.timers[id]; ok {
		cancel()
		delete(s.timers, id)
	}
}

func (s *Store) indexLocked(id string) int {
	for i, t := range s.toasts {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) snapshotLocked() []Toast {
	out := make([]Toast, len(s.toasts))
	for i, t := range s.toasts {
		out[i] = s.withProgressLocked(t)
	}
	return out
}

func (s *Store) withProgressLocked(t Toast) Toast {
	if t.Duration <= 0 {
		t.Progress = 100
		return t
	}
	if p, ok := s.sched.Progress(t.ID); ok {
		t.Progress = p
	} else {
		t.Progress = 0
	}
	return t
}

func (s *Store) publishProgress(_ []string) {
	s.mu.Lock()
	if len(s.toasts) == 0 {
		s.mu.Unlock()
		return
	}
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.bus.Publish(Event{Kind: EventProgress, Toasts: snapshot})
}
