package toast

import (
	"math"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultTickInterval is the countdown granularity.
const DefaultTickInterval = 100 * time.Millisecond

// maxTicks caps a countdown so the tick count fits an int on every platform.
// At the default interval it is over six years.
const maxTicks = math.MaxInt32

// CancelFunc stops a scheduled countdown. It is safe to call more than once.
type CancelFunc func()

type countdown struct {
	id     string
	step   float64 // percent removed per tick
	total  int     // ticks until expiry
	ticks  int
	expire func(id string)
}

func (c *countdown) progress() float64 {
	return max(100-float64(c.ticks)*c.step, 0)
}

// Scheduler counts down toasts in fixed ticks. Progress is derived from the
// tick count, never from wall-clock deltas, so a toast with duration d always
// expires after ceil(d/interval) ticks.
//
// In manual mode the owner drives the scheduler by calling Tick. Otherwise a
// single goroutine ticks while at least one countdown is pending and exits
// once none remain.
type Scheduler struct {
	interval time.Duration
	manual   bool

	mu         sync.Mutex
	countdowns map[string]*countdown
	onTick     []func(ids []string)
	running    bool
	closed     bool
	done       chan struct{}
	wg         sync.WaitGroup

	// driving is set while the driver goroutine runs a tick and its callbacks.
	driving atomic.Bool
}

// tickCount returns ceil(d/interval), capped at maxTicks.
func tickCount(d, interval time.Duration) int {
	n := d / interval
	if d%interval != 0 {
		n++
	}
	if n > maxTicks {
		return maxTicks
	}
	return int(n)
}

// NewScheduler creates a scheduler. A non-positive interval falls back to
// DefaultTickInterval.
func NewScheduler(interval time.Duration, manual bool) *Scheduler {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	return &Scheduler{
		interval:   interval,
		manual:     manual,
		countdowns: make(map[string]*countdown),
		done:       make(chan struct{}),
	}
}

// Interval returns the tick interval.
func (s *Scheduler) Interval() time.Duration {
	return s.interval
}

// Schedule starts a countdown for id. expire is invoked once, outside the
// scheduler lock, when the countdown reaches zero. A non-positive duration
// schedules nothing.
func (s *Scheduler) Schedule(id string, d time.Duration, expire func(id string)) CancelFunc {
	if d <= 0 || expire == nil {
		return func() {}
	}

	total := tickCount(d, s.interval)
	c := &countdown{
		id:     id,
		step:   100 / (float64(d) / float64(s.interval)),
		total:  total,
		expire: expire,
	}

	s.mu.Lock()
	s.countdowns[id] = c
	s.ensureRunning()
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if cur, ok := s.countdowns[id]; ok && cur == c {
			delete(s.countdowns, id)
		}
	}
}

// OnTick registers fn to be called after every tick with the ids whose
// progress changed. Expired ids are not included.
func (s *Scheduler) OnTick(fn func(ids []string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onTick = append(s.onTick, fn)
}

// Progress returns the remaining percentage for id.
func (s *Scheduler) Progress(id string) (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.countdowns[id]
	if !ok {
		return 0, false
	}
	return c.progress(), true
}

// Pending returns the number of active countdowns.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.countdowns)
}

// Tick advances every countdown by one interval and fires expirations. It
// reports whether countdowns remain.
func (s *Scheduler) Tick() bool {
	s.mu.Lock()
	var (
		expired  []*countdown
		advanced []string
	)
	for id, c := range s.countdowns {
		c.ticks++
		if c.ticks >= c.total {
			expired = append(expired, c)
			delete(s.countdowns, id)
			continue
		}
		advanced = append(advanced, id)
	}
	remaining := len(s.countdowns) > 0
	hooks := make([]func([]string), len(s.onTick))
	copy(hooks, s.onTick)
	s.mu.Unlock()

	for _, c := range expired {
		c.expire(c.id)
	}

	if len(advanced) > 0 {
		for _, fn := range hooks {
			fn(advanced)
		}
	}

	return remaining
}

// Close stops the driver goroutine and drops all countdowns. Schedule after
// Close still records countdowns but never ticks them automatically.
//
// Close waits for the driver to exit, except when it is called from a
// callback the driver is running; the driver then exits once that tick
// returns.
func (s *Scheduler) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.countdowns = make(map[string]*countdown)
	close(s.done)
	s.mu.Unlock()

	if s.driving.Load() {
		return
	}
	s.wg.Wait()
}

// ensureRunning starts the driver goroutine. Callers must hold s.mu.
func (s *Scheduler) ensureRunning() {
	if s.manual || s.running || s.closed {
		return
	}
	s.running = true
	s.wg.Add(1)
	go s.run()
}

func (s *Scheduler) run() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.driving.Store(true)
			s.Tick()
			s.driving.Store(false)
			if !s.stopIfIdle() {
				continue
			}
			return
		}
	}
}

// stopIfIdle marks the driver stopped when nothing is pending. The check and
// the flag change happen under one lock so a concurrent Schedule either sees
// running=true or starts a fresh driver.
func (s *Scheduler) stopIfIdle() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.countdowns) > 0 {
		return false
	}
	s.running = false
	return true
}
