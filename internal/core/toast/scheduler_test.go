package toast

import (
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_expires_after_ceil_duration_over_interval(t *testing.T) {
	tests := []struct {
		duration time.Duration
		ticks    int
	}{
		{500 * time.Millisecond, 5},
		{300 * time.Millisecond, 3},
		{250 * time.Millisecond, 3},
		{50 * time.Millisecond, 1},
		{time.Second, 10},
		{5 * time.Second, 50},
	}

	for _, tt := range tests {
		t.Run(tt.duration.String(), func(t *testing.T) {
			s := NewScheduler(100*time.Millisecond, true)
			defer s.Close()

			var expired []string
			s.Schedule("a", tt.duration, func(id string) { expired = append(expired, id) })

			for i := 1; i < tt.ticks; i++ {
				s.Tick()
				require.Empty(t, expired, "expired early at tick %d", i)
			}

			s.Tick()
			assert.Equal(t, []string{"a"}, expired)

			// Further ticks never fire again.
			s.Tick()
			s.Tick()
			assert.Len(t, expired, 1)
		})
	}
}

func TestScheduler_progress_decrements_per_tick(t *testing.T) {
	s := NewScheduler(100*time.Millisecond, true)
	defer s.Close()

	s.Schedule("a", time.Second, func(string) {})

	p, ok := s.Progress("a")
	require.True(t, ok)
	assert.InDelta(t, 100, p, 0.001)

	s.Tick()
	s.Tick()
	s.Tick()

	p, ok = s.Progress("a")
	require.True(t, ok)
	assert.InDelta(t, 70, p, 0.001)
}

func TestScheduler_cancel_prevents_expiry(t *testing.T) {
	s := NewScheduler(100*time.Millisecond, true)
	defer s.Close()

	fired := false
	cancel := s.Schedule("a", 200*time.Millisecond, func(string) { fired = true })

	s.Tick()
	cancel()
	cancel() // idempotent

	for range 5 {
		s.Tick()
	}

	assert.False(t, fired)
	assert.Equal(t, 0, s.Pending())
	_, ok := s.Progress("a")
	assert.False(t, ok)
}

func TestScheduler_stale_cancel_does_not_remove_newer_countdown(t *testing.T) {
	s := NewScheduler(100*time.Millisecond, true)
	defer s.Close()

	stale := s.Schedule("a", time.Second, func(string) {})
	s.Schedule("a", time.Second, func(string) {})

	stale()

	assert.Equal(t, 1, s.Pending())
}

func TestScheduler_non_positive_duration_schedules_nothing(t *testing.T) {
	s := NewScheduler(100*time.Millisecond, true)
	defer s.Close()

	cancel := s.Schedule("a", 0, func(string) { t.Fatal("must not expire") })
	s.Schedule("b", -time.Second, func(string) { t.Fatal("must not expire") })

	assert.Equal(t, 0, s.Pending())
	assert.False(t, s.Tick())
	cancel()
}

func TestScheduler_OnTick_reports_advanced_ids(t *testing.T) {
	s := NewScheduler(100*time.Millisecond, true)
	defer s.Close()

	var reports [][]string
	s.OnTick(func(ids []string) { reports = append(reports, ids) })

	s.Schedule("short", 100*time.Millisecond, func(string) {})
	s.Schedule("long", time.Second, func(string) {})

	s.Tick()

	require.Len(t, reports, 1)
	assert.Equal(t, []string{"long"}, reports[0], "expired ids are not reported as progress")
}

func TestScheduler_Tick_reports_remaining(t *testing.T) {
	s := NewScheduler(100*time.Millisecond, true)
	defer s.Close()

	s.Schedule("a", 200*time.Millisecond, func(string) {})

	assert.True(t, s.Tick())
	assert.False(t, s.Tick())
}

func TestScheduler_auto_driver_expires_and_goes_idle(t *testing.T) {
	s := NewScheduler(5*time.Millisecond, false)
	defer s.Close()

	var (
		mu      sync.Mutex
		expired []string
	)
	s.Schedule("a", 20*time.Millisecond, func(id string) {
		mu.Lock()
		defer mu.Unlock()
		expired = append(expired, id)
	})

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(expired) == 1
	}, time.Second, 5*time.Millisecond)

	require.Eventually(t, func() bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		return !s.running
	}, time.Second, 5*time.Millisecond, "driver should stop once idle")

	// A new countdown restarts the driver.
	done := make(chan struct{})
	s.Schedule("b", 10*time.Millisecond, func(string) { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("second countdown never expired")
	}
}

func TestScheduler_Close_stops_driver_with_pending_countdowns(t *testing.T) {
	s := NewScheduler(5*time.Millisecond, false)

	s.Schedule("a", time.Hour, func(string) { t.Fatal("must not expire") })
	s.Close()
	s.Close() // idempotent

	assert.Equal(t, 0, s.Pending())
}

func TestScheduler_huge_duration_does_not_expire_early(t *testing.T) {
	s := NewScheduler(100*time.Millisecond, true)
	defer s.Close()

	var expired []string
	s.Schedule("forever", time.Duration(math.MaxInt64), func(id string) { expired = append(expired, id) })

	for range 10 {
		s.Tick()
	}

	assert.Empty(t, expired)
	p, ok := s.Progress("forever")
	require.True(t, ok)
	assert.Greater(t, p, 99.9)
}

func TestTickCount(t *testing.T) {
	interval := 100 * time.Millisecond

	assert.Equal(t, 5, tickCount(500*time.Millisecond, interval))
	assert.Equal(t, 3, tickCount(250*time.Millisecond, interval))
	assert.Equal(t, 1, tickCount(time.Nanosecond, interval))
	assert.Equal(t, maxTicks, tickCount(time.Duration(math.MaxInt64), interval))
	assert.Equal(t, maxTicks, tickCount(time.Duration(math.MaxInt64), time.Nanosecond))
}

func TestScheduler_Close_from_expire_callback(t *testing.T) {
	s := NewScheduler(5*time.Millisecond, false)

	closed := make(chan struct{})
	s.Schedule("a", 5*time.Millisecond, func(string) {
		s.Close()
		close(closed)
	})

	select {
	case <-closed:
	case <-time.After(time.Second):
		t.Fatal("Close from the driver's callback did not return")
	}

	s.Close()
	assert.Equal(t, 0, s.Pending())
}

func TestNewScheduler_defaults_interval(t *testing.T) {
	s := NewScheduler(0, true)
	defer s.Close()

	assert.Equal(t, DefaultTickInterval, s.Interval())
}
