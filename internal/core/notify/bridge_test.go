package notify

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/toasty/internal/core/toast"
)

// newStore registers a fresh manual-tick store for the duration of the test.
func newStore(t *testing.T) *toast.Store {
	t.Helper()
	s := toast.New(toast.Config{ManualTicks: true})
	unregister := Register(s)
	t.Cleanup(func() {
		unregister()
		s.Close()
	})
	return s
}

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = prev })
	return &buf
}

func TestShortcuts_without_registration(t *testing.T) {
	require.False(t, Registered())
	buf := captureLog(t)

	assert.NotPanics(t, func() {
		assert.Empty(t, Success("saved"))
		assert.Empty(t, Error("failed"))
		assert.Empty(t, Warning("careful"))
		assert.Empty(t, Info("fyi"))
		assert.Empty(t, Show("plain"))
		assert.Empty(t, Infof("n=%d", 1))
		Dismiss("toast-1")
		ClearAll()
	})

	assert.Contains(t, buf.String(), "toast store not registered")
	assert.Contains(t, buf.String(), `"level":"warn"`)
}

func TestShortcuts_force_variant(t *testing.T) {
	s := newStore(t)

	tests := []struct {
		name string
		fn   func(string, ...toast.Option) string
		want toast.Variant
	}{
		{"success", Success, toast.VariantSuccess},
		{"error", Error, toast.VariantError},
		{"warning", Warning, toast.VariantWarning},
		{"info", Info, toast.VariantInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := tt.fn("msg",
				toast.WithVariant(toast.VariantDefault),
				toast.WithPosition(toast.BottomCenter),
				toast.WithTitle("title"),
			)
			require.NotEmpty(t, id)

			got, ok := s.Get(id)
			require.True(t, ok)
			assert.Equal(t, tt.want, got.Variant)
			assert.Equal(t, toast.BottomCenter, got.Position, "other options pass through")
			assert.Equal(t, "title", got.Title)
		})
	}
}

func TestShow_and_Custom_pass_options(t *testing.T) {
	s := newStore(t)

	id := Custom("custom", toast.WithVariant(toast.VariantWarning), toast.WithDuration(0))
	got, ok := s.Get(id)
	require.True(t, ok)
	assert.Equal(t, toast.VariantWarning, got.Variant)
	assert.True(t, got.Persistent())

	id = Show("plain")
	got, ok = s.Get(id)
	require.True(t, ok)
	assert.Equal(t, toast.VariantDefault, got.Variant)
}

func TestFormatted_shortcuts(t *testing.T) {
	s := newStore(t)

	got, _ := s.Get(Errorf("failed %d times", 3))
	assert.Equal(t, "failed 3 times", got.Message)
	assert.Equal(t, toast.VariantError, got.Variant)

	got, _ = s.Get(Successf("saved %s", "profile"))
	assert.Equal(t, toast.VariantSuccess, got.Variant)

	got, _ = s.Get(Warnf("disk at %d%%", 90))
	assert.Equal(t, "disk at 90%", got.Message)
	assert.Equal(t, toast.VariantWarning, got.Variant)
}

func TestDismiss_and_ClearAll_route_to_store(t *testing.T) {
	s := newStore(t)

	id := Info("a")
	Info("b")
	Dismiss(id)
	Dismiss(id)
	assert.Equal(t, 1, s.Len())

	ClearAll()
	assert.Equal(t, 0, s.Len())
}

func TestRegister_last_wins(t *testing.T) {
	first := toast.New(toast.Config{ManualTicks: true})
	defer first.Close()
	second := toast.New(toast.Config{ManualTicks: true})
	defer second.Close()

	unregisterFirst := Register(first)
	unregisterSecond := Register(second)
	defer unregisterSecond()

	Info("hello")
	assert.Equal(t, 0, first.Len())
	assert.Equal(t, 1, second.Len())

	// A stale unregister leaves the newer binding alone.
	unregisterFirst()
	assert.True(t, Registered())

	unregisterSecond()
	assert.False(t, Registered())
	assert.Empty(t, Info("dropped"))
}

func TestCalls_before_registration_are_not_queued(t *testing.T) {
	captureLog(t)
	Info("early")

	s := newStore(t)
	assert.Equal(t, 0, s.Len())
}

func TestForced_does_not_alias_caller_slice(t *testing.T) {
	opts := make([]toast.Option, 1, 4)
	opts[0] = toast.WithTitle("a")

	out := forced(opts, toast.WithVariant(toast.VariantError))
	_ = forced(opts, toast.WithVariant(toast.VariantInfo))

	var o toast.Options
	for _, opt := range out {
		opt(&o)
	}
	assert.Equal(t, toast.VariantError, o.Variant)
}
