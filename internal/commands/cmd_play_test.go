package commands

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/toasty/internal/core/config"
	"github.com/colonyops/toasty/internal/core/notify"
	"github.com/colonyops/toasty/internal/core/script"
	"github.com/colonyops/toasty/internal/core/toast"
)

func ms(v int) *int { return &v }

func fastConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Toasts.TickInterval = 10 * time.Millisecond
	return &cfg
}

func TestFormatEvent(t *testing.T) {
	tt := toast.Toast{
		ID:       "toast-7",
		Variant:  toast.VariantSuccess,
		Position: toast.TopRight,
		Title:    "Saved",
		Message:  "all good",
	}

	assert.Equal(t, `added    toast-7 success top-right [Saved] "all good"`,
		formatEvent(toast.Event{Kind: toast.EventAdded, Toast: tt}))

	tt.Title = ""
	assert.Equal(t, `expired  toast-7 success top-right "all good"`,
		formatEvent(toast.Event{Kind: toast.EventExpired, Toast: tt}))

	assert.Equal(t, "cleared", formatEvent(toast.Event{Kind: toast.EventCleared}))
	assert.Empty(t, formatEvent(toast.Event{Kind: toast.EventProgress}))
}

func TestPlayHeadless_RunsUntilDrained(t *testing.T) {
	s := script.Script{
		Steps: []script.Step{
			{Message: "first", Variant: "success", DurationMS: ms(30)},
			{
				DurationMS: ms(30),
				Promise:    &script.PromiseStep{Loading: "Working", Success: "Finished", WorkMS: 20},
			},
		},
	}

	var out bytes.Buffer
	cmd := &PlayCmd{wait: 2 * time.Second}

	res, err := cmd.playHeadless(context.Background(), &out, fastConfig(), s)
	require.NoError(t, err)
	assert.Equal(t, script.Result{Shown: 1, Promises: 1}, res)

	text := out.String()
	assert.Contains(t, text, `success top-right "first"`)
	assert.Contains(t, text, `info top-right "Working"`)
	assert.Contains(t, text, `success top-right "Finished"`)
	assert.Equal(t, 2, strings.Count(text, "expired"), text)
	assert.Contains(t, text, "done: 1 shown, 1 promises, 0 failed")
	assert.False(t, notify.Registered(), "store stays registered after the run")
}

func TestPlayHeadless_ClearsPersistentToastsAfterWait(t *testing.T) {
	s := script.Script{
		Steps: []script.Step{
			{Message: "sticky", DurationMS: ms(0)},
		},
	}

	var out bytes.Buffer
	cmd := &PlayCmd{wait: 50 * time.Millisecond}

	_, err := cmd.playHeadless(context.Background(), &out, fastConfig(), s)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], `"sticky"`)
	assert.Equal(t, "cleared", lines[1])
	assert.Equal(t, "done: 1 shown, 0 promises, 0 failed", lines[2])
}

func TestPlayHeadless_Cancelled(t *testing.T) {
	s := script.Script{
		Steps: []script.Step{
			{Message: "later", DelayMS: 5000},
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cmd := &PlayCmd{}
	_, err := cmd.playHeadless(ctx, &bytes.Buffer{}, fastConfig(), s)
	require.ErrorIs(t, err, context.Canceled)
}
