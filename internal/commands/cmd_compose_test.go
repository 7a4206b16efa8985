package commands

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/toasty/internal/core/toast"
)

func composed(t *testing.T, cmd *ComposeCmd) toast.Toast {
	t.Helper()

	opts, err := cmd.options()
	require.NoError(t, err)

	store := toast.New(toast.Config{ManualTicks: true})
	t.Cleanup(store.Close)

	id := store.Add(cmd.message, opts...)
	got, ok := store.Get(id)
	require.True(t, ok)
	return got
}

func TestComposeOptions(t *testing.T) {
	cmd := &ComposeCmd{
		message:  "Deployed",
		title:    "Release",
		variant:  "success",
		position: "bottom-left",
		duration: "2s",
		noBar:    true,
	}

	got := composed(t, cmd)

	assert.Equal(t, toast.VariantSuccess, got.Variant)
	assert.Equal(t, "Release", got.Title)
	assert.Equal(t, toast.BottomLeft, got.Position)
	assert.Equal(t, 2*time.Second, got.Duration)
	assert.False(t, got.ShowProgressBar)
}

func TestComposeOptions_Defaults(t *testing.T) {
	cmd := &ComposeCmd{message: "Hello"}

	got := composed(t, cmd)

	assert.Equal(t, toast.VariantDefault, got.Variant)
	assert.Equal(t, toast.DefaultPosition, got.Position)
	assert.Equal(t, toast.DefaultDuration, got.Duration)
	assert.True(t, got.ShowProgressBar)
}

func TestComposeOptions_ZeroDurationIsPersistent(t *testing.T) {
	cmd := &ComposeCmd{message: "Stays", duration: "0s"}

	got := composed(t, cmd)

	assert.Equal(t, time.Duration(0), got.Duration)
}

func TestComposeOptions_Invalid(t *testing.T) {
	tests := []struct {
		name string
		cmd  ComposeCmd
		want string
	}{
		{name: "empty message", cmd: ComposeCmd{message: "  "}},
		{name: "unknown variant", cmd: ComposeCmd{message: "x", variant: "loud"}, want: "unknown variant"},
		{name: "unknown position", cmd: ComposeCmd{message: "x", position: "middle"}, want: "unknown position"},
		{name: "bad duration", cmd: ComposeCmd{message: "x", duration: "soon"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.cmd.options()
			require.Error(t, err)
			if tt.want != "" {
				assert.Contains(t, err.Error(), tt.want)
			}
		})
	}
}

func TestFormError(t *testing.T) {
	assert.NoError(t, formError(nil))

	for _, err := range []error{
		huh.ErrUserAborted,
		fmt.Errorf("run: %w", huh.ErrUserAborted),
	} {
		var exit cli.ExitCoder
		require.ErrorAs(t, formError(err), &exit)
		assert.Equal(t, 0, exit.ExitCode())
	}

	boom := errors.New("boom")
	err := formError(boom)
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "compose form")
}
