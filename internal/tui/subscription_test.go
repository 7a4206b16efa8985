package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/toasty/internal/core/toast"
)

func TestSubscription_forwards_events(t *testing.T) {
	s := toast.New(toast.Config{ManualTicks: true})
	defer s.Close()

	sub := Subscribe(s)
	defer sub.Close()

	id := s.Add("hello")

	msg := sub.Wait()()
	ev, ok := msg.(StoreEventMsg)
	require.True(t, ok, "got %T", msg)
	assert.Equal(t, toast.EventAdded, ev.Event.Kind)
	assert.Equal(t, id, ev.Event.Toast.ID)
}

func TestSubscription_never_blocks_publisher(t *testing.T) {
	s := toast.New(toast.Config{ManualTicks: true})
	defer s.Close()

	sub := Subscribe(s)
	defer sub.Close()

	// Each add past capacity publishes an added and an evicted event,
	// far more than the buffer holds.
	for range eventBuffer * 2 {
		s.Add("flood")
	}

	assert.Len(t, sub.events, eventBuffer)
}

func TestSubscription_Close(t *testing.T) {
	s := toast.New(toast.Config{ManualTicks: true})
	defer s.Close()

	sub := Subscribe(s)
	sub.Close()
	sub.Close()

	assert.Nil(t, sub.Wait()())

	s.Add("after close")
	assert.Empty(t, sub.events)
}
