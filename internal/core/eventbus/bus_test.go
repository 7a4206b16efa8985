package eventbus_test

import (
	"testing"

	"github.com/colonyops/toasty/internal/core/eventbus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus_Publish_delivers_in_subscription_order(t *testing.T) {
	bus := eventbus.New[int]("test")

	var got []string
	bus.Subscribe(func(n int) { got = append(got, "a") })
	bus.Subscribe(func(n int) { got = append(got, "b") })

	bus.Publish(1)

	assert.Equal(t, []string{"a", "b"}, got)
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := eventbus.New[int]("test")

	calls := 0
	unsubscribe := bus.Subscribe(func(int) { calls++ })
	bus.Publish(1)
	unsubscribe()
	unsubscribe() // idempotent
	bus.Publish(2)

	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, bus.Len())
}

func TestBus_Unsubscribe_keeps_other_subscribers(t *testing.T) {
	bus := eventbus.New[int]("test")

	var a, b, c int
	bus.Subscribe(func(int) { a++ })
	unsubB := bus.Subscribe(func(int) { b++ })
	bus.Subscribe(func(int) { c++ })

	unsubB()
	bus.Publish(1)

	assert.Equal(t, 1, a)
	assert.Equal(t, 0, b)
	assert.Equal(t, 1, c)
}

func TestBus_Publish_recovers_panicking_subscriber(t *testing.T) {
	bus := eventbus.New[string]("test")

	var recovered any
	bus.OnPanic(func(_ string, _ string, r any) { recovered = r })

	delivered := false
	bus.Subscribe(func(string) { panic("boom") })
	bus.Subscribe(func(string) { delivered = true })

	require.NotPanics(t, func() { bus.Publish("x") })
	assert.Equal(t, "boom", recovered)
	assert.True(t, delivered, "later subscribers still run")
}

func TestBus_Publish_reentrant(t *testing.T) {
	bus := eventbus.New[int]("test")

	var got []int
	bus.Subscribe(func(n int) {
		got = append(got, n)
		if n == 1 {
			bus.Publish(2)
		}
	})

	bus.Publish(1)

	assert.Equal(t, []int{1, 2}, got)
}

func TestBus_OnPublish_hook(t *testing.T) {
	bus := eventbus.New[int]("named")

	var names []string
	bus.OnPublish(func(name string, _ int) { names = append(names, name) })

	bus.Publish(1)
	bus.Publish(2)

	assert.Equal(t, []string{"named", "named"}, names)
}
