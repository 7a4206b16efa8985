package eventbus

import "sync"

// hooks holds the lifecycle hook state for a Bus.
type hooks[T any] struct {
	mu          sync.RWMutex
	onPublish   []func(string, T)
	onSubscribe []func(string)
	onPanic     []func(string, T, any)
}

// OnPublish registers a hook that fires before a payload is delivered.
func (bus *Bus[T]) OnPublish(fn func(bus string, payload T)) {
	bus.hooks.mu.Lock()
	bus.hooks.onPublish = append(bus.hooks.onPublish, fn)
	bus.hooks.mu.Unlock()
}

// OnSubscribe registers a hook that fires after a subscriber is registered.
func (bus *Bus[T]) OnSubscribe(fn func(bus string)) {
	bus.hooks.mu.Lock()
	bus.hooks.onSubscribe = append(bus.hooks.onSubscribe, fn)
	bus.hooks.mu.Unlock()
}

// OnPanic registers a hook that fires when a subscriber panics.
func (bus *Bus[T]) OnPanic(fn func(bus string, payload T, recovered any)) {
	bus.hooks.mu.Lock()
	bus.hooks.onPanic = append(bus.hooks.onPanic, fn)
	bus.hooks.mu.Unlock()
}

func (bus *Bus[T]) runOnPublish(payload T) {
	bus.hooks.mu.RLock()
	hooks := make([]func(string, T), len(bus.hooks.onPublish))
	copy(hooks, bus.hooks.onPublish)
	bus.hooks.mu.RUnlock()
	for _, fn := range hooks {
		fn(bus.name, payload)
	}
}

func (bus *Bus[T]) runOnSubscribe() {
	bus.hooks.mu.RLock()
	hooks := make([]func(string), len(bus.hooks.onSubscribe))
	copy(hooks, bus.hooks.onSubscribe)
	bus.hooks.mu.RUnlock()
	for _, fn := range hooks {
		fn(bus.name)
	}
}

func (bus *Bus[T]) runOnPanic(payload T, recovered any) {
	bus.hooks.mu.RLock()
	hooks := make([]func(string, T, any), len(bus.hooks.onPanic))
	copy(hooks, bus.hooks.onPanic)
	bus.hooks.mu.RUnlock()
	for _, fn := range hooks {
		func() {
			defer func() { recover() }() //nolint:errcheck
			fn(bus.name, payload, recovered)
		}()
	}
}
