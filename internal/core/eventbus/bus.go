// Package eventbus provides a typed, synchronous publish/subscribe bus used
// to push store changes to renderers and other observers.
package eventbus

import (
	"sync"
)

type subscription[T any] struct {
	id uint64
	fn func(T)
}

// Bus dispatches each payload to all subscribers inline, in subscription
// order. Subscribers are copied before dispatch, so a handler may subscribe,
// unsubscribe or publish again without deadlocking.
type Bus[T any] struct {
	name  string
	hooks hooks[T]

	mu     sync.RWMutex
	subs   []subscription[T]
	nextID uint64
}

// New creates a bus. The name is reported to hooks.
func New[T any](name string) *Bus[T] {
	return &Bus[T]{name: name}
}

// Name returns the bus name.
func (bus *Bus[T]) Name() string {
	return bus.name
}

// Subscribe registers fn and returns a function that removes it. The
// returned function is idempotent.
func (bus *Bus[T]) Subscribe(fn func(T)) func() {
	bus.mu.Lock()
	bus.nextID++
	id := bus.nextID
	bus.subs = append(bus.subs, subscription[T]{id: id, fn: fn})
	bus.mu.Unlock()

	bus.runOnSubscribe()

	var once sync.Once
	return func() {
		once.Do(func() { bus.unsubscribe(id) })
	}
}

func (bus *Bus[T]) unsubscribe(id uint64) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	for i, s := range bus.subs {
		if s.id == id {
			bus.subs = append(bus.subs[:i:i], bus.subs[i+1:]...)
			return
		}
	}
}

// Len returns the number of subscribers.
func (bus *Bus[T]) Len() int {
	bus.mu.RLock()
	defer bus.mu.RUnlock()
	return len(bus.subs)
}

// Publish delivers payload to every subscriber. A panicking subscriber is
// recovered and reported through OnPanic; remaining subscribers still run.
func (bus *Bus[T]) Publish(payload T) {
	bus.mu.RLock()
	subs := make([]subscription[T], len(bus.subs))
	copy(subs, bus.subs)
	bus.mu.RUnlock()

	bus.runOnPublish(payload)

	for _, s := range subs {
		bus.deliver(s.fn, payload)
	}
}

func (bus *Bus[T]) deliver(fn func(T), payload T) {
	defer func() {
		if r := recover(); r != nil {
			bus.runOnPanic(payload, r)
		}
	}()
	fn(payload)
}
