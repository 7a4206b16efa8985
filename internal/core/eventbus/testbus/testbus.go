// Package testbus provides test utilities for the event bus.
// It records everything published on a bus and offers assertion helpers.
package testbus

import (
	"sync"
	"testing"
	"time"
)

// Subscriber is the part of an eventbus.Bus a Recorder needs.
type Subscriber[T any] interface {
	Subscribe(fn func(T)) func()
}

// Recorder captures payloads published on a bus.
type Recorder[T any] struct {
	mu     sync.Mutex
	events []T
}

// Record subscribes a recorder to src. The subscription is removed when the
// test completes.
func Record[T any](t *testing.T, src Subscriber[T]) *Recorder[T] {
	t.Helper()

	r := &Recorder[T]{}
	unsubscribe := src.Subscribe(r.record)
	t.Cleanup(unsubscribe)
	return r
}

func (r *Recorder[T]) record(payload T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, payload)
}

// Events returns a copy of all recorded payloads.
func (r *Recorder[T]) Events() []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]T, len(r.events))
	copy(out, r.events)
	return out
}

// Reset clears all recorded payloads.
func (r *Recorder[T]) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

// WaitFor blocks until a payload matching match is recorded or the timeout
// expires. Returns true if one was found.
func (r *Recorder[T]) WaitFor(match func(T) bool, timeout time.Duration) bool {
	deadline := time.After(timeout)
	ticker := time.NewTicker(5 * time.Millisecond)
	defer ticker.Stop()

	for {
		if r.has(match) {
			return true
		}
		select {
		case <-deadline:
			return r.has(match)
		case <-ticker.C:
		}
	}
}

func (r *Recorder[T]) has(match func(T) bool) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.events {
		if match(e) {
			return true
		}
	}
	return false
}

// Count returns how many recorded payloads match.
func (r *Recorder[T]) Count(match func(T) bool) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if match(e) {
			n++
		}
	}
	return n
}

// AssertPublished asserts that a matching payload is recorded within 500ms.
func (r *Recorder[T]) AssertPublished(t *testing.T, match func(T) bool) {
	t.Helper()
	if !r.WaitFor(match, 500*time.Millisecond) {
		t.Errorf("expected a matching event to be published, but none was")
	}
}

// AssertNotPublished asserts that no matching payload is recorded within the
// given wait period.
func (r *Recorder[T]) AssertNotPublished(t *testing.T, match func(T) bool, wait time.Duration) {
	t.Helper()
	time.Sleep(wait)
	if r.has(match) {
		t.Errorf("expected no matching event to be published, but one was")
	}
}
