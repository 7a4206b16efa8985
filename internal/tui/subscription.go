package tui

import (
	"sync"

	tea "charm.land/bubbletea/v2"

	"github.com/colonyops/toasty/internal/core/logging"
	"github.com/colonyops/toasty/internal/core/toast"
)

const eventBuffer = 256

// StoreEventMsg carries a store event into the update loop.
type StoreEventMsg struct {
	Event toast.Event
}

// EventSource is the subscription half of a toast store.
type EventSource interface {
	Subscribe(fn func(toast.Event)) func()
}

// Subscription forwards store events into the Bubble Tea loop. Publishing
// never blocks: when the buffer is full the event is dropped, which only
// costs a status line since the model re-reads the store on every event.
type Subscription struct {
	events      chan toast.Event
	done        chan struct{}
	unsubscribe func()
	once        sync.Once
}

// Subscribe starts forwarding events from src.
func Subscribe(src EventSource) *Subscription {
	s := &Subscription{
		events: make(chan toast.Event, eventBuffer),
		done:   make(chan struct{}),
	}
	s.unsubscribe = src.Subscribe(s.forward)
	return s
}

func (s *Subscription) forward(e toast.Event) {
	select {
	case s.events <- e:
	default:
		logging.Component("tui").Debug().Str("kind", string(e.Kind)).Msg("event buffer full, dropping event")
	}
}

// Wait returns a command that delivers the next event as a StoreEventMsg. It
// must be re-armed after each delivery.
func (s *Subscription) Wait() tea.Cmd {
	return func() tea.Msg {
		select {
		case e := <-s.events:
			return StoreEventMsg{Event: e}
		case <-s.done:
			return nil
		}
	}
}

// Close stops forwarding and releases any pending Wait.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.unsubscribe()
		close(s.done)
	})
}
