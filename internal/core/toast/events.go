package toast

// EventKind identifies the store mutation that produced an Event.
type EventKind string

const (
	EventAdded    EventKind = "added"
	EventRemoved  EventKind = "removed"
	EventEvicted  EventKind = "evicted"
	EventExpired  EventKind = "expired"
	EventCleared  EventKind = "cleared"
	EventProgress EventKind = "progress"
)

// Event is published after every store mutation.
type Event struct {
	Kind EventKind

	// Toast is the record the mutation applied to. It is the zero value for
	// cleared and progress events.
	Toast Toast

	// Toasts is the insertion-ordered store contents after the mutation.
	Toasts []Toast
}
