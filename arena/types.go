package arena

// Ref is an opaque reference to a cell in an arena.
// Ref 0 is reserved and always invalid.
type Ref uint32

// Event types for cell lifecycle notifications.
type EventType uint8

const (
	EventAllocated EventType = iota
	EventReleased
	EventSwept
	EventClosed
)

// String returns a human-readable representation of the event type.
func (t EventType) String() string {
	switch t {
	case EventAllocated:
		return "allocated"
	case EventReleased:
		return "released"
	case EventSwept:
		return "swept"
	case EventClosed:
		return "closed"
	default:
		return "?"
	}
}

// Event represents a cell lifecycle event.
type Event struct {
	Value any // value destroyed by a sweep, nil otherwise
	Arena string
	Ref   Ref
	Type  EventType
}

// Observer receives notifications about cell lifecycle events.
type Observer interface {
	OnCellEvent(Event)
}

// ObserverFunc adapts a plain function to the Observer interface.
type ObserverFunc func(Event)

// OnCellEvent calls f.
func (f ObserverFunc) OnCellEvent(e Event) { f(e) }
