package cubetower

// EventType identifies a drop or tower outcome.
type EventType uint8

const (
	EventStacked   EventType = iota // a source cube was accepted onto a tower
	EventRejected                   // a drop was refused (capacity, miss, foreign target)
	EventReturned                   // a tower cube was dropped back, its slot is shown again
	EventIntoHole                   // a dragged proxy was swallowed by the hole
	EventExtracted                  // a tower cube was removed by index
	EventFellAway                   // a cube lost support and was evicted by a collapse
)

var eventNames = [...]string{"stacked", "rejected", "returned", "into-hole", "extracted", "fell-away"}

func (t EventType) String() string {
	if int(t) < len(eventNames) {
		return eventNames[t]
	}
	return "unknown"
}

// Event is emitted for every resolved drop and every tower mutation.
// Index is the tower slot involved, or -1. Count is the tower size after
// the mutation, or -1 when no tower was involved.
type Event struct {
	Type    EventType
	Payload Payload
	Index   int
	Count   int
}

// EventStore receives outcome events, e.g. to forward them into an ECS.
type EventStore interface {
	EmitEvent(event Event)
}

// eventSink is a nil-safe EventStore holder shared by the engine parts.
type eventSink struct {
	store EventStore
}

func (s *eventSink) emit(e Event) {
	if s == nil || s.store == nil {
		return
	}
	s.store.EmitEvent(e)
}
