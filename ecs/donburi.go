package ecs

import (
	"github.com/phanxgames/cubetower"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// DropEventType is the Donburi event type for cubetower outcome events.
var DropEventType = events.NewEventType[cubetower.Event]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EventStore backed by a Donburi world. Events
// are queued on DropEventType and delivered by ProcessEvents.
func NewDonburiStore(world donburi.World) cubetower.EventStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event cubetower.Event) {
	DropEventType.Publish(s.world, event)
}

// Tally counts outcome events by type. Attach it to a world with Track.
type Tally struct {
	counts map[cubetower.EventType]int
}

// Track subscribes a new Tally to world.
func Track(world donburi.World) *Tally {
	t := &Tally{counts: make(map[cubetower.EventType]int)}
	DropEventType.Subscribe(world, func(_ donburi.World, e cubetower.Event) {
		t.counts[e.Type]++
	})
	return t
}

// Count returns how many events of typ were processed.
func (t *Tally) Count(typ cubetower.EventType) int {
	return t.counts[typ]
}
