// Package ecs provides ECS adapters for cubetower's outcome events.
//
// The primary adapter is [NewDonburiStore], which publishes every drop and
// tower event (stacked, rejected, returned, into-hole, extracted,
// fell-away) into a [Donburi] world as a typed event. Subscribe to
// [DropEventType] in your ECS systems to receive them.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	board, err := cubetower.NewBoard(cfg, cubetower.WithEventStore(store))
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
