// Package ecs provides ECS adapters for lumen's sense sources.
//
// The primary adapter is [SenseSystem], which syncs entities carrying the
// [Position] and [Source] components into a [lumen.SenseMap] each update,
// recalculates it, and publishes the resulting cell changes to
// [VisibilityEventType] as [Donburi] events. Subscribe to it in your ECS
// systems to react to cells coming into or dropping out of range.
//
// Usage:
//
//	sys := ecs.NewSenseSystem(senseMap)
//	// each frame:
//	sys.Update(world)
//	events.ProcessAllEvents(world)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
