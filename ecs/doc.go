// Package ecs drives motion timelines from a Donburi world.
//
// Attach a [motion.Timeline] to an entity with [AddTimeline] and call
// [UpdateTimelines] once per tick from your update system. Every timeline
// that finishes during a tick publishes a [FinishedEvent] on
// [FinishedEventType]; subscribe to it in your ECS systems to chain work
// after an animation.
//
// Usage:
//
//	tl := motion.NewTimeline(scene, motion.Shift(1, motion.V2(100, 0), node))
//	entity := ecs.AddTimeline(world, tl)
//
//	// each tick
//	if err := ecs.UpdateTimelines(world, 1.0/60); err != nil {
//	    return err
//	}
//	ecs.FinishedEventType.ProcessEvents(world)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
