package ecs

import (
	"github.com/phanxgames/motion"
	"github.com/pkg/errors"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
)

// TimelineData is the component that attaches a timeline to an entity.
type TimelineData struct {
	Timeline *motion.Timeline
	// RemoveOnFinish deletes the entity once its timeline finishes.
	RemoveOnFinish bool
}

// Timeline is the Donburi component type for [TimelineData].
var Timeline = donburi.NewComponentType[TimelineData]()

// FinishedEvent is published when an entity's timeline finishes.
type FinishedEvent struct {
	Entity   donburi.Entity
	Duration float64
}

// FinishedEventType is the Donburi event type for finished timelines.
var FinishedEventType = events.NewEventType[FinishedEvent]()

var timelineQuery = donburi.NewQuery(filter.Contains(Timeline))

// AddTimeline creates an entity carrying tl.
func AddTimeline(world donburi.World, tl *motion.Timeline) donburi.Entity {
	entity := world.Create(Timeline)
	Timeline.SetValue(world.Entry(entity), TimelineData{Timeline: tl})
	return entity
}

// UpdateTimelines advances every timeline in world by dt seconds. Timelines
// that finish during this call publish a FinishedEvent; events are queued
// until ProcessEvents runs. The first timeline error stops the update and is
// returned.
func UpdateTimelines(world donburi.World, dt float32) error {
	var (
		firstErr error
		expired  []donburi.Entity
	)
	timelineQuery.Each(world, func(entry *donburi.Entry) {
		if firstErr != nil {
			return
		}
		data := Timeline.Get(entry)
		if data.Timeline == nil {
			return
		}
		wasDone := data.Timeline.Done()
		if err := data.Timeline.Update(dt); err != nil {
			firstErr = errors.WithMessagef(err, "entity %v", entry.Entity())
			return
		}
		if wasDone || !data.Timeline.Done() {
			return
		}
		FinishedEventType.Publish(world, FinishedEvent{
			Entity:   entry.Entity(),
			Duration: data.Timeline.Animator().Duration(),
		})
		if data.RemoveOnFinish {
			expired = append(expired, entry.Entity())
		}
	})
	// Removing during Each would invalidate the archetype iteration.
	for _, entity := range expired {
		world.Remove(entity)
	}
	return firstErr
}
