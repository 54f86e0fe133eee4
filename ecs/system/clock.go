package system

import (
	"time"

	"github.com/milk9111/dualworld/ecs"
	"github.com/milk9111/dualworld/ecs/component"
)

// Clock is a monotonic time source.
type Clock interface {
	Now() time.Duration
}

// MonotonicClock reports the time elapsed since it was created.
type MonotonicClock struct {
	start time.Time
}

func NewMonotonicClock() *MonotonicClock {
	return &MonotonicClock{start: time.Now()}
}

func (c *MonotonicClock) Now() time.Duration {
	return time.Since(c.start)
}

// ClockSystem writes the singleton Time component at the start of each tick.
// Delta is a fixed step so the simulation does not depend on frame pacing.
type ClockSystem struct {
	clock Clock
	step  float64
}

func NewClockSystem(clock Clock, step float64) *ClockSystem {
	return &ClockSystem{clock: clock, step: step}
}

func (c *ClockSystem) Update(w *ecs.World) {
	if c == nil || w == nil || c.clock == nil {
		return
	}

	e, ok := ecs.First(w, component.TimeComponent.Kind())
	if !ok {
		e = ecs.CreateEntity(w)
		if err := ecs.Add(w, e, component.TimeComponent.Kind(), &component.Time{}); err != nil {
			panic("clock system: add time: " + err.Error())
		}
	}
	t, _ := ecs.Get(w, e, component.TimeComponent.Kind())
	t.Now = c.clock.Now()
	t.Delta = c.step
	t.Tick++
}

func currentTime(w *ecs.World) (component.Time, bool) {
	e, ok := ecs.First(w, component.TimeComponent.Kind())
	if !ok {
		return component.Time{}, false
	}
	t, ok := ecs.Get(w, e, component.TimeComponent.Kind())
	if !ok {
		return component.Time{}, false
	}
	return *t, true
}
