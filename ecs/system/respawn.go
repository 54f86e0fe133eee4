package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/dualworld/ecs"
	"github.com/milk9111/dualworld/ecs/component"
)

// BodyMover keeps a registered body in step with its transform.
type BodyMover interface {
	Move(e ecs.Entity, pos cp.Vector)
}

// RespawnedEvent is the payload of ecs.EventRespawned.
type RespawnedEvent struct {
	Entity ecs.Entity
	X, Y   float64
}

type RespawnSystem struct {
	bodies BodyMover
}

func NewRespawnSystem(bodies BodyMover) *RespawnSystem {
	return &RespawnSystem{bodies: bodies}
}

// Update turns respawn input and kill-plane falls into requests, then
// teleports each requesting character to its spawn point. Velocity, grounded
// and world-switch state are left as they are.
func (s *RespawnSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	killY, hasKillPlane := 0.0, false
	if be, ok := ecs.First(w, component.LevelBoundsComponent.Kind()); ok {
		if b, ok := ecs.Get(w, be, component.LevelBoundsComponent.Kind()); ok {
			killY, hasKillPlane = b.MinY, true
		}
	}

	ecs.ForEach2(w, component.CharacterTagComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, _ *component.CharacterTag, t *component.Transform) {
		requested := false
		if in, ok := ecs.Get(w, e, component.InputComponent.Kind()); ok && in.RespawnPressed {
			requested = true
		}
		if hasKillPlane && t.Y < killY {
			requested = true
		}
		if requested {
			_ = ecs.Add(w, e, component.RespawnRequestComponent.Kind(), &component.RespawnRequest{})
		}
	})

	ecs.ForEach(w, component.RespawnRequestComponent.Kind(), func(e ecs.Entity, _ *component.RespawnRequest) {
		defer ecs.Remove(w, e, component.RespawnRequestComponent.Kind())

		t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			return
		}
		spawn, ok := ecs.Get(w, e, component.SpawnComponent.Kind())
		if !ok {
			return
		}

		t.X, t.Y = spawn.X, spawn.Y
		if s.bodies != nil {
			s.bodies.Move(e, cp.Vector{X: t.X, Y: t.Y})
		}
		w.Events().Push(ecs.Event{Type: ecs.EventRespawned, Data: RespawnedEvent{Entity: e, X: t.X, Y: t.Y}})
	})
}

// RequestRespawn queues a respawn for e, processed on the next tick.
func RequestRespawn(w *ecs.World, e ecs.Entity) error {
	return ecs.Add(w, e, component.RespawnRequestComponent.Kind(), &component.RespawnRequest{})
}
