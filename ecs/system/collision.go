package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/dualworld/common"
	"github.com/milk9111/dualworld/ecs"
	"github.com/milk9111/dualworld/ecs/component"
)

// OverlapQuery is the spatial index consulted by the collision system.
type OverlapQuery interface {
	Move(e ecs.Entity, pos cp.Vector)
	QueryOverlaps(box component.Box, pos cp.Vector) []ecs.Overlap
}

// Resolution is the outcome of resolving one tick of overlaps.
type Resolution struct {
	Position cp.Vector
	Grounded bool
	Lockout  bool
}

// ResolveCollisions corrects pos against every overlapping real candidate and
// derives grounded and lockout. self is skipped by identity. solidity reports
// a candidate's solidity; candidates it does not know about count as real.
//
// Lockout is only cleared when the candidate set holds a single entry. A ghost
// overlap seen alongside a real one keeps the character locked until nothing
// else overlaps at all.
func ResolveCollisions(self ecs.Entity, pos cp.Vector, vy float64, lockout bool, overlaps []ecs.Overlap, solidity func(ecs.Entity) (component.Solidity, bool)) Resolution {
	res := Resolution{Position: pos, Lockout: lockout}

	if len(overlaps) == 1 {
		res.Lockout = false
	}

	for _, o := range overlaps {
		if o.Entity == self || !o.Overlapped {
			continue
		}

		s := component.Real
		if solidity != nil {
			if got, ok := solidity(o.Entity); ok {
				s = got
			}
		}
		if s == component.Ghost {
			res.Lockout = true
			continue
		}

		res.Position = res.Position.Add(o.Correction())
		if common.AngleToUp(o.Normal) < 90 && vy < 0 {
			res.Grounded = true
		}
	}

	return res
}

// CollisionSystem moves each character's box to its tentative position,
// queries overlaps there and writes back the corrected position together
// with the fresh grounded and lockout flags.
type CollisionSystem struct {
	query OverlapQuery
}

func NewCollisionSystem(query OverlapQuery) *CollisionSystem {
	return &CollisionSystem{query: query}
}

func (c *CollisionSystem) Update(w *ecs.World) {
	if c == nil || w == nil || c.query == nil {
		return
	}

	solidity := func(e ecs.Entity) (component.Solidity, bool) {
		obj, ok := ecs.Get(w, e, component.WorldObjectComponent.Kind())
		if !ok {
			return component.Real, false
		}
		return obj.Solidity, true
	}

	ecs.ForEach(w, component.CharacterTagComponent.Kind(), func(e ecs.Entity, _ *component.CharacterTag) {
		t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			return
		}
		box, ok := ecs.Get(w, e, component.BoxComponent.Kind())
		if !ok {
			return
		}
		state, ok := ecs.Get(w, e, component.CharacterStateComponent.Kind())
		if !ok {
			return
		}
		vy := 0.0
		if vel, ok := ecs.Get(w, e, component.VelocityComponent.Kind()); ok {
			vy = vel.Y
		}

		pos := cp.Vector{X: t.X, Y: t.Y}
		c.query.Move(e, pos)
		overlaps := c.query.QueryOverlaps(*box, pos)

		res := ResolveCollisions(e, pos, vy, state.Lockout, overlaps, solidity)
		t.X, t.Y = res.Position.X, res.Position.Y
		c.query.Move(e, res.Position)

		if res.Grounded != state.Grounded {
			w.Events().Push(ecs.Event{Type: ecs.EventGroundedChanged, Data: GroundedChangedEvent{Entity: e, Grounded: res.Grounded}})
		}
		state.Grounded = res.Grounded
		state.Lockout = res.Lockout
	})
}

// GroundedChangedEvent is the payload of ecs.EventGroundedChanged.
type GroundedChangedEvent struct {
	Entity   ecs.Entity
	Grounded bool
}
