package system

import (
	"github.com/milk9111/dualworld/ecs"
	"github.com/milk9111/dualworld/ecs/component"
)

// Telemetry is a read-only snapshot of a character.
type Telemetry struct {
	X, Y      float64
	VX, VY    float64
	Grounded  bool
	CanSwitch bool
	Active    component.Group
	Flips     int
	Tick      uint64
}

// ReadTelemetry copies the public state of character e. It reports false
// when e is not a live character.
func ReadTelemetry(w *ecs.World, e ecs.Entity) (Telemetry, bool) {
	if w == nil || !ecs.Has(w, e, component.CharacterTagComponent.Kind()) {
		return Telemetry{}, false
	}

	var out Telemetry
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		out.X, out.Y = t.X, t.Y
	}
	if v, ok := ecs.Get(w, e, component.VelocityComponent.Kind()); ok {
		out.VX, out.VY = v.X, v.Y
	}
	out.CanSwitch = true
	if s, ok := ecs.Get(w, e, component.CharacterStateComponent.Kind()); ok {
		out.Grounded = s.Grounded
		out.CanSwitch = s.CanSwitch()
	}
	if ws, ok := ecs.Get(w, e, component.WorldSwitchComponent.Kind()); ok {
		out.Active = ws.Active
		out.Flips = ws.Flips
	}
	if tm, ok := currentTime(w); ok {
		out.Tick = tm.Tick
	}
	return out, true
}
