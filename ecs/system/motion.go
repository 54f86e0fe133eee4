package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/dualworld/common"
	"github.com/milk9111/dualworld/ecs"
	"github.com/milk9111/dualworld/ecs/component"
)

// MotionSystem integrates character velocity and applies it to the
// transform as a tentative position for the collision system to correct.
type MotionSystem struct{}

func NewMotionSystem() *MotionSystem {
	return &MotionSystem{}
}

func (m *MotionSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	tm, ok := currentTime(w)
	if !ok || tm.Delta <= 0 {
		return
	}

	ecs.ForEach(w, component.CharacterTagComponent.Kind(), func(e ecs.Entity, _ *component.CharacterTag) {
		ctrl, ok := ecs.Get(w, e, component.ControllerComponent.Kind())
		if !ok {
			return
		}
		t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			return
		}
		vel, ok := ecs.Get(w, e, component.VelocityComponent.Kind())
		if !ok {
			return
		}
		var state component.CharacterState
		if s, ok := ecs.Get(w, e, component.CharacterStateComponent.Kind()); ok {
			state = *s
		}
		var input component.Input
		if in, ok := ecs.Get(w, e, component.InputComponent.Kind()); ok {
			input = *in
		}

		v := IntegrateVelocity(cp.Vector{X: vel.X, Y: vel.Y}, state.Grounded, input.JumpPressed, input.MoveX, tm.Delta, *ctrl)
		vel.X, vel.Y = v.X, v.Y
		t.X += v.X * tm.Delta
		t.Y += v.Y * tm.Delta
	})
}

// IntegrateVelocity advances velocity by one tick of length dt.
//
// A grounded character has its vertical velocity zeroed, or set to the jump
// launch speed when jump fires. Gravity is then applied every tick, the jump
// tick included. Horizontal velocity moves toward speed*axis using walk or air
// acceleration; with no input it decelerates on the ground and is left alone
// in the air.
func IntegrateVelocity(vel cp.Vector, grounded, jump bool, axis, dt float64, ctrl component.Controller) cp.Vector {
	if grounded {
		vel.Y = 0
		if jump {
			vel.Y = common.JumpVelocity(ctrl.JumpHeight, ctrl.GravityY)
		}
	}

	vel.Y += ctrl.GravityY * dt

	acceleration := ctrl.AirAcceleration
	deceleration := 0.0
	if grounded {
		acceleration = ctrl.WalkAcceleration
		deceleration = ctrl.GroundDeceleration
	}

	axis = mgl64.Clamp(axis, -1, 1)
	if axis != 0 {
		vel.X = common.MoveTowards(vel.X, ctrl.Speed*axis, acceleration*dt)
	} else {
		vel.X = common.MoveTowards(vel.X, 0, deceleration*dt)
	}
	return vel
}
