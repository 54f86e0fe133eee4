package system

import (
	"math"
	"testing"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/dualworld/ecs"
	"github.com/milk9111/dualworld/ecs/component"
)

func approxEqual(t *testing.T, got, want, tol float64, field string) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Fatalf("%s = %.8f, want %.8f (tol=%.8f)", field, got, want, tol)
	}
}

func testController() component.Controller {
	return component.Controller{
		Speed:              9,
		WalkAcceleration:   75,
		AirAcceleration:    30,
		GroundDeceleration: 70,
		JumpHeight:         4,
		GravityY:           -20,
		SwitchHold:         250 * time.Millisecond,
	}
}

func TestIntegrateVelocity(t *testing.T) {
	ctrl := testController()
	launch := math.Sqrt(2 * 4 * 20)

	cases := []struct {
		name     string
		vel      cp.Vector
		grounded bool
		jump     bool
		axis     float64
		dt       float64
		want     cp.Vector
	}{
		{"grounded_zeroes_then_gravity", cp.Vector{X: 0, Y: -5}, true, false, 0, 0.1, cp.Vector{X: 0, Y: -2}},
		{"jump_from_ground", cp.Vector{}, true, true, 0, 0.1, cp.Vector{X: 0, Y: launch - 2}},
		{"jump_ignored_in_air", cp.Vector{X: 0, Y: 3}, false, true, 0, 0.1, cp.Vector{X: 0, Y: 1}},
		{"walk_acceleration_no_overshoot", cp.Vector{}, true, false, 1, 0.1, cp.Vector{X: 7.5, Y: -2}},
		{"walk_clamps_at_speed", cp.Vector{X: 7.5}, true, false, 1, 0.1, cp.Vector{X: 9, Y: -2}},
		{"walk_left", cp.Vector{}, true, false, -1, 0.1, cp.Vector{X: -7.5, Y: -2}},
		{"air_acceleration", cp.Vector{}, false, false, 1, 0.1, cp.Vector{X: 3, Y: -2}},
		{"ground_deceleration_stops_at_zero", cp.Vector{X: 5}, true, false, 0, 0.1, cp.Vector{X: 0, Y: -2}},
		{"ground_deceleration_partial", cp.Vector{X: -9}, true, false, 0, 0.1, cp.Vector{X: -2, Y: -2}},
		{"no_air_deceleration", cp.Vector{X: 6, Y: 0}, false, false, 0, 0.1, cp.Vector{X: 6, Y: -2}},
		{"axis_clamped", cp.Vector{}, true, false, 3, 1, cp.Vector{X: 9, Y: -20}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := IntegrateVelocity(c.vel, c.grounded, c.jump, c.axis, c.dt, ctrl)
			approxEqual(t, got.X, c.want.X, 1e-9, "vx")
			approxEqual(t, got.Y, c.want.Y, 1e-9, "vy")
		})
	}
}

func TestIntegrateVelocityGroundedVerticalIsGravityStep(t *testing.T) {
	ctrl := testController()
	for _, dt := range []float64{1.0 / 240, 1.0 / 60, 0.05, 0.25} {
		got := IntegrateVelocity(cp.Vector{X: 1, Y: -37}, true, false, 0, dt, ctrl)
		approxEqual(t, got.Y, ctrl.GravityY*dt, 1e-12, "vy")
	}
}

func TestJumpReachesConfiguredHeight(t *testing.T) {
	ctrl := testController()
	const dt = 1.0 / 600

	y, peak := 0.0, 0.0
	vel := IntegrateVelocity(cp.Vector{}, true, true, 0, dt, ctrl)
	approxEqual(t, vel.Y+(-ctrl.GravityY*dt), 12.6491, 1e-3, "launch vy")
	for i := 0; i < 10000 && (i == 0 || vel.Y > 0); i++ {
		if i > 0 {
			vel = IntegrateVelocity(vel, false, false, 0, dt, ctrl)
		}
		y += vel.Y * dt
		peak = math.Max(peak, y)
	}
	approxEqual(t, peak, ctrl.JumpHeight, 0.05, "apex")
}

type fakeClock struct {
	now time.Duration
}

func (c *fakeClock) Now() time.Duration { return c.now }

func TestMotionSystemAppliesTentativePosition(t *testing.T) {
	w := ecs.NewWorld()
	clock := &fakeClock{}
	NewClockSystem(clock, 0.1).Update(w)

	e := ecs.CreateEntity(w)
	ctrl := testController()
	mustAdd(t, w, e, component.CharacterTagComponent.Kind(), &component.CharacterTag{})
	mustAdd(t, w, e, component.ControllerComponent.Kind(), &ctrl)
	mustAdd(t, w, e, component.TransformComponent.Kind(), &component.Transform{X: 1, Y: 2})
	mustAdd(t, w, e, component.VelocityComponent.Kind(), &component.Velocity{})
	mustAdd(t, w, e, component.CharacterStateComponent.Kind(), &component.CharacterState{Grounded: true})
	mustAdd(t, w, e, component.InputComponent.Kind(), &component.Input{MoveX: 1})

	NewMotionSystem().Update(w)

	v, _ := ecs.Get(w, e, component.VelocityComponent.Kind())
	approxEqual(t, v.X, 7.5, 1e-9, "vx")
	approxEqual(t, v.Y, -2, 1e-9, "vy")
	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	approxEqual(t, tr.X, 1.75, 1e-9, "x")
	approxEqual(t, tr.Y, 1.8, 1e-9, "y")
}

func TestClockSystemAdvancesTick(t *testing.T) {
	w := ecs.NewWorld()
	clock := &fakeClock{now: 5 * time.Millisecond}
	cs := NewClockSystem(clock, 1.0/60)

	cs.Update(w)
	clock.now = 21 * time.Millisecond
	cs.Update(w)

	tm, ok := currentTime(w)
	if !ok {
		t.Fatalf("expected time singleton")
	}
	if tm.Tick != 2 || tm.Now != 21*time.Millisecond {
		t.Fatalf("time = %+v, want tick 2 at 21ms", tm)
	}
	approxEqual(t, tm.Delta, 1.0/60, 1e-12, "delta")
}

func mustAdd[T any](t *testing.T, w *ecs.World, e ecs.Entity, kind component.ComponentKind[T], value *T) {
	t.Helper()
	if err := ecs.Add(w, e, kind, value); err != nil {
		t.Fatalf("add component: %v", err)
	}
}
