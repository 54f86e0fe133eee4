package system

import (
	"github.com/milk9111/dualworld/common"
	"github.com/milk9111/dualworld/ecs"
)

// NewPipeline wires the per-tick systems in order: input, clock, respawn,
// motion, collision, world switch, camera. World switch runs after collision
// so it sees this tick's lockout.
func NewPipeline(input ecs.System, clock Clock, pw *ecs.PhysicsWorld, worldSwitch *WorldSwitchSystem) *ecs.Scheduler {
	return ecs.NewScheduler(
		input,
		NewClockSystem(clock, 1.0/float64(common.TPS)),
		NewRespawnSystem(pw),
		NewMotionSystem(),
		NewCollisionSystem(pw),
		worldSwitch,
		NewCameraSystem(),
	)
}
