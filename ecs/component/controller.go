package component

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var ErrInvalidController = errors.New("controller: invalid configuration")

// Controller holds the motion tuning of a character.
type Controller struct {
	// Speed is the target horizontal speed at full input.
	Speed              float64
	WalkAcceleration   float64
	AirAcceleration    float64
	GroundDeceleration float64
	JumpHeight         float64
	GravityY           float64
	// SwitchHold is how long the switch key must be held for its release to
	// flip the worlds a second time. Must be positive.
	SwitchHold time.Duration
}

// Validate rejects tuning that would produce undefined motion.
func (c Controller) Validate() error {
	nonNegative := []struct {
		name  string
		value float64
	}{
		{"speed", c.Speed},
		{"walk_acceleration", c.WalkAcceleration},
		{"air_acceleration", c.AirAcceleration},
		{"ground_deceleration", c.GroundDeceleration},
		{"jump_height", c.JumpHeight},
	}
	for _, f := range nonNegative {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) || f.value < 0 {
			return fmt.Errorf("%w: %s must be a finite non-negative number, got %v", ErrInvalidController, f.name, f.value)
		}
	}
	if math.IsNaN(c.GravityY) || math.IsInf(c.GravityY, 0) || c.GravityY > 0 {
		return fmt.Errorf("%w: gravity_y must be finite and point down, got %v", ErrInvalidController, c.GravityY)
	}
	if c.SwitchHold <= 0 {
		return fmt.Errorf("%w: switch_hold must be positive, got %v", ErrInvalidController, c.SwitchHold)
	}
	return nil
}

var ControllerComponent = NewComponent[Controller]()
