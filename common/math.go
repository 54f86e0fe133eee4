package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
)

var up = mgl64.Vec2{0, 1}

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// MoveTowards steps current toward target by at most maxDelta and never
// overshoots. A non-positive maxDelta leaves current unchanged.
func MoveTowards(current, target, maxDelta float64) float64 {
	if maxDelta <= 0 {
		return current
	}
	if math.Abs(target-current) <= maxDelta {
		return target
	}
	if target > current {
		return current + maxDelta
	}
	return current - maxDelta
}

// JumpVelocity is the launch speed that peaks at exactly height under constant
// gravity.
func JumpVelocity(height, gravityY float64) float64 {
	return math.Sqrt(2 * height * math.Abs(gravityY))
}

// AngleToUp returns the unsigned angle in degrees between v and +Y. A
// degenerate vector reports 90 so it never counts as ground.
func AngleToUp(v cp.Vector) float64 {
	n := mgl64.Vec2{v.X, v.Y}
	if n.Len() < 1e-9 {
		return 90
	}
	cos := mgl64.Clamp(n.Normalize().Dot(up), -1, 1)
	return mgl64.RadToDeg(math.Acos(cos))
}
