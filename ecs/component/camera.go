package component

// Camera follows the character. X and Y are the world-space point drawn at
// the centre of the screen.
type Camera struct {
	X          float64
	Y          float64
	Zoom       float64
	Smoothness float64
}

var CameraComponent = NewComponent[Camera]()
