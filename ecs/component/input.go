package component

// Input stores per-tick input state for an entity. The *Pressed and
// *Released fields are edge-triggered and only true on the tick the edge
// happened.
type Input struct {
	MoveX          float64
	JumpPressed    bool
	SwitchPressed  bool
	SwitchReleased bool
	RespawnPressed bool
	PausePressed   bool
}

var InputComponent = NewComponent[Input]()
