package component

import "time"

// WorldSwitch is the dual-world state owned by a character.
type WorldSwitch struct {
	Active Group
	// PressedAt is the clock reading of the last accepted switch press.
	PressedAt time.Duration
	Flips     int
}

var WorldSwitchComponent = NewComponent[WorldSwitch]()
