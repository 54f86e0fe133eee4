package common

import "time"

const (
	BaseWidth  = 1280
	BaseHeight = 720

	// PixelsPerUnit converts world units to screen pixels.
	PixelsPerUnit = 32.0

	TPS = 60

	// SwitchHoldThreshold separates a tap from a held switch press.
	SwitchHoldThreshold = 250 * time.Millisecond

	// GhostOpacity is the presentation alpha of objects in the inactive group.
	GhostOpacity = 0.5
	RealOpacity  = 1.0
)
