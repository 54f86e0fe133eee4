package component

// Spawn is the respawn point recorded when the character was built.
type Spawn struct {
	X float64
	Y float64
}

var SpawnComponent = NewComponent[Spawn]()
