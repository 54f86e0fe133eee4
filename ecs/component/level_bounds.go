package component

// LevelBounds stores the kill plane of the current level. A character whose
// centre drops below MinY is sent back to its spawn.
type LevelBounds struct {
	MinY float64
}

var LevelBoundsComponent = NewComponent[LevelBounds]()
