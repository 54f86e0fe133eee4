package component

// CharacterState is recomputed by the collision system every tick.
type CharacterState struct {
	Grounded bool
	// Lockout blocks world switching while the character is embedded in a
	// ghost object.
	Lockout bool
}

func (s CharacterState) CanSwitch() bool {
	return !s.Lockout
}

var CharacterStateComponent = NewComponent[CharacterState]()
