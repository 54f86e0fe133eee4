package component

type CharacterTag struct{}

var CharacterTagComponent = NewComponent[CharacterTag]()
