package component

import "image/color"

// Sprite is the flat-coloured rectangle drawn for an entity.
type Sprite struct {
	Color color.NRGBA
	Layer int
}

var SpriteComponent = NewComponent[Sprite]()
