package component

// Box is an axis-aligned collider described by its half extents.
type Box struct {
	HalfWidth  float64
	HalfHeight float64
}

func (b Box) Width() float64  { return b.HalfWidth * 2 }
func (b Box) Height() float64 { return b.HalfHeight * 2 }

var BoxComponent = NewComponent[Box]()
