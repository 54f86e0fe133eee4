package ecs

import (
	"log"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/dualworld/ecs/component"
)

const (
	collisionTypeSolid cp.CollisionType = iota + 1
	collisionTypeCharacter
)

// Overlap describes one shape overlapping a queried box.
type Overlap struct {
	Entity     Entity
	Overlapped bool
	// ContactA lies on the other solid, ContactB on the queried box.
	// Translating the box by ContactA-ContactB separates the pair.
	ContactA cp.Vector
	ContactB cp.Vector
	// Normal is the separation direction for the queried box.
	Normal cp.Vector
}

// Correction returns the translation that pushes the queried box out of the
// other solid.
func (o Overlap) Correction() cp.Vector {
	return o.ContactA.Sub(o.ContactB)
}

type bodyInfo struct {
	body   *cp.Body
	shape  *cp.Shape
	static bool
}

// PhysicsWorld owns the Chipmunk space used as the spatial index for overlap
// queries. The space is never stepped; motion is integrated by the systems.
type PhysicsWorld struct {
	space *cp.Space

	entities      map[Entity]*bodyInfo
	shapeToEntity map[*cp.Shape]Entity
}

// NewPhysicsWorld creates an empty physics world.
func NewPhysicsWorld() *PhysicsWorld {
	space := cp.NewSpace()
	space.Iterations = 20
	return &PhysicsWorld{
		space:         space,
		entities:      make(map[Entity]*bodyInfo),
		shapeToEntity: make(map[*cp.Shape]Entity),
	}
}

// Space returns the underlying Chipmunk space.
func (pw *PhysicsWorld) Space() *cp.Space {
	if pw == nil {
		return nil
	}
	return pw.space
}

// AddStaticBox registers an immovable box centred on center.
func (pw *PhysicsWorld) AddStaticBox(e Entity, center cp.Vector, halfW, halfH float64) *component.PhysicsBody {
	if pw == nil || pw.space == nil || !e.Valid() {
		return nil
	}
	pw.Remove(e)

	bb := cp.BB{L: center.X - halfW, B: center.Y - halfH, R: center.X + halfW, T: center.Y + halfH}
	shape := cp.NewBox2(pw.space.StaticBody, bb, 0)
	shape.SetCollisionType(collisionTypeSolid)
	pw.space.AddShape(shape)

	pw.entities[e] = &bodyInfo{body: pw.space.StaticBody, shape: shape, static: true}
	pw.shapeToEntity[shape] = e
	return &component.PhysicsBody{Body: pw.space.StaticBody, Shape: shape, Static: true}
}

// AddKinematicBox registers a box whose position is driven by Move.
func (pw *PhysicsWorld) AddKinematicBox(e Entity, center cp.Vector, halfW, halfH float64) *component.PhysicsBody {
	if pw == nil || pw.space == nil || !e.Valid() {
		return nil
	}
	pw.Remove(e)

	body := cp.NewKinematicBody()
	body.SetPosition(center)
	shape := cp.NewBox(body, halfW*2, halfH*2, 0)
	shape.SetCollisionType(collisionTypeCharacter)
	pw.space.AddBody(body)
	pw.space.AddShape(shape)

	pw.entities[e] = &bodyInfo{body: body, shape: shape}
	pw.shapeToEntity[shape] = e
	log.Printf("PhysicsWorld: registered kinematic box for entity %s (%.2fx%.2f)", e, halfW*2, halfH*2)
	return &component.PhysicsBody{Body: body, Shape: shape}
}

// Move places a kinematic body at pos. The shape is removed and re-added so
// its geometry and its bounding box in the spatial index follow the body.
func (pw *PhysicsWorld) Move(e Entity, pos cp.Vector) {
	if pw == nil || pw.space == nil {
		return
	}
	info, ok := pw.entities[e]
	if !ok || info.static {
		return
	}
	info.body.SetPosition(pos)
	pw.space.RemoveShape(info.shape)
	pw.space.AddShape(info.shape)
}

// Remove unregisters every shape of e.
func (pw *PhysicsWorld) Remove(e Entity) {
	if pw == nil || pw.space == nil {
		return
	}
	info, ok := pw.entities[e]
	if !ok {
		return
	}
	pw.space.RemoveShape(info.shape)
	if !info.static {
		pw.space.RemoveBody(info.body)
	}
	delete(pw.shapeToEntity, info.shape)
	delete(pw.entities, e)
}

// EntityForShape maps a Chipmunk shape back to its entity.
func (pw *PhysicsWorld) EntityForShape(shape *cp.Shape) (Entity, bool) {
	if pw == nil {
		return 0, false
	}
	e, ok := pw.shapeToEntity[shape]
	return e, ok
}

// QueryOverlaps returns every registered shape whose bounding box touches a
// box of the given extents centred on pos, including the querying
// character's own box. Overlapped reports whether the two boxes actually
// penetrate; candidates that only share bounding box space carry no contact.
func (pw *PhysicsWorld) QueryOverlaps(box component.Box, pos cp.Vector) []Overlap {
	if pw == nil || pw.space == nil {
		return nil
	}

	queryBody := cp.NewKinematicBody()
	queryBody.SetPosition(pos)
	query := cp.NewBox(queryBody, box.Width(), box.Height(), 0)
	queryBB := query.CacheBB()

	var out []Overlap
	pw.space.BBQuery(queryBB, cp.SHAPE_FILTER_ALL, func(shape *cp.Shape, _ interface{}) {
		e, ok := pw.shapeToEntity[shape]
		if !ok {
			return
		}
		out = append(out, overlapWith(e, query, shape))
	}, nil)
	return out
}

func overlapWith(e Entity, query, shape *cp.Shape) Overlap {
	points := cp.ShapesCollide(query, shape)
	if points.Count == 0 {
		return Overlap{Entity: e}
	}
	deepest := points.Points[0]
	for i := 1; i < points.Count; i++ {
		if points.Points[i].Distance < deepest.Distance {
			deepest = points.Points[i]
		}
	}
	// cp reports the normal from the queried box towards shape; flip it to push the box out.
	return Overlap{
		Entity:     e,
		Overlapped: deepest.Distance < 0,
		ContactA:   deepest.PointB,
		ContactB:   deepest.PointA,
		Normal:     points.Normal.Neg(),
	}
}
