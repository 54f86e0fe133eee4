package component

import "github.com/jakecoffman/cp"

// PhysicsBody stores the Chipmunk2D body and box shape registered for an
// entity in the physics world.
type PhysicsBody struct {
	Body   *cp.Body
	Shape  *cp.Shape
	Static bool
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
