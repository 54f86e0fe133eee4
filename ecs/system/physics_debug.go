package system

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/dualworld/ecs"
	"github.com/milk9111/dualworld/ecs/component"
)

const debugDotSize = 4

// DrawPhysicsDebug outlines every shape in the physics world. Real objects
// are green, ghost objects grey and the character blue.
func DrawPhysicsDebug(pw *ecs.PhysicsWorld, w *ecs.World, screen *ebiten.Image) {
	if pw == nil || pw.Space() == nil || w == nil || screen == nil {
		return
	}

	b := screen.Bounds()
	drawer := &physicsDebugDrawer{
		screen: screen,
		view:   cameraView(w, b.Dx(), b.Dy()),
		pw:     pw,
		w:      w,
	}
	cp.DrawSpace(pw.Space(), drawer)
}

type physicsDebugDrawer struct {
	screen *ebiten.Image
	view   view
	pw     *ecs.PhysicsWorld
	w      *ecs.World
}

func (d *physicsDebugDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	d.DrawDot(radius*2, pos, fill, data)
}

func (d *physicsDebugDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, fill)
}

func (d *physicsDebugDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, fill)
}

func (d *physicsDebugDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	if count <= 0 {
		return
	}
	verts = verts[:count]
	for i := range verts {
		d.drawLine(verts[i], verts[(i+1)%len(verts)], fill)
	}
}

func (d *physicsDebugDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	if size <= 0 {
		size = debugDotSize
	}
	x, y := d.view.toScreen(pos)
	half := float32(size / 2)
	vector.StrokeLine(d.screen, float32(x)-half, float32(y), float32(x)+half, float32(y), 1, toNRGBA(fill), false)
	vector.StrokeLine(d.screen, float32(x), float32(y)-half, float32(x), float32(y)+half, 1, toNRGBA(fill), false)
}

func (d *physicsDebugDrawer) Flags() uint {
	return cp.DRAW_SHAPES
}

func (d *physicsDebugDrawer) OutlineColor() cp.FColor {
	return cp.FColor{R: 0.2, G: 1, B: 0.2, A: 0.9}
}

func (d *physicsDebugDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	e, ok := d.pw.EntityForShape(shape)
	if !ok {
		return cp.FColor{R: 1, G: 0.2, B: 0.2, A: 0.9}
	}
	if ecs.Has(d.w, e, component.CharacterTagComponent.Kind()) {
		return cp.FColor{R: 0.3, G: 0.6, B: 1, A: 1}
	}
	if obj, ok := ecs.Get(d.w, e, component.WorldObjectComponent.Kind()); ok && obj.Solidity == component.Ghost {
		return cp.FColor{R: 0.6, G: 0.6, B: 0.6, A: 0.6}
	}
	return cp.FColor{R: 0.2, G: 1, B: 0.2, A: 0.9}
}

func (d *physicsDebugDrawer) ConstraintColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.5, B: 0.1, A: 0.9}
}

func (d *physicsDebugDrawer) CollisionPointColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.2, B: 0.2, A: 0.9}
}

func (d *physicsDebugDrawer) Data() interface{} {
	return nil
}

func (d *physicsDebugDrawer) drawLine(a, b cp.Vector, c cp.FColor) {
	x1, y1 := d.view.toScreen(a)
	x2, y2 := d.view.toScreen(b)
	vector.StrokeLine(d.screen, float32(x1), float32(y1), float32(x2), float32(y2), 1, toNRGBA(c), false)
}

func toNRGBA(c cp.FColor) color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp01(c.R) * 255),
		G: uint8(clamp01(c.G) * 255),
		B: uint8(clamp01(c.B) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
