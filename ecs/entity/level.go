package entity

import (
	"fmt"
	"image/color"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/dualworld/ecs"
	"github.com/milk9111/dualworld/ecs/component"
	"github.com/milk9111/dualworld/ecs/system"
	"github.com/milk9111/dualworld/levels"
	"github.com/milk9111/dualworld/prefabs"
	"golang.org/x/image/colornames"
)

// LevelEntities are the handles produced by BuildLevel. GroupA and GroupB
// keep the order the objects were listed in the level file.
type LevelEntities struct {
	Character ecs.Entity
	Camera    ecs.Entity
	Bounds    ecs.Entity
	GroupA    []ecs.Entity
	GroupB    []ecs.Entity
}

var defaultGroupColors = map[component.Group]color.NRGBA{
	component.GroupA: toNRGBA(colornames.Steelblue),
	component.GroupB: toNRGBA(colornames.Palevioletred),
}

type characterFactory func(w *ecs.World, pw *ecs.PhysicsWorld, x, y float64) (ecs.Entity, error)

// BuildLevel populates w and pw from lvl. Solidity of both groups follows the
// active group of the character prefab's world switch, group A when the
// prefab has none.
func BuildLevel(w *ecs.World, pw *ecs.PhysicsWorld, lvl *levels.Level) (*LevelEntities, error) {
	return buildLevel(w, pw, lvl, NewCharacterAt)
}

func buildLevel(w *ecs.World, pw *ecs.PhysicsWorld, lvl *levels.Level, newCharacter characterFactory) (*LevelEntities, error) {
	if w == nil || pw == nil || lvl == nil {
		return nil, fmt.Errorf("build level: world, physics world and level are required")
	}
	if err := lvl.Validate(); err != nil {
		return nil, fmt.Errorf("build level %q: %w", lvl.Name, err)
	}

	out := &LevelEntities{}
	for _, group := range []struct {
		id      component.Group
		objects []levels.Object
		dst     *[]ecs.Entity
	}{
		{component.GroupA, lvl.Groups.A, &out.GroupA},
		{component.GroupB, lvl.Groups.B, &out.GroupB},
	} {
		for i, obj := range group.objects {
			e, err := newWorldObject(w, pw, group.id, obj)
			if err != nil {
				return nil, fmt.Errorf("build level %q: group %s object %d: %w", lvl.Name, group.id, i, err)
			}
			*group.dst = append(*group.dst, e)
		}
	}

	if lvl.KillPlaneY != nil {
		out.Bounds = ecs.CreateEntity(w)
		if err := ecs.Add(w, out.Bounds, component.LevelBoundsComponent.Kind(), &component.LevelBounds{MinY: *lvl.KillPlaneY}); err != nil {
			return nil, fmt.Errorf("build level %q: add bounds: %w", lvl.Name, err)
		}
	}

	character, err := newCharacter(w, pw, lvl.Spawn.X, lvl.Spawn.Y)
	if err != nil {
		return nil, fmt.Errorf("build level %q: %w", lvl.Name, err)
	}
	out.Character = character

	active := component.GroupA
	if ws, ok := ecs.Get(w, character, component.WorldSwitchComponent.Kind()); ok {
		active = ws.Active
	}
	system.ApplySolidity(w, out.GroupA, out.GroupB, active)

	camera, err := NewCameraAt(w, lvl.Spawn.X, lvl.Spawn.Y)
	if err != nil {
		return nil, fmt.Errorf("build level %q: %w", lvl.Name, err)
	}
	out.Camera = camera

	return out, nil
}

func newWorldObject(w *ecs.World, pw *ecs.PhysicsWorld, group component.Group, obj levels.Object) (ecs.Entity, error) {
	clr := defaultGroupColors[group]
	if obj.Color != "" {
		parsed, err := prefabs.ParseHexColor(obj.Color)
		if err != nil {
			return 0, err
		}
		clr = parsed
	}

	halfW, halfH := obj.Width/2, obj.Height/2
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: obj.X, Y: obj.Y}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.BoxComponent.Kind(), &component.Box{HalfWidth: halfW, HalfHeight: halfH}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{Color: clr}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.WorldObjectComponent.Kind(), &component.WorldObject{Group: group}); err != nil {
		return 0, err
	}
	body := pw.AddStaticBox(e, cp.Vector{X: obj.X, Y: obj.Y}, halfW, halfH)
	if body == nil {
		return 0, fmt.Errorf("register static box")
	}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), body); err != nil {
		return 0, err
	}
	return e, nil
}

func toNRGBA(c color.RGBA) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}
