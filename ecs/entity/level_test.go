package entity

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/dualworld/ecs"
	"github.com/milk9111/dualworld/ecs/component"
	"github.com/milk9111/dualworld/levels"
	"github.com/milk9111/dualworld/prefabs"
)

func testLevel() *levels.Level {
	kill := -15.0
	return &levels.Level{
		Name:       "test",
		Spawn:      levels.Point{X: 1, Y: 3},
		KillPlaneY: &kill,
		Groups: levels.Groups{
			A: []levels.Object{
				{X: 0, Y: -0.5, Width: 10, Height: 1},
				{X: 8, Y: 2, Width: 2, Height: 0.5, Color: "#112233"},
			},
			B: []levels.Object{
				{X: 12, Y: -0.5, Width: 6, Height: 1},
			},
		},
	}
}

func TestBuildLevel(t *testing.T) {
	w := ecs.NewWorld()
	pw := ecs.NewPhysicsWorld()

	out, err := BuildLevel(w, pw, testLevel())
	if err != nil {
		t.Fatalf("BuildLevel: %v", err)
	}
	if len(out.GroupA) != 2 || len(out.GroupB) != 1 {
		t.Fatalf("groups = %d/%d, want 2/1", len(out.GroupA), len(out.GroupB))
	}

	for _, e := range out.GroupA {
		obj, _ := ecs.Get(w, e, component.WorldObjectComponent.Kind())
		if obj.Group != component.GroupA || obj.Solidity != component.Real {
			t.Fatalf("group A object %s = %+v, want real", e, obj)
		}
	}
	for _, e := range out.GroupB {
		obj, _ := ecs.Get(w, e, component.WorldObjectComponent.Kind())
		if obj.Group != component.GroupB || obj.Solidity != component.Ghost {
			t.Fatalf("group B object %s = %+v, want ghost", e, obj)
		}
	}

	sprite, _ := ecs.Get(w, out.GroupA[1], component.SpriteComponent.Kind())
	if sprite.Color.R != 0x11 || sprite.Color.G != 0x22 || sprite.Color.B != 0x33 {
		t.Fatalf("sprite colour = %v, want #112233", sprite.Color)
	}

	spawn, ok := ecs.Get(w, out.Character, component.SpawnComponent.Kind())
	if !ok || spawn.X != 1 || spawn.Y != 3 {
		t.Fatalf("spawn = %+v, want (1, 3)", spawn)
	}
	tr, _ := ecs.Get(w, out.Character, component.TransformComponent.Kind())
	if tr.X != 1 || tr.Y != 3 {
		t.Fatalf("character at (%v, %v), want spawn", tr.X, tr.Y)
	}
	ws, _ := ecs.Get(w, out.Character, component.WorldSwitchComponent.Kind())
	if ws.Active != component.GroupA {
		t.Fatalf("active = %s, want A", ws.Active)
	}
	bounds, ok := ecs.Get(w, out.Bounds, component.LevelBoundsComponent.Kind())
	if !ok || bounds.MinY != -15 {
		t.Fatalf("bounds = %+v, want kill plane -15", bounds)
	}
	if !ecs.Has(w, out.Camera, component.CameraComponent.Kind()) {
		t.Fatalf("camera not built")
	}

	// The character's own box is registered, so a query at spawn sees it.
	box, _ := ecs.Get(w, out.Character, component.BoxComponent.Kind())
	overlaps := pw.QueryOverlaps(*box, cp.Vector{X: 1, Y: 3})
	if len(overlaps) != 1 || overlaps[0].Entity != out.Character {
		t.Fatalf("overlaps at spawn = %+v, want only the character", overlaps)
	}
}

func TestBuildLevelHonoursPrefabActiveGroup(t *testing.T) {
	spec := prefabs.EntityBuildSpec{
		Name: "character_b",
		Components: map[string]any{
			"character_tag":   map[string]any{},
			"transform":       map[string]any{},
			"velocity":        map[string]any{},
			"box":             map[string]any{"half_width": 0.5, "half_height": 0.5},
			"character_state": map[string]any{},
			"world_switch":    map[string]any{"active": "b"},
		},
	}
	startInB := func(w *ecs.World, pw *ecs.PhysicsWorld, x, y float64) (ecs.Entity, error) {
		e, err := buildFromSpec(w, spec, spec.Name)
		if err != nil {
			return 0, err
		}
		return e, placeCharacter(w, pw, e, x, y)
	}

	w := ecs.NewWorld()
	out, err := buildLevel(w, ecs.NewPhysicsWorld(), testLevel(), startInB)
	if err != nil {
		t.Fatalf("buildLevel: %v", err)
	}

	ws, ok := ecs.Get(w, out.Character, component.WorldSwitchComponent.Kind())
	if !ok || ws.Active != component.GroupB {
		t.Fatalf("world switch = %+v, want active group B", ws)
	}
	for _, e := range out.GroupA {
		if obj, _ := ecs.Get(w, e, component.WorldObjectComponent.Kind()); obj.Solidity != component.Ghost {
			t.Fatalf("group A object %s = %+v, want ghost", e, obj)
		}
	}
	for _, e := range out.GroupB {
		if obj, _ := ecs.Get(w, e, component.WorldObjectComponent.Kind()); obj.Solidity != component.Real {
			t.Fatalf("group B object %s = %+v, want real", e, obj)
		}
	}
}

func TestBuildLevelRejectsBadColour(t *testing.T) {
	lvl := testLevel()
	lvl.Groups.B[0].Color = "nope"
	if _, err := BuildLevel(ecs.NewWorld(), ecs.NewPhysicsWorld(), lvl); err == nil {
		t.Fatalf("expected error for bad colour")
	}
}

func TestBuildLevelFromEmbeddedFile(t *testing.T) {
	lvl, err := levels.LoadLevelFromFS("crossing")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	out, err := BuildLevel(ecs.NewWorld(), ecs.NewPhysicsWorld(), lvl)
	if err != nil {
		t.Fatalf("BuildLevel: %v", err)
	}
	if len(out.GroupA) != len(lvl.Groups.A) || len(out.GroupB) != len(lvl.Groups.B) {
		t.Fatalf("group sizes do not match level file")
	}
}

func TestBuildFromSpecErrors(t *testing.T) {
	cases := []struct {
		name string
		spec prefabs.EntityBuildSpec
	}{
		{"no_components", prefabs.EntityBuildSpec{Name: "empty"}},
		{"unknown_component", prefabs.EntityBuildSpec{Components: map[string]any{"jetpack": map[string]any{}}}},
		{"bad_box", prefabs.EntityBuildSpec{Components: map[string]any{"box": map[string]any{"half_width": 0, "half_height": 1}}}},
		{"upward_gravity", prefabs.EntityBuildSpec{Components: map[string]any{"controller": map[string]any{"gravity_y": 3}}}},
		{"negative_jump", prefabs.EntityBuildSpec{Components: map[string]any{"controller": map[string]any{"jump_height": -1}}}},
		{"zero_switch_hold", prefabs.EntityBuildSpec{Components: map[string]any{"controller": map[string]any{"switch_hold_ms": 0}}}},
		{"bad_group", prefabs.EntityBuildSpec{Components: map[string]any{"world_switch": map[string]any{"active": "c"}}}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := ecs.NewWorld()
			if _, err := buildFromSpec(w, c.spec, c.name); err == nil {
				t.Fatalf("expected error")
			}
			if n := len(ecs.Entities(w)); n != 0 {
				t.Fatalf("%d entities left behind after failed build", n)
			}
		})
	}
}

func TestReloadControllerKeepsComponentPointer(t *testing.T) {
	w := ecs.NewWorld()
	e, err := NewCharacterAt(w, ecs.NewPhysicsWorld(), 0, 0)
	if err != nil {
		t.Fatalf("NewCharacterAt: %v", err)
	}
	before, _ := ecs.Get(w, e, component.ControllerComponent.Kind())
	before.Speed = 1

	if err := ReloadController(w, e); err != nil {
		t.Fatalf("ReloadController: %v", err)
	}
	after, _ := ecs.Get(w, e, component.ControllerComponent.Kind())
	if after.Speed != 9 {
		t.Fatalf("speed = %v, want prefab value 9", after.Speed)
	}
}
