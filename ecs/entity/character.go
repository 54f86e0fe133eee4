package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/dualworld/ecs"
	"github.com/milk9111/dualworld/ecs/component"
	"github.com/milk9111/dualworld/prefabs"
)

const CharacterPrefab = "character.yaml"

// NewCharacterAt builds the character prefab at (x, y), records that point
// as its spawn and registers its box with the physics world.
func NewCharacterAt(w *ecs.World, pw *ecs.PhysicsWorld, x, y float64) (ecs.Entity, error) {
	e, err := BuildEntity(w, CharacterPrefab)
	if err != nil {
		return 0, err
	}
	if err := placeCharacter(w, pw, e, x, y); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, err
	}
	return e, nil
}

func placeCharacter(w *ecs.World, pw *ecs.PhysicsWorld, e ecs.Entity, x, y float64) error {
	if !ecs.Has(w, e, component.CharacterTagComponent.Kind()) {
		return fmt.Errorf("character: prefab does not define character_tag")
	}
	box, ok := ecs.Get(w, e, component.BoxComponent.Kind())
	if !ok {
		return fmt.Errorf("character: prefab does not define box")
	}
	if err := SetEntityTransform(w, e, x, y); err != nil {
		return fmt.Errorf("character: override transform: %w", err)
	}
	if err := ecs.Add(w, e, component.SpawnComponent.Kind(), &component.Spawn{X: x, Y: y}); err != nil {
		return fmt.Errorf("character: add spawn: %w", err)
	}
	body := pw.AddKinematicBox(e, cp.Vector{X: x, Y: y}, box.HalfWidth, box.HalfHeight)
	if body == nil {
		return fmt.Errorf("character: register physics body")
	}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), body); err != nil {
		return fmt.Errorf("character: add physics body: %w", err)
	}
	return nil
}

// ReloadController re-reads the controller block of the character prefab and
// applies it to e. The current tuning is kept when the prefab is invalid.
func ReloadController(w *ecs.World, e ecs.Entity) error {
	spec, err := prefabs.LoadEntityBuildSpec(CharacterPrefab)
	if err != nil {
		return fmt.Errorf("reload controller: %w", err)
	}
	raw, ok := spec.Components["controller"]
	if !ok {
		return fmt.Errorf("reload controller: %s has no controller block", CharacterPrefab)
	}
	ctrlSpec, err := prefabs.DecodeComponentSpec[prefabs.ControllerComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("reload controller: decode: %w", err)
	}
	ctrl := ControllerFromSpec(ctrlSpec)
	if err := ctrl.Validate(); err != nil {
		return fmt.Errorf("reload controller: %w", err)
	}

	current, ok := ecs.Get(w, e, component.ControllerComponent.Kind())
	if !ok {
		return ecs.Add(w, e, component.ControllerComponent.Kind(), &ctrl)
	}
	*current = ctrl
	return nil
}
