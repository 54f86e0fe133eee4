package entity

import (
	"fmt"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/milk9111/dualworld/ecs"
	"github.com/milk9111/dualworld/ecs/component"
	"github.com/milk9111/dualworld/prefabs"
)

type buildContext struct {
	PrefabPath string
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

// componentRegistry maps prefab component names to builders. Registration
// order is build order.
var componentRegistry = newComponentRegistry(
	registration{"character_tag", addCharacterTag},
	registration{"transform", addTransform},
	registration{"velocity", addVelocity},
	registration{"box", addBox},
	registration{"controller", addController},
	registration{"character_state", addCharacterState},
	registration{"input", addInput},
	registration{"world_switch", addWorldSwitch},
	registration{"sprite", addSprite},
)

type registration struct {
	name  string
	build componentBuildFn
}

func newComponentRegistry(regs ...registration) *orderedmap.OrderedMap[string, componentBuildFn] {
	m := orderedmap.NewOrderedMap[string, componentBuildFn]()
	for _, r := range regs {
		m.Set(r.name, r.build)
	}
	return m
}

// BuildEntity creates an entity from a prefab's component map.
func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	return buildFromSpec(w, spec, prefabPath)
}

func buildFromSpec(w *ecs.World, spec prefabs.EntityBuildSpec, prefabPath string) (ecs.Entity, error) {
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}
	for name := range spec.Components {
		if _, ok := componentRegistry.Get(name); !ok {
			return 0, fmt.Errorf("build entity: %q: no builder for component %q", prefabPath, name)
		}
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabPath}

	for el := componentRegistry.Front(); el != nil; el = el.Next() {
		raw, ok := spec.Components[el.Key]
		if !ok {
			continue
		}
		if err := el.Value(w, e, raw, ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, el.Key, err)
		}
	}

	return e, nil
}

func SetEntityTransform(w *ecs.World, e ecs.Entity, x, y float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || t == nil {
		t = &component.Transform{}
	}
	t.X = x
	t.Y = y
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

func addCharacterTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.CharacterTagComponent.Kind(), &component.CharacterTag{})
}

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TransformComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: spec.X, Y: spec.Y})
}

func addVelocity(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.VelocityComponent.Kind(), &component.Velocity{})
}

func addBox(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.BoxComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode box spec: %w", err)
	}
	if spec.HalfWidth <= 0 || spec.HalfHeight <= 0 {
		return fmt.Errorf("box half extents must be positive, got %gx%g", spec.HalfWidth, spec.HalfHeight)
	}
	return ecs.Add(w, e, component.BoxComponent.Kind(), &component.Box{HalfWidth: spec.HalfWidth, HalfHeight: spec.HalfHeight})
}

func addController(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.ControllerComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode controller spec: %w", err)
	}
	ctrl := ControllerFromSpec(spec)
	if err := ctrl.Validate(); err != nil {
		return err
	}
	return ecs.Add(w, e, component.ControllerComponent.Kind(), &ctrl)
}

// ControllerFromSpec resolves a prefab controller block into a component.
func ControllerFromSpec(spec prefabs.ControllerComponentSpec) component.Controller {
	v := spec.Resolve()
	return component.Controller{
		Speed:              v.Speed,
		WalkAcceleration:   v.WalkAcceleration,
		AirAcceleration:    v.AirAcceleration,
		GroundDeceleration: v.GroundDeceleration,
		JumpHeight:         v.JumpHeight,
		GravityY:           v.GravityY,
		SwitchHold:         v.SwitchHold,
	}
}

func addCharacterState(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.CharacterStateComponent.Kind(), &component.CharacterState{})
}

func addInput(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})
}

func addWorldSwitch(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.WorldSwitchComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode world_switch spec: %w", err)
	}
	active := component.GroupA
	if spec.Active != "" {
		active, err = component.ParseGroup(spec.Active)
		if err != nil {
			return err
		}
	}
	return ecs.Add(w, e, component.WorldSwitchComponent.Kind(), &component.WorldSwitch{Active: active})
}

func addSprite(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.SpriteComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode sprite spec: %w", err)
	}
	return ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{Color: spec.Color.NRGBA, Layer: spec.Layer})
}
