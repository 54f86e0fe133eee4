package prefabs

import (
	"time"

	"gopkg.in/yaml.v3"
)

type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

// ControllerComponentSpec is the motion tuning block of a character prefab.
// Unset fields fall back to DefaultControllerSpec.
type ControllerComponentSpec struct {
	Speed              *float64 `yaml:"speed"`
	WalkAcceleration   *float64 `yaml:"walk_acceleration"`
	AirAcceleration    *float64 `yaml:"air_acceleration"`
	GroundDeceleration *float64 `yaml:"ground_deceleration"`
	JumpHeight         *float64 `yaml:"jump_height"`
	GravityY           *float64 `yaml:"gravity_y"`
	SwitchHoldMS       *int     `yaml:"switch_hold_ms"`
}

// ControllerValues is a fully resolved controller spec.
type ControllerValues struct {
	Speed              float64
	WalkAcceleration   float64
	AirAcceleration    float64
	GroundDeceleration float64
	JumpHeight         float64
	GravityY           float64
	SwitchHold         time.Duration
}

func DefaultControllerSpec() ControllerValues {
	return ControllerValues{
		Speed:              9,
		WalkAcceleration:   75,
		AirAcceleration:    30,
		GroundDeceleration: 70,
		JumpHeight:         4,
		GravityY:           -9.81,
		SwitchHold:         250 * time.Millisecond,
	}
}

// Resolve fills unset fields from the defaults.
func (s ControllerComponentSpec) Resolve() ControllerValues {
	v := DefaultControllerSpec()
	set := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	set(&v.Speed, s.Speed)
	set(&v.WalkAcceleration, s.WalkAcceleration)
	set(&v.AirAcceleration, s.AirAcceleration)
	set(&v.GroundDeceleration, s.GroundDeceleration)
	set(&v.JumpHeight, s.JumpHeight)
	set(&v.GravityY, s.GravityY)
	if s.SwitchHoldMS != nil {
		v.SwitchHold = time.Duration(*s.SwitchHoldMS) * time.Millisecond
	}
	return v
}

type TransformComponentSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type BoxComponentSpec struct {
	HalfWidth  float64 `yaml:"half_width"`
	HalfHeight float64 `yaml:"half_height"`
}

type SpriteComponentSpec struct {
	Color YAMLColor `yaml:"color"`
	Layer int       `yaml:"layer"`
}

type WorldSwitchComponentSpec struct {
	Active string `yaml:"active"`
}
