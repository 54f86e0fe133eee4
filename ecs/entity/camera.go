package entity

import (
	"fmt"

	"github.com/milk9111/dualworld/ecs"
	"github.com/milk9111/dualworld/ecs/component"
	"github.com/milk9111/dualworld/prefabs"
)

func NewCameraAt(w *ecs.World, x, y float64) (ecs.Entity, error) {
	cameraSpec, err := prefabs.LoadCameraSpec()
	if err != nil {
		return 0, fmt.Errorf("camera: load spec: %w", err)
	}

	smooth := cameraSpec.Smoothness
	if smooth == 0 {
		smooth = 0.15
	}
	zoom := cameraSpec.Zoom
	if zoom <= 0 {
		zoom = 1
	}

	camera := ecs.CreateEntity(w)
	if err := ecs.Add(w, camera, component.CameraComponent.Kind(), &component.Camera{
		X:          x,
		Y:          y,
		Zoom:       zoom,
		Smoothness: smooth,
	}); err != nil {
		return 0, fmt.Errorf("camera: add camera component: %w", err)
	}
	return camera, nil
}
