package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/dualworld/common"
	"github.com/milk9111/dualworld/ecs"
	"github.com/milk9111/dualworld/ecs/component"
)

type CameraSystem struct{}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{}
}

// Update eases the camera toward the first character.
func (cs *CameraSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	camEntity, ok := ecs.First(w, component.CameraComponent.Kind())
	if !ok {
		return
	}
	cam, _ := ecs.Get(w, camEntity, component.CameraComponent.Kind())

	target, ok := ecs.First(w, component.CharacterTagComponent.Kind())
	if !ok {
		return
	}
	t, ok := ecs.Get(w, target, component.TransformComponent.Kind())
	if !ok {
		return
	}

	smoothness := cam.Smoothness
	if smoothness <= 0 || smoothness > 1 {
		smoothness = 1
	}
	cam.X = common.Lerp(cam.X, t.X, smoothness)
	cam.Y = common.Lerp(cam.Y, t.Y, smoothness)
}

// view maps world units (y up) to screen pixels (y down) around the camera.
type view struct {
	camX, camY float64
	scale      float64
	halfW      float64
	halfH      float64
}

func cameraView(w *ecs.World, screenW, screenH int) view {
	v := view{
		scale: common.PixelsPerUnit,
		halfW: float64(screenW) / 2,
		halfH: float64(screenH) / 2,
	}
	camEntity, ok := ecs.First(w, component.CameraComponent.Kind())
	if !ok {
		return v
	}
	if cam, ok := ecs.Get(w, camEntity, component.CameraComponent.Kind()); ok {
		v.camX, v.camY = cam.X, cam.Y
		if cam.Zoom > 0 {
			v.scale *= cam.Zoom
		}
	}
	return v
}

func (v view) toScreen(p cp.Vector) (float64, float64) {
	return (p.X-v.camX)*v.scale + v.halfW, v.halfH - (p.Y-v.camY)*v.scale
}
