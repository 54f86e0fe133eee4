package system

import (
	"fmt"
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/dualworld/common"
	"github.com/milk9111/dualworld/ecs"
	"github.com/milk9111/dualworld/ecs/component"
)

// OpacityFor maps solidity to a draw opacity. It is a rendering hint only.
func OpacityFor(s component.Solidity) float64 {
	if s == component.Ghost {
		return common.GhostOpacity
	}
	return common.RealOpacity
}

type RenderSystem struct {
	ShowHUD bool
}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{ShowHUD: true}
}

// Draw renders every entity with a transform, box and sprite as a filled
// rectangle, lowest layer first.
func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}

	b := screen.Bounds()
	v := cameraView(w, b.Dx(), b.Dy())

	type drawable struct {
		e      ecs.Entity
		t      component.Transform
		box    component.Box
		sprite component.Sprite
	}
	var items []drawable
	ecs.ForEach3(w, component.TransformComponent.Kind(), component.BoxComponent.Kind(), component.SpriteComponent.Kind(), func(e ecs.Entity, t *component.Transform, box *component.Box, s *component.Sprite) {
		items = append(items, drawable{e: e, t: *t, box: *box, sprite: *s})
	})
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].sprite.Layer != items[j].sprite.Layer {
			return items[i].sprite.Layer < items[j].sprite.Layer
		}
		return uint64(items[i].e) < uint64(items[j].e)
	})

	for _, it := range items {
		opacity := common.RealOpacity
		if obj, ok := ecs.Get(w, it.e, component.WorldObjectComponent.Kind()); ok {
			opacity = OpacityFor(obj.Solidity)
		}

		x, y := v.toScreen(cp.Vector{X: it.t.X - it.box.HalfWidth, Y: it.t.Y + it.box.HalfHeight})
		width := it.box.Width() * v.scale
		height := it.box.Height() * v.scale
		vector.DrawFilledRect(screen, float32(x), float32(y), float32(width), float32(height), fade(it.sprite.Color, opacity), false)
	}

	if r.ShowHUD {
		r.drawHUD(w, screen)
	}
}

func (r *RenderSystem) drawHUD(w *ecs.World, screen *ebiten.Image) {
	character, ok := ecs.First(w, component.CharacterTagComponent.Kind())
	if !ok {
		return
	}
	tel, ok := ReadTelemetry(w, character)
	if !ok {
		return
	}
	text := fmt.Sprintf("World: %s\nCan switch: %v\nGrounded: %v\nPos: %.2f, %.2f\nVel: %.2f, %.2f",
		tel.Active, tel.CanSwitch, tel.Grounded, tel.X, tel.Y, tel.VX, tel.VY)
	ebitenutil.DebugPrintAt(screen, text, 10, 10)
}

func fade(c color.NRGBA, opacity float64) color.NRGBA {
	c.A = uint8(float64(c.A) * opacity)
	return c
}
