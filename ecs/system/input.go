package system

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/dualworld/ecs"
	"github.com/milk9111/dualworld/ecs/component"
)

// InputSystem samples the keyboard and first gamepad once per tick and
// writes the result into every Input component.
type InputSystem struct {
	poll func() component.Input
}

func NewInputSystem() *InputSystem {
	return &InputSystem{poll: pollEbitenInput}
}

// NewScriptedInputSystem feeds the Input components from poll instead of the
// keyboard, for headless runs.
func NewScriptedInputSystem(poll func() component.Input) *InputSystem {
	return &InputSystem{poll: poll}
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil || i == nil || i.poll == nil {
		return
	}

	sample := i.poll()
	ecs.ForEach(w, component.InputComponent.Kind(), func(e ecs.Entity, input *component.Input) {
		*input = sample
	})
}

func pollEbitenInput() component.Input {
	const stickDeadzone = 0.2

	left := ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft)
	right := ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight)

	in := component.Input{
		JumpPressed:    inpututil.IsKeyJustPressed(ebiten.KeySpace),
		SwitchPressed:  inpututil.IsKeyJustPressed(ebiten.KeyShiftLeft),
		SwitchReleased: inpututil.IsKeyJustReleased(ebiten.KeyShiftLeft),
		RespawnPressed: inpututil.IsKeyJustPressed(ebiten.KeyR),
		PausePressed:   inpututil.IsKeyJustPressed(ebiten.KeyEscape),
	}
	if left {
		in.MoveX -= 1
	}
	if right {
		in.MoveX += 1
	}

	if gamepads := ebiten.AppendGamepadIDs(nil); len(gamepads) > 0 {
		id := gamepads[0]
		leftX := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		if math.Abs(leftX) > stickDeadzone {
			in.MoveX = leftX
		}

		in.JumpPressed = in.JumpPressed || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightBottom)
		in.SwitchPressed = in.SwitchPressed || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonFrontBottomRight)
		in.SwitchReleased = in.SwitchReleased || inpututil.IsStandardGamepadButtonJustReleased(id, ebiten.StandardGamepadButtonFrontBottomRight)
		in.RespawnPressed = in.RespawnPressed || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonCenterLeft)
		in.PausePressed = in.PausePressed || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonCenterRight)
	}

	return in
}
