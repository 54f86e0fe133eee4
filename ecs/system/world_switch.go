package system

import (
	"time"

	"github.com/milk9111/dualworld/common"
	"github.com/milk9111/dualworld/ecs"
	"github.com/milk9111/dualworld/ecs/component"
)

// WorldSwitchedEvent is the payload of ecs.EventWorldSwitched.
type WorldSwitchedEvent struct {
	Entity ecs.Entity
	Active component.Group
	// Trigger is "press" or "release".
	Trigger string
}

// WorldSwitchSystem toggles the active group in response to the switch
// control. It owns the two ordered object groups it flips.
type WorldSwitchSystem struct {
	groupA []ecs.Entity
	groupB []ecs.Entity
}

func NewWorldSwitchSystem(groupA, groupB []ecs.Entity) *WorldSwitchSystem {
	s := &WorldSwitchSystem{}
	s.SetGroups(groupA, groupB)
	return s
}

// SetGroups replaces the object groups, e.g. after a level reload.
func (s *WorldSwitchSystem) SetGroups(groupA, groupB []ecs.Entity) {
	s.groupA = append([]ecs.Entity(nil), groupA...)
	s.groupB = append([]ecs.Entity(nil), groupB...)
}

// Update runs after the collision system so CanSwitch reflects this tick's
// lockout. A press flips immediately. A release flips again when the switch
// was held longer than the threshold, so a long hold nets two flips.
func (s *WorldSwitchSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	tm, ok := currentTime(w)
	if !ok {
		return
	}

	ecs.ForEach2(w, component.WorldSwitchComponent.Kind(), component.InputComponent.Kind(), func(e ecs.Entity, ws *component.WorldSwitch, input *component.Input) {
		var state component.CharacterState
		if st, ok := ecs.Get(w, e, component.CharacterStateComponent.Kind()); ok {
			state = *st
		}
		hold := common.SwitchHoldThreshold
		if ctrl, ok := ecs.Get(w, e, component.ControllerComponent.Kind()); ok && ctrl.SwitchHold > 0 {
			hold = ctrl.SwitchHold
		}

		if input.SwitchPressed && state.CanSwitch() {
			ws.PressedAt = tm.Now
			s.toggle(w, e, ws, "press")
		}
		if input.SwitchReleased && heldLongerThan(tm.Now, ws.PressedAt, hold) && state.CanSwitch() {
			s.toggle(w, e, ws, "release")
		}
	})
}

func heldLongerThan(now, pressedAt, hold time.Duration) bool {
	return now-pressedAt > hold
}

func (s *WorldSwitchSystem) toggle(w *ecs.World, e ecs.Entity, ws *component.WorldSwitch, trigger string) {
	ws.Active = ws.Active.Other()
	ws.Flips++
	ApplySolidity(w, s.groupA, s.groupB, ws.Active)
	w.Events().Push(ecs.Event{
		Type: ecs.EventWorldSwitched,
		Data: WorldSwitchedEvent{Entity: e, Active: ws.Active, Trigger: trigger},
	})
}

// ApplySolidity re-derives the solidity of every object in both groups from
// the active group.
func ApplySolidity(w *ecs.World, groupA, groupB []ecs.Entity, active component.Group) {
	for _, group := range [][]ecs.Entity{groupA, groupB} {
		for _, e := range group {
			obj, ok := ecs.Get(w, e, component.WorldObjectComponent.Kind())
			if !ok {
				continue
			}
			obj.Solidity = component.SolidityFor(obj.Group, active)
		}
	}
}
