package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/milk9111/dualworld/common"
	"github.com/milk9111/dualworld/ecs"
	"github.com/milk9111/dualworld/ecs/component"
	"github.com/milk9111/dualworld/ecs/entity"
	"github.com/milk9111/dualworld/ecs/system"
	"github.com/milk9111/dualworld/levels"
)

// tickClock advances by exactly one fixed step per tick.
type tickClock struct {
	now time.Duration
}

func (c *tickClock) Now() time.Duration { return c.now }

func main() {
	levelName := flag.String("level", "crossing", "level name in levels/ or a path to a level file")
	ticks := flag.Int("ticks", 300, "number of ticks to simulate")
	move := flag.Float64("move", 0, "horizontal input axis held for the whole run, in [-1,1]")
	jumpEvery := flag.Int("jump-every", 0, "press jump every N ticks (0 disables)")
	switchAt := flag.String("switch-at", "", "comma separated ticks at which the switch key is pressed")
	hold := flag.Int("hold", 1, "ticks the switch key stays down after each press (at least 1)")
	every := flag.Int("every", 30, "print telemetry every N ticks")
	verbose := flag.Bool("v", false, "log every event")
	flag.Parse()

	presses, err := parseTicks(*switchAt)
	if err != nil {
		log.Fatalf("simulate: -switch-at: %v", err)
	}

	lvl, err := levels.Load(*levelName)
	if err != nil {
		log.Fatalf("simulate: %v", err)
	}

	w := ecs.NewWorld()
	pw := ecs.NewPhysicsWorld()
	built, err := entity.BuildLevel(w, pw, lvl)
	if err != nil {
		log.Fatalf("simulate: %v", err)
	}

	step := time.Second / time.Duration(common.TPS)
	clock := &tickClock{}
	tick := 0
	script := newSwitchScript(presses, *hold)
	poll := func() component.Input {
		in := component.Input{MoveX: *move}
		if *jumpEvery > 0 && tick%*jumpEvery == 0 {
			in.JumpPressed = true
		}
		in.SwitchPressed, in.SwitchReleased = script.at(tick)
		return in
	}

	sched := system.NewPipeline(
		system.NewScriptedInputSystem(poll),
		clock,
		pw,
		system.NewWorldSwitchSystem(built.GroupA, built.GroupB),
	)

	fmt.Fprintf(os.Stdout, "%6s %9s %9s %8s %8s %5s %6s %6s\n", "tick", "x", "y", "vx", "vy", "gnd", "switch", "world")
	for tick = 1; tick <= *ticks; tick++ {
		clock.now += step
		sched.Update(w)

		for _, evt := range w.Events().Drain() {
			if *verbose || evt.Type != ecs.EventGroundedChanged {
				log.Printf("tick %d: %s %+v", tick, evt.Type, evt.Data)
			}
		}
		if *every > 0 && tick%*every == 0 {
			printTelemetry(w, built.Character, tick)
		}
	}
	if *every <= 0 || *ticks%*every != 0 {
		printTelemetry(w, built.Character, *ticks)
	}
}

// switchScript turns press ticks into switch key edges. Each press is
// released hold ticks later; a release landing on another press tick moves to
// the tick after it.
type switchScript struct {
	presses  map[int]bool
	releases map[int]bool
	hold     int
}

func newSwitchScript(presses map[int]bool, hold int) *switchScript {
	return &switchScript{presses: presses, releases: make(map[int]bool), hold: max(hold, 1)}
}

func (s *switchScript) at(tick int) (pressed, released bool) {
	if s.releases[tick] {
		delete(s.releases, tick)
		if s.presses[tick] {
			s.releases[tick+1] = true
		} else {
			released = true
		}
	}
	if s.presses[tick] {
		pressed = true
		s.releases[tick+s.hold] = true
	}
	return pressed, released
}

func printTelemetry(w *ecs.World, e ecs.Entity, tick int) {
	tel, ok := system.ReadTelemetry(w, e)
	if !ok {
		return
	}
	fmt.Fprintf(os.Stdout, "%6d %9.3f %9.3f %8.3f %8.3f %5v %6v %6s\n", tick, tel.X, tel.Y, tel.VX, tel.VY, tel.Grounded, tel.CanSwitch, tel.Active)
}

func parseTicks(s string) (map[int]bool, error) {
	out := make(map[int]bool)
	if strings.TrimSpace(s) == "" {
		return out, nil
	}
	for _, part := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		if n <= 0 {
			return nil, fmt.Errorf("tick %d must be positive", n)
		}
		out[n] = true
	}
	return out, nil
}
