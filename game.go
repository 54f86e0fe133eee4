package main

import (
	"fmt"
	"image/color"
	"log"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/dualworld/common"
	"github.com/milk9111/dualworld/ecs"
	"github.com/milk9111/dualworld/ecs/component"
	"github.com/milk9111/dualworld/ecs/entity"
	"github.com/milk9111/dualworld/ecs/system"
	"github.com/milk9111/dualworld/levels"
	"github.com/milk9111/dualworld/prefabs"
)

type Game struct {
	debug  bool
	paused bool

	world       *ecs.World
	physics     *ecs.PhysicsWorld
	scheduler   *ecs.Scheduler
	render      *system.RenderSystem
	worldSwitch *system.WorldSwitchSystem
	level       *entity.LevelEntities
	background  color.Color

	pauseUI *ebitenui.UI
	watcher *prefabs.Watcher
}

func NewGame(levelName string, debug bool) (*Game, error) {
	lvl, err := levels.Load(levelName)
	if err != nil {
		return nil, fmt.Errorf("load level %s: %w", levelName, err)
	}

	g := &Game{
		debug:      debug,
		world:      ecs.NewWorld(),
		physics:    ecs.NewPhysicsWorld(),
		render:     system.NewRenderSystem(),
		background: color.NRGBA{R: 0x1b, G: 0x1d, B: 0x2a, A: 0xff},
	}
	if lvl.Background != "" {
		if bg, err := prefabs.ParseHexColor(lvl.Background); err == nil {
			g.background = bg
		} else {
			log.Printf("level %s: ignoring background: %v", lvl.Name, err)
		}
	}

	g.level, err = entity.BuildLevel(g.world, g.physics, lvl)
	if err != nil {
		return nil, err
	}
	g.worldSwitch = system.NewWorldSwitchSystem(g.level.GroupA, g.level.GroupB)
	g.scheduler = system.NewPipeline(system.NewInputSystem(), system.NewMonotonicClock(), g.physics, g.worldSwitch)
	g.pauseUI = NewPauseUI(g)

	if w, err := prefabs.NewWatcher("prefabs"); err == nil {
		g.watcher = w
	} else if debug {
		log.Printf("prefab hot reload disabled: %v", err)
	}

	log.Printf("level %s: %d objects in group A, %d in group B", lvl.Name, len(g.level.GroupA), len(g.level.GroupB))
	return g, nil
}

func (g *Game) Update() error {
	g.pollPrefabChanges()

	if g.paused {
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			g.paused = false
			return nil
		}
		g.pauseUI.Update()
		return nil
	}

	g.scheduler.Update(g.world)
	g.drainEvents()

	if in, ok := ecs.Get(g.world, g.level.Character, component.InputComponent.Kind()); ok && in.PausePressed {
		g.paused = true
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.background)
	g.render.Draw(g.world, screen)

	if g.debug {
		system.DrawPhysicsDebug(g.physics, g.world, screen)
	}
	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) Resume() {
	g.paused = false
}

func (g *Game) Respawn() {
	if err := system.RequestRespawn(g.world, g.level.Character); err != nil {
		log.Printf("respawn: %v", err)
	}
	g.paused = false
}

func (g *Game) pollPrefabChanges() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-g.watcher.Changed:
			if !ok {
				g.watcher = nil
				return
			}
			if !prefabs.IsPrefab(name, entity.CharacterPrefab) {
				continue
			}
			if err := entity.ReloadController(g.world, g.level.Character); err != nil {
				log.Printf("hot reload: %v", err)
				continue
			}
			log.Printf("hot reload: applied %s", name)
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("prefab watcher: %v", err)
		default:
			return
		}
	}
}

func (g *Game) drainEvents() {
	for _, evt := range g.world.Events().Drain() {
		if !g.debug {
			continue
		}
		switch data := evt.Data.(type) {
		case system.WorldSwitchedEvent:
			log.Printf("world switch: %s active (on %s)", data.Active, data.Trigger)
		case system.RespawnedEvent:
			log.Printf("respawn: %s at (%.2f, %.2f)", data.Entity, data.X, data.Y)
		case system.GroundedChangedEvent:
			log.Printf("collision: %s grounded=%v", data.Entity, data.Grounded)
		default:
			log.Printf("event %s: %v", evt.Type, evt.Data)
		}
	}
}
