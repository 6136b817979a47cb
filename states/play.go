// Package states holds the game's screens: gameplay and the pause menu.
package states

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/milk9111/requiem/controls"
	"github.com/milk9111/requiem/engine"
	"github.com/milk9111/requiem/input"
	"github.com/milk9111/requiem/obj"
	"github.com/milk9111/requiem/state"
)

type PlayConfig struct {
	Tracker *input.Tracker
	Store   *controls.Store
	Level   *obj.Level
	Player  *obj.Player
	Camera  *obj.Camera
	Display engine.Display
	// Quit ends the game; the pause menu calls it.
	Quit   func()
	Logger *log.Logger
	Debug  bool
}

// Play is the gameplay state: a tile map, the player and a following camera.
type Play struct {
	state.Base

	tracker *input.Tracker
	store   *controls.Store
	level   *obj.Level
	player  *obj.Player
	camera  *obj.Camera
	display engine.Display
	quit    func()
	logger  *log.Logger
	debug   bool

	entered bool
}

func NewPlay(cfg PlayConfig) *Play {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Play{
		tracker: cfg.Tracker,
		store:   cfg.Store,
		level:   cfg.Level,
		player:  cfg.Player,
		camera:  cfg.Camera,
		display: cfg.Display,
		quit:    cfg.Quit,
		logger:  logger,
		debug:   cfg.Debug,
	}
}

// OnEnter centres the camera on the player the first time gameplay starts.
// Returning from the pause menu keeps the camera where it was.
func (p *Play) OnEnter() {
	if p.entered {
		p.logger.Debug("resumed play")
		return
	}
	p.entered = true
	w, h := p.level.PixelSize()
	p.camera.SetWorldBounds(w, h)
	p.syncScreen()
	p.camera.SnapTo(p.player.Rect().Center())
	p.logger.Debug("entered play", "world_w", w, "world_h", h)
}

func (p *Play) Update(dt float64) {
	if p.tracker.WasPressed(controls.Pause) {
		p.RequestTransition(NewPause(p, PauseConfig{
			Tracker: p.tracker,
			Store:   p.store,
			Quit:    p.quit,
			Logger:  p.logger,
		}))
		return
	}

	p.player.Update(dt)
	p.syncScreen()
	p.camera.Update(p.player.Rect().Center())
}

func (p *Play) syncScreen() {
	if p.display == nil {
		return
	}
	p.camera.SetScreenSize(p.display.Size())
}

func (p *Play) Render(screen *ebiten.Image) {
	if screen == nil {
		return
	}
	p.camera.Render(screen, func(world *ebiten.Image) {
		camX, camY := p.camera.ViewTopLeft()
		zoom := p.camera.Zoom()
		p.level.Draw(world, camX, camY, zoom)
		p.player.Draw(world, camX, camY, zoom)
	})
	if p.debug {
		ebitenutil.DebugPrintAt(screen, p.debugLine(), 4, 4)
	}
}

func (p *Play) debugLine() string {
	return fmt.Sprintf("pos %.1f,%.1f facing %s speed %.0f profile %s",
		p.player.X, p.player.Y, p.player.Facing, p.player.Speed(), p.store.ProfileName())
}
