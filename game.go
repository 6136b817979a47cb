package main

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/requiem/assets"
	"github.com/milk9111/requiem/config"
	"github.com/milk9111/requiem/controls"
	"github.com/milk9111/requiem/engine"
	"github.com/milk9111/requiem/input"
	"github.com/milk9111/requiem/obj"
	"github.com/milk9111/requiem/state"
	"github.com/milk9111/requiem/states"
)

// maxFrameStep caps dt so a stalled window does not fling the player.
const maxFrameStep = 0.25

// NewGame wires settings into a runnable game. The returned close func
// stops the controls watcher.
func NewGame(s config.Settings, logger *log.Logger) (*engine.Game, func(), error) {
	store := controls.NewStore(s.ControlsPath, logger.WithPrefix("controls"))
	store.Load()
	tracker := input.NewTracker(store)

	level, err := obj.LoadLevel(s.StartMap)
	if err != nil {
		return nil, nil, fmt.Errorf("game: load level %s: %w", s.StartMap, err)
	}

	var sheet *ebiten.Image
	if s.Player.Sheet != "" {
		sheet, err = assets.LoadImage(s.Player.Sheet)
		if err != nil {
			logger.Warn("could not load player sheet, drawing placeholder", "sheet", s.Player.Sheet, "error", err)
		}
	}
	x, y := level.Spawn()
	player := obj.NewPlayer(x, y, tracker, obj.PlayerConfig{
		WalkSpeed:   s.Player.WalkSpeed,
		SprintSpeed: s.Player.SprintSpeed,
		SpriteW:     s.Player.SpriteW,
		SpriteH:     s.Player.SpriteH,
		Sheet:       sheet,
	})

	camera := obj.NewCamera(s.Window.Width, s.Window.Height, s.Camera.Zoom)
	camera.SetSmooth(s.Camera.Smoothness)

	// the pause menu quits through the game, which needs the machine first
	var game *engine.Game
	play := states.NewPlay(states.PlayConfig{
		Tracker: tracker,
		Store:   store,
		Level:   level,
		Player:  player,
		Camera:  camera,
		Display: displayFunc(func() (int, int) { return game.Size() }),
		Quit:    func() { game.Quit() },
		Logger:  logger.WithPrefix("states"),
		Debug:   s.Debug,
	})

	game = engine.NewGame(engine.Config{
		Tracker: tracker,
		Machine: state.NewMachine(play),
		Clock:   engine.NewWallClock(maxFrameStep),
		Source:  input.NewEbitenSource(),
		Logger:  logger.WithPrefix("engine"),
		Width:   s.Window.Width,
		Height:  s.Window.Height,
	})

	closeFn := func() {}
	if s.WatchControls {
		w, err := watchControls(store, tracker, logger)
		if err != nil {
			logger.Warn("controls hot reload disabled", "path", store.Path(), "error", err)
		} else {
			game.AddFrameHook(w.reload)
			closeFn = w.close
		}
	}
	return game, closeFn, nil
}

type displayFunc func() (int, int)

func (f displayFunc) Size() (int, int) { return f() }

type controlsReloader struct {
	watcher *controls.Watcher
	store   *controls.Store
	tracker *input.Tracker
	logger  *log.Logger
}

func watchControls(store *controls.Store, tracker *input.Tracker, logger *log.Logger) (*controlsReloader, error) {
	if err := os.MkdirAll(filepath.Dir(store.Path()), 0o755); err != nil {
		return nil, err
	}
	w, err := controls.NewWatcher(store.Path())
	if err != nil {
		return nil, err
	}
	return &controlsReloader{watcher: w, store: store, tracker: tracker, logger: logger}, nil
}

// reload runs at the frame boundary. Held actions are dropped only when the
// bindings actually changed, since the old key set may no longer map to them.
func (r *controlsReloader) reload() {
	select {
	case err := <-r.watcher.Errors:
		r.logger.Warn("controls watcher", "error", err)
	default:
	}
	if !r.watcher.Changed() {
		return
	}
	before := r.store.Document()
	r.store.Load()
	if reflect.DeepEqual(before, r.store.Document()) {
		return
	}
	r.tracker.Reset()
	r.logger.Info("reloaded controls", "path", r.store.Path(), "profile", r.store.ProfileName())
}

func (r *controlsReloader) close() {
	_ = r.watcher.Close()
}
