// Package engine drives the per-frame lifecycle on top of ebiten: edge
// reset, event routing, timed update, deferred state transition, render.
package engine

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/requiem/input"
	"github.com/milk9111/requiem/state"
)

// EventSource yields the raw window events of one frame in arrival order.
type EventSource interface {
	Poll(dst []input.Event) []input.Event
}

// Display reports the logical size of the render target.
type Display interface {
	Size() (w, h int)
}

type Config struct {
	Tracker *input.Tracker
	Machine *state.Machine
	Clock   Clock
	Source  EventSource
	Logger  *log.Logger
	// Logical screen size handed to ebiten's layout.
	Width  int
	Height int
}

// Game implements ebiten.Game. Each Update is one frame:
//
//  1. reset input edges, then run frame hooks (bindings reload)
//  2. dispatch the frame's raw events to the tracker and the active state
//  3. advance the clock
//  4. update the active state with dt
//  5. apply a requested transition
//
// Draw then renders whichever state is active after step 5.
type Game struct {
	tracker *input.Tracker
	machine *state.Machine
	clock   Clock
	source  EventSource
	logger  *log.Logger

	width  int
	height int

	running bool
	frames  int
	events  []input.Event
	hooks   []func()
}

func NewGame(cfg Config) *Game {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Game{
		tracker: cfg.Tracker,
		machine: cfg.Machine,
		clock:   cfg.Clock,
		source:  cfg.Source,
		logger:  logger,
		width:   cfg.Width,
		height:  cfg.Height,
		running: true,
	}
}

// AddFrameHook registers fn to run at the start of every frame, after the
// edge reset and before any event is dispatched.
func (g *Game) AddFrameHook(fn func()) {
	if fn == nil {
		return
	}
	g.hooks = append(g.hooks, fn)
}

// Quit ends the loop after the current frame.
func (g *Game) Quit() {
	g.running = false
}

// Frames returns the number of frames run so far.
func (g *Game) Frames() int {
	return g.frames
}

// Size returns the logical screen size.
func (g *Game) Size() (int, int) {
	return g.width, g.height
}

func (g *Game) Update() error {
	if !g.running {
		return ebiten.Termination
	}
	g.frames++

	g.tracker.BeginFrame()
	for _, hook := range g.hooks {
		hook()
	}

	g.events = g.source.Poll(g.events[:0])
	for _, e := range g.events {
		switch e.Kind {
		case input.EventQuit:
			g.running = false
		case input.EventKeyDown, input.EventKeyUp:
			g.tracker.Handle(e)
		}
		g.machine.HandleEvent(e)
	}

	dt := g.clock.Advance()
	g.machine.Update(dt)

	from := g.machine.Current()
	if g.machine.ApplyTransition() {
		g.logger.Debug("state transition", "frame", g.frames, "from", typeName(from), "to", typeName(g.machine.Current()))
	}

	if !g.running {
		return ebiten.Termination
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.machine.Render(screen)
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return float64(g.width), float64(g.height)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

func typeName(v any) string {
	return fmt.Sprintf("%T", v)
}
