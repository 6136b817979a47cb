// Package state runs exactly one active game state and applies transitions
// at a fixed point in the frame.
package state

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/requiem/input"
)

// State is one screen of the game (gameplay, pause menu, ...). Each state
// owns its own enter/exit, event handling, update and render logic.
type State interface {
	HandleEvent(e input.Event)
	// Update advances the state by dt seconds.
	Update(dt float64)
	Render(screen *ebiten.Image)
	OnEnter()
	OnExit()
	// RequestedTransition returns the state to switch to at the end of the
	// frame, or nil to stay.
	RequestedTransition() State
}

// Base gives embedding states no-op lifecycle hooks and a transition slot.
type Base struct {
	next State
}

// RequestTransition asks the machine to switch to next at the end of the
// frame. A later request in the same frame replaces an earlier one.
func (b *Base) RequestTransition(next State) {
	b.next = next
}

// RequestedTransition reports and clears the pending request, so a state
// kept around for re-entry starts clean.
func (b *Base) RequestedTransition() State {
	next := b.next
	b.next = nil
	return next
}

func (b *Base) OnEnter() {}

func (b *Base) OnExit() {}

func (b *Base) HandleEvent(input.Event) {}
