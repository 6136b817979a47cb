// Package input turns raw key notifications into per-frame action state.
package input

import (
	"github.com/milk9111/requiem/controls"
	"github.com/milk9111/requiem/keys"
)

// Index resolves a key to the actions bound to it. *controls.Store
// satisfies it.
type Index interface {
	ActionsFor(code keys.Code) []controls.Action
}

type actionSet map[controls.Action]struct{}

func (s actionSet) has(a controls.Action) bool {
	_, ok := s[a]
	return ok
}

func (s actionSet) clear() {
	for a := range s {
		delete(s, a)
	}
}

// Tracker keeps the held, pressed and released action sets for the current
// frame.
//
// Edges are valid for exactly one frame: call BeginFrame immediately before
// dispatching a frame's events, never between dispatch and the update that
// reads them.
type Tracker struct {
	index    Index
	held     actionSet
	pressed  actionSet
	released actionSet
}

func NewTracker(index Index) *Tracker {
	return &Tracker{
		index:    index,
		held:     make(actionSet),
		pressed:  make(actionSet),
		released: make(actionSet),
	}
}

// BeginFrame clears the edge sets.
func (t *Tracker) BeginFrame() {
	t.pressed.clear()
	t.released.clear()
}

// Reset drops every held action and edge.
func (t *Tracker) Reset() {
	t.held.clear()
	t.BeginFrame()
}

// Handle routes key events; other events are ignored.
func (t *Tracker) Handle(e Event) {
	switch e.Kind {
	case EventKeyDown:
		t.OnKeyDown(e.Key)
	case EventKeyUp:
		t.OnKeyUp(e.Key)
	}
}

// OnKeyDown marks every action bound to code as held. Actions that were not
// already held are also marked pressed, so a repeated key-down never fires a
// second edge. A release earlier in the same frame is dropped since the
// action is down again.
func (t *Tracker) OnKeyDown(code keys.Code) {
	for _, a := range t.index.ActionsFor(code) {
		if t.held.has(a) {
			continue
		}
		t.held[a] = struct{}{}
		t.pressed[a] = struct{}{}
		delete(t.released, a)
	}
}

// OnKeyUp releases every held action bound to code.
func (t *Tracker) OnKeyUp(code keys.Code) {
	for _, a := range t.index.ActionsFor(code) {
		if !t.held.has(a) {
			continue
		}
		delete(t.held, a)
		t.released[a] = struct{}{}
	}
}

// IsHeld reports whether a is currently down.
func (t *Tracker) IsHeld(a controls.Action) bool { return t.held.has(a) }

// WasPressed reports whether a went down this frame.
func (t *Tracker) WasPressed(a controls.Action) bool { return t.pressed.has(a) }

// WasReleased reports whether a went up this frame.
func (t *Tracker) WasReleased(a controls.Action) bool { return t.released.has(a) }
