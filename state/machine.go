package state

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/requiem/input"
)

// Machine holds the single active state. It is the only writer of the
// current-state slot and never caches states it has exited.
type Machine struct {
	current State
}

// NewMachine activates initial. A machine without a state is never
// observable, so a nil initial state panics.
func NewMachine(initial State) *Machine {
	if initial == nil {
		panic("state: nil initial state")
	}
	initial.OnEnter()
	return &Machine{current: initial}
}

// Current returns the active state.
func (m *Machine) Current() State {
	return m.current
}

func (m *Machine) HandleEvent(e input.Event) {
	m.current.HandleEvent(e)
}

func (m *Machine) Update(dt float64) {
	m.current.Update(dt)
}

func (m *Machine) Render(screen *ebiten.Image) {
	m.current.Render(screen)
}

// ApplyTransition swaps in the state requested by the active one, if any:
// OnExit on the outgoing state, then OnEnter on the incoming one. At most one
// swap happens per call. It reports whether a swap took place.
func (m *Machine) ApplyTransition() bool {
	next := m.current.RequestedTransition()
	if next == nil {
		return false
	}
	m.current.OnExit()
	m.current = next
	m.current.OnEnter()
	return true
}
