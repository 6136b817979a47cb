package input

import (
	"fmt"

	"github.com/milk9111/requiem/keys"
)

// EventKind distinguishes raw window events.
type EventKind int

const (
	EventQuit EventKind = iota
	EventKeyDown
	EventKeyUp
)

func (k EventKind) String() string {
	switch k {
	case EventQuit:
		return "quit"
	case EventKeyDown:
		return "key-down"
	case EventKeyUp:
		return "key-up"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event is one raw notification from the window, in arrival order.
type Event struct {
	Kind EventKind
	Key  keys.Code
}

// KeyDown builds a key-down event.
func KeyDown(c keys.Code) Event {
	return Event{Kind: EventKeyDown, Key: c}
}

// KeyUp builds a key-up event.
func KeyUp(c keys.Code) Event {
	return Event{Kind: EventKeyUp, Key: c}
}

// Quit builds a quit event.
func Quit() Event {
	return Event{Kind: EventQuit}
}

func (e Event) String() string {
	if e.Kind == EventQuit {
		return e.Kind.String()
	}
	return e.Kind.String() + " " + keys.Name(e.Key)
}
