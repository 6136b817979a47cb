package obj

import (
	"fmt"
	"math"

	"github.com/milk9111/requiem/controls"
)

// ActionQuery answers level-triggered action queries. *input.Tracker
// satisfies it.
type ActionQuery interface {
	IsHeld(a controls.Action) bool
}

// Facing is the direction a character sprite points at.
type Facing int

// Order matches the rows of a character sheet.
const (
	FacingDown Facing = iota
	FacingUp
	FacingRight
	FacingLeft
)

func (f Facing) String() string {
	switch f {
	case FacingDown:
		return "down"
	case FacingUp:
		return "up"
	case FacingRight:
		return "right"
	case FacingLeft:
		return "left"
	default:
		return fmt.Sprintf("Facing(%d)", int(f))
	}
}

// ResolveDirection turns the four move actions into a unit direction, or
// (0, 0) when idle. Opposite actions cancel.
func ResolveDirection(q ActionQuery) (dx, dy float64) {
	if q.IsHeld(controls.MoveRight) {
		dx++
	}
	if q.IsHeld(controls.MoveLeft) {
		dx--
	}
	if q.IsHeld(controls.MoveDown) {
		dy++
	}
	if q.IsHeld(controls.MoveUp) {
		dy--
	}
	if dx == 0 && dy == 0 {
		return 0, 0
	}
	l := math.Hypot(dx, dy)
	return dx / l, dy / l
}

// ResolveFacing picks the facing for a direction. Ties go to the horizontal
// axis; an idle direction keeps current.
func ResolveFacing(dx, dy float64, current Facing) Facing {
	if dx == 0 && dy == 0 {
		return current
	}
	if math.Abs(dx) >= math.Abs(dy) {
		if dx > 0 {
			return FacingRight
		}
		return FacingLeft
	}
	if dy > 0 {
		return FacingDown
	}
	return FacingUp
}
