package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/requiem/keys"
)

// EbitenSource produces raw events from ebiten's polled keyboard state.
//
// Ebiten reports key state per tick rather than as a stream, so releases are
// emitted before presses; a key cannot be just-released and just-pressed in
// the same tick. Window close becomes a quit event when the game has called
// ebiten.SetWindowClosingHandled(true).
type EbitenSource struct {
	keys []ebiten.Key
}

func NewEbitenSource() *EbitenSource {
	return &EbitenSource{}
}

// Poll appends this tick's events to dst.
func (s *EbitenSource) Poll(dst []Event) []Event {
	if ebiten.IsWindowBeingClosed() {
		dst = append(dst, Quit())
	}

	s.keys = inpututil.AppendJustReleasedKeys(s.keys[:0])
	for _, k := range s.keys {
		dst = append(dst, KeyUp(keys.FromEbiten(k)))
	}

	s.keys = inpututil.AppendJustPressedKeys(s.keys[:0])
	for _, k := range s.keys {
		dst = append(dst, KeyDown(keys.FromEbiten(k)))
	}
	return dst
}
