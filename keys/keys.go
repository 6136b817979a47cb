// Package keys maps the persisted K_* key names onto physical key codes.
//
// The table is built once from a static list; nothing is discovered at
// runtime. Letters use lower-case names (K_q), named keys upper-case (K_LEFT).
package keys

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

// Prefix starts every key name.
const Prefix = "K_"

// Code identifies a physical key.
type Code int

// FromEbiten converts an ebiten key to a Code.
func FromEbiten(k ebiten.Key) Code {
	return Code(k)
}

// String returns the K_* name of c, or K_<n> when c has no name.
func (c Code) String() string {
	return Name(c)
}

type entry struct {
	name string
	key  ebiten.Key
}

var table = []entry{
	{"K_a", ebiten.KeyA},
	{"K_b", ebiten.KeyB},
	{"K_c", ebiten.KeyC},
	{"K_d", ebiten.KeyD},
	{"K_e", ebiten.KeyE},
	{"K_f", ebiten.KeyF},
	{"K_g", ebiten.KeyG},
	{"K_h", ebiten.KeyH},
	{"K_i", ebiten.KeyI},
	{"K_j", ebiten.KeyJ},
	{"K_k", ebiten.KeyK},
	{"K_l", ebiten.KeyL},
	{"K_m", ebiten.KeyM},
	{"K_n", ebiten.KeyN},
	{"K_o", ebiten.KeyO},
	{"K_p", ebiten.KeyP},
	{"K_q", ebiten.KeyQ},
	{"K_r", ebiten.KeyR},
	{"K_s", ebiten.KeyS},
	{"K_t", ebiten.KeyT},
	{"K_u", ebiten.KeyU},
	{"K_v", ebiten.KeyV},
	{"K_w", ebiten.KeyW},
	{"K_x", ebiten.KeyX},
	{"K_y", ebiten.KeyY},
	{"K_z", ebiten.KeyZ},

	{"K_0", ebiten.KeyDigit0},
	{"K_1", ebiten.KeyDigit1},
	{"K_2", ebiten.KeyDigit2},
	{"K_3", ebiten.KeyDigit3},
	{"K_4", ebiten.KeyDigit4},
	{"K_5", ebiten.KeyDigit5},
	{"K_6", ebiten.KeyDigit6},
	{"K_7", ebiten.KeyDigit7},
	{"K_8", ebiten.KeyDigit8},
	{"K_9", ebiten.KeyDigit9},

	{"K_F1", ebiten.KeyF1},
	{"K_F2", ebiten.KeyF2},
	{"K_F3", ebiten.KeyF3},
	{"K_F4", ebiten.KeyF4},
	{"K_F5", ebiten.KeyF5},
	{"K_F6", ebiten.KeyF6},
	{"K_F7", ebiten.KeyF7},
	{"K_F8", ebiten.KeyF8},
	{"K_F9", ebiten.KeyF9},
	{"K_F10", ebiten.KeyF10},
	{"K_F11", ebiten.KeyF11},
	{"K_F12", ebiten.KeyF12},

	{"K_LEFT", ebiten.KeyArrowLeft},
	{"K_RIGHT", ebiten.KeyArrowRight},
	{"K_UP", ebiten.KeyArrowUp},
	{"K_DOWN", ebiten.KeyArrowDown},

	{"K_SPACE", ebiten.KeySpace},
	{"K_RETURN", ebiten.KeyEnter},
	{"K_ESCAPE", ebiten.KeyEscape},
	{"K_TAB", ebiten.KeyTab},
	{"K_BACKSPACE", ebiten.KeyBackspace},
	{"K_DELETE", ebiten.KeyDelete},
	{"K_INSERT", ebiten.KeyInsert},
	{"K_HOME", ebiten.KeyHome},
	{"K_END", ebiten.KeyEnd},
	{"K_PAGEUP", ebiten.KeyPageUp},
	{"K_PAGEDOWN", ebiten.KeyPageDown},
	{"K_CAPSLOCK", ebiten.KeyCapsLock},

	{"K_LSHIFT", ebiten.KeyShiftLeft},
	{"K_RSHIFT", ebiten.KeyShiftRight},
	{"K_LCTRL", ebiten.KeyControlLeft},
	{"K_RCTRL", ebiten.KeyControlRight},
	{"K_LALT", ebiten.KeyAltLeft},
	{"K_RALT", ebiten.KeyAltRight},

	{"K_MINUS", ebiten.KeyMinus},
	{"K_EQUALS", ebiten.KeyEqual},
	{"K_COMMA", ebiten.KeyComma},
	{"K_PERIOD", ebiten.KeyPeriod},
	{"K_SLASH", ebiten.KeySlash},
	{"K_BACKSLASH", ebiten.KeyBackslash},
	{"K_SEMICOLON", ebiten.KeySemicolon},
	{"K_QUOTE", ebiten.KeyQuote},
	{"K_BACKQUOTE", ebiten.KeyBackquote},
	{"K_LEFTBRACKET", ebiten.KeyBracketLeft},
	{"K_RIGHTBRACKET", ebiten.KeyBracketRight},

	{"K_KP0", ebiten.KeyNumpad0},
	{"K_KP1", ebiten.KeyNumpad1},
	{"K_KP2", ebiten.KeyNumpad2},
	{"K_KP3", ebiten.KeyNumpad3},
	{"K_KP4", ebiten.KeyNumpad4},
	{"K_KP5", ebiten.KeyNumpad5},
	{"K_KP6", ebiten.KeyNumpad6},
	{"K_KP7", ebiten.KeyNumpad7},
	{"K_KP8", ebiten.KeyNumpad8},
	{"K_KP9", ebiten.KeyNumpad9},
	{"K_KP_ENTER", ebiten.KeyNumpadEnter},
}

var (
	byName = make(map[string]Code, len(table))
	byCode = make(map[Code]string, len(table))
	names  = make([]string, 0, len(table))
)

func init() {
	for _, e := range table {
		c := FromEbiten(e.key)
		if _, dup := byName[e.name]; dup {
			panic("keys: duplicate name " + e.name)
		}
		if prev, dup := byCode[c]; dup {
			panic("keys: " + e.name + " shares a code with " + prev)
		}
		byName[e.name] = c
		byCode[c] = e.name
		names = append(names, e.name)
	}
	sort.Strings(names)
}

// Lookup resolves a K_* name. Names without the prefix or missing from the
// table report false.
func Lookup(name string) (Code, bool) {
	if !strings.HasPrefix(name, Prefix) {
		return 0, false
	}
	c, ok := byName[name]
	return c, ok
}

// Name returns the K_* name of c. Codes outside the table render as K_<n>,
// which Lookup never resolves.
func Name(c Code) string {
	if n, ok := byCode[c]; ok {
		return n
	}
	return fmt.Sprintf("%s%d", Prefix, int(c))
}

// Names returns every known key name in sorted order.
func Names() []string {
	out := make([]string, len(names))
	copy(out, names)
	return out
}
