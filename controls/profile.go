package controls

import (
	"sort"

	"github.com/milk9111/requiem/keys"
)

// Action is a semantic input identifier, independent of physical keys.
type Action string

// Actions of the default profile.
const (
	MoveLeft  Action = "move_left"
	MoveRight Action = "move_right"
	MoveUp    Action = "move_up"
	MoveDown  Action = "move_down"
	Sprint    Action = "sprint"
	Pause     Action = "pause"
)

// DefaultProfileName names the built-in profile.
const DefaultProfileName = "default"

// FileVersion is the controls document version this package writes.
const FileVersion = 1

// Binding is the set of key codes that satisfy one action.
type Binding map[keys.Code]struct{}

// Has reports whether c is part of the binding.
func (b Binding) Has(c keys.Code) bool {
	_, ok := b[c]
	return ok
}

// Codes returns the codes in ascending order.
func (b Binding) Codes() []keys.Code {
	out := make([]keys.Code, 0, len(b))
	for c := range b {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Names returns the key names in sorted order.
func (b Binding) Names() []string {
	out := make([]string, 0, len(b))
	for c := range b {
		out = append(out, keys.Name(c))
	}
	sort.Strings(out)
	return out
}

func (b Binding) clone() Binding {
	out := make(Binding, len(b))
	for c := range b {
		out[c] = struct{}{}
	}
	return out
}

// Profile is a named action to binding mapping.
type Profile struct {
	Name     string
	Bindings map[Action]Binding
}

func (p Profile) clone() Profile {
	out := Profile{Name: p.Name, Bindings: make(map[Action]Binding, len(p.Bindings))}
	for a, b := range p.Bindings {
		out.Bindings[a] = b.clone()
	}
	return out
}

// named converts the forward mapping to sorted key names per action.
func (p Profile) named() map[string][]string {
	out := make(map[string][]string, len(p.Bindings))
	for a, b := range p.Bindings {
		out[string(a)] = b.Names()
	}
	return out
}

// File is the persisted controls document.
type File struct {
	Version       int                            `json:"version"`
	Profiles      map[string]map[string][]string `json:"profiles"`
	ActiveProfile string                         `json:"active_profile"`
}

var defaultBindings = map[string][]string{
	string(MoveLeft):  {"K_LEFT", "K_q"},
	string(MoveRight): {"K_RIGHT", "K_d"},
	string(MoveUp):    {"K_UP", "K_z"},
	string(MoveDown):  {"K_DOWN", "K_s"},
	string(Sprint):    {"K_LSHIFT"},
	string(Pause):     {"K_ESCAPE"},
}

// DefaultFile returns the built-in controls document.
func DefaultFile() File {
	profile := make(map[string][]string, len(defaultBindings))
	for a, names := range defaultBindings {
		profile[a] = append([]string(nil), names...)
	}
	return File{
		Version:       FileVersion,
		Profiles:      map[string]map[string][]string{DefaultProfileName: profile},
		ActiveProfile: DefaultProfileName,
	}
}

// DefaultActions lists the actions of the built-in profile.
func DefaultActions() []Action {
	out := make([]Action, 0, len(defaultBindings))
	for a := range defaultBindings {
		out = append(out, Action(a))
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
