// Package controls owns the persisted, rebindable mapping from semantic
// actions to physical keys, and its reverse index from keys to actions.
package controls

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/milk9111/requiem/keys"
)

// DefaultPath is where the game keeps its controls file unless configured
// otherwise.
const DefaultPath = "config/controls.json"

// Store holds the active profile and the reverse index derived from it.
//
// The reverse index is always the exact transpose of the active profile's
// forward mapping: every mutation builds both and installs them together.
type Store struct {
	path   string
	logger *log.Logger

	profile Profile
	reverse map[keys.Code][]Action
	// profiles read from the file that are not active, kept verbatim so a
	// save never drops them
	others map[string]map[string][]string
}

// NewStore creates a store bound to path. It starts out holding the built-in
// default profile; call Load to read the file.
func NewStore(path string, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.Default()
	}
	s := &Store{path: path, logger: logger}
	s.apply(DefaultFile())
	return s
}

// Path returns the controls file location.
func (s *Store) Path() string {
	return s.path
}

// Load reads the controls file. A missing file is replaced by the default
// document; a malformed or unreadable one is logged and the defaults are
// used. Load never fails.
func (s *Store) Load() {
	f, err := readFile(s.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		f = DefaultFile()
		if werr := writeFile(s.path, f); werr != nil {
			s.logger.Error("could not write default controls", "path", s.path, "error", werr)
		} else {
			s.logger.Info("created default controls", "path", s.path)
		}
	case err != nil:
		s.logger.Error("could not read controls, using defaults", "path", s.path, "error", err)
		f = DefaultFile()
	}
	s.apply(f)
}

// Save writes the active profile, plus any other profiles read from the
// file, to the controls file. The error is the caller's to handle: there is
// no safe fallback for a preference that could not be stored.
func (s *Store) Save() error {
	if err := writeFile(s.path, s.Document()); err != nil {
		return fmt.Errorf("controls: save %s: %w", s.path, err)
	}
	return nil
}

// Document returns the controls document Save would write.
func (s *Store) Document() File {
	profiles := make(map[string]map[string][]string, len(s.others)+1)
	for name, p := range s.others {
		profiles[name] = copyNamed(p)
	}
	profiles[s.profile.Name] = s.profile.named()
	return File{
		Version:       FileVersion,
		Profiles:      profiles,
		ActiveProfile: s.profile.Name,
	}
}

// Rebind replaces the keys bound to action. Names that do not resolve are
// skipped with a warning.
func (s *Store) Rebind(action Action, keyNames []string) {
	next := s.profile.clone()
	next.Bindings[action] = s.resolveBinding(action, keyNames)
	s.install(next, s.others)
}

// SwitchProfile makes another profile from the file active.
func (s *Store) SwitchProfile(name string) error {
	if name == s.profile.Name {
		return nil
	}
	data, ok := s.others[name]
	if !ok {
		return fmt.Errorf("controls: unknown profile %q", name)
	}

	others := make(map[string]map[string][]string, len(s.others))
	for n, p := range s.others {
		if n != name {
			others[n] = p
		}
	}
	others[s.profile.Name] = s.profile.named()

	s.install(Profile{Name: name, Bindings: s.resolve(data)}, others)
	return nil
}

// ResetDefaults makes the built-in default profile active again. A
// non-default active profile is kept among the others.
func (s *Store) ResetDefaults() {
	others := make(map[string]map[string][]string, len(s.others)+1)
	for n, p := range s.others {
		others[n] = p
	}
	if s.profile.Name != DefaultProfileName {
		others[s.profile.Name] = s.profile.named()
	}
	delete(others, DefaultProfileName)

	def := DefaultFile()
	s.install(Profile{Name: DefaultProfileName, Bindings: s.resolve(def.Profiles[DefaultProfileName])}, others)
}

// ActionsFor returns the actions bound to code in sorted order. The slice
// belongs to the store and must not be modified.
func (s *Store) ActionsFor(code keys.Code) []Action {
	return s.reverse[code]
}

// Keys returns the codes bound to action in ascending order.
func (s *Store) Keys(action Action) []keys.Code {
	return s.profile.Bindings[action].Codes()
}

// KeyNames returns the key names bound to action in sorted order.
func (s *Store) KeyNames(action Action) []string {
	return s.profile.Bindings[action].Names()
}

// Bindings returns a copy of the forward mapping as key names.
func (s *Store) Bindings() map[Action][]string {
	out := make(map[Action][]string, len(s.profile.Bindings))
	for a, b := range s.profile.Bindings {
		out[a] = b.Names()
	}
	return out
}

// Actions returns the actions of the active profile in sorted order.
func (s *Store) Actions() []Action {
	out := make([]Action, 0, len(s.profile.Bindings))
	for a := range s.profile.Bindings {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ProfileName returns the active profile's name.
func (s *Store) ProfileName() string {
	return s.profile.Name
}

// Profiles returns the names of every known profile in sorted order.
func (s *Store) Profiles() []string {
	out := make([]string, 0, len(s.others)+1)
	out = append(out, s.profile.Name)
	for n := range s.others {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

func (s *Store) apply(f File) {
	if f.Version != FileVersion {
		s.logger.Warn("unexpected controls version", "path", s.path, "version", f.Version, "want", FileVersion)
	}

	name := f.ActiveProfile
	if name == "" {
		name = DefaultProfileName
	}
	data, ok := f.Profiles[name]
	if !ok {
		s.logger.Warn("active profile not found, using default bindings", "profile", name)
		data = f.Profiles[DefaultProfileName]
	}

	others := make(map[string]map[string][]string, len(f.Profiles))
	for n, p := range f.Profiles {
		if n != name {
			others[n] = copyNamed(p)
		}
	}

	s.install(Profile{Name: name, Bindings: s.resolve(data)}, others)
}

// install swaps in a profile together with its freshly built reverse index.
func (s *Store) install(p Profile, others map[string]map[string][]string) {
	reverse := buildReverse(p)
	s.profile = p
	s.reverse = reverse
	s.others = others
}

func (s *Store) resolve(named map[string][]string) map[Action]Binding {
	actions := make([]string, 0, len(named))
	for a := range named {
		actions = append(actions, a)
	}
	sort.Strings(actions)

	out := make(map[Action]Binding, len(named))
	for _, a := range actions {
		out[Action(a)] = s.resolveBinding(Action(a), named[a])
	}
	return out
}

func (s *Store) resolveBinding(action Action, keyNames []string) Binding {
	b := make(Binding, len(keyNames))
	for _, name := range keyNames {
		c, ok := keys.Lookup(name)
		if !ok {
			s.logger.Warn("unknown key name, skipping", "key", name, "action", action)
			continue
		}
		b[c] = struct{}{}
	}
	return b
}

func buildReverse(p Profile) map[keys.Code][]Action {
	reverse := make(map[keys.Code][]Action)
	for a, b := range p.Bindings {
		for c := range b {
			reverse[c] = append(reverse[c], a)
		}
	}
	for c := range reverse {
		actions := reverse[c]
		sort.Slice(actions, func(i, j int) bool { return actions[i] < actions[j] })
	}
	return reverse
}

func copyNamed(p map[string][]string) map[string][]string {
	out := make(map[string][]string, len(p))
	for a, names := range p {
		out[a] = append([]string(nil), names...)
	}
	return out
}

func readFile(path string) (File, error) {
	var f File
	data, err := os.ReadFile(path)
	if err != nil {
		return f, err
	}
	if err := json.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return f, nil
}

// writeFile replaces path through a temp file in the same directory.
func writeFile(path string, f File) error {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".controls-*.json")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
