package controls

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/milk9111/requiem/keys"
	"pgregory.net/rapid"
)

type fataler interface {
	Helper()
	Fatalf(format string, args ...any)
}

func assertConsistent(t fataler, s *Store) {
	t.Helper()
	for c, actions := range s.reverse {
		if len(actions) == 0 {
			t.Fatalf("reverse index holds empty entry for %s", keys.Name(c))
		}
		for _, a := range actions {
			if !s.profile.Bindings[a].Has(c) {
				t.Fatalf("reverse[%s] lists %q but its binding lacks the key", keys.Name(c), a)
			}
		}
	}
	for a, b := range s.profile.Bindings {
		for c := range b {
			found := false
			for _, ra := range s.reverse[c] {
				if ra == a {
					found = true
					break
				}
			}
			if !found {
				t.Fatalf("binding %q holds %s but reverse index does not list it", a, keys.Name(c))
			}
		}
	}
}

func newTestStore(t *testing.T, path string) (*Store, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	return NewStore(path, log.New(&buf)), &buf
}

func writeRaw(t *testing.T, path, data string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func defaultNamed() map[Action][]string {
	out := map[Action][]string{}
	for a, names := range DefaultFile().Profiles[DefaultProfileName] {
		sorted := append([]string(nil), names...)
		sort.Strings(sorted)
		out[Action(a)] = sorted
	}
	return out
}

func TestLoadCreatesDefaultFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config", "controls.json")
	s, _ := newTestStore(t, path)
	s.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("default file not written: %v", err)
	}
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		t.Fatalf("default file is not valid JSON: %v", err)
	}
	if f.Version != FileVersion || f.ActiveProfile != DefaultProfileName {
		t.Fatalf("unexpected header: version=%d active=%q", f.Version, f.ActiveProfile)
	}
	profile := f.Profiles[DefaultProfileName]
	if len(profile) != 6 {
		t.Fatalf("expected 6 actions in default profile, got %d", len(profile))
	}
	for _, a := range []Action{MoveLeft, MoveRight, MoveUp, MoveDown, Sprint, Pause} {
		if _, ok := profile[string(a)]; !ok {
			t.Fatalf("default profile missing %q", a)
		}
	}

	if got := s.Bindings(); !reflect.DeepEqual(got, defaultNamed()) {
		t.Fatalf("bindings = %v, want %v", got, defaultNamed())
	}
	assertConsistent(t, s)
}

func TestLoadRecoversFromMalformedFile(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"truncated", `{"version": 1, "profiles": {`},
		{"wrong_shape", `{"version": 1, "profiles": ["K_LEFT"]}`},
		{"not_json", `move_left = K_LEFT`},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "controls.json")
			writeRaw(t, path, c.data)

			s, buf := newTestStore(t, path)
			s.Rebind(Sprint, []string{"K_SPACE"})
			s.Load()

			if got := s.Bindings(); !reflect.DeepEqual(got, defaultNamed()) {
				t.Fatalf("expected defaults after malformed load, got %v", got)
			}
			if !strings.Contains(buf.String(), "could not read controls") {
				t.Fatalf("expected failure to be logged, log was %q", buf.String())
			}
			data, _ := os.ReadFile(path)
			if string(data) != c.data {
				t.Fatalf("malformed file must be left alone")
			}
			assertConsistent(t, s)
		})
	}
}

func TestLoadSkipsUnknownKeyNames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "controls.json")
	writeRaw(t, path, `{
  "version": 1,
  "profiles": {
    "default": {
      "move_left": ["K_LEFT", "K_BOGUS", "LEFT"],
      "sprint": ["K_LSHIFT"]
    }
  },
  "active_profile": "default"
}`)

	s, buf := newTestStore(t, path)
	s.Load()

	if got := s.KeyNames(MoveLeft); !reflect.DeepEqual(got, []string{"K_LEFT"}) {
		t.Fatalf("move_left = %v, want [K_LEFT]", got)
	}
	if got := s.KeyNames(Sprint); !reflect.DeepEqual(got, []string{"K_LSHIFT"}) {
		t.Fatalf("sprint = %v, want [K_LSHIFT]", got)
	}
	logged := buf.String()
	if !strings.Contains(logged, "K_BOGUS") || !strings.Contains(logged, "LEFT") {
		t.Fatalf("expected each unknown key to be warned about, log was %q", logged)
	}
	assertConsistent(t, s)
}

func TestLoadActiveProfile(t *testing.T) {
	cases := []struct {
		name     string
		active   string
		wantName string
		wantLeft []string
	}{
		{"selected", "wasd", "wasd", []string{"K_a"}},
		{"missing_falls_back_to_default_data", "ghost", "ghost", []string{"K_LEFT"}},
		{"empty_means_default", "", DefaultProfileName, []string{"K_LEFT"}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "controls.json")
			f := File{
				Version: FileVersion,
				Profiles: map[string]map[string][]string{
					"default": {"move_left": {"K_LEFT"}},
					"wasd":    {"move_left": {"K_a"}},
				},
				ActiveProfile: c.active,
			}
			data, _ := json.Marshal(f)
			writeRaw(t, path, string(data))

			s, _ := newTestStore(t, path)
			s.Load()

			if s.ProfileName() != c.wantName {
				t.Fatalf("profile = %q, want %q", s.ProfileName(), c.wantName)
			}
			if got := s.KeyNames(MoveLeft); !reflect.DeepEqual(got, c.wantLeft) {
				t.Fatalf("move_left = %v, want %v", got, c.wantLeft)
			}
			assertConsistent(t, s)
		})
	}
}

func TestRebind(t *testing.T) {
	s, buf := newTestStore(t, filepath.Join(t.TempDir(), "controls.json"))

	s.Rebind(MoveLeft, []string{"K_a", "K_NOPE", "K_LEFT"})
	if got := s.KeyNames(MoveLeft); !reflect.DeepEqual(got, []string{"K_LEFT", "K_a"}) {
		t.Fatalf("move_left = %v", got)
	}
	if !strings.Contains(buf.String(), "K_NOPE") {
		t.Fatalf("expected warning for K_NOPE")
	}

	q, _ := keys.Lookup("K_q")
	if got := s.ActionsFor(q); len(got) != 0 {
		t.Fatalf("K_q should no longer be bound, got %v", got)
	}

	s.Rebind(Sprint, []string{"K_LEFT"})
	left, _ := keys.Lookup("K_LEFT")
	if got := s.ActionsFor(left); !reflect.DeepEqual(got, []Action{MoveLeft, Sprint}) {
		t.Fatalf("K_LEFT should fan out to move_left and sprint, got %v", got)
	}

	s.Rebind("dash", []string{"K_SPACE"})
	space, _ := keys.Lookup("K_SPACE")
	if got := s.ActionsFor(space); !reflect.DeepEqual(got, []Action{"dash"}) {
		t.Fatalf("new action not indexed, got %v", got)
	}

	s.Rebind(Pause, nil)
	esc, _ := keys.Lookup("K_ESCAPE")
	if got := s.ActionsFor(esc); len(got) != 0 {
		t.Fatalf("unbound pause still indexed: %v", got)
	}
	assertConsistent(t, s)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "controls.json")
	s, _ := newTestStore(t, path)
	s.Rebind(MoveUp, []string{"K_w", "K_UP"})
	s.Rebind(Sprint, []string{"K_RSHIFT", "K_LSHIFT"})
	if err := s.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}

	fresh, _ := newTestStore(t, path)
	fresh.Load()
	if !reflect.DeepEqual(fresh.Bindings(), s.Bindings()) {
		t.Fatalf("round trip mismatch:\n got %v\nwant %v", fresh.Bindings(), s.Bindings())
	}
	assertConsistent(t, fresh)

	var f File
	data, _ := os.ReadFile(path)
	if err := json.Unmarshal(data, &f); err != nil {
		t.Fatalf("saved file: %v", err)
	}
	if names := f.Profiles[DefaultProfileName][string(Sprint)]; !sort.StringsAreSorted(names) {
		t.Fatalf("saved key names not sorted: %v", names)
	}
}

func TestSaveFailureIsReturned(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	writeRaw(t, blocker, "not a directory")

	s, _ := newTestStore(t, filepath.Join(blocker, "controls.json"))
	err := s.Save()
	if err == nil {
		t.Fatalf("expected save into a file path to fail")
	}
	if !strings.Contains(err.Error(), "controls: save") {
		t.Fatalf("error should name the operation, got %v", err)
	}
}

func TestProfiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "controls.json")
	f := File{
		Version: FileVersion,
		Profiles: map[string]map[string][]string{
			"default": {"move_left": {"K_LEFT"}},
			"wasd":    {"move_left": {"K_a"}, "pause": {"K_p"}},
		},
		ActiveProfile: "default",
	}
	data, _ := json.Marshal(f)
	writeRaw(t, path, string(data))

	s, _ := newTestStore(t, path)
	s.Load()

	if got := s.Profiles(); !reflect.DeepEqual(got, []string{"default", "wasd"}) {
		t.Fatalf("profiles = %v", got)
	}

	t.Run("save_keeps_inactive_profiles", func(t *testing.T) {
		s.Rebind(MoveLeft, []string{"K_h"})
		if err := s.Save(); err != nil {
			t.Fatalf("save: %v", err)
		}
		fresh, _ := newTestStore(t, path)
		fresh.Load()
		if got := fresh.Profiles(); !reflect.DeepEqual(got, []string{"default", "wasd"}) {
			t.Fatalf("profiles after save = %v", got)
		}
	})

	t.Run("switch", func(t *testing.T) {
		if err := s.SwitchProfile("wasd"); err != nil {
			t.Fatalf("switch: %v", err)
		}
		if s.ProfileName() != "wasd" {
			t.Fatalf("active = %q", s.ProfileName())
		}
		p, _ := keys.Lookup("K_p")
		if got := s.ActionsFor(p); !reflect.DeepEqual(got, []Action{Pause}) {
			t.Fatalf("K_p = %v", got)
		}
		h, _ := keys.Lookup("K_h")
		if got := s.ActionsFor(h); len(got) != 0 {
			t.Fatalf("previous profile's keys still indexed: %v", got)
		}
		assertConsistent(t, s)

		if err := s.SwitchProfile("default"); err != nil {
			t.Fatalf("switch back: %v", err)
		}
		if got := s.KeyNames(MoveLeft); !reflect.DeepEqual(got, []string{"K_h"}) {
			t.Fatalf("rebind lost across switch: %v", got)
		}
	})

	t.Run("unknown", func(t *testing.T) {
		before := s.ProfileName()
		if err := s.SwitchProfile("nope"); err == nil {
			t.Fatalf("expected error for unknown profile")
		}
		if s.ProfileName() != before {
			t.Fatalf("failed switch changed the active profile")
		}
	})

	t.Run("reset_defaults", func(t *testing.T) {
		if err := s.SwitchProfile("wasd"); err != nil {
			t.Fatalf("switch: %v", err)
		}
		s.ResetDefaults()
		if s.ProfileName() != DefaultProfileName {
			t.Fatalf("active = %q", s.ProfileName())
		}
		if !reflect.DeepEqual(s.Bindings(), defaultNamed()) {
			t.Fatalf("bindings = %v", s.Bindings())
		}
		if got := s.Profiles(); !reflect.DeepEqual(got, []string{"default", "wasd"}) {
			t.Fatalf("profiles = %v", got)
		}
		assertConsistent(t, s)
	})
}

func TestRebindKeepsIndexConsistent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "controls.json")
	names := append(keys.Names(), "K_BOGUS", "SPACE", "")
	actions := []Action{MoveLeft, MoveRight, MoveUp, MoveDown, Sprint, Pause, "dash", "interact"}

	rapid.Check(t, func(rt *rapid.T) {
		s := NewStore(path, log.New(&bytes.Buffer{}))
		steps := rapid.IntRange(1, 20).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			a := rapid.SampledFrom(actions).Draw(rt, "action")
			ks := rapid.SliceOfN(rapid.SampledFrom(names), 0, 5).Draw(rt, "keys")
			s.Rebind(a, ks)
			assertConsistent(rt, s)
		}

		if err := s.Save(); err != nil {
			rt.Fatalf("save: %v", err)
		}
		fresh := NewStore(path, log.New(&bytes.Buffer{}))
		fresh.Load()
		assertConsistent(rt, fresh)
		if !reflect.DeepEqual(fresh.Bindings(), s.Bindings()) {
			rt.Fatalf("round trip mismatch:\n got %v\nwant %v", fresh.Bindings(), s.Bindings())
		}
	})
}
