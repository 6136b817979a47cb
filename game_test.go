package main

import (
	"bytes"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/milk9111/requiem/config"
	"github.com/milk9111/requiem/controls"
	"github.com/milk9111/requiem/input"
	"github.com/milk9111/requiem/keys"
)

func TestControlsReloadResetsHeldActions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config", "controls.json")
	var logs bytes.Buffer
	logger := log.New(&logs)
	logger.SetLevel(log.DebugLevel)

	store := controls.NewStore(path, logger)
	store.Load()
	tracker := input.NewTracker(store)
	right, _ := keys.Lookup("K_RIGHT")
	tracker.OnKeyDown(right)

	r, err := watchControls(store, tracker, logger)
	if err != nil {
		t.Fatalf("watchControls: %v", err)
	}
	defer r.close()

	// another process (the controls tool) edits the file
	editor := controls.NewStore(path, log.New(&bytes.Buffer{}))
	editor.Load()
	editor.Rebind(controls.MoveRight, []string{"K_d"})
	if err := editor.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	want := []string{"K_d"}
	deadline := time.Now().Add(2 * time.Second)
	for !reflect.DeepEqual(store.KeyNames(controls.MoveRight), want) {
		if time.Now().After(deadline) {
			t.Fatalf("reload not seen, move_right = %v", store.KeyNames(controls.MoveRight))
		}
		time.Sleep(10 * time.Millisecond)
		r.reload()
	}

	if tracker.IsHeld(controls.MoveRight) {
		t.Fatalf("held actions should be dropped after the bindings change")
	}
	if !strings.Contains(logs.String(), "reloaded controls") {
		t.Fatalf("reload not logged: %q", logs.String())
	}
}

func TestOverrideSettings(t *testing.T) {
	cases := []struct {
		name    string
		o       flagOverrides
		wantErr bool
		check   func(t *testing.T, s config.Settings)
	}{
		{
			name: "empty_keeps_settings",
			check: func(t *testing.T, s config.Settings) {
				if s != config.Default() {
					t.Fatalf("settings changed: %+v", s)
				}
			},
		},
		{
			name: "applies_values",
			o:    flagOverrides{controlsPath: "a.json", level: "map1", logLevel: "debug", debug: true},
			check: func(t *testing.T, s config.Settings) {
				if s.ControlsPath != "a.json" || s.StartMap != "map1" || !s.Debug {
					t.Fatalf("overrides not applied: %+v", s)
				}
				if s.Level() != log.DebugLevel {
					t.Fatalf("Level() = %v, want debug", s.Level())
				}
			},
		},
		{
			name:    "bad_log_level",
			o:       flagOverrides{logLevel: "loud"},
			wantErr: true,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s, err := overrideSettings(config.Default(), c.o)
			if c.wantErr {
				if err == nil || !strings.Contains(err.Error(), "loud") {
					t.Fatalf("err = %v, want log level error", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("overrideSettings: %v", err)
			}
			c.check(t, s)
		})
	}
}
