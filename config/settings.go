// Package config loads game settings from YAML.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the override file looked up in the working directory.
const DefaultPath = "settings.yaml"

//go:embed settings.yaml
var defaultSettingsYAML []byte

type WindowSettings struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Title     string `yaml:"title"`
	TPS       int    `yaml:"tps"`
	Resizable bool   `yaml:"resizable"`
}

type CameraSettings struct {
	Zoom       float64 `yaml:"zoom"`
	Smoothness float64 `yaml:"smoothness"`
}

type PlayerSettings struct {
	WalkSpeed   float64 `yaml:"walk_speed"`
	SprintSpeed float64 `yaml:"sprint_speed"`
	SpriteW     int     `yaml:"sprite_w"`
	SpriteH     int     `yaml:"sprite_h"`
	Sheet       string  `yaml:"sheet"`
}

type Settings struct {
	Window        WindowSettings `yaml:"window"`
	Camera        CameraSettings `yaml:"camera"`
	Player        PlayerSettings `yaml:"player"`
	StartMap      string         `yaml:"start_map"`
	ControlsPath  string         `yaml:"controls_path"`
	WatchControls bool           `yaml:"watch_controls"`
	LogLevel      string         `yaml:"log_level"`
	Debug         bool           `yaml:"debug"`
}

// Default returns the embedded settings.
func Default() Settings {
	var s Settings
	if err := yaml.Unmarshal(defaultSettingsYAML, &s); err != nil {
		panic(fmt.Sprintf("config: embedded settings: %v", err))
	}
	return s
}

// Load overlays the YAML file at path on the embedded defaults. A missing
// file is not an error; fields the file leaves out keep their defaults.
func Load(path string) (Settings, error) {
	s := Default()
	if path == "" {
		return s, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("config: load %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Default(), fmt.Errorf("config: unmarshal %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return Default(), fmt.Errorf("config: %s: %w", path, err)
	}
	return s, nil
}

func (s Settings) Validate() error {
	var errs []error
	if s.Window.Width <= 0 || s.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d", s.Window.Width, s.Window.Height))
	}
	if s.Window.TPS <= 0 {
		errs = append(errs, fmt.Errorf("window tps %d", s.Window.TPS))
	}
	if s.Camera.Zoom <= 0 {
		errs = append(errs, fmt.Errorf("camera zoom %v", s.Camera.Zoom))
	}
	if s.Camera.Smoothness < 0 || s.Camera.Smoothness > 1 {
		errs = append(errs, fmt.Errorf("camera smoothness %v outside [0,1]", s.Camera.Smoothness))
	}
	if s.Player.WalkSpeed < 0 || s.Player.SprintSpeed < 0 {
		errs = append(errs, fmt.Errorf("negative player speed"))
	}
	if _, err := log.ParseLevel(s.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level %q", s.LogLevel))
	}
	return errors.Join(errs...)
}

// Level returns the parsed log level, or info when it does not parse.
func (s Settings) Level() log.Level {
	lvl, err := log.ParseLevel(s.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}
