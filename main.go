package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/requiem/config"
)

// flagOverrides holds command-line values that replace settings fields when set.
type flagOverrides struct {
	controlsPath string
	level        string
	logLevel     string
	debug        bool
}

func overrideSettings(s config.Settings, o flagOverrides) (config.Settings, error) {
	if o.controlsPath != "" {
		s.ControlsPath = o.controlsPath
	}
	if o.level != "" {
		s.StartMap = o.level
	}
	if o.logLevel != "" {
		if _, err := log.ParseLevel(o.logLevel); err != nil {
			return s, fmt.Errorf("-log-level %q: %w", o.logLevel, err)
		}
		s.LogLevel = o.logLevel
	}
	if o.debug {
		s.Debug = true
	}
	return s, nil
}

func main() {
	settingsPath := flag.String("settings", config.DefaultPath, "settings YAML overriding the built-in defaults")
	controlsPath := flag.String("controls", "", "controls file (default from settings)")
	levelName := flag.String("level", "", "level name in levels/ (basename, .json optional)")
	logLevel := flag.String("log-level", "", "debug, info, warn or error (default from settings)")
	debug := flag.Bool("debug", false, "enable debug overlay")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Prefix: "requiem"})

	s, err := config.Load(*settingsPath)
	if err != nil {
		logger.Fatal("could not load settings", "path", *settingsPath, "error", err)
	}
	s, err = overrideSettings(s, flagOverrides{
		controlsPath: *controlsPath,
		level:        *levelName,
		logLevel:     *logLevel,
		debug:        *debug,
	})
	if err != nil {
		logger.Fatal("invalid flags", "error", err)
	}
	logger.SetLevel(s.Level())

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	if s.Window.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	ebiten.SetWindowSize(s.Window.Width, s.Window.Height)
	ebiten.SetWindowTitle(s.Window.Title)
	ebiten.SetTPS(s.Window.TPS)
	ebiten.SetWindowClosingHandled(true)

	game, closeFn, err := NewGame(s, logger)
	if err != nil {
		logger.Fatal("could not start", "error", err)
	}
	defer closeFn()

	if err := ebiten.RunGame(game); err != nil {
		logger.Error("game stopped", "error", err)
		closeFn()
		os.Exit(1)
	}
	logger.Info("bye", "frames", game.Frames())
}
