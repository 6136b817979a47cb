// sheetview previews a character sheet. The move keys from the controls file
// turn the character the same way they do in the game.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/milk9111/requiem/assets"
	"github.com/milk9111/requiem/controls"
	"github.com/milk9111/requiem/engine"
	"github.com/milk9111/requiem/input"
	"github.com/milk9111/requiem/obj"
	"github.com/milk9111/requiem/state"
)

const (
	screenWidth  = 256
	screenHeight = 256
)

// viewState pins the player in the middle of the window and only lets input
// change its facing.
type viewState struct {
	state.Base
	player *obj.Player
	zoom   float64
	label  string
}

func (v *viewState) Update(dt float64) {
	x, y := v.player.X, v.player.Y
	v.player.Update(dt)
	v.player.X, v.player.Y = x, y
}

func (v *viewState) Render(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0x20, 0x20, 0x28, 0xff})
	v.player.Draw(screen, 0, 0, v.zoom)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s\nfacing %s", v.label, v.player.Facing), 4, 4)
}

func main() {
	sheetPath := flag.String("sheet", assets.PlayerSheetPath, "sheet image (embedded asset name or file path)")
	frameW := flag.Int("w", obj.DefaultSpriteW, "frame width")
	frameH := flag.Int("h", obj.DefaultSpriteH, "frame height")
	zoom := flag.Float64("zoom", 4, "preview scale")
	controlsPath := flag.String("controls", controls.DefaultPath, "controls file")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "sheetview"})

	sheet, err := assets.LoadImage(*sheetPath)
	if err != nil {
		logger.Fatal("could not load sheet", "sheet", *sheetPath, "error", err)
	}
	if b := sheet.Bounds(); b.Dx() < *frameW || b.Dy() < *frameH*4 {
		logger.Fatal("sheet too small for four rows", "size", fmt.Sprintf("%dx%d", b.Dx(), b.Dy()), "frame", fmt.Sprintf("%dx%d", *frameW, *frameH))
	}

	store := controls.NewStore(*controlsPath, logger.WithPrefix("controls"))
	store.Load()
	tracker := input.NewTracker(store)

	// world coordinates are screen pixels divided by zoom
	z := *zoom
	x := (screenWidth/z - float64(*frameW)) / 2
	y := (screenHeight/z - float64(*frameH)) / 2
	player := obj.NewPlayer(x, y, tracker, obj.PlayerConfig{SpriteW: *frameW, SpriteH: *frameH, Sheet: sheet})

	game := engine.NewGame(engine.Config{
		Tracker: tracker,
		Machine: state.NewMachine(&viewState{player: player, zoom: *zoom, label: *sheetPath}),
		Clock:   engine.NewWallClock(0.25),
		Source:  input.NewEbitenSource(),
		Logger:  logger,
		Width:   screenWidth,
		Height:  screenHeight,
	})

	ebiten.SetWindowSize(screenWidth*2, screenHeight*2)
	ebiten.SetWindowTitle("sheetview")
	ebiten.SetWindowClosingHandled(true)
	if err := ebiten.RunGame(game); err != nil {
		logger.Fatal(err)
	}
}
