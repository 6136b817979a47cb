package obj

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/requiem/common"
	"github.com/milk9111/requiem/controls"
	"golang.org/x/image/colornames"
)

const (
	DefaultWalkSpeed   = 140.0
	DefaultSprintSpeed = 220.0
	DefaultSpriteW     = 24
	DefaultSpriteH     = 32
)

type PlayerConfig struct {
	WalkSpeed   float64
	SprintSpeed float64
	SpriteW     int
	SpriteH     int
	// Sheet holds one column of frames, one row per Facing. Nil or too small
	// a sheet draws a plain rectangle instead.
	Sheet *ebiten.Image
}

func (c PlayerConfig) withDefaults() PlayerConfig {
	if c.WalkSpeed <= 0 {
		c.WalkSpeed = DefaultWalkSpeed
	}
	if c.SprintSpeed <= 0 {
		c.SprintSpeed = DefaultSprintSpeed
	}
	if c.SpriteW <= 0 {
		c.SpriteW = DefaultSpriteW
	}
	if c.SpriteH <= 0 {
		c.SpriteH = DefaultSpriteH
	}
	return c
}

// Player is the controllable character. Position is kept in float world
// pixels so slow movement accumulates across frames.
type Player struct {
	X, Y   float64
	Facing Facing

	WalkSpeed   float64
	SprintSpeed float64

	width   int
	height  int
	input   ActionQuery
	sprites [4]*ebiten.Image
	img     *ebiten.Image
}

func NewPlayer(x, y float64, input ActionQuery, cfg PlayerConfig) *Player {
	cfg = cfg.withDefaults()
	p := &Player{
		X:           x,
		Y:           y,
		Facing:      FacingDown,
		WalkSpeed:   cfg.WalkSpeed,
		SprintSpeed: cfg.SprintSpeed,
		width:       cfg.SpriteW,
		height:      cfg.SpriteH,
		input:       input,
	}
	if cfg.Sheet != nil {
		p.sprites = sliceSheet(cfg.Sheet, cfg.SpriteW, cfg.SpriteH)
	}
	return p
}

// sliceSheet cuts the first column of sheet into one frame per facing.
func sliceSheet(sheet *ebiten.Image, w, h int) [4]*ebiten.Image {
	var out [4]*ebiten.Image
	b := sheet.Bounds()
	if b.Dx() < w || b.Dy() < h*len(out) {
		return out
	}
	for f := range out {
		r := image.Rect(b.Min.X, b.Min.Y+f*h, b.Min.X+w, b.Min.Y+(f+1)*h)
		out[f] = sheet.SubImage(r).(*ebiten.Image)
	}
	return out
}

// Speed returns the current movement speed in pixels per second.
func (p *Player) Speed() float64 {
	if p.input.IsHeld(controls.Sprint) {
		return p.SprintSpeed
	}
	return p.WalkSpeed
}

// Update moves the player by dt seconds of held input.
func (p *Player) Update(dt float64) {
	dx, dy := ResolveDirection(p.input)
	p.Facing = ResolveFacing(dx, dy, p.Facing)
	speed := p.Speed()
	p.X += dx * speed * dt
	p.Y += dy * speed * dt
}

// Rect returns the integer pixel bounds at the current position.
func (p *Player) Rect() common.Rect {
	return common.Rect{X: int(p.X), Y: int(p.Y), Width: p.width, Height: p.height}
}

// Draw renders the player. camX/camY are the view's top-left in world coords.
func (p *Player) Draw(screen *ebiten.Image, camX, camY, zoom float64) {
	if zoom <= 0 {
		zoom = 1
	}
	r := p.Rect()
	tx := math.Round((float64(r.X) - camX) * zoom)
	ty := math.Round((float64(r.Y) - camY) * zoom)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(zoom, zoom)
	op.GeoM.Translate(tx, ty)
	op.Filter = ebiten.FilterNearest

	if sprite := p.sprites[p.Facing]; sprite != nil {
		screen.DrawImage(sprite, op)
		return
	}

	if p.img == nil {
		p.img = ebiten.NewImage(p.width, p.height)
		p.img.Fill(colornames.Crimson)
	}
	screen.DrawImage(p.img, op)

	// facing marker
	mx, my := p.markerOffset()
	vector.DrawFilledRect(screen,
		float32(tx+mx*zoom-zoom), float32(ty+my*zoom-zoom),
		float32(2*zoom), float32(2*zoom),
		colornames.White, false)
}

func (p *Player) markerOffset() (float64, float64) {
	w, h := float64(p.width), float64(p.height)
	switch p.Facing {
	case FacingUp:
		return w / 2, 3
	case FacingRight:
		return w - 3, h / 2
	case FacingLeft:
		return 3, h / 2
	default:
		return w / 2, h - 3
	}
}
