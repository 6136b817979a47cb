package obj

import (
	"fmt"
	"image/color"
	"math"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/requiem/levels"
)

const defaultLayerColor = "#3c78ff"

// Level draws a tile map as coloured squares.
type Level struct {
	data *levels.Level

	// colour per layer and tile id, resolved once from layer meta
	colors []map[int]color.RGBA
	// tile images built on first draw
	tileImgs map[color.RGBA]*ebiten.Image
}

func NewLevel(data *levels.Level) *Level {
	l := &Level{
		data:     data,
		colors:   make([]map[int]color.RGBA, len(data.Layers)),
		tileImgs: make(map[color.RGBA]*ebiten.Image),
	}
	for i := range data.Layers {
		meta := levels.LayerMeta{Color: defaultLayerColor}
		if i < len(data.LayerMeta) {
			meta = data.LayerMeta[i]
		}
		base := parseHexColor(meta.Color)
		l.colors[i] = map[int]color.RGBA{0: base}
		for id, hex := range meta.Tiles {
			n, err := strconv.Atoi(id)
			if err != nil || n <= 0 {
				continue
			}
			l.colors[i][n] = parseHexColor(hex)
		}
	}
	return l
}

// LoadLevel loads an embedded or on-disk level by name.
func LoadLevel(name string) (*Level, error) {
	data, err := levels.Load(name)
	if err != nil {
		return nil, err
	}
	return NewLevel(data), nil
}

// PixelSize returns the world size in pixels.
func (l *Level) PixelSize() (int, int) {
	return l.data.PixelSize()
}

// Spawn returns the player spawn in world pixels.
func (l *Level) Spawn() (float64, float64) {
	ts := float64(l.data.TileSize)
	return float64(l.data.SpawnX) * ts, float64(l.data.SpawnY) * ts
}

// TileColor returns the colour a tile id draws with on layer. Ids without an
// override use the layer colour.
func (l *Level) TileColor(layer, id int) color.RGBA {
	if c, ok := l.colors[layer][id]; ok {
		return c
	}
	return l.colors[layer][0]
}

// Draw renders the visible tiles to screen. camX/camY are the camera view's
// top-left in world coords.
func (l *Level) Draw(screen *ebiten.Image, camX, camY, zoom float64) {
	if l == nil || l.data == nil {
		return
	}
	if zoom <= 0 {
		zoom = 1
	}
	ts := l.data.TileSize
	b := screen.Bounds()
	minX, maxX := visibleRange(camX, float64(b.Dx())/zoom, ts, l.data.Width)
	minY, maxY := visibleRange(camY, float64(b.Dy())/zoom, ts, l.data.Height)

	for layer := range l.data.Layers {
		for y := minY; y <= maxY; y++ {
			for x := minX; x <= maxX; x++ {
				id := l.data.Tile(layer, x, y)
				if id == 0 {
					continue
				}
				op := &ebiten.DrawImageOptions{}
				op.GeoM.Scale(zoom, zoom)
				op.GeoM.Translate(
					math.Round((float64(x*ts)-camX)*zoom),
					math.Round((float64(y*ts)-camY)*zoom),
				)
				op.Filter = ebiten.FilterNearest
				screen.DrawImage(l.tileImage(l.TileColor(layer, id)), op)
			}
		}
	}
}

func (l *Level) tileImage(c color.RGBA) *ebiten.Image {
	img, ok := l.tileImgs[c]
	if !ok {
		img = ebiten.NewImage(l.data.TileSize, l.data.TileSize)
		img.Fill(c)
		l.tileImgs[c] = img
	}
	return img
}

// visibleRange returns the inclusive tile range covering [from, from+span).
func visibleRange(from, span float64, tileSize, count int) (int, int) {
	lo := int(math.Floor(from/float64(tileSize))) - 1
	hi := int(math.Floor((from+span)/float64(tileSize))) + 1
	if lo < 0 {
		lo = 0
	}
	if hi >= count {
		hi = count - 1
	}
	return lo, hi
}

// parseHexColor parses a color in the form #rrggbb. Returns opaque blue if parse fails.
func parseHexColor(s string) color.RGBA {
	var r, g, b uint8 = 0x3c, 0x78, 0xff
	if len(s) == 7 && s[0] == '#' {
		var ri, gi, bi uint32
		if _, err := fmt.Sscanf(s[1:], "%02x%02x%02x", &ri, &gi, &bi); err == nil {
			r = uint8(ri)
			g = uint8(gi)
			b = uint8(bi)
		}
	}
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}
