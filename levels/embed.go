package levels

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/milk9111/requiem/common"
)

//go:embed *.json
var LevelsFS embed.FS

// DefaultTileSize is used when a level leaves tile_size out.
const DefaultTileSize = common.TileSize

// Level is a tile map on disk. Layers are row-major tile ids, drawn in
// order; 0 is empty.
type Level struct {
	Width     int         `json:"width"`
	Height    int         `json:"height"`
	TileSize  int         `json:"tile_size,omitempty"`
	Layers    [][]int     `json:"layers"`
	LayerMeta []LayerMeta `json:"layer_meta,omitempty"`
	// player spawn in tile coordinates
	SpawnX int `json:"spawn_x,omitempty"`
	SpawnY int `json:"spawn_y,omitempty"`
}

type LayerMeta struct {
	Name  string `json:"name,omitempty"`
	Color string `json:"color"`
	// Tiles overrides Color per tile id ("2": "#55555f").
	Tiles map[string]string `json:"tiles,omitempty"`
}

// Names lists the embedded levels without extension.
func Names() []string {
	entries, err := fs.ReadDir(LevelsFS, ".")
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		if name, ok := strings.CutSuffix(e.Name(), ".json"); ok {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// Load resolves name as an embedded level ("map0" or "map0.json"), falling
// back to a file on disk.
func Load(name string) (*Level, error) {
	file := name
	if path.Ext(file) == "" {
		file += ".json"
	}
	data, err := fs.ReadFile(LevelsFS, strings.TrimPrefix(file, "levels/"))
	if err != nil {
		data, err = os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("levels: read %s: %w", name, err)
		}
	}
	return Parse(data)
}

func Parse(data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("levels: unmarshal: %w", err)
	}
	if err := lvl.Validate(); err != nil {
		return nil, err
	}
	if lvl.TileSize <= 0 {
		lvl.TileSize = DefaultTileSize
	}
	return &lvl, nil
}

func (l *Level) Validate() error {
	if l.Width <= 0 || l.Height <= 0 {
		return fmt.Errorf("levels: invalid dimensions %dx%d", l.Width, l.Height)
	}
	for i, layer := range l.Layers {
		if len(layer) != l.Width*l.Height {
			return fmt.Errorf("levels: layer %d has %d tiles, want %d", i, len(layer), l.Width*l.Height)
		}
	}
	if l.SpawnX < 0 || l.SpawnX >= l.Width || l.SpawnY < 0 || l.SpawnY >= l.Height {
		return fmt.Errorf("levels: spawn (%d,%d) outside %dx%d", l.SpawnX, l.SpawnY, l.Width, l.Height)
	}
	return nil
}

// PixelSize returns the world size in pixels.
func (l *Level) PixelSize() (int, int) {
	return l.Width * l.TileSize, l.Height * l.TileSize
}

// Tile returns the id at (x, y) on layer, or 0 when out of range.
func (l *Level) Tile(layer, x, y int) int {
	if layer < 0 || layer >= len(l.Layers) || x < 0 || y < 0 || x >= l.Width || y >= l.Height {
		return 0
	}
	return l.Layers[layer][y*l.Width+x]
}
