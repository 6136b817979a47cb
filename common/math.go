package common

// Logical screen size and tile size of the world.
const (
	BaseWidth  = 1280
	BaseHeight = 720
	TileSize   = 16
)

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
