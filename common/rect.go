package common

// Rect is an integer pixel rectangle.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Center returns the midpoint of r.
func (r Rect) Center() (float64, float64) {
	return float64(r.X) + float64(r.Width)/2, float64(r.Y) + float64(r.Height)/2
}
