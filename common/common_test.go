package common

import "testing"

func TestLerpAndClamp(t *testing.T) {
	if got := Lerp(10, 20, 0.25); got != 12.5 {
		t.Fatalf("Lerp = %v", got)
	}
	if got := Clamp(-1, 0, 5); got != 0 {
		t.Fatalf("Clamp low = %v", got)
	}
	if got := Clamp(9, 0, 5); got != 5 {
		t.Fatalf("Clamp high = %v", got)
	}
	if got := Clamp(3, 0, 5); got != 3 {
		t.Fatalf("Clamp mid = %v", got)
	}
	x, y := Rect{X: 2, Y: 4, Width: 24, Height: 32}.Center()
	if x != 14 || y != 20 {
		t.Fatalf("Center = %v,%v", x, y)
	}
}
