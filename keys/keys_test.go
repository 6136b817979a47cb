package keys

import (
	"sort"
	"strings"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestLookup(t *testing.T) {
	cases := []struct {
		name string
		want ebiten.Key
		ok   bool
	}{
		{"K_LEFT", ebiten.KeyArrowLeft, true},
		{"K_q", ebiten.KeyQ, true},
		{"K_LSHIFT", ebiten.KeyShiftLeft, true},
		{"K_ESCAPE", ebiten.KeyEscape, true},
		{"K_RETURN", ebiten.KeyEnter, true},
		{"K_Q", 0, false},
		{"LEFT", 0, false},
		{"k_left", 0, false},
		{"K_NOPE", 0, false},
		{"", 0, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := Lookup(c.name)
			if ok != c.ok {
				t.Fatalf("Lookup(%q) ok = %v, want %v", c.name, ok, c.ok)
			}
			if ok && got != FromEbiten(c.want) {
				t.Fatalf("Lookup(%q) = %v, want %v", c.name, got, FromEbiten(c.want))
			}
		})
	}
}

func TestNameRoundTrip(t *testing.T) {
	for _, n := range Names() {
		c, ok := Lookup(n)
		if !ok {
			t.Fatalf("listed name %q does not resolve", n)
		}
		if got := Name(c); got != n {
			t.Fatalf("Name(Lookup(%q)) = %q", n, got)
		}
	}
}

func TestNamesSortedAndPrefixed(t *testing.T) {
	ns := Names()
	if len(ns) == 0 {
		t.Fatalf("expected a non-empty table")
	}
	if !sort.StringsAreSorted(ns) {
		t.Fatalf("Names() not sorted")
	}
	for _, n := range ns {
		if !strings.HasPrefix(n, Prefix) {
			t.Fatalf("name %q lacks prefix %q", n, Prefix)
		}
	}

	ns[0] = "mutated"
	if Names()[0] == "mutated" {
		t.Fatalf("Names() must return a copy")
	}
}

func TestUnknownCodeName(t *testing.T) {
	c := Code(-42)
	n := Name(c)
	if n != "K_-42" {
		t.Fatalf("Name(%d) = %q", c, n)
	}
	if _, ok := Lookup(n); ok {
		t.Fatalf("fallback name %q must not resolve", n)
	}
}
