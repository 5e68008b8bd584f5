package shade

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestPanelColorStrictInterval(t *testing.T) {
	menu := mgl32.Vec4{0.2, 0.2, 0.2, 1}
	selection := mgl32.Vec4{0.8, 0, 0, 1}

	tests := []struct {
		name string
		uvY  float32
		want mgl32.Vec4
	}{
		{"inside", 0.45, selection},
		{"below", 0.1, menu},
		{"above", 0.9, menu},
		{"exactly at start", 0.3, menu},
		{"exactly at end", 0.6, menu},
		{"just inside start", 0.300001, selection},
		{"just inside end", 0.599999, selection},
	}

	for _, tt := range tests {
		got := PanelColor(tt.uvY, 0.3, 0.6, menu, selection)
		if got != tt.want {
			t.Errorf("%s: PanelColor(%v) = %v, want %v", tt.name, tt.uvY, got, tt.want)
		}
	}
}

func TestPanelColorEmptyRange(t *testing.T) {
	menu := mgl32.Vec4{1, 1, 1, 1}
	selection := mgl32.Vec4{0, 0, 0, 1}

	// A zero-width band selects nothing.
	if got := PanelColor(0.5, 0.5, 0.5, menu, selection); got != menu {
		t.Fatalf("empty range selected %v, want menu color", got)
	}
}

func TestTexturedColor(t *testing.T) {
	tests := []struct {
		name   string
		sample mgl32.Vec4
		tint   mgl32.Vec4
		want   mgl32.Vec4
	}{
		{
			"red texel half alpha tint",
			mgl32.Vec4{1, 0, 0, 1},
			mgl32.Vec4{1, 1, 1, 0.5},
			mgl32.Vec4{1, 0, 0, 0.5},
		},
		{
			"white tint passes through",
			mgl32.Vec4{0.25, 0.5, 0.75, 1},
			mgl32.Vec4{1, 1, 1, 1},
			mgl32.Vec4{0.25, 0.5, 0.75, 1},
		},
		{
			"zero alpha texel stays transparent",
			mgl32.Vec4{1, 1, 1, 0},
			mgl32.Vec4{1, 1, 1, 1},
			mgl32.Vec4{1, 1, 1, 0},
		},
		{
			"zero alpha tint kills alpha",
			mgl32.Vec4{0.5, 0.5, 0.5, 1},
			mgl32.Vec4{1, 1, 1, 0},
			mgl32.Vec4{0.5, 0.5, 0.5, 0},
		},
	}

	for _, tt := range tests {
		if got := TexturedColor(tt.sample, tt.tint); got != tt.want {
			t.Errorf("%s: TexturedColor = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestGlyphColor(t *testing.T) {
	ink := mgl32.Vec4{0, 1, 0, 1}

	got := GlyphColor(ink, 0.5)
	want := mgl32.Vec4{0, 1, 0, 0.5}
	if got != want {
		t.Fatalf("GlyphColor = %v, want %v", got, want)
	}

	// rgb is unconditional: zero coverage still carries the ink color, only
	// alpha goes to zero.
	got = GlyphColor(mgl32.Vec4{0.3, 0.6, 0.9, 0.8}, 0)
	want = mgl32.Vec4{0.3, 0.6, 0.9, 0}
	if got != want {
		t.Fatalf("GlyphColor zero coverage = %v, want %v", got, want)
	}
}

func TestGlyphColorFromPacked(t *testing.T) {
	// 0xFF00FF00: alpha 255, red 0, green 255, blue 0.
	decoded := RGBA8(0xFF00FF00).Unpack()
	got := GlyphColor(decoded, 0.5)
	want := mgl32.Vec4{0, 1, 0, 0.5}
	if got != want {
		t.Fatalf("GlyphColor(unpack 0xFF00FF00, 0.5) = %v, want %v", got, want)
	}
}
