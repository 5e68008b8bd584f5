package shade

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func vec2Near(a, b mgl32.Vec2, eps float32) bool {
	return mgl32.Abs(a.X()-b.X()) <= eps && mgl32.Abs(a.Y()-b.Y()) <= eps
}

func TestPanelScaledAnchor(t *testing.T) {
	size := mgl32.Vec2{200, 100}

	// Horizontal anchor is the panel center, vertical anchor divides by 2.5.
	wantOffset := mgl32.Vec2{100, -40}

	for ordinal := uint32(0); ordinal < 4; ordinal++ {
		p := Corner(ordinal)
		got := PanelScaled(p, size)
		want := mgl32.Vec2{
			p.X()*size.X() + wantOffset.X(),
			p.Y()*size.Y() + wantOffset.Y(),
		}
		if !vec2Near(got, want, 1e-5) {
			t.Errorf("PanelScaled(corner %d) = %v, want %v", ordinal, got, want)
		}
	}

	// Concrete corners: the panel spans [0,200] horizontally and is shifted
	// 40 units above its vertical midline.
	if got := PanelScaled(Corner(0), size); !vec2Near(got, mgl32.Vec2{0, 10}, 1e-5) {
		t.Errorf("top left = %v, want (0,10)", got)
	}
	if got := PanelScaled(Corner(3), size); !vec2Near(got, mgl32.Vec2{200, -90}, 1e-5) {
		t.Errorf("bottom right = %v, want (200,-90)", got)
	}
}

func TestSpriteScaled(t *testing.T) {
	size := mgl32.Vec2{64, 32}
	if got := SpriteScaled(Corner(2), size); !vec2Near(got, mgl32.Vec2{32, 16}, 1e-6) {
		t.Errorf("SpriteScaled top right = %v, want (32,16)", got)
	}
	if got := SpriteScaled(Corner(1), size); !vec2Near(got, mgl32.Vec2{-32, -16}, 1e-6) {
		t.Errorf("SpriteScaled bottom left = %v, want (-32,-16)", got)
	}
}

func TestGlyphScaled(t *testing.T) {
	size := mgl32.Vec2{10, 20}
	pos := mgl32.Vec2{100, 50}

	// The glyph quad is centered on its placement point.
	if got := GlyphScaled(mgl32.Vec2{}, size, pos); !vec2Near(got, pos, 1e-6) {
		t.Errorf("glyph center = %v, want %v", got, pos)
	}
	if got := GlyphScaled(Corner(3), size, pos); !vec2Near(got, mgl32.Vec2{105, 40}, 1e-6) {
		t.Errorf("glyph bottom right = %v, want (105,40)", got)
	}
}

func TestClipPositionFixedZW(t *testing.T) {
	// With identity matrices the clip position is the scaled position with z
	// and w both pinned at 1.
	got := ClipPosition(mgl32.Ident4(), mgl32.Ident4(), mgl32.Vec2{3, -2})
	want := mgl32.Vec4{3, -2, 1, 1}
	if got != want {
		t.Fatalf("ClipPosition identity = %v, want %v", got, want)
	}
}

func TestClipPositionAppliesModelThenProjection(t *testing.T) {
	model := mgl32.Translate3D(10, 0, 0)
	projection := mgl32.Scale3D(0.5, 0.5, 1)

	got := ClipPosition(projection, model, mgl32.Vec2{2, 4})
	want := mgl32.Vec4{6, 2, 1, 1}

	for i := 0; i < 4; i++ {
		if mgl32.Abs(got[i]-want[i]) > 1e-5 {
			t.Fatalf("ClipPosition = %v, want %v", got, want)
		}
	}
}

func TestClipPositionOrthographic(t *testing.T) {
	// A 800x600 y-down pixel camera maps the viewport corners onto the clip
	// cube boundary.
	projection := mgl32.Ortho(0, 800, 600, 0, -1000, 1000)

	topLeft := ClipPosition(projection, mgl32.Ident4(), mgl32.Vec2{0, 0})
	if mgl32.Abs(topLeft.X()+1) > 1e-5 || mgl32.Abs(topLeft.Y()-1) > 1e-5 {
		t.Errorf("top left clip = %v, want x=-1 y=1", topLeft)
	}

	bottomRight := ClipPosition(projection, mgl32.Ident4(), mgl32.Vec2{800, 600})
	if mgl32.Abs(bottomRight.X()-1) > 1e-5 || mgl32.Abs(bottomRight.Y()+1) > 1e-5 {
		t.Errorf("bottom right clip = %v, want x=1 y=-1", bottomRight)
	}

	if mgl32.Abs(topLeft.W()-1) > 1e-6 {
		t.Errorf("orthographic w = %v, want 1", topLeft.W())
	}
}
