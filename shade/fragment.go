package shade

import (
	"github.com/go-gl/mathgl/mgl32"
)

// PanelColor resolves a panel fragment to either the selection color or the
// menu color. The selection band is an open interval: fragments exactly on
// start or end resolve to the menu color.
func PanelColor(uvY, start, end float32, menu, selection mgl32.Vec4) mgl32.Vec4 {
	if start < uvY && uvY < end {
		return selection
	}
	return menu
}

// TexturedColor tints a sampled texel by the instance color, component-wise
// including alpha.
func TexturedColor(sample, tint mgl32.Vec4) mgl32.Vec4 {
	return mgl32.Vec4{
		sample.X() * tint.X(),
		sample.Y() * tint.Y(),
		sample.Z() * tint.Z(),
		sample.W() * tint.W(),
	}
}

// GlyphColor composites a glyph fragment from the decoded instance color and
// the atlas coverage sample. The atlas stores ink coverage, not color: rgb
// passes through unmodified and coverage only attenuates alpha.
func GlyphColor(color mgl32.Vec4, coverage float32) mgl32.Vec4 {
	return mgl32.Vec4{color.X(), color.Y(), color.Z(), color.W() * coverage}
}
