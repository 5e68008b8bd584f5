// Package shade is the CPU-side model of the quad shading programs.
//
// Every function here is a pure mapping from inputs to outputs, mirroring one
// stage of the GPU programs embedded in package shaders: the corner generator,
// the vertex transform, and the fragment compositors. The GPU path and this
// package must agree; the tests in this package pin the contract down.
package shade

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Corner maps a per-vertex ordinal to a unit-quad corner. The quad is
// centered at the origin with half-extent 0.5 on both axes. The ordinal
// order encodes triangle-strip assembly for a quad drawn without an index
// buffer, so it must not be reordered.
//
// Ordinals outside [0,3] are a caller fault: the result is the zero vector,
// matching the no-op default branch of the WGSL switch. No runtime check is
// performed.
func Corner(ordinal uint32) mgl32.Vec2 {
	switch ordinal {
	case 0:
		return mgl32.Vec2{-0.5, 0.5} // top left
	case 1:
		return mgl32.Vec2{-0.5, -0.5} // bottom left
	case 2:
		return mgl32.Vec2{0.5, 0.5} // top right
	case 3:
		return mgl32.Vec2{0.5, -0.5} // bottom right
	}
	return mgl32.Vec2{}
}

// CornerUV maps a per-vertex ordinal to the texture coordinate of the
// matching corner of Corner. UV y grows downward: ordinal 0 (top left) is
// (0,0) and ordinal 3 (bottom right) is (1,1).
func CornerUV(ordinal uint32) mgl32.Vec2 {
	switch ordinal {
	case 0:
		return mgl32.Vec2{0, 0}
	case 1:
		return mgl32.Vec2{0, 1}
	case 2:
		return mgl32.Vec2{1, 0}
	case 3:
		return mgl32.Vec2{1, 1}
	}
	return mgl32.Vec2{}
}

// GlyphCornerUV maps a per-vertex ordinal into the atlas sub-rectangle
// [uvStart, uvEnd] of a single glyph, using the same corner order as
// CornerUV.
func GlyphCornerUV(ordinal uint32, uvStart, uvEnd mgl32.Vec2) mgl32.Vec2 {
	switch ordinal {
	case 0:
		return uvStart
	case 1:
		return mgl32.Vec2{uvStart.X(), uvEnd.Y()}
	case 2:
		return mgl32.Vec2{uvEnd.X(), uvStart.Y()}
	case 3:
		return uvEnd
	}
	return mgl32.Vec2{}
}

// QuadIndices assembles the four corners into two triangles for hosts that
// draw the explicit-vertex variant with an index buffer instead of a strip.
var QuadIndices = [6]uint16{0, 1, 3, 0, 3, 2}
