package shade

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Panel quads are anchored horizontally at their center and vertically
// toward the top: the vertical offset divides by 2.5 where the horizontal
// divides by 2. This is a layout convention of the panel coordinate space,
// not a derived quantity.
const (
	panelAnchorDivisorX = 2.0
	panelAnchorDivisorY = 2.5
)

// PanelScaled scales a unit-quad corner by the panel size and applies the
// panel anchor offset.
func PanelScaled(p, size mgl32.Vec2) mgl32.Vec2 {
	offset := mgl32.Vec2{size.X() / panelAnchorDivisorX, -size.Y() / panelAnchorDivisorY}
	return mgl32.Vec2{p.X()*size.X() + offset.X(), p.Y()*size.Y() + offset.Y()}
}

// SpriteScaled scales a unit-quad corner by the instance size.
func SpriteScaled(p, size mgl32.Vec2) mgl32.Vec2 {
	return mgl32.Vec2{p.X() * size.X(), p.Y() * size.Y()}
}

// GlyphScaled scales a unit-quad corner by the glyph size and translates it
// to the glyph placement, both in the text block's local space.
func GlyphScaled(p, size, pos mgl32.Vec2) mgl32.Vec2 {
	return mgl32.Vec2{p.X()*size.X() + pos.X(), p.Y()*size.Y() + pos.Y()}
}

// ClipPosition lifts a scaled local position into clip space through the
// model and projection matrices. Both the z and w inputs of the homogeneous
// vector are fixed at 1: the quads live in a flat, orthographic-style world
// and carry no perspective depth of their own.
func ClipPosition(projection, model mgl32.Mat4, scaled mgl32.Vec2) mgl32.Vec4 {
	local := mgl32.Vec4{scaled.X(), scaled.Y(), 1, 1}
	return projection.Mul4(model).Mul4x1(local)
}
