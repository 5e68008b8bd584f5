package shade

import (
	"github.com/go-gl/mathgl/mgl32"
)

// RGBA8 is a color packed into a single 32-bit value, laid out 0xAARRGGBB
// from most- to least-significant byte. Glyph instances carry their color in
// this form to keep the instance record at one word.
type RGBA8 uint32

// PackRGBA packs four 8-bit channels into the 0xAARRGGBB layout.
func PackRGBA(r, g, b, a uint8) RGBA8 {
	return RGBA8(uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// PackColor quantizes a float color in [0,1] per channel into RGBA8.
func PackColor(c mgl32.Vec4) RGBA8 {
	return PackRGBA(quantize(c.X()), quantize(c.Y()), quantize(c.Z()), quantize(c.W()))
}

// Unpack expands the packed color into float channels in [0,1], the exact
// inverse of PackRGBA.
func (c RGBA8) Unpack() mgl32.Vec4 {
	return mgl32.Vec4{
		float32((c>>16)&0xFF) / 255,
		float32((c>>8)&0xFF) / 255,
		float32(c&0xFF) / 255,
		float32((c>>24)&0xFF) / 255,
	}
}

func quantize(v float32) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	}
	return uint8(v*255 + 0.5)
}
