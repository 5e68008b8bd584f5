package lumen

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const (
	atlasSize    = 512
	atlasPadding = 4
)

// GlyphInfo locates one rasterized glyph: its sub-rectangle in the atlas,
// its pixel size, bearing offset from the pen position, and horizontal
// advance.
type GlyphInfo struct {
	UVStart mgl32.Vec2
	UVEnd   mgl32.Vec2
	Size    mgl32.Vec2
	Offset  mgl32.Vec2
	Advance float32
}

// TextAtlas rasterizes the printable ASCII range of a font into a
// single-channel coverage texture and keeps the per-rune placement data the
// text pipeline lays glyph instances out with.
type TextAtlas struct {
	image    *image.Alpha
	glyphs   map[rune]GlyphInfo
	face     font.Face
	fontSize float64

	texture   *wgpu.Texture
	view      *wgpu.TextureView
	sampler   *wgpu.Sampler
	bindGroup *wgpu.BindGroup
}

// NewTextAtlas parses fontData and packs glyph coverage masks row by row
// into a fixed-size alpha image, then uploads it as an R8 texture.
func NewTextAtlas(g *gpuContext, layout *wgpu.BindGroupLayout, fontData []byte, fontSize float64) (*TextAtlas, error) {
	f, err := opentype.Parse(fontData)
	if err != nil {
		return nil, fmt.Errorf("parsing font: %w", err)
	}

	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    fontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("creating font face: %w", err)
	}

	img := image.NewAlpha(image.Rect(0, 0, atlasSize, atlasSize))
	glyphs := make(map[rune]GlyphInfo)

	x, y := atlasPadding/2, atlasPadding/2
	rowHeight := 0

	for r := rune(32); r < 127; r++ {
		bounds, mask, _, adv, ok := face.Glyph(fixed.Point26_6{}, r)
		if !ok {
			continue
		}

		w := mask.Bounds().Dx()
		h := mask.Bounds().Dy()

		if x+w >= atlasSize {
			x = atlasPadding / 2
			y += rowHeight + atlasPadding
			rowHeight = 0
		}
		if y+h >= atlasSize {
			return nil, fmt.Errorf("font size %v overflows the %dpx glyph atlas", fontSize, atlasSize)
		}

		draw.Draw(img, image.Rect(x, y, x+w, y+h), mask, mask.Bounds().Min, draw.Src)

		glyphs[r] = GlyphInfo{
			UVStart: mgl32.Vec2{float32(x) / atlasSize, float32(y) / atlasSize},
			UVEnd:   mgl32.Vec2{float32(x+w) / atlasSize, float32(y+h) / atlasSize},
			Size:    mgl32.Vec2{float32(w), float32(h)},
			Offset:  mgl32.Vec2{float32(bounds.Min.X), float32(bounds.Min.Y)},
			Advance: float32(adv) / 64.0, // fixed 26.6 to float
		}

		x += w + atlasPadding
		if h > rowHeight {
			rowHeight = h
		}
	}

	atlas := &TextAtlas{
		image:    img,
		glyphs:   glyphs,
		face:     face,
		fontSize: fontSize,
	}

	if g != nil {
		if err := atlas.upload(g, layout); err != nil {
			return nil, err
		}
	}

	return atlas, nil
}

func (a *TextAtlas) upload(g *gpuContext, layout *wgpu.BindGroupLayout) error {
	extent := wgpu.Extent3D{Width: atlasSize, Height: atlasSize, DepthOrArrayLayers: 1}
	texture, err := g.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "Text Atlas",
		Size:          extent,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatR8Unorm,
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("creating atlas texture: %w", err)
	}

	err = g.queue.WriteTexture(
		texture.AsImageCopy(),
		a.image.Pix,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  atlasSize,
			RowsPerImage: atlasSize,
		},
		&extent,
	)
	if err != nil {
		texture.Release()
		return fmt.Errorf("uploading atlas texture: %w", err)
	}

	view, err := texture.CreateView(nil)
	if err != nil {
		texture.Release()
		return fmt.Errorf("creating atlas view: %w", err)
	}

	sampler, err := g.device.CreateSampler(&wgpu.SamplerDescriptor{
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MinFilter:     wgpu.FilterModeLinear,
		MagFilter:     wgpu.FilterModeLinear,
		MaxAnisotropy: 1,
	})
	if err != nil {
		view.Release()
		texture.Release()
		return fmt.Errorf("creating atlas sampler: %w", err)
	}

	bindGroup, err := g.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Text Atlas Bind Group",
		Layout: layout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, TextureView: view, Size: wgpu.WholeSize},
			{Binding: 1, Sampler: sampler, Size: wgpu.WholeSize},
		},
	})
	if err != nil {
		sampler.Release()
		view.Release()
		texture.Release()
		return fmt.Errorf("creating atlas bind group: %w", err)
	}

	a.texture = texture
	a.view = view
	a.sampler = sampler
	a.bindGroup = bindGroup
	return nil
}

// FontSize returns the point size the atlas was rasterized at. Text drawn
// at another size is scaled from this base.
func (a *TextAtlas) FontSize() float64 {
	return a.fontSize
}

// Glyph returns the placement data for r, if the atlas has it.
func (a *TextAtlas) Glyph(r rune) (GlyphInfo, bool) {
	g, ok := a.glyphs[r]
	return g, ok
}

// MeasureText returns the pixel width and height of text at the given
// scale, accounting for newlines.
func (a *TextAtlas) MeasureText(text string, scale float32) (float32, float32) {
	metrics := a.face.Metrics()
	lineHeight := float32(metrics.Height.Ceil())

	maxW := float32(0)
	currentW := float32(0)
	lines := 1

	for _, r := range text {
		if r == '\n' {
			if currentW > maxW {
				maxW = currentW
			}
			currentW = 0
			lines++
			continue
		}

		g, ok := a.glyphs[r]
		if !ok {
			continue
		}
		currentW += g.Advance * scale
	}

	if currentW > maxW {
		maxW = currentW
	}

	return maxW, lineHeight * scale * float32(lines)
}

// LineHeight returns the scaled line advance of the atlas face.
func (a *TextAtlas) LineHeight(scale float32) float32 {
	return float32(a.face.Metrics().Height.Ceil()) * scale
}

// Ascent returns the scaled distance from the top of a line to its baseline.
func (a *TextAtlas) Ascent(scale float32) float32 {
	return float32(a.face.Metrics().Ascent.Ceil()) * scale
}

func (a *TextAtlas) release() {
	if a.bindGroup != nil {
		a.bindGroup.Release()
		a.sampler.Release()
		a.view.Release()
		a.texture.Release()
	}
}
