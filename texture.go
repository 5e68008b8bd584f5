package lumen

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/google/uuid"
)

// Texture owns a GPU texture, its view and its sampler.
type Texture struct {
	texture *wgpu.Texture
	view    *wgpu.TextureView
	sampler *wgpu.Sampler
}

func newTextureFromImage(g *gpuContext, img image.Image, label string) (*Texture, error) {
	bounds := img.Bounds()
	rgba, ok := img.(*image.RGBA)
	if !ok || bounds.Min != (image.Point{}) {
		rgba = image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	}

	width := uint32(bounds.Dx())
	height := uint32(bounds.Dy())

	extent := wgpu.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1}
	texture, err := g.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         label,
		Size:          extent,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatRGBA8UnormSrgb,
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("creating texture %q: %w", label, err)
	}

	err = g.queue.WriteTexture(
		texture.AsImageCopy(),
		rgba.Pix,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  4 * width,
			RowsPerImage: height,
		},
		&extent,
	)
	if err != nil {
		texture.Release()
		return nil, fmt.Errorf("uploading texture %q: %w", label, err)
	}

	view, err := texture.CreateView(nil)
	if err != nil {
		texture.Release()
		return nil, fmt.Errorf("creating texture view %q: %w", label, err)
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
		return nil, fmt.Errorf("creating sampler %q: %w", label, err)
	}

	return &Texture{texture: texture, view: view, sampler: sampler}, nil
}

func newTextureFromColor(g *gpuContext, c color.RGBA, label string) (*Texture, error) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.SetRGBA(0, 0, c)
	return newTextureFromImage(g, img, label)
}

func (t *Texture) release() {
	t.sampler.Release()
	t.view.Release()
	t.texture.Release()
}

// LoadedTexture is a texture registered with the renderer, carrying the bind
// group the textured pipelines draw with. Identity is by id; instance
// batches are keyed on it.
type LoadedTexture struct {
	id        uuid.UUID
	texture   *Texture
	bindGroup *wgpu.BindGroup
}

func loadTexture(g *gpuContext, layout *wgpu.BindGroupLayout, texture *Texture, label string) (*LoadedTexture, error) {
	bindGroup, err := g.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  label,
		Layout: layout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, TextureView: texture.view, Size: wgpu.WholeSize},
			{Binding: 1, Sampler: texture.sampler, Size: wgpu.WholeSize},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("creating texture bind group %q: %w", label, err)
	}

	return &LoadedTexture{
		id:        uuid.New(),
		texture:   texture,
		bindGroup: bindGroup,
	}, nil
}

func (t *LoadedTexture) ID() uuid.UUID {
	return t.id
}

func (t *LoadedTexture) Release() {
	t.bindGroup.Release()
	t.texture.release()
}
