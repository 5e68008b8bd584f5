package lumen

import (
	"fmt"
	"image"
	"image/color"

	"github.com/cogentcore/webgpu/wgpu"
	"golang.org/x/image/font/gofont/goregular"
)

// Config configures a Renderer. The zero value is usable: every field has a
// default.
type Config struct {
	Width  int
	Height int
	Title  string

	ClearColor *wgpu.Color
	VSync      bool

	// Font is the TTF/OTF the glyph atlas is rasterized from. Defaults to
	// Go Regular.
	Font     []byte
	FontSize float64

	Logger Logger
}

func (c Config) withDefaults() Config {
	if c.Width <= 0 {
		c.Width = 1280
	}
	if c.Height <= 0 {
		c.Height = 720
	}
	if c.Title == "" {
		c.Title = "Lumen"
	}
	if c.ClearColor == nil {
		c.ClearColor = &wgpu.Color{R: 0.2, G: 0.2, B: 0.2, A: 1}
	}
	if c.Font == nil {
		c.Font = goregular.TTF
	}
	if c.FontSize <= 0 {
		c.FontSize = 32
	}
	if c.Logger == nil {
		c.Logger = NewNopLogger()
	}
	return c
}

// Renderer owns the window, the GPU context, the shared camera, and the
// four quad pipelines. Hosts queue draws between frames and call Render
// once per frame.
type Renderer struct {
	log    Logger
	window *Window
	gpu    *gpuContext

	// Camera is consulted once per Render call; swap it to move the view.
	Camera Camera

	cameraBinding *cameraBinding
	ownCamera     bool

	textureLayout *wgpu.BindGroupLayout
	modelLayout   *wgpu.BindGroupLayout

	atlas        *TextAtlas
	whiteTexture *LoadedTexture

	sprites *SpriteRenderer
	quads   *QuadRenderer
	panels  *PanelRenderer
	text    *TextRenderer

	clearColor wgpu.Color
}

func New(cfg Config) (*Renderer, error) {
	cfg = cfg.withDefaults()
	log := cfg.Logger

	window, err := NewWindow(cfg.Width, cfg.Height, cfg.Title)
	if err != nil {
		return nil, err
	}
	log.Infof("Created window (%dx%d) '%s'", cfg.Width, cfg.Height, cfg.Title)

	gpu, err := newGPUContext(window, cfg.VSync)
	if err != nil {
		window.Release()
		return nil, err
	}
	log.Debugf("Surface configured, format %v", gpu.surfaceConfig.Format)

	r := &Renderer{
		log:        log,
		window:     window,
		gpu:        gpu,
		clearColor: *cfg.ClearColor,
	}

	if err := r.setup(cfg); err != nil {
		r.Release()
		return nil, err
	}

	window.OnResize(r.resize)

	return r, nil
}

func (r *Renderer) setup(cfg Config) error {
	r.Camera = NewScreenCamera(float32(cfg.Width), float32(cfg.Height))
	r.ownCamera = true

	binding, err := newCameraBinding(r.gpu.device, r.Camera)
	if err != nil {
		return err
	}
	r.cameraBinding = binding

	r.textureLayout, err = textureBindGroupLayout(r.gpu.device, "Texture Bind Group Layout")
	if err != nil {
		return err
	}

	r.modelLayout, err = uniformBindGroupLayout(r.gpu.device, "Model Bind Group Layout", wgpu.ShaderStageVertex)
	if err != nil {
		return err
	}

	r.atlas, err = NewTextAtlas(r.gpu, r.textureLayout, cfg.Font, cfg.FontSize)
	if err != nil {
		return err
	}
	r.log.Debugf("Glyph atlas rasterized at %.0fpt", cfg.FontSize)

	white, err := newTextureFromColor(r.gpu, color.RGBA{R: 255, G: 255, B: 255, A: 255}, "Default Texture")
	if err != nil {
		return err
	}
	r.whiteTexture, err = loadTexture(r.gpu, r.textureLayout, white, "Default Texture Bind Group")
	if err != nil {
		white.release()
		return err
	}

	r.sprites, err = newSpriteRenderer(r.gpu, r.cameraBinding.layout, r.textureLayout)
	if err != nil {
		return err
	}

	r.quads, err = newQuadRenderer(r.gpu, r.cameraBinding.layout, r.textureLayout)
	if err != nil {
		return err
	}

	r.panels, err = newPanelRenderer(r.gpu, r.atlas, r.cameraBinding.layout, r.modelLayout)
	if err != nil {
		return err
	}

	r.text, err = newTextRenderer(r.gpu, r.atlas, r.cameraBinding.layout, r.textureLayout, r.modelLayout)
	if err != nil {
		return err
	}

	return nil
}

func (r *Renderer) Window() *Window {
	return r.window
}

// LoadTexture uploads an image and registers it for sprite and quad draws.
func (r *Renderer) LoadTexture(img image.Image, label string) (*LoadedTexture, error) {
	texture, err := newTextureFromImage(r.gpu, img, label)
	if err != nil {
		return nil, err
	}
	loaded, err := loadTexture(r.gpu, r.textureLayout, texture, label+" Bind Group")
	if err != nil {
		texture.release()
		return nil, err
	}
	r.log.Debugf("Loaded texture %q (%v)", label, loaded.ID())
	return loaded, nil
}

// WhiteTexture is a 1x1 white texture for untextured colored quads.
func (r *Renderer) WhiteTexture() *LoadedTexture {
	return r.whiteTexture
}

// DrawSprite queues a textured quad on the procedural-geometry pipeline.
func (r *Renderer) DrawSprite(sprite *Sprite, transform Transform) {
	r.sprites.Draw(sprite, transform)
}

// DrawQuad queues a textured quad on the explicit-vertex pipeline.
func (r *Renderer) DrawQuad(sprite *Sprite, transform Transform) {
	r.quads.Draw(sprite, transform)
}

// NewPanel creates an option panel owned by the panel pipeline.
func (r *Renderer) NewPanel(options []string) *Panel {
	return r.panels.NewPanel(options)
}

// DrawPanel queues a panel and its option text.
func (r *Renderer) DrawPanel(p *Panel) error {
	return r.panels.Draw(r.gpu, p)
}

// NewTextBlock creates a standalone text block.
func (r *Renderer) NewTextBlock(text string) *TextBlock {
	return r.text.NewTextBlock(text)
}

// DrawText queues a text block.
func (r *Renderer) DrawText(block *TextBlock) error {
	return r.text.Draw(r.gpu, block)
}

// MeasureText measures text at the given scale against the renderer's atlas.
func (r *Renderer) MeasureText(text string, scale float32) (float32, float32) {
	return r.atlas.MeasureText(text, scale)
}

// Render flushes all queued draws into one frame: prep instance buffers,
// one render pass over all four pipelines, submit, present.
func (r *Renderer) Render() error {
	if err := r.cameraBinding.update(r.gpu.queue, r.Camera); err != nil {
		return fmt.Errorf("updating camera: %w", err)
	}

	if err := r.sprites.prep(r.gpu); err != nil {
		return fmt.Errorf("preparing sprites: %w", err)
	}
	if err := r.quads.prep(r.gpu); err != nil {
		return fmt.Errorf("preparing quads: %w", err)
	}
	r.panels.prep()
	r.text.prep()

	nextTexture, err := r.gpu.surface.GetCurrentTexture()
	if err != nil {
		// A lost surface is recoverable: reconfigure and let the host try
		// the next frame.
		r.log.Warnf("Skipping frame: %v", err)
		r.gpu.resize(r.window.Width, r.window.Height)
		return nil
	}

	view, err := nextTexture.CreateView(nil)
	if err != nil {
		return fmt.Errorf("creating surface view: %w", err)
	}
	defer view.Release()

	encoder, err := r.gpu.device.CreateCommandEncoder(nil)
	if err != nil {
		return fmt.Errorf("creating command encoder: %w", err)
	}
	defer encoder.Release()

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: "Main Render Pass",
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       view,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: r.clearColor,
			},
		},
	})

	cameraGroup := r.cameraBinding.bindGroup()

	// Back-to-front: world sprites first, UI panels and text on top.
	r.sprites.render(pass, cameraGroup)
	r.quads.render(pass, cameraGroup)
	r.panels.render(pass, cameraGroup, r.text)
	r.text.render(pass, cameraGroup)

	if err := pass.End(); err != nil {
		pass.Release()
		return fmt.Errorf("ending render pass: %w", err)
	}
	pass.Release()

	cmdBuffer, err := encoder.Finish(nil)
	if err != nil {
		return fmt.Errorf("finishing encoder: %w", err)
	}
	defer cmdBuffer.Release()

	r.gpu.queue.Submit(cmdBuffer)
	r.gpu.surface.Present()

	return nil
}

func (r *Renderer) resize(width, height int) {
	r.log.Debugf("Resizing surface to %dx%d", width, height)
	r.gpu.resize(width, height)

	if r.ownCamera {
		if cam, ok := r.Camera.(*OrthographicCamera); ok {
			cam.Right = cam.Left + float32(width)
			cam.Top = cam.Bottom + float32(height)
		}
	}
}

func (r *Renderer) Release() {
	if r.text != nil {
		r.text.release()
	}
	if r.panels != nil {
		r.panels.release()
	}
	if r.quads != nil {
		r.quads.release()
	}
	if r.sprites != nil {
		r.sprites.release()
	}
	if r.whiteTexture != nil {
		r.whiteTexture.Release()
	}
	if r.atlas != nil {
		r.atlas.release()
	}
	if r.modelLayout != nil {
		r.modelLayout.Release()
	}
	if r.textureLayout != nil {
		r.textureLayout.Release()
	}
	if r.cameraBinding != nil {
		r.cameraBinding.release()
	}
	if r.gpu != nil {
		r.gpu.release()
	}
	if r.window != nil {
		r.window.Release()
	}
}
