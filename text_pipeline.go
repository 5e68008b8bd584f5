package lumen

import (
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"

	"github.com/lumen2d/lumen/shade"
	"github.com/lumen2d/lumen/shaders"
)

// GlyphInstance places one glyph quad: where its center sits in the text
// block's local space, how big it is, which atlas sub-rectangle holds its
// coverage, and the packed ink color.
type GlyphInstance struct {
	Pos     mgl32.Vec2  `lumen:"layout" format:"float2" location:"0"`
	Size    mgl32.Vec2  `lumen:"layout" format:"float2" location:"1"`
	UVStart mgl32.Vec2  `lumen:"layout" format:"float2" location:"2"`
	UVEnd   mgl32.Vec2  `lumen:"layout" format:"float2" location:"3"`
	Color   shade.RGBA8 `lumen:"layout" format:"uint" location:"4"`
}

// BuildGlyphInstances lays text out into glyph instances, one per visible
// rune. The block's local space has its origin at the top left of the first
// line with y growing upward, so lines stack into negative y; runes the
// atlas doesn't carry are skipped.
func BuildGlyphInstances(atlas *TextAtlas, text string, color shade.RGBA8, scale float32) []GlyphInstance {
	instances := make([]GlyphInstance, 0, len(text))

	lineHeight := atlas.LineHeight(scale)

	penX := float32(0)
	baseline := atlas.Ascent(scale)

	for _, r := range text {
		if r == '\n' {
			penX = 0
			baseline += lineHeight
			continue
		}

		g, ok := atlas.Glyph(r)
		if !ok {
			continue
		}

		centerX := penX + (g.Offset.X()+g.Size.X()/2)*scale
		centerY := -(baseline + (g.Offset.Y()+g.Size.Y()/2)*scale)

		instances = append(instances, GlyphInstance{
			Pos:     mgl32.Vec2{centerX, centerY},
			Size:    mgl32.Vec2{g.Size.X() * scale, g.Size.Y() * scale},
			UVStart: g.UVStart,
			UVEnd:   g.UVEnd,
			Color:   color,
		})

		penX += g.Advance * scale
	}

	return instances
}

// TextBlock is a drawable run of text with its own model transform.
type TextBlock struct {
	id uuid.UUID

	Text  string
	Color shade.RGBA8
	Scale float32

	Transform Transform
}

type textData struct {
	model     *uniformBuffer[ModelUniform]
	instances *instanceBuffer[GlyphInstance]

	// built is what the instance buffer currently holds; the buffer is only
	// rebuilt when text, color, or scale change.
	builtText  string
	builtColor shade.RGBA8
	builtScale float32
}

// TextRenderer draws glyph instances against the shared atlas, one model
// uniform per text block.
type TextRenderer struct {
	pipeline    *wgpu.RenderPipeline
	modelLayout *wgpu.BindGroupLayout
	atlas       *TextAtlas

	blocks   map[uuid.UUID]*textData
	toDraw   map[uuid.UUID]bool
	previous map[uuid.UUID]bool
}

func newTextRenderer(g *gpuContext, atlas *TextAtlas, cameraLayout, atlasLayout, modelLayout *wgpu.BindGroupLayout) (*TextRenderer, error) {
	pipeline, err := createRenderPipeline(g, pipelineDescriptor{
		label:       "Text Pipeline",
		shader:      shaders.TextWGSL,
		bindLayouts: []*wgpu.BindGroupLayout{cameraLayout, atlasLayout, modelLayout},
		vertexLayouts: []wgpu.VertexBufferLayout{
			vertexLayout(GlyphInstance{}, wgpu.VertexStepModeInstance),
		},
		topology: wgpu.PrimitiveTopologyTriangleStrip,
	})
	if err != nil {
		return nil, err
	}

	return &TextRenderer{
		pipeline:    pipeline,
		modelLayout: modelLayout,
		atlas:       atlas,
		blocks:      map[uuid.UUID]*textData{},
		toDraw:      map[uuid.UUID]bool{},
		previous:    map[uuid.UUID]bool{},
	}, nil
}

// NewTextBlock creates a block with defaults: white ink, unit scale.
func (r *TextRenderer) NewTextBlock(text string) *TextBlock {
	return &TextBlock{
		id:        uuid.New(),
		Text:      text,
		Color:     shade.PackRGBA(255, 255, 255, 255),
		Scale:     1,
		Transform: NewTransform(),
	}
}

// Draw queues a text block for the current frame, pushing its transform and
// rebuilding its glyph instances if the content changed.
func (r *TextRenderer) Draw(g *gpuContext, block *TextBlock) error {
	data, ok := r.blocks[block.id]
	if !ok {
		model, err := newUniformBuffer(g.device, "Text Model", r.modelLayout, ModelUniform{Transform: block.Transform.Mat4()})
		if err != nil {
			return err
		}

		built := BuildGlyphInstances(r.atlas, block.Text, block.Color, block.Scale)
		instances, err := newInstanceBuffer(g.device, "Glyph Instance Buffer", built)
		if err != nil {
			model.release()
			return err
		}

		data = &textData{
			model:      model,
			instances:  instances,
			builtText:  block.Text,
			builtColor: block.Color,
			builtScale: block.Scale,
		}
		r.blocks[block.id] = data
	} else {
		if err := data.model.write(g.queue, ModelUniform{Transform: block.Transform.Mat4()}); err != nil {
			return err
		}

		if data.builtText != block.Text || data.builtColor != block.Color || data.builtScale != block.Scale {
			built := BuildGlyphInstances(r.atlas, block.Text, block.Color, block.Scale)
			if err := data.instances.update(g.device, g.queue, built); err != nil {
				return err
			}
			data.builtText = block.Text
			data.builtColor = block.Color
			data.builtScale = block.Scale
		}
	}

	r.toDraw[block.id] = true
	return nil
}

// prep drops blocks that were not drawn since the previous frame.
func (r *TextRenderer) prep() {
	for id := range r.toDraw {
		delete(r.previous, id)
	}
	for id := range r.previous {
		if data, ok := r.blocks[id]; ok {
			data.instances.release()
			data.model.release()
			delete(r.blocks, id)
		}
	}
	r.previous = r.toDraw
	r.toDraw = map[uuid.UUID]bool{}
}

func (r *TextRenderer) render(pass *wgpu.RenderPassEncoder, cameraGroup *wgpu.BindGroup) {
	if len(r.previous) == 0 {
		return
	}

	pass.SetPipeline(r.pipeline)
	pass.SetBindGroup(0, cameraGroup, nil)
	pass.SetBindGroup(1, r.atlas.bindGroup, nil)

	for id := range r.previous {
		data := r.blocks[id]
		if data == nil || data.instances.count == 0 {
			continue
		}
		pass.SetBindGroup(2, data.model.group, nil)
		pass.SetVertexBuffer(0, data.instances.buffer, 0, wgpu.WholeSize)
		pass.Draw(4, data.instances.count, 0, 0)
	}
}

func (r *TextRenderer) release() {
	for _, data := range r.blocks {
		data.instances.release()
		data.model.release()
	}
	r.pipeline.Release()
}
