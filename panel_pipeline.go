package lumen

import (
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"

	"github.com/lumen2d/lumen/shade"
	"github.com/lumen2d/lumen/shaders"
)

// PanelUniform is the raw draw-uniform record of the panel pipeline. Only
// the xy lanes of Size and SelectionRange are meaningful; the vec4 width
// keeps the block layout trivial.
type PanelUniform struct {
	Size           mgl32.Vec4
	MenuColor      mgl32.Vec4
	SelectionColor mgl32.Vec4
	SelectionRange mgl32.Vec4
}

// Panel is a flat option menu: a colored backdrop with one option per line
// and a highlight band behind the selected option.
type Panel struct {
	id uuid.UUID

	Options  []string
	Selected int

	MenuColor      mgl32.Vec4
	SelectionColor mgl32.Vec4
	FontSize       float32
	TextColor      shade.RGBA8

	Transform Transform
}

// panelLayout derives the panel's draw uniform from its options: the panel
// is sized to the widest measured line and the line count, and the
// selection band covers the selected option's slice of the normalized
// vertical axis.
func panelLayout(atlas *TextAtlas, p *Panel) PanelUniform {
	scale := float32(1)
	if p.FontSize > 0 {
		scale = p.FontSize / float32(atlas.FontSize())
	}

	width := float32(0)
	for _, option := range p.Options {
		w, _ := atlas.MeasureText(option, scale)
		if w > width {
			width = w
		}
	}
	height := atlas.LineHeight(scale) * float32(len(p.Options))

	uniform := PanelUniform{
		Size:           mgl32.Vec4{width, height},
		MenuColor:      p.MenuColor,
		SelectionColor: p.SelectionColor,
	}

	if count := len(p.Options); count > 0 {
		selected := p.Selected
		if selected < 0 {
			selected = 0
		}
		if selected >= count {
			selected = count - 1
		}
		step := 1 / float32(count)
		uniform.SelectionRange = mgl32.Vec4{step * float32(selected), step * float32(selected+1)}
	}

	return uniform
}

type panelData struct {
	uniform *uniformBuffer[PanelUniform]
	model   *uniformBuffer[ModelUniform]
	text    *instanceBuffer[GlyphInstance]

	builtText  string
	builtColor shade.RGBA8
	builtScale float32
}

// PanelRenderer draws panel backdrops, and their option text through the
// shared text pipeline: both passes bind the same per-panel model uniform.
type PanelRenderer struct {
	pipeline      *wgpu.RenderPipeline
	uniformLayout *wgpu.BindGroupLayout
	modelLayout   *wgpu.BindGroupLayout
	atlas         *TextAtlas

	panels   map[uuid.UUID]*panelData
	toDraw   map[uuid.UUID]bool
	previous map[uuid.UUID]bool
}

func newPanelRenderer(g *gpuContext, atlas *TextAtlas, cameraLayout, modelLayout *wgpu.BindGroupLayout) (*PanelRenderer, error) {
	uniformLayout, err := uniformBindGroupLayout(g.device, "Panel Bind Group Layout", wgpu.ShaderStageVertex|wgpu.ShaderStageFragment)
	if err != nil {
		return nil, err
	}

	pipeline, err := createRenderPipeline(g, pipelineDescriptor{
		label:       "Panel Pipeline",
		shader:      shaders.PanelWGSL,
		bindLayouts: []*wgpu.BindGroupLayout{cameraLayout, uniformLayout, modelLayout},
		topology:    wgpu.PrimitiveTopologyTriangleStrip,
	})
	if err != nil {
		uniformLayout.Release()
		return nil, err
	}

	return &PanelRenderer{
		pipeline:      pipeline,
		uniformLayout: uniformLayout,
		modelLayout:   modelLayout,
		atlas:         atlas,
		panels:        map[uuid.UUID]*panelData{},
		toDraw:        map[uuid.UUID]bool{},
		previous:      map[uuid.UUID]bool{},
	}, nil
}

// NewPanel creates a panel with the default muted palette.
func (r *PanelRenderer) NewPanel(options []string) *Panel {
	return &Panel{
		id:             uuid.New(),
		Options:        options,
		MenuColor:      mgl32.Vec4{0.5, 0.5, 0.5, 0.7},
		SelectionColor: mgl32.Vec4{0.7, 0.7, 0.7, 0.8},
		FontSize:       30,
		TextColor:      shade.PackRGBA(0, 0, 0, 255),
		Transform:      NewTransform(),
	}
}

// Draw queues a panel for the current frame, pushing its uniforms and
// rebuilding its option text if it changed.
func (r *PanelRenderer) Draw(g *gpuContext, p *Panel) error {
	layout := panelLayout(r.atlas, p)

	scale := float32(1)
	if p.FontSize > 0 {
		scale = p.FontSize / float32(r.atlas.FontSize())
	}
	text := strings.Join(p.Options, "\n")

	data, ok := r.panels[p.id]
	if !ok {
		uniform, err := newUniformBuffer(g.device, "Panel", r.uniformLayout, layout)
		if err != nil {
			return err
		}

		model, err := newUniformBuffer(g.device, "Panel Model", r.modelLayout, ModelUniform{Transform: p.Transform.Mat4()})
		if err != nil {
			uniform.release()
			return err
		}

		built := BuildGlyphInstances(r.atlas, text, p.TextColor, scale)
		instances, err := newInstanceBuffer(g.device, "Panel Text Buffer", built)
		if err != nil {
			model.release()
			uniform.release()
			return err
		}

		data = &panelData{
			uniform:    uniform,
			model:      model,
			text:       instances,
			builtText:  text,
			builtColor: p.TextColor,
			builtScale: scale,
		}
		r.panels[p.id] = data
	} else {
		if err := data.uniform.write(g.queue, layout); err != nil {
			return err
		}
		if err := data.model.write(g.queue, ModelUniform{Transform: p.Transform.Mat4()}); err != nil {
			return err
		}

		if data.builtText != text || data.builtColor != p.TextColor || data.builtScale != scale {
			built := BuildGlyphInstances(r.atlas, text, p.TextColor, scale)
			if err := data.text.update(g.device, g.queue, built); err != nil {
				return err
			}
			data.builtText = text
			data.builtColor = p.TextColor
			data.builtScale = scale
		}
	}

	r.toDraw[p.id] = true
	return nil
}

// prep drops panels that were not drawn since the previous frame.
func (r *PanelRenderer) prep() {
	for id := range r.toDraw {
		delete(r.previous, id)
	}
	for id := range r.previous {
		if data, ok := r.panels[id]; ok {
			data.text.release()
			data.model.release()
			data.uniform.release()
			delete(r.panels, id)
		}
	}
	r.previous = r.toDraw
	r.toDraw = map[uuid.UUID]bool{}
}

// render draws every live panel's backdrop, then its option text through
// the text renderer's pipeline.
func (r *PanelRenderer) render(pass *wgpu.RenderPassEncoder, cameraGroup *wgpu.BindGroup, text *TextRenderer) {
	if len(r.previous) == 0 {
		return
	}

	pass.SetPipeline(r.pipeline)
	pass.SetBindGroup(0, cameraGroup, nil)

	for id := range r.previous {
		data := r.panels[id]
		if data == nil {
			continue
		}
		pass.SetBindGroup(1, data.uniform.group, nil)
		pass.SetBindGroup(2, data.model.group, nil)
		pass.Draw(4, 1, 0, 0)
	}

	pass.SetPipeline(text.pipeline)
	pass.SetBindGroup(1, r.atlas.bindGroup, nil)

	for id := range r.previous {
		data := r.panels[id]
		if data == nil || data.text.count == 0 {
			continue
		}
		pass.SetBindGroup(2, data.model.group, nil)
		pass.SetVertexBuffer(0, data.text.buffer, 0, wgpu.WholeSize)
		pass.Draw(4, data.text.count, 0, 0)
	}
}

func (r *PanelRenderer) release() {
	for _, data := range r.panels {
		data.text.release()
		data.model.release()
		data.uniform.release()
	}
	r.pipeline.Release()
	r.uniformLayout.Release()
}
