package lumen

import (
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"

	"github.com/lumen2d/lumen/shaders"
)

// SpriteInstance is the per-instance record of the procedural textured
// pipeline. Corners come from the vertex ordinal, so this is the only vertex
// input.
type SpriteInstance struct {
	Size   mgl32.Vec2 `lumen:"layout" format:"float2" location:"0"`
	Pad    mgl32.Vec2
	Model0 mgl32.Vec4 `lumen:"layout" format:"float4" location:"1"`
	Model1 mgl32.Vec4 `lumen:"layout" format:"float4" location:"2"`
	Model2 mgl32.Vec4 `lumen:"layout" format:"float4" location:"3"`
	Model3 mgl32.Vec4 `lumen:"layout" format:"float4" location:"4"`
	Color  mgl32.Vec4 `lumen:"layout" format:"float4" location:"5"`
}

func newSpriteInstance(size mgl32.Vec2, model mgl32.Mat4, color mgl32.Vec4) SpriteInstance {
	cols := matColumns(model)
	return SpriteInstance{
		Size:   size,
		Model0: cols[0],
		Model1: cols[1],
		Model2: cols[2],
		Model3: cols[3],
		Color:  color,
	}
}

// Sprite is a textured quad: which texture, how big, and a tint multiplied
// into every sampled texel.
type Sprite struct {
	Texture *LoadedTexture
	Size    mgl32.Vec2
	Color   mgl32.Vec4
}

type spriteBatch struct {
	texture *LoadedTexture
	buffer  *instanceBuffer[SpriteInstance]
}

// SpriteRenderer batches sprite draws by texture and issues one instanced
// 4-vertex draw per texture.
type SpriteRenderer struct {
	pipeline *wgpu.RenderPipeline

	batches map[uuid.UUID]*spriteBatch
	toDraw  map[uuid.UUID][]SpriteInstance
	pending map[uuid.UUID]*LoadedTexture
}

func newSpriteRenderer(g *gpuContext, cameraLayout, textureLayout *wgpu.BindGroupLayout) (*SpriteRenderer, error) {
	pipeline, err := createRenderPipeline(g, pipelineDescriptor{
		label:       "Sprite Pipeline",
		shader:      shaders.TextureWGSL,
		bindLayouts: []*wgpu.BindGroupLayout{cameraLayout, textureLayout},
		vertexLayouts: []wgpu.VertexBufferLayout{
			vertexLayout(SpriteInstance{}, wgpu.VertexStepModeInstance),
		},
		topology: wgpu.PrimitiveTopologyTriangleStrip,
	})
	if err != nil {
		return nil, err
	}

	return &SpriteRenderer{
		pipeline: pipeline,
		batches:  map[uuid.UUID]*spriteBatch{},
		toDraw:   map[uuid.UUID][]SpriteInstance{},
		pending:  map[uuid.UUID]*LoadedTexture{},
	}, nil
}

// Draw queues one sprite for the current frame.
func (r *SpriteRenderer) Draw(sprite *Sprite, transform Transform) {
	id := sprite.Texture.ID()
	if _, ok := r.toDraw[id]; !ok {
		r.pending[id] = sprite.Texture
	}
	r.toDraw[id] = append(r.toDraw[id], newSpriteInstance(sprite.Size, transform.Mat4(), sprite.Color))
}

// prep flushes queued draws into per-texture instance buffers and drops
// batches for textures that were not drawn this frame.
func (r *SpriteRenderer) prep(g *gpuContext) error {
	stale := make(map[uuid.UUID]bool, len(r.batches))
	for id := range r.batches {
		stale[id] = true
	}

	for id, instances := range r.toDraw {
		delete(stale, id)

		if batch, ok := r.batches[id]; ok {
			if err := batch.buffer.update(g.device, g.queue, instances); err != nil {
				return err
			}
		} else {
			buffer, err := newInstanceBuffer(g.device, "Sprite Instance Buffer", instances)
			if err != nil {
				return err
			}
			r.batches[id] = &spriteBatch{
				texture: r.pending[id],
				buffer:  buffer,
			}
		}
		delete(r.toDraw, id)
		delete(r.pending, id)
	}

	for id := range stale {
		r.batches[id].buffer.release()
		delete(r.batches, id)
	}

	return nil
}

func (r *SpriteRenderer) render(pass *wgpu.RenderPassEncoder, cameraGroup *wgpu.BindGroup) {
	if len(r.batches) == 0 {
		return
	}

	pass.SetPipeline(r.pipeline)
	pass.SetBindGroup(0, cameraGroup, nil)

	for _, batch := range r.batches {
		pass.SetBindGroup(1, batch.texture.bindGroup, nil)
		pass.SetVertexBuffer(0, batch.buffer.buffer, 0, wgpu.WholeSize)
		pass.Draw(4, batch.buffer.count, 0, 0)
	}
}

func (r *SpriteRenderer) release() {
	for _, batch := range r.batches {
		batch.buffer.release()
	}
	r.pipeline.Release()
}
