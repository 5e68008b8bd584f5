package lumen

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"

	"github.com/lumen2d/lumen/shade"
	"github.com/lumen2d/lumen/shaders"
)

// QuadVertex is one corner of the explicit-vertex textured variant. Unlike
// the procedural pipelines the corner table lives in a real vertex buffer
// here; the shader takes pos and uv at face value.
type QuadVertex struct {
	Pos mgl32.Vec2 `lumen:"layout" format:"float2" location:"0"`
	UV  mgl32.Vec2 `lumen:"layout" format:"float2" location:"1"`
}

// quadVertices is the canonical corner table, built from the same generator
// the procedural shaders encode.
var quadVertices = func() [4]QuadVertex {
	var verts [4]QuadVertex
	for ordinal := uint32(0); ordinal < 4; ordinal++ {
		verts[ordinal] = QuadVertex{
			Pos: shade.Corner(ordinal),
			UV:  shade.CornerUV(ordinal),
		}
	}
	return verts
}()

// QuadInstance mirrors SpriteInstance with the attribute locations shifted
// past the two vertex-buffer slots.
type QuadInstance struct {
	Size   mgl32.Vec2 `lumen:"layout" format:"float2" location:"2"`
	Pad    mgl32.Vec2
	Model0 mgl32.Vec4 `lumen:"layout" format:"float4" location:"3"`
	Model1 mgl32.Vec4 `lumen:"layout" format:"float4" location:"4"`
	Model2 mgl32.Vec4 `lumen:"layout" format:"float4" location:"5"`
	Model3 mgl32.Vec4 `lumen:"layout" format:"float4" location:"6"`
	Color  mgl32.Vec4 `lumen:"layout" format:"float4" location:"7"`
}

func newQuadInstance(size mgl32.Vec2, model mgl32.Mat4, color mgl32.Vec4) QuadInstance {
	cols := matColumns(model)
	return QuadInstance{
		Size:   size,
		Model0: cols[0],
		Model1: cols[1],
		Model2: cols[2],
		Model3: cols[3],
		Color:  color,
	}
}

type quadBatch struct {
	texture *LoadedTexture
	buffer  *instanceBuffer[QuadInstance]
}

// QuadRenderer is the attribute-driven sibling of SpriteRenderer: same
// instance semantics, but corners and uvs come from an explicit 4-vertex
// buffer and an index buffer instead of the vertex ordinal.
type QuadRenderer struct {
	pipeline *wgpu.RenderPipeline

	vertexBuffer *wgpu.Buffer
	indexBuffer  *wgpu.Buffer
	indexCount   uint32

	batches map[uuid.UUID]*quadBatch
	toDraw  map[uuid.UUID][]QuadInstance
	pending map[uuid.UUID]*LoadedTexture
}

func newQuadRenderer(g *gpuContext, cameraLayout, textureLayout *wgpu.BindGroupLayout) (*QuadRenderer, error) {
	pipeline, err := createRenderPipeline(g, pipelineDescriptor{
		label:       "Quad Pipeline",
		shader:      shaders.QuadWGSL,
		bindLayouts: []*wgpu.BindGroupLayout{cameraLayout, textureLayout},
		vertexLayouts: []wgpu.VertexBufferLayout{
			vertexLayout(QuadVertex{}, wgpu.VertexStepModeVertex),
			vertexLayout(QuadInstance{}, wgpu.VertexStepModeInstance),
		},
		topology: wgpu.PrimitiveTopologyTriangleList,
	})
	if err != nil {
		return nil, err
	}

	vertexBuffer, err := g.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "Quad Vertex Buffer",
		Contents: wgpu.ToBytes(quadVertices[:]),
		Usage:    wgpu.BufferUsageVertex,
	})
	if err != nil {
		pipeline.Release()
		return nil, fmt.Errorf("creating quad vertex buffer: %w", err)
	}

	indexBuffer, err := g.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "Quad Index Buffer",
		Contents: wgpu.ToBytes(shade.QuadIndices[:]),
		Usage:    wgpu.BufferUsageIndex,
	})
	if err != nil {
		vertexBuffer.Release()
		pipeline.Release()
		return nil, fmt.Errorf("creating quad index buffer: %w", err)
	}

	return &QuadRenderer{
		pipeline:     pipeline,
		vertexBuffer: vertexBuffer,
		indexBuffer:  indexBuffer,
		indexCount:   uint32(len(shade.QuadIndices)),
		batches:      map[uuid.UUID]*quadBatch{},
		toDraw:       map[uuid.UUID][]QuadInstance{},
		pending:      map[uuid.UUID]*LoadedTexture{},
	}, nil
}

// Draw queues one textured quad for the current frame.
func (r *QuadRenderer) Draw(sprite *Sprite, transform Transform) {
	id := sprite.Texture.ID()
	if _, ok := r.toDraw[id]; !ok {
		r.pending[id] = sprite.Texture
	}
	r.toDraw[id] = append(r.toDraw[id], newQuadInstance(sprite.Size, transform.Mat4(), sprite.Color))
}

func (r *QuadRenderer) prep(g *gpuContext) error {
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
			buffer, err := newInstanceBuffer(g.device, "Quad Instance Buffer", instances)
			if err != nil {
				return err
			}
			r.batches[id] = &quadBatch{
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

func (r *QuadRenderer) render(pass *wgpu.RenderPassEncoder, cameraGroup *wgpu.BindGroup) {
	if len(r.batches) == 0 {
		return
	}

	pass.SetPipeline(r.pipeline)
	pass.SetBindGroup(0, cameraGroup, nil)
	pass.SetVertexBuffer(0, r.vertexBuffer, 0, wgpu.WholeSize)
	pass.SetIndexBuffer(r.indexBuffer, wgpu.IndexFormatUint16, 0, wgpu.WholeSize)

	for _, batch := range r.batches {
		pass.SetBindGroup(1, batch.texture.bindGroup, nil)
		pass.SetVertexBuffer(1, batch.buffer.buffer, 0, wgpu.WholeSize)
		pass.DrawIndexed(r.indexCount, batch.buffer.count, 0, 0, 0)
	}
}

func (r *QuadRenderer) release() {
	for _, batch := range r.batches {
		batch.buffer.release()
	}
	r.indexBuffer.Release()
	r.vertexBuffer.Release()
	r.pipeline.Release()
}
