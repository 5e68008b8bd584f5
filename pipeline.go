package lumen

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/cogentcore/webgpu/wgpu"
)

// Vertex buffer layouts are derived from struct tags so the Go instance
// records and the WGSL attribute declarations can't drift apart silently:
//
//	type GlyphInstance struct {
//		Pos mgl32.Vec2 `lumen:"layout" format:"float2" location:"0"`
//		...
//	}
//
// Untagged fields still advance the byte offset, which is how padding fields
// are expressed.
func vertexLayout(vertexType any, stepMode wgpu.VertexStepMode) wgpu.VertexBufferLayout {
	t := reflect.TypeOf(vertexType)
	if t.Kind() != reflect.Struct {
		panic("vertex must be a struct")
	}

	var attributes []wgpu.VertexAttribute
	var offset uint64 = 0

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if "layout" == field.Tag.Get("lumen") {
			format := parseVertexFormat(field.Tag.Get("format"))
			location, err := strconv.Atoi(field.Tag.Get("location"))
			if nil != err {
				panic(err)
			}

			attributes = append(attributes, wgpu.VertexAttribute{
				ShaderLocation: uint32(location),
				Offset:         offset,
				Format:         format,
			})
		}

		offset += uint64(field.Type.Size())
	}

	return wgpu.VertexBufferLayout{
		ArrayStride: offset,
		StepMode:    stepMode,
		Attributes:  attributes,
	}
}

func parseVertexFormat(name string) wgpu.VertexFormat {
	switch name {
	case "float2":
		return wgpu.VertexFormatFloat32x2
	case "float3":
		return wgpu.VertexFormatFloat32x3
	case "float4":
		return wgpu.VertexFormatFloat32x4
	case "uint":
		return wgpu.VertexFormatUint32
	default:
		panic("unsupported vertex layout format: " + name)
	}
}

// alphaBlend is the blend state every quad pipeline renders with:
// straight-alpha source-over for color, additive for alpha.
func alphaBlend() *wgpu.BlendState {
	return &wgpu.BlendState{
		Color: wgpu.BlendComponent{
			SrcFactor: wgpu.BlendFactorSrcAlpha,
			DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
			Operation: wgpu.BlendOperationAdd,
		},
		Alpha: wgpu.BlendComponent{
			SrcFactor: wgpu.BlendFactorOne,
			DstFactor: wgpu.BlendFactorOne,
			Operation: wgpu.BlendOperationAdd,
		},
	}
}

type pipelineDescriptor struct {
	label         string
	shader        string
	bindLayouts   []*wgpu.BindGroupLayout
	vertexLayouts []wgpu.VertexBufferLayout
	topology      wgpu.PrimitiveTopology
}

func createRenderPipeline(g *gpuContext, desc pipelineDescriptor) (*wgpu.RenderPipeline, error) {
	shader, err := g.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          desc.label,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: desc.shader},
	})
	if err != nil {
		return nil, fmt.Errorf("creating %s shader module: %w", desc.label, err)
	}
	defer shader.Release()

	layout, err := g.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            desc.label + " Layout",
		BindGroupLayouts: desc.bindLayouts,
	})
	if err != nil {
		return nil, fmt.Errorf("creating %s pipeline layout: %w", desc.label, err)
	}
	defer layout.Release()

	pipeline, err := g.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  desc.label,
		Layout: layout,
		Vertex: wgpu.VertexState{
			Module:     shader,
			EntryPoint: "vs_main",
			Buffers:    desc.vertexLayouts,
		},
		Fragment: &wgpu.FragmentState{
			Module:     shader,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format:    g.surfaceConfig.Format,
					Blend:     alphaBlend(),
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  desc.topology,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count:                  1,
			Mask:                   0xFFFFFFFF,
			AlphaToCoverageEnabled: false,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("creating %s pipeline: %w", desc.label, err)
	}
	return pipeline, nil
}

// uniformBindGroupLayout is the single-buffer layout used by the camera,
// panel, and model uniform groups.
func uniformBindGroupLayout(device *wgpu.Device, label string, visibility wgpu.ShaderStage) (*wgpu.BindGroupLayout, error) {
	return device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: label,
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: visibility,
				Buffer: wgpu.BufferBindingLayout{
					Type: wgpu.BufferBindingTypeUniform,
				},
			},
		},
	})
}

// textureBindGroupLayout is the texture+sampler layout shared by the sprite,
// quad, and text pipelines.
func textureBindGroupLayout(device *wgpu.Device, label string) (*wgpu.BindGroupLayout, error) {
	return device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: label,
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageFragment,
				Texture: wgpu.TextureBindingLayout{
					SampleType:    wgpu.TextureSampleTypeFloat,
					ViewDimension: wgpu.TextureViewDimension2D,
				},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStageFragment,
				Sampler: wgpu.SamplerBindingLayout{
					Type: wgpu.SamplerBindingTypeFiltering,
				},
			},
		},
	})
}
