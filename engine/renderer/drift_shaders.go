package renderer

import (
	_ "embed"
	"fmt"

	"github.com/Carmen-Shannon/polydrift/engine/camera"
	"github.com/Carmen-Shannon/polydrift/engine/model"
	"github.com/Carmen-Shannon/polydrift/engine/renderer/material"
	"github.com/Carmen-Shannon/polydrift/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/polydrift/engine/renderer/shader"
	"github.com/Carmen-Shannon/polydrift/engine/scene"
	"github.com/cogentcore/webgpu/wgpu"
)

//go:embed assets/drift.wgsl
var driftSource string

// Bind group indices of the drift shader.
const (
	sceneGroup    = 0 // camera (binding 0) and fog (binding 1)
	materialGroup = 1 // material color (binding 0)
)

// Index sets stored on a mesh provider.
const (
	triangleSet = 0
	edgeSet     = 1
)

// driftBindGroupLayouts describes the two bind groups of the drift shader.
func driftBindGroupLayouts() []wgpu.BindGroupLayoutDescriptor {
	cam := camera.GPUCameraUniform{}
	fog := scene.GPUFogUniform{}
	mat := material.GPUMaterialUniform{}
	visibility := wgpu.ShaderStageVertex | wgpu.ShaderStageFragment
	return []wgpu.BindGroupLayoutDescriptor{
		sceneGroup: {
			Label: "Drift Scene Layout",
			Entries: []wgpu.BindGroupLayoutEntry{
				{
					Binding:    0,
					Visibility: visibility,
					Buffer: wgpu.BufferBindingLayout{
						Type:           wgpu.BufferBindingTypeUniform,
						MinBindingSize: uint64(cam.Size()),
					},
				},
				{
					Binding:    1,
					Visibility: visibility,
					Buffer: wgpu.BufferBindingLayout{
						Type:           wgpu.BufferBindingTypeUniform,
						MinBindingSize: uint64(fog.Size()),
					},
				},
			},
		},
		materialGroup: {
			Label: "Drift Material Layout",
			Entries: []wgpu.BindGroupLayoutEntry{
				{
					Binding:    0,
					Visibility: wgpu.ShaderStageFragment,
					Buffer: wgpu.BufferBindingLayout{
						Type:           wgpu.BufferBindingTypeUniform,
						MinBindingSize: uint64(mat.Size()),
					},
				},
			},
		},
	}
}

// driftVertexLayouts describes slot 0 (mesh positions) and slot 1 (one model matrix per
// instance, split into four vec4 columns).
func driftVertexLayouts() []wgpu.VertexBufferLayout {
	vertex := model.GPUVertex{}
	instance := model.GPUInstance{}

	columns := make([]wgpu.VertexAttribute, 4)
	for i := range columns {
		columns[i] = wgpu.VertexAttribute{
			Format:         wgpu.VertexFormatFloat32x4,
			Offset:         uint64(i * 16),
			ShaderLocation: uint32(1 + i),
		}
	}

	return []wgpu.VertexBufferLayout{
		{
			ArrayStride: uint64(vertex.Size()),
			StepMode:    wgpu.VertexStepModeVertex,
			Attributes: []wgpu.VertexAttribute{
				{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
			},
		},
		{
			ArrayStride: uint64(instance.Size()),
			StepMode:    wgpu.VertexStepModeInstance,
			Attributes:  columns,
		},
	}
}

// newDriftShaders builds the vertex and fragment stages of the embedded drift shader.
func newDriftShaders() (vs, fs shader.Shader) {
	layouts := driftBindGroupLayouts()
	vs = shader.NewShader("drift.vs", shader.ShaderTypeVertex, driftSource,
		shader.WithVertexLayouts(driftVertexLayouts()...),
		shader.WithBindGroupLayouts(layouts...),
	)
	fs = shader.NewShader("drift.fs", shader.ShaderTypeFragment, driftSource,
		shader.WithBindGroupLayouts(layouts...),
	)
	return vs, fs
}

// materialPipelineKey identifies the draw state of a material; materials that differ only
// in color share a pipeline.
func materialPipelineKey(p material.Params) string {
	return fmt.Sprintf("drift wire=%t blend=%t test=%t write=%t offset=%t/%g/%g",
		p.Wireframe, p.Transparent, p.DepthTest, p.DepthWrite, p.PolygonOffset, p.OffsetFactor, p.OffsetUnits)
}

// newMaterialPipeline creates an unregistered pipeline for a material's draw state.
func newMaterialPipeline(p material.Params, vs, fs shader.Shader) pipeline.Pipeline {
	opts := append([]pipeline.PipelineBuilderOption{
		pipeline.WithVertexShader(vs),
		pipeline.WithFragmentShader(fs),
	}, pipeline.FromMaterial(p)...)
	return pipeline.NewPipeline(materialPipelineKey(p), opts...)
}
