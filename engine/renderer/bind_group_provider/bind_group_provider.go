package bind_group_provider

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// bindGroupProvider is the unexported implementation of BindGroupProvider.
type bindGroupProvider struct {
	// label is a debug label added for convenience.
	label string

	// GPU resources below are created by the renderer backend and released with the provider.

	bindGroup       *wgpu.BindGroup
	bindGroupLayout *wgpu.BindGroupLayout
	// buffers holds the uniform buffers, keyed by binding index.
	buffers map[int]*wgpu.Buffer

	// vertexBuffer backs vertex buffer slot 0 for mesh providers.
	vertexBuffer *wgpu.Buffer
	// indexBuffers holds one index buffer per index set (for example triangles and edges).
	indexBuffers map[int]*wgpu.Buffer
	indexCounts  map[int]int
}

// BindGroupProvider defines the interface for holders of GPU resources that a draw call binds:
// either a bind group with its uniform buffers (camera, fog, material) or a mesh with a vertex
// buffer and one or more index sets.
//
// Usage pattern:
//  1. The backend creates a provider with a label
//  2. The backend creates the GPU objects and stores them with the Set* methods
//  3. Per frame, BufferWrites target the provider's uniform buffers
//  4. Draw calls read BindGroup, VertexBuffer and IndexBuffer
type BindGroupProvider interface {
	// Release releases the bind group and every buffer held by this provider.
	Release()

	// Label returns the debug label for this provider.
	//
	// Returns:
	//   - string: the debug label
	Label() string

	// BindGroup returns the created bind group, or nil before initialization.
	//
	// Returns:
	//   - *wgpu.BindGroup: the bind group or nil
	BindGroup() *wgpu.BindGroup

	// BindGroupLayout returns the created bind group layout, or nil before initialization.
	//
	// Returns:
	//   - *wgpu.BindGroupLayout: the bind group layout or nil
	BindGroupLayout() *wgpu.BindGroupLayout

	// Buffer returns the uniform buffer at a binding, or nil.
	//
	// Parameters:
	//   - binding: the binding index
	//
	// Returns:
	//   - *wgpu.Buffer: the buffer or nil
	Buffer(binding int) *wgpu.Buffer

	// VertexBuffer returns the GPU vertex buffer, or nil if not initialized.
	//
	// Returns:
	//   - *wgpu.Buffer: the vertex buffer or nil
	VertexBuffer() *wgpu.Buffer

	// IndexBuffer returns the index buffer of an index set, or nil.
	//
	// Parameters:
	//   - set: the index set key
	//
	// Returns:
	//   - *wgpu.Buffer: the index buffer or nil
	IndexBuffer(set int) *wgpu.Buffer

	// IndexCount returns the number of indices in an index set.
	//
	// Parameters:
	//   - set: the index set key
	//
	// Returns:
	//   - int: the index count
	IndexCount(set int) int

	// SetBindGroup sets the bind group after GPU initialization.
	SetBindGroup(bg *wgpu.BindGroup)

	// SetBindGroupLayout sets the bind group layout after GPU initialization.
	SetBindGroupLayout(bgl *wgpu.BindGroupLayout)

	// SetBuffer stores the uniform buffer for a binding.
	SetBuffer(binding int, buf *wgpu.Buffer)

	// SetVertexBuffer stores the vertex buffer.
	SetVertexBuffer(buf *wgpu.Buffer)

	// SetIndexBuffer stores an index set.
	//
	// Parameters:
	//   - set: the index set key
	//   - buf: the index buffer
	//   - count: number of indices in buf
	SetIndexBuffer(set int, buf *wgpu.Buffer, count int)
}

var _ BindGroupProvider = &bindGroupProvider{}

// NewBindGroupProvider creates an empty BindGroupProvider.
//
// Parameters:
//   - label: debug label used for GPU object labels
//   - options: functional options to configure the provider
//
// Returns:
//   - BindGroupProvider: the newly created provider
func NewBindGroupProvider(label string, options ...BindGroupProviderOption) BindGroupProvider {
	p := &bindGroupProvider{
		label:        label,
		buffers:      make(map[int]*wgpu.Buffer),
		indexBuffers: make(map[int]*wgpu.Buffer),
		indexCounts:  make(map[int]int),
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

func (p *bindGroupProvider) Label() string {
	return p.label
}

func (p *bindGroupProvider) BindGroup() *wgpu.BindGroup {
	return p.bindGroup
}

func (p *bindGroupProvider) BindGroupLayout() *wgpu.BindGroupLayout {
	return p.bindGroupLayout
}

func (p *bindGroupProvider) Buffer(binding int) *wgpu.Buffer {
	return p.buffers[binding]
}

func (p *bindGroupProvider) VertexBuffer() *wgpu.Buffer {
	return p.vertexBuffer
}

func (p *bindGroupProvider) IndexBuffer(set int) *wgpu.Buffer {
	return p.indexBuffers[set]
}

func (p *bindGroupProvider) IndexCount(set int) int {
	return p.indexCounts[set]
}

func (p *bindGroupProvider) SetBindGroup(bg *wgpu.BindGroup) {
	p.bindGroup = bg
}

func (p *bindGroupProvider) SetBindGroupLayout(bgl *wgpu.BindGroupLayout) {
	p.bindGroupLayout = bgl
}

func (p *bindGroupProvider) SetBuffer(binding int, buf *wgpu.Buffer) {
	p.buffers[binding] = buf
}

func (p *bindGroupProvider) SetVertexBuffer(buf *wgpu.Buffer) {
	p.vertexBuffer = buf
}

func (p *bindGroupProvider) SetIndexBuffer(set int, buf *wgpu.Buffer, count int) {
	p.indexBuffers[set] = buf
	p.indexCounts[set] = count
}

func (p *bindGroupProvider) Release() {
	if p.bindGroup != nil {
		p.bindGroup.Release()
		p.bindGroup = nil
	}
	// the layout is shared with the pipeline and released by the backend
	p.bindGroupLayout = nil
	for i, buf := range p.buffers {
		if buf != nil {
			buf.Release()
		}
		delete(p.buffers, i)
	}
	if p.vertexBuffer != nil {
		p.vertexBuffer.Release()
		p.vertexBuffer = nil
	}
	for i, buf := range p.indexBuffers {
		if buf != nil {
			buf.Release()
		}
		delete(p.indexBuffers, i)
		delete(p.indexCounts, i)
	}
}
