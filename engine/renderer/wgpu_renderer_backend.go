package renderer

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/Carmen-Shannon/polydrift/engine/camera"
	"github.com/Carmen-Shannon/polydrift/engine/model"
	"github.com/Carmen-Shannon/polydrift/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/polydrift/engine/renderer/material"
	"github.com/Carmen-Shannon/polydrift/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/polydrift/engine/renderer/shader"
	"github.com/Carmen-Shannon/polydrift/engine/scene"
	"github.com/cogentcore/webgpu/wgpu"
)

// wgpuRendererBackend draws frames with WebGPU into a window surface.
type wgpuRendererBackend struct {
	mu     *sync.Mutex
	device *wgpu.Device
	queue  *wgpu.Queue

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	surface  *wgpu.Surface

	surfaceFormat        *wgpu.TextureFormat
	msaaTexture          *wgpu.Texture
	msaaTextureView      *wgpu.TextureView
	depthTexture         *wgpu.Texture
	depthTextureView     *wgpu.TextureView
	renderPassDescriptor *wgpu.RenderPassDescriptor

	presentMode wgpu.PresentMode // defaults to PresentModeFifo (VSync)
	sampleCount MSAASampleCount  // MSAA sample count for the main render pass

	// Frame state for batched rendering across multiple draw calls
	frameEncoder *wgpu.CommandEncoder
	framePass    *wgpu.RenderPassEncoder
	frameSurface *wgpu.Texture
	frameView    *wgpu.TextureView

	vertexShader, fragmentShader shader.Shader
	bindGroupLayouts             []*wgpu.BindGroupLayout

	pipelines map[string]pipeline.Pipeline
	meshes    map[model.Mesh]bind_group_provider.BindGroupProvider
	scenes    map[string]*sceneResources
}

// sceneResources are the GPU objects one scene draws with.
type sceneResources struct {
	globals   bind_group_provider.BindGroupProvider // camera + fog uniforms
	outline   bind_group_provider.BindGroupProvider
	fill      bind_group_provider.BindGroupProvider
	instances bind_group_provider.BindGroupProvider // model matrices as a vertex buffer
	capacity  int
}

var _ RendererBackend = &wgpuRendererBackend{}

func newWGPURendererBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, forceFallbackAdapter bool, sampleCount MSAASampleCount) *wgpuRendererBackend {
	runtime.LockOSThread()
	w := &wgpuRendererBackend{
		mu:          &sync.Mutex{},
		instance:    wgpu.CreateInstance(nil),
		presentMode: wgpu.PresentModeFifo,
		sampleCount: sampleCount,
		pipelines:   make(map[string]pipeline.Pipeline),
		meshes:      make(map[model.Mesh]bind_group_provider.BindGroupProvider),
		scenes:      make(map[string]*sceneResources),
	}
	w.surface = w.instance.CreateSurface(surfaceDescriptor)

	a, err := w.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		CompatibleSurface:    w.surface,
	})
	if err != nil {
		panic(err)
	}
	w.adapter = a

	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Main Device",
	})
	if err != nil {
		panic(err)
	}
	w.device = d
	w.queue = d.GetQueue()

	w.vertexShader, w.fragmentShader = newDriftShaders()
	for g, desc := range w.vertexShader.BindGroupLayoutDescriptors() {
		layout, err := w.device.CreateBindGroupLayout(&desc)
		if err != nil {
			panic(fmt.Sprintf("failed to create bind group layout for group %d: %v", g, err))
		}
		w.bindGroupLayouts = append(w.bindGroupLayouts, layout)
	}

	return w
}

func (b *wgpuRendererBackend) ConfigureSurface(width, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	capabilities := b.surface.GetCapabilities(b.adapter)
	b.surfaceFormat = &capabilities.Formats[0]

	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      *b.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: b.presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})

	b.releaseTargets()

	count := uint32(b.sampleCount)
	msaaEnabled := count > 1
	size := wgpu.Extent3D{
		Width:              uint32(width),
		Height:             uint32(height),
		DepthOrArrayLayers: 1,
	}

	var err error
	if msaaEnabled {
		// The render pass draws into the MSAA texture and resolves into the swapchain view.
		b.msaaTexture, err = b.device.CreateTexture(&wgpu.TextureDescriptor{
			Label:         "MSAA Texture",
			Size:          size,
			MipLevelCount: 1,
			SampleCount:   count,
			Dimension:     wgpu.TextureDimension2D,
			Format:        *b.surfaceFormat,
			Usage:         wgpu.TextureUsageRenderAttachment,
		})
		if err != nil {
			panic(err)
		}
		b.msaaTextureView, err = b.msaaTexture.CreateView(nil)
		if err != nil {
			panic(err)
		}
	}

	// Depth texture sample count must match the color attachment.
	b.depthTexture, err = b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "Depth Texture",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   count,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatDepth24Plus,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		panic(err)
	}
	b.depthTextureView, err = b.depthTexture.CreateView(nil)
	if err != nil {
		panic(err)
	}

	storeOp := wgpu.StoreOpStore
	if msaaEnabled {
		storeOp = wgpu.StoreOpDiscard // Don't store MSAA data, just resolve
	}
	b.renderPassDescriptor = &wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:    b.msaaTextureView, // nil when MSAA is off; set in beginFrame
				LoadOp:  wgpu.LoadOpClear,
				StoreOp: storeOp,
			},
		},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            b.depthTextureView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpDiscard,
			DepthClearValue: 1.0,
		},
	}
}

func (b *wgpuRendererBackend) releaseTargets() {
	if b.msaaTextureView != nil {
		b.msaaTextureView.Release()
		b.msaaTextureView = nil
	}
	if b.msaaTexture != nil {
		b.msaaTexture.Release()
		b.msaaTexture = nil
	}
	if b.depthTextureView != nil {
		b.depthTextureView.Release()
		b.depthTextureView = nil
	}
	if b.depthTexture != nil {
		b.depthTexture.Release()
		b.depthTexture = nil
	}
}

func (b *wgpuRendererBackend) SetPresentMode(mode PresentMode) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch mode {
	case PresentModeUncapped:
		b.presentMode = wgpu.PresentModeImmediate
	case PresentModeVSync:
		fallthrough
	default:
		b.presentMode = wgpu.PresentModeFifo
	}
}

func (b *wgpuRendererBackend) DrawFrames(frames []scene.Frame) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.renderPassDescriptor == nil {
		return errors.New("surface is not configured")
	}

	type draw struct {
		res           *sceneResources
		mesh          bind_group_provider.BindGroupProvider
		outline, fill pipeline.Pipeline
		instanceCount uint32
	}
	draws := make([]draw, 0, len(frames))

	// Uploads happen before the pass opens so every draw sees this frame's data.
	for _, f := range frames {
		if f.Mesh == nil || len(f.Models) == 0 {
			continue
		}
		res, err := b.uploadScene(f)
		if err != nil {
			return fmt.Errorf("failed to upload scene %q: %w", f.Scene, err)
		}
		mesh, err := b.meshProvider(f.Mesh)
		if err != nil {
			return fmt.Errorf("failed to upload mesh %q: %w", f.Mesh.Name(), err)
		}
		outline, err := b.materialPipeline(f.Outline)
		if err != nil {
			return err
		}
		fill, err := b.materialPipeline(f.Fill)
		if err != nil {
			return err
		}
		draws = append(draws, draw{res, mesh, outline, fill, uint32(len(f.Models))})
	}

	if err := b.beginFrame(frames[0].Background.R, frames[0].Background.G, frames[0].Background.B); err != nil {
		return fmt.Errorf("failed to begin frame: %w", err)
	}
	// Opaque outlines first; the blended fills then cover the edges behind them.
	for _, d := range draws {
		b.drawCall(d.outline, d.mesh, edgeSet, d.res.instances, d.instanceCount, d.res.globals, d.res.outline)
	}
	for _, d := range draws {
		b.drawCall(d.fill, d.mesh, triangleSet, d.res.instances, d.instanceCount, d.res.globals, d.res.fill)
	}
	if err := b.endFrame(); err != nil {
		return err
	}
	b.present()
	return nil
}

// materialPipeline returns the cached pipeline for a material's draw state, creating it on first use.
func (b *wgpuRendererBackend) materialPipeline(m material.Params) (pipeline.Pipeline, error) {
	key := materialPipelineKey(m)
	if p, ok := b.pipelines[key]; ok {
		return p, nil
	}
	p := newMaterialPipeline(m, b.vertexShader, b.fragmentShader)
	if err := b.registerRenderPipeline(p); err != nil {
		return nil, fmt.Errorf("failed to create pipeline %q: %w", key, err)
	}
	b.pipelines[key] = p
	return p, nil
}

// registerRenderPipeline creates the shader modules, pipeline layout, and render pipeline for p.
func (b *wgpuRendererBackend) registerRenderPipeline(p pipeline.Pipeline) error {
	vertexShader := p.Shader(shader.ShaderTypeVertex)
	fragmentShader := p.Shader(shader.ShaderTypeFragment)
	if vertexShader == nil || fragmentShader == nil {
		return errors.New("both vertex and fragment shaders must be set to create a render pipeline")
	}

	vs, err := b.device.CreateShaderModule(vertexShader.Module())
	if err != nil {
		return err
	}
	defer vs.Release()
	fs, err := b.device.CreateShaderModule(fragmentShader.Module())
	if err != nil {
		return err
	}
	defer fs.Release()

	pipelineLayout, err := b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            p.PipelineKey(),
		BindGroupLayouts: b.bindGroupLayouts,
	})
	if err != nil {
		return err
	}
	defer pipelineLayout.Release()

	target := wgpu.ColorTargetState{
		Format:    *b.surfaceFormat,
		WriteMask: p.WriteMask(),
		Blend:     p.BlendState(),
	}

	depthCompare := wgpu.CompareFunctionLess
	if !p.DepthTestEnabled() {
		depthCompare = wgpu.CompareFunctionAlways
	}

	created, err := b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  p.PipelineKey() + " Render Pipeline",
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     vs,
			EntryPoint: vertexShader.EntryPoint(),
			Buffers:    vertexShader.VertexLayouts(),
		},
		Fragment: &wgpu.FragmentState{
			Module:     fs,
			EntryPoint: fragmentShader.EntryPoint(),
			Targets:    []wgpu.ColorTargetState{target},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  p.Topology(),
			FrontFace: p.FrontFace(),
			CullMode:  p.CullMode(),
		},
		Multisample: wgpu.MultisampleState{
			Count: uint32(b.sampleCount),
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:              wgpu.TextureFormatDepth24Plus,
			DepthWriteEnabled:   p.DepthWriteEnabled(),
			DepthCompare:        depthCompare,
			DepthBias:           p.DepthBias(),
			DepthBiasSlopeScale: p.DepthBiasSlopeScale(),
			StencilFront: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
		},
	})
	if err != nil {
		return err
	}

	p.SetRenderPipeline(created)
	return nil
}

// meshProvider returns the uploaded buffers for a mesh, uploading them on first use.
// Triangles go in index set triangleSet and unique edges in edgeSet.
func (b *wgpuRendererBackend) meshProvider(m model.Mesh) (bind_group_provider.BindGroupProvider, error) {
	if p, ok := b.meshes[m]; ok {
		return p, nil
	}
	p := bind_group_provider.NewBindGroupProvider(m.Name())

	vbuf, err := b.createBuffer(p.Label()+" Vertex Buffer", m.VertexData(), wgpu.BufferUsageVertex)
	if err != nil {
		return nil, err
	}
	p.SetVertexBuffer(vbuf)

	tbuf, err := b.createBuffer(p.Label()+" Triangle Index Buffer", m.TriangleData(), wgpu.BufferUsageIndex)
	if err != nil {
		p.Release()
		return nil, err
	}
	p.SetIndexBuffer(triangleSet, tbuf, len(m.Triangles()))

	ebuf, err := b.createBuffer(p.Label()+" Edge Index Buffer", m.EdgeData(), wgpu.BufferUsageIndex)
	if err != nil {
		p.Release()
		return nil, err
	}
	p.SetIndexBuffer(edgeSet, ebuf, len(m.Edges()))

	b.meshes[m] = p
	return p, nil
}

func (b *wgpuRendererBackend) createBuffer(label string, data []byte, usage wgpu.BufferUsage) (*wgpu.Buffer, error) {
	buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: usage | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, err
	}
	b.queue.WriteBuffer(buf, 0, data)
	return buf, nil
}

// uploadScene writes a frame's uniforms and instance matrices, creating the scene's
// resources on first sight and growing its instance buffer as needed.
func (b *wgpuRendererBackend) uploadScene(f scene.Frame) (*sceneResources, error) {
	res, ok := b.scenes[f.Scene]
	if !ok {
		res = &sceneResources{
			globals:   bind_group_provider.NewBindGroupProvider(f.Scene + " Globals"),
			outline:   bind_group_provider.NewBindGroupProvider(f.Scene + " Outline"),
			fill:      bind_group_provider.NewBindGroupProvider(f.Scene + " Fill"),
			instances: bind_group_provider.NewBindGroupProvider(f.Scene + " Instances"),
		}
		descriptors := b.vertexShader.BindGroupLayoutDescriptors()
		if err := b.initBindGroup(res.globals, sceneGroup, descriptors[sceneGroup]); err != nil {
			return nil, err
		}
		if err := b.initBindGroup(res.outline, materialGroup, descriptors[materialGroup]); err != nil {
			return nil, err
		}
		if err := b.initBindGroup(res.fill, materialGroup, descriptors[materialGroup]); err != nil {
			return nil, err
		}
		b.scenes[f.Scene] = res
	}

	if len(f.Models) > res.capacity {
		capacity := max(len(f.Models), res.capacity*2)
		if old := res.instances.VertexBuffer(); old != nil {
			old.Release()
		}
		instance := model.GPUInstance{}
		buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: res.instances.Label() + " Buffer",
			Size:  uint64(capacity * instance.Size()),
			Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			res.instances.SetVertexBuffer(nil)
			res.capacity = 0
			return nil, err
		}
		res.instances.SetVertexBuffer(buf)
		res.capacity = capacity
	}

	cam := camera.GPUCameraUniform{
		ViewProj:       f.ViewProj,
		View:           f.View,
		CameraPosition: f.CameraPosition,
	}
	fog := f.Fog.Uniform()
	outline := material.Uniform(f.Outline)
	fill := material.Uniform(f.Fill)

	b.writeBuffers([]bind_group_provider.BufferWrite{
		{Provider: res.globals, Binding: 0, Data: cam.Marshal()},
		{Provider: res.globals, Binding: 1, Data: fog.Marshal()},
		{Provider: res.outline, Binding: 0, Data: outline.Marshal()},
		{Provider: res.fill, Binding: 0, Data: fill.Marshal()},
	})
	b.queue.WriteBuffer(res.instances.VertexBuffer(), 0, model.MarshalInstances(f.Models))
	return res, nil
}

// initBindGroup creates a uniform buffer per layout entry and a bind group over them,
// using the backend's shared layout for the group.
func (b *wgpuRendererBackend) initBindGroup(provider bind_group_provider.BindGroupProvider, group int, descriptor wgpu.BindGroupLayoutDescriptor) error {
	layout := b.bindGroupLayouts[group]
	provider.SetBindGroupLayout(layout)

	entries := make([]wgpu.BindGroupEntry, len(descriptor.Entries))
	for i, entry := range descriptor.Entries {
		binding := int(entry.Binding)
		buf := provider.Buffer(binding)
		if buf == nil {
			var err error
			buf, err = b.device.CreateBuffer(&wgpu.BufferDescriptor{
				Label: fmt.Sprintf("%s Buffer %d", provider.Label(), binding),
				Size:  entry.Buffer.MinBindingSize,
				Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
			})
			if err != nil {
				return err
			}
			provider.SetBuffer(binding, buf)
		}
		entries[i] = wgpu.BindGroupEntry{
			Binding: entry.Binding,
			Buffer:  buf,
			Offset:  0,
			Size:    wgpu.WholeSize,
		}
	}

	bindGroup, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:   provider.Label() + " Bind Group",
		Layout:  layout,
		Entries: entries,
	})
	if err != nil {
		return err
	}
	provider.SetBindGroup(bindGroup)
	return nil
}

func (b *wgpuRendererBackend) writeBuffers(writes []bind_group_provider.BufferWrite) {
	for _, w := range writes {
		buf := w.Provider.Buffer(w.Binding)
		if buf == nil {
			continue
		}
		b.queue.WriteBuffer(buf, w.Offset, w.Data)
	}
}

func (b *wgpuRendererBackend) beginFrame(r, g, bl float64) error {
	if b.frameSurface != nil {
		return errors.New("previous frame surface not yet presented")
	}

	surfaceTexture, err := b.surface.GetCurrentTexture()
	if err != nil {
		return err
	}

	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return err
	}

	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		view.Release()
		surfaceTexture.Release()
		return err
	}

	attachment := &b.renderPassDescriptor.ColorAttachments[0]
	if b.sampleCount > 1 {
		attachment.ResolveTarget = view
	} else {
		attachment.View = view
	}
	attachment.ClearValue = wgpu.Color{R: r, G: g, B: bl, A: 1.0}

	b.frameEncoder = encoder
	b.framePass = encoder.BeginRenderPass(b.renderPassDescriptor)
	b.frameSurface = surfaceTexture
	b.frameView = view
	return nil
}

func (b *wgpuRendererBackend) drawCall(
	p pipeline.Pipeline,
	meshProvider bind_group_provider.BindGroupProvider,
	indexSet int,
	instances bind_group_provider.BindGroupProvider,
	instanceCount uint32,
	bindGroups ...bind_group_provider.BindGroupProvider,
) {
	b.framePass.SetPipeline(p.RenderPipeline())

	for i, bg := range bindGroups {
		b.framePass.SetBindGroup(uint32(i), bg.BindGroup(), nil)
	}

	b.framePass.SetVertexBuffer(0, meshProvider.VertexBuffer(), 0, wgpu.WholeSize)
	b.framePass.SetVertexBuffer(1, instances.VertexBuffer(), 0, wgpu.WholeSize)
	b.framePass.SetIndexBuffer(meshProvider.IndexBuffer(indexSet), wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
	b.framePass.DrawIndexed(uint32(meshProvider.IndexCount(indexSet)), instanceCount, 0, 0, 0)
}

func (b *wgpuRendererBackend) endFrame() error {
	b.framePass.End()
	b.framePass = nil

	commandBuffer, err := b.frameEncoder.Finish(nil)
	b.frameEncoder.Release()
	b.frameEncoder = nil
	if err != nil {
		b.frameView.Release()
		b.frameSurface.Release()
		b.frameSurface = nil
		b.frameView = nil
		return fmt.Errorf("failed to finish frame: %w", err)
	}

	b.queue.Submit(commandBuffer)
	commandBuffer.Release()
	return nil
}

func (b *wgpuRendererBackend) present() {
	if b.frameSurface == nil {
		return
	}

	b.surface.Present()

	b.frameView.Release()
	b.frameView = nil
	b.frameSurface.Release()
	b.frameSurface = nil
}

func (b *wgpuRendererBackend) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for key, res := range b.scenes {
		res.globals.Release()
		res.outline.Release()
		res.fill.Release()
		res.instances.Release()
		delete(b.scenes, key)
	}
	for m, p := range b.meshes {
		p.Release()
		delete(b.meshes, m)
	}
	for key, p := range b.pipelines {
		p.Release()
		delete(b.pipelines, key)
	}
	for _, layout := range b.bindGroupLayouts {
		layout.Release()
	}
	b.bindGroupLayouts = nil
	b.releaseTargets()

	b.surface.Release()
	b.device.Release()
	b.adapter.Release()
	b.instance.Release()
}
