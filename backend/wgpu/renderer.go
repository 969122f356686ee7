// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package wgpu

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/pick"
	"github.com/gogpu/pick/render"
	"github.com/gogpu/pick/scene"
	"github.com/gogpu/wgpu/hal"
	"golang.org/x/image/math/f64"
)

// Renderer draws selection passes of a scene into a TextureTarget.
//
// It implements pick.Renderer and pick.DeviceHooks; Options wires both
// into a Selector. Renderer is NOT thread-safe.
type Renderer struct {
	// View maps scene units to display pixels. NewRenderer sets Identity.
	View f64.Aff3

	device hal.Device
	queue  hal.Queue
	target *TextureTarget

	shader        hal.ShaderModule
	uniformLayout hal.BindGroupLayout
	pipeLayout    hal.PipelineLayout
	pipeline      hal.RenderPipeline

	actors   []*scene.Actor
	vertices vertexBuffer

	propsDrawn int
}

// NewRenderer creates a renderer and a width x height target on the
// device behind h.
func NewRenderer(h render.DeviceHandle, width, height int) (*Renderer, error) {
	device, queue, err := halResources(h)
	if err != nil {
		return nil, err
	}
	target, err := newTextureTarget(device, queue, width, height)
	if err != nil {
		return nil, err
	}
	r := &Renderer{
		View:   Identity,
		device: device,
		queue:  queue,
		target: target,
	}
	if err := r.createPipeline(); err != nil {
		r.Destroy()
		return nil, err
	}
	return r, nil
}

// Target returns the render target.
func (r *Renderer) Target() *TextureTarget { return r.target }

// Add validates every block of a and appends it to the scene.
func (r *Renderer) Add(a *scene.Actor) error {
	if err := a.Validate(); err != nil {
		return err
	}
	r.actors = append(r.actors, a)
	return nil
}

// Actors returns the scene in drawing order.
func (r *Renderer) Actors() []*scene.Actor { return r.actors }

// Options returns the selector options that render with r: renderer,
// target and device hooks.
func (r *Renderer) Options() []pick.Option {
	return []pick.Option{
		pick.WithRenderer(r),
		pick.WithRenderTarget(r.target),
		pick.WithDeviceHooks(r),
	}
}

// RenderPass implements pick.Renderer. It builds the vertices of pass on
// the CPU and draws them in one render pass that also clears the target.
func (r *Renderer) RenderPass(s *pick.Selector, pass pick.Pass) error {
	r.vertices.reset()
	scene.Walk(s, pass, r.actors, func(m *scene.Mesh, asPoints bool, colorOf func(int) [3]byte) {
		r.vertices.mesh(r.View, m, asPoints, colorOf)
	})
	return r.draw()
}

// BeginRenderProp implements pick.DeviceHooks.
func (r *Renderer) BeginRenderProp(*pick.Selector) {}

// EndRenderProp implements pick.DeviceHooks.
func (r *Renderer) EndRenderProp(*pick.Selector) {
	r.propsDrawn++
}

// PreCapturePass implements pick.DeviceHooks.
func (r *Renderer) PreCapturePass(*pick.Selector, pick.Pass) {
	r.propsDrawn = 0
}

// PostCapturePass implements pick.DeviceHooks.
func (r *Renderer) PostCapturePass(_ *pick.Selector, pass pick.Pass) {
	pick.Logger().Debug("wgpu: pass drawn",
		slog.String("pass", pass.String()),
		slog.Int("props", r.propsDrawn),
		slog.Int("vertices", int(r.vertices.count())))
}

// draw uploads the pending vertices and renders them over a cleared target.
func (r *Renderer) draw() error {
	n := r.vertices.count()
	if n == 0 {
		return r.target.Clear()
	}

	vertBuf, err := r.upload("pick_id_vertices", r.vertices.data,
		gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
	if err != nil {
		return err
	}
	defer r.device.DestroyBuffer(vertBuf)

	uniformBuf, err := r.upload("pick_id_viewport", viewportUniform(r.target.Width(), r.target.Height()),
		gputypes.BufferUsageUniform|gputypes.BufferUsageCopyDst)
	if err != nil {
		return err
	}
	defer r.device.DestroyBuffer(uniformBuf)

	bindGroup, err := r.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "pick_id_bind",
		Layout: r.uniformLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: uniformBuf.NativeHandle(), Offset: 0, Size: viewportUniformSize,
			}},
		},
	})
	if err != nil {
		return fmt.Errorf("wgpu: create bind group: %w", err)
	}
	defer r.device.DestroyBindGroup(bindGroup)

	return r.target.submit("pick_id_pass", func(encoder hal.CommandEncoder) {
		rp := encoder.BeginRenderPass(r.target.clearPass("pick_id_render_pass"))
		rp.SetPipeline(r.pipeline)
		rp.SetBindGroup(0, bindGroup, nil)
		rp.SetVertexBuffer(0, vertBuf, 0)
		rp.Draw(n, 1, 0, 0)
		rp.End()
	})
}

// upload creates a GPU buffer and writes data into it.
func (r *Renderer) upload(label string, data []byte, usage gputypes.BufferUsage) (hal.Buffer, error) {
	buf, err := r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create %s: %w", label, err)
	}
	r.queue.WriteBuffer(buf, 0, data)
	return buf, nil
}

// createPipeline compiles the id shader and creates the render pipeline.
// Blending is off so fragments store the id colour unchanged.
func (r *Renderer) createPipeline() error {
	words, err := CompileIDShader()
	if err != nil {
		return err
	}
	shader, err := r.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "pick_id_shader",
		Source: hal.ShaderSource{SPIRV: words},
	})
	if err != nil {
		return fmt.Errorf("wgpu: create id shader module: %w", err)
	}
	r.shader = shader

	uniformLayout, err := r.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "pick_id_uniform_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("wgpu: create id uniform layout: %w", err)
	}
	r.uniformLayout = uniformLayout

	pipeLayout, err := r.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "pick_id_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{r.uniformLayout},
	})
	if err != nil {
		return fmt.Errorf("wgpu: create id pipeline layout: %w", err)
	}
	r.pipeLayout = pipeLayout

	pipeline, err := r.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "pick_id_pipeline",
		Layout: r.pipeLayout,
		Vertex: hal.VertexState{
			Module:     r.shader,
			EntryPoint: "vs_main",
			Buffers:    idVertexLayout(),
		},
		Fragment: &hal.FragmentState{
			Module:     r.shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    gputypes.TextureFormatBGRA8Unorm,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return fmt.Errorf("wgpu: create id pipeline: %w", err)
	}
	r.pipeline = pipeline
	return nil
}

// idVertexLayout returns the vertex buffer layout of the id pipeline.
func idVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: idVertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0}, // position
				{Format: gputypes.VertexFormatFloat32x4, Offset: 8, ShaderLocation: 1}, // color
			},
		},
	}
}

// Destroy releases the pipeline and the target in reverse creation order.
// It is safe to call twice.
func (r *Renderer) Destroy() {
	if r.device == nil {
		return
	}
	if r.pipeline != nil {
		r.device.DestroyRenderPipeline(r.pipeline)
		r.pipeline = nil
	}
	if r.pipeLayout != nil {
		r.device.DestroyPipelineLayout(r.pipeLayout)
		r.pipeLayout = nil
	}
	if r.uniformLayout != nil {
		r.device.DestroyBindGroupLayout(r.uniformLayout)
		r.uniformLayout = nil
	}
	if r.shader != nil {
		r.device.DestroyShaderModule(r.shader)
		r.shader = nil
	}
	if r.target != nil {
		r.target.Destroy()
	}
}

// Ensure Renderer implements pick.Renderer and pick.DeviceHooks.
var (
	_ pick.Renderer    = (*Renderer)(nil)
	_ pick.DeviceHooks = (*Renderer)(nil)
)
