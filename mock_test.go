// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shade

import (
	"sync/atomic"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
)

// testShaderWGSL declares one binding of every kind across two groups.
// Both entry points compile through the bundled compiler.
const testShaderWGSL = `
struct Params {
    color: vec4<f32>,
}

@group(0) @binding(0)
var<uniform> params: Params;

@group(0) @binding(1)
var<storage, read> weights: array<f32>;

@group(1) @binding(0)
var color_map: texture_2d<f32>;

@group(1) @binding(1)
var color_sampler: sampler;

@group(1) @binding(2)
var output_image: texture_storage_2d<rgba8unorm, write>;

@fragment
fn fs_main(@location(0) uv: vec2<f32>) -> @location(0) vec4<f32> {
    let sampled = textureSample(color_map, color_sampler, uv);
    let r = sampled.x * params.color.x + weights[0];
    return vec4<f32>(r, sampled.y, sampled.z, sampled.w);
}

@compute @workgroup_size(8, 8)
fn cs_main(@builtin(global_invocation_id) id: vec3<u32>) {
    let texel = textureLoad(color_map, vec2<i32>(id.xy), 0);
    textureStore(output_image, vec2<i32>(id.xy), texel);
}
`

// compileShader compiles WGSL through the full frontend for tests that
// need a reflected shader.
func compileShader(t *testing.T, source string) *Shader {
	t.Helper()
	shader, err := newShader(PathRef("test.wgsl"), source, LanguageWGSL)
	if err != nil {
		t.Fatalf("newShader() error: %v", err)
	}
	return shader
}

// newTestDevice creates a noop hal device and queue wrapped in recording
// doubles. Returns the device, queue, and a cleanup function.
func newTestDevice(t *testing.T) (*recordingDevice, *recordingQueue, func()) {
	t.Helper()
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		t.Fatalf("Open failed: %v", err)
	}
	cleanup := func() {
		openDev.Device.Destroy()
		instance.Destroy()
	}
	return &recordingDevice{Device: openDev.Device}, &recordingQueue{Queue: openDev.Queue}, cleanup
}

// recordingDevice wraps a hal.Device and counts GPU object traffic.
// Methods not listed here pass through to the wrapped device.
type recordingDevice struct {
	hal.Device

	buffersCreated     int32
	buffersDestroyed   int32
	texturesCreated    int32
	texturesDestroyed  int32
	viewsCreated       int32
	viewsDestroyed     int32
	samplersCreated    int32
	samplersDestroyed  int32
	layoutsCreated     int32
	layoutsDestroyed   int32
	groupsCreated      int32
	groupsDestroyed    int32
	modulesCreated     int32
	pipelinesCreated   int32
	pipelinesDestroyed int32

	// Optional failure injection. createLayoutErr fires once
	// layoutsCreated reaches layoutErrAfter.
	createViewErr   error
	createLayoutErr error
	layoutErrAfter  int32

	// Last descriptors, for asserting what was requested.
	lastBufferDesc   hal.BufferDescriptor
	lastTextureDesc  hal.TextureDescriptor
	lastSamplerDesc  hal.SamplerDescriptor
	lastGroupEntries []gputypes.BindGroupEntry
	lastModuleLabel  string
}

func (d *recordingDevice) CreateBuffer(desc *hal.BufferDescriptor) (hal.Buffer, error) {
	atomic.AddInt32(&d.buffersCreated, 1)
	d.lastBufferDesc = *desc
	return d.Device.CreateBuffer(desc)
}

func (d *recordingDevice) DestroyBuffer(buffer hal.Buffer) {
	atomic.AddInt32(&d.buffersDestroyed, 1)
	d.Device.DestroyBuffer(buffer)
}

func (d *recordingDevice) CreateTexture(desc *hal.TextureDescriptor) (hal.Texture, error) {
	atomic.AddInt32(&d.texturesCreated, 1)
	d.lastTextureDesc = *desc
	return d.Device.CreateTexture(desc)
}

func (d *recordingDevice) DestroyTexture(texture hal.Texture) {
	atomic.AddInt32(&d.texturesDestroyed, 1)
	d.Device.DestroyTexture(texture)
}

func (d *recordingDevice) CreateTextureView(texture hal.Texture, desc *hal.TextureViewDescriptor) (hal.TextureView, error) {
	if d.createViewErr != nil {
		return nil, d.createViewErr
	}
	atomic.AddInt32(&d.viewsCreated, 1)
	return d.Device.CreateTextureView(texture, desc)
}

func (d *recordingDevice) DestroyTextureView(view hal.TextureView) {
	atomic.AddInt32(&d.viewsDestroyed, 1)
	d.Device.DestroyTextureView(view)
}

func (d *recordingDevice) CreateSampler(desc *hal.SamplerDescriptor) (hal.Sampler, error) {
	atomic.AddInt32(&d.samplersCreated, 1)
	d.lastSamplerDesc = *desc
	return d.Device.CreateSampler(desc)
}

func (d *recordingDevice) DestroySampler(sampler hal.Sampler) {
	atomic.AddInt32(&d.samplersDestroyed, 1)
	d.Device.DestroySampler(sampler)
}

func (d *recordingDevice) CreateBindGroupLayout(desc *hal.BindGroupLayoutDescriptor) (hal.BindGroupLayout, error) {
	if d.createLayoutErr != nil && atomic.LoadInt32(&d.layoutsCreated) >= d.layoutErrAfter {
		return nil, d.createLayoutErr
	}
	atomic.AddInt32(&d.layoutsCreated, 1)
	return d.Device.CreateBindGroupLayout(desc)
}

func (d *recordingDevice) DestroyBindGroupLayout(layout hal.BindGroupLayout) {
	atomic.AddInt32(&d.layoutsDestroyed, 1)
	d.Device.DestroyBindGroupLayout(layout)
}

func (d *recordingDevice) CreateBindGroup(desc *hal.BindGroupDescriptor) (hal.BindGroup, error) {
	atomic.AddInt32(&d.groupsCreated, 1)
	d.lastGroupEntries = append([]gputypes.BindGroupEntry(nil), desc.Entries...)
	return d.Device.CreateBindGroup(desc)
}

func (d *recordingDevice) DestroyBindGroup(group hal.BindGroup) {
	atomic.AddInt32(&d.groupsDestroyed, 1)
	d.Device.DestroyBindGroup(group)
}

func (d *recordingDevice) CreateShaderModule(desc *hal.ShaderModuleDescriptor) (hal.ShaderModule, error) {
	atomic.AddInt32(&d.modulesCreated, 1)
	d.lastModuleLabel = desc.Label
	return d.Device.CreateShaderModule(desc)
}

func (d *recordingDevice) CreatePipelineLayout(desc *hal.PipelineLayoutDescriptor) (hal.PipelineLayout, error) {
	atomic.AddInt32(&d.pipelinesCreated, 1)
	return d.Device.CreatePipelineLayout(desc)
}

func (d *recordingDevice) DestroyPipelineLayout(layout hal.PipelineLayout) {
	atomic.AddInt32(&d.pipelinesDestroyed, 1)
	d.Device.DestroyPipelineLayout(layout)
}

// recordingQueue wraps a hal.Queue and records buffer and texture writes.
type recordingQueue struct {
	hal.Queue

	bufferWrites  int32
	textureWrites int32

	lastWriteData  []byte
	lastDataLayout hal.ImageDataLayout
	lastExtent     hal.Extent3D
}

func (q *recordingQueue) WriteBuffer(buffer hal.Buffer, offset uint64, data []byte) error {
	atomic.AddInt32(&q.bufferWrites, 1)
	q.lastWriteData = append([]byte(nil), data...)
	return q.Queue.WriteBuffer(buffer, offset, data)
}

func (q *recordingQueue) WriteTexture(dst *hal.ImageCopyTexture, data []byte, layout *hal.ImageDataLayout, size *hal.Extent3D) error {
	atomic.AddInt32(&q.textureWrites, 1)
	q.lastWriteData = append([]byte(nil), data...)
	q.lastDataLayout = *layout
	q.lastExtent = *size
	return q.Queue.WriteTexture(dst, data, layout, size)
}

// fakeBuffer is a hal.Buffer double with a controllable native handle,
// standing in for a caller owned buffer.
type fakeBuffer struct {
	handle uintptr
}

func (b *fakeBuffer) Destroy()              {}
func (b *fakeBuffer) NativeHandle() uintptr { return b.handle }

// fakeTextureView is a hal.TextureView double with a controllable native
// handle.
type fakeTextureView struct {
	handle uintptr
}

func (v *fakeTextureView) Destroy()              {}
func (v *fakeTextureView) NativeHandle() uintptr { return v.handle }

// fakeSampler is a hal.Sampler double with a controllable native handle.
type fakeSampler struct {
	handle uintptr
}

func (s *fakeSampler) Destroy()              {}
func (s *fakeSampler) NativeHandle() uintptr { return s.handle }
