// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shade

import (
	"fmt"
	"strconv"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// boundValue is the per kind GPU state of a bound entry.
type boundValue interface {
	bindGroupEntry(binding uint32) gputypes.BindGroupEntry
	release(device hal.Device)
}

// boundUniform owns the backing buffer of a uniform entry. The whole
// buffer is bound, so the bind group survives same size rewrites.
type boundUniform struct {
	buffer   hal.Buffer
	capacity uint64
}

func (u *boundUniform) bindGroupEntry(binding uint32) gputypes.BindGroupEntry {
	return gputypes.BindGroupEntry{
		Binding: binding,
		Resource: gputypes.BufferBinding{
			Buffer: u.buffer.NativeHandle(),
			Offset: 0,
			Size:   0, // 0 = entire buffer
		},
	}
}

func (u *boundUniform) release(device hal.Device) {
	device.DestroyBuffer(u.buffer)
}

// boundBuffer references a caller owned buffer.
type boundBuffer struct {
	buffer hal.Buffer
	offset uint64
	size   uint64
}

func (b *boundBuffer) bindGroupEntry(binding uint32) gputypes.BindGroupEntry {
	return gputypes.BindGroupEntry{
		Binding: binding,
		Resource: gputypes.BufferBinding{
			Buffer: b.buffer.NativeHandle(),
			Offset: b.offset,
			Size:   b.size,
		},
	}
}

func (b *boundBuffer) release(hal.Device) {}

// boundTexture references a texture view, caller owned or fallback.
type boundTexture struct {
	view hal.TextureView
}

func (t *boundTexture) bindGroupEntry(binding uint32) gputypes.BindGroupEntry {
	return gputypes.BindGroupEntry{
		Binding: binding,
		Resource: gputypes.TextureViewBinding{
			TextureView: t.view.NativeHandle(),
		},
	}
}

func (t *boundTexture) release(hal.Device) {}

// boundSampler references a sampler, caller owned or fallback.
type boundSampler struct {
	sampler hal.Sampler
}

func (s *boundSampler) bindGroupEntry(binding uint32) gputypes.BindGroupEntry {
	return gputypes.BindGroupEntry{
		Binding: binding,
		Resource: gputypes.SamplerBinding{
			Sampler: s.sampler.NativeHandle(),
		},
	}
}

func (s *boundSampler) release(hal.Device) {}

// entryState is the cache state of one layout entry.
type entryState struct {
	layout LayoutBinding
	bound  bool
	key    BindKey
	value  boundValue
}

// bindingGroup is the cache state of one bind group.
type bindingGroup struct {
	layout  hal.BindGroupLayout
	entries []*entryState
	group   hal.BindGroup
	dirty   bool
}

// Bindings caches the GPU state bound to a Layout: uniform backing
// buffers, one bind group per group and, on request, a pipeline
// layout. Each entry carries a BindKey digest of its bound value;
// updates with an unchanged key cost nothing, and a bind group is
// rebuilt only when one of its entries actually changed.
//
// Bindings is not safe for concurrent use.
type Bindings struct {
	device hal.Device
	queue  hal.Queue
	layout *Layout

	groups    []*bindingGroup
	byName    map[string]*entryState
	fallbacks *Fallbacks
	pipeline  hal.PipelineLayout
}

// NewBindings creates the bind group layouts for layout and an empty
// binding cache over them.
func NewBindings(device hal.Device, queue hal.Queue, layout *Layout) (*Bindings, error) {
	b := &Bindings{
		device: device,
		queue:  queue,
		layout: layout,
		byName: make(map[string]*entryState),
	}
	for g := 0; g < layout.GroupCount(); g++ {
		halLayout, err := device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
			Label:   fmt.Sprintf("shade_group%d", g),
			Entries: layout.GroupEntries(g),
		})
		if err != nil {
			b.Destroy()
			return nil, fmt.Errorf("create bind group layout %d: %w", g, err)
		}
		group := &bindingGroup{layout: halLayout}
		for _, lb := range layout.Group(g) {
			entry := &entryState{layout: lb}
			group.entries = append(group.entries, entry)
			b.byName[lb.Name] = entry
		}
		b.groups = append(b.groups, group)
	}
	return b, nil
}

// Layout returns the layout the cache was built for.
func (b *Bindings) Layout() *Layout {
	return b.layout
}

// Update binds a resource to the named entry. Names the layout dropped
// are ignored. An update whose bind key matches the entry's current
// key is a no-op; otherwise the entry's GPU state is refreshed and its
// group marked for rebuilding.
func (b *Bindings) Update(name string, resource Resource) error {
	entry, ok := b.byName[name]
	if !ok {
		logger().Debug("update for binding not in layout", "binding", name)
		return nil
	}

	switch r := resource.(type) {
	case UniformResource:
		return b.updateUniform(entry, r.Data)
	case BufferResource:
		return b.updateBuffer(entry, r)
	case TextureResource:
		return b.updateTexture(entry, r.View)
	case SamplerResource:
		return b.updateSampler(entry, r.Sampler)
	default:
		return fmt.Errorf("shade: binding %q: unsupported resource %T", name, resource)
	}
}

func (b *Bindings) updateUniform(e *entryState, data []byte) error {
	if e.layout.Kind != BindingUniformBuffer {
		return b.kindError(e, "uniform data")
	}
	key := bindKeyBytes(data)
	if e.bound && key == e.key {
		return nil
	}

	size := uint64(len(data))
	switch u, _ := e.value.(*boundUniform); {
	case u == nil:
		buffer, err := b.createUniformBuffer(e.layout.Name, data)
		if err != nil {
			return err
		}
		e.value = &boundUniform{buffer: buffer, capacity: size}
		b.markDirty(e)
	case size > u.capacity:
		b.device.DestroyBuffer(u.buffer)
		e.value = nil
		e.bound = false
		b.markDirty(e)
		buffer, err := b.createUniformBuffer(e.layout.Name, data)
		if err != nil {
			return err
		}
		e.value = &boundUniform{buffer: buffer, capacity: size}
	default:
		b.queue.WriteBuffer(u.buffer, 0, data)
	}
	e.bound = true
	e.key = key
	return nil
}

func (b *Bindings) updateBuffer(e *entryState, r BufferResource) error {
	if e.layout.Kind != BindingUniformBuffer && e.layout.Kind != BindingStorageBuffer {
		return b.kindError(e, "a buffer")
	}
	if r.Buffer == nil {
		return fmt.Errorf("shade: binding %q: nil buffer", e.layout.Name)
	}
	key := bindKeyUint64(uint64(r.Buffer.NativeHandle()), r.Offset, r.Size)
	if e.bound && key == e.key {
		return nil
	}
	if u, ok := e.value.(*boundUniform); ok {
		u.release(b.device)
	}
	e.value = &boundBuffer{buffer: r.Buffer, offset: r.Offset, size: r.Size}
	e.bound = true
	e.key = key
	b.markDirty(e)
	return nil
}

func (b *Bindings) updateTexture(e *entryState, view hal.TextureView) error {
	if e.layout.Kind != BindingTexture && e.layout.Kind != BindingStorageTexture {
		return b.kindError(e, "a texture view")
	}
	key := BindKeyZero
	if view == nil {
		fallbacks, err := b.ensureFallbacks()
		if err != nil {
			return err
		}
		view = fallbacks.View()
	} else {
		key = bindKeyUint64(uint64(view.NativeHandle()))
	}
	if e.bound && key == e.key {
		return nil
	}
	e.value = &boundTexture{view: view}
	e.bound = true
	e.key = key
	b.markDirty(e)
	return nil
}

func (b *Bindings) updateSampler(e *entryState, sampler hal.Sampler) error {
	if e.layout.Kind != BindingSampler {
		return b.kindError(e, "a sampler")
	}
	key := BindKeyZero
	if sampler == nil {
		fallbacks, err := b.ensureFallbacks()
		if err != nil {
			return err
		}
		sampler = fallbacks.Sampler()
	} else {
		key = bindKeyUint64(uint64(sampler.NativeHandle()))
	}
	if e.bound && key == e.key {
		return nil
	}
	e.value = &boundSampler{sampler: sampler}
	e.bound = true
	e.key = key
	b.markDirty(e)
	return nil
}

func (b *Bindings) kindError(e *entryState, what string) error {
	return fmt.Errorf("shade: binding %q is a %s, cannot bind %s", e.layout.Name, e.layout.Kind, what)
}

// createUniformBuffer creates a uniform backing buffer and uploads the
// initial payload.
func (b *Bindings) createUniformBuffer(name string, data []byte) (hal.Buffer, error) {
	buffer, err := b.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "shade_uniform_" + name,
		Size:  uint64(len(data)),
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create uniform buffer %q: %w", name, err)
	}
	b.queue.WriteBuffer(buffer, 0, data)
	return buffer, nil
}

// ensureFallbacks creates the shared fallback resources on first use.
func (b *Bindings) ensureFallbacks() (*Fallbacks, error) {
	if b.fallbacks != nil {
		return b.fallbacks, nil
	}
	fallbacks, err := NewFallbacks(b.device, b.queue)
	if err != nil {
		return nil, err
	}
	b.fallbacks = fallbacks
	return fallbacks, nil
}

func (b *Bindings) markDirty(e *entryState) {
	b.groups[e.layout.Location.Group].dirty = true
}

// Key returns the combined bind key over every entry.
func (b *Bindings) Key() BindKey {
	key := BindKeyZero
	for _, g := range b.groups {
		for _, e := range g.entries {
			key = key.Combine(e.key)
		}
	}
	return key
}

// UpdateBindGroups materializes the bind groups and returns them dense
// by group index. Groups whose entries did not change keep their
// cached bind group; dirty or missing groups are created anew. It
// panics if an entry of a materialized group was never bound.
func (b *Bindings) UpdateBindGroups() ([]hal.BindGroup, error) {
	for i, g := range b.groups {
		if g.group != nil && !g.dirty {
			continue
		}
		entries := make([]gputypes.BindGroupEntry, 0, len(g.entries))
		for _, e := range g.entries {
			if !e.bound {
				panic("shade: binding " + strconv.Quote(e.layout.Name) + " never bound")
			}
			entries = append(entries, e.value.bindGroupEntry(e.layout.Location.Binding))
		}
		if g.group != nil {
			b.device.DestroyBindGroup(g.group)
			g.group = nil
		}
		group, err := b.device.CreateBindGroup(&hal.BindGroupDescriptor{
			Label:   fmt.Sprintf("shade_bind%d", i),
			Layout:  g.layout,
			Entries: entries,
		})
		if err != nil {
			return nil, fmt.Errorf("create bind group %d: %w", i, err)
		}
		g.group = group
		g.dirty = false
	}
	return b.BindGroups(), nil
}

// BindGroups returns the current bind groups dense by group index. It
// panics if a group has not been materialized with UpdateBindGroups.
func (b *Bindings) BindGroups() []hal.BindGroup {
	groups := make([]hal.BindGroup, len(b.groups))
	for i, g := range b.groups {
		if g.group == nil {
			panic(fmt.Sprintf("shade: bind group %d not created", i))
		}
		groups[i] = g.group
	}
	return groups
}

// BindGroupLayouts returns the bind group layouts dense by group
// index. The layouts stay owned by the Bindings.
func (b *Bindings) BindGroupLayouts() []hal.BindGroupLayout {
	layouts := make([]hal.BindGroupLayout, len(b.groups))
	for i, g := range b.groups {
		layouts[i] = g.layout
	}
	return layouts
}

// PipelineLayout returns a pipeline layout over the bind group
// layouts, created on first use. The label applies to the first call.
func (b *Bindings) PipelineLayout(label string) (hal.PipelineLayout, error) {
	if b.pipeline != nil {
		return b.pipeline, nil
	}
	layout, err := b.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            label,
		BindGroupLayouts: b.BindGroupLayouts(),
	})
	if err != nil {
		return nil, fmt.Errorf("create pipeline layout %q: %w", label, err)
	}
	b.pipeline = layout
	return layout, nil
}

// Destroy releases everything the cache owns: uniform backing buffers,
// bind groups, bind group layouts, the pipeline layout and lazily
// created fallbacks. Caller owned buffers, views and samplers are left
// alone.
func (b *Bindings) Destroy() {
	for _, g := range b.groups {
		for _, e := range g.entries {
			if e.value != nil {
				e.value.release(b.device)
				e.value = nil
			}
			e.bound = false
			e.key = BindKeyZero
		}
		if g.group != nil {
			b.device.DestroyBindGroup(g.group)
			g.group = nil
		}
		if g.layout != nil {
			b.device.DestroyBindGroupLayout(g.layout)
			g.layout = nil
		}
		g.dirty = false
	}
	if b.pipeline != nil {
		b.device.DestroyPipelineLayout(b.pipeline)
		b.pipeline = nil
	}
	if b.fallbacks != nil {
		b.fallbacks.Destroy(b.device)
		b.fallbacks = nil
	}
}
