// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shade

import (
	"github.com/gogpu/gputypes"
)

// BindingKind classifies a shader resource binding.
type BindingKind uint8

const (
	// BindingUniformBuffer is a var<uniform> buffer.
	BindingUniformBuffer BindingKind = iota

	// BindingStorageBuffer is a var<storage> buffer.
	BindingStorageBuffer

	// BindingTexture is a sampled texture.
	BindingTexture

	// BindingStorageTexture is a storage texture.
	BindingStorageTexture

	// BindingSampler is a sampler.
	BindingSampler
)

// String returns a human readable name for the kind.
func (k BindingKind) String() string {
	switch k {
	case BindingUniformBuffer:
		return "uniform buffer"
	case BindingStorageBuffer:
		return "storage buffer"
	case BindingTexture:
		return "texture"
	case BindingStorageTexture:
		return "storage texture"
	case BindingSampler:
		return "sampler"
	default:
		return "unknown"
	}
}

// BindingRequest asks a Layout to expose one named shader binding.
// Requests are matched against a shader's reflected bindings by
// variable name; a request that names nothing in the shader is
// dropped.
//
// Use the constructors (UniformRequest, TextureRequest, ...) rather
// than filling the struct directly: they set the per kind defaults.
type BindingRequest struct {
	Name string
	Kind BindingKind

	// Visibility is the shader stage mask the binding is visible to.
	Visibility gputypes.ShaderStage

	// MinBindingSize is the minimum size validated for buffer
	// bindings. Zero disables the check.
	MinBindingSize uint64

	// ReadOnly marks a storage buffer binding read only.
	ReadOnly bool

	// SampleType and ViewDimension describe texture bindings.
	SampleType    gputypes.TextureSampleType
	ViewDimension gputypes.TextureViewDimension

	// Access and Format describe storage texture bindings.
	Access gputypes.StorageTextureAccess
	Format gputypes.TextureFormat

	// SamplerType describes sampler bindings.
	SamplerType gputypes.SamplerBindingType
}

// RequestOption adjusts a binding request.
type RequestOption func(*BindingRequest)

// WithVisibility restricts the binding to the given shader stages.
// The default is all stages.
func WithVisibility(stages gputypes.ShaderStage) RequestOption {
	return func(r *BindingRequest) {
		r.Visibility = stages
	}
}

// WithMinBindingSize sets the minimum buffer size validated at bind
// time for a buffer binding.
func WithMinBindingSize(size uint64) RequestOption {
	return func(r *BindingRequest) {
		r.MinBindingSize = size
	}
}

// ReadWrite marks a storage buffer binding writable. Storage buffers
// are read only by default.
func ReadWrite() RequestOption {
	return func(r *BindingRequest) {
		r.ReadOnly = false
	}
}

// WithSampleType overrides the sample type of a texture binding.
func WithSampleType(t gputypes.TextureSampleType) RequestOption {
	return func(r *BindingRequest) {
		r.SampleType = t
	}
}

// WithViewDimension overrides the view dimension of a texture or
// storage texture binding.
func WithViewDimension(d gputypes.TextureViewDimension) RequestOption {
	return func(r *BindingRequest) {
		r.ViewDimension = d
	}
}

// WithAccess overrides the access mode of a storage texture binding.
func WithAccess(a gputypes.StorageTextureAccess) RequestOption {
	return func(r *BindingRequest) {
		r.Access = a
	}
}

// WithFormat overrides the texel format of a storage texture binding.
func WithFormat(f gputypes.TextureFormat) RequestOption {
	return func(r *BindingRequest) {
		r.Format = f
	}
}

// WithSamplerType overrides the sampler binding type.
func WithSamplerType(t gputypes.SamplerBindingType) RequestOption {
	return func(r *BindingRequest) {
		r.SamplerType = t
	}
}

func newRequest(name string, kind BindingKind, opts []RequestOption) BindingRequest {
	r := BindingRequest{
		Name:       name,
		Kind:       kind,
		Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment | gputypes.ShaderStageCompute,
	}
	switch kind {
	case BindingStorageBuffer:
		r.ReadOnly = true
	case BindingTexture:
		r.SampleType = gputypes.TextureSampleTypeFloat
		r.ViewDimension = gputypes.TextureViewDimension2D
	case BindingStorageTexture:
		r.Access = gputypes.StorageTextureAccessReadWrite
		r.Format = gputypes.TextureFormatRGBA8UnormSrgb
		r.ViewDimension = gputypes.TextureViewDimension2D
	case BindingSampler:
		r.SamplerType = gputypes.SamplerBindingTypeFiltering
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// UniformRequest requests a uniform buffer binding.
func UniformRequest(name string, opts ...RequestOption) BindingRequest {
	return newRequest(name, BindingUniformBuffer, opts)
}

// StorageRequest requests a storage buffer binding, read only unless
// ReadWrite is given.
func StorageRequest(name string, opts ...RequestOption) BindingRequest {
	return newRequest(name, BindingStorageBuffer, opts)
}

// TextureRequest requests a sampled texture binding, float 2D by
// default.
func TextureRequest(name string, opts ...RequestOption) BindingRequest {
	return newRequest(name, BindingTexture, opts)
}

// StorageTextureRequest requests a storage texture binding, read-write
// RGBA8UnormSrgb 2D by default.
func StorageTextureRequest(name string, opts ...RequestOption) BindingRequest {
	return newRequest(name, BindingStorageTexture, opts)
}

// SamplerRequest requests a sampler binding, filtering by default.
func SamplerRequest(name string, opts ...RequestOption) BindingRequest {
	return newRequest(name, BindingSampler, opts)
}

// layoutEntry converts the request into a bind group layout entry at
// the given binding index.
func (r BindingRequest) layoutEntry(binding uint32) gputypes.BindGroupLayoutEntry {
	entry := gputypes.BindGroupLayoutEntry{
		Binding:    binding,
		Visibility: r.Visibility,
	}
	switch r.Kind {
	case BindingUniformBuffer:
		entry.Buffer = &gputypes.BufferBindingLayout{
			Type:           gputypes.BufferBindingTypeUniform,
			MinBindingSize: r.MinBindingSize,
		}
	case BindingStorageBuffer:
		bufferType := gputypes.BufferBindingTypeStorage
		if r.ReadOnly {
			bufferType = gputypes.BufferBindingTypeReadOnlyStorage
		}
		entry.Buffer = &gputypes.BufferBindingLayout{
			Type:           bufferType,
			MinBindingSize: r.MinBindingSize,
		}
	case BindingTexture:
		entry.Texture = &gputypes.TextureBindingLayout{
			SampleType:    r.SampleType,
			ViewDimension: r.ViewDimension,
		}
	case BindingStorageTexture:
		entry.StorageTexture = &gputypes.StorageTextureBindingLayout{
			Access:        r.Access,
			Format:        r.Format,
			ViewDimension: r.ViewDimension,
		}
	case BindingSampler:
		entry.Sampler = &gputypes.SamplerBindingLayout{Type: r.SamplerType}
	}
	return entry
}
