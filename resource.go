// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shade

import (
	"github.com/gogpu/wgpu/hal"
)

// Resource is a value bindable at a layout entry. The concrete types
// are UniformResource, BufferResource, TextureResource and
// SamplerResource; nothing else implements the interface.
type Resource interface {
	isResource()
}

// UniformResource binds a byte payload through a cache owned uniform
// buffer. The backing buffer is reused while the payload fits and
// grows when it does not.
type UniformResource struct {
	Data []byte
}

// BufferResource binds a caller owned buffer.
type BufferResource struct {
	Buffer hal.Buffer
	Offset uint64

	// Size of the bound range. Zero binds from Offset to the end of
	// the buffer.
	Size uint64
}

// TextureResource binds a caller owned texture view. A nil View binds
// the fallback white texture.
type TextureResource struct {
	View hal.TextureView
}

// SamplerResource binds a caller owned sampler. A nil Sampler binds
// the fallback linear sampler.
type SamplerResource struct {
	Sampler hal.Sampler
}

func (UniformResource) isResource() {}
func (BufferResource) isResource()  {}
func (TextureResource) isResource() {}
func (SamplerResource) isResource() {}
