// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shade

import (
	"fmt"
	"image"
	"image/color"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Fallbacks holds the resources bound in place of nil texture and
// sampler handles: a one pixel white texture and a linear clamp to
// edge sampler.
type Fallbacks struct {
	texture hal.Texture
	view    hal.TextureView
	sampler hal.Sampler
}

// NewFallbacks creates the fallback resources on the device.
func NewFallbacks(device hal.Device, queue hal.Queue) (*Fallbacks, error) {
	white := image.NewRGBA(image.Rect(0, 0, 1, 1))
	white.Set(0, 0, color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})

	texture, view, err := UploadImage(device, queue, "shade_fallback", white)
	if err != nil {
		return nil, fmt.Errorf("create fallback texture: %w", err)
	}

	sampler, err := device.CreateSampler(&hal.SamplerDescriptor{
		Label:        "shade_fallback_sampler",
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    gputypes.FilterModeLinear,
		MinFilter:    gputypes.FilterModeLinear,
		MipmapFilter: gputypes.FilterModeLinear,
	})
	if err != nil {
		device.DestroyTextureView(view)
		device.DestroyTexture(texture)
		return nil, fmt.Errorf("create fallback sampler: %w", err)
	}

	return &Fallbacks{texture: texture, view: view, sampler: sampler}, nil
}

// View returns the white texture's view.
func (f *Fallbacks) View() hal.TextureView { return f.view }

// Sampler returns the linear sampler.
func (f *Fallbacks) Sampler() hal.Sampler { return f.sampler }

// Destroy releases the fallback resources.
func (f *Fallbacks) Destroy(device hal.Device) {
	if f.sampler != nil {
		device.DestroySampler(f.sampler)
		f.sampler = nil
	}
	if f.view != nil {
		device.DestroyTextureView(f.view)
		f.view = nil
	}
	if f.texture != nil {
		device.DestroyTexture(f.texture)
		f.texture = nil
	}
}
