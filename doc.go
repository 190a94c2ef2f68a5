// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package shade composes, compiles and binds GPU shaders for Go.
//
// # Overview
//
// shade is a shader preprocessor and binding cache designed to integrate
// with the GoGPU ecosystem. It resolves #include graphs across shader
// sources, compiles the composed WGSL through the bundled naga compiler,
// reflects the resource bindings and keeps the GPU side of those bindings
// (uniform buffers, bind groups, pipeline layouts) cached between frames.
//
// # Quick Start
//
//	import "github.com/gogpu/shade"
//
//	// Compose and compile a shader with its includes resolved.
//	processor := shade.NewProcessor()
//	shader, err := processor.Shader(shade.PathRef("post.wgsl"), shade.NewDefineSet())
//
//	// Describe the resources the shader needs.
//	layout := shade.NewLayout()
//	layout.AddShader(shader,
//		shade.UniformRequest("params"),
//		shade.TextureRequest("color_map"),
//		shade.SamplerRequest("color_sampler"))
//
//	// Bind values; unchanged values cost nothing.
//	bindings, err := shade.NewBindings(device, queue, layout)
//	bindings.Update("params", shade.UniformResource{Data: paramBytes})
//	bindings.Update("color_map", shade.TextureResource{View: view})
//	groups, err := bindings.UpdateBindGroups()
//
// # Composition
//
// Shader sources may include each other with #include "path" for files
// and #include <name> for registered modules, and may be trimmed with
// #ifdef/#ifndef/#endif blocks driven by a DefineSet. Each included
// source is emitted once, before everything that includes it, so shared
// helpers land ahead of their users. Composed and compiled results are
// cached per (reference, define set) pair.
//
// # Binding Cache
//
// A Layout matches binding requests against a shader's reflected
// bindings by variable name and arranges the matches into dense bind
// groups. Bindings caches the GPU state over a Layout: every update is
// keyed by a digest of the bound value, repeated updates with unchanged
// values are free, and a bind group is rebuilt only when one of its
// entries actually changed.
//
// # Devices
//
// shade receives the GPU device from the host application rather than
// creating one. Hosts expose their hal device either directly through
// NewBindings or via a DeviceHandle provider with NewBindingsFrom.
package shade

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
