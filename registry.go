// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shade

import (
	_ "embed"
	"maps"
	"slices"
	"sync"
)

// Built-in shader sources are embedded so composition works without any
// asset directory. Library modules are registered under the shade/
// prefix; the default vertex and fragment sources back DefaultRef.

//go:embed shaders/camera.wgsl
var cameraModuleSource string

//go:embed shaders/fullscreen.wgsl
var fullscreenModuleSource string

//go:embed shaders/color.wgsl
var colorModuleSource string

//go:embed shaders/default_vert.wgsl
var defaultVertexSource string

//go:embed shaders/default_frag.wgsl
var defaultFragmentSource string

// Registry stores shader modules for #include <name> resolution.
//
// Module names conventionally keep a language extension (for example
// "shade/camera.wgsl") so references to them resolve a language the
// same way path references do.
//
// A Registry is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	modules map[string]string
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{modules: make(map[string]string)}
}

// NewRegistryWithDefaults creates a registry pre-populated with the
// built-in shade/ modules.
func NewRegistryWithDefaults() *Registry {
	r := NewRegistry()
	r.RegisterBuiltins()
	return r
}

// RegisterBuiltins registers the embedded shade/ library modules:
// shade/camera.wgsl, shade/fullscreen.wgsl and shade/color.wgsl.
func (r *Registry) RegisterBuiltins() {
	r.Register("shade/camera.wgsl", cameraModuleSource)
	r.Register("shade/fullscreen.wgsl", fullscreenModuleSource)
	r.Register("shade/color.wgsl", colorModuleSource)
}

// Register adds a module under the given name. Registering a name that
// already exists replaces the previous source.
func (r *Registry) Register(name, source string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.modules == nil {
		r.modules = make(map[string]string)
	}
	r.modules[name] = source
}

// Lookup returns the source registered under name.
func (r *Registry) Lookup(name string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	source, ok := r.modules[name]
	return source, ok
}

// Names returns all registered module names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Sorted(maps.Keys(r.modules))
}

// Len returns the number of registered modules.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.modules)
}
