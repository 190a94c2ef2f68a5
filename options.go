// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shade

// ProcessorOption configures a Processor during creation.
// Use functional options to customize Processor behavior.
//
// Example:
//
//	// Built-in modules only
//	p := shade.NewProcessor()
//
//	// Shaders loaded from an asset directory
//	p := shade.NewProcessor(shade.WithLoader(shade.FileLoader{Root: "assets/shaders"}))
type ProcessorOption func(*processorOptions)

// processorOptions holds optional configuration for Processor creation.
type processorOptions struct {
	registry   *Registry
	loader     SourceLoader
	cacheLimit int
	noBuiltins bool
}

// defaultProcessorOptions returns the default processor options.
func defaultProcessorOptions() processorOptions {
	return processorOptions{
		registry:   nil, // NewRegistryWithDefaults if nil
		loader:     nil, // FileLoader{} if nil
		cacheLimit: 0,   // unbounded
	}
}

// WithLoader sets the source loader used for path references.
//
// Example:
//
//	// Sources assembled in memory, e.g. in tests
//	p := shade.NewProcessor(shade.WithLoader(shade.MapLoader{
//		"fx.wgsl": fxSource,
//	}))
func WithLoader(l SourceLoader) ProcessorOption {
	return func(o *processorOptions) {
		o.loader = l
	}
}

// WithRegistry sets the module registry used to resolve #include <name>
// directives. The registry is used as given; WithoutDefaultModules has no
// effect when a registry is supplied.
func WithRegistry(r *Registry) ProcessorOption {
	return func(o *processorOptions) {
		o.registry = r
	}
}

// WithoutDefaultModules skips registration of the built-in shade/ modules
// on the processor's default registry.
func WithoutDefaultModules() ProcessorOption {
	return func(o *processorOptions) {
		o.noBuiltins = true
	}
}

// WithCacheLimit bounds the fragment and shader caches to n entries each.
// The limit is soft; when exceeded, least recently used variants are
// evicted. Zero, the default, keeps every composed variant for the
// processor's lifetime.
func WithCacheLimit(n int) ProcessorOption {
	return func(o *processorOptions) {
		o.cacheLimit = n
	}
}
