// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shade

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/gogpu/shade/internal/cache"
)

// CompositionKey identifies one composed shader variant: the root reference
// plus the hash of the active define set.
type CompositionKey struct {
	Ref     ShaderReference
	Defines DefineSetHash
}

// cachedFragment pairs a parsed fragment with the source modification time
// observed when it was loaded. A zero time means the loader does not track
// modification times for this reference.
type cachedFragment struct {
	frag     *fragment
	loadedAt time.Time
}

// cachedShader pairs a compiled shader with every reference that contributed
// text to its composition, the root included.
type cachedShader struct {
	shader *Shader
	deps   []ShaderReference
}

// Processor composes shader source from fragments and compiles the result.
//
// Parsed fragments are memoized per (reference, defines) pair, and so are
// composed and compiled shaders, so repeated requests for the same variant
// cost a cache lookup instead of a parse and compile. A Processor is meant
// to be owned by a single render driver; wrap it in external
// synchronization to share it across goroutines.
type Processor struct {
	registry  *Registry
	loader    SourceLoader
	fragments *cache.Cache[CompositionKey, *cachedFragment]
	shaders   *cache.Cache[CompositionKey, *cachedShader]
}

// NewProcessor creates a shader processor.
//
// By default module includes resolve against a registry pre-populated with
// the built-in shade/ modules, and path references load from the working
// directory. Both can be replaced with options.
func NewProcessor(opts ...ProcessorOption) *Processor {
	o := defaultProcessorOptions()
	for _, opt := range opts {
		opt(&o)
	}

	registry := o.registry
	if registry == nil {
		if o.noBuiltins {
			registry = NewRegistry()
		} else {
			registry = NewRegistryWithDefaults()
		}
	}
	loader := o.loader
	if loader == nil {
		loader = FileLoader{}
	}

	return &Processor{
		registry:  registry,
		loader:    loader,
		fragments: cache.New[CompositionKey, *cachedFragment](o.cacheLimit),
		shaders:   cache.New[CompositionKey, *cachedShader](o.cacheLimit),
	}
}

// Registry returns the module registry used to resolve #include <name>
// directives. Registering modules on it affects later compositions only;
// already cached variants are not invalidated.
func (p *Processor) Registry() *Registry { return p.registry }

// Shader returns the compiled shader for a variant, composing and compiling
// it on first request. The returned pointer is stable: repeated calls with
// the same reference and defines return the identical Shader.
func (p *Processor) Shader(ref ShaderReference, defines *DefineSet) (*Shader, error) {
	key := CompositionKey{Ref: ref, Defines: defines.Hash()}
	entry, err := p.shaders.GetOrCreateErr(key, func() (*cachedShader, error) {
		language, err := ref.Language()
		if err != nil {
			return nil, err
		}
		text, deps, err := p.compose(ref, defines)
		if err != nil {
			return nil, err
		}
		shader, err := newShader(ref, text, language)
		if err != nil {
			return nil, err
		}
		logger().Debug("compiled shader",
			"shader", ref.String(),
			"defines", defines.Len(),
			"bindings", len(shader.Bindings()))
		return &cachedShader{shader: shader, deps: deps}, nil
	})
	if err != nil {
		return nil, err
	}
	return entry.shader, nil
}

// Compose assembles the source text for a shader variant: the root fragment
// plus every transitively included fragment, dependencies first, each
// emitted exactly once. Composition is language-agnostic; GLSL sources can
// be composed even though only WGSL compiles.
func (p *Processor) Compose(ref ShaderReference, defines *DefineSet) (string, error) {
	text, _, err := p.compose(ref, defines)
	return text, err
}

// compose resolves the include graph below root and concatenates the
// fragment texts. It returns the composed source and every reference that
// contributed to it, in emission order.
//
// The queue invariant: a reference is emitted only once all of its includes
// have been emitted. A popped reference with unresolved includes pushes
// them to the queue front and retries from the back. visited is cleared on
// every emission, so a reference that is popped twice with no emission in
// between can never make progress and the composition fails with
// CircularInclude.
func (p *Processor) compose(root ShaderReference, defines *DefineSet) (string, []ShaderReference, error) {
	var (
		b        strings.Builder
		queue    = []ShaderReference{root}
		included []ShaderReference
		visited  = make(map[ShaderReference]struct{})
	)
	for len(queue) > 0 {
		ref := queue[0]
		queue = queue[1:]

		if slices.Contains(included, ref) {
			continue
		}
		if _, seen := visited[ref]; seen {
			return "", nil, &CircularIncludeError{Ref: ref}
		}
		visited[ref] = struct{}{}

		frag, err := p.fragmentFor(ref, defines)
		if err != nil {
			return "", nil, err
		}

		var unresolved []ShaderReference
		for _, inc := range frag.includes {
			if !slices.Contains(included, inc) {
				unresolved = append(unresolved, inc)
			}
		}
		if len(unresolved) > 0 {
			queue = append(queue, ref)
			front := unresolved[:0]
			for _, inc := range unresolved {
				if !slices.Contains(queue, inc) {
					front = append(front, inc)
				}
			}
			queue = append(front, queue...)
			continue
		}

		clear(visited)
		b.WriteString(frag.source)
		if !strings.HasSuffix(frag.source, "\n") {
			b.WriteByte('\n')
		}
		included = append(included, ref)
	}
	return b.String(), included, nil
}

// fragmentFor returns the parsed fragment for one reference, loading and
// parsing it on first request.
func (p *Processor) fragmentFor(ref ShaderReference, defines *DefineSet) (*fragment, error) {
	key := CompositionKey{Ref: ref, Defines: defines.Hash()}
	entry, err := p.fragments.GetOrCreateErr(key, func() (*cachedFragment, error) {
		source, loadedAt, err := p.loadSource(ref)
		if err != nil {
			return nil, err
		}
		frag, err := parseFragment(source, defines, ref.parentDir())
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", ref, err)
		}
		return &cachedFragment{frag: frag, loadedAt: loadedAt}, nil
	})
	if err != nil {
		return nil, err
	}
	return entry.frag, nil
}

// loadSource fetches raw source text for a reference. For path references
// it also records the loader's modification time, consumed by
// ReloadChanged.
func (p *Processor) loadSource(ref ShaderReference) (string, time.Time, error) {
	switch ref.kind {
	case refDefault:
		if ref.def == DefaultFragment {
			return defaultFragmentSource, time.Time{}, nil
		}
		return defaultVertexSource, time.Time{}, nil
	case refModule:
		source, ok := p.registry.Lookup(ref.name)
		if !ok {
			return "", time.Time{}, &ModuleError{Name: ref.name}
		}
		return source, time.Time{}, nil
	default:
		source, err := p.loader.Load(ref.name)
		if err != nil {
			return "", time.Time{}, err
		}
		return source, p.loader.LastModified(ref.name), nil
	}
}

// ReloadChanged drops every cached fragment whose backing source file
// changed since it was loaded, along with every cached shader whose
// composition includes a changed file. It returns the changed path
// references, sorted by path. Sources without a known modification time are
// never considered changed.
//
// Callers re-request dropped shaders through Shader as usual; the next
// request recomposes from the updated sources.
func (p *Processor) ReloadChanged() []ShaderReference {
	stale := make(map[ShaderReference]struct{})
	p.fragments.DeleteFunc(func(key CompositionKey, entry *cachedFragment) bool {
		path, ok := key.Ref.Path()
		if !ok {
			return false
		}
		mod := p.loader.LastModified(path)
		if mod.IsZero() || !mod.After(entry.loadedAt) {
			return false
		}
		stale[key.Ref] = struct{}{}
		return true
	})
	if len(stale) == 0 {
		return nil
	}

	dropped := p.shaders.DeleteFunc(func(_ CompositionKey, entry *cachedShader) bool {
		for _, dep := range entry.deps {
			if _, ok := stale[dep]; ok {
				return true
			}
		}
		return false
	})
	if len(dropped) > 0 {
		logger().Debug("invalidated shaders after source change",
			"changed", len(stale), "shaders", len(dropped))
	}

	refs := make([]ShaderReference, 0, len(stale))
	for ref := range stale {
		refs = append(refs, ref)
	}
	slices.SortFunc(refs, func(a, b ShaderReference) int {
		return cmp.Compare(a.name, b.name)
	})
	return refs
}
