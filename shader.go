// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shade

import (
	"cmp"
	"fmt"
	"slices"
	"sync"

	"github.com/gogpu/naga"
	"github.com/gogpu/naga/ir"
	"github.com/gogpu/naga/spirv"
	"github.com/gogpu/wgpu/hal"
)

// ShaderBinding is one resource slot reflected from a compiled shader:
// a named @group/@binding location and the resource class declared there.
type ShaderBinding struct {
	Name    string
	Group   uint32
	Binding uint32
	Kind    BindingKind
}

// Shader is a composed, compiled and validated shader.
//
// Shaders come out of a Processor, which caches them: requesting the
// same reference with the same define set yields the same *Shader. The
// zero value is not usable.
type Shader struct {
	ref      ShaderReference
	language Language
	source   string
	module   *ir.Module
	bindings []ShaderBinding

	mu     sync.Mutex
	native hal.ShaderModule
}

// newShader runs composed source text through the compiler frontend:
// parse, lower, validate, then reflect the resource bindings.
func newShader(ref ShaderReference, source string, language Language) (*Shader, error) {
	if language != LanguageWGSL {
		return nil, fmt.Errorf("compile %s: %w: %s", ref, ErrUnsupportedLanguage, language)
	}

	ast, err := naga.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", ref, err)
	}
	module, err := naga.LowerWithSource(ast, source)
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", ref, err)
	}
	validationErrs, err := naga.Validate(module)
	if err != nil {
		return nil, fmt.Errorf("validate %s: %w", ref, err)
	}
	if len(validationErrs) > 0 {
		return nil, fmt.Errorf("validate %s: %w", ref, &validationErrs[0])
	}

	return &Shader{
		ref:      ref,
		language: language,
		source:   source,
		module:   module,
		bindings: reflectBindings(module),
	}, nil
}

// reflectBindings collects every global with a @group/@binding location,
// ordered by group then binding index. Globals whose type has no bind
// group representation are skipped.
func reflectBindings(module *ir.Module) []ShaderBinding {
	var bindings []ShaderBinding
	for _, gv := range module.GlobalVariables {
		if gv.Binding == nil {
			continue
		}
		kind, ok := classifyBinding(module, gv)
		if !ok {
			continue
		}
		bindings = append(bindings, ShaderBinding{
			Name:    gv.Name,
			Group:   gv.Binding.Group,
			Binding: gv.Binding.Binding,
			Kind:    kind,
		})
	}
	slices.SortFunc(bindings, func(a, b ShaderBinding) int {
		if c := cmp.Compare(a.Group, b.Group); c != 0 {
			return c
		}
		return cmp.Compare(a.Binding, b.Binding)
	})
	return bindings
}

// classifyBinding maps a global's address space and type to the resource
// class it occupies in a bind group.
func classifyBinding(module *ir.Module, gv ir.GlobalVariable) (BindingKind, bool) {
	switch gv.Space {
	case ir.SpaceUniform:
		return BindingUniformBuffer, true
	case ir.SpaceStorage:
		return BindingStorageBuffer, true
	case ir.SpaceHandle:
		if int(gv.Type) >= len(module.Types) {
			return 0, false
		}
		switch inner := module.Types[gv.Type].Inner.(type) {
		case ir.SamplerType:
			return BindingSampler, true
		case ir.ImageType:
			if inner.Class == ir.ImageClassStorage {
				return BindingStorageTexture, true
			}
			return BindingTexture, true
		}
	}
	return 0, false
}

// Ref returns the reference the shader was composed from.
func (s *Shader) Ref() ShaderReference { return s.ref }

// Language returns the source language of the root reference.
func (s *Shader) Language() Language { return s.language }

// Source returns the composed source text the shader was compiled from.
func (s *Shader) Source() string { return s.source }

// IR returns the validated compiler module. Callers must treat it as
// read only.
func (s *Shader) IR() *ir.Module { return s.module }

// Bindings returns the reflected resource bindings, ordered by group
// then binding index.
func (s *Shader) Bindings() []ShaderBinding {
	return slices.Clone(s.bindings)
}

// Binding looks up a reflected binding by its variable name.
func (s *Shader) Binding(name string) (ShaderBinding, bool) {
	for _, b := range s.bindings {
		if b.Name == name {
			return b, true
		}
	}
	return ShaderBinding{}, false
}

// EntryPoints returns the shader's entry points in declaration order.
func (s *Shader) EntryPoints() []ir.EntryPoint {
	return slices.Clone(s.module.EntryPoints)
}

// EntryPoint returns the first entry point declared for the given stage.
func (s *Shader) EntryPoint(stage ir.ShaderStage) (ir.EntryPoint, bool) {
	for _, ep := range s.module.EntryPoints {
		if ep.Stage == stage {
			return ep, true
		}
	}
	return ir.EntryPoint{}, false
}

// SPIRV generates SPIR-V words for the compiled module.
func (s *Shader) SPIRV() ([]byte, error) {
	data, err := naga.GenerateSPIRV(s.module, spirv.Options{Version: spirv.Version1_3})
	if err != nil {
		return nil, fmt.Errorf("generate SPIR-V for %s: %w", s.ref, err)
	}
	return data, nil
}

// Module returns the native shader module, creating it on first use.
// A Shader follows a single device: the module created for the first
// device is returned on every later call.
func (s *Shader) Module(device hal.Device) (hal.ShaderModule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.native != nil {
		return s.native, nil
	}
	module, err := device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  s.ref.String(),
		Source: hal.ShaderSource{WGSL: s.source},
	})
	if err != nil {
		return nil, fmt.Errorf("create shader module %s: %w", s.ref, err)
	}
	s.native = module
	return module, nil
}

// Destroy releases the native shader module if one was created. The
// Shader itself stays valid and can materialize a new module later.
func (s *Shader) Destroy(device hal.Device) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.native != nil {
		device.DestroyShaderModule(s.native)
		s.native = nil
	}
}
