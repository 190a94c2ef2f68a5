// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shade

import (
	"path/filepath"
	"strconv"
	"strings"
)

// Language identifies a shading language.
type Language int

const (
	// LanguageWGSL is the WebGPU shading language. The bundled compiler
	// parses, validates and reflects WGSL sources.
	LanguageWGSL Language = iota

	// LanguageGLSL covers .glsl/.vert/.frag/.comp sources. GLSL text can be
	// composed (directives are language-agnostic) but not compiled by the
	// bundled compiler.
	LanguageGLSL
)

// String returns the language name.
func (l Language) String() string {
	switch l {
	case LanguageWGSL:
		return "wgsl"
	case LanguageGLSL:
		return "glsl"
	default:
		return "unknown"
	}
}

// languageForPath maps a path's extension to a shading language.
func languageForPath(path string) (Language, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	switch ext {
	case "wgsl":
		return LanguageWGSL, nil
	case "glsl", "vert", "frag", "comp":
		return LanguageGLSL, nil
	case "":
		return 0, &LanguageError{Path: path}
	default:
		return 0, &LanguageError{Path: path, Ext: ext}
	}
}

// DefaultShader selects one of the built-in default shaders.
type DefaultShader int

const (
	// DefaultVertex is the built-in mesh vertex shader.
	DefaultVertex DefaultShader = iota

	// DefaultFragment is the built-in unlit fragment shader.
	DefaultFragment
)

// String returns the default shader name.
func (d DefaultShader) String() string {
	switch d {
	case DefaultVertex:
		return "vertex"
	case DefaultFragment:
		return "fragment"
	default:
		return "unknown"
	}
}

// refKind discriminates ShaderReference variants.
type refKind int

const (
	refDefault refKind = iota
	refPath
	refModule
)

// ShaderReference identifies where shader source comes from: a built-in
// default shader, a filesystem path, or a registered module. References are
// comparable values, usable as map keys. The zero value references the
// built-in vertex shader.
type ShaderReference struct {
	kind refKind
	name string
	def  DefaultShader
}

// DefaultRef returns a reference to one of the built-in default shaders.
func DefaultRef(def DefaultShader) ShaderReference {
	return ShaderReference{kind: refDefault, def: def}
}

// PathRef returns a reference to shader source loaded from a filesystem path.
func PathRef(path string) ShaderReference {
	return ShaderReference{kind: refPath, name: path}
}

// ModuleRef returns a reference to a registered shader module.
func ModuleRef(name string) ShaderReference {
	return ShaderReference{kind: refModule, name: name}
}

// IsDefault reports whether r references a built-in default shader.
func (r ShaderReference) IsDefault() bool { return r.kind == refDefault }

// Path returns the filesystem path and true for path references, and
// "" and false otherwise.
func (r ShaderReference) Path() (string, bool) {
	if r.kind != refPath {
		return "", false
	}
	return r.name, true
}

// Module returns the module name and true for module references, and
// "" and false otherwise.
func (r ShaderReference) Module() (string, bool) {
	if r.kind != refModule {
		return "", false
	}
	return r.name, true
}

// parentDir returns the directory of a path reference, used to resolve
// relative includes. It returns "" for non-path references and for paths
// without a directory component.
func (r ShaderReference) parentDir() string {
	if r.kind != refPath {
		return ""
	}
	dir := filepath.Dir(r.name)
	if dir == "." {
		return ""
	}
	return dir
}

// joined resolves a relative path reference against the directory of the
// including shader. Non-path references and references resolved with an
// empty parent are returned unchanged.
func (r ShaderReference) joined(parent string) ShaderReference {
	if r.kind != refPath || parent == "" {
		return r
	}
	return ShaderReference{kind: refPath, name: filepath.Join(parent, r.name)}
}

// Language reports the shading language of the referenced source, resolved
// from the path or module name extension. Built-in default shaders are WGSL.
func (r ShaderReference) Language() (Language, error) {
	switch r.kind {
	case refDefault:
		return LanguageWGSL, nil
	default:
		return languageForPath(r.name)
	}
}

// String renders the reference the way an include directive would spell it:
// quoted for paths, angle-bracketed for modules.
func (r ShaderReference) String() string {
	switch r.kind {
	case refPath:
		return strconv.Quote(r.name)
	case refModule:
		return "<" + r.name + ">"
	default:
		return "default:" + r.def.String()
	}
}
