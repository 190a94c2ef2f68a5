// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shade

import (
	"errors"
	"testing"
)

func TestShaderReferenceIdentity(t *testing.T) {
	if PathRef("a.wgsl") != PathRef("a.wgsl") {
		t.Error("identical path refs must compare equal")
	}
	if PathRef("a.wgsl") == ModuleRef("a.wgsl") {
		t.Error("path and module refs must not compare equal")
	}
	if DefaultRef(DefaultVertex) == DefaultRef(DefaultFragment) {
		t.Error("distinct default refs must not compare equal")
	}

	// The zero value references the built-in vertex shader.
	var zero ShaderReference
	if zero != DefaultRef(DefaultVertex) {
		t.Error("zero reference must be the default vertex shader")
	}

	seen := map[ShaderReference]int{
		PathRef("a.wgsl"):           1,
		ModuleRef("a.wgsl"):         2,
		DefaultRef(DefaultVertex):   3,
		DefaultRef(DefaultFragment): 4,
	}
	if len(seen) != 4 {
		t.Errorf("map over refs has %d keys, want 4", len(seen))
	}
	if seen[PathRef("a.wgsl")] != 1 {
		t.Error("path ref lookup returned the wrong entry")
	}
}

func TestShaderReferenceAccessors(t *testing.T) {
	path := PathRef("shaders/post.wgsl")
	if p, ok := path.Path(); !ok || p != "shaders/post.wgsl" {
		t.Errorf("Path() = %q, %v, want shaders/post.wgsl, true", p, ok)
	}
	if _, ok := path.Module(); ok {
		t.Error("Module() should fail on a path ref")
	}
	if path.IsDefault() {
		t.Error("IsDefault() should be false for a path ref")
	}

	module := ModuleRef("common.wgsl")
	if m, ok := module.Module(); !ok || m != "common.wgsl" {
		t.Errorf("Module() = %q, %v, want common.wgsl, true", m, ok)
	}
	if _, ok := module.Path(); ok {
		t.Error("Path() should fail on a module ref")
	}

	if !DefaultRef(DefaultFragment).IsDefault() {
		t.Error("IsDefault() should be true for a default ref")
	}
}

func TestShaderReferenceString(t *testing.T) {
	cases := []struct {
		ref  ShaderReference
		want string
	}{
		{PathRef("post.wgsl"), `"post.wgsl"`},
		{ModuleRef("common.wgsl"), "<common.wgsl>"},
		{DefaultRef(DefaultVertex), "default:vertex"},
		{DefaultRef(DefaultFragment), "default:fragment"},
	}
	for _, tc := range cases {
		if got := tc.ref.String(); got != tc.want {
			t.Errorf("String() = %q, want %q", got, tc.want)
		}
	}
}

func TestShaderReferenceLanguage(t *testing.T) {
	cases := []struct {
		ref  ShaderReference
		want Language
		err  error
	}{
		{PathRef("post.wgsl"), LanguageWGSL, nil},
		{PathRef("blur.glsl"), LanguageGLSL, nil},
		{PathRef("mesh.vert"), LanguageGLSL, nil},
		{PathRef("lit.frag"), LanguageGLSL, nil},
		{PathRef("sim.comp"), LanguageGLSL, nil},
		{ModuleRef("common.wgsl"), LanguageWGSL, nil},
		{DefaultRef(DefaultVertex), LanguageWGSL, nil},
		{PathRef("noext"), 0, ErrNoExtension},
		{PathRef("effect.hlsl"), 0, ErrUnknownExtension},
	}
	for _, tc := range cases {
		got, err := tc.ref.Language()
		if tc.err != nil {
			if !errors.Is(err, tc.err) {
				t.Errorf("%v.Language() error = %v, want %v", tc.ref, err, tc.err)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Errorf("%v.Language() = %v, %v, want %v", tc.ref, got, err, tc.want)
		}
	}

	var langErr *LanguageError
	_, err := PathRef("effect.hlsl").Language()
	if !errors.As(err, &langErr) || langErr.Ext != "hlsl" {
		t.Errorf("Language() error = %v, want LanguageError with ext hlsl", err)
	}
}

func TestShaderReferenceRelativeResolution(t *testing.T) {
	parent := PathRef("shaders/post/bloom.wgsl")
	if got := parent.parentDir(); got != "shaders/post" {
		t.Errorf("parentDir() = %q, want shaders/post", got)
	}
	if got := PathRef("flat.wgsl").parentDir(); got != "" {
		t.Errorf("parentDir() = %q for a bare name, want empty", got)
	}
	if got := ModuleRef("common.wgsl").parentDir(); got != "" {
		t.Errorf("parentDir() = %q for a module ref, want empty", got)
	}

	include := PathRef("common.wgsl")
	joined := include.joined("shaders/post")
	if p, _ := joined.Path(); p != "shaders/post/common.wgsl" {
		t.Errorf("joined path = %q, want shaders/post/common.wgsl", p)
	}
	if got := include.joined(""); got != include {
		t.Error("joining with an empty parent must not change the ref")
	}
	module := ModuleRef("common.wgsl")
	if got := module.joined("shaders"); got != module {
		t.Error("joining must not change module refs")
	}
}
