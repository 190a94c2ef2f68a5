// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shade

import (
	"errors"
	"strconv"
)

// Sentinel errors for the shade package. Payload-carrying errors below
// unwrap to one of these, so callers can match categories with errors.Is
// and recover details with errors.As.
var (
	// ErrNoExtension is returned when a shader path has no file extension.
	ErrNoExtension = errors.New("shade: shader path has no extension")

	// ErrUnknownExtension is returned when a shader path has an extension
	// that does not map to a known shading language.
	ErrUnknownExtension = errors.New("shade: unknown shader extension")

	// ErrInvalidInclude is returned when an #include payload is neither a
	// quoted path nor an angle-bracketed module name.
	ErrInvalidInclude = errors.New("shade: invalid include directive")

	// ErrUnclosedComment is returned when a block comment is opened but
	// never closed.
	ErrUnclosedComment = errors.New("shade: unclosed block comment")

	// ErrInvalidDefine is returned when an #ifdef or #ifndef directive is
	// not followed by an identifier.
	ErrInvalidDefine = errors.New("shade: define directive missing identifier")

	// ErrUnclosedDirective is returned when an #ifdef or #ifndef directive
	// has no matching #endif.
	ErrUnclosedDirective = errors.New("shade: unclosed define directive")

	// ErrInvalidModule is returned when an include names a module that is
	// not registered.
	ErrInvalidModule = errors.New("shade: invalid module")

	// ErrCircularInclude is returned when shader includes form a cycle.
	ErrCircularInclude = errors.New("shade: circular include")

	// ErrUnsupportedLanguage is returned when a shader's source language
	// has no compiler frontend.
	ErrUnsupportedLanguage = errors.New("shade: unsupported shader language")

	// ErrBindingMismatch is returned when the bindings reflected from a
	// shader cannot satisfy the resources requested for it.
	ErrBindingMismatch = errors.New("shade: binding mismatch")
)

// LanguageError indicates a shader path whose extension could not be mapped
// to a shading language. Ext is empty when the path had no extension at all.
type LanguageError struct {
	Path string
	Ext  string
}

func (e *LanguageError) Error() string {
	if e.Ext == "" {
		return "shade: no extension for shader path " + strconv.Quote(e.Path)
	}
	return "shade: unknown shader extension " + strconv.Quote(e.Ext)
}

func (e *LanguageError) Unwrap() error {
	if e.Ext == "" {
		return ErrNoExtension
	}
	return ErrUnknownExtension
}

// IncludeError indicates an #include directive with a malformed payload.
type IncludeError struct {
	Directive string
}

func (e *IncludeError) Error() string {
	return "shade: invalid include " + strconv.Quote(e.Directive)
}

func (e *IncludeError) Unwrap() error { return ErrInvalidInclude }

// DefineError indicates an #ifdef or #ifndef directive without an identifier.
type DefineError struct {
	Keyword string
}

func (e *DefineError) Error() string {
	return "shade: " + e.Keyword + " missing identifier"
}

func (e *DefineError) Unwrap() error { return ErrInvalidDefine }

// ModuleError indicates an include of a module name that is not registered.
type ModuleError struct {
	Name string
}

func (e *ModuleError) Error() string {
	return "shade: invalid module " + strconv.Quote(e.Name)
}

func (e *ModuleError) Unwrap() error { return ErrInvalidModule }

// CircularIncludeError indicates a cycle in the include graph. Ref is the
// shader reference whose resolution was attempted twice without progress.
type CircularIncludeError struct {
	Ref ShaderReference
}

func (e *CircularIncludeError) Error() string {
	return "shade: circular include of " + e.Ref.String()
}

func (e *CircularIncludeError) Unwrap() error { return ErrCircularInclude }

// BindingMismatchError indicates that two shaders added to one layout
// declare the same binding name at different locations.
type BindingMismatchError struct {
	Name string
	Prev BindingLocation
	Next BindingLocation
}

func (e *BindingMismatchError) Error() string {
	if e.Name == "" {
		return "shade: binding mismatch"
	}
	return "shade: binding " + strconv.Quote(e.Name) +
		" declared at " + e.Next.String() + " and " + e.Prev.String()
}

func (e *BindingMismatchError) Unwrap() error { return ErrBindingMismatch }
