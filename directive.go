// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shade

import (
	"slices"
	"strings"
	"unicode"
)

// Directive keywords recognized in shader source. They are matched as
// literal substrings, anywhere in the text.
const (
	ifdefDirective   = "#ifdef"
	ifndefDirective  = "#ifndef"
	endifDirective   = "#endif"
	includeDirective = "#include"
)

// fragment is a single parsed shader source: directive-free text plus the
// references it includes, deduplicated, in document order.
type fragment struct {
	source   string
	includes []ShaderReference
}

// parseFragment turns raw shader source into a fragment. It strips comments,
// resolves conditional blocks against the define set, and extracts include
// references. Relative include paths resolve against parentDir.
func parseFragment(source string, defines *DefineSet, parentDir string) (*fragment, error) {
	stripped, err := stripComments(source)
	if err != nil {
		return nil, err
	}
	conditioned, err := processDefines(stripped, defines)
	if err != nil {
		return nil, err
	}
	return extractIncludes(conditioned, parentDir)
}

// stripComments removes // comments through end of line (the newline itself
// stays, so tokens on adjacent lines keep their separation) and /* */
// comments including the delimiters. Whichever comment opens first wins, so
// openers inside the other comment form are ignored.
func stripComments(source string) (string, error) {
	var b strings.Builder
	b.Grow(len(source))
	for {
		line := strings.Index(source, "//")
		block := strings.Index(source, "/*")
		switch {
		case line >= 0 && (block < 0 || line < block):
			b.WriteString(source[:line])
			source = source[line+2:]
			if nl := strings.IndexByte(source, '\n'); nl >= 0 {
				source = source[nl:]
			} else {
				source = ""
			}
		case block >= 0:
			b.WriteString(source[:block])
			source = source[block+2:]
			end := strings.Index(source, "*/")
			if end < 0 {
				return "", ErrUnclosedComment
			}
			source = source[end+2:]
		default:
			b.WriteString(source)
			return b.String(), nil
		}
	}
}

// findDefDirective locates the first conditional directive in source.
// When both forms occur, the earlier one wins.
func findDefDirective(source string) (idx int, isIfdef bool, ok bool) {
	a := strings.Index(source, ifdefDirective)
	b := strings.Index(source, ifndefDirective)
	switch {
	case a >= 0 && b >= 0:
		if a < b {
			return a, true, true
		}
		return b, false, true
	case a >= 0:
		return a, true, true
	case b >= 0:
		return b, false, true
	default:
		return 0, false, false
	}
}

// findEndif returns the index of the #endif closing the block that starts at
// the beginning of source, or -1 if the block is never closed. Every #endif
// preceded by another conditional directive terminates that nested block and
// is skipped.
func findEndif(source string) int {
	offset := 0
	for {
		end := strings.Index(source, endifDirective)
		if end < 0 {
			return -1
		}
		if _, _, nested := findDefDirective(source[:end]); nested {
			source = source[end+len(endifDirective):]
			offset += end + len(endifDirective)
			continue
		}
		return offset + end
	}
}

// identEnd returns the length of the identifier prefix of s: the longest run
// of ASCII letters, digits and underscores.
func identEnd(s string) int {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '_' || '0' <= c && c <= '9' || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' {
			continue
		}
		return i
	}
	return len(s)
}

// processDefines resolves #ifdef/#ifndef blocks against the define set.
// A block's body is kept when the define's presence matches the directive
// form; kept bodies are processed recursively. The directive, identifier
// and matching #endif are always removed.
func processDefines(source string, defines *DefineSet) (string, error) {
	var b strings.Builder
	for {
		i, isIfdef, ok := findDefDirective(source)
		if !ok {
			b.WriteString(source)
			return b.String(), nil
		}
		b.WriteString(source[:i])

		keyword := ifdefDirective
		if !isIfdef {
			keyword = ifndefDirective
		}
		source = strings.TrimLeftFunc(source[i+len(keyword):], unicode.IsSpace)

		idEnd := identEnd(source)
		ident := source[:idEnd]
		source = source[idEnd:]
		if ident == "" {
			return "", &DefineError{Keyword: keyword}
		}

		endIdx := findEndif(source)
		if endIdx < 0 {
			return "", ErrUnclosedDirective
		}

		if defines.Contains(HashDefine(ident)) == isIfdef {
			inner, err := processDefines(source[:endIdx], defines)
			if err != nil {
				return "", err
			}
			b.WriteString(inner)
		}
		source = source[endIdx+len(endifDirective):]
	}
}

// extractIncludes removes #include directives from source and collects the
// referenced shaders. Text around each directive, including the newline after
// the closing delimiter, is untouched.
func extractIncludes(source, parentDir string) (*fragment, error) {
	frag := &fragment{}
	var b strings.Builder
	for {
		i := strings.Index(source, includeDirective)
		if i < 0 {
			b.WriteString(source)
			frag.source = b.String()
			return frag, nil
		}
		b.WriteString(source[:i])

		ref, rest, err := parseIncludeRef(source[i+len(includeDirective):])
		if err != nil {
			return nil, err
		}
		source = rest

		ref = ref.joined(parentDir)
		if !slices.Contains(frag.includes, ref) {
			frag.includes = append(frag.includes, ref)
		}
	}
}

// parseIncludeRef reads the payload of an #include directive: a quoted path
// or an angle-bracketed module name, with leading whitespace skipped and the
// payload itself trimmed. It returns the reference and the text remaining
// after the closing delimiter.
func parseIncludeRef(source string) (ShaderReference, string, error) {
	source = strings.TrimLeftFunc(source, unicode.IsSpace)
	switch {
	case strings.HasPrefix(source, `"`):
		end := strings.IndexByte(source[1:], '"')
		if end < 0 {
			return ShaderReference{}, "", &IncludeError{Directive: firstLine(source)}
		}
		path := strings.TrimSpace(source[1 : 1+end])
		return PathRef(path), source[end+2:], nil
	case strings.HasPrefix(source, "<"):
		end := strings.IndexByte(source[1:], '>')
		if end < 0 {
			return ShaderReference{}, "", &IncludeError{Directive: firstLine(source)}
		}
		name := strings.TrimSpace(source[1 : 1+end])
		return ModuleRef(name), source[end+2:], nil
	default:
		return ShaderReference{}, "", &IncludeError{Directive: firstLine(source)}
	}
}

// firstLine clips s at its first newline, keeping error payloads short.
func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
