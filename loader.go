// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shade

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// SourceLoader supplies shader source for path references.
//
// Load returns the source text at path. LastModified reports when that
// source last changed; a zero time means unknown, and such sources are never
// considered stale by ReloadChanged.
type SourceLoader interface {
	Load(path string) (string, error)
	LastModified(path string) time.Time
}

// FileLoader loads shader source from the filesystem. A non-empty Root is
// prepended to relative paths; absolute paths are read as given.
type FileLoader struct {
	Root string
}

// Load implements SourceLoader.
func (l FileLoader) Load(path string) (string, error) {
	data, err := os.ReadFile(l.resolve(path))
	if err != nil {
		return "", fmt.Errorf("read shader: %w", err)
	}
	return string(data), nil
}

// LastModified implements SourceLoader using the file modification time.
func (l FileLoader) LastModified(path string) time.Time {
	info, err := os.Stat(l.resolve(path))
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}

func (l FileLoader) resolve(path string) string {
	if l.Root == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(l.Root, path)
}

// MapLoader serves shader source from memory, keyed by path. Useful in tests
// and for embedders that assemble sources at runtime.
type MapLoader map[string]string

// Load implements SourceLoader.
func (l MapLoader) Load(path string) (string, error) {
	source, ok := l[path]
	if !ok {
		return "", fmt.Errorf("load shader %q: %w", path, fs.ErrNotExist)
	}
	return source, nil
}

// LastModified implements SourceLoader. Map sources never report a
// modification time.
func (l MapLoader) LastModified(string) time.Time { return time.Time{} }
