// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shade

import "slices"

// DefineHash is a cheap content hash of a single define name. Conditional
// directives compare define identifiers by hash, never by string.
type DefineHash uint64

// HashDefine hashes a define name: h = h*31 + byte over the name's bytes.
func HashDefine(name string) DefineHash {
	var h DefineHash
	for i := 0; i < len(name); i++ {
		h = h*31 + DefineHash(name[i])
	}
	return h
}

// DefineSetHash identifies the contents of a DefineSet. Two sets built from
// the same names, in any insertion order and with any duplication, produce
// the same hash. The empty set hashes to zero.
type DefineSetHash uint64

// DefineSet is a set of preprocessor define names, held as sorted,
// deduplicated hashes. A nil set reads as empty.
type DefineSet struct {
	defs []DefineHash
}

// NewDefineSet returns a set containing the given define names.
func NewDefineSet(names ...string) *DefineSet {
	s := &DefineSet{}
	for _, name := range names {
		s.Add(name)
	}
	return s
}

// Add inserts a define by name. Duplicates are ignored.
func (s *DefineSet) Add(name string) {
	s.AddHash(HashDefine(name))
}

// AddHash inserts a pre-hashed define. Duplicates are ignored.
func (s *DefineSet) AddHash(h DefineHash) {
	i, found := slices.BinarySearch(s.defs, h)
	if found {
		return
	}
	s.defs = slices.Insert(s.defs, i, h)
}

// Contains reports whether the set holds a define hashing to h.
func (s *DefineSet) Contains(h DefineHash) bool {
	if s == nil {
		return false
	}
	_, found := slices.BinarySearch(s.defs, h)
	return found
}

// Len returns the number of distinct defines in the set.
func (s *DefineSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.defs)
}

// Hash folds the sorted define hashes into a single set hash.
func (s *DefineSet) Hash() DefineSetHash {
	if s == nil {
		return 0
	}
	var h DefineSetHash
	for _, d := range s.defs {
		h = h*31 + DefineSetHash(d)
	}
	return h
}
