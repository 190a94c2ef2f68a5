// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package cache provides a generic memoization cache.
//
// Cache[K, V] is a thread-safe map with optional LRU eviction. It backs
// the shader pipeline's memoization layers: parsed fragments keyed by
// (reference, define-set hash) and compiled shaders keyed the same way.
// Values are created at most once per key, so callers holding a cached
// pointer keep observing the same object across repeated lookups.
//
//	c := cache.New[string, int](0)
//	v, err := c.GetOrCreateErr("key", func() (int, error) { return compute() })
//
// A soft limit of 0 disables eviction; the shader caches run unbounded
// because their key space is bounded by the shader permutations an
// application actually uses. When a limit is set, exceeding it evicts
// the least recently used quarter of the entries.
//
// Cache is safe for concurrent use and must not be copied after
// creation (it contains a mutex).
package cache
