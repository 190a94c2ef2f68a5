// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shade

import (
	"hash/fnv"
)

// BindKey is a 64 bit digest of the value bound at one binding entry.
// Uniform payloads hash their bytes; buffers, textures and samplers
// hash their native handles. An unchanged key means the entry needs no
// GPU work.
type BindKey uint64

// BindKeyZero is the key of an unset optional resource.
const BindKeyZero BindKey = 0

// Combine folds two keys into one. Combining is commutative, so an
// aggregate key over several entries does not depend on their order.
func (k BindKey) Combine(other BindKey) BindKey {
	return k ^ other
}

// bindKeyBytes computes the FNV-1a hash of a byte payload.
func bindKeyBytes(data []byte) BindKey {
	h := fnv.New64a()
	_, _ = h.Write(data) // fnv.Write never returns an error
	return BindKey(h.Sum64())
}

// bindKeyUint64 computes the FNV-1a hash of one or more 64 bit values.
func bindKeyUint64(values ...uint64) BindKey {
	h := fnv.New64a()
	var buf [8]byte
	for _, v := range values {
		buf[0] = byte(v)
		buf[1] = byte(v >> 8)
		buf[2] = byte(v >> 16)
		buf[3] = byte(v >> 24)
		buf[4] = byte(v >> 32)
		buf[5] = byte(v >> 40)
		buf[6] = byte(v >> 48)
		buf[7] = byte(v >> 56)
		_, _ = h.Write(buf[:])
	}
	return BindKey(h.Sum64())
}
