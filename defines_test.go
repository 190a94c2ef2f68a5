// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shade

import "testing"

// realistic material/pipeline define names, the kind hashed in production.
var defineNames = []string{
	"FOO",
	"BAR",
	"BAZ",
	"CLEARCOAT",
	"CLEARCOAT_NORMAL",
	"CLEARCOAT_ROUGHNESS",
	"NORMAL_MAP",
	"TRANSMISSION",
	"THICKNESS",
	"EMISSIVE_MAP",
	"METALLIC_ROUGHNESS_TEXTURE",
	"OCCLUSION_MAP",
	"BASE_COLOR_TEXTURE",
	"SUBSURFACE",
	"THICKNESS_TEXTURE",
	"EMISSIVE",
	"METALLIC_ROUGHNESS",
	"OCCLUSION",
	"BASE_COLOR",
	"SUBSURFACE_TEXTURE",
	"CLEARCOAT_TEXTURE",
	"CLEARCOAT_ROUGHNESS_TEXTURE",
	"NORMAL_TEXTURE",
	"TRANSMISSION_TEXTURE",
	"EMISSIVE_TEXTURE",
	"METALLIC_ROUGHNESS_MAP",
	"OCCLUSION_TEXTURE",
	"BASE_COLOR_MAP",
	"SUBSURFACE_MAP",
	"THICKNESS_MAP",
}

func TestHashDefine(t *testing.T) {
	tests := []struct {
		name string
		want DefineHash
	}{
		{"", 0},
		{"A", 65},
		{"AB", 65*31 + 66},
	}
	for _, tt := range tests {
		if got := HashDefine(tt.name); got != tt.want {
			t.Errorf("HashDefine(%q) = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestHashDefinePairwiseDistinct(t *testing.T) {
	for i, a := range defineNames {
		for j, b := range defineNames {
			ha, hb := HashDefine(a), HashDefine(b)
			if i == j && ha != hb {
				t.Errorf("HashDefine(%q) not self-equal", a)
			}
			if i != j && ha == hb {
				t.Errorf("HashDefine collision: %q and %q both hash to %d", a, b, ha)
			}
		}
	}
}

func TestDefineSetOrderIndependence(t *testing.T) {
	perms := [][]string{
		{"FOO", "BAR", "BAZ"},
		{"FOO", "BAZ", "BAR"},
		{"BAR", "FOO", "BAZ"},
		{"BAR", "BAZ", "FOO"},
		{"BAZ", "FOO", "BAR"},
		{"BAZ", "BAR", "FOO"},
	}

	want := NewDefineSet(perms[0]...).Hash()
	if want == 0 {
		t.Fatal("non-empty set hashed to zero")
	}
	for _, perm := range perms {
		if got := NewDefineSet(perm...).Hash(); got != want {
			t.Errorf("NewDefineSet(%v).Hash() = %d, want %d", perm, got, want)
		}
	}
}

func TestDefineSetDuplicatesIgnored(t *testing.T) {
	s := NewDefineSet("FOO", "BAR")
	want := s.Hash()

	s.Add("FOO")
	s.Add("BAR")
	s.Add("FOO")

	if s.Len() != 2 {
		t.Errorf("Len() = %d after duplicate adds, want 2", s.Len())
	}
	if got := s.Hash(); got != want {
		t.Errorf("Hash() = %d after duplicate adds, want %d", got, want)
	}

	dup := NewDefineSet("FOO", "FOO", "BAR", "BAR", "BAR")
	if got := dup.Hash(); got != want {
		t.Errorf("duplicated construction Hash() = %d, want %d", got, want)
	}
}

func TestDefineSetContains(t *testing.T) {
	s := NewDefineSet("NORMAL_MAP", "EMISSIVE")

	if !s.Contains(HashDefine("NORMAL_MAP")) {
		t.Error("Contains(NORMAL_MAP) = false, want true")
	}
	if !s.Contains(HashDefine("EMISSIVE")) {
		t.Error("Contains(EMISSIVE) = false, want true")
	}
	if s.Contains(HashDefine("OCCLUSION")) {
		t.Error("Contains(OCCLUSION) = true, want false")
	}
}

func TestDefineSetEmpty(t *testing.T) {
	if got := NewDefineSet().Hash(); got != 0 {
		t.Errorf("empty set Hash() = %d, want 0", got)
	}

	var nilSet *DefineSet
	if nilSet.Len() != 0 {
		t.Errorf("nil set Len() = %d, want 0", nilSet.Len())
	}
	if nilSet.Hash() != 0 {
		t.Errorf("nil set Hash() = %d, want 0", nilSet.Hash())
	}
	if nilSet.Contains(HashDefine("FOO")) {
		t.Error("nil set Contains() = true, want false")
	}
}

func TestDefineSetDistinctSetsDistinctHashes(t *testing.T) {
	a := NewDefineSet("FOO").Hash()
	b := NewDefineSet("BAR").Hash()
	ab := NewDefineSet("FOO", "BAR").Hash()

	if a == b || a == ab || b == ab {
		t.Errorf("set hashes not distinct: {FOO}=%d {BAR}=%d {FOO,BAR}=%d", a, b, ab)
	}
}
