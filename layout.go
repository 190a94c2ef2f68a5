// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shade

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// BindingLocation is a @group/@binding pair.
type BindingLocation struct {
	Group   uint32
	Binding uint32
}

// String returns the location as "group G binding B".
func (l BindingLocation) String() string {
	return "group " + strconv.FormatUint(uint64(l.Group), 10) +
		" binding " + strconv.FormatUint(uint64(l.Binding), 10)
}

// LayoutBinding is one admitted entry of a Layout: a reflected shader
// location matched with the request that claimed it.
type LayoutBinding struct {
	Name     string
	Location BindingLocation
	Kind     BindingKind
	Request  BindingRequest
}

// Layout collects the resource bindings a set of shaders exposes.
//
// Shaders are added together with binding requests; each request is
// matched by variable name against the shader's reflected bindings and
// takes its location from the shader. Requests that name nothing in
// the shader are dropped. The admitted entries form dense bind groups:
// every group index up to the highest one used is present, empty or
// not, and entries within a group are ordered by binding index.
type Layout struct {
	entries    []LayoutBinding
	byName     map[string]int
	groupCount int
}

// NewLayout returns an empty layout.
func NewLayout() *Layout {
	return &Layout{byName: make(map[string]int)}
}

// AddShader admits every request that matches a reflected binding of
// the shader. A name admitted earlier must resolve to the same
// location; a conflict reports a BindingMismatchError. When the same
// name is admitted from several shaders the visibilities of the
// requests are merged and the first request's parameters win.
func (l *Layout) AddShader(shader *Shader, requests ...BindingRequest) error {
	for _, req := range requests {
		reflected, ok := shader.Binding(req.Name)
		if !ok {
			logger().Warn("binding request does not match shader",
				"binding", req.Name,
				"shader", shader.Ref().String())
			continue
		}
		location := BindingLocation{Group: reflected.Group, Binding: reflected.Binding}

		if i, exists := l.byName[req.Name]; exists {
			prev := &l.entries[i]
			if prev.Location != location {
				return &BindingMismatchError{Name: req.Name, Prev: prev.Location, Next: location}
			}
			prev.Request.Visibility |= req.Visibility
			continue
		}

		l.entries = append(l.entries, LayoutBinding{
			Name:     req.Name,
			Location: location,
			Kind:     req.Kind,
			Request:  req,
		})
		l.byName[req.Name] = len(l.entries) - 1
		if count := int(location.Group) + 1; count > l.groupCount {
			l.groupCount = count
		}
	}
	return nil
}

// Binding returns the admitted entry with the given name.
func (l *Layout) Binding(name string) (LayoutBinding, bool) {
	if i, ok := l.byName[name]; ok {
		return l.entries[i], true
	}
	return LayoutBinding{}, false
}

// Bindings returns all admitted entries ordered by group then binding
// index.
func (l *Layout) Bindings() []LayoutBinding {
	out := slices.Clone(l.entries)
	slices.SortFunc(out, compareLayoutBindings)
	return out
}

// GroupCount returns the number of bind groups the layout spans,
// counting empty groups below the highest used index.
func (l *Layout) GroupCount() int {
	return l.groupCount
}

// Group returns the entries of one group ordered by binding index.
func (l *Layout) Group(group int) []LayoutBinding {
	var out []LayoutBinding
	for _, e := range l.entries {
		if int(e.Location.Group) == group {
			out = append(out, e)
		}
	}
	slices.SortFunc(out, compareLayoutBindings)
	return out
}

// GroupEntries returns the bind group layout entries of one group
// ordered by binding index.
func (l *Layout) GroupEntries(group int) []gputypes.BindGroupLayoutEntry {
	bindings := l.Group(group)
	entries := make([]gputypes.BindGroupLayoutEntry, len(bindings))
	for i, b := range bindings {
		entries[i] = b.Request.layoutEntry(b.Location.Binding)
	}
	return entries
}

// BindGroupLayouts creates one bind group layout per group, dense from
// group zero. The caller owns the returned layouts.
func (l *Layout) BindGroupLayouts(device hal.Device) ([]hal.BindGroupLayout, error) {
	layouts := make([]hal.BindGroupLayout, 0, l.groupCount)
	for g := 0; g < l.groupCount; g++ {
		layout, err := device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
			Label:   fmt.Sprintf("shade_group%d", g),
			Entries: l.GroupEntries(g),
		})
		if err != nil {
			for _, created := range layouts {
				device.DestroyBindGroupLayout(created)
			}
			return nil, fmt.Errorf("create bind group layout %d: %w", g, err)
		}
		layouts = append(layouts, layout)
	}
	return layouts, nil
}

func compareLayoutBindings(a, b LayoutBinding) int {
	if c := cmp.Compare(a.Location.Group, b.Location.Group); c != 0 {
		return c
	}
	return cmp.Compare(a.Location.Binding, b.Location.Binding)
}
