// Copyright 2023 Sneller, Inc.
//
//  Licensed under the Apache License, Version 2.0 (the "License");
//  you may not use this file except in compliance with the License.
//  You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.

// Package cache implements the depth-indexed compression cache (§4.5): a
// bounded per-depth history of recently emitted subtrees and templates,
// searched for the best back-reference available near a given depth.
package cache

import (
	"fmt"

	"github.com/kannanvijayan-zz/ast-compress/ast"
	"github.com/kannanvijayan-zz/ast-compress/template"
)

const (
	// Window is the per-depth ring buffer capacity.
	Window = 64

	// TemplateDepthRange and TreeDepthRange bound how far from the
	// query's own depth the two sub-searches probe. The source keeps
	// these distinct (§9 design note); this spec preserves both.
	TemplateDepthRange = 2
	TreeDepthRange     = 1
)

// ErrRefOutOfRange is a programmer-error guard: a delta/reverse-index
// pair produced by Search must always fall within what the wire format
// can represent. A violation indicates a cache bug, not bad input.
type ErrRefOutOfRange struct {
	Delta, Reverse int
}

func (e *ErrRefOutOfRange) Error() string {
	return fmt.Sprintf("cache: reference out of range (delta=%d, reverse=%d)", e.Delta, e.Reverse)
}

// ValidateRef panics if delta or reverse fall outside what the wire
// format can encode ([-63, 63] and [0, 255] respectively). Cache search
// never produces an out-of-range pair; this exists to catch a
// programmer error immediately rather than silently truncating.
func ValidateRef(delta, reverse int) {
	if delta < -63 || delta > 63 || reverse < 0 || reverse > 255 {
		panic(&ErrRefOutOfRange{Delta: delta, Reverse: reverse})
	}
}

// treeRec pairs a pushed subtree with its content hash, computed once at
// push time so that later searches can test for an exact duplicate in
// O(1) instead of re-hashing on every query (§4.8 domain stack).
type treeRec struct {
	node *ast.Node
	hash uint64
}

type entry struct {
	trees     *Ring[treeRec]
	templates *Ring[*template.Template]
}

// DepthCache is the per-depth history of emitted subtrees and templates.
// It retains references to lifted nodes; those nodes must outlive the
// cache (§5).
type DepthCache struct {
	entries []*entry
}

// New returns an empty DepthCache.
func New() *DepthCache {
	return &DepthCache{}
}

func (c *DepthCache) at(depth int) *entry {
	for len(c.entries) <= depth {
		c.entries = append(c.entries, &entry{
			trees:     NewRing[treeRec](Window),
			templates: NewRing[*template.Template](Window),
		})
	}
	return c.entries[depth]
}

// PushTree appends node to the tree history at depth.
func (c *DepthCache) PushTree(depth int, node *ast.Node) {
	c.at(depth).trees.Push(treeRec{node: node, hash: contentHash(node)})
}

// PushTemplate appends tmpl to the template history at depth.
func (c *DepthCache) PushTemplate(depth int, tmpl *template.Template) {
	c.at(depth).templates.Push(tmpl)
}

// hasDepth reports whether depth is within the cache's current extent:
// every depth from 0 up to the deepest one pushed so far, whether or not
// anything was pushed at that depth itself.
func (c *DepthCache) hasDepth(depth int) bool {
	return depth >= 0 && depth < len(c.entries)
}
