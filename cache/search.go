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

package cache

import (
	"github.com/kannanvijayan-zz/ast-compress/ast"
	"github.com/kannanvijayan-zz/ast-compress/template"
)

// CandidateKind distinguishes a template back-reference from a subtree
// back-reference.
type CandidateKind uint8

const (
	CandidateTree CandidateKind = iota
	CandidateTemplate
)

// Candidate is the result of Search: enough information for the
// compression driver to emit a reference and recurse into substitutions.
type Candidate struct {
	Kind    CandidateKind
	Benefit int
	Delta   int // signed depth offset of the referenced entry
	Reverse int // 0 = newest entry in that depth's ring

	Cuts []template.Cut

	// NewTemplate is set only for a CandidateTree hit: the template the
	// driver should push onto the cache once the referencing node has
	// finished encoding (§4.6, "on end: ... if a template was computed").
	NewTemplate *template.Template
}

var templateDeltas = []int{0, -1, 1, -2, 2}
var treeDeltas = []int{0, -1, 1}

// Search returns the best positive-benefit back-reference available for
// query at depth, preferring the larger of the template and tree
// sub-searches and breaking ties in favor of the template match (§4.5).
func (c *DepthCache) Search(depth int, query *ast.Node) (*Candidate, bool) {
	tmplCand := c.templateSearch(depth, query)
	treeCand := c.treeSearch(depth, query)
	switch {
	case tmplCand == nil && treeCand == nil:
		return nil, false
	case tmplCand == nil:
		return treeCand, true
	case treeCand == nil:
		return tmplCand, true
	case treeCand.Benefit > tmplCand.Benefit:
		return treeCand, true
	default:
		return tmplCand, true
	}
}

func (c *DepthCache) templateSearch(depth int, query *ast.Node) *Candidate {
	var best *Candidate
	for _, delta := range templateDeltas {
		d := depth + delta
		if d < 0 || !c.hasDepth(d) {
			continue
		}
		e := c.at(d)
		for i := 0; i < e.templates.Len(); i++ {
			tmpl := e.templates.Newest(i)
			cuts, ok := tmpl.Matches(query)
			if !ok {
				continue
			}
			benefit := tmpl.Benefit()
			if benefit <= 0 {
				continue
			}
			if best == nil || benefit > best.Benefit {
				best = &Candidate{Kind: CandidateTemplate, Benefit: benefit, Delta: delta, Reverse: i, Cuts: cuts}
			}
		}
	}
	return best
}

func (c *DepthCache) treeSearch(depth int, query *ast.Node) *Candidate {
	qhash := contentHash(query)

	// Phase 1: O(1) hash-equality scan for an exact duplicate, newest
	// first. Every exact duplicate yields the same benefit (a perfectly
	// matched walk of query's own shape), so the first one found — the
	// closest, most recent one — is as good as any other.
	for _, delta := range treeDeltas {
		d := depth + delta
		if d < 0 || !c.hasDepth(d) {
			continue
		}
		e := c.at(d)
		for i := 0; i < e.trees.Len(); i++ {
			rec := e.trees.Newest(i)
			if rec.hash != qhash || rec.node.Type != query.Type {
				continue
			}
			tmpl := template.Compute(rec.node, query)
			benefit := tmpl.StepCount - tmpl.CutCount - 1
			if benefit > 0 {
				return &Candidate{Kind: CandidateTree, Benefit: benefit, Delta: delta, Reverse: i,
					Cuts: tmpl.Cuts, NewTemplate: tmpl}
			}
		}
	}

	// Phase 2: no exact duplicate; fall back to the full near-match scan
	// the source performs unconditionally.
	var best *Candidate
	for _, delta := range treeDeltas {
		d := depth + delta
		if d < 0 || !c.hasDepth(d) {
			continue
		}
		e := c.at(d)
		for i := 0; i < e.trees.Len(); i++ {
			rec := e.trees.Newest(i)
			if rec.node.Type != query.Type {
				continue
			}
			tmpl := template.Compute(rec.node, query)
			benefit := tmpl.StepCount - tmpl.CutCount - 1
			if benefit <= 0 {
				continue
			}
			if best == nil || benefit > best.Benefit {
				best = &Candidate{Kind: CandidateTree, Benefit: benefit, Delta: delta, Reverse: i,
					Cuts: tmpl.Cuts, NewTemplate: tmpl}
			}
		}
	}
	return best
}
