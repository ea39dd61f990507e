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

// Package template computes the divergence between two same-root-type
// subtrees: the set of cut points where they differ, plus the step/cut
// accounting that lets the depth cache estimate a back-reference's
// benefit (§4.4).
package template

import (
	"fmt"

	"github.com/kannanvijayan-zz/ast-compress/ast"
)

// Reason tags why a Cut was emitted. The set is closed (§3).
type Reason string

const (
	ReasonNodeType          Reason = "node_type"
	ReasonFieldNames        Reason = "field_names"
	ReasonChildNames        Reason = "child_names"
	ReasonChildArrayLength  Reason = "child_array_length"
	ReasonNullQueryChild    Reason = "null_query_child"
	ReasonNotnullQueryChild Reason = "notnull_query_child"
)

// ValueReason formats the per-field cut reason "value:<i>:<name>".
func ValueReason(i int, name string) Reason {
	return Reason(fmt.Sprintf("value:%d:%s", i, name))
}

// SubstKind tags which field of Subst is populated.
type SubstKind uint8

const (
	SubstValue SubstKind = iota
	SubstValueMap
	SubstNode
	SubstNodeArray
)

// Subst is the tagged-union substitution payload carried by a Cut.
type Subst struct {
	Kind      SubstKind
	Value     ast.Value
	ValueMap  map[string]ast.Value
	Node      *ast.Node
	NodeArray []*ast.Node
}

// Cut is a position in a template walk where origin and query diverge.
type Cut struct {
	Num    int
	Reason Reason
	Descr  string // field or branch name involved (the query's type name for a node_type cut), "" when not applicable
	Subst  Subst
}

// Template is an origin subtree plus the cut list computed against some
// query subtree, along with step/cut counts.
type Template struct {
	Tree      *ast.Node
	StepCount int
	CutCount  int
	Cuts      []Cut
}

// Benefit estimates the bytes saved by a template reference: one byte
// per matching step, minus the reference byte itself.
func (t *Template) Benefit() int {
	return t.StepCount - 1
}

type pair struct{ o, q *ast.Node }

// Compute computes the template that turns origin into query: the cut
// points where they diverge and the steps where they agree, breadth-first
// over paired (origin, query) positions (§4.4).
func Compute(origin, query *ast.Node) *Template {
	t := &Template{Tree: origin}
	num := 0
	queue := []pair{{origin, query}}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		matchNodes(p.o, p.q, &num, t, &queue)
	}
	return t
}

func matchNodes(o, q *ast.Node, num *int, t *Template, queue *[]pair) {
	if o.Type != q.Type {
		t.Cuts = append(t.Cuts, Cut{Num: *num, Reason: ReasonNodeType, Descr: q.Type.Name,
			Subst: Subst{Kind: SubstNode, Node: q}})
		t.CutCount++
		*num++
		return
	}
	t.StepCount++
	*num++

	oFields, qFields := o.FieldNames(), q.FieldNames()
	if !stringsEqual(oFields, qFields) {
		t.Cuts = append(t.Cuts, Cut{Num: *num, Reason: ReasonFieldNames,
			Subst: Subst{Kind: SubstValueMap, ValueMap: q.Fields}})
		t.CutCount++
		*num++
		return
	}

	for i, name := range oFields {
		ov, qv := o.Fields[name], q.Fields[name]
		if !ast.Equal(ov, qv) {
			t.Cuts = append(t.Cuts, Cut{Num: *num, Reason: ValueReason(i, name), Descr: name,
				Subst: Subst{Kind: SubstValue, Value: qv}})
			t.CutCount++
			*num++
		}
		// No early return here: spec.md §9 resolves the ambiguity in the
		// original in favor of continuing to scan remaining fields.
	}

	oBranches, qBranches := o.BranchNames(), q.BranchNames()
	if !stringsEqual(oBranches, qBranches) {
		t.Cuts = append(t.Cuts, Cut{Num: *num, Reason: ReasonChildNames,
			Subst: Subst{Kind: SubstNode, Node: q}})
		t.CutCount++
		*num++
		return
	}
	t.StepCount++
	*num++

	for _, name := range oBranches {
		os, qs := o.Children[name], q.Children[name]
		switch {
		case os.Kind == ast.ChildArray:
			if len(os.Nodes) == len(qs.Nodes) {
				t.StepCount++
				*num++
				for i := range os.Nodes {
					*queue = append(*queue, pair{os.Nodes[i], qs.Nodes[i]})
				}
			} else {
				t.Cuts = append(t.Cuts, Cut{Num: *num, Reason: ReasonChildArrayLength, Descr: name,
					Subst: Subst{Kind: SubstNodeArray, NodeArray: qs.Nodes}})
				t.CutCount++
				*num++
			}
		case os.Kind == ast.ChildNil && qs.Kind == ast.ChildNil:
			t.StepCount++
			*num++
		case os.Kind == ast.ChildNil && qs.Kind != ast.ChildNil:
			t.Cuts = append(t.Cuts, Cut{Num: *num, Reason: ReasonNotnullQueryChild, Descr: name,
				Subst: Subst{Kind: SubstNode, Node: qs.Node}})
			t.CutCount++
			*num++
		case os.Kind != ast.ChildNil && qs.Kind == ast.ChildNil:
			t.Cuts = append(t.Cuts, Cut{Num: *num, Reason: ReasonNullQueryChild, Descr: name,
				Subst: Subst{Kind: SubstNode, Node: qs.Node}})
			t.CutCount++
			*num++
		default: // both single nodes
			t.StepCount++
			*num++
			*queue = append(*queue, pair{os.Node, qs.Node})
		}
	}
}

func stringsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Matches re-runs Compute(t.Tree, query) and returns the resulting cut
// list iff step count, cut count, cut-list length, and every cut's Num
// agree with t (§4.4).
func (t *Template) Matches(query *ast.Node) ([]Cut, bool) {
	re := Compute(t.Tree, query)
	if re.StepCount != t.StepCount || re.CutCount != t.CutCount || len(re.Cuts) != len(t.Cuts) {
		return nil, false
	}
	for i := range re.Cuts {
		if re.Cuts[i].Num != t.Cuts[i].Num {
			return nil, false
		}
	}
	return re.Cuts, true
}
