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

package template

import (
	"testing"

	"github.com/kannanvijayan-zz/ast-compress/ast"
	"github.com/kannanvijayan-zz/ast-compress/schema"
)

func mustLift(t *testing.T, raw map[string]any) *ast.Node {
	t.Helper()
	n, err := ast.LiftMust(raw, schema.ECMAScript)
	if err != nil {
		t.Fatal(err)
	}
	ast.DepthFirstNumber(n)
	return n
}

func TestComputeSelfMatchIsZeroCuts(t *testing.T) {
	n := mustLift(t, map[string]any{
		"type": "BinaryExpression", "operator": "+",
		"left":  map[string]any{"type": "Identifier", "name": "a"},
		"right": map[string]any{"type": "Identifier", "name": "b"},
	})
	tmpl := Compute(n, n)
	if tmpl.CutCount != 0 || len(tmpl.Cuts) != 0 {
		t.Fatalf("self-match should have zero cuts, got %d: %v", tmpl.CutCount, tmpl.Cuts)
	}
	if tmpl.StepCount < 1 {
		t.Errorf("step count should be at least 1, got %d", tmpl.StepCount)
	}
	if tmpl.Benefit() != tmpl.StepCount-1 {
		t.Errorf("benefit formula violated")
	}
}

func TestComputeFieldValueCut(t *testing.T) {
	o := mustLift(t, map[string]any{
		"type": "BinaryExpression", "operator": "+",
		"left":  map[string]any{"type": "Identifier", "name": "a"},
		"right": map[string]any{"type": "Identifier", "name": "b"},
	})
	q := mustLift(t, map[string]any{
		"type": "BinaryExpression", "operator": "-",
		"left":  map[string]any{"type": "Identifier", "name": "a"},
		"right": map[string]any{"type": "Identifier", "name": "b"},
	})
	tmpl := Compute(o, q)
	if tmpl.CutCount != 1 || len(tmpl.Cuts) != 1 {
		t.Fatalf("expected exactly one cut, got %d: %v", tmpl.CutCount, tmpl.Cuts)
	}
	cut := tmpl.Cuts[0]
	if cut.Descr != "operator" {
		t.Errorf("expected cut on 'operator', got %q", cut.Descr)
	}
	if cut.Subst.Kind != SubstValue || !ast.Equal(cut.Subst.Value, ast.String("-")) {
		t.Errorf("unexpected substitution: %+v", cut.Subst)
	}
}

func TestComputeNodeTypeCut(t *testing.T) {
	o := mustLift(t, map[string]any{"type": "Identifier", "name": "a"})
	q := mustLift(t, map[string]any{"type": "Literal", "value": float64(1)})
	tmpl := Compute(o, q)
	if len(tmpl.Cuts) != 1 || tmpl.Cuts[0].Reason != ReasonNodeType {
		t.Fatalf("expected a single node_type cut, got %v", tmpl.Cuts)
	}
	if tmpl.StepCount != 0 {
		t.Errorf("a root node_type mismatch contributes no steps, got %d", tmpl.StepCount)
	}
}

func TestComputeCutsStrictlyIncreasingNum(t *testing.T) {
	o := mustLift(t, map[string]any{
		"type": "BinaryExpression", "operator": "+",
		"left":  map[string]any{"type": "Identifier", "name": "a"},
		"right": map[string]any{"type": "Identifier", "name": "b"},
	})
	q := mustLift(t, map[string]any{
		"type": "BinaryExpression", "operator": "-",
		"left":  map[string]any{"type": "Identifier", "name": "x"},
		"right": map[string]any{"type": "Literal", "value": float64(2)},
	})
	tmpl := Compute(o, q)
	for i := 1; i < len(tmpl.Cuts); i++ {
		if tmpl.Cuts[i].Num <= tmpl.Cuts[i-1].Num {
			t.Fatalf("cuts not strictly increasing: %v", tmpl.Cuts)
		}
	}
}

func TestMatchesAgreesWithCompute(t *testing.T) {
	o := mustLift(t, map[string]any{
		"type": "BinaryExpression", "operator": "+",
		"left":  map[string]any{"type": "Identifier", "name": "a"},
		"right": map[string]any{"type": "Identifier", "name": "b"},
	})
	tmpl := Compute(o, o)
	cuts, ok := tmpl.Matches(o)
	if !ok {
		t.Fatal("self-match should always match")
	}
	if len(cuts) != 0 {
		t.Errorf("expected no cuts, got %v", cuts)
	}

	// A template with one operator cut matches any query that diverges
	// from the origin at that same position, whatever the new operator.
	minus := mustLift(t, map[string]any{
		"type": "BinaryExpression", "operator": "-",
		"left":  map[string]any{"type": "Identifier", "name": "a"},
		"right": map[string]any{"type": "Identifier", "name": "b"},
	})
	opTmpl := Compute(o, minus)
	q := mustLift(t, map[string]any{
		"type": "BinaryExpression", "operator": "*",
		"left":  map[string]any{"type": "Identifier", "name": "a"},
		"right": map[string]any{"type": "Identifier", "name": "b"},
	})
	qcuts, ok := opTmpl.Matches(q)
	if !ok || len(qcuts) != 1 {
		t.Fatalf("expected one cut against a differing operator, got ok=%v cuts=%v", ok, qcuts)
	}
}

func TestComputeChildArrayLengthCut(t *testing.T) {
	o := mustLift(t, map[string]any{
		"type": "CallExpression",
		"callee":    map[string]any{"type": "Identifier", "name": "f"},
		"arguments": []any{map[string]any{"type": "Identifier", "name": "a"}},
	})
	q := mustLift(t, map[string]any{
		"type": "CallExpression",
		"callee": map[string]any{"type": "Identifier", "name": "f"},
		"arguments": []any{
			map[string]any{"type": "Identifier", "name": "a"},
			map[string]any{"type": "Identifier", "name": "b"},
		},
	})
	tmpl := Compute(o, q)
	found := false
	for _, c := range tmpl.Cuts {
		if c.Reason == ReasonChildArrayLength && c.Descr == "arguments" {
			found = true
			if c.Subst.Kind != SubstNodeArray || len(c.Subst.NodeArray) != 2 {
				t.Errorf("unexpected substitution: %+v", c.Subst)
			}
		}
	}
	if !found {
		t.Error("expected a child_array_length cut on 'arguments'")
	}
}
