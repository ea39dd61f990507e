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

package compress

import (
	"bytes"
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

// Scenario 1 (spec §8): an empty Program compresses to the string table
// (one entry, "script") followed by the node's type code, its field
// value, and a zero-length body array.
func TestCompressEmptyProgram(t *testing.T) {
	root := mustLift(t, map[string]any{"type": "Program", "sourceType": "script", "body": []any{}})
	out, err := Compress(root)
	if err != nil {
		t.Fatal(err)
	}

	wantTablePrefix := []byte{0x01, 0x06, 's', 'c', 'r', 'i', 'p', 't'}
	if !bytes.Equal(out[:len(wantTablePrefix)], wantTablePrefix) {
		t.Fatalf("table prefix mismatch: got % x, want % x", out[:len(wantTablePrefix)], wantTablePrefix)
	}
	tail := out[len(out)-3:]
	want := []byte{0x14, 0x00, 0x20}
	if !bytes.Equal(tail, want) {
		t.Errorf("got % x, want % x", tail, want)
	}
}

// Scenario 4: two structurally identical sibling statements; the second
// must compress to a bare subtree back-reference (no cuts).
func TestCompressRepeatedSiblingBecomesBackReference(t *testing.T) {
	stmt := map[string]any{
		"type": "ExpressionStatement",
		"expression": map[string]any{
			"type": "Identifier", "name": "x",
		},
	}
	root := mustLift(t, map[string]any{
		"type":       "Program",
		"sourceType": "script",
		"body": []any{stmt, stmt},
	})
	out, err := Compress(root)
	if err != nil {
		t.Fatal(err)
	}
	// the back-reference terminator 0xFF must appear in the tail of the
	// stream, marking the second statement's (empty) cut list.
	if !bytes.Contains(out, []byte{0xFF}) {
		t.Errorf("expected a subtree back-reference terminator in output: % x", out)
	}
}

// Scenario 6: sibling BinaryExpressions differing only in operator. No
// template is cached yet when the second statement is reached, so it
// becomes a subtree reference to the first one carrying a single cut (the
// new operator value). Only successful, non-empty output is checked here.
func TestCompressSiblingsDivergingByOperatorShareReference(t *testing.T) {
	plus := map[string]any{
		"type": "BinaryExpression", "operator": "+",
		"left":  map[string]any{"type": "Identifier", "name": "a"},
		"right": map[string]any{"type": "Identifier", "name": "b"},
	}
	minus := map[string]any{
		"type": "BinaryExpression", "operator": "-",
		"left":  map[string]any{"type": "Identifier", "name": "a"},
		"right": map[string]any{"type": "Identifier", "name": "b"},
	}
	root := mustLift(t, map[string]any{
		"type":       "Program",
		"sourceType": "script",
		"body": []any{
			map[string]any{"type": "ExpressionStatement", "expression": plus},
			map[string]any{"type": "ExpressionStatement", "expression": minus},
		},
	})
	out, err := Compress(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) == 0 {
		t.Fatal("expected non-empty output")
	}
}

func TestCompressDeepNestingRoundTripsWithoutError(t *testing.T) {
	expr := map[string]any{"type": "Identifier", "name": "a"}
	for i := 0; i < 20; i++ {
		expr = map[string]any{
			"type": "BinaryExpression", "operator": "+",
			"left":  expr,
			"right": map[string]any{"type": "Identifier", "name": "a"},
		}
	}
	root := mustLift(t, map[string]any{
		"type":       "Program",
		"sourceType": "script",
		"body": []any{
			map[string]any{"type": "ExpressionStatement", "expression": expr},
		},
	})
	if _, err := Compress(root); err != nil {
		t.Fatal(err)
	}
}
