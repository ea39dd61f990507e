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

package ast

import (
	"testing"

	"github.com/kannanvijayan-zz/ast-compress/schema"
)

func TestLiftMustProgram(t *testing.T) {
	raw := map[string]any{
		"type":       "Program",
		"sourceType": "script",
		"body": []any{
			map[string]any{"type": "Identifier", "name": "x"},
		},
	}
	n, err := LiftMust(raw, schema.ECMAScript)
	if err != nil {
		t.Fatal(err)
	}
	if n.Type.Name != "Program" {
		t.Fatalf("got %s", n.Type.Name)
	}
	if !Equal(n.Fields["sourceType"], String("script")) {
		t.Errorf("sourceType: got %v", n.Fields["sourceType"])
	}
	body := n.Children["body"]
	if body.Kind != ChildArray || len(body.Nodes) != 1 {
		t.Fatalf("body: got %v", body)
	}
	if body.Nodes[0].Parent.Parent != n || body.Nodes[0].Parent.Branch != "body" {
		t.Error("child's parent edge not stamped correctly")
	}
}

func TestLiftMustUnknownType(t *testing.T) {
	_, err := LiftMust(map[string]any{"type": "Nope"}, schema.ECMAScript)
	if _, ok := err.(*UnknownTypeError); !ok {
		t.Fatalf("got %T: %v", err, err)
	}
}

func TestLiftMustMissingField(t *testing.T) {
	_, err := LiftMust(map[string]any{"type": "Program", "body": []any{}}, schema.ECMAScript)
	if _, ok := err.(*MissingFieldError); !ok {
		t.Fatalf("got %T: %v", err, err)
	}
}

func TestLiftMustMissingBranch(t *testing.T) {
	_, err := LiftMust(map[string]any{"type": "Program", "sourceType": "script"}, schema.ECMAScript)
	if _, ok := err.(*MissingBranchError); !ok {
		t.Fatalf("got %T: %v", err, err)
	}
}

func TestLiftMustUnknownProperty(t *testing.T) {
	raw := map[string]any{
		"type":       "Program",
		"sourceType": "script",
		"body":       []any{},
		"bogus":      true,
	}
	_, err := LiftMust(raw, schema.ECMAScript)
	if _, ok := err.(*UnknownPropertyError); !ok {
		t.Fatalf("got %T: %v", err, err)
	}
}

func TestLiftMustArrayShapeMismatch(t *testing.T) {
	raw := map[string]any{"type": "Program", "sourceType": "script", "body": map[string]any{}}
	_, err := LiftMust(raw, schema.ECMAScript)
	if _, ok := err.(*ArrayShapeMismatchError); !ok {
		t.Fatalf("got %T: %v", err, err)
	}
}

func TestLiftMustOptionalBranchAbsent(t *testing.T) {
	raw := map[string]any{
		"type": "VariableDeclarator",
		"id":   map[string]any{"type": "Identifier", "name": "x"},
	}
	n, err := LiftMust(raw, schema.ECMAScript)
	if err != nil {
		t.Fatal(err)
	}
	if n.Children["init"].Kind != ChildNil {
		t.Errorf("init: got %v", n.Children["init"])
	}
}

func TestLiftSloppyFallsBackToUnknown(t *testing.T) {
	raw := map[string]any{
		"type": "JSXElement",
		"name": "div",
		"kids": []any{map[string]any{"type": "Identifier", "name": "y"}},
	}
	n := LiftSloppy(raw, schema.ECMAScript)
	if n.Type != schema.Unknown {
		t.Fatalf("got type %s", n.Type.Name)
	}
	if !Equal(n.Fields["name"], String("div")) {
		t.Errorf("name: got %v", n.Fields["name"])
	}
	kids := n.Children["kids"]
	if kids.Kind != ChildArray || len(kids.Nodes) != 1 {
		t.Fatalf("kids: got %v", kids)
	}
}

func TestLiftSloppyMissingRequiredIsSilent(t *testing.T) {
	n := LiftSloppy(map[string]any{"type": "Program"}, schema.ECMAScript)
	if n.Children["body"].Kind != ChildArray || len(n.Children["body"].Nodes) != 0 {
		t.Errorf("body: got %v", n.Children["body"])
	}
}
