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
	"fmt"

	"github.com/kannanvijayan-zz/ast-compress/schema"
)

// metaProperties are raw properties every node is allowed to carry but
// that never bind to a field or branch.
var metaProperties = map[string]bool{"type": true, "range": true, "loc": true}

// LiftMust promotes a raw untyped node object into a typed, schema-
// validated Node. It fails with *UnknownTypeError if reg has no entry for
// raw["type"], and recursively lifts children.
func LiftMust(raw map[string]any, reg *schema.Registry) (*Node, error) {
	typeName, _ := raw["type"].(string)
	t, ok := reg.Lookup(typeName)
	if !ok {
		return nil, &UnknownTypeError{Type: typeName}
	}
	n := NewNode(t)
	if err := fillFields(n, raw, t); err != nil {
		return nil, err
	}
	if err := fillBranches(n, raw, t, reg); err != nil {
		return nil, err
	}
	if err := verify(raw, t); err != nil {
		return nil, err
	}
	return n, nil
}

func fillFields(n *Node, raw map[string]any, t *schema.Type) error {
	for _, fd := range t.Fields {
		if fd.Deleted {
			continue
		}
		val, exists := raw[fd.Name]
		if !exists {
			if fd.Optional {
				continue
			}
			return &MissingFieldError{Type: t.Name, Field: fd.Name}
		}
		_, isArr := val.([]any)
		if fd.Array != isArr {
			return &ArrayShapeMismatchError{Type: t.Name, Name: fd.Name}
		}
		v, err := FromAny(val)
		if err != nil {
			return fmt.Errorf("%s.%s: %w", t.Name, fd.Name, err)
		}
		n.Fields[fd.Name] = v
	}
	return nil
}

func fillBranches(n *Node, raw map[string]any, t *schema.Type, reg *schema.Registry) error {
	for _, bd := range t.Branches {
		if bd.Deleted {
			continue
		}
		val, exists := raw[bd.Name]
		if bd.Array {
			if !exists {
				if bd.Optional {
					n.setChild(bd.Name, bd.Name, ChildSlot{Kind: ChildArray})
					continue
				}
				return &MissingBranchError{Type: t.Name, Branch: bd.Name}
			}
			arr, isArr := val.([]any)
			if !isArr {
				return &ArrayShapeMismatchError{Type: t.Name, Name: bd.Name}
			}
			nodes := make([]*Node, len(arr))
			for i, e := range arr {
				em, ok := e.(map[string]any)
				if !ok {
					return fmt.Errorf("%s.%s[%d]: missing element", t.Name, bd.Name, i)
				}
				cn, err := LiftMust(em, reg)
				if err != nil {
					return err
				}
				nodes[i] = cn
			}
			n.setChild(bd.Name, bd.Name, ChildSlot{Kind: ChildArray, Nodes: nodes})
			continue
		}
		// single-child branch
		if !exists || val == nil {
			if bd.Optional {
				n.setChild(bd.Name, bd.Name, ChildSlot{Kind: ChildNil})
				continue
			}
			return &MissingBranchError{Type: t.Name, Branch: bd.Name}
		}
		if _, isArr := val.([]any); isArr {
			return &ArrayShapeMismatchError{Type: t.Name, Name: bd.Name}
		}
		cm, ok := val.(map[string]any)
		if !ok {
			return fmt.Errorf("%s.%s: not a node object", t.Name, bd.Name)
		}
		cn, err := LiftMust(cm, reg)
		if err != nil {
			return err
		}
		n.setChild(bd.Name, bd.Name, ChildSlot{Kind: ChildSingle, Node: cn})
	}
	return nil
}

// verify rejects any raw property that is neither a meta property nor a
// known (possibly deleted) field/branch name of t.
func verify(raw map[string]any, t *schema.Type) error {
	for name := range raw {
		if metaProperties[name] {
			continue
		}
		known := false
		for _, fd := range t.Fields {
			if fd.Name == name {
				known = true
				break
			}
		}
		if !known {
			for _, bd := range t.Branches {
				if bd.Name == name {
					known = true
					break
				}
			}
		}
		if !known {
			return &UnknownPropertyError{Type: t.Name, Property: name}
		}
	}
	return nil
}

// LiftSloppy promotes a raw node object without verification: unknown
// raw types fall back to schema.Unknown, missing required fields/branches
// are silently skipped, and unrecognized raw properties under a known
// type are ignored rather than rejected.
func LiftSloppy(raw map[string]any, reg *schema.Registry) *Node {
	typeName, _ := raw["type"].(string)
	t, ok := reg.Lookup(typeName)
	if !ok {
		return liftUnknown(raw, reg)
	}
	n := NewNode(t)
	for _, fd := range t.Fields {
		if fd.Deleted {
			continue
		}
		if val, exists := raw[fd.Name]; exists {
			if v, err := FromAny(val); err == nil {
				n.Fields[fd.Name] = v
			}
		}
	}
	for _, bd := range t.Branches {
		if bd.Deleted {
			continue
		}
		val, exists := raw[bd.Name]
		if bd.Array {
			arr, isArr := val.([]any)
			if exists && isArr {
				nodes := make([]*Node, 0, len(arr))
				for _, e := range arr {
					if em, ok := e.(map[string]any); ok {
						nodes = append(nodes, LiftSloppy(em, reg))
					}
				}
				n.setChild(bd.Name, bd.Name, ChildSlot{Kind: ChildArray, Nodes: nodes})
			} else {
				n.setChild(bd.Name, bd.Name, ChildSlot{Kind: ChildArray})
			}
			continue
		}
		if exists && val != nil {
			if cm, ok := val.(map[string]any); ok {
				n.setChild(bd.Name, bd.Name, ChildSlot{Kind: ChildSingle, Node: LiftSloppy(cm, reg)})
				continue
			}
		}
		n.setChild(bd.Name, bd.Name, ChildSlot{Kind: ChildNil})
	}
	return n
}

func liftUnknown(raw map[string]any, reg *schema.Registry) *Node {
	n := NewNode(schema.Unknown)
	for name, val := range raw {
		if metaProperties[name] {
			continue
		}
		switch x := val.(type) {
		case map[string]any:
			n.setChild(name, name, ChildSlot{Kind: ChildSingle, Node: LiftSloppy(x, reg)})
		case []any:
			if len(x) > 0 {
				if _, ok := x[0].(map[string]any); ok {
					nodes := make([]*Node, 0, len(x))
					for _, e := range x {
						if em, ok := e.(map[string]any); ok {
							nodes = append(nodes, LiftSloppy(em, reg))
						}
					}
					n.setChild(name, name, ChildSlot{Kind: ChildArray, Nodes: nodes})
					continue
				}
			}
			if v, err := FromAny(val); err == nil {
				n.Fields[name] = v
			}
		default:
			if v, err := FromAny(val); err == nil {
				n.Fields[name] = v
			}
		}
	}
	return n
}
