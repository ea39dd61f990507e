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

import "golang.org/x/exp/slices"

// ValueKind tags the dynamic type carried by a Value.
type ValueKind uint8

const (
	KindNull ValueKind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindArray
	KindMap
)

// Value is a field value: null, boolean, integer, finite non-integer
// number, string, or a homogeneous array/map of values (§3). It is
// modeled as an explicit sum rather than an untyped `any`, per the design
// note in spec.md §9.
type Value struct {
	Kind ValueKind
	B    bool
	I    int64
	F    float64
	S    string
	A    []Value
	M    map[string]Value
}

func Null() Value           { return Value{Kind: KindNull} }
func Bool(b bool) Value     { return Value{Kind: KindBool, B: b} }
func Int(i int64) Value     { return Value{Kind: KindInt, I: i} }
func Float(f float64) Value { return Value{Kind: KindFloat, F: f} }
func String(s string) Value { return Value{Kind: KindString, S: s} }
func Array(a []Value) Value { return Value{Kind: KindArray, A: a} }
func Map(m map[string]Value) Value { return Value{Kind: KindMap, M: m} }

// IsNull reports whether v is the null value.
func (v Value) IsNull() bool { return v.Kind == KindNull }

// Equal reports structural equality between two values: primitive
// equality for scalars, recursive equality for arrays/maps with
// sorted-key comparison for maps, null-null equal, null-nonnull unequal
// (§4.4 step 4).
func Equal(a, b Value) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindNull:
		return true
	case KindBool:
		return a.B == b.B
	case KindInt:
		return a.I == b.I
	case KindFloat:
		return a.F == b.F
	case KindString:
		return a.S == b.S
	case KindArray:
		if len(a.A) != len(b.A) {
			return false
		}
		for i := range a.A {
			if !Equal(a.A[i], b.A[i]) {
				return false
			}
		}
		return true
	case KindMap:
		if len(a.M) != len(b.M) {
			return false
		}
		akeys := make([]string, 0, len(a.M))
		for k := range a.M {
			akeys = append(akeys, k)
		}
		slices.Sort(akeys)
		for _, k := range akeys {
			bv, ok := b.M[k]
			if !ok || !Equal(a.M[k], bv) {
				return false
			}
		}
		return true
	}
	return false
}

// FromAny converts a parser-produced dynamic value (as decoded from JSON:
// nil, bool, float64/int64/string, []any, map[string]any) into a Value.
// Unsupported dynamic types are reported via the returned error so that
// lifting can surface them as a field error rather than panicking.
func FromAny(v any) (Value, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(x), nil
	case int:
		return Int(int64(x)), nil
	case int64:
		return Int(x), nil
	case float64:
		if x == float64(int64(x)) {
			return Int(int64(x)), nil
		}
		return Float(x), nil
	case string:
		return String(x), nil
	case []any:
		out := make([]Value, len(x))
		for i, e := range x {
			cv, err := FromAny(e)
			if err != nil {
				return Value{}, err
			}
			out[i] = cv
		}
		return Array(out), nil
	case map[string]any:
		out := make(map[string]Value, len(x))
		for k, e := range x {
			cv, err := FromAny(e)
			if err != nil {
				return Value{}, err
			}
			out[k] = cv
		}
		return Map(out), nil
	default:
		return Value{}, &UnsupportedValueError{Value: v}
	}
}
