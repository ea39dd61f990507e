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

import "fmt"

// UnknownTypeError is returned by LiftMust when a raw node's "type"
// property has no entry in the schema registry.
type UnknownTypeError struct {
	Type string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown node type %q", e.Type)
}

// MissingFieldError is returned when a required field descriptor has no
// corresponding raw property.
type MissingFieldError struct {
	Type, Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: missing required field %q", e.Type, e.Field)
}

// MissingBranchError is returned when a required branch descriptor has no
// corresponding raw property.
type MissingBranchError struct {
	Type, Branch string
}

func (e *MissingBranchError) Error() string {
	return fmt.Sprintf("%s: missing required branch %q", e.Type, e.Branch)
}

// UnknownPropertyError is returned by verify when a raw property is
// neither "type", "range", "loc", nor a declared field/branch name.
type UnknownPropertyError struct {
	Type, Property string
}

func (e *UnknownPropertyError) Error() string {
	return fmt.Sprintf("%s: unknown property %q", e.Type, e.Property)
}

// ArrayShapeMismatchError is returned when a raw property disagrees with
// its descriptor's Array flag.
type ArrayShapeMismatchError struct {
	Type, Name string
}

func (e *ArrayShapeMismatchError) Error() string {
	return fmt.Sprintf("%s: array-shape mismatch on %q", e.Type, e.Name)
}

// UnsupportedValueError is returned by FromAny when a raw dynamic value's
// Go type has no Value representation.
type UnsupportedValueError struct {
	Value any
}

func (e *UnsupportedValueError) Error() string {
	return fmt.Sprintf("unsupported raw value of type %T", e.Value)
}
