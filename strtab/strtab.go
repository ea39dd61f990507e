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

// Package strtab implements the frequency-ranked string table (§3, §4.3):
// an append-only multiset during collection, snapshotted into a
// descending-use-count ranking by Finalize.
package strtab

import (
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// ErrUnknownString is returned by Lookup for a string that was never
// added before Finalize.
type ErrUnknownString struct {
	Value string
}

func (e *ErrUnknownString) Error() string {
	return fmt.Sprintf("strtab: unknown string %q", e.Value)
}

// Table is a two-phase string table: Add/AddValueRecursive/AddIdentifier
// during collection, then Finalize assigns ranks, after which only
// Lookup is valid.
type Table struct {
	counts    map[string]int
	order     []string // first-seen order, for tie-breaking
	seen      map[string]bool
	ranked    []string
	idOf      map[string]uint32
	finalized bool
}

// NewTable returns an empty Table ready for collection.
func NewTable() *Table {
	return &Table{
		counts: make(map[string]int),
		seen:   make(map[string]bool),
	}
}

// Add bumps the use-count of s. It panics if called after Finalize.
func (t *Table) Add(s string) {
	if t.finalized {
		panic("strtab: Add called after Finalize")
	}
	if !t.seen[s] {
		t.seen[s] = true
		t.order = append(t.order, s)
	}
	t.counts[s]++
}

// AddIdentifier adds s only if it has length >= 2; single-character
// identifiers are inlined by the wire encoder and never enter the table.
func (t *Table) AddIdentifier(s string) {
	if len(s) >= 2 {
		t.Add(s)
	}
}

// Finalize snapshots the collected keys into rank order: descending
// use-count, ties broken by first-seen (insertion) order. No further Add
// calls are permitted afterward.
func (t *Table) Finalize() {
	if t.finalized {
		return
	}
	ranked := append([]string(nil), t.order...)
	slices.SortStableFunc(ranked, func(a, b string) bool {
		return t.counts[a] > t.counts[b]
	})
	t.ranked = ranked
	t.idOf = make(map[string]uint32, len(ranked))
	for i, s := range ranked {
		t.idOf[s] = uint32(i)
	}
	t.finalized = true
}

// Lookup returns the rank id assigned to s. It fails with *ErrUnknownString
// if s was never added before Finalize, or if Finalize has not yet run.
func (t *Table) Lookup(s string) (uint32, error) {
	if !t.finalized {
		return 0, &ErrUnknownString{Value: s}
	}
	id, ok := t.idOf[s]
	if !ok {
		return 0, &ErrUnknownString{Value: s}
	}
	return id, nil
}

// Strings returns the finalized strings in rank order (id == index).
func (t *Table) Strings() []string {
	return t.ranked
}

// Len returns the number of distinct strings collected.
func (t *Table) Len() int {
	if t.finalized {
		return len(t.ranked)
	}
	return len(t.order)
}

// UseCounts returns a snapshot of the current use-count map, keyed by
// string. Exposed for diagnostics (the CLI's --tokens mode) and tests.
func (t *Table) UseCounts() map[string]int {
	return maps.Clone(t.counts)
}
