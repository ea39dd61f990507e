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

package strtab

import "testing"

func TestFinalizeRanksByDescendingUseCount(t *testing.T) {
	tbl := NewTable()
	tbl.Add("rare")
	tbl.Add("common")
	tbl.Add("common")
	tbl.Add("common")
	tbl.Add("mid")
	tbl.Add("mid")
	tbl.Finalize()

	strs := tbl.Strings()
	if len(strs) != 3 {
		t.Fatalf("got %v", strs)
	}
	if strs[0] != "common" || strs[1] != "mid" || strs[2] != "rare" {
		t.Errorf("got %v, want [common mid rare]", strs)
	}

	ids := map[string]uint32{}
	for id, s := range strs {
		ids[s] = uint32(id)
	}
	counts := tbl.UseCounts()
	for a := range ids {
		for b := range ids {
			if counts[a] > counts[b] && ids[a] >= ids[b] {
				t.Errorf("rank(%s)=%d should be < rank(%s)=%d (counts %d > %d)", a, ids[a], b, ids[b], counts[a], counts[b])
			}
		}
	}
}

func TestFinalizeTiesBrokenByInsertionOrder(t *testing.T) {
	tbl := NewTable()
	tbl.Add("first")
	tbl.Add("second")
	tbl.Finalize()
	strs := tbl.Strings()
	if strs[0] != "first" || strs[1] != "second" {
		t.Errorf("got %v, want insertion order on ties", strs)
	}
}

func TestAddIdentifierFiltersShort(t *testing.T) {
	tbl := NewTable()
	tbl.AddIdentifier("x")
	tbl.AddIdentifier("ab")
	tbl.Finalize()
	if tbl.Len() != 1 {
		t.Fatalf("got %d entries, want 1", tbl.Len())
	}
	if _, err := tbl.Lookup("x"); err == nil {
		t.Error("single-character identifier should not have been added")
	}
	if _, err := tbl.Lookup("ab"); err != nil {
		t.Error(err)
	}
}

func TestLookupUnknownString(t *testing.T) {
	tbl := NewTable()
	tbl.Add("known")
	tbl.Finalize()
	if _, err := tbl.Lookup("unknown"); err == nil {
		t.Fatal("expected ErrUnknownString")
	}
}

func TestAddAfterFinalizePanics(t *testing.T) {
	tbl := NewTable()
	tbl.Finalize()
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	tbl.Add("too late")
}
