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

// Command astcompress lifts a raw JSON AST into the schema-typed tree and
// runs one or more diagnostic/compression modes over it: dumping the
// collected string table, the raw or lifted tree, a type-frequency
// listing, or the compressed byte stream.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/google/uuid"
	"sigs.k8s.io/yaml"

	"github.com/kannanvijayan-zz/ast-compress/ast"
	"github.com/kannanvijayan-zz/ast-compress/compress"
	"github.com/kannanvijayan-zz/ast-compress/schema"
	"github.com/kannanvijayan-zz/ast-compress/strtab"
)

func main() {
	var (
		tokens     = flag.Bool("tokens", false, "dump the collected string table and use counts")
		noTokens   = flag.Bool("no-tokens", false, "disable -tokens")
		dumpAST    = flag.Bool("ast", false, "dump the raw AST as parsed")
		noAST      = flag.Bool("no-ast", false, "disable -ast")
		lifted     = flag.Bool("lifted", false, "dump the lifted, schema-typed tree")
		noLifted   = flag.Bool("no-lifted", false, "disable -lifted")
		typeSorted = flag.Bool("type-sorted", false, "dump node-type counts, most frequent first")
		noTypeSort = flag.Bool("no-type-sorted", false, "disable -type-sorted")
		doCompress = flag.Bool("compress", false, "write the compressed byte stream to stdout")
		noCompress = flag.Bool("no-compress", false, "disable -compress")
	)
	flag.Parse()
	if *noTokens {
		*tokens = false
	}
	if *noAST {
		*dumpAST = false
	}
	if *noLifted {
		*lifted = false
	}
	if *noTypeSort {
		*typeSorted = false
	}
	if *noCompress {
		*doCompress = false
	}

	if !*tokens && !*dumpAST && !*lifted && !*typeSorted && !*doCompress {
		fmt.Fprintln(os.Stderr, "astcompress: no mode selected (use -tokens, -ast, -lifted, -type-sorted, or -compress)")
		os.Exit(1)
	}

	args := flag.Args()
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "astcompress: expected exactly one file argument")
		os.Exit(1)
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "astcompress: can't read %q: %s\n", args[0], err)
		os.Exit(1)
	}

	runID := uuid.New()

	// yaml.Unmarshal accepts plain JSON as well (JSON is a YAML subset),
	// so a fixture file may be written as either without a flag to say which.
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		fmt.Fprintf(os.Stderr, "astcompress[%s]: invalid AST document: %s\n", runID, err)
		os.Exit(1)
	}

	if *dumpAST {
		out, _ := json.MarshalIndent(raw, "", "  ")
		fmt.Fprintf(os.Stderr, "--- ast [%s] ---\n", runID)
		os.Stdout.Write(out)
		fmt.Fprintln(os.Stdout)
	}

	root, err := ast.LiftMust(raw, schema.ECMAScript)
	if err != nil {
		fmt.Fprintf(os.Stderr, "astcompress[%s]: lift: %s\n", runID, err)
		os.Exit(1)
	}
	ast.DepthFirstNumber(root)

	if *lifted {
		fmt.Fprintf(os.Stderr, "--- lifted [%s] ---\n", runID)
		dumpLifted(os.Stdout, root, 0)
	}

	if *typeSorted || *tokens {
		table := strtab.NewTable()
		strtab.Collect(root, table)
		table.Finalize()
		if *tokens {
			fmt.Fprintf(os.Stderr, "--- tokens [%s] ---\n", runID)
			printTokens(os.Stdout, table)
		}
		if *typeSorted {
			fmt.Fprintf(os.Stderr, "--- type-sorted [%s] ---\n", runID)
			printTypeCounts(os.Stdout, root)
		}
	}

	if *doCompress {
		out, err := compress.Compress(root)
		if err != nil {
			fmt.Fprintf(os.Stderr, "astcompress[%s]: compress: %s\n", runID, err)
			os.Exit(1)
		}
		if _, err := os.Stdout.Write(out); err != nil {
			fmt.Fprintf(os.Stderr, "astcompress[%s]: write: %s\n", runID, err)
			os.Exit(1)
		}
	}
}

func dumpLifted(w *os.File, n *ast.Node, depth int) {
	indent := ""
	for i := 0; i < depth; i++ {
		indent += "  "
	}
	fmt.Fprintf(w, "%s%s #%d\n", indent, n.Type.Name, n.Attrs.Number)
	for _, name := range n.BranchNames() {
		slot := n.Children[name]
		switch slot.Kind {
		case ast.ChildSingle:
			fmt.Fprintf(w, "%s  .%s:\n", indent, name)
			dumpLifted(w, slot.Node, depth+2)
		case ast.ChildArray:
			fmt.Fprintf(w, "%s  .%s[%d]:\n", indent, name, len(slot.Nodes))
			for _, c := range slot.Nodes {
				dumpLifted(w, c, depth+2)
			}
		}
	}
}

func printTokens(w *os.File, table *strtab.Table) {
	counts := table.UseCounts()
	for i, s := range table.Strings() {
		fmt.Fprintf(w, "%d\t%d\t%s\n", i, counts[s], s)
	}
}

func printTypeCounts(w *os.File, root *ast.Node) {
	counts := map[string]int{}
	var walk func(n *ast.Node)
	walk = func(n *ast.Node) {
		counts[n.Type.Name]++
		for _, name := range n.BranchNames() {
			slot := n.Children[name]
			switch slot.Kind {
			case ast.ChildSingle:
				walk(slot.Node)
			case ast.ChildArray:
				for _, c := range slot.Nodes {
					walk(c)
				}
			}
		}
	}
	walk(root)

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})
	for _, name := range names {
		fmt.Fprintf(w, "%d\t%s\n", counts[name], name)
	}
}
