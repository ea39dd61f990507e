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

package schema

// ECMAScript is the built-in registry covering the common node set
// produced by an ESTree-shaped JavaScript parser (Acorn, Esprima, ...).
//
// Codes are assigned in declaration order starting one above
// FirstNodeTypeCode (which Unknown holds) and are wire-stable: do not reorder this table without a format bump.
var ECMAScript = buildECMAScript()

func buildECMAScript() *Registry {
	code := FirstNodeTypeCode + 1 // FirstNodeTypeCode itself is Unknown's code
	next := func() int {
		c := code
		code++
		return c
	}
	t := func(name, alias string, fields []Field, branches []Branch) *Type {
		return &Type{Name: name, Alias: alias, Code: next(), Fields: fields, Branches: branches}
	}
	f := func(name string) Field { return Field{Name: name} }
	fo := func(name string) Field { return Field{Name: name, Optional: true} }
	b := func(name string) Branch { return Branch{Name: name} }
	bo := func(name string) Branch { return Branch{Name: name, Optional: true} }
	ba := func(name string) Branch { return Branch{Name: name, Array: true} }

	r := NewRegistry(
		t("Program", "Prog", []Field{f("sourceType")}, []Branch{ba("body")}),
		t("Identifier", "Id", []Field{f("name")}, nil),
		t("Literal", "Lit", []Field{f("value"), fo("raw")}, nil),
		t("CallExpression", "Call", nil, []Branch{b("callee"), ba("arguments")}),
		t("MemberExpression", "Mem", []Field{f("computed")}, []Branch{b("object"), b("property")}),
		t("VariableDeclaration", "VarDecl", []Field{f("kind")}, []Branch{ba("declarations")}),
		t("VariableDeclarator", "VarDeclor", nil, []Branch{b("id"), bo("init")}),
		t("FunctionDeclaration", "FnDecl", []Field{f("generator"), f("async")}, []Branch{bo("id"), ba("params"), b("body")}),
		t("BlockStatement", "Block", nil, []Branch{ba("body")}),
		t("BinaryExpression", "BinExpr", []Field{f("operator")}, []Branch{b("left"), b("right")}),

		// Supplemented beyond spec.md's illustrative list (see SPEC_FULL.md §6).
		t("ArrayExpression", "ArrExpr", nil, []Branch{ba("elements")}),
		t("ObjectExpression", "ObjExpr", nil, []Branch{ba("properties")}),
		t("Property", "Prop", []Field{f("computed"), f("shorthand"), f("kind")}, []Branch{b("key"), b("value")}),
		t("ConditionalExpression", "CondExpr", nil, []Branch{b("test"), b("consequent"), b("alternate")}),
		t("LogicalExpression", "LogExpr", []Field{f("operator")}, []Branch{b("left"), b("right")}),
		t("UnaryExpression", "UnExpr", []Field{f("operator"), f("prefix")}, []Branch{b("argument")}),
		t("UpdateExpression", "UpdExpr", []Field{f("operator"), f("prefix")}, []Branch{b("argument")}),
		t("AssignmentExpression", "AssignExpr", []Field{f("operator")}, []Branch{b("left"), b("right")}),
		t("SequenceExpression", "SeqExpr", nil, []Branch{ba("expressions")}),
		t("NewExpression", "NewExpr", nil, []Branch{b("callee"), ba("arguments")}),
		t("ThisExpression", "This", nil, nil),
		t("ArrowFunctionExpression", "ArrowFn", []Field{f("generator"), f("async"), f("expression")}, []Branch{ba("params"), b("body")}),
		t("TemplateLiteral", "TmplLit", nil, []Branch{ba("quasis"), ba("expressions")}),
		t("TemplateElement", "TmplElt", []Field{f("tail"), fo("cooked"), f("raw")}, nil),
		t("SpreadElement", "Spread", nil, []Branch{b("argument")}),
		t("IfStatement", "If", nil, []Branch{b("test"), b("consequent"), bo("alternate")}),
		t("ForStatement", "For", nil, []Branch{bo("init"), bo("test"), bo("update"), b("body")}),
		t("ForInStatement", "ForIn", nil, []Branch{b("left"), b("right"), b("body")}),
		t("WhileStatement", "While", nil, []Branch{b("test"), b("body")}),
		t("ReturnStatement", "Return", nil, []Branch{bo("argument")}),
		t("ThrowStatement", "Throw", nil, []Branch{b("argument")}),
		t("TryStatement", "Try", nil, []Branch{b("block"), bo("handler"), bo("finalizer")}),
		t("CatchClause", "Catch", nil, []Branch{bo("param"), b("body")}),
		t("SwitchStatement", "Switch", nil, []Branch{b("discriminant"), ba("cases")}),
		t("SwitchCase", "Case", nil, []Branch{bo("test"), ba("consequent")}),
		t("BreakStatement", "Break", nil, []Branch{bo("label")}),
		t("ContinueStatement", "Continue", nil, []Branch{bo("label")}),
		t("LabeledStatement", "Labeled", nil, []Branch{b("label"), b("body")}),
		t("ExpressionStatement", "ExprStmt", nil, []Branch{b("expression")}),
		t("EmptyStatement", "Empty", nil, nil),
	)
	return r
}
