package parser

import (
	"strconv"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/ludo-technologies/sicilian/internal/ast"
)

// builder converts a tree-sitter concrete syntax tree into the engine's
// internal/ast.Node shape, mirroring a tree-sitter CST-to-AST builder,
// generalized to emit a single generic Node type instead of a
// struct with one field per ESTree production.
type builder struct {
	filename string
	source   []byte
}

func newBuilder(filename string, source []byte) *builder {
	return &builder{filename: filename, source: source}
}

func (b *builder) build(tsNode *sitter.Node) *ast.Node {
	return b.node(tsNode)
}

func (b *builder) node(tsNode *sitter.Node) *ast.Node {
	if tsNode == nil {
		return nil
	}
	switch tsNode.Type() {
	case "program":
		return b.program(tsNode)
	case "function_declaration", "function", "generator_function_declaration":
		return b.functionDeclaration(tsNode)
	case "arrow_function":
		return b.arrowFunction(tsNode)
	case "function_expression":
		n := b.functionDeclaration(tsNode)
		n.Type = ast.NodeFunctionExpression
		return n
	case "statement_block":
		return b.blockStatement(tsNode)
	case "if_statement":
		return b.ifStatement(tsNode)
	case "for_statement":
		return b.forStatement(tsNode)
	case "for_in_statement":
		return b.forInOrOf(tsNode)
	case "while_statement":
		return b.whileStatement(tsNode)
	case "do_statement":
		return b.doWhileStatement(tsNode)
	case "return_statement":
		return b.argumentStatement(tsNode, ast.NodeReturnStatement, "return")
	case "throw_statement":
		return b.argumentStatement(tsNode, ast.NodeThrowStatement, "throw")
	case "break_statement":
		return ast.NewNode(ast.NodeBreakStatement)
	case "continue_statement":
		return ast.NewNode(ast.NodeContinueStatement)
	case "empty_statement":
		return ast.NewNode(ast.NodeEmptyStatement)
	case "labeled_statement":
		return b.labeledStatement(tsNode)
	case "try_statement":
		return b.tryStatement(tsNode)
	case "catch_clause":
		return b.catchClause(tsNode)
	case "switch_statement":
		return b.switchStatement(tsNode)
	case "switch_case", "switch_default":
		return b.switchCase(tsNode)
	case "variable_declaration", "lexical_declaration":
		return b.variableDeclaration(tsNode)
	case "variable_declarator":
		return b.variableDeclarator(tsNode)
	case "expression_statement":
		return b.expressionStatement(tsNode)
	case "call_expression":
		return b.callExpression(tsNode)
	case "new_expression":
		return b.newExpression(tsNode)
	case "member_expression", "subscript_expression":
		return b.memberExpression(tsNode)
	case "binary_expression":
		return b.binaryExpression(tsNode)
	case "unary_expression":
		return b.unaryExpression(tsNode)
	case "update_expression":
		return b.updateExpression(tsNode)
	case "assignment_expression":
		return b.assignmentExpression(tsNode)
	case "ternary_expression":
		return b.conditionalExpression(tsNode)
	case "sequence_expression":
		return b.sequenceExpression(tsNode)
	case "await_expression":
		return b.wrapped(tsNode, ast.NodeAwaitExpression)
	case "yield_expression":
		return b.wrapped(tsNode, ast.NodeYieldExpression)
	case "spread_element":
		return b.wrapped(tsNode, ast.NodeSpreadElement)
	case "parenthesized_expression":
		return b.firstNamedChild(tsNode)
	case "array":
		return b.arrayExpression(tsNode)
	case "object":
		return b.objectExpression(tsNode)
	case "pair", "pair_pattern":
		return b.property(tsNode)
	case "identifier", "property_identifier", "shorthand_property_identifier", "type_identifier":
		return b.identifier(tsNode)
	case "this":
		return ast.NewNode(ast.NodeThisExpression)
	case "string", "template_string":
		return b.literal(tsNode, tsNode.Content(b.source))
	case "number":
		return b.numberLiteral(tsNode)
	case "true":
		return b.literal(tsNode, true)
	case "false":
		return b.literal(tsNode, false)
	case "null", "undefined":
		return b.literal(tsNode, nil)
	default:
		return b.generic(tsNode)
	}
}

func (b *builder) loc(tsNode *sitter.Node) ast.Location {
	return ast.Location{
		File:      b.filename,
		StartLine: int(tsNode.StartPoint().Row) + 1,
		StartCol:  int(tsNode.StartPoint().Column),
		EndLine:   int(tsNode.EndPoint().Row) + 1,
		EndCol:    int(tsNode.EndPoint().Column),
	}
}

func (b *builder) field(tsNode *sitter.Node, name string) *sitter.Node {
	for i := 0; i < int(tsNode.ChildCount()); i++ {
		if child := tsNode.Child(i); child != nil && tsNode.FieldNameForChild(i) == name {
			return child
		}
	}
	return nil
}

func (b *builder) isTrivia(tsNode *sitter.Node) bool {
	switch tsNode.Type() {
	case "comment", "line_comment", "block_comment", "":
		return true
	}
	return !tsNode.IsNamed()
}

// namedChildren returns every direct named, non-trivia child, converted.
func (b *builder) namedChildren(tsNode *sitter.Node) []*ast.Node {
	var out []*ast.Node
	for i := 0; i < int(tsNode.ChildCount()); i++ {
		child := tsNode.Child(i)
		if child == nil || b.isTrivia(child) {
			continue
		}
		if n := b.node(child); n != nil {
			out = append(out, n)
		}
	}
	return out
}

func (b *builder) firstNamedChild(tsNode *sitter.Node) *ast.Node {
	for i := 0; i < int(tsNode.ChildCount()); i++ {
		if child := tsNode.Child(i); child != nil && !b.isTrivia(child) {
			return b.node(child)
		}
	}
	return nil
}

func (b *builder) program(tsNode *sitter.Node) *ast.Node {
	n := ast.NewNode(ast.NodeProgram)
	n.Location = b.loc(tsNode)
	n.SetChildren("body", b.namedChildren(tsNode))
	return n
}

// bodyStatements flattens a function's statement_block into a direct
// sequence, matching the injector's expectation that a
// FunctionDeclaration's "body" field is already the statement list:
// internal/injector.buildFunctionStructure reads n.Children("body")
// directly, not through a nested BlockStatement.
func (b *builder) bodyStatements(tsNode *sitter.Node) []*ast.Node {
	if tsNode == nil {
		return nil
	}
	if tsNode.Type() == "statement_block" {
		return b.namedChildren(tsNode)
	}
	if n := b.node(tsNode); n != nil {
		return []*ast.Node{n}
	}
	return nil
}

func (b *builder) params(tsNode *sitter.Node) []*ast.Node {
	if tsNode == nil {
		return nil
	}
	var out []*ast.Node
	for i := 0; i < int(tsNode.ChildCount()); i++ {
		child := tsNode.Child(i)
		if child == nil || b.isTrivia(child) {
			continue
		}
		if child.Type() == "assignment_pattern" {
			if left := b.field(child, "left"); left != nil {
				out = append(out, b.node(left))
				continue
			}
		}
		if n := b.node(child); n != nil {
			out = append(out, n)
		}
	}
	return out
}

func (b *builder) functionDeclaration(tsNode *sitter.Node) *ast.Node {
	n := ast.NewNode(ast.NodeFunctionDeclaration)
	n.Location = b.loc(tsNode)
	if name := b.field(tsNode, "name"); name != nil {
		n.SetChild("id", b.identifier(name))
	}
	n.SetChildren("params", b.params(b.field(tsNode, "parameters")))
	n.SetChildren("body", b.bodyStatements(b.field(tsNode, "body")))
	return n
}

func (b *builder) arrowFunction(tsNode *sitter.Node) *ast.Node {
	n := ast.NewNode(ast.NodeArrowFunction)
	n.Location = b.loc(tsNode)
	if p := b.field(tsNode, "parameter"); p != nil {
		n.SetChildren("params", []*ast.Node{b.node(p)})
	} else {
		n.SetChildren("params", b.params(b.field(tsNode, "parameters")))
	}
	n.SetChildren("body", b.bodyStatements(b.field(tsNode, "body")))
	return n
}

func (b *builder) blockStatement(tsNode *sitter.Node) *ast.Node {
	n := ast.NewNode(ast.NodeBlockStatement)
	n.Location = b.loc(tsNode)
	n.SetChildren("body", b.namedChildren(tsNode))
	return n
}

func (b *builder) ifStatement(tsNode *sitter.Node) *ast.Node {
	n := ast.NewNode(ast.NodeIfStatement)
	n.Location = b.loc(tsNode)
	n.SetChild("test", b.node(b.field(tsNode, "condition")))
	n.SetChild("consequent", b.node(b.field(tsNode, "consequence")))
	if alt := b.field(tsNode, "alternative"); alt != nil {
		n.SetChild("alternate", b.node(alt))
	}
	return n
}

func (b *builder) forStatement(tsNode *sitter.Node) *ast.Node {
	n := ast.NewNode(ast.NodeForStatement)
	n.Location = b.loc(tsNode)
	n.SetChild("init", b.node(b.field(tsNode, "initializer")))
	n.SetChild("test", b.node(b.field(tsNode, "condition")))
	n.SetChild("update", b.node(b.field(tsNode, "increment")))
	n.SetChild("body", b.node(b.field(tsNode, "body")))
	return n
}

func (b *builder) forInOrOf(tsNode *sitter.Node) *ast.Node {
	nodeType := ast.NodeForInStatement
	for i := 0; i < int(tsNode.ChildCount()); i++ {
		if child := tsNode.Child(i); child != nil && child.Type() == "of" {
			nodeType = ast.NodeForOfStatement
		}
	}
	n := ast.NewNode(nodeType)
	n.Location = b.loc(tsNode)
	n.SetChild("left", b.node(b.field(tsNode, "left")))
	n.SetChild("right", b.node(b.field(tsNode, "right")))
	n.SetChild("body", b.node(b.field(tsNode, "body")))
	return n
}

func (b *builder) whileStatement(tsNode *sitter.Node) *ast.Node {
	n := ast.NewNode(ast.NodeWhileStatement)
	n.Location = b.loc(tsNode)
	n.SetChild("test", b.node(b.field(tsNode, "condition")))
	n.SetChild("body", b.node(b.field(tsNode, "body")))
	return n
}

func (b *builder) doWhileStatement(tsNode *sitter.Node) *ast.Node {
	n := ast.NewNode(ast.NodeDoWhileStatement)
	n.Location = b.loc(tsNode)
	n.SetChild("body", b.node(b.field(tsNode, "body")))
	n.SetChild("test", b.node(b.field(tsNode, "condition")))
	return n
}

func (b *builder) argumentStatement(tsNode *sitter.Node, t ast.NodeType, skipKeyword string) *ast.Node {
	n := ast.NewNode(t)
	n.Location = b.loc(tsNode)
	for i := 0; i < int(tsNode.ChildCount()); i++ {
		child := tsNode.Child(i)
		if child == nil || b.isTrivia(child) || child.Type() == skipKeyword || child.Type() == ";" {
			continue
		}
		n.SetChild("argument", b.node(child))
		break
	}
	return n
}

func (b *builder) labeledStatement(tsNode *sitter.Node) *ast.Node {
	n := ast.NewNode(ast.NodeLabeledStatement)
	n.Location = b.loc(tsNode)
	if label := b.field(tsNode, "label"); label != nil {
		n.Set("label", label.Content(b.source))
	}
	if body := b.field(tsNode, "body"); body != nil {
		n.SetChild("body", b.node(body))
	}
	return n
}

func (b *builder) tryStatement(tsNode *sitter.Node) *ast.Node {
	n := ast.NewNode(ast.NodeTryStatement)
	n.Location = b.loc(tsNode)
	if block := b.field(tsNode, "body"); block != nil {
		n.SetChild("block", b.node(block))
	}
	if handler := b.field(tsNode, "handler"); handler != nil {
		n.SetChild("handler", b.node(handler))
	}
	if fin := b.field(tsNode, "finalizer"); fin != nil {
		n.SetChild("finalizer", b.node(fin))
	}
	return n
}

func (b *builder) catchClause(tsNode *sitter.Node) *ast.Node {
	n := ast.NewNode(ast.NodeCatchClause)
	n.Location = b.loc(tsNode)
	if param := b.field(tsNode, "parameter"); param != nil {
		n.SetChild("param", b.node(param))
	}
	if body := b.field(tsNode, "body"); body != nil {
		n.SetChild("body", b.node(body))
	}
	return n
}

func (b *builder) switchStatement(tsNode *sitter.Node) *ast.Node {
	n := ast.NewNode(ast.NodeSwitchStatement)
	n.Location = b.loc(tsNode)
	n.SetChild("discriminant", b.node(b.field(tsNode, "value")))
	var cases []*ast.Node
	if body := b.field(tsNode, "body"); body != nil {
		for i := 0; i < int(body.ChildCount()); i++ {
			child := body.Child(i)
			if child == nil {
				continue
			}
			if child.Type() == "switch_case" || child.Type() == "switch_default" {
				cases = append(cases, b.switchCase(child))
			}
		}
	}
	n.SetChildren("cases", cases)
	return n
}

func (b *builder) switchCase(tsNode *sitter.Node) *ast.Node {
	n := ast.NewNode(ast.NodeSwitchCase)
	n.Location = b.loc(tsNode)
	if test := b.field(tsNode, "value"); test != nil {
		n.SetChild("test", b.node(test))
	}
	var body []*ast.Node
	for i := 0; i < int(tsNode.ChildCount()); i++ {
		child := tsNode.Child(i)
		if child == nil || b.isTrivia(child) {
			continue
		}
		switch child.Type() {
		case "case", "default", ":":
			continue
		}
		if tsNode.FieldNameForChild(i) == "value" {
			continue
		}
		if n2 := b.node(child); n2 != nil {
			body = append(body, n2)
		}
	}
	n.SetChildren("consequent", body)
	return n
}

func (b *builder) variableDeclaration(tsNode *sitter.Node) *ast.Node {
	n := ast.NewNode(ast.NodeVariableDeclaration)
	n.Location = b.loc(tsNode)
	kind := "var"
	if tsNode.Type() == "lexical_declaration" && tsNode.ChildCount() > 0 {
		if first := tsNode.Child(0); first != nil {
			if c := first.Content(b.source); c == "let" || c == "const" {
				kind = c
			}
		}
	}
	n.Set("kind", kind)
	var decls []*ast.Node
	for i := 0; i < int(tsNode.ChildCount()); i++ {
		if child := tsNode.Child(i); child != nil && child.Type() == "variable_declarator" {
			decls = append(decls, b.variableDeclarator(child))
		}
	}
	n.SetChildren("declarations", decls)
	return n
}

func (b *builder) variableDeclarator(tsNode *sitter.Node) *ast.Node {
	n := ast.NewNode(ast.NodeVariableDeclarator)
	n.Location = b.loc(tsNode)
	if name := b.field(tsNode, "name"); name != nil {
		n.SetChild("id", b.node(name))
	}
	if value := b.field(tsNode, "value"); value != nil {
		n.SetChild("init", b.node(value))
	}
	return n
}

func (b *builder) expressionStatement(tsNode *sitter.Node) *ast.Node {
	n := ast.NewNode(ast.NodeExpressionStatement)
	n.Location = b.loc(tsNode)
	for i := 0; i < int(tsNode.ChildCount()); i++ {
		child := tsNode.Child(i)
		if child != nil && !b.isTrivia(child) && child.Type() != ";" {
			n.SetChild("expression", b.node(child))
			break
		}
	}
	return n
}

func (b *builder) callExpression(tsNode *sitter.Node) *ast.Node {
	n := ast.NewNode(ast.NodeCallExpression)
	n.Location = b.loc(tsNode)
	n.SetChild("callee", b.node(b.field(tsNode, "function")))
	n.SetChildren("arguments", b.argumentsOf(b.field(tsNode, "arguments")))
	return n
}

func (b *builder) newExpression(tsNode *sitter.Node) *ast.Node {
	n := ast.NewNode(ast.NodeNewExpression)
	n.Location = b.loc(tsNode)
	n.SetChild("callee", b.node(b.field(tsNode, "constructor")))
	n.SetChildren("arguments", b.argumentsOf(b.field(tsNode, "arguments")))
	return n
}

func (b *builder) argumentsOf(argsNode *sitter.Node) []*ast.Node {
	if argsNode == nil {
		return nil
	}
	var out []*ast.Node
	for i := 0; i < int(argsNode.ChildCount()); i++ {
		child := argsNode.Child(i)
		if child == nil || b.isTrivia(child) {
			continue
		}
		switch child.Type() {
		case "(", ")", ",":
			continue
		}
		if n := b.node(child); n != nil {
			out = append(out, n)
		}
	}
	return out
}

func (b *builder) memberExpression(tsNode *sitter.Node) *ast.Node {
	n := ast.NewNode(ast.NodeMemberExpression)
	n.Location = b.loc(tsNode)
	n.SetChild("object", b.node(b.field(tsNode, "object")))
	if prop := b.field(tsNode, "property"); prop != nil {
		n.SetChild("property", b.identifier(prop))
		n.Set("computed", false)
	} else if idx := b.field(tsNode, "index"); idx != nil {
		n.SetChild("property", b.node(idx))
		n.Set("computed", true)
	}
	return n
}

func (b *builder) binaryExpression(tsNode *sitter.Node) *ast.Node {
	op := b.operatorOf(tsNode)
	t := ast.NodeBinaryExpression
	switch op {
	case "&&", "||", "??":
		t = ast.NodeLogicalExpression
	}
	n := ast.NewNode(t)
	n.Location = b.loc(tsNode)
	n.SetChild("left", b.node(b.field(tsNode, "left")))
	n.Set("operator", op)
	n.SetChild("right", b.node(b.field(tsNode, "right")))
	return n
}

func (b *builder) operatorOf(tsNode *sitter.Node) string {
	if opNode := b.field(tsNode, "operator"); opNode != nil {
		return opNode.Content(b.source)
	}
	for i := 0; i < int(tsNode.ChildCount()); i++ {
		if child := tsNode.Child(i); child != nil && isOperatorToken(child.Type()) {
			return child.Content(b.source)
		}
	}
	return ""
}

func (b *builder) unaryExpression(tsNode *sitter.Node) *ast.Node {
	n := ast.NewNode(ast.NodeUnaryExpression)
	n.Location = b.loc(tsNode)
	n.Set("operator", b.operatorOf(tsNode))
	n.SetChild("argument", b.node(b.field(tsNode, "argument")))
	return n
}

func (b *builder) updateExpression(tsNode *sitter.Node) *ast.Node {
	n := ast.NewNode(ast.NodeUpdateExpression)
	n.Location = b.loc(tsNode)
	n.Set("operator", b.operatorOf(tsNode))
	n.SetChild("argument", b.node(b.field(tsNode, "argument")))
	prefix := false
	if tsNode.ChildCount() > 0 {
		if first := tsNode.Child(0); first != nil && isOperatorToken(first.Type()) {
			prefix = true
		}
	}
	n.Set("prefix", prefix)
	return n
}

func (b *builder) assignmentExpression(tsNode *sitter.Node) *ast.Node {
	n := ast.NewNode(ast.NodeAssignmentExpression)
	n.Location = b.loc(tsNode)
	n.SetChild("left", b.node(b.field(tsNode, "left")))
	n.Set("operator", b.operatorOf(tsNode))
	n.SetChild("right", b.node(b.field(tsNode, "right")))
	return n
}

func (b *builder) conditionalExpression(tsNode *sitter.Node) *ast.Node {
	n := ast.NewNode(ast.NodeConditionalExpression)
	n.Location = b.loc(tsNode)
	n.SetChild("test", b.node(b.field(tsNode, "condition")))
	n.SetChild("consequent", b.node(b.field(tsNode, "consequence")))
	n.SetChild("alternate", b.node(b.field(tsNode, "alternative")))
	return n
}

func (b *builder) sequenceExpression(tsNode *sitter.Node) *ast.Node {
	n := ast.NewNode(ast.NodeSequenceExpression)
	n.Location = b.loc(tsNode)
	n.SetChildren("expressions", b.namedChildren(tsNode))
	return n
}

func (b *builder) wrapped(tsNode *sitter.Node, t ast.NodeType) *ast.Node {
	n := ast.NewNode(t)
	n.Location = b.loc(tsNode)
	if arg := b.firstArgumentLike(tsNode); arg != nil {
		n.SetChild("argument", arg)
	}
	return n
}

func (b *builder) firstArgumentLike(tsNode *sitter.Node) *ast.Node {
	for i := 0; i < int(tsNode.ChildCount()); i++ {
		child := tsNode.Child(i)
		if child == nil || b.isTrivia(child) || isOperatorToken(child.Type()) {
			continue
		}
		switch child.Type() {
		case "await", "yield", "*":
			continue
		}
		return b.node(child)
	}
	return nil
}

func (b *builder) arrayExpression(tsNode *sitter.Node) *ast.Node {
	n := ast.NewNode(ast.NodeArrayExpression)
	n.Location = b.loc(tsNode)
	var elems []*ast.Node
	for i := 0; i < int(tsNode.ChildCount()); i++ {
		child := tsNode.Child(i)
		if child == nil || b.isTrivia(child) {
			continue
		}
		switch child.Type() {
		case "[", "]", ",":
			continue
		}
		if n2 := b.node(child); n2 != nil {
			elems = append(elems, n2)
		}
	}
	n.SetChildren("elements", elems)
	return n
}

func (b *builder) objectExpression(tsNode *sitter.Node) *ast.Node {
	n := ast.NewNode(ast.NodeObjectExpression)
	n.Location = b.loc(tsNode)
	var props []*ast.Node
	for i := 0; i < int(tsNode.ChildCount()); i++ {
		child := tsNode.Child(i)
		if child == nil || b.isTrivia(child) {
			continue
		}
		switch child.Type() {
		case "{", "}", ",":
			continue
		}
		props = append(props, b.node(child))
	}
	n.SetChildren("properties", props)
	return n
}

func (b *builder) property(tsNode *sitter.Node) *ast.Node {
	n := ast.NewNode(ast.NodeProperty)
	n.Location = b.loc(tsNode)
	if key := b.field(tsNode, "key"); key != nil {
		n.SetChild("key", b.node(key))
	}
	if value := b.field(tsNode, "value"); value != nil {
		n.SetChild("value", b.node(value))
	}
	return n
}

func (b *builder) identifier(tsNode *sitter.Node) *ast.Node {
	n := ast.NewNode(ast.NodeIdentifier)
	n.Location = b.loc(tsNode)
	n.Set("name", tsNode.Content(b.source))
	return n
}

func (b *builder) literal(tsNode *sitter.Node, value interface{}) *ast.Node {
	n := ast.NewNode(ast.NodeLiteral)
	n.Location = b.loc(tsNode)
	n.Set("value", value)
	n.Set("raw", tsNode.Content(b.source))
	return n
}

func (b *builder) numberLiteral(tsNode *sitter.Node) *ast.Node {
	raw := tsNode.Content(b.source)
	v, _ := strconv.ParseFloat(raw, 64)
	return b.literal(tsNode, v)
}

// generic handles any tree-sitter node type the builder has no direct
// mapping for: it carries the node's type through verbatim and folds
// every named child into a single "children" sequence. This keeps an
// unrecognized construct structurally present (and therefore
// signature-sensitive) instead of silently disappearing.
func (b *builder) generic(tsNode *sitter.Node) *ast.Node {
	n := ast.NewNode(ast.NodeType(tsNode.Type()))
	n.Location = b.loc(tsNode)
	n.SetChildren("children", b.namedChildren(tsNode))
	return n
}

func isOperatorToken(t string) bool {
	switch t {
	case "+", "-", "*", "/", "%", "**",
		"==", "!=", "===", "!==",
		"<", ">", "<=", ">=",
		"&&", "||", "??",
		"&", "|", "^", "~",
		"<<", ">>", ">>>",
		"!", "typeof", "void", "delete",
		"++", "--",
		"=", "+=", "-=", "*=", "/=", "%=", "**=",
		"&=", "|=", "^=", "<<=", ">>=", ">>>=", "&&=", "||=", "??=",
		"in", "instanceof", "of":
		return true
	}
	return false
}
