package signature

import "github.com/ludo-technologies/sicilian/internal/ast"

// Hand-built AST fragments for engine tests. These tests construct the
// tree shape directly instead of parsing source text, so the exact node
// layout each test feeds the engine is spelled out in the test.

func ident(name string) *ast.Node {
	n := ast.NewNode(ast.NodeIdentifier)
	n.Set("name", name)
	return n
}

func numLit(v float64) *ast.Node {
	n := ast.NewNode(ast.NodeLiteral)
	n.Set("value", v)
	return n
}

func binExpr(op string, left, right *ast.Node) *ast.Node {
	n := ast.NewNode(ast.NodeBinaryExpression)
	n.Set("operator", op)
	n.SetChild("left", left)
	n.SetChild("right", right)
	return n
}

func varDeclarator(id, init *ast.Node) *ast.Node {
	n := ast.NewNode(ast.NodeVariableDeclarator)
	n.SetChild("id", id)
	n.SetChild("init", init)
	return n
}

func varDeclaration(kind string, decls ...*ast.Node) *ast.Node {
	n := ast.NewNode(ast.NodeVariableDeclaration)
	n.Set("kind", kind)
	n.SetChildren("declarations", decls)
	return n
}

func exprStmt(expr *ast.Node) *ast.Node {
	n := ast.NewNode(ast.NodeExpressionStatement)
	n.SetChild("expression", expr)
	return n
}

func returnStmt(arg *ast.Node) *ast.Node {
	n := ast.NewNode(ast.NodeReturnStatement)
	n.SetChild("argument", arg)
	return n
}

// funcDecl builds a FunctionDeclaration whose `body` field is the
// statement sequence directly (matching how the node injector reads
// it: buildFunctionStructure does `n.Children("body")`, not a nested
// BlockStatement).
func funcDecl(name string, params []*ast.Node, body ...*ast.Node) *ast.Node {
	n := ast.NewNode(ast.NodeFunctionDeclaration)
	n.SetChild("id", ident(name))
	n.SetChildren("params", params)
	n.SetChildren("body", body)
	return n
}

func property(key, value *ast.Node) *ast.Node {
	n := ast.NewNode(ast.NodeProperty)
	n.SetChild("key", key)
	n.SetChild("value", value)
	return n
}

func objExpr(props ...*ast.Node) *ast.Node {
	n := ast.NewNode(ast.NodeObjectExpression)
	n.SetChildren("properties", props)
	return n
}

func program(body ...*ast.Node) *ast.Node {
	n := ast.NewNode(ast.NodeProgram)
	n.SetChildren("body", body)
	return n
}
