package signature

import (
	"errors"
	"testing"

	"github.com/ludo-technologies/sicilian/internal/annotator"
	"github.com/ludo-technologies/sicilian/internal/ast"
)

// funcWithLocal builds: function foo(x) { var <name> = x + 1; return <name>; }
func funcWithLocal(varName string) *ast.Node {
	return program(
		funcDecl("foo", []*ast.Node{ident("x")},
			varDeclaration("var", varDeclarator(ident(varName), binExpr("+", ident("x"), numLit(1)))),
			returnStmt(ident(varName)),
		),
	)
}

func TestRenameInvariance(t *testing.T) {
	a := funcWithLocal("a")
	b := funcWithLocal("total")

	sa, err := Compute(a, annotator.NonceModeDerived)
	if err != nil {
		t.Fatalf("compute a: %v", err)
	}
	sb, err := Compute(b, annotator.NonceModeDerived)
	if err != nil {
		t.Fatalf("compute b: %v", err)
	}
	if sa != sb {
		t.Fatalf("renaming a local variable changed the digest: %s != %s", sa, sb)
	}
}

func TestParameterRenameInvariance(t *testing.T) {
	a := program(
		funcDecl("foo", []*ast.Node{ident("x")},
			returnStmt(binExpr("+", ident("x"), numLit(1))),
		),
	)
	b := program(
		funcDecl("foo", []*ast.Node{ident("count")},
			returnStmt(binExpr("+", ident("count"), numLit(1))),
		),
	)

	sa, err := Compute(a, annotator.NonceModeDerived)
	if err != nil {
		t.Fatalf("compute a: %v", err)
	}
	sb, err := Compute(b, annotator.NonceModeDerived)
	if err != nil {
		t.Fatalf("compute b: %v", err)
	}
	if sa != sb {
		t.Fatalf("renaming a parameter changed the digest: %s != %s", sa, sb)
	}
}

func TestObjectPropertyReorderInvariance(t *testing.T) {
	a := program(
		exprStmt(objExpr(
			property(ident("a"), numLit(1)),
			property(ident("b"), numLit(2)),
		)),
	)
	b := program(
		exprStmt(objExpr(
			property(ident("b"), numLit(2)),
			property(ident("a"), numLit(1)),
		)),
	)

	sa, err := Compute(a, annotator.NonceModeDerived)
	if err != nil {
		t.Fatalf("compute a: %v", err)
	}
	sb, err := Compute(b, annotator.NonceModeDerived)
	if err != nil {
		t.Fatalf("compute b: %v", err)
	}
	if sa != sb {
		t.Fatalf("reordering object properties changed the digest: %s != %s", sa, sb)
	}
}

func TestArrayElementReorderChangesDigest(t *testing.T) {
	// Only ObjectExpression is unordered; array-shaped sequences (here,
	// two statements) must NOT be reorder-invariant.
	a := program(
		exprStmt(numLit(1)),
		exprStmt(numLit(2)),
	)
	b := program(
		exprStmt(numLit(2)),
		exprStmt(numLit(1)),
	)

	sa, err := Compute(a, annotator.NonceModeDerived)
	if err != nil {
		t.Fatalf("compute a: %v", err)
	}
	sb, err := Compute(b, annotator.NonceModeDerived)
	if err != nil {
		t.Fatalf("compute b: %v", err)
	}
	if sa == sb {
		t.Fatalf("reordering ordered statements did not change the digest")
	}
}

func TestLiteralChangeSensitivity(t *testing.T) {
	a := program(exprStmt(numLit(1)))
	b := program(exprStmt(numLit(2)))

	sa, _ := Compute(a, annotator.NonceModeDerived)
	sb, _ := Compute(b, annotator.NonceModeDerived)
	if sa == sb {
		t.Fatalf("changing a literal value did not change the digest")
	}
}

func TestOperatorChangeSensitivity(t *testing.T) {
	a := program(exprStmt(binExpr("+", ident("x"), ident("y"))))
	b := program(exprStmt(binExpr("-", ident("x"), ident("y"))))

	sa, _ := Compute(a, annotator.NonceModeDerived)
	sb, _ := Compute(b, annotator.NonceModeDerived)
	if sa == sb {
		t.Fatalf("changing an operator did not change the digest")
	}
}

func TestEmptyProgramIsStableAndDefined(t *testing.T) {
	a := program()
	b := program()

	sa, err := Compute(a, annotator.NonceModeDerived)
	if err != nil {
		t.Fatalf("compute a: %v", err)
	}
	sb, err := Compute(b, annotator.NonceModeDerived)
	if err != nil {
		t.Fatalf("compute b: %v", err)
	}
	if sa == "" {
		t.Fatalf("empty program produced an empty digest")
	}
	if sa != sb {
		t.Fatalf("two empty programs disagreed: %s != %s", sa, sb)
	}
}

func TestMalformedASTMissingID(t *testing.T) {
	bad := ast.NewNode(ast.NodeVariableDeclarator)
	bad.SetChild("init", numLit(1))
	root := program(varDeclaration("var", bad))

	_, err := Compute(root, annotator.NonceModeDerived)
	if !errors.Is(err, ErrMalformedAST) {
		t.Fatalf("expected ErrMalformedAST, got %v", err)
	}
}

func TestDistinctScopesWithSameNameDivergeByPosition(t *testing.T) {
	// "var x = 1; { var x = 2; }"-shaped: two separately-scoped bindings
	// named x, one bound to 1 and reused (x+1) after the first
	// top-level statement, the other standing alone. Refinement must
	// fold in *where* each occurrence of x fell, so this can't collapse
	// with a version where the two statements are swapped and the
	// binding that gets reused changes (spec §8 property 10).
	a := program(
		exprStmt(varDeclaration("var", varDeclarator(ident("x"), numLit(1)))),
		exprStmt(binExpr("+", ident("x"), numLit(1))),
		exprStmt(varDeclaration("var", varDeclarator(ident("x"), numLit(2)))),
	)
	b := program(
		exprStmt(varDeclaration("var", varDeclarator(ident("x"), numLit(1)))),
		exprStmt(varDeclaration("var", varDeclarator(ident("x"), numLit(2)))),
		exprStmt(binExpr("+", ident("x"), numLit(1))),
	)

	sa, err := Compute(a, annotator.NonceModeDerived)
	if err != nil {
		t.Fatalf("compute a: %v", err)
	}
	sb, err := Compute(b, annotator.NonceModeDerived)
	if err != nil {
		t.Fatalf("compute b: %v", err)
	}
	if sa == sb {
		t.Fatalf("moving which statement reuses x did not change the digest")
	}
}

func TestFunctionStructureDistinguishesBody(t *testing.T) {
	a := program(
		funcDecl("foo", []*ast.Node{ident("x")}, returnStmt(ident("x"))),
	)
	b := program(
		funcDecl("foo", []*ast.Node{ident("x")}, returnStmt(binExpr("+", ident("x"), numLit(1)))),
	)

	sa, _ := Compute(a, annotator.NonceModeDerived)
	sb, _ := Compute(b, annotator.NonceModeDerived)
	if sa == sb {
		t.Fatalf("two functions with different bodies produced the same digest")
	}
}
