package signature

import (
	"testing"

	"github.com/ludo-technologies/sicilian/internal/annotator"
	"github.com/ludo-technologies/sicilian/internal/ast"
	"github.com/ludo-technologies/sicilian/internal/hashutil"
	"github.com/ludo-technologies/sicilian/internal/injector"
	"github.com/ludo-technologies/sicilian/internal/traversal"
)

// signRecursive is a recursive restatement of Sign, used only to cross
// check the iterative engine against an independently structured
// implementation of the same algorithm. Never call this from
// production code: a deeply nested expression chain can overflow the
// call stack, which is exactly the failure mode the iterative form
// exists to avoid.
func signRecursive(root *ast.Node, structNodes injector.StructNodes) string {
	topLevel := make(map[*ast.Node]bool)
	for _, c := range ast.ChildrenSorted(root) {
		topLevel[c] = true
	}

	signatures := make(map[uint64]string)
	structID := make(map[uint64]*structIDEntry)
	identityPos := make(map[uint64]*identityPosEntry)

	var visit func(n *ast.Node, pos string) string
	visit = func(n *ast.Node, pos string) string {
		h := hashutil.NodeHash(n)
		if s, done := signatures[h]; done {
			return s
		}

		children := ast.ChildrenSorted(n)
		var s string
		if len(children) == 0 {
			leafPos := pos
			if n.IsIdentifier() {
				leafPos = pos + "Identifier"
			}
			s = signLeaf(n, h, leafPos, structNodes, signatures, structID, identityPos)
		} else {
			for _, c := range children {
				visit(c, pos+string(n.Type))
			}
			s = signInterior(n, children, signatures)
			if topLevel[n] {
				refine(structID, identityPos, s)
				identityPos = make(map[uint64]*identityPosEntry)
			}
		}
		signatures[h] = s
		return s
	}

	return visit(root, "")
}

// crossCheck runs validation, annotation and injection exactly once,
// then feeds the single resulting (root, structNodes) pair to both the
// iterative and recursive signers, asserting they agree. Compute isn't
// used here deliberately: it re-runs injection internally, which would
// process the already-injected tree a second time and isn't the
// comparison this test wants.
func crossCheck(t *testing.T, root *ast.Node) {
	t.Helper()
	if err := validate(root); err != nil {
		t.Fatalf("validate: %v", err)
	}
	annotator.Annotate(root, annotator.NonceModeDerived)
	structNodes := injector.Inject(root, annotator.NonceModeDerived)

	iterative, err := Sign(root, traversal.Traverse(root), structNodes)
	if err != nil {
		t.Fatalf("iterative sign: %v", err)
	}
	recursive := signRecursive(root, structNodes)

	if iterative != recursive {
		t.Fatalf("iterative and recursive signers disagree: %s != %s", iterative, recursive)
	}
}

func TestRecursiveCrossCheckAgreesOnShape(t *testing.T) {
	crossCheck(t, funcWithLocal("a"))
	crossCheck(t, program(
		exprStmt(objExpr(property(ident("a"), numLit(1)), property(ident("b"), numLit(2)))),
	))
	crossCheck(t, program(exprStmt(binExpr("+", ident("x"), numLit(1)))))
}
