// Package traversal produces the linearization the signature engine
// consumes: an iterative DFS onto an explicit stack,
// reversed so that every node's children precede it when the list is
// scanned left-to-right, plus a `pos` path string per node.
package traversal

import "github.com/ludo-technologies/sicilian/internal/ast"

// Result holds the postorder-equivalent node list and the derived path
// string for every node reached.
type Result struct {
	Nodes   []*ast.Node
	NodePos map[*ast.Node]string
}

// Traverse walks the injected AST rooted at root and returns the
// linearization the signature engine iterates. Bounded stack depth
// (no recursion), so arbitrarily deep expression chains don't overflow
// the call stack.
func Traverse(root *ast.Node) Result {
	nodePos := map[*ast.Node]string{root: ""}
	var order []*ast.Node
	stack := []*ast.Node{root}

	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		order = append(order, n)

		pos := nodePos[n]
		children := ast.ChildrenSorted(n)
		for _, child := range children {
			nodePos[child] = pos + string(n.Type)
			stack = append(stack, child)
		}
		if len(children) == 0 && n.IsIdentifier() {
			nodePos[n] = pos + "Identifier"
		}
	}

	nodes := make([]*ast.Node, len(order))
	for i, n := range order {
		nodes[len(order)-1-i] = n
	}
	return Result{Nodes: nodes, NodePos: nodePos}
}
