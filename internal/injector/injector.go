// Package injector implements the node injector: three
// idempotent passes that regularize the grammar before signing,
// wrapping operator tokens, factoring declaration identity into
// Structure nodes, and wrapping binary/assignment left/right operands.
package injector

import (
	"github.com/ludo-technologies/sicilian/internal/annotator"
	"github.com/ludo-technologies/sicilian/internal/ast"
	"github.com/ludo-technologies/sicilian/internal/hashutil"
)

// StructEntry links a declaration node to the Structure node that
// factors its identity out, the cross-reference a lookup table calls
// `struct_nodes`.
type StructEntry struct {
	Decl      *ast.Node
	Structure *ast.Node
}

// StructNodes is the `struct_nodes: NodeHash -> (DeclNode, StructureNode)`
// map built as a side effect of injection and consulted later by the
// signature engine via GetStructureNode.
type StructNodes map[uint64]StructEntry

// Inject walks root depth-first, running the three injection passes on
// every node before recursing into its (possibly newly injected)
// children. Safe to call more than once on the same tree: each pass
// checks whether its target is already wrapped before wrapping again
// (must be safe against repeated invocation).
func Inject(root *ast.Node, mode annotator.NonceMode) StructNodes {
	structNodes := make(StructNodes)
	inject(root, structNodes, mode, "")
	return structNodes
}

func inject(n *ast.Node, structNodes StructNodes, mode annotator.NonceMode, path string) {
	if n == nil {
		return
	}
	childPath := path + string(n.Type)

	injectOperatorNode(n)
	injectStructureNode(n, structNodes, mode, childPath)
	injectLeftRightNodes(n)

	for _, child := range ast.ChildrenSorted(n) {
		inject(child, structNodes, mode, childPath)
	}
}

// injectOperatorNode wraps an operator-bearing expression's `operator`
// field in the matching Operator node, unless it is already wrapped or
// the node's type isn't one of the four recognized operator-bearing
// kinds; other operator-bearing types such as LogicalExpression are
// left untouched, matching the reference scheme.
func injectOperatorNode(n *ast.Node) {
	if n.IsOperatorWrapper() {
		return
	}
	field, ok := n.Field("operator")
	if !ok {
		return
	}
	if field.Child != nil {
		// Already wrapped.
		return
	}
	wrapperType, ok := ast.OperatorNodeFor[n.Type]
	if !ok {
		return
	}
	opStr, _ := field.Primitive.(string)
	wrapper := ast.NewNode(wrapperType)
	wrapper.Set("operator", opStr)
	n.SetChild("operator", wrapper)
}

// injectStructureNode factors a declaration-shaped node's identity
// (initializer, or params+body) into an injected Structure node,
// recording the cross-reference keyed by the hash of the declared
// identifier.
func injectStructureNode(n *ast.Node, structNodes StructNodes, mode annotator.NonceMode, path string) {
	if _, ok := ast.StructureNodeFor[n.Type]; !ok {
		return
	}
	if n.Child("a_structure") != nil {
		return
	}

	id := n.Child("id")

	var structureNode *ast.Node
	switch n.Type {
	case ast.NodeFunctionDeclaration:
		structureNode = buildFunctionStructure(n, mode, path)
	default:
		structureNode = buildVariableStructure(n)
	}

	n.SetChild("a_structure", structureNode)

	if id != nil {
		key := hashutil.NodeHash(id)
		structNodes[key] = StructEntry{Decl: n, Structure: structureNode}
	}
}

// buildVariableStructure factors a VariableDeclarator's (or
// FunctionParameterDeclarator's, which has no init field at all) `init`
// out into a VariableStructure whose `init` is never nil — an absent
// initializer becomes an Undefined node.
func buildVariableStructure(n *ast.Node) *ast.Node {
	sn := ast.NewNode(ast.NodeVariableStructure)
	init := n.Child("init")
	if init == nil {
		init = ast.NewNode(ast.NodeUndefined)
	}
	sn.SetChild("init", init)
	if n.Type == ast.NodeVariableDeclarator {
		n.Remove("init")
	}
	return sn
}

// buildFunctionStructure factors a FunctionDeclaration's params+body
// into a FunctionStructure, wrapping each parameter identifier in a
// FunctionParameterDeclarator so it is itself treated as a declaration
// site (and so gets its own Structure on the next injection pass over
// it). Allocates a fresh nonce independent of the annotator's
// per-function parameter nonce: FunctionStructure carries its own
// nonce, separate from the per-function parameter nonce.
func buildFunctionStructure(n *ast.Node, mode annotator.NonceMode, path string) *ast.Node {
	fs := ast.NewNode(ast.NodeFunctionStructure)
	fs.Set("nonce", annotator.GenerateNonce(mode, path+"#structure"))

	params := n.Children("params")
	wrapped := make([]*ast.Node, 0, len(params))
	for _, p := range params {
		decl := ast.NewNode(ast.NodeFunctionParameterDeclarator)
		decl.SetChild("id", p)
		wrapped = append(wrapped, decl)
	}
	fs.SetChildren("params", wrapped)
	fs.SetChildren("body", n.Children("body"))

	n.Remove("params")
	n.Remove("body")
	return fs
}

// injectLeftRightNodes wraps any `left`/`right` field in LHSExpression/
// RHSExpression, unless already wrapped. Runs on every node type that
// carries such fields, not only the four operator-bearing kinds (spec
// §4.2).
func injectLeftRightNodes(n *ast.Node) {
	if n.Type == ast.NodeLHSExpression || n.Type == ast.NodeRHSExpression {
		return
	}
	if left := n.Child("left"); left != nil && left.Type != ast.NodeLHSExpression {
		wrapper := ast.NewNode(ast.NodeLHSExpression)
		wrapper.SetChild("left", left)
		n.SetChild("left", wrapper)
	}
	if right := n.Child("right"); right != nil && right.Type != ast.NodeRHSExpression {
		wrapper := ast.NewNode(ast.NodeRHSExpression)
		wrapper.SetChild("right", right)
		n.SetChild("right", wrapper)
	}
}

// GetStructureNode resolves a node's Structure, consulting the direct
// `a_structure` back-reference first and the struct_nodes hash map
// second. The hash-map path is a
// fallback: it can miss if the declaration node was mutated after being
// recorded, which is why the direct reference is primary.
func GetStructureNode(n *ast.Node, structNodes StructNodes) *ast.Node {
	if sr := n.Child("a_structure"); sr != nil {
		return sr
	}
	if e, ok := structNodes[hashutil.NodeHash(n)]; ok {
		return e.Structure
	}
	return nil
}
