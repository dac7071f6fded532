package signature

import (
	"errors"
	"fmt"

	"github.com/ludo-technologies/sicilian/internal/ast"
)

// ErrMalformedAST is the sentinel a caller checks for via errors.Is when
// the engine refuses to sign a tree because a required field is absent
// in a way that makes the declaration identity undefined. A
// FunctionDeclaration or VariableDeclarator with no
// `id` is the case that actually bites: without an identifier there is
// nothing to key struct_nodes on, so the declaration can never recover
// its Structure once injected. A FunctionDeclaration with no params is
// NOT an error: nil params means zero params, not a fault.
var ErrMalformedAST = errors.New("malformed AST")

// validate walks root looking for declaration nodes with no id. It runs
// before injection so the diagnostic names the original node type, not
// an already-rewritten one.
func validate(root *ast.Node) error {
	var err error
	root.Walk(func(n *ast.Node) {
		if err != nil {
			return
		}
		switch n.Type {
		case ast.NodeFunctionDeclaration, ast.NodeVariableDeclarator:
			if n.Child("id") == nil {
				err = fmt.Errorf("%w: %s node has no id", ErrMalformedAST, n.Type)
			}
		}
	})
	return err
}
