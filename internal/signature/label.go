package signature

import (
	"fmt"
	"strconv"

	"github.com/ludo-technologies/sicilian/internal/ast"
)

// label implements the label function: a Literal's
// value, an Identifier's name, an operator wrapper's operator string,
// or "{type}Type" for everything else.
func label(n *ast.Node) string {
	switch {
	case n.Type == ast.NodeLiteral:
		return literalLabel(n)
	case n.IsIdentifier():
		return n.Name()
	case n.IsOperatorWrapper():
		op, _ := n.Primitive("operator").(string)
		return op
	default:
		return string(n.Type) + "Type"
	}
}

// literalLabel renders a Literal's value with a type tag so that, say,
// the number 10 and the string "10" never collide on label alone.
func literalLabel(n *ast.Node) string {
	v := n.Primitive("value")
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return "s:" + val
	case bool:
		return "b:" + strconv.FormatBool(val)
	case float64:
		return "n:" + strconv.FormatFloat(val, 'g', -1, 64)
	default:
		return fmt.Sprintf("v:%v", val)
	}
}

func typeOf(n *ast.Node) string {
	return string(n.Type)
}
