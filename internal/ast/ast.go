// Package ast defines the ESTree-shaped node representation the
// structural signature engine operates on, plus the injected node kinds
// the node injector adds to regularize the grammar before signing.
package ast

import "fmt"

// NodeType tags an AST node. The set is ESTree's plus the injected kinds
// described below.
type NodeType string

// ESTree node types the engine reads directly.
const (
	NodeProgram              NodeType = "Program"
	NodeIdentifier           NodeType = "Identifier"
	NodeLiteral              NodeType = "Literal"
	NodeVariableDeclaration  NodeType = "VariableDeclaration"
	NodeVariableDeclarator   NodeType = "VariableDeclarator"
	NodeFunctionDeclaration  NodeType = "FunctionDeclaration"
	NodeFunctionExpression   NodeType = "FunctionExpression"
	NodeArrowFunction        NodeType = "ArrowFunctionExpression"
	NodeBlockStatement       NodeType = "BlockStatement"
	NodeExpressionStatement  NodeType = "ExpressionStatement"
	NodeIfStatement          NodeType = "IfStatement"
	NodeForStatement         NodeType = "ForStatement"
	NodeForInStatement       NodeType = "ForInStatement"
	NodeForOfStatement       NodeType = "ForOfStatement"
	NodeWhileStatement       NodeType = "WhileStatement"
	NodeDoWhileStatement     NodeType = "DoWhileStatement"
	NodeReturnStatement      NodeType = "ReturnStatement"
	NodeBreakStatement       NodeType = "BreakStatement"
	NodeContinueStatement    NodeType = "ContinueStatement"
	NodeThrowStatement       NodeType = "ThrowStatement"
	NodeTryStatement         NodeType = "TryStatement"
	NodeCatchClause          NodeType = "CatchClause"
	NodeSwitchStatement      NodeType = "SwitchStatement"
	NodeSwitchCase           NodeType = "SwitchCase"
	NodeEmptyStatement       NodeType = "EmptyStatement"
	NodeLabeledStatement     NodeType = "LabeledStatement"
	NodeCallExpression       NodeType = "CallExpression"
	NodeNewExpression        NodeType = "NewExpression"
	NodeMemberExpression     NodeType = "MemberExpression"
	NodeBinaryExpression     NodeType = "BinaryExpression"
	NodeLogicalExpression    NodeType = "LogicalExpression"
	NodeUnaryExpression      NodeType = "UnaryExpression"
	NodeUpdateExpression     NodeType = "UpdateExpression"
	NodeAssignmentExpression NodeType = "AssignmentExpression"
	NodeConditionalExpression NodeType = "ConditionalExpression"
	NodeSequenceExpression   NodeType = "SequenceExpression"
	NodeArrayExpression      NodeType = "ArrayExpression"
	NodeObjectExpression     NodeType = "ObjectExpression"
	NodeProperty             NodeType = "Property"
	NodeSpreadElement        NodeType = "SpreadElement"
	NodeThisExpression       NodeType = "ThisExpression"
	NodeTemplateLiteral      NodeType = "TemplateLiteral"
	NodeAwaitExpression      NodeType = "AwaitExpression"
	NodeYieldExpression      NodeType = "YieldExpression"
)

// Injected node kinds. These never come out of the parser adapter; the
// node injector introduces them.
const (
	NodeAssignmentOperator NodeType = "AssignmentOperator"
	NodeUnaryOperator      NodeType = "UnaryOperator"
	NodeBinaryOperator     NodeType = "BinaryOperator"
	NodeUpdateOperator     NodeType = "UpdateOperator"

	NodeFunctionStructure         NodeType = "FunctionStructure"
	NodeVariableStructure         NodeType = "VariableStructure"
	NodeUndefined                 NodeType = "Undefined"
	NodeFunctionParameterDeclarator NodeType = "FunctionParameterDeclarator"

	NodeLHSExpression NodeType = "LHSExpression"
	NodeRHSExpression NodeType = "RHSExpression"
)

// OperatorNodeFor maps an operator-bearing expression type to the
// injected wrapper kind the node injector replaces its operator with.
var OperatorNodeFor = map[NodeType]NodeType{
	NodeAssignmentExpression: NodeAssignmentOperator,
	NodeUnaryExpression:      NodeUnaryOperator,
	NodeBinaryExpression:     NodeBinaryOperator,
	NodeUpdateExpression:     NodeUpdateOperator,
}

// StructureNodeFor maps a declaration-shaped type to the Structure kind
// the node injector factors its identity into.
var StructureNodeFor = map[NodeType]NodeType{
	NodeVariableDeclarator:          NodeVariableStructure,
	NodeFunctionDeclaration:         NodeFunctionStructure,
	NodeFunctionParameterDeclarator: NodeVariableStructure,
}

// UnorderedNodeTypes is the set of node kinds whose children are treated
// as a multiset for signature purposes. Expanding this set would break
// digest compatibility with the reference scheme; it must stay exactly
// as specified.
var UnorderedNodeTypes = map[NodeType]bool{
	NodeObjectExpression: true,
}

// Location is the source span of a node, carried for diagnostics only;
// it plays no part in the signature.
type Location struct {
	File      string
	StartLine int
	StartCol  int
	EndLine   int
	EndCol    int
}

func (l Location) String() string {
	return fmt.Sprintf("%s:%d:%d", l.File, l.StartLine, l.StartCol)
}

// Field is one named field of a node: either a primitive value, a single
// child node, or an ordered sequence of child nodes.
type Field struct {
	Name      string
	Child     *Node
	Children  []*Node
	Primitive interface{}
}

// IsNode reports whether the field holds node-shaped data (single child
// or a sequence), as opposed to a primitive.
func (f Field) IsNode() bool {
	return f.Child != nil || f.Children != nil
}

// Node is an AST node: a type tag plus an ordered set of named fields.
// Fields are stored in the order the parser adapter (or node injector)
// declared them; this is the order the node-hash flattening uses. Child
// traversal order for signature purposes is a separate, alphabetically
// sorted view (see ChildrenSorted) mirroring the reference scheme's
// split between `.items()` (hash) and `sorted(.items())` (children).
type Node struct {
	Type     NodeType
	Fields   []Field
	Location Location
}

// NewNode creates an empty node of the given type.
func NewNode(t NodeType) *Node {
	return &Node{Type: t}
}

// Set appends or replaces a primitive-valued field.
func (n *Node) Set(name string, value interface{}) {
	n.removeField(name)
	n.Fields = append(n.Fields, Field{Name: name, Primitive: value})
}

// SetChild appends or replaces a single-node-valued field. A nil child
// removes the field entirely (ESTree "absent" semantics).
func (n *Node) SetChild(name string, child *Node) {
	n.removeField(name)
	if child == nil {
		return
	}
	n.Fields = append(n.Fields, Field{Name: name, Child: child})
}

// SetChildren appends or replaces a node-sequence-valued field.
func (n *Node) SetChildren(name string, children []*Node) {
	n.removeField(name)
	if children == nil {
		children = []*Node{}
	}
	n.Fields = append(n.Fields, Field{Name: name, Children: children})
}

// Remove deletes a field entirely, used by the node injector when a
// field's value moves into an injected Structure node.
func (n *Node) Remove(name string) {
	n.removeField(name)
}

func (n *Node) removeField(name string) {
	for i, f := range n.Fields {
		if f.Name == name {
			n.Fields = append(n.Fields[:i], n.Fields[i+1:]...)
			return
		}
	}
}

// Field looks up a field by name. The second return is false if absent.
func (n *Node) Field(name string) (Field, bool) {
	for _, f := range n.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Child returns the single child of a node-valued field, or nil.
func (n *Node) Child(name string) *Node {
	if f, ok := n.Field(name); ok {
		return f.Child
	}
	return nil
}

// Children returns the child sequence of a field, or nil.
func (n *Node) Children(name string) []*Node {
	if f, ok := n.Field(name); ok {
		return f.Children
	}
	return nil
}

// Primitive returns the primitive value of a field, or nil.
func (n *Node) Primitive(name string) interface{} {
	if f, ok := n.Field(name); ok {
		return f.Primitive
	}
	return nil
}

// Name is a convenience accessor for Identifier nodes.
func (n *Node) Name() string {
	if v, ok := n.Primitive("name").(string); ok {
		return v
	}
	return ""
}

// IsIdentifier reports whether the node is a plain Identifier.
func (n *Node) IsIdentifier() bool {
	return n.Type == NodeIdentifier
}

// IsOperatorWrapper reports whether the node is one of the four injected
// operator-wrapping kinds.
func (n *Node) IsOperatorWrapper() bool {
	switch n.Type {
	case NodeAssignmentOperator, NodeUnaryOperator, NodeBinaryOperator, NodeUpdateOperator:
		return true
	}
	return false
}

// IsFunction reports whether the node introduces a function scope: a
// function declaration, function expression or arrow function. Of these,
// the injector builds a FunctionStructure only for FunctionDeclaration.
func (n *Node) IsFunction() bool {
	switch n.Type {
	case NodeFunctionDeclaration, NodeFunctionExpression, NodeArrowFunction:
		return true
	}
	return false
}

// AllChildNodes returns every node-shaped field's children, in field
// declaration order, expanding sequences. This is the order the raw
// node hash flattens fields in (see hashutil.NodeHash).
func (n *Node) AllChildNodes() []*Node {
	var out []*Node
	for _, f := range n.Fields {
		if f.Child != nil {
			out = append(out, f.Child)
		}
		out = append(out, f.Children...)
	}
	return out
}

// Walk traverses the tree depth-first in field declaration order,
// invoking visit on every node including n itself. Used by AST
// validation and by test helpers; the annotator and injector passes do
// their own recursion over ChildrenSorted.
func (n *Node) Walk(visit func(*Node)) {
	if n == nil {
		return
	}
	visit(n)
	for _, child := range n.AllChildNodes() {
		child.Walk(visit)
	}
}

func (n *Node) String() string {
	if name := n.Name(); name != "" {
		return fmt.Sprintf("%s(%s)", n.Type, name)
	}
	return string(n.Type)
}
