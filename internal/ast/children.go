package ast

import "sort"

// ChildrenSorted returns n's node-valued fields' children, ordered
// alphabetically by field name (ties broken by declaration order within
// the same field). This mirrors the reference scheme's split between
// unsorted field iteration for the node hash and `sorted(node.items())`
// for structural children: the traversal and signature stages both
// walk children in this sorted order, the node hash does not.
func ChildrenSorted(n *Node) []*Node {
	if n == nil {
		return nil
	}
	fields := make([]Field, len(n.Fields))
	copy(fields, n.Fields)
	sort.SliceStable(fields, func(i, j int) bool {
		return fields[i].Name < fields[j].Name
	})

	var out []*Node
	for _, f := range fields {
		if f.Child != nil {
			out = append(out, f.Child)
		}
		out = append(out, f.Children...)
	}
	return out
}

// IsLeaf reports whether n has no node-valued children under sorted
// iteration.
func IsLeaf(n *Node) bool {
	return len(ChildrenSorted(n)) == 0
}
