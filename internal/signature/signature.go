// Package signature implements the structural signature engine
// itself: the iterative algorithm that walks the linearized,
// injected, annotated AST and produces a single digest that is
// invariant to identifier renaming and ObjectExpression property
// reordering, yet sensitive to every other structural change.
package signature

import (
	"sort"

	"github.com/ludo-technologies/sicilian/internal/annotator"
	"github.com/ludo-technologies/sicilian/internal/ast"
	"github.com/ludo-technologies/sicilian/internal/hashutil"
	"github.com/ludo-technologies/sicilian/internal/injector"
	"github.com/ludo-technologies/sicilian/internal/traversal"
)

// structIDEntry is one entry of the struct_id map: the declaration
// identifier it belongs to and its signature: the one computed the first
// time it was seen, as updated by each refinement (struct_id).
type structIDEntry struct {
	node *ast.Node
	sig  string
}

// identityPosEntry accumulates every position at which a given
// declaration identifier recurs, to be folded back into its struct_id
// entry at the next top-level refinement point (identity_pos /
// refine_structids).
type identityPosEntry struct {
	node      *ast.Node
	positions []string
}

// Compute runs the full pipeline — validation, annotation, injection,
// linearization, and signing — over an already-parsed AST and returns
// the final hex digest. mode controls the parameter-nonce policy (spec
// §9 Open Question 1); callers that need the annotation and injection
// passes run separately (e.g. to inspect the injected tree) should call
// Sign directly instead.
func Compute(root *ast.Node, mode annotator.NonceMode) (string, error) {
	if err := validate(root); err != nil {
		return "", err
	}
	annotator.Annotate(root, mode)
	structNodes := injector.Inject(root, mode)
	result := traversal.Traverse(root)
	return Sign(root, result, structNodes)
}

// Sign runs the signature algorithm over an already injected and
// linearized tree. Exposed separately from Compute so tests can drive
// the injector and traversal steps independently and feed this function
// directly, and so the recursive cross-check (recursive_test.go) can
// reuse the same structNodes without re-running injection.
func Sign(root *ast.Node, lin traversal.Result, structNodes injector.StructNodes) (string, error) {
	topLevel := make(map[*ast.Node]bool)
	for _, c := range ast.ChildrenSorted(root) {
		topLevel[c] = true
	}

	signatures := make(map[uint64]string)
	structID := make(map[uint64]*structIDEntry)
	identityPos := make(map[uint64]*identityPosEntry)

	for _, n := range lin.Nodes {
		h := hashutil.NodeHash(n)
		if _, done := signatures[h]; done {
			continue
		}

		children := ast.ChildrenSorted(n)
		pos := lin.NodePos[n]

		var s string
		if len(children) == 0 {
			s = signLeaf(n, h, pos, structNodes, signatures, structID, identityPos)
		} else {
			s = signInterior(n, children, signatures)
			if topLevel[n] {
				refine(structID, identityPos, s)
				identityPos = make(map[uint64]*identityPosEntry)
			}
		}
		signatures[h] = s
	}

	rootHash := hashutil.NodeHash(root)
	return signatures[rootHash], nil
}

func signLeaf(
	n *ast.Node,
	h uint64,
	pos string,
	structNodes injector.StructNodes,
	signatures map[uint64]string,
	structID map[uint64]*structIDEntry,
	identityPos map[uint64]*identityPosEntry,
) string {
	if !n.IsIdentifier() {
		return hashutil.H(hashutil.Concat(typeOf(n), label(n)))
	}

	if entry, ok := structID[h]; ok {
		ip, ok := identityPos[h]
		if !ok {
			ip = &identityPosEntry{node: n}
			identityPos[h] = ip
		}
		// pos already carries the "Identifier" suffix traversal.Traverse
		// appends for identifier leaves; it is the complete per-occurrence
		// position string, not a prefix needing one more append.
		ip.positions = append(ip.positions, pos)
		return entry.sig
	}

	if ns := injector.GetStructureNode(n, structNodes); ns != nil {
		nsHash := hashutil.NodeHash(ns)
		if _, done := signatures[nsHash]; !done {
			computeShallowSignature(ns, signatures)
		}
		s := hashutil.H(hashutil.Concat(hashutil.H(typeOf(n)), signatures[nsHash]))
		structID[h] = &structIDEntry{node: n, sig: s}
		return s
	}

	s := hashutil.H(hashutil.H(label(n)))
	structID[h] = &structIDEntry{node: n, sig: s}
	return s
}

func signInterior(n *ast.Node, children []*ast.Node, signatures map[uint64]string) string {
	sigs := make([]string, 0, len(children))
	for _, c := range children {
		sigs = append(sigs, signatures[hashutil.NodeHash(c)])
	}
	if ast.UnorderedNodeTypes[n.Type] {
		sort.Strings(sigs)
	}
	return hashutil.H(hashutil.Concat(append([]string{hashutil.H(label(n))}, sigs...)...))
}

// computeShallowSignature signs a Structure node the first time it is
// reached via its declaration identifier's leaf case, one level deep
// only: each of its own children gets the plain leaf-style signature
// H(type+label), never recursing further. Both the Structure node's
// signature and its children's are recorded directly into the shared
// signatures map, so when the main loop later reaches them by normal
// traversal it finds them already done and skips reprocessing — this
// shallow pass is the signature the rest of the tree sees, not a cache
// of a deeper computation: computed once, shallow, deliberately not
// recursive.
func computeShallowSignature(ns *ast.Node, signatures map[uint64]string) {
	children := ast.ChildrenSorted(ns)
	sigs := make([]string, 0, len(children))
	for _, c := range children {
		cs := hashutil.H(hashutil.Concat(typeOf(c), label(c)))
		signatures[hashutil.NodeHash(c)] = cs
		sigs = append(sigs, cs)
	}
	if ast.UnorderedNodeTypes[ns.Type] {
		sort.Strings(sigs)
	}
	signatures[hashutil.NodeHash(ns)] = hashutil.H(hashutil.Concat(append([]string{hashutil.H(label(ns))}, sigs...)...))
}

// refine folds every accumulated identity_pos entry back into its
// struct_id signature: each recurrence's position is hashed and
// concatenated, then combined with the identifier's current signature,
// so that two identifiers bound to structurally identical declarations
// but used at different positions in the program still diverge (spec
// §4.4 refine_structids).
func refine(structID map[uint64]*structIDEntry, identityPos map[uint64]*identityPosEntry, topSig string) {
	for h, ip := range identityPos {
		entry, ok := structID[h]
		if !ok {
			continue
		}
		posHash := ""
		for _, p := range ip.positions {
			posHash += hashutil.H(p)
		}
		t := hashutil.Concat(topSig, posHash)
		entry.sig = hashutil.H(hashutil.Concat(entry.sig, t))
	}
}
