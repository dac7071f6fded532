// Package annotator implements the parameter-nonce annotation pass:
// every identifier that refers to a formal parameter of
// some function declaration is tagged with that function's nonce, so
// that renaming the parameter doesn't change the digest while its
// binding position still does.
package annotator

import (
	"crypto/rand"
	"encoding/hex"
	"strings"

	"github.com/ludo-technologies/sicilian/internal/ast"
	"github.com/ludo-technologies/sicilian/internal/hashutil"
)

// NonceLen is the byte length of a function parameter nonce before hex
// encoding, matching the reference scheme's secrets.token_hex(16).
const NonceLen = 16

// NonceMode selects how a function declaration's parameter nonce is
// derived. This is left as an open question the engine must not
// silently resolve; callers choose explicitly via Options.
type NonceMode int

const (
	// NonceModeRandom draws a fresh cryptographic nonce per function per
	// invocation, mirroring the reference scheme exactly. Two separate
	// invocations of the same script will therefore disagree on digest,
	// by design.
	NonceModeRandom NonceMode = iota

	// NonceModeDerived derives the nonce deterministically from the
	// function's structural path, so repeated invocations of the same
	// script agree. Not the reference scheme's behavior; opt-in only.
	NonceModeDerived
)

// funcState records the parameter names and nonce assigned to one
// function declaration.
type funcState struct {
	paramNames map[string]bool
	nonce      string
}

// Annotate walks root depth-first, assigning each FunctionDeclaration a
// fresh nonce on first encounter and tagging every identifier leaf that
// names one of the enclosing function's parameters with that nonce. An
// identifier inside a nested function binds to the innermost enclosing
// function whose parameter list it matches; otherwise annotation falls
// through to an outer enclosing function.
//
// All state is local to this call; nothing is shared across
// invocations. The reference implementation's mutable default-argument
// bug is structurally impossible here.
func Annotate(root *ast.Node, mode NonceMode) {
	if root == nil {
		return
	}
	seen := make(map[*ast.Node]*funcState)
	var path []string
	annotate(root, nil, seen, mode, &path)
}

func annotate(n *ast.Node, stack []*funcState, seen map[*ast.Node]*funcState, mode NonceMode, path *[]string) {
	if n == nil {
		return
	}

	if n.Type == ast.NodeFunctionDeclaration {
		if fs, ok := seen[n]; ok {
			stack = append(stack, fs)
		} else {
			fs = &funcState{
				paramNames: paramNameSet(n),
				nonce:      nonceFor(n, mode, *path),
			}
			seen[n] = fs
			stack = append(stack, fs)
		}
	}

	*path = append(*path, string(n.Type))
	defer func() { *path = (*path)[:len(*path)-1] }()

	if ast.IsLeaf(n) {
		if n.IsIdentifier() && len(stack) > 0 {
			name := n.Name()
			for i := len(stack) - 1; i >= 0; i-- {
				if stack[i].paramNames[name] {
					n.Set("nonce", stack[i].nonce)
					break
				}
			}
		}
		return
	}

	for _, child := range ast.ChildrenSorted(n) {
		annotate(child, stack, seen, mode, path)
	}
}

func paramNameSet(fn *ast.Node) map[string]bool {
	names := make(map[string]bool)
	for _, p := range fn.Children("params") {
		if p.IsIdentifier() {
			names[p.Name()] = true
		}
	}
	return names
}

func nonceFor(fn *ast.Node, mode NonceMode, path []string) string {
	switch mode {
	case NonceModeDerived:
		return derivedNonce(fn, path)
	default:
		return randomNonce()
	}
}

// GenerateNonce produces a 16-byte hex nonce under the given policy.
// seed is only consulted in NonceModeDerived; it should be a string
// that uniquely identifies the structural position the nonce is bound
// to (e.g. a traversal path), so that NonceModeDerived is reproducible
// across invocations of the same script. Exported for the node
// injector, which allocates an independent nonce per FunctionStructure
// distinct from the per-function parameter
// nonce this package assigns.
func GenerateNonce(mode NonceMode, seed string) string {
	if mode == NonceModeDerived {
		return hashutil.H(seed)[:NonceLen*2]
	}
	return randomNonce()
}

func randomNonce() string {
	buf := make([]byte, NonceLen)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing means the platform CSPRNG is broken; there
		// is no sensible fallback. Mirrors the reference implementation,
		// which has no recovery path for secrets.token_hex failing either.
		panic("annotator: crypto/rand unavailable: " + err.Error())
	}
	return hex.EncodeToString(buf)
}

func derivedNonce(fn *ast.Node, path []string) string {
	label := strings.Join(path, "/") + "#" + fn.Name()
	return hashutil.H(label)[:NonceLen*2]
}
