// Package hashutil provides the engine's two hash primitives: the
// cryptographic H() used to mix signature material, and the
// non-cryptographic structural NodeHash used as a same-invocation map
// key over AST nodes.
package hashutil

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/ludo-technologies/sicilian/internal/ast"
)

// H returns the lowercase hex SHA-256 digest of the UTF-8 encoding of s.
// Invalid surrogates/byte sequences are elided rather than raising;
// hashing failures are absorbed, not fatal.
func H(s string) string {
	clean := strings.ToValidUTF8(s, "")
	sum := sha256.Sum256([]byte(clean))
	return hex.EncodeToString(sum[:])
}

// Concat joins its arguments as plain strings; textual concatenation is
// associative, which is what lets signatures compose by string-building
// rather than by a structured digest tree.
func Concat(parts ...string) string {
	var sb strings.Builder
	for _, p := range parts {
		sb.WriteString(p)
	}
	return sb.String()
}

// NodeHash computes a 64-bit structural hash of a node: its type,
// followed by its fields in declaration order (not the alphabetically
// sorted order ast.ChildrenSorted uses for signature traversal),
// recursing into node-valued fields and hashing primitives directly.
// Two structurally identical subtrees hash equal; distinct nodes may
// collide, which is acceptable since this is a map key for a single
// run, not a content identity.
func NodeHash(n *ast.Node) uint64 {
	d := xxhash.New()
	writeNode(d, n)
	return d.Sum64()
}

func writeNode(d *xxhash.Digest, n *ast.Node) {
	if n == nil {
		_, _ = d.Write([]byte("\x00nil"))
		return
	}
	_, _ = d.Write([]byte("\x01type:"))
	_, _ = d.Write([]byte(n.Type))
	for _, f := range n.Fields {
		_, _ = d.Write([]byte("\x02field:"))
		_, _ = d.Write([]byte(f.Name))
		switch {
		case f.Child != nil:
			writeNode(d, f.Child)
		case f.Children != nil:
			_, _ = d.Write([]byte(strconv.Itoa(len(f.Children))))
			for _, c := range f.Children {
				writeNode(d, c)
			}
		default:
			_, _ = d.Write([]byte("\x03prim:"))
			_, _ = fmt.Fprintf(d, "%v", f.Primitive)
		}
	}
}
