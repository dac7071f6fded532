// Package engine is the facade the rest of the module (CLI, services)
// calls to turn JavaScript/TypeScript source into a structural
// signature: parse, annotate, inject, and
// sign in one call, hiding the internal pipeline packages.
package engine

import (
	"context"
	"fmt"

	"github.com/ludo-technologies/sicilian/internal/annotator"
	"github.com/ludo-technologies/sicilian/internal/ast"
	"github.com/ludo-technologies/sicilian/internal/parser"
	"github.com/ludo-technologies/sicilian/internal/signature"
)

// NonceMode re-exports annotator.NonceMode so callers outside the
// internal/ tree never need to import it directly.
type NonceMode = annotator.NonceMode

const (
	NonceModeRandom  = annotator.NonceModeRandom
	NonceModeDerived = annotator.NonceModeDerived
)

// Options configures a Sign call.
type Options struct {
	// Filename attributes parse diagnostics and Locations; it plays no
	// part in the signature itself.
	Filename string

	// NonceMode selects the parameter-nonce policy, an open question
	// left for callers to decide. Defaults to NonceModeRandom, matching the reference
	// scheme's per-invocation secrets.token_hex behavior.
	NonceMode NonceMode

	// TypeScript parses source as TypeScript/TSX instead of plain
	// JavaScript.
	TypeScript bool
}

// Sign parses source and returns its structural signature: a 64-character
// lowercase hex digest invariant to identifier renaming and
// ObjectExpression property reordering.
//
// ctx is accepted for symmetry with the rest of the module's blocking
// operations (parallel scanning, CLI commands) but is not currently
// consulted mid-computation: signing a single file is fast enough that
// cancellation granularity finer than "don't start the next file" isn't
// worth the complexity. A caller that needs to abort a long scan should
// check ctx between files, which service.ParallelExecutor already does.
func Sign(ctx context.Context, source []byte, opts Options) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	filename := opts.Filename
	if filename == "" {
		filename = "<input>"
	}

	root, err := parseSource(filename, source, opts.TypeScript)
	if err != nil {
		return "", fmt.Errorf("engine: %w", err)
	}

	digest, err := signature.Compute(root, opts.NonceMode)
	if err != nil {
		return "", fmt.Errorf("engine: %s: %w", filename, err)
	}
	return digest, nil
}

func parseSource(filename string, source []byte, typescript bool) (*ast.Node, error) {
	if typescript {
		p := parser.NewTypeScriptParser()
		defer p.Close()
		return p.ParseFile(filename, source)
	}
	p := parser.NewParser()
	defer p.Close()
	return p.ParseFile(filename, source)
}
