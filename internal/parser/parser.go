// Package parser wraps tree-sitter to produce the ESTree-shaped
// internal/ast.Node trees the signature engine operates on: one
// tree-sitter grammar per parser instance, building the engine's own
// node type on top of the CST.
package parser

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"

	"github.com/ludo-technologies/sicilian/internal/ast"
)

// Parser wraps tree-sitter parser for JavaScript/TypeScript
type Parser struct {
	parser   *sitter.Parser
	language *sitter.Language
	isTS     bool
}

// NewParser creates a new JavaScript parser
func NewParser() *Parser {
	parser := sitter.NewParser()
	lang := javascript.GetLanguage()
	parser.SetLanguage(lang)

	return &Parser{
		parser:   parser,
		language: lang,
		isTS:     false,
	}
}

// NewTypeScriptParser creates a new TypeScript parser
func NewTypeScriptParser() *Parser {
	parser := sitter.NewParser()
	lang := tsx.GetLanguage()
	parser.SetLanguage(lang)

	return &Parser{
		parser:   parser,
		language: lang,
		isTS:     true,
	}
}

// ParseFile parses a JavaScript/TypeScript file. filename is attributed
// to node Locations for diagnostics only; it plays no part in the
// signature.
func (p *Parser) ParseFile(filename string, source []byte) (*ast.Node, error) {
	tree, err := p.parser.ParseCtx(context.Background(), nil, source)
	if tree == nil {
		return nil, fmt.Errorf("parser: failed to parse %s: %w", filename, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return nil, fmt.Errorf("parser: no root node for %s", filename)
	}
	if root.HasError() {
		return nil, fmt.Errorf("parser: syntax error in %s", filename)
	}

	b := newBuilder(filename, source)
	return b.build(root), nil
}

// Parse parses anonymous JavaScript/TypeScript source code.
func (p *Parser) Parse(source []byte) (*ast.Node, error) {
	return p.ParseFile("<input>", source)
}

// ParseString parses JavaScript/TypeScript source code from a string.
func (p *Parser) ParseString(source string) (*ast.Node, error) {
	return p.Parse([]byte(source))
}

// IsTypeScript returns true if this parser is configured for TypeScript
func (p *Parser) IsTypeScript() bool {
	return p.isTS
}

// Close closes the parser and frees resources
func (p *Parser) Close() {
	if p.parser != nil {
		p.parser.Close()
	}
}

// ParseForLanguage automatically selects JavaScript or TypeScript parser based on file extension
func ParseForLanguage(filename string, source []byte) (*ast.Node, error) {
	isTS := false
	for _, ext := range []string{".ts", ".tsx", ".mts", ".cts"} {
		if strings.HasSuffix(filename, ext) {
			isTS = true
			break
		}
	}

	var parser *Parser
	if isTS {
		parser = NewTypeScriptParser()
	} else {
		parser = NewParser()
	}
	defer parser.Close()

	return parser.ParseFile(filename, source)
}
