// Package testutil provides helper functions for testing sicilian components.
package testutil

import (
	"testing"

	"github.com/ludo-technologies/sicilian/internal/ast"
	"github.com/ludo-technologies/sicilian/internal/parser"
)

// CreateTestAST creates a test AST from JavaScript source code.
func CreateTestAST(t *testing.T, source string) *ast.Node {
	t.Helper()
	p := parser.NewParser()
	defer p.Close()

	root, err := p.ParseString(source)
	if err != nil {
		t.Fatalf("Failed to parse test code: %v", err)
	}
	return root
}

// CreateTestASTNoFail creates a test AST, returning an error instead of
// failing the test.
func CreateTestASTNoFail(source string) (*ast.Node, error) {
	p := parser.NewParser()
	defer p.Close()
	return p.ParseString(source)
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("Expected error but got nil")
	}
}

// AssertEqual fails the test if expected != actual.
func AssertEqual(t *testing.T, expected, actual any) {
	t.Helper()
	if expected != actual {
		t.Errorf("Expected %v, got %v", expected, actual)
	}
}

// AssertTrue fails the test if condition is false.
func AssertTrue(t *testing.T, condition bool, msg string) {
	t.Helper()
	if !condition {
		t.Error(msg)
	}
}

// AssertFalse fails the test if condition is true.
func AssertFalse(t *testing.T, condition bool, msg string) {
	t.Helper()
	if condition {
		t.Error(msg)
	}
}

// AssertNotNil fails the test if value is nil.
func AssertNotNil(t *testing.T, value any) {
	t.Helper()
	if value == nil {
		t.Error("Expected non-nil value")
	}
}

// AssertNil fails the test if value is not nil.
func AssertNil(t *testing.T, value any) {
	t.Helper()
	if value != nil {
		t.Errorf("Expected nil, got %v", value)
	}
}

// FindFunctionInAST finds a function node by name in the AST.
func FindFunctionInAST(root *ast.Node, name string) *ast.Node {
	var found *ast.Node
	root.Walk(func(n *ast.Node) {
		if found != nil {
			return
		}
		if !n.IsFunction() {
			return
		}
		if id := n.Child("id"); id != nil && id.Name() == name {
			found = n
		}
	})
	return found
}

// CountFunctionsInAST counts the number of functions in an AST.
func CountFunctionsInAST(root *ast.Node) int {
	count := 0
	root.Walk(func(n *ast.Node) {
		if n.IsFunction() {
			count++
		}
	})
	return count
}

// CountNodesOfType counts nodes of a specific type in an AST.
func CountNodesOfType(root *ast.Node, nodeType ast.NodeType) int {
	count := 0
	root.Walk(func(n *ast.Node) {
		if n.Type == nodeType {
			count++
		}
	})
	return count
}
