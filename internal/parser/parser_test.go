package parser

import (
	"testing"

	"github.com/ludo-technologies/sicilian/internal/ast"
)

func TestParseSimpleFunction(t *testing.T) {
	p := NewParser()
	defer p.Close()

	root, err := p.ParseString(`function hello() { return 42; }`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if root == nil || root.Type != ast.NodeProgram {
		t.Fatalf("expected Program root, got %v", root)
	}

	body := root.Children("body")
	if len(body) == 0 {
		t.Fatal("expected at least one statement")
	}
	fn := body[0]
	if fn.Type != ast.NodeFunctionDeclaration {
		t.Fatalf("expected FunctionDeclaration, got %s", fn.Type)
	}
	if id := fn.Child("id"); id == nil || id.Name() != "hello" {
		t.Fatalf("expected function named hello, got %v", id)
	}
}

func TestParseIfStatement(t *testing.T) {
	p := NewParser()
	defer p.Close()

	root, err := p.ParseString(`
	function greet(name) {
		if (name) {
			return "Hello, " + name;
		} else {
			return "Hello, stranger";
		}
	}
	`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	found := false
	root.Walk(func(n *ast.Node) {
		if n.Type == ast.NodeIfStatement {
			found = true
		}
	})
	if !found {
		t.Error("expected to find an if statement")
	}
}

func TestParseArrowFunctionParamCount(t *testing.T) {
	p := NewParser()
	defer p.Close()

	root, err := p.ParseString(`const add = (a, b) => { return a + b; };`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	found := false
	root.Walk(func(n *ast.Node) {
		if n.Type == ast.NodeArrowFunction {
			found = true
			if got := len(n.Children("params")); got != 2 {
				t.Errorf("expected 2 parameters, got %d", got)
			}
		}
	})
	if !found {
		t.Error("expected to find an arrow function")
	}
}

func TestParseForLoop(t *testing.T) {
	p := NewParser()
	defer p.Close()

	root, err := p.ParseString(`
	for (let i = 0; i < 10; i++) {
		console.log(i);
	}
	`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	found := false
	root.Walk(func(n *ast.Node) {
		if n.Type == ast.NodeForStatement {
			found = true
			if n.Child("init") == nil {
				t.Error("expected for loop to have init")
			}
			if n.Child("test") == nil {
				t.Error("expected for loop to have test")
			}
			if n.Child("update") == nil {
				t.Error("expected for loop to have update")
			}
		}
	})
	if !found {
		t.Error("expected to find a for statement")
	}
}

func TestParseTryCatch(t *testing.T) {
	p := NewParser()
	defer p.Close()

	root, err := p.ParseString(`
	try {
		throw new Error("oops");
	} catch (e) {
		console.error(e);
	} finally {
		cleanup();
	}
	`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	found := false
	root.Walk(func(n *ast.Node) {
		if n.Type == ast.NodeTryStatement {
			found = true
			if n.Child("handler") == nil {
				t.Error("expected try statement to have a catch handler")
			}
			if n.Child("finalizer") == nil {
				t.Error("expected try statement to have a finally block")
			}
		}
	})
	if !found {
		t.Error("expected to find a try statement")
	}
}

func TestParseForLanguageSelectsTypeScript(t *testing.T) {
	root, err := ParseForLanguage("sample.ts", []byte(`const x: number = 1;`))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if root == nil || root.Type != ast.NodeProgram {
		t.Fatalf("expected Program root, got %v", root)
	}
}
