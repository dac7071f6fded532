package engine

import (
	"context"
	"strings"
	"testing"
)

func TestSign_ReturnsHexDigest(t *testing.T) {
	digest, err := Sign(context.Background(), []byte(`function add(a, b) { return a + b; }`), Options{})
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if len(digest) != 64 {
		t.Fatalf("expected a 64-character digest, got %d chars: %s", len(digest), digest)
	}
	if strings.ToLower(digest) != digest {
		t.Fatalf("expected a lowercase digest, got %s", digest)
	}
	for _, c := range digest {
		if !strings.ContainsRune("0123456789abcdef", c) {
			t.Fatalf("digest contains non-hex character %q: %s", c, digest)
		}
	}
}

func TestSign_RenameInvariance(t *testing.T) {
	a, err := Sign(context.Background(), []byte(`function add(a, b) { return a + b; }`), Options{NonceMode: NonceModeDerived})
	if err != nil {
		t.Fatalf("Sign a: %v", err)
	}
	b, err := Sign(context.Background(), []byte(`function add(x, y) { return x + y; }`), Options{NonceMode: NonceModeDerived})
	if err != nil {
		t.Fatalf("Sign b: %v", err)
	}
	if a != b {
		t.Fatalf("renaming parameters changed the digest: %s != %s", a, b)
	}
}

func TestSign_ObjectPropertyReorderInvariance(t *testing.T) {
	a, err := Sign(context.Background(), []byte(`const o = { x: 1, y: 2 };`), Options{NonceMode: NonceModeDerived})
	if err != nil {
		t.Fatalf("Sign a: %v", err)
	}
	b, err := Sign(context.Background(), []byte(`const o = { y: 2, x: 1 };`), Options{NonceMode: NonceModeDerived})
	if err != nil {
		t.Fatalf("Sign b: %v", err)
	}
	if a != b {
		t.Fatalf("reordering object properties changed the digest: %s != %s", a, b)
	}
}

func TestSign_StructuralChangeAltersDigest(t *testing.T) {
	a, err := Sign(context.Background(), []byte(`function add(a, b) { return a + b; }`), Options{NonceMode: NonceModeDerived})
	if err != nil {
		t.Fatalf("Sign a: %v", err)
	}
	b, err := Sign(context.Background(), []byte(`function add(a, b) { return a - b; }`), Options{NonceMode: NonceModeDerived})
	if err != nil {
		t.Fatalf("Sign b: %v", err)
	}
	if a == b {
		t.Fatalf("changing + to - should change the digest, both were %s", a)
	}
}

func TestSign_TypeScriptOption(t *testing.T) {
	source := []byte(`function add(a: number, b: number): number { return a + b; }`)
	digest, err := Sign(context.Background(), source, Options{TypeScript: true})
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if len(digest) != 64 {
		t.Fatalf("expected a 64-character digest, got %d chars: %s", len(digest), digest)
	}
}

func TestSign_FilenameIsOptional(t *testing.T) {
	digest, err := Sign(context.Background(), []byte(`const x = 1;`), Options{})
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if len(digest) != 64 {
		t.Fatalf("expected a 64-character digest, got %d chars: %s", len(digest), digest)
	}
}

func TestSign_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Sign(ctx, []byte(`const x = 1;`), Options{})
	if err == nil {
		t.Fatal("expected an error from a canceled context")
	}
}
