package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestSignCmd_StdinToDigest(t *testing.T) {
	cmd := signCmd()
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader("function f(x) { return x + 1; }"))
	cmd.SetOut(&out)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("sign command failed: %v", err)
	}

	digest := strings.TrimSpace(out.String())
	if len(digest) != 64 {
		t.Errorf("expected a 64-character digest, got %d chars: %q", len(digest), digest)
	}
}

func TestSignCmd_NoFlags(t *testing.T) {
	cmd := signCmd()
	if cmd.Flags().HasFlags() {
		t.Error("sign command should declare no flags of its own")
	}
}

func TestSignCmd_InvalidProgram(t *testing.T) {
	cmd := signCmd()
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader("function ( { this is not valid js"))
	cmd.SetOut(&out)

	if err := cmd.Execute(); err == nil {
		t.Error("expected an error for an unparseable program")
	}
}

func TestScanCmd_FlagsExist(t *testing.T) {
	cmd := scanCmd()

	expectedFlags := []string{"recursive", "format", "nonce-mode", "include", "exclude", "max-concurrency", "config", "no-progress"}
	for _, flagName := range expectedFlags {
		if cmd.Flags().Lookup(flagName) == nil {
			t.Errorf("Missing expected flag: --%s", flagName)
		}
	}
}

func TestScanCmd_NoPathsError(t *testing.T) {
	cmd := scanCmd()
	cmd.SetArgs([]string{})

	if err := cmd.Execute(); err == nil {
		t.Error("Expected error when no paths specified")
	}
}

func TestCompareCmd_FlagsExist(t *testing.T) {
	cmd := compareCmd()

	expectedFlags := []string{"recursive", "format", "nonce-mode", "include", "exclude", "max-concurrency", "config", "no-progress"}
	for _, flagName := range expectedFlags {
		if cmd.Flags().Lookup(flagName) == nil {
			t.Errorf("Missing expected flag: --%s", flagName)
		}
	}
}

func TestCompareCmd_NoPathsError(t *testing.T) {
	cmd := compareCmd()
	cmd.SetArgs([]string{})

	if err := cmd.Execute(); err == nil {
		t.Error("Expected error when no paths specified")
	}
}

func TestExitError_Error(t *testing.T) {
	err := &ExitError{Code: 1, Message: "test error"}
	if err.Error() != "test error" {
		t.Errorf("Error() should return message, got '%s'", err.Error())
	}
}

func TestVersionCmd_FlagsExist(t *testing.T) {
	cmd := versionCmd()

	if cmd == nil {
		t.Fatal("versionCmd should not return nil")
	}

	if cmd.Flags().Lookup("verbose") == nil {
		t.Error("Missing expected flag: --verbose")
	}
}

func TestVersionCmd_ShortFlag(t *testing.T) {
	cmd := versionCmd()

	if cmd.Flags().ShorthandLookup("v") == nil {
		t.Error("Missing short flag -v for --verbose")
	}
}
