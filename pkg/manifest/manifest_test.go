package manifest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestRead tests loading a valid package.json file
func TestRead(t *testing.T) {
	pkg, err := Read(filepath.Join("testdata", "package.json"))
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	if pkg.Name() != "test-project" {
		t.Errorf("Expected name 'test-project', got '%s'", pkg.Name())
	}

	version, ok := pkg.Version()
	if !ok || version != "1.0.0" {
		t.Errorf("Expected version '1.0.0', got '%s' (ok=%v)", version, ok)
	}

	if got := pkg.Get("dependencies.express").String(); got != "^4.18.2" {
		t.Errorf("Expected express '^4.18.2', got '%s'", got)
	}
}

// TestRead_NonExistent tests reading a missing file
func TestRead_NonExistent(t *testing.T) {
	if _, err := Read("nonexistent/package.json"); err == nil {
		t.Fatal("Expected error for non-existent file, got nil")
	}
}

// TestRead_InvalidJSON tests reading a file which is not JSON
func TestRead_InvalidJSON(t *testing.T) {
	tmpFile, err := os.CreateTemp("", "invalid-package-*.json")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	defer os.Remove(tmpFile.Name())

	tmpFile.WriteString("{invalid json}")
	tmpFile.Close()

	if _, err := Read(tmpFile.Name()); err == nil {
		t.Fatal("Expected error for invalid JSON, got nil")
	}
}

// TestNameFallsBackToDirectory tests the name fallback for unnamed manifests
func TestNameFallsBackToDirectory(t *testing.T) {
	pkg := New("/repo/packages/my-lib/package.json", []byte(`{"version":"1.0.0"}`))
	if pkg.Name() != "my-lib" {
		t.Errorf("Expected fallback name 'my-lib', got '%s'", pkg.Name())
	}
}

// TestSetAndDelete tests in-place mutation of the JSON document
func TestSetAndDelete(t *testing.T) {
	pkg := New("/repo/package.json", []byte(`{"name":"a","version":"1.0.0","dependencies":{"foo":"1.0.0","bar":"2.0.0"}}`))

	if err := pkg.Set("dependencies.foo", "^9.9.9"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if got := pkg.Get("dependencies.foo").String(); got != "^9.9.9" {
		t.Errorf("Expected '^9.9.9', got '%s'", got)
	}

	if err := pkg.Delete("dependencies.bar"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if pkg.Get("dependencies.bar").Exists() {
		t.Error("Expected bar to be deleted")
	}

	// untouched properties are preserved
	if got := pkg.Get("version").String(); got != "1.0.0" {
		t.Errorf("Expected untouched version '1.0.0', got '%s'", got)
	}
}

// TestSerialize tests indentation and the trailing newline
func TestSerialize(t *testing.T) {
	pkg := New("/repo/package.json", []byte(`{"name":"a","version":"1.0.0"}`))

	out := string(pkg.Serialize("  "))
	if !strings.HasSuffix(out, "\n") {
		t.Error("Expected trailing newline")
	}
	if !strings.Contains(out, "\n  \"name\"") {
		t.Errorf("Expected two-space indent, got:\n%s", out)
	}

	// serialising is stable
	again := New("/repo/package.json", []byte(out))
	if string(again.Serialize("  ")) != out {
		t.Error("Serialize must be idempotent")
	}
}

// TestEscapeKey tests escaping dependency names for path use
func TestEscapeKey(t *testing.T) {
	pkg := New("/repo/package.json", []byte(`{"dependencies":{"socket.io":"4.0.0"}}`))
	if got := pkg.Get("dependencies." + EscapeKey("socket.io")).String(); got != "4.0.0" {
		t.Errorf("Expected '4.0.0', got '%s'", got)
	}
}
