package manifest

import (
	"path/filepath"
	"testing"

	"github.com/tuckertucker/tkr-version-sync/go/pkg/config"
)

// TestEntriesFromDefaultTypes tests extracting instances from every default
// dependency type location
func TestEntriesFromDefaultTypes(t *testing.T) {
	pkg, err := Read(filepath.Join("testdata", "package.json"))
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	types, err := TypesFromConfig(config.Rcfile{})
	if err != nil {
		t.Fatalf("TypesFromConfig failed: %v", err)
	}

	entries := pkg.Entries(types)

	// 3 prod + 2 dev + 1 peer + 1 pnpm override + 1 local
	if len(entries) != 8 {
		t.Fatalf("Expected 8 entries, got %d", len(entries))
	}

	byType := make(map[string]int)
	for _, entry := range entries {
		byType[entry.Type.Name]++
	}
	if byType["prod"] != 3 {
		t.Errorf("Expected 3 prod entries, got %d", byType["prod"])
	}
	if byType["dev"] != 2 {
		t.Errorf("Expected 2 dev entries, got %d", byType["dev"])
	}
	if byType["peer"] != 1 {
		t.Errorf("Expected 1 peer entry, got %d", byType["peer"])
	}
	if byType["pnpmOverrides"] != 1 {
		t.Errorf("Expected 1 pnpmOverrides entry, got %d", byType["pnpmOverrides"])
	}
	if byType[LocalType] != 1 {
		t.Errorf("Expected 1 local entry, got %d", byType[LocalType])
	}
}

// TestLocalEntry tests the entry for the package's own version property
func TestLocalEntry(t *testing.T) {
	pkg := New("/repo/package.json", []byte(`{"name":"my-app","version":"1.2.3"}`))
	types, _ := TypesFromConfig(config.Rcfile{})

	var local *Entry
	for _, entry := range pkg.Entries(types) {
		if entry.Type.Name == LocalType {
			localCopy := entry
			local = &localCopy
		}
	}
	if local == nil {
		t.Fatal("Expected a local entry")
	}
	if local.Name != "my-app" {
		t.Errorf("Expected name 'my-app', got '%s'", local.Name)
	}
	if local.RawSpecifier != "1.2.3" || !local.HasSpecifier {
		t.Errorf("Expected specifier '1.2.3', got '%s'", local.RawSpecifier)
	}
	if local.Pointer != "/version" {
		t.Errorf("Expected pointer '/version', got '%s'", local.Pointer)
	}
}

// TestLocalEntryWithoutVersion tests that a manifest without a version still
// yields a local entry with no specifier
func TestLocalEntryWithoutVersion(t *testing.T) {
	pkg := New("/repo/package.json", []byte(`{"name":"my-app"}`))
	types, _ := TypesFromConfig(config.Rcfile{})

	for _, entry := range pkg.Entries(types) {
		if entry.Type.Name == LocalType {
			if entry.HasSpecifier {
				t.Error("Expected HasSpecifier to be false")
			}
			return
		}
	}
	t.Fatal("Expected a local entry")
}

// TestCustomTypeStrategies tests each of the four extraction strategies
func TestCustomTypeStrategies(t *testing.T) {
	rc := config.Rcfile{
		DependencyTypes: []string{"engines", "packageManager", "customLocal", "someVersion"},
		CustomTypes: map[string]config.CustomType{
			"engines":        {Strategy: "versionsByName", Path: "engines"},
			"packageManager": {Strategy: "name@version", Path: "packageManager"},
			"customLocal":    {Strategy: "name~version", Path: "meta.version", NamePath: "meta.name"},
			"someVersion":    {Strategy: "version", Path: "someVersion"},
		},
	}
	pkg := New("/repo/package.json", []byte(`{
		"name": "my-app",
		"engines": {"node": ">=18.0.0", "npm": ">=9.0.0"},
		"packageManager": "pnpm@9.0.0",
		"meta": {"name": "meta-thing", "version": "2.0.0"},
		"someVersion": "3.0.0"
	}`))

	types, err := TypesFromConfig(rc)
	if err != nil {
		t.Fatalf("TypesFromConfig failed: %v", err)
	}
	entries := pkg.Entries(types)

	byName := make(map[string]Entry)
	for _, entry := range entries {
		byName[entry.Name] = entry
	}

	if entry := byName["node"]; entry.RawSpecifier != ">=18.0.0" {
		t.Errorf("versionsByName: expected '>=18.0.0', got '%s'", entry.RawSpecifier)
	}
	if entry := byName["pnpm"]; entry.RawSpecifier != "9.0.0" {
		t.Errorf("name@version: expected name 'pnpm' and '9.0.0', got '%s'", entry.RawSpecifier)
	}
	if entry := byName["meta-thing"]; entry.RawSpecifier != "2.0.0" {
		t.Errorf("name~version: expected '2.0.0', got '%s'", entry.RawSpecifier)
	}
	if entry := byName["someVersion"]; entry.RawSpecifier != "3.0.0" {
		t.Errorf("version: expected '3.0.0', got '%s'", entry.RawSpecifier)
	}
}

// TestTypeNameMatches tests the include/exclude semantics of dependencyTypes
func TestTypeNameMatches(t *testing.T) {
	cases := []struct {
		name     string
		filter   []string
		expected bool
	}{
		{"prod", nil, true},
		{"prod", []string{"**"}, true},
		{"prod", []string{"prod"}, true},
		{"dev", []string{"prod"}, false},
		{"dev", []string{"!dev"}, false},
		{"prod", []string{"!dev"}, true},
		{"prod", []string{"!dev", "prod"}, true},
	}
	for _, tc := range cases {
		if got := TypeNameMatches(tc.name, tc.filter); got != tc.expected {
			t.Errorf("TypeNameMatches(%q, %v) = %v, want %v", tc.name, tc.filter, got, tc.expected)
		}
	}
}

// TestScopedNameAtVersion tests splitting scoped package names
func TestScopedNameAtVersion(t *testing.T) {
	name, raw, ok := splitNameAtVersion("@scope/tool@^2.0.0")
	if !ok || name != "@scope/tool" || raw != "^2.0.0" {
		t.Errorf("splitNameAtVersion = (%q, %q, %v)", name, raw, ok)
	}
}
