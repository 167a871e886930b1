package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeRcfile(t *testing.T, name, contents string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(contents), 0644); err != nil {
		t.Fatalf("Failed to write rcfile: %v", err)
	}
	return dir
}

// TestLoadDefaults tests that a directory with no rcfile yields defaults
func TestLoadDefaults(t *testing.T) {
	rc, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if rc.Indent != "  " {
		t.Errorf("Expected default indent of two spaces, got %q", rc.Indent)
	}
	if !rc.FormatBugs || !rc.FormatRepository {
		t.Error("Expected format flags to default to true")
	}
	if len(rc.SortAz) == 0 || len(rc.SortFirst) == 0 {
		t.Error("Expected default sort lists")
	}
}

// TestLoadJSON tests reading a JSON rcfile
func TestLoadJSON(t *testing.T) {
	dir := writeRcfile(t, ".versionsyncrc.json", `{
		"source": ["package.json", "apps/*/package.json"],
		"semverGroups": [{"range": "^", "dependencies": ["react"]}],
		"versionGroups": [{"pinVersion": "1.0.0", "dependencies": ["foo"]}],
		"indent": "\t"
	}`)

	rc, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(rc.Source) != 2 || rc.Source[1] != "apps/*/package.json" {
		t.Errorf("Unexpected source: %v", rc.Source)
	}
	if len(rc.SemverGroups) != 1 || *rc.SemverGroups[0].Range != "^" {
		t.Errorf("Unexpected semverGroups: %+v", rc.SemverGroups)
	}
	if len(rc.VersionGroups) != 1 || rc.VersionGroups[0].PinVersion != "1.0.0" {
		t.Errorf("Unexpected versionGroups: %+v", rc.VersionGroups)
	}
	if rc.Indent != "\t" {
		t.Errorf("Expected tab indent, got %q", rc.Indent)
	}
}

// TestLoadYAML tests reading a YAML rcfile
func TestLoadYAML(t *testing.T) {
	dir := writeRcfile(t, ".versionsyncrc.yaml", `
source:
  - package.json
versionGroups:
  - dependencies: [foo]
    isBanned: true
customTypes:
  engines:
    strategy: versionsByName
    path: engines
`)

	rc, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(rc.VersionGroups) != 1 || !rc.VersionGroups[0].IsBanned {
		t.Errorf("Unexpected versionGroups: %+v", rc.VersionGroups)
	}
	if rc.CustomTypes["engines"].Path != "engines" {
		t.Errorf("Unexpected customTypes: %+v", rc.CustomTypes)
	}
}

// TestLoadRejectsInvalidConfig tests the fatal configuration errors
func TestLoadRejectsInvalidConfig(t *testing.T) {
	cases := []struct {
		name     string
		contents string
	}{
		{"unknown strategy", `{"customTypes":{"x":{"strategy":"wat","path":"x"}}}`},
		{"missing namePath", `{"customTypes":{"x":{"strategy":"name~version","path":"x"}}}`},
		{"missing path", `{"customTypes":{"x":{"strategy":"version","path":""}}}`},
		{"empty semver group", `{"semverGroups":[{"dependencies":["x"]}]}`},
		{"unknown range", `{"semverGroups":[{"range":"wat"}]}`},
		{"unknown policy", `{"versionGroups":[{"policy":"wat"}]}`},
		{"unknown preferVersion", `{"versionGroups":[{"preferVersion":"wat"}]}`},
		{"two behaviours", `{"versionGroups":[{"isBanned":true,"pinVersion":"1.0.0"}]}`},
		{"bad source", `{"source":["packages/*"]}`},
		{"malformed json", `{wat}`},
	}
	for _, tc := range cases {
		dir := writeRcfile(t, ".versionsyncrc.json", tc.contents)
		if _, err := Load(dir); err == nil {
			t.Errorf("%s: expected an error", tc.name)
		}
	}
}

// TestLoadPlainRcfileIsJSON tests that the extensionless rcfile parses as JSON
func TestLoadPlainRcfileIsJSON(t *testing.T) {
	dir := writeRcfile(t, ".versionsyncrc", `{"indent": "    "}`)

	rc, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if rc.Indent != "    " {
		t.Errorf("Expected four-space indent, got %q", rc.Indent)
	}
}
