package engine

import (
	"testing"

	"github.com/tuckertucker/tkr-version-sync/go/pkg/specifier"
)

func makeInstance(name, typeName, packageName, raw string) *Instance {
	return &Instance{
		Name:               name,
		DependencyTypeName: typeName,
		PackageName:        packageName,
		Actual:             specifier.Parse(raw),
	}
}

// TestSelectorEmptyAxesMatchEverything tests that a selector with no filters
// claims any instance
func TestSelectorEmptyAxesMatchEverything(t *testing.T) {
	selector := &Selector{}
	if !selector.CanAdd(makeInstance("react", "prod", "package-a", "1.0.0")) {
		t.Error("empty selector should match everything")
	}
}

// TestSelectorDependencies tests the dependency name axis
func TestSelectorDependencies(t *testing.T) {
	cases := []struct {
		patterns []string
		name     string
		expected bool
	}{
		{[]string{"react"}, "react", true},
		{[]string{"react"}, "react-dom", false},
		{[]string{"react*"}, "react-dom", true},
		{[]string{"@types/**"}, "@types/node", true},
		{[]string{"!react"}, "react", false},
		{[]string{"!react"}, "lodash", true},
		{[]string{"react", "lodash"}, "lodash", true},
		{[]string{"react", "lodash"}, "express", false},
	}
	for _, tc := range cases {
		selector := &Selector{Dependencies: tc.patterns}
		inst := makeInstance(tc.name, "prod", "package-a", "1.0.0")
		if got := selector.CanAdd(inst); got != tc.expected {
			t.Errorf("Dependencies %v with %q = %v, want %v", tc.patterns, tc.name, got, tc.expected)
		}
	}
}

// TestSelectorLocalToken tests the $LOCAL token expanding to workspace
// package names
func TestSelectorLocalToken(t *testing.T) {
	selector := &Selector{Dependencies: []string{LocalToken}}
	selector.WithLocalNames([]string{"package-a", "package-b"})

	if !selector.CanAdd(makeInstance("package-a", "prod", "package-b", "1.0.0")) {
		t.Error("$LOCAL should match a workspace package name")
	}
	if selector.CanAdd(makeInstance("react", "prod", "package-b", "1.0.0")) {
		t.Error("$LOCAL should not match a third-party name")
	}
}

// TestSelectorDependencyTypes tests the dependency type axis
func TestSelectorDependencyTypes(t *testing.T) {
	cases := []struct {
		filter   []string
		typeName string
		expected bool
	}{
		{[]string{"prod"}, "prod", true},
		{[]string{"prod"}, "dev", false},
		{[]string{"!dev"}, "prod", true},
		{[]string{"!dev"}, "dev", false},
		{[]string{"**"}, "peer", true},
	}
	for _, tc := range cases {
		selector := &Selector{DependencyTypes: tc.filter}
		inst := makeInstance("react", tc.typeName, "package-a", "1.0.0")
		if got := selector.CanAdd(inst); got != tc.expected {
			t.Errorf("DependencyTypes %v with %q = %v, want %v", tc.filter, tc.typeName, got, tc.expected)
		}
	}
}

// TestSelectorPackages tests the package name axis
func TestSelectorPackages(t *testing.T) {
	selector := &Selector{Packages: []string{"@app/*"}}
	if !selector.CanAdd(makeInstance("react", "prod", "@app/web", "1.0.0")) {
		t.Error("glob should match the package name")
	}
	if selector.CanAdd(makeInstance("react", "prod", "tooling", "1.0.0")) {
		t.Error("glob should not match other package names")
	}
}

// TestSelectorSpecifierTypes tests the specifier type axis
func TestSelectorSpecifierTypes(t *testing.T) {
	cases := []struct {
		filter   []string
		raw      string
		expected bool
	}{
		{[]string{"exact"}, "1.2.3", true},
		{[]string{"exact"}, "^1.2.3", false},
		{[]string{"range"}, "^1.2.3", true},
		{[]string{"workspace-protocol"}, "workspace:*", true},
		{[]string{"!unsupported"}, "wat!wat", false},
		{[]string{"!unsupported"}, "1.2.3", true},
	}
	for _, tc := range cases {
		selector := &Selector{SpecifierTypes: tc.filter}
		inst := makeInstance("react", "prod", "package-a", tc.raw)
		if got := selector.CanAdd(inst); got != tc.expected {
			t.Errorf("SpecifierTypes %v with %q = %v, want %v", tc.filter, tc.raw, got, tc.expected)
		}
	}
}

// TestSelectorAllAxesMustMatch tests that every non-empty axis must accept
// the instance
func TestSelectorAllAxesMustMatch(t *testing.T) {
	selector := &Selector{
		Dependencies:    []string{"react"},
		DependencyTypes: []string{"prod"},
		Packages:        []string{"package-a"},
		SpecifierTypes:  []string{"exact"},
	}
	if !selector.CanAdd(makeInstance("react", "prod", "package-a", "1.0.0")) {
		t.Error("all axes match, instance should be claimed")
	}
	if selector.CanAdd(makeInstance("react", "dev", "package-a", "1.0.0")) {
		t.Error("one failing axis should reject the instance")
	}
}
