package engine

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/tuckertucker/tkr-version-sync/go/pkg/manifest"
)

// LocalToken in a dependencies pattern expands to the set of package names
// developed in this workspace.
const LocalToken = "$LOCAL"

// Selector decides whether an instance belongs to a group. Each axis is a
// list of patterns; an empty axis matches everything.
type Selector struct {
	// Dependencies are glob patterns matched against the dependency name,
	// plus the reserved $LOCAL token
	Dependencies []string
	// DependencyTypes are type names with optional "!" negation and the "**" wildcard
	DependencyTypes []string
	// Label optionally describes the group in reports
	Label string
	// Packages are glob patterns matched against the name of the package the
	// instance is located in
	Packages []string
	// SpecifierTypes are specifier type names such as "exact" or
	// "workspace-protocol", with optional "!" negation
	SpecifierTypes []string

	// localNames are the workspace's own package names, for $LOCAL
	localNames map[string]bool
}

// WithLocalNames records the workspace package names the $LOCAL token
// expands to.
func (s *Selector) WithLocalNames(names []string) {
	s.localNames = make(map[string]bool, len(names))
	for _, name := range names {
		s.localNames[name] = true
	}
}

// CanAdd reports whether the instance matches every non-empty axis of this
// selector. The first configured selector which returns true claims the
// instance.
func (s *Selector) CanAdd(inst *Instance) bool {
	return s.matchesName(inst.Name) &&
		manifest.TypeNameMatches(inst.DependencyTypeName, s.DependencyTypes) &&
		matchesGlobs(inst.PackageName, s.Packages) &&
		matchesExact(inst.Actual.ConfigName(), s.SpecifierTypes)
}

func (s *Selector) matchesName(name string) bool {
	return matchesWith(name, s.Dependencies, func(pattern, value string) bool {
		if pattern == LocalToken {
			return s.localNames[value]
		}
		matched, err := doublestar.Match(pattern, value)
		return err == nil && matched
	})
}

func matchesGlobs(value string, patterns []string) bool {
	return matchesWith(value, patterns, func(pattern, value string) bool {
		matched, err := doublestar.Match(pattern, value)
		return err == nil && matched
	})
}

func matchesExact(value string, patterns []string) bool {
	return matchesWith(value, patterns, func(pattern, value string) bool {
		return pattern == value
	})
}

// matchesWith applies a pattern list with "!" negation semantics: a value is
// rejected when any negated pattern matches, required to match a positive
// pattern when any exist, and accepted otherwise.
func matchesWith(value string, patterns []string, match func(pattern, value string) bool) bool {
	if len(patterns) == 0 {
		return true
	}
	hasPositive := false
	positiveMatched := false
	for _, pattern := range patterns {
		if negated := strings.TrimPrefix(pattern, "!"); negated != pattern {
			if match(negated, value) {
				return false
			}
			continue
		}
		hasPositive = true
		if match(pattern, value) {
			positiveMatched = true
		}
	}
	return !hasPositive || positiveMatched
}
