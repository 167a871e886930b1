package engine

import (
	"sort"

	"github.com/tuckertucker/tkr-version-sync/go/pkg/config"
	"github.com/tuckertucker/tkr-version-sync/go/pkg/specifier"
)

// Variant is the behaviour a version group is configured with.
type Variant int

const (
	// HighestSemver prefers the highest simple semver among the instances
	HighestSemver Variant = iota
	// LowestSemver prefers the lowest simple semver among the instances
	LowestSemver
	// Banned expects every matching dependency to be removed
	Banned
	// Ignored exempts every matching instance from version linting
	Ignored
	// Pinned expects every instance to carry a specific literal specifier
	Pinned
	// SameRange expects every pair of instances to accept each other's versions
	SameRange
	// SnappedTo copies the preferred specifier from a nominated target package
	SnappedTo
)

// VersionGroup is the policy for what version number an instance should carry.
type VersionGroup struct {
	Selector Selector
	Variant  Variant
	// PinnedSpecifier is the literal specifier when Variant is Pinned
	PinnedSpecifier specifier.Specifier
	// SnapTo names the packages to copy specifiers from when Variant is SnappedTo
	SnapTo []string

	dependencies map[string]*Dependency
}

// GetDependency returns this group's dependency for a name, creating it on
// first sight.
func (g *VersionGroup) GetDependency(name string) *Dependency {
	if g.dependencies == nil {
		g.dependencies = make(map[string]*Dependency)
	}
	dep, ok := g.dependencies[name]
	if !ok {
		dep = &Dependency{
			Name:            name,
			Variant:         g.Variant,
			PinnedSpecifier: g.PinnedSpecifier,
			SnapToPackages:  g.SnapTo,
		}
		g.dependencies[name] = dep
	}
	return dep
}

// SortedDependencies returns this group's dependencies by name ascending,
// which fixes the order of report entries and on-disk mutations.
func (g *VersionGroup) SortedDependencies() []*Dependency {
	deps := make([]*Dependency, 0, len(g.dependencies))
	for _, dep := range g.dependencies {
		deps = append(deps, dep)
	}
	sort.Slice(deps, func(i, j int) bool {
		return deps[i].Name < deps[j].Name
	})
	return deps
}

// NewVersionGroups builds the configured version groups in order and appends
// the catch-all standard group preferring the highest semver.
func NewVersionGroups(rc config.Rcfile, localNames []string) []*VersionGroup {
	var groups []*VersionGroup
	for _, cfg := range rc.VersionGroups {
		group := &VersionGroup{
			Selector: Selector{
				Dependencies:    cfg.Dependencies,
				DependencyTypes: cfg.DependencyTypes,
				Label:           cfg.Label,
				Packages:        cfg.Packages,
				SpecifierTypes:  cfg.SpecifierTypes,
			},
		}
		switch {
		case cfg.IsBanned:
			group.Variant = Banned
		case cfg.IsIgnored:
			group.Variant = Ignored
		case cfg.PinVersion != "":
			group.Variant = Pinned
			group.PinnedSpecifier = specifier.Parse(cfg.PinVersion)
		case cfg.Policy == "sameRange":
			group.Variant = SameRange
		case len(cfg.SnapTo) > 0:
			group.Variant = SnappedTo
			group.SnapTo = cfg.SnapTo
		case cfg.PreferVersion == "lowestSemver":
			group.Variant = LowestSemver
		default:
			group.Variant = HighestSemver
		}
		group.Selector.WithLocalNames(localNames)
		groups = append(groups, group)
	}
	catchAll := &VersionGroup{Variant: HighestSemver}
	catchAll.Selector.WithLocalNames(localNames)
	return append(groups, catchAll)
}
