package engine

import (
	"regexp"
	"sort"

	"github.com/tuckertucker/tkr-version-sync/go/pkg/config"
	"github.com/tuckertucker/tkr-version-sync/go/pkg/manifest"
	"github.com/tuckertucker/tkr-version-sync/go/pkg/specifier"
	"github.com/tuckertucker/tkr-version-sync/go/pkg/workspace"
)

// Context is the in-memory graph the policy engine runs over. The context
// owns every instance; groups and dependencies hold non-owning references
// into it.
type Context struct {
	Config        config.Rcfile
	Packages      *workspace.Packages
	SemverGroups  []*SemverGroup
	VersionGroups []*VersionGroup
	Instances     []*Instance

	// instancesByLocation finds a package's instance of a dependency, used to
	// resolve snapped-to targets
	instancesByLocation map[string][]*Instance
}

// NewContext enumerates every instance from the loaded manifests and assigns
// each to exactly one semver group and exactly one version group. The first
// configured selector which matches claims the instance; the appended
// catch-all groups guarantee totality.
func NewContext(rc config.Rcfile, packages *workspace.Packages, filter *regexp.Regexp) (*Context, error) {
	types, err := manifest.TypesFromConfig(rc)
	if err != nil {
		return nil, err
	}

	ctx := &Context{
		Config:              rc,
		Packages:            packages,
		SemverGroups:        NewSemverGroups(rc, packages.AllNames),
		VersionGroups:       NewVersionGroups(rc, packages.AllNames),
		instancesByLocation: make(map[string][]*Instance),
	}

	for _, packageName := range packages.AllNames {
		pkg := packages.ByName[packageName]
		for _, entry := range pkg.Entries(types) {
			if filter != nil && !filter.MatchString(entry.Name) {
				continue
			}
			actual := specifier.None()
			if entry.HasSpecifier {
				actual = specifier.Parse(entry.RawSpecifier)
			}
			inst := &Instance{
				Name:               entry.Name,
				DependencyTypeName: entry.Type.Name,
				Strategy:           entry.Type.Strategy,
				PackageName:        packageName,
				Package:            pkg,
				Path:               entry.Path,
				Pointer:            entry.Pointer,
				Actual:             actual,
				Expected:           actual,
				IsLocal:            entry.Type.Name == manifest.LocalType,
			}
			ctx.assign(inst)
			ctx.Instances = append(ctx.Instances, inst)
			locationKey := packageName + "\x00" + entry.Name
			ctx.instancesByLocation[locationKey] = append(ctx.instancesByLocation[locationKey], inst)
		}
	}
	return ctx, nil
}

// assign gives the instance to the first semver group and the first version
// group whose selectors match it.
func (ctx *Context) assign(inst *Instance) {
	for _, group := range ctx.SemverGroups {
		if group.Selector.CanAdd(inst) {
			inst.SemverGroup = group
			break
		}
	}
	for _, group := range ctx.VersionGroups {
		if group.Selector.CanAdd(inst) {
			inst.VersionGroup = group
			group.GetDependency(inst.Name).AddInstance(inst)
			break
		}
	}
}

// ProcessingOrder returns the version groups in config order with SnappedTo
// groups stable-sorted to the end, so that snap targets are classified and
// fixed before their followers observe them.
func (ctx *Context) ProcessingOrder() []*VersionGroup {
	groups := append([]*VersionGroup(nil), ctx.VersionGroups...)
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Variant != SnappedTo && groups[j].Variant == SnappedTo
	})
	return groups
}

// snapTargetFor resolves the specifier a snapped dependency should copy: the
// same dependency name in the first of the target packages which declares
// it. The target's expected specifier is used so that followers observe the
// post-fix value.
func (ctx *Context) snapTargetFor(dep *Dependency) (specifier.Specifier, bool) {
	for _, packageName := range dep.SnapToPackages {
		for _, inst := range ctx.instancesByLocation[packageName+"\x00"+dep.Name] {
			return inst.Expected, true
		}
	}
	return specifier.None(), false
}
