package engine

import (
	"sort"

	"github.com/tuckertucker/tkr-version-sync/go/pkg/specifier"
)

// Dependency groups every instance sharing the same name within the same
// version group.
type Dependency struct {
	// Name is the dependency name
	Name string
	// Instances are every occurrence of this dependency in the group
	Instances []*Instance
	// Variant is inherited from the version group
	Variant Variant
	// PinnedSpecifier is set when Variant is Pinned
	PinnedSpecifier specifier.Specifier
	// SnapToPackages is set when Variant is SnappedTo
	SnapToPackages []string
	// LocalInstance is the instance whose dependency type is local, if any
	LocalInstance *Instance
	// Expected is the group-wide preferred specifier once computed
	Expected specifier.Specifier
	// State is the most severe state among this dependency's instances
	State InstanceState
}

// AddInstance appends an instance, remembering it separately when it is the
// locally-developed package itself.
func (d *Dependency) AddInstance(inst *Instance) {
	d.Instances = append(d.Instances, inst)
	if inst.IsLocal {
		d.LocalInstance = inst
	}
}

// HasLocalInstance reports whether this dependency is a package developed in
// the workspace.
func (d *Dependency) HasLocalInstance() bool {
	return d.LocalInstance != nil
}

// LocalIsValid reports whether the local package's own version is exact semver.
func (d *Dependency) LocalIsValid() bool {
	return d.LocalInstance != nil && d.LocalInstance.Actual.Kind() == specifier.KindExact
}

// AllAreSimpleSemver reports whether every instance's specifier is simple semver.
func (d *Dependency) AllAreSimpleSemver() bool {
	for _, inst := range d.Instances {
		if !inst.Actual.IsSimpleSemver() {
			return false
		}
	}
	return len(d.Instances) > 0
}

// AllAreIdentical reports whether every instance has byte-identical raw text.
func (d *Dependency) AllAreIdentical() bool {
	if len(d.Instances) == 0 {
		return false
	}
	first := d.Instances[0].Actual
	for _, inst := range d.Instances[1:] {
		if !inst.Actual.ByteEqual(first) {
			return false
		}
	}
	return true
}

// HighestOrLowest returns the preferred specifier among the simple semver
// instances according to the group's variant. Permuting the input manifests
// does not change the winner: ties on version number are broken by range
// greediness, and on a full tie (eg. "1.2" and "1.2.0") the earlier instance
// wins, where Classify has already sorted instances by package name.
func (d *Dependency) HighestOrLowest() specifier.Specifier {
	preferHighest := d.Variant == HighestSemver
	preferred := specifier.None()
	for _, inst := range d.Instances {
		if !inst.Actual.IsSimpleSemver() {
			continue
		}
		if preferred.IsMissing() {
			preferred = inst.Actual
			continue
		}
		order := inst.Actual.Compare(preferred)
		if (preferHighest && order > 0) || (!preferHighest && order < 0) {
			preferred = inst.Actual
		}
	}
	return preferred
}

// SortInstances orders instances by actual specifier descending, then package
// name ascending. Missing specifiers sort last. This order is observable in
// reports and in the order of on-disk mutations.
func (d *Dependency) SortInstances() {
	sort.SliceStable(d.Instances, func(i, j int) bool {
		a, b := d.Instances[i], d.Instances[j]
		if a.Actual.IsMissing() != b.Actual.IsMissing() {
			return b.Actual.IsMissing()
		}
		if order := b.Actual.Compare(a.Actual); order != 0 {
			return order < 0
		}
		if a.PackageName != b.PackageName {
			return a.PackageName < b.PackageName
		}
		return a.Pointer < b.Pointer
	})
}

// RollupState sets the dependency's state to the most severe among its
// instances.
func (d *Dependency) RollupState() {
	d.State = Unknown
	for _, inst := range d.Instances {
		if inst.State.Severity() > d.State.Severity() {
			d.State = inst.State
		}
	}
}
