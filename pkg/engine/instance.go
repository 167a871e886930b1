package engine

import (
	"github.com/tuckertucker/tkr-version-sync/go/pkg/manifest"
	"github.com/tuckertucker/tkr-version-sync/go/pkg/specifier"
)

// Instance is a single occurrence of one dependency declaration at one
// location in one manifest. Instances are created once from manifests,
// mutated only by the classifier and the fixer, and destroyed with the run.
type Instance struct {
	// Name is the dependency name, eg. "react"
	Name string
	// DependencyTypeName is the name of the location this instance was found
	// under, eg. "prod", "dev", "local"
	DependencyTypeName string
	// Strategy defines how this instance is written back to its manifest
	Strategy manifest.Strategy
	// PackageName is the name of the package this instance is located in
	PackageName string
	// Package is a non-owning back-reference to the manifest
	Package *manifest.Package
	// Path is the gjson path to the specifier value within the manifest
	Path string
	// Pointer is the display form of Path, eg. "/dependencies/react"
	Pointer string
	// Actual is the specifier as read from disk
	Actual specifier.Specifier
	// Expected starts equal to Actual and is overwritten by the classifier
	// with the specifier this instance should have
	Expected specifier.Specifier
	// IsLocal is true for the instance representing a package's own version property
	IsLocal bool
	// SemverGroup is the one semver group which claimed this instance
	SemverGroup *SemverGroup
	// VersionGroup is the one version group which claimed this instance
	VersionGroup *VersionGroup
	// State is assigned by the classifier
	State InstanceState
}

// setState records the classifier's decision and the specifier this instance
// is expected to have.
func (inst *Instance) setState(state InstanceState, expected specifier.Specifier) {
	inst.State = state
	inst.Expected = expected
}

// requiredRange returns the range operator this instance's semver group
// requires of it, if any.
func (inst *Instance) requiredRange() (specifier.Range, bool) {
	if inst.SemverGroup == nil {
		return specifier.RangeExact, false
	}
	return inst.SemverGroup.RequiredRange()
}

// matchesRequiredRange is the sg-ok predicate: vacuously true when no range
// is required or the specifier is not simple semver, otherwise true when the
// actual range operator equals the required one.
func (inst *Instance) matchesRequiredRange() bool {
	required, ok := inst.requiredRange()
	if !ok || !inst.Actual.IsSimpleSemver() {
		return true
	}
	actual, ok := inst.Actual.GetRange()
	return ok && actual == required
}
