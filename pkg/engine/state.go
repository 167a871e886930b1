// Package engine assigns every dependency instance to its semver and version
// groups, computes the expected specifier for every dependency, and
// classifies every instance into the full status taxonomy.
package engine

import "strings"

// InstanceState encodes the joint outcome of evaluating an instance against
// its semver group and its version group. The taxonomy is closed: every
// instance ends the run in exactly one non-Unknown state.
type InstanceState int

const (
	// Unknown is the zero value before classification has run
	Unknown InstanceState = iota

	// Valid

	// IsIgnored - instance is in an ignored version group
	IsIgnored
	// IsLocalAndValid - instance is a local package whose version is exact semver
	IsLocalAndValid
	// IsIdenticalToLocal - instance is identical to its locally-developed package
	IsIdenticalToLocal
	// SatisfiesLocal - instance matches the local package's version number and
	// its semver group, a loose match worth highlighting
	SatisfiesLocal
	// IsHighestOrLowestSemver - instance is identical to the preferred semver
	// in its group
	IsHighestOrLowestSemver
	// SatisfiesHighestOrLowestSemver - instance matches the preferred semver's
	// number and its semver group, a loose match worth highlighting
	SatisfiesHighestOrLowestSemver
	// IsNonSemverButIdentical - no instance is simple semver but all are identical
	IsNonSemverButIdentical
	// IsIdenticalToPin - instance is identical to its pinned version
	IsIdenticalToPin
	// SatisfiesSameRangeGroup - instance's range accepts and is accepted by
	// every other instance in its same-range group
	SatisfiesSameRangeGroup
	// IsIdenticalToSnapTarget - instance is identical to the snapped-to instance
	IsIdenticalToSnapTarget
	// SatisfiesSnapTarget - instance matches the snapped-to instance's number
	// and its semver group
	SatisfiesSnapTarget

	// Suspect

	// RefuseToBanLocal - a local instance is in a banned version group, local
	// dependency specifiers are never changed
	RefuseToBanLocal
	// RefuseToPinLocal - a local instance mismatches its pinned version group
	RefuseToPinLocal
	// RefuseToSnapLocal - a local instance is in a snapped-to version group
	RefuseToSnapLocal
	// InvalidLocalVersion - a local instance's version is not exact semver
	InvalidLocalVersion

	// Invalid: Fixable

	// IsBanned - instance is in a banned version group, the property should be deleted
	IsBanned
	// DiffersToLocal - instance mismatches its locally-developed package
	DiffersToLocal
	// DiffersToHighestOrLowestSemver - instance mismatches the preferred semver
	DiffersToHighestOrLowestSemver
	// DiffersToSnapTarget - instance mismatches the snapped-to instance
	DiffersToSnapTarget
	// DiffersToPin - instance mismatches its pinned version
	DiffersToPin
	// SemverRangeMismatch - only the range operator is wrong, fixing it
	// satisfies both groups
	SemverRangeMismatch
	// PinOverridesSemverRange - the semver group wants a range which differs
	// from the pinned version, the pin wins
	PinOverridesSemverRange
	// PinOverridesSemverRangeMismatch - as PinOverridesSemverRange but the
	// instance also mismatches its semver group
	PinOverridesSemverRangeMismatch

	// Invalid: Unfixable

	// DependsOnInvalidLocalPackage - the local package's own version is not
	// exact semver, what this instance should be cannot be known
	DependsOnInvalidLocalPackage
	// NonSemverMismatch - instances mismatch and not all are simple semver
	NonSemverMismatch
	// SameRangeMismatch - instance's range disagrees with another in its
	// same-range group, which range the user wants cannot be known
	SameRangeMismatch
	// DependsOnMissingSnapTarget - no snapped-to package declares this
	// dependency, the instance is orphaned
	DependsOnMissingSnapTarget

	// Invalid: Conflict between semver group and version group

	// MatchConflictsWithHighestOrLowestSemver - instance matches the preferred
	// number but the required range cannot satisfy it
	MatchConflictsWithHighestOrLowestSemver
	// MismatchConflictsWithHighestOrLowestSemver - instance mismatches the
	// preferred number and the required range cannot satisfy it
	MismatchConflictsWithHighestOrLowestSemver
	// MatchConflictsWithSnapTarget - instance matches the snapped-to number
	// but the required range cannot satisfy it
	MatchConflictsWithSnapTarget
	// MismatchConflictsWithSnapTarget - instance mismatches the snapped-to
	// number and the required range cannot satisfy it
	MismatchConflictsWithSnapTarget
	// MatchConflictsWithLocal - instance matches the local package's number
	// but the required range cannot satisfy it
	MatchConflictsWithLocal
	// MismatchConflictsWithLocal - instance mismatches the local package's
	// number and the required range cannot satisfy it
	MismatchConflictsWithLocal
)

// Category is the top level of the taxonomy.
type Category int

const (
	CategoryUnknown Category = iota
	CategoryValid
	CategorySuspect
	CategoryInvalid
)

// InvalidKind subdivides invalid states.
type InvalidKind int

const (
	NotInvalid InvalidKind = iota
	Fixable
	Unfixable
	Conflict
)

// Category derives the top-level category of a state. It is a pure function
// of the state so exhaustiveness stays machine-checked in one place.
func (s InstanceState) Category() Category {
	switch s {
	case IsIgnored, IsLocalAndValid, IsIdenticalToLocal, SatisfiesLocal,
		IsHighestOrLowestSemver, SatisfiesHighestOrLowestSemver,
		IsNonSemverButIdentical, IsIdenticalToPin, SatisfiesSameRangeGroup,
		IsIdenticalToSnapTarget, SatisfiesSnapTarget:
		return CategoryValid
	case RefuseToBanLocal, RefuseToPinLocal, RefuseToSnapLocal, InvalidLocalVersion:
		return CategorySuspect
	case Unknown:
		return CategoryUnknown
	}
	return CategoryInvalid
}

// InvalidKind derives which kind of invalid a state is, or NotInvalid.
func (s InstanceState) InvalidKind() InvalidKind {
	switch s {
	case IsBanned, DiffersToLocal, DiffersToHighestOrLowestSemver,
		DiffersToSnapTarget, DiffersToPin, SemverRangeMismatch,
		PinOverridesSemverRange, PinOverridesSemverRangeMismatch:
		return Fixable
	case DependsOnInvalidLocalPackage, NonSemverMismatch, SameRangeMismatch,
		DependsOnMissingSnapTarget:
		return Unfixable
	case MatchConflictsWithHighestOrLowestSemver, MismatchConflictsWithHighestOrLowestSemver,
		MatchConflictsWithSnapTarget, MismatchConflictsWithSnapTarget,
		MatchConflictsWithLocal, MismatchConflictsWithLocal:
		return Conflict
	}
	return NotInvalid
}

// Severity orders categories for the dependency state rollup:
// Unknown < Valid < Suspect < Invalid.
func (s InstanceState) Severity() int {
	switch s.Category() {
	case CategoryValid:
		return 1
	case CategorySuspect:
		return 2
	case CategoryInvalid:
		return 3
	}
	return 0
}

var stateNames = map[InstanceState]string{
	Unknown:                                    "Unknown",
	IsIgnored:                                  "IsIgnored",
	IsLocalAndValid:                            "IsLocalAndValid",
	IsIdenticalToLocal:                         "IsIdenticalToLocal",
	SatisfiesLocal:                             "SatisfiesLocal",
	IsHighestOrLowestSemver:                    "IsHighestOrLowestSemver",
	SatisfiesHighestOrLowestSemver:             "SatisfiesHighestOrLowestSemver",
	IsNonSemverButIdentical:                    "IsNonSemverButIdentical",
	IsIdenticalToPin:                           "IsIdenticalToPin",
	SatisfiesSameRangeGroup:                    "SatisfiesSameRangeGroup",
	IsIdenticalToSnapTarget:                    "IsIdenticalToSnapTarget",
	SatisfiesSnapTarget:                        "SatisfiesSnapTarget",
	RefuseToBanLocal:                           "RefuseToBanLocal",
	RefuseToPinLocal:                           "RefuseToPinLocal",
	RefuseToSnapLocal:                          "RefuseToSnapLocal",
	InvalidLocalVersion:                        "InvalidLocalVersion",
	IsBanned:                                   "IsBanned",
	DiffersToLocal:                             "DiffersToLocal",
	DiffersToHighestOrLowestSemver:             "DiffersToHighestOrLowestSemver",
	DiffersToSnapTarget:                        "DiffersToSnapTarget",
	DiffersToPin:                               "DiffersToPin",
	SemverRangeMismatch:                        "SemverRangeMismatch",
	PinOverridesSemverRange:                    "PinOverridesSemverRange",
	PinOverridesSemverRangeMismatch:            "PinOverridesSemverRangeMismatch",
	DependsOnInvalidLocalPackage:               "DependsOnInvalidLocalPackage",
	NonSemverMismatch:                          "NonSemverMismatch",
	SameRangeMismatch:                          "SameRangeMismatch",
	DependsOnMissingSnapTarget:                 "DependsOnMissingSnapTarget",
	MatchConflictsWithHighestOrLowestSemver:    "MatchConflictsWithHighestOrLowestSemver",
	MismatchConflictsWithHighestOrLowestSemver: "MismatchConflictsWithHighestOrLowestSemver",
	MatchConflictsWithSnapTarget:               "MatchConflictsWithSnapTarget",
	MismatchConflictsWithSnapTarget:            "MismatchConflictsWithSnapTarget",
	MatchConflictsWithLocal:                    "MatchConflictsWithLocal",
	MismatchConflictsWithLocal:                 "MismatchConflictsWithLocal",
}

// Name returns the stable PascalCase name of this state.
func (s InstanceState) Name() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "Unknown"
}

// DisplayName returns the name shown in reports. Internal logic uses the
// unified HighestOrLowestSemver states; externally the substring is rewritten
// to say which preference the group is actually configured with.
func (s InstanceState) DisplayName(variant Variant) string {
	name := s.Name()
	if !strings.Contains(name, "HighestOrLowestSemver") {
		return name
	}
	switch variant {
	case LowestSemver:
		return strings.ReplaceAll(name, "HighestOrLowestSemver", "LowestSemver")
	default:
		return strings.ReplaceAll(name, "HighestOrLowestSemver", "HighestSemver")
	}
}

// DocLink returns the documentation anchor link for this state.
func (s InstanceState) DocLink(variant Variant) string {
	return "https://github.com/tuckertucker/tkr-version-sync#" + strings.ToLower(s.DisplayName(variant))
}
