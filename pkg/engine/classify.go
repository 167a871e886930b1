package engine

import (
	"github.com/tuckertucker/tkr-version-sync/go/pkg/specifier"
)

// stateSet names the five outcomes of comparing an instance against a
// preferred specifier, for each of the three preferred-specifier sources.
type stateSet struct {
	equals           InstanceState
	satisfies        InstanceState
	differs          InstanceState
	matchConflict    InstanceState
	mismatchConflict InstanceState
}

var (
	localStates = stateSet{
		equals:           IsIdenticalToLocal,
		satisfies:        SatisfiesLocal,
		differs:          DiffersToLocal,
		matchConflict:    MatchConflictsWithLocal,
		mismatchConflict: MismatchConflictsWithLocal,
	}
	preferStates = stateSet{
		equals:           IsHighestOrLowestSemver,
		satisfies:        SatisfiesHighestOrLowestSemver,
		differs:          DiffersToHighestOrLowestSemver,
		matchConflict:    MatchConflictsWithHighestOrLowestSemver,
		mismatchConflict: MismatchConflictsWithHighestOrLowestSemver,
	}
	snapStates = stateSet{
		equals:           IsIdenticalToSnapTarget,
		satisfies:        SatisfiesSnapTarget,
		differs:          DiffersToSnapTarget,
		matchConflict:    MatchConflictsWithSnapTarget,
		mismatchConflict: MismatchConflictsWithSnapTarget,
	}
)

// Classify walks every dependency in every version group and assigns every
// instance a state. Classification is infallible: the taxonomy is exhaustive
// and no instance is left Unknown.
func (ctx *Context) Classify() {
	for _, group := range ctx.ProcessingOrder() {
		for _, dep := range group.SortedDependencies() {
			dep.SortInstances()
			ctx.classifyDependency(group, dep)
			dep.RollupState()
		}
	}
}

func (ctx *Context) classifyDependency(group *VersionGroup, dep *Dependency) {
	switch group.Variant {
	case Ignored:
		for _, inst := range dep.Instances {
			inst.setState(IsIgnored, inst.Actual)
		}

	case Banned:
		for _, inst := range dep.Instances {
			if inst.IsLocal {
				inst.setState(RefuseToBanLocal, inst.Actual)
			} else {
				inst.setState(IsBanned, specifier.None())
			}
		}
		dep.Expected = specifier.None()

	case Pinned:
		pin := dep.PinnedSpecifier
		for _, inst := range dep.Instances {
			if inst.IsLocal {
				if pin.ByteEqual(inst.Actual) {
					classifyLocalInstance(inst)
				} else {
					inst.setState(RefuseToPinLocal, inst.Actual)
				}
				continue
			}
			classifyPinned(inst, pin)
		}
		dep.Expected = pin

	case SameRange:
		for _, inst := range dep.Instances {
			if sameRangeMismatches(inst, dep.Instances) {
				inst.setState(SameRangeMismatch, specifier.None())
			} else {
				inst.setState(SatisfiesSameRangeGroup, inst.Actual)
			}
		}

	case SnappedTo:
		target, found := ctx.snapTargetFor(dep)
		for _, inst := range dep.Instances {
			if inst.IsLocal {
				inst.setState(RefuseToSnapLocal, inst.Actual)
				continue
			}
			if !found {
				inst.setState(DependsOnMissingSnapTarget, specifier.None())
				continue
			}
			classifyAgainst(inst, target, snapStates)
		}
		dep.Expected = target

	default: // HighestSemver, LowestSemver
		ctx.classifyStandard(dep)
	}
}

func (ctx *Context) classifyStandard(dep *Dependency) {
	if dep.HasLocalInstance() {
		local := dep.LocalInstance.Actual
		localValid := dep.LocalIsValid()
		for _, inst := range dep.Instances {
			if inst.IsLocal {
				classifyLocalInstance(inst)
				continue
			}
			if !localValid {
				inst.setState(DependsOnInvalidLocalPackage, specifier.None())
				continue
			}
			classifyAgainst(inst, local, localStates)
		}
		dep.Expected = local
		return
	}

	if dep.AllAreSimpleSemver() {
		preferred := dep.HighestOrLowest()
		for _, inst := range dep.Instances {
			classifyAgainst(inst, preferred, preferStates)
		}
		dep.Expected = preferred
		return
	}

	if dep.AllAreIdentical() {
		for _, inst := range dep.Instances {
			inst.setState(IsNonSemverButIdentical, inst.Actual)
		}
		if len(dep.Instances) > 0 {
			dep.Expected = dep.Instances[0].Actual
		}
		return
	}

	for _, inst := range dep.Instances {
		inst.setState(NonSemverMismatch, specifier.None())
	}
	dep.Expected = specifier.None()
}

// classifyLocalInstance handles the instance representing a package's own
// version property, which no rule is ever allowed to change.
func classifyLocalInstance(inst *Instance) {
	if inst.Actual.Kind() == specifier.KindExact {
		inst.setState(IsLocalAndValid, inst.Actual)
	} else {
		inst.setState(InvalidLocalVersion, inst.Actual)
	}
}

// classifyAgainst compares one instance against the preferred specifier from
// its version group, honouring the range operator its semver group requires.
//
// The expected specifier for the instance is the preferred one with the
// required range applied, as long as that range still satisfies the
// preferred version's number. When it cannot, the two groups contradict each
// other and the instance is a conflict which only the user can resolve.
func classifyAgainst(inst *Instance, preferred specifier.Specifier, states stateSet) {
	required, hasRequired := inst.requiredRange()

	expected := preferred
	compatible := true
	if hasRequired && preferred.IsSimpleSemver() {
		candidate := preferred.WithRange(required)
		compatible = candidate.Satisfies(preferred)
		if compatible {
			expected = candidate
		}
	}
	sgOK := inst.matchesRequiredRange()

	if compatible && sgOK && inst.Actual.ByteEqual(expected) {
		inst.setState(states.equals, inst.Actual)
		return
	}

	if inst.Actual.NumberEqual(preferred) {
		switch {
		case compatible && sgOK:
			inst.setState(states.satisfies, inst.Actual)
		case compatible && inst.Actual.WithRange(required).ByteEqual(expected):
			inst.setState(SemverRangeMismatch, expected)
		default:
			inst.setState(states.matchConflict, inst.Actual)
		}
		return
	}

	switch {
	case compatible && sgOK:
		inst.setState(states.differs, expected)
	case compatible && hasRequired && inst.Actual.IsSimpleSemver() &&
		inst.Actual.WithRange(required).ByteEqual(expected):
		inst.setState(SemverRangeMismatch, expected)
	default:
		inst.setState(states.mismatchConflict, inst.Actual)
	}
}

// classifyPinned compares one non-local instance against its pinned
// specifier. The pin always wins: when the semver group requires a range
// which differs from the pin's own range, the instance is still expected to
// equal the pin exactly.
func classifyPinned(inst *Instance, pin specifier.Specifier) {
	pinAgreesWithRange := true
	if required, ok := inst.requiredRange(); ok && pin.IsSimpleSemver() {
		pinRange, _ := pin.GetRange()
		pinAgreesWithRange = pinRange == required
	}

	if inst.Actual.ByteEqual(pin) && pinAgreesWithRange {
		inst.setState(IsIdenticalToPin, inst.Actual)
		return
	}

	if inst.Actual.NumberEqual(pin) && !pinAgreesWithRange {
		if inst.matchesRequiredRange() {
			inst.setState(PinOverridesSemverRange, pin)
		} else {
			inst.setState(PinOverridesSemverRangeMismatch, pin)
		}
		return
	}

	inst.setState(DiffersToPin, pin)
}

// sameRangeMismatches reports whether this instance's range fails to accept,
// or be accepted by, any other instance in its group. Identical raw text
// always agrees; specifiers with no semver meaning cannot agree with anything
// else.
func sameRangeMismatches(inst *Instance, all []*Instance) bool {
	for _, other := range all {
		if other == inst {
			continue
		}
		if inst.Actual.ByteEqual(other.Actual) {
			continue
		}
		if !inst.Actual.Satisfies(other.Actual) || !other.Actual.Satisfies(inst.Actual) {
			return true
		}
	}
	return false
}
