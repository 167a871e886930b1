// Package specifier parses raw npm version specifier strings into a tagged,
// comparable type. Only simple semver specifiers are ordered; everything else
// compares equal so that it is never chosen as a preferred version.
package specifier

import (
	"github.com/Masterminds/semver/v3"
	log "github.com/sirupsen/logrus"
)

// Kind identifies which shape of version specifier a raw string is.
type Kind int

const (
	// KindMissing is the absence of a specifier, either because a package has
	// no version property or because a banned instance is expected to have
	// its property deleted.
	KindMissing Kind = iota
	// KindExact is "1.2.3"
	KindExact
	// KindLatest is "*" ("latest" and "x" are normalized to it)
	KindLatest
	// KindMajor is "1"
	KindMajor
	// KindMinor is "1.2"
	KindMinor
	// KindRange is "^1.2.3", "~1.2.3", ">1.2.3", ">=1.2.3", "<1.2.3" or "<=1.2.3"
	KindRange
	// KindRangeMinor is the same operators on a minor version, eg. "^1.2"
	KindRangeMinor
	// KindRangeComplex is multiple simple semvers joined by AND/OR, eg.
	// ">=1.2.3 <2.0.0 || 3.0.0". Parts such as ">=1" or "3.x" are not simple
	// semvers, so a string like ">=1 <2 || 3.x" is KindUnsupported.
	KindRangeComplex
	// KindAlias is "npm:foo@1.2.3"
	KindAlias
	// KindFile is "file:../path/to/foo"
	KindFile
	// KindGit is "git://github.com/user/foo"
	KindGit
	// KindTag is "alpha"
	KindTag
	// KindURL is "https://example.com/foo.tgz"
	KindURL
	// KindWorkspaceProtocol is "workspace:*"
	KindWorkspaceProtocol
	// KindUnsupported is anything else
	KindUnsupported
)

// Specifier is the parsed form of one raw version specifier string.
type Specifier struct {
	kind Kind
	raw  string
}

// None is the missing specifier.
func None() Specifier {
	return Specifier{kind: KindMissing}
}

// sanitise rewrites specifiers which behave identically to "*".
func sanitise(raw string) string {
	if raw == "latest" || raw == "x" {
		log.Debugf("sanitising specifier: %s → *", raw)
		return "*"
	}
	return raw
}

// Parse classifies a raw version specifier string. Every raw string maps to
// exactly one Kind; strings matching no other predicate are Unsupported.
func Parse(raw string) Specifier {
	s := sanitise(raw)
	switch {
	case isExact(s):
		return Specifier{KindExact, s}
	case isRange(s):
		return Specifier{KindRange, s}
	case isLatest(s):
		return Specifier{KindLatest, s}
	case reWorkspaceProtocol.MatchString(s):
		return Specifier{KindWorkspaceProtocol, s}
	case reAlias.MatchString(s):
		return Specifier{KindAlias, s}
	case isMajor(s):
		return Specifier{KindMajor, s}
	case isMinor(s):
		return Specifier{KindMinor, s}
	case reTag.MatchString(s):
		return Specifier{KindTag, s}
	case reGit.MatchString(s):
		return Specifier{KindGit, s}
	case reURL.MatchString(s):
		return Specifier{KindURL, s}
	case isRangeMinor(s):
		return Specifier{KindRangeMinor, s}
	case reFile.MatchString(s):
		return Specifier{KindFile, s}
	case isComplexRange(s):
		return Specifier{KindRangeComplex, s}
	}
	return Specifier{KindUnsupported, s}
}

// Kind returns which shape of specifier this is.
func (s Specifier) Kind() Kind {
	return s.kind
}

// Raw returns the raw specifier string. It is empty for a missing specifier.
func (s Specifier) Raw() string {
	return s.raw
}

// IsMissing reports whether no specifier is present at all.
func (s Specifier) IsMissing() bool {
	return s.kind == KindMissing
}

// IsSimpleSemver reports whether this specifier is a single comparator on a
// fully or partially specified semver number.
func (s Specifier) IsSimpleSemver() bool {
	switch s.kind {
	case KindExact, KindLatest, KindMajor, KindMinor, KindRange, KindRangeMinor:
		return true
	}
	return false
}

// IsSemver reports whether this specifier belongs to the semver family,
// including complex ranges.
func (s Specifier) IsSemver() bool {
	return s.IsSimpleSemver() || s.kind == KindRangeComplex
}

// Equal reports whether two specifiers have the same kind and raw text. The
// comparison is range-operator sensitive: "1.2.3" and "^1.2.3" are not equal.
func (s Specifier) Equal(other Specifier) bool {
	return s.kind == other.kind && s.raw == other.raw
}

// ByteEqual reports whether two specifiers have identical raw text.
func (s Specifier) ByteEqual(other Specifier) bool {
	return s.kind != KindMissing && other.kind != KindMissing && s.raw == other.raw
}

// GetRange returns the range operator of a simple semver specifier. A simple
// semver always has a range, even if it is the exact range.
func (s Specifier) GetRange() (Range, bool) {
	switch s.kind {
	case KindExact, KindMajor, KindMinor:
		return RangeExact, true
	case KindLatest:
		return RangeAny, true
	case KindRange, KindRangeMinor:
		switch {
		case reGte.MatchString(s.raw) || reGteMinor.MatchString(s.raw):
			return RangeGte, true
		case reLte.MatchString(s.raw) || reLteMinor.MatchString(s.raw):
			return RangeLte, true
		case reCaret.MatchString(s.raw) || reCaretMinor.MatchString(s.raw):
			return RangeCaret, true
		case reTilde.MatchString(s.raw) || reTildeMinor.MatchString(s.raw):
			return RangeTilde, true
		case reGt.MatchString(s.raw) || reGtMinor.MatchString(s.raw):
			return RangeGt, true
		case reLt.MatchString(s.raw) || reLtMinor.MatchString(s.raw):
			return RangeLt, true
		}
	}
	return RangeExact, false
}

// WithRange rewrites a simple semver specifier to carry a new range operator.
// Applying a range to "*" is a no-op because it has no version number to
// attach the operator to.
func (s Specifier) WithRange(r Range) Specifier {
	if !s.IsSimpleSemver() {
		return s
	}
	if s.kind == KindLatest {
		log.Warnf("cannot apply range %q to %q, keeping as is", r.Prefix(), s.raw)
		return s
	}
	if r == RangeAny {
		return Parse("*")
	}
	bare := rangeChars.ReplaceAllString(s.raw, "")
	return Parse(r.Prefix() + bare)
}

// version returns the semver number of a simple semver specifier with its
// range operator stripped. Missing minor and patch components parse as zero.
func (s Specifier) version() (*semver.Version, bool) {
	if !s.IsSimpleSemver() || s.kind == KindLatest {
		return nil, false
	}
	v, err := semver.NewVersion(rangeChars.ReplaceAllString(s.raw, ""))
	if err != nil {
		return nil, false
	}
	return v, true
}

// NumberEqual reports whether two specifiers agree on their semver numbers,
// ignoring their range operators. It is only defined over simple semvers.
func (s Specifier) NumberEqual(other Specifier) bool {
	a, aOK := s.version()
	b, bOK := other.version()
	if !aOK || !bOK {
		// "*" carries no number but agrees with itself
		return s.kind == KindLatest && other.kind == KindLatest
	}
	return a.Compare(b) == 0
}

// Compare defines the strict total ordering between simple semvers: semver
// numbers first, then greediness of the range operator as a tie-break.
// Non-simple specifiers compare equal to each other and are never selected
// as preferred versions.
func (s Specifier) Compare(other Specifier) int {
	if !s.IsSimpleSemver() || !other.IsSimpleSemver() {
		return 0
	}
	a, aOK := s.version()
	b, bOK := other.version()
	if aOK && bOK {
		if c := a.Compare(b); c != 0 {
			return c
		}
	} else if aOK != bOK {
		// "*" has no version number and sorts below any numbered semver,
		// its Any range would still win the greediness tie-break
		if aOK {
			return 1
		}
		return -1
	}
	ra, _ := s.GetRange()
	rb, _ := other.GetRange()
	switch {
	case ra.Greediness() < rb.Greediness():
		return -1
	case ra.Greediness() > rb.Greediness():
		return 1
	}
	return 0
}

// Satisfies reports whether this specifier's range accepts the version number
// carried by the other specifier. It is false whenever either side has no
// semver meaning.
func (s Specifier) Satisfies(other Specifier) bool {
	if !s.IsSemver() {
		return false
	}
	if s.kind == KindLatest {
		return other.IsSemver()
	}
	v, ok := other.version()
	if !ok {
		return false
	}
	constraint, err := semver.NewConstraint(s.raw)
	if err != nil {
		return false
	}
	return constraint.Check(v)
}

// ConfigName returns the name used for this kind of specifier in selector
// configuration, eg. "exact", "range", "workspace-protocol".
func (s Specifier) ConfigName() string {
	switch s.kind {
	case KindExact:
		return "exact"
	case KindLatest:
		return "latest"
	case KindMajor:
		return "major"
	case KindMinor:
		return "minor"
	case KindRange:
		return "range"
	case KindRangeMinor:
		return "range-minor"
	case KindRangeComplex:
		return "range-complex"
	case KindAlias:
		return "alias"
	case KindFile:
		return "file"
	case KindGit:
		return "hosted-git"
	case KindTag:
		return "tag"
	case KindURL:
		return "url"
	case KindWorkspaceProtocol:
		return "workspace-protocol"
	case KindMissing:
		return "delete"
	}
	return "unsupported"
}
