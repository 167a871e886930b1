package specifier

import (
	"regexp"
	"strings"
)

// The semver grammar accepted by each simple specifier shape. A full version
// may carry a pre-release and/or build suffix, a minor version may not.
const (
	fullSemver  = `\d+\.\d+\.\d+(?:[-+][0-9a-zA-Z.+-]+)?`
	minorSemver = `\d+\.\d+`
)

var (
	// Any character used in a semver range operator
	rangeChars = regexp.MustCompile(`[~><=*^]`)
	// "1.2.3" or "1.2.3-alpha.1"
	reExact = regexp.MustCompile(`^` + fullSemver + `$`)
	// "^1.2.3"
	reCaret = regexp.MustCompile(`^\^` + fullSemver + `$`)
	// "~1.2.3"
	reTilde = regexp.MustCompile(`^~` + fullSemver + `$`)
	// ">1.2.3"
	reGt = regexp.MustCompile(`^>` + fullSemver + `$`)
	// ">=1.2.3"
	reGte = regexp.MustCompile(`^>=` + fullSemver + `$`)
	// "<1.2.3"
	reLt = regexp.MustCompile(`^<` + fullSemver + `$`)
	// "<=1.2.3"
	reLte = regexp.MustCompile(`^<=` + fullSemver + `$`)
	// "^1.2"
	reCaretMinor = regexp.MustCompile(`^\^` + minorSemver + `$`)
	// "~1.2"
	reTildeMinor = regexp.MustCompile(`^~` + minorSemver + `$`)
	// ">1.2"
	reGtMinor = regexp.MustCompile(`^>` + minorSemver + `$`)
	// ">=1.2"
	reGteMinor = regexp.MustCompile(`^>=` + minorSemver + `$`)
	// "<1.2"
	reLtMinor = regexp.MustCompile(`^<` + minorSemver + `$`)
	// "<=1.2"
	reLteMinor = regexp.MustCompile(`^<=` + minorSemver + `$`)
	// "1"
	reMajor = regexp.MustCompile(`^\d+$`)
	// "1.2"
	reMinor = regexp.MustCompile(`^` + minorSemver + `$`)
	// "npm:foo@1.2.3"
	reAlias = regexp.MustCompile(`^npm:`)
	// "file:../path/to/foo"
	reFile = regexp.MustCompile(`^file:`)
	// "workspace:*"
	reWorkspaceProtocol = regexp.MustCompile(`^workspace:`)
	// "https://github.com/user/foo"
	reURL = regexp.MustCompile(`^https?://`)
	// "git://github.com/user/foo"
	reGit = regexp.MustCompile(`^git(\+(ssh|https?))?://`)
	// "alpha"
	reTag = regexp.MustCompile(`^[a-zA-Z0-9-]+$`)
	// a logical OR joining the parts of a complex range
	reOrOperator = regexp.MustCompile(` ?\|\| ?`)
)

func isExact(s string) bool {
	return reExact.MatchString(s)
}

func isLatest(s string) bool {
	return s == "*" || s == "latest" || s == "x"
}

func isMajor(s string) bool {
	return reMajor.MatchString(s)
}

func isMinor(s string) bool {
	return reMinor.MatchString(s)
}

func isRange(s string) bool {
	return reCaret.MatchString(s) ||
		reTilde.MatchString(s) ||
		reGt.MatchString(s) ||
		reGte.MatchString(s) ||
		reLt.MatchString(s) ||
		reLte.MatchString(s)
}

func isRangeMinor(s string) bool {
	return reCaretMinor.MatchString(s) ||
		reTildeMinor.MatchString(s) ||
		reGtMinor.MatchString(s) ||
		reGteMinor.MatchString(s) ||
		reLtMinor.MatchString(s) ||
		reLteMinor.MatchString(s)
}

func isSimpleSemver(s string) bool {
	return isExact(s) || isLatest(s) || isMajor(s) || isMinor(s) || isRange(s) || isRangeMinor(s)
}

// isComplexRange reports whether every part of a range joined by OR (" || ")
// or AND (" ") operators is itself a simple semver specifier.
func isComplexRange(s string) bool {
	matchedAny := false
	for _, orCondition := range reOrOperator.Split(s, -1) {
		for _, andCondition := range strings.Fields(orCondition) {
			if !isSimpleSemver(andCondition) {
				return false
			}
			matchedAny = true
		}
	}
	return matchedAny
}
