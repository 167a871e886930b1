package specifier

// Range identifies the range operator carried by a simple semver specifier.
type Range int

const (
	// RangeLt is "<1.4.2"
	RangeLt Range = iota
	// RangeLte is "<=1.4.2"
	RangeLte
	// RangeExact is "1.4.2"
	RangeExact
	// RangeTilde is "~1.4.2"
	RangeTilde
	// RangeCaret is "^1.4.2"
	RangeCaret
	// RangeGte is ">=1.4.2"
	RangeGte
	// RangeGt is ">1.4.2"
	RangeGt
	// RangeAny is "*"
	RangeAny
)

// ParseRange returns the Range for a range operator string such as "^" or ">=".
// The empty string is the exact range.
func ParseRange(s string) (Range, bool) {
	switch s {
	case "<":
		return RangeLt, true
	case "<=":
		return RangeLte, true
	case "":
		return RangeExact, true
	case "~":
		return RangeTilde, true
	case "^":
		return RangeCaret, true
	case ">=":
		return RangeGte, true
	case ">":
		return RangeGt, true
	case "*":
		return RangeAny, true
	}
	return RangeExact, false
}

// Prefix returns the operator characters this range contributes to a raw
// specifier, eg. "^" or ">=". The exact range contributes nothing.
func (r Range) Prefix() string {
	switch r {
	case RangeLt:
		return "<"
	case RangeLte:
		return "<="
	case RangeTilde:
		return "~"
	case RangeCaret:
		return "^"
	case RangeGte:
		return ">="
	case RangeGt:
		return ">"
	case RangeAny:
		return "*"
	}
	return ""
}

// Greediness ranks ranges by how many versions they accept. The ranking is
// used only for sorting, it is not a compatibility relation.
func (r Range) Greediness() int {
	switch r {
	case RangeAny:
		return 7
	case RangeGt:
		return 6
	case RangeGte:
		return 5
	case RangeCaret:
		return 4
	case RangeTilde:
		return 3
	case RangeExact:
		return 2
	case RangeLte:
		return 1
	}
	return 0
}

func (r Range) String() string {
	if r == RangeExact {
		return "exact"
	}
	return r.Prefix()
}
