package engine

import (
	"github.com/tuckertucker/tkr-version-sync/go/pkg/config"
	"github.com/tuckertucker/tkr-version-sync/go/pkg/specifier"
)

// SemverGroupVariant is the behaviour a semver group is configured with.
type SemverGroupVariant int

const (
	// SemverDisabled leaves the instance's range operator alone
	SemverDisabled SemverGroupVariant = iota
	// SemverIgnored exempts the instance from range linting
	SemverIgnored
	// SemverWithRange requires the instance's specifier to carry a specific
	// range operator whenever it is a simple semver
	SemverWithRange
)

// SemverGroup is the policy for what range operator an instance should carry.
type SemverGroup struct {
	Selector Selector
	Variant  SemverGroupVariant
	// Range is the required range operator when Variant is SemverWithRange
	Range specifier.Range
}

// RequiredRange returns the range this group requires, if any.
func (g *SemverGroup) RequiredRange() (specifier.Range, bool) {
	if g.Variant != SemverWithRange {
		return specifier.RangeExact, false
	}
	return g.Range, true
}

// NewSemverGroups builds the configured semver groups in order and appends
// the catch-all disabled group which guarantees every instance is claimed by
// exactly one group.
func NewSemverGroups(rc config.Rcfile, localNames []string) []*SemverGroup {
	var groups []*SemverGroup
	for _, cfg := range rc.SemverGroups {
		group := &SemverGroup{
			Selector: Selector{
				Dependencies:    cfg.Dependencies,
				DependencyTypes: cfg.DependencyTypes,
				Label:           cfg.Label,
				Packages:        cfg.Packages,
				SpecifierTypes:  cfg.SpecifierTypes,
			},
		}
		switch {
		case cfg.IsDisabled:
			group.Variant = SemverDisabled
		case cfg.IsIgnored:
			group.Variant = SemverIgnored
		case cfg.Range != nil:
			group.Variant = SemverWithRange
			r, _ := specifier.ParseRange(*cfg.Range)
			group.Range = r
		}
		group.Selector.WithLocalNames(localNames)
		groups = append(groups, group)
	}
	catchAll := &SemverGroup{Variant: SemverDisabled}
	catchAll.Selector.WithLocalNames(localNames)
	return append(groups, catchAll)
}
