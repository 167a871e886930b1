package report

import (
	"encoding/json"

	"github.com/tuckertucker/tkr-version-sync/go/pkg/engine"
)

// InstanceReport is one instance's outcome in JSON output.
type InstanceReport struct {
	Name        string `json:"name"`
	Package     string `json:"package"`
	Pointer     string `json:"pointer"`
	Actual      string `json:"actual"`
	Expected    string `json:"expected"`
	State       string `json:"state"`
	StatusLink  string `json:"statusLink"`
	Category    string `json:"category"`
	InvalidKind string `json:"invalidKind,omitempty"`
}

// DependencyReport is one dependency's outcome in JSON output.
type DependencyReport struct {
	Name      string           `json:"name"`
	State     string           `json:"state"`
	Expected  string           `json:"expected,omitempty"`
	Instances []InstanceReport `json:"instances"`
}

// GroupReport is one version group's outcome in JSON output.
type GroupReport struct {
	Label        string             `json:"label,omitempty"`
	Variant      string             `json:"variant"`
	Dependencies []DependencyReport `json:"dependencies"`
}

// JSONReport is the machine-readable form of a complete run.
type JSONReport struct {
	Groups           []GroupReport `json:"groups,omitempty"`
	Counts           *Counts       `json:"counts,omitempty"`
	FormattedPaths   []string      `json:"formattedPaths,omitempty"`
	UnformattedPaths []string      `json:"unformattedPaths,omitempty"`
	Valid            bool          `json:"valid"`
}

var variantNames = map[engine.Variant]string{
	engine.HighestSemver: "highestSemver",
	engine.LowestSemver:  "lowestSemver",
	engine.Banned:        "banned",
	engine.Ignored:       "ignored",
	engine.Pinned:        "pinned",
	engine.SameRange:     "sameRange",
	engine.SnappedTo:     "snappedTo",
}

var categoryNames = map[engine.Category]string{
	engine.CategoryUnknown: "unknown",
	engine.CategoryValid:   "valid",
	engine.CategorySuspect: "suspect",
	engine.CategoryInvalid: "invalid",
}

var invalidKindNames = map[engine.InvalidKind]string{
	engine.Fixable:   "fixable",
	engine.Unfixable: "unfixable",
	engine.Conflict:  "conflict",
}

// RenderJSON renders the full report as pretty-printed JSON.
func RenderJSON(result *engine.Result) (string, error) {
	jsonReport := JSONReport{
		Valid:            result.Valid,
		FormattedPaths:   result.FormattedPaths,
		UnformattedPaths: result.UnformattedPaths,
	}

	if result.Ctx != nil {
		counts := countInstances(result.Ctx)
		jsonReport.Counts = &counts
		for _, group := range result.Ctx.ProcessingOrder() {
			deps := group.SortedDependencies()
			if len(deps) == 0 {
				continue
			}
			groupReport := GroupReport{
				Label:   group.Selector.Label,
				Variant: variantNames[group.Variant],
			}
			for _, dep := range deps {
				depReport := DependencyReport{
					Name:     dep.Name,
					State:    dep.State.DisplayName(dep.Variant),
					Expected: dep.Expected.Raw(),
				}
				for _, inst := range dep.Instances {
					depReport.Instances = append(depReport.Instances, InstanceReport{
						Name:        inst.Name,
						Package:     inst.PackageName,
						Pointer:     inst.Pointer,
						Actual:      inst.Actual.Raw(),
						Expected:    inst.Expected.Raw(),
						State:       inst.State.DisplayName(dep.Variant),
						StatusLink:  inst.State.DocLink(dep.Variant),
						Category:    categoryNames[inst.State.Category()],
						InvalidKind: invalidKindNames[inst.State.InvalidKind()],
					})
				}
				groupReport.Dependencies = append(groupReport.Dependencies, depReport)
			}
			jsonReport.Groups = append(jsonReport.Groups, groupReport)
		}
	}

	data, err := json.MarshalIndent(jsonReport, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
