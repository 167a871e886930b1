// Package report renders the classification produced by the engine.
// Supports human-readable and JSON output formats. Diagnostics such as
// skipped manifests, invalid source patterns and failed writes are not
// rendered here; they are logged through logrus.
package report

import (
	"fmt"
	"strings"

	"github.com/tuckertucker/tkr-version-sync/go/pkg/engine"
)

// ANSI color codes
const (
	colorReset  = "\x1b[0m"
	colorRed    = "\x1b[31m"
	colorYellow = "\x1b[33m"
	colorGreen  = "\x1b[32m"
	colorGray   = "\x1b[90m"
	colorBold   = "\x1b[1m"
)

// Options controls rendering.
type Options struct {
	// NoColor disables ANSI colors
	NoColor bool
}

func (o Options) paint(color, s string) string {
	if o.NoColor {
		return s
	}
	return color + s + colorReset
}

// Counts tallies instances by outcome.
type Counts struct {
	Valid     int `json:"valid"`
	Suspect   int `json:"suspect"`
	Fixable   int `json:"fixable"`
	Conflict  int `json:"conflict"`
	Unfixable int `json:"unfixable"`
}

func countInstances(ctx *engine.Context) Counts {
	var counts Counts
	for _, inst := range ctx.Instances {
		switch inst.State.Category() {
		case engine.CategoryValid:
			counts.Valid++
		case engine.CategorySuspect:
			counts.Suspect++
		case engine.CategoryInvalid:
			switch inst.State.InvalidKind() {
			case engine.Fixable:
				counts.Fixable++
			case engine.Conflict:
				counts.Conflict++
			default:
				counts.Unfixable++
			}
		}
	}
	return counts
}

// RenderHuman renders the full report as human-readable text.
func RenderHuman(result *engine.Result, opts Options) string {
	var b strings.Builder

	if result.Ctx != nil {
		renderVersions(&b, result.Ctx, opts)
	}
	if len(result.FormattedPaths) > 0 || len(result.UnformattedPaths) > 0 {
		renderFormat(&b, result, opts)
	}

	return b.String()
}

func renderVersions(b *strings.Builder, ctx *engine.Context, opts Options) {
	for i, group := range ctx.ProcessingOrder() {
		deps := group.SortedDependencies()
		if len(deps) == 0 {
			continue
		}
		b.WriteString(opts.paint(colorBold, groupTitle(group, i)) + "\n")
		for _, dep := range deps {
			for _, inst := range dep.Instances {
				b.WriteString(renderInstance(inst, dep, opts))
			}
		}
		b.WriteString("\n")
	}

	counts := countInstances(ctx)
	b.WriteString(fmt.Sprintf("%s %d %s %d %s %d %s %d %s %d\n",
		opts.paint(colorGreen, "valid"), counts.Valid,
		opts.paint(colorYellow, "suspect"), counts.Suspect,
		opts.paint(colorRed, "fixable"), counts.Fixable,
		opts.paint(colorRed, "conflicts"), counts.Conflict,
		opts.paint(colorRed, "unfixable"), counts.Unfixable,
	))
}

func groupTitle(group *engine.VersionGroup, index int) string {
	if group.Selector.Label != "" {
		return group.Selector.Label
	}
	switch group.Variant {
	case engine.Banned:
		return fmt.Sprintf("Banned dependencies (%d)", index+1)
	case engine.Ignored:
		return fmt.Sprintf("Ignored dependencies (%d)", index+1)
	case engine.Pinned:
		return fmt.Sprintf("Pinned dependencies (%d)", index+1)
	case engine.SameRange:
		return fmt.Sprintf("Same range dependencies (%d)", index+1)
	case engine.SnappedTo:
		return fmt.Sprintf("Snapped to dependencies (%d)", index+1)
	case engine.LowestSemver:
		return fmt.Sprintf("Lowest semver dependencies (%d)", index+1)
	}
	return "Default Version Group"
}

func renderInstance(inst *engine.Instance, dep *engine.Dependency, opts Options) string {
	name := inst.State.DisplayName(dep.Variant)
	location := fmt.Sprintf("%s %s", inst.PackageName, inst.Pointer)

	switch inst.State.Category() {
	case engine.CategoryValid:
		return fmt.Sprintf("  %s %s %s %s\n",
			opts.paint(colorGreen, "✓"),
			inst.Name,
			displayRaw(inst.Actual.Raw()),
			opts.paint(colorGray, name),
		)
	case engine.CategorySuspect:
		return fmt.Sprintf("  %s %s %s %s %s\n",
			opts.paint(colorYellow, "?"),
			inst.Name,
			displayRaw(inst.Actual.Raw()),
			opts.paint(colorGray, location),
			opts.paint(colorYellow, name),
		)
	}

	if inst.State.InvalidKind() == engine.Fixable {
		return fmt.Sprintf("  %s %s %s → %s %s %s\n",
			opts.paint(colorRed, "✘"),
			inst.Name,
			displayRaw(inst.Actual.Raw()),
			displayRaw(inst.Expected.Raw()),
			opts.paint(colorGray, location),
			opts.paint(colorRed, name),
		)
	}
	return fmt.Sprintf("  %s %s %s %s %s\n",
		opts.paint(colorRed, "✘"),
		inst.Name,
		displayRaw(inst.Actual.Raw()),
		opts.paint(colorGray, location),
		opts.paint(colorRed, name),
	)
}

// displayRaw renders a missing specifier as a visible token.
func displayRaw(raw string) string {
	if raw == "" {
		return "<none>"
	}
	return raw
}

func renderFormat(b *strings.Builder, result *engine.Result, opts Options) {
	b.WriteString(opts.paint(colorBold, "Formatting") + "\n")
	for _, path := range result.FormattedPaths {
		b.WriteString(fmt.Sprintf("  %s %s\n", opts.paint(colorGreen, "✓"), path))
	}
	for _, path := range result.UnformattedPaths {
		b.WriteString(fmt.Sprintf("  %s %s\n", opts.paint(colorRed, "✘"), path))
	}
}
