package engine

import (
	"regexp"

	log "github.com/sirupsen/logrus"

	"github.com/tuckertucker/tkr-version-sync/go/pkg/config"
	"github.com/tuckertucker/tkr-version-sync/go/pkg/manifest"
	"github.com/tuckertucker/tkr-version-sync/go/pkg/workspace"
)

// Options configures a lint or fix run.
type Options struct {
	// Cwd is the directory globs are resolved against
	Cwd string
	// Source overrides the rcfile's source glob patterns when non-empty
	Source []string
	// Filter only lints dependencies whose name matches, when set
	Filter *regexp.Regexp
	// Format enables linting the formatting of package.json files
	Format bool
	// Versions enables linting version mismatches
	Versions bool
	// Fix rewrites manifests instead of only reporting
	Fix bool
}

// Result is the outcome of a run, consumed by the report renderer.
type Result struct {
	// Ctx is the classified instance graph, nil when Versions was disabled
	Ctx *Context
	// FormattedPaths are manifests already formatted correctly
	FormattedPaths []string
	// UnformattedPaths are manifests whose formatting needs fixing
	UnformattedPaths []string
	// WriteFailed counts manifests which could not be written back
	WriteFailed int
	// Valid is false when any write failed; when linting, also when any
	// instance is invalid or any formatting mismatch was found; when fixing,
	// also when any invalid instance is not fixable
	Valid bool
}

// Run executes a complete lint or fix pass: load manifests, group and
// classify every instance, optionally apply fixes and formatting, and write
// every modified manifest back to disk once.
func Run(opts Options, rc config.Rcfile) (*Result, error) {
	// both are enabled when neither is asked for by name
	if !opts.Format && !opts.Versions {
		opts.Format = true
		opts.Versions = true
	}

	patterns := workspace.SourcePatterns(opts.Source, rc)
	packages, err := workspace.Load(opts.Cwd, patterns)
	if err != nil {
		return nil, err
	}
	log.Debugf("loaded %d package.json files", len(packages.AllNames))

	result := &Result{Valid: true}

	if opts.Versions {
		ctx, err := NewContext(rc, packages, opts.Filter)
		if err != nil {
			return nil, err
		}
		ctx.Classify()
		result.Ctx = ctx
		for _, inst := range ctx.Instances {
			if inst.State.Category() != CategoryInvalid {
				continue
			}
			// fixable instances are about to be repaired by fix, anything
			// else still counts against it
			if !opts.Fix || inst.State.InvalidKind() != Fixable {
				result.Valid = false
				break
			}
		}
		if opts.Fix {
			ctx.ApplyFixes()
		}
	}

	if opts.Format {
		for _, name := range packages.AllNames {
			pkg := packages.ByName[name]
			before := string(pkg.Contents())
			manifest.Format(pkg, rc)
			changed := string(pkg.Contents()) != before
			if !opts.Fix {
				// when not fixing, nothing else has touched the document, so
				// a re-serialise which differs from disk is also a mismatch
				changed = changed || pkg.IsModified(rc.Indent)
			}
			if changed {
				result.UnformattedPaths = append(result.UnformattedPaths, pkg.FilePath)
			} else {
				result.FormattedPaths = append(result.FormattedPaths, pkg.FilePath)
			}
		}
		if !opts.Fix && len(result.UnformattedPaths) > 0 {
			result.Valid = false
		}
	}

	if opts.Fix {
		for _, name := range packages.AllNames {
			pkg := packages.ByName[name]
			if !pkg.IsModified(rc.Indent) {
				continue
			}
			// a failed write is reported but does not prevent other
			// files from being written
			if err := pkg.Write(rc.Indent); err != nil {
				log.Error(err)
				result.WriteFailed++
				result.Valid = false
			}
		}
	}

	return result, nil
}
