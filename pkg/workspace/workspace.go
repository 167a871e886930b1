// Package workspace discovers and loads every package.json file matched by
// the configured source glob patterns.
package workspace

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	log "github.com/sirupsen/logrus"

	"github.com/tuckertucker/tkr-version-sync/go/pkg/config"
	"github.com/tuckertucker/tkr-version-sync/go/pkg/manifest"
)

// Packages holds every manifest in the workspace.
type Packages struct {
	// AllNames lists package names in the order their files were discovered
	AllNames []string
	// ByName maps package name to its manifest
	ByName map[string]*manifest.Package
}

// GetByName returns the manifest for a package developed in this workspace.
func (p *Packages) GetByName(name string) (*manifest.Package, bool) {
	pkg, ok := p.ByName[name]
	return pkg, ok
}

// SourcePatterns decides which glob patterns to resolve package.json files
// from: CLI --source options win, then the rcfile, then the defaults.
func SourcePatterns(cliSource []string, rc config.Rcfile) []string {
	if len(cliSource) > 0 {
		return cliSource
	}
	if len(rc.Source) > 0 {
		return rc.Source
	}
	return []string{"package.json", "packages/*/package.json"}
}

// FindManifests resolves every source glob pattern into the file paths of
// package.json files, skipping node_modules.
func FindManifests(cwd string, patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var paths []string
	for _, pattern := range patterns {
		if !filepath.IsAbs(pattern) {
			pattern = filepath.Join(cwd, pattern)
		}
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			log.Warnf("invalid source pattern %q: %v", pattern, err)
			continue
		}
		for _, match := range matches {
			if inNodeModules(match) || seen[match] {
				continue
			}
			seen[match] = true
			paths = append(paths, match)
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// Load reads every matched manifest. A file which cannot be read or parsed is
// reported and skipped, it does not abort the run.
func Load(cwd string, patterns []string) (*Packages, error) {
	paths, err := FindManifests(cwd, patterns)
	if err != nil {
		return nil, err
	}
	packages := &Packages{ByName: make(map[string]*manifest.Package)}
	for _, path := range paths {
		pkg, err := manifest.Read(path)
		if err != nil {
			log.Errorf("skipping %s: %v", path, err)
			continue
		}
		name := pkg.Name()
		packages.AllNames = append(packages.AllNames, name)
		packages.ByName[name] = pkg
	}
	return packages, nil
}

func inNodeModules(path string) bool {
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part == "node_modules" {
			return true
		}
	}
	return false
}
