// Package config reads the rcfile which configures version-sync.
// A single config object is read once at start; configuration errors are
// fatal and abort the run.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// rcfile names are tried in order in the current working directory
var rcfileNames = []string{
	".versionsyncrc",
	".versionsyncrc.json",
	".versionsyncrc.yaml",
	".versionsyncrc.yml",
}

// CustomType defines a user-defined location where dependencies are found in
// package.json files, and the strategy for how to read and write them there.
type CustomType struct {
	// Strategy is one of "name~version", "name@version", "version" or
	// "versionsByName"
	Strategy string `json:"strategy" yaml:"strategy"`
	// Path is the dotted path to the value, eg. "pnpm.overrides"
	Path string `json:"path" yaml:"path"`
	// NamePath is the dotted path to the dependency name, only used by the
	// "name~version" strategy
	NamePath string `json:"namePath,omitempty" yaml:"namePath,omitempty"`
}

// SemverGroup configures which range operator matching instances should have.
// Exactly one of IsDisabled, IsIgnored or Range must be set.
type SemverGroup struct {
	Dependencies    []string `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
	DependencyTypes []string `json:"dependencyTypes,omitempty" yaml:"dependencyTypes,omitempty"`
	Label           string   `json:"label,omitempty" yaml:"label,omitempty"`
	Packages        []string `json:"packages,omitempty" yaml:"packages,omitempty"`
	SpecifierTypes  []string `json:"specifierTypes,omitempty" yaml:"specifierTypes,omitempty"`

	IsDisabled bool    `json:"isDisabled,omitempty" yaml:"isDisabled,omitempty"`
	IsIgnored  bool    `json:"isIgnored,omitempty" yaml:"isIgnored,omitempty"`
	Range      *string `json:"range,omitempty" yaml:"range,omitempty"`
}

// VersionGroup configures which version number matching instances should
// have. At most one of IsBanned, IsIgnored, PinVersion, Policy, SnapTo or
// PreferVersion may be set; a group with none of them is a Standard group
// preferring the highest semver.
type VersionGroup struct {
	Dependencies    []string `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
	DependencyTypes []string `json:"dependencyTypes,omitempty" yaml:"dependencyTypes,omitempty"`
	Label           string   `json:"label,omitempty" yaml:"label,omitempty"`
	Packages        []string `json:"packages,omitempty" yaml:"packages,omitempty"`
	SpecifierTypes  []string `json:"specifierTypes,omitempty" yaml:"specifierTypes,omitempty"`

	IsBanned      bool     `json:"isBanned,omitempty" yaml:"isBanned,omitempty"`
	IsIgnored     bool     `json:"isIgnored,omitempty" yaml:"isIgnored,omitempty"`
	PinVersion    string   `json:"pinVersion,omitempty" yaml:"pinVersion,omitempty"`
	Policy        string   `json:"policy,omitempty" yaml:"policy,omitempty"`
	SnapTo        []string `json:"snapTo,omitempty" yaml:"snapTo,omitempty"`
	PreferVersion string   `json:"preferVersion,omitempty" yaml:"preferVersion,omitempty"`
}

// Rcfile is the parsed contents of a version-sync config file.
type Rcfile struct {
	// Source is a list of glob patterns for package.json files to read
	Source []string `json:"source,omitempty" yaml:"source,omitempty"`
	// DependencyTypes names which locations to read dependencies from,
	// supporting "!" negation and the "**" wildcard
	DependencyTypes []string `json:"dependencyTypes,omitempty" yaml:"dependencyTypes,omitempty"`
	// CustomTypes defines additional locations to read dependencies from
	CustomTypes map[string]CustomType `json:"customTypes,omitempty" yaml:"customTypes,omitempty"`
	// SemverGroups are tried in order, the first group whose selector matches
	// an instance claims it
	SemverGroups []SemverGroup `json:"semverGroups,omitempty" yaml:"semverGroups,omitempty"`
	// VersionGroups are tried in order, the first group whose selector
	// matches an instance claims it
	VersionGroups []VersionGroup `json:"versionGroups,omitempty" yaml:"versionGroups,omitempty"`
	// Indent is the string used when re-serialising package.json files
	Indent string `json:"indent,omitempty" yaml:"indent,omitempty"`

	// Formatting flags
	FormatBugs       bool     `json:"formatBugs" yaml:"formatBugs"`
	FormatRepository bool     `json:"formatRepository" yaml:"formatRepository"`
	SortAz           []string `json:"sortAz,omitempty" yaml:"sortAz,omitempty"`
	SortFirst        []string `json:"sortFirst,omitempty" yaml:"sortFirst,omitempty"`
	SortPackages     bool     `json:"sortPackages" yaml:"sortPackages"`
	SortExports      []string `json:"sortExports,omitempty" yaml:"sortExports,omitempty"`
}

// Defaults returns the configuration used when no rcfile is present.
func Defaults() Rcfile {
	return Rcfile{
		Indent:           "  ",
		FormatBugs:       true,
		FormatRepository: true,
		SortAz: []string{
			"bin",
			"contributors",
			"dependencies",
			"devDependencies",
			"keywords",
			"peerDependencies",
			"resolutions",
			"scripts",
		},
		SortFirst:    []string{"name", "description", "version", "author"},
		SortPackages: true,
		SortExports: []string{
			"types",
			"node-addons",
			"node",
			"browser",
			"module",
			"import",
			"require",
			"development",
			"production",
			"script",
			"default",
		},
	}
}

// Load finds and parses the rcfile in the given directory, falling back to
// defaults when none exists.
func Load(cwd string) (Rcfile, error) {
	for _, name := range rcfileNames {
		path := filepath.Join(cwd, name)
		contents, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return Rcfile{}, errors.Wrapf(err, "failed to read rcfile %s", path)
		}
		log.Debugf("reading config from %s", path)
		rcfile, err := parse(name, contents)
		if err != nil {
			return Rcfile{}, errors.Wrapf(err, "failed to parse rcfile %s", path)
		}
		if err := rcfile.validate(); err != nil {
			return Rcfile{}, errors.Wrapf(err, "invalid rcfile %s", path)
		}
		return rcfile, nil
	}
	log.Debug("no rcfile found, using defaults")
	return Defaults(), nil
}

func parse(name string, contents []byte) (Rcfile, error) {
	rcfile := Defaults()
	switch filepath.Ext(name) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(contents, &rcfile); err != nil {
			return Rcfile{}, err
		}
	default:
		if err := json.Unmarshal(contents, &rcfile); err != nil {
			return Rcfile{}, err
		}
	}
	return rcfile, nil
}

// validate rejects malformed group and custom type definitions up front so
// the engine never sees them.
func (rc Rcfile) validate() error {
	for _, pattern := range rc.Source {
		if !strings.HasSuffix(pattern, "package.json") {
			return errors.Errorf("source pattern %q must end with 'package.json'", pattern)
		}
	}
	for name, customType := range rc.CustomTypes {
		switch customType.Strategy {
		case "name~version":
			if customType.NamePath == "" {
				return errors.Errorf("customTypes.%s: a name~version strategy must have a namePath", name)
			}
		case "name@version", "version", "versionsByName":
		default:
			return errors.Errorf("customTypes.%s: unknown strategy %q", name, customType.Strategy)
		}
		if customType.Path == "" {
			return errors.Errorf("customTypes.%s: a path is required", name)
		}
	}
	for i, group := range rc.SemverGroups {
		count := 0
		if group.IsDisabled {
			count++
		}
		if group.IsIgnored {
			count++
		}
		if group.Range != nil {
			count++
			if _, ok := parseRangeConfig(*group.Range); !ok {
				return errors.Errorf("semverGroups[%d]: unknown range %q", i, *group.Range)
			}
		}
		if count != 1 {
			return errors.Errorf("semverGroups[%d]: exactly one of isDisabled, isIgnored or range is required", i)
		}
	}
	for i, group := range rc.VersionGroups {
		count := 0
		if group.IsBanned {
			count++
		}
		if group.IsIgnored {
			count++
		}
		if group.PinVersion != "" {
			count++
		}
		if group.Policy != "" {
			if group.Policy != "sameRange" {
				return errors.Errorf("versionGroups[%d]: unknown policy %q", i, group.Policy)
			}
			count++
		}
		if len(group.SnapTo) > 0 {
			count++
		}
		if group.PreferVersion != "" {
			if group.PreferVersion != "highestSemver" && group.PreferVersion != "lowestSemver" {
				return errors.Errorf("versionGroups[%d]: unknown preferVersion %q", i, group.PreferVersion)
			}
			count++
		}
		if count > 1 {
			return errors.Errorf("versionGroups[%d]: at most one behaviour may be configured", i)
		}
	}
	return nil
}

// parseRangeConfig accepts the range operator strings allowed in semverGroups.
func parseRangeConfig(s string) (string, bool) {
	switch s {
	case "", "^", "~", ">", ">=", "<", "<=", "*":
		return s, true
	}
	return "", false
}
