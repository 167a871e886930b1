package manifest

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
	"github.com/tuckertucker/tkr-version-sync/go/pkg/config"
)

// Strategy defines how dependency instances are read from and written to a
// location in a package.json file.
type Strategy int

const (
	// VersionsByName is an object whose keys are dependency names and whose
	// values are specifier strings, eg. "dependencies"
	VersionsByName Strategy = iota
	// NamedVersionString is a single string of the form "name@specifier"
	NamedVersionString
	// NameAndVersionProps reads the name and the specifier from two separate
	// paths, eg. a package's own "name" and "version" properties
	NameAndVersionProps
	// UnnamedVersionString is a specifier string whose dependency name is the
	// name of the dependency type itself
	UnnamedVersionString
)

// DependencyType is a named location where dependencies are found in every
// package.json file.
type DependencyType struct {
	// Name is eg. "prod", "dev", "local", or a user-defined custom type name
	Name string
	// Strategy defines how instances are extracted at Path
	Strategy Strategy
	// Path is the dotted path to the value, eg. "dependencies" or "pnpm.overrides"
	Path string
	// NamePath is the dotted path to the dependency name, only used by the
	// NameAndVersionProps strategy
	NamePath string
}

// LocalType is the name of the dependency type representing a package's own
// version property.
const LocalType = "local"

// defaultTypes are the locations recognised without any configuration.
func defaultTypes() []DependencyType {
	return []DependencyType{
		{Name: "prod", Strategy: VersionsByName, Path: "dependencies"},
		{Name: "dev", Strategy: VersionsByName, Path: "devDependencies"},
		{Name: "peer", Strategy: VersionsByName, Path: "peerDependencies"},
		{Name: "optional", Strategy: VersionsByName, Path: "optionalDependencies"},
		{Name: "overrides", Strategy: VersionsByName, Path: "overrides"},
		{Name: "resolutions", Strategy: VersionsByName, Path: "resolutions"},
		{Name: "pnpmOverrides", Strategy: VersionsByName, Path: "pnpm.overrides"},
		{Name: LocalType, Strategy: NameAndVersionProps, Path: "version", NamePath: "name"},
	}
}

// TypesFromConfig resolves the enabled dependency types from the rcfile's
// dependencyTypes filter and customTypes definitions.
func TypesFromConfig(rc config.Rcfile) ([]DependencyType, error) {
	var all []DependencyType
	all = append(all, defaultTypes()...)

	// map iteration order is not defined, keep custom types deterministic
	customNames := make([]string, 0, len(rc.CustomTypes))
	for name := range rc.CustomTypes {
		customNames = append(customNames, name)
	}
	sort.Strings(customNames)

	for _, name := range customNames {
		customType := rc.CustomTypes[name]
		depType := DependencyType{
			Name:     name,
			Path:     customType.Path,
			NamePath: customType.NamePath,
		}
		switch customType.Strategy {
		case "versionsByName":
			depType.Strategy = VersionsByName
		case "name@version":
			depType.Strategy = NamedVersionString
		case "name~version":
			depType.Strategy = NameAndVersionProps
		case "version":
			depType.Strategy = UnnamedVersionString
		default:
			return nil, errors.Errorf("unknown strategy %q for custom type %q", customType.Strategy, name)
		}
		all = append(all, depType)
	}

	var enabled []DependencyType
	for _, depType := range all {
		if TypeNameMatches(depType.Name, rc.DependencyTypes) {
			enabled = append(enabled, depType)
		}
	}
	return enabled, nil
}

// TypeNameMatches applies a dependency type filter to a type name. An empty
// filter or the "**" wildcard includes everything; a name is included when it
// is named explicitly, excluded when negated with "!", and otherwise included
// implicitly whenever the filter holds at least one negation, even alongside
// positive entries.
func TypeNameMatches(name string, filter []string) bool {
	if len(filter) == 0 || (len(filter) == 1 && filter[0] == "**") {
		return true
	}
	hasNegation := false
	for _, entry := range filter {
		if entry == name || entry == "**" {
			return true
		}
		if entry == "!"+name {
			return false
		}
		if strings.HasPrefix(entry, "!") {
			hasNegation = true
		}
	}
	return hasNegation
}

// Entry is one raw dependency declaration found in one package.json file.
type Entry struct {
	// Name is the dependency name, eg. "react"
	Name string
	// RawSpecifier is the unparsed specifier string, eg. "^16.8.0"
	RawSpecifier string
	// HasSpecifier is false when the property is absent, which only happens
	// for a local instance whose package has no version property
	HasSpecifier bool
	// Type is the dependency type this entry was found under
	Type DependencyType
	// Path is the gjson path to the specifier value within the manifest
	Path string
	// Pointer is the display form of Path, eg. "/dependencies/react"
	Pointer string
}

// Entries extracts one entry per dependency declaration recognised by the
// given types, in document order within each type.
func (p *Package) Entries(types []DependencyType) []Entry {
	var entries []Entry
	for _, depType := range types {
		switch depType.Strategy {
		case VersionsByName:
			value := p.Get(depType.Path)
			if !value.IsObject() {
				continue
			}
			basePath := depType.Path
			value.ForEach(func(key, val gjson.Result) bool {
				name := key.String()
				entries = append(entries, Entry{
					Name:         name,
					RawSpecifier: val.String(),
					HasSpecifier: true,
					Type:         depType,
					Path:         basePath + "." + EscapeKey(name),
					Pointer:      toPointer(basePath) + "/" + name,
				})
				return true
			})
		case NamedVersionString:
			value := p.Get(depType.Path)
			if !value.Exists() {
				continue
			}
			name, raw, ok := splitNameAtVersion(value.String())
			if !ok {
				continue
			}
			entries = append(entries, Entry{
				Name:         name,
				RawSpecifier: raw,
				HasSpecifier: true,
				Type:         depType,
				Path:         depType.Path,
				Pointer:      toPointer(depType.Path),
			})
		case NameAndVersionProps:
			name := p.Get(depType.NamePath).String()
			if name == "" && depType.Name == LocalType {
				name = p.Name()
			}
			if name == "" {
				continue
			}
			value := p.Get(depType.Path)
			entries = append(entries, Entry{
				Name:         name,
				RawSpecifier: value.String(),
				HasSpecifier: value.Exists(),
				Type:         depType,
				Path:         depType.Path,
				Pointer:      toPointer(depType.Path),
			})
		case UnnamedVersionString:
			value := p.Get(depType.Path)
			if !value.Exists() {
				continue
			}
			entries = append(entries, Entry{
				Name:         depType.Name,
				RawSpecifier: value.String(),
				HasSpecifier: true,
				Type:         depType,
				Path:         depType.Path,
				Pointer:      toPointer(depType.Path),
			})
		}
	}
	return entries
}

// splitNameAtVersion splits "name@1.2.3" or "@scope/name@1.2.3" at the "@"
// which separates the name from the specifier.
func splitNameAtVersion(s string) (string, string, bool) {
	at := strings.LastIndex(s, "@")
	if at <= 0 {
		return "", "", false
	}
	return s[:at], s[at+1:], true
}

// toPointer renders a dotted path as a display pointer, eg. "pnpm.overrides"
// → "/pnpm/overrides".
func toPointer(path string) string {
	return "/" + strings.ReplaceAll(path, ".", "/")
}
