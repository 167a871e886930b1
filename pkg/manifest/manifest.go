// Package manifest reads and writes package.json files. Values are addressed
// by path and replaced in place, so every property the linter does not touch
// is preserved byte for byte until the file is re-serialised.
package manifest

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// Package is one package.json file and its in-memory JSON document.
type Package struct {
	// FilePath is the absolute path to the package.json file
	FilePath string
	// contents is the current state of the JSON document
	contents []byte
	// original is the document exactly as read from disk
	original []byte
}

// Read loads and minimally validates a package.json file.
func Read(path string) (*Package, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}
	if !gjson.ValidBytes(contents) {
		return nil, errors.Errorf("failed to parse %s: invalid JSON", path)
	}
	return &Package{
		FilePath: path,
		contents: contents,
		original: contents,
	}, nil
}

// New creates a Package from in-memory JSON, used by tests and by callers
// which have already read the file.
func New(path string, contents []byte) *Package {
	return &Package{
		FilePath: path,
		contents: contents,
		original: contents,
	}
}

// Name returns the package's name property, falling back to the name of the
// directory containing the manifest when it is missing.
func (p *Package) Name() string {
	if name := gjson.GetBytes(p.contents, "name"); name.Exists() {
		return name.String()
	}
	return filepath.Base(filepath.Dir(p.FilePath))
}

// Version returns the package's own version property.
func (p *Package) Version() (string, bool) {
	version := gjson.GetBytes(p.contents, "version")
	return version.String(), version.Exists()
}

// Get reads the value at a gjson path.
func (p *Package) Get(path string) gjson.Result {
	return gjson.GetBytes(p.contents, path)
}

// Set replaces the string value at a gjson path.
func (p *Package) Set(path string, value string) error {
	next, err := sjson.SetBytes(p.contents, path, value)
	if err != nil {
		return errors.Wrapf(err, "failed to set %s in %s", path, p.FilePath)
	}
	p.contents = next
	return nil
}

// SetRaw replaces the value at a gjson path with raw JSON.
func (p *Package) SetRaw(path string, raw string) error {
	next, err := sjson.SetRawBytes(p.contents, path, []byte(raw))
	if err != nil {
		return errors.Wrapf(err, "failed to set %s in %s", path, p.FilePath)
	}
	p.contents = next
	return nil
}

// Delete removes the property at a gjson path.
func (p *Package) Delete(path string) error {
	next, err := sjson.DeleteBytes(p.contents, path)
	if err != nil {
		return errors.Wrapf(err, "failed to delete %s in %s", path, p.FilePath)
	}
	p.contents = next
	return nil
}

// Contents returns the current state of the JSON document.
func (p *Package) Contents() []byte {
	return p.contents
}

// Serialize renders the document with the configured indent and a trailing
// newline. Key order is preserved.
func (p *Package) Serialize(indent string) []byte {
	out := pretty.PrettyOptions(p.contents, &pretty.Options{Indent: indent})
	if len(out) == 0 || out[len(out)-1] != '\n' {
		out = append(out, '\n')
	}
	return out
}

// IsModified reports whether serialising now would change the file on disk.
func (p *Package) IsModified(indent string) bool {
	return string(p.Serialize(indent)) != string(p.original)
}

// Write serialises the document back to disk. A failed write is reported to
// the caller but must not prevent other files from being written.
func (p *Package) Write(indent string) error {
	if err := os.WriteFile(p.FilePath, p.Serialize(indent), 0644); err != nil {
		return errors.Wrapf(err, "failed to write %s", p.FilePath)
	}
	return nil
}

// EscapeKey escapes a dependency name for use as a single key in a gjson or
// sjson path, eg. "@scope/pkg.js" → "@scope/pkg\.js".
func EscapeKey(key string) string {
	replacer := strings.NewReplacer(".", `\.`, "*", `\*`, "?", `\?`, "|", `\|`)
	return replacer.Replace(key)
}
