package engine

import (
	log "github.com/sirupsen/logrus"

	"github.com/tuckertucker/tkr-version-sync/go/pkg/manifest"
)

// ApplyFixes copies every fixable instance's expected specifier into its
// manifest's JSON document, in processing order. Suspect, conflict, unfixable
// and valid instances are left untouched; in particular no rule ever mutates
// the version property of a local package.
func (ctx *Context) ApplyFixes() {
	for _, group := range ctx.ProcessingOrder() {
		for _, dep := range group.SortedDependencies() {
			for _, inst := range dep.Instances {
				if inst.State.InvalidKind() != Fixable {
					continue
				}
				if err := applyFix(inst); err != nil {
					log.Errorf("failed to fix %s in %s: %v", inst.Name, inst.Package.FilePath, err)
				}
			}
		}
	}
}

func applyFix(inst *Instance) error {
	if inst.State == IsBanned {
		return inst.Package.Delete(inst.Path)
	}
	raw := inst.Expected.Raw()
	if inst.Strategy == manifest.NamedVersionString {
		raw = inst.Name + "@" + raw
	}
	return inst.Package.Set(inst.Path, raw)
}
