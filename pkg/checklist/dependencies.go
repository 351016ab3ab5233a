package checklist

import (
	"path"
	"strings"
)

func (v *Validator) checkDependencies() {
	d := v.profile.Dependencies
	if d == nil {
		return
	}
	name := path.Base(d.Path)
	if !exists(v.fsys, d.Path) {
		v.add(PhaseDependencies, C012, KindMissingPath, SeverityError, d.Path, "%s not found", name)
		return
	}
	res := v.read(d.Path)
	if !res.OK() {
		v.add(PhaseDependencies, C013, KindReadFailure, SeverityError, d.Path, "Error reading %s: %v", name, res.Err)
		return
	}
	for _, dep := range d.Names {
		if strings.Contains(res.Content, dep) {
			v.add(PhaseDependencies, I006, KindSatisfied, SeverityInfo, dep, "✓ Dependency: %s", dep)
		} else {
			v.add(PhaseDependencies, C014, KindContentMismatch, d.Severity, dep, "Missing dependency: %s", dep)
		}
	}
}
