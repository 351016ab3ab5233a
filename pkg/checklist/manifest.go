package checklist

import (
	"path"
	"strings"
)

// checkManifest only looks for substrings, the manifest is never parsed.
func (v *Validator) checkManifest() {
	m := v.profile.Manifest
	if m == nil {
		return
	}
	name := path.Base(m.Path)
	if !exists(v.fsys, m.Path) {
		v.add(PhaseManifest, C002, KindMissingPath, SeverityError, m.Path, "%s not found", name)
		return
	}
	res := v.read(m.Path)
	if !res.OK() {
		v.add(PhaseManifest, C003, KindReadFailure, SeverityError, m.Path, "Error reading %s: %v", name, res.Err)
		return
	}

	for _, permission := range m.Permissions {
		if strings.Contains(res.Content, permission) {
			v.add(PhaseManifest, I002, KindSatisfied, SeverityInfo, permission, "✓ Permission: %s", permission)
		} else {
			v.add(PhaseManifest, C004, KindContentMismatch, m.PermissionSeverity, permission, "Missing permission: %s", permission)
		}
	}

	for _, component := range m.Components {
		if strings.Contains(res.Content, component) {
			v.add(PhaseManifest, I003, KindSatisfied, SeverityInfo, component, "✓ Component: %s", component)
		} else {
			v.add(PhaseManifest, C005, KindContentMismatch, m.ComponentSeverity, component, "Missing component: %s", component)
		}
	}
}
