package checklist

// checkResources tests existence only, contents are never read.
func (v *Validator) checkResources() {
	r := v.profile.Resources
	if r == nil {
		return
	}
	for _, res := range r.Paths {
		full := joinPath(r.Dir, res)
		if exists(v.fsys, full) {
			v.add(PhaseResources, I005, KindSatisfied, SeverityInfo, full, "✓ Resource: %s", res)
		} else {
			v.add(PhaseResources, C011, KindMissingPath, r.Severity, full, "Missing resource: %s", res)
		}
	}
}
