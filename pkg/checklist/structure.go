package checklist

func (v *Validator) checkStructure() {
	s := v.profile.Structure
	if s == nil {
		return
	}
	for _, p := range s.Paths {
		if !exists(v.fsys, p) {
			v.add(PhaseStructure, C001, KindMissingPath, s.Severity, p, "Missing required path: %s", p)
			continue
		}
		v.add(PhaseStructure, I001, KindSatisfied, SeverityInfo, p, "✓ Found: %s", p)
	}
}
