package checklist

import (
	"regexp"
	"strings"

	"emperror.dev/errors"
)

func (s *SourcesProfile) todoMatcher() (*regexp.Regexp, error) {
	if s.todoRegexp != nil {
		return s.todoRegexp, nil
	}
	pattern := s.TODOPattern
	if pattern == "" {
		pattern = DefaultTODOPattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid todo pattern '%s'", pattern)
	}
	s.todoRegexp = re
	return re, nil
}

func (v *Validator) checkSources() {
	s := v.profile.Sources
	if s == nil {
		return
	}
	if !exists(v.fsys, s.Dir) {
		v.add(PhaseSources, C006, KindMissingPath, SeverityError, s.Dir, "Kotlin source directory not found")
		return
	}
	for _, kf := range s.Files {
		full := joinPath(s.Dir, kf.Path)
		if !exists(v.fsys, full) {
			v.add(PhaseSources, C007, KindMissingPath, s.MissingSeverity, full, "Missing %s: %s", kf.Description, kf.Path)
			continue
		}
		v.add(PhaseSources, I004, KindSatisfied, SeverityInfo, full, "✓ %s: %s", kf.Description, kf.Path)
		v.checkSourceSyntax(s, kf, full)
	}
}

// checkSourceSyntax is a sanity scan, not a parser: a package prefix and a
// count of todo comments.
func (v *Validator) checkSourceSyntax(s *SourcesProfile, kf *KeyFile, full string) {
	res := v.read(full)
	if !res.OK() {
		v.add(PhaseSources, C010, KindReadFailure, s.ReadSeverity, full, "Error validating %s: %v", kf.Description, res.Err)
		return
	}
	prefix := s.PackagePrefix
	if prefix == "" {
		prefix = DefaultPackagePrefix
	}
	if !strings.HasPrefix(strings.TrimSpace(res.Content), prefix) {
		v.add(PhaseSources, C008, KindContentMismatch, s.PackageSeverity, full, "%s: Missing package declaration", kf.Description)
	}
	re, err := s.todoMatcher()
	if err != nil {
		v.add(PhaseSources, C010, KindReadFailure, s.ReadSeverity, full, "Error validating %s: %v", kf.Description, err)
		return
	}
	if count := len(re.FindAllStringIndex(res.Content, -1)); count > 0 {
		v.add(PhaseSources, C009, KindContentMismatch, s.TODOSeverity, full, "%s: %d TODO items found", kf.Description, count)
	}
}
