package checklist

import (
	"fmt"
	"strings"

	"emperror.dev/errors"
)

type Severity string

const (
	SeverityError   = Severity("error")
	SeverityWarning = Severity("warning")
	SeverityInfo    = Severity("info")
)

// ParseSeverity accepts error, warning and info in any case.
func ParseSeverity(s string) (Severity, error) {
	switch sev := Severity(strings.ToLower(strings.TrimSpace(s))); sev {
	case SeverityError, SeverityWarning, SeverityInfo:
		return sev, nil
	default:
		return "", errors.Errorf("invalid severity '%s' (error|warning|info)", s)
	}
}

type Phase string

const (
	PhaseStructure    = Phase("structure")
	PhaseManifest     = Phase("manifest")
	PhaseSources      = Phase("sources")
	PhaseResources    = Phase("resources")
	PhaseDependencies = Phase("dependencies")
)

type Kind string

const (
	KindSatisfied       = Kind("satisfied")
	KindMissingPath     = Kind("missing-path")
	KindContentMismatch = Kind("content-mismatch")
	KindReadFailure     = Kind("read-failure")
)

type FindingCode string

const (
	I001 = FindingCode("I001")
	I002 = FindingCode("I002")
	I003 = FindingCode("I003")
	I004 = FindingCode("I004")
	I005 = FindingCode("I005")
	I006 = FindingCode("I006")
	C001 = FindingCode("C001")
	C002 = FindingCode("C002")
	C003 = FindingCode("C003")
	C004 = FindingCode("C004")
	C005 = FindingCode("C005")
	C006 = FindingCode("C006")
	C007 = FindingCode("C007")
	C008 = FindingCode("C008")
	C009 = FindingCode("C009")
	C010 = FindingCode("C010")
	C011 = FindingCode("C011")
	C012 = FindingCode("C012")
	C013 = FindingCode("C013")
	C014 = FindingCode("C014")
)

var FindingDescriptions = map[FindingCode]string{
	I001: "required path found",
	I002: "manifest permission found",
	I003: "manifest component found",
	I004: "key source file found",
	I005: "resource found",
	I006: "dependency found",
	C001: "required path missing",
	C002: "manifest not found",
	C003: "manifest not readable",
	C004: "manifest permission missing",
	C005: "manifest component missing",
	C006: "source directory not found",
	C007: "key source file missing",
	C008: "package declaration missing",
	C009: "todo markers found",
	C010: "source file not readable",
	C011: "resource missing",
	C012: "build configuration not found",
	C013: "build configuration not readable",
	C014: "dependency missing",
}

type Finding struct {
	Code     FindingCode `json:"code"`
	Phase    Phase       `json:"phase"`
	Kind     Kind        `json:"kind"`
	Severity Severity    `json:"severity"`
	Subject  string      `json:"subject,omitempty"`
	Message  string      `json:"message"`
}

func (f *Finding) Description() string {
	if desc, ok := FindingDescriptions[f.Code]; ok {
		return desc
	}
	return fmt.Sprintf("unknown finding %s", f.Code)
}

func (f *Finding) String() string {
	return f.Message
}

func newFinding(phase Phase, code FindingCode, kind Kind, sev Severity, subject, format string, a ...any) *Finding {
	return &Finding{
		Code:     code,
		Phase:    phase,
		Kind:     kind,
		Severity: sev,
		Subject:  subject,
		Message:  fmt.Sprintf(format, a...),
	}
}
