package checklist

// Status collects the findings of one validation run in the order the checks
// executed. It is owned by a single Validator and only ever appended to.
type Status struct {
	Errors   []*Finding `json:"errors"`
	Warnings []*Finding `json:"warnings"`
	Info     []*Finding `json:"info"`
}

func NewStatus() *Status {
	return &Status{
		Errors:   []*Finding{},
		Warnings: []*Finding{},
		Info:     []*Finding{},
	}
}

// Add files f by severity. A finding without a known severity counts as an
// error.
func (s *Status) Add(f *Finding) {
	switch f.Severity {
	case SeverityWarning:
		s.Warnings = append(s.Warnings, f)
	case SeverityInfo:
		s.Info = append(s.Info, f)
	default:
		s.Errors = append(s.Errors, f)
	}
}

// OK is true iff no error was recorded.
func (s *Status) OK() bool {
	return len(s.Errors) == 0
}

func (s *Status) Count(sev Severity) int {
	switch sev {
	case SeverityError:
		return len(s.Errors)
	case SeverityWarning:
		return len(s.Warnings)
	case SeverityInfo:
		return len(s.Info)
	default:
		return 0
	}
}

func (s *Status) All() []*Finding {
	all := make([]*Finding, 0, len(s.Errors)+len(s.Warnings)+len(s.Info))
	all = append(all, s.Errors...)
	all = append(all, s.Warnings...)
	all = append(all, s.Info...)
	return all
}
