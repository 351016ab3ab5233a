package report

import (
	"fmt"
	"io"

	"emperror.dev/errors"
	"github.com/atsushinee/go-markdown-generator/doc"
	"github.com/shieldtechhub/droidcheck/pkg/checklist"
)

type MarkdownRenderer struct{}

func (r *MarkdownRenderer) Render(w io.Writer, s *Summary) error {
	status := s.Status
	md := doc.NewMarkDown()
	md.WriteTitle(fmt.Sprintf("%s validation results", s.Title), doc.LevelTitle).
		WriteLines(2)
	if s.Root != "" {
		md.Write(fmt.Sprintf("Project: `%s`\n\n", s.Root))
	}
	if s.RunID != "" {
		md.Write(fmt.Sprintf("Run: `%s`\n\n", s.RunID))
	}

	writeMarkdownSection(md, "Errors", status.Errors, 0)
	writeMarkdownSection(md, "Warnings", status.Warnings, 0)
	writeMarkdownSection(md, "Success", s.ShownInfo(), s.MoreInfo())

	md.WriteTitle("Summary", doc.LevelNormal)
	summary := doc.NewTable(3, 2)
	summary.SetTitle(0, "category")
	summary.SetTitle(1, "count")
	for row, sev := range []checklist.Severity{checklist.SeverityInfo, checklist.SeverityWarning, checklist.SeverityError} {
		summary.SetContent(row, 0, severityLabel(sev))
		summary.SetContent(row, 1, fmt.Sprintf("%d", status.Count(sev)))
	}
	md.WriteTable(summary)
	md.Write("\n")

	if codes := findingCodes(status.Errors, status.Warnings); len(codes) > 0 {
		md.WriteTitle("Legend", doc.LevelNormal)
		legend := doc.NewTable(len(codes), 2)
		legend.SetTitle(0, "code")
		legend.SetTitle(1, "meaning")
		for row, f := range codes {
			legend.SetContent(row, 0, string(f.Code))
			legend.SetContent(row, 1, f.Description())
		}
		md.WriteTable(legend)
		md.Write("\n")
	}

	if status.OK() {
		md.Write("**Implementation ready for testing.**\n")
	} else {
		md.Write("**Fix errors before testing.**\n")
	}

	if _, err := io.WriteString(w, md.String()); err != nil {
		return errors.Wrap(err, "cannot write markdown report")
	}
	return nil
}

func severityLabel(sev checklist.Severity) string {
	switch sev {
	case checklist.SeverityError:
		return "errors"
	case checklist.SeverityWarning:
		return "warnings"
	default:
		return "success"
	}
}

// findingCodes returns one finding per code in order of first appearance.
func findingCodes(lists ...[]*checklist.Finding) []*checklist.Finding {
	seen := map[checklist.FindingCode]bool{}
	var result []*checklist.Finding
	for _, list := range lists {
		for _, f := range list {
			if seen[f.Code] {
				continue
			}
			seen[f.Code] = true
			result = append(result, f)
		}
	}
	return result
}

func writeMarkdownSection(md *doc.MarkDownDoc, title string, findings []*checklist.Finding, more int) {
	if len(findings) == 0 {
		return
	}
	md.WriteTitle(fmt.Sprintf("%s (%d)", title, len(findings)+more), doc.LevelNormal)
	for _, f := range findings {
		md.Write(fmt.Sprintf("- `%s` %s\n", f.Code, f.Message))
	}
	if more > 0 {
		md.Write(fmt.Sprintf("- ... and %d more\n", more))
	}
	md.Write("\n")
}

var _ Renderer = &MarkdownRenderer{}
