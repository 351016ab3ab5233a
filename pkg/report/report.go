package report

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"emperror.dev/errors"
	"github.com/shieldtechhub/droidcheck/data/templates"
	"github.com/shieldtechhub/droidcheck/pkg/checklist"
	"golang.org/x/exp/slices"
)

const (
	FormatText     = "text"
	FormatMarkdown = "markdown"
	FormatTemplate = "template"
)

var Formats = []string{FormatText, FormatMarkdown, FormatTemplate}

const DefaultInfoLimit = 10

// Summary is everything a renderer gets to see of one run.
type Summary struct {
	Title     string
	Root      string
	RunID     string
	Status    *checklist.Status
	InfoLimit int
	Duration  time.Duration
	BytesRead int64
}

func (s *Summary) OK() bool {
	return s.Status.OK()
}

// ShownInfo returns the info findings which fit into InfoLimit. A limit
// below one shows everything.
func (s *Summary) ShownInfo() []*checklist.Finding {
	if s.InfoLimit <= 0 || len(s.Status.Info) <= s.InfoLimit {
		return s.Status.Info
	}
	return s.Status.Info[:s.InfoLimit]
}

// MoreInfo is the number of info findings hidden by InfoLimit.
func (s *Summary) MoreInfo() int {
	return len(s.Status.Info) - len(s.ShownInfo())
}

type Renderer interface {
	Render(w io.Writer, s *Summary) error
}

// NewRenderer returns the renderer for format. templateFile is only used by
// the template format; empty selects the built-in checklist template.
func NewRenderer(format, templateFile string) (Renderer, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if !slices.Contains(Formats, format) {
		return nil, errors.Errorf("unknown report format '%s' please use %v", format, Formats)
	}
	switch format {
	case FormatMarkdown:
		return &MarkdownRenderer{}, nil
	case FormatTemplate:
		src := templates.Checklist
		name := "checklist"
		if templateFile != "" {
			data, err := os.ReadFile(templateFile)
			if err != nil {
				return nil, errors.Wrapf(err, "cannot read template '%s'", templateFile)
			}
			src = string(data)
			name = templateFile
		}
		return NewTemplateRenderer(name, src)
	default:
		return &TextRenderer{}, nil
	}
}

// Header is printed by the text format before the checks run.
func Header(w io.Writer, title string) error {
	_, err := fmt.Fprintf(w, "🔍 Validating %s Implementation...\n%s\n", title, strings.Repeat("=", 50))
	return errors.WithStack(err)
}
