package report

import (
	"io"
	"text/template"
	"time"

	"emperror.dev/errors"
	"github.com/Masterminds/sprig/v3"
	"github.com/dustin/go-humanize"
)

type TemplateRenderer struct {
	tpl *template.Template
}

func NewTemplateRenderer(name, src string) (*TemplateRenderer, error) {
	funcMap := sprig.TxtFuncMap()
	funcMap["humanizeBytes"] = func(size int64) string {
		if size < 0 {
			size = 0
		}
		return humanize.Bytes(uint64(size))
	}
	funcMap["humanizeDuration"] = func(d time.Duration) string {
		if d < time.Second {
			return d.Round(time.Microsecond).String()
		}
		return d.Round(time.Millisecond).String()
	}
	funcMap["humanizeComma"] = func(n int) string {
		return humanize.Comma(int64(n))
	}
	tpl, err := template.New(name).Funcs(funcMap).Parse(src)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot parse template '%s'", name)
	}
	return &TemplateRenderer{tpl: tpl}, nil
}

func (r *TemplateRenderer) Render(w io.Writer, s *Summary) error {
	if err := r.tpl.Execute(w, s); err != nil {
		return errors.Wrapf(err, "cannot execute template '%s'", r.tpl.Name())
	}
	return nil
}

var _ Renderer = &TemplateRenderer{}
