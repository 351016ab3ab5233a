package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"emperror.dev/errors"
	"github.com/shieldtechhub/droidcheck/pkg/checklist"
)

type TextRenderer struct{}

func (r *TextRenderer) Render(w io.Writer, s *Summary) error {
	bw := bufio.NewWriter(w)
	status := s.Status

	fmt.Fprintf(bw, "\n📊 VALIDATION RESULTS\n%s\n", strings.Repeat("=", 50))

	writeSection(bw, "❌ ERRORS", len(status.Errors), status.Errors)
	writeSection(bw, "⚠️  WARNINGS", len(status.Warnings), status.Warnings)
	writeSection(bw, "✅ SUCCESS", len(status.Info), s.ShownInfo())
	if more := s.MoreInfo(); more > 0 {
		fmt.Fprintf(bw, "   ... and %d more\n", more)
	}

	fmt.Fprintf(bw, "\n📈 SUMMARY\n%s\n", strings.Repeat("=", 20))
	fmt.Fprintf(bw, "✅ Success: %d\n", len(status.Info))
	fmt.Fprintf(bw, "⚠️  Warnings: %d\n", len(status.Warnings))
	fmt.Fprintf(bw, "❌ Errors: %d\n", len(status.Errors))

	if status.OK() {
		fmt.Fprintf(bw, "\n🎉 IMPLEMENTATION READY FOR TESTING!\n")
		fmt.Fprintf(bw, "   Run the build script to compile and test\n")
	} else {
		fmt.Fprintf(bw, "\n🔧 FIX ERRORS BEFORE TESTING\n")
		fmt.Fprintf(bw, "   Address the errors above, then re-validate\n")
	}
	return errors.Wrap(bw.Flush(), "cannot write report")
}

func writeSection(w io.Writer, title string, total int, findings []*checklist.Finding) {
	if total == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s (%d)\n", title, total)
	for _, f := range findings {
		fmt.Fprintf(w, "   • %s\n", f.Message)
	}
}

var _ Renderer = &TextRenderer{}
